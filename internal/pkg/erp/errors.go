package erp

import (
	"errors"
	"fmt"
)

const resultSuccess = "SUCCESS"

// APIError is the single error currency for application-level ERP
// failures. Both envelope errors (success=false) and nested result-code
// errors (RESULT != "SUCCESS") normalize into it at the client boundary,
// so callers never inspect raw envelope fields.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// AsAPIError unwraps err into an *APIError if one is in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
