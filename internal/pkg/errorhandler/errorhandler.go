package errorhandler

import (
	"context"
	"net/http"

	"github.com/fairway/fairway-api/internal/pkg/erp"
	"github.com/fairway/fairway-api/internal/pkg/logger"
	"github.com/fairway/fairway-api/internal/pkg/response"
)

// HandleError logs an error and sends the formatted error response.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	logger.LogError(ctx, err, "Request error",
		"error_code", code,
		"error_message", message,
		"status_code", status,
	)
	response.Error(w, status, code, message)
}

// HandleUpstream maps an ERP failure onto the response envelope:
// application-level errors keep their code and message, transport errors
// surface as a generic 502.
func HandleUpstream(ctx context.Context, w http.ResponseWriter, err error) {
	if apiErr, ok := erp.AsAPIError(err); ok {
		HandleError(ctx, w, http.StatusBadGateway, apiErr.Code, apiErr.Message, err)
		return
	}
	logger.LogError(ctx, err, "Upstream request failed")
	response.BadGateway(w, err.Error())
}
