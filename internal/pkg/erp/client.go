package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client represents the ERP booking API HTTP client.
type Client struct {
	baseURL string
	ua      string
	http    *http.Client
}

// NewClient creates a new ERP booking client.
func NewClient(baseURL string, timeout time.Duration, ua string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		ua:      ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// SearchCourses fetches the course list for a date (YYYYMMDD).
func (c *Client) SearchCourses(ctx context.Context, date string) ([]CourseDTO, error) {
	q := url.Values{}
	q.Set("from_book_dt", date)
	q.Set("to_book_dt", date)

	data, err := c.get(ctx, "/erpBooking/sbs/search", q)
	if err != nil {
		return nil, err
	}

	var courses []CourseDTO
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("erp search decode error: %w", err)
	}
	return courses, nil
}

// CourseTimes fetches the tee-time list for a course on a date.
func (c *Client) CourseTimes(ctx context.Context, date string, courseID int64) ([]TeeTimeDTO, error) {
	q := url.Values{}
	q.Set("book_dt", date)
	q.Set("golf_plc_no", strconv.FormatInt(courseID, 10))

	data, err := c.get(ctx, "/erpBooking/sbs/times", q)
	if err != nil {
		return nil, err
	}

	var payload timesData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("erp times decode error: %w", err)
	}
	return payload.TimeList, nil
}

// MyReservations fetches the member's reservation list.
func (c *Client) MyReservations(ctx context.Context, userID int64) ([]BookingDTO, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(userID, 10))

	data, err := c.get(ctx, "/erpBooking/sbs/myReservations", q)
	if err != nil {
		return nil, err
	}

	var bookings []BookingDTO
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("erp reservations decode error: %w", err)
	}
	return bookings, nil
}

// CreateBooking submits a reservation and returns the booking number.
// The endpoint nests a RESULT/MSG pair inside the success envelope; a
// non-SUCCESS result surfaces as *APIError.
func (c *Client) CreateBooking(ctx context.Context, p CreateBookingPayload) (string, error) {
	data, err := c.post(ctx, "/erpBooking/sbs/booking", p)
	if err != nil {
		return "", err
	}

	var result resultData
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("erp booking decode error: %w", err)
	}
	if result.Result != resultSuccess {
		return "", &APIError{Code: result.Result, Message: result.Msg}
	}
	return result.BookNo, nil
}

// CancelBooking cancels a reservation.
func (c *Client) CancelBooking(ctx context.Context, bookNo string, memberKey int64) error {
	body := map[string]interface{}{
		"book_no": bookNo,
		"mbr_key": memberKey,
	}

	data, err := c.post(ctx, "/erpBooking/sbs/cancel", body)
	if err != nil {
		return err
	}

	var result resultData
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("erp cancel decode error: %w", err)
	}
	if result.Result != resultSuccess {
		return &APIError{Code: result.Result, Message: result.Msg}
	}
	return nil
}

// get performs a GET request and unwraps the success envelope.
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("erp request error: %w", err)
	}
	return c.do(req)
}

// post performs a JSON POST request and unwraps the success envelope.
func (c *Client) post(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("erp request error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("erp request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	if c == nil || c.http == nil {
		return nil, fmt.Errorf("erp request error: client is nil")
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return nil, fmt.Errorf("erp config error: base_url is empty")
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyRequestError(req.Context(), err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("erp http error: status=%d body=<failed to read body: %v>", resp.StatusCode, readErr)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("erp network error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("erp envelope decode error: %w", err)
	}
	if !env.Success {
		return nil, &APIError{Code: env.Error, Message: env.Message}
	}
	return env.Data, nil
}

func classifyRequestError(ctx context.Context, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("erp timeout: %w", err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("erp network error: %w", err)
	}
	return fmt.Errorf("erp request error: %w", err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	return false
}
