// Package removal calls the hosted data service that deletes an employee
// from every downstream system once offboarding is complete.
package removal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"offboard/internal/httpclient"
)

// ErrNoEndpoint is returned when the remover has no endpoint configured.
var ErrNoEndpoint = errors.New("removal endpoint not configured")

// Remover deletes an employee from the remote system. Implementations must
// only report success when the service confirmed the employee is gone.
type Remover interface {
	Remove(ctx context.Context, employeeID string) error
}

// RemoverFunc adapts a function to [Remover].
type RemoverFunc func(ctx context.Context, employeeID string) error

// Remove calls f.
func (f RemoverFunc) Remove(ctx context.Context, employeeID string) error {
	return f(ctx, employeeID)
}

var (
	_ Remover = (*HTTPRemover)(nil)
	_ Remover = RemoverFunc(nil)
)

// removeRequest is the JSON body sent to the removal endpoint.
type removeRequest struct {
	EmployeeID string `json:"employee_id"`
}

// HTTPRemover POSTs {"employee_id": ...} to a removal endpoint.
type HTTPRemover struct {
	endpoint string
	token    string
	client   *fasthttp.Client
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures an [HTTPRemover].
type Option func(*HTTPRemover)

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(r *HTTPRemover) { r.token = token }
}

// WithClient replaces the default fasthttp client.
func WithClient(c *fasthttp.Client) Option {
	return func(r *HTTPRemover) { r.client = c }
}

// WithTimeout bounds each call when the context carries no deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *HTTPRemover) { r.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *HTTPRemover) { r.logger = l }
}

// NewHTTPRemover creates a remover for endpoint.
func NewHTTPRemover(endpoint string, opts ...Option) *HTTPRemover {
	r := &HTTPRemover{
		endpoint: endpoint,
		client:   &fasthttp.Client{Name: "offboard"},
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Remove asks the service to delete the employee. A 2xx means removed and a
// 410 Gone means the service already removed the employee earlier; both
// count as success. Every other status, 404 included, is a failure.
func (r *HTTPRemover) Remove(ctx context.Context, employeeID string) error {
	if strings.TrimSpace(r.endpoint) == "" {
		return ErrNoEndpoint
	}

	payload, err := json.Marshal(removeRequest{EmployeeID: employeeID})
	if err != nil {
		return fmt.Errorf("encode removal request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if r.token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+r.token)
	}
	req.SetBody(payload)

	if err := httpclient.Do(ctx, r.client, req, resp, r.timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return errors.New("removal request timed out")
		}
		return fmt.Errorf("removal request failed: %w", err)
	}

	code := resp.StatusCode()
	switch {
	case httpclient.IsSuccess(code):
		r.logger.Info("employee removed", slog.String("employee_id", employeeID))
		return nil
	case code == fasthttp.StatusGone:
		r.logger.Info("employee already removed", slog.String("employee_id", employeeID))
		return nil
	}
	return httpclient.StatusError(resp)
}
