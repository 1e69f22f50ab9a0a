package artifact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"offboard/internal/httpclient"
)

var _ Store = (*HTTPStore)(nil)

// uploadResponse is the body returned by the blob service on success.
type uploadResponse struct {
	URL string `json:"url"`
}

// HTTPStore uploads documents with PUT {baseURL}/{destination}.
//
// The service may answer with {"url": "..."}; when the body is empty the
// request URL itself is recorded.
type HTTPStore struct {
	baseURL string
	client  *fasthttp.Client
	timeout time.Duration
	logger  *slog.Logger
}

// HTTPOption configures an [HTTPStore].
type HTTPOption func(*HTTPStore)

// WithClient replaces the default fasthttp client.
func WithClient(c *fasthttp.Client) HTTPOption {
	return func(s *HTTPStore) { s.client = c }
}

// WithTimeout bounds each upload when the context carries no deadline.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPStore) { s.timeout = d }
}

// WithLogger sets the logger used by the store.
func WithLogger(l *slog.Logger) HTTPOption {
	return func(s *HTTPStore) { s.logger = l }
}

// NewHTTPStore creates a store that uploads below baseURL.
func NewHTTPStore(baseURL string, opts ...HTTPOption) *HTTPStore {
	s := &HTTPStore{
		baseURL: baseURL,
		client:  &fasthttp.Client{Name: "offboard"},
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Upload sends the file and returns the URL reported by the service.
func (s *HTTPStore) Upload(ctx context.Context, file File, destination string) (string, error) {
	if len(file.Data) == 0 {
		return "", ErrEmptyFile
	}

	target := httpclient.JoinURL(s.baseURL, destination)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	req.Header.SetMethod(fasthttp.MethodPut)
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.SetContentType(contentType)
	req.SetBody(file.Data)

	start := time.Now()
	if err := httpclient.Do(ctx, s.client, req, resp, s.timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return "", fmt.Errorf("upload timed out after %s", time.Since(start).Round(time.Millisecond))
		}
		return "", fmt.Errorf("upload failed: %w", err)
	}

	if !httpclient.IsSuccess(resp.StatusCode()) {
		return "", httpclient.StatusError(resp)
	}

	url := target
	if body := resp.Body(); len(body) > 0 {
		var parsed uploadResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("upload failed: unexpected response: %w", err)
		}
		if parsed.URL != "" {
			url = parsed.URL
		}
	}

	s.logger.Debug("artifact uploaded",
		slog.String("destination", destination),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return url, nil
}
