// Package httpclient holds the fasthttp plumbing shared by the remote
// collaborators (artifact upload and employee removal).
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

// errorBody is the JSON error shape returned by the hosted data service.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Do executes req honoring the context deadline, falling back to timeout
// when the context has none. A zero timeout means no limit.
func Do(ctx context.Context, client *fasthttp.Client, req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return client.DoDeadline(req, resp, deadline)
	}
	if timeout > 0 {
		return client.DoTimeout(req, resp, timeout)
	}
	return client.Do(req, resp)
}

// IsSuccess reports whether the status code is 2xx.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// StatusError builds an error for a non-2xx response. The service's own
// message is preferred over the raw body so users see it verbatim.
func StatusError(resp *fasthttp.Response) error {
	code := resp.StatusCode()
	body := resp.Body()

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return errors.New(parsed.Message)
		}
		if parsed.Error != "" {
			return errors.New(parsed.Error)
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		text = fasthttp.StatusMessage(code)
	}
	return fmt.Errorf("status %d: %s", code, text)
}

// JoinURL joins a base URL and a slash separated path.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
