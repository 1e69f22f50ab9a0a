package removal

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

type seenRequest struct {
	Method        string
	Path          string
	Authorization string
	Body          removeRequest
}

// newRemovalServer serves handler in memory and records each request on seen.
func newRemovalServer(t *testing.T, handler fasthttp.RequestHandler) (*fasthttp.Client, <-chan seenRequest) {
	t.Helper()
	seen := make(chan seenRequest, 8)
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		var body removeRequest
		_ = json.Unmarshal(ctx.PostBody(), &body)
		seen <- seenRequest{
			Method:        string(ctx.Method()),
			Path:          string(ctx.Path()),
			Authorization: string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)),
			Body:          body,
		}
		handler(ctx)
	}}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { ln.Close() })
	return &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}, seen
}

func TestHTTPRemover_Remove(t *testing.T) {
	client, seen := newRemovalServer(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	})
	r := NewHTTPRemover("http://hr.test/v1/employees/remove", WithClient(client), WithToken("s3cret"))

	require.NoError(t, r.Remove(context.Background(), "E1"))

	req := <-seen
	assert.Equal(t, fasthttp.MethodPost, req.Method)
	assert.Equal(t, "/v1/employees/remove", req.Path)
	assert.Equal(t, "Bearer s3cret", req.Authorization)
	assert.Equal(t, "E1", req.Body.EmployeeID)
}

func TestHTTPRemover_GoneIsSuccess(t *testing.T) {
	client, _ := newRemovalServer(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusGone)
	})
	r := NewHTTPRemover("http://hr.test/remove", WithClient(client))
	assert.NoError(t, r.Remove(context.Background(), "E1"))
}

func TestHTTPRemover_WrongPathFails(t *testing.T) {
	client, seen := newRemovalServer(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) == "/v1/employees/remove" {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})
	r := NewHTTPRemover("http://hr.test/v1/employee/remove", WithClient(client))

	err := r.Remove(context.Background(), "E1")
	require.Error(t, err)
	assert.Equal(t, "status 404: Not Found", err.Error())
	assert.Equal(t, "/v1/employee/remove", (<-seen).Path)
}

func TestHTTPRemover_NoTokenNoHeader(t *testing.T) {
	client, seen := newRemovalServer(t, func(ctx *fasthttp.RequestCtx) {})
	r := NewHTTPRemover("http://hr.test/remove", WithClient(client))
	require.NoError(t, r.Remove(context.Background(), "E1"))
	assert.Empty(t, (<-seen).Authorization)
}

func TestHTTPRemover_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "json message", status: fasthttp.StatusConflict, body: `{"message":"employee has open payroll run"}`, wantErr: "employee has open payroll run"},
		{name: "plain body", status: fasthttp.StatusServiceUnavailable, body: "maintenance", wantErr: "status 503: maintenance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newRemovalServer(t, func(ctx *fasthttp.RequestCtx) {
				ctx.SetStatusCode(tt.status)
				ctx.SetBodyString(tt.body)
			})
			r := NewHTTPRemover("http://hr.test/remove", WithClient(client))

			err := r.Remove(context.Background(), "E1")
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestHTTPRemover_Timeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	client, _ := newRemovalServer(t, func(ctx *fasthttp.RequestCtx) { <-release })
	r := NewHTTPRemover("http://hr.test/remove", WithClient(client), WithTimeout(50*time.Millisecond))

	err := r.Remove(context.Background(), "E1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestHTTPRemover_NoEndpoint(t *testing.T) {
	assert.ErrorIs(t, NewHTTPRemover(" ").Remove(context.Background(), "E1"), ErrNoEndpoint)
}

func TestRemoverFunc(t *testing.T) {
	boom := errors.New("boom")
	var got string
	var r Remover = RemoverFunc(func(_ context.Context, id string) error {
		got = id
		return boom
	})
	assert.ErrorIs(t, r.Remove(context.Background(), "E9"), boom)
	assert.Equal(t, "E9", got)
}
