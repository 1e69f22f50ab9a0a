package httpclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestStatusError(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{name: "message field", code: 413, body: `{"message":"File exceeds the 10 MB limit"}`, want: "File exceeds the 10 MB limit"},
		{name: "error field", code: 403, body: `{"error":"permission denied"}`, want: "permission denied"},
		{name: "message wins over error", code: 400, body: `{"message":"bad name","error":"invalid"}`, want: "bad name"},
		{name: "plain text body", code: 500, body: "boom\n", want: "status 500: boom"},
		{name: "empty body", code: 502, body: "", want: "status 502: Bad Gateway"},
		{name: "json without known fields", code: 500, body: `{"detail":"x"}`, want: `status 500: {"detail":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp fasthttp.Response
			resp.SetStatusCode(tt.code)
			resp.SetBodyString(tt.body)

			err := StatusError(&resp)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(200))
	assert.True(t, IsSuccess(204))
	assert.False(t, IsSuccess(199))
	assert.False(t, IsSuccess(300))
	assert.False(t, IsSuccess(404))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://blob.test/E1/doc.pdf", JoinURL("https://blob.test/", "/E1/doc.pdf"))
	assert.Equal(t, "https://blob.test/E1/doc.pdf", JoinURL("https://blob.test", "E1/doc.pdf"))
}

func TestDo_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)
	req.SetRequestURI("http://127.0.0.1:1/")

	err := Do(ctx, &fasthttp.Client{}, req, resp, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
