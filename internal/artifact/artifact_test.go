package artifact

import (
	"context"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"offboard/internal/record"
)

// capturedRequest is what the test blob service saw.
type capturedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

// newBlobServer runs handler on an in-memory listener and returns a client
// dialing it plus a function returning the last captured request.
func newBlobServer(t *testing.T, handler fasthttp.RequestHandler) (*fasthttp.Client, func() capturedRequest) {
	t.Helper()

	var (
		mu   sync.Mutex
		last capturedRequest
	)
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		mu.Lock()
		last = capturedRequest{
			Method:      string(ctx.Method()),
			Path:        string(ctx.Path()),
			ContentType: string(ctx.Request.Header.ContentType()),
			Body:        string(ctx.PostBody()),
		}
		mu.Unlock()
		handler(ctx)
	}}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { ln.Close() })

	client := &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
	return client, func() capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func pdf(content string) File {
	return File{Name: "letter.pdf", ContentType: "application/pdf", Data: []byte(content)}
}

func TestDestinationPath(t *testing.T) {
	p := DestinationPath("E1", record.SlotResignation, "letter.pdf")
	assert.True(t, strings.HasPrefix(p, "E1/resignation/"), p)
	assert.True(t, strings.HasSuffix(p, "-letter.pdf"), p)

	other := DestinationPath("E1", record.SlotResignation, "letter.pdf")
	assert.NotEqual(t, p, other, "every upload gets a distinct path")
}

func TestDestinationPath_SanitizesName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		suffix   string
	}{
		{name: "windows path", fileName: `C:\docs\my letter.pdf`, suffix: "-my_letter.pdf"},
		{name: "unix path", fileName: "/home/hr/final pay.pdf", suffix: "-final_pay.pdf"},
		{name: "empty", fileName: "", suffix: "-document"},
		{name: "parent", fileName: "..", suffix: "-document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DestinationPath("E1", record.SlotFinalPay, tt.fileName)
			assert.True(t, strings.HasSuffix(p, tt.suffix), p)
			assert.True(t, strings.HasPrefix(p, "E1/finalPay/"), p)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "letter.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	f, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "letter.pdf", f.Name)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), f.Data)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = ReadFile(empty)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = ReadFile(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)
}

func TestDirStore_Upload(t *testing.T) {
	root := t.TempDir()
	s := NewDirStore(root, nil)

	got, err := s.Upload(context.Background(), pdf("resigning"), "E1/resignation/abc-letter.pdf")
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "file", u.Scheme)

	data, err := os.ReadFile(filepath.FromSlash(u.Path))
	require.NoError(t, err)
	assert.Equal(t, "resigning", string(data))
	assert.FileExists(t, filepath.Join(root, "E1", "resignation", "abc-letter.pdf"))
}

func TestDirStore_RejectsBadInput(t *testing.T) {
	s := NewDirStore(t.TempDir(), nil)
	ctx := context.Background()

	_, err := s.Upload(ctx, File{Name: "x"}, "E1/resignation/x")
	assert.ErrorIs(t, err, ErrEmptyFile)

	for _, dest := range []string{"../escape.pdf", "/abs/path.pdf", "."} {
		_, err := s.Upload(ctx, pdf("x"), dest)
		assert.Error(t, err, dest)
	}

	_, err = s.Upload(ctx, pdf("x"), "E1/resignation/same.pdf")
	require.NoError(t, err)
	_, err = s.Upload(ctx, pdf("y"), "E1/resignation/same.pdf")
	assert.Error(t, err, "existing blobs are never overwritten")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Upload(canceled, pdf("x"), "E1/resignation/late.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPStore_Upload(t *testing.T) {
	client, last := newBlobServer(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"url":"https://cdn.example.com/E1/resignation/abc-letter.pdf"}`)
	})
	s := NewHTTPStore("http://blob.test/hr/", WithClient(client))

	got, err := s.Upload(context.Background(), pdf("resigning"), "E1/resignation/abc-letter.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/E1/resignation/abc-letter.pdf", got)

	req := last()
	assert.Equal(t, fasthttp.MethodPut, req.Method)
	assert.Equal(t, "/hr/E1/resignation/abc-letter.pdf", req.Path)
	assert.Equal(t, "application/pdf", req.ContentType)
	assert.Equal(t, "resigning", req.Body)
}

func TestHTTPStore_EmptyBodyUsesRequestURL(t *testing.T) {
	client, _ := newBlobServer(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusCreated)
	})
	s := NewHTTPStore("http://blob.test/hr", WithClient(client))

	got, err := s.Upload(context.Background(), pdf("x"), "E1/finalPay/abc-pay.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://blob.test/hr/E1/finalPay/abc-pay.pdf", got)
}

func TestHTTPStore_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "service message", status: fasthttp.StatusRequestEntityTooLarge, body: `{"message":"File exceeds the 10 MB limit"}`, wantErr: "File exceeds the 10 MB limit"},
		{name: "error field", status: fasthttp.StatusForbidden, body: `{"error":"bucket is read-only"}`, wantErr: "bucket is read-only"},
		{name: "plain text", status: fasthttp.StatusInternalServerError, body: "boom", wantErr: "status 500: boom"},
		{name: "no body", status: fasthttp.StatusBadGateway, wantErr: "status 502: Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newBlobServer(t, func(ctx *fasthttp.RequestCtx) {
				ctx.SetStatusCode(tt.status)
				ctx.SetBodyString(tt.body)
			})
			s := NewHTTPStore("http://blob.test", WithClient(client))

			_, err := s.Upload(context.Background(), pdf("x"), "E1/resignation/a.pdf")
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestHTTPStore_Timeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	client, _ := newBlobServer(t, func(ctx *fasthttp.RequestCtx) {
		<-release
	})
	s := NewHTTPStore("http://blob.test", WithClient(client), WithTimeout(50*time.Millisecond))

	_, err := s.Upload(context.Background(), pdf("x"), "E1/resignation/a.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestHTTPStore_RejectsEmptyFile(t *testing.T) {
	s := NewHTTPStore("http://blob.test")
	_, err := s.Upload(context.Background(), File{Name: "empty.pdf"}, "E1/resignation/a.pdf")
	assert.ErrorIs(t, err, ErrEmptyFile)
}
