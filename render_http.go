package wikihtml

import (
	"context"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
)

// HTTPRenderRequest configures HTTPRender.
type HTTPRenderRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Options []RenderOption
}

// HTTPRender fetches wiki markup over HTTP(S) and writes the rendered HTML.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) error {
	if req.URL == "" {
		return errors.New("http render: URL is required")
	}
	if req.Writer == nil {
		return errors.New("http render: Writer is nil")
	}
	body, err := Fetch(ctx, req.Client, req.URL)
	if err != nil {
		return errors.Wrap(err, "http render")
	}
	defer body.Close()
	return Convert(RenderRequest{
		Reader:  body,
		Writer:  req.Writer,
		Options: req.Options,
	})
}

// Fetch GETs rawURL and returns the body of a 2xx response. Only http and
// https URLs are accepted. A nil client uses http.DefaultClient and a nil
// ctx uses context.Background.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (io.ReadCloser, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return nil, errors.Newf("unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "request")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, errors.Newf("%s: status %s", rawURL, resp.Status)
	}
	return resp.Body, nil
}
