package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/getmockd/httpmock/internal/canonical"
)

// Transport is an http.RoundTripper answering every request from an Engine.
// It never touches the network.
type Transport struct {
	engine *Engine
}

// Transport returns an http.RoundTripper backed by the engine.
func (e *Engine) Transport() http.RoundTripper {
	return &Transport{engine: e}
}

// HTTPClient returns an *http.Client whose transport is the engine.
func (e *Engine) HTTPClient() *http.Client {
	return &http.Client{Transport: e.Transport()}
}

// RoundTrip implements http.RoundTripper. The URL query feeds the
// queryString constraint; the body is decoded as JSON when valid and
// passed as a string otherwise. Failure outcomes are ordinary responses;
// an unmatched request returns an *UnmatchedRequestError.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
	}

	out, err := t.engine.Intercept(req.Context(), RawRequest{
		Method:  req.Method,
		URL:     req.URL.String(),
		Data:    canonical.DecodeBody(body),
		Headers: req.Header.Clone(),
	})
	if err != nil {
		return nil, err
	}
	return newResponse(req, out)
}

// newResponse builds an *http.Response from an outcome. Strings are sent as
// text, byte slices verbatim, nil as an empty body and anything else as JSON.
// A Content-Type declared by the rule wins over the inferred one.
func newResponse(req *http.Request, out Outcome) (*http.Response, error) {
	header := make(http.Header, len(out.Headers)+1)
	for k, v := range out.Headers {
		header.Set(k, v)
	}

	var payload []byte
	contentType := ""
	switch d := out.Data.(type) {
	case nil:
	case string:
		payload = []byte(d)
		contentType = "text/plain; charset=utf-8"
	case []byte:
		payload = d
		contentType = "application/octet-stream"
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("encoding response data: %w", err)
		}
		payload = b
		contentType = "application/json"
	}
	if contentType != "" && header.Get("Content-Type") == "" {
		header.Set("Content-Type", contentType)
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", out.Status, http.StatusText(out.Status)),
		StatusCode:    out.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
		Request:       req,
	}, nil
}
