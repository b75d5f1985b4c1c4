package engine

import (
	"context"
	"fmt"
	"net/http"
)

// MethodJSONP is the method used by Client.JSONP.
const MethodJSONP = "JSONP"

// Client issues requests straight into an Engine, bypassing HTTP encoding.
// Response data is returned exactly as the rule configured it.
type Client struct {
	engine *Engine
}

// Client returns a convenience client backed by the engine.
func (e *Engine) Client() *Client {
	return &Client{engine: e}
}

// Response is the answer to a Client request.
type Response struct {
	Status  int
	Data    any
	Headers map[string]string
}

// ResponseError is returned alongside the Response when the outcome is a failure.
type ResponseError struct {
	Method   string
	URL      string
	Response *Response
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Response.Status)
}

// RequestOption adjusts a request before it is issued.
type RequestOption func(*RawRequest)

// WithParams attaches client-side parameters to the request.
func WithParams(params map[string]any) RequestOption {
	return func(r *RawRequest) {
		r.Params = params
	}
}

// WithHeader sets a request header.
func WithHeader(name, value string) RequestOption {
	return func(r *RawRequest) {
		if r.Headers == nil {
			r.Headers = http.Header{}
		}
		r.Headers.Set(name, value)
	}
}

// Do issues a request. Unmatched requests return a nil Response and an
// *UnmatchedRequestError; failure outcomes return both the Response and a
// *ResponseError.
func (c *Client) Do(ctx context.Context, req RawRequest) (*Response, error) {
	out, err := c.engine.Intercept(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := &Response{Status: out.Status, Data: out.Data, Headers: out.Headers}
	if out.Failure() {
		method := req.Method
		if method == "" {
			method = http.MethodGet
		}
		return resp, &ResponseError{Method: method, URL: req.URL, Response: resp}
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, method, url string, data any, opts []RequestOption) (*Response, error) {
	req := RawRequest{Method: method, URL: url, Data: data}
	for _, opt := range opts {
		opt(&req)
	}
	return c.Do(ctx, req)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodGet, url, nil, opts)
}

// Head issues a HEAD request.
func (c *Client) Head(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodHead, url, nil, opts)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodDelete, url, nil, opts)
}

// JSONP issues a request with method JSONP.
func (c *Client) JSONP(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, MethodJSONP, url, nil, opts)
}

// Post issues a POST request carrying data.
func (c *Client) Post(ctx context.Context, url string, data any, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodPost, url, data, opts)
}

// Put issues a PUT request carrying data.
func (c *Client) Put(ctx context.Context, url string, data any, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodPut, url, data, opts)
}

// Patch issues a PATCH request carrying data.
func (c *Client) Patch(ctx context.Context, url string, data any, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodPatch, url, data, opts)
}
