package crptapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	contentTypeHeader = "Content-type"
	signatureHeader   = "Signature"
	contentTypeJSON   = "application/json"

	// maxResponseBody bounds how much of a response body is read
	maxResponseBody = 4 << 20

	defaultHTTPTimeout = 30 * time.Second
)

// Request is one outbound document submission
type Request struct {
	URL         string
	ContentType string
	Signature   string
	Body        []byte
}

// Response is what the registry answered
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the registry answered with a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport performs the HTTP exchange with the registry
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport sends requests with an *http.Client
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps client; a nil client gets a default with a 30s timeout
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPTransport{client: client}
}

func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, NewTransportError(req.URL, err)
	}
	httpReq.Header.Set(contentTypeHeader, req.ContentType)
	httpReq.Header.Set(signatureHeader, req.Signature)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, NewTransportError(req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return nil, NewTransportError(req.URL, fmt.Errorf("failed to read response body: %w", err))
	}
	if len(body) > maxResponseBody {
		return nil, NewTransportError(req.URL, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseBody))
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
