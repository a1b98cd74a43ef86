package net

import (
	"time"

	"github.com/valyala/fasthttp"
)

// Responses are read up to this many bytes; the classification markers all
// appear near the top of S3 XML bodies.
const maxBodyBytes = 4096

const userAgent = "Mozilla/5.0 (compatible; s3regions)"

const maxRedirects = 3

// Client wraps fasthttp with the fixed per-call timeout the probes run under.
type Client struct {
	client  *fasthttp.Client
	timeout time.Duration
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: &fasthttp.Client{
			MaxConnsPerHost:          512,
			ReadTimeout:              timeout,
			WriteTimeout:             timeout,
			NoDefaultUserAgentHeader: true,
		},
		timeout: timeout,
	}
}

// Get fetches a URL and returns the status and the first maxBodyBytes of the
// body. followRedirects must stay false for storage-service hosts: a
// redirect there signals a region mismatch, not absence. The whole call,
// redirect hops included, runs under the one per-call timeout.
func (c *Client) Get(url string, followRedirects bool) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(userAgent)

	deadline := time.Now().Add(c.timeout)
	for redirects := 0; ; redirects++ {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return 0, nil, err
		}
		if !followRedirects || !fasthttp.StatusCodeIsRedirect(resp.StatusCode()) {
			break
		}
		if redirects == maxRedirects {
			return 0, nil, fasthttp.ErrTooManyRedirects
		}
		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if len(location) == 0 {
			return 0, nil, fasthttp.ErrMissingLocation
		}
		req.URI().UpdateBytes(location)
		resp.Reset()
	}

	// Copy before release recycles the buffer.
	body := resp.Body()
	if len(body) > maxBodyBytes {
		body = body[:maxBodyBytes]
	}
	out := make([]byte, len(body))
	copy(out, body)

	return resp.StatusCode(), out, nil
}

// Put uploads a payload and returns the response status.
func (c *Client) Put(url string, payload []byte) (int, error) {
	return c.send(fasthttp.MethodPut, url, payload)
}

// Delete issues a DELETE and returns the response status.
func (c *Client) Delete(url string) (int, error) {
	return c.send(fasthttp.MethodDelete, url, nil)
}

func (c *Client) send(method, url string, payload []byte) (int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.SetUserAgent(userAgent)
	if payload != nil {
		req.SetBody(payload)
	}

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

// CloseIdle releases pooled connections. Safe to call more than once.
func (c *Client) CloseIdle() {
	c.client.CloseIdleConnections()
}
