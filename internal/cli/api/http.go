package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Значения по умолчанию, которые получает каждый запрос.
const (
	DefaultMode           = "cors"
	DefaultReferrerPolicy = "no-referrer"
	ContentTypeJSON       = "application/json"
)

// RequestOptions — переопределения для конкретного вызова. Пустые поля берутся из дефолтов.
type RequestOptions struct {
	Method         string
	Body           any // сериализуется в JSON; nil — без тела
	Headers        map[string]string
	Mode           string
	ReferrerPolicy string
}

// Requester строит запросы к baseURL с дефолтными заголовками, CORS-режимом и политикой referrer.
type Requester struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

// Option настраивает Requester.
type Option func(*Requester)

// WithHTTPClient подменяет http.Client (по умолчанию http.DefaultClient).
func WithHTTPClient(c *http.Client) Option {
	return func(r *Requester) {
		if c != nil {
			r.client = c
		}
	}
}

// WithHeader добавляет заголовок ко всем запросам.
func WithHeader(key, value string) Option {
	return func(r *Requester) { r.headers[key] = value }
}

// NewRequester создаёт helper для baseURL (завершающий "/" отбрасывается).
func NewRequester(baseURL string, opts ...Option) *Requester {
	r := &Requester{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		headers: map[string]string{"Content-Type": ContentTypeJSON},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// BaseURL returns the normalized base URL.
func (r *Requester) BaseURL() string { return r.baseURL }

// Do sends a request to baseURL+path and returns the response with its body fully read.
// Non-2xx statuses are not errors: the caller inspects resp.StatusCode.
func (r *Requester) Do(ctx context.Context, path string, opts RequestOptions) (*http.Response, []byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return nil, nil, err
	}

	// дефолты, затем заголовки вызова
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	mode := opts.Mode
	if mode == "" {
		mode = DefaultMode
	}
	req.Header.Set("Sec-Fetch-Mode", mode)

	policy := opts.ReferrerPolicy
	if policy == "" {
		policy = DefaultReferrerPolicy
	}
	client := r.client
	if policy == DefaultReferrerPolicy {
		req.Header.Del("Referer")
		client = withoutReferrer(client)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp, respBody, nil
}

// PostJSON sends payload as a JSON POST to path.
func (r *Requester) PostJSON(ctx context.Context, path string, payload any) (*http.Response, []byte, error) {
	return r.Do(ctx, path, RequestOptions{Method: http.MethodPost, Body: payload})
}

// Get sends a GET to path.
func (r *Requester) Get(ctx context.Context, path string) (*http.Response, []byte, error) {
	return r.Do(ctx, path, RequestOptions{Method: http.MethodGet})
}

// withoutReferrer возвращает копию клиента, которая не проставляет Referer при редиректах.
func withoutReferrer(c *http.Client) *http.Client {
	cp := *c
	next := c.CheckRedirect
	cp.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		req.Header.Del("Referer")
		if next != nil {
			return next(req, via)
		}
		if len(via) >= 10 {
			return fmt.Errorf("stopped after 10 redirects")
		}
		return nil
	}
	return &cp
}
