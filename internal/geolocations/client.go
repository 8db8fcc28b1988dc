package geolocations

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Base URLs of the hosted geo-locations service.
// The CDN mirror serves the same resources without the /api prefix.
const (
	DefaultAPIBaseURL = "https://geo-locations.com/api"
	DefaultCDNBaseURL = "https://cdn.geo-locations.com"
)

const (
	// RequestIDHeader carries a per-call id so requests can be correlated with server logs.
	RequestIDHeader = "X-Request-ID"

	// DefaultTimeout bounds a single call when no WithTimeout option is given.
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 1024
)

// Client calls the geo-locations HTTP API.
// All fields are set by New and never change, so a Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
	metrics *clientMetrics
}

type options struct {
	apiBaseURL string
	cdnBaseURL string
	override   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// Option customizes a Client.
type Option func(*options)

// WithAPIBaseURL replaces the primary API base URL.
func WithAPIBaseURL(u string) Option {
	return func(o *options) { o.apiBaseURL = u }
}

// WithCDNBaseURL replaces the CDN mirror base URL.
func WithCDNBaseURL(u string) Option {
	return func(o *options) { o.cdnBaseURL = u }
}

// WithBaseURL pins the client to u regardless of the CDN flag (e.g. a local fixture server).
func WithBaseURL(u string) Option {
	return func(o *options) { o.override = u }
}

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTimeout bounds each call. Zero or a negative value disables the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger; requests are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegisterer enables request metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// New creates a client against the CDN mirror when useCDN is set and the primary API otherwise.
func New(useCDN bool, opts ...Option) *Client {
	o := options{
		apiBaseURL: DefaultAPIBaseURL,
		cdnBaseURL: DefaultCDNBaseURL,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := o.apiBaseURL
	if useCDN {
		base = o.cdnBaseURL
	}
	if o.override != "" {
		base = o.override
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    hc,
		timeout: o.timeout,
		logger:  logger,
	}

	if o.registerer != nil {
		m, err := newClientMetrics(o.registerer)
		if err != nil {
			logger.Warn("client metrics disabled", "error", err)
		} else {
			c.metrics = m
		}
	}

	return c
}

// BaseURL returns the root every resource path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get issues GET {baseURL}{path} and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, op, path string, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	url := c.baseURL + path
	start := time.Now()

	err := c.do(ctx, op, url, out)

	c.metrics.observe(op, err, time.Since(start))
	if err != nil {
		c.logger.DebugContext(ctx, "geolocations request failed",
			"op", op,
			"url", url,
			"duration", time.Since(start),
			"error", err,
		)
		return err
	}
	c.logger.DebugContext(ctx, "geolocations request",
		"op", op,
		"url", url,
		"duration", time.Since(start),
	)
	return nil
}

func (c *Client) do(ctx context.Context, op, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Error{Kind: ErrTransport, Op: op, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: ErrTransport, Op: op, URL: url, Err: err}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{Kind: ErrStatus, Op: op, URL: url, StatusCode: resp.StatusCode, Body: string(b)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: ErrDecode, Op: op, URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) getObject(ctx context.Context, op, path string) (Object, error) {
	var obj Object
	if err := c.get(ctx, op, path, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func (c *Client) getList(ctx context.Context, op, path string) (List, error) {
	var list List
	if err := c.get(ctx, op, path, &list); err != nil {
		return nil, err
	}
	return list, nil
}
