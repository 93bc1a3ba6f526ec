// Package transport dispatches signed DynamoDB JSON-protocol requests.
package transport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

const (
	// ContentType is the media type of every DynamoDB JSON request.
	ContentType = "application/x-amz-json-1.0"
	// SigningName is the service name used in SigV4 scopes.
	SigningName = "dynamodb"
)

// Response is the raw outcome of a dispatched request.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport sends a payload for an operation target and returns the status
// and body. It fails only for transport-level problems (network, signing);
// non-2xx statuses are returned as responses.
type Transport interface {
	Dispatch(ctx context.Context, target string, payload []byte, creds aws.Credentials) (*Response, error)
}

// Func adapts a function to the Transport interface.
type Func func(ctx context.Context, target string, payload []byte, creds aws.Credentials) (*Response, error)

// Dispatch calls f.
func (f Func) Dispatch(ctx context.Context, target string, payload []byte, creds aws.Credentials) (*Response, error) {
	return f(ctx, target, payload, creds)
}

// HTTP is a Transport posting SigV4-signed requests to an endpoint.
type HTTP struct {
	endpoint string
	region   string
	client   *http.Client
	signer   *v4.Signer
	now      func() time.Time
}

// HTTPOption configures an HTTP transport.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = client
	}
}

// WithClock sets the signing time source.
func WithClock(now func() time.Time) HTTPOption {
	return func(h *HTTP) {
		h.now = now
	}
}

// DefaultEndpoint returns the public regional endpoint.
func DefaultEndpoint(region string) string {
	return fmt.Sprintf("https://dynamodb.%s.amazonaws.com/", region)
}

// NewHTTP returns a transport for endpoint; an empty endpoint resolves to
// the regional default.
func NewHTTP(endpoint, region string, opts ...HTTPOption) *HTTP {
	if endpoint == "" {
		endpoint = DefaultEndpoint(region)
	}

	h := &HTTP{
		endpoint: endpoint,
		region:   region,
		client:   http.DefaultClient,
		signer:   v4.NewSigner(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Endpoint returns the URL requests are posted to.
func (h *HTTP) Endpoint() string {
	return h.endpoint
}

// Dispatch signs and posts the payload.
func (h *HTTP) Dispatch(ctx context.Context, target string, payload []byte, creds aws.Credentials) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("X-Amz-Target", target)

	sum := sha256.Sum256(payload)

	if err := h.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), SigningName, h.region, h.now().UTC()); err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

var _ Transport = (*HTTP)(nil)
