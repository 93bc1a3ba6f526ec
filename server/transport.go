package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/truora/dynamite/transport"
)

// Transport serves requests in-process, without a listener. Credentials
// are accepted but not verified.
func (s *Server) Transport() transport.Transport {
	return transport.Func(func(ctx context.Context, target string, payload []byte, _ aws.Credentials) (*transport.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", transport.ContentType)
		req.Header.Set("X-Amz-Target", target)

		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		return &transport.Response{StatusCode: rec.Code, Body: rec.Body.Bytes()}, nil
	})
}
