package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
	"github.com/truora/dynamite/transport"
	"github.com/truora/dynamite/types"
)

const (
	errorNamespace         = "com.amazonaws.dynamodb.v20120810#"
	validateNamespace      = "com.amazon.coral.validate#"
	unknownOperationType   = "com.amazon.coral.service#UnknownOperationException"
	serializationErrorCode = "SerializationException"
)

// Server implements http.Handler for the subset of the DynamoDB JSON API
// served from memory.
type Server struct {
	store  *Store
	logger zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Logging is disabled by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStore serves the given store instead of a fresh one.
func WithStore(store *Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// NewServer creates an HTTP handler exposing the DynamoDB-compatible API.
func NewServer(opts ...Option) *Server {
	s := &Server{logger: zerolog.Nop()}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = NewStore()
	}

	return s
}

// Store returns the engine behind the server.
func (s *Server) Store() *Store {
	return s.store
}

type handler func(ctx context.Context, s *Store, decoder *json.Decoder) (any, error)

func decodeAndRun[I any, O any](run func(*Store, context.Context, *I) (O, error)) handler {
	return func(ctx context.Context, s *Store, decoder *json.Decoder) (any, error) {
		var input I
		if err := decoder.Decode(&input); err != nil {
			return nil, &smithy.GenericAPIError{
				Code:    serializationErrorCode,
				Message: fmt.Sprintf("could not decode request: %v", err),
				Fault:   smithy.FaultClient,
			}
		}

		return run(s, ctx, &input)
	}
}

var handlers = map[string]handler{
	types.OperationCreateTable: decodeAndRun((*Store).CreateTable),
	"DescribeTable":            decodeAndRun((*Store).DescribeTable),
	"DeleteTable":              decodeAndRun((*Store).DeleteTable),
	types.OperationPutItem:     decodeAndRun((*Store).PutItem),
	types.OperationGetItem:     decodeAndRun((*Store).GetItem),
}

// ServeHTTP dispatches DynamoDB JSON API requests based on X-Amz-Target.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer func() {
		if err := r.Body.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("error closing body")
		}
	}()

	op := ""

	target := r.Header.Get("X-Amz-Target")
	if target != "" {
		parts := strings.Split(target, ".")
		op = parts[len(parts)-1]
	}

	logger := s.logger.With().Str("operation", op).Logger()

	run, ok := handlers[op]
	if !ok {
		logger.Debug().Str("target", target).Msg("unknown operation")
		writeBody(w, http.StatusBadRequest, types.ErrorBody{
			Type:    unknownOperationType,
			Message: fmt.Sprintf("unsupported operation %q", target),
		})

		return
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.UseNumber()

	resp, err := run(r.Context(), s.store, decoder)
	if err != nil {
		status, body := errorResponse(err)
		logger.Debug().Int("status", status).Str("type", body.Type).Msg(body.Message)
		writeBody(w, status, body)

		return
	}

	logger.Debug().Int("status", http.StatusOK).Msg("request served")
	writeBody(w, http.StatusOK, resp)
}

// maxBodySize matches the 16MB DynamoDB request limit.
const maxBodySize = 16 << 20

func errorResponse(err error) (int, types.ErrorBody) {
	status := http.StatusBadRequest
	code := "InternalFailure"
	msg := err.Error()

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.ErrorCode()
		msg = apiErr.ErrorMessage()
	}

	if code == "InternalFailure" || code == "InternalServerError" {
		status = http.StatusInternalServerError
	}

	namespace := errorNamespace
	if code == "ValidationException" {
		namespace = validateNamespace
	}

	return status, types.ErrorBody{Type: namespace + code, Message: msg}
}

func writeBody(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", transport.ContentType)
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(body)
}
