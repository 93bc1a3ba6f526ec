package dynamite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/truora/dynamite/transport"
	"github.com/truora/dynamite/types"
)

// RequestState is the lifecycle position of a request.
type RequestState int

// Request states. A request ends in exactly one of the last four.
const (
	StateBuilt RequestState = iota
	StateDispatched
	StateSucceeded
	StateConditionFailed
	StateProtocolError
	StateTransportError
)

var stateNames = map[RequestState]string{
	StateBuilt:           "built",
	StateDispatched:      "dispatched",
	StateSucceeded:       "succeeded",
	StateConditionFailed: "condition_failed",
	StateProtocolError:   "protocol_error",
	StateTransportError:  "transport_error",
}

func (s RequestState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "unknown"
}

// StateOf maps the outcome of Execute to its final state.
func StateOf(err error) RequestState {
	var (
		condErr      *types.ConditionFailedError
		transportErr *types.TransportError
	)

	switch {
	case err == nil:
		return StateSucceeded
	case errors.As(err, &condErr):
		return StateConditionFailed
	case errors.As(err, &transportErr):
		return StateTransportError
	}

	return StateProtocolError
}

// IsConditionFailed reports whether err is a rejected conditional write.
func IsConditionFailed(err error) bool {
	var condErr *types.ConditionFailedError
	return errors.As(err, &condErr)
}

// send dispatches payload and classifies the response. The body of a
// successful response is returned for decoding.
func (t Table) send(ctx context.Context, operation string, payload []byte) ([]byte, error) {
	logger := t.db.logger.With().Str("table", t.name).Str("operation", operation).Logger()

	creds, err := t.db.Credentials()
	if err != nil {
		logger.Debug().Stringer("state", StateBuilt).Err(err).Msg("request not dispatched")
		return nil, err
	}

	logger.Debug().Stringer("state", StateDispatched).Int("payload_bytes", len(payload)).Msg("dispatching request")

	resp, err := t.db.transport.Dispatch(ctx, types.Target(t.db.serviceVersion, operation), payload, creds)
	if err != nil {
		err = &types.TransportError{Err: err}
		logger.Debug().Stringer("state", StateTransportError).Err(err).Msg("request failed")

		return nil, err
	}

	err = classify(resp)
	logger.Debug().Stringer("state", StateOf(err)).Int("status", resp.StatusCode).Err(err).Msg("request completed")

	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// classify turns a non-OK response into a typed error.
func classify(resp *transport.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		var body types.ErrorBody
		if err := json.Unmarshal(resp.Body, &body); err != nil {
			return &types.DecodingError{Reason: "invalid error response body", Err: err}
		}

		if body.Type == types.ConditionalCheckFailedType {
			return &types.ConditionFailedError{Msg: body.Message}
		}

		return &types.UnrecognizedServerError{Type: body.Type, Msg: body.Message}
	}

	return &types.UnrecognizedStatusError{Status: resp.StatusCode, Body: resp.Body}
}
