package types

import (
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// Error codes reported by the codec and the request layer.
const (
	ErrCodeNoCredentials           = "NoCredentials"
	ErrCodeEncoding                = "EncodingError"
	ErrCodeDecoding                = "DecodingError"
	ErrCodeProtocol                = "ProtocolError"
	ErrCodeConditionFailed         = "ConditionFailed"
	ErrCodeTransport               = "TransportError"
	ErrCodeUnrecognizedServerError = "UnrecognizedServerError"
	ErrCodeUnrecognizedStatus      = "UnrecognizedStatus"
)

// ConditionalCheckFailedType is the reserved error type the store returns
// when a conditional write is rejected.
const ConditionalCheckFailedType = "com.amazonaws.dynamodb.v20120810#ConditionalCheckFailedException"

// An Error wraps lower level errors with code, message and an original error.
// The underlying concrete error type may also satisfy other interfaces which
// can be to used to obtain more specific information about the error.
type Error interface {
	error

	Code() string
	Message() string
	OrigErr() error
}

// A RequestFailure is an Error carrying the HTTP status code of the
// response that produced it.
type RequestFailure interface {
	Error
	StatusCode() int
}

// ErrNoCredentials is returned when a request is executed before any
// credentials were configured.
var ErrNoCredentials Error = NewError(ErrCodeNoCredentials, "no credentials configured", nil)

// NewError returns an Error object described by the code, message, and origErr.
func NewError(code, message string, origErr error) Error {
	return &baseError{code: code, message: message, origErr: origErr}
}

// SprintError returns a string of the formatted error code.
func SprintError(code, message, extra string, origErr error) string {
	msg := fmt.Sprintf("%s: %s", code, message)
	if extra != "" {
		msg = fmt.Sprintf("%s\n\t%s", msg, extra)
	}

	if origErr != nil {
		msg = fmt.Sprintf("%s\ncaused by: %s", msg, origErr.Error())
	}

	return msg
}

// A baseError wraps the code and message which defines an error. It also
// can be used to wrap an original error object.
type baseError struct {
	code    string
	message string
	origErr error
}

func (b *baseError) Error() string {
	return SprintError(b.code, b.message, "", b.origErr)
}

// Code returns the short phrase depicting the classification of the error.
func (b *baseError) Code() string { return b.code }

// Message returns the error details message.
func (b *baseError) Message() string { return b.message }

// OrigErr returns the original error if one was set.
func (b *baseError) OrigErr() error { return b.origErr }

// Unwrap exposes the original error to errors.Is and errors.As.
func (b *baseError) Unwrap() error { return b.origErr }

// ProtocolError reports wire data that violates the tagged-attribute
// contract, or a value of the wrong shape handed to the codec.
type ProtocolError struct {
	// Path locates the offending attribute, e.g. `M.profile.L[2]`.
	Path   string
	Reason string
}

// NewProtocolError returns a ProtocolError at the given path.
func NewProtocolError(path, format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

func (e *ProtocolError) Error() string {
	return SprintError(e.Code(), e.Message(), "", nil)
}

// Code returns ErrCodeProtocol.
func (e *ProtocolError) Code() string { return ErrCodeProtocol }

// Message returns the reason prefixed with the attribute path, if any.
func (e *ProtocolError) Message() string {
	if e.Path == "" {
		return e.Reason
	}

	return e.Path + ": " + e.Reason
}

// OrigErr always returns nil.
func (e *ProtocolError) OrigErr() error { return nil }

// At returns a copy of the error with parent prepended to its path.
func (e *ProtocolError) At(parent string) *ProtocolError {
	path := parent
	if e.Path != "" {
		if strings.HasPrefix(e.Path, "[") {
			path += e.Path
		} else {
			path += "." + e.Path
		}
	}

	return &ProtocolError{Path: path, Reason: e.Reason}
}

// EncodingError reports an application value that could not be serialized
// to the plain structured form.
type EncodingError struct {
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	return SprintError(e.Code(), e.Reason, "", e.Err)
}

// Code returns ErrCodeEncoding.
func (e *EncodingError) Code() string { return ErrCodeEncoding }

// Message returns the failure reason.
func (e *EncodingError) Message() string { return e.Reason }

// OrigErr returns the serializer error, if any.
func (e *EncodingError) OrigErr() error { return e.Err }

// Unwrap returns the serializer error, if any.
func (e *EncodingError) Unwrap() error { return e.Err }

// DecodingError reports a response or plain value that could not be
// converted into the requested shape.
type DecodingError struct {
	Reason string
	Err    error
}

func (e *DecodingError) Error() string {
	return SprintError(e.Code(), e.Reason, "", e.Err)
}

// Code returns ErrCodeDecoding.
func (e *DecodingError) Code() string { return ErrCodeDecoding }

// Message returns the failure reason.
func (e *DecodingError) Message() string { return e.Reason }

// OrigErr returns the deserializer error, if any.
func (e *DecodingError) OrigErr() error { return e.Err }

// Unwrap returns the deserializer error, if any.
func (e *DecodingError) Unwrap() error { return e.Err }

// TransportError wraps a failure reported by the transport collaborator
// (network, signing, TLS).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return SprintError(e.Code(), "request could not be dispatched", "", e.Err)
}

// Code returns ErrCodeTransport.
func (e *TransportError) Code() string { return ErrCodeTransport }

// Message returns a fixed description.
func (e *TransportError) Message() string { return "request could not be dispatched" }

// OrigErr returns the transport failure.
func (e *TransportError) OrigErr() error { return e.Err }

// Unwrap returns the transport failure.
func (e *TransportError) Unwrap() error { return e.Err }

// ConditionFailedError is returned when the server rejects a conditional
// write.
type ConditionFailedError struct {
	Msg string
}

func (e *ConditionFailedError) Error() string {
	return SprintError(e.Code(), e.Message(), "", nil)
}

// Code returns ErrCodeConditionFailed.
func (e *ConditionFailedError) Code() string { return ErrCodeConditionFailed }

// Message returns the server message or a default one.
func (e *ConditionFailedError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}

	return "the conditional request failed"
}

// OrigErr always returns nil.
func (e *ConditionFailedError) OrigErr() error { return nil }

// StatusCode is always 400.
func (e *ConditionFailedError) StatusCode() int { return 400 }

// ErrorCode satisfies smithy.APIError.
func (e *ConditionFailedError) ErrorCode() string { return "ConditionalCheckFailedException" }

// ErrorMessage satisfies smithy.APIError.
func (e *ConditionFailedError) ErrorMessage() string { return e.Message() }

// ErrorFault satisfies smithy.APIError.
func (e *ConditionFailedError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

// UnrecognizedServerError carries a Bad Request error type this layer does
// not interpret.
type UnrecognizedServerError struct {
	Type string
	Msg  string
}

func (e *UnrecognizedServerError) Error() string {
	return SprintError(e.Code(), e.Message(), "", nil)
}

// Code returns ErrCodeUnrecognizedServerError.
func (e *UnrecognizedServerError) Code() string { return ErrCodeUnrecognizedServerError }

// Message includes the raw error type string.
func (e *UnrecognizedServerError) Message() string {
	if e.Msg == "" {
		return e.Type
	}

	return fmt.Sprintf("%s: %s", e.Type, e.Msg)
}

// OrigErr always returns nil.
func (e *UnrecognizedServerError) OrigErr() error { return nil }

// StatusCode is always 400.
func (e *UnrecognizedServerError) StatusCode() int { return 400 }

// ErrorCode returns the exception name, without its namespace.
func (e *UnrecognizedServerError) ErrorCode() string {
	if i := strings.LastIndex(e.Type, "#"); i >= 0 {
		return e.Type[i+1:]
	}

	return e.Type
}

// ErrorMessage satisfies smithy.APIError.
func (e *UnrecognizedServerError) ErrorMessage() string { return e.Msg }

// ErrorFault satisfies smithy.APIError.
func (e *UnrecognizedServerError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

// UnrecognizedStatusError is returned for any response status other than
// OK or Bad Request.
type UnrecognizedStatusError struct {
	Status int
	Body   []byte
}

func (e *UnrecognizedStatusError) Error() string {
	return SprintError(e.Code(), e.Message(), "", nil)
}

// Code returns ErrCodeUnrecognizedStatus.
func (e *UnrecognizedStatusError) Code() string { return ErrCodeUnrecognizedStatus }

// Message describes the status code.
func (e *UnrecognizedStatusError) Message() string {
	return fmt.Sprintf("unexpected response status %d", e.Status)
}

// OrigErr always returns nil.
func (e *UnrecognizedStatusError) OrigErr() error { return nil }

// StatusCode returns the response status.
func (e *UnrecognizedStatusError) StatusCode() int { return e.Status }

var (
	_ Error           = (*ProtocolError)(nil)
	_ Error           = (*EncodingError)(nil)
	_ Error           = (*DecodingError)(nil)
	_ Error           = (*TransportError)(nil)
	_ RequestFailure  = (*ConditionFailedError)(nil)
	_ RequestFailure  = (*UnrecognizedServerError)(nil)
	_ RequestFailure  = (*UnrecognizedStatusError)(nil)
	_ smithy.APIError = (*ConditionFailedError)(nil)
	_ smithy.APIError = (*UnrecognizedServerError)(nil)
)
