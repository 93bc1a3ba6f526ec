package server

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FailureCondition describe the failure condition to emulate.
type FailureCondition string

const (
	// FailureConditionNone emulates the system working normally.
	FailureConditionNone FailureCondition = "none"
	// FailureConditionInternalServerError emulates DynamoDB internal error.
	FailureConditionInternalServerError FailureCondition = "internal_server"
	// FailureConditionThrottling emulates an exhausted provisioned throughput.
	FailureConditionThrottling FailureCondition = "throttling"
)

// ErrNotInitialized is returned by the helpers of a nil server.
var ErrNotInitialized = errors.New("server not initialized")

var emulatingErrors = map[FailureCondition]error{
	FailureConditionNone:                nil,
	FailureConditionInternalServerError: &ddbtypes.InternalServerError{Message: aws.String("emulated error")},
	FailureConditionThrottling: &ddbtypes.ProvisionedThroughputExceededException{
		Message: aws.String("emulated throttling"),
	},
}

// EmulateFailure forces item operations to fail until called again with
// FailureConditionNone.
func (s *Server) EmulateFailure(condition FailureCondition) {
	if s == nil || s.store == nil {
		return
	}

	s.store.setFailureCondition(emulatingErrors[condition])
}

// ClearTable removes all items from a table.
func (s *Server) ClearTable(tableName string) error {
	if s == nil || s.store == nil {
		return ErrNotInitialized
	}

	return s.store.ClearTable(tableName)
}

// Reset removes all tables.
func (s *Server) Reset() error {
	if s == nil || s.store == nil {
		return ErrNotInitialized
	}

	s.store.Reset()

	return nil
}
