package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/truora/dynamite/attribute"
	"github.com/truora/dynamite/internal/expr"
	"github.com/truora/dynamite/types"
)

// table holds the items of one table, indexed by the encoded primary key.
type table struct {
	name      string
	keySchema keySchema
	attrTypes map[string]string
	items     map[string]attribute.Map
}

func (t *table) description() types.TableDescription {
	return types.TableDescription{
		TableName:   t.name,
		KeySchema:   t.keySchema.describe(),
		TableStatus: "ACTIVE",
		ItemCount:   int64(len(t.items)),
	}
}

// Store is the in-memory engine behind Server.
type Store struct {
	mu              sync.Mutex
	tables          map[string]*table
	matchers        map[string]MatcherFunc
	forceFailureErr error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{tables: map[string]*table{}, matchers: map[string]MatcherFunc{}}
}

func (s *Store) setFailureCondition(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forceFailureErr = err
}

// Table helpers
func (s *Store) getTable(tableName string) (*table, error) {
	t, ok := s.tables[tableName]
	if !ok {
		return nil, &ddbtypes.ResourceNotFoundException{Message: aws.String("Cannot do operations on a non-existent table")}
	}

	return t, nil
}

// CreateTable creates a table from its key schema.
func (s *Store) CreateTable(_ context.Context, input *types.CreateTableInput) (*types.CreateTableOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.TableName == "" {
		return nil, validationError("TableName must be provided")
	}

	if _, ok := s.tables[input.TableName]; ok {
		return nil, &ddbtypes.ResourceInUseException{Message: aws.String("Cannot create preexisting table")}
	}

	t := &table{
		name:      input.TableName,
		attrTypes: map[string]string{},
		items:     map[string]attribute.Map{},
	}

	for _, def := range input.AttributeDefinitions {
		t.attrTypes[def.AttributeName] = def.AttributeType
	}

	for _, elem := range input.KeySchema {
		if _, ok := t.attrTypes[elem.AttributeName]; !ok {
			return nil, validationError("One or more parameter values were invalid: Some index key attributes are not defined in AttributeDefinitions. Keys: [%s]", elem.AttributeName)
		}

		switch elem.KeyType {
		case keyTypeHash:
			t.keySchema.HashKey = elem.AttributeName
		case keyTypeRange:
			t.keySchema.RangeKey = elem.AttributeName
		default:
			return nil, validationError("invalid KeyType %q", elem.KeyType)
		}
	}

	if t.keySchema.HashKey == "" {
		return nil, validationError("KeySchema must contain a HASH key")
	}

	s.tables[input.TableName] = t

	return &types.CreateTableOutput{TableDescription: t.description()}, nil
}

// DescribeTable returns table metadata.
func (s *Store) DescribeTable(_ context.Context, input *DescribeTableInput) (*DescribeTableOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.getTable(input.TableName)
	if err != nil {
		return nil, err
	}

	return &DescribeTableOutput{Table: t.description()}, nil
}

// DeleteTable removes a table and its data.
func (s *Store) DeleteTable(_ context.Context, input *DeleteTableInput) (*DeleteTableOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.getTable(input.TableName)
	if err != nil {
		return nil, err
	}

	delete(s.tables, input.TableName)

	return &DeleteTableOutput{TableDescription: t.description()}, nil
}

// ClearTable removes all items of a table.
func (s *Store) ClearTable(tableName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.getTable(tableName)
	if err != nil {
		return err
	}

	t.items = map[string]attribute.Map{}

	return nil
}

// Reset removes all tables.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables = map[string]*table{}
	s.matchers = map[string]MatcherFunc{}
}

// PutItem inserts or replaces an item, evaluating the condition against the
// item currently stored under the same key.
func (s *Store) PutItem(_ context.Context, input *types.PutItemInput) (*PutItemOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.forceFailureErr != nil {
		return nil, s.forceFailureErr
	}

	t, err := s.getTable(input.TableName)
	if err != nil {
		return nil, err
	}

	item, err := attribute.FromTypedMap(input.Item)
	if err != nil {
		return nil, validationError("%s", err.Error())
	}

	key, err := t.keySchema.getKey(t.attrTypes, item)
	if err != nil {
		return nil, err
	}

	if input.ConditionExpression != "" {
		ok, err := s.matchCondition(input.TableName, input.ConditionExpression, t.items[key])
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, &ddbtypes.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	}

	t.items[key] = item

	return &PutItemOutput{}, nil
}

// GetItem returns the item stored under the key, if any.
func (s *Store) GetItem(_ context.Context, input *types.GetItemInput) (*types.GetItemOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.forceFailureErr != nil {
		return nil, s.forceFailureErr
	}

	t, err := s.getTable(input.TableName)
	if err != nil {
		return nil, err
	}

	keyMap, err := attribute.FromTypedMap(input.Key)
	if err != nil {
		return nil, validationError("%s", err.Error())
	}

	key, err := t.keySchema.getKey(t.attrTypes, keyMap)
	if err != nil {
		return nil, err
	}

	if len(keyMap) != len(t.keySchema.names()) {
		return nil, validationError("The provided key element does not match the schema")
	}

	item, ok := t.items[key]
	if !ok {
		return &types.GetItemOutput{}, nil
	}

	typed, err := attribute.ToTypedMap(item)
	if err != nil {
		return nil, err
	}

	return &types.GetItemOutput{Item: typed}, nil
}

func (s *Store) matchCondition(tableName, expression string, item attribute.Map) (bool, error) {
	if matcher, ok := s.matchers[matcherKey(tableName, expression)]; ok {
		return matcher(item), nil
	}

	cond, err := expr.Parse(expression)
	if err != nil {
		return false, validationError("%s", err.Error())
	}

	ok, err := expr.Eval(cond, item)
	if err != nil {
		return false, validationError("Invalid ConditionExpression: %s", err.Error())
	}

	return ok, nil
}

func validationError(format string, args ...any) error {
	return &smithy.GenericAPIError{
		Code:    "ValidationException",
		Message: fmt.Sprintf(format, args...),
		Fault:   smithy.FaultClient,
	}
}
