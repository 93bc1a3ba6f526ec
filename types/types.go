package types

// DefaultServiceVersion prefixes every operation target.
const DefaultServiceVersion = "DynamoDB_20120810"

// Operation names understood by this layer.
const (
	OperationPutItem     = "PutItem"
	OperationGetItem     = "GetItem"
	OperationCreateTable = "CreateTable"
)

// Target returns the X-Amz-Target header value for an operation.
func Target(serviceVersion, operation string) string {
	if serviceVersion == "" {
		serviceVersion = DefaultServiceVersion
	}

	return serviceVersion + "." + operation
}

// PutItemInput is the PutItem request body.
type PutItemInput struct {
	TableName           string         `json:"TableName"`
	Item                map[string]any `json:"Item"`
	ConditionExpression string         `json:"ConditionExpression,omitempty"`
}

// GetItemInput is the GetItem request body.
type GetItemInput struct {
	TableName      string         `json:"TableName"`
	Key            map[string]any `json:"Key"`
	ConsistentRead bool           `json:"ConsistentRead,omitempty"`
}

// GetItemOutput is the GetItem response body. A nil Item means the key
// did not match any record.
type GetItemOutput struct {
	Item map[string]any `json:"Item,omitempty"`
}

// KeySchemaElement names a key attribute and its role (HASH or RANGE).
type KeySchemaElement struct {
	AttributeName string `json:"AttributeName"`
	KeyType       string `json:"KeyType"`
}

// AttributeDefinition declares the scalar type of a key attribute.
type AttributeDefinition struct {
	AttributeName string `json:"AttributeName"`
	AttributeType string `json:"AttributeType"`
}

// CreateTableInput is the subset of the CreateTable body the in-memory
// server understands.
type CreateTableInput struct {
	TableName            string                `json:"TableName"`
	KeySchema            []KeySchemaElement    `json:"KeySchema"`
	AttributeDefinitions []AttributeDefinition `json:"AttributeDefinitions"`
	BillingMode          string                `json:"BillingMode,omitempty"`
}

// TableDescription describes a table in CreateTable responses.
type TableDescription struct {
	TableName   string             `json:"TableName"`
	KeySchema   []KeySchemaElement `json:"KeySchema"`
	TableStatus string             `json:"TableStatus"`
	ItemCount   int64              `json:"ItemCount"`
}

// CreateTableOutput is the CreateTable response body.
type CreateTableOutput struct {
	TableDescription TableDescription `json:"TableDescription"`
}

// ErrorBody is the envelope returned with Bad Request responses.
type ErrorBody struct {
	Type    string `json:"__type"`
	Message string `json:"message,omitempty"`
}
