package dynamite

import (
	"context"
	"encoding/json"

	"github.com/truora/dynamite/attribute"
	"github.com/truora/dynamite/types"
)

// PutItemRequest writes one item, optionally guarded by a condition.
type PutItemRequest struct {
	table     Table
	item      any
	condition Condition
}

// PutItem starts a write of item, which may be an attribute.Map, an
// ItemMarshaler, a StructItem or any value encoding/json renders as an
// object.
func (t Table) PutItem(item any) *PutItemRequest {
	return &PutItemRequest{table: t, item: item}
}

// Condition attaches a ConditionExpression to the write.
func (r *PutItemRequest) Condition(c Condition) *PutItemRequest {
	r.condition = c
	return r
}

// Body renders the PutItem request body.
func (r *PutItemRequest) Body() ([]byte, error) {
	item, err := r.table.db.toItem(r.item)
	if err != nil {
		return nil, err
	}

	typed, err := attribute.ToTypedMap(item)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(types.PutItemInput{
		TableName:           r.table.name,
		Item:                typed,
		ConditionExpression: r.condition.String(),
	})
	if err != nil {
		return nil, &types.EncodingError{Reason: "request body could not be encoded", Err: err}
	}

	return body, nil
}

// Execute sends the write. A rejected condition is a
// *types.ConditionFailedError.
func (r *PutItemRequest) Execute(ctx context.Context) error {
	body, err := r.Body()
	if err != nil {
		return err
	}

	_, err = r.table.send(ctx, types.OperationPutItem, body)

	return err
}
