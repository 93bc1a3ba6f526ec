package dynamite

import (
	"context"
	"encoding/json"

	"github.com/truora/dynamite/attribute"
	"github.com/truora/dynamite/types"
)

// GetItemRequest reads one item by primary key.
type GetItemRequest struct {
	table      Table
	key        PrimaryKey
	consistent bool
}

// GetItem starts a read of the item identified by key.
func (t Table) GetItem(key PrimaryKey) *GetItemRequest {
	return &GetItemRequest{table: t, key: key}
}

// ConsistentRead asks for a strongly consistent read.
func (r *GetItemRequest) ConsistentRead() *GetItemRequest {
	r.consistent = true
	return r
}

// Body renders the GetItem request body.
func (r *GetItemRequest) Body() ([]byte, error) {
	key, err := r.key.Typed()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(types.GetItemInput{
		TableName:      r.table.name,
		Key:            key,
		ConsistentRead: r.consistent,
	})
	if err != nil {
		return nil, &types.EncodingError{Reason: "request body could not be encoded", Err: err}
	}

	return body, nil
}

// ExecuteItem sends the read and returns the raw item. found is false when
// no item matches the key.
func (r *GetItemRequest) ExecuteItem(ctx context.Context) (item attribute.Map, found bool, err error) {
	body, err := r.Body()
	if err != nil {
		return nil, false, err
	}

	resp, err := r.table.send(ctx, types.OperationGetItem, body)
	if err != nil {
		return nil, false, err
	}

	raw, err := attribute.DecodeJSON(resp)
	if err != nil {
		return nil, false, err
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false, &types.DecodingError{Reason: "GetItem response must be an object"}
	}

	rawItem, ok := obj["Item"]
	if !ok || rawItem == nil {
		return nil, false, nil
	}

	item, err = attribute.FromTypedMap(rawItem)
	if err != nil {
		return nil, false, err
	}

	return item, true, nil
}

// Execute sends the read and decodes the item into out. out may be a
// *attribute.Map, a StructItem, an ItemUnmarshaler or any pointer
// encoding/json can fill. out is untouched when the item is not found.
func (r *GetItemRequest) Execute(ctx context.Context, out any) (bool, error) {
	item, found, err := r.ExecuteItem(ctx)
	if err != nil || !found {
		return false, err
	}

	if err := fromItem(item, out); err != nil {
		return false, err
	}

	return true, nil
}
