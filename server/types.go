package server

import "github.com/truora/dynamite/types"

// DescribeTableInput is the DescribeTable request body.
type DescribeTableInput struct {
	TableName string `json:"TableName"`
}

// DescribeTableOutput is the DescribeTable response body.
type DescribeTableOutput struct {
	Table types.TableDescription `json:"Table"`
}

// DeleteTableInput is the DeleteTable request body.
type DeleteTableInput struct {
	TableName string `json:"TableName"`
}

// DeleteTableOutput is the DeleteTable response body.
type DeleteTableOutput struct {
	TableDescription types.TableDescription `json:"TableDescription"`
}

// PutItemOutput is the PutItem response body. Return values are not supported.
type PutItemOutput struct{}
