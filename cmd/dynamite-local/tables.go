package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/truora/dynamite/server"
	"github.com/truora/dynamite/types"
	"gopkg.in/yaml.v3"
)

// KeyConfig names a key attribute and its scalar type.
type KeyConfig struct {
	Name string `yaml:"name" validate:"required"`
	Type string `yaml:"type" validate:"required,oneof=S N B"`
}

// TableConfig describes a table created on start.
type TableConfig struct {
	Name     string     `yaml:"name" validate:"required"`
	HashKey  KeyConfig  `yaml:"hash_key"`
	RangeKey *KeyConfig `yaml:"range_key,omitempty" validate:"omitempty"`
}

type tablesFile struct {
	Tables []TableConfig `yaml:"tables" validate:"dive"`
}

func loadTables(path string) ([]TableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables file: %w", err)
	}

	return parseTables(data)
}

func parseTables(data []byte) ([]TableConfig, error) {
	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse tables file: %w", err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid tables file: %w", err)
	}

	return file.Tables, nil
}

func (t TableConfig) input() *types.CreateTableInput {
	input := &types.CreateTableInput{
		TableName: t.Name,
		KeySchema: []types.KeySchemaElement{{AttributeName: t.HashKey.Name, KeyType: "HASH"}},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: t.HashKey.Name, AttributeType: t.HashKey.Type},
		},
	}

	if t.RangeKey != nil {
		input.KeySchema = append(input.KeySchema, types.KeySchemaElement{AttributeName: t.RangeKey.Name, KeyType: "RANGE"})
		input.AttributeDefinitions = append(input.AttributeDefinitions,
			types.AttributeDefinition{AttributeName: t.RangeKey.Name, AttributeType: t.RangeKey.Type})
	}

	return input
}

func createTables(ctx context.Context, store *server.Store, tables []TableConfig) error {
	for _, t := range tables {
		if _, err := store.CreateTable(ctx, t.input()); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
	}

	return nil
}
