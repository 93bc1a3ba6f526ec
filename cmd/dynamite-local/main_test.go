package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/truora/dynamite/types"
)

const tablesYAML = `
tables:
  - name: users
    hash_key:
      name: username
      type: S
  - name: scores
    hash_key:
      name: player
      type: S
    range_key:
      name: game
      type: N
`

func TestParseTables(t *testing.T) {
	c := require.New(t)

	tables, err := parseTables([]byte(tablesYAML))
	c.NoError(err)
	c.Len(tables, 2)

	input := tables[1].input()
	c.Equal("scores", input.TableName)
	c.Equal([]types.KeySchemaElement{
		{AttributeName: "player", KeyType: "HASH"},
		{AttributeName: "game", KeyType: "RANGE"},
	}, input.KeySchema)
	c.Equal("N", input.AttributeDefinitions[1].AttributeType)

	_, err = parseTables([]byte("tables:\n  - name: users\n    hash_key:\n      name: id\n      type: BOOL\n"))
	c.Error(err)

	_, err = parseTables([]byte("tables: ["))
	c.Error(err)
}

func TestRun(t *testing.T) {
	c := require.New(t)

	path := filepath.Join(t.TempDir(), "tables.yaml")
	c.NoError(os.WriteFile(path, []byte(tablesYAML), 0o600))

	original := serve
	defer func() { serve = original }()

	var handler http.Handler

	serve = func(_ context.Context, srv *http.Server, ln net.Listener) error {
		handler = srv.Handler
		return ln.Close()
	}

	var out bytes.Buffer

	err := run(context.Background(), []string{"-addr", "127.0.0.1:0", "-tables", path, "-log-format", "json"}, &out)
	c.NoError(err)
	c.NotNil(handler)
	c.Contains(out.String(), `"tables":2`)

	err = run(context.Background(), []string{"-tables", filepath.Join(t.TempDir(), "missing.yaml")}, &out)
	c.Error(err)

	err = run(context.Background(), []string{"-unknown"}, &out)
	c.Error(err)
}
