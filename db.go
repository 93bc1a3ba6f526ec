// Package dynamite turns application values into DynamoDB items and issues
// PutItem and GetItem requests through a pluggable, signed transport.
//
// A DB holds the credentials shared by every Table created from it:
//
//	db := dynamite.New(dynamite.WithTransport(transport.NewHTTP("", "us-east-1")))
//	db.SetCredentials("AKID", "SECRET")
//
//	users := db.Table("users")
//	err := users.PutItem(user).Condition(dynamite.AttributeNotExists("id")).Execute(ctx)
package dynamite

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"
	"github.com/truora/dynamite/transport"
	"github.com/truora/dynamite/types"
)

// DefaultRegion is used when no region is configured.
const DefaultRegion = "us-east-1"

// shared is the state every Table of a DB points to.
type shared struct {
	mu    sync.RWMutex
	creds *aws.Credentials
}

// DB is the entry point of the client. It is safe for concurrent use.
type DB struct {
	shared         *shared
	transport      transport.Transport
	serviceVersion string
	plainNumbers   bool
	logger         zerolog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithTransport sets the transport requests are dispatched through.
func WithTransport(t transport.Transport) Option {
	return func(db *DB) {
		db.transport = t
	}
}

// WithLogger sets the logger request lifecycles are reported to.
func WithLogger(logger zerolog.Logger) Option {
	return func(db *DB) {
		db.logger = logger
	}
}

// WithServiceVersion overrides the operation target prefix.
func WithServiceVersion(version string) Option {
	return func(db *DB) {
		if version != "" {
			db.serviceVersion = version
		}
	}
}

// WithPlainNumbers lets items carry numbers in their plain form; they are
// stored as N attributes. Without it plain numbers are decoding errors.
func WithPlainNumbers() Option {
	return func(db *DB) {
		db.plainNumbers = true
	}
}

// New returns a DB without credentials. The default transport posts to the
// public endpoint of DefaultRegion.
func New(opts ...Option) *DB {
	db := &DB{
		shared:         &shared{},
		serviceVersion: types.DefaultServiceVersion,
		logger:         zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(db)
	}

	if db.transport == nil {
		db.transport = transport.NewHTTP("", DefaultRegion)
	}

	return db
}

// SetCredentials stores long-term credentials for every table of the DB.
func (db *DB) SetCredentials(accessKeyID, secretAccessKey string) {
	db.SetSessionCredentials(accessKeyID, secretAccessKey, "")
}

// SetSessionCredentials stores temporary credentials.
func (db *DB) SetSessionCredentials(accessKeyID, secretAccessKey, sessionToken string) {
	db.storeCredentials(aws.Credentials{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		SessionToken:    sessionToken,
		Source:          "dynamite",
	})
}

// RefreshCredentials retrieves credentials from provider and stores them.
func (db *DB) RefreshCredentials(ctx context.Context, provider aws.CredentialsProvider) error {
	creds, err := provider.Retrieve(ctx)
	if err != nil {
		return types.NewError(types.ErrCodeNoCredentials, "credentials could not be retrieved", err)
	}

	db.storeCredentials(creds)

	return nil
}

func (db *DB) storeCredentials(creds aws.Credentials) {
	db.shared.mu.Lock()
	defer db.shared.mu.Unlock()

	db.shared.creds = &creds
}

// Credentials returns the stored credentials or ErrNoCredentials.
func (db *DB) Credentials() (aws.Credentials, error) {
	db.shared.mu.RLock()
	defer db.shared.mu.RUnlock()

	if db.shared.creds == nil || !db.shared.creds.HasKeys() {
		return aws.Credentials{}, types.ErrNoCredentials
	}

	return *db.shared.creds, nil
}

// Table returns a handle on the named table. Handles are values and may be
// copied and shared freely.
func (db *DB) Table(name string) Table {
	return Table{name: name, db: db}
}

// Table is a named table of a DB.
type Table struct {
	name string
	db   *DB
}

// Name returns the table name.
func (t Table) Name() string {
	return t.name
}
