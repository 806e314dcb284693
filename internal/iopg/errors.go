package iopg

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/gnames/gntree/pkg/errcode"
)

// connectionError is returned when database connection fails.
type connectionError struct {
	error
	gnlib.MessageBase
}

// ConnectionError creates a connection error with a user-friendly
// message.
func ConnectionError(host string, port int, database, user string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Database Connection Failed</title>

<warning>Could not connect to PostgreSQL database.</warning>

<em>Possible causes:</em>
  • PostgreSQL is not running
  • Database configuration is incorrect
  • Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>

  3. Review connection settings:
     Host: %s
     Port: %d
     Database: %s
     User: %s
`,
		[]any{
			host, port,
			host, user,
			host, port, database, user,
		},
	)

	return connectionError{
		error: fmt.Errorf(
			"failed to connect to %s:%d/%s: %w",
			host, port, database, cause),
		MessageBase: userBase,
	}
}

// NotConnectedError creates an error for operations attempted without
// an established connection pool.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Operation attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for a failed GORM bridge over
// the pgx pool.
func GORMConnectionError(err error) error {
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  "Cannot initialize GORM over the connection pool",
		Err:  fmt.Errorf("gorm bridge: %w", err),
	}
}

// SchemaError creates an error for failed schema creation.
func SchemaError(err error) error {
	return &gn.Error{
		Code: errcode.DBSchemaError,
		Msg:  "Cannot create taxonomy schema",
		Err:  fmt.Errorf("schema creation: %w", err),
	}
}

// IndexError creates an error for failed index creation.
func IndexError(err error) error {
	return &gn.Error{
		Code: errcode.DBIndexError,
		Msg:  "Cannot create taxonomy indexes",
		Err:  fmt.Errorf("index creation: %w", err),
	}
}

// InsertError creates an error for failed bulk inserts.
func InsertError(err error) error {
	return &gn.Error{
		Code: errcode.DBInsertError,
		Msg:  "Cannot insert taxonomy records",
		Err:  fmt.Errorf("bulk insert: %w", err),
	}
}

// UpdateError creates an error for failed lineage updates.
func UpdateError(err error) error {
	return &gn.Error{
		Code: errcode.DBUpdateError,
		Msg:  "Cannot update lineage strings",
		Err:  fmt.Errorf("lineage update: %w", err),
	}
}

// QueryError creates an error for failed read queries.
func QueryError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Taxonomy query failed",
		Err:  fmt.Errorf("query: %w", err),
	}
}
