package iosqlite

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/gnames/gntree/pkg/errcode"
)

// connectionError is returned when opening the SQLite file fails.
type connectionError struct {
	error
	gnlib.MessageBase
}

// ConnectionError creates a connection error with a user-friendly
// message.
func ConnectionError(path string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Database Connection Failed</title>

<warning>Could not open the SQLite database.</warning>

<em>Possible causes:</em>
  • The path does not exist or is not writable
  • The file is not an SQLite database

<em>Path:</em> %s
`,
		[]any{path},
	)

	return connectionError{
		error:       fmt.Errorf("failed to open sqlite store %s: %w", path, cause),
		MessageBase: userBase,
	}
}

// NotConnectedError creates an error for operations attempted without
// an open database handle.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Operation attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
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
