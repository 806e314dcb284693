package ioquery

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/pkg/errcode"
)

// DelimiterError creates an error for a store whose delimiter cannot
// be recovered. Querying with a guessed delimiter would corrupt every
// pattern-based operation, so this is fatal.
func DelimiterError(rootLineage string, err error) error {
	msg := `Cannot determine the lineage delimiter of this store

<em>Root lineage:</em> %s

The store has no import metadata and its root lineage does not parse.
Rebuild the store with <em>gntree populate</em>.`

	return &gn.Error{
		Code: errcode.QueryDelimiterError,
		Msg:  msg,
		Vars: []any{rootLineage},
		Err:  fmt.Errorf("delimiter recovery: %w", err),
	}
}

// CacheError creates an error for a failed node cache initialization.
func CacheError(err error) error {
	return &gn.Error{
		Code: errcode.QueryCacheError,
		Msg:  "Cannot initialize the node cache",
		Err:  fmt.Errorf("node cache: %w", err),
	}
}
