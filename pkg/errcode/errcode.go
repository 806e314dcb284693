package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBSchemaError
	DBInsertError
	DBUpdateError
	DBQueryError
	DBIndexError

	// Fetch errors
	FetchDownloadError
	FetchExtractError
	FetchParseError
	FetchCacheDirError

	// Populate errors
	PopulateRecordError
	PopulateLineageError
	PopulateMetadataError

	// Query errors
	QueryDelimiterError
	QueryCacheError
)
