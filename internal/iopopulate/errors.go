package iopopulate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/pkg/errcode"
)

// DuplicateIDError creates an error for a source that delivers the
// same taxon id twice. Duplicate ids would make the parent map, and
// every lineage derived from it, ambiguous.
func DuplicateIDError(id int) error {
	msg := `Duplicate taxon id in source data

<em>Taxon ID:</em> %d

The source must provide exactly one record per taxon.`

	return &gn.Error{
		Code: errcode.PopulateRecordError,
		Msg:  msg,
		Vars: []any{id},
		Err:  fmt.Errorf("duplicate taxon id %d", id),
	}
}

// LineageError creates an error for a failed lineage persistence step.
func LineageError(err error) error {
	return &gn.Error{
		Code: errcode.PopulateLineageError,
		Msg:  "Cannot persist computed lineage paths",
		Err:  fmt.Errorf("lineage persistence: %w", err),
	}
}

// MetadataError creates an error for a failed provenance write.
func MetadataError(err error) error {
	return &gn.Error{
		Code: errcode.PopulateMetadataError,
		Msg:  "Cannot record import metadata",
		Err:  fmt.Errorf("import metadata: %w", err),
	}
}
