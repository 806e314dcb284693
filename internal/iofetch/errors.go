package iofetch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/pkg/errcode"
)

// DownloadError creates an error for a failed archive download or
// extraction by go-getter.
func DownloadError(src string, err error) error {
	msg := `Cannot fetch taxonomy dump

<em>Source:</em> %s

<em>Possible causes:</em>
  - The URL or path is wrong
  - Network connectivity issues
  - The archive is not a tar.gz taxonomy dump`

	return &gn.Error{
		Code: errcode.FetchDownloadError,
		Msg:  msg,
		Vars: []any{src},
		Err:  fmt.Errorf("fetch %s: %w", src, err),
	}
}

// CacheDirError creates an error for an unusable cache directory.
func CacheDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.FetchCacheDirError,
		Msg:  "Cannot prepare cache directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("cache dir %s: %w", dir, err),
	}
}

// ExtractError creates an error for a missing or unreadable dump file.
func ExtractError(file string, err error) error {
	msg := `Cannot read <em>%s</em> from the taxonomy dump

The archive is expected to contain names.dmp and nodes.dmp.`

	return &gn.Error{
		Code: errcode.FetchExtractError,
		Msg:  msg,
		Vars: []any{file},
		Err:  fmt.Errorf("read %s: %w", file, err),
	}
}

// ParseError creates an error for a malformed dmp line. Broken rows
// abort the build; skipping them would corrupt lineage computation
// downstream.
func ParseError(file, line string) error {
	return &gn.Error{
		Code: errcode.FetchParseError,
		Msg:  "Malformed row in <em>%s</em>",
		Vars: []any{file},
		Err:  fmt.Errorf("malformed %s row: %q", file, line),
	}
}

// MissingNameError creates an error for a taxon that has no scientific
// name entry.
func MissingNameError(id int) error {
	return &gn.Error{
		Code: errcode.FetchParseError,
		Msg:  "Taxon <em>%d</em> has no scientific name",
		Vars: []any{id},
		Err:  fmt.Errorf("taxon %d missing scientific name", id),
	}
}
