package taxa

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultDelimiter separates ids inside a stored lineage string.
	// It must never collide with decimal digits, so that a
	// delimiter-wrapped id can be located with a plain substring match.
	DefaultDelimiter = "!!"

	// DefaultRootID is the conventional id of the tree root. NCBI
	// Taxonomy uses 1, with the root's parent referencing itself.
	DefaultRootID = 1
)

// EncodePath serializes a root-to-node id path into a lineage string:
// delimiter + id1 + delimiter + id2 + ... + idK + delimiter.
func EncodePath(ids []int, delimiter string) string {
	if len(ids) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(delimiter)
	for _, id := range ids {
		b.WriteString(strconv.Itoa(id))
		b.WriteString(delimiter)
	}
	return b.String()
}

// DecodePath parses a stored lineage string back into the root-to-node
// id path it encodes.
func DecodePath(lineage, delimiter string) ([]int, error) {
	if lineage == "" {
		return nil, nil
	}
	trimmed := strings.TrimPrefix(lineage, delimiter)
	trimmed = strings.TrimSuffix(trimmed, delimiter)
	if trimmed == "" {
		return nil, fmt.Errorf("malformed lineage %q", lineage)
	}
	parts := strings.Split(trimmed, delimiter)
	ids := make([]int, len(parts))
	for i, part := range parts {
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("malformed lineage %q: %w", lineage, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// Wrap returns the delimiter-wrapped form of an id. For any node N and
// ancestor A, Wrap(A) occurs as a substring of N's lineage.
func Wrap(id int, delimiter string) string {
	return delimiter + strconv.Itoa(id) + delimiter
}

// DeriveDelimiter recovers the delimiter from the root node's stored
// lineage, which has the shape delimiter + rootID + delimiter. It allows
// reopening stores that predate the imports metadata table.
func DeriveDelimiter(rootLineage string, rootID int) (string, error) {
	root := strconv.Itoa(rootID)
	idx := strings.Index(rootLineage, root)
	if idx <= 0 {
		return "", fmt.Errorf("cannot derive delimiter from root lineage %q", rootLineage)
	}
	delimiter := rootLineage[:idx]
	if rootLineage != delimiter+root+delimiter {
		return "", fmt.Errorf("cannot derive delimiter from root lineage %q", rootLineage)
	}
	if !ValidDelimiter(delimiter) {
		return "", fmt.Errorf("derived delimiter %q is not usable", delimiter)
	}
	return delimiter, nil
}

// ValidDelimiter reports whether a delimiter is safe for lineage
// encoding: non-empty, free of decimal digits, and free of SQL LIKE
// metacharacters that would corrupt pattern-based ancestor tests.
func ValidDelimiter(delimiter string) bool {
	if delimiter == "" {
		return false
	}
	return !strings.ContainsAny(delimiter, "0123456789%_")
}
