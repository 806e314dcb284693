package iofetch

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/gnames/gntree/pkg/taxa"
)

// scientificName is the name class that provides the one canonical
// name per taxon in names.dmp.
const scientificName = "scientific name"

// splitDmpLine tokenizes one line of an NCBI dmp file. Fields are
// separated by "\t|\t" and lines terminated by "\t|"; stripping tabs
// after a plain split on '|' handles both uniformly.
func splitDmpLine(line string) []string {
	parts := strings.Split(line, "|")
	for i, part := range parts {
		parts[i] = strings.ReplaceAll(part, "\t", "")
	}
	return parts
}

// parseNames reads names.dmp and returns the scientific name for every
// taxon id. When the plain name column is empty the unique-name column
// is used instead.
func parseNames(path string) (map[int]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ExtractError("names.dmp", err)
	}
	defer file.Close()

	names := make(map[int]string)
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	for sc.Scan() {
		parts := splitDmpLine(sc.Text())
		if len(parts) < 4 {
			return nil, ParseError("names.dmp", sc.Text())
		}
		if parts[3] != scientificName {
			continue
		}

		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, ParseError("names.dmp", sc.Text())
		}

		name := parts[1]
		if name == "" {
			name = parts[2]
		}
		names[id] = name
	}
	if err := sc.Err(); err != nil {
		return nil, ExtractError("names.dmp", err)
	}
	return names, nil
}

// parseNodes reads nodes.dmp and streams one record per taxon to fn.
// A node without a scientific name is a broken row: the build must not
// skip it silently, since lineage computation needs a complete parent
// chain.
func parseNodes(
	path string,
	names map[int]string,
	fn func(rec taxa.Record) error,
) error {
	file, err := os.Open(path)
	if err != nil {
		return ExtractError("nodes.dmp", err)
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	for sc.Scan() {
		parts := splitDmpLine(sc.Text())
		if len(parts) < 3 {
			return ParseError("nodes.dmp", sc.Text())
		}

		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return ParseError("nodes.dmp", sc.Text())
		}
		parentID, err := strconv.Atoi(parts[1])
		if err != nil {
			return ParseError("nodes.dmp", sc.Text())
		}

		name, ok := names[id]
		if !ok {
			return MissingNameError(id)
		}

		rec := taxa.Record{
			ID:       id,
			Name:     name,
			ParentID: parentID,
			Rank:     parts[2],
		}
		if err = fn(rec); err != nil {
			return err
		}
	}
	return sc.Err()
}
