package iofetch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gntree/pkg/taxa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDmpLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "names row",
			line: "1\t|\troot\t|\t\t|\tscientific name\t|",
			want: []string{"1", "root", "", "scientific name", ""},
		},
		{
			name: "nodes row prefix",
			line: "2\t|\t131567\t|\tsuperkingdom\t|",
			want: []string{"2", "131567", "superkingdom", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitDmpLine(tt.line))
		})
	}
}

func writeDump(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseNames(t *testing.T) {
	content := "1\t|\tall\t|\t\t|\tsynonym\t|\n" +
		"1\t|\troot\t|\t\t|\tscientific name\t|\n" +
		"2\t|\tBacteria\t|\tBacteria <bacteria>\t|\tscientific name\t|\n" +
		"9606\t|\t\t|\tHomo sapiens <human>\t|\tscientific name\t|\n"
	path := writeDump(t, "names.dmp", content)

	names, err := parseNames(path)
	require.NoError(t, err)

	// Only scientific names survive; the synonym row for id 1 is
	// dropped, and an empty name falls back to the unique-name column.
	assert.Equal(t, map[int]string{
		1:    "root",
		2:    "Bacteria",
		9606: "Homo sapiens <human>",
	}, names)
}

func TestParseNamesMalformed(t *testing.T) {
	path := writeDump(t, "names.dmp",
		"abc\t|\tBroken\t|\t\t|\tscientific name\t|\n")

	_, err := parseNames(path)
	assert.Error(t, err)
}

func TestParseNodes(t *testing.T) {
	names := map[int]string{1: "root", 2: "Bacteria"}
	content := "1\t|\t1\t|\tno rank\t|\textra\t|\n" +
		"2\t|\t1\t|\tsuperkingdom\t|\textra\t|\n"
	path := writeDump(t, "nodes.dmp", content)

	var recs []taxa.Record
	err := parseNodes(path, names, func(rec taxa.Record) error {
		recs = append(recs, rec)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []taxa.Record{
		{ID: 1, Name: "root", ParentID: 1, Rank: "no rank"},
		{ID: 2, Name: "Bacteria", ParentID: 1, Rank: "superkingdom"},
	}, recs)
}

func TestParseNodesMissingName(t *testing.T) {
	names := map[int]string{1: "root"}
	path := writeDump(t, "nodes.dmp", "7\t|\t1\t|\tgenus\t|\n")

	err := parseNodes(path, names, func(taxa.Record) error { return nil })
	assert.Error(t, err)
}

func TestParseNodesCallbackError(t *testing.T) {
	names := map[int]string{1: "root"}
	path := writeDump(t, "nodes.dmp", "1\t|\t1\t|\tno rank\t|\n")

	wantErr := assert.AnError
	err := parseNodes(path, names, func(taxa.Record) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}
