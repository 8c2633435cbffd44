package tabular

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTableCSV(t *testing.T) {
	path := writeTempCSV(t, "input.csv",
		"postcode,address\n238801, Ngee Ann City \n,no code\n018956,Marina Bay Sands\n")

	tbl, err := NewDataReader(path).ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"postcode", "address"}, tbl.Columns())
	require.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, "238801", tbl.Value(0, "postcode").Text)
	// cells are trimmed
	assert.Equal(t, "Ngee Ann City", tbl.Value(0, "address").Text)
	// empty cells read back as missing
	assert.True(t, tbl.Value(1, "postcode").IsMissing())
}

func TestReadTableRaggedRows(t *testing.T) {
	path := writeTempCSV(t, "ragged.csv", "a,b\n1\n2,3,4\n")

	tbl, err := NewDataReader(path).ReadTable(path)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumRows())
	assert.True(t, tbl.Value(0, "b").IsMissing())
	assert.Equal(t, "3", tbl.Value(1, "b").Text)
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := NewDataReader("nope.csv").ReadTable("nope.csv")
	assert.Error(t, err)
}

func TestReadTableHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "header.csv", "postcode\n")

	_, err := NewDataReader(path).ReadTable(path)
	assert.Error(t, err)
}

func TestLoadReferenceSet(t *testing.T) {
	path := writeTempCSV(t, "master.csv", "postcode\n238801\n018956\n238801\n\n188364\n")

	refs, err := NewReferenceFileSource(path).LoadReferenceSet(context.Background())
	require.NoError(t, err)

	assert.Len(t, refs, 3)
	assert.True(t, refs.Contains("238801"))
	assert.True(t, refs.Contains("018956"))
	assert.False(t, refs.Contains("999999"))
}

func TestLoadReferenceSetRejectsMultipleColumns(t *testing.T) {
	path := writeTempCSV(t, "wide.csv", "postcode,extra\n238801,x\n")

	_, err := NewReferenceFileSource(path).LoadReferenceSet(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one column")
}
