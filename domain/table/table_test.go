package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	rows := []Row{
		{"name": NewText("alpha"), "count": Number(1)},
		{"name": NewText("beta"), "count": Number(2)},
		{"name": NewText("gamma"), "count": Number(3)},
	}
	return New([]string{"name", "count"}, rows)
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"integer-valued float", Number(18956), "18956"},
		{"large integer", Number(918146), "918146"},
		{"fractional", Number(123456.81), "123456.81"},
		{"text", NewText("hello"), "hello"},
		{"bool", Bool(true), "true"},
		{"missing", Missing(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestNewTextEmptyIsMissing(t *testing.T) {
	assert.True(t, NewText("").IsMissing())
	assert.False(t, NewText(" ").IsMissing())
}

func TestFromAny(t *testing.T) {
	assert.True(t, FromAny(nil).IsMissing())
	assert.True(t, FromAny("").IsMissing())
	assert.Equal(t, NewText("018956"), FromAny("018956"))
	assert.Equal(t, Number(238801), FromAny(float64(238801)))
	assert.Equal(t, Number(42), FromAny(42))
	assert.Equal(t, Bool(true), FromAny(true))
	assert.Equal(t, NewText("[1 2]"), FromAny([]int{1, 2}))

	original := Number(7)
	assert.Equal(t, original, FromAny(original))
}

func TestValueAbsentCellIsMissing(t *testing.T) {
	tbl := New([]string{"a", "b"}, []Row{{"a": NewText("x")}})
	assert.True(t, tbl.Value(0, "b").IsMissing())
	assert.Equal(t, "x", tbl.Value(0, "a").Text)
}

func TestWithColumnCopyOnWrite(t *testing.T) {
	tbl := sampleTable()

	flags := []Value{Bool(true), Bool(false), Bool(true)}
	out, err := tbl.WithColumn("flag", flags)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "count", "flag"}, out.Columns())
	assert.Equal(t, []string{"name", "count"}, tbl.Columns())
	assert.True(t, tbl.Value(0, "flag").IsMissing())
	assert.True(t, out.Value(0, "flag").Boolean)
}

func TestWithColumnReplacesInPlace(t *testing.T) {
	tbl := sampleTable()

	out, err := tbl.WithColumn("count", []Value{Number(10), Number(20), Number(30)})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "count"}, out.Columns())
	assert.Equal(t, 20.0, out.Value(1, "count").Num)
	assert.Equal(t, 2.0, tbl.Value(1, "count").Num)
}

func TestWithColumnLengthMismatch(t *testing.T) {
	tbl := sampleTable()
	_, err := tbl.WithColumn("flag", []Value{Bool(true)})
	assert.Error(t, err)
}

func TestDropColumns(t *testing.T) {
	tbl := sampleTable()

	out := tbl.DropColumns("count", "never-existed")
	assert.Equal(t, []string{"name"}, out.Columns())
	assert.Equal(t, 3, out.NumRows())
	assert.True(t, out.Value(0, "count").IsMissing())

	// the receiver is untouched
	assert.Equal(t, []string{"name", "count"}, tbl.Columns())
}

func TestFilterPreservesOrder(t *testing.T) {
	tbl := sampleTable()

	out := tbl.Filter(func(row Row) bool {
		return row["count"].Num != 2
	})
	require.Equal(t, 2, out.NumRows())
	assert.Equal(t, "alpha", out.Value(0, "name").Text)
	assert.Equal(t, "gamma", out.Value(1, "name").Text)
	assert.Equal(t, 3, tbl.NumRows())
}

func TestColumn(t *testing.T) {
	tbl := sampleTable()

	values, err := tbl.Column("count")
	require.NoError(t, err)
	assert.Equal(t, []Value{Number(1), Number(2), Number(3)}, values)

	_, err = tbl.Column("absent")
	assert.Error(t, err)
}
