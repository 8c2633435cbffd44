package identify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
)

func testRefs() postcode.ReferenceSet {
	return postcode.NewReferenceSet([]string{"238801", "018956", "188364"})
}

func newTestIdentifier(t *testing.T, cfg Config) *Identifier {
	t.Helper()
	id, err := NewIdentifier(postcode.DefaultValidationConfig(), testRefs(), cfg)
	require.NoError(t, err)
	return id
}

func postcodeTable() *table.Table {
	rows := []table.Row{
		{"postcode": table.NewText("238801"), "address": table.NewText("Ngee Ann City, Singapore 238801")},
		{"postcode": table.NewText("018956"), "address": table.NewText("Marina Bay Sands, Singapore 018956")},
		{"postcode": table.NewText("invalid"), "address": table.NewText("no code here")},
		{"postcode": table.NewText("188364"), "address": table.NewText("Bras Basah, Singapore 188364")},
	}
	return table.New([]string{"postcode", "address"}, rows)
}

func TestEvaluateDirectSuccessRate(t *testing.T) {
	id := newTestIdentifier(t, Config{Pattern: postcode.DefaultPattern, SampleSize: 10, SuccessThreshold: 0.1, Seed: 7})

	candidate, err := id.Evaluate(postcodeTable(), "postcode", MethodDirect)
	require.NoError(t, err)
	assert.Equal(t, 0.75, candidate.SuccessRate)
	assert.Equal(t, 4, candidate.SampleSize)
	assert.Empty(t, candidate.Pattern)
}

func TestEvaluateIndirectSuccessRate(t *testing.T) {
	id := newTestIdentifier(t, Config{Pattern: postcode.DefaultPattern, SampleSize: 10, SuccessThreshold: 0.1, Seed: 7})

	candidate, err := id.Evaluate(postcodeTable(), "address", MethodIndirect)
	require.NoError(t, err)
	assert.Equal(t, 0.75, candidate.SuccessRate)
	assert.Equal(t, postcode.DefaultPattern, candidate.Pattern)
}

func TestEvaluateUnknownColumn(t *testing.T) {
	id := newTestIdentifier(t, Config{Pattern: postcode.DefaultPattern, SampleSize: 10, SuccessThreshold: 0.1, Seed: 7})

	_, err := id.Evaluate(postcodeTable(), "nope", MethodDirect)
	assert.Error(t, err)
}

func TestEvaluateEmptyTable(t *testing.T) {
	id := newTestIdentifier(t, Config{Pattern: postcode.DefaultPattern, SampleSize: 10, SuccessThreshold: 0.1, Seed: 7})

	empty := table.New([]string{"postcode"}, nil)
	candidate, err := id.Evaluate(empty, "postcode", MethodDirect)
	require.NoError(t, err)
	assert.Equal(t, 0.0, candidate.SuccessRate)
	assert.Equal(t, 0, candidate.SampleSize)
}

func TestEvaluateDeterministic(t *testing.T) {
	rows := make([]table.Row, 10000)
	for i := range rows {
		code := "238801"
		if i%3 == 0 {
			code = fmt.Sprintf("garbage-%d", i)
		}
		rows[i] = table.Row{"postcode": table.NewText(code)}
	}
	tbl := table.New([]string{"postcode"}, rows)

	id := newTestIdentifier(t, Config{Pattern: postcode.DefaultPattern, SampleSize: 100, SuccessThreshold: 0.1, Seed: 42})

	first, err := id.Evaluate(tbl, "postcode", MethodDirect)
	require.NoError(t, err)
	second, err := id.Evaluate(tbl, "postcode", MethodDirect)
	require.NoError(t, err)

	assert.Equal(t, first.SuccessRate, second.SuccessRate)
	assert.Equal(t, 100, first.SampleSize)
}

func TestSampleIndicesBoundedAndSeeded(t *testing.T) {
	first := sampleIndices(10000, 100, 42)
	second := sampleIndices(10000, 100, 42)
	assert.Equal(t, first, second)
	assert.Len(t, first, 100)
	for _, idx := range first {
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 10000)
	}

	other := sampleIndices(10000, 100, 43)
	assert.NotEqual(t, first, other)

	small := sampleIndices(4, 100, 42)
	assert.Equal(t, []int{0, 1, 2, 3}, small)
}

func TestWilsonIntervalBracketsRate(t *testing.T) {
	low, high := wilsonInterval(0.75, 100)
	assert.Less(t, low, 0.75)
	assert.Greater(t, high, 0.75)
	assert.GreaterOrEqual(t, low, 0.0)
	assert.LessOrEqual(t, high, 1.0)

	low, high = wilsonInterval(0, 0)
	assert.Equal(t, 0.0, low)
	assert.Equal(t, 0.0, high)
}

func TestEvaluateDoesNotMutateTable(t *testing.T) {
	tbl := postcodeTable()
	id := newTestIdentifier(t, Config{Pattern: postcode.DefaultPattern, SampleSize: 10, SuccessThreshold: 0.1, Seed: 7})

	_, err := id.Evaluate(tbl, "postcode", MethodDirect)
	require.NoError(t, err)

	assert.Equal(t, []string{"postcode", "address"}, tbl.Columns())
	assert.Equal(t, "invalid", tbl.Value(2, "postcode").String())
}
