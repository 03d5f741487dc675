package o2m

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-meshdata/node"
)

func buildRelation(t *testing.T) *node.Node {
	t.Helper()
	n := node.New()
	node.SetSlice(n.Fetch("values"), []int64{10, 11, 12, 20, 30, 31})
	node.SetSlice(n.Fetch("sizes"), []int64{3, 1, 2})
	node.SetSlice(n.Fetch("offsets"), []int64{0, 3, 4})
	return n
}

func TestVerifyRelation(t *testing.T) {
	n := buildRelation(t)
	info := node.New()
	assert.True(t, Verify(n, info))
	assert.Equal(t, "true", info.FetchString("valid"))
}

func TestVerifyRejectsNonObject(t *testing.T) {
	n := node.New()
	node.SetSlice(n, []int64{1, 2, 3})
	info := node.New()
	assert.False(t, Verify(n, info))
	assert.Equal(t, "false", info.FetchString("valid"))
}

func TestVerifyRejectsFloatSizes(t *testing.T) {
	n := buildRelation(t)
	node.SetSlice(n.FetchExisting("sizes"), []float64{3, 1, 2})
	assert.False(t, Verify(n, node.New()))
}

func TestVerifyRejectsLengthMismatch(t *testing.T) {
	n := buildRelation(t)
	node.SetSlice(n.FetchExisting("offsets"), []int64{0, 3})
	assert.False(t, Verify(n, node.New()))
}

func TestGenerateOffsets(t *testing.T) {
	n := node.New()
	node.SetSlice(n.Fetch("values"), []int32{1, 2, 3, 4, 5, 6})
	node.SetSlice(n.Fetch("sizes"), []int32{2, 1, 3})

	GenerateOffsets(n)

	offsets := node.As[int64](n.FetchExisting("offsets")).Slice()
	assert.Equal(t, []int64{0, 2, 3}, offsets)
	// offsets inherit the sizes' kind
	assert.Equal(t, node.Int32, n.FetchExisting("offsets").Kind())
}

func TestRelationIteration(t *testing.T) {
	rel, err := NewRelation(buildRelation(t))
	require.NoError(t, err)

	require.Equal(t, 3, rel.NumOnes())
	assert.Equal(t, int64(6), rel.TotalManys())

	values := node.As[int64](buildRelation(t).FetchExisting("values"))
	var got []int64
	for i := 0; i < rel.NumOnes(); i++ {
		for j := int64(0); j < rel.Size(i); j++ {
			got = append(got, values.At(rel.DataIndex(i, j)))
		}
	}
	assert.Equal(t, []int64{10, 11, 12, 20, 30, 31}, got)
}

func TestRelationDerivesOffsets(t *testing.T) {
	n := buildRelation(t)
	n.Remove("offsets")
	rel, err := NewRelation(n)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rel.DataIndex(1, 0))
	assert.Equal(t, int64(4), rel.DataIndex(2, 0))
}
