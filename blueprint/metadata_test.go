package blueprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-meshdata/blueprint"
	"github.com/robert-malhotra/go-meshdata/blueprint/examples"
	"github.com/robert-malhotra/go-meshdata/node"
)

func quadGridTopology(t *testing.T) (*node.Node, *node.Node) {
	t.Helper()
	mesh := examples.Basic("quads", 3, 3, 0)
	return mesh.FetchExisting("topologies/mesh"), mesh.FetchExisting("coordsets/coords")
}

func TestMetadataEntityCounts2D(t *testing.T) {
	topo, cset := quadGridTopology(t)
	md := blueprint.NewTopologyMetadata(topo, cset)

	assert.Equal(t, 2, md.Dim())
	assert.Equal(t, int64(9), md.Length(0), "vertices")
	assert.Equal(t, int64(12), md.Length(1), "deduplicated edges of a 2x2 quad grid")
	assert.Equal(t, int64(4), md.Length(2), "cells")
	assert.Equal(t, int64(25), md.TotalLength())

	// each cell contributes 4 edge occurrences
	assert.Equal(t, int64(16), md.LocalLength(1))
	assert.Equal(t, int64(16), md.EmbedLength(2, 1))
}

func TestMetadataEntityCounts3D(t *testing.T) {
	mesh := examples.Basic("hexs", 3, 3, 3) // 2x2x2 hexes
	md := blueprint.NewTopologyMetadata(
		mesh.FetchExisting("topologies/mesh"),
		mesh.FetchExisting("coordsets/coords"))

	assert.Equal(t, 3, md.Dim())
	assert.Equal(t, int64(27), md.Length(0))
	assert.Equal(t, int64(54), md.Length(1), "edges of a 2x2x2 hex grid")
	assert.Equal(t, int64(36), md.Length(2), "faces of a 2x2x2 hex grid")
	assert.Equal(t, int64(8), md.Length(3))
	// each hex contributes 6 faces x 4 lines
	assert.Equal(t, int64(192), md.EmbedLength(3, 1))
}

// Deduplication: every entity appears exactly once globally, and the
// global table is the local table composed with the local-to-global
// maps.
func TestMetadataDeduplication(t *testing.T) {
	topo, cset := quadGridTopology(t)
	md := blueprint.NewTopologyMetadata(topo, cset)

	// no two global edges share a vertex set
	seen := map[[2]int64]bool{}
	for gid := int64(0); gid < md.Length(1); gid++ {
		v := md.EntityVertices(1, gid)
		key := [2]int64{min64(v[0], v[1]), max64(v[0], v[1])}
		assert.False(t, seen[key], "edge %v duplicated", v)
		seen[key] = true
	}

	// composing the local table with le2ge reproduces the global table
	le2ge1 := md.LocalToGlobal(1)
	le2ge0 := md.LocalToGlobal(0)
	for cell := int64(0); cell < md.Length(2); cell++ {
		globalEdges := md.GlobalAssoc(2, cell, 1)
		localEdges := md.LocalAssoc(2, cell)
		require.Len(t, localEdges, len(globalEdges))
		for i, lid := range localEdges {
			assert.Equal(t, globalEdges[i], le2ge1[lid])
		}
	}

	// point global ids are coordset vertex ids
	for lid, gid := range le2ge0 {
		assert.Less(t, gid, int64(9), "point %d maps past the coordset", lid)
	}
}

func TestMetadataAssociationsRoundTrip(t *testing.T) {
	topo, cset := quadGridTopology(t)
	md := blueprint.NewTopologyMetadata(topo, cset)

	// cell -> vertex and vertex -> cell are transposes
	for cell := int64(0); cell < md.Length(2); cell++ {
		for _, v := range md.GlobalAssoc(2, cell, 0) {
			assert.Contains(t, md.GlobalAssoc(0, v, 2), cell)
		}
	}

	// the center vertex (id 4) touches all four cells
	assert.Len(t, md.GlobalAssoc(0, 4, 2), 4)
	// a corner vertex touches exactly one
	assert.Len(t, md.GlobalAssoc(0, 0, 2), 1)
}

func TestMetadataDimTopos(t *testing.T) {
	topo, cset := quadGridTopology(t)
	md := blueprint.NewTopologyMetadata(topo, cset)

	points := md.DimTopo(0)
	require.True(t, blueprint.Verify("topology", points, node.New()))
	assert.Equal(t, "point", points.FetchString("elements/shape"))
	assert.Equal(t, int64(9), points.FetchExisting("elements/connectivity").DType().NumElements)

	lines := md.DimTopo(1)
	require.True(t, blueprint.Verify("topology", lines, node.New()))
	assert.Equal(t, "line", lines.FetchString("elements/shape"))
	assert.Equal(t, int64(24), lines.FetchExisting("elements/connectivity").DType().NumElements)

	cells := md.DimTopo(2)
	require.True(t, blueprint.Verify("topology", cells, node.New()))
	assert.Equal(t, "quad", cells.FetchString("elements/shape"))
}

func TestGenerateDerivedTopos(t *testing.T) {
	topo, _ := quadGridTopology(t)

	points, s2d, d2s := blueprint.GeneratePoints(topo)
	require.True(t, blueprint.Verify("topology", points, node.New()))
	assert.Equal(t, int64(4), s2d.FetchExisting("sizes").DType().NumElements)
	assert.Equal(t, int64(9), d2s.FetchExisting("sizes").DType().NumElements)

	lines, s2d, d2s := blueprint.GenerateLines(topo)
	require.True(t, blueprint.Verify("topology", lines, node.New()))
	// every cell maps to 4 edges
	sizes := node.As[int64](s2d.FetchExisting("sizes")).Slice()
	assert.Equal(t, []int64{4, 4, 4, 4}, sizes)
	// interior edges map back to 2 cells, border edges to 1
	dsizes := node.As[int64](d2s.FetchExisting("sizes")).Slice()
	var interior, border int
	for _, s := range dsizes {
		switch s {
		case 1:
			border++
		case 2:
			interior++
		default:
			t.Fatalf("edge maps to %d cells", s)
		}
	}
	assert.Equal(t, 8, border)
	assert.Equal(t, 4, interior)
}

func TestGenerateCentroids(t *testing.T) {
	topo, _ := quadGridTopology(t)

	cents, ccoords, s2d, d2s := blueprint.GenerateCentroids(topo, "cent_coords")
	assert.Equal(t, "point", cents.FetchString("elements/shape"))
	assert.Equal(t, "cent_coords", cents.FetchString("coordset"))

	x := node.As[float64](ccoords.FetchExisting("values/x")).Slice()
	y := node.As[float64](ccoords.FetchExisting("values/y")).Slice()
	assert.Equal(t, []float64{0.5, 1.5, 0.5, 1.5}, x)
	assert.Equal(t, []float64{0.5, 0.5, 1.5, 1.5}, y)

	// identity 1:1 maps
	assert.Equal(t, []int64{0, 1, 2, 3}, node.As[int64](s2d.FetchExisting("values")).Slice())
	assert.Equal(t, []int64{1, 1, 1, 1}, node.As[int64](d2s.FetchExisting("sizes")).Slice())
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
