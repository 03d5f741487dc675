package blueprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-meshdata/blueprint"
	"github.com/robert-malhotra/go-meshdata/blueprint/examples"
	"github.com/robert-malhotra/go-meshdata/node"
)

func TestGenerateSidesQuadGrid(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)
	topo := mesh.FetchExisting("topologies/mesh")

	dest, cdest, s2d, d2s := blueprint.GenerateSides(topo, "side_coords")

	// mount and verify
	out := node.New()
	out.Fetch("coordsets/side_coords").SetNode(cdest)
	out.Fetch("topologies/sides").SetNode(dest)
	info := node.New()
	require.True(t, blueprint.VerifyMesh(out, info), info.JSON())

	assert.Equal(t, "tri", dest.FetchString("elements/shape"))
	// 4 quads x 4 edges = 16 triangles
	conn := node.As[int64](dest.FetchExisting("elements/connectivity")).Slice()
	require.Len(t, conn, 16*3)

	// coords: 9 original vertices + 4 cell centroids (no edge midpoints)
	assert.Equal(t, int64(13), blueprint.CoordsetLength(cdest))

	// each triangle's third vertex is a centroid (index >= 9)
	for i := 0; i < 16; i++ {
		assert.GreaterOrEqual(t, conn[i*3+2], int64(9))
		assert.Less(t, conn[i*3], int64(9))
		assert.Less(t, conn[i*3+1], int64(9))
	}

	// maps: every cell owns 4 sides; every side has one parent
	assert.Equal(t, []int64{4, 4, 4, 4}, node.As[int64](s2d.FetchExisting("sizes")).Slice())
	dsizes := node.As[int64](d2s.FetchExisting("sizes")).Slice()
	require.Len(t, dsizes, 16)
	for _, s := range dsizes {
		assert.Equal(t, int64(1), s)
	}
}

func TestGenerateSidesHex(t *testing.T) {
	mesh := examples.Basic("hexs", 2, 2, 2)
	topo := mesh.FetchExisting("topologies/mesh")

	dest, cdest, _, d2s := blueprint.GenerateSides(topo, "side_coords")
	assert.Equal(t, "tet", dest.FetchString("elements/shape"))

	// one hex: 6 faces x 4 edges = 24 tets
	conn := node.As[int64](dest.FetchExisting("elements/connectivity")).Slice()
	require.Len(t, conn, 24*4)

	// coords: 8 vertices + 6 face centers + 1 cell center
	assert.Equal(t, int64(15), blueprint.CoordsetLength(cdest))

	// the 24 tet volumes must sum to the hex volume (unit cube)
	var total float64
	vols := tetVolumes(conn, cdest)
	for _, v := range vols {
		total += v
	}
	assert.InEpsilon(t, 1.0, total, 1e-9)

	vals := node.As[int64](d2s.FetchExisting("values")).Slice()
	for _, v := range vals {
		assert.Equal(t, int64(0), v)
	}
}

func tetVolumes(conn []int64, cset *node.Node) []float64 {
	xs := node.As[float64](cset.FetchExisting("values/x")).Slice()
	ys := node.As[float64](cset.FetchExisting("values/y")).Slice()
	zs := node.As[float64](cset.FetchExisting("values/z")).Slice()
	out := make([]float64, len(conn)/4)
	for i := range out {
		a, b, c, d := conn[i*4], conn[i*4+1], conn[i*4+2], conn[i*4+3]
		adx, ady, adz := xs[a]-xs[d], ys[a]-ys[d], zs[a]-zs[d]
		bdx, bdy, bdz := xs[b]-xs[d], ys[b]-ys[d], zs[b]-zs[d]
		cdx, cdy, cdz := xs[c]-xs[d], ys[c]-ys[d], zs[c]-zs[d]
		det := adx*(bdy*cdz-bdz*cdy) - ady*(bdx*cdz-bdz*cdx) + adz*(bdx*cdy-bdy*cdx)
		if det < 0 {
			det = -det
		}
		out[i] = det / 6.0
	}
	return out
}

func TestSidesFieldMapping(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)

	// vertex-associated field over the 9 grid vertices
	vf := mesh.Fetch("fields/vert_field")
	vf.Fetch("association").SetString("vertex")
	vf.Fetch("topology").SetString("mesh")
	node.SetSlice(vf.Fetch("values"), []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})

	topo := mesh.FetchExisting("topologies/mesh")
	_, cdest, fields, _, _ := blueprint.GenerateSidesWithFields(topo, "side_coords", nil)

	// original_vertex_ids: 0..8 then -1 for the four added centroids
	require.True(t, fields.HasChild("original_vertex_ids"))
	ids := node.As[int64](fields.FetchExisting("original_vertex_ids/values")).Slice()
	require.Len(t, ids, int(blueprint.CoordsetLength(cdest)))
	for i := 0; i < 9; i++ {
		assert.Equal(t, int64(i), ids[i])
	}
	for i := 9; i < len(ids); i++ {
		assert.Equal(t, int64(-1), ids[i])
	}

	// original_element_ids: 4 sides per parent cell, in cell order
	eids := node.As[int64](fields.FetchExisting("original_element_ids/values")).Slice()
	require.Len(t, eids, 16)
	for i, id := range eids {
		assert.Equal(t, int64(i/4), id)
	}

	// vertex field: originals copied, centroids get the mean of their
	// incident original vertices. Cell 0 touches vertices {0,1,3,4} ->
	// (1+2+4+5)/4 = 3
	mapped := node.As[float64](fields.FetchExisting("vert_field/values")).Slice()
	for i := 0; i < 9; i++ {
		assert.Equal(t, float64(i+1), mapped[i])
	}
	assert.InEpsilon(t, 3.0, mapped[9], 1e-12)

	// element field: copied to each side unchanged
	ef := node.As[float64](fields.FetchExisting("field/values")).Slice()
	require.Len(t, ef, 16)
	for i, v := range ef {
		assert.Equal(t, float64(i/4), v)
	}
}

func TestSidesVolumeDependentField(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)

	mf := mesh.Fetch("fields/mass")
	mf.Fetch("association").SetString("element")
	mf.Fetch("topology").SetString("mesh")
	mf.Fetch("volume_dependent").SetString("true")
	node.SetSlice(mf.Fetch("values"), []float64{10, 20, 30, 40})

	topo := mesh.FetchExisting("topologies/mesh")
	_, _, fields, _, d2s := blueprint.GenerateSidesWithFields(topo, "side_coords",
		&blueprint.SidesOptions{FieldNames: []string{"mass"}})

	// conservation: the side values of each parent sum to its value
	mapped := node.As[float64](fields.FetchExisting("mass/values")).Slice()
	parents := node.As[int64](d2s.FetchExisting("values")).Slice()
	sums := make([]float64, 4)
	for i, v := range mapped {
		sums[parents[i]] += v
	}
	want := []float64{10, 20, 30, 40}
	for i := range want {
		assert.InEpsilon(t, want[i], sums[i], 1e-9)
	}

	// a volume field is emitted alongside
	require.True(t, fields.HasChild("volume"))
	vols := node.As[float64](fields.FetchExisting("volume/values")).Slice()
	var total float64
	for _, v := range vols {
		total += v
	}
	assert.InEpsilon(t, 4.0, total, 1e-9, "unit quads cover area 4")

	// mapped volume-dependent values are 64-bit floats
	assert.Equal(t, node.Float64, fields.FetchExisting("mass/values").Kind())
}

func TestSidesRejectsVolumeDependentVertexField(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)
	bad := mesh.Fetch("fields/bad")
	bad.Fetch("association").SetString("vertex")
	bad.Fetch("topology").SetString("mesh")
	bad.Fetch("volume_dependent").SetString("true")
	node.SetSlice(bad.Fetch("values"), []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})

	topo := mesh.FetchExisting("topologies/mesh")
	assert.Panics(t, func() {
		blueprint.GenerateSidesWithFields(topo, "side_coords",
			&blueprint.SidesOptions{FieldNames: []string{"bad"}})
	})
}
