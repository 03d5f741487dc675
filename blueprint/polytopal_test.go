package blueprint_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-meshdata/blueprint"
	"github.com/robert-malhotra/go-meshdata/blueprint/examples"
	"github.com/robert-malhotra/go-meshdata/node"
)

func TestQuadsToPolygonal(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)
	poly := blueprint.UnstructuredToPolygonal(mesh.FetchExisting("topologies/mesh"))

	mesh.FetchExisting("topologies/mesh").SetNode(poly)
	info := node.New()
	require.True(t, blueprint.VerifyMesh(mesh, info), info.JSON())

	assert.Equal(t, "polygonal", poly.FetchString("elements/shape"))
	sizes := node.As[int64](poly.FetchExisting("elements/sizes")).Slice()
	assert.Equal(t, []int64{4, 4, 4, 4}, sizes)
	offsets := node.As[int64](poly.FetchExisting("elements/offsets")).Slice()
	assert.Equal(t, []int64{0, 4, 8, 12}, offsets)
}

func TestSingleHexToPolyhedral(t *testing.T) {
	mesh := examples.Basic("hexs", 2, 2, 2)
	hexTopo := mesh.FetchExisting("topologies/mesh")
	hexConn := node.As[int64](hexTopo.FetchExisting("elements/connectivity")).Slice()

	poly := blueprint.UnstructuredToPolytopal(hexTopo)
	mesh.FetchExisting("topologies/mesh").SetNode(poly)
	info := node.New()
	require.True(t, blueprint.VerifyMesh(mesh, info), info.JSON())

	assert.Equal(t, "polyhedral", poly.FetchString("elements/shape"))
	assert.Equal(t, []int64{6}, node.As[int64](poly.FetchExisting("elements/sizes")).Slice())
	assert.Equal(t, "polygonal", poly.FetchString("subelements/shape"))

	subSizes := node.As[int64](poly.FetchExisting("subelements/sizes")).Slice()
	require.Len(t, subSizes, 6, "a lone hex factors into six faces")

	// the six faces must have distinct vertex sets drawn from the hex's
	// vertices, and the cell must reference each exactly once
	subConn := node.As[int64](poly.FetchExisting("subelements/connectivity")).Slice()
	seen := map[string]bool{}
	for f := 0; f < 6; f++ {
		verts := append([]int64(nil), subConn[f*4:f*4+4]...)
		sort.Slice(verts, func(i, j int) bool { return verts[i] < verts[j] })
		key := ""
		for _, v := range verts {
			key += string(rune('a' + v))
			assert.Contains(t, hexConn, v)
		}
		assert.False(t, seen[key], "face %d duplicates another face", f)
		seen[key] = true
	}

	cellFaces := node.As[int64](poly.FetchExisting("elements/connectivity")).Slice()
	assert.ElementsMatch(t, []int64{0, 1, 2, 3, 4, 5}, cellFaces)
}

func TestTwoHexesShareAFace(t *testing.T) {
	mesh := examples.Basic("hexs", 3, 2, 2) // 2 hexes along x
	poly := blueprint.UnstructuredToPolytopal(mesh.FetchExisting("topologies/mesh"))

	subSizes := node.As[int64](poly.FetchExisting("subelements/sizes")).Slice()
	assert.Len(t, subSizes, 11, "two face-adjacent hexes share exactly one face")

	sizes := node.As[int64](poly.FetchExisting("elements/sizes")).Slice()
	assert.Equal(t, []int64{6, 6}, sizes)
}
