package examples_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-meshdata/blueprint"
	"github.com/robert-malhotra/go-meshdata/blueprint/examples"
	"github.com/robert-malhotra/go-meshdata/node"
)

func TestBasicMeshesConform(t *testing.T) {
	cases := []struct {
		meshType      string
		npx, npy, npz int64
		elements      int64
	}{
		{"uniform", 4, 3, 0, 6},
		{"rectilinear", 4, 3, 0, 6},
		{"structured", 4, 3, 0, 6},
		{"tris", 3, 3, 0, 8},
		{"quads", 3, 3, 0, 4},
		{"polygons", 3, 3, 0, 4},
		{"tets", 2, 2, 2, 6},
		{"hexs", 3, 3, 2, 4},
		{"polyhedra", 2, 2, 2, 1},
	}
	for _, tc := range cases {
		t.Run(tc.meshType, func(t *testing.T) {
			mesh := examples.Basic(tc.meshType, tc.npx, tc.npy, tc.npz)
			info := node.New()
			require.True(t, blueprint.VerifyMesh(mesh, info), info.JSON())

			topo := mesh.FetchExisting("topologies/mesh")
			cset := mesh.FetchExisting("coordsets/coords")
			assert.Equal(t, tc.elements, blueprint.TopologyLength(topo, cset))

			// the element field always spans the elements
			field := mesh.FetchExisting("fields/field")
			assert.Equal(t, tc.elements, field.FetchExisting("values").DType().NumElements)
		})
	}
}

func TestBasicUnknownTypeIsFatal(t *testing.T) {
	assert.Panics(t, func() { examples.Basic("nonagons", 3, 3, 0) })
}
