package blueprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-meshdata/blueprint"
	"github.com/robert-malhotra/go-meshdata/blueprint/examples"
	"github.com/robert-malhotra/go-meshdata/node"
)

func TestVerifyMeshFlavors(t *testing.T) {
	flavors := []struct {
		name          string
		npx, npy, npz int64
	}{
		{"uniform", 3, 3, 0},
		{"rectilinear", 3, 3, 0},
		{"structured", 3, 3, 0},
		{"tris", 3, 3, 0},
		{"quads", 3, 3, 0},
		{"polygons", 3, 3, 0},
		{"tets", 3, 3, 3},
		{"hexs", 3, 3, 3},
		{"polyhedra", 3, 3, 3},
	}
	for _, f := range flavors {
		t.Run(f.name, func(t *testing.T) {
			mesh := examples.Basic(f.name, f.npx, f.npy, f.npz)
			info := node.New()
			ok := blueprint.VerifyMesh(mesh, info)
			require.True(t, ok, "mesh %s should verify:\n%s", f.name, info.JSON())
			assert.Equal(t, "true", info.FetchString("valid"))
		})
	}
}

func TestVerifyEmptyMeshIsValid(t *testing.T) {
	info := node.New()
	assert.True(t, blueprint.VerifyMesh(node.New(), info))
}

func TestVerifyRejectsMissingCoordsetReference(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)
	mesh.FetchExisting("topologies/mesh/coordset").SetString("no_such_coords")

	info := node.New()
	assert.False(t, blueprint.VerifyMesh(mesh, info))
	assert.Equal(t, "false", info.FetchString("valid"))
}

func TestVerifyRejectsBadCoordsetType(t *testing.T) {
	mesh := examples.Basic("uniform", 3, 3, 0)
	mesh.FetchExisting("coordsets/coords/type").SetString("bogus")

	info := node.New()
	assert.False(t, blueprint.VerifyMesh(mesh, info))
}

func TestVerifyRejectsFloatConnectivity(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)
	conn := mesh.FetchExisting("topologies/mesh/elements/connectivity")
	node.SetSlice(conn, []float64{0, 1, 2, 3})

	info := node.New()
	assert.False(t, blueprint.VerifyMesh(mesh, info))
}

func TestVerifyFieldRequiresAssociationOrBasis(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)
	mesh.FetchExisting("fields/field").Remove("association")

	info := node.New()
	assert.False(t, blueprint.VerifyMesh(mesh, info))

	// a basis satisfies the requirement too
	mesh.FetchExisting("fields/field").Fetch("basis").SetString("Q1")
	assert.True(t, blueprint.VerifyMesh(mesh, node.New()))
}

func TestVerifyIdempotence(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)

	info1, info2 := node.New(), node.New()
	ok1 := blueprint.VerifyMesh(mesh, info1)
	ok2 := blueprint.VerifyMesh(mesh, info2)

	assert.Equal(t, ok1, ok2)
	assert.False(t, info1.Diff(info2, nil, 0, false),
		"repeated verification must produce identical info trees")
}

func TestVerifyProtocolDispatch(t *testing.T) {
	mesh := examples.Basic("uniform", 3, 3, 0)

	assert.True(t, blueprint.Verify("coordset",
		mesh.FetchExisting("coordsets/coords"), node.New()))
	assert.True(t, blueprint.Verify("topology",
		mesh.FetchExisting("topologies/mesh"), node.New()))
	assert.True(t, blueprint.Verify("field",
		mesh.FetchExisting("fields/field"), node.New()))
	assert.False(t, blueprint.Verify("no_such_protocol", mesh, node.New()))
}

func TestVerifyMultiDomain(t *testing.T) {
	multi := node.New()
	multi.Fetch("domain_000").SetNode(examples.Basic("quads", 3, 3, 0))
	multi.Fetch("domain_001").SetNode(examples.Basic("quads", 4, 4, 0))

	info := node.New()
	require.True(t, blueprint.VerifyMesh(multi, info))

	assert.True(t, blueprint.IsMultiDomain(multi))
	assert.Equal(t, 2, blueprint.NumberOfDomains(multi))
	assert.Len(t, blueprint.Domains(multi), 2)

	single := examples.Basic("quads", 3, 3, 0)
	assert.False(t, blueprint.IsMultiDomain(single))
	assert.Equal(t, 1, blueprint.NumberOfDomains(single))

	wrapped := node.New()
	blueprint.ToMultiDomain(single, wrapped)
	assert.True(t, blueprint.IsMultiDomain(wrapped))
	assert.Equal(t, 1, blueprint.NumberOfDomains(wrapped))
}

func TestVerifyAdjset(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)
	adjset := mesh.Fetch("adjsets/adj")
	adjset.Fetch("topology").SetString("mesh")
	adjset.Fetch("association").SetString("vertex")
	group := adjset.Fetch("groups/group_000001")
	node.SetSlice(group.Fetch("neighbors"), []int64{1})
	node.SetSlice(group.Fetch("values"), []int64{2, 5, 8})

	info := node.New()
	require.True(t, blueprint.VerifyMesh(mesh, info), info.JSON())

	assert.True(t, blueprint.AdjsetIsPairwise(adjset))
	assert.True(t, blueprint.AdjsetIsMaxshare(adjset))
}

func TestVerifyMatsetFlavors(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)

	// multi-buffer element-dominant
	matset := mesh.Fetch("matsets/matset")
	matset.Fetch("topology").SetString("mesh")
	node.SetSlice(matset.Fetch("volume_fractions/steel"), []float64{1, 0.5, 0, 0.25})
	node.SetSlice(matset.Fetch("volume_fractions/air"), []float64{0, 0.5, 1, 0.75})

	info := node.New()
	require.True(t, blueprint.VerifyMesh(mesh, info), info.JSON())
	assert.True(t, blueprint.MatsetIsMultiBuffer(matset))
	assert.False(t, blueprint.MatsetIsUniBuffer(matset))
	assert.True(t, blueprint.MatsetIsElementDominant(matset))

	// uni-buffer requires material ids and a material map
	uni := node.New()
	uni.Fetch("topology").SetString("mesh")
	node.SetSlice(uni.Fetch("volume_fractions"), []float64{1, 1, 1, 1})
	node.SetSlice(uni.Fetch("material_ids"), []int64{0, 0, 1, 1})
	node.SetSlice(uni.Fetch("sizes"), []int64{1, 1, 1, 1})
	node.SetSlice(uni.Fetch("offsets"), []int64{0, 1, 2, 3})
	assert.False(t, blueprint.Verify("matset", uni, node.New()),
		"uni-buffer matset without material_map must fail")
	node.Set(uni.Fetch("material_map/steel"), int64(0))
	node.Set(uni.Fetch("material_map/air"), int64(1))
	assert.True(t, blueprint.Verify("matset", uni, node.New()))
	assert.True(t, blueprint.MatsetIsUniBuffer(uni))
}

func buildSpecset() *node.Node {
	specset := node.New()
	specset.Fetch("matset").SetString("matset")
	for _, mat := range []string{"steel", "air"} {
		vals := specset.Fetch("matset_values").Fetch(mat)
		node.SetSlice(vals.Fetch("species_light"), []float64{0.5, 0.25, 0, 1})
		node.SetSlice(vals.Fetch("species_heavy"), []float64{0.5, 0.75, 1, 0})
	}
	return specset
}

func TestVerifySpecset(t *testing.T) {
	specset := buildSpecset()
	info := node.New()
	require.True(t, blueprint.Verify("specset", specset, info), info.JSON())
	assert.Equal(t, "true", info.FetchString("valid"))

	// a specset rides on a matset; check the reference inside a mesh
	mesh := examples.Basic("quads", 3, 3, 0)
	matset := mesh.Fetch("matsets/matset")
	matset.Fetch("topology").SetString("mesh")
	node.SetSlice(matset.Fetch("volume_fractions/steel"), []float64{1, 0.5, 0, 0.25})
	node.SetSlice(matset.Fetch("volume_fractions/air"), []float64{0, 0.5, 1, 0.75})
	mesh.Fetch("specsets/specset").SetNode(specset)
	info = node.New()
	require.True(t, blueprint.VerifyMesh(mesh, info), info.JSON())
}

func TestVerifySpecsetRejectsMismatchedLengths(t *testing.T) {
	specset := buildSpecset()
	// one material's species mcarray disagrees in length
	node.SetSlice(specset.FetchExisting("matset_values/air/species_light"),
		[]float64{0.5, 0.25})
	node.SetSlice(specset.FetchExisting("matset_values/air/species_heavy"),
		[]float64{0.5, 0.75})

	info := node.New()
	assert.False(t, blueprint.Verify("specset", specset, info))
	assert.Equal(t, "false", info.FetchString("valid"))
}

func TestVerifySpecsetRejectsMissingMatset(t *testing.T) {
	specset := buildSpecset()
	specset.Remove("matset")
	assert.False(t, blueprint.Verify("specset", specset, node.New()))

	// a non-mcarray material entry fails too
	bad := buildSpecset()
	node.SetSlice(bad.FetchExisting("matset_values").Fetch("steel"), []float64{1, 2, 3, 4})
	assert.False(t, blueprint.Verify("specset", bad, node.New()))
}

func TestVerifySpecsetIndex(t *testing.T) {
	idx := node.New()
	idx.Fetch("matset").SetString("matset")
	idx.Fetch("species/species_light")
	idx.Fetch("species/species_heavy")
	idx.Fetch("path").SetString("domain_000000/specsets/specset")
	require.True(t, blueprint.Verify("specset/index", idx, node.New()))

	idx.Remove("path")
	assert.False(t, blueprint.Verify("specset/index", idx, node.New()))
}

func buildNestset() *node.Node {
	nestset := node.New()
	nestset.Fetch("topology").SetString("topo")
	nestset.Fetch("association").SetString("element")
	wndw := nestset.Fetch("windows/window_000001")
	node.Set(wndw.Fetch("domain_id"), int64(1))
	wndw.Fetch("domain_type").SetString("child")
	node.Set(wndw.Fetch("ratio/i"), int64(2))
	node.Set(wndw.Fetch("ratio/j"), int64(2))
	node.Set(wndw.Fetch("origin/i"), int64(2))
	node.Set(wndw.Fetch("origin/j"), int64(2))
	node.Set(wndw.Fetch("dims/i"), int64(4))
	node.Set(wndw.Fetch("dims/j"), int64(4))
	return nestset
}

func TestVerifyNestset(t *testing.T) {
	nestset := buildNestset()
	info := node.New()
	require.True(t, blueprint.Verify("nestset", nestset, info), info.JSON())
	assert.Equal(t, "true", info.FetchString("valid"))
}

func TestVerifyNestsetRejectsBadDomainType(t *testing.T) {
	nestset := buildNestset()
	nestset.FetchExisting("windows/window_000001/domain_type").SetString("sibling")

	info := node.New()
	assert.False(t, blueprint.Verify("nestset", nestset, info))
	assert.Equal(t, "false", info.FetchString("valid"))
}

func TestVerifyNestsetRejectsDimensionMismatch(t *testing.T) {
	// the window's origin must agree in dimension with its ratio
	nestset := buildNestset()
	nestset.FetchExisting("windows/window_000001/origin").Remove("j")
	assert.False(t, blueprint.Verify("nestset", nestset, node.New()))

	// a float domain_id fails too
	bad := buildNestset()
	node.Set(bad.FetchExisting("windows/window_000001/domain_id"), 1.0)
	assert.False(t, blueprint.Verify("nestset", bad, node.New()))
}

func TestVerifyNestsetRejectsMissingRatio(t *testing.T) {
	nestset := buildNestset()
	nestset.FetchExisting("windows/window_000001").Remove("ratio")
	assert.False(t, blueprint.Verify("nestset", nestset, node.New()))
}

func TestVerifyNestsetIndex(t *testing.T) {
	idx := node.New()
	idx.Fetch("topology").SetString("topo")
	idx.Fetch("association").SetString("element")
	idx.Fetch("path").SetString("domain_000000/nestsets/nest")
	require.True(t, blueprint.Verify("nestset/index", idx, node.New()))

	idx.FetchExisting("association").SetString("corner")
	assert.False(t, blueprint.Verify("nestset/index", idx, node.New()))
}

func TestGenerateIndexVerifies(t *testing.T) {
	mesh := examples.Basic("quads", 3, 3, 0)
	idx := blueprint.GenerateIndex(mesh, "domain_000000", 1)

	info := node.New()
	require.True(t, blueprint.Verify("index", idx, info), info.JSON())

	assert.Equal(t, "domain_000000/topologies/mesh",
		idx.FetchString("topologies/mesh/path"))
	assert.Equal(t, int64(1),
		node.Value[int64](idx.FetchExisting("state/number_of_domains")))
	assert.Equal(t, "cartesian",
		idx.FetchString("coordsets/coords/coord_system/type"))
}
