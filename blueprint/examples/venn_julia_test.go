package examples_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-meshdata/blueprint"
	"github.com/robert-malhotra/go-meshdata/blueprint/examples"
	"github.com/robert-malhotra/go-meshdata/node"
)

func TestVennFullConforms(t *testing.T) {
	mesh := examples.Venn("full", 5, 5, 0.35)
	info := node.New()
	require.True(t, blueprint.VerifyMesh(mesh, info), info.JSON())

	matset := mesh.FetchExisting("matsets/matset")
	assert.True(t, blueprint.MatsetIsMultiBuffer(matset))
	assert.True(t, blueprint.MatsetIsElementDominant(matset))

	// per element, the material fractions partition unity
	vfs := matset.FetchExisting("volume_fractions")
	numElems := vfs.Child(0).DType().NumElements
	for e := int64(0); e < numElems; e++ {
		var sum float64
		for _, mat := range vfs.Children() {
			sum += node.As[float64](mat).At(e)
		}
		assert.InEpsilon(t, 1.0, sum, 1e-12, "element %d fractions must sum to 1", e)
	}

	// something is inside the circles and something is not
	background := node.As[float64](vfs.FetchExisting("background")).Slice()
	var covered, empty int
	for _, b := range background {
		if b == 0 {
			covered++
		} else {
			empty++
		}
	}
	assert.Positive(t, covered)
	assert.Positive(t, empty)
}

func TestVennSparseByElementConforms(t *testing.T) {
	mesh := examples.Venn("sparse_by_element", 5, 5, 0.35)
	info := node.New()
	require.True(t, blueprint.VerifyMesh(mesh, info), info.JSON())

	matset := mesh.FetchExisting("matsets/matset")
	assert.True(t, blueprint.MatsetIsUniBuffer(matset))

	// the interleaved fractions of each element partition unity
	vfs := node.As[float64](matset.FetchExisting("volume_fractions"))
	sizes := node.As[int64](matset.FetchExisting("sizes")).Slice()
	offsets := node.As[int64](matset.FetchExisting("offsets")).Slice()
	ids := node.As[int64](matset.FetchExisting("material_ids"))
	numMats := int64(matset.FetchExisting("material_map").NumChildren())
	for e := range sizes {
		var sum float64
		for j := int64(0); j < sizes[e]; j++ {
			sum += vfs.At(offsets[e] + j)
			assert.Less(t, ids.At(offsets[e]+j), numMats)
		}
		assert.InEpsilon(t, 1.0, sum, 1e-12)
	}
}

func TestVennSpecset(t *testing.T) {
	mesh := examples.Venn("full", 5, 5, 0.35)
	specset := mesh.FetchExisting("specsets/specset")
	require.True(t, blueprint.Verify("specset", specset, node.New()))
	assert.Equal(t, "matset", specset.FetchString("matset"))

	// species of a covered element sum to 1
	vfs := mesh.FetchExisting("matsets/matset/volume_fractions")
	fractions := node.As[float64](vfs.FetchExisting("circle_a"))
	light := node.As[float64](specset.FetchExisting("matset_values/circle_a/species_light"))
	heavy := node.As[float64](specset.FetchExisting("matset_values/circle_a/species_heavy"))
	for e := int64(0); e < fractions.Len(); e++ {
		if fractions.At(e) > 0 {
			assert.InEpsilon(t, 1.0, light.At(e)+heavy.At(e), 1e-12)
		}
	}
}

func TestVennUnknownMatsetTypeIsFatal(t *testing.T) {
	assert.Panics(t, func() { examples.Venn("sparse_by_material", 5, 5, 0.35) })
}

func TestJuliaNestsetsSimpleConforms(t *testing.T) {
	mesh := examples.JuliaNestsetsSimple(-2, 2, -2, 2, -0.8, 0.156)
	info := node.New()
	require.True(t, blueprint.VerifyMesh(mesh, info), info.JSON())

	require.True(t, blueprint.IsMultiDomain(mesh))
	assert.Equal(t, 2, blueprint.NumberOfDomains(mesh))
}

func TestJuliaNestsetWindowsAreReciprocal(t *testing.T) {
	mesh := examples.JuliaNestsetsSimple(-2, 2, -2, 2, -0.8, 0.156)

	coarse := mesh.FetchExisting("domain_000000/nestsets/nest")
	fine := mesh.FetchExisting("domain_000001/nestsets/nest")
	down := coarse.FetchExisting("windows/window_000001")
	up := fine.FetchExisting("windows/window_000000")

	assert.Equal(t, "child", down.FetchString("domain_type"))
	assert.Equal(t, "parent", up.FetchString("domain_type"))
	assert.Equal(t, int64(1), node.Value[int64](down.FetchExisting("domain_id")))
	assert.Equal(t, int64(0), node.Value[int64](up.FetchExisting("domain_id")))

	// both sides agree on the refinement ratio
	for _, axis := range []string{"i", "j"} {
		assert.Equal(t,
			node.Value[int64](down.FetchExisting("ratio/"+axis)),
			node.Value[int64](up.FetchExisting("ratio/"+axis)))
	}

	// the fine patch spans the coarse window scaled by the ratio
	ratio := node.Value[int64](down.FetchExisting("ratio/i"))
	assert.Equal(t,
		node.Value[int64](down.FetchExisting("dims/i"))*ratio,
		node.Value[int64](up.FetchExisting("dims/i")))
}

func TestJuliaFieldsTrackResolution(t *testing.T) {
	mesh := examples.JuliaNestsetsSimple(-2, 2, -2, 2, -0.8, 0.156)

	coarse := mesh.FetchExisting("domain_000000")
	fine := mesh.FetchExisting("domain_000001")

	coarseIters := node.As[float64](coarse.FetchExisting("fields/iters/values"))
	fineIters := node.As[float64](fine.FetchExisting("fields/iters/values"))
	assert.Equal(t, int64(64), coarseIters.Len(), "8x8 coarse elements")
	assert.Equal(t, int64(64), fineIters.Len(), "8x8 refined elements")

	// the fine patch, deeper in the set, must reach higher counts than
	// the coarse minimum
	var coarseMin, fineMax float64 = 1e9, -1
	for i := int64(0); i < coarseIters.Len(); i++ {
		if v := coarseIters.At(i); v < coarseMin {
			coarseMin = v
		}
	}
	for i := int64(0); i < fineIters.Len(); i++ {
		if v := fineIters.At(i); v > fineMax {
			fineMax = v
		}
	}
	assert.Greater(t, fineMax, coarseMin)
}
