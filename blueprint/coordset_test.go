package blueprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-meshdata/blueprint"
	"github.com/robert-malhotra/go-meshdata/node"
)

// buildUniformCoordset makes the 2D coordset of the conversion tests:
// dims {i:3, j:2}, origin {0,0}, spacing {dx:1, dy:2}.
func buildUniformCoordset() *node.Node {
	cset := node.New()
	cset.Fetch("type").SetString("uniform")
	node.Set(cset.Fetch("dims/i"), int64(3))
	node.Set(cset.Fetch("dims/j"), int64(2))
	node.Set(cset.Fetch("origin/x"), 0.0)
	node.Set(cset.Fetch("origin/y"), 0.0)
	node.Set(cset.Fetch("spacing/dx"), 1.0)
	node.Set(cset.Fetch("spacing/dy"), 2.0)
	return cset
}

func TestUniformToRectilinear(t *testing.T) {
	rect := blueprint.CoordsetUniformToRectilinear(buildUniformCoordset())

	info := node.New()
	require.True(t, blueprint.Verify("coordset", rect, info), info.JSON())
	assert.Equal(t, "rectilinear", rect.FetchString("type"))

	x := node.As[float64](rect.FetchExisting("values/x")).Slice()
	y := node.As[float64](rect.FetchExisting("values/y")).Slice()
	assert.Equal(t, []float64{0, 1, 2}, x)
	assert.Equal(t, []float64{0, 2}, y)
}

func TestUniformToExplicit(t *testing.T) {
	expl := blueprint.CoordsetToExplicit(buildUniformCoordset())

	info := node.New()
	require.True(t, blueprint.Verify("coordset", expl, info), info.JSON())
	assert.Equal(t, "explicit", expl.FetchString("type"))

	x := node.As[float64](expl.FetchExisting("values/x")).Slice()
	y := node.As[float64](expl.FetchExisting("values/y")).Slice()
	assert.Equal(t, []float64{0, 1, 2, 0, 1, 2}, x)
	assert.Equal(t, []float64{0, 0, 0, 2, 2, 2}, y)
}

func TestRectilinearToExplicitMatchesUniformPath(t *testing.T) {
	uniform := buildUniformCoordset()
	viaRect := blueprint.CoordsetToExplicit(blueprint.CoordsetUniformToRectilinear(uniform))
	direct := blueprint.CoordsetToExplicit(uniform)

	info := node.New()
	assert.False(t, direct.Diff(viaRect, info, 1e-12, true),
		"conversion paths disagree:\n%s", info.JSON())
}

func TestExplicitCoordinateFidelity(t *testing.T) {
	// vertex k in Cartesian-product order carries origin + ijk*spacing
	cset := node.New()
	cset.Fetch("type").SetString("uniform")
	node.Set(cset.Fetch("dims/i"), int64(4))
	node.Set(cset.Fetch("dims/j"), int64(3))
	node.Set(cset.Fetch("dims/k"), int64(2))
	node.Set(cset.Fetch("origin/x"), -1.0)
	node.Set(cset.Fetch("origin/y"), 0.5)
	node.Set(cset.Fetch("origin/z"), 2.0)
	node.Set(cset.Fetch("spacing/dx"), 0.25)
	node.Set(cset.Fetch("spacing/dy"), 1.5)
	node.Set(cset.Fetch("spacing/dz"), 3.0)

	expl := blueprint.CoordsetToExplicit(cset)
	x := node.As[float64](expl.FetchExisting("values/x")).Slice()
	y := node.As[float64](expl.FetchExisting("values/y")).Slice()
	z := node.As[float64](expl.FetchExisting("values/z")).Slice()

	k := 0
	for kk := 0; kk < 2; kk++ {
		for jj := 0; jj < 3; jj++ {
			for ii := 0; ii < 4; ii++ {
				assert.InEpsilon(t, -1.0+float64(ii)*0.25, x[k], 1e-12)
				assert.InEpsilon(t, 0.5+float64(jj)*1.5, y[k], 1e-12)
				assert.InEpsilon(t, 2.0+float64(kk)*3.0, z[k], 1e-12)
				k++
			}
		}
	}
}

func TestCoordsetQueries(t *testing.T) {
	cset := buildUniformCoordset()
	assert.Equal(t, 2, blueprint.CoordsetDims(cset))
	assert.Equal(t, int64(6), blueprint.CoordsetLength(cset))
	assert.Equal(t, []string{"x", "y"}, blueprint.CoordsetAxes(cset))

	expl := blueprint.CoordsetToExplicit(cset)
	assert.Equal(t, int64(6), blueprint.CoordsetLength(expl))
}
