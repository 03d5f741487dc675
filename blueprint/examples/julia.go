package examples

import (
	"github.com/robert-malhotra/go-meshdata/node"
)

// julia parameters shared by the nestset builders: a coarse 8x8-element
// level-0 patch with a 2x-refined child covering its central window.
const (
	juliaCoarseElems = 8
	juliaWindowLo    = 2 // window origin on the coarse grid, in elements
	juliaWindowElems = 4
	juliaRatio       = 2
	juliaMaxIters    = 100
)

// juliaIters runs the escape iteration for the point z = (zr, zi) under
// the quadratic map with constant c = (cr, ci).
func juliaIters(zr, zi, cr, ci float64) float64 {
	for i := 0; i < juliaMaxIters; i++ {
		if zr*zr+zi*zi > 4 {
			return float64(i)
		}
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
	}
	return juliaMaxIters
}

// juliaPatch builds one uniform single-domain patch (coordset and
// topology) over the given window; juliaField adds its element-associated
// iteration-count field.
func juliaPatch(xMin, yMin, dx, dy float64, nex, ney int64) *node.Node {
	dom := node.New()

	cset := dom.Fetch("coordsets/coords")
	cset.Fetch("type").SetString("uniform")
	node.Set(cset.Fetch("dims/i"), nex+1)
	node.Set(cset.Fetch("dims/j"), ney+1)
	node.Set(cset.Fetch("origin/x"), xMin)
	node.Set(cset.Fetch("origin/y"), yMin)
	node.Set(cset.Fetch("spacing/dx"), dx)
	node.Set(cset.Fetch("spacing/dy"), dy)

	topo := dom.Fetch("topologies/topo")
	topo.Fetch("type").SetString("uniform")
	topo.Fetch("coordset").SetString("coords")

	return dom
}

func juliaField(dom *node.Node, xMin, yMin, dx, dy, cRe, cIm float64, nex, ney int64) {
	iters := make([]float64, nex*ney)
	for e := int64(0); e < nex*ney; e++ {
		ex := xMin + (float64(e%nex)+0.5)*dx
		ey := yMin + (float64(e/nex)+0.5)*dy
		iters[e] = juliaIters(ex, ey, cRe, cIm)
	}
	field := dom.Fetch("fields/iters")
	field.Fetch("association").SetString("element")
	field.Fetch("topology").SetString("topo")
	node.SetSlice(field.Fetch("values"), iters)
}

// JuliaNestsetsSimple builds the canonical two-level AMR fixture: a
// multi-domain mesh whose level-0 domain covers [xMin,xMax]x[yMin,yMax]
// and whose level-1 domain refines the central window at ratio 2, with
// matching parent/child nestset windows on both domains and a julia
// iteration-count field sampled at each level's resolution.
func JuliaNestsetsSimple(xMin, xMax, yMin, yMax, cRe, cIm float64) *node.Node {
	dx := (xMax - xMin) / juliaCoarseElems
	dy := (yMax - yMin) / juliaCoarseElems

	coarse := juliaPatch(xMin, yMin, dx, dy, juliaCoarseElems, juliaCoarseElems)
	juliaField(coarse, xMin, yMin, dx, dy, cRe, cIm, juliaCoarseElems, juliaCoarseElems)

	fineX := xMin + juliaWindowLo*dx
	fineY := yMin + juliaWindowLo*dy
	fineElems := int64(juliaWindowElems * juliaRatio)
	fine := juliaPatch(fineX, fineY, dx/juliaRatio, dy/juliaRatio, fineElems, fineElems)
	juliaField(fine, fineX, fineY, dx/juliaRatio, dy/juliaRatio, cRe, cIm, fineElems, fineElems)

	// level 0 sees the window as a child patch
	coarseNest := coarse.Fetch("nestsets/nest")
	coarseNest.Fetch("topology").SetString("topo")
	coarseNest.Fetch("association").SetString("element")
	wndw := coarseNest.Fetch("windows/window_000001")
	node.Set(wndw.Fetch("domain_id"), int64(1))
	wndw.Fetch("domain_type").SetString("child")
	node.Set(wndw.Fetch("ratio/i"), int64(juliaRatio))
	node.Set(wndw.Fetch("ratio/j"), int64(juliaRatio))
	node.Set(wndw.Fetch("origin/i"), int64(juliaWindowLo))
	node.Set(wndw.Fetch("origin/j"), int64(juliaWindowLo))
	node.Set(wndw.Fetch("dims/i"), int64(juliaWindowElems))
	node.Set(wndw.Fetch("dims/j"), int64(juliaWindowElems))

	// level 1 sees the same window as its parent, in its own index space
	fineNest := fine.Fetch("nestsets/nest")
	fineNest.Fetch("topology").SetString("topo")
	fineNest.Fetch("association").SetString("element")
	wndw = fineNest.Fetch("windows/window_000000")
	node.Set(wndw.Fetch("domain_id"), int64(0))
	wndw.Fetch("domain_type").SetString("parent")
	node.Set(wndw.Fetch("ratio/i"), int64(juliaRatio))
	node.Set(wndw.Fetch("ratio/j"), int64(juliaRatio))
	node.Set(wndw.Fetch("origin/i"), int64(0))
	node.Set(wndw.Fetch("origin/j"), int64(0))
	node.Set(wndw.Fetch("dims/i"), fineElems)
	node.Set(wndw.Fetch("dims/j"), fineElems)

	mesh := node.New()
	mesh.Fetch("domain_000000").SetNode(coarse)
	mesh.Fetch("domain_000001").SetNode(fine)
	return mesh
}
