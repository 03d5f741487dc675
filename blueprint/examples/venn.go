package examples

import (
	"math"

	"github.com/robert-malhotra/go-meshdata/node"
)

// circles of the venn construction, in material-map order after the
// background
var vennCircles = []struct {
	name   string
	cx, cy float64
}{
	{"circle_a", 0.33, 0.33},
	{"circle_b", 0.67, 0.33},
	{"circle_c", 0.5, 0.67},
}

// Venn builds a uniform quad grid over the unit square with three
// overlapping circular materials and a background, the canonical
// multi-material fixture. matsetType selects the matset encoding:
// "full" emits a multi-buffer matset with one dense volume-fraction
// array per material, "sparse_by_element" emits a uni-buffer matset
// with interleaved fractions, material ids, and a one-to-many layout.
// A specset with two species per circle material and an element field
// counting circle overlaps ride along.
func Venn(matsetType string, npx, npy int64, radius float64) *node.Node {
	mesh := node.New()

	cset := mesh.Fetch("coordsets/coords")
	cset.Fetch("type").SetString("uniform")
	node.Set(cset.Fetch("dims/i"), npx)
	node.Set(cset.Fetch("dims/j"), npy)
	node.Set(cset.Fetch("origin/x"), 0.0)
	node.Set(cset.Fetch("origin/y"), 0.0)
	node.Set(cset.Fetch("spacing/dx"), 1.0/float64(npx-1))
	node.Set(cset.Fetch("spacing/dy"), 1.0/float64(npy-1))

	topo := mesh.Fetch("topologies/topo")
	topo.Fetch("type").SetString("uniform")
	topo.Fetch("coordset").SetString("coords")

	// per-element material fractions from the element centers: equal
	// split among the circles covering the center, background otherwise
	nex, ney := npx-1, npy-1
	numElems := nex * ney
	fractions := make([][]float64, 1+len(vennCircles)) // background first
	for m := range fractions {
		fractions[m] = make([]float64, numElems)
	}
	overlap := make([]float64, numElems)

	dx, dy := 1.0/float64(npx-1), 1.0/float64(npy-1)
	for e := int64(0); e < numElems; e++ {
		ex := (float64(e%nex) + 0.5) * dx
		ey := (float64(e/nex) + 0.5) * dy

		var inside []int
		for ci, c := range vennCircles {
			if math.Hypot(ex-c.cx, ey-c.cy) <= radius {
				inside = append(inside, ci+1)
			}
		}
		overlap[e] = float64(len(inside))
		if len(inside) == 0 {
			fractions[0][e] = 1.0
			continue
		}
		for _, m := range inside {
			fractions[m][e] = 1.0 / float64(len(inside))
		}
	}

	matNames := []string{"background"}
	for _, c := range vennCircles {
		matNames = append(matNames, c.name)
	}

	matset := mesh.Fetch("matsets/matset")
	matset.Fetch("topology").SetString("topo")
	for mi, name := range matNames {
		node.Set(matset.Fetch("material_map").Fetch(name), int64(mi))
	}

	switch matsetType {
	case "full":
		for mi, name := range matNames {
			node.SetSlice(matset.Fetch("volume_fractions").Fetch(name), fractions[mi])
		}
	case "sparse_by_element":
		var vfs []float64
		var ids, sizes, offsets []int64
		for e := int64(0); e < numElems; e++ {
			offsets = append(offsets, int64(len(vfs)))
			var count int64
			for mi := range matNames {
				if fractions[mi][e] > 0 {
					vfs = append(vfs, fractions[mi][e])
					ids = append(ids, int64(mi))
					count++
				}
			}
			sizes = append(sizes, count)
		}
		node.SetSlice(matset.Fetch("volume_fractions"), vfs)
		node.SetSlice(matset.Fetch("material_ids"), ids)
		node.SetSlice(matset.Fetch("sizes"), sizes)
		node.SetSlice(matset.Fetch("offsets"), offsets)
	default:
		node.Fatalf("unknown venn matset type %q", matsetType)
	}

	// species fractions within each circle material
	specset := mesh.Fetch("specsets/specset")
	specset.Fetch("matset").SetString("matset")
	for ci, c := range vennCircles {
		light := make([]float64, numElems)
		heavy := make([]float64, numElems)
		for e := int64(0); e < numElems; e++ {
			if frac := fractions[ci+1][e]; frac > 0 {
				light[e] = 0.5 + frac/4
				heavy[e] = 1.0 - light[e]
			}
		}
		mat := specset.Fetch("matset_values").Fetch(c.name)
		node.SetSlice(mat.Fetch("species_light"), light)
		node.SetSlice(mat.Fetch("species_heavy"), heavy)
	}

	field := mesh.Fetch("fields/overlap")
	field.Fetch("association").SetString("element")
	field.Fetch("topology").SetString("topo")
	node.SetSlice(field.Fetch("values"), overlap)

	return mesh
}
