package shape

import "testing"

func TestShapeTableConsistency(t *testing.T) {
	for _, name := range Names() {
		s, ok := ByName(name)
		if !ok {
			t.Fatalf("shape %q missing from table", name)
		}
		if s.IsPoly() {
			if s.Indices != 0 {
				t.Errorf("%s: poly shapes carry no fixed arity", name)
			}
			continue
		}
		if s.Dim >= 1 && len(s.Edges) == 0 && name != "point" {
			t.Errorf("%s: missing edge table", name)
		}
		for _, e := range s.Edges {
			for _, v := range e {
				if v < 0 || v >= s.Indices {
					t.Errorf("%s: edge vertex %d out of range", name, v)
				}
			}
		}
		if s.Dim == 3 && len(s.Faces) == 0 {
			t.Errorf("%s: 3D shape missing face table", name)
		}
		for _, f := range s.Faces {
			for _, v := range f {
				if v < 0 || v >= s.Indices {
					t.Errorf("%s: face vertex %d out of range", name, v)
				}
			}
		}
	}
}

// Every edge of a 3D shape must appear in exactly two of its faces.
func TestFaceEdgeClosure(t *testing.T) {
	for _, name := range []string{"tet", "hex", "wedge", "pyramid"} {
		s, _ := ByName(name)
		counts := map[[2]int]int{}
		for _, f := range s.Faces {
			for i := range f {
				a, b := f[i], f[(i+1)%len(f)]
				if a > b {
					a, b = b, a
				}
				counts[[2]int{a, b}]++
			}
		}
		if len(counts) != len(s.Edges) {
			t.Errorf("%s: faces imply %d edges, table has %d", name, len(counts), len(s.Edges))
		}
		for e, c := range counts {
			if c != 2 {
				t.Errorf("%s: edge %v appears in %d faces, want 2", name, e, c)
			}
		}
	}
}

func TestEntityShape(t *testing.T) {
	hex, _ := ByName("hex")
	if got := hex.EntityShape(2); got != "quad" {
		t.Errorf("hex faces are %q, want quad", got)
	}
	tet, _ := ByName("tet")
	if got := tet.EntityShape(2); got != "tri" {
		t.Errorf("tet faces are %q, want tri", got)
	}
	wedge, _ := ByName("wedge")
	if got := wedge.EntityShape(2); got != "polygonal" {
		t.Errorf("wedge faces are %q, want polygonal", got)
	}
	if got := hex.EntityShape(1); got != "line" {
		t.Errorf("hex edges are %q, want line", got)
	}
}

func TestImplicitCellShape(t *testing.T) {
	if ImplicitCellShape(2) != "quad" || ImplicitCellShape(3) != "hex" || ImplicitCellShape(1) != "line" {
		t.Error("implicit cell shapes do not match the regular-grid mapping")
	}
}
