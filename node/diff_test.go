package node

import "testing"

func buildDiffSample() *Node {
	n := New()
	SetSlice(n.Fetch("a"), []float64{1, 2, 3})
	Set(n.Fetch("b/c"), int64(5))
	n.Fetch("name").SetString("sample")
	return n
}

func TestDiffEqualTrees(t *testing.T) {
	a := buildDiffSample()
	b := buildDiffSample()

	info := New()
	if a.Diff(b, info, 0, false) {
		t.Fatalf("equal trees reported different:\n%s", info)
	}
}

func TestDiffSelf(t *testing.T) {
	a := buildDiffSample()
	if a.Diff(a, nil, 0, false) {
		t.Fatal("diff(a, a) must be false")
	}
}

func TestDiffSymmetry(t *testing.T) {
	a := buildDiffSample()
	b := buildDiffSample()
	Set(b.Fetch("extra"), int64(1))
	As[float64](b.Fetch("a")).Set(0, 9)

	if a.Diff(b, nil, 0, false) != b.Diff(a, nil, 0, false) {
		t.Fatal("diff must be symmetric")
	}
}

func TestDiffStructural(t *testing.T) {
	a := buildDiffSample()
	b := buildDiffSample()
	b.Remove("b")

	info := New()
	if !a.Diff(b, info, 0, false) {
		t.Fatal("missing child must be a difference")
	}
	if info.FetchString("valid") != "false" {
		t.Error("info root should be marked invalid")
	}
}

func TestDiffLeafVsInteriorIsUnconditional(t *testing.T) {
	a, b := New(), New()
	SetSlice(a, []int32{1, 2})
	Set(b.Fetch("child"), int64(1))
	if !a.Diff(b, nil, 1e9, false) {
		t.Fatal("leaf/interior mismatch must differ regardless of tolerance")
	}
}

func TestDiffTolerance(t *testing.T) {
	a, b := New(), New()
	SetSlice(a, []float64{1.0, 2.0})
	SetSlice(b, []float64{1.0005, 2.0})

	if a.Diff(b, nil, 1e-2, false) {
		t.Error("difference within absolute tolerance reported")
	}
	if !a.Diff(b, nil, 1e-6, false) {
		t.Error("difference beyond absolute tolerance missed")
	}
	if a.Diff(b, nil, 1e-3, true) {
		t.Error("difference within relative tolerance reported")
	}
}

func TestDiffSignedUnsignedComparesValues(t *testing.T) {
	a, c := New(), New()
	SetSlice(a, []int64{1, 2, 3})
	SetSlice(c, []uint64{1, 2, 3})
	// same values under different signedness agree after conversion
	if a.Diff(c, nil, 0, false) {
		t.Error("equal values across signedness must not differ")
	}

	d := New()
	SetSlice(d, []uint64{1, 2, 4})
	if !a.Diff(d, nil, 0, false) {
		t.Error("disagreeing values across signedness must differ")
	}
}
