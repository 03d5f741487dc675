package node

import (
	"fmt"
	"math"
)

// Diff compares n with other and reports true when they differ.
// Structural differences (missing children, kind mismatch, count
// mismatch) are unconditional, except that a signed and an unsigned
// integer leaf compare by value. Leaf elements are compared after
// conversion to the widest common representation, with absolute
// tolerance tol, or relative tolerance when relative is set. info
// receives a parallel tree pinpointing each discrepancy; pass nil to
// discard diagnostics.
//
// Diff is symmetric: Diff(a, b) == Diff(b, a), and Diff(a, a) is false.
func (n *Node) Diff(other *Node, info *Node, tol float64, relative bool) bool {
	if info == nil {
		info = New()
	}
	info.resetKeepIdentity()
	return diffNodes(n, other, info, tol, relative)
}

func diffNodes(a, b *Node, info *Node, tol float64, relative bool) bool {
	if a.dtype.Kind != b.dtype.Kind {
		// signed and unsigned integer leaves still compare by value after
		// conversion to the widest common representation
		if (a.dtype.Kind.IsSignedInteger() && b.dtype.Kind.IsUnsignedInteger()) ||
			(a.dtype.Kind.IsUnsignedInteger() && b.dtype.Kind.IsSignedInteger()) {
			differ := diffLeaves(a, b, info, tol, relative)
			markDiff(info, differ)
			return differ
		}
		diffError(info, fmt.Sprintf("kind mismatch (%s vs %s)", a.dtype.Kind, b.dtype.Kind))
		markDiff(info, true)
		return true
	}

	differ := false
	switch a.dtype.Kind {
	case Empty:
	case Object:
		for _, ac := range a.children {
			bc := b.ChildByName(ac.name)
			if bc == nil {
				diffError(info, fmt.Sprintf("child %q missing from other", ac.name))
				differ = true
				continue
			}
			differ = diffNodes(ac, bc, info.Fetch("children").Fetch(ac.name), tol, relative) || differ
		}
		for _, bc := range b.children {
			if a.ChildByName(bc.name) == nil {
				diffError(info, fmt.Sprintf("child %q missing from self", bc.name))
				differ = true
			}
		}
	case List:
		if len(a.children) != len(b.children) {
			diffError(info, fmt.Sprintf("list length mismatch (%d vs %d)",
				len(a.children), len(b.children)))
			differ = true
		}
		limit := min(len(a.children), len(b.children))
		for i := 0; i < limit; i++ {
			differ = diffNodes(a.children[i], b.children[i],
				info.Fetch("children").Append(), tol, relative) || differ
		}
	case Char8:
		if a.AsString() != b.AsString() {
			diffError(info, fmt.Sprintf("string mismatch (%q vs %q)", a.AsString(), b.AsString()))
			differ = true
		}
	default:
		differ = diffLeaves(a, b, info, tol, relative)
	}
	markDiff(info, differ)
	return differ
}

func diffLeaves(a, b *Node, info *Node, tol float64, relative bool) bool {
	if a.dtype.NumElements != b.dtype.NumElements {
		diffError(info, fmt.Sprintf("element count mismatch (%d vs %d)",
			a.dtype.NumElements, b.dtype.NumElements))
		return true
	}
	av, bv := As[float64](a), As[float64](b)
	differ := false
	for i := int64(0); i < av.Len(); i++ {
		x, y := av.At(i), bv.At(i)
		delta := math.Abs(x - y)
		limit := tol
		if relative {
			limit = tol * math.Max(math.Abs(x), math.Abs(y))
		}
		if delta > limit {
			diffError(info, fmt.Sprintf("element %d differs (%v vs %v)", i, x, y))
			differ = true
		}
	}
	return differ
}

func diffError(info *Node, msg string) {
	info.Fetch("errors").Append().SetString(msg)
}

func markDiff(info *Node, differ bool) {
	if differ {
		info.Fetch("valid").SetString("false")
	} else {
		info.Fetch("valid").SetString("true")
	}
}
