// Package o2m implements one-to-many relations: sibling arrays
// {values, sizes, offsets} that encode, for each of N "ones", a
// variable-length list of "manys". Unstructured mesh elements, their
// polyhedral subelements, and the source/derived maps emitted by the
// topology generators all use this encoding.
package o2m

import (
	"fmt"

	"github.com/robert-malhotra/go-meshdata/node"
)

// reserved names that are relation bookkeeping rather than data
var componentNames = map[string]bool{
	"sizes":   true,
	"offsets": true,
	"indices": true,
}

// IsComponent reports whether name is relation bookkeeping ("sizes",
// "offsets", "indices") rather than a data array.
func IsComponent(name string) bool { return componentNames[name] }

// Verify checks that n describes a one-to-many relation: an object with
// at least one numeric data child, integer sizes/offsets/indices when
// present, and equal sizes/offsets lengths. Diagnostics land in info.
func Verify(n *node.Node, info *node.Node) bool {
	res := true
	if n.Kind() != node.Object {
		logError(info, "o2mrelation", "is not an object")
		res = false
	} else {
		hasData := false
		for _, c := range n.Children() {
			if !IsComponent(c.Name()) && c.DType().IsNumber() {
				hasData = true
			}
		}
		if !hasData {
			logError(info, "o2mrelation", "has no data arrays")
			res = false
		}
		for _, comp := range []string{"sizes", "offsets", "indices"} {
			if n.HasChild(comp) && !n.ChildByName(comp).DType().IsInteger() {
				logError(info, "o2mrelation", fmt.Sprintf("'%s' is not an integer array", comp))
				res = false
			}
		}
		if n.HasChild("sizes") && n.HasChild("offsets") {
			ns := n.ChildByName("sizes").DType().NumElements
			no := n.ChildByName("offsets").DType().NumElements
			if ns != no {
				logError(info, "o2mrelation",
					fmt.Sprintf("'sizes' and 'offsets' lengths disagree (%d vs %d)", ns, no))
				res = false
			}
		}
	}
	markValid(info, res)
	return res
}

// GenerateOffsets fills n's "offsets" array with the exclusive prefix
// sum of "sizes", using the sizes' element kind. Missing sizes are
// fatal.
func GenerateOffsets(n *node.Node) {
	sizes := node.As[int64](n.FetchExisting("sizes"))
	offsets := make([]int64, sizes.Len())
	var cursor int64
	for i := int64(0); i < sizes.Len(); i++ {
		offsets[i] = cursor
		cursor += sizes.At(i)
	}
	dst := n.Fetch("offsets")
	tmp := node.New()
	node.SetSlice(tmp, offsets)
	tmp.ToKindInto(n.FetchExisting("sizes").Kind(), dst)
}

// Relation is a decoded one-to-many view: for each one, Size and the
// absolute data index of each many.
type Relation struct {
	sizes   []int64
	offsets []int64
}

// NewRelation decodes the sizes/offsets of a relation node. When
// offsets are absent they are derived as the prefix sum of sizes. A
// node without sizes is an error.
func NewRelation(n *node.Node) (*Relation, error) {
	if !n.HasChild("sizes") {
		return nil, fmt.Errorf("relation at %q has no sizes", n.Path())
	}
	sizes := node.As[int64](n.ChildByName("sizes")).Slice()
	var offsets []int64
	if n.HasChild("offsets") {
		offsets = node.As[int64](n.ChildByName("offsets")).Slice()
		if len(offsets) != len(sizes) {
			return nil, fmt.Errorf("relation at %q: %d offsets for %d sizes",
				n.Path(), len(offsets), len(sizes))
		}
	} else {
		offsets = make([]int64, len(sizes))
		var cursor int64
		for i, s := range sizes {
			offsets[i] = cursor
			cursor += s
		}
	}
	return &Relation{sizes: sizes, offsets: offsets}, nil
}

// NumOnes returns the number of "ones" in the relation.
func (r *Relation) NumOnes() int { return len(r.sizes) }

// Size returns the number of manys attached to one i.
func (r *Relation) Size(i int) int64 { return r.sizes[i] }

// DataIndex returns the absolute index into the data arrays of the j-th
// many of one i.
func (r *Relation) DataIndex(i int, j int64) int64 { return r.offsets[i] + j }

// TotalManys returns the summed sizes.
func (r *Relation) TotalManys() int64 {
	var total int64
	for _, s := range r.sizes {
		total += s
	}
	return total
}

func logError(info *node.Node, protocol, msg string) {
	if info == nil {
		return
	}
	info.Fetch("errors").Append().SetString(fmt.Sprintf("%s: %s", protocol, msg))
}

func markValid(info *node.Node, ok bool) {
	if info == nil {
		return
	}
	if ok {
		info.Fetch("valid").SetString("true")
	} else {
		info.Fetch("valid").SetString("false")
	}
}
