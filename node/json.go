package node

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"
)

// JSON renders the canonical annotated text form of the tree. Every leaf
// carries its declared kind and element count, so the form round-trips
// structure, names, kinds, and values exactly:
//
//	{"dtype": "int64", "number_of_elements": 3, "value": [1, 2, 3]}
//
// Offset/stride packing is not preserved; parsed leaves are compact.
func (n *Node) JSON() string {
	var b strings.Builder
	writeJSON(&b, n, true)
	return b.String()
}

// PlainJSON renders the tree as ordinary JSON with bare values, for
// interop with consumers that do not understand the annotated form.
func (n *Node) PlainJSON() string {
	var b strings.Builder
	writeJSON(&b, n, false)
	return b.String()
}

// String returns the canonical annotated text form.
func (n *Node) String() string { return n.JSON() }

func writeJSON(b *strings.Builder, n *Node, annotated bool) {
	switch n.dtype.Kind {
	case Empty:
		b.WriteString("null")
	case Object:
		b.WriteByte('{')
		for i, c := range n.children {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(c.name))
			b.WriteString(": ")
			writeJSON(b, c, annotated)
		}
		b.WriteByte('}')
	case List:
		b.WriteByte('[')
		for i, c := range n.children {
			if i > 0 {
				b.WriteString(", ")
			}
			writeJSON(b, c, annotated)
		}
		b.WriteByte(']')
	default:
		if annotated {
			fmt.Fprintf(b, "{\"dtype\": %q, \"number_of_elements\": %d, \"value\": ",
				n.dtype.Kind, n.dtype.NumElements)
			writeJSONValue(b, n)
			b.WriteByte('}')
		} else {
			writeJSONValue(b, n)
		}
	}
}

func writeJSONValue(b *strings.Builder, n *Node) {
	if n.dtype.Kind == Char8 {
		b.WriteString(strconv.Quote(n.AsString()))
		return
	}
	scalar := n.dtype.NumElements == 1
	if !scalar {
		b.WriteByte('[')
	}
	for i := int64(0); i < n.dtype.NumElements; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		writeJSONElement(b, n, i)
	}
	if !scalar {
		b.WriteByte(']')
	}
}

func writeJSONElement(b *strings.Builder, n *Node, i int64) {
	i64, u64, f64, cls := rawRead(n.bytesFor(i), n.dtype.Kind, byteOrder(n.dtype.Endianness))
	switch cls {
	case 0:
		b.WriteString(strconv.FormatInt(i64, 10))
	case 1:
		b.WriteString(strconv.FormatUint(u64, 10))
	default:
		b.WriteString(strconv.FormatFloat(f64, 'g', -1, 64))
	}
}

// ParseJSON parses the canonical annotated form (or plain JSON) into a
// new tree. Plain numeric values map to int64/float64 leaves, strings to
// char8, null to empty; arrays of uniform numbers become numeric leaves
// and any other array becomes a list.
func ParseJSON(data string) (*Node, error) {
	h := &jsonBuilder{}
	if err := oj.TokenizeString(data, h); err != nil {
		return nil, fmt.Errorf("parsing canonical text: %w", err)
	}
	if h.root == nil {
		return New(), nil
	}
	n := New()
	if err := valueToNode(h.root, n); err != nil {
		return nil, err
	}
	return n, nil
}

// jsonValue is an order-preserving intermediate parse tree. Key order
// matters for object children, which is why tokenizing is used instead
// of unordered map decoding.
type jsonValue struct {
	kind byte // 'o' object, 'a' array, 's' string, 'i' int, 'f' float, 'b' bool, 'n' null
	keys []string
	vals []*jsonValue
	str  string
	i    int64
	f    float64
	b    bool
}

// jsonBuilder implements oj.TokenHandler, assembling jsonValues from the
// token stream.
type jsonBuilder struct {
	root    *jsonValue
	stack   []*jsonValue
	pendKey []string
}

func (h *jsonBuilder) add(v *jsonValue) {
	if len(h.stack) == 0 {
		h.root = v
		return
	}
	top := h.stack[len(h.stack)-1]
	if top.kind == 'o' {
		key := h.pendKey[len(h.pendKey)-1]
		h.pendKey = h.pendKey[:len(h.pendKey)-1]
		top.keys = append(top.keys, key)
	}
	top.vals = append(top.vals, v)
}

func (h *jsonBuilder) push(v *jsonValue) {
	h.add(v)
	h.stack = append(h.stack, v)
}

func (h *jsonBuilder) pop() {
	h.stack = h.stack[:len(h.stack)-1]
}

func (h *jsonBuilder) Null()             { h.add(&jsonValue{kind: 'n'}) }
func (h *jsonBuilder) Bool(v bool)       { h.add(&jsonValue{kind: 'b', b: v}) }
func (h *jsonBuilder) Int(v int64)       { h.add(&jsonValue{kind: 'i', i: v}) }
func (h *jsonBuilder) Float(v float64)   { h.add(&jsonValue{kind: 'f', f: v}) }
func (h *jsonBuilder) Number(num string) { h.add(&jsonValue{kind: 's', str: num}) }
func (h *jsonBuilder) String(v string)   { h.add(&jsonValue{kind: 's', str: v}) }
func (h *jsonBuilder) ObjectStart()      { h.push(&jsonValue{kind: 'o'}) }
func (h *jsonBuilder) ObjectEnd()        { h.pop() }
func (h *jsonBuilder) Key(k string)      { h.pendKey = append(h.pendKey, k) }
func (h *jsonBuilder) ArrayStart()       { h.push(&jsonValue{kind: 'a'}) }
func (h *jsonBuilder) ArrayEnd()         { h.pop() }

func (v *jsonValue) child(key string) *jsonValue {
	for i, k := range v.keys {
		if k == key {
			return v.vals[i]
		}
	}
	return nil
}

func valueToNode(v *jsonValue, n *Node) error {
	switch v.kind {
	case 'n':
	case 'o':
		if dt := v.child("dtype"); dt != nil && dt.kind == 's' {
			return annotatedLeaf(v, dt.str, n)
		}
		for i, key := range v.keys {
			if err := valueToNode(v.vals[i], n.Fetch(key)); err != nil {
				return err
			}
		}
	case 'a':
		if k, ok := uniformNumericKind(v); ok {
			return numericLeaf(v.vals, k, n)
		}
		for _, c := range v.vals {
			if err := valueToNode(c, n.Append()); err != nil {
				return err
			}
		}
	case 's':
		n.SetString(v.str)
	case 'i':
		Set(n, v.i)
	case 'f':
		Set(n, v.f)
	case 'b':
		return fmt.Errorf("boolean values have no element kind")
	}
	return nil
}

func annotatedLeaf(v *jsonValue, kindName string, n *Node) error {
	k, ok := KindByName(kindName)
	if !ok || !k.IsLeaf() {
		return fmt.Errorf("unknown leaf dtype %q", kindName)
	}
	val := v.child("value")
	if val == nil {
		return fmt.Errorf("annotated %s leaf has no value", kindName)
	}
	if k == Char8 {
		if val.kind != 's' {
			return fmt.Errorf("char8 leaf value is not a string")
		}
		n.SetString(val.str)
		return nil
	}
	elems := val.vals
	if val.kind != 'a' {
		elems = []*jsonValue{val}
	}
	return numericLeaf(elems, k, n)
}

func numericLeaf(elems []*jsonValue, k Kind, n *Node) error {
	n.SetDataType(MakeDataType(k, int64(len(elems))))
	order := byteOrder(n.dtype.Endianness)
	for i, e := range elems {
		b := n.bytesFor(int64(i))
		switch e.kind {
		case 'i':
			writeElement(b, k, order, e.i)
		case 'f':
			writeElement(b, k, order, e.f)
		case 's':
			// oversized integers arrive as raw number strings
			if u, err := strconv.ParseUint(e.str, 10, 64); err == nil {
				writeElement(b, k, order, u)
			} else if f, err := strconv.ParseFloat(e.str, 64); err == nil {
				writeElement(b, k, order, f)
			} else {
				return fmt.Errorf("element %d: %q is not numeric", i, e.str)
			}
		default:
			return fmt.Errorf("element %d is not numeric", i)
		}
	}
	return nil
}

func uniformNumericKind(v *jsonValue) (Kind, bool) {
	if len(v.vals) == 0 {
		return Empty, false
	}
	k := Int64
	for _, c := range v.vals {
		switch c.kind {
		case 'i':
		case 'f':
			k = Float64
		default:
			return Empty, false
		}
	}
	return k, true
}
