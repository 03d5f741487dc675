package node

import "encoding/binary"

// Accessor is a non-owning, strided, typed view over a leaf. Each access
// decodes one element per the leaf's kind and coerces it to T following
// the promotion table (exact integer widening, truncating narrowing,
// bit-pattern signed/unsigned reinterpretation, round-to-nearest for
// integer/float crossings). Out-of-range indices are fatal.
type Accessor[T Numeric] struct {
	data  []byte
	dtype DataType
	order binary.ByteOrder
}

// As returns a coercing accessor over a leaf node. Interior nodes are
// fatal.
func As[T Numeric](n *Node) Accessor[T] {
	n.requireLeaf()
	return Accessor[T]{data: n.data, dtype: n.dtype, order: byteOrder(n.dtype.Endianness)}
}

// Len returns the number of elements in the view.
func (a Accessor[T]) Len() int64 { return a.dtype.NumElements }

// Kind returns the underlying element kind of the viewed leaf.
func (a Accessor[T]) Kind() Kind { return a.dtype.Kind }

// At reads element i, coerced to T.
func (a Accessor[T]) At(i int64) T {
	b := a.elem(i)
	return readElement[T](b, a.dtype.Kind, a.order)
}

// Set writes v into element i, coerced to the leaf's kind. Writes go
// through to the viewed buffer, external or owned.
func (a Accessor[T]) Set(i int64, v T) {
	b := a.elem(i)
	writeElement(b, a.dtype.Kind, a.order, v)
}

// Slice materializes the whole view as a converted copy.
func (a Accessor[T]) Slice() []T {
	out := make([]T, a.dtype.NumElements)
	for i := range out {
		out[i] = a.At(int64(i))
	}
	return out
}

func (a Accessor[T]) elem(i int64) []byte {
	if i < 0 || i >= a.dtype.NumElements {
		fatalf("accessor index %d out of range [0,%d)", i, a.dtype.NumElements)
	}
	off := a.dtype.ElementOffset(i)
	return a.data[off : off+a.dtype.ElementBytes]
}
