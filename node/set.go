package node

// Set assigns a single scalar to n, allocating a fresh owned buffer and
// severing any external alias.
func Set[T Numeric](n *Node, v T) {
	k := kindOf[T]()
	n.SetDataType(MakeDataType(k, 1))
	writeElement(n.bytesFor(0), k, byteOrder(n.dtype.Endianness), v)
}

// SetSlice assigns a copy of vals to n as a compact owned leaf.
func SetSlice[T Numeric](n *Node, vals []T) {
	k := kindOf[T]()
	n.SetDataType(MakeDataType(k, int64(len(vals))))
	order := byteOrder(n.dtype.Endianness)
	eb := n.dtype.ElementBytes
	for i, v := range vals {
		off := n.dtype.ElementOffset(int64(i))
		writeElement(n.data[off:off+eb], k, order, v)
	}
}

// SetExternal rebinds n to view vals without copying. Mutating vals is
// visible through n and vice versa; a later Set severs the alias.
//
// The view is byte-typed internally, so vals must remain reachable and
// unmoved for the lifetime of the alias; the usual Go aliasing rules for
// shared slices apply.
func SetExternal[T Numeric](n *Node, vals []T) {
	k := kindOf[T]()
	n.SetExternalBytes(MakeDataType(k, int64(len(vals))), castToBytes(vals))
}

// Value reads the single element of a scalar leaf whose kind matches T
// exactly. Kind mismatch, interior nodes, and non-scalar leaves are
// fatal.
func Value[T Numeric](n *Node) T {
	n.requireLeaf()
	if n.dtype.Kind != kindOf[T]() {
		fatalf("strict read of %s leaf %q as %s", n.dtype.Kind, n.Path(), kindOf[T]())
	}
	if n.dtype.NumElements != 1 {
		fatalf("strict scalar read of %d-element leaf %q", n.dtype.NumElements, n.Path())
	}
	return readElement[T](n.bytesFor(0), n.dtype.Kind, byteOrder(n.dtype.Endianness))
}

// Slice reads all elements of a leaf whose kind matches T exactly into a
// fresh slice. Kind mismatch is fatal.
func Slice[T Numeric](n *Node) []T {
	n.requireLeaf()
	if n.dtype.Kind != kindOf[T]() {
		fatalf("strict read of %s leaf %q as %s", n.dtype.Kind, n.Path(), kindOf[T]())
	}
	out := make([]T, n.dtype.NumElements)
	order := byteOrder(n.dtype.Endianness)
	for i := range out {
		out[i] = readElement[T](n.bytesFor(int64(i)), n.dtype.Kind, order)
	}
	return out
}

// SetString assigns s to n as a char8 leaf (bytes of s, no terminator).
func (n *Node) SetString(s string) {
	n.SetDataType(MakeDataType(Char8, int64(len(s))))
	copy(n.data, s)
}

// AsString reads a char8 leaf back as a string. Non-string leaves are
// fatal.
func (n *Node) AsString() string {
	n.requireLeaf()
	if n.dtype.Kind != Char8 {
		fatalf("strict read of %s leaf %q as string", n.dtype.Kind, n.Path())
	}
	b := make([]byte, n.dtype.NumElements)
	for i := range b {
		b[i] = n.bytesFor(int64(i))[0]
	}
	return string(b)
}

// IsStringValue reports whether n is a char8 leaf.
func (n *Node) IsStringValue() bool {
	return n.dtype.Kind == Char8
}

// SetPathString is shorthand for Fetch(path).SetString(s).
func (n *Node) SetPathString(path, s string) {
	n.Fetch(path).SetString(s)
}

// FetchString is shorthand for FetchExisting(path).AsString().
func (n *Node) FetchString(path string) string {
	return n.FetchExisting(path).AsString()
}
