package node

// dataState records how a Node relates to its backing bytes. The three
// states are deliberately distinct: only stateOwned may drop the buffer,
// stateExternal borrows caller memory, and stateInterior has no bytes of
// its own.
type dataState uint8

const (
	stateInterior dataState = iota
	stateOwned
	stateExternal
)

// Node is the runtime tree. A Node is created empty and becomes a leaf,
// an object, or a list through assignment. See the package documentation
// for the data-state model.
type Node struct {
	name     string
	parent   *Node
	dtype    DataType
	state    dataState
	data     []byte
	children []*Node
	index    map[string]int
}

// New returns an empty, unnamed Node.
func New() *Node {
	return &Node{dtype: EmptyDType()}
}

// Name returns the node's name within its parent object ("" for roots
// and list children).
func (n *Node) Name() string { return n.name }

// Parent returns the enclosing node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the top of the tree containing n.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Path returns the slash-separated path of n from its root.
func (n *Node) Path() string {
	if n.parent == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	for c := n; c.parent != nil; c = c.parent {
		parts = append(parts, c.name)
	}
	// reverse
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return JoinPath(parts...)
}

// DType returns the node's layout description.
func (n *Node) DType() DataType { return n.dtype }

// Kind returns the node's element kind.
func (n *Node) Kind() Kind { return n.dtype.Kind }

// IsExternal reports whether the node's leaf data aliases caller-owned
// memory.
func (n *Node) IsExternal() bool { return n.state == stateExternal }

// BufferBytes returns the size of the buffer this node owns, or 0 when
// the node owns nothing (interior and external nodes).
func (n *Node) BufferBytes() int64 {
	if n.state != stateOwned {
		return 0
	}
	return int64(len(n.data))
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// Children returns the direct children in insertion order. The returned
// slice is shared; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// Child returns the i-th child. Out-of-range indices are fatal.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		fatalf("child index %d out of range [0,%d)", i, len(n.children))
	}
	return n.children[i]
}

// ChildByName returns the named child of an object node, or nil when no
// such child exists.
func (n *Node) ChildByName(name string) *Node {
	if n.index == nil {
		return nil
	}
	if i, ok := n.index[name]; ok {
		return n.children[i]
	}
	return nil
}

// ChildNames returns the names of an object node's children in
// insertion order.
func (n *Node) ChildNames() []string {
	names := make([]string, len(n.children))
	for i, c := range n.children {
		names[i] = c.name
	}
	return names
}

// HasChild reports whether the node is an object with a direct child of
// the given name.
func (n *Node) HasChild(name string) bool {
	return n.ChildByName(name) != nil
}

// HasPath reports whether the slash-separated path resolves to an
// existing descendant.
func (n *Node) HasPath(path string) bool {
	cur := n
	for _, part := range SplitPath(path) {
		cur = cur.ChildByName(part)
		if cur == nil {
			return false
		}
	}
	return true
}

// Fetch descends the slash-separated path, creating any missing
// intermediate object nodes (and converting Empty nodes to objects along
// the way). Calling Fetch on a leaf segment is fatal.
func (n *Node) Fetch(path string) *Node {
	cur := n
	for _, part := range SplitPath(path) {
		if cur.dtype.Kind.IsLeaf() {
			fatalf("cannot descend into leaf %q with path %q", cur.Path(), path)
		}
		next := cur.ChildByName(part)
		if next == nil {
			next = cur.addChild(part)
		}
		cur = next
	}
	return cur
}

// FetchExisting descends the slash-separated path without creating
// anything. A missing segment is fatal.
func (n *Node) FetchExisting(path string) *Node {
	cur := n
	for _, part := range SplitPath(path) {
		next := cur.ChildByName(part)
		if next == nil {
			fatalf("path %q not found under %q", path, n.Path())
		}
		cur = next
	}
	return cur
}

// Append adds and returns a new anonymous child, converting the node to
// a list if it was empty. Appending to an object or leaf is fatal.
func (n *Node) Append() *Node {
	switch n.dtype.Kind {
	case Empty:
		n.dtype = ListDType()
		n.state = stateInterior
	case List:
	default:
		fatalf("cannot append to %s node %q", n.dtype.Kind, n.Path())
	}
	c := New()
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// Remove drops the named child of an object node. Removing a missing
// child is fatal.
func (n *Node) Remove(name string) {
	i, ok := int(0), false
	if n.index != nil {
		i, ok = n.index[name]
	}
	if !ok {
		fatalf("cannot remove missing child %q of %q", name, n.Path())
	}
	n.children[i].parent = nil
	n.children = append(n.children[:i], n.children[i+1:]...)
	delete(n.index, name)
	for j := i; j < len(n.children); j++ {
		n.index[n.children[j].name] = j
	}
}

// Reset returns the node to the empty state, dropping children and any
// owned buffer.
func (n *Node) Reset() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.index = nil
	n.data = nil
	n.state = stateInterior
	n.dtype = EmptyDType()
}

// addChild creates a named child, converting an Empty node to an object.
func (n *Node) addChild(name string) *Node {
	switch n.dtype.Kind {
	case Empty:
		n.dtype = ObjectDType()
		n.state = stateInterior
	case Object:
	default:
		fatalf("cannot add named child %q to %s node %q", name, n.dtype.Kind, n.Path())
	}
	if n.index == nil {
		n.index = make(map[string]int)
	}
	if _, dup := n.index[name]; dup {
		fatalf("duplicate child name %q under %q", name, n.Path())
	}
	c := New()
	c.name = name
	c.parent = n
	n.index[name] = len(n.children)
	n.children = append(n.children, c)
	return c
}

// SetNode deep-copies src into n: structure is rebuilt and every leaf is
// copied into a fresh compact owned buffer, severing any external alias.
func (n *Node) SetNode(src *Node) {
	if src == n {
		return
	}
	n.resetKeepIdentity()
	n.assignFrom(src, false)
}

// SetExternalNode rebinds n to describe src's tree without copying leaf
// bytes: every leaf of n aliases src's backing memory. The caller keeps
// responsibility for the lifetime of src's buffers.
func (n *Node) SetExternalNode(src *Node) {
	if src == n {
		return
	}
	n.resetKeepIdentity()
	n.assignFrom(src, true)
}

func (n *Node) resetKeepIdentity() {
	name, parent := n.name, n.parent
	n.Reset()
	n.name, n.parent = name, parent
}

func (n *Node) assignFrom(src *Node, external bool) {
	switch src.dtype.Kind {
	case Empty:
		n.dtype = EmptyDType()
	case Object:
		n.dtype = ObjectDType()
		for _, c := range src.children {
			n.addChild(c.name).assignFrom(c, external)
		}
	case List:
		n.dtype = ListDType()
		for _, c := range src.children {
			n.Append().assignFrom(c, external)
		}
	default:
		if external {
			n.dtype = src.dtype
			n.data = src.data
			n.state = stateExternal
			return
		}
		n.setCompactCopy(src.dtype, src.data)
	}
}

// setCompactCopy rebuilds n as an owned compact leaf holding the
// elements described by (dt, data).
func (n *Node) setCompactCopy(dt DataType, data []byte) {
	out := MakeDataType(dt.Kind, dt.NumElements)
	buf := make([]byte, out.SpannedBytes())
	if dt.IsCompact() && dt.Endianness == out.Endianness {
		copy(buf, data[:out.SpannedBytes()])
	} else {
		srcOrder, dstOrder := byteOrder(dt.Endianness), byteOrder(out.Endianness)
		eb := dt.ElementBytes
		for i := int64(0); i < dt.NumElements; i++ {
			so := dt.ElementOffset(i)
			i64, u64, f64, cls := rawRead(data[so:so+eb], dt.Kind, srcOrder)
			do := out.ElementOffset(i)
			switch cls {
			case 0:
				writeElement(buf[do:do+eb], out.Kind, dstOrder, i64)
			case 1:
				writeElement(buf[do:do+eb], out.Kind, dstOrder, u64)
			default:
				writeElement(buf[do:do+eb], out.Kind, dstOrder, f64)
			}
		}
	}
	n.dtype = out
	n.data = buf
	n.state = stateOwned
	n.children = nil
	n.index = nil
}

// SetDataType rebuilds n as an owned, zeroed leaf laid out compactly per
// dt's kind and count. Interior kinds reset the node to that interior
// state instead.
func (n *Node) SetDataType(dt DataType) {
	switch dt.Kind {
	case Empty:
		n.resetKeepIdentity()
	case Object:
		n.resetKeepIdentity()
		n.dtype = ObjectDType()
	case List:
		n.resetKeepIdentity()
		n.dtype = ListDType()
	default:
		out := MakeDataType(dt.Kind, dt.NumElements)
		n.dtype = out
		n.data = make([]byte, out.SpannedBytes())
		n.state = stateOwned
		n.children = nil
		n.index = nil
	}
}

// SetExternalBytes rebinds n as a leaf viewing caller-owned bytes with
// the given layout. The layout must lie inside buf.
func (n *Node) SetExternalBytes(dt DataType, buf []byte) {
	if !dt.Kind.IsLeaf() {
		fatalf("SetExternalBytes requires a leaf kind, got %s", dt.Kind)
	}
	if span := dt.SpannedBytes(); span > int64(len(buf)) {
		fatalf("external layout spans %d bytes but buffer holds %d", span, len(buf))
	}
	n.dtype = dt
	n.data = buf
	n.state = stateExternal
	n.children = nil
	n.index = nil
}

// bytesFor returns the byte window of element i of a leaf node.
func (n *Node) bytesFor(i int64) []byte {
	if i < 0 || i >= n.dtype.NumElements {
		fatalf("element index %d out of range [0,%d) at %q", i, n.dtype.NumElements, n.Path())
	}
	off := n.dtype.ElementOffset(i)
	return n.data[off : off+n.dtype.ElementBytes]
}

// requireLeaf is the common guard for typed element access.
func (n *Node) requireLeaf() {
	if !n.dtype.Kind.IsLeaf() {
		fatalf("node %q is %s, not a typed leaf", n.Path(), n.dtype.Kind)
	}
}
