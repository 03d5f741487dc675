package node

// Schema is a standalone tree of DataType describing the layout of a
// hierarchy without holding any data. Interior schemas are either an
// ordered name-to-child mapping (object) or an ordered child sequence
// (list); leaves carry a numeric layout.
//
// A Schema can total the byte extent of a contiguous buffer and drive
// allocation of a Node whose leaves all point inside one owned buffer
// (see NewFromSchema).
type Schema struct {
	dtype    DataType
	names    []string
	children []*Schema
	index    map[string]int
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{dtype: EmptyDType()}
}

// DType returns the schema's layout description.
func (s *Schema) DType() DataType { return s.dtype }

// SetDType makes the schema a leaf with the given layout. Interior
// kinds reset the schema to that interior state.
func (s *Schema) SetDType(dt DataType) {
	s.dtype = dt
	s.names = nil
	s.children = nil
	s.index = nil
}

// NumChildren returns the number of direct children.
func (s *Schema) NumChildren() int { return len(s.children) }

// Child returns the i-th child schema.
func (s *Schema) Child(i int) *Schema {
	if i < 0 || i >= len(s.children) {
		fatalf("schema child index %d out of range [0,%d)", i, len(s.children))
	}
	return s.children[i]
}

// ChildName returns the name of the i-th child of an object schema.
func (s *Schema) ChildName(i int) string {
	if s.dtype.Kind != Object {
		return ""
	}
	return s.names[i]
}

// ChildByName returns the named child of an object schema, or nil.
func (s *Schema) ChildByName(name string) *Schema {
	if s.index == nil {
		return nil
	}
	if i, ok := s.index[name]; ok {
		return s.children[i]
	}
	return nil
}

// AddChild appends a named child, converting an empty schema to an
// object. Duplicate names are fatal.
func (s *Schema) AddChild(name string) *Schema {
	switch s.dtype.Kind {
	case Empty:
		s.dtype = ObjectDType()
	case Object:
	default:
		fatalf("cannot add named child to %s schema", s.dtype.Kind)
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, dup := s.index[name]; dup {
		fatalf("duplicate schema child name %q", name)
	}
	c := NewSchema()
	s.index[name] = len(s.children)
	s.names = append(s.names, name)
	s.children = append(s.children, c)
	return c
}

// Append adds an anonymous child, converting an empty schema to a list.
func (s *Schema) Append() *Schema {
	switch s.dtype.Kind {
	case Empty:
		s.dtype = ListDType()
	case List:
	default:
		fatalf("cannot append to %s schema", s.dtype.Kind)
	}
	c := NewSchema()
	s.children = append(s.children, c)
	return c
}

// TotalBytes returns the byte extent of a buffer described by the
// schema: the maximum end offset over all leaves.
func (s *Schema) TotalBytes() int64 {
	if s.dtype.Kind.IsLeaf() {
		return s.dtype.SpannedBytes()
	}
	var total int64
	for _, c := range s.children {
		if end := c.TotalBytes(); end > total {
			total = end
		}
	}
	return total
}

// compactify returns a copy of s whose leaves are assigned consecutive
// compact offsets into one shared buffer, starting at *cursor.
func (s *Schema) compactify(cursor *int64) *Schema {
	out := NewSchema()
	switch s.dtype.Kind {
	case Object:
		out.dtype = ObjectDType()
		for i, c := range s.children {
			cc := c.compactify(cursor)
			out.index = ensureIndex(out.index)
			out.index[s.names[i]] = len(out.children)
			out.names = append(out.names, s.names[i])
			out.children = append(out.children, cc)
		}
	case List:
		out.dtype = ListDType()
		for _, c := range s.children {
			out.children = append(out.children, c.compactify(cursor))
		}
	case Empty:
	default:
		dt := MakeDataType(s.dtype.Kind, s.dtype.NumElements)
		dt.Offset = *cursor
		*cursor += dt.NumElements * dt.ElementBytes
		out.dtype = dt
	}
	return out
}

func ensureIndex(m map[string]int) map[string]int {
	if m == nil {
		return make(map[string]int)
	}
	return m
}

// NewFromSchema allocates a Node tree for the schema: one contiguous
// zeroed buffer owned by the root, with every descendant leaf aliasing
// its compact slot inside that buffer. The returned root's buffer size
// equals the compacted schema's total extent.
func NewFromSchema(s *Schema) *Node {
	var cursor int64
	compact := s.compactify(&cursor)
	buf := make([]byte, cursor)

	root := New()
	bindSchema(root, compact, buf)
	// The root alone owns the shared buffer, leaf or interior.
	root.state = stateOwned
	root.data = buf
	return root
}

func bindSchema(n *Node, s *Schema, buf []byte) {
	switch s.dtype.Kind {
	case Empty:
	case Object:
		n.dtype = ObjectDType()
		for i, c := range s.children {
			bindSchema(n.addChild(s.names[i]), c, buf)
		}
	case List:
		n.dtype = ListDType()
		for _, c := range s.children {
			bindSchema(n.Append(), c, buf)
		}
	default:
		n.dtype = s.dtype
		n.data = buf
		n.state = stateExternal
	}
}

// SchemaOf derives a schema describing n's current structure and leaf
// layouts.
func SchemaOf(n *Node) *Schema {
	s := NewSchema()
	schemaFrom(n, s)
	return s
}

func schemaFrom(n *Node, s *Schema) {
	switch n.dtype.Kind {
	case Empty:
	case Object:
		s.dtype = ObjectDType()
		for _, c := range n.children {
			schemaFrom(c, s.AddChild(c.name))
		}
	case List:
		s.dtype = ListDType()
		for _, c := range n.children {
			schemaFrom(c, s.Append())
		}
	default:
		s.SetDType(n.dtype)
	}
}
