package node

// ToKind returns a deep copy of n with every numeric leaf converted to
// kind k. Structure, names, and element counts are unchanged; char8
// leaves are copied as is. Converting to an interior kind is fatal.
func (n *Node) ToKind(k Kind) *Node {
	if !k.IsNumber() {
		fatalf("ToKind target %s is not a numeric kind", k)
	}
	dest := New()
	n.toKindInto(k, dest)
	return dest
}

// ToKindInto converts into an existing destination node, replacing its
// contents.
func (n *Node) ToKindInto(k Kind, dest *Node) {
	if !k.IsNumber() {
		fatalf("ToKind target %s is not a numeric kind", k)
	}
	dest.resetKeepIdentity()
	n.toKindInto(k, dest)
}

func (n *Node) toKindInto(k Kind, dest *Node) {
	switch n.dtype.Kind {
	case Empty:
	case Object:
		dest.dtype = ObjectDType()
		for _, c := range n.children {
			c.toKindInto(k, dest.addChild(c.name))
		}
	case List:
		dest.dtype = ListDType()
		for _, c := range n.children {
			c.toKindInto(k, dest.Append())
		}
	case Char8:
		dest.setCompactCopy(n.dtype, n.data)
	default:
		dest.SetDataType(MakeDataType(k, n.dtype.NumElements))
		srcOrder := byteOrder(n.dtype.Endianness)
		dstOrder := byteOrder(dest.dtype.Endianness)
		for i := int64(0); i < n.dtype.NumElements; i++ {
			i64, u64, f64, cls := rawRead(n.bytesFor(i), n.dtype.Kind, srcOrder)
			b := dest.bytesFor(i)
			switch cls {
			case 0:
				writeElement(b, k, dstOrder, i64)
			case 1:
				writeElement(b, k, dstOrder, u64)
			default:
				writeElement(b, k, dstOrder, f64)
			}
		}
	}
}

// Compact rewrites every leaf of n into a fresh compact owned buffer,
// eliminating offset and stride gaps and severing external aliases.
func (n *Node) Compact() {
	switch n.dtype.Kind {
	case Object, List:
		for _, c := range n.children {
			c.Compact()
		}
	case Empty:
	default:
		if n.state == stateOwned && n.dtype.IsCompact() &&
			int64(len(n.data)) == n.dtype.SpannedBytes() {
			return
		}
		n.setCompactCopy(n.dtype, n.data)
	}
}

// TotalBytes returns the byte extent of the data reachable from n: for a
// leaf its compact size (element count times element width), for
// interiors the sum over children of their compact sizes. It reflects the compact footprint, not padding in any
// shared buffer.
func (n *Node) TotalBytes() int64 {
	switch n.dtype.Kind {
	case Object, List:
		var total int64
		for _, c := range n.children {
			total += c.TotalBytes()
		}
		return total
	case Empty:
		return 0
	default:
		return n.dtype.NumElements * n.dtype.ElementBytes
	}
}
