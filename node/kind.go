package node

import "fmt"

// Kind identifies the element type of a DataType. Interior kinds (Object,
// List) and Empty carry no numeric layout.
type Kind uint8

const (
	Empty Kind = iota
	Object
	List
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	Char8
)

var kindNames = map[Kind]string{
	Empty:   "empty",
	Object:  "object",
	List:    "list",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	UInt8:   "uint8",
	UInt16:  "uint16",
	UInt32:  "uint32",
	UInt64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	Char8:   "char8",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// KindByName resolves a canonical kind name ("int64", "float32", ...).
func KindByName(name string) (Kind, bool) {
	k, ok := kindByName[name]
	return k, ok
}

// ElementBytes returns the fixed per-element byte width of a leaf kind,
// or 0 for empty/interior kinds.
func (k Kind) ElementBytes() int64 {
	switch k {
	case Int8, UInt8, Char8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Int64, UInt64, Float64:
		return 8
	default:
		return 0
	}
}

// IsSignedInteger reports whether k is one of the signed integer kinds.
func (k Kind) IsSignedInteger() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// IsUnsignedInteger reports whether k is one of the unsigned integer kinds.
func (k Kind) IsUnsignedInteger() bool {
	switch k {
	case UInt8, UInt16, UInt32, UInt64:
		return true
	}
	return false
}

// IsInteger reports whether k is an integer kind of either signedness.
func (k Kind) IsInteger() bool {
	return k.IsSignedInteger() || k.IsUnsignedInteger()
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64
}

// IsNumber reports whether k is an integer or floating-point kind.
func (k Kind) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

// IsString reports whether k is the character kind.
func (k Kind) IsString() bool { return k == Char8 }

// IsLeaf reports whether k describes typed element data.
func (k Kind) IsLeaf() bool { return k.IsNumber() || k == Char8 }
