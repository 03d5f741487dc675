package node

import "fmt"

// Endianness selects the byte order of a leaf's stored elements.
// DefaultEndian means the platform's native order (little on all targets
// this library supports).
type Endianness uint8

const (
	DefaultEndian Endianness = iota
	LittleEndian
	BigEndian
)

// DataType describes the layout of one leaf: element kind, element count,
// byte offset of the first element, byte stride between elements, bytes
// per element, and byte order. It is a pure description and owns nothing.
//
// For leaf kinds Stride >= ElementBytes always holds and NumElements may
// be zero (an empty leaf). Object and List carry no numeric layout.
type DataType struct {
	Kind         Kind
	NumElements  int64
	Offset       int64
	Stride       int64
	ElementBytes int64
	Endianness   Endianness
}

// MakeDataType returns a compact (offset 0, stride == element width)
// description of num elements of kind k.
func MakeDataType(k Kind, num int64) DataType {
	eb := k.ElementBytes()
	return DataType{
		Kind:         k,
		NumElements:  num,
		Offset:       0,
		Stride:       eb,
		ElementBytes: eb,
		Endianness:   DefaultEndian,
	}
}

// Compact per-kind constructors.

func Int8DType(num int64) DataType    { return MakeDataType(Int8, num) }
func Int16DType(num int64) DataType   { return MakeDataType(Int16, num) }
func Int32DType(num int64) DataType   { return MakeDataType(Int32, num) }
func Int64DType(num int64) DataType   { return MakeDataType(Int64, num) }
func UInt8DType(num int64) DataType   { return MakeDataType(UInt8, num) }
func UInt16DType(num int64) DataType  { return MakeDataType(UInt16, num) }
func UInt32DType(num int64) DataType  { return MakeDataType(UInt32, num) }
func UInt64DType(num int64) DataType  { return MakeDataType(UInt64, num) }
func Float32DType(num int64) DataType { return MakeDataType(Float32, num) }
func Float64DType(num int64) DataType { return MakeDataType(Float64, num) }
func Char8DType(num int64) DataType   { return MakeDataType(Char8, num) }

// EmptyDType describes a node with no data.
func EmptyDType() DataType { return DataType{Kind: Empty} }

// ObjectDType describes an interior node with named children.
func ObjectDType() DataType { return DataType{Kind: Object} }

// ListDType describes an interior node with anonymous children.
func ListDType() DataType { return DataType{Kind: List} }

// IsEmpty reports whether the description carries neither layout nor
// children semantics.
func (dt DataType) IsEmpty() bool { return dt.Kind == Empty }

// IsObject reports whether the description is for named children.
func (dt DataType) IsObject() bool { return dt.Kind == Object }

// IsList reports whether the description is for anonymous children.
func (dt DataType) IsList() bool { return dt.Kind == List }

// IsInteger reports whether the leaf kind is an integer of either
// signedness.
func (dt DataType) IsInteger() bool { return dt.Kind.IsInteger() }

// IsFloat reports whether the leaf kind is floating point.
func (dt DataType) IsFloat() bool { return dt.Kind.IsFloat() }

// IsNumber reports whether the leaf kind is numeric.
func (dt DataType) IsNumber() bool { return dt.Kind.IsNumber() }

// IsString reports whether the leaf kind is char8.
func (dt DataType) IsString() bool { return dt.Kind.IsString() }

// ElementOffset returns the byte offset of element i relative to the
// start of the backing buffer.
func (dt DataType) ElementOffset(i int64) int64 {
	return dt.Offset + i*dt.Stride
}

// SpannedBytes returns the total byte extent of the described layout,
// measured from the start of the backing buffer to one past the final
// element. Zero-length leaves and interior kinds span nothing.
func (dt DataType) SpannedBytes() int64 {
	if !dt.Kind.IsLeaf() || dt.NumElements == 0 {
		return 0
	}
	return dt.Offset + (dt.NumElements-1)*dt.Stride + dt.ElementBytes
}

// IsCompact reports whether elements are laid out back to back starting
// at offset zero.
func (dt DataType) IsCompact() bool {
	return dt.Offset == 0 && dt.Stride == dt.ElementBytes
}

func (dt DataType) String() string {
	if !dt.Kind.IsLeaf() {
		return dt.Kind.String()
	}
	return fmt.Sprintf("%s[%d]{offset: %d, stride: %d}",
		dt.Kind, dt.NumElements, dt.Offset, dt.Stride)
}
