package nbt

import "fmt"

// TagType identifies an NBT tag kind. The numeric values are wire codes
// and must not change.
type TagType uint8

const (
	TagEnd       TagType = 0
	TagByte      TagType = 1
	TagShort     TagType = 2
	TagInt       TagType = 3
	TagLong      TagType = 4
	TagFloat     TagType = 5
	TagDouble    TagType = 6
	TagByteArray TagType = 7
	TagString    TagType = 8
	TagList      TagType = 9
	TagCompound  TagType = 10
	TagIntArray  TagType = 11
	TagLongArray TagType = 12
)

// String returns the tag type name.
func (t TagType) String() string {
	switch t {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the thirteen defined wire codes.
func (t TagType) Valid() bool {
	return t <= TagLongArray
}

// Tag represents one node of an NBT document.
type Tag struct {
	typ TagType

	// Scalar payloads (only one valid based on typ)
	byteVal   int8
	shortVal  int16
	intVal    int32
	longVal   int64
	floatVal  float32
	doubleVal float64
	strVal    string

	// Array payloads
	byteArr []byte
	intArr  []int32
	longArr []int64

	// Container payloads
	elemType TagType // declared element kind of a list
	listVal  []*Tag
	compVal  []CompoundEntry
}

// CompoundEntry is a named child of a compound tag. Compounds keep their
// entries in insertion order so that re-encoding is byte-stable.
type CompoundEntry struct {
	Name  string
	Value *Tag
}

// ============================================================
// Constructors
// ============================================================

// Byte creates a Byte tag.
func Byte(v int8) *Tag {
	return &Tag{typ: TagByte, byteVal: v}
}

// Bool creates a Byte tag holding 1 or 0. NBT has no boolean kind;
// Minecraft encodes flags as bytes.
func Bool(v bool) *Tag {
	if v {
		return Byte(1)
	}
	return Byte(0)
}

// Short creates a Short tag.
func Short(v int16) *Tag {
	return &Tag{typ: TagShort, shortVal: v}
}

// Int creates an Int tag.
func Int(v int32) *Tag {
	return &Tag{typ: TagInt, intVal: v}
}

// Long creates a Long tag.
func Long(v int64) *Tag {
	return &Tag{typ: TagLong, longVal: v}
}

// Float creates a Float tag.
func Float(v float32) *Tag {
	return &Tag{typ: TagFloat, floatVal: v}
}

// Double creates a Double tag.
func Double(v float64) *Tag {
	return &Tag{typ: TagDouble, doubleVal: v}
}

// Str creates a String tag.
func Str(v string) *Tag {
	return &Tag{typ: TagString, strVal: v}
}

// ByteArray creates a ByteArray tag.
func ByteArray(v []byte) *Tag {
	return &Tag{typ: TagByteArray, byteArr: v}
}

// IntArray creates an IntArray tag.
func IntArray(v []int32) *Tag {
	return &Tag{typ: TagIntArray, intArr: v}
}

// LongArray creates a LongArray tag.
func LongArray(v []int64) *Tag {
	return &Tag{typ: TagLongArray, longArr: v}
}

// List creates a List tag with the declared element kind. An empty list
// may declare TagEnd. Children of a different kind are rejected at
// encode time; use Append for checked insertion.
func List(elem TagType, children ...*Tag) *Tag {
	return &Tag{typ: TagList, elemType: elem, listVal: children}
}

// StringList creates a List of String tags, a shape Minecraft uses for
// member name sets.
func StringList(values ...string) *Tag {
	children := make([]*Tag, len(values))
	for i, v := range values {
		children[i] = Str(v)
	}
	return List(TagString, children...)
}

// Compound creates a Compound tag from entries, preserving their order.
func Compound(entries ...CompoundEntry) *Tag {
	return &Tag{typ: TagCompound, compVal: entries}
}

// Entry creates a CompoundEntry for use in Compound construction.
func Entry(name string, value *Tag) CompoundEntry {
	return CompoundEntry{Name: name, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Type returns the tag kind. A nil tag reports TagEnd.
func (t *Tag) Type() TagType {
	if t == nil {
		return TagEnd
	}
	return t.typ
}

func (t *Tag) typeErr(want TagType) error {
	if t == nil {
		return fmt.Errorf("nbt: nil tag, expected %s", want)
	}
	return fmt.Errorf("nbt: expected %s, got %s", want, t.typ)
}

// AsByte returns the Byte payload.
func (t *Tag) AsByte() (int8, error) {
	if t == nil || t.typ != TagByte {
		return 0, t.typeErr(TagByte)
	}
	return t.byteVal, nil
}

// AsBool interprets a Byte payload as a flag (nonzero = true).
func (t *Tag) AsBool() (bool, error) {
	v, err := t.AsByte()
	return v != 0, err
}

// AsShort returns the Short payload.
func (t *Tag) AsShort() (int16, error) {
	if t == nil || t.typ != TagShort {
		return 0, t.typeErr(TagShort)
	}
	return t.shortVal, nil
}

// AsInt returns the Int payload.
func (t *Tag) AsInt() (int32, error) {
	if t == nil || t.typ != TagInt {
		return 0, t.typeErr(TagInt)
	}
	return t.intVal, nil
}

// AsLong returns the Long payload.
func (t *Tag) AsLong() (int64, error) {
	if t == nil || t.typ != TagLong {
		return 0, t.typeErr(TagLong)
	}
	return t.longVal, nil
}

// AsFloat returns the Float payload.
func (t *Tag) AsFloat() (float32, error) {
	if t == nil || t.typ != TagFloat {
		return 0, t.typeErr(TagFloat)
	}
	return t.floatVal, nil
}

// AsDouble returns the Double payload.
func (t *Tag) AsDouble() (float64, error) {
	if t == nil || t.typ != TagDouble {
		return 0, t.typeErr(TagDouble)
	}
	return t.doubleVal, nil
}

// AsStr returns the String payload.
func (t *Tag) AsStr() (string, error) {
	if t == nil || t.typ != TagString {
		return "", t.typeErr(TagString)
	}
	return t.strVal, nil
}

// AsByteArray returns the ByteArray payload.
func (t *Tag) AsByteArray() ([]byte, error) {
	if t == nil || t.typ != TagByteArray {
		return nil, t.typeErr(TagByteArray)
	}
	return t.byteArr, nil
}

// AsIntArray returns the IntArray payload.
func (t *Tag) AsIntArray() ([]int32, error) {
	if t == nil || t.typ != TagIntArray {
		return nil, t.typeErr(TagIntArray)
	}
	return t.intArr, nil
}

// AsLongArray returns the LongArray payload.
func (t *Tag) AsLongArray() ([]int64, error) {
	if t == nil || t.typ != TagLongArray {
		return nil, t.typeErr(TagLongArray)
	}
	return t.longArr, nil
}

// AsList returns the list children.
func (t *Tag) AsList() ([]*Tag, error) {
	if t == nil || t.typ != TagList {
		return nil, t.typeErr(TagList)
	}
	return t.listVal, nil
}

// ElemType returns the declared element kind of a list, or TagEnd for
// anything else.
func (t *Tag) ElemType() TagType {
	if t == nil || t.typ != TagList {
		return TagEnd
	}
	return t.elemType
}

// Entries returns the compound entries in insertion order.
func (t *Tag) Entries() ([]CompoundEntry, error) {
	if t == nil || t.typ != TagCompound {
		return nil, t.typeErr(TagCompound)
	}
	return t.compVal, nil
}

// Get returns the named child of a compound, or nil when absent or when
// t is not a compound.
func (t *Tag) Get(name string) *Tag {
	if t == nil || t.typ != TagCompound {
		return nil
	}
	for _, e := range t.compVal {
		if e.Name == name {
			return e.Value
		}
	}
	return nil
}

// Has reports whether a compound contains the named child.
func (t *Tag) Has(name string) bool {
	return t.Get(name) != nil
}

// Len returns the number of children of a list or compound, or the
// element count of an array tag.
func (t *Tag) Len() int {
	if t == nil {
		return 0
	}
	switch t.typ {
	case TagList:
		return len(t.listVal)
	case TagCompound:
		return len(t.compVal)
	case TagByteArray:
		return len(t.byteArr)
	case TagIntArray:
		return len(t.intArr)
	case TagLongArray:
		return len(t.longArr)
	default:
		return 0
	}
}

// Index returns the i-th child of a list.
func (t *Tag) Index(i int) (*Tag, error) {
	if t == nil || t.typ != TagList {
		return nil, t.typeErr(TagList)
	}
	if i < 0 || i >= len(t.listVal) {
		return nil, fmt.Errorf("nbt: list index %d out of range (len=%d)", i, len(t.listVal))
	}
	return t.listVal[i], nil
}

// ============================================================
// Mutators
// ============================================================

// Set stores a named child on a compound, replacing an existing entry in
// place (key order is stable) or appending a new one.
func (t *Tag) Set(name string, value *Tag) error {
	if t == nil || t.typ != TagCompound {
		return t.typeErr(TagCompound)
	}
	for i := range t.compVal {
		if t.compVal[i].Name == name {
			t.compVal[i].Value = value
			return nil
		}
	}
	t.compVal = append(t.compVal, CompoundEntry{Name: name, Value: value})
	return nil
}

// Remove deletes a named child from a compound. Returns true if the
// entry existed.
func (t *Tag) Remove(name string) bool {
	if t == nil || t.typ != TagCompound {
		return false
	}
	for i := range t.compVal {
		if t.compVal[i].Name == name {
			t.compVal = append(t.compVal[:i], t.compVal[i+1:]...)
			return true
		}
	}
	return false
}

// Append adds a child to a list, enforcing the declared element kind.
// A list that declared TagEnd while empty adopts the kind of its first
// appended child.
func (t *Tag) Append(child *Tag) error {
	if t == nil || t.typ != TagList {
		return t.typeErr(TagList)
	}
	if t.elemType == TagEnd && len(t.listVal) == 0 {
		t.elemType = child.Type()
	}
	if child.Type() != t.elemType {
		return &UnexpectedElementKindError{Declared: t.elemType, Got: child.Type()}
	}
	t.listVal = append(t.listVal, child)
	return nil
}

// ============================================================
// Comparison
// ============================================================

// Equal reports deep structural equality, including list element kinds
// and compound key order.
func (t *Tag) Equal(o *Tag) bool {
	if t == nil || o == nil {
		return t == nil && o == nil
	}
	if t.typ != o.typ {
		return false
	}
	switch t.typ {
	case TagEnd:
		return true
	case TagByte:
		return t.byteVal == o.byteVal
	case TagShort:
		return t.shortVal == o.shortVal
	case TagInt:
		return t.intVal == o.intVal
	case TagLong:
		return t.longVal == o.longVal
	case TagFloat:
		return t.floatVal == o.floatVal
	case TagDouble:
		return t.doubleVal == o.doubleVal
	case TagString:
		return t.strVal == o.strVal
	case TagByteArray:
		if len(t.byteArr) != len(o.byteArr) {
			return false
		}
		for i := range t.byteArr {
			if t.byteArr[i] != o.byteArr[i] {
				return false
			}
		}
		return true
	case TagIntArray:
		if len(t.intArr) != len(o.intArr) {
			return false
		}
		for i := range t.intArr {
			if t.intArr[i] != o.intArr[i] {
				return false
			}
		}
		return true
	case TagLongArray:
		if len(t.longArr) != len(o.longArr) {
			return false
		}
		for i := range t.longArr {
			if t.longArr[i] != o.longArr[i] {
				return false
			}
		}
		return true
	case TagList:
		if t.elemType != o.elemType || len(t.listVal) != len(o.listVal) {
			return false
		}
		for i := range t.listVal {
			if !t.listVal[i].Equal(o.listVal[i]) {
				return false
			}
		}
		return true
	case TagCompound:
		if len(t.compVal) != len(o.compVal) {
			return false
		}
		for i := range t.compVal {
			if t.compVal[i].Name != o.compVal[i].Name || !t.compVal[i].Value.Equal(o.compVal[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
