package nbt

// Encode serializes a document back to NBT bytes. It is the byte-exact
// inverse of Decode: re-encoding a decoded tree reproduces the original
// bytes, including compound key order. The root must be a compound; it
// is written with an empty name.
//
// Encoding is total for structurally valid trees. It fails with
// *InconsistentListKindError when a list's children disagree with its
// declared element kind, and *StringTooLongError when a string or name
// does not fit the u16 length prefix.
func Encode(root *Tag) ([]byte, error) {
	if root.Type() != TagCompound {
		return nil, &MalformedTagError{Pos: 0, Reason: "root is not a compound (type " + root.Type().String() + ")"}
	}

	e := &encoder{cur: NewCursor(nil)}
	e.cur.WriteU8(uint8(TagCompound))
	if err := e.writeString(""); err != nil {
		return nil, err
	}
	if err := e.writePayload(root); err != nil {
		return nil, err
	}
	return e.cur.Bytes(), nil
}

type encoder struct {
	cur *Cursor
}

const maxStringLen = 65535

func (e *encoder) writeString(s string) error {
	if len(s) > maxStringLen {
		return &StringTooLongError{Len: len(s)}
	}
	e.cur.WriteU16(uint16(len(s)))
	e.cur.WriteBytes([]byte(s))
	return nil
}

func (e *encoder) writePayload(t *Tag) error {
	switch t.typ {
	case TagByte:
		e.cur.WriteI8(t.byteVal)
	case TagShort:
		e.cur.WriteI16(t.shortVal)
	case TagInt:
		e.cur.WriteI32(t.intVal)
	case TagLong:
		e.cur.WriteI64(t.longVal)
	case TagFloat:
		e.cur.WriteF32(t.floatVal)
	case TagDouble:
		e.cur.WriteF64(t.doubleVal)
	case TagString:
		return e.writeString(t.strVal)
	case TagByteArray:
		e.cur.WriteI32(int32(len(t.byteArr)))
		e.cur.WriteBytes(t.byteArr)
	case TagIntArray:
		e.cur.WriteI32(int32(len(t.intArr)))
		for _, v := range t.intArr {
			e.cur.WriteI32(v)
		}
	case TagLongArray:
		e.cur.WriteI32(int32(len(t.longArr)))
		for _, v := range t.longArr {
			e.cur.WriteI64(v)
		}
	case TagList:
		return e.writeList(t)
	case TagCompound:
		return e.writeCompound(t)
	default:
		return &MalformedTagError{Pos: len(e.cur.Bytes()), Reason: "cannot encode tag of type " + t.typ.String()}
	}
	return nil
}

func (e *encoder) writeList(t *Tag) error {
	for i, child := range t.listVal {
		if child.Type() != t.elemType {
			return &InconsistentListKindError{Declared: t.elemType, Got: child.Type(), Index: i}
		}
	}
	e.cur.WriteU8(uint8(t.elemType))
	e.cur.WriteI32(int32(len(t.listVal)))
	for _, child := range t.listVal {
		if err := e.writePayload(child); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeCompound(t *Tag) error {
	for _, entry := range t.compVal {
		if entry.Value.Type() == TagEnd {
			return &MalformedTagError{Pos: len(e.cur.Bytes()), Reason: "compound entry " + entry.Name + " has no value"}
		}
		e.cur.WriteU8(uint8(entry.Value.Type()))
		if err := e.writeString(entry.Name); err != nil {
			return err
		}
		if err := e.writePayload(entry.Value); err != nil {
			return err
		}
	}
	e.cur.WriteU8(uint8(TagEnd))
	return nil
}
