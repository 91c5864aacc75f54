package nbt

// maxDepth bounds container nesting so that a malicious document cannot
// exhaust the goroutine stack through recursion.
const maxDepth = 512

// Decode parses a complete NBT document. The root must be a compound
// with an empty name, per the file format; anything else fails with
// *MalformedTagError. Truncated input fails with *OutOfBoundsError.
func Decode(data []byte) (*Tag, error) {
	d := &decoder{cur: NewCursor(data)}

	typ, err := d.readType()
	if err != nil {
		return nil, err
	}
	if typ != TagCompound {
		return nil, &MalformedTagError{Pos: 0, Reason: "root is not a compound (type " + typ.String() + ")"}
	}
	name, err := d.readString()
	if err != nil {
		return nil, err
	}
	if name != "" {
		return nil, &MalformedTagError{Pos: 1, Reason: "root compound has a non-empty name"}
	}

	root, err := d.readPayload(TagCompound, 0)
	if err != nil {
		return nil, err
	}
	if d.cur.Remaining() > 0 {
		return nil, &MalformedTagError{Pos: d.cur.Pos(), Reason: "trailing bytes after root compound"}
	}
	return root, nil
}

type decoder struct {
	cur *Cursor
}

// readType reads and validates a one-byte tag type code.
func (d *decoder) readType() (TagType, error) {
	pos := d.cur.Pos()
	b, err := d.cur.ReadU8()
	if err != nil {
		return TagEnd, err
	}
	typ := TagType(b)
	if !typ.Valid() {
		return TagEnd, &MalformedTagError{Pos: pos, Reason: "invalid tag type code " + typ.String()}
	}
	return typ, nil
}

// readString reads a u16 byte-length prefix followed by UTF-8 bytes.
// The prefix counts bytes, not characters.
func (d *decoder) readString() (string, error) {
	n, err := d.cur.ReadU16()
	if err != nil {
		return "", err
	}
	b, err := d.cur.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readCount reads a signed 32-bit array or list count. Negative counts
// appear in some malformed-but-benign files and are clamped to zero
// rather than rejected.
func (d *decoder) readCount() (int, error) {
	n, err := d.cur.ReadI32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, nil
	}
	return int(n), nil
}

// checkCount rejects a count whose elements cannot possibly fit in the
// remaining buffer, so allocations sized from it stay bounded by the
// input length. width is the minimum encoded size of one element.
func (d *decoder) checkCount(n, width int) error {
	if n > d.cur.Remaining()/width {
		return &OutOfBoundsError{Pos: d.cur.Pos(), Need: n * width, Len: d.cur.Pos() + d.cur.Remaining()}
	}
	return nil
}

// minPayloadWidth is the smallest encoded size of a payload of the
// given kind: the fixed width for scalars, the length or count prefix
// for strings and arrays, the header for lists, the End byte for
// compounds.
func minPayloadWidth(typ TagType) int {
	switch typ {
	case TagShort, TagString:
		return 2
	case TagInt, TagFloat, TagByteArray, TagIntArray, TagLongArray:
		return 4
	case TagLong, TagDouble:
		return 8
	case TagList:
		return 5
	default:
		return 1
	}
}

func (d *decoder) readPayload(typ TagType, depth int) (*Tag, error) {
	if depth > maxDepth {
		return nil, &MalformedTagError{Pos: d.cur.Pos(), Reason: "nesting deeper than 512 levels"}
	}

	switch typ {
	case TagByte:
		v, err := d.cur.ReadI8()
		if err != nil {
			return nil, err
		}
		return Byte(v), nil

	case TagShort:
		v, err := d.cur.ReadI16()
		if err != nil {
			return nil, err
		}
		return Short(v), nil

	case TagInt:
		v, err := d.cur.ReadI32()
		if err != nil {
			return nil, err
		}
		return Int(v), nil

	case TagLong:
		v, err := d.cur.ReadI64()
		if err != nil {
			return nil, err
		}
		return Long(v), nil

	case TagFloat:
		v, err := d.cur.ReadF32()
		if err != nil {
			return nil, err
		}
		return Float(v), nil

	case TagDouble:
		v, err := d.cur.ReadF64()
		if err != nil {
			return nil, err
		}
		return Double(v), nil

	case TagString:
		v, err := d.readString()
		if err != nil {
			return nil, err
		}
		return Str(v), nil

	case TagByteArray:
		n, err := d.readCount()
		if err != nil {
			return nil, err
		}
		b, err := d.cur.ReadBytes(n)
		if err != nil {
			return nil, err
		}
		// Copy out of the input buffer: the tree owns its payloads.
		return ByteArray(append([]byte(nil), b...)), nil

	case TagIntArray:
		n, err := d.readCount()
		if err != nil {
			return nil, err
		}
		if err := d.checkCount(n, 4); err != nil {
			return nil, err
		}
		vs := make([]int32, n)
		for i := range vs {
			if vs[i], err = d.cur.ReadI32(); err != nil {
				return nil, err
			}
		}
		return IntArray(vs), nil

	case TagLongArray:
		n, err := d.readCount()
		if err != nil {
			return nil, err
		}
		if err := d.checkCount(n, 8); err != nil {
			return nil, err
		}
		vs := make([]int64, n)
		for i := range vs {
			if vs[i], err = d.cur.ReadI64(); err != nil {
				return nil, err
			}
		}
		return LongArray(vs), nil

	case TagList:
		return d.readList(depth)

	case TagCompound:
		return d.readCompound(depth)

	default:
		return nil, &MalformedTagError{Pos: d.cur.Pos(), Reason: "invalid tag type code " + typ.String()}
	}
}

// readList reads a list payload: element type code, i32 count, then
// payload-only children (no per-element type or name headers).
func (d *decoder) readList(depth int) (*Tag, error) {
	elem, err := d.readType()
	if err != nil {
		return nil, err
	}
	n, err := d.readCount()
	if err != nil {
		return nil, err
	}
	if elem == TagEnd && n > 0 {
		return nil, &UnexpectedElementKindError{Declared: TagEnd, Count: n}
	}
	if err := d.checkCount(n, minPayloadWidth(elem)); err != nil {
		return nil, err
	}

	children := make([]*Tag, 0, n)
	for i := 0; i < n; i++ {
		child, err := d.readPayload(elem, depth+1)
		if err != nil {
			return nil, err
		}
		if child.Type() != elem {
			return nil, &UnexpectedElementKindError{Declared: elem, Got: child.Type()}
		}
		children = append(children, child)
	}
	return List(elem, children...), nil
}

// readCompound reads (type, name, payload) triples until an End code,
// preserving insertion order.
func (d *decoder) readCompound(depth int) (*Tag, error) {
	var entries []CompoundEntry
	for {
		typ, err := d.readType()
		if err != nil {
			return nil, err
		}
		if typ == TagEnd {
			return Compound(entries...), nil
		}
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		value, err := d.readPayload(typ, depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, CompoundEntry{Name: name, Value: value})
	}
}
