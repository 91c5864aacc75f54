package nbt

import "fmt"

// OutOfBoundsError is returned when a read would pass the end of the
// buffer. Decoding a truncated document always surfaces this rather
// than a partial tree.
type OutOfBoundsError struct {
	Pos  int // cursor position at the failed read
	Need int // bytes the read required
	Len  int // total buffer length
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("nbt: read of %d bytes at offset %d exceeds buffer length %d", e.Need, e.Pos, e.Len)
}

// MalformedTagError is returned for an unrecognized tag type code, a
// root that is not an anonymous compound, or trailing bytes after the
// root payload.
type MalformedTagError struct {
	Pos    int
	Reason string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("nbt: %s at offset %d", e.Reason, e.Pos)
}

// UnexpectedElementKindError is returned when a list's contents disagree
// with its declared element kind during decode or checked insertion.
// A non-empty list declaring End has no element kind at all; that case
// carries the offending count instead of a Got kind.
type UnexpectedElementKindError struct {
	Declared TagType
	Got      TagType
	Count    int // element count of a non-empty End-kind list
}

func (e *UnexpectedElementKindError) Error() string {
	if e.Declared == TagEnd {
		return fmt.Sprintf("nbt: list of %d elements declares element kind End", e.Count)
	}
	return fmt.Sprintf("nbt: list declares element kind %s but holds %s", e.Declared, e.Got)
}

// InconsistentListKindError is returned by Encode when a list child does
// not match the list's declared element kind. It mirrors the decoder's
// invariant for trees built or mutated in memory.
type InconsistentListKindError struct {
	Declared TagType
	Got      TagType
	Index    int
}

func (e *InconsistentListKindError) Error() string {
	return fmt.Sprintf("nbt: list element %d is %s, declared kind is %s", e.Index, e.Got, e.Declared)
}

// StringTooLongError is returned by Encode when a string or name exceeds
// the format's u16 byte-length prefix.
type StringTooLongError struct {
	Len int
}

func (e *StringTooLongError) Error() string {
	return fmt.Sprintf("nbt: string of %d bytes exceeds the 65535-byte limit", e.Len)
}

// UnknownFramingError is returned when file bytes match none of the
// known compression framings (gzip, zlib, raw NBT).
type UnknownFramingError struct {
	Leading byte
}

func (e *UnknownFramingError) Error() string {
	return fmt.Sprintf("nbt: unrecognized framing (leading byte 0x%02X)", e.Leading)
}
