package nbt

import (
	"encoding/binary"
	"math"
)

// Cursor is a sequential big-endian reader and writer over a byte
// buffer. Reads advance a position and are bounds-checked; a read past
// the end fails with *OutOfBoundsError and never truncates. Writes
// append to the buffer in the mirrored layout.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for reading from the start.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read position, for error reporting.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Bytes returns the underlying buffer, including everything written.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

func (c *Cursor) need(n int) error {
	if c.pos+n > len(c.buf) {
		return &OutOfBoundsError{Pos: c.pos, Need: n, Len: len(c.buf)}
	}
	return nil
}

// ============================================================
// Reads
// ============================================================

// ReadU8 reads one unsigned byte.
func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// ReadI8 reads one signed byte.
func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

// ReadU16 reads a big-endian unsigned 16-bit integer.
func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadI16 reads a big-endian signed 16-bit integer.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

// ReadI32 reads a big-endian signed 32-bit integer.
func (c *Cursor) ReadI32() (int32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return int32(v), nil
}

// ReadI64 reads a big-endian signed 64-bit integer.
func (c *Cursor) ReadI64() (int64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(c.buf[c.pos:])
	c.pos += 8
	return int64(v), nil
}

// ReadF32 reads a big-endian IEEE-754 binary32 value.
func (c *Cursor) ReadF32() (float32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := math.Float32frombits(binary.BigEndian.Uint32(c.buf[c.pos:]))
	c.pos += 4
	return v, nil
}

// ReadF64 reads a big-endian IEEE-754 binary64 value.
func (c *Cursor) ReadF64() (float64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(c.buf[c.pos:]))
	c.pos += 8
	return v, nil
}

// ReadBytes reads the next n bytes. The returned slice aliases the
// buffer and must not be modified by the caller.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	v := c.buf[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// ============================================================
// Writes
// ============================================================

// WriteU8 appends one byte.
func (c *Cursor) WriteU8(v uint8) {
	c.buf = append(c.buf, v)
}

// WriteI8 appends one signed byte.
func (c *Cursor) WriteI8(v int8) {
	c.buf = append(c.buf, byte(v))
}

// WriteU16 appends a big-endian unsigned 16-bit integer.
func (c *Cursor) WriteU16(v uint16) {
	c.buf = binary.BigEndian.AppendUint16(c.buf, v)
}

// WriteI16 appends a big-endian signed 16-bit integer.
func (c *Cursor) WriteI16(v int16) {
	c.WriteU16(uint16(v))
}

// WriteI32 appends a big-endian signed 32-bit integer.
func (c *Cursor) WriteI32(v int32) {
	c.buf = binary.BigEndian.AppendUint32(c.buf, uint32(v))
}

// WriteI64 appends a big-endian signed 64-bit integer.
func (c *Cursor) WriteI64(v int64) {
	c.buf = binary.BigEndian.AppendUint64(c.buf, uint64(v))
}

// WriteF32 appends a big-endian IEEE-754 binary32 value.
func (c *Cursor) WriteF32(v float32) {
	c.buf = binary.BigEndian.AppendUint32(c.buf, math.Float32bits(v))
}

// WriteF64 appends a big-endian IEEE-754 binary64 value.
func (c *Cursor) WriteF64(v float64) {
	c.buf = binary.BigEndian.AppendUint64(c.buf, math.Float64bits(v))
}

// WriteBytes appends raw bytes.
func (c *Cursor) WriteBytes(v []byte) {
	c.buf = append(c.buf, v...)
}
