package nbt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Framing identifies the outer compression wrapping a .dat file.
// Vanilla writes gzip; some tooling writes zlib or leaves the tag
// stream bare.
type Framing uint8

const (
	FramingNone Framing = 0
	FramingGzip Framing = 1
	FramingZlib Framing = 2
)

// String returns the framing name.
func (f Framing) String() string {
	switch f {
	case FramingNone:
		return "none"
	case FramingGzip:
		return "gzip"
	case FramingZlib:
		return "zlib"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// DetectFraming inspects leading bytes: the gzip magic 1F 8B, a zlib
// header (CM=8, CINFO<=7, valid FCHECK per RFC 1950), or a bare tag
// stream whose first byte is a valid tag type (a compound, in any real
// file). Anything else fails with *UnknownFramingError.
func DetectFraming(data []byte) (Framing, error) {
	if len(data) >= 2 && data[0] == 0x1F && data[1] == 0x8B {
		return FramingGzip, nil
	}
	if len(data) >= 2 && data[0]&0x0F == 8 && data[0]>>4 <= 7 &&
		(uint16(data[0])<<8|uint16(data[1]))%31 == 0 {
		return FramingZlib, nil
	}
	if len(data) >= 1 && TagType(data[0]).Valid() && data[0] != byte(TagEnd) {
		return FramingNone, nil
	}
	var leading byte
	if len(data) > 0 {
		leading = data[0]
	}
	return 0, &UnknownFramingError{Leading: leading}
}

// Decompress auto-detects the framing of file bytes and strips it,
// returning the raw tag stream and the framing found so that a later
// Compress can reproduce it.
func Decompress(data []byte) ([]byte, Framing, error) {
	framing, err := DetectFraming(data)
	if err != nil {
		return nil, 0, err
	}

	switch framing {
	case FramingNone:
		return data, FramingNone, nil

	case FramingGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, 0, fmt.Errorf("nbt: gzip: %w", err)
		}
		defer r.Close()
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, 0, fmt.Errorf("nbt: gzip: %w", err)
		}
		return raw, FramingGzip, nil

	case FramingZlib:
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, 0, fmt.Errorf("nbt: zlib: %w", err)
		}
		defer r.Close()
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, 0, fmt.Errorf("nbt: zlib: %w", err)
		}
		return raw, FramingZlib, nil

	default:
		return nil, 0, fmt.Errorf("nbt: unsupported framing %s", framing)
	}
}

// Compress applies the given framing to a raw tag stream.
func Compress(data []byte, framing Framing) ([]byte, error) {
	switch framing {
	case FramingNone:
		return data, nil

	case FramingGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("nbt: gzip: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("nbt: gzip: %w", err)
		}
		return buf.Bytes(), nil

	case FramingZlib:
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("nbt: zlib: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("nbt: zlib: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("nbt: unsupported framing %s", framing)
	}
}
