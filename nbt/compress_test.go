package nbt

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestDetectFraming(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Framing
	}{
		{"gzip magic", []byte{0x1F, 0x8B, 0x08, 0x00}, FramingGzip},
		{"zlib default", []byte{0x78, 0x9C, 0x01}, FramingZlib},
		{"zlib best", []byte{0x78, 0xDA, 0x01}, FramingZlib},
		{"raw compound", []byte{0x0A, 0x00, 0x00, 0x00}, FramingNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFraming(tt.data)
			if err != nil {
				t.Fatalf("DetectFraming failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFraming = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetectFraming_Unknown(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte{0xFF, 0x00}},
		{"end byte", []byte{0x00, 0x00}},
		// CM=8 and a passing FCHECK, but CINFO above 7: not zlib.
		{"zlib cinfo out of range", []byte{0x88, 0x1C}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DetectFraming(tt.data)
			var unknown *UnknownFramingError
			if !errors.As(err, &unknown) {
				t.Fatalf("error = %v, want *UnknownFramingError", err)
			}
		})
	}
}

func TestCompress_GzipRoundTrip(t *testing.T) {
	framed, err := Compress(scenarioBytes, FramingGzip)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	raw, framing, err := Decompress(framed)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if framing != FramingGzip {
		t.Errorf("framing = %s, want gzip", framing)
	}
	if !bytes.Equal(raw, scenarioBytes) {
		t.Error("decompressed bytes differ from source")
	}

	// The output must remain readable by a standard gzip reader.
	gr, err := gzip.NewReader(bytes.NewReader(framed))
	if err != nil {
		t.Fatalf("gzip.NewReader failed: %v", err)
	}
	defer gr.Close()
	direct, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("gzip read failed: %v", err)
	}
	if !bytes.Equal(direct, scenarioBytes) {
		t.Error("standard gzip reader saw different bytes")
	}
}

func TestCompress_ZlibRoundTrip(t *testing.T) {
	framed, err := Compress(scenarioBytes, FramingZlib)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	raw, framing, err := Decompress(framed)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if framing != FramingZlib {
		t.Errorf("framing = %s, want zlib", framing)
	}
	if !bytes.Equal(raw, scenarioBytes) {
		t.Error("decompressed bytes differ from source")
	}
}

func TestCompress_NonePassthrough(t *testing.T) {
	raw, framing, err := Decompress(scenarioBytes)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if framing != FramingNone {
		t.Errorf("framing = %s, want none", framing)
	}
	if !bytes.Equal(raw, scenarioBytes) {
		t.Error("raw passthrough changed bytes")
	}

	out, err := Compress(raw, FramingNone)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if !bytes.Equal(out, scenarioBytes) {
		t.Error("none framing should pass bytes through unchanged")
	}
}
