// Package nbt implements Minecraft's Named Binary Tag format.
//
// NBT is a self-describing binary serialization format for hierarchical
// typed data. A document is a tree of tags; each tag is either a scalar
// (byte, short, int, long, float, double, string), a fixed-width array
// (byte/int/long array), or a container (list of unnamed homogeneous
// children, compound of named children).
//
// # Wire Format
//
// All multi-byte values are big-endian. A named tag is encoded as:
//
//	type code (1 byte) | name length (u16) | name (UTF-8) | payload
//
// Payloads:
//
//	Byte/Short/Int/Long:  fixed-width signed integer
//	Float/Double:         IEEE-754 binary32/binary64
//	String:               u16 byte length | UTF-8 bytes
//	ByteArray:            i32 count | bytes
//	IntArray/LongArray:   i32 count | elements
//	List:                 element type (1 byte) | i32 count | payloads only
//	Compound:             named tags until an End (0x00) type code
//
// The root of a document is always a compound with an empty name; Decode
// enforces this and Encode reproduces it.
//
// # Round Trip
//
// Encode is the byte-exact inverse of Decode: for any valid document bytes
// b, Encode(Decode(b)) reproduces b, including compound key order.
//
// # Framing
//
// scoreboard.dat and friends wrap the tag stream in gzip (sometimes zlib,
// occasionally nothing). Decompress auto-detects the framing and Compress
// re-applies it, so a load/save cycle preserves the original file framing.
package nbt
