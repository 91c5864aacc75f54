// Package scoreboard maps Minecraft's scoreboard.dat NBT document to
// and from domain objects: objectives, player scores, teams, and
// display slot assignments.
//
// The mapper reads the known structure under the root's "data" compound
// (Objectives, PlayerScores, Teams, DisplaySlots) and carries every key
// it does not understand in an opaque side-table per record, so data
// from newer game versions survives a load/save cycle untouched.
//
// Load remembers the file's compression framing and Save re-applies it,
// so a round trip preserves the original file shape. Output key order
// is a fixed schema-defined sequence, making Save deterministic even
// when two source files ordered their keys differently.
package scoreboard
