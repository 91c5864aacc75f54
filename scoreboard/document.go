package scoreboard

import (
	"fmt"
	"sort"

	"github.com/svioletg/mcscoreboard/nbt"
)

// Document is the in-memory form of one scoreboard.dat file. It owns
// its records exclusively; nothing is shared across Load calls and no
// internal locking is provided.
type Document struct {
	objectives   []*Objective
	scores       []*Score
	teams        []*Team
	displaySlots []DisplaySlot

	// Unknown keys preserved from the source document.
	dataExtra []nbt.CompoundEntry // under data (e.g. future record lists)
	rootExtra []nbt.CompoundEntry // beside data (e.g. DataVersion)

	framing nbt.Framing
}

// New creates an empty document that will save with gzip framing,
// matching what the game writes.
func New() *Document {
	return &Document{framing: nbt.FramingGzip}
}

// Load parses raw scoreboard.dat file bytes: framing is auto-detected
// and stripped, the tag stream decoded, and the tree projected into
// domain records. The detected framing is remembered for Save.
func Load(data []byte) (*Document, error) {
	raw, framing, err := nbt.Decompress(data)
	if err != nil {
		return nil, err
	}
	root, err := nbt.Decode(raw)
	if err != nil {
		return nil, err
	}
	doc, err := FromTag(root)
	if err != nil {
		return nil, err
	}
	doc.framing = framing
	return doc, nil
}

// Save serializes the document back to file bytes, re-applying the
// framing found at load time. The caller writes the bytes to disk.
func (d *Document) Save() ([]byte, error) {
	raw, err := nbt.Encode(d.ToTag())
	if err != nil {
		return nil, fmt.Errorf("scoreboard: encode: %w", err)
	}
	return nbt.Compress(raw, d.framing)
}

// Framing reports the compression framing Save will apply.
func (d *Document) Framing() nbt.Framing {
	return d.framing
}

// SetFraming overrides the framing applied by Save.
func (d *Document) SetFraming(f nbt.Framing) {
	d.framing = f
}

// ============================================================
// Objectives
// ============================================================

// Objectives lists all objectives in document order.
func (d *Document) Objectives() []*Objective {
	return append([]*Objective(nil), d.objectives...)
}

// Objective returns the named objective, or nil.
func (d *Document) Objective(name string) *Objective {
	for _, o := range d.objectives {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// UpsertObjective replaces the objective with the same name, or appends
// a new one.
func (d *Document) UpsertObjective(o *Objective) {
	for i, existing := range d.objectives {
		if existing.Name == o.Name {
			d.objectives[i] = o
			return
		}
	}
	d.objectives = append(d.objectives, o)
}

// RemoveObjective deletes an objective along with its scores and any
// display slot assignments pointing at it, as the game's own remove
// command does. Returns true if the objective existed.
func (d *Document) RemoveObjective(name string) bool {
	found := false
	for i, o := range d.objectives {
		if o.Name == name {
			d.objectives = append(d.objectives[:i], d.objectives[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}

	kept := d.scores[:0]
	for _, s := range d.scores {
		if s.Objective != name {
			kept = append(kept, s)
		}
	}
	d.scores = kept

	slots := d.displaySlots[:0]
	for _, s := range d.displaySlots {
		if s.Objective != name {
			slots = append(slots, s)
		}
	}
	d.displaySlots = slots
	return true
}

// ============================================================
// Scores
// ============================================================

// Scores lists every score entry in document order.
func (d *Document) Scores() []*Score {
	return append([]*Score(nil), d.scores...)
}

// PlayerScores lists all score entries for one player.
func (d *Document) PlayerScores(player string) []*Score {
	var out []*Score
	for _, s := range d.scores {
		if s.Player == player {
			out = append(out, s)
		}
	}
	return out
}

// ObjectiveScores lists all score entries for one objective.
func (d *Document) ObjectiveScores(objective string) []*Score {
	var out []*Score
	for _, s := range d.scores {
		if s.Objective == objective {
			out = append(out, s)
		}
	}
	return out
}

// Score returns the entry for one player and objective, or nil.
func (d *Document) Score(player, objective string) *Score {
	for _, s := range d.scores {
		if s.Player == player && s.Objective == objective {
			return s
		}
	}
	return nil
}

// SetScore upserts a score value and returns the entry. No foreign-key
// check is made against Objectives: game-semantic validity is the
// caller's concern.
func (d *Document) SetScore(player, objective string, value int32) *Score {
	if s := d.Score(player, objective); s != nil {
		s.Value = value
		return s
	}
	s := &Score{Player: player, Objective: objective, Value: value}
	d.scores = append(d.scores, s)
	return s
}

// RemoveScore deletes one player's entry for one objective. Returns
// true if it existed.
func (d *Document) RemoveScore(player, objective string) bool {
	for i, s := range d.scores {
		if s.Player == player && s.Objective == objective {
			d.scores = append(d.scores[:i], d.scores[i+1:]...)
			return true
		}
	}
	return false
}

// Leaderboard returns one objective's scores ranked by value, highest
// first by default. Ties keep document order.
func (d *Document) Leaderboard(objective string, ascending bool) []*Score {
	ranked := d.ObjectiveScores(objective)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ascending {
			return ranked[i].Value < ranked[j].Value
		}
		return ranked[i].Value > ranked[j].Value
	})
	return ranked
}

// ============================================================
// Teams
// ============================================================

// Teams lists all teams in document order.
func (d *Document) Teams() []*Team {
	return append([]*Team(nil), d.teams...)
}

// Team returns the named team, or nil.
func (d *Document) Team(name string) *Team {
	for _, t := range d.teams {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// UpsertTeam replaces the team with the same name, or appends a new one.
func (d *Document) UpsertTeam(t *Team) {
	for i, existing := range d.teams {
		if existing.Name == t.Name {
			d.teams[i] = t
			return
		}
	}
	d.teams = append(d.teams, t)
}

// RemoveTeam deletes a team. Returns true if it existed.
func (d *Document) RemoveTeam(name string) bool {
	for i, t := range d.teams {
		if t.Name == name {
			d.teams = append(d.teams[:i], d.teams[i+1:]...)
			return true
		}
	}
	return false
}

// ============================================================
// Display slots
// ============================================================

// DisplaySlots lists slot assignments in document order.
func (d *Document) DisplaySlots() []DisplaySlot {
	return append([]DisplaySlot(nil), d.displaySlots...)
}

// SetDisplaySlot assigns an objective to a slot, replacing any previous
// assignment for that slot.
func (d *Document) SetDisplaySlot(slot, objective string) {
	for i, s := range d.displaySlots {
		if s.Slot == slot {
			d.displaySlots[i].Objective = objective
			return
		}
	}
	d.displaySlots = append(d.displaySlots, DisplaySlot{Slot: slot, Objective: objective})
}

// ClearDisplaySlot removes a slot assignment. Returns true if it
// existed.
func (d *Document) ClearDisplaySlot(slot string) bool {
	for i, s := range d.displaySlots {
		if s.Slot == slot {
			d.displaySlots = append(d.displaySlots[:i], d.displaySlots[i+1:]...)
			return true
		}
	}
	return false
}
