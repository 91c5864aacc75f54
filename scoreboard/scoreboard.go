package scoreboard

import (
	"fmt"

	"github.com/svioletg/mcscoreboard/nbt"
)

// RenderType controls how an objective's scores are drawn in-game.
type RenderType string

const (
	RenderInteger RenderType = "integer"
	RenderHearts  RenderType = "hearts"
)

// Objective is a named scoring category.
type Objective struct {
	Name        string
	Criteria    string
	DisplayName string // raw JSON text component
	RenderType  RenderType

	// Extra holds unrecognized keys from the source compound, re-emitted
	// verbatim on save.
	Extra []nbt.CompoundEntry
}

// Score is one player's value for one objective.
type Score struct {
	Player    string
	Objective string
	Value     int32
	Locked    bool

	Extra []nbt.CompoundEntry
}

// Team groups players under shared display options.
type Team struct {
	Name                   string
	DisplayName            string // raw JSON text component
	Color                  string // empty when the team has no color set
	Members                []string
	AllowFriendlyFire      bool
	SeeFriendlyInvisibles  bool
	NameTagVisibility      string
	DeathMessageVisibility string
	CollisionRule          string
	Prefix                 string
	Suffix                 string

	Extra []nbt.CompoundEntry
}

// DisplaySlot assigns an objective to an on-screen slot such as
// "sidebar" or "belowName".
type DisplaySlot struct {
	Slot      string
	Objective string
}

// MissingFieldError is returned by the mapper when a required key is
// absent from a record, or present with the wrong tag kind.
type MissingFieldError struct {
	Record string // record kind: "Objective", "PlayerScore", "Team", "scoreboard"
	Index  int    // position within the record list, -1 for the document root
	Field  string
	Reason string // empty for a plain absence
}

func (e *MissingFieldError) Error() string {
	at := e.Record
	if e.Index >= 0 {
		at = fmt.Sprintf("%s[%d]", e.Record, e.Index)
	}
	if e.Reason != "" {
		return fmt.Sprintf("scoreboard: %s: field %s %s", at, e.Field, e.Reason)
	}
	return fmt.Sprintf("scoreboard: %s: missing required field %s", at, e.Field)
}
