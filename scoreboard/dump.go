package scoreboard

import (
	json "github.com/goccy/go-json"
)

// Dump is a serialization-friendly view of a document, shaped for JSON
// or YAML export: teams and objectives keyed by name, scores nested as
// player → objective → value.
type Dump struct {
	Teams        map[string]TeamDump         `json:"Teams" yaml:"Teams"`
	Objectives   map[string]ObjectiveDump    `json:"Objectives" yaml:"Objectives"`
	PlayerScores map[string]map[string]int32 `json:"PlayerScores" yaml:"PlayerScores"`
	DisplaySlots map[string]string           `json:"DisplaySlots" yaml:"DisplaySlots"`
}

// DisplayNameDump carries a display name both decoded and raw. Display
// names are JSON text components; older saves store plain strings, in
// which case the decoded form is the string itself.
type DisplayNameDump struct {
	Decoded any    `json:"json_dict" yaml:"json_dict"`
	Raw     string `json:"json_string" yaml:"json_string"`
}

// ObjectiveDump mirrors Objective for export.
type ObjectiveDump struct {
	Criteria    string          `json:"CriteriaName" yaml:"CriteriaName"`
	RenderType  string          `json:"RenderType" yaml:"RenderType"`
	DisplayName DisplayNameDump `json:"DisplayName" yaml:"DisplayName"`
}

// TeamDump mirrors Team for export.
type TeamDump struct {
	DisplayName            DisplayNameDump `json:"DisplayName" yaml:"DisplayName"`
	Color                  string          `json:"TeamColor" yaml:"TeamColor"`
	Members                []string        `json:"Players" yaml:"Players"`
	AllowFriendlyFire      bool            `json:"AllowFriendlyFire" yaml:"AllowFriendlyFire"`
	SeeFriendlyInvisibles  bool            `json:"SeeFriendlyInvisibles" yaml:"SeeFriendlyInvisibles"`
	NameTagVisibility      string          `json:"NameTagVisibility" yaml:"NameTagVisibility"`
	DeathMessageVisibility string          `json:"DeathMessageVisibility" yaml:"DeathMessageVisibility"`
	CollisionRule          string          `json:"CollisionRule" yaml:"CollisionRule"`
	Prefix                 string          `json:"MemberNamePrefix" yaml:"MemberNamePrefix"`
	Suffix                 string          `json:"MemberNameSuffix" yaml:"MemberNameSuffix"`
}

// Dump builds an export view of the document. Scores whose player the
// filter rejects are left out; a nil filter includes everyone.
func (d *Document) Dump(f *Filter) *Dump {
	out := &Dump{
		Teams:        make(map[string]TeamDump, len(d.teams)),
		Objectives:   make(map[string]ObjectiveDump, len(d.objectives)),
		PlayerScores: make(map[string]map[string]int32),
		DisplaySlots: make(map[string]string, len(d.displaySlots)),
	}

	for _, t := range d.teams {
		out.Teams[t.Name] = TeamDump{
			DisplayName:            displayName(t.DisplayName),
			Color:                  t.Color,
			Members:                append([]string(nil), t.Members...),
			AllowFriendlyFire:      t.AllowFriendlyFire,
			SeeFriendlyInvisibles:  t.SeeFriendlyInvisibles,
			NameTagVisibility:      t.NameTagVisibility,
			DeathMessageVisibility: t.DeathMessageVisibility,
			CollisionRule:          t.CollisionRule,
			Prefix:                 t.Prefix,
			Suffix:                 t.Suffix,
		}
	}

	for _, o := range d.objectives {
		out.Objectives[o.Name] = ObjectiveDump{
			Criteria:    o.Criteria,
			RenderType:  string(o.RenderType),
			DisplayName: displayName(o.DisplayName),
		}
	}

	for _, s := range d.scores {
		if !f.Admit(s.Player) {
			continue
		}
		byObjective := out.PlayerScores[s.Player]
		if byObjective == nil {
			byObjective = make(map[string]int32)
			out.PlayerScores[s.Player] = byObjective
		}
		byObjective[s.Objective] = s.Value
	}

	for _, slot := range d.displaySlots {
		out.DisplaySlots[slot.Slot] = slot.Objective
	}
	return out
}

func displayName(raw string) DisplayNameDump {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		// Legacy plain-string display name.
		decoded = raw
	}
	return DisplayNameDump{Decoded: decoded, Raw: raw}
}
