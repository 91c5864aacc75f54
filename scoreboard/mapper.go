package scoreboard

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/svioletg/mcscoreboard/nbt"
)

// Known key names per record kind. Anything else found in a record
// compound is preserved opaquely in its Extra table.
var (
	objectiveKeys = keySet("Name", "CriteriaName", "DisplayName", "RenderType")
	scoreKeys     = keySet("Name", "Objective", "Score", "Locked")
	teamKeys      = keySet("Name", "DisplayName", "TeamColor", "Players",
		"AllowFriendlyFire", "SeeFriendlyInvisibles", "NameTagVisibility",
		"DeathMessageVisibility", "CollisionRule", "MemberNamePrefix", "MemberNameSuffix")
	dataKeys = keySet("Objectives", "PlayerScores", "Teams", "DisplaySlots")
)

func keySet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// FromTag projects a decoded scoreboard.dat root compound into a
// Document. Required keys that are absent, or present with the wrong
// tag kind, fail with *MissingFieldError; unknown keys at every level
// are carried along so Save does not destroy them.
func FromTag(root *nbt.Tag) (*Document, error) {
	data := root.Get("data")
	if data == nil {
		return nil, &MissingFieldError{Record: "scoreboard", Index: -1, Field: "data"}
	}
	if data.Type() != nbt.TagCompound {
		return nil, &MissingFieldError{Record: "scoreboard", Index: -1, Field: "data",
			Reason: kindReason(data, nbt.TagCompound)}
	}

	doc := &Document{framing: nbt.FramingGzip}

	rootEntries, err := root.Entries()
	if err != nil {
		return nil, err
	}
	for _, e := range rootEntries {
		if e.Name != "data" {
			doc.rootExtra = append(doc.rootExtra, e)
		}
	}

	dataEntries, _ := data.Entries()
	for _, e := range dataEntries {
		if !dataKeys[e.Name] {
			doc.dataExtra = append(doc.dataExtra, e)
		}
	}

	if doc.objectives, err = objectivesFromTag(data.Get("Objectives")); err != nil {
		return nil, err
	}
	if doc.scores, err = scoresFromTag(data.Get("PlayerScores")); err != nil {
		return nil, err
	}
	if doc.teams, err = teamsFromTag(data.Get("Teams")); err != nil {
		return nil, err
	}
	if doc.displaySlots, err = displaySlotsFromTag(data.Get("DisplaySlots")); err != nil {
		return nil, err
	}
	return doc, nil
}

// ToTag rebuilds the NBT tree. Known keys are written in a fixed
// schema-defined order regardless of how the source file ordered them;
// preserved unknown keys follow in their original order.
func (d *Document) ToTag() *nbt.Tag {
	objectives := recordList(len(d.objectives), func(i int) *nbt.Tag {
		return objectiveToTag(d.objectives[i])
	})
	scores := recordList(len(d.scores), func(i int) *nbt.Tag {
		return scoreToTag(d.scores[i])
	})
	teams := recordList(len(d.teams), func(i int) *nbt.Tag {
		return teamToTag(d.teams[i])
	})

	slots := nbt.Compound()
	for _, s := range d.displaySlots {
		slots.Set(s.Slot, nbt.Str(s.Objective))
	}

	data := nbt.Compound(
		nbt.Entry("Objectives", objectives),
		nbt.Entry("PlayerScores", scores),
		nbt.Entry("Teams", teams),
		nbt.Entry("DisplaySlots", slots),
	)
	for _, e := range d.dataExtra {
		data.Set(e.Name, e.Value)
	}

	root := nbt.Compound(nbt.Entry("data", data))
	for _, e := range d.rootExtra {
		root.Set(e.Name, e.Value)
	}
	return root
}

// recordList builds a list of compounds. Empty lists declare End,
// matching the vanilla writer.
func recordList(n int, build func(int) *nbt.Tag) *nbt.Tag {
	if n == 0 {
		return nbt.List(nbt.TagEnd)
	}
	children := make([]*nbt.Tag, n)
	for i := range children {
		children[i] = build(i)
	}
	return nbt.List(nbt.TagCompound, children...)
}

// ============================================================
// Record readers
// ============================================================

func objectivesFromTag(list *nbt.Tag) ([]*Objective, error) {
	records, err := recordCompounds(list, "Objectives")
	if err != nil {
		return nil, err
	}
	objectives := make([]*Objective, 0, len(records))
	for i, c := range records {
		name, err := reqStr(c, "Objective", i, "Name")
		if err != nil {
			return nil, err
		}
		criteria, err := reqStr(c, "Objective", i, "CriteriaName")
		if err != nil {
			return nil, err
		}
		display, err := optStr(c, "Objective", i, "DisplayName", textComponent(name))
		if err != nil {
			return nil, err
		}
		render, err := optStr(c, "Objective", i, "RenderType", string(RenderInteger))
		if err != nil {
			return nil, err
		}
		objectives = append(objectives, &Objective{
			Name:        name,
			Criteria:    criteria,
			DisplayName: display,
			RenderType:  RenderType(render),
			Extra:       extraEntries(c, objectiveKeys),
		})
	}
	return objectives, nil
}

func objectiveToTag(o *Objective) *nbt.Tag {
	c := nbt.Compound(
		nbt.Entry("Name", nbt.Str(o.Name)),
		nbt.Entry("CriteriaName", nbt.Str(o.Criteria)),
		nbt.Entry("DisplayName", nbt.Str(o.DisplayName)),
		nbt.Entry("RenderType", nbt.Str(string(o.RenderType))),
	)
	for _, e := range o.Extra {
		c.Set(e.Name, e.Value)
	}
	return c
}

func scoresFromTag(list *nbt.Tag) ([]*Score, error) {
	records, err := recordCompounds(list, "PlayerScores")
	if err != nil {
		return nil, err
	}
	scores := make([]*Score, 0, len(records))
	for i, c := range records {
		player, err := reqStr(c, "PlayerScore", i, "Name")
		if err != nil {
			return nil, err
		}
		objective, err := reqStr(c, "PlayerScore", i, "Objective")
		if err != nil {
			return nil, err
		}
		value, err := reqInt(c, "PlayerScore", i, "Score")
		if err != nil {
			return nil, err
		}
		locked, err := optBool(c, "PlayerScore", i, "Locked", false)
		if err != nil {
			return nil, err
		}
		scores = append(scores, &Score{
			Player:    player,
			Objective: objective,
			Value:     value,
			Locked:    locked,
			Extra:     extraEntries(c, scoreKeys),
		})
	}
	return scores, nil
}

func scoreToTag(s *Score) *nbt.Tag {
	c := nbt.Compound(
		nbt.Entry("Name", nbt.Str(s.Player)),
		nbt.Entry("Objective", nbt.Str(s.Objective)),
		nbt.Entry("Score", nbt.Int(s.Value)),
		nbt.Entry("Locked", nbt.Bool(s.Locked)),
	)
	for _, e := range s.Extra {
		c.Set(e.Name, e.Value)
	}
	return c
}

func teamsFromTag(list *nbt.Tag) ([]*Team, error) {
	records, err := recordCompounds(list, "Teams")
	if err != nil {
		return nil, err
	}
	teams := make([]*Team, 0, len(records))
	for i, c := range records {
		name, err := reqStr(c, "Team", i, "Name")
		if err != nil {
			return nil, err
		}
		team := &Team{Name: name, Extra: extraEntries(c, teamKeys)}

		if team.DisplayName, err = optStr(c, "Team", i, "DisplayName", textComponent(name)); err != nil {
			return nil, err
		}
		if team.Color, err = optStr(c, "Team", i, "TeamColor", ""); err != nil {
			return nil, err
		}
		if team.AllowFriendlyFire, err = optBool(c, "Team", i, "AllowFriendlyFire", true); err != nil {
			return nil, err
		}
		if team.SeeFriendlyInvisibles, err = optBool(c, "Team", i, "SeeFriendlyInvisibles", true); err != nil {
			return nil, err
		}
		if team.NameTagVisibility, err = optStr(c, "Team", i, "NameTagVisibility", "always"); err != nil {
			return nil, err
		}
		if team.DeathMessageVisibility, err = optStr(c, "Team", i, "DeathMessageVisibility", "always"); err != nil {
			return nil, err
		}
		if team.CollisionRule, err = optStr(c, "Team", i, "CollisionRule", "always"); err != nil {
			return nil, err
		}
		if team.Prefix, err = optStr(c, "Team", i, "MemberNamePrefix", ""); err != nil {
			return nil, err
		}
		if team.Suffix, err = optStr(c, "Team", i, "MemberNameSuffix", ""); err != nil {
			return nil, err
		}

		if players := c.Get("Players"); players != nil {
			children, err := players.AsList()
			if err != nil {
				return nil, &MissingFieldError{Record: "Team", Index: i, Field: "Players",
					Reason: kindReason(players, nbt.TagList)}
			}
			for _, child := range children {
				member, err := child.AsStr()
				if err != nil {
					return nil, &MissingFieldError{Record: "Team", Index: i, Field: "Players",
						Reason: kindReason(child, nbt.TagString)}
				}
				team.Members = append(team.Members, member)
			}
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func teamToTag(t *Team) *nbt.Tag {
	c := nbt.Compound(
		nbt.Entry("Name", nbt.Str(t.Name)),
		nbt.Entry("DisplayName", nbt.Str(t.DisplayName)),
	)
	// TeamColor is omitted when no color is set, as the game does.
	if t.Color != "" {
		c.Set("TeamColor", nbt.Str(t.Color))
	}
	c.Set("AllowFriendlyFire", nbt.Bool(t.AllowFriendlyFire))
	c.Set("SeeFriendlyInvisibles", nbt.Bool(t.SeeFriendlyInvisibles))
	c.Set("NameTagVisibility", nbt.Str(t.NameTagVisibility))
	c.Set("DeathMessageVisibility", nbt.Str(t.DeathMessageVisibility))
	c.Set("CollisionRule", nbt.Str(t.CollisionRule))
	c.Set("MemberNamePrefix", nbt.Str(t.Prefix))
	c.Set("MemberNameSuffix", nbt.Str(t.Suffix))
	c.Set("Players", nbt.StringList(t.Members...))
	for _, e := range t.Extra {
		c.Set(e.Name, e.Value)
	}
	return c
}

func displaySlotsFromTag(slots *nbt.Tag) ([]DisplaySlot, error) {
	if slots == nil {
		return nil, nil
	}
	entries, err := slots.Entries()
	if err != nil {
		return nil, &MissingFieldError{Record: "scoreboard", Index: -1, Field: "DisplaySlots",
			Reason: kindReason(slots, nbt.TagCompound)}
	}
	assignments := make([]DisplaySlot, 0, len(entries))
	for _, e := range entries {
		objective, err := e.Value.AsStr()
		if err != nil {
			return nil, &MissingFieldError{Record: "DisplaySlots", Index: -1, Field: e.Name,
				Reason: kindReason(e.Value, nbt.TagString)}
		}
		assignments = append(assignments, DisplaySlot{Slot: e.Name, Objective: objective})
	}
	return assignments, nil
}

// ============================================================
// Field helpers
// ============================================================

// recordCompounds unwraps a list of record compounds. A nil tag (key
// absent entirely) reads as empty; Save will write the key back.
func recordCompounds(list *nbt.Tag, field string) ([]*nbt.Tag, error) {
	if list == nil {
		return nil, nil
	}
	children, err := list.AsList()
	if err != nil {
		return nil, &MissingFieldError{Record: "scoreboard", Index: -1, Field: field,
			Reason: kindReason(list, nbt.TagList)}
	}
	if len(children) > 0 && list.ElemType() != nbt.TagCompound {
		return nil, &MissingFieldError{Record: "scoreboard", Index: -1, Field: field,
			Reason: fmt.Sprintf("holds %s elements, expected Compound", list.ElemType())}
	}
	return children, nil
}

func kindReason(t *nbt.Tag, want nbt.TagType) string {
	return fmt.Sprintf("has kind %s, expected %s", t.Type(), want)
}

func reqStr(c *nbt.Tag, record string, index int, field string) (string, error) {
	v := c.Get(field)
	if v == nil {
		return "", &MissingFieldError{Record: record, Index: index, Field: field}
	}
	s, err := v.AsStr()
	if err != nil {
		return "", &MissingFieldError{Record: record, Index: index, Field: field,
			Reason: kindReason(v, nbt.TagString)}
	}
	return s, nil
}

func reqInt(c *nbt.Tag, record string, index int, field string) (int32, error) {
	v := c.Get(field)
	if v == nil {
		return 0, &MissingFieldError{Record: record, Index: index, Field: field}
	}
	n, err := v.AsInt()
	if err != nil {
		return 0, &MissingFieldError{Record: record, Index: index, Field: field,
			Reason: kindReason(v, nbt.TagInt)}
	}
	return n, nil
}

// optStr defaults on absence but still rejects a present key of the
// wrong kind, so a malformed record is never silently dropped.
func optStr(c *nbt.Tag, record string, index int, field, def string) (string, error) {
	v := c.Get(field)
	if v == nil {
		return def, nil
	}
	s, err := v.AsStr()
	if err != nil {
		return "", &MissingFieldError{Record: record, Index: index, Field: field,
			Reason: kindReason(v, nbt.TagString)}
	}
	return s, nil
}

func optBool(c *nbt.Tag, record string, index int, field string, def bool) (bool, error) {
	v := c.Get(field)
	if v == nil {
		return def, nil
	}
	b, err := v.AsBool()
	if err != nil {
		return false, &MissingFieldError{Record: record, Index: index, Field: field,
			Reason: kindReason(v, nbt.TagByte)}
	}
	return b, nil
}

// extraEntries collects the keys of a record compound that the schema
// does not know, in their original order.
func extraEntries(c *nbt.Tag, known map[string]bool) []nbt.CompoundEntry {
	entries, _ := c.Entries()
	var extra []nbt.CompoundEntry
	for _, e := range entries {
		if !known[e.Name] {
			extra = append(extra, e)
		}
	}
	return extra
}

// textComponent renders a plain name as a JSON text component, the
// default display name the game itself would produce.
func textComponent(text string) string {
	b, _ := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	return string(b)
}
