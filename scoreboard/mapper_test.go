package scoreboard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/svioletg/mcscoreboard/nbt"
)

// boardTag builds the tag tree of a small but complete scoreboard.dat.
func boardTag() *nbt.Tag {
	return nbt.Compound(
		nbt.Entry("data", nbt.Compound(
			nbt.Entry("Objectives", nbt.List(nbt.TagCompound,
				nbt.Compound(
					nbt.Entry("Name", nbt.Str("dummy")),
					nbt.Entry("CriteriaName", nbt.Str("dummy")),
					nbt.Entry("DisplayName", nbt.Str(`{"text":"Dummy"}`)),
					nbt.Entry("RenderType", nbt.Str("integer")),
				),
			)),
			nbt.Entry("PlayerScores", nbt.List(nbt.TagCompound,
				nbt.Compound(
					nbt.Entry("Name", nbt.Str("Alice")),
					nbt.Entry("Objective", nbt.Str("dummy")),
					nbt.Entry("Score", nbt.Int(10)),
					nbt.Entry("Locked", nbt.Byte(0)),
				),
			)),
			nbt.Entry("Teams", nbt.List(nbt.TagCompound,
				nbt.Compound(
					nbt.Entry("Name", nbt.Str("red")),
					nbt.Entry("DisplayName", nbt.Str(`{"text":"Red"}`)),
					nbt.Entry("TeamColor", nbt.Str("red")),
					nbt.Entry("AllowFriendlyFire", nbt.Byte(0)),
					nbt.Entry("SeeFriendlyInvisibles", nbt.Byte(1)),
					nbt.Entry("NameTagVisibility", nbt.Str("hideForOtherTeams")),
					nbt.Entry("DeathMessageVisibility", nbt.Str("always")),
					nbt.Entry("CollisionRule", nbt.Str("pushOwnTeam")),
					nbt.Entry("MemberNamePrefix", nbt.Str("[R] ")),
					nbt.Entry("MemberNameSuffix", nbt.Str("")),
					nbt.Entry("Players", nbt.StringList("Alice", "Bob")),
				),
			)),
			nbt.Entry("DisplaySlots", nbt.Compound(
				nbt.Entry("sidebar", nbt.Str("dummy")),
			)),
		)),
		nbt.Entry("DataVersion", nbt.Int(3953)),
	)
}

func TestFromTag_FullBoard(t *testing.T) {
	doc, err := FromTag(boardTag())
	if err != nil {
		t.Fatalf("FromTag failed: %v", err)
	}

	objective := doc.Objective("dummy")
	if objective == nil {
		t.Fatal("objective dummy not found")
	}
	if objective.Criteria != "dummy" || objective.RenderType != RenderInteger {
		t.Errorf("objective = %+v", objective)
	}

	score := doc.Score("Alice", "dummy")
	if score == nil {
		t.Fatal("score Alice/dummy not found")
	}
	if score.Value != 10 || score.Locked {
		t.Errorf("score = %+v", score)
	}

	team := doc.Team("red")
	if team == nil {
		t.Fatal("team red not found")
	}
	if team.Color != "red" || team.AllowFriendlyFire || !team.SeeFriendlyInvisibles {
		t.Errorf("team = %+v", team)
	}
	if len(team.Members) != 2 || team.Members[0] != "Alice" || team.Members[1] != "Bob" {
		t.Errorf("members = %v", team.Members)
	}
	if team.NameTagVisibility != "hideForOtherTeams" || team.Prefix != "[R] " {
		t.Errorf("team display options = %+v", team)
	}

	slots := doc.DisplaySlots()
	if len(slots) != 1 || slots[0].Slot != "sidebar" || slots[0].Objective != "dummy" {
		t.Errorf("display slots = %v", slots)
	}
}

// The spec scenario: one objective, one score, mapped to a tag tree
// with one-element record lists and back to the same domain values.
func TestMapper_SchemaRoundTrip(t *testing.T) {
	doc := New()
	doc.UpsertObjective(&Objective{
		Name:        "dummy",
		Criteria:    "dummy",
		DisplayName: `{"text":"dummy"}`,
		RenderType:  RenderInteger,
	})
	doc.SetScore("Alice", "dummy", 10)

	root := doc.ToTag()
	data := root.Get("data")
	if data == nil {
		t.Fatal("no data compound")
	}
	if got := data.Get("Objectives").Len(); got != 1 {
		t.Errorf("Objectives list has %d elements, want 1", got)
	}
	if got := data.Get("PlayerScores").Len(); got != 1 {
		t.Errorf("PlayerScores list has %d elements, want 1", got)
	}

	again, err := FromTag(root)
	if err != nil {
		t.Fatalf("FromTag failed: %v", err)
	}
	objective := again.Objective("dummy")
	if objective == nil || objective.Criteria != "dummy" {
		t.Fatalf("objective after round trip = %+v", objective)
	}
	score := again.Score("Alice", "dummy")
	if score == nil || score.Value != 10 {
		t.Fatalf("score after round trip = %+v", score)
	}
}

func TestFromTag_OptionalDefaults(t *testing.T) {
	root := nbt.Compound(
		nbt.Entry("data", nbt.Compound(
			nbt.Entry("Objectives", nbt.List(nbt.TagCompound,
				nbt.Compound(
					nbt.Entry("Name", nbt.Str("bare")),
					nbt.Entry("CriteriaName", nbt.Str("dummy")),
				),
			)),
			nbt.Entry("Teams", nbt.List(nbt.TagCompound,
				nbt.Compound(nbt.Entry("Name", nbt.Str("plain"))),
			)),
		)),
	)

	doc, err := FromTag(root)
	if err != nil {
		t.Fatalf("FromTag failed: %v", err)
	}

	objective := doc.Objective("bare")
	if objective.RenderType != RenderInteger {
		t.Errorf("RenderType = %q, want integer", objective.RenderType)
	}
	if objective.DisplayName != `{"text":"bare"}` {
		t.Errorf("DisplayName = %q", objective.DisplayName)
	}

	team := doc.Team("plain")
	if !team.AllowFriendlyFire || !team.SeeFriendlyInvisibles {
		t.Errorf("friendly flags should default true: %+v", team)
	}
	if team.NameTagVisibility != "always" || team.CollisionRule != "always" {
		t.Errorf("visibility defaults = %+v", team)
	}
	if team.Color != "" {
		t.Errorf("Color = %q, want empty", team.Color)
	}
}

func TestFromTag_MissingFields(t *testing.T) {
	record := func(entries ...nbt.CompoundEntry) *nbt.Tag {
		return nbt.Compound(entries...)
	}
	tests := []struct {
		name       string
		root       *nbt.Tag
		wantRecord string
		wantField  string
	}{
		{
			"no data",
			nbt.Compound(),
			"scoreboard", "data",
		},
		{
			"objective without criteria",
			nbt.Compound(nbt.Entry("data", nbt.Compound(
				nbt.Entry("Objectives", nbt.List(nbt.TagCompound,
					record(nbt.Entry("Name", nbt.Str("x"))),
				)),
			))),
			"Objective", "CriteriaName",
		},
		{
			"score without value",
			nbt.Compound(nbt.Entry("data", nbt.Compound(
				nbt.Entry("PlayerScores", nbt.List(nbt.TagCompound,
					record(
						nbt.Entry("Name", nbt.Str("Alice")),
						nbt.Entry("Objective", nbt.Str("x")),
					),
				)),
			))),
			"PlayerScore", "Score",
		},
		{
			"score with wrong-kind value",
			nbt.Compound(nbt.Entry("data", nbt.Compound(
				nbt.Entry("PlayerScores", nbt.List(nbt.TagCompound,
					record(
						nbt.Entry("Name", nbt.Str("Alice")),
						nbt.Entry("Objective", nbt.Str("x")),
						nbt.Entry("Score", nbt.Str("10")),
					),
				)),
			))),
			"PlayerScore", "Score",
		},
		{
			"team without name",
			nbt.Compound(nbt.Entry("data", nbt.Compound(
				nbt.Entry("Teams", nbt.List(nbt.TagCompound,
					record(nbt.Entry("DisplayName", nbt.Str("x"))),
				)),
			))),
			"Team", "Name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromTag(tt.root)
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("error = %v, want *MissingFieldError", err)
			}
			if missing.Record != tt.wantRecord || missing.Field != tt.wantField {
				t.Errorf("error names %s.%s, want %s.%s",
					missing.Record, missing.Field, tt.wantRecord, tt.wantField)
			}
		})
	}
}

// Keys the mapper does not understand must survive a load/save cycle.
func TestMapper_PreservesUnknownKeys(t *testing.T) {
	root := boardTag()
	objectives := root.Get("data").Get("Objectives")
	first, err := objectives.Index(0)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if err := first.Set("DisplayAutoUpdate", nbt.Byte(1)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := root.Get("data").Set("FutureRecords", nbt.List(nbt.TagEnd)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	doc, err := FromTag(root)
	if err != nil {
		t.Fatalf("FromTag failed: %v", err)
	}
	out := doc.ToTag()

	if v, _ := out.Get("DataVersion").AsInt(); v != 3953 {
		t.Error("root DataVersion lost")
	}
	if !out.Get("data").Has("FutureRecords") {
		t.Error("data FutureRecords lost")
	}
	outFirst, err := out.Get("data").Get("Objectives").Index(0)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if v, _ := outFirst.Get("DisplayAutoUpdate").AsBool(); !v {
		t.Error("objective DisplayAutoUpdate lost")
	}
}

// Two sources that order their keys differently must produce identical
// bytes after mapping: output key order is schema-defined, not
// inherited.
func TestToTag_DeterministicKeyOrder(t *testing.T) {
	a := nbt.Compound(
		nbt.Entry("data", nbt.Compound(
			nbt.Entry("Objectives", nbt.List(nbt.TagCompound,
				nbt.Compound(
					nbt.Entry("Name", nbt.Str("o")),
					nbt.Entry("CriteriaName", nbt.Str("dummy")),
					nbt.Entry("DisplayName", nbt.Str("o")),
					nbt.Entry("RenderType", nbt.Str("hearts")),
				),
			)),
		)),
	)
	b := nbt.Compound(
		nbt.Entry("data", nbt.Compound(
			nbt.Entry("Objectives", nbt.List(nbt.TagCompound,
				nbt.Compound(
					nbt.Entry("RenderType", nbt.Str("hearts")),
					nbt.Entry("DisplayName", nbt.Str("o")),
					nbt.Entry("CriteriaName", nbt.Str("dummy")),
					nbt.Entry("Name", nbt.Str("o")),
				),
			)),
		)),
	)

	encode := func(root *nbt.Tag) []byte {
		doc, err := FromTag(root)
		if err != nil {
			t.Fatalf("FromTag failed: %v", err)
		}
		data, err := nbt.Encode(doc.ToTag())
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		return data
	}

	if !bytes.Equal(encode(a), encode(b)) {
		t.Error("differently ordered sources produced different bytes")
	}
}
