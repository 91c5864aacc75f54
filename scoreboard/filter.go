package scoreboard

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrFilterConflict is returned when a filter is built with both an
// allow list and a deny list; one must take priority over the other
// and there is no sensible choice, so the combination is rejected.
var ErrFilterConflict = errors.New("scoreboard: cannot use an allow list and a deny list together")

// Filter decides which player names appear in score listings and
// dumps. It never mutates the document. Datapacks often store data
// under fake player names, which is what filtering is for.
type Filter struct {
	allow map[string]bool
	deny  map[string]bool

	// IncludeDotNames admits names starting with a dot even when an
	// allow list is in effect. Bedrock players joining through a Geyser
	// proxy show up with dot-prefixed Java names that never appear in
	// whitelist.json.
	IncludeDotNames bool
}

// NewFilter builds a filter from an allow list or a deny list (not
// both).
func NewFilter(allow, deny []string, includeDotNames bool) (*Filter, error) {
	if len(allow) > 0 && len(deny) > 0 {
		return nil, ErrFilterConflict
	}
	f := &Filter{IncludeDotNames: includeDotNames}
	if len(allow) > 0 {
		f.allow = make(map[string]bool, len(allow))
		for _, name := range allow {
			f.allow[name] = true
		}
	}
	if len(deny) > 0 {
		f.deny = make(map[string]bool, len(deny))
		for _, name := range deny {
			f.deny[name] = true
		}
	}
	return f, nil
}

// Admit reports whether a player name passes the filter. A nil filter
// admits everyone.
func (f *Filter) Admit(name string) bool {
	if f == nil {
		return true
	}
	if f.deny != nil {
		// Deny mode rejects listed names, dot-prefixed or not.
		return !f.deny[name]
	}
	if f.allow != nil {
		if f.allow[name] {
			return true
		}
		return f.IncludeDotNames && strings.HasPrefix(name, ".")
	}
	return true
}

// whitelistEntry matches one record of a server whitelist.json file.
type whitelistEntry struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// placeholderUUIDPrefix marks offline/proxied accounts in
// whitelist.json whose names are not real Java usernames.
const placeholderUUIDPrefix = "00000000-0000-0000-"

// ParseWhitelist extracts player names from the server's
// whitelist.json format, skipping placeholder-UUID entries.
func ParseWhitelist(data []byte) ([]string, error) {
	var entries []whitelistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("scoreboard: whitelist: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.UUID, placeholderUUIDPrefix) {
			continue
		}
		names = append(names, e.Name)
	}
	return names, nil
}
