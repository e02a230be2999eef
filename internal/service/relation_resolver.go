package service

import (
	"regexp"
	"strings"

	"github.com/breast-cancer-risk-assessment/internal/domain"
)

// storageSuffix is the "_<timestamp>" stamp the form appends to repeated entries.
var storageSuffix = regexp.MustCompile(`_\d+$`)

var scopePrefixes = []struct {
	prefix string
	side   domain.Side
}{
	{"immediate_", domain.SideImmediate},
	{"maternal_", domain.SideMaternal},
	{"paternal_", domain.SidePaternal},
}

// kinship maps side-less second-degree words to the tag stem used after the side prefix.
var kinship = map[string]string{
	"oma":          "grandmother",
	"grandmother":  "grandmother",
	"opa":          "grandfather",
	"grandfather":  "grandfather",
	"tante":        "aunt",
	"aunt":         "aunt",
	"oom":          "uncle",
	"uncle":        "uncle",
	"halfzus":      "half_sister",
	"half-sister":  "half_sister",
	"half_sister":  "half_sister",
	"halfbroer":    "half_brother",
	"half-brother": "half_brother",
	"half_brother": "half_brother",
}

// ResolveRelation recovers the canonical relation tag from a stored relation key.
// Keys may be canonical tags, display labels or "<scope>_<label-or-tag>_<timestamp>".
// Keys that cannot be resolved come back unchanged apart from the suffix and any
// "immediate_" prefix.
func ResolveRelation(key string) domain.Relation {
	s := storageSuffix.ReplaceAllString(strings.TrimSpace(key), "")
	if r, ok := tagOrLabel(s); ok {
		return r
	}

	for _, scope := range scopePrefixes {
		body, found := strings.CutPrefix(s, scope.prefix)
		if !found {
			continue
		}
		if r, ok := tagOrLabel(body); ok {
			return r
		}
		if scope.side != domain.SideImmediate {
			if stem, ok := kinship[strings.ToLower(strings.TrimSpace(body))]; ok {
				r := domain.Relation(scope.prefix + stem)
				if r.IsKnown() {
					return r
				}
			}
		}
		break
	}

	return domain.Relation(strings.TrimPrefix(s, "immediate_"))
}

func tagOrLabel(s string) (domain.Relation, bool) {
	r := domain.Relation(s)
	if r.IsKnown() || r.IsNone() {
		return r, true
	}
	return domain.RelationByLabel(s)
}
