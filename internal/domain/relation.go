package domain

import "strings"

// Relation is a canonical relation tag such as "mother" or "maternal_aunt".
type Relation string

const (
	Mother   Relation = "mother"
	Father   Relation = "father"
	Sister   Relation = "sister"
	Brother  Relation = "brother"
	Daughter Relation = "daughter"
	Son      Relation = "son"

	MaternalGrandmother Relation = "maternal_grandmother"
	MaternalGrandfather Relation = "maternal_grandfather"
	MaternalAunt        Relation = "maternal_aunt"
	MaternalUncle       Relation = "maternal_uncle"
	MaternalHalfSister  Relation = "maternal_half_sister"
	MaternalHalfBrother Relation = "maternal_half_brother"

	PaternalGrandmother Relation = "paternal_grandmother"
	PaternalGrandfather Relation = "paternal_grandfather"
	PaternalAunt        Relation = "paternal_aunt"
	PaternalUncle       Relation = "paternal_uncle"
	PaternalHalfSister  Relation = "paternal_half_sister"
	PaternalHalfBrother Relation = "paternal_half_brother"

	// NoRelation is the "nobody" answer of a relative picker.
	NoRelation Relation = "none"
)

// RelationInfo is the metadata attached to a known relation tag.
type RelationInfo struct {
	Relation Relation
	Side     Side
	Degree   Degree
	Sex      Sex
	LabelNL  string
	LabelEN  string
}

var relationTable = []RelationInfo{
	{Mother, SideImmediate, FirstDegree, Female, "Moeder", "Mother"},
	{Father, SideImmediate, FirstDegree, Male, "Vader", "Father"},
	{Sister, SideImmediate, FirstDegree, Female, "Zus", "Sister"},
	{Brother, SideImmediate, FirstDegree, Male, "Broer", "Brother"},
	{Daughter, SideImmediate, FirstDegree, Female, "Dochter", "Daughter"},
	{Son, SideImmediate, FirstDegree, Male, "Zoon", "Son"},

	{MaternalGrandmother, SideMaternal, SecondDegree, Female, "Oma (moederskant)", "Grandmother (maternal side)"},
	{MaternalGrandfather, SideMaternal, SecondDegree, Male, "Opa (moederskant)", "Grandfather (maternal side)"},
	{MaternalAunt, SideMaternal, SecondDegree, Female, "Tante (moederskant)", "Aunt (maternal side)"},
	{MaternalUncle, SideMaternal, SecondDegree, Male, "Oom (moederskant)", "Uncle (maternal side)"},
	{MaternalHalfSister, SideMaternal, SecondDegree, Female, "Halfzus (moederskant)", "Half-sister (maternal side)"},
	{MaternalHalfBrother, SideMaternal, SecondDegree, Male, "Halfbroer (moederskant)", "Half-brother (maternal side)"},

	{PaternalGrandmother, SidePaternal, SecondDegree, Female, "Oma (vaderskant)", "Grandmother (paternal side)"},
	{PaternalGrandfather, SidePaternal, SecondDegree, Male, "Opa (vaderskant)", "Grandfather (paternal side)"},
	{PaternalAunt, SidePaternal, SecondDegree, Female, "Tante (vaderskant)", "Aunt (paternal side)"},
	{PaternalUncle, SidePaternal, SecondDegree, Male, "Oom (vaderskant)", "Uncle (paternal side)"},
	{PaternalHalfSister, SidePaternal, SecondDegree, Female, "Halfzus (vaderskant)", "Half-sister (paternal side)"},
	{PaternalHalfBrother, SidePaternal, SecondDegree, Male, "Halfbroer (vaderskant)", "Half-brother (paternal side)"},
}

// noneLabels are the labels the pickers use for the "nobody" answer.
var noneLabels = []string{"Niemand", "Geen van bovenstaande of onbekend", "Nobody", "None of the above or unknown"}

var (
	relationsByTag   = make(map[Relation]RelationInfo, len(relationTable))
	relationsByLabel = make(map[string]Relation, 2*len(relationTable)+len(noneLabels))
)

func init() {
	for _, info := range relationTable {
		relationsByTag[info.Relation] = info
		relationsByLabel[strings.ToLower(info.LabelNL)] = info.Relation
		relationsByLabel[strings.ToLower(info.LabelEN)] = info.Relation
	}
	for _, label := range noneLabels {
		relationsByLabel[strings.ToLower(label)] = NoRelation
	}
}

// LookupRelation returns the metadata of a known relation tag.
func LookupRelation(r Relation) (RelationInfo, bool) {
	info, ok := relationsByTag[r]
	return info, ok
}

// RelationByLabel resolves a display label (Dutch or English, any case) to its tag.
func RelationByLabel(label string) (Relation, bool) {
	r, ok := relationsByLabel[strings.ToLower(strings.TrimSpace(label))]
	return r, ok
}

// IsKnown reports whether r is in the relation vocabulary.
func (r Relation) IsKnown() bool {
	_, ok := relationsByTag[r]
	return ok
}

// IsNone reports whether r is the "nobody" sentinel.
func (r Relation) IsNone() bool {
	return r == NoRelation
}

// Label returns the display label for r, or the tag itself when r is unknown.
func (r Relation) Label(lang Language) string {
	if r == NoRelation {
		if lang == LanguageDutch {
			return "Niemand"
		}
		return "Nobody"
	}
	info, ok := relationsByTag[r]
	if !ok {
		return string(r)
	}
	if lang == LanguageDutch {
		return info.LabelNL
	}
	return info.LabelEN
}

func (r Relation) String() string {
	return string(r)
}

// FirstDegreeRelations lists the first-degree tags in questionnaire order.
func FirstDegreeRelations() []Relation {
	return []Relation{Mother, Father, Sister, Brother, Daughter, Son}
}

// SecondDegreeRelations lists the second-degree tags of one side in questionnaire order.
func SecondDegreeRelations(side Side) []Relation {
	var out []Relation
	for _, info := range relationTable {
		if info.Degree == SecondDegree && info.Side == side {
			out = append(out, info.Relation)
		}
	}
	return out
}
