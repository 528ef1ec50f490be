package materials

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
)

const (
	// SuggestionThreshold filters fuzzy candidates during document
	// reconciliation. SearchThreshold is the looser cutoff used by the
	// general catalog search. The two are distinct call sites.
	SuggestionThreshold = 50
	SearchThreshold     = 30

	suggestionLimit = 5
)

type Suggestion struct {
	MaterialID  uuid.UUID
	Name        string
	Unit        Unit
	Description string
	Score       int
}

// MatchResult describes how an extracted material name relates to the catalog.
type MatchResult struct {
	MaterialID     uuid.UUID // uuid.Nil when no exact match
	Exists         bool
	Unit           Unit
	UnitMatches    bool
	CanUseQuantity bool
	Suggestions    []Suggestion
}

// Match classifies name against the catalog: exact case-insensitive match
// first, otherwise up to five fuzzy suggestions scoring >= SuggestionThreshold.
// docUnit is the unit label as stated in the document; it is compared raw
// against the matched material's canonical unit, so an unnormalized "kg" will
// not equal "kilograms".
func Match(name, docUnit string, catalog []Material) MatchResult {
	candidate := strings.TrimSpace(name)
	for _, m := range catalog {
		if strings.EqualFold(candidate, m.Name) {
			unitMatches := string(m.Unit) == docUnit
			return MatchResult{
				MaterialID:     m.ID,
				Exists:         true,
				Unit:           m.Unit,
				UnitMatches:    unitMatches,
				CanUseQuantity: unitMatches,
			}
		}
	}

	suggestions := rank(candidate, catalog, SuggestionThreshold)
	if len(suggestions) > suggestionLimit {
		suggestions = suggestions[:suggestionLimit]
	}
	return MatchResult{Suggestions: suggestions}
}

// FuzzySearch scores the whole catalog against query and returns every
// candidate at or above SearchThreshold, best first. Pagination is up to the
// caller.
func FuzzySearch(query string, catalog []Material) []Suggestion {
	return rank(strings.TrimSpace(query), catalog, SearchThreshold)
}

func rank(candidate string, catalog []Material, threshold int) []Suggestion {
	var out []Suggestion
	for _, m := range catalog {
		score := Similarity(candidate, m.Name)
		if score < threshold {
			continue
		}
		out = append(out, Suggestion{
			MaterialID:  m.ID,
			Name:        m.Name,
			Unit:        m.Unit,
			Description: m.Description,
			Score:       score,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Similarity scores two strings on a 0-100 scale as the maximum of four
// metrics: whole-string ratio, partial (substring-tolerant) ratio,
// token-order-insensitive ratio and token-set ratio.
func Similarity(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	best := ratio(a, b)
	if s := partialRatio(a, b); s > best {
		best = s
	}
	if s := tokenSortRatio(a, b); s > best {
		best = s
	}
	if s := tokenSetRatio(a, b); s > best {
		best = s
	}
	return best
}

// ratio is the Levenshtein distance normalized by the longer input.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	d := levenshtein.ComputeDistance(a, b)
	return (longest - d) * 100 / longest
}

// partialRatio slides the shorter string over the longer one and keeps the
// best window ratio, so "cement" scores 100 against "cement 25kg bag".
func partialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}
	best := 0
	for i := 0; i+len(ra) <= len(rb); i++ {
		s := ratio(string(ra), string(rb[i:i+len(ra)]))
		if s > best {
			best = s
			if best == 100 {
				break
			}
		}
	}
	return best
}

func tokenSortRatio(a, b string) int {
	return ratio(sortedTokens(a), sortedTokens(b))
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// tokenSetRatio compares the shared token core against each side's full token
// set, which tolerates one name being a superset of the other.
func tokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for t := range ta {
		if tb[t] {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if !ta[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	core := strings.Join(inter, " ")
	s1 := strings.TrimSpace(core + " " + strings.Join(onlyA, " "))
	s2 := strings.TrimSpace(core + " " + strings.Join(onlyB, " "))

	best := ratio(core, s1)
	if s := ratio(core, s2); s > best {
		best = s
	}
	if s := ratio(s1, s2); s > best {
		best = s
	}
	return best
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
}
