package nation

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/biter777/countries"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"

	"lifeprogress/internal/model"
)

// SuggestThreshold is the minimum Jaro-Winkler similarity for Suggest.
const SuggestThreshold = 0.85

// Search fuzzy-matches query against every nation name in ds. A name matches
// when all query characters appear in it in order, ignoring case. Results are
// ordered by descending score, then by name. Names that do not match are left
// out; an empty query matches nothing.
func Search(query string, ds model.Dataset) []model.SearchMatch {
	query = normalize(query)
	out := []model.SearchMatch{}
	if query == "" {
		return out
	}

	names := ds.Names()
	for _, m := range fuzzy.Find(query, names) {
		out = append(out, model.SearchMatch{
			Nation:         m.Str,
			Code:           Code(m.Str),
			Record:         ds[m.Str],
			Score:          m.Score,
			MatchedIndices: runeIndices(m.Str, m.MatchedIndexes),
		})
	}

	slices.SortStableFunc(out, func(a, b model.SearchMatch) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.Nation, b.Nation)
	})
	return out
}

// Suggest returns the nation name closest to query, if any is similar enough.
// The fallback entry is never suggested.
func Suggest(query string, ds model.Dataset) (string, bool) {
	query = strings.ToLower(normalize(query))
	if query == "" {
		return "", false
	}

	metric := metrics.NewJaroWinkler()
	best, bestScore := "", 0.0
	for _, name := range ds.Names() {
		if name == model.CommonNation {
			continue
		}
		score := strutil.Similarity(query, strings.ToLower(name), metric)
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	if bestScore < SuggestThreshold {
		return "", false
	}
	return best, true
}

// Code returns the ISO 3166-1 alpha-2 code for a nation name, or "" when
// the name is not a recognised country.
func Code(name string) string {
	c := countries.ByName(name)
	if c == countries.Unknown {
		return ""
	}
	return c.Alpha2()
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// runeIndices converts byte offsets into s to character positions.
func runeIndices(s string, byteIdx []int) []int {
	out := make([]int, len(byteIdx))
	for i, b := range byteIdx {
		out[i] = utf8.RuneCountInString(s[:b])
	}
	return out
}
