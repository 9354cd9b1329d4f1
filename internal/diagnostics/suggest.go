package diagnostics

import "github.com/pmezard/go-difflib/difflib"

// Suggest returns the candidate name closest to `name` by the
// difflib.SequenceMatcher ratio, or "" if none of the candidates is
// close enough to be useful. It is used to produce "did you mean <name>?"
// text attached to ReferenceError/LinkageError diagnostics.
func Suggest(name string, candidates []string) string {
	best := ""
	bestRatio := 0.60 // below this, a suggestion is more confusing than helpful
	for _, c := range candidates {
		m := difflib.NewMatcher(splitChars(name), splitChars(c))
		if r := m.Ratio(); r > bestRatio {
			bestRatio = r
			best = c
		}
	}
	return best
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
