// ABOUTME: Keyword-based coaching hints for race comments.
// ABOUTME: Rules are checked in order; the first keyword hit wins.
package records

import "strings"

// DefaultSuggestion is returned when no rule matches.
const DefaultSuggestion = "Keep training consistently and track your times!"

var suggestionRules = []struct {
	keywords []string
	hint     string
}{
	{
		[]string{"tired", "exhausted"},
		"Tiredness suggests you may need more sleep before racing. Make sure you recover properly between races.",
	},
	{
		[]string{"strong finish"},
		"A strong finish points to good endurance. Keep training consistently!",
	},
	{
		[]string{"weak finish", "slow finish"},
		"A slow finish can mean endurance gaps or mispacing. Try endurance sets and race-pace practice.",
	},
	{
		[]string{"slow start", "bad finish"},
		"Work on reaction time off the blocks and front-end pace in training.",
	},
	{
		[]string{"slow turns", "bad turns", "bad turn"},
		"Practice turns and underwater work off the walls.",
	},
	{
		[]string{"technique", "stroke"},
		"Video analysis or technique drills recommended.",
	},
}

// Suggest returns a coaching hint for a race comment, or "" for a blank one.
func Suggest(comment string) string {
	c := strings.ToLower(strings.TrimSpace(comment))
	if c == "" {
		return ""
	}
	for _, rule := range suggestionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(c, kw) {
				return rule.hint
			}
		}
	}
	return DefaultSuggestion
}
