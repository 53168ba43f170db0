package debate

import (
	"fmt"
	"strings"
)

// PriorRoundsContext renders responses from strictly earlier rounds for
// injection into a later round's prompt. Callers pass rows already
// ordered by round then position; anything at or after beforeRound is
// skipped so an advisor never sees text from its own round.
func PriorRoundsContext(responses []Response, beforeRound int) string {
	var b strings.Builder
	for _, r := range responses {
		if r.Round >= beforeRound {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Round %d - %s: %s", r.Round, r.AdvisorName, r.Content)
	}
	return b.String()
}

// VerdictTranscript renders the full debate for the synthesizer.
func VerdictTranscript(responses []Response) string {
	var b strings.Builder
	for _, r := range responses {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s (Round %d): %s", r.AdvisorName, r.Round, r.Content)
	}
	return b.String()
}
