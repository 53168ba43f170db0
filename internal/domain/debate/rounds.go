package debate

import (
	"fmt"
	"strings"
)

type RoundKind string

const (
	RoundKindOpening  RoundKind = "opening"
	RoundKindRebuttal RoundKind = "rebuttal"
	RoundKindClosing  RoundKind = "closing"
)

// RoundSpec fixes the shape of one round: its instruction, sampling
// temperature and whether prior-round context is injected.
type RoundSpec struct {
	Number      int
	Kind        RoundKind
	Temperature float32
}

// BuildRounds lays out total rounds as opening, rebuttals, closing.
// A single-round debate is just an opening statement.
func BuildRounds(total int) []RoundSpec {
	if total < 1 {
		total = 1
	}
	specs := make([]RoundSpec, 0, total)
	for n := 1; n <= total; n++ {
		kind := RoundKindRebuttal
		switch {
		case n == 1:
			kind = RoundKindOpening
		case n == total:
			kind = RoundKindClosing
		}
		specs = append(specs, RoundSpec{Number: n, Kind: kind, Temperature: temperatureFor(kind)})
	}
	return specs
}

func temperatureFor(kind RoundKind) float32 {
	switch kind {
	case RoundKindOpening:
		return 0.8
	case RoundKindRebuttal:
		return 0.7
	default:
		return 0.6
	}
}

// UserPrompt shapes the instruction an advisor receives for this round,
// appending the prior transcript for every round after the first.
func (s RoundSpec) UserPrompt(question, priorContext string) string {
	var b strings.Builder
	switch s.Kind {
	case RoundKindOpening:
		fmt.Fprintf(&b, "The question under debate is: %s\n\nGive your opening statement. Stake out a clear position.", question)
	case RoundKindRebuttal:
		fmt.Fprintf(&b, "The question under debate is: %s\n\nThis is round %d. Respond to the other advisors: challenge what you disagree with, concede what you must, and deepen your own argument.", question, s.Number)
	case RoundKindClosing:
		fmt.Fprintf(&b, "The question under debate is: %s\n\nThis is the final round. Give your closing statement, then end with one concrete, falsifiable prediction about what happens if your advice is followed.", question)
	}
	if priorContext != "" {
		b.WriteString("\n\nPREVIOUS ROUNDS:\n")
		b.WriteString(priorContext)
	}
	return b.String()
}
