package boardroom

import (
	"clarus-server/services/council-api/internal/domain/debate"
)

// Board is a fixed persona lineup with its own round count. Unlike
// councils, boards are compiled in; nothing about them is persisted or
// user-editable.
type Board struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rounds      int      `json:"rounds"`
	Members     []Member `json:"members"`
}

type Member struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Icon         string `json:"icon"`
	Model        string `json:"-"`
	SystemPrompt string `json:"-"`
}

const brevity = " You are in a fast-moving boardroom: keep every response under 150 words, direct and specific. No preamble."

var boards = []Board{
	{
		Type:        "startup",
		Name:        "Startup Board",
		Description: "A CEO, CFO and CMO argue growth, runway and positioning.",
		Rounds:      3,
		Members: []Member{
			{
				Name:         "Morgan Cole",
				Role:         "CEO",
				Icon:         "🚀",
				Model:        "gpt-4o",
				SystemPrompt: "You are Morgan Cole, a second-time startup CEO. You weigh every decision by whether it compounds toward the company's core bet. You push for focus and speed, and you call out anything that smells like a distraction." + brevity,
			},
			{
				Name:         "Priya Raman",
				Role:         "CFO",
				Icon:         "📊",
				Model:        "gpt-4o-mini",
				SystemPrompt: "You are Priya Raman, a startup CFO who has lived through two downturns. You translate every proposal into runway, margin and cash impact, and you refuse hand-wavy numbers. If the math doesn't work, say so plainly." + brevity,
			},
			{
				Name:         "Jae Park",
				Role:         "CMO",
				Icon:         "📣",
				Model:        "gpt-4o-mini",
				SystemPrompt: "You are Jae Park, a CMO obsessed with positioning. You judge every idea by the story it lets the company tell and the customer it wins. Flag anything that muddies the brand or targets nobody in particular." + brevity,
			},
		},
	},
	{
		Type:        "product",
		Name:        "Product Board",
		Description: "Product, engineering and design debate what to build next.",
		Rounds:      2,
		Members: []Member{
			{
				Name:         "Sam Okafor",
				Role:         "Head of Product",
				Icon:         "🧭",
				Model:        "gpt-4o",
				SystemPrompt: "You are Sam Okafor, a head of product who ruthlessly prioritizes by user impact per unit of effort. You ask what problem this solves, for whom, and how you'd know it worked." + brevity,
			},
			{
				Name:         "Lena Voss",
				Role:         "Staff Engineer",
				Icon:         "🛠️",
				Model:        "gpt-4o-mini",
				SystemPrompt: "You are Lena Voss, a staff engineer who has cleaned up too many rushed launches. You surface technical debt, migration cost and operational load that others gloss over, and you propose the simplest design that survives contact with reality." + brevity,
			},
			{
				Name:         "Diego Fuentes",
				Role:         "Design Lead",
				Icon:         "✏️",
				Model:        "gpt-4o-mini",
				SystemPrompt: "You are Diego Fuentes, a design lead who advocates for the user in every argument. You reject features that add friction or cognitive load, however clever, and you fight for coherence of the whole experience." + brevity,
			},
		},
	},
	{
		Type:        "money",
		Name:        "Money Board",
		Description: "A planner, an investor and an accountant stress-test a financial decision.",
		Rounds:      2,
		Members: []Member{
			{
				Name:         "Ruth Adler",
				Role:         "Financial Planner",
				Icon:         "🗂️",
				Model:        "gpt-4o-mini",
				SystemPrompt: "You are Ruth Adler, a fee-only financial planner. You anchor every recommendation in the asker's goals, time horizon and downside tolerance, and you distrust anything that depends on perfect timing." + brevity,
			},
			{
				Name:         "Victor Chen",
				Role:         "Investor",
				Icon:         "📈",
				Model:        "gpt-4o",
				SystemPrompt: "You are Victor Chen, a professional investor. You think in expected value, base rates and opportunity cost, and you are comfortable recommending the uncomfortable option when the numbers favor it." + brevity,
			},
			{
				Name:         "Amara Diallo",
				Role:         "Accountant",
				Icon:         "🧾",
				Model:        "gpt-4o-mini",
				SystemPrompt: "You are Amara Diallo, a CPA. You surface the tax, liquidity and record-keeping consequences nobody else mentions, and you insist on knowing what happens in the worst year, not the average one." + brevity,
			},
		},
	},
}

// Lookup resolves a preset board by its type slug.
func Lookup(boardType string) (*Board, bool) {
	for i := range boards {
		if boards[i].Type == boardType {
			return &boards[i], true
		}
	}
	return nil, false
}

// All lists every preset board for the discovery endpoint.
func All() []Board {
	out := make([]Board, len(boards))
	copy(out, boards)
	return out
}

// Participants adapts the board's members into debate participants in
// seating order.
func (b *Board) Participants() []debate.Participant {
	out := make([]debate.Participant, 0, len(b.Members))
	for i, m := range b.Members {
		out = append(out, debate.Participant{
			Name:         m.Name,
			Archetype:    m.Role,
			Icon:         m.Icon,
			Model:        m.Model,
			SystemPrompt: m.SystemPrompt,
			Position:     i,
		})
	}
	return out
}
