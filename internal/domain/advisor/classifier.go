package advisor

import "strings"

type Category string

const (
	CategoryBusiness  Category = "business"
	CategoryFinancial Category = "financial"
	CategoryPersonal  Category = "personal"
	CategoryCreative  Category = "creative"
	CategoryTechnical Category = "technical"
	CategoryEthical   Category = "ethical"
)

var categoryKeywords = map[Category][]string{
	CategoryBusiness: {
		"startup", "business", "company", "market", "customer", "product",
		"launch", "hire", "hiring", "pitch", "competitor", "revenue", "growth",
		"price", "pricing", "strategy", "b2b", "saas",
	},
	CategoryFinancial: {
		"money", "invest", "investment", "stock", "budget", "salary", "debt",
		"loan", "savings", "retirement", "fund", "equity", "valuation", "tax",
		"portfolio", "cash",
	},
	CategoryPersonal: {
		"relationship", "family", "friend", "health", "happiness", "career",
		"life", "marriage", "divorce", "move", "moving", "feel", "feeling",
		"anxious", "stress", "partner",
	},
	CategoryCreative: {
		"design", "art", "write", "writing", "novel", "song", "music", "film",
		"brand", "story", "creative", "paint", "photography", "aesthetic",
	},
	CategoryTechnical: {
		"code", "software", "architecture", "database", "api", "deploy",
		"infrastructure", "algorithm", "framework", "programming", "engineer",
		"migrate", "scale", "security", "cloud",
	},
	CategoryEthical: {
		"ethical", "ethics", "moral", "fair", "fairness", "right thing",
		"honest", "integrity", "privacy", "responsibility", "should i lie",
		"conscience",
	},
}

// categoryOrder fixes precedence when a question matches more than one
// category but not enough to fall back to the generalist roster.
var categoryOrder = []Category{
	CategoryBusiness,
	CategoryFinancial,
	CategoryPersonal,
	CategoryCreative,
	CategoryTechnical,
	CategoryEthical,
}

var categoryArchetypes = map[Category][3]Archetype{
	CategoryBusiness:  {ArchetypeVisionary, ArchetypeGuardian, ArchetypeRealist},
	CategoryFinancial: {ArchetypeVisionary, ArchetypeGuardian, ArchetypeRealist},
	CategoryPersonal:  {ArchetypeCounselor, ArchetypeMentor, ArchetypeSage},
	CategoryCreative:  {ArchetypeArtist, ArchetypeCritic, ArchetypeCraftsperson},
	CategoryTechnical: {ArchetypeBuilder, ArchetypeRealist, ArchetypeVisionary},
	CategoryEthical:   {ArchetypeEthicist, ArchetypeSage, ArchetypeContrarian},
}

var generalistArchetypes = [3]Archetype{ArchetypeSage, ArchetypeContrarian, ArchetypeRealist}

// Classify runs keyword matching over the lowercased question and returns
// every category that matched, in precedence order. It is deterministic
// and never calls out of process.
func Classify(question string) []Category {
	q := strings.ToLower(question)
	var matched []Category
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(q, kw) {
				matched = append(matched, cat)
				break
			}
		}
	}
	return matched
}

// ArchetypesFor maps a question to exactly three archetypes. Questions
// matching no category, or more than two at once, get the generalist
// roster. Every roster includes a contrarian voice so no debate is an
// echo chamber; when the selected triple lacks one, the contrarian
// replaces whatever sits in the third slot.
func ArchetypesFor(question string) [3]Archetype {
	matched := Classify(question)
	var picked [3]Archetype
	if len(matched) == 0 || len(matched) > 2 {
		picked = generalistArchetypes
	} else {
		picked = categoryArchetypes[matched[0]]
	}
	if !hasContrarian(picked) {
		picked[2] = ArchetypeContrarian
	}
	return picked
}

func hasContrarian(set [3]Archetype) bool {
	for _, a := range set {
		if a == ArchetypeContrarian {
			return true
		}
	}
	return false
}
