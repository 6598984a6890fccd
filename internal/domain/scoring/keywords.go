// Package scoring implements the multi-factor relevance model: cosine
// similarity over embeddings plus keyword affinity scores for category,
// material and color. All keyword matching is case-insensitive substring
// containment without tokenization or stemming.
package scoring

import "strings"

// synonymGroup ties a canonical furniture category to the keywords that
// signal it. A group participates in scoring when any of its synonyms
// appears in the query.
type synonymGroup struct {
	category string
	synonyms []string
}

func (g synonymGroup) matches(queryLower string) bool {
	for _, kw := range g.synonyms {
		if strings.Contains(queryLower, kw) {
			return true
		}
	}
	return false
}

// categoryGroups is the furniture taxonomy. Synonyms overlap on purpose
// ("desk" signals both table and office); the matched set is deduplicated
// before scoring.
var categoryGroups = []synonymGroup{
	{"chair", []string{"chair", "seat", "stool", "seating"}},
	{"table", []string{"table", "desk", "console", "stand"}},
	{"bed", []string{"bed", "mattress", "bedroom", "headboard", "frame"}},
	{"sofa", []string{"sofa", "couch", "loveseat", "sectional", "futon"}},
	{"storage", []string{"storage", "cabinet", "shelf", "shelving", "organizer", "rack", "drawer", "dresser", "chest"}},
	{"outdoor", []string{"outdoor", "patio", "garden", "deck"}},
	{"office", []string{"office", "desk", "workspace", "workstation"}},
	{"kitchen", []string{"kitchen", "dining", "pantry"}},
	{"lighting", []string{"lamp", "light", "lighting", "fixture", "chandelier", "sconce"}},
	{"bathroom", []string{"bathroom", "bath", "shower", "vanity", "toilet"}},
	{"living", []string{"living", "room", "family"}},
	{"bookshelf", []string{"bookshelf", "bookcase", "shelving"}},
	{"nightstand", []string{"nightstand", "bedside", "night table"}},
	{"ottoman", []string{"ottoman", "footstool", "pouf"}},
	{"bench", []string{"bench", "seating bench"}},
	{"wardrobe", []string{"wardrobe", "armoire", "closet"}},
	{"mirror", []string{"mirror", "wall mirror"}},
	{"rug", []string{"rug", "carpet", "mat"}},
}

var materialKeywords = []string{
	"wood", "wooden", "oak", "pine", "walnut", "mahogany",
	"metal", "steel", "iron", "aluminum", "brass",
	"plastic", "acrylic", "resin",
	"fabric", "upholstered", "textile", "linen", "velvet",
	"leather", "faux leather", "genuine leather",
	"glass", "tempered glass",
	"bamboo", "wicker", "rattan", "cane",
	"marble", "stone", "concrete",
	"foam", "cushion", "padded",
}

var colorKeywords = []string{
	"black", "white", "brown", "gray", "grey", "beige", "tan", "cream", "ivory",
	"blue", "navy", "light blue", "dark blue",
	"red", "burgundy", "maroon",
	"green", "olive", "sage",
	"yellow", "gold", "mustard",
	"orange", "rust", "coral",
	"pink", "rose", "blush",
	"purple", "lavender", "plum",
	"silver", "bronze", "copper",
}

// containedKeywords returns the keywords that appear in the lowercased
// query, preserving list order.
func containedKeywords(queryLower string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(queryLower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
