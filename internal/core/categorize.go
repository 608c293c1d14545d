package core

import "strings"

// categoryRule pairs a category with the substrings that select it. Rules
// are evaluated in order and the first match wins, so overlapping keywords
// ("insurance" is in both Housing and Health, "ticket" in both Transport
// and Entertainment) resolve to the earlier rule.
type categoryRule struct {
	category Category
	keywords []string
}

// categoryRules is the fixed rule table. Matching is plain substring
// containment on the lowercased description: no tokenization, no word
// boundaries ("breadth" matches "bread"). Keyword lists and their order
// must not change without versioning stored data, since categories are
// assigned once at write time.
//
// The final Other rule can never change the result: a hit and the fallback
// both yield CategoryOther. It is kept so the table documents the full
// keyword inventory.
var categoryRules = []categoryRule{
	{CategoryFood, []string{
		"food", "grocery", "restaurant", "biryani", "pizza", "burger", "coffee", "tea", "snacks",
		"bread", "milk", "egg", "fruits", "vegetables", "lunch", "dinner", "breakfast", "juice",
		"icecream", "cake",
	}},
	{CategoryTransport, []string{
		"bus", "train", "taxi", "cab", "fuel", "travel", "uber", "ola", "metro", "auto", "petrol",
		"diesel", "parking", "bike", "cycle", "toll", "flight", "ticket", "transport",
	}},
	{CategoryEntertainment, []string{
		"movie", "netflix", "ticket", "cinema", "game", "concert", "show", "music", "spotify",
		"youtube", "subscription", "theatre", "play", "amusement", "park", "event", "hobby",
	}},
	{CategoryHousing, []string{
		"rent", "house", "electricity", "water", "home", "gas", "maintenance", "internet", "wifi",
		"cleaning", "maid", "repairs", "apartment", "society", "security", "tax", "insurance",
		"furniture", "decor", "utility",
	}},
	{CategoryHealth, []string{
		"medicine", "doctor", "hospital", "pharmacy", "clinic", "checkup", "consultation",
		"insurance", "dental", "eye", "surgery", "vaccine", "therapist", "treatment", "gym",
		"fitness", "vitamins", "supplements", "diagnosis",
	}},
	{CategoryOther, []string{
		"clothes", "books", "stationery", "gift", "toys", "electronics", "mobile", "charger", "bags",
		"shoes", "cosmetics", "accessories", "jewelry", "decorations", "subscription", "pet",
		"gardening", "cleaning", "misc",
	}},
}

// Categorize maps a free-text expense description to a category. The empty
// string and descriptions with no configured keyword yield CategoryOther.
func Categorize(description string) Category {
	desc := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}
