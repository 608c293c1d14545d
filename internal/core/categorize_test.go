package core

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		desc string
		want Category
	}{
		{"", CategoryOther},
		{"Bus ticket to office", CategoryTransport},
		{"Grocery run", CategoryFood},
		{"BIRYANI takeaway", CategoryFood},
		{"Netflix monthly", CategoryEntertainment},
		{"rent for march", CategoryHousing},
		{"dentist visit", CategoryOther},
		{"dental visit", CategoryHealth},
		{"new shoes", CategoryOther},
		{"donation to charity", CategoryOther},
	}
	for _, tt := range tests {
		if got := Categorize(tt.desc); got != tt.want {
			t.Errorf("Categorize(%q) = %s, want %s", tt.desc, got, tt.want)
		}
	}
}

func TestCategorizePriorityOrder(t *testing.T) {
	// "insurance" appears in both the Housing and Health keyword sets;
	// Housing is checked first so it wins.
	if got := Categorize("rent and insurance"); got != CategoryHousing {
		t.Errorf("Categorize(\"rent and insurance\") = %s, want %s", got, CategoryHousing)
	}
	if got := Categorize("health insurance premium"); got != CategoryHousing {
		t.Errorf("overlapping keyword must resolve by rule order, got %s", got)
	}
	// "ticket" is in Transport and Entertainment; Transport is first.
	if got := Categorize("concert ticket"); got != CategoryTransport {
		t.Errorf("Categorize(\"concert ticket\") = %s, want %s", got, CategoryTransport)
	}
}

func TestCategorizeSubstringSemantics(t *testing.T) {
	// Matching is raw substring containment, no word boundaries.
	if got := Categorize("breadth first search textbook"); got != CategoryFood {
		t.Errorf("substring match expected: %q contains \"bread\", got %s", "breadth", got)
	}
	if got := Categorize("AUTOMATIC renewal"); got != CategoryTransport {
		t.Errorf("case-insensitive substring match expected, got %s", got)
	}
}

func TestCategorizeOtherKeywords(t *testing.T) {
	// Keywords from the Other set and unmatched text are indistinguishable
	// in the result; both yield CategoryOther.
	for _, desc := range []string{"new cosmetics", "zzzz unmatched zzzz"} {
		if got := Categorize(desc); got != CategoryOther {
			t.Errorf("Categorize(%q) = %s, want %s", desc, got, CategoryOther)
		}
	}
}
