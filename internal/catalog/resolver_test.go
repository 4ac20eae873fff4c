package catalog

import "testing"

func TestFindByReference(t *testing.T) {
	t.Parallel()

	c := mustLoad(t)

	tests := []struct {
		name   string
		phrase string
		wantID string
	}{
		{"exact id", "mug-001", "mug-001"},
		{"exact id with spacing", "  MUG-001 ", "mug-001"},
		{"ordinal within category", "first phone", "phone-001"},
		{"second in category via synonym", "the second cup", "mug-002"},
		{"all tokens in name", "sunrise ceramic mug", "mug-001"},
		{"all tokens beats any tokens", "traveler steel mug", "mug-002"},
		{"any token in name", "something with cloudstep vibes", "shoes-001"},
		{"numeric position", "number 3", "mug-001"},
		{"ordinal over full list", "the second one", "phone-002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := c.FindByReference(tt.phrase)
			if !ok {
				t.Fatalf("FindByReference(%q) found nothing", tt.phrase)
			}
			if got.ID != tt.wantID {
				t.Fatalf("FindByReference(%q) = %s, want %s", tt.phrase, got.ID, tt.wantID)
			}
		})
	}
}

func TestFindByReferenceFirstPhoneIsFirstMobile(t *testing.T) {
	t.Parallel()

	c := mustLoad(t)
	got, ok := c.FindByReference("first phone")
	if !ok {
		t.Fatal("expected a match for 'first phone'")
	}

	mobiles := c.List(Filter{Category: "mobile"})
	if len(mobiles) == 0 {
		t.Fatal("catalog has no mobile products")
	}
	if got.ID != mobiles[0].ID {
		t.Fatalf("got %s, want first mobile %s", got.ID, mobiles[0].ID)
	}
}

func TestFindByReferenceMisses(t *testing.T) {
	t.Parallel()

	c := mustLoad(t)

	for _, phrase := range []string{"", "   ", "quantum flux capacitor", "ninth whatever"} {
		if p, ok := c.FindByReference(phrase); ok {
			t.Fatalf("FindByReference(%q) unexpectedly matched %s", phrase, p.ID)
		}
	}
}
