package slugs

import (
	"strings"
	"testing"

	"github.com/dalemusser/govhub/internal/domain/models"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Governing Board":         "governing-board",
		"  Music   Committee  ":   "music-committee",
		"Comité de Finance":       "comite-de-finance",
		"Ad-hoc: Building (2024)": "ad-hoc-building-2024",
		"":                        "",
		"---":                     "",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Errorf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMake_Truncates(t *testing.T) {
	for _, in := range []string{
		strings.Repeat("abc ", 40),
		strings.Repeat("a", 59) + " bc",
		strings.Repeat("x", 100),
	} {
		got := Make(in)
		if len(got) > MaxLen {
			t.Errorf("Make(%q): len = %d, want <= %d", in, len(got), MaxLen)
		}
		if strings.HasSuffix(got, "-") {
			t.Errorf("slug ends with dash: %q", got)
		}
	}
	if got := Make(strings.Repeat("x", 100)); len(got) != MaxLen {
		t.Errorf("single word: len = %d, want %d", len(got), MaxLen)
	}
}

func TestMake_NonLatinIsEmpty(t *testing.T) {
	for _, in := range []string{"李 伟", "Ωμέγα Επιτροπή"} {
		if got := Make(in); got != "" {
			t.Errorf("Make(%q) = %q, want empty", in, got)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid("governing-board") {
		t.Error("expected governing-board to be valid")
	}
	if Valid("Governing Board") {
		t.Error("expected title to be invalid")
	}
	if Valid("") {
		t.Error("expected empty to be invalid")
	}
}

func TestFill(t *testing.T) {
	g := &models.Group{Title: "Finance Committee"}
	Fill(g)
	if g.Slug != "finance-committee" {
		t.Errorf("derived slug = %q", g.Slug)
	}

	p := &models.Person{FirstName: "Ana", LastName: "Pérez", Slug: "Ana Perez Jr"}
	Fill(p)
	if p.Slug != "ana-perez-jr" {
		t.Errorf("normalized slug = %q", p.Slug)
	}
}

func TestFill_NonLatinFallsBack(t *testing.T) {
	p := &models.Person{FirstName: "李", LastName: "伟"}
	Fill(p)
	if p.Slug == "" || !Valid(p.Slug) {
		t.Errorf("fallback slug = %q, want a non-empty valid slug", p.Slug)
	}

	g1 := &models.Group{Title: "Ωμέγα Επιτροπή"}
	g2 := &models.Group{Title: "Ωμέγα Επιτροπή"}
	Fill(g1)
	Fill(g2)
	if g1.Slug == "" || g1.Slug == g2.Slug {
		t.Errorf("fallback slugs %q and %q, want distinct non-empty", g1.Slug, g2.Slug)
	}

	hand := &models.Group{Title: "Board", Slug: "***"}
	Fill(hand)
	if hand.Slug == "" {
		t.Error("hand-supplied slug that normalizes to nothing left empty")
	}
}
