package catalog

import (
	"testing"
)

func TestDefaultMenuShape(t *testing.T) {
	m := Default()

	if m.Snacks.Category != "Small Chops & Snacks" {
		t.Errorf("snacks category = %q", m.Snacks.Category)
	}
	if m.Meals.Category != "Main Dishes" {
		t.Errorf("meals category = %q", m.Meals.Category)
	}
	if len(m.Snacks.Items) != 16 {
		t.Errorf("snacks count = %d, want 16", len(m.Snacks.Items))
	}
	if len(m.Meals.Items) != 4 {
		t.Errorf("meals count = %d, want 4", len(m.Meals.Items))
	}

	seen := make(map[string]bool)
	for _, it := range append(m.Snacks.Items, m.Meals.Items...) {
		if it.ID == "" || it.Name == "" || it.Description == "" {
			t.Errorf("item %+v missing required fields", it)
		}
		if seen[it.ID] {
			t.Errorf("duplicate item ID %q", it.ID)
		}
		seen[it.ID] = true

		// Zero price means the price is quoted per order; the note carries it.
		if it.Price.IsZero() && it.PriceNote == "" {
			t.Errorf("item %s has zero price and no price note", it.ID)
		}
	}
}

func TestFind(t *testing.T) {
	m := Default()

	it, category, ok := m.Find("meat-pie")
	if !ok || category != "snacks" || it.Name == "" {
		t.Fatalf("Find(meat-pie) = %+v, %q, %v", it, category, ok)
	}

	it, category, ok = m.Find("jollof-rice")
	if !ok || category != "meals" {
		t.Fatalf("Find(jollof-rice) = %+v, %q, %v", it, category, ok)
	}

	if _, _, ok := m.Find("ghost-item"); ok {
		t.Fatal("Find(ghost-item) should not succeed")
	}
}
