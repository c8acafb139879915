package order

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/customization"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/repository"
	"github.com/shopspring/decimal"
)

var taxRate = decimal.RequireFromString("0.16")

func setup(t *testing.T) (*Order, *repository.InMemoryCatalogRepository) {
	t.Helper()
	repo := repository.NewInMemoryCatalogRepository()
	return New(repo), repo
}

func item(t *testing.T, repo *repository.InMemoryCatalogRepository, id int64) models.MenuItem {
	t.Helper()
	it, err := repo.LookupItem(id)
	if err != nil {
		t.Fatalf("failed to look up item %d: %v", id, err)
	}
	return it
}

func mustLineTotal(t *testing.T, o *Order, lineID string) decimal.Decimal {
	t.Helper()
	total, err := o.LineTotal(lineID)
	if err != nil {
		t.Fatalf("LineTotal(%q) unexpected error: %v", lineID, err)
	}
	return total
}

func TestOrder_PlainItemsMerge(t *testing.T) {
	o, repo := setup(t)
	pizza := item(t, repo, 2)

	for n := 1; n <= 5; n++ {
		line := o.AddPlainItem(pizza)
		if line.Quantity != n {
			t.Errorf("after %d adds expected quantity %d, got %d", n, n, line.Quantity)
		}
	}

	if o.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", o.Len())
	}
	if o.ItemCount() != 5 {
		t.Errorf("expected item count 5, got %d", o.ItemCount())
	}
}

func TestOrder_PlainExample(t *testing.T) {
	o, repo := setup(t)
	pizza := item(t, repo, 2)

	o.AddPlainItem(pizza)
	line := o.AddPlainItem(pizza)

	if o.Len() != 1 || line.Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %d lines, quantity %d", o.Len(), line.Quantity)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"line total", mustLineTotal(t, o, line.ID), "300"},
		{"subtotal", o.Subtotal(), "300"},
		{"tax", o.Tax(taxRate), "48"},
		{"grand total", o.GrandTotal(taxRate), "348"},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
}

func TestOrder_CustomizedExample(t *testing.T) {
	o, repo := setup(t)
	burger := item(t, repo, 1)

	b := customization.NewBuilder(repo)
	if err := b.Start(burger); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	_ = b.ToggleAddOn("ad-1")
	_ = b.ToggleAddOn("ad-3")
	_ = b.SetQuantity(0)

	built, c, err := b.Confirm()
	if err != nil {
		t.Fatalf("Confirm() unexpected error: %v", err)
	}

	line, err := o.AddCustomizedItem(built, c)
	if err != nil {
		t.Fatalf("AddCustomizedItem() unexpected error: %v", err)
	}
	if total := mustLineTotal(t, o, line.ID); !total.Equal(decimal.NewFromInt(155)) {
		t.Errorf("expected line total 155, got %s", total)
	}
}

func TestOrder_CustomizedLinesNeverMerge(t *testing.T) {
	o, repo := setup(t)
	burger := item(t, repo, 1)
	c := &models.Customization{AddOns: []string{"ad-2"}, Preparation: "prep-2", Quantity: 1}

	plain := o.AddPlainItem(burger)
	first, err := o.AddCustomizedItem(burger, c)
	if err != nil {
		t.Fatalf("AddCustomizedItem() unexpected error: %v", err)
	}
	second, err := o.AddCustomizedItem(burger, c)
	if err != nil {
		t.Fatalf("AddCustomizedItem() unexpected error: %v", err)
	}
	again := o.AddPlainItem(burger)

	if o.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", o.Len())
	}
	ids := map[string]bool{plain.ID: true, first.ID: true, second.ID: true}
	if len(ids) != 3 {
		t.Errorf("expected distinct line ids, got %q %q %q", plain.ID, first.ID, second.ID)
	}
	if again.ID != plain.ID || again.Quantity != 2 {
		t.Errorf("expected plain add to merge into %q, got %+v", plain.ID, again)
	}
	if o.ItemCount() != 4 {
		t.Errorf("expected item count 4, got %d", o.ItemCount())
	}
}

func TestOrder_InsertionOrder(t *testing.T) {
	o, repo := setup(t)

	o.AddPlainItem(item(t, repo, 4))
	if _, err := o.AddCustomizedItem(item(t, repo, 2), &models.Customization{Quantity: 2}); err != nil {
		t.Fatalf("AddCustomizedItem() unexpected error: %v", err)
	}
	o.AddPlainItem(item(t, repo, 5))
	o.AddPlainItem(item(t, repo, 4))

	want := []int64{4, 2, 5}
	lines := o.Snapshot()
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, id := range want {
		if lines[i].Item.ID != id {
			t.Errorf("line %d: expected item %d, got %d", i, id, lines[i].Item.ID)
		}
	}
	if lines[1].Quantity != 2 {
		t.Errorf("expected customized line quantity 2, got %d", lines[1].Quantity)
	}
}

func TestOrder_UpdateQuantity(t *testing.T) {
	o, repo := setup(t)
	line := o.AddPlainItem(item(t, repo, 3))

	deltas := []struct {
		delta int
		want  int
	}{
		{+2, 3},
		{-1, 2},
		{-50, 1},
		{0, 1},
		{+4, 5},
	}
	for _, d := range deltas {
		updated, err := o.UpdateQuantity(line.ID, d.delta)
		if err != nil {
			t.Fatalf("UpdateQuantity(%d) unexpected error: %v", d.delta, err)
		}
		if updated.Quantity != d.want {
			t.Errorf("after delta %d expected quantity %d, got %d", d.delta, d.want, updated.Quantity)
		}
	}

	if _, err := o.UpdateQuantity("missing", 1); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOrder_RemoveLine(t *testing.T) {
	o, repo := setup(t)
	fries := o.AddPlainItem(item(t, repo, 4))
	soda := o.AddPlainItem(item(t, repo, 5))

	t.Run("missing line leaves order unchanged", func(t *testing.T) {
		before := o.Snapshot()
		if err := o.RemoveLine("missing"); !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		after := o.Snapshot()
		if len(after) != len(before) {
			t.Errorf("expected %d lines, got %d", len(before), len(after))
		}
	})

	t.Run("existing line", func(t *testing.T) {
		if err := o.RemoveLine(fries.ID); err != nil {
			t.Fatalf("RemoveLine() unexpected error: %v", err)
		}
		lines := o.Snapshot()
		if len(lines) != 1 || lines[0].ID != soda.ID {
			t.Errorf("expected only the soda line left, got %+v", lines)
		}
		if err := o.RemoveLine(fries.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second removal, got %v", err)
		}
	})
}

func TestOrder_SubtotalIsSumOfLineTotals(t *testing.T) {
	o, repo := setup(t)

	o.AddPlainItem(item(t, repo, 2))
	o.AddPlainItem(item(t, repo, 2))
	o.AddPlainItem(item(t, repo, 6))
	if _, err := o.AddCustomizedItem(item(t, repo, 1), &models.Customization{
		ExcludedIngredients: []string{"1-4"},
		AddOns:              []string{"ad-1", "ad-2", "ad-3"},
		Quantity:            3,
	}); err != nil {
		t.Fatalf("AddCustomizedItem() unexpected error: %v", err)
	}

	sum := decimal.Zero
	for _, line := range o.Snapshot() {
		sum = sum.Add(mustLineTotal(t, o, line.ID))
	}
	if !o.Subtotal().Equal(sum) {
		t.Errorf("subtotal %s != sum of line totals %s", o.Subtotal(), sum)
	}
	// 300 + 80 + (120+15+10+20)*3
	if !sum.Equal(decimal.NewFromInt(875)) {
		t.Errorf("expected subtotal 875, got %s", sum)
	}
}

func TestOrder_GrandTotal(t *testing.T) {
	o, repo := setup(t)
	o.AddPlainItem(item(t, repo, 1))
	o.AddPlainItem(item(t, repo, 5))
	o.AddPlainItem(item(t, repo, 5))

	for _, rate := range []string{"0", "0.16", "0.075", "1"} {
		t.Run(rate, func(t *testing.T) {
			r := decimal.RequireFromString(rate)
			want := o.Subtotal().Mul(decimal.NewFromInt(1).Add(r))
			if !o.GrandTotal(r).Equal(want) {
				t.Errorf("GrandTotal(%s) = %s, want %s", rate, o.GrandTotal(r), want)
			}
			if !o.Subtotal().Add(o.Tax(r)).Equal(o.GrandTotal(r)) {
				t.Errorf("subtotal + tax != grand total for rate %s", rate)
			}
		})
	}
}

func TestOrder_NoFloatDrift(t *testing.T) {
	repo, err := repository.NewCatalogRepository(repository.CatalogData{
		Items: []models.MenuItem{
			{ID: 1, Name: "Dime candy", Price: decimal.RequireFromString("0.10"), Category: models.CategoryDesserts, Available: true},
		},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	o := New(repo)
	candy, _ := repo.LookupItem(1)

	for i := 0; i < 1000; i++ {
		o.AddPlainItem(candy)
	}
	if !o.Subtotal().Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected subtotal 100 exactly, got %s", o.Subtotal())
	}
}

func TestOrder_AddCustomizedItem_InvalidReference(t *testing.T) {
	o, repo := setup(t)
	burger := item(t, repo, 1)

	tests := []struct {
		name string
		c    *models.Customization
	}{
		{"foreign ingredient", &models.Customization{ExcludedIngredients: []string{"2-1"}, Quantity: 1}},
		{"foreign preparation", &models.Customization{Preparation: "prep-5", Quantity: 1}},
		{"foreign add-on", &models.Customization{AddOns: []string{"ad-6"}, Quantity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := o.AddCustomizedItem(burger, tt.c); !errors.Is(err, models.ErrInvalidReference) {
				t.Errorf("expected ErrInvalidReference, got %v", err)
			}
		})
	}

	if _, err := o.AddCustomizedItem(burger, nil); !errors.Is(err, ErrMissingCustomization) {
		t.Errorf("expected ErrMissingCustomization, got %v", err)
	}
	if !o.Empty() {
		t.Errorf("rejected adds changed the order: %d lines", o.Len())
	}
}

func TestOrder_LineTotalIgnoresExclusions(t *testing.T) {
	o, repo := setup(t)
	burger := item(t, repo, 1)

	plain, _ := o.AddCustomizedItem(burger, &models.Customization{Quantity: 2})
	excluded, _ := o.AddCustomizedItem(burger, &models.Customization{
		ExcludedIngredients: []string{"1-1", "1-2", "1-3"},
		Quantity:            2,
	})

	if !mustLineTotal(t, o, plain.ID).Equal(mustLineTotal(t, o, excluded.ID)) {
		t.Error("excluding ingredients changed the line total")
	}
}

func TestOrder_SnapshotIsDetached(t *testing.T) {
	o, repo := setup(t)
	c := &models.Customization{AddOns: []string{"ad-1"}, Quantity: 1}
	line, _ := o.AddCustomizedItem(item(t, repo, 1), c)

	c.AddOns[0] = "ad-2"
	snap := o.Snapshot()
	snap[0].Customization.AddOns = append(snap[0].Customization.AddOns, "ad-3")
	snap[0].Quantity = 99

	if total := mustLineTotal(t, o, line.ID); !total.Equal(decimal.NewFromInt(135)) {
		t.Errorf("expected line total 135, got %s", total)
	}
}

func TestOrder_ClearAndIDGenerator(t *testing.T) {
	n := 0
	repo := repository.NewInMemoryCatalogRepository()
	o := New(repo, WithIDGenerator(func() string {
		n++
		// hands out "line-1" twice to check that ids stay unique
		if n <= 2 {
			return "line-1"
		}
		return fmt.Sprintf("line-%d", n)
	}))

	fries, _ := repo.LookupItem(4)
	soda, _ := repo.LookupItem(5)
	first := o.AddPlainItem(fries)
	second := o.AddPlainItem(soda)

	if first.ID != "line-1" {
		t.Errorf("expected first id line-1, got %q", first.ID)
	}
	if second.ID == first.ID {
		t.Errorf("expected unique ids, both are %q", first.ID)
	}

	o.Clear()
	if !o.Empty() || o.ItemCount() != 0 || !o.Subtotal().IsZero() {
		t.Errorf("expected empty order after Clear, got %d lines", o.Len())
	}
}
