package autocomplete_test

import (
	"errors"
	"fmt"
	"testing"

	"konvyshop/autocomplete"
	"konvyshop/models"
)

func testCatalog() *models.Catalog {
	return models.NewCatalog(
		models.CatalogItem{Name: "Renegade Raider", Type: models.ItemOutfit},
		models.CatalogItem{Name: "Raider's Revenge", Type: models.ItemPickaxe},
		models.CatalogItem{Name: "Raiders Theme", Type: models.ItemOther},
		models.CatalogItem{Name: "Mako", Type: models.ItemGlider},
	)
}

func TestDebounceLastKeystrokeWins(t *testing.T) {
	c := autocomplete.NewController("row-1", testCatalog())

	t1 := c.Input("r")
	t2 := c.Input("ra")
	t3 := c.Input("rai")

	if c.Elapse(t1) || c.Elapse(t2) {
		t.Fatal("stale tickets must not run the filter")
	}
	if c.State() != autocomplete.Pending {
		t.Fatalf("expected pending, got %v", c.State())
	}
	if !c.Elapse(t3) {
		t.Fatal("latest ticket should run the filter")
	}
	if c.Elapse(t3) {
		t.Error("a ticket runs at most once")
	}

	if c.State() != autocomplete.Showing || !c.Visible() {
		t.Fatalf("expected showing, got %v", c.State())
	}
	got := c.Candidates()
	if len(got) != 2 || got[0].Name != "Renegade Raider" || got[1].Name != "Raider's Revenge" {
		t.Errorf("unexpected candidates %+v", got)
	}
}

func TestElapseStates(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		state     autocomplete.State
		visible   bool
		noResults bool
	}{
		{"empty collapses", "", autocomplete.Idle, false, false},
		{"whitespace collapses", "   ", autocomplete.Idle, false, false},
		{"single char shows no results", "r", autocomplete.Showing, true, true},
		{"zero matches shows no results", "zzz", autocomplete.Showing, true, true},
		{"other type filtered out", "theme", autocomplete.Showing, true, true},
		{"matches", "mak", autocomplete.Showing, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := autocomplete.NewController("row", testCatalog())
			c.Elapse(c.Input(tt.text))

			if c.State() != tt.state || c.Visible() != tt.visible || c.NoResults() != tt.noResults {
				t.Errorf("got state=%v visible=%v noResults=%v", c.State(), c.Visible(), c.NoResults())
			}
			if c.SelectedIndex() != -1 {
				t.Errorf("expected no selection, got %d", c.SelectedIndex())
			}
		})
	}
}

func TestKeyboardNavigation(t *testing.T) {
	c := autocomplete.NewController("row", testCatalog())
	c.Elapse(c.Input("raider"))

	c.Key(autocomplete.KeyUp)
	if c.SelectedIndex() != -1 {
		t.Errorf("up should clamp at -1, got %d", c.SelectedIndex())
	}
	c.Key(autocomplete.KeyDown)
	c.Key(autocomplete.KeyDown)
	c.Key(autocomplete.KeyDown)
	if c.SelectedIndex() != 1 {
		t.Errorf("down should clamp at n-1, got %d", c.SelectedIndex())
	}

	// A new candidate list resets the selection
	c.Elapse(c.Input("renegade"))
	if c.SelectedIndex() != -1 {
		t.Errorf("expected reset selection, got %d", c.SelectedIndex())
	}

	if st := c.Key(autocomplete.KeyEnter); st == autocomplete.Committed {
		t.Fatal("enter without selection must not commit")
	}

	c.Key(autocomplete.KeyDown)
	if st := c.Key(autocomplete.KeyEnter); st != autocomplete.Committed {
		t.Fatalf("expected commit, got %v", st)
	}
	if c.Text() != "Renegade Raider" || c.Visible() || c.State() != autocomplete.Idle {
		t.Errorf("unexpected post-commit state text=%q visible=%v state=%v", c.Text(), c.Visible(), c.State())
	}
}

func TestEscapeKeepsText(t *testing.T) {
	c := autocomplete.NewController("row", testCatalog())
	c.Elapse(c.Input("raid"))
	c.Key(autocomplete.KeyDown)

	c.Key(autocomplete.KeyEscape)
	if c.Visible() || c.Text() != "raid" || c.SelectedIndex() != -1 {
		t.Errorf("escape should hide and keep text, got visible=%v text=%q", c.Visible(), c.Text())
	}
}

func TestEscapeCancelsPendingFilter(t *testing.T) {
	c := autocomplete.NewController("row", testCatalog())
	c.Elapse(c.Input("raid"))
	ticket := c.Input("raide")
	c.Key(autocomplete.KeyEscape)

	if c.Elapse(ticket) {
		t.Error("filter scheduled before escape must not reopen the dropdown")
	}
}

func TestClickCommits(t *testing.T) {
	c := autocomplete.NewController("row", testCatalog())
	c.Elapse(c.Input("raider"))

	if c.Click(5) {
		t.Error("out of range click must not commit")
	}
	if !c.Click(1) || c.Text() != "Raider's Revenge" || c.Visible() {
		t.Errorf("unexpected click result text=%q visible=%v", c.Text(), c.Visible())
	}
}

func TestCommitDoesNotValidate(t *testing.T) {
	c := autocomplete.NewController("row", testCatalog())
	c.Input("Not A Real Skin")
	if c.Text() != "Not A Real Skin" {
		t.Error("free text must be kept as typed")
	}
}

func TestRegistryDismissOutside(t *testing.T) {
	rows := autocomplete.NewRowSet(testCatalog(), nil)
	second, _ := rows.Add()
	first := rows.Rows()[0]

	first.Elapse(first.Input("raider"))
	second.Elapse(second.Input("mako"))

	closed := rows.Registry().DismissOutside(second.ID())
	if len(closed) != 1 || closed[0] != first.ID() {
		t.Errorf("expected only the first dropdown to close, got %v", closed)
	}
	if first.Visible() || !second.Visible() {
		t.Error("click inside a wrapper keeps that dropdown open")
	}

	rows.Registry().DismissOutside("")
	if second.Visible() {
		t.Error("click outside every wrapper closes all dropdowns")
	}
}

func TestRowSetBounds(t *testing.T) {
	rows := autocomplete.NewRowSet(testCatalog(), nil)

	if rows.RemoveVisible() {
		t.Error("remove control must be hidden with one row")
	}
	if err := rows.Remove(rows.Rows()[0].ID()); !errors.Is(err, autocomplete.ErrLastRow) {
		t.Errorf("expected ErrLastRow, got %v", err)
	}

	for i := 0; i < autocomplete.MaxRows-1; i++ {
		if _, err := rows.Add(); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}
	if _, err := rows.Add(); !errors.Is(err, autocomplete.ErrMaxRows) {
		t.Errorf("expected ErrMaxRows, got %v", err)
	}
	if rows.Len() != autocomplete.MaxRows || rows.Registry().Len() != autocomplete.MaxRows {
		t.Errorf("expected %d rows registered, got %d/%d", autocomplete.MaxRows, rows.Len(), rows.Registry().Len())
	}

	victim := rows.Rows()[2]
	if err := rows.Remove(victim.ID()); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok := rows.Registry().Get(victim.ID()); ok {
		t.Error("removed row must be unregistered")
	}
	if !rows.RemoveVisible() {
		t.Error("remove control visible with several rows")
	}
}

func TestRowSetValuesAndRestore(t *testing.T) {
	rows := autocomplete.NewRowSet(testCatalog(), nil)
	rows.Restore([]string{"Renegade Raider", "", "Mako"})

	vals := rows.Values()
	if fmt.Sprint(vals) != fmt.Sprint([]string{"Renegade Raider", "", "Mako"}) {
		t.Errorf("unexpected values %v", vals)
	}
	if rows.Registry().Len() != 3 {
		t.Errorf("expected 3 registered rows, got %d", rows.Registry().Len())
	}

	if _, err := rows.Fill("Take The L"); err != nil {
		t.Fatalf("fill failed: %v", err)
	}
	if rows.Values()[1] != "Take The L" {
		t.Errorf("fill should use the first blank row, got %v", rows.Values())
	}

	rows.Restore(nil)
	if rows.Len() != 1 {
		t.Errorf("restore of nothing keeps one row, got %d", rows.Len())
	}
}
