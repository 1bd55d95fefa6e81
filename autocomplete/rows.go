package autocomplete

import (
	"errors"
	"strings"
	"sync"

	"konvyshop/models"

	"github.com/google/uuid"
)

// MaxRows bounds the item inputs of one search form.
const MaxRows = 5

// MaxRowsMessage is shown when Add is refused.
const MaxRowsMessage = "Maximum 5 items allowed"

var (
	ErrMaxRows     = errors.New("maximum number of item rows reached")
	ErrLastRow     = errors.New("cannot remove the last item row")
	ErrRowNotFound = errors.New("item row not found")
)

// RowSet manages the item input rows. Rows are positional; IDs only route
// events to the right controller.
type RowSet struct {
	mu       sync.Mutex
	rows     []*Controller
	registry *Registry
	source   Source
	allowed  []models.ItemType
}

// NewRowSet starts with a single empty row.
func NewRowSet(source Source, registry *Registry, allowed ...models.ItemType) *RowSet {
	if registry == nil {
		registry = NewRegistry()
	}
	rs := &RowSet{registry: registry, source: source, allowed: allowed}
	rs.rows = []*Controller{rs.newRow()}
	return rs
}

func (rs *RowSet) newRow() *Controller {
	c := NewController(uuid.NewString(), rs.source, rs.allowed...)
	rs.registry.Register(c)
	return c
}

// Registry is the dismiss registry shared by every row.
func (rs *RowSet) Registry() *Registry {
	return rs.registry
}

// Add appends an empty row.
func (rs *RowSet) Add() (*Controller, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if len(rs.rows) >= MaxRows {
		return nil, ErrMaxRows
	}
	c := rs.newRow()
	rs.rows = append(rs.rows, c)
	return c, nil
}

// Remove drops the row with id and unregisters its controller.
func (rs *RowSet) Remove(id string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	idx := -1
	for i, c := range rs.rows {
		if c.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrRowNotFound
	}
	if len(rs.rows) == 1 {
		return ErrLastRow
	}

	rs.rows = append(rs.rows[:idx], rs.rows[idx+1:]...)
	rs.registry.Unregister(id)
	return nil
}

// RemoveVisible is false exactly when one row remains.
func (rs *RowSet) RemoveVisible() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.rows) > 1
}

func (rs *RowSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.rows)
}

// Rows returns the controllers in display order.
func (rs *RowSet) Rows() []*Controller {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]*Controller(nil), rs.rows...)
}

// Row looks a row up by ID.
func (rs *RowSet) Row(id string) (*Controller, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for _, c := range rs.rows {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Values returns each row's input text in order, blanks included.
func (rs *RowSet) Values() []string {
	rows := rs.Rows()
	out := make([]string, len(rows))
	for i, c := range rows {
		out[i] = c.Text()
	}
	return out
}

// Restore rebuilds the rows from saved texts, keeping between 1 and MaxRows rows.
func (rs *RowSet) Restore(values []string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for _, c := range rs.rows {
		rs.registry.Unregister(c.ID())
	}
	if len(values) > MaxRows {
		values = values[:MaxRows]
	}
	if len(values) == 0 {
		values = []string{""}
	}

	rs.rows = make([]*Controller, 0, len(values))
	for _, v := range values {
		c := rs.newRow()
		c.SetText(v)
		rs.rows = append(rs.rows, c)
	}
}

// Fill puts text into the first blank row, adding a row when every row is
// taken. Used by the trending-term chips.
func (rs *RowSet) Fill(text string) (*Controller, error) {
	for _, c := range rs.Rows() {
		if strings.TrimSpace(c.Text()) == "" {
			c.SetText(text)
			return c, nil
		}
	}
	c, err := rs.Add()
	if err != nil {
		return nil, err
	}
	c.SetText(text)
	return c, nil
}
