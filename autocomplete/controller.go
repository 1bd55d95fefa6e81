package autocomplete

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"konvyshop/models"
)

// DebounceDelay is the quiet period after the last keystroke before the
// catalog is filtered.
const DebounceDelay = 200 * time.Millisecond

// MinQueryLength is the shortest query that is matched against the catalog.
// Shorter non-empty queries show the "no results" row.
const MinQueryLength = 2

// NoResultsText is rendered in place of candidates.
const NoResultsText = "No items found"

// State of one dropdown.
type State int

const (
	Idle      State = iota // dropdown hidden, nothing scheduled
	Pending                // keystroke received, waiting for the quiet period
	Showing                // dropdown visible with candidates or the no-results row
	Committed              // a candidate was just chosen; the controller rests in Idle
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Showing:
		return "showing"
	case Committed:
		return "committed"
	default:
		return "idle"
	}
}

// Key is a navigation key delivered to the dropdown.
type Key int

const (
	KeyDown Key = iota
	KeyUp
	KeyEnter
	KeyEscape
)

// Source answers catalog queries. *models.Catalog implements it.
type Source interface {
	FilterByNameAndType(query string, allowed []models.ItemType, limit int) []models.CatalogItem
}

// Controller is the autocomplete state machine for one input row.
type Controller struct {
	id      string
	source  Source
	allowed []models.ItemType

	mu         sync.Mutex
	text       string
	state      State
	shown      bool
	ticket     uint64
	candidates []models.CatalogItem
	noResults  bool
	selected   int
}

// NewController builds an idle controller. With no allowed types the
// default allow-list is used.
func NewController(id string, source Source, allowed ...models.ItemType) *Controller {
	if len(allowed) == 0 {
		allowed = models.DefaultAllowedTypes
	}
	return &Controller{id: id, source: source, allowed: allowed, selected: -1}
}

// View is a consistent snapshot for rendering.
type View struct {
	ID         string
	Text       string
	State      State
	Visible    bool
	NoResults  bool
	Candidates []models.CatalogItem
	Selected   int
}

// ID identifies the row this controller serves.
func (c *Controller) ID() string {
	return c.id
}

// Input records a keystroke. Any pending filter is cancelled; the returned
// ticket must be handed to Elapse once DebounceDelay has passed.
func (c *Controller) Input(text string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = text
	c.ticket++
	c.state = Pending
	return c.ticket
}

// Elapse runs the filter for ticket if no newer keystroke has arrived.
// It reports whether the filter ran.
func (c *Controller) Elapse(ticket uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket != c.ticket || c.state != Pending {
		return false
	}

	query := strings.TrimSpace(c.text)
	c.selected = -1
	c.candidates = nil
	c.noResults = false

	switch {
	case query == "":
		c.state = Idle
		c.shown = false
	case utf8.RuneCountInString(query) < MinQueryLength:
		c.state = Showing
		c.shown = true
		c.noResults = true
	default:
		var found []models.CatalogItem
		if c.source != nil {
			found = c.source.FilterByNameAndType(query, c.allowed, models.MaxSuggestions)
		}
		c.candidates = found
		c.noResults = len(found) == 0
		c.state = Showing
		c.shown = true
	}
	return true
}

// Key applies a navigation key. The returned state is Committed when Enter
// chose a candidate.
func (c *Controller) Key(k Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.shown {
		return c.state
	}

	switch k {
	case KeyDown:
		if c.selected+1 <= len(c.candidates)-1 {
			c.selected++
		}
	case KeyUp:
		if c.selected > -1 {
			c.selected--
		}
	case KeyEnter:
		if c.selected >= 0 && c.selected < len(c.candidates) {
			c.commit(c.selected)
			return Committed
		}
	case KeyEscape:
		c.hide()
	}
	return c.state
}

// Click commits candidate i exactly like Enter would.
func (c *Controller) Click(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.shown || i < 0 || i >= len(c.candidates) {
		return false
	}
	c.commit(i)
	return true
}

// Hide collapses the dropdown without touching the input text.
func (c *Controller) Hide() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	wasShown := c.shown
	c.hide()
	return wasShown
}

// SetText replaces the input text without scheduling a filter, as when a
// row is restored or a trending term is clicked.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.hide()
}

// Text is the current input text.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// State is the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Visible reports whether the dropdown is shown.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shown
}

// SelectedIndex is -1 when nothing is selected.
func (c *Controller) SelectedIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Candidates returns a copy of the visible candidates.
func (c *Controller) Candidates() []models.CatalogItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CatalogItem(nil), c.candidates...)
}

// NoResults reports whether the dropdown shows the no-results row.
func (c *Controller) NoResults() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.noResults
}

// Snapshot returns everything a renderer needs under one lock.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		ID:         c.id,
		Text:       c.text,
		State:      c.state,
		Visible:    c.shown,
		NoResults:  c.noResults,
		Candidates: append([]models.CatalogItem(nil), c.candidates...),
		Selected:   c.selected,
	}
}

func (c *Controller) commit(i int) {
	c.text = c.candidates[i].Name
	c.hide()
}

// hide also invalidates any pending ticket since state leaves Pending.
func (c *Controller) hide() {
	c.state = Idle
	c.shown = false
	c.candidates = nil
	c.noResults = false
	c.selected = -1
}
