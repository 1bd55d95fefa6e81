// Package tui is the terminal storefront. It drives the same autocomplete
// rows, search pipeline and card actions as the web dashboard.
package tui

import (
	"context"
	"errors"

	"konvyshop/autocomplete"
	"konvyshop/models"
	"konvyshop/preview"
	"konvyshop/search"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// LoginHint replaces the web login redirect in the terminal.
const LoginHint = "Login required: set KONVY_TUI_USERNAME and KONVY_TUI_PASSWORD"

// Backend is everything the terminal storefront calls on the shop back-end.
// *shopapi.Client implements it.
type Backend interface {
	search.Searcher
	search.FavoritesBackend
	search.BuyBackend
	preview.Source
	Login(ctx context.Context, username, password string) error
}

// Options wires a Model.
type Options struct {
	Backend  Backend
	Catalog  *models.Catalog
	Fetcher  models.CatalogFetcher // nil skips loading the catalog
	Prober   preview.Prober
	Username string
	Password string
}

type pane int

const (
	paneForm pane = iota
	paneResults
	paneCategory
	panePreview
	paneAccounts
)

const (
	fieldDays = iota
	fieldSkins
	fieldBudget
	filterCount
)

// Model is the bubbletea model of the terminal storefront.
type Model struct {
	opts     Options
	state    *models.SessionState
	rows     *autocomplete.RowSet
	pipeline *search.Pipeline
	buyer    *search.Buyer
	loader   *preview.Loader

	inputs  map[string]textinput.Model // keyed by row ID
	filters [filterCount]textinput.Model
	focus   int // rows first, then filters

	pane      pane
	outcome   search.Outcome
	searching bool
	cursor    int
	buying    int64 // item being purchased, 0 when idle

	category models.CosmeticCategory
	job      *preview.Job

	status    string
	statusErr bool

	spinner spinner.Model
	help    help.Model
	width   int
}

// New builds the model with one empty item row.
func New(opts Options) *Model {
	if opts.Catalog == nil {
		opts.Catalog = models.NewCatalog()
	}
	id := uuid.NewString()

	m := &Model{
		opts:     opts,
		state:    models.NewSessionState(id),
		rows:     autocomplete.NewRowSet(opts.Catalog, autocomplete.NewRegistry()),
		pipeline: search.NewPipeline(id, opts.Backend, opts.Catalog),
		buyer:    search.NewBuyer(id),
		loader:   preview.NewLoader(opts.Backend, opts.Prober),
		inputs:   make(map[string]textinput.Model),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:     help.New(),
	}

	for _, c := range m.rows.Rows() {
		m.inputs[c.ID()] = newInput("Enter item name (e.g., Renegade Raider)")
	}
	m.filters[fieldDays] = newInput("Min days offline")
	m.filters[fieldSkins] = newInput("Min skins")
	m.filters[fieldBudget] = newInput("Max budget ($)")
	m.syncFocus()
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 64
	return ti
}

// Init loads the catalog and signs in when credentials were given.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.opts.Fetcher != nil {
		cmds = append(cmds, loadCatalog(m.opts.Catalog, m.opts.Fetcher))
	}
	if m.opts.Username != "" {
		cmds = append(cmds, login(m.opts.Backend, m.state, m.opts.Username, m.opts.Password))
	}
	return tea.Batch(cmds...)
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			if m.job != nil {
				m.job.Cancel()
			}
			return m, tea.Quit
		}
		switch m.pane {
		case paneResults:
			return m, m.updateResults(msg)
		case paneCategory:
			return m, m.updateCategory(msg)
		case panePreview:
			return m, m.updatePreview(msg)
		case paneAccounts:
			return m, m.updateAccounts(msg)
		default:
			return m, m.updateForm(msg)
		}

	case debounceMsg:
		if c, ok := m.rows.Row(msg.rowID); ok {
			c.Elapse(msg.ticket)
		}
		return m, nil

	case catalogLoadedMsg:
		if !msg.ok {
			m.setStatus("Item catalog unavailable; suggestions are disabled", true)
		}
		return m, nil

	case loginDoneMsg:
		if msg.err != nil {
			m.setStatus("Login failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("Logged in as "+msg.username, false)
		}
		return m, nil

	case searchDoneMsg:
		return m, m.searchDone(msg)

	case favoriteDoneMsg:
		if msg.err != nil {
			m.setStatus(search.FavoriteErrorText(msg.err), true)
		}
		return m, nil

	case buyDoneMsg:
		m.buyDone(msg)
		return m, nil

	case previewTickMsg:
		if m.job == nil || m.job.ID != msg.jobID {
			return m, nil
		}
		if _, done := m.job.Result(); done {
			return m, nil
		}
		return m, pollPreview(m.job.ID)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.updateFocused(msg)
}

func (m *Model) busy() bool {
	return m.searching || m.buying != 0
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// Form pane

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	if c, ok := m.focusedRow(); ok && c.Visible() {
		if k, nav := dropdownKey(msg); nav {
			if c.Key(k) == autocomplete.Committed {
				m.setRowText(c.ID(), c.Text())
				return nil
			}
			// Enter without a highlighted candidate submits the form
			if k != autocomplete.KeyEnter {
				return nil
			}
		}
	}

	switch {
	case key.Matches(msg, keys.NextField):
		m.moveFocus(1)
		return nil
	case key.Matches(msg, keys.PrevField):
		m.moveFocus(-1)
		return nil
	case key.Matches(msg, keys.AddRow):
		return m.addRow()
	case key.Matches(msg, keys.RemoveRow):
		m.removeFocusedRow()
		return nil
	case key.Matches(msg, keys.Results):
		m.rows.Registry().DismissOutside("")
		m.pane = paneResults
		return nil
	case key.Matches(msg, keys.Accounts):
		m.rows.Registry().DismissOutside("")
		m.pane = paneAccounts
		return nil
	case key.Matches(msg, keys.Submit):
		return m.submit()
	}
	return m.updateFocused(msg)
}

func dropdownKey(msg tea.KeyMsg) (autocomplete.Key, bool) {
	switch msg.Type {
	case tea.KeyDown:
		return autocomplete.KeyDown, true
	case tea.KeyUp:
		return autocomplete.KeyUp, true
	case tea.KeyEnter:
		return autocomplete.KeyEnter, true
	case tea.KeyEsc:
		return autocomplete.KeyEscape, true
	}
	return 0, false
}

// updateFocused forwards msg to the focused input. A changed row text is a
// keystroke for that row's controller and starts its debounce timer.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	rows := m.rows.Rows()
	if m.focus < len(rows) {
		c := rows[m.focus]
		ti := m.inputs[c.ID()]
		before := ti.Value()
		ti, cmd := ti.Update(msg)
		m.inputs[c.ID()] = ti
		if ti.Value() == before {
			return cmd
		}
		return tea.Batch(cmd, debounce(c.ID(), c.Input(ti.Value())))
	}

	i := m.focus - len(rows)
	if i < 0 || i >= filterCount {
		return nil
	}
	var cmd tea.Cmd
	m.filters[i], cmd = m.filters[i].Update(msg)
	return cmd
}

func (m *Model) focusedRow() (*autocomplete.Controller, bool) {
	rows := m.rows.Rows()
	if m.focus < len(rows) {
		return rows[m.focus], true
	}
	return nil, false
}

func (m *Model) moveFocus(delta int) {
	total := m.rows.Len() + filterCount
	m.focus = (m.focus + delta + total) % total
	m.syncFocus()
}

// syncFocus focuses exactly one input and closes every dropdown but the
// focused row's, like a click elsewhere on the page.
func (m *Model) syncFocus() {
	rows := m.rows.Rows()
	focusedID := ""
	for i, c := range rows {
		ti := m.inputs[c.ID()]
		if i == m.focus {
			ti.Focus()
			focusedID = c.ID()
		} else {
			ti.Blur()
		}
		m.inputs[c.ID()] = ti
	}
	for i := range m.filters {
		if len(rows)+i == m.focus {
			m.filters[i].Focus()
		} else {
			m.filters[i].Blur()
		}
	}
	m.rows.Registry().DismissOutside(focusedID)
}

func (m *Model) setRowText(id, text string) {
	ti := m.inputs[id]
	ti.SetValue(text)
	ti.CursorEnd()
	m.inputs[id] = ti
}

func (m *Model) addRow() tea.Cmd {
	c, err := m.rows.Add()
	if err != nil {
		if errors.Is(err, autocomplete.ErrMaxRows) {
			m.setStatus(autocomplete.MaxRowsMessage, true)
		}
		return nil
	}
	m.inputs[c.ID()] = newInput("Enter another item")
	m.focus = m.rows.Len() - 1
	m.syncFocus()
	return textinput.Blink
}

func (m *Model) removeFocusedRow() {
	c, ok := m.focusedRow()
	if !ok {
		return
	}
	if err := m.rows.Remove(c.ID()); err != nil {
		return // the last row stays
	}
	delete(m.inputs, c.ID())
	if m.focus >= m.rows.Len() {
		m.focus = m.rows.Len() - 1
	}
	m.syncFocus()
}

func (m *Model) filterValues() search.Filters {
	return search.Filters{
		Days:   m.filters[fieldDays].Value(),
		Skins:  m.filters[fieldSkins].Value(),
		Budget: m.filters[fieldBudget].Value(),
	}
}

func (m *Model) submit() tea.Cmd {
	values := m.rows.Values()
	filters := m.filterValues()

	req, _, err := search.BuildRequest(values, filters)
	if err != nil {
		m.setStatus(search.NoItemsMessage, true)
		return nil
	}

	m.rows.Registry().DismissOutside("")
	m.outcome = search.Outcome{Status: search.Loading, Request: req}
	m.searching = true
	m.cursor = 0
	m.setStatus("", false)
	return tea.Batch(m.spinner.Tick, runSearch(m.pipeline, values, filters))
}

func (m *Model) searchDone(msg searchDoneMsg) tea.Cmd {
	if msg.err != nil {
		m.searching = false
		m.setStatus(msg.err.Error(), true)
		return nil
	}
	if msg.outcome.Status == search.Stale {
		return nil
	}
	m.searching = false
	m.outcome = msg.outcome
	m.cursor = 0
	if len(m.outcome.Accounts) > 0 {
		m.pane = paneResults
	}
	return nil
}

// Results pane

func (m *Model) selectedAccount() (models.AccountResult, bool) {
	if m.cursor < 0 || m.cursor >= len(m.outcome.Accounts) {
		return models.AccountResult{}, false
	}
	return m.outcome.Accounts[m.cursor], true
}

func (m *Model) updateResults(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		m.pane = paneForm
	case key.Matches(msg, keys.Accounts):
		m.pane = paneAccounts
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.outcome.Accounts)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Favorite):
		if acc, ok := m.selectedAccount(); ok {
			return toggleFavorite(m.opts.Backend, m.state, acc.ItemID)
		}
	case key.Matches(msg, keys.Buy):
		if acc, ok := m.selectedAccount(); ok {
			return m.buy(acc)
		}
	case key.Matches(msg, keys.Preview):
		if _, ok := m.selectedAccount(); ok {
			m.pane = paneCategory
		}
	}
	return nil
}

func (m *Model) buy(acc models.AccountResult) tea.Cmd {
	if !m.state.LoggedIn() {
		m.setStatus(LoginHint, true)
		return nil
	}
	if m.buyer.InFlight(acc.ItemID) {
		m.setStatus(search.ErrPurchaseInFlight.Error(), true)
		return nil
	}
	m.buying = acc.ItemID
	return tea.Batch(m.spinner.Tick, runBuy(m.buyer, m.state, m.opts.Backend, acc.ItemID, acc.BasePrice))
}

func (m *Model) buyDone(msg buyDoneMsg) {
	if m.buying == msg.itemID {
		m.buying = 0
	}
	switch {
	case msg.err != nil:
		m.setStatus(msg.err.Error(), true)
	case msg.outcome.Status == search.BuyRedirectLogin:
		m.setStatus(LoginHint, true)
	case msg.outcome.Status == search.BuyFailed:
		m.setStatus("❌ "+msg.outcome.Message, true)
	default:
		m.setStatus(msg.outcome.Message, false)
	}
}

// Preview panes

func (m *Model) updateCategory(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Back) {
		m.pane = paneResults
		return nil
	}
	category, ok := categoryKey(msg)
	if !ok {
		return nil
	}
	acc, ok := m.selectedAccount()
	if !ok {
		m.pane = paneResults
		return nil
	}

	if m.job != nil {
		m.job.Cancel()
	}
	m.category = category
	m.job = preview.Start(context.Background(), m.loader, acc.ItemID, category)
	m.pane = panePreview
	return pollPreview(m.job.ID)
}

// categoryKey maps 1-4 to the dialog's categories; enter picks skins.
func categoryKey(msg tea.KeyMsg) (models.CosmeticCategory, bool) {
	if msg.Type == tea.KeyEnter {
		return models.CategorySkins, true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return "", false
	}
	i := int(msg.Runes[0] - '1')
	if i < 0 || i >= len(models.CosmeticCategories) {
		return "", false
	}
	return models.CosmeticCategories[i], true
}

func (m *Model) updatePreview(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Back) {
		if m.job != nil {
			m.job.Cancel()
			m.job = nil
		}
		m.pane = paneResults
	}
	return nil
}

// My accounts pane

func (m *Model) updateAccounts(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		m.pane = paneForm
	case key.Matches(msg, keys.Left):
		m.state.MyAccounts.Prev()
	case key.Matches(msg, keys.Right):
		m.state.MyAccounts.Next()
	}
	return nil
}
