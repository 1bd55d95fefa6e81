package tui

import (
	"context"
	"time"

	"konvyshop/autocomplete"
	"konvyshop/models"
	"konvyshop/search"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/logger"
)

// Preview progress is polled at this rate.
const previewPollInterval = 100 * time.Millisecond

type debounceMsg struct {
	rowID  string
	ticket uint64
}

type catalogLoadedMsg struct {
	ok bool
}

type loginDoneMsg struct {
	username string
	err      error
}

type searchDoneMsg struct {
	outcome search.Outcome
	err     error
}

type favoriteDoneMsg struct {
	itemID int64
	active bool
	err    error
}

type buyDoneMsg struct {
	itemID  int64
	outcome search.BuyOutcome
	err     error
}

type previewTickMsg struct {
	jobID string
}

// debounce fires once the quiet period after a keystroke has passed. Only
// the ticket of the latest keystroke still filters when it arrives.
func debounce(rowID string, ticket uint64) tea.Cmd {
	return tea.Tick(autocomplete.DebounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{rowID: rowID, ticket: ticket}
	})
}

func loadCatalog(catalog *models.Catalog, fetcher models.CatalogFetcher) tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{ok: catalog.Load(context.Background(), fetcher)}
	}
}

func login(backend Backend, state *models.SessionState, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := backend.Login(ctx, username, password); err != nil {
			logger.LogErr(err, "terminal login failed", "username", username)
			return loginDoneMsg{username: username, err: err}
		}
		state.SetLogin(username)
		search.LoadFavorites(ctx, state, backend)
		search.LoadMyAccounts(ctx, state, backend)
		return loginDoneMsg{username: username}
	}
}

func runSearch(p *search.Pipeline, values []string, filters search.Filters) tea.Cmd {
	return func() tea.Msg {
		out, err := p.Submit(context.Background(), values, filters)
		return searchDoneMsg{outcome: out, err: err}
	}
}

func toggleFavorite(backend Backend, state *models.SessionState, itemID int64) tea.Cmd {
	return func() tea.Msg {
		active, err := search.ToggleFavorite(context.Background(), state, backend, itemID)
		return favoriteDoneMsg{itemID: itemID, active: active, err: err}
	}
}

func runBuy(b *search.Buyer, state *models.SessionState, backend Backend, itemID int64, basePrice float64) tea.Cmd {
	return func() tea.Msg {
		out, err := b.Buy(context.Background(), state, backend, itemID, basePrice)
		return buyDoneMsg{itemID: itemID, outcome: out, err: err}
	}
}

func pollPreview(jobID string) tea.Cmd {
	return tea.Tick(previewPollInterval, func(time.Time) tea.Msg {
		return previewTickMsg{jobID: jobID}
	})
}
