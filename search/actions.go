package search

import (
	"context"
	"errors"
	"sync"

	"konvyshop/models"
	"konvyshop/shopapi"

	"github.com/rohanthewiz/logger"
)

// User-facing texts of the card actions.
const (
	FavoritesLoginMessage  = "Please login to save favorites"
	FavoritesFailedPrefix  = "Failed to update favorites: "
	BuyLoginPrompt         = "You need to login to purchase accounts. Go to login page?"
	PurchaseSuccessMessage = "✅ Purchase successful! Check 'My Accounts' tab."
	MyAccountsFailedText   = "Failed to load accounts."
	MyAccountsEmptyText    = "No purchased accounts."
)

var (
	ErrLoginRequired    = errors.New("login required")
	ErrPurchaseInFlight = errors.New("purchase already in progress")
)

// FavoritesBackend is the favorites part of the shop back-end.
type FavoritesBackend interface {
	ListFavorites(ctx context.Context) ([]int64, error)
	AddFavorite(ctx context.Context, itemID int64) error
	RemoveFavorite(ctx context.Context, itemID int64) error
}

// LoadFavorites fills the session's favorites once after login. Failures
// are logged and swallowed; the set stays empty.
func LoadFavorites(ctx context.Context, state *models.SessionState, backend FavoritesBackend) {
	if !state.LoggedIn() {
		return
	}
	ids, err := backend.ListFavorites(ctx)
	if err != nil {
		logger.LogErr(err, "failed to load favorites", "session", state.ID)
		return
	}
	state.Favorites.Reset(ids)
}

// ToggleFavorite flips itemID optimistically and writes it to the back-end.
// On failure the visible state reverts and the error is returned. The
// visible state after the call is always returned.
func ToggleFavorite(ctx context.Context, state *models.SessionState, backend FavoritesBackend, itemID int64) (bool, error) {
	if !state.LoggedIn() {
		return state.Favorites.Has(itemID), ErrLoginRequired
	}

	add, err := state.Favorites.Begin(itemID)
	if err != nil {
		return state.Favorites.Has(itemID), err
	}

	if add {
		err = backend.AddFavorite(ctx, itemID)
	} else {
		err = backend.RemoveFavorite(ctx, itemID)
	}

	return state.Favorites.Settle(itemID, err), err
}

// FavoriteErrorText renders a toggle error for the shopper.
func FavoriteErrorText(err error) string {
	switch {
	case errors.Is(err, ErrLoginRequired):
		return FavoritesLoginMessage
	case errors.Is(err, models.ErrTogglePending):
		return FavoritesFailedPrefix + "update already in progress"
	}
	var apiErr *shopapi.APIError
	if errors.As(err, &apiErr) {
		return FavoritesFailedPrefix + apiErr.Error()
	}
	return FavoritesFailedPrefix + err.Error()
}

// AccountsBackend lists purchased accounts.
type AccountsBackend interface {
	MyAccounts(ctx context.Context) ([]models.PurchasedAccount, error)
}

// LoadMyAccounts reloads the purchased accounts and resets the carousel.
// Failures are logged and flagged on the list.
func LoadMyAccounts(ctx context.Context, state *models.SessionState, backend AccountsBackend) {
	if !state.LoggedIn() {
		return
	}
	accounts, err := backend.MyAccounts(ctx)
	if err != nil {
		logger.LogErr(err, "failed to load purchased accounts", "session", state.ID)
		state.MyAccounts.MarkFailed()
		return
	}
	state.MyAccounts.Reset(accounts)
}

// BuyBackend is the purchase part of the shop back-end.
type BuyBackend interface {
	AccountsBackend
	Buy(ctx context.Context, itemID int64, basePrice float64) (shopapi.BuyResult, error)
}

// BuyStatus classifies a buy attempt.
type BuyStatus int

const (
	BuyRedirectLogin BuyStatus = iota // not logged in; no request was made
	BuySucceeded
	BuyFailed
)

// BuyOutcome is what the card shows after a buy attempt.
type BuyOutcome struct {
	Status  BuyStatus
	Message string // shopper-facing text, verbatim from the server on failure
	Detail  string // server confirmation on success
}

// Buyer guards purchases of one session. Each item can have at most one
// purchase in flight; the check and the claim happen under one lock.
type Buyer struct {
	sessionID string

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewBuyer(sessionID string) *Buyer {
	return &Buyer{sessionID: sessionID, inFlight: make(map[int64]struct{})}
}

// InFlight reports whether itemID is being purchased.
func (b *Buyer) InFlight(itemID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.inFlight[itemID]
	return ok
}

func (b *Buyer) claim(itemID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.inFlight[itemID]; ok {
		return false
	}
	b.inFlight[itemID] = struct{}{}
	return true
}

func (b *Buyer) release(itemID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inFlight, itemID)
}

// Buy purchases itemID. Unauthenticated sessions get BuyRedirectLogin and
// no request is made. A second Buy of the same item while the first is
// running returns ErrPurchaseInFlight.
func (b *Buyer) Buy(ctx context.Context, state *models.SessionState, backend BuyBackend, itemID int64, basePrice float64) (BuyOutcome, error) {
	if !state.LoggedIn() {
		return BuyOutcome{Status: BuyRedirectLogin, Message: BuyLoginPrompt}, nil
	}
	if !b.claim(itemID) {
		return BuyOutcome{}, ErrPurchaseInFlight
	}
	defer b.release(itemID)

	res, err := backend.Buy(ctx, itemID, basePrice)
	if err != nil {
		msg := err.Error()
		var apiErr *shopapi.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.UserMessage()
		}
		logger.LogErr(err, "purchase failed", "item_id", itemID)
		b.record(itemID, basePrice, models.PurchaseFailed, msg)
		return BuyOutcome{Status: BuyFailed, Message: msg}, nil
	}

	b.record(itemID, basePrice, models.PurchaseSucceeded, res.Message)
	LoadMyAccounts(ctx, state, backend)

	return BuyOutcome{Status: BuySucceeded, Message: PurchaseSuccessMessage, Detail: res.Message}, nil
}

func (b *Buyer) record(itemID int64, basePrice float64, outcome, message string) {
	if err := models.RecordPurchase(b.sessionID, itemID, basePrice, outcome, message); err != nil {
		logger.LogErr(err, "failed to record purchase")
	}
}
