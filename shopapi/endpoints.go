package shopapi

import (
	"context"
	"fmt"
	"net/url"

	"konvyshop/models"

	"github.com/rohanthewiz/serr"
)

const (
	pathFavoritesList   = "/api/favorites/list"
	pathFavoritesAdd    = "/api/favorites/add"
	pathFavoritesRemove = "/api/favorites/remove"
	pathSearch          = "/api/fortnite/search"
	pathBuy             = "/api/fortnite/buy"
	pathMyAccounts      = "/api/fortnite/my-accounts"
	pathBalance         = "/api/balance"
	pathTopUp           = "/api/topup"
	pathRedeem          = "/api/redeem"
	pathSkinIcons       = "/api/skins/icons"
)

type itemIDBody struct {
	ItemID int64 `json:"item_id"`
}

// ListFavorites returns the favorited item IDs of the logged-in shopper.
func (c *Client) ListFavorites(ctx context.Context) ([]int64, error) {
	var resp struct {
		Favorites []int64 `json:"favorites"`
	}
	if err := c.PostJSON(ctx, pathFavoritesList, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// AddFavorite marks itemID as a favorite.
func (c *Client) AddFavorite(ctx context.Context, itemID int64) error {
	return c.PostJSON(ctx, pathFavoritesAdd, itemIDBody{ItemID: itemID}, nil)
}

// RemoveFavorite unmarks itemID.
func (c *Client) RemoveFavorite(ctx context.Context, itemID int64) error {
	return c.PostJSON(ctx, pathFavoritesRemove, itemIDBody{ItemID: itemID}, nil)
}

// Search runs an account search.
func (c *Client) Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error) {
	var resp models.SearchResponse
	if err := c.PostJSON(ctx, pathSearch, req, &resp); err != nil {
		return models.SearchResponse{}, err
	}
	return resp, nil
}

// BuyResult is the successful purchase response.
type BuyResult struct {
	Message string `json:"message"`
}

// Buy purchases an account at its base price.
func (c *Client) Buy(ctx context.Context, itemID int64, basePrice float64) (BuyResult, error) {
	body := struct {
		ItemID    int64   `json:"item_id"`
		BasePrice float64 `json:"base_price"`
	}{itemID, basePrice}

	var resp BuyResult
	if err := c.PostJSON(ctx, pathBuy, body, &resp); err != nil {
		return BuyResult{}, err
	}
	return resp, nil
}

// MyAccounts lists the accounts purchased by the shopper.
func (c *Client) MyAccounts(ctx context.Context) ([]models.PurchasedAccount, error) {
	var resp struct {
		Accounts []models.PurchasedAccount `json:"accounts"`
	}
	if err := c.PostJSON(ctx, pathMyAccounts, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// Balance returns the wallet balance in dollars.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	var resp struct {
		Balance float64 `json:"balance"`
	}
	if err := c.PostJSON(ctx, pathBalance, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// TopUp requests a checkout link for amount dollars.
func (c *Client) TopUp(ctx context.Context, amount float64) (string, error) {
	body := struct {
		Amount float64 `json:"amount"`
	}{amount}

	var resp struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := c.PostJSON(ctx, pathTopUp, body, &resp); err != nil {
		return "", err
	}
	if resp.CheckoutURL == "" {
		return "", serr.New("top-up response has no checkout url")
	}
	return resp.CheckoutURL, nil
}

// Redeem credits a paid order to the wallet and returns the server's message.
func (c *Client) Redeem(ctx context.Context, orderNumber int) (string, error) {
	body := struct {
		OrderNumber int `json:"order_number"`
	}{orderNumber}

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.PostJSON(ctx, pathRedeem, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// AccountCosmetics lists the cosmetic names of one category on an account.
func (c *Client) AccountCosmetics(ctx context.Context, itemID int64, category models.CosmeticCategory) ([]string, error) {
	path := fmt.Sprintf("/api/account/%d/cosmetics/%s", itemID, url.PathEscape(string(category)))

	var resp struct {
		Cosmetics []string `json:"cosmetics"`
	}
	if err := c.GetJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Cosmetics, nil
}

// SkinIcons resolves icon URLs for names. Entries come back in request order;
// an empty Icon means the back-end found no image.
func (c *Client) SkinIcons(ctx context.Context, names []string, itemType models.ItemType) ([]models.CosmeticIcon, error) {
	body := struct {
		Names []string `json:"names"`
		Type  string   `json:"type"`
	}{names, string(itemType)}

	var resp struct {
		Icons []models.CosmeticIcon `json:"icons"`
	}
	if err := c.PostJSON(ctx, pathSkinIcons, body, &resp); err != nil {
		return nil, err
	}
	return resp.Icons, nil
}
