package models

import (
	"fmt"
	"strings"
)

// BudgetUnbounded is sent when the shopper leaves the budget blank.
const BudgetUnbounded = 999999

// SearchRequest is the body of POST /api/fortnite/search.
type SearchRequest struct {
	Item   string  `json:"item"`
	Days   int     `json:"days"`
	Skins  int     `json:"skins"`
	Budget float64 `json:"budget"`
}

// AccountResult is one marketplace account returned by a search.
type AccountResult struct {
	ItemID     int64   `json:"item_id"`
	UserPrice  float64 `json:"user_price"`
	BasePrice  float64 `json:"base_price"`
	Level      int     `json:"level"`
	Skins      int     `json:"skins"`
	Pickaxes   int     `json:"pickaxes"`
	Emotes     int     `json:"emotes"`
	Gliders    int     `json:"gliders"`
	VBucks     int     `json:"vbucks"`
	LastPlayed string  `json:"last_played"`
	DaysAgo    *int    `json:"days_ago,omitempty"`
}

// PriceLabel formats the shopper-facing price.
func (a AccountResult) PriceLabel() string {
	return fmt.Sprintf("$%.2f", a.UserPrice)
}

// LastPlayedLabel falls back to "Unknown" when the back-end has no date.
func (a AccountResult) LastPlayedLabel() string {
	if a.LastPlayed == "" {
		return "Unknown"
	}
	return a.LastPlayed
}

// SearchResponse is the body returned by the search endpoint.
type SearchResponse struct {
	Accounts []AccountResult `json:"accounts"`
	NotFound []string        `json:"not_found,omitempty"`
}

// CosmeticCategory is the preview category of an account's cosmetics.
type CosmeticCategory string

const (
	CategorySkins    CosmeticCategory = "skins"
	CategoryPickaxes CosmeticCategory = "pickaxes"
	CategoryEmotes   CosmeticCategory = "emotes"
	CategoryGliders  CosmeticCategory = "gliders"
)

// CosmeticCategories lists the categories offered by the preview dialog, in display order.
var CosmeticCategories = []CosmeticCategory{CategorySkins, CategoryPickaxes, CategoryEmotes, CategoryGliders}

// ParseCosmeticCategory defaults unknown values to skins.
func ParseCosmeticCategory(raw string) CosmeticCategory {
	for _, c := range CosmeticCategories {
		if string(c) == raw {
			return c
		}
	}
	return CategorySkins
}

// ItemType maps a preview category to the catalog type used for icon lookups.
func (c CosmeticCategory) ItemType() ItemType {
	switch c {
	case CategoryPickaxes:
		return ItemPickaxe
	case CategoryEmotes:
		return ItemEmote
	case CategoryGliders:
		return ItemGlider
	default:
		return ItemOutfit
	}
}

// Label is the dialog button text.
func (c CosmeticCategory) Label() string {
	switch c {
	case CategoryPickaxes:
		return "⛏️ Pickaxes"
	case CategoryEmotes:
		return "💃 Emotes"
	case CategoryGliders:
		return "🪂 Gliders"
	default:
		return "🎭 Skins"
	}
}

// ModalTitle is the preview modal heading for the category.
func (c CosmeticCategory) ModalTitle() string {
	switch c {
	case CategorySkins:
		return "Account Skins"
	case CategoryPickaxes:
		return "Account Pickaxes"
	case CategoryEmotes:
		return "Account Emotes"
	case CategoryGliders:
		return "Account Gliders"
	default:
		return "Account Cosmetics"
	}
}

// CosmeticIcon is one entry of the icon lookup response.
type CosmeticIcon struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// PurchasedAccount is a stored purchase as returned by my-accounts.
type PurchasedAccount struct {
	Timestamp      int64          `json:"timestamp"`
	PurchaseResult PurchaseResult `json:"purchase_result"`
}

// PurchaseResult is the subset of the marketplace purchase payload we render.
type PurchaseResult struct {
	Item struct {
		ItemID         int64 `json:"item_id"`
		EmailLoginData struct {
			Raw string `json:"raw"`
		} `json:"emailLoginData"`
		LoginData struct {
			Raw string `json:"raw"`
		} `json:"loginData"`
	} `json:"item"`
}

// Credentials is the rendered credential block of a purchased account.
type Credentials struct {
	EmailLogin string
	EmailSite  string
	EpicLogin  string
}

// Credentials extracts the email/epic logins, using "N/A" for missing values.
// The email site is the domain part of "user@site:password".
func (p PurchasedAccount) Credentials() Credentials {
	cred := Credentials{
		EmailLogin: p.PurchaseResult.Item.EmailLoginData.Raw,
		EpicLogin:  p.PurchaseResult.Item.LoginData.Raw,
		EmailSite:  "Unknown",
	}
	if cred.EmailLogin == "" {
		cred.EmailLogin = "N/A"
	}
	if cred.EpicLogin == "" {
		cred.EpicLogin = "N/A"
	}

	if strings.Contains(cred.EmailLogin, "@") {
		account := strings.SplitN(cred.EmailLogin, ":", 2)[0]
		if parts := strings.SplitN(account, "@", 2); len(parts) == 2 && parts[1] != "" {
			cred.EmailSite = parts[1]
		}
	}
	return cred
}
