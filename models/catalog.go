package models

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
)

// ItemType is the cosmetic category reported by the catalog.
type ItemType string

const (
	ItemOutfit  ItemType = "outfit"
	ItemPickaxe ItemType = "pickaxe"
	ItemEmote   ItemType = "emote"
	ItemGlider  ItemType = "glider"
	ItemOther   ItemType = "other"
)

// ParseItemType maps a raw catalog type value onto the known types.
// Anything unrecognised becomes ItemOther.
func ParseItemType(raw string) ItemType {
	switch t := ItemType(strings.ToLower(strings.TrimSpace(raw))); t {
	case ItemOutfit, ItemPickaxe, ItemEmote, ItemGlider:
		return t
	default:
		return ItemOther
	}
}

// DefaultAllowedTypes is the allow-list used by item autocomplete.
var DefaultAllowedTypes = []ItemType{ItemOutfit, ItemPickaxe, ItemEmote, ItemGlider}

// MaxSuggestions caps every catalog filter result.
const MaxSuggestions = 10

// CatalogItem is one purchasable cosmetic definition. Items are never
// mutated after the catalog has been loaded.
type CatalogItem struct {
	Name        string   `json:"name"`
	Type        ItemType `json:"type"`
	TypeDisplay string   `json:"type_display,omitempty"`
	Rarity      string   `json:"rarity"`
	IconURL     string   `json:"icon_url,omitempty"`
}

// TypeLabel is the human readable type shown next to a suggestion.
func (ci CatalogItem) TypeLabel() string {
	if ci.TypeDisplay != "" {
		return ci.TypeDisplay
	}
	if ci.Type != "" {
		return string(ci.Type)
	}
	return "Item"
}

// RarityLabel returns the lower-cased rarity, defaulting to "common".
func (ci CatalogItem) RarityLabel() string {
	if ci.Rarity == "" {
		return "common"
	}
	return strings.ToLower(ci.Rarity)
}

// CatalogFetcher retrieves the full cosmetics list from the remote catalog.
type CatalogFetcher interface {
	FetchAll(ctx context.Context) ([]CatalogItem, error)
}

// Catalog is the process-wide, read-mostly cosmetics cache backing autocomplete.
// It is filled once at startup and only ever replaced wholesale.
type Catalog struct {
	mu       sync.RWMutex
	items    []CatalogItem
	loadedAt time.Time
}

// NewCatalog returns a catalog pre-populated with items (handy for tests and offline use).
func NewCatalog(items ...CatalogItem) *Catalog {
	c := &Catalog{}
	if len(items) > 0 {
		c.Replace(items)
	}
	return c
}

// Load performs the single catalog fetch. On failure the cache is left as it
// was and the error is only logged; autocomplete then degrades to "no results".
func (c *Catalog) Load(ctx context.Context, fetcher CatalogFetcher) bool {
	items, err := fetcher.FetchAll(ctx)
	if err != nil {
		logger.LogErr(err, "failed to load cosmetics catalog")
		return false
	}

	c.Replace(items)
	logger.Info("Loaded cosmetics catalog", "count", len(items))
	return true
}

// Replace swaps the whole cache for items.
func (c *Catalog) Replace(items []CatalogItem) {
	cp := make([]CatalogItem, len(items))
	copy(cp, items)

	c.mu.Lock()
	c.items = cp
	c.loadedAt = time.Now()
	c.mu.Unlock()
}

// Len reports how many items are cached.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// LoadedAt is the zero time until the first successful load.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// FilterByNameAndType returns the items whose name contains query
// (case-insensitive) and whose type is in allowed. Results keep the cache
// order and never exceed min(limit, MaxSuggestions).
func (c *Catalog) FilterByNameAndType(query string, allowed []ItemType, limit int) []CatalogItem {
	q := strings.ToLower(query)
	if q == "" {
		return nil
	}
	if limit <= 0 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}

	allowSet := make(map[ItemType]struct{}, len(allowed))
	for _, t := range allowed {
		allowSet[t] = struct{}{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]CatalogItem, 0, limit)
	for _, item := range c.items {
		if _, ok := allowSet[item.Type]; !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(item.Name), q) {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Names returns the names of all items of the given types, in cache order.
func (c *Catalog) Names(types ...ItemType) []string {
	typeSet := make(map[ItemType]struct{}, len(types))
	for _, t := range types {
		typeSet[t] = struct{}{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.items))
	for _, item := range c.items {
		if _, ok := typeSet[item.Type]; ok || len(types) == 0 {
			names = append(names, item.Name)
		}
	}
	return names
}
