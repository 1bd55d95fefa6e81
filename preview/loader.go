package preview

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"konvyshop/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"golang.org/x/sync/errgroup"
)

const (
	// BatchSize is how many icons are resolved per back-end call.
	BatchSize = 10

	// PlaceholderIcon stands in for cosmetics without an image.
	PlaceholderIcon = "/static/placeholder.svg"

	FailedMessage = "Failed to load preview"
)

// EmptyMessage is shown when the account has nothing in category.
func EmptyMessage(category models.CosmeticCategory) string {
	return fmt.Sprintf("No %s available for this account", category)
}

// Source is the part of the shop back-end the preview needs.
type Source interface {
	AccountCosmetics(ctx context.Context, itemID int64, category models.CosmeticCategory) ([]string, error)
	SkinIcons(ctx context.Context, names []string, itemType models.ItemType) ([]models.CosmeticIcon, error)
}

// Prober checks that an image URL can be loaded. A failed probe still
// counts towards progress; the tile just falls back to the placeholder.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

// HTTPProber probes images with a GET request.
type HTTPProber struct {
	Client *http.Client
}

// NewHTTPProber uses a short timeout so one dead CDN host cannot stall a batch.
func NewHTTPProber() *HTTPProber {
	return &HTTPProber{Client: &http.Client{Timeout: 10 * time.Second}}
}

func (p *HTTPProber) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return serr.Wrap(err, "failed to create image request")
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return serr.Wrap(err, "image request failed")
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serr.New(fmt.Sprintf("image returned HTTP %d", resp.StatusCode))
	}
	return nil
}

// Tile is one rendered cosmetic.
type Tile struct {
	Name   string
	Icon   string
	Broken bool // probe failed; Icon is the placeholder
}

// Progress is the loaded/total counter shown while a preview loads.
type Progress struct {
	Loaded int
	Total  int
}

// Done reports whether every tile has been accounted for.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Loaded >= p.Total
}

// Result is a finished preview. Message is set instead of tiles when the
// account has nothing to show or loading failed.
type Result struct {
	Category models.CosmeticCategory
	Tiles    []Tile
	Message  string
}

// Loader resolves cosmetic names to icon tiles batch by batch.
type Loader struct {
	source Source
	prober Prober
}

// NewLoader builds a loader. prober may be nil to skip image probing.
func NewLoader(source Source, prober Prober) *Loader {
	return &Loader{source: source, prober: prober}
}

// Load fetches the names of category on accountID, then resolves icons in
// batches of BatchSize. Batches run one after another; the images of one
// batch are probed concurrently. onProgress sees a monotonic counter that
// reaches Total exactly once.
func (l *Loader) Load(ctx context.Context, accountID int64, category models.CosmeticCategory, onProgress func(Progress)) (Result, error) {
	res := Result{Category: category}
	report := func(p Progress) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	names, err := l.source.AccountCosmetics(ctx, accountID, category)
	if err != nil {
		res.Message = FailedMessage
		return res, serr.Wrap(err, "failed to fetch account cosmetics")
	}
	if len(names) == 0 {
		res.Message = EmptyMessage(category)
		return res, nil
	}

	total := len(names)
	report(Progress{Loaded: 0, Total: total})

	var mu sync.Mutex
	loaded := 0
	tick := func() {
		mu.Lock()
		loaded++
		p := Progress{Loaded: loaded, Total: total}
		// Report while holding the lock so observers see counts in order
		report(p)
		mu.Unlock()
	}

	itemType := category.ItemType()
	tiles := make([]Tile, 0, total)

	for start := 0; start < total; start += BatchSize {
		end := start + BatchSize
		if end > total {
			end = total
		}
		batch := names[start:end]

		icons, err := l.source.SkinIcons(ctx, batch, itemType)
		if err != nil {
			res.Message = FailedMessage
			res.Tiles = tiles
			return res, serr.Wrap(err, "failed to resolve cosmetic icons")
		}

		batchTiles := matchIcons(batch, icons)

		g, gctx := errgroup.WithContext(ctx)
		for i := range batchTiles {
			i := i
			g.Go(func() error {
				defer tick()
				if batchTiles[i].Icon == PlaceholderIcon || l.prober == nil {
					return nil
				}
				if err := l.prober.Probe(gctx, batchTiles[i].Icon); err != nil {
					logger.Debug("Cosmetic image failed to load", "name", batchTiles[i].Name, "error", err.Error())
					batchTiles[i].Broken = true
					batchTiles[i].Icon = PlaceholderIcon
				}
				// Probe failures are per image, never fatal to the batch
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			logger.LogErr(err, "cosmetic image batch failed", "account", accountID, "batch_start", start)
		}

		tiles = append(tiles, batchTiles...)
	}

	res.Tiles = tiles
	return res, nil
}

// matchIcons pairs each requested name with its icon, by name first and by
// position when the back-end omits names. Missing icons get the placeholder.
func matchIcons(names []string, icons []models.CosmeticIcon) []Tile {
	byName := make(map[string]string, len(icons))
	for _, ic := range icons {
		if ic.Name != "" && ic.Icon != "" {
			byName[ic.Name] = ic.Icon
		}
	}

	tiles := make([]Tile, len(names))
	for i, name := range names {
		icon, ok := byName[name]
		if !ok && i < len(icons) && icons[i].Name == "" {
			icon = icons[i].Icon
		}
		if icon == "" {
			icon = PlaceholderIcon
		}
		tiles[i] = Tile{Name: name, Icon: icon}
	}
	return tiles
}
