package shopapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"konvyshop/models"

	"github.com/rohanthewiz/serr"
)

// DefaultCatalogURL is the public cosmetics listing.
const DefaultCatalogURL = "https://fortnite-api.com/v2/cosmetics/br"

// CatalogClient fetches the full cosmetics list. It satisfies models.CatalogFetcher.
type CatalogClient struct {
	url        string
	httpClient *http.Client
}

// NewCatalogClient uses DefaultCatalogURL when url is empty.
func NewCatalogClient(url string, timeout time.Duration) *CatalogClient {
	if url == "" {
		url = DefaultCatalogURL
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &CatalogClient{url: url, httpClient: &http.Client{Timeout: timeout}}
}

type catalogResponse struct {
	Status int              `json:"status"`
	Data   []catalogPayload `json:"data"`
}

type catalogPayload struct {
	Name string `json:"name"`
	Type struct {
		Value        string `json:"value"`
		DisplayValue string `json:"displayValue"`
	} `json:"type"`
	Rarity struct {
		Value        string `json:"value"`
		DisplayValue string `json:"displayValue"`
	} `json:"rarity"`
	Images struct {
		Icon      string `json:"icon"`
		SmallIcon string `json:"smallIcon"`
	} `json:"images"`
}

// FetchAll downloads and maps the catalog. A body whose status is not 200 is a failure.
func (cc *CatalogClient) FetchAll(ctx context.Context) ([]models.CatalogItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cc.url, nil)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := cc.httpClient.Do(req)
	if err != nil {
		return nil, serr.Wrap(err, "catalog request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serr.New(fmt.Sprintf("catalog returned HTTP %d", resp.StatusCode))
	}

	var payload catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, serr.Wrap(err, "failed to decode catalog")
	}
	if payload.Status != http.StatusOK {
		return nil, serr.New(fmt.Sprintf("catalog reported status %d", payload.Status))
	}

	items := make([]models.CatalogItem, 0, len(payload.Data))
	for _, p := range payload.Data {
		if p.Name == "" {
			continue
		}
		icon := p.Images.SmallIcon
		if icon == "" {
			icon = p.Images.Icon
		}
		items = append(items, models.CatalogItem{
			Name:        p.Name,
			Type:        models.ParseItemType(p.Type.Value),
			TypeDisplay: p.Type.DisplayValue,
			Rarity:      p.Rarity.DisplayValue,
			IconURL:     icon,
		})
	}
	return items, nil
}
