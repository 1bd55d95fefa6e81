package search

import (
	"errors"
	"strconv"
	"strings"

	"konvyshop/models"
)

// NoItemsMessage prompts the shopper when every row is blank.
const NoItemsMessage = "Please enter at least one item to search"

// ErrNoItems means no request was built because every row was blank.
var ErrNoItems = errors.New("no items to search")

// Filters are the raw filter fields of the search form.
type Filters struct {
	Days   string // minimum days since last played
	Skins  string // minimum skin count
	Budget string // maximum price; blank means unbounded
}

// BuildRequest turns row texts and filters into a search request. Blank rows
// are dropped; the remaining terms are returned alongside for logging.
func BuildRequest(values []string, f Filters) (models.SearchRequest, []string, error) {
	terms := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			terms = append(terms, v)
		}
	}
	if len(terms) == 0 {
		return models.SearchRequest{}, nil, ErrNoItems
	}

	req := models.SearchRequest{
		Item:   strings.Join(terms, ", "),
		Days:   parseIntOrZero(f.Days),
		Skins:  parseIntOrZero(f.Skins),
		Budget: models.BudgetUnbounded,
	}
	if b := strings.TrimSpace(f.Budget); b != "" {
		if v, err := strconv.ParseFloat(b, 64); err == nil {
			req.Budget = v
		}
	}
	return req, terms, nil
}

func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Tolerate "7.0" from number inputs
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
