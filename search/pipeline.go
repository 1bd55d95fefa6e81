package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"konvyshop/models"
	"konvyshop/shopapi"

	"github.com/rohanthewiz/logger"
)

// Texts of the results area.
const (
	LoadingText    = "Searching for accounts..."
	EmptyText      = "No accounts found"
	EmptyHint      = "Try different items or adjust your filters"
	FailedHeadline = "Search Error"
)

// Status of a search outcome.
type Status int

const (
	Loading Status = iota
	Empty
	Results
	Failed
	Stale // superseded by a newer search; must not be rendered
)

func (s Status) String() string {
	switch s {
	case Empty:
		return "empty"
	case Results:
		return "results"
	case Failed:
		return "failed"
	case Stale:
		return "stale"
	default:
		return "loading"
	}
}

// Searcher runs searches against the back-end.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error)
}

// Suggester proposes a catalog name for an unresolved term.
type Suggester interface {
	Suggest(name string) string
}

// NotFound is an item the marketplace could not resolve, with an optional
// catalog suggestion.
type NotFound struct {
	Name       string
	Suggestion string
}

// Outcome is what the results area renders.
type Outcome struct {
	Status     Status
	Generation uint64
	Request    models.SearchRequest
	Accounts   []models.AccountResult
	NotFound   []NotFound
	Message    string // error text for Failed
}

// Pipeline submits searches for one session. Each submit takes a new
// generation; a response that arrives after a newer submit is reported Stale.
type Pipeline struct {
	sessionID string
	searcher  Searcher
	suggester Suggester

	generation atomic.Uint64

	mu   sync.Mutex
	last Outcome
}

// NewPipeline wires a pipeline. suggester may be nil.
func NewPipeline(sessionID string, searcher Searcher, suggester Suggester) *Pipeline {
	return &Pipeline{sessionID: sessionID, searcher: searcher, suggester: suggester}
}

// Generation is the latest submitted generation.
func (p *Pipeline) Generation() uint64 {
	return p.generation.Load()
}

// Last is the most recent non-stale outcome.
func (p *Pipeline) Last() Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Submit validates the form, runs the search and classifies the result.
// ErrNoItems is returned, with no request made, when every row is blank.
func (p *Pipeline) Submit(ctx context.Context, values []string, filters Filters) (Outcome, error) {
	req, terms, err := BuildRequest(values, filters)
	if err != nil {
		return Outcome{}, err
	}

	gen := p.generation.Add(1)
	p.setLast(Outcome{Status: Loading, Generation: gen, Request: req})

	resp, err := p.searcher.Search(ctx, req)

	if gen != p.generation.Load() {
		logger.Debug("Dropping superseded search response", "generation", gen)
		return Outcome{Status: Stale, Generation: gen, Request: req}, nil
	}

	out := Outcome{Generation: gen, Request: req}
	switch {
	case err != nil:
		out.Status = Failed
		out.Message = errorText(err)
		logger.LogErr(err, "search failed", "item", req.Item)
	case len(resp.Accounts) == 0:
		out.Status = Empty
	default:
		out.Status = Results
		out.Accounts = resp.Accounts
	}
	out.NotFound = p.notFound(resp.NotFound)

	if err := models.RecordSearch(p.sessionID, terms, len(out.Accounts), out.Status == Failed); err != nil {
		logger.LogErr(err, "failed to record search")
	}

	p.setLast(out)
	return out, nil
}

func (p *Pipeline) setLast(o Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if o.Generation >= p.last.Generation {
		p.last = o
	}
}

func (p *Pipeline) notFound(names []string) []NotFound {
	if len(names) == 0 {
		return nil
	}
	out := make([]NotFound, 0, len(names))
	for _, n := range names {
		nf := NotFound{Name: n}
		if p.suggester != nil {
			if s := p.suggester.Suggest(n); s != "" && s != n {
				nf.Suggestion = s
			}
		}
		out = append(out, nf)
	}
	return out
}

// errorText is the message shown to the shopper: the back-end's error field
// for API failures, the raw error otherwise.
func errorText(err error) string {
	var apiErr *shopapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
