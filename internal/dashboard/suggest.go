package dashboard

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"unicode/utf8"

	"github.com/propertyplus/propclient/internal/flow"
	"github.com/propertyplus/propclient/pkg/reqid"
)

// MinQueryLength is the shortest input that triggers a suggestion fetch.
const MinQueryLength = 2

// FetchFunc asks the backend for suggestions matching q.
type FetchFunc func(ctx context.Context, q string) ([]string, error)

// SuggestView renders the suggestion dropdown.
type SuggestView interface {
	ShowSuggestions(items []string)
	ClearSuggestions()
}

// SuggestionBox drives the live-search dropdown: inputs below two runes
// clear the list without a request, everything else fetches after the
// debounce quiet period. Responses for superseded inputs are dropped.
type SuggestionBox struct {
	fetch    FetchFunc
	view     SuggestView
	debounce *flow.Debouncer
	log      *slog.Logger

	mu    sync.Mutex
	token reqid.Token
}

// NewSuggestionBox wires a box around the given fetch and view.
func NewSuggestionBox(fetch FetchFunc, view SuggestView, debounce *flow.Debouncer, log *slog.Logger) *SuggestionBox {
	if debounce == nil {
		debounce = flow.NewDebouncer(flow.DefaultDebounceWait, flow.RealClock)
	}
	if log == nil {
		log = slog.Default()
	}
	return &SuggestionBox{fetch: fetch, view: view, debounce: debounce, log: log}
}

// Input feeds the current search text.
func (s *SuggestionBox) Input(ctx context.Context, q string) {
	s.debounce.Cancel()

	token := reqid.New()
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if utf8.RuneCountInString(q) < MinQueryLength {
		s.view.ClearSuggestions()
		return
	}

	s.debounce.Trigger(func() {
		items, err := s.fetch(ctx, q)
		if s.stale(token) {
			return
		}
		if err != nil {
			// A failed fetch just leaves the dropdown empty.
			s.log.Error("suggestion fetch failed", "error", err)
			s.view.ClearSuggestions()
			return
		}
		if len(items) == 0 {
			s.view.ClearSuggestions()
			return
		}
		s.view.ShowSuggestions(items)
	})
}

func (s *SuggestionBox) stale(token reqid.Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token.Supersedes(token)
}

// FilterQuery builds the dashboard URL for a server-side filter
// submission. Empty filter values are omitted; the filtered view is a full
// navigation, never a client-side re-render.
func FilterQuery(base string, filters map[string]string) string {
	values := url.Values{}
	for k, v := range filters {
		if v != "" {
			values.Set(k, v)
		}
	}
	if len(values) == 0 {
		return base
	}
	return base + "?" + values.Encode()
}
