package services

import (
	"sync"
	"time"

	"github.com/masarusaitou/fudousan/models"
)

// Session is one browsing session's view state. Filters are staged:
// draft criteria change on every input edit, but the stored result sets
// change only when a search is committed. SearchExecuted never goes back
// to false once set.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu             sync.Mutex
	searchExecuted bool
	showAll        bool
	draft          models.FilterCriteria
	last           FilterResult
}

// NewSession creates a session in the initial state with the given
// draft criteria (normally the catalog defaults).
func NewSession(id string, draft models.FilterCriteria) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		draft:     draft,
	}
}

// UpdateDraft replaces the staged criteria. Stored result sets and the
// search flag are untouched: edits have no effect until the next search.
func (s *Session) UpdateDraft(c models.FilterCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = c
}

// Draft returns the staged criteria.
func (s *Session) Draft() models.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// CommitSearch stores the result of an executed search and marks the
// session as searched. The result must have been computed from the
// criteria that were the draft at the moment the user triggered the
// search.
func (s *Session) CommitSearch(res FilterResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = res
	s.searchExecuted = true
}

// SetShowAll switches the display mode. It never triggers recomputation;
// it only selects which stored set is active.
func (s *Session) SetShowAll(showAll bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAll = showAll
}

// SearchExecuted reports whether a search has ever run in this session.
func (s *Session) SearchExecuted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchExecuted
}

// ShowAll reports the current display mode.
func (s *Session) ShowAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showAll
}

// LastFiltered returns the stored filtered set from the last search.
func (s *Session) LastFiltered() []*models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.Filtered
}

// LastGeoValid returns the stored geo-valid subset from the last search.
func (s *Session) LastGeoValid() []*models.GeoListing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.GeoValid
}

// ActiveSet derives the set currently selected for table display. Before
// the first search nothing is shown. Afterwards the geo-valid subset is
// active unless the user asked for all results.
func (s *Session) ActiveSet() []*models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.searchExecuted {
		return nil
	}
	if s.showAll {
		return s.last.Filtered
	}
	active := make([]*models.Listing, len(s.last.GeoValid))
	for i, g := range s.last.GeoValid {
		active[i] = g.Listing
	}
	return active
}
