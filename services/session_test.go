package services

import "testing"

func searchedSession(t *testing.T) (*Session, FilterResult) {
	t.Helper()
	e := NewFilterEngine(newTestLogger())
	s := NewSession("test", criteria("港区", 0, 100, "1K", "2DK"))
	res := e.Apply(sampleCanonical(), s.Draft())
	s.CommitSearch(res)
	return s, res
}

func TestSessionInitialStateShowsNothing(t *testing.T) {
	s := NewSession("test", criteria("港区", 0, 100, "1K"))

	if s.SearchExecuted() {
		t.Error("new session must start with searchExecuted=false")
	}
	if s.ShowAll() {
		t.Error("new session must start with showAll=false")
	}
	if got := s.ActiveSet(); got != nil {
		t.Errorf("active set before any search: got %d listings, want none", len(got))
	}
}

func TestSessionSearchIsIrreversible(t *testing.T) {
	s, _ := searchedSession(t)

	s.UpdateDraft(criteria("中央区", 0, 1, "1DK"))
	s.SetShowAll(true)
	s.SetShowAll(false)

	if !s.SearchExecuted() {
		t.Error("no action may reset searchExecuted to false")
	}
}

func TestSessionShowAllTogglesActiveSetWithoutRecompute(t *testing.T) {
	s, res := searchedSession(t)

	// showAll=false → geo-valid subset is active.
	active := s.ActiveSet()
	if len(active) != len(res.GeoValid) {
		t.Fatalf("map-subset mode: got %d, want %d", len(active), len(res.GeoValid))
	}
	for i, g := range res.GeoValid {
		if active[i] != g.Listing {
			t.Errorf("map-subset mode: position %d is not the stored listing", i)
		}
	}

	// Toggle twice; stored sets must be the same slices throughout.
	for _, showAll := range []bool{true, false, true} {
		s.SetShowAll(showAll)
		if &s.LastFiltered()[0] != &res.Filtered[0] {
			t.Fatal("toggling display mode must not replace the stored filtered set")
		}
		if s.LastGeoValid()[0].Listing != res.GeoValid[0].Listing {
			t.Fatal("toggling display mode must not replace the stored geo-valid set")
		}
		active := s.ActiveSet()
		if showAll {
			if len(active) != len(res.Filtered) || active[0] != res.Filtered[0] {
				t.Error("show-all mode must expose the stored filtered set")
			}
		} else if len(active) != len(res.GeoValid) {
			t.Error("map-subset mode must expose the stored geo-valid set")
		}
	}
}

func TestSessionDraftEditsDoNotChangeDisplay(t *testing.T) {
	s, res := searchedSession(t)

	before := s.ActiveSet()
	s.UpdateDraft(criteria("中央区", 7, 9, "1K"))
	after := s.ActiveSet()

	if len(before) != len(after) {
		t.Fatalf("editing draft criteria changed the active set: %d → %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("active set position %d changed after a draft edit", i)
		}
	}
	if len(s.LastFiltered()) != len(res.Filtered) {
		t.Error("draft edit changed the stored filtered set")
	}
}

func TestSessionCommitReplacesStoredSets(t *testing.T) {
	s, _ := searchedSession(t)
	e := NewFilterEngine(newTestLogger())

	narrow := criteria("港区", 6, 10, "1K", "2DK")
	s.UpdateDraft(narrow)
	res2 := e.Apply(sampleCanonical(), s.Draft())
	s.CommitSearch(res2)

	if len(s.LastFiltered()) != 1 || s.LastFiltered()[0].Name != "B" {
		t.Errorf("second search should store the narrow result, got %v", names(s.LastFiltered()))
	}
}

func TestSessionDefaultCriteriaFromCatalog(t *testing.T) {
	cat := NewCatalog(sampleCanonical())
	s := NewSession("test", cat.DefaultCriteria())

	d := s.Draft()
	if d.Area != "港区" {
		t.Errorf("default area: got %q, want 港区", d.Area)
	}
	if d.PriceMin != 5.0 || d.PriceMax != 12.0 {
		t.Errorf("default price range: got [%.1f, %.1f], want [5.0, 12.0]", d.PriceMin, d.PriceMax)
	}
	if len(d.FloorPlans) != 2 {
		t.Errorf("default floor plans: got %v, want both distinct plans", d.FloorPlans)
	}
}
