package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"github.com/masarusaitou/fudousan/models"
	"github.com/masarusaitou/fudousan/services"
	"github.com/masarusaitou/fudousan/storage"
)

type areaOption struct {
	Name     string
	Selected bool
}

type planOption struct {
	Name    string
	Checked bool
}

type pageData struct {
	Areas    []areaOption
	Plans    []planOption
	PriceMin float64
	PriceMax float64
	MinRent  float64
	MaxRent  float64

	SearchExecuted bool
	ShowAll        bool
	MatchCount     int
	Total          int

	Rows        []services.TableRow
	Map         services.MapView
	MarkersJSON template.JS
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	draft := sess.Draft()
	summary := s.catalog.Summary

	data := pageData{
		PriceMin:       draft.PriceMin,
		PriceMax:       draft.PriceMax,
		MinRent:        summary.MinRent,
		MaxRent:        summary.MaxRent,
		SearchExecuted: sess.SearchExecuted(),
		ShowAll:        sess.ShowAll(),
		MatchCount:     len(sess.LastFiltered()),
		Total:          summary.Total,
		Rows:           s.presenter.BuildTable(sess.ActiveSet()),
		Map:            s.presenter.BuildMap(sess.LastGeoValid()),
	}
	for _, a := range summary.Areas {
		data.Areas = append(data.Areas, areaOption{Name: a, Selected: a == draft.Area})
	}
	for _, p := range summary.FloorPlans {
		data.Plans = append(data.Plans, planOption{Name: p, Checked: draft.HasFloorPlan(p)})
	}

	markers, err := json.Marshal(data.Map.Markers)
	if err != nil {
		s.logger.Error("[web] marshal markers: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data.MarkersJSON = template.JS(markers)

	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("[web] render: %v", err)
	}
}

// handleSearch commits the submitted criteria: this is the only action
// that recomputes the stored result sets.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)

	crit := s.criteriaFromForm(r, sess.Draft())
	sess.UpdateDraft(crit)
	sess.CommitSearch(s.engine.Apply(s.catalog.Listings, crit))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleCriteria stages edited criteria without searching. The displayed
// results stay whatever the last search produced.
func (s *Server) handleCriteria(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	sess.UpdateDraft(s.criteriaFromForm(r, sess.Draft()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDisplay switches between the map subset and all results. No
// recomputation happens here.
func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	sess.SetShowAll(r.FormValue("mode") == "all")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="bukken.csv"`)
	if err := storage.WriteListings(w, sess.ActiveSet()); err != nil {
		s.logger.Error("[web] export: %v", err)
	}
}

// criteriaFromForm builds criteria from the submitted form. Price bounds
// are clamped to the observed rent range and reordered if the user
// crossed them; an empty floor-plan selection stays empty and matches
// nothing downstream.
func (s *Server) criteriaFromForm(r *http.Request, fallback models.FilterCriteria) models.FilterCriteria {
	if err := r.ParseForm(); err != nil {
		return fallback
	}

	crit := models.FilterCriteria{
		Area:       r.FormValue("area"),
		PriceMin:   fallback.PriceMin,
		PriceMax:   fallback.PriceMax,
		FloorPlans: r.Form["floor_plan"],
	}
	if crit.Area == "" {
		crit.Area = fallback.Area
	}

	if v, err := strconv.ParseFloat(r.FormValue("price_min"), 64); err == nil {
		crit.PriceMin = s.catalog.ClampPrice(v)
	}
	if v, err := strconv.ParseFloat(r.FormValue("price_max"), 64); err == nil {
		crit.PriceMax = s.catalog.ClampPrice(v)
	}
	if crit.PriceMin > crit.PriceMax {
		crit.PriceMin, crit.PriceMax = crit.PriceMax, crit.PriceMin
	}
	return crit
}
