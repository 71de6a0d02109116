package server

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/umputun/cookieconsent/pkg/consent"
	"github.com/umputun/cookieconsent/pkg/domain"
)

const (
	// template names
	templateIndex  = "index.html"
	templateBanner = "banner"
)

// bannerView holds data for rendering the consent banner
type bannerView struct {
	Phase       consent.Phase
	Visible     bool
	Detail      bool
	Draft       domain.Preferences
	Title       string
	Message     template.HTML
	PolicyURL   string
	PolicyTitle string
	Error       string
}

// newBannerView builds the banner model from controller state and banner configuration
func (s *Server) newBannerView(st consent.State, errMsg string) bannerView {
	banner := s.config.GetBannerConfig()
	v := bannerView{
		Phase:       st.Phase,
		Visible:     st.Phase.Visible(),
		Detail:      st.Phase == consent.PhaseDetail,
		Draft:       domain.DefaultPreferences(),
		Title:       banner.Title,
		Message:     template.HTML(s.sanitizer.Sanitize(banner.Message)), //nolint:gosec // sanitized by bluemonday
		PolicyURL:   banner.PolicyURL,
		PolicyTitle: banner.PolicyTitle,
		Error:       errMsg,
	}
	if st.Draft != nil {
		v.Draft = *st.Draft
	}
	return v
}

// indexHandler renders the page hosting the banner
func (s *Server) indexHandler(w http.ResponseWriter, _ *http.Request) {
	s.renderTemplate(w, http.StatusOK, templateIndex, s.newBannerView(s.state(), ""))
}

// bannerHandler renders the banner fragment for the current state
func (s *Server) bannerHandler(w http.ResponseWriter, _ *http.Request) {
	s.renderTemplate(w, http.StatusOK, templateBanner, s.newBannerView(s.state(), ""))
}

// bannerIntentHandler forwards an intent from the banner and renders the updated fragment.
// Storage failures are shown inside the banner, which stays open for a retry.
func (s *Server) bannerIntentHandler(w http.ResponseWriter, r *http.Request) {
	intent, err := consent.ParseIntent(r.PathValue("intent"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	errMsg := ""
	st, err := s.dispatch(r.Context(), intent)
	if err != nil {
		log.Printf("[WARN] failed to dispatch %s from banner: %v", intent, err)
		errMsg = "Your choice could not be saved, please try again."
	}

	// htmx swaps only successful responses, the error is part of the fragment
	s.renderTemplate(w, http.StatusOK, templateBanner, s.newBannerView(st, errMsg))
}

// renderTemplate executes the named template into a buffer and writes it out
func (s *Server) renderTemplate(w http.ResponseWriter, code int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[ERROR] failed to render template %s: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write response: %v", err)
	}
}
