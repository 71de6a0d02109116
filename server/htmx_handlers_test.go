package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cookieconsent/pkg/consent"
	"github.com/umputun/cookieconsent/pkg/domain"
	"github.com/umputun/cookieconsent/server/mocks"
)

func TestServer_indexHandler(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		ctrl := &mocks.ControllerMock{
			StateFunc: func() consent.State { return consent.State{Phase: consent.PhaseSummary} },
		}
		srv := New(testConfig(":0"), ctrl, noRecords(), "test", false)

		w := serve(srv, http.MethodGet, "/")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, body, "<!DOCTYPE html>")
		assert.Contains(t, body, `data-phase="summary"`)
		assert.Contains(t, body, `hx-post="/banner/accept-all"`)
		assert.Contains(t, body, `hx-post="/banner/reject-all"`)
		assert.Contains(t, body, `hx-post="/banner/open-details"`)
		assert.Contains(t, body, `<a href="/cookies">Cookie Policy</a>`)
		assert.Contains(t, body, "We use cookies. <b>Really.</b>")
		assert.NotContains(t, body, "<script>alert(1)</script>", "message must be sanitized")
		assert.Contains(t, body, `<div class="consent-overlay">`)
		assert.NotContains(t, body, "toggle-analytics")
	})

	t.Run("hidden", func(t *testing.T) {
		ctrl := &mocks.ControllerMock{
			StateFunc: func() consent.State { return consent.State{Phase: consent.PhaseHidden} },
		}
		srv := New(testConfig(":0"), ctrl, noRecords(), "test", false)

		w := serve(srv, http.MethodGet, "/")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `data-phase="hidden"`)
		assert.Contains(t, body, ".consent-overlay {", "page styles are always present")
		assert.NotContains(t, body, `class="consent-overlay"`)
		assert.NotContains(t, body, `role="dialog"`)
	})
}

func TestServer_bannerHandler(t *testing.T) {
	ctrl := &mocks.ControllerMock{
		StateFunc: func() consent.State {
			return consent.State{Phase: consent.PhaseDetail, Draft: &domain.Preferences{Necessary: true, Analytics: true}}
		},
	}
	srv := New(testConfig(":0"), ctrl, noRecords(), "test", false)

	w := serve(srv, http.MethodGet, "/banner")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `data-phase="detail"`)
	assert.Contains(t, body, `name="analytics" checked hx-post="/banner/toggle-analytics"`)
	assert.Contains(t, body, `name="marketing"  hx-post="/banner/toggle-marketing"`)
	assert.Contains(t, body, `hx-post="/banner/save"`)
	assert.Contains(t, body, `hx-post="/banner/back"`)
	assert.Contains(t, body, "Always active")
}

func TestServer_bannerIntentHandler(t *testing.T) {
	t.Run("unknown intent", func(t *testing.T) {
		ctrl := &mocks.ControllerMock{}
		srv := New(testConfig(":0"), ctrl, noRecords(), "test", false)

		w := serve(srv, http.MethodPost, "/banner/nope")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, ctrl.DispatchCalls())
	})

	t.Run("storage failure keeps banner open", func(t *testing.T) {
		ctrl := &mocks.ControllerMock{
			DispatchFunc: func(ctx context.Context, intent consent.Intent) error { return errors.New("storage full") },
			StateFunc:    func() consent.State { return consent.State{Phase: consent.PhaseSummary} },
		}
		srv := New(testConfig(":0"), ctrl, noRecords(), "test", false)

		w := serve(srv, http.MethodPost, "/banner/accept-all")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `role="alert"`)
		assert.Contains(t, body, "could not be saved")
		assert.Contains(t, body, `data-phase="summary"`)
		assert.NotContains(t, body, "storage full", "internal error not shown to visitor")
	})

	t.Run("full flow on real controller", func(t *testing.T) {
		srv, store := newIntegrationServer(t)

		w := serve(srv, http.MethodPost, "/banner/open-details")
		assert.Contains(t, w.Body.String(), `data-phase="detail"`)

		w = serve(srv, http.MethodPost, "/banner/toggle-analytics")
		assert.Contains(t, w.Body.String(), `name="analytics" checked`)

		w = serve(srv, http.MethodPost, "/banner/back")
		assert.Contains(t, w.Body.String(), `data-phase="summary"`)
		assert.False(t, store.HasRecord(context.Background()), "back must not persist the draft")

		w = serve(srv, http.MethodPost, "/banner/reject-all")
		body := w.Body.String()
		assert.Contains(t, body, `data-phase="hidden"`)
		assert.NotContains(t, body, `class="consent-overlay"`)
		assert.NotContains(t, body, `role="dialog"`)

		rec, ok := store.Load(context.Background())
		require.True(t, ok)
		assert.Equal(t, domain.Preferences{Necessary: true}, rec.Preferences())
	})
}

func TestServer_newBannerView(t *testing.T) {
	srv := New(testConfig(":0"), &mocks.ControllerMock{}, noRecords(), "test", false)

	v := srv.newBannerView(consent.State{Phase: consent.PhaseSummary}, "")
	assert.True(t, v.Visible)
	assert.False(t, v.Detail)
	assert.Equal(t, domain.DefaultPreferences(), v.Draft)
	assert.Equal(t, "/cookies", v.PolicyURL)

	v = srv.newBannerView(consent.State{Phase: consent.PhaseDetail,
		Draft: &domain.Preferences{Necessary: true, Marketing: true}}, "oops")
	assert.True(t, v.Detail)
	assert.True(t, v.Draft.Marketing)
	assert.Equal(t, "oops", v.Error)

	v = srv.newBannerView(consent.State{Phase: consent.PhaseHidden}, "")
	assert.False(t, v.Visible)
}
