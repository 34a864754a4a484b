package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trendlab/internal/config"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		in   string
		want Page
		ok   bool
	}{
		{"home", PageHome, true},
		{"time_series", PageTimeSeries, true},
		{"hypothesis", PageHypothesis, true},
		{"", "", false},
		{"settings", "", false},
		{"HOME", "", false},
	}

	for _, tc := range cases {
		got, ok := ParsePage(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParsePage(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSessionNavigateIgnoresUnknownTargets(t *testing.T) {
	sess := &Session{Page: PageTimeSeries}

	sess.Navigate("nonsense")
	if sess.Current() != PageTimeSeries {
		t.Fatalf("unknown target changed page to %q", sess.Current())
	}

	sess.Navigate("hypothesis")
	if sess.Current() != PageHypothesis {
		t.Fatalf("valid target ignored, page is %q", sess.Current())
	}
}

func TestSessionStoreReusesSessionByCookie(t *testing.T) {
	store := NewSessionStore(config.SessionConfig{CookieName: "sid", TTL: time.Hour})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	first := store.Get(w, r)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" {
		t.Fatalf("expected one sid cookie, got %v", cookies)
	}

	r2 := httptest.NewRequest("GET", "/", nil)
	r2.AddCookie(cookies[0])
	second := store.Get(httptest.NewRecorder(), r2)

	if first.ID != second.ID {
		t.Fatalf("expected same session, got %q and %q", first.ID, second.ID)
	}
	if store.Count() != 1 {
		t.Fatalf("expected 1 live session, got %d", store.Count())
	}
}

func TestSessionStoreExpiresSessions(t *testing.T) {
	store := NewSessionStore(config.SessionConfig{CookieName: "sid", TTL: time.Nanosecond})

	w := httptest.NewRecorder()
	first := store.Get(w, httptest.NewRequest("GET", "/", nil))

	time.Sleep(time.Millisecond)

	r2 := httptest.NewRequest("GET", "/", nil)
	r2.AddCookie(w.Result().Cookies()[0])
	second := store.Get(httptest.NewRecorder(), r2)

	if first.ID == second.ID {
		t.Fatal("expired session was reused")
	}
}

func TestSessionStoreSetsHTTPOnlyCookie(t *testing.T) {
	store := NewSessionStore(config.SessionConfig{CookieName: "sid", TTL: time.Hour})

	w := httptest.NewRecorder()
	store.Get(w, httptest.NewRequest("GET", "/", nil))

	cookie := w.Result().Cookies()[0]
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", cookie.SameSite)
	}
}
