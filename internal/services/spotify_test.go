package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"booktrack/internal/models"
	"booktrack/internal/shared"
	tu "booktrack/internal/testing"
)

func testCredentials() map[string]string {
	return map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
	}
}

func authedService(t *testing.T, baseURL string) *SpotifyService {
	t.Helper()
	srv, err := NewSpotifyService(testCredentials())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	srv.baseURL = baseURL
	srv.token = &oauth2.Token{AccessToken: "test_token"}
	return srv
}

func searchPayload(items ...map[string]any) map[string]any {
	return map[string]any{
		"tracks": map[string]any{"items": items},
	}
}

func trackItem(id, name string, popularity int, artists []string, images ...string) map[string]any {
	artistList := make([]map[string]any, 0, len(artists))
	for _, a := range artists {
		artistList = append(artistList, map[string]any{"name": a})
	}
	imageList := make([]map[string]any, 0, len(images))
	for _, url := range images {
		imageList = append(imageList, map[string]any{"url": url})
	}
	return map[string]any{
		"id":          id,
		"name":        name,
		"popularity":  popularity,
		"uri":         "spotify:track:" + id,
		"preview_url": "http://preview/" + id,
		"artists":     artistList,
		"album": map[string]any{
			"name":   "Album for " + name,
			"images": imageList,
		},
	}
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService(testCredentials())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_secret": "s"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_id": "i"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Default Redirect URI", func(t *testing.T) {
			srv, err := NewSpotifyService(testCredentials())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if srv.config.RedirectURL != "http://localhost:3000/callback" {
				t.Errorf("unexpected redirect URI: %s", srv.config.RedirectURL)
			}
		})
	})

	t.Run("GetAuthURL", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := srv.GetAuthURL("test_state")
		if !strings.Contains(authURL, "accounts.spotify.com") {
			t.Errorf("expected Spotify auth host in %q", authURL)
		}
		if !strings.Contains(authURL, "state=test_state") {
			t.Errorf("expected state parameter in %q", authURL)
		}
	})

	t.Run("OAuthenticate", func(t *testing.T) {
		t.Run("Rejects Empty Token", func(t *testing.T) {
			srv, _ := NewSpotifyService(testCredentials())
			err := srv.OAuthenticate(context.Background(), &oauth2.Token{})
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("Installs Token", func(t *testing.T) {
			srv, _ := NewSpotifyService(testCredentials())
			if err := srv.OAuthenticate(context.Background(), &oauth2.Token{AccessToken: "tok"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.token.AccessToken != "tok" {
				t.Error("expected token to be stored")
			}
		})
	})

	t.Run("AuthenticateClientCredentials", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "cc_token",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
		}))
		defer ts.Close()

		srv, _ := NewSpotifyService(testCredentials())
		srv.tokenURL = ts.URL

		if err := srv.AuthenticateClientCredentials(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if srv.token.AccessToken != "cc_token" {
			t.Errorf("unexpected token: %s", srv.token.AccessToken)
		}
	})
}

func TestSearchTracks(t *testing.T) {
	t.Run("Normalizes Results", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test_token" {
				t.Errorf("unexpected auth header: %s", got)
			}
			json.NewEncoder(w).Encode(searchPayload(
				trackItem("t1", "Song One", 80, []string{"First Artist", "Second Artist"}, "http://img/large.jpg", "http://img/medium.jpg", "http://img/small.jpg"),
				trackItem("t2", "Song Two", 60, []string{"Solo"}, "http://img/only.jpg"),
			))
		}))
		defer ts.Close()

		srv := authedService(t, ts.URL)

		tracks, err := srv.SearchTracks(context.Background(), models.SearchQuery{Terms: "calm piano", Limit: 10})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}

		if tracks[0].Artist != "First Artist" {
			t.Errorf("expected first artist, got %s", tracks[0].Artist)
		}
		if tracks[0].AlbumImageURL != "http://img/medium.jpg" {
			t.Errorf("expected second image, got %s", tracks[0].AlbumImageURL)
		}
		if tracks[1].AlbumImageURL != "" {
			t.Errorf("expected no image with single entry, got %s", tracks[1].AlbumImageURL)
		}
		if tracks[0].PreviewURL != "http://preview/t1" {
			t.Errorf("unexpected preview URL: %s", tracks[0].PreviewURL)
		}
		if tracks[0].URI != "spotify:track:t1" {
			t.Errorf("unexpected URI: %s", tracks[0].URI)
		}
	})

	t.Run("Sends Query Parameters", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("q") != "melancholic classical" {
				t.Errorf("unexpected q: %s", q.Get("q"))
			}
			if q.Get("type") != "track" {
				t.Errorf("unexpected type: %s", q.Get("type"))
			}
			if q.Get("limit") != "4" {
				t.Errorf("unexpected limit: %s", q.Get("limit"))
			}
			json.NewEncoder(w).Encode(searchPayload())
		}))
		defer ts.Close()

		srv := authedService(t, ts.URL)

		if _, err := srv.SearchTracks(context.Background(), models.SearchQuery{Terms: "melancholic classical", Limit: 4}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Zero Limit Skips Request", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("expected no request for zero limit")
		}))
		defer ts.Close()

		srv := authedService(t, ts.URL)

		tracks, err := srv.SearchTracks(context.Background(), models.SearchQuery{Terms: "anything", Limit: 0})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tracks != nil {
			t.Errorf("expected nil tracks, got %v", tracks)
		}
	})

	t.Run("Clamps Limit To API Maximum", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "50" {
				t.Errorf("expected clamped limit 50, got %s", got)
			}
			json.NewEncoder(w).Encode(searchPayload())
		}))
		defer ts.Close()

		srv := authedService(t, ts.URL)

		if _, err := srv.SearchTracks(context.Background(), models.SearchQuery{Terms: "x", Limit: 120}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Expired Token", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		srv := authedService(t, ts.URL)

		_, err := srv.SearchTracks(context.Background(), models.SearchQuery{Terms: "x", Limit: 5})
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("Unreadable Response Body", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       &tu.FCloser{},
		}

		srv := authedService(t, "http://unused")
		srv.httpClient = &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}

		_, err := srv.SearchTracks(context.Background(), models.SearchQuery{Terms: "x", Limit: 5})
		if err == nil || !strings.Contains(err.Error(), "failed to decode response") {
			t.Errorf("expected decode error, got %v", err)
		}
	})

	t.Run("Not Authenticated", func(t *testing.T) {
		srv, _ := NewSpotifyService(testCredentials())

		_, err := srv.SearchTracks(context.Background(), models.SearchQuery{Terms: "x", Limit: 5})
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}

func TestCreatePlaylist(t *testing.T) {
	t.Run("Creates For Current User", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/me":
				json.NewEncoder(w).Encode(map[string]any{"id": "user1", "display_name": "Test User"})
			case r.URL.Path == "/users/user1/playlists" && r.Method == http.MethodPost:
				var body map[string]any
				json.NewDecoder(r.Body).Decode(&body)
				if body["name"] != "Dune - Literary Soundtrack" {
					t.Errorf("unexpected playlist name: %v", body["name"])
				}
				json.NewEncoder(w).Encode(map[string]any{
					"id":            "pl1",
					"name":          body["name"],
					"description":   body["description"],
					"public":        body["public"],
					"external_urls": map[string]any{"spotify": "https://open.spotify.com/playlist/pl1"},
				})
			default:
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
		}))
		defer ts.Close()

		srv := authedService(t, ts.URL)

		playlist, err := srv.CreatePlaylist(context.Background(), "Dune - Literary Soundtrack", "A curated soundtrack.", true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if playlist.ID != "pl1" {
			t.Errorf("unexpected playlist ID: %s", playlist.ID)
		}
		if playlist.URL != "https://open.spotify.com/playlist/pl1" {
			t.Errorf("unexpected URL: %s", playlist.URL)
		}
	})
}

func TestAddTracks(t *testing.T) {
	t.Run("Posts URIs", func(t *testing.T) {
		var received []string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/playlists/pl1/tracks" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			var body map[string][]string
			json.NewDecoder(r.Body).Decode(&body)
			received = body["uris"]
			w.WriteHeader(http.StatusCreated)
		}))
		defer ts.Close()

		srv := authedService(t, ts.URL)

		uris := []string{"spotify:track:a", "spotify:track:b"}
		if err := srv.AddTracks(context.Background(), "pl1", uris); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(received) != 2 || received[0] != "spotify:track:a" {
			t.Errorf("unexpected uris: %v", received)
		}
	})

	t.Run("Empty URI List Is A No-Op", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("expected no request for empty uri list")
		}))
		defer ts.Close()

		srv := authedService(t, ts.URL)

		if err := srv.AddTracks(context.Background(), "pl1", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}
