// package services defines interface Service for interacting with HTTP APIs
package services

import (
	"context"

	"golang.org/x/oauth2"

	"booktrack/internal/models"
)

// Service defines the music catalog operations the soundtrack pipeline needs:
// weighted track search plus playlist creation with batched item insertion.
type Service interface {
	// Authenticate performs authentication with the service. Accepts either
	// an "access_token" or an "auth_code" credential; search-only sessions
	// can use AuthenticateClientCredentials on the concrete type instead.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// SearchTracks issues one catalog search and returns normalized tracks,
	// at most query.Limit of them. A non-positive limit yields no results
	// and no network call.
	SearchTracks(ctx context.Context, query models.SearchQuery) ([]models.Track, error)

	// CreatePlaylist creates a playlist for the authenticated user.
	CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error)

	// AddTracks appends track URIs to a playlist in their given order.
	// Callers are responsible for batching; the service sends one call.
	AddTracks(ctx context.Context, playlistID string, uris []string) error

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService extends Service for providers using the OAuth2
// authorization-code grant, enabling the CLI's local callback flow.
type OAuthService interface {
	Service

	// GetAuthURL returns the authorization URL for user login.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the oauth2 configuration for the callback handler.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate installs a previously obtained token on the session.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error
}
