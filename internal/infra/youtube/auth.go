package youtube

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
)

// OAuthScopes are the YouTube scopes needed to read the user's liked
// videos.
var OAuthScopes = []string{
	"https://www.googleapis.com/auth/youtube.readonly",
	"https://www.googleapis.com/auth/youtube.force-ssl",
}

// Authenticator performs the OAuth 2.0 flow for endpoints that need user
// authorization and persists the token as JSON between runs.
type Authenticator struct {
	config    *oauth2.Config
	tokenFile string
	prompt    io.Reader
}

// NewAuthenticator creates an authenticator that caches tokens in
// tokenFile.
func NewAuthenticator(clientID, clientSecret, redirectURL, tokenFile string) *Authenticator {
	return &Authenticator{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       OAuthScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  googleAuthURL,
				TokenURL: googleTokenURL,
			},
		},
		tokenFile: tokenFile,
		prompt:    os.Stdin,
	}
}

// Client returns an http.Client that attaches and auto-refreshes the OAuth
// token. If no usable token is cached, the interactive authorization flow
// runs first. Refreshed tokens are written back to the token file.
func (a *Authenticator) Client(ctx context.Context) (*http.Client, error) {
	token, err := a.loadToken()
	if err != nil {
		log.Debug().Err(err).Str("file", a.tokenFile).Msg("No cached OAuth token")
		token, err = a.authorize(ctx)
		if err != nil {
			return nil, err
		}
	}

	source := &persistingTokenSource{
		wrapped: a.config.TokenSource(ctx, token),
		auth:    a,
		last:    token.AccessToken,
	}
	return oauth2.NewClient(ctx, source), nil
}

// authorize runs the interactive authorization-code flow: print the
// consent URL, read the code from the prompt, exchange and persist.
func (a *Authenticator) authorize(ctx context.Context) (*oauth2.Token, error) {
	authURL := a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL in your browser and authorize access:\n\n  %s\n\nEnter the authorization code: ", authURL)

	code, err := bufio.NewReader(a.prompt).ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	token, err := a.config.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	if err := a.saveToken(token); err != nil {
		log.Warn().Err(err).Str("file", a.tokenFile).Msg("Failed to persist OAuth token")
	}
	return token, nil
}

func (a *Authenticator) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenFile)
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, fmt.Errorf("token file %s holds no usable token", a.tokenFile)
	}
	return &token, nil
}

func (a *Authenticator) saveToken(token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(a.tokenFile); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return os.WriteFile(a.tokenFile, data, 0600)
}

// persistingTokenSource writes tokens back to disk whenever the wrapped
// source refreshes them, so the next run skips re-authorization.
type persistingTokenSource struct {
	wrapped oauth2.TokenSource
	auth    *Authenticator
	last    string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.wrapped.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.last {
		s.last = token.AccessToken
		if err := s.auth.saveToken(token); err != nil {
			log.Warn().Err(err).Msg("Failed to persist refreshed OAuth token")
		}
	}
	return token, nil
}
