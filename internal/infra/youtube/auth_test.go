package youtube

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestAuthenticator_TokenRoundTrip(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	auth := NewAuthenticator("id", "secret", "http://localhost:8080", tokenFile)

	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := auth.saveToken(token); err != nil {
		t.Fatalf("saveToken() error: %v", err)
	}

	got, err := auth.loadToken()
	if err != nil {
		t.Fatalf("loadToken() error: %v", err)
	}
	if got.AccessToken != token.AccessToken || got.RefreshToken != token.RefreshToken {
		t.Errorf("loadToken() = %+v, want %+v", got, token)
	}
	if !got.Expiry.Equal(token.Expiry) {
		t.Errorf("Expiry = %v, want %v", got.Expiry, token.Expiry)
	}
}

func TestAuthenticator_SaveTokenCreatesDirectory(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "nested", "dir", "token.json")
	auth := NewAuthenticator("id", "secret", "", tokenFile)

	if err := auth.saveToken(&oauth2.Token{AccessToken: "a"}); err != nil {
		t.Fatalf("saveToken() error: %v", err)
	}

	info, err := os.Stat(tokenFile)
	if err != nil {
		t.Fatalf("token file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
}

func TestAuthenticator_LoadTokenRejectsEmptyToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(tokenFile, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}

	auth := NewAuthenticator("id", "secret", "", tokenFile)
	if _, err := auth.loadToken(); err == nil {
		t.Error("expected an error for a token file with no usable token")
	}
}

func TestAuthenticator_ClientUsesCachedToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	auth := NewAuthenticator("id", "secret", "", tokenFile)

	if err := auth.saveToken(&oauth2.Token{
		AccessToken:  "cached",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatal(err)
	}

	// A cached, valid token must not trigger the interactive flow.
	client, err := auth.Client(context.Background())
	if err != nil {
		t.Fatalf("Client() error: %v", err)
	}
	if client == nil {
		t.Fatal("Client() returned nil")
	}
}
