package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/punchcard/internal/storage"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

// Authenticator obtains Microsoft Graph tokens through the OAuth2 device
// code flow and caches them on disk, so a sign-in survives across runs.
type Authenticator struct {
	cfg    *oauth2.Config
	tokens *tokenStore
	log    zerolog.Logger
	prompt io.Writer
}

// NewAuthenticator builds an Authenticator for the given Azure tenant and
// client. Sign-in instructions are written to prompt.
func NewAuthenticator(tenantID, clientID string, log zerolog.Logger, prompt io.Writer) (*Authenticator, error) {
	tokens, err := newTokenStore()
	if err != nil {
		return nil, err
	}
	endpoint := "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/"
	return &Authenticator{
		cfg: &oauth2.Config{
			ClientID: clientID,
			Scopes:   requiredScopes,
			Endpoint: oauth2.Endpoint{
				DeviceAuthURL: endpoint + "devicecode",
				TokenURL:      endpoint + "token",
				AuthStyle:     oauth2.AuthStyleInParams,
			},
		},
		tokens: tokens,
		log:    log,
		prompt: prompt,
	}, nil
}

// HTTPClient returns an http.Client whose transport injects and refreshes a
// valid Graph token, signing the user in first when necessary.
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.cfg.Client(ctx, tok), nil
}

// token returns a valid token: cached if still good, refreshed when a
// refresh token is available, otherwise freshly issued by the device flow.
func (a *Authenticator) token(ctx context.Context) (*oauth2.Token, error) {
	tok, err := a.tokens.load()
	if err != nil {
		a.log.Warn().Err(err).Msg("stored token unreadable, signing in again")
		tok = nil
	}

	if tok != nil && tok.Valid() {
		return tok, nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := a.cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			if err := a.tokens.save(refreshed); err != nil {
				a.log.Warn().Err(err).Msg("could not cache refreshed token")
			}
			return refreshed, nil
		}
		a.log.Warn().Err(err).Msg("token refresh failed, signing in again")
	}

	return a.deviceSignIn(ctx)
}

// deviceSignIn runs the interactive device code flow.
func (a *Authenticator) deviceSignIn(ctx context.Context) (*oauth2.Token, error) {
	resp, err := a.cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("requesting device code: %w", err)
	}

	fmt.Fprintln(a.prompt)
	fmt.Fprintln(a.prompt, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(a.prompt, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(a.prompt, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(a.prompt)

	tok, err := a.cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device sign-in: %w", err)
	}

	if err := a.tokens.save(tok); err != nil {
		a.log.Warn().Err(err).Msg("could not cache token, sign-in required next run")
	}
	return tok, nil
}

// tokenStore persists one oauth2 token as a JSON file under the auth
// directory, with the same atomic-write and corrupt-backup behavior as the
// activity snapshots.
type tokenStore struct {
	path string
}

func newTokenStore() (*tokenStore, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return nil, err
	}
	return &tokenStore{path: filepath.Join(base, "auth", "msgraph_tokens.json")}, nil
}

// load returns the cached token, or nil when none is cached. A corrupt file
// is moved aside to a .corrupt sibling and reported, never reused.
func (ts *tokenStore) load() (*oauth2.Token, error) {
	data, err := os.ReadFile(ts.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token cache: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		backup := ts.path + ".corrupt"
		if renameErr := os.Rename(ts.path, backup); renameErr == nil {
			return nil, fmt.Errorf("corrupt token cache moved to %s: %w", backup, err)
		}
		return nil, fmt.Errorf("corrupt token cache at %s: %w", ts.path, err)
	}
	return &tok, nil
}

func (ts *tokenStore) save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(ts.path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	tmp := ts.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing token cache: %w", err)
	}
	if err := os.Rename(tmp, ts.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing token cache: %w", err)
	}
	return nil
}
