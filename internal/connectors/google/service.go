package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/places/v1"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

// OAuth2 scopes requested for a service account.
const (
	ScopeSheetsReadOnly = sheets.SpreadsheetsReadonlyScope
	ScopeCloudPlatform  = "https://www.googleapis.com/auth/cloud-platform"
)

// ClientOptions returns the client options authenticating with the configured
// credential. A service-account file takes precedence over an API key.
func ClientOptions(ctx context.Context, creds domain.GoogleSettings, scopes ...string) ([]option.ClientOption, error) {
	switch {
	case creds.CredentialsFile != "":
		data, err := os.ReadFile(creds.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		cfg, err := google.JWTConfigFromJSON(data, scopes...)
		if err != nil {
			return nil, fmt.Errorf("parse credentials file: %w", err)
		}
		return []option.ClientOption{option.WithTokenSource(cfg.TokenSource(ctx))}, nil
	case creds.APIKey != "":
		return []option.ClientOption{option.WithAPIKey(creds.APIKey)}, nil
	default:
		return nil, fmt.Errorf("%w: google credentials", domain.ErrNotConfigured)
	}
}

// NewSheetsService creates a Sheets API service.
// Extra options are appended after the credential options.
func NewSheetsService(ctx context.Context, creds domain.GoogleSettings, extra ...option.ClientOption) (*sheets.Service, error) {
	opts, err := ClientOptions(ctx, creds, ScopeSheetsReadOnly)
	if err != nil {
		return nil, err
	}
	return sheets.NewService(ctx, append(opts, extra...)...)
}

// NewPlacesService creates a Places API (New) service.
// Extra options are appended after the credential options.
func NewPlacesService(ctx context.Context, creds domain.GoogleSettings, extra ...option.ClientOption) (*places.Service, error) {
	opts, err := ClientOptions(ctx, creds, ScopeCloudPlatform)
	if err != nil {
		return nil, err
	}
	return places.NewService(ctx, append(opts, extra...)...)
}
