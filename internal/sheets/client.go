// Package sheets persists member registrations to the community spreadsheet.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"tingnect-api/internal/apperr"
	"tingnect-api/internal/config"
	"tingnect-api/internal/logger"
)

type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	sheetName     string
	mainSiteURL   string
	log           *logger.Logger
}

// serviceAccountKey is the JSON shape the Google auth libraries expect.
type serviceAccountKey struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id,omitempty"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id,omitempty"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
}

// New builds an authorized client for the configured spreadsheet.
// Credentials come from a key file when GOOGLE_SERVICE_ACCOUNT_JSON is set,
// otherwise from the individual GOOGLE_* fields.
func New(ctx context.Context, cfg config.Config) (*Client, error) {
	var cred option.ClientOption
	if cfg.GoogleServiceAccountFile != "" {
		if _, err := os.Stat(cfg.GoogleServiceAccountFile); err != nil {
			return nil, apperr.Wrap(err, apperr.CodeUnauthorized, "service account json")
		}
		cred = option.WithCredentialsFile(cfg.GoogleServiceAccountFile)
	} else {
		key := serviceAccountKey{
			Type:                    "service_account",
			ProjectID:               cfg.GoogleProjectID,
			PrivateKeyID:            cfg.GooglePrivateKeyID,
			PrivateKey:              cfg.GooglePrivateKey,
			ClientEmail:             cfg.GoogleClientEmail,
			ClientID:                cfg.GoogleClientID,
			AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
			TokenURI:                "https://oauth2.googleapis.com/token",
			AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
			ClientX509CertURL: fmt.Sprintf("https://www.googleapis.com/robot/v1/metadata/x509/%s",
				url.QueryEscape(cfg.GoogleClientEmail)),
		}
		b, err := json.Marshal(key)
		if err != nil {
			return nil, apperr.Wrap(err, apperr.CodeUnauthorized, "service account key")
		}
		cred = option.WithCredentialsJSON(b)
	}

	srv, err := sheetsv4.NewService(ctx,
		cred,
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUnauthorized, "sheets service")
	}

	return &Client{
		srv:           srv,
		spreadsheetID: cfg.SheetID,
		sheetName:     cfg.MembersSheet,
		mainSiteURL:   cfg.MainSiteURL,
		log:           logger.Named("sheets"),
	}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }
