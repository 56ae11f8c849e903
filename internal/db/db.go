package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/taskapp/apiserver/config"
)

// Open creates a Firestore client for the configured project.
//
// The client honors FIRESTORE_EMULATOR_HOST, which is how the e2e
// tests run without real credentials.
func Open(ctx context.Context, cfg config.Config) (*firestore.Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("GOOGLE_CLOUD_PROJECT is required")
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return client, nil
}
