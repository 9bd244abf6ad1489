// Copyright 2026 The GDCR API Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultCollection is the Firestore collection holding property
// documents.
const DefaultCollection = "properties"

// FirestoreStore is the production DocumentStore, backed by a Firestore
// collection.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore opens a Firestore client using the service-account
// key file at credentialsPath. The project id is taken from the
// credentials themselves. An unreadable or invalid key file is an error;
// callers treat it as fatal at startup.
func NewFirestoreStore(ctx context.Context, credentialsPath, collection string) (*FirestoreStore, error) {
	if collection == "" {
		collection = DefaultCollection
	}

	data, err := os.ReadFile(filepath.Clean(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, "https://www.googleapis.com/auth/datastore")
	if err != nil {
		return nil, fmt.Errorf("parsing credentials file %s: %w", credentialsPath, err)
	}

	if creds.ProjectID == "" {
		return nil, fmt.Errorf("credentials file %s carries no project id", credentialsPath)
	}

	client, err := firestore.NewClient(ctx, creds.ProjectID, option.WithCredentialsJSON(data))
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &FirestoreStore{client: client, collection: collection}, nil
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (map[string]any, error) {
	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrDocumentNotFound
		}

		return nil, fmt.Errorf("getting document %s: %w", id, err)
	}

	return snap.Data(), nil
}

func (s *FirestoreStore) Update(ctx context.Context, id string, fields map[string]any) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}

	if _, err := s.client.Collection(s.collection).Doc(id).Update(ctx, updates); err != nil {
		return fmt.Errorf("updating document %s: %w", id, err)
	}

	return nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
