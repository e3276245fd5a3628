package repository

import (
	"testing"

	"mindclinic/internal/infrastructure/jsonstore"
)

func openDB(t *testing.T) *jsonstore.DB {
	t.Helper()
	db, err := jsonstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
