package migrate_test

import (
	"testing"

	"github.com/lavka-market/lavka-backend/pkg/migrate"
)

func TestValidateDir(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations directory failed validation: %v", err)
	}
}

func TestValidateDir_MissingDir(t *testing.T) {
	if err := migrate.ValidateDir("does-not-exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
