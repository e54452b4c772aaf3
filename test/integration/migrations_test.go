package integration

import (
	"testing"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/migration"
	"github.com/fhuszti/streams-ms-go/test/testutil"
	_ "github.com/go-sql-driver/mysql"
)

func TestMigrateUpIntegration(t *testing.T) {
	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer testDB.Cleanup()

	db := testDB.DB

	// Run migrations
	if err := migration.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	// Give some time for migration to finalize
	time.Sleep(100 * time.Millisecond)

	// Verify the videos table exists
	recs := 0
	if err := db.QueryRow("SELECT COUNT(*) FROM videos").Scan(&recs); err != nil {
		t.Fatalf("failed to query migrated table: %v", err)
	}
	if recs != 0 {
		t.Fatalf("expected an empty videos table, got %d rows", recs)
	}

	// Running migrations twice must be a no-op
	if err := migration.MigrateUp(db); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}
}
