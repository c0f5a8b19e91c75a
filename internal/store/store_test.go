// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"artegen/internal/database"
	"artegen/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "artegen")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "artegen")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testCompany creates a throwaway company and registers cleanup. The
// cascade on companies removes its users, artes, and content requests.
func testCompany(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	name := "test-co-" + uuid.NewString()[:8]
	if err := db.QueryRow(
		"INSERT INTO companies (name, segment) VALUES ($1, 'test') RETURNING id", name,
	).Scan(&id); err != nil {
		t.Fatalf("create test company: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM companies WHERE id = $1", id)
	})
	return id
}

// testUser creates a throwaway user inside the given company.
func testUser(t *testing.T, db *sql.DB, companyID uuid.UUID) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	email := "test-" + uuid.NewString()[:8] + "@artegen.test"
	if err := db.QueryRow(`
		INSERT INTO users (company_id, email, password_hash, display_name, role)
		VALUES ($1, $2, 'x', 'Test User', 'editor')
		RETURNING id
	`, companyID, email).Scan(&id); err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return id
}

// pendingRequest builds a minimal valid pending request for tests.
func pendingRequest(companyID, userID uuid.UUID) *models.ContentRequest {
	return &models.ContentRequest{
		CompanyID: companyID,
		UserID:    userID,
		Tema:      "Lançamento da coleção de inverno",
		PostType:  models.PostTypeFeed,
		Tone:      models.ToneCasual,
	}
}
