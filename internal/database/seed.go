package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: the three
// subscription plans, a demo company on the starter plan, an admin user,
// and a pair of global arte templates. It is a no-op when data exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM companies").Scan(&count); err != nil {
		return fmt.Errorf("seed check companies: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Subscription plans.
	var starterPlanID string
	err := db.QueryRow(`
		INSERT INTO plans (name, slug, monthly_artes, monthly_generations, price_cents)
		VALUES ('Starter', 'starter', 30, 15, 4990)
		RETURNING id
	`).Scan(&starterPlanID)
	if err != nil {
		return fmt.Errorf("seed insert starter plan: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO plans (name, slug, monthly_artes, monthly_generations, price_cents)
		VALUES ('Pro', 'pro', 120, 60, 9990),
		       ('Agency', 'agency', 500, 300, 24990)
	`)
	if err != nil {
		return fmt.Errorf("seed insert plans: %w", err)
	}

	// Demo company on the starter plan.
	var companyID string
	err = db.QueryRow(`
		INSERT INTO companies (name, segment, primary_color, secondary_color, plan_id)
		VALUES ('Demo Studio', 'design', '#1A1A2E', '#E94560', $1)
		RETURNING id
	`, starterPlanID).Scan(&companyID)
	if err != nil {
		return fmt.Errorf("seed insert company: %w", err)
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (company_id, email, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4, $5)
	`, companyID, "admin@artegen.local", string(hash), "Admin", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Global templates, visible to every company.
	_, err = db.Exec(`
		INSERT INTO arte_templates (company_id, name, slug, post_type, fields)
		VALUES (NULL, 'Promo Feed', 'promo-feed', 'feed',
		        '{"slots":[{"name":"headline","type":"text"},{"name":"cta","type":"text"},{"name":"logo","type":"image"}]}'),
		       (NULL, 'Story Destaque', 'story-destaque', 'story',
		        '{"slots":[{"name":"headline","type":"text"},{"name":"background","type":"color"}]}')
	`)
	if err != nil {
		return fmt.Errorf("seed insert templates: %w", err)
	}

	slog.Info("database seeded with demo company and admin user",
		"email", "admin@artegen.local",
		"password", "admin",
	)

	return nil
}
