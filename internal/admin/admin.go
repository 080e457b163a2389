package admin

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/taberinos/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAdminNotFound = errors.New("admin account not found")
	ErrInvalidToken  = errors.New("invalid admin token")
)

// HashToken returns the bcrypt hash stored for an admin token
func HashToken(plainToken string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainToken), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hashed), nil
}

// VerifyAdminToken checks if the provided token matches the stored hash
func VerifyAdminToken(hashedToken, plainToken string) bool {
	if hashedToken == "" || plainToken == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedToken), []byte(plainToken)) == nil
}

// GetAdminAccount retrieves an admin account by name
func GetAdminAccount(db *sqlx.DB, name string) (*models.AdminAccount, error) {
	var acc models.AdminAccount
	err := db.Get(&acc, `SELECT name, token_hash, created_at, updated_at FROM admin_accounts WHERE name=$1`, name)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// CreateAdminAccount creates or replaces an admin account (used for seeding)
func CreateAdminAccount(db *sqlx.DB, name, plainToken string) error {
	hashed, err := HashToken(plainToken)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO admin_accounts (name, token_hash, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET
			token_hash = EXCLUDED.token_hash,
			updated_at = NOW()
	`, name, hashed)
	return err
}

// ValidateAdminToken validates a name + token combination
func ValidateAdminToken(db *sqlx.DB, name, token string) (*models.AdminAccount, error) {
	acc, err := GetAdminAccount(db, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[ADMIN] No admin account found for: %s", name)
			return nil, ErrAdminNotFound
		}
		log.Printf("[ADMIN] Database error: %v", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !VerifyAdminToken(acc.TokenHash, token) {
		log.Printf("[ADMIN] Token verification failed for: %s", name)
		return nil, ErrInvalidToken
	}

	return acc, nil
}

// LogAdminAction records an admin action in the audit log
func LogAdminAction(db *sqlx.DB, adminName, ip, route, action string, details map[string]interface{}, success bool) error {
	if db == nil {
		return nil
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		log.Printf("[ADMIN] Failed to marshal audit details: %v", err)
		detailsJSON = []byte("{}")
	}

	_, err = db.Exec(`
		INSERT INTO admin_audit (admin_name, ip, route, action, details, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, adminName, ip, route, action, detailsJSON, success)
	if err != nil {
		log.Printf("[ADMIN] Failed to log admin action: %v", err)
	}
	return err
}

// GetAdminAuditLogs retrieves recent admin audit logs with pagination
func GetAdminAuditLogs(db *sqlx.DB, limit, offset int) ([]models.AdminAudit, error) {
	logs := []models.AdminAudit{}
	err := db.Select(&logs, `
		SELECT id, admin_name, ip, route, action, details, success, created_at
		FROM admin_audit
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return logs, err
}
