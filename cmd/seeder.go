package cmd

import (
	"fmt"
	"log"

	"github.com/cloudmorphix/console/internal/auth"
	"github.com/cloudmorphix/console/internal/role"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the platform operator tenant and a demo company for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			clearTables(db)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		// The operator tenant gets its flag set here, by an out-of-band
		// administrative action, never inferred from the company name.
		seedCompany(db, seedSpec{
			companyName: "Cloud Morphix",
			planType:    "Enterprise",
			operator:    true,
			adminEmail:  "operator@cloudmorphix.com",
			adminName:   "Platform Operator",
			hash:        string(hash),
		})

		seedCompany(db, seedSpec{
			companyName: "Acme Analytics",
			planType:    "Trial",
			operator:    false,
			adminEmail:  "admin@acme.test",
			adminName:   "Acme Admin",
			hash:        string(hash),
		})

		fmt.Println("Seeding complete. All seeded accounts use password:", password)
	},
}

type seedSpec struct {
	companyName string
	planType    string
	operator    bool
	adminEmail  string
	adminName   string
	hash        string
}

func seedCompany(db *sqlx.DB, spec seedSpec) {
	var exists int
	if err := db.QueryRow("SELECT 1 FROM auth_accounts WHERE LOWER(email) = LOWER($1)", spec.adminEmail).Scan(&exists); err == nil {
		fmt.Println("company admin already exists, skipping:", spec.adminEmail)
		return
	}

	companyID := uuid.NewString()
	adminID := uuid.NewString()

	tx, err := db.Beginx()
	if err != nil {
		log.Fatalf("failed to begin seed transaction: %v", err)
	}
	defer tx.Rollback()

	mustExec(tx, `INSERT INTO auth_accounts (id, email, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, true, now(), now())`, adminID, spec.adminEmail, spec.hash)

	mustExec(tx, `INSERT INTO companies (id, name, registered_email, plan_type, is_active, is_platform_operator, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, $5, now(), now())`,
		companyID, spec.companyName, spec.adminEmail, spec.planType, spec.operator)

	for _, r := range role.Defaults(companyID) {
		perms := "[]"
		if len(r.Permissions) > 0 {
			perms = `["` + r.Permissions[0] + `"`
			for _, p := range r.Permissions[1:] {
				perms += `,"` + p + `"`
			}
			perms += "]"
		}
		mustExec(tx, `INSERT INTO roles (id, company_id, name, permissions, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())`, r.ID, companyID, r.Name, perms)
	}

	mustExec(tx, `INSERT INTO users (id, company_id, full_name, email, role_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, now(), now())`,
		adminID, companyID, spec.adminName, spec.adminEmail, role.AdminRoleName)

	mustExec(tx, `INSERT INTO user_company_lookup (user_id, company_id, created_at)
		VALUES ($1, $2, now())`, adminID, companyID)

	if err := tx.Commit(); err != nil {
		log.Fatalf("failed to commit seed transaction: %v", err)
	}

	fmt.Printf("Seeded company %q with admin %s (permissions: %v)\n",
		spec.companyName, spec.adminEmail, auth.AllPermissions())
}

func mustExec(tx *sqlx.Tx, query string, args ...interface{}) {
	if _, err := tx.Exec(query, args...); err != nil {
		log.Fatalf("seed exec failed: %v\nquery: %s", err, query)
	}
}

func clearTables(db *sqlx.DB) {
	tables := []string{
		"audit_logs",
		"invites",
		"user_company_lookup",
		"users",
		"roles",
		"companies",
		"auth_accounts",
		"contacts",
	}
	for _, t := range tables {
		if _, err := db.Exec("DELETE FROM " + t); err != nil {
			log.Fatalf("failed to clear table %s: %v", t, err)
		}
	}
	fmt.Println("Cleared existing data")
}
