package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"status_logs", "orders", "materials", "customers", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)

		users := []struct {
			Name  string
			Email string
			Role  string
		}{
			{"Ada Admin", "admin@worktrack.local", "ADMIN"},
			{"Mara Manager", "manager@worktrack.local", "MANAGER"},
			{"Otto Operator", "operator@worktrack.local", "OPERATOR"},
			{"Olga Operator", "operator2@worktrack.local", "OPERATOR"},
		}

		for _, u := range users {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}
			if err := db.Exec(
				"INSERT INTO users (name, email, password_hash, role, active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
				u.Name, u.Email, string(hash), u.Role,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded %s user: %s\n", u.Role, u.Email)
		}

		customers := []struct {
			Name    string
			Company string
			Email   string
		}{
			{"Jan Kowalski", "Steelworks Ltd", "jan@steelworks.example"},
			{"Petra Novak", "Precision Parts GmbH", "petra@precisionparts.example"},
		}
		for _, c := range customers {
			var exists int
			if err := db.Raw("SELECT 1 FROM customers WHERE name = ? AND company = ?", c.Name, c.Company).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO customers (name, company, email, phone, address, created_at, updated_at) VALUES (?, ?, ?, '', '', now(), now())",
				c.Name, c.Company, c.Email,
			).Error; err != nil {
				log.Fatalf("failed to insert customer %s: %v", c.Name, err)
			}
			fmt.Printf("Seeded customer: %s (%s)\n", c.Name, c.Company)
		}

		materials := []struct {
			Name  string
			Unit  string
			Stock float64
		}{
			{"Steel sheet 2mm", "kg", 1200},
			{"Aluminium rod 10mm", "m", 350},
			{"Powder coat RAL9005", "kg", 80},
		}
		for _, m := range materials {
			var exists int
			if err := db.Raw("SELECT 1 FROM materials WHERE name = ?", m.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO materials (name, description, unit, stock_quantity, created_at, updated_at) VALUES (?, '', ?, ?, now(), now())",
				m.Name, m.Unit, m.Stock,
			).Error; err != nil {
				log.Fatalf("failed to insert material %s: %v", m.Name, err)
			}
			fmt.Printf("Seeded material: %s\n", m.Name)
		}

		var orderCount int64
		if err := db.Raw("SELECT COUNT(*) FROM orders").Row().Scan(&orderCount); err != nil {
			log.Fatalf("failed to count orders: %v", err)
		}
		if orderCount > 0 {
			fmt.Println("orders already present, skipping order seed")
			return
		}

		var adminID, operatorID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "admin@worktrack.local").Row().Scan(&adminID); err != nil {
			log.Fatalf("failed to look up admin: %v", err)
		}
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "operator@worktrack.local").Row().Scan(&operatorID); err != nil {
			log.Fatalf("failed to look up operator: %v", err)
		}

		if err := db.Exec(
			`INSERT INTO orders (product, description, priority, status, assigned_to_id, created_by_id, quantity, deadline, created_at, updated_at)
			 VALUES (?, ?, ?, 'PENDING', ?, ?, ?, now() + interval '14 days', now(), now())`,
			"Bracket M-42", "Laser cut and bend, batch of 500", "HIGH", operatorID, adminID, 500.0,
		).Error; err != nil {
			log.Fatalf("failed to insert sample order: %v", err)
		}
		fmt.Println("Seeded sample order")
	},
}
