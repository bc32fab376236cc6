package main

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"stockroom/internal/config"
	"stockroom/internal/domain"
	"stockroom/internal/repository"
	"stockroom/internal/schema"
	"stockroom/internal/util"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, relying on environment")
	}

	cfg := config.Load()
	db, err := repository.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Println("Starting seed process...")

	if err := truncateTables(db.DB()); err != nil {
		log.Fatalf("Failed to truncate tables: %v", err)
	}

	seedUsers(db.DB())
	if err := seedCatalog(db.DB()); err != nil {
		log.Printf("Failed to seed catalog: %v", err)
	}

	log.Println("Seed process completed!")
}

func truncateTables(db *sqlx.DB) error {
	log.Println("Truncating all seed tables...")

	tables := []string{
		"items",
		"fields",
		"inventories",
		"users",
	}

	for _, table := range tables {
		query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
		log.Printf("Truncated table: %s", table)
	}

	return nil
}

func seedUsers(db *sqlx.DB) {
	log.Println("Seeding users...")

	userRepo := repository.NewUserRepository(db)

	users := []struct {
		username string
		email    string
		password string
		role     domain.Role
	}{
		{"admin", "admin@example.com", "password", domain.RoleAdmin},
		{"manager", "manager@example.com", "password", domain.RoleManager},
		{"viewer", "viewer@example.com", "password", domain.RoleUser},
	}

	for _, u := range users {
		hashed, err := util.HashPassword(u.password)
		if err != nil {
			log.Printf("Failed to hash password for %s: %v", u.username, err)
			continue
		}

		user := &domain.User{
			Username: u.username,
			Email:    u.email,
			Password: hashed,
			Name:     u.username,
			Role:     u.role,
		}
		if err := userRepo.Create(user); err != nil {
			log.Printf("Failed to seed user %s: %v", u.username, err)
			continue
		}
		log.Printf("Seeded user: %s (%s)", u.username, u.role)
	}
}

func seedCatalog(db *sqlx.DB) error {
	log.Println("Seeding demo inventory...")

	invRepo := repository.NewInventoryRepository(db)
	fieldRepo := repository.NewFieldRepository(db)
	itemRepo := repository.NewItemRepository(db)

	inv := &domain.Inventory{
		Name:        "Main Warehouse",
		Description: "Demo inventory with a typical electronics schema",
	}
	if err := invRepo.Create(inv); err != nil {
		return err
	}

	fieldDefs := []struct {
		name     string
		ftype    schema.FieldType
		required bool
		options  []string
	}{
		{"SKU", schema.FieldTypeText, true, nil},
		{"Brand", schema.FieldTypeText, false, nil},
		{"Price", schema.FieldTypeNumber, false, nil},
		{"Date Added", schema.FieldTypeDate, false, nil},
		{"Status", schema.FieldTypeSelect, false, []string{"In Stock", "Low Stock", "Out of Stock"}},
		{"Condition", schema.FieldTypeSelect, false, []string{"New", "Used", "Refurbished"}},
	}

	for _, def := range fieldDefs {
		field := &domain.Field{
			InventoryID: inv.ID,
			Slug:        schema.Slugify(def.name),
			Name:        def.name,
			Type:        def.ftype,
			Required:    def.required,
			Options:     def.options,
		}
		if err := fieldRepo.Create(field); err != nil {
			return fmt.Errorf("seed field %s: %w", def.name, err)
		}
	}

	items := []*domain.Item{
		{
			InventoryID: inv.ID,
			Name:        "Wireless Mouse",
			Description: "2.4GHz optical mouse",
			Quantity:    42,
			MinStock:    10,
			MaxStock:    100,
			Tags:        []string{"electronics", "accessories"},
			Values: schema.ValueMap{
				"sku":        schema.TextValue("WM-1001"),
				"brand":      schema.TextValue("Logi"),
				"price":      schema.NumberValue(24.99),
				"date_added": schema.DateValue("2026-01-15"),
				"status":     schema.TextValue("In Stock"),
				"condition":  schema.TextValue("New"),
			},
		},
		{
			InventoryID: inv.ID,
			Name:        "Mechanical Keyboard",
			Description: "Tenkeyless, brown switches",
			Quantity:    3,
			MinStock:    5,
			MaxStock:    50,
			Tags:        []string{"electronics"},
			Values: schema.ValueMap{
				"sku":    schema.TextValue("KB-2040"),
				"brand":  schema.TextValue("Keychron"),
				"price":  schema.NumberValue(89),
				"status": schema.TextValue("Low Stock"),
			},
		},
	}

	for _, item := range items {
		if err := itemRepo.Create(item); err != nil {
			return fmt.Errorf("seed item %s: %w", item.Name, err)
		}
		log.Printf("Seeded item: %s", item.Name)
	}

	return nil
}
