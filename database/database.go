package database

import (
	"fmt"
	"log"

	"donasi/config"
	"donasi/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the database configured by DB_DRIVER and runs migrations.
// The returned handle is passed to every component that needs it; there is
// no package-level database singleton.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBFile)
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	if err := SeedAdmin(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Mutation{},
		&models.Donation{},
		&models.News{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// At most one pending payout may exist at any time. GORM index tags
	// cannot express a partial unique index, so it is created directly.
	// MySQL has no partial indexes; there the application-level check inside
	// the payout transaction is the only guard.
	if db.Dialector.Name() != "mysql" {
		err = db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_mutations_single_pending
			 ON mutations (mutation_type)
			 WHERE mutation_type = 'Outcome' AND mutation_status = 'pending' AND deleted_at IS NULL`,
		).Error
		if err != nil {
			return fmt.Errorf("failed to create pending-payout index: %w", err)
		}
	}

	log.Println("Migrations completed successfully.")
	return nil
}

// SeedAdmin creates the initial admin account when the users table is empty.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.SaltRound)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:    cfg.AdminUsername,
		PhoneNumber: cfg.AdminPhone,
		Role:        "ADMIN",
		Password:    string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin account %q", cfg.AdminUsername)
	return nil
}
