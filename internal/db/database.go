package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Michaellinaresxk/hitback-server/internal/config"
	"github.com/Michaellinaresxk/hitback-server/internal/models"
)

type Client struct {
	DB *gorm.DB
}

// New opens the catalog database. The default driver is sqlite, which is all
// a single party host needs; postgres is available for shared deployments.
func New(cfg *config.Config) *Client {
	var (
		db  *gorm.DB
		err error
	)

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch cfg.Database.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.Database.Host,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
			cfg.Database.Port,
		)
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	default:
		db, err = gorm.Open(sqlite.Open(cfg.Database.Path), gormCfg)
	}

	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	// Connection Pool Settings
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("✅ Database Connected")

	return &Client{DB: db}
}

// AutoMigrate creates/updates tables based on struct definitions
func (c *Client) AutoMigrate() {
	log.Println("Running Database Migrations...")
	if err := c.DB.AutoMigrate(&models.Track{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("✅ Migrations Complete")
}
