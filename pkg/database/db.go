package database

import (
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalWindows int    `gorm:"default:0" json:"total_windows"`
	TotalShifts  int    `gorm:"default:0" json:"total_shifts"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Team represents the teams table. Positions are stored pipe-separated;
// at creation time their count must equal MaxUsers.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	MinUsers  int       `gorm:"not null" json:"min_users"`
	MaxUsers  int       `gorm:"not null" json:"max_users"`
	Positions string    `gorm:"not null" json:"positions"`
	CreatedAt time.Time `json:"created_at"`
}

// PositionList splits the stored positions into a slice.
func (t *Team) PositionList() []string {
	if t.Positions == "" {
		return nil
	}
	return strings.Split(t.Positions, "|")
}

// TimeUnit represents the time_units table: the configured daily slot
// plan used for break-gap computation. Start and End are HHMM integers.
type TimeUnit struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Start   int    `gorm:"not null" json:"start"`
	End     int    `gorm:"not null" json:"end"`
	IsBreak bool   `gorm:"default:false" json:"is_break"`
	Ordinal int    `gorm:"not null" json:"ordinal"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "coverage_api.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto Migration
	db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &Team{}, &TimeUnit{})

	return db
}
