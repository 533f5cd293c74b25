package alarms

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// alarmRecord is one row of the alarms table.
type alarmRecord struct {
	// Position is the one-based index of the alarm in registry order.
	Position int `gorm:"primaryKey;autoIncrement:false"`
	// Value is the "HH:MM AM/PM" alarm string.
	Value string `gorm:"not null"`
}

// TableName pins the table name.
func (alarmRecord) TableName() string {
	return "alarms"
}

// SQLiteRepository persists the alarm list in an SQLite database.
type SQLiteRepository struct {
	// db is the gorm handle to the database file.
	db *gorm.DB
}

// gormWriter forwards gorm's log lines to the project logger at debug level.
type gormWriter struct {
	// ctx carries the named logger.
	ctx context.Context //nolint:containedctx // Needed by gorm's Printf-style writer.
}

// Printf implements gorm's logger.Writer.
func (w gormWriter) Printf(format string, args ...any) {
	logger.Debugf(w.ctx, format, args...)
}

// NewSQLiteRepository opens (creating if needed) the database at path.
func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	gormLogger := gormlogger.New(
		gormWriter{ctx: logger.WithName(ctx, "sqlite")},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}

	// A single connection avoids SQLITE_BUSY between the poll loop and API calls.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err = db.WithContext(ctx).AutoMigrate(new(alarmRecord)); err != nil {
		_ = sqlDB.Close()

		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Load returns the stored alarms ordered by position.
func (r *SQLiteRepository) Load(ctx context.Context) ([]string, error) {
	var records []alarmRecord

	if err := r.db.WithContext(ctx).Order("position").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("select alarms: %w", err)
	}

	values := make([]string, 0, len(records))
	for _, record := range records {
		values = append(values, record.Value)
	}

	return values, nil
}

// Save replaces all stored alarms with values in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, values []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(alarmRecord)).Error
		if err != nil {
			return fmt.Errorf("delete alarms: %w", err)
		}

		if len(values) == 0 {
			return nil
		}

		records := make([]alarmRecord, 0, len(values))
		for i, value := range values {
			records = append(records, alarmRecord{Position: i + 1, Value: value})
		}

		if err = tx.Create(&records).Error; err != nil {
			return fmt.Errorf("insert alarms: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("save alarms: %w", err)
	}

	return nil
}

// Close releases the database connection.
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}

	return sqlDB.Close()
}
