package postgres

import (
	"fmt"
	"time"

	"medshop/internal/pkg/errs"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionSettings describes how to reach postgres and size the pool.
type ConnectionSettings struct {
	Host             string
	Port             string
	User             string
	Password         string
	Name             string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	StatementTimeout time.Duration
}

// DSN renders the keyword/value connection string. statement_timeout is sent
// as a runtime parameter so every pooled connection carries it.
func (s ConnectionSettings) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, s.SSLMode)
	if s.StatementTimeout > 0 {
		dsn += fmt.Sprintf(" statement_timeout=%d", s.StatementTimeout.Milliseconds())
	}
	return dsn
}

// Open connects with the given settings, sizes the pool and installs the
// error classifier.
func Open(s ConnectionSettings) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(s.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, Classify("connect", err)
	}
	if err = Configure(db, s.MaxOpenConns, s.MaxIdleConns); err != nil {
		return nil, err
	}
	return db, nil
}

// Configure applies pool limits and the error classifier to an open handle.
func Configure(db *gorm.DB, maxOpen, maxIdle int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if maxOpen <= 0 || maxIdle < 0 || maxIdle > maxOpen {
		return errs.NewConfigurationErrorWithCause("database pool",
			fmt.Errorf("max open %d, max idle %d", maxOpen, maxIdle))
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return RegisterErrorClassifier(db)
}
