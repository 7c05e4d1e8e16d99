package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"medshop/internal/core/domain/model/order"
	"medshop/internal/jobs"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort string

	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBStatementTimeout time.Duration

	RequestTimeout     time.Duration
	StoreRetryAttempts uint64

	EscalationWindow   time.Duration
	EscalationSchedule string

	DefaultDistributorEmail string
	Fees                    order.FeeSchedule

	AMQPURL             string
	AMQPQueue           string
	CareListenerEnabled bool
}

// LoadConfig reads the settings through getenv, fills defaults and reports
// every invalid value at once.
//
//	_ = godotenv.Load(".env")
//	cfg, err := cmd.LoadConfig(os.Getenv)
func LoadConfig(getenv func(string) string) (Config, error) {
	r := envReader{getenv: getenv}

	cfg := Config{
		HTTPPort:   r.str("HTTP_PORT", "8080"),
		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", "postgres"),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.str("DB_NAME", "medshop"),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		DBMaxOpenConns:     r.integer("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:     r.integer("DB_MAX_IDLE_CONNS", 5),
		DBStatementTimeout: r.duration("DB_STATEMENT_TIMEOUT", 5*time.Second),

		RequestTimeout: r.duration("REQUEST_TIMEOUT", 5*time.Second),

		EscalationWindow:   r.duration("ESCALATION_WINDOW", time.Hour),
		EscalationSchedule: r.str("ESCALATION_SCHEDULE", jobs.DefaultEscalationSchedule),

		DefaultDistributorEmail: strings.ToLower(r.str("DEFAULT_DISTRIBUTOR_EMAIL", "")),

		AMQPURL:             r.str("AMQP_URL", ""),
		AMQPQueue:           r.str("AMQP_QUEUE", ""),
		CareListenerEnabled: r.boolean("CARE_LISTENER_ENABLED", true),
	}

	retries := r.integer("STORE_RETRY_ATTEMPTS", 2)
	if retries < 0 {
		r.fail("STORE_RETRY_ATTEMPTS", fmt.Errorf("%d is negative", retries))
		retries = 0
	}
	cfg.StoreRetryAttempts = uint64(retries)

	fees, err := order.NewFeeSchedule(map[order.DeliveryOption]decimal.Decimal{
		order.Pickup:   r.money("DELIVERY_FEE_PICKUP"),
		order.Dispatch: r.money("DELIVERY_FEE_DISPATCH"),
		order.Courier:  r.money("DELIVERY_FEE_COURIER"),
	}, r.money("TAX_RATE"))
	if err != nil {
		r.fail("DELIVERY_FEE_*/TAX_RATE", err)
	}
	cfg.Fees = fees

	if cfg.DBMaxOpenConns < 1 {
		r.fail("DB_MAX_OPEN_CONNS", fmt.Errorf("%d is below 1", cfg.DBMaxOpenConns))
	}
	if cfg.DBMaxIdleConns < 0 || cfg.DBMaxIdleConns > cfg.DBMaxOpenConns {
		r.fail("DB_MAX_IDLE_CONNS", fmt.Errorf("%d is outside [0, %d]", cfg.DBMaxIdleConns, cfg.DBMaxOpenConns))
	}
	if cfg.RequestTimeout <= 0 {
		r.fail("REQUEST_TIMEOUT", errors.New("must be positive"))
	}
	if cfg.EscalationWindow <= 0 {
		r.fail("ESCALATION_WINDOW", errors.New("must be positive"))
	}
	if err := jobs.ValidateSchedule(cfg.EscalationSchedule); err != nil {
		r.fail("ESCALATION_SCHEDULE", err)
	}

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) fail(key string, cause error) {
	r.errs = append(r.errs, errs.NewConfigurationErrorWithCause(key, cause))
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return d
}

func (r *envReader) boolean(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return b
}

func (r *envReader) money(key string) decimal.Decimal {
	v := r.str(key, "")
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		r.fail(key, err)
		return decimal.Zero
	}
	return d
}
