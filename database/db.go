package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // драйвер PostgreSQL
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pupils-backend/config"
)

// Store держит оба представления одного пула соединений:
// GORM для записи и связей, sqlx для простых выборок.
type Store struct {
	Gorm *gorm.DB
	SQLX *sqlx.DB
}

func InitDB(cfg *config.Config) (*Store, error) {
	gormCfg := &gorm.Config{Logger: NewGormLogger(cfg.DBEcho)}

	var (
		db         *gorm.DB
		sqlxDriver string
		err        error
	)

	switch cfg.DBDriver {
	case config.DriverPostgres:
		// Сначала используем стандартный database/sql
		conn, openErr := sql.Open("postgres", cfg.DSN())
		if openErr != nil {
			return nil, errors.Wrap(openErr, "error opening database")
		}
		db, err = gorm.Open(postgres.New(postgres.Config{Conn: conn}), gormCfg)
		sqlxDriver = "postgres"
	case config.DriverSQLite:
		db, err = gorm.Open(sqlite.Open(cfg.DSN()), gormCfg)
		sqlxDriver = "sqlite3"
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "error opening database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "error getting SQL DB")
	}
	tunePool(sqlDB, cfg)

	// Затем оборачиваем в sqlx
	store := &Store{Gorm: db, SQLX: sqlx.NewDb(sqlDB, sqlxDriver)}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		return nil, errors.Wrap(err, "error pinging database")
	}

	log.Info().Str("driver", cfg.DBDriver).Msg("✅ Successfully connected to database")
	return store, nil
}

func tunePool(sqlDB *sql.DB, cfg *config.Config) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.SQLX.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.SQLX.Close()
}
