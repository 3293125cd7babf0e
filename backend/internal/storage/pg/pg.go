package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/desichan/desichan/shared/config"
	"github.com/desichan/desichan/shared/logger"
	sharedpg "github.com/desichan/desichan/shared/storage/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Storage struct {
	db *sql.DB
}

// New connects to postgres and brings the schema up to date.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	return NewWithPool(ctx, cfg, sharedpg.DefaultConnectionConfig())
}

// NewWithPool is New with explicit pool sizing.
func NewWithPool(ctx context.Context, cfg *config.Config, connCfg sharedpg.ConnectionConfig) (*Storage, error) {
	logger.Log.Info("connecting to database", "host", cfg.Private.Pg.Host, "db", cfg.Private.Pg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, connCfg)
	if err != nil {
		return nil, err
	}
	if err := migrateUp(db, cfg.Private.Pg.Dbname); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("database ready")
	return &Storage{db: db}, nil
}

func migrateUp(db *sql.DB, dbName string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("postgres.WithInstance: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, dbName, driver)
	if err != nil {
		return fmt.Errorf("migrate.NewWithInstance: %w", err)
	}
	// m.Close would close db as well, so only the source is released.
	defer src.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Ping backs the readiness probe.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return sharedpg.WithTx(ctx, s.db, fn)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullableId(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func idPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}
