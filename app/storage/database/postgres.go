package database

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // also imports "github.com/lib/pq"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"walletapp/pkg/log"
	"walletapp/pkg/uuid"
)

const (
	defaultHistoryLimit = uint64(100)
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type Postgres struct {
	DB *sqlx.DB
}

func Connect(cfg Config) (*Postgres, error) {
	connectionString := cfg.DBConnectionString()
	db, err := sqlx.Connect("postgres", connectionString)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to the database")
	}

	// auto-migrate the db
	if err = migrateDB(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to migrate the database")
	}

	pg := &Postgres{DB: db}
	return pg, nil
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}

func (p *Postgres) SetFlag(ctx context.Context, name string, value int) error {
	_, err := p.DB.ExecContext(
		ctx,
		`INSERT INTO flags (name, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET value = $2, updated_at = now();`,
		name, value,
	)
	return errors.Wrap(err, "failed to upsert a flag")
}

func (p *Postgres) GetFlag(ctx context.Context, name string) (int, error) {
	var value int
	err := p.DB.GetContext(ctx, &value, "SELECT value FROM flags WHERE name = $1;", name)
	if err == sql.ErrNoRows {
		// a flag that was never written reads as cleared
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to read a flag")
	}
	return value, nil
}

func (p *Postgres) CreateAttempt(ctx context.Context, attempt *NewAttempt) (*Attempt, error) {
	result := &Attempt{
		Base: Base{
			ID:        uuid.NewUUID(),
			CreatedAt: time.Now(),
		},
		NewAttempt: *attempt,
	}

	_, err := p.DB.NamedExecContext(
		ctx,
		`INSERT INTO attempts (id, client_id, confirmation_id, asset, amount, fee, receiver, status, created_at)
		 VALUES (:id, :client_id, :confirmation_id, :asset, :amount, :fee, :receiver, :status, :created_at);`,
		result,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert an attempt")
	}
	return result, nil
}

func (p *Postgres) CompleteAttempt(ctx context.Context, id string) error {
	_, err := p.DB.ExecContext(
		ctx,
		"UPDATE attempts SET status = $2, updated_at = now() WHERE id = $1;",
		id, AttemptStatusCompleted,
	)
	return errors.Wrap(err, "failed to complete an attempt")
}

func (p *Postgres) FailAttempt(ctx context.Context, id, msg string) error {
	_, err := p.DB.ExecContext(
		ctx,
		"UPDATE attempts SET status = $2, error = $3, updated_at = now() WHERE id = $1;",
		id, AttemptStatusFailed, msg,
	)
	return errors.Wrap(err, "failed to fail an attempt")
}

func (p *Postgres) AttemptHistory(ctx context.Context, filter *AttemptHistoryFilter) (
	[]*Attempt, uint64, error,
) {
	var total uint64
	err := p.DB.GetContext(
		ctx, &total,
		"SELECT COUNT(*) FROM attempts WHERE client_id = $1;",
		filter.ClientID,
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count attempts")
	}

	limit := defaultHistoryLimit
	if filter.Limit != nil {
		limit = *filter.Limit
	}

	var attempts []*Attempt
	err = p.DB.SelectContext(
		ctx, &attempts,
		`SELECT * FROM attempts WHERE client_id = $1
		 ORDER BY created_at DESC, id DESC OFFSET $2 LIMIT $3;`,
		filter.ClientID, filter.Skip, limit,
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to select attempts")
	}
	return attempts, total, nil
}

func migrateDB(cfg Config) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to open a migration source")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.DBConnectionStringForMigration())
	if err != nil {
		return errors.Wrap(err, "failed to create a migrate instance")
	}
	defer func() {
		if closeErr := multierr.Append(m.Close()); closeErr != nil {
			log.Warnw("failed to close a migrate instance", "error", closeErr.Error())
		}
	}()

	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "failed to apply migrations")
	}
	return nil
}
