// Package pg implements the application repository on PostgreSQL.
// The record is stored as a jsonb document with a few extracted columns for
// lookups, keeping the document model intact across drivers.
package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Zee-2005/safara-sub000/internal/store/core"
	"github.com/Zee-2005/safara-sub000/migrations"
)

type Repository struct {
	pool *pgxpool.Pool
}

// Connect opens a pool and applies the embedded migrations (idempotent).
func Connect(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Repository{pool: pool}, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := fs.Glob(migrations.PostgresFS, migrations.PostgresDir+"/*.sql")
	if err != nil {
		return fmt.Errorf("pg migrations: %w", err)
	}
	sort.Strings(entries)
	for _, name := range entries {
		sql, err := migrations.PostgresFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("pg migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("pg migration %s: %w", name, err)
		}
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Create(ctx context.Context, app *core.Application) error {
	doc, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("pg marshal: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO applications (id, mobile, email, status, doc, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.Mobile, app.Email, string(app.Status), doc, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pg insert: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*core.Application, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM applications WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("pg select: %w", err)
	}
	return unmarshalApp(doc)
}

func (r *Repository) FindActiveByContact(ctx context.Context, mobile, email string) (*core.Application, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx,
		`SELECT doc FROM applications
		 WHERE mobile = $1 AND email = $2 AND status <> $3
		 ORDER BY created_at DESC LIMIT 1`,
		mobile, email, string(core.StatusRejected)).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("pg select active: %w", err)
	}
	return unmarshalApp(doc)
}

func (r *Repository) Update(ctx context.Context, app *core.Application) error {
	doc, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("pg marshal: %w", err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE applications SET doc = $2, status = $3, updated_at = $4 WHERE id = $1`,
		app.ID, doc, string(app.Status), app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pg update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) Close(context.Context) error {
	r.pool.Close()
	return nil
}

func unmarshalApp(doc []byte) (*core.Application, error) {
	var app core.Application
	if err := json.Unmarshal(doc, &app); err != nil {
		return nil, fmt.Errorf("pg unmarshal: %w", err)
	}
	return &app, nil
}
