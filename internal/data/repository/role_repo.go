package repository

import (
	"context"
	"errors"
	"fmt"

	"account-service/internal/data/entity"
	"account-service/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoleRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	// EnsureDefaults upserts every name; running it twice is a no-op.
	EnsureDefaults(ctx context.Context, names []string) error
}

type roleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoleRepository(db database.PgxIface, log *zap.Logger) RoleRepository {
	return &roleRepository{
		db:  db,
		log: log.With(zap.String("repository", "role")),
	}
}

func (r *roleRepository) FindByID(ctx context.Context, id int64) (*entity.Role, error) {
	return r.findOne(ctx, `SELECT id, name, created_at FROM roles WHERE id = $1`, id)
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.findOne(ctx, `SELECT id, name, created_at FROM roles WHERE name = $1`, name)
}

func (r *roleRepository) findOne(ctx context.Context, query string, arg any) (*entity.Role, error) {
	var role entity.Role
	err := r.db.QueryRow(ctx, query, arg).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find role", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find role %v: %w", arg, err)
	}
	return &role, nil
}

func (r *roleRepository) EnsureDefaults(ctx context.Context, names []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin role seed: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, name := range names {
		if _, err := tx.Exec(ctx,
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			r.log.Error("Failed to seed role", zap.Error(err), zap.String("role", name))
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit role seed: %w", err)
	}
	return nil
}
