package repository

import (
	"context"
	"errors"
	"fmt"

	"account-service/internal/data/entity"
	"account-service/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

var (
	ErrDuplicateEmail  = errors.New("email already in use")
	ErrAccountNotFound = errors.New("account not found")
)

type AccountRepository interface {
	// Create builds an unsaved account with defaults applied. It does not touch the store.
	Create(fields entity.Account) *entity.Account
	// Save inserts when ID is zero and updates otherwise, in a single statement.
	Save(ctx context.Context, account *entity.Account) (*entity.Account, error)
	FindByID(ctx context.Context, id int64) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Account, error)
	CountAll(ctx context.Context) (int64, error)
}

type accountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccountRepository(db database.PgxIface, log *zap.Logger) AccountRepository {
	return &accountRepository{
		db:  db,
		log: log.With(zap.String("repository", "account")),
	}
}

const accountColumns = `
	a.id, a.email, a.password, a.name, a.last_name, a.birthdate, a.gender,
	a.status, a.role_id, COALESCE(r.name, ''), a.otp_code, a.otp_expires_at,
	a.created_at, a.updated_at`

func (r *accountRepository) Create(fields entity.Account) *entity.Account {
	account := fields
	account.ID = 0
	if account.Name == "" {
		account.Name = entity.DefaultName
	}
	if account.LastName == "" {
		account.LastName = entity.DefaultLastName
	}
	if account.Gender == "" {
		account.Gender = entity.GenderUndefined
	}
	if account.Status == "" {
		account.Status = entity.StatusPending
	}
	return &account
}

func (r *accountRepository) Save(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if account.ID == 0 {
		return r.insert(ctx, account)
	}
	return r.update(ctx, account)
}

func (r *accountRepository) insert(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	query := `
		INSERT INTO accounts (email, password, name, last_name, birthdate, gender,
		                      status, role_id, otp_code, otp_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
		account.Name,
		account.LastName,
		account.Birthdate,
		account.Gender,
		account.Status,
		account.RoleID,
		account.OTPCode,
		account.OTPExpiresAt,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		r.log.Error("Failed to insert account", zap.Error(err), zap.String("email", account.Email))
		return nil, fmt.Errorf("insert account %s: %w", account.Email, err)
	}

	return account, nil
}

func (r *accountRepository) update(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	query := `
		UPDATE accounts
		SET email = $2, password = $3, name = $4, last_name = $5, birthdate = $6,
		    gender = $7, status = $8, role_id = $9, otp_code = $10,
		    otp_expires_at = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Name,
		account.LastName,
		account.Birthdate,
		account.Gender,
		account.Status,
		account.RoleID,
		account.OTPCode,
		account.OTPExpiresAt,
		account.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		r.log.Error("Failed to update account", zap.Error(err), zap.Int64("account_id", account.ID))
		return nil, fmt.Errorf("update account %d: %w", account.ID, err)
	}

	if result.RowsAffected() == 0 {
		return nil, fmt.Errorf("update account %d: %w", account.ID, ErrAccountNotFound)
	}

	return account, nil
}

func (r *accountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts a
		LEFT JOIN roles r ON r.id = a.role_id
		WHERE a.id = $1
	`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by ID", zap.Error(err), zap.Int64("account_id", id))
		return nil, fmt.Errorf("find account by ID %d: %w", id, err)
	}

	return account, nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts a
		LEFT JOIN roles r ON r.id = a.role_id
		WHERE a.email = $1
	`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find account by email %s: %w", email, err)
	}

	return account, nil
}

// FindAll lists non-deleted accounts, newest first.
func (r *accountRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts a
		LEFT JOIN roles r ON r.id = a.role_id
		WHERE a.status <> 'deleted'
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list accounts", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("find all accounts limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var accounts []*entity.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

func (r *accountRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE status <> 'deleted'`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count accounts", zap.Error(err))
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.LastName,
		&a.Birthdate,
		&a.Gender,
		&a.Status,
		&a.RoleID,
		&a.RoleName,
		&a.OTPCode,
		&a.OTPExpiresAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
