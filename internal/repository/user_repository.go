package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/arshraina/dining-reservation-system/internal/model"
	"github.com/arshraina/dining-reservation-system/internal/utils"
)

// UserRepo is the MySQL-backed UserStore.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create hashes the password and inserts the user, returning its ID.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES (?,?,?)`,
		username, email, hash)
	if err != nil {
		// 1062 duplicate entry; the message names the violated key.
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "username") {
				return 0, ErrUsernameExists
			}
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.get(ctx, `SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = ? LIMIT 1`, strings.TrimSpace(username))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.get(ctx, `SELECT id, username, email, password_hash, created_at
		FROM users WHERE id = ? LIMIT 1`, id)
}

func (r *UserRepo) get(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}
