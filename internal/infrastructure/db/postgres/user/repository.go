package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"filevault-api/internal/domain/user"
	"filevault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DBTX
}

func NewRepository(db postgres.DBTX) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByUsername(ctx context.Context, username string) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByUsername, username).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,

		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, ExistsUserByUsername, username).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, ExistsUserByEmail, email).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.Username, req.Email, req.PasswordHash,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,

		&u.CreatedAt,
	)
	if err != nil {
		switch postgres.UniqueViolationConstraint(err) {
		case constraintUsername:
			return nil, user.ErrUsernameTaken
		case constraintEmail:
			return nil, user.ErrEmailTaken
		}
		return nil, err
	}

	return fromDBModel(u), nil
}
