package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dimitrije/gostays-api/internal/database"
	"github.com/dimitrije/gostays-api/internal/identity"
	"github.com/dimitrije/gostays-api/internal/models"
)

const userColumns = "id, external_id, email, username, avatar_url, role, created_at, updated_at"

// UserService is the pgx-backed identity.Store. The users table's unique
// index on external_id is what makes Insert a safe first move for the
// reconciler's insert-then-merge protocol.
type UserService struct {
	db *database.DB
}

var _ identity.Store = (*UserService)(nil)

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE external_id = $1
	`, externalID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by external id: %w", err)
	}
	return user, nil
}

func (s *UserService) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	row := s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (external_id, email, username, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`
	`, user.ExternalID, user.Email, user.Username, user.AvatarURL)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, identity.ErrConflict
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return created, nil
}

func (s *UserService) UpdateByExternalID(ctx context.Context, externalID string, patch identity.UserPatch) (*models.User, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if patch.Email != nil {
		args = append(args, *patch.Email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if patch.Username != nil {
		args = append(args, *patch.Username)
		sets = append(sets, fmt.Sprintf("username = $%d", len(args)))
	}
	if patch.AvatarURL != nil {
		args = append(args, *patch.AvatarURL)
		sets = append(sets, fmt.Sprintf("avatar_url = $%d", len(args)))
	}
	if len(sets) == 0 {
		return s.FindByExternalID(ctx, externalID)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, externalID)

	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE external_id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args), userColumns)

	user, err := scanUser(s.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) DeleteByExternalID(ctx context.Context, externalID string) (bool, error) {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM users WHERE external_id = $1`, externalID)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.ExternalID, &user.Email, &user.Username,
		&user.AvatarURL, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
