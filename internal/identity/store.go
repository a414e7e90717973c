package identity

import (
	"context"
	"errors"

	"github.com/dimitrije/gostays-api/internal/models"
)

var (
	// ErrNotFound is returned by store lookups and updates when no record
	// exists for the external id.
	ErrNotFound = errors.New("user not found")
	// ErrConflict signals a unique-constraint violation on insert. The
	// reconciler treats it as "somebody else created the record first",
	// never as a failure.
	ErrConflict = errors.New("user already exists")
)

// UserPatch carries only the fields an update should touch. Nil means
// "leave alone"; a pointer to the empty string is an explicit clear.
type UserPatch struct {
	Email     *string
	Username  *string
	AvatarURL *string
}

// Store is the durable keyed collection of local user records. All
// mutation of users flows through the Reconciler and hence through this
// interface, so the external_id unique constraint has a single enforcement
// point.
type Store interface {
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	UpdateByExternalID(ctx context.Context, externalID string, patch UserPatch) (*models.User, error)
	DeleteByExternalID(ctx context.Context, externalID string) (bool, error)
}
