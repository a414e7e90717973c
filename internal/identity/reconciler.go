// Package identity keeps the local users table converged on the identity
// provider's view of the world. Two unordered sources feed it: the
// provider's webhook stream and the lazy sync performed on authenticated
// requests. The Reconciler makes those sources safe to interleave.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dimitrije/gostays-api/internal/models"
)

// maxAttempts bounds the insert/update retry loop. Each retry only happens
// when a concurrent actor changed the record's existence between our read
// and our write, so two is almost always enough.
const maxAttempts = 3

type Outcome int

const (
	OutcomeNoop Outcome = iota
	OutcomeCreated
	OutcomeUpdated
	OutcomeDeleted
)

type Result struct {
	Outcome Outcome
	User    *models.User
}

type Reconciler struct {
	store Store
	log   *slog.Logger
}

func NewReconciler(store Store, log *slog.Logger) *Reconciler {
	return &Reconciler{store: store, log: log}
}

// Reconcile applies one identity event. It is idempotent and safe to call
// concurrently for the same external id: creation is attempted first and a
// unique-constraint conflict demotes it to an update, never an error.
func (r *Reconciler) Reconcile(ctx context.Context, ev *Event) (*Result, error) {
	switch ev.Kind {
	case KindDeleted:
		return r.delete(ctx, ev)
	case KindCreated, KindUpdated, KindEnsureExists:
		return r.apply(ctx, ev)
	default:
		r.log.Info("ignoring unhandled identity event", "type", ev.RawType)
		return &Result{Outcome: OutcomeNoop}, nil
	}
}

func (r *Reconciler) delete(ctx context.Context, ev *Event) (*Result, error) {
	deleted, err := r.store.DeleteByExternalID(ctx, ev.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("delete user %s: %w", ev.ExternalID, err)
	}
	if !deleted {
		// Duplicate delivery or delete-before-create; both are fine.
		r.log.Info("delete for absent user", "external_id", ev.ExternalID)
		return &Result{Outcome: OutcomeNoop}, nil
	}
	r.log.Info("user deleted", "external_id", ev.ExternalID)
	return &Result{Outcome: OutcomeDeleted}, nil
}

func (r *Reconciler) apply(ctx context.Context, ev *Event) (*Result, error) {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		current, err := r.store.FindByExternalID(ctx, ev.ExternalID)
		if errors.Is(err, ErrNotFound) {
			created, err := r.store.Insert(ctx, newRecord(ev))
			if errors.Is(err, ErrConflict) {
				// A concurrent reconcile inserted the same external id
				// between our read and our insert. Their row wins; loop
				// around and merge into it.
				r.log.Info("insert lost creation race, retrying as update",
					"external_id", ev.ExternalID, "attempt", attempt+1)
				lastErr = err
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("insert user %s: %w", ev.ExternalID, err)
			}
			r.log.Info("user created", "external_id", ev.ExternalID, "kind", ev.Kind.String())
			return &Result{Outcome: OutcomeCreated, User: created}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("find user %s: %w", ev.ExternalID, err)
		}

		patch, changed := merge(current, ev)
		if !changed {
			return &Result{Outcome: OutcomeNoop, User: current}, nil
		}

		updated, err := r.store.UpdateByExternalID(ctx, ev.ExternalID, patch)
		if errors.Is(err, ErrNotFound) {
			// The record was deleted under us; re-evaluate from scratch.
			lastErr = err
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("update user %s: %w", ev.ExternalID, err)
		}
		r.log.Info("user updated", "external_id", ev.ExternalID, "kind", ev.Kind.String())
		return &Result{Outcome: OutcomeUpdated, User: updated}, nil
	}

	return nil, fmt.Errorf("reconcile %s: gave up after %d attempts: %w",
		ev.ExternalID, maxAttempts, lastErr)
}

// newRecord builds the row for a first observation: the merge policy
// applied against an empty baseline, with deterministic placeholders for
// the NOT NULL columns. Role is left to the column default; the reconciler
// never writes it.
func newRecord(ev *Event) *models.User {
	user := &models.User{
		ExternalID: ev.ExternalID,
		Email:      ev.Email,
		Username:   ev.Username,
	}
	if user.Email == "" {
		user.Email = PlaceholderEmail(ev.ExternalID)
	}
	if user.Username == "" {
		user.Username = PlaceholderUsername(ev.ExternalID)
	}
	if ev.AvatarURL != nil {
		user.AvatarURL = *ev.AvatarURL
	}
	return user
}

// merge computes the patch that moves current toward the event.
// Email and username only ever move to a non-empty value, so a sparse
// update can never regress a real value to a placeholder. Avatar is the
// exception: an explicitly-present empty value clears it.
func merge(current *models.User, ev *Event) (UserPatch, bool) {
	var patch UserPatch
	changed := false

	if ev.Email != "" && ev.Email != current.Email {
		email := ev.Email
		patch.Email = &email
		changed = true
	}
	if ev.Username != "" && ev.Username != current.Username {
		username := ev.Username
		patch.Username = &username
		changed = true
	}
	if ev.AvatarURL != nil && *ev.AvatarURL != current.AvatarURL {
		avatar := *ev.AvatarURL
		patch.AvatarURL = &avatar
		changed = true
	}

	return patch, changed
}
