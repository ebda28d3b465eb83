package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/policy"
	"github.com/MKhiriev/go-item-keeper/internal/store"
	"github.com/MKhiriev/go-item-keeper/models"
)

// authorize asks engine and turns a denial into an error wrapping
// ErrForbidden or ErrNotFound.
func authorize(ctx context.Context, engine *policy.Engine, principal models.User, action policy.Action, target policy.Target) error {
	decision := engine.Authorize(principal, action, target)
	if decision.Allowed {
		return nil
	}

	logger.FromContext(ctx).Info().
		Int64("principal_id", principal.UserID).
		Stringer("action", action).
		Stringer("kind", target.Kind).
		Int64("target_id", target.ID).
		Str("rule", decision.Rule).
		Msg("access denied")

	return fmt.Errorf("%w: %s %s", decision.Err(), action, target.Kind)
}

// mapStoreNotFound converts a row that vanished between the policy check and
// the write into ErrNotFound.
func mapStoreNotFound(err error) error {
	switch {
	case errors.Is(err, store.ErrNoUserWasFound),
		errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrOwnerNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return err
	}
}
