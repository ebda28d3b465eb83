package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-item-keeper/internal/crypto"
	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/policy"
	"github.com/MKhiriev/go-item-keeper/internal/store"
	"github.com/MKhiriev/go-item-keeper/internal/validators"
	"github.com/MKhiriev/go-item-keeper/models"
)

type userService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	engine         *policy.Engine
	validator      validators.Validator

	logger *logger.Logger
}

// NewUserService constructs a UserService. Every method asks the policy
// engine before it discloses or mutates an account.
func NewUserService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	engine *policy.Engine,
	validator validators.Validator,
	logger *logger.Logger,
) UserService {
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		engine:         engine,
		validator:      validator,
		logger:         logger,
	}
}

func (s *userService) ListUsers(ctx context.Context, principal models.User, page models.Page) (models.UserList, error) {
	if err := authorize(ctx, s.engine, principal, policy.ActionList, policy.Collection(policy.KindAccount)); err != nil {
		return models.UserList{}, err
	}

	users, err := s.userRepository.ListUsers(ctx, page)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.ListUsers").Msg("error listing users")
		return models.UserList{}, fmt.Errorf("error listing users: %w", err)
	}

	return users, nil
}

func (s *userService) GetUser(ctx context.Context, principal models.User, id int64) (models.User, error) {
	user, err := s.loadAuthorized(ctx, principal, policy.ActionRead, id)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// CreateUser lets a superuser create an account with any privileges.
func (s *userService) CreateUser(ctx context.Context, principal models.User, in models.UserCreate) (models.User, error) {
	if err := authorize(ctx, s.engine, principal, policy.ActionCreate, policy.Collection(policy.KindAccount)); err != nil {
		return models.User{}, err
	}

	if err := s.validator.Validate(ctx, in); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return createAccount(ctx, s.userRepository, s.hasher, in)
}

// UpdateUser applies patch to account id.
//
// Changing is_active or is_superuser additionally requires the manage
// action, which only superusers hold. A new password is hashed here and
// only the digest reaches the store.
func (s *userService) UpdateUser(ctx context.Context, principal models.User, id int64, patch models.UserPatch) (models.User, error) {
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	target, err := s.loadAuthorized(ctx, principal, policy.ActionUpdate, id)
	if err != nil {
		return models.User{}, err
	}

	if patch.TouchesPrivileges() {
		if err = authorize(ctx, s.engine, principal, policy.ActionManage, policy.Account(target.UserID)); err != nil {
			return models.User{}, err
		}
	}

	if patch.Password != nil {
		digest, hashErr := s.hasher.Hash(*patch.Password)
		if hashErr != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, hashErr)
		}
		patch.PasswordHash = &digest
		patch.Password = nil
	}

	updated, err := s.userRepository.UpdateUser(ctx, target.UserID, patch)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", id).Msg("error updating user")
		return models.User{}, fmt.Errorf("error updating user: %w", mapStoreNotFound(err))
	}

	return updated, nil
}

// UpdatePassword changes the principal's own password after checking the
// current one.
func (s *userService) UpdatePassword(ctx context.Context, principal models.User, in models.PasswordUpdate) error {
	if err := s.validator.Validate(ctx, in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := authorize(ctx, s.engine, principal, policy.ActionUpdate, policy.Account(principal.UserID)); err != nil {
		return err
	}

	if !s.hasher.Verify(in.CurrentPassword, principal.PasswordHash) {
		return ErrIncorrectPassword
	}
	if in.CurrentPassword == in.NewPassword {
		return ErrSamePassword
	}

	digest, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err = s.userRepository.UpdateUser(ctx, principal.UserID, models.UserPatch{PasswordHash: &digest}); err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", principal.UserID).Msg("error updating password")
		return fmt.Errorf("error updating password: %w", mapStoreNotFound(err))
	}

	return nil
}

// DeleteUser removes account id and the items it owns. A superuser may not
// delete its own account.
func (s *userService) DeleteUser(ctx context.Context, principal models.User, id int64) error {
	target, err := s.loadAuthorized(ctx, principal, policy.ActionDelete, id)
	if err != nil {
		return err
	}

	if err = s.userRepository.DeleteUser(ctx, target.UserID); err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", id).Msg("error deleting user")
		return fmt.Errorf("error deleting user: %w", mapStoreNotFound(err))
	}

	return nil
}

// loadAuthorized loads account id and authorizes action on it. A missing
// account is decided by the policy engine like any other target.
func (s *userService) loadAuthorized(ctx context.Context, principal models.User, action policy.Action, id int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, id)

	target := policy.Account(id)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		target = policy.Missing(policy.KindAccount)
	case err != nil:
		logger.FromContext(ctx).Err(err).Int64("user_id", id).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if err = authorize(ctx, s.engine, principal, action, target); err != nil {
		return models.User{}, err
	}

	return user, nil
}
