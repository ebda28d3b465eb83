package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-item-keeper/internal/config"
	"github.com/MKhiriev/go-item-keeper/internal/crypto"
	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/store"
	"github.com/MKhiriev/go-item-keeper/internal/utils"
	"github.com/MKhiriev/go-item-keeper/internal/validators"
	"github.com/MKhiriev/go-item-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It verifies credentials with a PasswordHasher, issues and parses tokens
// with a TokenCodec and loads principals from a UserRepository.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	hasher    crypto.PasswordHasher
	codec     *utils.TokenCodec
	validator validators.Validator

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	// dummyDigest is a digest of a random secret, produced by hasher on
	// first use. An unknown email is verified against it so that a failed
	// lookup costs as much as a wrong password at the configured cost.
	dummyOnce   sync.Once
	dummyDigest string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	codec *utils.TokenCodec,
	validator validators.Validator,
	tokenDuration time.Duration,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		codec:          codec,
		validator:      validator,
		tokenDuration:  tokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new account from a public signup.
//
// The account is always active and never a superuser, whatever the payload
// says. Returns ErrInvalidDataProvided for an invalid payload and
// store.ErrEmailAlreadyExists for a taken email.
func (a *authService) RegisterUser(ctx context.Context, in models.UserCreate) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, in); err != nil {
		log.Err(err).Str("email", in.Email).Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	in.IsActive = nil
	in.IsSuperuser = false

	return createAccount(ctx, a.userRepository, a.hasher, in)
}

// Authenticate looks up the account by email and verifies the password.
//
// Unknown email and wrong password both return ErrInvalidCredentials and log
// the same message. The active flag is not checked here.
func (a *authService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.Verify(password, a.unknownUserDigest(ctx))
		log.Info().Str("func", "*authService.Authenticate").Msg("invalid credentials")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		log.Info().Str("func", "*authService.Authenticate").Msg("invalid credentials")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (a *authService) unknownUserDigest(ctx context.Context) string {
	a.dummyOnce.Do(func() {
		digest, err := a.hasher.Hash(rand.Text())
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*authService.unknownUserDigest").Msg("error hashing dummy secret")
			return
		}
		a.dummyDigest = digest
	})
	return a.dummyDigest
}

// Login authenticates the pair, rejects inactive accounts with
// ErrAccountInactive and issues a token for the account.
func (a *authService) Login(ctx context.Context, email, password string) (models.Token, error) {
	user, err := a.Authenticate(ctx, email, password)
	if err != nil {
		return models.Token{}, err
	}

	if !user.IsActive {
		logger.FromContext(ctx).Info().
			Int64("user_id", user.UserID).
			Msg("login attempt for inactive account")
		return models.Token{}, ErrAccountInactive
	}

	return a.CreateToken(ctx, user)
}

// CreateToken issues a signed token for the given user that expires after
// the configured duration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := a.codec.Issue(user.UserID, a.tokenDuration)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw token string.
//
// Any codec failure kind is returned as ErrUnauthenticated wrapping the
// specific kind (malformed, bad signature, expired), so callers may still
// tell them apart with errors.Is.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := a.codec.Parse(tokenString)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	return token, nil
}

// ResolvePrincipal parses the token and loads its subject.
//
// A missing subject is ErrUnauthenticated, not a not-found, so a token
// cannot be used to discover which account ids exist. A deactivated account is
// ErrAccountInactive on every call: it is the only way to revoke a token.
func (a *authService) ResolvePrincipal(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		log.Debug().Err(err).Str("func", "*authService.ResolvePrincipal").Msg("token rejected")
		return models.User{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Int64("user_id", token.UserID).Msg("token subject no longer exists")
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ResolvePrincipal").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if !user.IsActive {
		log.Info().Int64("user_id", user.UserID).Msg("token of inactive account")
		return models.User{}, ErrAccountInactive
	}

	return user, nil
}

// BootstrapSuperuser creates the configured superuser once.
//
// If an account with the email already exists it is returned as is, even
// when it is not a superuser. A disabled configuration returns an empty
// account and no error.
func (a *authService) BootstrapSuperuser(ctx context.Context, su config.Superuser) (models.User, error) {
	log := logger.FromContext(ctx)

	if !su.Enabled() {
		return models.User{}, nil
	}

	existing, err := a.userRepository.FindUserByEmail(ctx, su.Email)
	if err == nil {
		log.Debug().Int64("user_id", existing.UserID).Msg("superuser already exists")
		return existing, nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("superuser search failed: %w", err)
	}

	username := su.Username
	if username == "" {
		username = su.Email
	}

	in := models.UserCreate{
		Email:       su.Email,
		Username:    username,
		Password:    su.Password,
		IsSuperuser: true,
	}
	if err = a.validator.Validate(ctx, in); err != nil {
		return models.User{}, fmt.Errorf("%w: superuser: %w", ErrInvalidDataProvided, err)
	}

	created, err := createAccount(ctx, a.userRepository, a.hasher, in)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		// created concurrently by another instance
		return a.userRepository.FindUserByEmail(ctx, su.Email)
	}
	if err != nil {
		return models.User{}, err
	}

	log.Info().Int64("user_id", created.UserID).Msg("superuser created")
	return created, nil
}

// createAccount hashes the password and stores the account in one insert.
// IsActive defaults to true.
func createAccount(ctx context.Context, users store.UserRepository, hasher crypto.PasswordHasher, in models.UserCreate) (models.User, error) {
	log := logger.FromContext(ctx)

	digest, err := hasher.Hash(in.Password)
	if err != nil {
		log.Err(err).Str("func", "createAccount").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	created, err := users.CreateUser(ctx, models.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: digest,
		IsActive:     active,
		IsSuperuser:  in.IsSuperuser,
	})
	if err != nil {
		log.Err(err).Str("email", in.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}
