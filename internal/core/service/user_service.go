package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
	"github.com/corpfin/reimbursement-system/internal/core/ports"
	"github.com/corpfin/reimbursement-system/internal/core/validation"
)

// UserService enforces all user invariants: field validation, username/email
// uniqueness, credential hashing, and password scrubbing via the public
// projection. Repositories trust their inputs.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}

	out := make([]domain.PublicUser, len(users))
	for i := range users {
		out[i] = users[i].Public()
	}
	return out, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*domain.PublicUser, error) {
	if !validation.IsValidID(id) {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrBadRequest)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pub := user.Public()
	return &pub, nil
}

// GetUserByUniqueKey retrieves a single user by any recognized field. The id
// field delegates to the id-based path so both fetch variants share one
// validation pipeline.
func (s *UserService) GetUserByUniqueKey(ctx context.Context, lookup ports.Lookup) (*domain.PublicUser, error) {
	if !domain.IsUserField(lookup.Field) {
		return nil, fmt.Errorf("%w: unrecognized user field %q", domain.ErrBadRequest, lookup.Field)
	}

	if lookup.Field == domain.UserIDField {
		id, err := strconv.ParseInt(lookup.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid user id", domain.ErrBadRequest)
		}
		return s.GetUserByID(ctx, id)
	}

	if !validation.AllNonEmpty(lookup.Value) {
		return nil, fmt.Errorf("%w: empty lookup value", domain.ErrBadRequest)
	}

	user, err := s.repo.GetByUniqueKey(ctx, lookup.Field, lookup.Value)
	if err != nil {
		return nil, err
	}

	pub := user.Public()
	return &pub, nil
}

func (s *UserService) GetAllUsersByRole(ctx context.Context, role string) ([]domain.PublicUser, error) {
	if !validation.AllNonEmpty(role) {
		return nil, fmt.Errorf("%w: empty role", domain.ErrBadRequest)
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrBadRequest, role)
	}

	users, err := s.repo.GetAllByField(ctx, "role_name", role)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}

	out := make([]domain.PublicUser, len(users))
	for i := range users {
		out[i] = users[i].Public()
	}
	return out, nil
}

// AddNewUser validates the candidate, checks username availability before
// email availability, hashes the credential, and persists.
func (s *UserService) AddNewUser(ctx context.Context, input ports.NewUserInput) (*domain.PublicUser, error) {
	if !validation.AllNonEmpty(input.Username, input.Password, input.FirstName, input.LastName, input.Email, input.Role) {
		return nil, fmt.Errorf("%w: invalid property values found in provided user", domain.ErrBadRequest)
	}
	if !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrBadRequest, input.Role)
	}

	if err := s.checkUsernameAvailable(ctx, input.Username); err != nil {
		return nil, err
	}
	if err := s.checkEmailAvailable(ctx, input.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	persisted, err := s.repo.Save(ctx, &domain.User{
		Username:  input.Username,
		Password:  string(hash),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Role:      input.Role,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to persist user")
		return nil, err
	}

	s.logger.Info().Int64("user_id", persisted.ID).Str("username", persisted.Username).Msg("user created")

	pub := persisted.Public()
	return &pub, nil
}

// UpdateUser re-validates availability but treats values unchanged from the
// existing record as available, so a user never collides with itself.
func (s *UserService) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (bool, error) {
	if !validation.IsValidID(input.ID) {
		return false, fmt.Errorf("%w: invalid user id", domain.ErrBadRequest)
	}
	if !validation.AllNonEmpty(input.Username, input.Password, input.FirstName, input.LastName, input.Email, input.Role) {
		return false, fmt.Errorf("%w: invalid property values found in provided user", domain.ErrBadRequest)
	}
	if !domain.ValidRole(input.Role) {
		return false, fmt.Errorf("%w: unknown role %q", domain.ErrBadRequest, input.Role)
	}

	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return false, err
	}

	if existing.Username != input.Username {
		if err := s.checkUsernameAvailable(ctx, input.Username); err != nil {
			return false, err
		}
	}
	if existing.Email != input.Email {
		if err := s.checkEmailAvailable(ctx, input.Email); err != nil {
			return false, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	ok, err := s.repo.Update(ctx, &domain.User{
		ID:        input.ID,
		Username:  input.Username,
		Password:  string(hash),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Role:      input.Role,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", input.ID).Msg("failed to update user")
		return false, err
	}

	s.logger.Info().Int64("user_id", input.ID).Msg("user updated")
	return ok, nil
}

// DeleteUserByID accepts exactly one lookup key, which must be the identity
// field carrying a valid id. Deletion is unconditional.
func (s *UserService) DeleteUserByID(ctx context.Context, lookup ports.Lookup) (bool, error) {
	if !domain.IsUserField(lookup.Field) {
		return false, fmt.Errorf("%w: unrecognized user field %q", domain.ErrBadRequest, lookup.Field)
	}

	id, err := strconv.ParseInt(lookup.Value, 10, 64)
	if err != nil || !validation.IsValidID(id) {
		return false, fmt.Errorf("%w: invalid user id", domain.ErrBadRequest)
	}

	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return false, err
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return true, nil
}

// Authenticate verifies a credential pair. Absence of the user and a hash
// mismatch are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.PublicUser, error) {
	if !validation.AllNonEmpty(username, password) {
		return nil, fmt.Errorf("%w: given username and/or password are not valid strings", domain.ErrBadRequest)
	}

	user, err := s.repo.GetByUniqueKey(ctx, "username", username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	pub := user.Public()
	return &pub, nil
}

// Availability checks interpret a not-found failure as "available" and a
// successful find as "taken". Any other storage error propagates unchanged
// so a flaky store surfaces as a server fault, not a conflict.
func (s *UserService) checkUsernameAvailable(ctx context.Context, username string) error {
	_, err := s.repo.GetByUniqueKey(ctx, "username", username)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	case err != nil:
		return err
	default:
		return domain.ErrUsernameTaken
	}
}

func (s *UserService) checkEmailAvailable(ctx context.Context, email string) error {
	_, err := s.repo.GetByUniqueKey(ctx, "email", email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	case err != nil:
		return err
	default:
		return domain.ErrEmailTaken
	}
}
