package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/daybook/internal/auth"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/models"
)

type accountService struct {
	gate   Authenticator
	users  repository.UserRepository
	logger *logger.Logger
}

func NewAccountService(gate Authenticator, users repository.UserRepository, log *logger.Logger) AccountService {
	return &accountService{gate: gate, users: users, logger: log}
}

func (s *accountService) State() auth.State {
	return s.gate.State()
}

// CreateAccount creates the device account and unlocks it. When only the
// sync enqueue failed the account exists and the user is returned with the
// error.
func (s *accountService) CreateAccount(ctx context.Context, birthDate time.Time, passphrase string) (models.User, error) {
	user, err := s.gate.CreateAccount(ctx, birthDate, passphrase)
	if err != nil {
		return user, fail(s.logger, CodeCreateAccount, "*accountService.CreateAccount", err)
	}

	s.logger.Info().Str("func", "*accountService.CreateAccount").Str("user_id", user.ID).Msg("account created")
	return user, nil
}

func (s *accountService) Login(ctx context.Context, passphrase string) error {
	if err := s.gate.Authenticate(ctx, passphrase); err != nil {
		return fail(s.logger, CodeLogin, "*accountService.Login", err)
	}
	return nil
}

func (s *accountService) Logout() {
	s.gate.Logout()
}

func (s *accountService) Current(ctx context.Context) (models.User, error) {
	user, err := s.users.GetCurrent(ctx)
	if err != nil {
		return models.User{}, fail(s.logger, CodeGetAccount, "*accountService.Current", err)
	}
	return user, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, patch models.UserUpdate) (models.User, error) {
	user, err := s.users.Update(ctx, patch)
	if err == nil || errors.Is(err, repository.ErrEnqueueFailed) {
		s.gate.RefreshUser(user)
	}
	if err != nil {
		return user, fail(s.logger, CodeUpdateAccount, "*accountService.UpdateProfile", err)
	}
	return user, nil
}

// DeleteAccount wipes every local record and returns the device to the
// no-user state.
func (s *accountService) DeleteAccount(ctx context.Context) error {
	err := s.users.DeleteAccount(ctx)
	if err != nil && !errors.Is(err, repository.ErrEnqueueFailed) {
		return fail(s.logger, CodeDeleteAccount, "*accountService.DeleteAccount", err)
	}

	s.gate.Forget()
	if err != nil {
		return fail(s.logger, CodeDeleteAccount, "*accountService.DeleteAccount", err)
	}

	s.logger.Info().Str("func", "*accountService.DeleteAccount").Msg("account deleted")
	return nil
}
