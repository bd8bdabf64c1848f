package usecase

import (
	"context"
	"errors"
	"strings"

	"notekeep/model"
	"notekeep/repository"
	"notekeep/services"
)

// ErrEmailTaken is returned when a signup reuses an existing email.
var ErrEmailTaken = errors.New("email already in use")

type UserService struct {
	UsersRepo *repository.UserRepo
}

// CreateUser registers a new account. The password is hashed before the user
// ever reaches the repository; the clear text is never stored.
func (svc *UserService) CreateUser(ctx context.Context, pseudo, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	pseudo = strings.TrimSpace(pseudo)

	existing, err := svc.UsersRepo.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Pseudo:   pseudo,
		Email:    email,
		Password: hashed,
	}

	if err := svc.UsersRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate resolves an email/password pair to a user, or nil when either
// is wrong. The caller cannot tell which one failed.
func (svc *UserService) Authenticate(email, password string) (*model.User, error) {
	user, err := svc.UsersRepo.FindUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	ok, err := services.VerifyPassword(user.Password, password)
	if err != nil || !ok {
		return nil, nil
	}

	return user, nil
}
