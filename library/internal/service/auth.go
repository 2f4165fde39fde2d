package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Astemirdum/library-ledger/library/internal/errs"
	"github.com/Astemirdum/library-ledger/library/internal/model"
	"github.com/Astemirdum/library-ledger/pkg/auth"
)

const registeredMessage = "User registered successfully"

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error) {
	_, err := s.repo.GetUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return model.RegisterResponse{}, errs.ErrUsernameExists
	case !errors.Is(err, errs.ErrNotFound):
		return model.RegisterResponse{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return model.RegisterResponse{}, errs.ErrPasswordTooLong
		}
		return model.RegisterResponse{}, err
	}
	user, err := s.repo.CreateUser(ctx, model.User{Username: req.Username, Password: hash})
	if err != nil {
		return model.RegisterResponse{}, err
	}
	return model.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Message:  registeredMessage,
	}, nil
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.Token, error) {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Token{}, errs.ErrInvalidCredential
		}
		return model.Token{}, err
	}
	if !auth.ComparePassword(user.Password, req.Password) {
		return model.Token{}, errs.ErrInvalidCredential
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return model.Token{}, errors.Wrap(err, "issue token")
	}
	return model.Token{AccessToken: token}, nil
}
