package service

import (
	"context"
	"fmt"

	"github.com/alimikegami/pharmacy-order-tracker/config"
	"github.com/alimikegami/pharmacy-order-tracker/internal/domain"
	"github.com/alimikegami/pharmacy-order-tracker/internal/dto"
	"github.com/alimikegami/pharmacy-order-tracker/internal/repository"
	"github.com/alimikegami/pharmacy-order-tracker/pkg/errs"
	"github.com/alimikegami/pharmacy-order-tracker/pkg/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/gomail.v2"
)

type UserService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (respPayload dto.AuthResponse, err error)
	Login(ctx context.Context, payload dto.LoginRequest) (respPayload dto.AuthResponse, err error)
}

type UserServiceImpl struct {
	repo   repository.UserRepository
	config config.Config
}

func CreateNewUserService(repo repository.UserRepository, config config.Config) UserService {
	return &UserServiceImpl{repo: repo, config: config}
}

func (s *UserServiceImpl) Register(ctx context.Context, payload dto.RegisterRequest) (respPayload dto.AuthResponse, err error) {
	if payload.Email == "" || payload.Password == "" || payload.Name == "" {
		return respPayload, errs.ErrMissingUserFields
	}

	user, err := s.repo.GetUserByEmail(ctx, payload.Email)
	if err != nil {
		return
	}

	if user.ID != 0 {
		return respPayload, errs.ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return respPayload, err
	}

	userEnt := domain.User{
		Name:           payload.Name,
		Email:          payload.Email,
		HashedPassword: string(hash),
		ExternalID:     ulid.Make().String(),
	}

	id, err := s.repo.AddUser(ctx, userEnt)
	if err != nil {
		return respPayload, err
	}

	token, err := utils.CreateJWTToken(id, payload.Email, s.config.JWTSecret)
	if err != nil {
		return
	}

	s.sendWelcomeEmail(payload.Email, payload.Name)

	respPayload.Token = token
	respPayload.User = dto.UserResponse{
		ID:         id,
		ExternalID: userEnt.ExternalID,
		Email:      payload.Email,
		Name:       payload.Name,
	}

	return
}

func (s *UserServiceImpl) Login(ctx context.Context, payload dto.LoginRequest) (respPayload dto.AuthResponse, err error) {
	if payload.Email == "" || payload.Password == "" {
		return respPayload, errs.ErrMissingCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, payload.Email)
	if err != nil {
		return
	}

	// same error for an unknown email and a wrong password
	if user.ID == 0 {
		return respPayload, errs.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(payload.Password))
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
		return respPayload, errs.ErrInvalidCredentials
	}

	token, err := utils.CreateJWTToken(user.ID, user.Email, s.config.JWTSecret)
	if err != nil {
		return
	}

	respPayload.Token = token
	respPayload.User = dto.UserResponse{
		ID:         user.ID,
		ExternalID: user.ExternalID,
		Email:      user.Email,
		Name:       user.Name,
	}

	return
}

// sendWelcomeEmail is best effort; registration never fails on SMTP trouble.
func (s *UserServiceImpl) sendWelcomeEmail(email string, name string) {
	if s.config.SMTPConfig.Host == "" {
		return
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.config.SMTPConfig.Sender)
	message.SetHeader("To", email)
	message.SetHeader("Subject", "Welcome to the pharmacy order tracker")
	message.SetBody("text/plain", fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now sign in and start tracking orders.", name))

	if err := utils.SendEmail(message, s.config.SMTPConfig.Sender, s.config.SMTPConfig.Password, s.config.SMTPConfig.Host, s.config.SMTPConfig.Port); err != nil {
		log.Error().Err(err).Str("component", "sendWelcomeEmail").Msg("")
	}
}
