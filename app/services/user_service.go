package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"medisync/app/mirror"
	"medisync/app/models"
	"medisync/app/repo"
)

var (
	ErrInvalidRole        = errors.New("invalid role")
	ErrMissingCredentials = errors.New("username and password required")
)

type UserService struct {
	users  *repo.UserRepository
	mirror *mirror.Store
	drift  *DriftRecorder
}

func NewUserService(users *repo.UserRepository, m *mirror.Store, drift *DriftRecorder) *UserService {
	return &UserService{users: users, mirror: m, drift: drift}
}

// Register creates the user in the relational store, then mirrors it
// best-effort. A failed mirror write never fails registration.
func (s *UserService) Register(ctx context.Context, username, password, role string) (*models.User, mirror.Result, error) {
	if username == "" || password == "" {
		return nil, mirror.Result{}, ErrMissingCredentials
	}
	if role == "" {
		role = models.RolePatient
	}
	if !models.ValidRole(role) {
		return nil, mirror.Result{}, ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, mirror.Result{}, err
	}
	u := &models.User{Username: username, PasswordHash: string(hash), Role: role}
	if err := s.users.Create(u); err != nil {
		return nil, mirror.Result{}, err
	}
	res := s.mirror.InsertUser(ctx, u.Username, u.PasswordHash, u.Role)
	if !res.OK {
		s.drift.record("user", "insert", u.Username, res)
	}
	return u, res, nil
}

func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	count, err := s.users.CountByUsername(username)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, _, err = s.Register(ctx, username, password, models.RoleAdmin)
	return err
}

func (s *UserService) ValidateCredentials(username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, errors.New("invalid credentials")
	}
	return u, nil
}

func (s *UserService) All() ([]models.User, error) { return s.users.All() }
