package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"laptop-ledger/internal/apperrors"
	"laptop-ledger/internal/auth"
	"laptop-ledger/internal/models"
	"laptop-ledger/internal/store"
)

var errBadCredentials = fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)

type UserService struct {
	*env
}

// Authenticate checks a username and password. Accounts still holding a
// plaintext password are accepted once and rewritten with a bcrypt hash.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	users, err := s.repos.Users.GetAll(ctx)
	if err != nil {
		return nil, storageError("load users", err)
	}
	i := slices.IndexFunc(users, func(u models.User) bool { return u.Username == username })
	if i < 0 {
		return nil, errBadCredentials
	}
	user := users[i]

	if user.PasswordHash != "" {
		if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
			return nil, errBadCredentials
		}
		return &user, nil
	}

	if err := auth.CheckLegacyPassword(user.Password, password); err != nil {
		return nil, errBadCredentials
	}
	if err := s.upgradePassword(ctx, user.ID, password); err != nil {
		// The login itself is valid; the upgrade is retried next time.
		log.Printf("⚠️ could not upgrade password for %s: %v", user.Username, err)
	}
	user.Password = ""
	return &user, nil
}

func (s *UserService) upgradePassword(ctx context.Context, id, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.repos.Update(ctx, func(tx store.Tx) error {
		users, err := s.repos.Users.Load(tx)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
		}
		users[i].PasswordHash = hash
		users[i].Password = ""
		return s.repos.Users.Put(tx, users)
	})
}

// Register creates a user with a hashed password.
func (s *UserService) Register(ctx context.Context, username, name, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := required("username", username); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, invalid("password must be at least 6 characters")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, storageError("hash password", err)
	}
	user := models.User{
		ID:           s.newID(),
		Username:     username,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    s.timestamp(),
	}
	err = s.repos.Update(ctx, func(tx store.Tx) error {
		users, err := s.repos.Users.Load(tx)
		if err != nil {
			return err
		}
		if slices.ContainsFunc(users, func(u models.User) bool { return u.Username == username }) {
			return fmt.Errorf("%w: user %s", apperrors.ErrConflict, username)
		}
		return s.repos.Users.Put(tx, append(users, user))
	})
	if err != nil {
		return nil, storageError("register user", err)
	}
	return &user, nil
}

// Get looks a user up by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	users, err := s.repos.Users.GetAll(ctx)
	if err != nil {
		return nil, storageError("load users", err)
	}
	i := slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}
	return &users[i], nil
}
