package service

import (
	"context"
	"errors"

	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/security"
	"github.com/payasyougo/payasyougo.go/lib/tokens"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthenticateUser validates a username/password pair against the
// stored credential hash.
func (svc *PayasyougoService) AuthenticateUser(ctx context.Context, username string, password string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("username = ?", username).Limit(1).Scan(ctx)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !security.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetOrCreateToken returns the user's auth token, creating one if none
// exists yet. The insert is conflict-aware on user_id so concurrent
// logins for the same user converge on a single row.
func (svc *PayasyougoService) GetOrCreateToken(ctx context.Context, userId int64) (*models.AuthToken, error) {
	token := &models.AuthToken{
		UserID: userId,
		Key:    tokens.GenerateTokenKey(),
	}
	_, err := svc.DB.NewInsert().
		Model(token).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	// the insert is a no-op when a token already exists, read back
	// whichever row won
	existing := &models.AuthToken{}
	err = svc.DB.NewSelect().Model(existing).Where("user_id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return existing, nil
}
