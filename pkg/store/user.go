package store

import (
	"context"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
)

// UserStore is an interface for managing users.
type UserStore interface {
	CreateUser(ctx context.Context, h db.Handler, email, displayName, passwordHash string) (models.User, error)
	GetUserByID(ctx context.Context, h db.Handler, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, h db.Handler, email string) (models.User, error)
	FindUserByEmailFragment(ctx context.Context, h db.Handler, fragment string) (models.User, error)
	GetAllUsers(ctx context.Context, h db.Handler) ([]models.User, error)
	SetUserDisplayName(ctx context.Context, h db.Handler, id int64, displayName string) error
	SetUserPassword(ctx context.Context, h db.Handler, id int64, passwordHash string) error
}
