package database

import (
	"context"
	"strings"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/store"
)

type userStore struct{}

var _ store.UserStore = (*userStore)(nil)

// CreateUser implements store.UserStore.
func (*userStore) CreateUser(ctx context.Context, h db.Handler, email, displayName, passwordHash string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	query := h.Rebind(`
		INSERT INTO
		  users (email, display_name, password, updated_at)
		VALUES
		  (?, ?, ?, CURRENT_TIMESTAMP) RETURNING *
	`)
	var user models.User
	err := h.GetContext(ctx, &user, query, email, nullString(displayName), nullString(passwordHash))
	return user, err //nolint:wrapcheck
}

// GetUserByID implements store.UserStore.
func (*userStore) GetUserByID(ctx context.Context, h db.Handler, id int64) (models.User, error) {
	var user models.User
	err := h.GetContext(ctx, &user, h.Rebind(`SELECT * FROM users WHERE id = ?`), id)
	return user, err //nolint:wrapcheck
}

// FindUserByEmail implements store.UserStore.
func (*userStore) FindUserByEmail(ctx context.Context, h db.Handler, email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	err := h.GetContext(ctx, &user, h.Rebind(`SELECT * FROM users WHERE email = ?`), email)
	return user, err //nolint:wrapcheck
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindUserByEmailFragment implements store.UserStore. The fragment matches
// anywhere in the email, case-insensitively. When several users match, the
// one with the lowest id is returned.
func (*userStore) FindUserByEmailFragment(ctx context.Context, h db.Handler, fragment string) (models.User, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(fragment)) + "%"
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  users
		WHERE
		  LOWER(email) LIKE ? ESCAPE '\'
		ORDER BY
		  id ASC
		LIMIT 1
	`)
	var user models.User
	err := h.GetContext(ctx, &user, query, pattern)
	return user, err //nolint:wrapcheck
}

// GetAllUsers implements store.UserStore.
func (*userStore) GetAllUsers(ctx context.Context, h db.Handler) ([]models.User, error) {
	var users []models.User
	err := h.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY id ASC`)
	return users, err //nolint:wrapcheck
}

// SetUserDisplayName implements store.UserStore.
func (*userStore) SetUserDisplayName(ctx context.Context, h db.Handler, id int64, displayName string) error {
	query := h.Rebind(`UPDATE users SET display_name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	return affected(h.ExecContext(ctx, query, nullString(displayName), id))
}

// SetUserPassword implements store.UserStore.
func (*userStore) SetUserPassword(ctx context.Context, h db.Handler, id int64, passwordHash string) error {
	query := h.Rebind(`UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	return affected(h.ExecContext(ctx, query, nullString(passwordHash), id))
}
