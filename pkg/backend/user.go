package backend

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/db/models"
	"github.com/flowpro/flowpro/pkg/proto"
	"github.com/go-playground/validator/v10"
)

const (
	// MinPasswordLength is the minimum length of a user password.
	MinPasswordLength = 6
	// MaxPasswordLength is the maximum length of a user password in bytes.
	// bcrypt only accepts 72 bytes, salt included.
	MaxPasswordLength = 72 - len(saltySalt)
	// MaxDisplayNameLength is the maximum length of a display name in runes.
	MaxDisplayNameLength = 100
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateEmail checks that email is a well-formed address.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return proto.ValidationError("invalid email %q", email)
	}
	return nil
}

// ValidatePassword checks that password fits the length bounds.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return proto.ValidationError("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return proto.ValidationError("password must be at most %d bytes", MaxPasswordLength)
	}
	return nil
}

func validateDisplayName(name string) error {
	if utf8.RuneCountInString(name) > MaxDisplayNameLength {
		return proto.ValidationError("display name must be at most %d characters", MaxDisplayNameLength)
	}
	return nil
}

// CreateUser creates a new user.
func (d *Backend) CreateUser(ctx context.Context, email string, opts proto.UserOptions) (proto.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(opts.DisplayName)
	if err := validateDisplayName(name); err != nil {
		return nil, err
	}

	var hash string
	if opts.Password != "" {
		if err := ValidatePassword(opts.Password); err != nil {
			return nil, err
		}
		var err error
		hash, err = HashPassword(opts.Password)
		if err != nil {
			return nil, err
		}
	}

	var m models.User
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.CreateUser(ctx, tx, email, name, hash)
		return db.WrapError(err)
	}); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, proto.ErrEmailTaken
		}
		return nil, err
	}

	d.logger.Info("user created", "user", m.ID)
	return &user{user: m}, nil
}

// UserByID finds a user by ID. Users are served from the cache when present.
func (d *Backend) UserByID(ctx context.Context, id int64) (proto.User, error) {
	if u, ok := d.cache.Get(id); ok {
		return u, nil
	}

	m, err := d.store.GetUserByID(ctx, d.db, id)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		d.logger.Error("error finding user", "id", id, "err", err)
		return nil, err
	}

	u := &user{user: m}
	d.cache.Set(id, u)
	return u, nil
}

// UserByEmail finds a user by email address.
func (d *Backend) UserByEmail(ctx context.Context, email string) (proto.User, error) {
	m, err := d.store.FindUserByEmail(ctx, d.db, email)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		return nil, err
	}

	return &user{user: m}, nil
}

// FindUserByEmailFragment returns the user whose email contains fragment,
// ignoring case. When several users match, the earliest registered one is
// returned.
func (d *Backend) FindUserByEmailFragment(ctx context.Context, fragment string) (proto.User, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, proto.ValidationError("email is required")
	}

	m, err := d.store.FindUserByEmailFragment(ctx, d.db, fragment)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		return nil, err
	}

	return &user{user: m}, nil
}

// Users returns all users.
func (d *Backend) Users(ctx context.Context) ([]proto.User, error) {
	ms, err := d.store.GetAllUsers(ctx, d.db)
	if err != nil {
		return nil, db.WrapError(err)
	}

	users := make([]proto.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, &user{user: m})
	}

	return users, nil
}

// UpdateProfile changes the actor's display name and password. Both fields
// are validated before anything is written, and both are written in one
// transaction.
func (d *Backend) UpdateProfile(ctx context.Context, actor proto.User, upd proto.ProfileUpdate) (proto.User, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	var name string
	if upd.DisplayName != nil {
		name = strings.TrimSpace(*upd.DisplayName)
		if err := validateDisplayName(name); err != nil {
			return nil, err
		}
	}

	var hash string
	if upd.Password != nil {
		if err := ValidatePassword(*upd.Password); err != nil {
			return nil, err
		}
		var err error
		hash, err = HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
	}

	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if upd.DisplayName != nil {
			if err := d.store.SetUserDisplayName(ctx, tx, actor.ID(), name); err != nil {
				return db.WrapError(err)
			}
		}
		if upd.Password != nil {
			if err := d.store.SetUserPassword(ctx, tx, actor.ID(), hash); err != nil {
				return db.WrapError(err)
			}
		}
		return nil
	}); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		return nil, err
	}

	d.cache.Delete(actor.ID())
	return d.UserByID(ctx, actor.ID())
}

// SetPassword changes a user's password.
func (d *Backend) SetPassword(ctx context.Context, id int64, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return db.WrapError(d.store.SetUserPassword(ctx, tx, id, hash))
	}); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrUserNotFound
		}
		return err
	}

	d.cache.Delete(id)
	return nil
}

type user struct {
	user models.User
}

var _ proto.User = (*user)(nil)

// ID implements proto.User.
func (u *user) ID() int64 {
	return u.user.ID
}

// Email implements proto.User.
func (u *user) Email() string {
	return u.user.Email
}

// DisplayName implements proto.User.
func (u *user) DisplayName() string {
	return u.user.DisplayName.String
}

// Password implements proto.User.
func (u *user) Password() string {
	if u.user.Password.Valid {
		return u.user.Password.String
	}

	return ""
}

// CreatedAt implements proto.User.
func (u *user) CreatedAt() time.Time {
	return u.user.CreatedAt
}
