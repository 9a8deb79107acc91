package backend_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/proto"
	"github.com/matryer/is"
)

func TestCreateUser(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)

	u, err := be.CreateUser(ctx, "  Alice@Example.COM ", proto.UserOptions{DisplayName: "Alice"})
	is.NoErr(err)
	is.Equal(u.Email(), "alice@example.com")
	is.Equal(u.DisplayName(), "Alice")
	is.Equal(u.Password(), "")

	_, err = be.CreateUser(ctx, "alice@example.com", proto.UserOptions{})
	is.True(errors.Is(err, proto.ErrEmailTaken))

	_, err = be.CreateUser(ctx, "not-an-email", proto.UserOptions{})
	is.True(errors.Is(err, proto.ErrValidation))

	_, err = be.CreateUser(ctx, "bob@example.com", proto.UserOptions{Password: "123"})
	is.True(errors.Is(err, proto.ErrValidation))

	got, err := be.UserByID(ctx, u.ID())
	is.NoErr(err)
	is.Equal(got.Email(), u.Email())

	_, err = be.UserByID(ctx, 9999)
	is.True(errors.Is(err, proto.ErrUserNotFound))

	users, err := be.Users(ctx)
	is.NoErr(err)
	is.Equal(len(users), 1)
}

func TestUpdateProfile(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := createUser(t, ctx, be, "alice@example.com", "Alice")

	// Warm the cache.
	_, err := be.UserByID(ctx, u.ID())
	is.NoErr(err)

	name, password := "Alice Liddell", "wonderland"
	updated, err := be.UpdateProfile(ctx, u, proto.ProfileUpdate{DisplayName: &name, Password: &password})
	is.NoErr(err)
	is.Equal(updated.DisplayName(), "Alice Liddell")

	got, err := be.UserByID(ctx, u.ID())
	is.NoErr(err)
	is.Equal(got.DisplayName(), "Alice Liddell")
	_, err = be.Authenticate(ctx, "alice@example.com", "wonderland")
	is.NoErr(err)

	_, err = be.UpdateProfile(ctx, nil, proto.ProfileUpdate{DisplayName: &name})
	is.True(errors.Is(err, proto.ErrUnauthenticated))
}

func TestUpdateProfileAllOrNothing(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := createUser(t, ctx, be, "alice@example.com", "Alice")

	name, long := "Mallory", strings.Repeat("a", backend.MaxPasswordLength+1)
	_, err := be.UpdateProfile(ctx, u, proto.ProfileUpdate{DisplayName: &name, Password: &long})
	is.True(errors.Is(err, proto.ErrValidation))

	got, err := be.UserByID(ctx, u.ID())
	is.NoErr(err)
	is.Equal(got.DisplayName(), "Alice")
}

func TestPasswordLength(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)

	// bcrypt rejects anything over 72 bytes, salt included.
	for _, n := range []int{60, 64, 100} {
		_, err := be.CreateUser(ctx, "bob@example.com", proto.UserOptions{Password: strings.Repeat("a", n)})
		is.True(errors.Is(err, proto.ErrValidation))
	}

	longest := strings.Repeat("a", backend.MaxPasswordLength)
	u, err := be.CreateUser(ctx, "bob@example.com", proto.UserOptions{Password: longest})
	is.NoErr(err)
	_, err = be.Authenticate(ctx, "bob@example.com", longest)
	is.NoErr(err)

	err = be.SetPassword(ctx, u.ID(), longest+"a")
	is.True(errors.Is(err, proto.ErrValidation))
}

func TestFindUserByEmailFragment(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	first := createUser(t, ctx, be, "jane.doe@example.com", "Jane")
	createUser(t, ctx, be, "john.doe@example.com", "John")
	createUser(t, ctx, be, "max_power@corp.io", "Max")

	u, err := be.FindUserByEmailFragment(ctx, "DOE@EXAMPLE")
	is.NoErr(err)
	is.Equal(u.ID(), first.ID()) // earliest match wins

	u, err = be.FindUserByEmailFragment(ctx, "john")
	is.NoErr(err)
	is.Equal(u.Email(), "john.doe@example.com")

	// LIKE wildcards in the fragment are matched literally.
	_, err = be.FindUserByEmailFragment(ctx, "%")
	is.True(errors.Is(err, proto.ErrUserNotFound))
	_, err = be.FindUserByEmailFragment(ctx, "jane_doe")
	is.True(errors.Is(err, proto.ErrUserNotFound))
	u, err = be.FindUserByEmailFragment(ctx, "max_power")
	is.NoErr(err)
	is.Equal(u.Email(), "max_power@corp.io")

	_, err = be.FindUserByEmailFragment(ctx, "  ")
	is.True(errors.Is(err, proto.ErrValidation))

	_, err = be.FindUserByEmailFragment(ctx, "nobody")
	is.True(errors.Is(err, proto.ErrUserNotFound))
}
