package backend_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/flowpro/flowpro/pkg/backend"
	"github.com/flowpro/flowpro/pkg/proto"
	"github.com/matryer/is"
)

func ptr[T any](v T) *T {
	return &v
}

func TestCreateProject(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := createUser(t, ctx, be, "alice@example.com", "Alice")

	p, err := be.CreateProject(ctx, alice, proto.ProjectOptions{Name: " Website "})
	is.NoErr(err)
	is.Equal(p.Name(), "Website")
	is.Equal(p.UserID(), alice.ID())
	is.Equal(p.Color(), proto.DefaultProjectColor)
	is.Equal(p.Status(), proto.ProjectActive)

	for _, opts := range []proto.ProjectOptions{
		{Name: ""},
		{Name: strings.Repeat("x", 101)},
		{Name: "Bad color", Color: "red"},
		{Name: "Bad status", Status: "paused"},
	} {
		_, err := be.CreateProject(ctx, alice, opts)
		is.True(errors.Is(err, proto.ErrValidation))
	}

	_, err = be.CreateProject(ctx, nil, proto.ProjectOptions{Name: "x"})
	is.True(errors.Is(err, proto.ErrUnauthenticated))
}

func TestProjectOwnership(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := createUser(t, ctx, be, "alice@example.com", "Alice")
	bob := createUser(t, ctx, be, "bob@example.com", "Bob")

	p, err := be.CreateProject(ctx, alice, proto.ProjectOptions{Name: "Website", Color: "#112233"})
	is.NoErr(err)
	is.NoErr(backend.AssertOwner(alice, p))
	is.True(errors.Is(backend.AssertOwner(bob, p), proto.ErrPermissionDenied))
	is.True(errors.Is(backend.AssertOwner(nil, p), proto.ErrUnauthenticated))

	_, err = be.UpdateProject(ctx, bob, p.ID(), proto.ProjectUpdate{Name: ptr("Hijacked")})
	is.True(errors.Is(err, proto.ErrPermissionDenied))
	is.True(errors.Is(be.DeleteProject(ctx, bob, p.ID()), proto.ErrPermissionDenied))

	projects, err := be.ListProjects(ctx, alice)
	is.NoErr(err)
	is.Equal(len(projects), 1)
	is.Equal(projects[0].Name(), "Website")

	projects, err = be.ListProjects(ctx, bob)
	is.NoErr(err)
	is.Equal(len(projects), 0)

	up, err := be.UpdateProject(ctx, alice, p.ID(), proto.ProjectUpdate{
		Name:   ptr("Website v2"),
		Status: ptr(proto.ProjectOnHold),
	})
	is.NoErr(err)
	is.Equal(up.Name(), "Website v2")
	is.Equal(up.Status(), proto.ProjectOnHold)
	is.Equal(up.Color(), "#112233")

	_, err = be.UpdateProject(ctx, alice, p.ID(), proto.ProjectUpdate{Color: ptr("#12345")})
	is.True(errors.Is(err, proto.ErrValidation))

	is.NoErr(be.DeleteProject(ctx, alice, p.ID()))
	is.True(errors.Is(be.DeleteProject(ctx, alice, p.ID()), proto.ErrProjectNotFound))
}

func TestProjectListOrder(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := createUser(t, ctx, be, "alice@example.com", "Alice")

	a, err := be.CreateProject(ctx, alice, proto.ProjectOptions{Name: "A"})
	is.NoErr(err)
	b, err := be.CreateProject(ctx, alice, proto.ProjectOptions{Name: "B"})
	is.NoErr(err)

	projects, err := be.ListProjects(ctx, alice)
	is.NoErr(err)
	is.Equal(len(projects), 2)
	is.Equal(projects[0].ID(), b.ID())
	is.Equal(projects[1].ID(), a.ID())
}
