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
)

// MaxProjectNameLength is the maximum length of a project name in runes.
const MaxProjectNameLength = 100

func validateProject(p models.Project) error {
	if p.Name == "" {
		return proto.ValidationError("project name is required")
	}
	if utf8.RuneCountInString(p.Name) > MaxProjectNameLength {
		return proto.ValidationError("project name must be at most %d characters", MaxProjectNameLength)
	}
	if err := validateDescription(p.Description.String); err != nil {
		return err
	}
	if err := validate.Var(p.Color, "required,hexcolor,len=7"); err != nil {
		return proto.ValidationError("invalid color %q", p.Color)
	}
	if !proto.ValidProjectStatus(p.Status) {
		return proto.ValidationError("invalid project status %q", p.Status)
	}
	return nil
}

// CreateProject creates a project owned by actor.
func (d *Backend) CreateProject(ctx context.Context, actor proto.User, opts proto.ProjectOptions) (proto.Project, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	p := models.Project{
		UserID:      actor.ID(),
		Name:        strings.TrimSpace(opts.Name),
		Description: nullString(strings.TrimSpace(opts.Description)),
		Color:       opts.Color,
		Status:      opts.Status,
	}
	if p.Color == "" {
		p.Color = proto.DefaultProjectColor
	}
	if p.Status == "" {
		p.Status = proto.ProjectActive
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}

	var m models.Project
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.CreateProject(ctx, tx, p)
		return db.WrapError(err)
	}); err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			return nil, proto.ErrUserNotFound
		}
		return nil, err
	}

	return &project{p: m}, nil
}

// ListProjects lists actor's projects, newest first.
func (d *Backend) ListProjects(ctx context.Context, actor proto.User) ([]proto.Project, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	ms, err := d.store.ListProjects(ctx, d.db, actor.ID())
	if err != nil {
		return nil, db.WrapError(err)
	}

	projects := make([]proto.Project, 0, len(ms))
	for _, m := range ms {
		projects = append(projects, &project{p: m})
	}

	return projects, nil
}

// UpdateProject changes the fields set in upd on one of actor's projects.
func (d *Backend) UpdateProject(ctx context.Context, actor proto.User, id int64, upd proto.ProjectUpdate) (proto.Project, error) {
	if actor == nil {
		return nil, proto.ErrUnauthenticated
	}

	var m models.Project
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		p, err := d.ownedProject(ctx, tx, "update_project", actor, id)
		if err != nil {
			return err
		}

		if upd.Name != nil {
			p.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.Description != nil {
			p.Description = nullString(strings.TrimSpace(*upd.Description))
		}
		if upd.Color != nil {
			p.Color = *upd.Color
		}
		if upd.Status != nil {
			p.Status = *upd.Status
		}
		if err := validateProject(p); err != nil {
			return err
		}

		m, err = d.store.UpdateProject(ctx, tx, p)
		if err != nil {
			err = db.WrapError(err)
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrProjectNotFound
			}
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &project{p: m}, nil
}

// DeleteProject deletes one of actor's projects. Its tasks are kept and
// detached from it.
func (d *Backend) DeleteProject(ctx context.Context, actor proto.User, id int64) error {
	if actor == nil {
		return proto.ErrUnauthenticated
	}

	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.ownedProject(ctx, tx, "delete_project", actor, id); err != nil {
			return err
		}

		if err := db.WrapError(d.store.DeleteProject(ctx, tx, actor.ID(), id)); err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrProjectNotFound
			}
			return err
		}
		return nil
	})
}

func (d *Backend) ownedProject(ctx context.Context, h db.Handler, op string, actor proto.User, id int64) (models.Project, error) {
	p, err := d.store.GetProjectByID(ctx, h, id)
	if err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return models.Project{}, proto.ErrProjectNotFound
		}
		return models.Project{}, err
	}

	if err := d.assertOwner(op, actor, &project{p: p}); err != nil {
		return models.Project{}, err
	}

	return p, nil
}

type project struct {
	p models.Project
}

var _ proto.Project = (*project)(nil)

// ID implements proto.Project.
func (p *project) ID() int64 {
	return p.p.ID
}

// UserID implements proto.Project.
func (p *project) UserID() int64 {
	return p.p.UserID
}

// Name implements proto.Project.
func (p *project) Name() string {
	return p.p.Name
}

// Description implements proto.Project.
func (p *project) Description() string {
	return p.p.Description.String
}

// Color implements proto.Project.
func (p *project) Color() string {
	return p.p.Color
}

// Status implements proto.Project.
func (p *project) Status() string {
	return p.p.Status
}

// CreatedAt implements proto.Project.
func (p *project) CreatedAt() time.Time {
	return p.p.CreatedAt
}

// UpdatedAt implements proto.Project.
func (p *project) UpdatedAt() time.Time {
	return p.p.UpdatedAt
}
