package backend

import (
	"context"

	"github.com/flowpro/flowpro/pkg/db"
	"github.com/flowpro/flowpro/pkg/proto"
)

// Dashboard returns actor's summary counters. Active tasks are all tasks
// that are not completed.
func (d *Backend) Dashboard(ctx context.Context, actor proto.User) (proto.Dashboard, error) {
	if actor == nil {
		return proto.Dashboard{}, proto.ErrUnauthenticated
	}

	var dash proto.Dashboard
	var err error
	if dash.Projects, err = d.store.CountProjects(ctx, d.db, actor.ID()); err != nil {
		return proto.Dashboard{}, db.WrapError(err)
	}
	if dash.ActiveTasks, err = d.store.CountTasks(ctx, d.db, actor.ID(), false); err != nil {
		return proto.Dashboard{}, db.WrapError(err)
	}
	if dash.CompletedTasks, err = d.store.CountTasks(ctx, d.db, actor.ID(), true); err != nil {
		return proto.Dashboard{}, db.WrapError(err)
	}
	if dash.Teams, err = d.store.CountTeamsForUser(ctx, d.db, actor.ID()); err != nil {
		return proto.Dashboard{}, db.WrapError(err)
	}

	return dash, nil
}

// Totals returns server-wide entity counts. It is not scoped to an actor and
// is meant for operators.
func (d *Backend) Totals(ctx context.Context) (proto.Totals, error) {
	t, err := d.store.CountEntities(ctx, d.db)
	if err != nil {
		return proto.Totals{}, db.WrapError(err)
	}

	return proto.Totals{
		Users:     t.Users,
		Teams:     t.Teams,
		Projects:  t.Projects,
		OpenTasks: t.OpenTasks,
	}, nil
}
