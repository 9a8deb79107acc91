package backend_test

import (
	"errors"
	"testing"
	"time"

	"github.com/flowpro/flowpro/pkg/access"
	"github.com/flowpro/flowpro/pkg/proto"
	"github.com/matryer/is"
)

func TestCreateTask(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := createUser(t, ctx, be, "alice@example.com", "Alice")
	bob := createUser(t, ctx, be, "bob@example.com", "Bob")

	p, err := be.CreateProject(ctx, alice, proto.ProjectOptions{Name: "Website", Color: "#0000FF"})
	is.NoErr(err)

	due := time.Date(2030, 1, 2, 15, 4, 5, 0, time.UTC)
	task, err := be.CreateTask(ctx, alice, proto.TaskOptions{
		Title:     "Write copy",
		ProjectID: p.ID(),
		DueDate:   &due,
	})
	is.NoErr(err)
	is.Equal(task.Title(), "Write copy")
	is.Equal(task.Status(), proto.TaskTodo)
	is.Equal(task.Priority(), proto.PriorityMedium)
	is.Equal(task.ProjectID(), p.ID())
	is.Equal(task.ProjectName(), "Website")
	is.Equal(task.ProjectColor(), "#0000FF")
	is.True(task.DueDate() != nil)
	is.True(task.DueDate().Equal(due))

	// Tasks cannot be filed under somebody else's project.
	_, err = be.CreateTask(ctx, bob, proto.TaskOptions{Title: "Sneaky", ProjectID: p.ID()})
	is.True(errors.Is(err, proto.ErrProjectNotFound))

	for _, opts := range []proto.TaskOptions{
		{Title: "  "},
		{Title: "x", Status: "done"},
		{Title: "x", Priority: "urgent"},
	} {
		_, err := be.CreateTask(ctx, alice, opts)
		is.True(errors.Is(err, proto.ErrValidation))
	}
}

func TestTaskOwnership(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := createUser(t, ctx, be, "alice@example.com", "Alice")
	bob := createUser(t, ctx, be, "bob@example.com", "Bob")

	task, err := be.CreateTask(ctx, alice, proto.TaskOptions{Title: "Ship it", Priority: proto.PriorityHigh})
	is.NoErr(err)

	_, err = be.UpdateTask(ctx, bob, task.ID(), proto.TaskUpdate{Title: ptr("Mine now")})
	is.True(errors.Is(err, proto.ErrPermissionDenied))
	_, err = be.ToggleTaskStatus(ctx, bob, task.ID())
	is.True(errors.Is(err, proto.ErrPermissionDenied))
	is.True(errors.Is(be.DeleteTask(ctx, bob, task.ID()), proto.ErrPermissionDenied))

	// Nothing changed.
	tasks, err := be.ListTasks(ctx, alice, proto.TaskFilter{})
	is.NoErr(err)
	is.Equal(len(tasks), 1)
	is.Equal(tasks[0].Title(), "Ship it")
	is.Equal(tasks[0].Status(), proto.TaskTodo)

	tasks, err = be.ListTasks(ctx, bob, proto.TaskFilter{})
	is.NoErr(err)
	is.Equal(len(tasks), 0)

	// Team membership grants nothing over a teammate's tasks.
	tm, err := be.CreateTeam(ctx, alice, "Team", "")
	is.NoErr(err)
	_, err = be.AddMember(ctx, alice, tm.ID(), bob.ID(), access.Admin)
	is.NoErr(err)
	is.True(errors.Is(be.DeleteTask(ctx, bob, task.ID()), proto.ErrPermissionDenied))

	is.NoErr(be.DeleteTask(ctx, alice, task.ID()))
	is.True(errors.Is(be.DeleteTask(ctx, alice, task.ID()), proto.ErrTaskNotFound))
}

func TestUpdateTask(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := createUser(t, ctx, be, "alice@example.com", "Alice")

	p, err := be.CreateProject(ctx, alice, proto.ProjectOptions{Name: "Website"})
	is.NoErr(err)
	due := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	task, err := be.CreateTask(ctx, alice, proto.TaskOptions{Title: "Draft", DueDate: &due})
	is.NoErr(err)
	is.Equal(task.ProjectID(), int64(0))

	up, err := be.UpdateTask(ctx, alice, task.ID(), proto.TaskUpdate{
		Title:     ptr("Final"),
		Status:    ptr(proto.TaskInProgress),
		ProjectID: ptr(p.ID()),
	})
	is.NoErr(err)
	is.Equal(up.Title(), "Final")
	is.Equal(up.Status(), proto.TaskInProgress)
	is.Equal(up.ProjectName(), "Website")
	is.True(up.DueDate() != nil)

	up, err = be.UpdateTask(ctx, alice, task.ID(), proto.TaskUpdate{ProjectID: ptr(int64(0)), ClearDueDate: true})
	is.NoErr(err)
	is.Equal(up.ProjectID(), int64(0))
	is.Equal(up.ProjectName(), "")
	is.True(up.DueDate() == nil)

	_, err = be.UpdateTask(ctx, alice, task.ID(), proto.TaskUpdate{Priority: ptr("urgent")})
	is.True(errors.Is(err, proto.ErrValidation))

	_, err = be.UpdateTask(ctx, alice, 9999, proto.TaskUpdate{Title: ptr("x")})
	is.True(errors.Is(err, proto.ErrTaskNotFound))
}

func TestToggleTaskStatus(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := createUser(t, ctx, be, "alice@example.com", "Alice")

	task, err := be.CreateTask(ctx, alice, proto.TaskOptions{Title: "Toggle me", Status: proto.TaskInProgress})
	is.NoErr(err)

	task, err = be.ToggleTaskStatus(ctx, alice, task.ID())
	is.NoErr(err)
	is.Equal(task.Status(), proto.TaskCompleted)

	task, err = be.ToggleTaskStatus(ctx, alice, task.ID())
	is.NoErr(err)
	is.Equal(task.Status(), proto.TaskTodo)
}

func TestListTasksFilter(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := createUser(t, ctx, be, "alice@example.com", "Alice")

	p, err := be.CreateProject(ctx, alice, proto.ProjectOptions{Name: "Website"})
	is.NoErr(err)
	a, err := be.CreateTask(ctx, alice, proto.TaskOptions{Title: "A", ProjectID: p.ID()})
	is.NoErr(err)
	b, err := be.CreateTask(ctx, alice, proto.TaskOptions{Title: "B", Status: proto.TaskCompleted})
	is.NoErr(err)
	c, err := be.CreateTask(ctx, alice, proto.TaskOptions{Title: "C", ProjectID: p.ID(), Status: proto.TaskCompleted})
	is.NoErr(err)

	tasks, err := be.ListTasks(ctx, alice, proto.TaskFilter{})
	is.NoErr(err)
	is.Equal(len(tasks), 3)
	is.Equal(tasks[0].ID(), c.ID()) // newest first
	is.Equal(tasks[2].ID(), a.ID())

	tasks, err = be.ListTasks(ctx, alice, proto.TaskFilter{Status: proto.TaskCompleted})
	is.NoErr(err)
	is.Equal(len(tasks), 2)
	is.Equal(tasks[0].ID(), c.ID())
	is.Equal(tasks[1].ID(), b.ID())

	tasks, err = be.ListTasks(ctx, alice, proto.TaskFilter{ProjectID: p.ID(), Status: proto.TaskTodo})
	is.NoErr(err)
	is.Equal(len(tasks), 1)
	is.Equal(tasks[0].ID(), a.ID())

	_, err = be.ListTasks(ctx, alice, proto.TaskFilter{Status: "done"})
	is.True(errors.Is(err, proto.ErrValidation))

	// Deleting a project keeps its tasks.
	is.NoErr(be.DeleteProject(ctx, alice, p.ID()))
	tasks, err = be.ListTasks(ctx, alice, proto.TaskFilter{})
	is.NoErr(err)
	is.Equal(len(tasks), 3)
	for _, task := range tasks {
		is.Equal(task.ProjectID(), int64(0))
	}
}

func TestDashboard(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := createUser(t, ctx, be, "alice@example.com", "Alice")
	bob := createUser(t, ctx, be, "bob@example.com", "Bob")

	_, err := be.CreateProject(ctx, alice, proto.ProjectOptions{Name: "Website"})
	is.NoErr(err)
	for _, status := range []string{proto.TaskTodo, proto.TaskInProgress, proto.TaskCompleted} {
		_, err := be.CreateTask(ctx, alice, proto.TaskOptions{Title: status, Status: status})
		is.NoErr(err)
	}
	_, err = be.CreateTeam(ctx, alice, "Mine", "")
	is.NoErr(err)
	tm, err := be.CreateTeam(ctx, bob, "Theirs", "")
	is.NoErr(err)
	_, err = be.AddMember(ctx, bob, tm.ID(), alice.ID(), access.Member)
	is.NoErr(err)

	dash, err := be.Dashboard(ctx, alice)
	is.NoErr(err)
	is.Equal(dash, proto.Dashboard{Projects: 1, ActiveTasks: 2, CompletedTasks: 1, Teams: 2})

	dash, err = be.Dashboard(ctx, bob)
	is.NoErr(err)
	is.Equal(dash, proto.Dashboard{Teams: 1})

	_, err = be.Dashboard(ctx, nil)
	is.True(errors.Is(err, proto.ErrUnauthenticated))

	totals, err := be.Totals(ctx)
	is.NoErr(err)
	is.Equal(totals, proto.Totals{Users: 2, Teams: 2, Projects: 1, OpenTasks: 2})
}
