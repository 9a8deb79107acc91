package web

import (
	"time"

	"github.com/flowpro/flowpro/pkg/proto"
)

type userView struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func newUserView(u proto.User) userView {
	return userView{
		ID:          u.ID(),
		Email:       u.Email(),
		DisplayName: u.DisplayName(),
		CreatedAt:   u.CreatedAt(),
	}
}

type teamView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	Role        string    `json:"role,omitempty"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTeamView(t proto.Team) teamView {
	v := teamView{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		OwnerID:     t.OwnerID(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
	if m, ok := t.(proto.TeamMembership); ok {
		v.Role = m.Role().String()
		v.MemberCount = m.MemberCount()
	}
	return v
}

type memberView struct {
	ID          int64     `json:"id"`
	TeamID      int64     `json:"team_id"`
	UserID      int64     `json:"user_id"`
	Role        string    `json:"role"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func newMemberView(m proto.Member) memberView {
	return memberView{
		ID:          m.ID(),
		TeamID:      m.TeamID(),
		UserID:      m.UserID(),
		Role:        m.Role().String(),
		Email:       m.Email(),
		DisplayName: m.DisplayName(),
		CreatedAt:   m.CreatedAt(),
	}
}

type projectView struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProjectView(p proto.Project) projectView {
	return projectView{
		ID:          p.ID(),
		UserID:      p.UserID(),
		Name:        p.Name(),
		Description: p.Description(),
		Color:       p.Color(),
		Status:      p.Status(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

type taskProjectView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type taskView struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"user_id"`
	ProjectID   *int64           `json:"project_id"`
	Project     *taskProjectView `json:"project"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	DueDate     *time.Time       `json:"due_date"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func newTaskView(t proto.Task) taskView {
	v := taskView{
		ID:          t.ID(),
		UserID:      t.UserID(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.Status(),
		Priority:    t.Priority(),
		DueDate:     t.DueDate(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
	if id := t.ProjectID(); id != 0 {
		v.ProjectID = &id
		v.Project = &taskProjectView{
			ID:    id,
			Name:  t.ProjectName(),
			Color: t.ProjectColor(),
		}
	}
	return v
}

// mapViews converts each element of in with fn.
func mapViews[T, V any](in []T, fn func(T) V) []V {
	out := make([]V, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
