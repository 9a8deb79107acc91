package web_test

import (
	"net/http"
	"testing"

	"github.com/matryer/is"
)

type apiTeam struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	OwnerID     int64  `json:"owner_id"`
	Role        string `json:"role"`
	MemberCount int64  `json:"member_count"`
}

type apiMember struct {
	ID          int64  `json:"id"`
	TeamID      int64  `json:"team_id"`
	UserID      int64  `json:"user_id"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func TestTeamLifecycle(t *testing.T) {
	is := is.New(t)
	h := setup(t)
	alice := signup(t, h, "alice@example.com", "Alice")
	bob := signup(t, h, "bob@example.com", "Bob")
	carol := signup(t, h, "carol@example.com", "Carol")

	rec := do(t, h, http.MethodPost, "/api/teams", alice.Token, map[string]string{
		"name":        "Platform",
		"description": "Infra folks",
	})
	is.Equal(rec.Code, http.StatusCreated)
	team := decode[apiTeam](t, rec)
	is.Equal(team.Name, "Platform")
	is.Equal(team.OwnerID, alice.User.ID)
	is.Equal(team.Role, "owner")
	is.Equal(team.MemberCount, int64(1))

	members := path("/api/teams/%d/members", team.ID)

	// Alice adds Bob as an admin.
	rec = do(t, h, http.MethodPost, members, alice.Token, map[string]any{
		"user_id": bob.User.ID,
		"role":    "admin",
	})
	is.Equal(rec.Code, http.StatusCreated)
	bobMember := decode[apiMember](t, rec)
	is.Equal(bobMember.Role, "admin")
	is.Equal(bobMember.Email, "bob@example.com")

	// Adding Bob again conflicts.
	rec = do(t, h, http.MethodPost, members, alice.Token, map[string]any{
		"user_id": bob.User.ID,
		"role":    "member",
	})
	is.Equal(rec.Code, http.StatusConflict)

	// The owner role cannot be granted.
	rec = do(t, h, http.MethodPost, members, alice.Token, map[string]any{
		"user_id": carol.User.ID,
		"role":    "owner",
	})
	is.Equal(rec.Code, http.StatusUnprocessableEntity)

	// Carol is not a member.
	rec = do(t, h, http.MethodGet, path("/api/teams/%d", team.ID), carol.Token, nil)
	is.Equal(rec.Code, http.StatusForbidden)
	is.Equal(decode[apiError](t, rec).Code, "permission_denied")

	rec = do(t, h, http.MethodGet, path("/api/teams/%d/role", team.ID), carol.Token, nil)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(decode[map[string]string](t, rec)["role"], "none")

	// Bob, as an admin, adds Carol and sees everyone.
	rec = do(t, h, http.MethodPost, members, bob.Token, map[string]any{
		"user_id": carol.User.ID,
		"role":    "member",
	})
	is.Equal(rec.Code, http.StatusCreated)
	carolMember := decode[apiMember](t, rec)

	rec = do(t, h, http.MethodGet, members, bob.Token, nil)
	is.Equal(rec.Code, http.StatusOK)
	list := decode[[]apiMember](t, rec)
	is.Equal(len(list), 3)
	is.Equal(list[0].UserID, alice.User.ID)
	is.Equal(list[0].Role, "owner")

	// Nobody can remove or re-role the owner.
	rec = do(t, h, http.MethodDelete, path("%s/%d", members, list[0].ID), bob.Token, nil)
	is.Equal(rec.Code, http.StatusForbidden)
	is.Equal(decode[apiError](t, rec).Code, "forbidden")

	rec = do(t, h, http.MethodPatch, path("%s/%d", members, list[0].ID), alice.Token, map[string]string{
		"role": "member",
	})
	is.Equal(rec.Code, http.StatusForbidden)
	is.Equal(decode[apiError](t, rec).Code, "forbidden")

	// Carol, as a member, cannot touch the owner either.
	rec = do(t, h, http.MethodDelete, path("%s/%d", members, list[0].ID), carol.Token, nil)
	is.Equal(rec.Code, http.StatusForbidden)
	is.Equal(decode[apiError](t, rec).Code, "forbidden")

	// Carol, as a member, cannot manage members.
	rec = do(t, h, http.MethodDelete, path("%s/%d", members, bobMember.ID), carol.Token, nil)
	is.Equal(rec.Code, http.StatusForbidden)
	is.Equal(decode[apiError](t, rec).Code, "permission_denied")

	// Alice promotes Carol, then Bob removes her.
	rec = do(t, h, http.MethodPatch, path("%s/%d", members, carolMember.ID), alice.Token, map[string]string{
		"role": "admin",
	})
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(decode[apiMember](t, rec).Role, "admin")

	rec = do(t, h, http.MethodDelete, path("%s/%d", members, carolMember.ID), bob.Token, nil)
	is.Equal(rec.Code, http.StatusNoContent)

	rec = do(t, h, http.MethodGet, "/api/teams", bob.Token, nil)
	is.Equal(rec.Code, http.StatusOK)
	teams := decode[[]apiTeam](t, rec)
	is.Equal(len(teams), 1)
	is.Equal(teams[0].Role, "admin")
	is.Equal(teams[0].MemberCount, int64(2))

	// Only the owner deletes the team.
	rec = do(t, h, http.MethodDelete, path("/api/teams/%d", team.ID), bob.Token, nil)
	is.Equal(rec.Code, http.StatusForbidden)

	rec = do(t, h, http.MethodDelete, path("/api/teams/%d", team.ID), alice.Token, nil)
	is.Equal(rec.Code, http.StatusNoContent)

	rec = do(t, h, http.MethodGet, path("/api/teams/%d", team.ID), alice.Token, nil)
	is.Equal(rec.Code, http.StatusNotFound)
}

func TestCreateTeamValidation(t *testing.T) {
	is := is.New(t)
	h := setup(t)
	alice := signup(t, h, "alice@example.com", "Alice")

	rec := do(t, h, http.MethodPost, "/api/teams", alice.Token, map[string]string{"name": ""})
	is.Equal(rec.Code, http.StatusUnprocessableEntity)

	rec = do(t, h, http.MethodPost, "/api/teams", alice.Token, map[string]string{"title": "x"})
	is.Equal(rec.Code, http.StatusUnprocessableEntity)
}

func TestMemberOfOtherTeam(t *testing.T) {
	is := is.New(t)
	h := setup(t)
	alice := signup(t, h, "alice@example.com", "Alice")
	bob := signup(t, h, "bob@example.com", "Bob")

	rec := do(t, h, http.MethodPost, "/api/teams", alice.Token, map[string]string{"name": "One"})
	is.Equal(rec.Code, http.StatusCreated)
	one := decode[apiTeam](t, rec)

	rec = do(t, h, http.MethodPost, "/api/teams", alice.Token, map[string]string{"name": "Two"})
	is.Equal(rec.Code, http.StatusCreated)
	two := decode[apiTeam](t, rec)

	rec = do(t, h, http.MethodPost, path("/api/teams/%d/members", two.ID), alice.Token, map[string]any{
		"user_id": bob.User.ID,
		"role":    "member",
	})
	is.Equal(rec.Code, http.StatusCreated)
	m := decode[apiMember](t, rec)

	// The membership belongs to team two, so team one does not know it.
	rec = do(t, h, http.MethodDelete, path("/api/teams/%d/members/%d", one.ID, m.ID), alice.Token, nil)
	is.Equal(rec.Code, http.StatusNotFound)
}
