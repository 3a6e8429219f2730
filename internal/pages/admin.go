package pages

import (
	"context"
	"strings"

	"github.com/Veraticus/money-tracker/internal/api"
	"github.com/Veraticus/money-tracker/internal/model"
)

// UserForm is the create-user form.
type UserForm struct {
	Username string
	Password string
	Role     model.Role
}

// AdminPage lists and creates accounts.
type AdminPage struct {
	api    AdminAPI
	notify Notifier
	gate   Gate
}

// NewAdminPage creates the admin page.
func NewAdminPage(a AdminAPI, n Notifier) *AdminPage {
	return &AdminPage{api: a, notify: orDiscard(n)}
}

// Load fetches every account.
func (p *AdminPage) Load(ctx context.Context) ([]model.User, error) {
	users, err := p.api.ListUsers(ctx)
	if err != nil {
		return nil, fail(p.notify, MsgUsersLoadErr, err)
	}
	return users, nil
}

// CreateUser registers an account and returns the re-fetched list.
// An empty role means a regular user.
func (p *AdminPage) CreateUser(ctx context.Context, form UserForm) ([]model.User, error) {
	form.Username = strings.TrimSpace(form.Username)
	if form.Username == "" || form.Password == "" {
		return nil, fail(p.notify, MsgCredentialsEmpty, invalid(MsgCredentialsEmpty))
	}
	if form.Role == "" {
		form.Role = model.RoleUser
	}
	if !form.Role.Valid() {
		return nil, fail(p.notify, "Role harus user atau superadmin", invalid("Role harus user atau superadmin"))
	}

	err := p.gate.Run(func() error {
		req := api.RegisterRequest{Username: form.Username, Password: form.Password, Role: form.Role}
		if _, err := p.api.Register(ctx, req); err != nil {
			return fail(p.notify, api.DetailOr(err, MsgUserCreateErr), err)
		}
		succeed(p.notify, MsgUserCreated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	users, err := p.Load(ctx)
	return users, refetchErr(err)
}

// Busy reports whether a creation is in flight.
func (p *AdminPage) Busy() bool {
	return p.gate.Busy()
}
