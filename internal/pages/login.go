package pages

import (
	"context"
	"strings"

	"github.com/Veraticus/money-tracker/internal/api"
	"github.com/Veraticus/money-tracker/internal/model"
)

// LoginPage signs a user in and records the session.
type LoginPage struct {
	api     AuthAPI
	session SessionWriter
	notify  Notifier
	gate    Gate
}

// NewLoginPage creates the login page.
func NewLoginPage(a AuthAPI, s SessionWriter, n Notifier) *LoginPage {
	return &LoginPage{api: a, session: s, notify: orDiscard(n)}
}

// Submit exchanges the credentials for a token. On success the session
// store holds the user and the token.
func (p *LoginPage) Submit(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fail(p.notify, MsgCredentialsEmpty, invalid(MsgCredentialsEmpty))
	}

	var user *model.User
	err := p.gate.Run(func() error {
		resp, err := p.api.Login(ctx, username, password)
		if err != nil {
			return fail(p.notify, api.DetailOr(err, MsgLoginFailed), err)
		}
		// A persistence failure only affects the next run; the store logs it.
		_ = p.session.Login(resp.User, resp.AccessToken)
		user = &resp.User
		succeed(p.notify, MsgLoginSucceeded)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Busy reports whether a sign-in is in flight.
func (p *LoginPage) Busy() bool {
	return p.gate.Busy()
}
