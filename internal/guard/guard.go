// Package guard decides what a navigation target resolves to for a given session.
package guard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/money-tracker/internal/model"
)

// ErrUnknownRoute is returned for paths that are not pages of the app.
var ErrUnknownRoute = errors.New("unknown route")

// Route is a known page path.
type Route string

// Known pages.
const (
	Login        Route = "/login"
	Dashboard    Route = "/"
	Transactions Route = "/transactions"
	Categories   Route = "/categories"
	Admin        Route = "/admin"
	Download     Route = "/download"
)

var routes = []Route{Login, Dashboard, Transactions, Categories, Admin, Download}

// Routes lists every known page.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// ParseRoute maps a path to a known route. A trailing slash is ignored.
func ParseRoute(path string) (Route, error) {
	p := path
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	if p == "" {
		p = "/"
	}
	for _, r := range routes {
		if Route(p) == r {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

// Title is the page heading for a route.
func (r Route) Title() string {
	switch r {
	case Login:
		return "Login"
	case Dashboard:
		return "Dashboard"
	case Transactions:
		return "Transaksi"
	case Categories:
		return "Kategori"
	case Admin:
		return "Admin"
	case Download:
		return "Download"
	default:
		return string(r)
	}
}

// Action is the outcome kind of a decision.
type Action int

const (
	// Render shows the requested page.
	Render Action = iota
	// Redirect sends the user to Target instead.
	Redirect
)

func (a Action) String() string {
	if a == Redirect {
		return "redirect"
	}
	return "render"
}

// Decision is what to do with a navigation request.
type Decision struct {
	Action Action
	Target Route
}

// Decide applies the access rules in order: the login page, the admin page, then everything else.
// It has no side effects.
func Decide(authenticated bool, role model.Role, route Route) Decision {
	switch route {
	case Login:
		if authenticated {
			return Decision{Action: Redirect, Target: Dashboard}
		}
		return Decision{Action: Render, Target: Login}
	case Admin:
		if authenticated && role == model.RoleSuperadmin {
			return Decision{Action: Render, Target: Admin}
		}
		return Decision{Action: Redirect, Target: Dashboard}
	default:
		if authenticated {
			return Decision{Action: Render, Target: route}
		}
		return Decision{Action: Redirect, Target: Login}
	}
}

// Resolve returns the page that is finally rendered. The target of a redirect
// is decided again, so two redirects can happen: anonymous on /admin goes to
// / and from there to /login. No chain is longer than that.
func Resolve(authenticated bool, role model.Role, route Route) Route {
	d := Decide(authenticated, role, route)
	if d.Action == Render {
		return d.Target
	}
	next := Decide(authenticated, role, d.Target)
	return next.Target
}

// ForUser is Decide for an optional user.
func ForUser(user *model.User, route Route) Decision {
	if user == nil {
		return Decide(false, "", route)
	}
	return Decide(true, user.Role, route)
}
