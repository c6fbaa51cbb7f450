package httpapi

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
	"go.uber.org/zap"
)

const guestRole = "guest"

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// Customers and restaurants both inherit member, which inherits guest.
const rbacPolicy = `
p, guest, /health, GET
p, guest, /api/state, GET
p, guest, /api/session/login, POST
p, guest, /api/restaurants, GET
p, guest, /api/restaurants/current/:id, PUT
p, guest, /api/restaurants/:id/menu, GET
p, member, /api/session/logout, POST
p, member, /api/session/profile, PUT
p, member, /api/orders, GET
p, member, /api/orders/:id/qrcode, GET
p, customer, /api/cart/items, POST
p, customer, /api/cart/items/:itemId, DELETE
p, customer, /api/cart, DELETE
p, customer, /api/orders, POST
p, restaurant, /api/orders/:id/status, PUT
p, restaurant, /api/menu, POST
p, restaurant, /api/menu/:itemId, ^(PUT|DELETE)$
g, member, guest
g, customer, member
g, restaurant, member
`

// Authorizer gates routes by the role of the current session.
type Authorizer struct {
	enforcer *casbin.Enforcer
	store    StateReader
	logger   *zap.Logger
}

func NewAuthorizer(store StateReader, logger *zap.Logger) (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(rbacPolicy))
	if err != nil {
		return nil, err
	}

	return &Authorizer{enforcer: enforcer, store: store, logger: logger}, nil
}

func (a *Authorizer) role() string {
	if role := a.store.State().Role(); role != "" {
		return string(role)
	}
	return guestRole
}

func (a *Authorizer) Allowed(role, path, method string) (bool, error) {
	return a.enforcer.Enforce(role, path, method)
}

func (a *Authorizer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := a.role()
		allowed, err := a.Allowed(role, r.URL.Path, r.Method)
		if err != nil {
			a.logger.Error("authorization check failed", zap.Error(err))
			http.Error(w, "Authorization failed", http.StatusInternalServerError)
			return
		}
		if !allowed {
			a.logger.Debug("request denied",
				zap.String("role", role),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
			status := http.StatusForbidden
			if role == guestRole {
				status = http.StatusUnauthorized
			}
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}
