// Package rbac enforces the two-role permission model (admin, employee) with
// casbin. Policies are static: there is no per-tenant role editing in this
// product, so the model and policy live in code rather than in storage.
package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies: employee covers the self-service surface; admin inherits it and
// adds the management surface.
var policies = [][]string{
	{RoleEmployee, "time-record", "create"},
	{RoleEmployee, "time-record", "read"},
	{RoleEmployee, "timesheet", "read"},
	{RoleEmployee, "report", "create"},
	{RoleEmployee, "report", "read"},
	{RoleEmployee, "report", "delete"},
	{RoleEmployee, "profile", "update"},
	{RoleAdmin, "user", "read"},
	{RoleAdmin, "user", "manage"},
}

//go:generate mockgen -source=rbac.go -destination=mock/rbac_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	if _, err := enforcer.AddGroupingPolicy(RoleAdmin, RoleEmployee); err != nil {
		return nil, err
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
