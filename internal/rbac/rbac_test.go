package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnforce(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{RoleEmployee, "time-record", "create", true},
		{RoleEmployee, "timesheet", "read", true},
		{RoleEmployee, "user", "read", false},
		{RoleEmployee, "user", "manage", false},
		{RoleAdmin, "user", "manage", true},
		// admin inherits the employee surface
		{RoleAdmin, "time-record", "create", true},
		{RoleAdmin, "report", "delete", true},
		{"intern", "time-record", "create", false},
	}

	for _, tc := range cases {
		allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}
