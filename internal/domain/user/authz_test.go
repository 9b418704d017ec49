package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanActOn_ApproveRequest(t *testing.T) {
	cases := []struct {
		name    string
		actor   Actor
		subject Subject
		want    bool
	}{
		{
			name:    "hr approves employee request",
			actor:   Actor{ID: "u1", EmployeeID: "e1", Role: RoleHR},
			subject: Subject{EmployeeID: "e2", Role: RoleEmployee},
			want:    true,
		},
		{
			name:    "admin approves employee request",
			actor:   Actor{ID: "u1", EmployeeID: "e1", Role: RoleAdmin},
			subject: Subject{EmployeeID: "e2", Role: RoleEmployee},
			want:    true,
		},
		{
			name:    "employee cannot approve anything",
			actor:   Actor{ID: "u1", EmployeeID: "e1", Role: RoleEmployee},
			subject: Subject{EmployeeID: "e2", Role: RoleEmployee},
			want:    false,
		},
		{
			name:    "hr cannot approve own request",
			actor:   Actor{ID: "u1", EmployeeID: "e1", Role: RoleHR},
			subject: Subject{EmployeeID: "e1", Role: RoleHR},
			want:    false,
		},
		{
			name:    "admin cannot approve own request",
			actor:   Actor{ID: "u1", EmployeeID: "e1", Role: RoleAdmin},
			subject: Subject{EmployeeID: "e1", Role: RoleAdmin},
			want:    false,
		},
		{
			name:    "hr cannot approve request from another hr",
			actor:   Actor{ID: "u1", EmployeeID: "e1", Role: RoleHR},
			subject: Subject{EmployeeID: "e2", Role: RoleHR},
			want:    false,
		},
		{
			name:    "admin approves request from hr",
			actor:   Actor{ID: "u1", EmployeeID: "e1", Role: RoleAdmin},
			subject: Subject{EmployeeID: "e2", Role: RoleHR},
			want:    true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanActOn(tc.actor, tc.subject, ActionApproveRequest))
		})
	}
}

func TestCanActOn_ViewRecord(t *testing.T) {
	employee := Actor{ID: "u1", EmployeeID: "e1", Role: RoleEmployee}

	assert.True(t, CanActOn(employee, Subject{EmployeeID: "e1", Role: RoleEmployee}, ActionViewRecord))
	assert.False(t, CanActOn(employee, Subject{EmployeeID: "e2", Role: RoleEmployee}, ActionViewRecord))
	assert.True(t, CanActOn(Actor{ID: "u2", EmployeeID: "e9", Role: RoleHR}, Subject{EmployeeID: "e2", Role: RoleEmployee}, ActionViewRecord))
}

func TestCanActOn_ManageRecord(t *testing.T) {
	assert.False(t, CanActOn(Actor{ID: "u1", EmployeeID: "e1", Role: RoleEmployee}, Subject{EmployeeID: "e1", Role: RoleEmployee}, ActionManageRecord))
	assert.True(t, CanActOn(Actor{ID: "u2", EmployeeID: "e2", Role: RoleHR}, Subject{EmployeeID: "e1", Role: RoleEmployee}, ActionManageRecord))
}

func TestCanActOn_UnknownAction(t *testing.T) {
	actor := Actor{ID: "u1", EmployeeID: "e1", Role: RoleAdmin}
	assert.False(t, CanActOn(actor, Subject{EmployeeID: "e2"}, Action("nonsense")))
}
