package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoleAllowed(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed []string
		want    bool
	}{
		{"master may write", RoleMaster, WriteRoles, true},
		{"admin may not write", RoleAdmin, WriteRoles, false},
		{"admin may read", RoleAdmin, ReadRoles, true},
		{"master may read", RoleMaster, ReadRoles, true},
		{"unknown role", "guest", ReadRoles, false},
		{"empty role", "", ReadRoles, false},
		{"nothing allowed", RoleMaster, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleAllowed(tt.role, tt.allowed...))
		})
	}
}

func TestPrincipalActor(t *testing.T) {
	assert.Equal(t, "system", Principal{}.Actor())

	id := uuid.New()
	assert.Equal(t, id.String(), Principal{UserID: id}.Actor())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 25, HasNext: true, HasPrev: true}, p)

	p = NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}
