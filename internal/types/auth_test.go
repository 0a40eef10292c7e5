package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
	}{
		{
			name: "valid customer",
			request: CreateUserRequest{
				Name:     "Priya Desai",
				Email:    "priya@example.com",
				Password: "password123",
				Role:     RoleCustomer,
			},
			wantErr: false,
		},
		{
			name: "valid plumber",
			request: CreateUserRequest{
				Name:     "Ramesh Patel",
				Email:    "ramesh@example.com",
				Password: "password123",
				Role:     RolePlumber,
			},
			wantErr: false,
		},
		{
			name: "admin role rejected",
			request: CreateUserRequest{
				Name:     "Root",
				Email:    "root@example.com",
				Password: "password123",
				Role:     RoleAdmin,
			},
			wantErr: true,
		},
		{
			name: "missing name",
			request: CreateUserRequest{
				Email:    "priya@example.com",
				Password: "password123",
				Role:     RoleCustomer,
			},
			wantErr: true,
		},
		{
			name: "invalid email",
			request: CreateUserRequest{
				Name:     "Priya Desai",
				Email:    "not-an-email",
				Password: "password123",
				Role:     RoleCustomer,
			},
			wantErr: true,
		},
		{
			name: "short password",
			request: CreateUserRequest{
				Name:     "Priya Desai",
				Email:    "priya@example.com",
				Password: "short",
				Role:     RoleCustomer,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validation(t *testing.T) {
	valid := LoginRequest{Email: "priya@example.com", Password: "password123"}
	assert.NoError(t, valid.Validate())

	missing := LoginRequest{Email: "priya@example.com"}
	assert.Error(t, missing.Validate())

	badEmail := LoginRequest{Email: "nope", Password: "password123"}
	assert.Error(t, badEmail.Validate())
}

func TestUpdatePasswordRequest_Validation(t *testing.T) {
	valid := UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}
	assert.NoError(t, valid.Validate())

	short := UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "short"}
	assert.Error(t, short.Validate())
}
