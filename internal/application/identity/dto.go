package identity

import (
	"time"

	"github.com/erp/orderhub/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	Email     string     `json:"email" binding:"required,email,max=200"`
	Password  string     `json:"password" binding:"required,min=8,max=72"`
	RoleID    *uuid.UUID `json:"role_id"`
	FactoryID *uuid.UUID `json:"factory_id"`
}

// UpdateUserRequest represents a request to update a user
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// AssignRoleRequest assigns a role to a user
type AssignRoleRequest struct {
	RoleID uuid.UUID `json:"role_id" binding:"required"`
}

// AssignFactoryRequest assigns a factory to a user
type AssignFactoryRequest struct {
	FactoryID uuid.UUID `json:"factory_id" binding:"required"`
}

// UserListFilter represents filter options for user list
type UserListFilter struct {
	RoleID    *uuid.UUID `form:"role_id"`
	FactoryID *uuid.UUID `form:"factory_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UserResponse represents a user in API responses; it never carries the password hash
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	RoleID    *uuid.UUID `json:"role_id,omitempty"`
	FactoryID *uuid.UUID `json:"factory_id,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PermissionResponse represents a permission granted to a user
type PermissionResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		RoleID:    u.RoleID,
		FactoryID: u.FactoryID,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain Users
func ToUserResponses(users []identity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
