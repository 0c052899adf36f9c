package dto

// CreateAccountRequest represents a new staff account. The role is not part
// of the request: accounts are always created as FACULTY and promoted later.
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest represents a privileged password reset for another account
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// ChangeOwnPasswordRequest represents a self-service password change
type ChangeOwnPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// ChangeRoleRequest represents a role change for another account
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required" example:"ADMIN" enums:"SUPER_ADMIN,ADMIN,FACULTY"`
}

// UserListResponse represents the account management listing
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}
