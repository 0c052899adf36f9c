// Package controllers handles HTTP request handling
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/campuscrm/admitdesk/internal/app/models"
	"github.com/campuscrm/admitdesk/internal/app/models/dto"
)

// currentUserID reads the authenticated user ID placed on the context by the
// auth middleware. Zero means unauthenticated and makes every service call
// fail closed.
func currentUserID(ctx *gin.Context) int64 {
	value, exists := ctx.Get("userID")
	if !exists {
		return 0
	}
	id, ok := value.(int64)
	if !ok {
		return 0
	}
	return id
}

// toUserResponse maps a user model onto its API representation
func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
