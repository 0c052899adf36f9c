package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campuscrm/admitdesk/internal/app/models"
	"github.com/campuscrm/admitdesk/internal/app/models/dto"
	"github.com/campuscrm/admitdesk/internal/app/services"
	"github.com/campuscrm/admitdesk/internal/middleware"
)

// AccountController handles staff account management operations
type AccountController struct {
	accountService services.AccountService
	logger         zerolog.Logger
}

// NewAccountController creates a new AccountController
func NewAccountController(accountService services.AccountService, logger zerolog.Logger) *AccountController {
	return &AccountController{
		accountService: accountService,
		logger:         logger,
	}
}

func parseAccountID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid account ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// Create handles staff account creation
// @Summary Create staff account
// @Description Creates a new FACULTY account. Requires ADMIN or SUPER_ADMIN.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAccountRequest true "New account information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /users [post]
func (c *AccountController) Create(ctx *gin.Context) {
	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create account payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.accountService.CreateFacultyAccount(ctx.Request.Context(), currentUserID(ctx), req.Name, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(toUserResponse(user)))
}

// List handles the account management listing
// @Summary List staff accounts
// @Description Returns all staff accounts, newest first. Requires ADMIN or SUPER_ADMIN.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Staff accounts"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /users [get]
func (c *AccountController) List(ctx *gin.Context) {
	users, err := c.accountService.ListAccounts(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, user := range users {
		response.Users = append(response.Users, toUserResponse(user))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// Delete handles staff account deletion
// @Summary Delete staff account
// @Description Deletes a staff account. Deleting your own account or a missing account is a no-op.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 204 "Account deleted"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /users/{id} [delete]
func (c *AccountController) Delete(ctx *gin.Context) {
	targetID, ok := parseAccountID(ctx)
	if !ok {
		return
	}

	if err := c.accountService.DeleteAccount(ctx.Request.Context(), currentUserID(ctx), targetID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ResetPassword handles a privileged password reset
// @Summary Reset account password
// @Description Replaces another account's password. Requires management rights over the target.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 204 "Password reset"
// @Failure 400 {object} dto.ErrorResponse "Password too short"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /users/{id}/password [put]
func (c *AccountController) ResetPassword(ctx *gin.Context) {
	targetID, ok := parseAccountID(ctx)
	if !ok {
		return
	}

	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.accountService.ResetPassword(ctx.Request.Context(), currentUserID(ctx), targetID, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ChangeRole handles a role change
// @Summary Change account role
// @Description Assigns a new role to another account. Requires SUPER_ADMIN; changing your own role is rejected.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body dto.ChangeRoleRequest true "New role"
// @Success 204 "Role changed"
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /users/{id}/role [put]
func (c *AccountController) ChangeRole(ctx *gin.Context) {
	targetID, ok := parseAccountID(ctx)
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.accountService.ChangeRole(ctx.Request.Context(), currentUserID(ctx), targetID, models.Role(req.Role)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ChangeOwnPassword handles a self-service password change
// @Summary Change own password
// @Description Replaces the authenticated account's password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangeOwnPasswordRequest true "New password"
// @Success 204 "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Password too short"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /users/me/password [put]
func (c *AccountController) ChangeOwnPassword(ctx *gin.Context) {
	var req dto.ChangeOwnPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.accountService.ChangeOwnPassword(ctx.Request.Context(), currentUserID(ctx), req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
