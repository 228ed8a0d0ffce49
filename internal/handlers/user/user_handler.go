// internal/handlers/user/user_handler.go
package user

import (
	"context"
	"net/http"
	"strconv"

	"tourdesk-service/internal/domain/auth"
	"tourdesk-service/internal/middleware"
	"tourdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Service is the staff account management used by the handler.
type Service interface {
	CreateUser(ctx context.Context, req *auth.CreateUserRequest) (*auth.UserWithProfile, error)
	GetUser(ctx context.Context, id int64) (*auth.UserWithProfile, error)
	ListUsers(ctx context.Context, filters *auth.UserListFilters) (*auth.UserListResponse, error)
	UpdateUser(ctx context.Context, id int64, req *auth.UpdateUserRequest) (*auth.UserWithProfile, error)
	SetActive(ctx context.Context, id int64, active bool) (*auth.UserWithProfile, error)
	DeleteUser(ctx context.Context, id, actingUserID int64) error
}

// UserHandler serves the superuser-only staff management endpoints.
type UserHandler struct {
	accountService Service
}

func NewUserHandler(accountService Service) *UserHandler {
	return &UserHandler{accountService: accountService}
}

// ========== Staff Accounts ==========

// CreateUser creates a staff account together with its profile
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req auth.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.accountService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create user", err)
		return
	}

	response.Success(c, http.StatusCreated, "user created successfully", result)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return
	}

	result, err := h.accountService.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "user not found", err)
		return
	}

	response.Success(c, http.StatusOK, "user retrieved", result)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var filters auth.UserListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.accountService.ListUsers(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list users", err)
		return
	}

	response.Success(c, http.StatusOK, "users retrieved", result)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return
	}

	var req auth.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.accountService.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, "failed to update user", err)
		return
	}

	response.Success(c, http.StatusOK, "user updated successfully", result)
}

// SetActive flips the active flag; the profile status follows.
func (h *UserHandler) SetActive(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return
	}

	var req auth.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.accountService.SetActive(c.Request.Context(), userID, *req.IsActive)
	if err != nil {
		response.FromError(c, "failed to change user status", err)
		return
	}

	response.Success(c, http.StatusOK, "user status updated", result)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return
	}

	if err := h.accountService.DeleteUser(c.Request.Context(), userID, middleware.MustGetUserID(c)); err != nil {
		response.FromError(c, "failed to delete user", err)
		return
	}

	response.Success(c, http.StatusOK, "user deleted successfully", nil)
}
