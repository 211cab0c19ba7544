package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/freya-systems/freya-dashboard/internal/access"
	"github.com/freya-systems/freya-dashboard/internal/backend"
)

const (
	errorValueInvalidFields      = "invalid_fields"
	errorValueUnknownRole        = "unknown_role"
	errorValueUsernameTaken      = "username_taken"
	errorValuePasswordMismatch   = "password_mismatch"
	errorValuePasswordTooShort   = "password_too_short"
	errorValueUserUpdateFailed   = "update_failed"
	errorValueUserDeleteFailed   = "delete_failed"
	errorValueUserCreateFailed   = "create_failed"
	errorValuePasswordResetError = "password_reset_failed"

	passwordMinLength = 6

	upstreamErrorUsernameTaken = "username already exists"

	logMessageUsersOperation = "users_operation_failed"
	logFieldUsersOperation   = "operation"
	usersOperationList       = "list"
	usersOperationCreate     = "create"
	usersOperationUpdate     = "update"
	usersOperationDelete     = "delete"
	usersOperationReset      = "reset_password"
)

// UserHandlers serves the user management page operations.
type UserHandlers struct {
	client    *backend.Client
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserHandlers builds the user management handler set.
func NewUserHandlers(client *backend.Client, logger *zap.Logger) *UserHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandlers{
		client:    client,
		validator: validator.New(),
		logger:    logger,
	}
}

// List responds with the tenant's user accounts.
func (h *UserHandlers) List(context *gin.Context) {
	currentSession := CurrentSession(context)
	users, fetchErr := h.client.GetUsers(context.Request.Context(), currentSession.DBName, currentSession.Role)
	if fetchErr != nil {
		h.logger.Warn(logMessageUsersOperation,
			zap.String(logFieldUsersOperation, usersOperationList),
			zap.Error(fetchErr))
		context.JSON(502, gin.H{"error": errorValueBackendFailed})
		return
	}
	context.JSON(200, gin.H{"users": users})
}

type createUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required"`
}

// Create registers a new tenant user after validating the form fields.
func (h *UserHandlers) Create(context *gin.Context) {
	var payload createUserRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}
	payload.FirstName = strings.TrimSpace(payload.FirstName)
	payload.LastName = strings.TrimSpace(payload.LastName)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Username = strings.TrimSpace(payload.Username)
	payload.Role = strings.TrimSpace(payload.Role)

	if validateErr := h.validator.Struct(payload); validateErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidFields})
		return
	}
	if !assignableRole(payload.Role) {
		context.JSON(400, gin.H{"error": errorValueUnknownRole})
		return
	}

	currentSession := CurrentSession(context)
	createErr := h.client.CreateUser(context.Request.Context(), backend.NewUser{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		Username:    payload.Username,
		Password:    payload.Password,
		Role:        payload.Role,
		DBName:      currentSession.DBName,
		CreatorRole: currentSession.Role,
	})
	if createErr != nil {
		if strings.Contains(strings.ToLower(createErr.Error()), upstreamErrorUsernameTaken) {
			context.JSON(409, gin.H{"error": errorValueUsernameTaken})
			return
		}
		h.logger.Warn(logMessageUsersOperation,
			zap.String(logFieldUsersOperation, usersOperationCreate),
			zap.Error(createErr))
		context.JSON(502, gin.H{"error": errorValueUserCreateFailed})
		return
	}
	context.JSON(200, gin.H{"status": "ok"})
}

type updateUserRequest struct {
	RecordID string            `json:"recordId"`
	Fields   map[string]string `json:"fields"`
}

// Update applies edited profile fields to one user record.
func (h *UserHandlers) Update(context *gin.Context) {
	var payload updateUserRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}
	if strings.TrimSpace(payload.RecordID) == "" {
		context.JSON(400, gin.H{"error": errorValueMissingRecordID})
		return
	}
	if len(payload.Fields) == 0 {
		context.JSON(400, gin.H{"error": errorValueNoChanges})
		return
	}
	if newRole, rolePresent := payload.Fields["role"]; rolePresent && !assignableRole(strings.TrimSpace(newRole)) {
		context.JSON(400, gin.H{"error": errorValueUnknownRole})
		return
	}

	currentSession := CurrentSession(context)
	updateErr := h.client.UpdateUser(
		context.Request.Context(),
		payload.RecordID,
		payload.Fields,
		currentSession.DBName,
		currentSession.Role,
		currentSession.Username,
	)
	if updateErr != nil {
		h.logger.Warn(logMessageUsersOperation,
			zap.String(logFieldUsersOperation, usersOperationUpdate),
			zap.Error(updateErr))
		context.JSON(502, gin.H{"error": errorValueUserUpdateFailed})
		return
	}
	context.JSON(200, gin.H{"status": "ok"})
}

type deleteUserRequest struct {
	RecordID string `json:"recordId"`
}

// Delete removes one user account.
func (h *UserHandlers) Delete(context *gin.Context) {
	var payload deleteUserRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}
	if strings.TrimSpace(payload.RecordID) == "" {
		context.JSON(400, gin.H{"error": errorValueMissingRecordID})
		return
	}

	currentSession := CurrentSession(context)
	deleteErr := h.client.DeleteUser(
		context.Request.Context(),
		payload.RecordID,
		currentSession.DBName,
		currentSession.Role,
		currentSession.Username,
	)
	if deleteErr != nil {
		h.logger.Warn(logMessageUsersOperation,
			zap.String(logFieldUsersOperation, usersOperationDelete),
			zap.Error(deleteErr))
		context.JSON(502, gin.H{"error": errorValueUserDeleteFailed})
		return
	}
	context.JSON(200, gin.H{"status": "ok"})
}

type resetUserPasswordRequest struct {
	UserID          string `json:"userId"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPassword sets a new password for one user. The new password and its
// confirmation must match and meet the minimum length.
func (h *UserHandlers) ResetPassword(context *gin.Context) {
	var payload resetUserPasswordRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(400, gin.H{"error": errorValueInvalidJSON})
		return
	}
	if strings.TrimSpace(payload.UserID) == "" {
		context.JSON(400, gin.H{"error": errorValueMissingRecordID})
		return
	}
	if len(payload.NewPassword) < passwordMinLength {
		context.JSON(400, gin.H{"error": errorValuePasswordTooShort})
		return
	}
	if payload.NewPassword != payload.ConfirmPassword {
		context.JSON(400, gin.H{"error": errorValuePasswordMismatch})
		return
	}

	currentSession := CurrentSession(context)
	resetErr := h.client.ResetUserPassword(
		context.Request.Context(),
		payload.UserID,
		payload.NewPassword,
		currentSession.DBName,
		currentSession.Role,
		currentSession.Username,
	)
	if resetErr != nil {
		h.logger.Warn(logMessageUsersOperation,
			zap.String(logFieldUsersOperation, usersOperationReset),
			zap.Error(resetErr))
		context.JSON(502, gin.H{"error": errorValuePasswordResetError})
		return
	}
	context.JSON(200, gin.H{"status": "ok"})
}

func assignableRole(role string) bool {
	for _, candidate := range access.AssignableRoles() {
		if candidate == role {
			return true
		}
	}
	return false
}
