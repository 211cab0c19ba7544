package backend

import (
	"context"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

const (
	endpointGetUsers          = "customerGetUsers"
	endpointCreateUser        = "customerCreateUser"
	endpointUpdateRecord      = "customerUpdateRecord"
	endpointDeleteUser        = "customerDeleteUser"
	endpointResetUserPassword = "customerResetUserPassword"
	collectionUsers           = "users"
)

type getUsersRequest struct {
	DBName string `json:"dbName"`
	Role   string `json:"role"`
}

// GetUsers lists the tenant's user accounts. Passwords are never included.
func (client *Client) GetUsers(ctx context.Context, dbName string, role string) ([]model.User, error) {
	var users []model.User
	if callErr := client.postJSON(ctx, endpointGetUsers, getUsersRequest{DBName: dbName, Role: role}, &users); callErr != nil {
		return nil, callErr
	}
	return users, nil
}

// NewUser carries the fields for one user creation.
type NewUser struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DBName      string `json:"dbName"`
	CreatorRole string `json:"creatorRole"`
}

// CreateUser registers a tenant user account.
func (client *Client) CreateUser(ctx context.Context, user NewUser) error {
	return client.postJSON(ctx, endpointCreateUser, user, nil)
}

type updateRecordRequest struct {
	RecordID       string            `json:"recordId"`
	UpdateData     map[string]string `json:"updateData"`
	DBName         string            `json:"dbName"`
	CollectionName string            `json:"collectionName"`
	Role           string            `json:"role"`
	Username       string            `json:"username"`
}

// UpdateUser applies edited fields to one user record.
func (client *Client) UpdateUser(ctx context.Context, recordID string, updateData map[string]string, dbName string, role string, username string) error {
	payload := updateRecordRequest{
		RecordID:       recordID,
		UpdateData:     updateData,
		DBName:         dbName,
		CollectionName: collectionUsers,
		Role:           role,
		Username:       username,
	}
	var response modifiedCountResponse
	if callErr := client.postJSON(ctx, endpointUpdateRecord, payload, &response); callErr != nil {
		return callErr
	}
	if response.ModifiedCount == 0 {
		return &APIError{StatusCode: 0, Message: errorValueNothingModified}
	}
	return nil
}

type deleteUserRequest struct {
	RecordID string `json:"recordId"`
	DBName   string `json:"dbName"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// DeleteUser removes one user record.
func (client *Client) DeleteUser(ctx context.Context, recordID string, dbName string, role string, username string) error {
	payload := deleteUserRequest{RecordID: recordID, DBName: dbName, Role: role, Username: username}
	var response deletedCountResponse
	if callErr := client.postJSON(ctx, endpointDeleteUser, payload, &response); callErr != nil {
		return callErr
	}
	if response.DeletedCount == 0 {
		return &APIError{StatusCode: 0, Message: errorValueNothingDeleted}
	}
	return nil
}

type resetPasswordRequest struct {
	UserID      string `json:"userId"`
	NewPassword string `json:"newPassword"`
	DBName      string `json:"dbName"`
	Role        string `json:"role"`
	Username    string `json:"username"`
}

// ResetUserPassword is the write-only password reset operation.
func (client *Client) ResetUserPassword(ctx context.Context, userID string, newPassword string, dbName string, role string, username string) error {
	payload := resetPasswordRequest{
		UserID:      userID,
		NewPassword: newPassword,
		DBName:      dbName,
		Role:        role,
		Username:    username,
	}
	return client.postJSON(ctx, endpointResetUserPassword, payload, nil)
}
