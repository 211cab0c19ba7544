package backend

import (
	"context"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

const (
	endpointLogin                 = "customerLogin"
	endpointGetMasterUserByName   = "getMasterUserByUsername"
	collectionMasterUsers         = "masterUsers"
	errorMessageEmptyLoginPayload = "backend: empty login response"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	DBName   string `json:"dbName"`
}

// Login verifies credentials against the upstream backend and returns the
// issued session fields. Authorization decisions stay upstream; this layer
// only stores what comes back.
func (client *Client) Login(ctx context.Context, username string, password string) (model.Session, error) {
	var response loginResponse
	if callErr := client.postJSON(ctx, endpointLogin, loginRequest{Username: username, Password: password}, &response); callErr != nil {
		return model.Session{}, callErr
	}
	session := model.Session{
		Username: response.Username,
		Role:     response.Role,
		DBName:   response.DBName,
	}
	return session.Normalized(), nil
}

type masterUserLookupRequest struct {
	Username string `json:"username"`
}

type masterUserRecord struct {
	Username string         `json:"username"`
	DBName   string         `json:"dbName"`
	Devices  []model.Device `json:"devices"`
}

// MasterUserDevices returns the devices registered to the master account that
// owns the tenant database.
func (client *Client) MasterUserDevices(ctx context.Context, tenantDBName string) ([]model.Device, error) {
	payload := queryRequest{
		DBName:         client.masterDatabase,
		CollectionName: collectionMasterUsers,
		Query:          map[string]any{"dbName": tenantDBName},
	}
	var masterUsers []masterUserRecord
	if callErr := client.postJSON(ctx, endpointQueries, payload, &masterUsers); callErr != nil {
		return nil, callErr
	}
	if len(masterUsers) == 0 {
		return nil, nil
	}
	return masterUsers[0].Devices, nil
}
