// Package backend is the HTTP client for the upstream Freya API. Every call
// is a POST with a JSON body to <base URL>/<endpoint> and a JSON response.
// Every request carries the tenant database name; mutating requests carry the
// caller's role and username for backend-side authorization and audit logging.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultRequestTimeout    = 30 * time.Second
	defaultMasterDatabase    = "Sasaki_Coating_MasterDB"
	contentTypeJSON          = "application/json"
	headerContentType        = "Content-Type"
	errorMessageMissingBase  = "backend: missing base URL"
	errorMessageBuildRequest = "backend: build request"
	errorMessageSendRequest  = "backend: send request"
	errorMessageDecodeBody   = "backend: decode response"
	maxErrorBodyBytes        = 4096
)

// ErrMissingBaseURL indicates the backend base URL configuration was omitted.
var ErrMissingBaseURL = errors.New(errorMessageMissingBase)

// APIError is a non-2xx backend response with its decoded error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (apiError *APIError) Error() string {
	if apiError.Message == "" {
		return fmt.Sprintf("backend: status %d", apiError.StatusCode)
	}
	return fmt.Sprintf("backend: status %d: %s", apiError.StatusCode, apiError.Message)
}

// Config captures connection settings for the upstream backend.
type Config struct {
	BaseURL string
	// MasterDatabase is the platform-wide database holding master user
	// accounts and their registered devices.
	MasterDatabase string
	Timeout        time.Duration
}

// Client issues requests against the upstream Freya API.
type Client struct {
	baseURL        string
	masterDatabase string
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewClient builds a Client from configuration, applying the default timeout
// and master database name when unset.
func NewClient(configuration Config, logger *zap.Logger) (*Client, error) {
	trimmedBaseURL := strings.TrimRight(strings.TrimSpace(configuration.BaseURL), "/")
	if trimmedBaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := configuration.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	masterDatabase := strings.TrimSpace(configuration.MasterDatabase)
	if masterDatabase == "" {
		masterDatabase = defaultMasterDatabase
	}
	return &Client{
		baseURL:        trimmedBaseURL,
		masterDatabase: masterDatabase,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
	}, nil
}

// MasterDatabase returns the platform-wide master database name.
func (client *Client) MasterDatabase() string {
	return client.masterDatabase
}

func (client *Client) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	encodedPayload, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return fmt.Errorf("%s: %w", errorMessageBuildRequest, marshalErr)
	}

	requestURL := client.baseURL + "/" + endpoint
	request, requestErr := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(encodedPayload))
	if requestErr != nil {
		return fmt.Errorf("%s: %w", errorMessageBuildRequest, requestErr)
	}
	request.Header.Set(headerContentType, contentTypeJSON)

	response, sendErr := client.httpClient.Do(request)
	if sendErr != nil {
		return fmt.Errorf("%s: %w", errorMessageSendRequest, sendErr)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return client.decodeError(endpoint, response)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if decodeErr := json.NewDecoder(response.Body).Decode(out); decodeErr != nil {
		return fmt.Errorf("%s %s: %w", errorMessageDecodeBody, endpoint, decodeErr)
	}
	return nil
}

func (client *Client) decodeError(endpoint string, response *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))

	var errorBody struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &errorBody)

	client.logger.Warn("backend_error",
		zap.String("endpoint", endpoint),
		zap.Int("status", response.StatusCode),
		zap.String("message", errorBody.Error),
	)

	return &APIError{StatusCode: response.StatusCode, Message: errorBody.Error}
}
