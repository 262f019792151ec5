// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package client provides the API Platform service client wrapper.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/clients/requests"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

// Config contains configuration for the API Platform client
type Config struct {
	BaseURL      string
	AuthProvider AuthProvider
	RetryConfig  requests.RequestRetryConfig
}

// APIPlatformClient defines the interface for API Platform operations
type APIPlatformClient interface {
	// Gateway Operations
	RegisterGateway(ctx context.Context, req RegisterGatewayRequest) (*GatewayResponse, error)
	GetGateway(ctx context.Context, gatewayID string) (*GatewayResponse, error)
	ListGateways(ctx context.Context) ([]*GatewayResponse, error)
	UpdateGateway(ctx context.Context, gatewayID string, req UpdateGatewayRequest) (*GatewayResponse, error)
	DeleteGateway(ctx context.Context, gatewayID string) error

	// Gateway Token Operations
	RotateGatewayToken(ctx context.Context, gatewayID string) (*GatewayTokenResponse, error)
	RevokeGatewayToken(ctx context.Context, gatewayID string, tokenID string) error
}

type apiPlatformClient struct {
	baseURL    string
	httpClient requests.HttpClient
}

// NewAPIPlatformClient creates a new API Platform gateway client
func NewAPIPlatformClient(cfg *Config) (APIPlatformClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.AuthProvider == nil {
		return nil, fmt.Errorf("auth provider is required")
	}

	// Configure retry behavior to handle 401 Unauthorized by invalidating the token
	retryConfig := cfg.RetryConfig
	if retryConfig.RetryOnStatus == nil {
		// Custom retry logic that includes 401 handling + default transient errors
		retryConfig.RetryOnStatus = func(statusCode int) bool {
			// Handle 401 by invalidating cached token and retrying
			if statusCode == http.StatusUnauthorized {
				slog.Info("Received 401 Unauthorized, invalidating cached token")
				cfg.AuthProvider.InvalidateToken()
				return true
			}

			return slices.Contains(requests.TransientHTTPErrorCodes, statusCode)
		}
	}

	// Attach a fresh bearer token on every attempt so retries after a 401
	// pick up the re-fetched token rather than replaying the rejected one.
	retryConfig.RequestEditors = append(retryConfig.RequestEditors,
		func(ctx context.Context, req *http.Request) error {
			token, err := cfg.AuthProvider.GetToken(ctx)
			if err != nil {
				return fmt.Errorf("failed to get auth token: %w", err)
			}
			req.Header.Set("Authorization", "Bearer "+token)
			return nil
		})

	return &apiPlatformClient{
		baseURL:    cfg.BaseURL,
		httpClient: requests.NewRetryableHTTPClient(&http.Client{}, retryConfig),
	}, nil
}

// RegisterGateway registers a new gateway in API Platform
func (c *apiPlatformClient) RegisterGateway(ctx context.Context, req RegisterGatewayRequest) (*GatewayResponse, error) {
	slog.Debug("Registering gateway via API Platform", "name", req.Name)

	httpReq := &requests.HttpRequest{
		Name:   "apiplatform.registerGateway",
		URL:    fmt.Sprintf("%s/gateways", c.baseURL),
		Method: http.MethodPost,
	}
	if err := httpReq.SetJSONBody(req); err != nil {
		return nil, fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	var result GatewayResponse
	if err := requests.SendRequest(ctx, c.httpClient, httpReq).ScanResponse(&result, http.StatusCreated); err != nil {
		return nil, mapResponseError(err, ErrorContext{ConflictErr: utils.ErrGatewayAlreadyExists})
	}
	return &result, nil
}

// GetGateway retrieves a gateway by ID from API Platform
func (c *apiPlatformClient) GetGateway(ctx context.Context, gatewayID string) (*GatewayResponse, error) {
	slog.Debug("Getting gateway via API Platform", "gatewayID", gatewayID)

	httpReq := &requests.HttpRequest{
		Name:   "apiplatform.getGateway",
		URL:    fmt.Sprintf("%s/gateways/%s", c.baseURL, gatewayID),
		Method: http.MethodGet,
	}

	var result GatewayResponse
	if err := requests.SendRequest(ctx, c.httpClient, httpReq).ScanResponse(&result, http.StatusOK); err != nil {
		return nil, mapResponseError(err, ErrorContext{NotFoundErr: utils.ErrGatewayNotFound})
	}
	return &result, nil
}

// ListGateways retrieves all gateways from API Platform
func (c *apiPlatformClient) ListGateways(ctx context.Context) ([]*GatewayResponse, error) {
	slog.Debug("Listing gateways via API Platform")

	httpReq := &requests.HttpRequest{
		Name:   "apiplatform.listGateways",
		URL:    fmt.Sprintf("%s/gateways", c.baseURL),
		Method: http.MethodGet,
	}

	var result GatewayListResponse
	if err := requests.SendRequest(ctx, c.httpClient, httpReq).ScanResponse(&result, http.StatusOK); err != nil {
		return nil, mapResponseError(err, ErrorContext{})
	}

	gateways := make([]*GatewayResponse, len(result.List))
	for i := range result.List {
		gateways[i] = &result.List[i]
	}
	return gateways, nil
}

// UpdateGateway updates an existing gateway in API Platform
func (c *apiPlatformClient) UpdateGateway(ctx context.Context, gatewayID string, req UpdateGatewayRequest) (*GatewayResponse, error) {
	slog.Debug("Updating gateway via API Platform", "gatewayID", gatewayID)

	httpReq := &requests.HttpRequest{
		Name:   "apiplatform.updateGateway",
		URL:    fmt.Sprintf("%s/gateways/%s", c.baseURL, gatewayID),
		Method: http.MethodPut,
	}
	if err := httpReq.SetJSONBody(req); err != nil {
		return nil, fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	var result GatewayResponse
	if err := requests.SendRequest(ctx, c.httpClient, httpReq).ScanResponse(&result, http.StatusOK); err != nil {
		return nil, mapResponseError(err, ErrorContext{NotFoundErr: utils.ErrGatewayNotFound})
	}
	return &result, nil
}

// DeleteGateway deletes a gateway from API Platform
func (c *apiPlatformClient) DeleteGateway(ctx context.Context, gatewayID string) error {
	slog.Debug("Deleting gateway via API Platform", "gatewayID", gatewayID)

	httpReq := &requests.HttpRequest{
		Name:   "apiplatform.deleteGateway",
		URL:    fmt.Sprintf("%s/gateways/%s", c.baseURL, gatewayID),
		Method: http.MethodDelete,
	}

	// API Platform returns 204 No Content on success
	if err := requests.SendRequest(ctx, c.httpClient, httpReq).ExpectStatus(http.StatusNoContent, http.StatusOK); err != nil {
		return mapResponseError(err, ErrorContext{NotFoundErr: utils.ErrGatewayNotFound})
	}
	return nil
}

// RotateGatewayToken generates a new token for the gateway and invalidates the old one
func (c *apiPlatformClient) RotateGatewayToken(ctx context.Context, gatewayID string) (*GatewayTokenResponse, error) {
	slog.Debug("Rotating gateway token via API Platform", "gatewayID", gatewayID)

	httpReq := &requests.HttpRequest{
		Name:   "apiplatform.rotateGatewayToken",
		URL:    fmt.Sprintf("%s/gateways/%s/tokens", c.baseURL, gatewayID),
		Method: http.MethodPost,
	}

	var result GatewayTokenResponse
	if err := requests.SendRequest(ctx, c.httpClient, httpReq).ScanResponse(&result, http.StatusCreated); err != nil {
		return nil, mapResponseError(err, ErrorContext{NotFoundErr: utils.ErrGatewayNotFound})
	}
	result.GatewayID = gatewayID
	return &result, nil
}

// RevokeGatewayToken revokes a specific gateway token
func (c *apiPlatformClient) RevokeGatewayToken(ctx context.Context, gatewayID string, tokenID string) error {
	slog.Debug("Revoking gateway token via API Platform", "gatewayID", gatewayID, "tokenID", tokenID)

	httpReq := &requests.HttpRequest{
		Name:   "apiplatform.revokeGatewayToken",
		URL:    fmt.Sprintf("%s/gateways/%s/tokens/%s", c.baseURL, gatewayID, tokenID),
		Method: http.MethodDelete,
	}

	// API Platform returns 204 No Content on success
	if err := requests.SendRequest(ctx, c.httpClient, httpReq).ExpectStatus(http.StatusNoContent, http.StatusOK); err != nil {
		return mapResponseError(err, ErrorContext{NotFoundErr: utils.ErrTokenNotFound})
	}
	return nil
}
