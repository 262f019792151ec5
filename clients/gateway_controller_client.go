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

package clients

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/clients/requests"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

// RequestCredentials holds authentication credentials for gateway API calls
type RequestCredentials struct {
	Username string
	Password string
}

// GatewayControllerClient is a client for communicating with gateway-controller instances
type GatewayControllerClient interface {
	// HealthCheck performs a health check on a gateway controller
	HealthCheck(ctx context.Context, controlPlaneURL string) error

	// LLM Provider Management
	CreateLLMProvider(ctx context.Context, baseURL string, config map[string]interface{}, creds *RequestCredentials) (*LLMProviderResponse, error)
	GetLLMProvider(ctx context.Context, baseURL string, providerID string, creds *RequestCredentials) (*LLMProviderResponse, error)
	ListLLMProviders(ctx context.Context, baseURL string, creds *RequestCredentials) (*LLMProviderListResponse, error)
	UpdateLLMProvider(ctx context.Context, baseURL string, providerID string, config map[string]interface{}, creds *RequestCredentials) (*LLMProviderResponse, error)
	DeleteLLMProvider(ctx context.Context, baseURL string, providerID string, creds *RequestCredentials) error
	GetPolicies(ctx context.Context, baseURL string, creds *RequestCredentials) (*PoliciesResponse, error)
}

// LLMProviderResponse represents the response from gateway when creating/getting a provider
type LLMProviderResponse struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Kind       string                 `json:"kind"`
	Status     string                 `json:"status"`
	Spec       map[string]interface{} `json:"spec,omitempty"`
	CreatedAt  string                 `json:"created_at"`
	DeployedAt string                 `json:"deployed_at,omitempty"`
}

// LLMProviderListResponse represents the response when listing providers
type LLMProviderListResponse struct {
	Providers []LLMProviderResponse `json:"providers"`
}

// PoliciesResponse represents the response from gateway when fetching policies
type PoliciesResponse struct {
	Status   string       `json:"status"`
	Count    int          `json:"count"`
	Policies []PolicyInfo `json:"policies"`
}

// PolicyInfo holds information about an available policy
type PolicyInfo struct {
	Name        string                 `json:"name"`
	Version     string                 `json:"version"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

type gatewayControllerClient struct {
	httpClient requests.HttpClient
}

// NewGatewayControllerClient creates a new gateway controller client.
// All calls go through the retryable client; idempotent methods retry on
// a wider set of statuses than mutating ones.
func NewGatewayControllerClient(retryConfig requests.RequestRetryConfig) GatewayControllerClient {
	baseClient := &http.Client{Timeout: 30 * time.Second}
	return &gatewayControllerClient{
		httpClient: requests.NewRetryableHTTPClient(baseClient, retryConfig),
	}
}

// HealthCheck performs a health check on a gateway controller
func (c *gatewayControllerClient) HealthCheck(ctx context.Context, controlPlaneURL string) error {
	req := &requests.HttpRequest{
		Name:   "gateway controller health check",
		URL:    fmt.Sprintf("%s/health", controlPlaneURL),
		Method: http.MethodGet,
	}

	if err := requests.SendRequest(ctx, c.httpClient, req).ExpectStatus(http.StatusOK); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// CreateLLMProvider creates a new LLM provider on the gateway
func (c *gatewayControllerClient) CreateLLMProvider(ctx context.Context, baseURL string, config map[string]interface{}, creds *RequestCredentials) (*LLMProviderResponse, error) {
	req := &requests.HttpRequest{
		Name:   "create LLM provider",
		URL:    fmt.Sprintf("%s/llm-providers", baseURL),
		Method: http.MethodPost,
	}
	if err := req.SetJSONBody(config); err != nil {
		return nil, fmt.Errorf("failed to marshal provider config: %w", err)
	}
	setBasicAuth(req, creds)

	var result LLMProviderResponse
	if err := requests.SendRequest(ctx, c.httpClient, req).ScanResponse(&result, http.StatusCreated); err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	return &result, nil
}

// GetLLMProvider retrieves an LLM provider from the gateway
func (c *gatewayControllerClient) GetLLMProvider(ctx context.Context, baseURL string, providerID string, creds *RequestCredentials) (*LLMProviderResponse, error) {
	req := &requests.HttpRequest{
		Name:   "get LLM provider",
		URL:    fmt.Sprintf("%s/llm-providers/%s", baseURL, providerID),
		Method: http.MethodGet,
	}
	setBasicAuth(req, creds)

	var result LLMProviderResponse
	if err := requests.SendRequest(ctx, c.httpClient, req).ScanResponse(&result, http.StatusOK); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", utils.ErrProviderNotFound, providerID)
		}
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	return &result, nil
}

// ListLLMProviders lists all LLM providers on the gateway
func (c *gatewayControllerClient) ListLLMProviders(ctx context.Context, baseURL string, creds *RequestCredentials) (*LLMProviderListResponse, error) {
	req := &requests.HttpRequest{
		Name:   "list LLM providers",
		URL:    fmt.Sprintf("%s/llm-providers", baseURL),
		Method: http.MethodGet,
	}
	setBasicAuth(req, creds)

	var result LLMProviderListResponse
	if err := requests.SendRequest(ctx, c.httpClient, req).ScanResponse(&result, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	return &result, nil
}

// UpdateLLMProvider updates an existing LLM provider on the gateway
func (c *gatewayControllerClient) UpdateLLMProvider(ctx context.Context, baseURL string, providerID string, config map[string]interface{}, creds *RequestCredentials) (*LLMProviderResponse, error) {
	req := &requests.HttpRequest{
		Name:   "update LLM provider",
		URL:    fmt.Sprintf("%s/llm-providers/%s", baseURL, providerID),
		Method: http.MethodPut,
	}
	if err := req.SetJSONBody(config); err != nil {
		return nil, fmt.Errorf("failed to marshal provider config: %w", err)
	}
	setBasicAuth(req, creds)

	var result LLMProviderResponse
	if err := requests.SendRequest(ctx, c.httpClient, req).ScanResponse(&result, http.StatusOK); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", utils.ErrProviderNotFound, providerID)
		}
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}
	return &result, nil
}

// DeleteLLMProvider deletes an LLM provider from the gateway
func (c *gatewayControllerClient) DeleteLLMProvider(ctx context.Context, baseURL string, providerID string, creds *RequestCredentials) error {
	req := &requests.HttpRequest{
		Name:   "delete LLM provider",
		URL:    fmt.Sprintf("%s/llm-providers/%s", baseURL, providerID),
		Method: http.MethodDelete,
	}
	setBasicAuth(req, creds)

	if err := requests.SendRequest(ctx, c.httpClient, req).ExpectStatus(http.StatusOK, http.StatusNoContent); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", utils.ErrProviderNotFound, providerID)
		}
		return fmt.Errorf("failed to delete provider: %w", err)
	}
	return nil
}

// GetPolicies retrieves available policies from the gateway
func (c *gatewayControllerClient) GetPolicies(ctx context.Context, baseURL string, creds *RequestCredentials) (*PoliciesResponse, error) {
	req := &requests.HttpRequest{
		Name:   "get gateway policies",
		URL:    fmt.Sprintf("%s/policies", baseURL),
		Method: http.MethodGet,
	}
	setBasicAuth(req, creds)

	var result PoliciesResponse
	if err := requests.SendRequest(ctx, c.httpClient, req).ScanResponse(&result, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to get policies: %w", err)
	}
	return &result, nil
}

func setBasicAuth(req *requests.HttpRequest, creds *RequestCredentials) {
	if creds == nil {
		return
	}
	auth := creds.Username + ":" + creds.Password
	req.SetHeader("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(auth)))
}

func isNotFound(err error) bool {
	var httpErr *requests.HttpError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}
