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

package onpremise

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/clients"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway/credstore"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/models"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

type stubCredStore struct {
	info *credstore.ConnectionInfo
	err  error
}

func (s *stubCredStore) GetConnectionInfo(ctx context.Context, gatewayID string) (*credstore.ConnectionInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

type stubControllerClient struct {
	clients.GatewayControllerClient

	healthErr    error
	createResp   *clients.LLMProviderResponse
	createErr    error
	getResp      *clients.LLMProviderResponse
	listResp     *clients.LLMProviderListResponse
	policiesResp *clients.PoliciesResponse
	deleteErr    error

	lastBaseURL string
	lastCreds   *clients.RequestCredentials
}

func (s *stubControllerClient) HealthCheck(ctx context.Context, controlPlaneURL string) error {
	s.lastBaseURL = controlPlaneURL
	return s.healthErr
}

func (s *stubControllerClient) CreateLLMProvider(ctx context.Context, baseURL string, config map[string]interface{}, creds *clients.RequestCredentials) (*clients.LLMProviderResponse, error) {
	s.lastBaseURL = baseURL
	s.lastCreds = creds
	return s.createResp, s.createErr
}

func (s *stubControllerClient) GetLLMProvider(ctx context.Context, baseURL string, providerID string, creds *clients.RequestCredentials) (*clients.LLMProviderResponse, error) {
	s.lastBaseURL = baseURL
	s.lastCreds = creds
	return s.getResp, nil
}

func (s *stubControllerClient) ListLLMProviders(ctx context.Context, baseURL string, creds *clients.RequestCredentials) (*clients.LLMProviderListResponse, error) {
	s.lastBaseURL = baseURL
	s.lastCreds = creds
	return s.listResp, nil
}

func (s *stubControllerClient) DeleteLLMProvider(ctx context.Context, baseURL string, providerID string, creds *clients.RequestCredentials) error {
	s.lastBaseURL = baseURL
	s.lastCreds = creds
	return s.deleteErr
}

func (s *stubControllerClient) GetPolicies(ctx context.Context, baseURL string, creds *clients.RequestCredentials) (*clients.PoliciesResponse, error) {
	s.lastBaseURL = baseURL
	s.lastCreds = creds
	return s.policiesResp, nil
}

func testConnectionInfo() *credstore.ConnectionInfo {
	return &credstore.ConnectionInfo{
		Gateway: &models.Gateway{Name: "prod-gw"},
		Credentials: &models.GatewayCredentials{
			Username: "admin",
			Password: "secret",
		},
		ControlPlaneURL: "https://gw.internal:9443",
	}
}

func newTestAdapter(t *testing.T, creds credstore.Store, client clients.GatewayControllerClient) gateway.IGatewayAdapter {
	t.Helper()
	adapter, err := NewOnPremiseAdapter(gateway.AdapterConfig{Type: "on-premise"}, creds, client, slog.Default())
	require.NoError(t, err)
	return adapter
}

func TestNewOnPremiseAdapter_Validation(t *testing.T) {
	_, err := NewOnPremiseAdapter(gateway.AdapterConfig{}, nil, &stubControllerClient{}, slog.Default())
	assert.ErrorContains(t, err, "credential store is required")

	_, err = NewOnPremiseAdapter(gateway.AdapterConfig{}, &stubCredStore{}, nil, slog.Default())
	assert.ErrorContains(t, err, "gateway controller client is required")
}

func TestOnPremiseAdapter_CheckHealth(t *testing.T) {
	t.Run("Reachable gateway reports ACTIVE", func(t *testing.T) {
		adapter := newTestAdapter(t, &stubCredStore{}, &stubControllerClient{})

		status, err := adapter.CheckHealth(context.Background(), "https://gw.internal:9443")
		require.NoError(t, err)
		assert.Equal(t, gateway.HealthStatusActive, status.Status)
		assert.Empty(t, status.ErrorMessage)
		assert.False(t, status.CheckedAt.IsZero())
	})

	t.Run("Unreachable gateway reports ERROR without failing the call", func(t *testing.T) {
		adapter := newTestAdapter(t, &stubCredStore{}, &stubControllerClient{
			healthErr: errors.New("connection refused"),
		})

		status, err := adapter.CheckHealth(context.Background(), "https://gw.internal:9443")
		require.NoError(t, err)
		assert.Equal(t, gateway.HealthStatusError, status.Status)
		assert.Contains(t, status.ErrorMessage, "gateway endpoint unreachable")
	})
}

func TestOnPremiseAdapter_DeployProvider(t *testing.T) {
	t.Run("Resolves credentials and deploys through the controller", func(t *testing.T) {
		client := &stubControllerClient{
			createResp: &clients.LLMProviderResponse{ID: "prov-1", Status: "deployed"},
		}
		adapter := newTestAdapter(t, &stubCredStore{info: testConnectionInfo()}, client)

		result, err := adapter.DeployProvider(context.Background(), "gw-1", &gateway.ProviderDeploymentConfig{
			Handle:        "openai-prod",
			Template:      "openai",
			Configuration: map[string]interface{}{"name": "openai-prod"},
		})
		require.NoError(t, err)
		assert.Equal(t, "prov-1", result.DeploymentID)
		assert.Equal(t, "deployed", result.Status)
		assert.Equal(t, "https://gw.internal:9443", client.lastBaseURL)
		require.NotNil(t, client.lastCreds)
		assert.Equal(t, "admin", client.lastCreds.Username)
	})

	t.Run("Credential store errors pass through unwrapped", func(t *testing.T) {
		adapter := newTestAdapter(t, &stubCredStore{err: utils.ErrGatewayNotFound}, &stubControllerClient{})

		_, err := adapter.DeployProvider(context.Background(), "gw-missing", &gateway.ProviderDeploymentConfig{})
		assert.ErrorIs(t, err, utils.ErrGatewayNotFound)
	})

	t.Run("Controller failure is wrapped", func(t *testing.T) {
		adapter := newTestAdapter(t, &stubCredStore{info: testConnectionInfo()}, &stubControllerClient{
			createErr: errors.New("bad gateway"),
		})

		_, err := adapter.DeployProvider(context.Background(), "gw-1", &gateway.ProviderDeploymentConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create provider on gateway")
	})
}

func TestOnPremiseAdapter_ProviderStatus(t *testing.T) {
	t.Run("Parses RFC3339 deployment timestamps", func(t *testing.T) {
		deployedAt := time.Date(2026, 2, 10, 12, 30, 0, 0, time.UTC)
		adapter := newTestAdapter(t, &stubCredStore{info: testConnectionInfo()}, &stubControllerClient{
			getResp: &clients.LLMProviderResponse{
				ID:         "prov-1",
				Name:       "openai-prod",
				Status:     "deployed",
				DeployedAt: deployedAt.Format(time.RFC3339),
			},
		})

		status, err := adapter.GetProviderStatus(context.Background(), "gw-1", "prov-1")
		require.NoError(t, err)
		require.NotNil(t, status.DeployedAt)
		assert.True(t, status.DeployedAt.Equal(deployedAt))
	})

	t.Run("Unparsable timestamps are dropped", func(t *testing.T) {
		adapter := newTestAdapter(t, &stubCredStore{info: testConnectionInfo()}, &stubControllerClient{
			getResp: &clients.LLMProviderResponse{
				ID:         "prov-1",
				DeployedAt: "yesterday",
			},
		})

		status, err := adapter.GetProviderStatus(context.Background(), "gw-1", "prov-1")
		require.NoError(t, err)
		assert.Nil(t, status.DeployedAt)
	})
}

func TestOnPremiseAdapter_ListAndPolicies(t *testing.T) {
	info := testConnectionInfo()

	t.Run("ListProviders maps every entry", func(t *testing.T) {
		adapter := newTestAdapter(t, &stubCredStore{info: info}, &stubControllerClient{
			listResp: &clients.LLMProviderListResponse{
				Providers: []clients.LLMProviderResponse{
					{ID: "prov-1", Name: "openai-prod"},
					{ID: "prov-2", Name: "anthropic-prod"},
				},
			},
		})

		providers, err := adapter.ListProviders(context.Background(), "gw-1")
		require.NoError(t, err)
		require.Len(t, providers, 2)
		assert.Equal(t, "anthropic-prod", providers[1].Name)
	})

	t.Run("GetPolicies maps policy metadata", func(t *testing.T) {
		adapter := newTestAdapter(t, &stubCredStore{info: info}, &stubControllerClient{
			policiesResp: &clients.PoliciesResponse{
				Count: 1,
				Policies: []clients.PolicyInfo{
					{Name: "basic-ratelimit", Version: "v0.1.1"},
				},
			},
		})

		policies, err := adapter.GetPolicies(context.Background(), "gw-1")
		require.NoError(t, err)
		require.Len(t, policies, 1)
		assert.Equal(t, "basic-ratelimit", policies[0].Name)
	})
}

func TestOnPremiseAdapter_Undeploy(t *testing.T) {
	adapter := newTestAdapter(t, &stubCredStore{info: testConnectionInfo()}, &stubControllerClient{
		deleteErr: utils.ErrProviderNotFound,
	})

	err := adapter.UndeployProvider(context.Background(), "gw-1", "prov-missing")
	assert.ErrorIs(t, err, utils.ErrProviderNotFound)
}
