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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/clients/requests"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

func fastControllerRetryConfig() requests.RequestRetryConfig {
	return requests.RequestRetryConfig{
		RetryWaitMin:     time.Millisecond,
		RetryWaitMax:     2 * time.Millisecond,
		RetryAttemptsMax: 2,
		AttemptTimeout:   time.Second,
	}
}

func TestGatewayControllerClient_HealthCheck(t *testing.T) {
	t.Run("Healthy controller returns no error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewGatewayControllerClient(fastControllerRetryConfig())
		err := client.HealthCheck(context.Background(), server.URL)
		assert.NoError(t, err)
	})

	t.Run("Transient 503 is retried until the controller recovers", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewGatewayControllerClient(fastControllerRetryConfig())
		err := client.HealthCheck(context.Background(), server.URL)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("Unreachable controller returns an error", func(t *testing.T) {
		client := NewGatewayControllerClient(fastControllerRetryConfig())
		err := client.HealthCheck(context.Background(), "http://127.0.0.1:1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "health check failed")
	})
}

func TestGatewayControllerClient_ProviderLifecycle(t *testing.T) {
	expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret"))
	creds := &RequestCredentials{Username: "admin", Password: "secret"}

	t.Run("Create sends config with basic auth and decodes the response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/llm-providers", r.URL.Path)
			assert.Equal(t, expectedAuth, r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "openai-prod", payload["name"])

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(LLMProviderResponse{
				ID:     "prov-123",
				Name:   "openai-prod",
				Kind:   "openai",
				Status: "deployed",
			})
		}))
		defer server.Close()

		client := NewGatewayControllerClient(fastControllerRetryConfig())
		resp, err := client.CreateLLMProvider(context.Background(), server.URL, map[string]interface{}{
			"name":     "openai-prod",
			"template": "openai",
		}, creds)
		require.NoError(t, err)
		assert.Equal(t, "prov-123", resp.ID)
		assert.Equal(t, "deployed", resp.Status)
	})

	t.Run("Get returns ErrProviderNotFound on 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewGatewayControllerClient(fastControllerRetryConfig())
		resp, err := client.GetLLMProvider(context.Background(), server.URL, "missing", creds)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, utils.ErrProviderNotFound)
	})

	t.Run("List decodes the provider collection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/llm-providers", r.URL.Path)
			_ = json.NewEncoder(w).Encode(LLMProviderListResponse{
				Providers: []LLMProviderResponse{
					{ID: "prov-1", Name: "openai-prod"},
					{ID: "prov-2", Name: "anthropic-prod"},
				},
			})
		}))
		defer server.Close()

		client := NewGatewayControllerClient(fastControllerRetryConfig())
		resp, err := client.ListLLMProviders(context.Background(), server.URL, creds)
		require.NoError(t, err)
		require.Len(t, resp.Providers, 2)
		assert.Equal(t, "anthropic-prod", resp.Providers[1].Name)
	})

	t.Run("Update targets the provider path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/llm-providers/prov-1", r.URL.Path)
			_ = json.NewEncoder(w).Encode(LLMProviderResponse{ID: "prov-1", Status: "deployed"})
		}))
		defer server.Close()

		client := NewGatewayControllerClient(fastControllerRetryConfig())
		resp, err := client.UpdateLLMProvider(context.Background(), server.URL, "prov-1", map[string]interface{}{"rateLimit": 100}, creds)
		require.NoError(t, err)
		assert.Equal(t, "prov-1", resp.ID)
	})

	t.Run("Delete accepts 204 and maps 404 to ErrProviderNotFound", func(t *testing.T) {
		var deleted atomic.Bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			if deleted.Swap(true) {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := NewGatewayControllerClient(fastControllerRetryConfig())
		require.NoError(t, client.DeleteLLMProvider(context.Background(), server.URL, "prov-1", creds))

		err := client.DeleteLLMProvider(context.Background(), server.URL, "prov-1", creds)
		assert.ErrorIs(t, err, utils.ErrProviderNotFound)
	})
}

func TestGatewayControllerClient_GetPolicies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/policies", r.URL.Path)
		_ = json.NewEncoder(w).Encode(PoliciesResponse{
			Status: "success",
			Count:  1,
			Policies: []PolicyInfo{
				{Name: "rate-limit", Version: "v1", Description: "Token bucket rate limiting"},
			},
		})
	}))
	defer server.Close()

	client := NewGatewayControllerClient(fastControllerRetryConfig())
	resp, err := client.GetPolicies(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "rate-limit", resp.Policies[0].Name)
}
