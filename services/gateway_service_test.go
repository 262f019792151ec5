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

package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/models"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

// stubGatewayRepo is an in-memory GatewayRepository for service tests
type stubGatewayRepo struct {
	gateways      map[uuid.UUID]*models.Gateway
	tokens        map[uuid.UUID]*models.GatewayToken
	prefixLookups int
}

func newStubGatewayRepo() *stubGatewayRepo {
	return &stubGatewayRepo{
		gateways: make(map[uuid.UUID]*models.Gateway),
		tokens:   make(map[uuid.UUID]*models.GatewayToken),
	}
}

func (r *stubGatewayRepo) CreateGateway(ctx context.Context, gw *models.Gateway) error {
	for _, existing := range r.gateways {
		if existing.OrganizationName == gw.OrganizationName && existing.Name == gw.Name {
			return utils.ErrGatewayAlreadyExists
		}
	}
	now := time.Now()
	gw.CreatedAt = now
	gw.UpdatedAt = now
	r.gateways[gw.UUID] = gw
	return nil
}

func (r *stubGatewayRepo) GetGatewayByUUID(ctx context.Context, gatewayUUID uuid.UUID) (*models.Gateway, error) {
	gw, ok := r.gateways[gatewayUUID]
	if !ok {
		return nil, utils.ErrGatewayNotFound
	}
	copied := *gw
	return &copied, nil
}

func (r *stubGatewayRepo) GetGatewayByName(ctx context.Context, orgName, name string) (*models.Gateway, error) {
	for _, gw := range r.gateways {
		if gw.OrganizationName == orgName && gw.Name == name {
			copied := *gw
			return &copied, nil
		}
	}
	return nil, utils.ErrGatewayNotFound
}

func (r *stubGatewayRepo) ListGateways(ctx context.Context, orgName string, limit, offset int) ([]*models.Gateway, int64, error) {
	var out []*models.Gateway
	for _, gw := range r.gateways {
		if gw.OrganizationName == orgName {
			out = append(out, gw)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubGatewayRepo) UpdateGateway(ctx context.Context, gw *models.Gateway) error {
	if _, ok := r.gateways[gw.UUID]; !ok {
		return utils.ErrGatewayNotFound
	}
	copied := *gw
	r.gateways[gw.UUID] = &copied
	return nil
}

func (r *stubGatewayRepo) DeleteGateway(ctx context.Context, gatewayUUID uuid.UUID) error {
	if _, ok := r.gateways[gatewayUUID]; !ok {
		return utils.ErrGatewayNotFound
	}
	delete(r.gateways, gatewayUUID)
	return nil
}

func (r *stubGatewayRepo) CreateGatewayToken(ctx context.Context, token *models.GatewayToken) error {
	token.CreatedAt = time.Now()
	r.tokens[token.UUID] = token
	return nil
}

func (r *stubGatewayRepo) GetActiveTokenByPrefix(ctx context.Context, prefix string) (*models.GatewayToken, error) {
	r.prefixLookups++
	for _, t := range r.tokens {
		if t.TokenPrefix == prefix && t.Status == "active" {
			copied := *t
			return &copied, nil
		}
	}
	return nil, utils.ErrTokenNotFound
}

func (r *stubGatewayRepo) GetTokenByUUID(ctx context.Context, tokenUUID uuid.UUID) (*models.GatewayToken, error) {
	t, ok := r.tokens[tokenUUID]
	if !ok {
		return nil, utils.ErrTokenNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *stubGatewayRepo) ListActiveTokensByGateway(ctx context.Context, gatewayUUID uuid.UUID) ([]*models.GatewayToken, error) {
	var out []*models.GatewayToken
	for _, t := range r.tokens {
		if t.GatewayUUID == gatewayUUID && t.Status == "active" {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubGatewayRepo) RevokeToken(ctx context.Context, token *models.GatewayToken) error {
	stored, ok := r.tokens[token.UUID]
	if !ok || stored.Status != "active" {
		return utils.ErrTokenAlreadyRevoked
	}
	stored.Revoke()
	return nil
}

// stubServiceAdapter is a minimal IGatewayAdapter for gateway service tests
type stubServiceAdapter struct {
	validateErr   error
	validatedURLs []string
	health        *gateway.HealthStatus
	healthErr     error
}

func (a *stubServiceAdapter) GetAdapterType() string { return "on-premise" }
func (a *stubServiceAdapter) Close() error           { return nil }

func (a *stubServiceAdapter) ValidateGatewayEndpoint(ctx context.Context, controlPlaneURL string) error {
	a.validatedURLs = append(a.validatedURLs, controlPlaneURL)
	return a.validateErr
}

func (a *stubServiceAdapter) CheckHealth(ctx context.Context, controlPlaneURL string) (*gateway.HealthStatus, error) {
	return a.health, a.healthErr
}

func (a *stubServiceAdapter) DeployProvider(ctx context.Context, gatewayID string, config *gateway.ProviderDeploymentConfig) (*gateway.ProviderDeploymentResult, error) {
	return nil, nil
}

func (a *stubServiceAdapter) UpdateProvider(ctx context.Context, gatewayID string, providerID string, config *gateway.ProviderDeploymentConfig) (*gateway.ProviderDeploymentResult, error) {
	return nil, nil
}

func (a *stubServiceAdapter) UndeployProvider(ctx context.Context, gatewayID string, providerID string) error {
	return nil
}

func (a *stubServiceAdapter) GetProviderStatus(ctx context.Context, gatewayID string, providerID string) (*gateway.ProviderStatus, error) {
	return nil, nil
}

func (a *stubServiceAdapter) ListProviders(ctx context.Context, gatewayID string) ([]*gateway.ProviderStatus, error) {
	return nil, nil
}

func (a *stubServiceAdapter) GetPolicies(ctx context.Context, gatewayID string) ([]*gateway.PolicyInfo, error) {
	return nil, nil
}

func testEncryptionKey() []byte {
	key := make([]byte, utils.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func newTestGatewayService(repo *stubGatewayRepo, adapter *stubServiceAdapter) GatewayService {
	return NewGatewayService(repo, adapter, testEncryptionKey(), slog.Default())
}

func TestRegisterGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("registers gateway with encrypted credentials", func(t *testing.T) {
		repo := newStubGatewayRepo()
		adapter := &stubServiceAdapter{}
		svc := newTestGatewayService(repo, adapter)

		resp, err := svc.RegisterGateway(ctx, "acme", &models.CreateGatewayRequest{
			Name:        "prod-gw",
			DisplayName: "Production Gateway",
			AdapterConfig: map[string]interface{}{
				"controlPlaneUrl": "https://gw.internal:9443",
			},
			Credentials: &models.GatewayCredentials{Username: "admin", Password: "secret"},
		})
		require.NoError(t, err)

		assert.Equal(t, "prod-gw", resp.Name)
		assert.Equal(t, string(models.GatewayStatusActive), resp.Status)
		assert.Equal(t, "https://gw.internal:9443", resp.ControlPlaneURL)
		assert.True(t, resp.HasCredentials)
		assert.Equal(t, []string{"https://gw.internal:9443"}, adapter.validatedURLs)

		// Stored credentials must be decryptable with the same key
		gwUUID := uuid.MustParse(resp.ID)
		stored := repo.gateways[gwUUID]
		creds, err := utils.DecryptCredentials(stored.CredentialsEncrypted, testEncryptionKey())
		require.NoError(t, err)
		assert.Equal(t, "admin", creds.Username)
	})

	t.Run("rejects duplicate gateway name in organization", func(t *testing.T) {
		repo := newStubGatewayRepo()
		svc := newTestGatewayService(repo, &stubServiceAdapter{})

		_, err := svc.RegisterGateway(ctx, "acme", &models.CreateGatewayRequest{Name: "gw"})
		require.NoError(t, err)

		_, err = svc.RegisterGateway(ctx, "acme", &models.CreateGatewayRequest{Name: "gw"})
		assert.ErrorIs(t, err, utils.ErrGatewayAlreadyExists)

		// Same name in another organization is fine
		_, err = svc.RegisterGateway(ctx, "other", &models.CreateGatewayRequest{Name: "gw"})
		assert.NoError(t, err)
	})

	t.Run("rejects unreachable control plane endpoint", func(t *testing.T) {
		repo := newStubGatewayRepo()
		adapter := &stubServiceAdapter{validateErr: utils.ErrGatewayUnreachable}
		svc := newTestGatewayService(repo, adapter)

		_, err := svc.RegisterGateway(ctx, "acme", &models.CreateGatewayRequest{
			Name:          "gw",
			AdapterConfig: map[string]interface{}{"controlPlaneUrl": "https://down.example"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gateway endpoint unreachable")
		assert.Empty(t, repo.gateways)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc := newTestGatewayService(newStubGatewayRepo(), &stubServiceAdapter{})
		_, err := svc.RegisterGateway(ctx, "acme", &models.CreateGatewayRequest{})
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
	})
}

func TestGetGateway(t *testing.T) {
	ctx := context.Background()
	repo := newStubGatewayRepo()
	svc := newTestGatewayService(repo, &stubServiceAdapter{})

	created, err := svc.RegisterGateway(ctx, "acme", &models.CreateGatewayRequest{Name: "gw"})
	require.NoError(t, err)

	t.Run("returns gateway by ID", func(t *testing.T) {
		resp, err := svc.GetGateway(ctx, "acme", created.ID)
		require.NoError(t, err)
		assert.Equal(t, "gw", resp.Name)
	})

	t.Run("rejects malformed ID", func(t *testing.T) {
		_, err := svc.GetGateway(ctx, "acme", "not-a-uuid")
		assert.ErrorIs(t, err, utils.ErrInvalidGatewayID)
	})

	t.Run("hides gateways of other organizations", func(t *testing.T) {
		_, err := svc.GetGateway(ctx, "other", created.ID)
		assert.ErrorIs(t, err, utils.ErrGatewayNotFound)
	})
}

func TestUpdateGateway(t *testing.T) {
	ctx := context.Background()

	newGateway := func(t *testing.T, adapter *stubServiceAdapter) (GatewayService, *stubGatewayRepo, string) {
		t.Helper()
		repo := newStubGatewayRepo()
		svc := newTestGatewayService(repo, adapter)
		created, err := svc.RegisterGateway(ctx, "acme", &models.CreateGatewayRequest{
			Name:          "gw",
			DisplayName:   "Gateway",
			AdapterConfig: map[string]interface{}{"controlPlaneUrl": "https://gw.internal:9443"},
		})
		require.NoError(t, err)
		return svc, repo, created.ID
	}

	t.Run("applies partial updates", func(t *testing.T) {
		svc, _, id := newGateway(t, &stubServiceAdapter{})

		displayName := "Renamed"
		critical := true
		status := string(models.GatewayStatusMaintenance)
		resp, err := svc.UpdateGateway(ctx, "acme", id, &models.UpdateGatewayRequest{
			DisplayName: &displayName,
			IsCritical:  &critical,
			Status:      &status,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", resp.DisplayName)
		assert.True(t, resp.IsCritical)
		assert.Equal(t, status, resp.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc, _, id := newGateway(t, &stubServiceAdapter{})
		status := "BROKEN"
		_, err := svc.UpdateGateway(ctx, "acme", id, &models.UpdateGatewayRequest{Status: &status})
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
	})

	t.Run("merges adapter config and revalidates changed endpoint", func(t *testing.T) {
		adapter := &stubServiceAdapter{}
		svc, repo, id := newGateway(t, adapter)

		resp, err := svc.UpdateGateway(ctx, "acme", id, &models.UpdateGatewayRequest{
			AdapterConfig: map[string]interface{}{
				"controlPlaneUrl": "https://gw2.internal:9443",
				"extra":           "value",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "https://gw2.internal:9443", resp.ControlPlaneURL)
		// One validation at registration, one for the changed URL
		assert.Len(t, adapter.validatedURLs, 2)

		stored := repo.gateways[uuid.MustParse(id)]
		assert.Equal(t, "value", stored.AdapterConfig["extra"])
	})

	t.Run("re-encrypts replaced credentials", func(t *testing.T) {
		svc, repo, id := newGateway(t, &stubServiceAdapter{})

		resp, err := svc.UpdateGateway(ctx, "acme", id, &models.UpdateGatewayRequest{
			Credentials: &models.GatewayCredentials{Username: "rotated", Password: "new"},
		})
		require.NoError(t, err)
		assert.True(t, resp.HasCredentials)

		stored := repo.gateways[uuid.MustParse(id)]
		creds, err := utils.DecryptCredentials(stored.CredentialsEncrypted, testEncryptionKey())
		require.NoError(t, err)
		assert.Equal(t, "rotated", creds.Username)
	})
}

func TestDeleteGateway(t *testing.T) {
	ctx := context.Background()
	repo := newStubGatewayRepo()
	svc := newTestGatewayService(repo, &stubServiceAdapter{})

	created, err := svc.RegisterGateway(ctx, "acme", &models.CreateGatewayRequest{Name: "gw"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGateway(ctx, "acme", created.ID))

	_, err = svc.GetGateway(ctx, "acme", created.ID)
	assert.ErrorIs(t, err, utils.ErrGatewayNotFound)

	err = svc.DeleteGateway(ctx, "acme", created.ID)
	assert.ErrorIs(t, err, utils.ErrGatewayNotFound)
}

func TestCheckGatewayHealth(t *testing.T) {
	ctx := context.Background()

	t.Run("reports UNKNOWN without control plane URL", func(t *testing.T) {
		repo := newStubGatewayRepo()
		svc := newTestGatewayService(repo, &stubServiceAdapter{})
		created, err := svc.RegisterGateway(ctx, "acme", &models.CreateGatewayRequest{Name: "gw"})
		require.NoError(t, err)

		resp, err := svc.CheckGatewayHealth(ctx, "acme", created.ID)
		require.NoError(t, err)
		assert.Equal(t, "UNKNOWN", resp.Status)
	})

	t.Run("translates adapter health status", func(t *testing.T) {
		adapter := &stubServiceAdapter{
			health: &gateway.HealthStatus{
				Status:       gateway.HealthStatusError,
				ResponseTime: 120 * time.Millisecond,
				ErrorMessage: "connection refused",
				CheckedAt:    time.Now(),
			},
		}
		repo := newStubGatewayRepo()
		svc := newTestGatewayService(repo, adapter)
		created, err := svc.RegisterGateway(ctx, "acme", &models.CreateGatewayRequest{
			Name:          "gw",
			AdapterConfig: map[string]interface{}{"controlPlaneUrl": "https://gw.internal:9443"},
		})
		require.NoError(t, err)

		resp, err := svc.CheckGatewayHealth(ctx, "acme", created.ID)
		require.NoError(t, err)
		assert.Equal(t, gateway.HealthStatusError, resp.Status)
		assert.Equal(t, "connection refused", resp.ErrorMessage)
		assert.NotEmpty(t, resp.CheckedAt)
	})
}
