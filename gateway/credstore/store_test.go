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

package credstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/models"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

type stubFetcher struct {
	gateways map[uuid.UUID]*models.Gateway
}

func (s *stubFetcher) GetGatewayByUUID(ctx context.Context, gatewayUUID uuid.UUID) (*models.Gateway, error) {
	gw, ok := s.gateways[gatewayUUID]
	if !ok {
		return nil, utils.ErrGatewayNotFound
	}
	return gw, nil
}

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key, err := utils.GenerateEncryptionKey()
	require.NoError(t, err)
	return key
}

func TestStore_GetConnectionInfo(t *testing.T) {
	key := newTestKey(t)
	gatewayUUID := uuid.New()

	encrypted, err := utils.EncryptCredentials(&models.GatewayCredentials{
		Username: "admin",
		Password: "secret",
	}, key)
	require.NoError(t, err)

	fetcher := &stubFetcher{gateways: map[uuid.UUID]*models.Gateway{
		gatewayUUID: {
			UUID:                 gatewayUUID,
			Name:                 "prod-gw",
			CredentialsEncrypted: encrypted,
			AdapterConfig: map[string]interface{}{
				"controlPlaneUrl": "https://gw.internal:9443",
			},
		},
	}}

	t.Run("Resolves credentials and control plane URL", func(t *testing.T) {
		store := NewStore(fetcher, key)
		info, err := store.GetConnectionInfo(context.Background(), gatewayUUID.String())
		require.NoError(t, err)
		assert.Equal(t, "https://gw.internal:9443", info.ControlPlaneURL)
		assert.Equal(t, "admin", info.Credentials.Username)
		assert.Equal(t, "secret", info.Credentials.Password)
		assert.Equal(t, "prod-gw", info.Gateway.Name)
	})

	t.Run("Malformed gateway ID returns ErrInvalidGatewayID", func(t *testing.T) {
		store := NewStore(fetcher, key)
		_, err := store.GetConnectionInfo(context.Background(), "not-a-uuid")
		assert.ErrorIs(t, err, utils.ErrInvalidGatewayID)
	})

	t.Run("Unknown gateway returns ErrGatewayNotFound", func(t *testing.T) {
		store := NewStore(fetcher, key)
		_, err := store.GetConnectionInfo(context.Background(), uuid.New().String())
		assert.ErrorIs(t, err, utils.ErrGatewayNotFound)
	})

	t.Run("Gateway without credentials returns ErrMissingCredentials", func(t *testing.T) {
		id := uuid.New()
		store := NewStore(&stubFetcher{gateways: map[uuid.UUID]*models.Gateway{
			id: {UUID: id, AdapterConfig: map[string]interface{}{"controlPlaneUrl": "https://gw"}},
		}}, key)

		_, err := store.GetConnectionInfo(context.Background(), id.String())
		assert.ErrorIs(t, err, utils.ErrMissingCredentials)
	})

	t.Run("Wrong key returns ErrDecryptionFailed", func(t *testing.T) {
		store := NewStore(fetcher, newTestKey(t))
		_, err := store.GetConnectionInfo(context.Background(), gatewayUUID.String())
		assert.ErrorIs(t, err, utils.ErrDecryptionFailed)
	})

	t.Run("Missing control plane URL returns ErrMissingControlPlaneURL", func(t *testing.T) {
		id := uuid.New()
		store := NewStore(&stubFetcher{gateways: map[uuid.UUID]*models.Gateway{
			id: {
				UUID:                 id,
				CredentialsEncrypted: encrypted,
				AdapterConfig:        map[string]interface{}{},
			},
		}}, key)

		_, err := store.GetConnectionInfo(context.Background(), id.String())
		assert.ErrorIs(t, err, utils.ErrMissingControlPlaneURL)
	})
}
