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

// Package credstore resolves gateway connection details. Credentials are
// fetched and decrypted on every call; nothing is cached, so plaintext
// secrets never outlive the request that needed them.
package credstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/models"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

// GatewayFetcher loads gateway records by UUID. Implemented by the gateway
// repository; returns utils.ErrGatewayNotFound when no record exists.
type GatewayFetcher interface {
	GetGatewayByUUID(ctx context.Context, gatewayUUID uuid.UUID) (*models.Gateway, error)
}

// ConnectionInfo holds everything an adapter needs to talk to a gateway's
// control plane on behalf of one operation.
type ConnectionInfo struct {
	Gateway         *models.Gateway
	Credentials     *models.GatewayCredentials
	ControlPlaneURL string
}

// Store resolves gateway connection information with decrypted credentials.
type Store interface {
	// GetConnectionInfo fetches the gateway record, decrypts its credentials
	// and extracts the control plane URL from the adapter config.
	GetConnectionInfo(ctx context.Context, gatewayID string) (*ConnectionInfo, error)
}

type store struct {
	gateways      GatewayFetcher
	encryptionKey []byte
}

// NewStore creates a credential store backed by the given gateway fetcher.
// The encryption key must be the 32-byte AES-256 key used at registration.
func NewStore(gateways GatewayFetcher, encryptionKey []byte) Store {
	return &store{
		gateways:      gateways,
		encryptionKey: encryptionKey,
	}
}

func (s *store) GetConnectionInfo(ctx context.Context, gatewayID string) (*ConnectionInfo, error) {
	gatewayUUID, err := uuid.Parse(gatewayID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidGatewayID, gatewayID)
	}

	gw, err := s.gateways.GetGatewayByUUID(ctx, gatewayUUID)
	if err != nil {
		return nil, err
	}

	if len(gw.CredentialsEncrypted) == 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrMissingCredentials, gatewayID)
	}

	creds, err := utils.DecryptCredentials(gw.CredentialsEncrypted, s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDecryptionFailed, err)
	}

	controlPlaneURL, ok := gw.AdapterConfig["controlPlaneUrl"].(string)
	if !ok || controlPlaneURL == "" {
		return nil, fmt.Errorf("%w: gateway %s", utils.ErrMissingControlPlaneURL, gatewayID)
	}

	return &ConnectionInfo{
		Gateway:         gw,
		Credentials:     creds,
		ControlPlaneURL: controlPlaneURL,
	}, nil
}
