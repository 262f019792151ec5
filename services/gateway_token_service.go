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
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/models"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/repositories"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

// tokenPrefixLength is the number of leading characters of the plaintext
// token stored for indexed lookup. Must match the token_prefix column width
// expectations in the gateway_tokens migration.
const tokenPrefixLength = 8

// GatewayTokenService issues, verifies and revokes gateway API tokens
type GatewayTokenService interface {
	IssueToken(ctx context.Context, gatewayID string) (*models.GatewayTokenResponse, error)
	ListTokens(ctx context.Context, gatewayID string) ([]models.GatewayTokenResponse, error)
	VerifyToken(ctx context.Context, token string) (*models.Gateway, error)
	RevokeToken(ctx context.Context, gatewayID string, tokenID string) error
}

type gatewayTokenService struct {
	repo   repositories.GatewayRepository
	cache  *TokenCache
	logger *slog.Logger
}

// NewGatewayTokenService creates a new gateway token service
func NewGatewayTokenService(repo repositories.GatewayRepository, cache *TokenCache, logger *slog.Logger) GatewayTokenService {
	return &gatewayTokenService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *gatewayTokenService) IssueToken(ctx context.Context, gatewayID string) (*models.GatewayTokenResponse, error) {
	s.logger.Info("Issuing gateway token", "gatewayID", gatewayID)

	gwUUID, err := uuid.Parse(gatewayID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidGatewayID, gatewayID)
	}

	// Verify the gateway exists before minting a token for it
	if _, err := s.repo.GetGatewayByUUID(ctx, gwUUID); err != nil {
		return nil, err
	}

	apiKey, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate gateway token: %w", err)
	}

	hash, err := utils.HashAPIKey(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to hash gateway token: %w", err)
	}

	token := &models.GatewayToken{
		UUID:        uuid.New(),
		GatewayUUID: gwUUID,
		TokenPrefix: apiKey[:tokenPrefixLength],
		TokenHash:   string(hash),
		Status:      "active",
	}

	if err := s.repo.CreateGatewayToken(ctx, token); err != nil {
		return nil, err
	}

	s.logger.Info("Gateway token issued", "gatewayUUID", gwUUID, "tokenUUID", token.UUID)

	// The plaintext token is returned exactly once and never persisted
	return &models.GatewayTokenResponse{
		ID:        token.UUID.String(),
		GatewayID: gwUUID.String(),
		Token:     apiKey,
		Status:    token.Status,
		CreatedAt: token.CreatedAt,
	}, nil
}

func (s *gatewayTokenService) ListTokens(ctx context.Context, gatewayID string) ([]models.GatewayTokenResponse, error) {
	gwUUID, err := uuid.Parse(gatewayID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidGatewayID, gatewayID)
	}

	if _, err := s.repo.GetGatewayByUUID(ctx, gwUUID); err != nil {
		return nil, err
	}

	tokens, err := s.repo.ListActiveTokensByGateway(ctx, gwUUID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.GatewayTokenResponse, len(tokens))
	for i, t := range tokens {
		responses[i] = models.GatewayTokenResponse{
			ID:        t.UUID.String(),
			GatewayID: t.GatewayUUID.String(),
			Status:    t.Status,
			CreatedAt: t.CreatedAt,
		}
	}
	return responses, nil
}

func (s *gatewayTokenService) VerifyToken(ctx context.Context, token string) (*models.Gateway, error) {
	if len(token) <= tokenPrefixLength {
		return nil, utils.ErrUnauthorized
	}
	prefix := token[:tokenPrefixLength]

	// Fast path: verified recently, still within cache TTL
	if entry, ok := s.cache.Get(prefix); ok {
		if err := utils.VerifyAPIKey(token, []byte(entry.TokenHash)); err != nil {
			return nil, utils.ErrUnauthorized
		}
		return entry.Gateway, nil
	}

	stored, err := s.repo.GetActiveTokenByPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, utils.ErrTokenNotFound) {
			return nil, utils.ErrUnauthorized
		}
		return nil, err
	}

	if err := utils.VerifyAPIKey(token, []byte(stored.TokenHash)); err != nil {
		return nil, utils.ErrUnauthorized
	}

	gw, err := s.repo.GetGatewayByUUID(ctx, stored.GatewayUUID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(prefix, gw, stored.TokenHash)
	return gw, nil
}

func (s *gatewayTokenService) RevokeToken(ctx context.Context, gatewayID string, tokenID string) error {
	s.logger.Info("Revoking gateway token", "gatewayID", gatewayID, "tokenID", tokenID)

	gwUUID, err := uuid.Parse(gatewayID)
	if err != nil {
		return fmt.Errorf("%w: %q", utils.ErrInvalidGatewayID, gatewayID)
	}
	tokenUUID, err := uuid.Parse(tokenID)
	if err != nil {
		return fmt.Errorf("invalid token ID %q: %w", tokenID, utils.ErrInvalidInput)
	}

	token, err := s.repo.GetTokenByUUID(ctx, tokenUUID)
	if err != nil {
		return err
	}
	if token.GatewayUUID != gwUUID {
		return utils.ErrTokenNotFound
	}

	if err := s.repo.RevokeToken(ctx, token); err != nil {
		return err
	}

	s.cache.Invalidate(token.TokenPrefix)
	return nil
}
