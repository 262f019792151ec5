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

package dbmigrations

import (
	"gorm.io/gorm"
)

// Create the gateway_tokens table for gateway API authentication
var migration002 = migration{
	ID: 2,
	Migrate: func(db *gorm.DB) error {
		createGatewayTokensSQL := `
			CREATE TABLE gateway_tokens (
				uuid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				gateway_uuid UUID NOT NULL,
				token_prefix VARCHAR(36) NOT NULL,
				token_hash VARCHAR(255) NOT NULL,
				status VARCHAR(10) NOT NULL DEFAULT 'active',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				revoked_at TIMESTAMP,

				CONSTRAINT fk_gateway_token_gateway FOREIGN KEY (gateway_uuid)
					REFERENCES gateways(uuid) ON DELETE CASCADE,
				CONSTRAINT chk_gateway_token_status
					CHECK (status IN ('active', 'revoked')),
				CONSTRAINT chk_gateway_token_revoked
					CHECK (revoked_at IS NULL OR status = 'revoked')
			);

			CREATE INDEX idx_gateway_tokens_gateway ON gateway_tokens(gateway_uuid);
			CREATE INDEX idx_gateway_tokens_status ON gateway_tokens(gateway_uuid, status);
			CREATE UNIQUE INDEX idx_gateway_tokens_prefix_active
				ON gateway_tokens(token_prefix) WHERE status = 'active';

			COMMENT ON TABLE gateway_tokens IS 'Authentication tokens for gateway connectivity';
			COMMENT ON COLUMN gateway_tokens.token_prefix IS 'Leading characters of the plaintext token for indexed lookup';
			COMMENT ON COLUMN gateway_tokens.token_hash IS 'bcrypt hash of the token';
		`
		return db.Transaction(func(tx *gorm.DB) error {
			return runSQL(tx, createGatewayTokensSQL)
		})
	},
	Rollback: func(db *gorm.DB) error {
		return runSQL(db, `DROP TABLE IF EXISTS gateway_tokens;`)
	},
}
