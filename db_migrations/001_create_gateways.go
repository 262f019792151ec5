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

// Create the gateways table for registered gateway backends
var migration001 = migration{
	ID: 1,
	Migrate: func(db *gorm.DB) error {
		createGatewaysSQL := `
			CREATE TABLE gateways (
				uuid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				organization_name VARCHAR(255) NOT NULL,
				name VARCHAR(255) NOT NULL,
				display_name VARCHAR(255) NOT NULL,
				description TEXT,
				gateway_type VARCHAR(50) NOT NULL DEFAULT 'on-premise',
				control_plane_url VARCHAR(2048) NOT NULL,
				region VARCHAR(100),
				is_critical BOOLEAN DEFAULT FALSE,
				status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
				adapter_config JSONB NOT NULL DEFAULT '{}'::jsonb,
				credentials_encrypted BYTEA,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				deleted_at TIMESTAMP,

				CONSTRAINT uq_gateway_org_name UNIQUE(organization_name, name),
				CONSTRAINT chk_gateway_status
					CHECK (status IN ('ACTIVE', 'INACTIVE', 'MAINTENANCE'))
			);

			CREATE INDEX idx_gateways_org ON gateways(organization_name);
			CREATE INDEX idx_gateways_status ON gateways(status);
			CREATE INDEX idx_gateways_deleted ON gateways(deleted_at) WHERE deleted_at IS NOT NULL;

			COMMENT ON TABLE gateways IS 'Registered gateway backends hosting LLM provider deployments';
			COMMENT ON COLUMN gateways.adapter_config IS 'Adapter-specific configuration, including controlPlaneUrl';
			COMMENT ON COLUMN gateways.credentials_encrypted IS 'AES-256-GCM encrypted gateway credentials';
		`
		return db.Transaction(func(tx *gorm.DB) error {
			return runSQL(tx, createGatewaysSQL)
		})
	},
	Rollback: func(db *gorm.DB) error {
		return runSQL(db, `DROP TABLE IF EXISTS gateways;`)
	},
}
