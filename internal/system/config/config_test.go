/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const validConfigYAML = `
server:
  hostname: "localhost"
  port: 8090
  http_only: true

security:
  key_file: "repository/resources/security/server.key"

crypto:
  key: "0123456789abcdef0123456789abcdef"

database:
  identity:
    type: "sqlite"
    path: "repository/database/identitydb.db"
    max_open_conns: 5

oauth:
  jwt:
    issuer: "https://localhost:8090"
    resource_audience: "task-management-api"
    validity_period: 900
    authz_code_validity_period: 120

cleanup:
  interval: 300

seed:
  clients:
    - client_id: "task_web_app"
      client_secret: "secret"
      redirect_uris:
        - "https://localhost:3000/callback"
      allowed_scopes:
        - "openid"
      require_pkce: true
  users:
    - username: "admin"
      password: "admin"
      roles:
        - "admin"
      active: true
`

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) writeConfigFile(content string) string {
	path := filepath.Join(suite.T().TempDir(), "deployment.yaml")
	err := os.WriteFile(path, []byte(content), 0600)
	assert.NoError(suite.T(), err)
	return path
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	cfg, err := LoadConfig(suite.writeConfigFile(validConfigYAML))
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), "localhost", cfg.Server.Hostname)
	assert.Equal(suite.T(), 8090, cfg.Server.Port)
	assert.True(suite.T(), cfg.Server.HTTPOnly)
	assert.Equal(suite.T(), "sqlite", cfg.Database.Identity.Type)
	assert.Equal(suite.T(), 5, cfg.Database.Identity.MaxOpenConns)
	assert.Equal(suite.T(), "https://localhost:8090", cfg.OAuth.JWT.Issuer)
	assert.Equal(suite.T(), int64(900), cfg.OAuth.JWT.ValidityPeriod)
	assert.Equal(suite.T(), int64(120), cfg.OAuth.JWT.AuthzCodeValidityPeriod)
	assert.Equal(suite.T(), int64(300), cfg.Cleanup.Interval)

	assert.Len(suite.T(), cfg.Seed.Clients, 1)
	assert.Equal(suite.T(), "task_web_app", cfg.Seed.Clients[0].ClientID)
	assert.True(suite.T(), cfg.Seed.Clients[0].RequirePKCE)
	assert.Len(suite.T(), cfg.Seed.Users, 1)
	assert.Equal(suite.T(), "admin", cfg.Seed.Users[0].Username)
	assert.True(suite.T(), cfg.Seed.Users[0].Active)
}

func (suite *ConfigTestSuite) TestLoadConfigMissingFile() {
	cfg, err := LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	cfg, err := LoadConfig(suite.writeConfigFile("server: [unclosed"))
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigMissingKeyFile() {
	content := `
server:
  hostname: "localhost"
crypto:
  key: "0123456789abcdef"
oauth:
  jwt:
    issuer: "https://localhost:8090"
`
	cfg, err := LoadConfig(suite.writeConfigFile(content))
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
	assert.Contains(suite.T(), err.Error(), "security.key_file")
}

func (suite *ConfigTestSuite) TestLoadConfigMissingCryptoKey() {
	content := `
security:
  key_file: "repository/resources/security/server.key"
oauth:
  jwt:
    issuer: "https://localhost:8090"
`
	cfg, err := LoadConfig(suite.writeConfigFile(content))
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
	assert.Contains(suite.T(), err.Error(), "crypto.key")
}

func (suite *ConfigTestSuite) TestLoadConfigMissingIssuer() {
	content := `
security:
  key_file: "repository/resources/security/server.key"
crypto:
  key: "0123456789abcdef"
`
	cfg, err := LoadConfig(suite.writeConfigFile(content))
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
	assert.Contains(suite.T(), err.Error(), "oauth.jwt.issuer")
}
