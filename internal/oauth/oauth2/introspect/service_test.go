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

package introspect

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/jwt"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
)

type TokenIntrospectionServiceTestSuite struct {
	suite.Suite
	jwtService *jwt.JWTService
	service    TokenIntrospectionServiceInterface
}

func TestTokenIntrospectionServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenIntrospectionServiceTestSuite))
}

func (suite *TokenIntrospectionServiceTestSuite) SetupTest() {
	serverHome := suite.T().TempDir()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(suite.T(), err)
	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	err = os.WriteFile(path.Join(serverHome, "server.key"), keyPEM, 0600)
	assert.NoError(suite.T(), err)

	config.ResetServerRuntime()
	cfg := &config.Config{}
	cfg.Security.KeyFile = "server.key"
	cfg.OAuth.JWT.Issuer = "https://localhost:8090"
	err = config.InitializeServerRuntime(serverHome, cfg)
	assert.NoError(suite.T(), err)

	suite.jwtService = &jwt.JWTService{}
	err = suite.jwtService.Init()
	assert.NoError(suite.T(), err)

	suite.service = NewTokenIntrospectionService(suite.jwtService)
}

func (suite *TokenIntrospectionServiceTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *TokenIntrospectionServiceTestSuite) issueToken(validityPeriod int64) string {
	token, _, err := suite.jwtService.GenerateJWT("user-1", "task-management-api", validityPeriod,
		map[string]interface{}{
			"client_id": "task_web_app",
			"scope":     "openid tasks:read",
			"username":  "alice",
		})
	assert.NoError(suite.T(), err)
	return token
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectActiveToken() {
	token := suite.issueToken(900)

	response, err := suite.service.IntrospectToken(token, "access_token")
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)

	assert.True(suite.T(), response.Active)
	assert.Equal(suite.T(), "Bearer", response.TokenType)
	assert.Equal(suite.T(), "task_web_app", response.ClientID)
	assert.Equal(suite.T(), "openid tasks:read", response.Scope)
	assert.Equal(suite.T(), "alice", response.Username)
	assert.Equal(suite.T(), "user-1", response.Sub)
	assert.Equal(suite.T(), "task-management-api", response.Aud)
	assert.Equal(suite.T(), "https://localhost:8090", response.Iss)
	assert.NotEmpty(suite.T(), response.Jti)
	assert.Greater(suite.T(), response.Exp, response.Iat)
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectExpiredToken() {
	token := suite.issueToken(-100)

	response, err := suite.service.IntrospectToken(token, "access_token")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response.Active)
	assert.Empty(suite.T(), response.ClientID)
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectTamperedToken() {
	token := suite.issueToken(900)
	tampered := token[:len(token)-1]
	if token[len(token)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}

	response, err := suite.service.IntrospectToken(tampered, "access_token")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response.Active)
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectMalformedToken() {
	testCases := []struct {
		name  string
		token string
	}{
		{name: "NotAJWT", token: "not-a-jwt"},
		{name: "TwoParts", token: "part1.part2"},
		{name: "GarbageSignature", token: "aGVhZGVy.cGF5bG9hZA.!!!"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			response, err := suite.service.IntrospectToken(tc.token, "access_token")
			assert.NoError(t, err)
			assert.False(t, response.Active)
		})
	}
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectEmptyToken() {
	response, err := suite.service.IntrospectToken("", "access_token")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectWithoutSigningKey() {
	service := NewTokenIntrospectionService(&jwt.JWTService{})

	response, err := service.IntrospectToken(suite.issueToken(900), "access_token")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
}
