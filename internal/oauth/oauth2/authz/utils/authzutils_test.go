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

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/constants"
	sessionmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
)

type AuthzUtilsTestSuite struct {
	suite.Suite
}

func TestAuthzUtilsSuite(t *testing.T) {
	suite.Run(t, new(AuthzUtilsTestSuite))
}

func (suite *AuthzUtilsTestSuite) SetupTest() {
	config.ResetServerRuntime()
}

func (suite *AuthzUtilsTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *AuthzUtilsTestSuite) initRuntime(authzCodeValidity int64) {
	cfg := &config.Config{}
	cfg.OAuth.JWT.AuthzCodeValidityPeriod = authzCodeValidity
	err := config.InitializeServerRuntime("/tmp", cfg)
	assert.NoError(suite.T(), err)
}

func (suite *AuthzUtilsTestSuite) approvedFlowContext() *sessionmodel.FlowContext {
	return &sessionmodel.FlowContext{
		OAuthParameters: sessionmodel.OAuthParameters{
			ClientID:            "task_web_app",
			RedirectURI:         "https://localhost:3000/callback",
			ResponseType:        "code",
			Scopes:              []string{"openid", "tasks:read"},
			State:               "af0ifjsldkj",
			CodeChallenge:       "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM",
			CodeChallengeMethod: "S256",
		},
		User: sessionmodel.AuthenticatedUser{
			IsAuthenticated: true,
			UserID:          "user-1",
			Username:        "alice",
		},
	}
}

func (suite *AuthzUtilsTestSuite) TestBuildAuthorizationCode() {
	suite.initRuntime(120)

	authzCode, err := BuildAuthorizationCode(suite.approvedFlowContext())
	assert.NoError(suite.T(), err)

	assert.NotEmpty(suite.T(), authzCode.CodeID)
	assert.NotEmpty(suite.T(), authzCode.Code)
	assert.Equal(suite.T(), "task_web_app", authzCode.ClientID)
	assert.Equal(suite.T(), "https://localhost:3000/callback", authzCode.RedirectURI)
	assert.Equal(suite.T(), "user-1", authzCode.AuthorizedUserID)
	assert.Equal(suite.T(), []string{"openid", "tasks:read"}, authzCode.Scopes)
	assert.Equal(suite.T(), "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", authzCode.CodeChallenge)
	assert.Equal(suite.T(), "S256", authzCode.CodeChallengeMethod)
	assert.Equal(suite.T(), constants.AuthCodeStateActive, authzCode.State)

	now := time.Now().Unix()
	assert.InDelta(suite.T(), now, authzCode.TimeCreated, 5)
	assert.Equal(suite.T(), authzCode.TimeCreated+120, authzCode.ExpiryTime)
}

func (suite *AuthzUtilsTestSuite) TestBuildAuthorizationCodeDefaultValidity() {
	suite.initRuntime(0)

	authzCode, err := BuildAuthorizationCode(suite.approvedFlowContext())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), authzCode.TimeCreated+constants.DefaultAuthzCodeValidityPeriod,
		authzCode.ExpiryTime)
}

func (suite *AuthzUtilsTestSuite) TestBuildAuthorizationCodeUniqueCodes() {
	suite.initRuntime(120)

	first, err := BuildAuthorizationCode(suite.approvedFlowContext())
	assert.NoError(suite.T(), err)
	second, err := BuildAuthorizationCode(suite.approvedFlowContext())
	assert.NoError(suite.T(), err)

	assert.NotEqual(suite.T(), first.Code, second.Code)
	assert.NotEqual(suite.T(), first.CodeID, second.CodeID)
}

func (suite *AuthzUtilsTestSuite) TestBuildAuthorizationCodeInvalidFlowContext() {
	suite.initRuntime(120)

	testCases := []struct {
		name   string
		mutate func(flowCtx *sessionmodel.FlowContext)
	}{
		{
			name:   "MissingClientID",
			mutate: func(flowCtx *sessionmodel.FlowContext) { flowCtx.OAuthParameters.ClientID = "" },
		},
		{
			name:   "MissingRedirectURI",
			mutate: func(flowCtx *sessionmodel.FlowContext) { flowCtx.OAuthParameters.RedirectURI = "" },
		},
		{
			name:   "UnauthenticatedUser",
			mutate: func(flowCtx *sessionmodel.FlowContext) { flowCtx.User.IsAuthenticated = false },
		},
		{
			name:   "MissingUserID",
			mutate: func(flowCtx *sessionmodel.FlowContext) { flowCtx.User.UserID = "" },
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			flowCtx := suite.approvedFlowContext()
			tc.mutate(flowCtx)

			_, err := BuildAuthorizationCode(flowCtx)
			assert.Error(t, err)
		})
	}
}
