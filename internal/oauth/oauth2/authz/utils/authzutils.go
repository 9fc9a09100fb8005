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

// Package utils provides utility functions for OAuth2 authorization operations.
package utils

import (
	"errors"
	"time"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/model"
	sessionmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

// BuildAuthorizationCode mints a new ACTIVE authorization code for an approved
// authorization request.
func BuildAuthorizationCode(flowCtx *sessionmodel.FlowContext) (model.AuthorizationCode, error) {
	params := flowCtx.OAuthParameters
	if params.ClientID == "" || params.RedirectURI == "" {
		return model.AuthorizationCode{}, errors.New("client_id or redirect_uri is missing")
	}

	if !flowCtx.User.IsAuthenticated || flowCtx.User.UserID == "" {
		return model.AuthorizationCode{}, errors.New("authenticated user not found")
	}

	code, err := utils.GenerateRandomToken(32)
	if err != nil {
		return model.AuthorizationCode{}, err
	}

	now := time.Now().Unix()
	return model.AuthorizationCode{
		CodeID:              utils.GenerateUUID(),
		Code:                code,
		ClientID:            params.ClientID,
		RedirectURI:         params.RedirectURI,
		AuthorizedUserID:    flowCtx.User.UserID,
		Scopes:              params.Scopes,
		CodeChallenge:       params.CodeChallenge,
		CodeChallengeMethod: params.CodeChallengeMethod,
		TimeCreated:         now,
		ExpiryTime:          now + getAuthzCodeValidityPeriod(),
		State:               constants.AuthCodeStateActive,
	}, nil
}

// getAuthzCodeValidityPeriod reads the configured code lifetime in seconds.
func getAuthzCodeValidityPeriod() int64 {
	validityPeriod := config.GetServerRuntime().Config.OAuth.JWT.AuthzCodeValidityPeriod
	if validityPeriod == 0 {
		validityPeriod = constants.DefaultAuthzCodeValidityPeriod
	}
	return validityPeriod
}
