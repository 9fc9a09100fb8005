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

package authz

import (
	clientmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/pkce"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

// AuthorizationValidatorInterface defines the interface for validating OAuth2 authorization requests.
type AuthorizationValidatorInterface interface {
	ValidateAuthorizationParameters(oauthClient *clientmodel.OAuthClient,
		params map[string]string) (string, string)
}

// AuthorizationValidator implements the AuthorizationValidatorInterface.
type AuthorizationValidator struct{}

// NewAuthorizationValidator creates a new instance of AuthorizationValidator.
func NewAuthorizationValidator() AuthorizationValidatorInterface {
	return &AuthorizationValidator{}
}

// ValidateAuthorizationParameters validates the authorization request parameters
// once the client and redirect URI are trusted. Failures here are reported to the
// client through an error redirect, never directly.
func (av *AuthorizationValidator) ValidateAuthorizationParameters(oauthClient *clientmodel.OAuthClient,
	params map[string]string) (string, string) {
	responseType := params[constants.ResponseType]
	if responseType == "" {
		return constants.ErrorInvalidRequest, "Missing response_type parameter"
	}
	if responseType != constants.ResponseTypeCode {
		return constants.ErrorUnsupportedResponseType, "Unsupported response type"
	}
	if !oauthClient.IsAllowedResponseType(responseType) {
		return constants.ErrorUnauthorizedClient, "Response type is not allowed for the client"
	}
	if !oauthClient.IsAllowedGrantType(constants.GrantTypeAuthorizationCode) {
		return constants.ErrorUnauthorizedClient,
			"Authorization code grant type is not allowed for the client"
	}

	scope := params[constants.Scope]
	if scope == "" {
		return constants.ErrorInvalidScope, "The scope parameter is required and must not be empty"
	}
	for _, requestedScope := range utils.ParseScopes(scope) {
		if !oauthClient.IsAllowedScope(requestedScope) {
			return constants.ErrorInvalidScope, "Scope is not allowed for the client: " + requestedScope
		}
	}

	codeChallenge := params[constants.CodeChallenge]
	codeChallengeMethod := params[constants.CodeChallengeMethod]
	if oauthClient.RequirePKCE && codeChallenge == "" {
		return constants.ErrorInvalidRequest, "The client requires PKCE but no code challenge was provided"
	}
	if codeChallenge != "" {
		if err := pkce.ValidateCodeChallenge(codeChallenge, codeChallengeMethod); err != nil {
			return constants.ErrorInvalidRequest, "Invalid code challenge: " + err.Error()
		}
	}

	return "", ""
}
