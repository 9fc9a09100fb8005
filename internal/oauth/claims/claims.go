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

// Package claims maps principals and granted scopes onto token claims.
package claims

import (
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
	usermodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/user/model"
)

// Scopes gating optional claim sets.
const (
	ScopeRoles   = "roles"
	ScopeProfile = "profile"
	ScopeOpenID  = "openid"
)

// Claim names added on top of the registered JWT claim set.
const (
	ClaimClientID = "client_id"
	ClaimScope    = "scope"
	ClaimUsername = "username"
	ClaimRoles    = "roles"
)

// BuildAccessTokenClaims assembles the custom claims of an access token.
// Role claims are released only when the roles scope was granted.
func BuildAccessTokenClaims(user *usermodel.User, clientID string, scopes []string) map[string]interface{} {
	tokenClaims := map[string]interface{}{
		ClaimClientID: clientID,
		ClaimScope:    utils.JoinScopes(scopes),
	}

	if user == nil {
		return tokenClaims
	}

	if utils.ContainsString(scopes, ScopeProfile) {
		tokenClaims[ClaimUsername] = user.Username
	}
	if utils.ContainsString(scopes, ScopeRoles) {
		tokenClaims[ClaimRoles] = user.Roles
	}

	return tokenClaims
}

// BuildIDTokenClaims assembles the custom claims of an ID token. The ID token
// is only issued when the openid scope was granted.
func BuildIDTokenClaims(user *usermodel.User, scopes []string, authTime int64) map[string]interface{} {
	tokenClaims := map[string]interface{}{}

	if authTime > 0 {
		tokenClaims["auth_time"] = authTime
	}

	if user == nil {
		return tokenClaims
	}

	if utils.ContainsString(scopes, ScopeProfile) {
		tokenClaims[ClaimUsername] = user.Username
		tokenClaims["preferred_username"] = user.Username
	}
	if utils.ContainsString(scopes, ScopeRoles) {
		tokenClaims[ClaimRoles] = user.Roles
	}

	return tokenClaims
}

// RequestsIDToken reports whether the granted scopes call for an ID token.
func RequestsIDToken(scopes []string) bool {
	return utils.ContainsString(scopes, ScopeOpenID)
}
