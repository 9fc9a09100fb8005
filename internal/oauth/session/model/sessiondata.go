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

// Package model defines the data structures for auth session management.
package model

import "time"

// OAuthParameters holds the validated parameters of an authorization request
// carried across the login and consent round trips.
type OAuthParameters struct {
	ClientID            string   `json:"client_id"`
	RedirectURI         string   `json:"redirect_uri"`
	ResponseType        string   `json:"response_type"`
	Scopes              []string `json:"scopes"`
	State               string   `json:"state,omitempty"`
	CodeChallenge       string   `json:"code_challenge,omitempty"`
	CodeChallengeMethod string   `json:"code_challenge_method,omitempty"`
}

// AuthenticatedUser represents the principal resolved during the flow.
type AuthenticatedUser struct {
	IsAuthenticated bool     `json:"is_authenticated"`
	UserID          string   `json:"user_id,omitempty"`
	Username        string   `json:"username,omitempty"`
	Roles           []string `json:"roles,omitempty"`
}

// FlowContext is the signed continuation state of an in-flight authorization
// request. It is handed to the browser and verified on the way back, so the
// server keeps no per-request flow state.
type FlowContext struct {
	OAuthParameters OAuthParameters   `json:"oauth_parameters"`
	User            AuthenticatedUser `json:"user"`
	ExpiryTime      int64             `json:"expiry_time"`
}

// UserSession represents a server-side sign-on session established after a
// successful login, referenced by the session cookie.
type UserSession struct {
	UserID   string
	Username string
	Roles    []string
	AuthTime time.Time
}
