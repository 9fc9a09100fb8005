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

// Package model defines the data structures for registered OAuth clients.
package model

import "fmt"

// OAuthClient represents a registered OAuth client application.
type OAuthClient struct {
	ClientID               string
	ClientSecretHash       string
	Name                   string
	RedirectURIs           []string
	PostLogoutRedirectURIs []string
	AllowedScopes          []string
	AllowedGrantTypes      []string
	AllowedResponseTypes   []string
	RequirePKCE            bool
	Public                 bool
}

// IsAllowedGrantType checks if the provided grant type is allowed for the client.
func (c *OAuthClient) IsAllowedGrantType(grantType string) bool {
	for _, allowed := range c.AllowedGrantTypes {
		if grantType == allowed {
			return true
		}
	}
	return false
}

// IsAllowedResponseType checks if the provided response type is allowed for the client.
func (c *OAuthClient) IsAllowedResponseType(responseType string) bool {
	for _, allowed := range c.AllowedResponseTypes {
		if responseType == allowed {
			return true
		}
	}
	return false
}

// IsAllowedScope checks if the provided scope is in the client's allowed scope set.
func (c *OAuthClient) IsAllowedScope(scope string) bool {
	for _, allowed := range c.AllowedScopes {
		if scope == allowed {
			return true
		}
	}
	return false
}

// ValidateRedirectURI validates the provided redirect URI against the registered
// redirect URIs. Only exact matches are accepted; prefix or wildcard matching
// would open a phishing vector.
func (c *OAuthClient) ValidateRedirectURI(redirectURI string) error {
	if redirectURI == "" {
		return fmt.Errorf("redirect URI is required in the authorization request")
	}

	if !c.isRegisteredRedirectURI(redirectURI) {
		return fmt.Errorf("redirect URI does not match the registered redirect URIs")
	}

	return nil
}

// IsValidPostLogoutRedirectURI checks the provided URI against the registered
// post-logout redirect URIs. Exact match only, like ValidateRedirectURI.
func (c *OAuthClient) IsValidPostLogoutRedirectURI(redirectURI string) bool {
	for _, allowed := range c.PostLogoutRedirectURIs {
		if redirectURI == allowed {
			return true
		}
	}
	return false
}

// isRegisteredRedirectURI checks if the provided redirect URI is registered.
func (c *OAuthClient) isRegisteredRedirectURI(redirectURI string) bool {
	for _, allowed := range c.RedirectURIs {
		if redirectURI == allowed {
			return true
		}
	}
	return false
}
