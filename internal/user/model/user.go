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

// Package model defines the data structures for principals and roles.
package model

// Role names form a closed set shared with the downstream resource API.
const (
	RoleAdministrator  = "Administrator"
	RoleProjectManager = "ProjectManager"
	RoleUser           = "User"
)

// User represents a principal known to the authorization server.
type User struct {
	ID       string
	Username string
	Roles    []string
	Active   bool
}

// HasRole checks whether the principal holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsValidRole checks whether the given role name belongs to the closed role set.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleProjectManager, RoleUser:
		return true
	default:
		return false
	}
}
