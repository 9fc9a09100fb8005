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

import "strings"

// ParseStringArray parses a comma-separated string into a slice of strings.
func ParseStringArray(value interface{}) []string {
	if value == nil {
		return []string{}
	}
	str, ok := value.(string)
	if !ok || str == "" {
		return []string{}
	}
	return strings.Split(str, ",")
}

// JoinStringArray joins a slice of strings into a comma-separated string.
func JoinStringArray(values []string) string {
	return strings.Join(values, ",")
}

// ParseScopes splits a space-delimited scope string into a slice of scope names.
func ParseScopes(scope string) []string {
	return strings.Fields(scope)
}

// JoinScopes joins a slice of scope names into a space-delimited scope string.
func JoinScopes(scopes []string) string {
	return strings.Join(scopes, " ")
}

// ContainsString checks whether the given slice contains the given value.
func ContainsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// IsSubset checks whether every element of sub is present in super.
func IsSubset(super, sub []string) bool {
	superSet := make(map[string]struct{}, len(super))
	for _, v := range super {
		superSet[v] = struct{}{}
	}
	for _, v := range sub {
		if _, ok := superSet[v]; !ok {
			return false
		}
	}
	return true
}
