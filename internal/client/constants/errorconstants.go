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

// Package constants defines error constants for client registry operations.
package constants

import (
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/error/serviceerror"
)

// Client errors for client registry operations.
var (
	// ErrorClientNotFound is the error returned when a client is not registered.
	ErrorClientNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CLI-1001",
		Error:            "Client not found",
		ErrorDescription: "The client with the specified id is not registered",
	}
	// ErrorInvalidClientSecret is the error returned when the client secret does not match.
	ErrorInvalidClientSecret = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CLI-1002",
		Error:            "Invalid client credentials",
		ErrorDescription: "The provided client secret does not match the registered secret",
	}
	// ErrorInvalidRedirectURI is the error returned when the redirect URI is not registered.
	ErrorInvalidRedirectURI = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CLI-1003",
		Error:            "Invalid redirect URI",
		ErrorDescription: "The redirect URI does not match the registered redirect URIs",
	}
	// ErrorInvalidScope is the error returned when a requested scope is not allowed.
	ErrorInvalidScope = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CLI-1004",
		Error:            "Invalid scope",
		ErrorDescription: "One or more requested scopes are not allowed for the client",
	}
	// ErrorPKCERequired is the error returned when the client mandates PKCE and no challenge was sent.
	ErrorPKCERequired = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CLI-1005",
		Error:            "PKCE required",
		ErrorDescription: "The client requires PKCE but no code challenge was provided",
	}
)

// Server errors for client registry operations.
var (
	// ErrorInternalServerError is the error returned for unexpected server failures.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "CLI-5001",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
