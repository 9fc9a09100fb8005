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

// Package constants defines error constants for principal management operations.
package constants

import (
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/error/serviceerror"
)

// Client errors for principal management operations.
var (
	// ErrorUserNotFound is the error returned when a principal is not found.
	ErrorUserNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "USR-1001",
		Error:            "User not found",
		ErrorDescription: "The user with the specified identifier does not exist",
	}
	// ErrorAuthenticationFailed is the error returned when credential verification fails.
	ErrorAuthenticationFailed = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "USR-1002",
		Error:            "Authentication failed",
		ErrorDescription: "The provided credentials are invalid",
	}
	// ErrorUserInactive is the error returned when the principal account is deactivated.
	ErrorUserInactive = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "USR-1003",
		Error:            "User account inactive",
		ErrorDescription: "The user account has been deactivated",
	}
)

// Server errors for principal management operations.
var (
	// ErrorInternalServerError is the error returned for unexpected server failures.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "USR-5001",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
