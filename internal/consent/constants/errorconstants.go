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

// Package constants defines error constants for consent ledger operations.
package constants

import (
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/error/serviceerror"
)

// Client errors for consent ledger operations.
var (
	// ErrorInvalidConsentInput is the error returned when a consent operation is
	// invoked without a user, client, or scope set.
	ErrorInvalidConsentInput = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CON-1001",
		Error:            "Invalid consent input",
		ErrorDescription: "The user id, client id, and scopes are required for consent operations",
	}
)

// Server errors for consent ledger operations.
var (
	// ErrorInternalServerError is the error returned for unexpected server failures.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "CON-5001",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
