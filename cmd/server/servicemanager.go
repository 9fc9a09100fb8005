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

package main

import (
	"net/http"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/services"
)

// registerServices registers all the services with the provided HTTP multiplexer.
func registerServices(mux *http.ServeMux) {
	// Register the health service.
	services.NewHealthService(mux)

	// Register the authorization service.
	services.NewAuthorizationService(mux)

	// Register the token service.
	services.NewTokenService(mux)

	// Register the JWKS service.
	services.NewJWKSAPIService(mux)

	// Register the introspection service.
	services.NewIntrospectionAPIService(mux)

	// Register the logout service.
	services.NewLogoutService(mux)
}
