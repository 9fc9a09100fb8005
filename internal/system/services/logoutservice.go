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

package services

import (
	"net/http"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/logout"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/server"
)

// LogoutService defines the service for handling RP-initiated logout requests.
type LogoutService struct {
	ServerOpsService server.ServerOperationServiceInterface
	logoutHandler    *logout.LogoutHandler
}

// NewLogoutService creates a new instance of LogoutService.
func NewLogoutService(mux *http.ServeMux) ServiceInterface {
	instance := &LogoutService{
		ServerOpsService: server.NewServerOperationService(),
		logoutHandler:    logout.NewLogoutHandler(),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the LogoutService.
func (s *LogoutService) RegisterRoutes(mux *http.ServeMux) {
	opts := server.RequestWrapOptions{
		Cors: &server.Cors{
			AllowedMethods:   "GET, POST",
			AllowedHeaders:   "Content-Type, Authorization",
			AllowCredentials: true,
		},
	}
	s.ServerOpsService.WrapHandleFunction(mux, "GET /connect/logout", &opts,
		s.logoutHandler.HandleLogoutRequest)
	s.ServerOpsService.WrapHandleFunction(mux, "POST /connect/logout", &opts,
		s.logoutHandler.HandleLogoutRequest)
	s.ServerOpsService.WrapHandleFunction(mux, "OPTIONS /connect/logout", &opts,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
}
