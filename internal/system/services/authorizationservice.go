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

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/server"
)

// AuthorizationService defines the service for handling OAuth2 authorization flow requests.
type AuthorizationService struct {
	ServerOpsService server.ServerOperationServiceInterface
	authHandler      *authz.AuthorizeHandler
	loginHandler     *authz.LoginHandler
	consentHandler   *authz.ConsentHandler
}

// NewAuthorizationService creates a new instance of AuthorizationService.
func NewAuthorizationService(mux *http.ServeMux) ServiceInterface {
	authHandler := authz.NewAuthorizeHandler()
	instance := &AuthorizationService{
		ServerOpsService: server.NewServerOperationService(),
		authHandler:      authHandler,
		loginHandler:     authz.NewLoginHandler(authHandler),
		consentHandler:   authz.NewConsentHandler(authHandler),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the AuthorizationService.
func (s *AuthorizationService) RegisterRoutes(mux *http.ServeMux) {
	opts := server.RequestWrapOptions{
		Cors: &server.Cors{
			AllowedMethods:   "GET, POST",
			AllowedHeaders:   "Content-Type, Authorization",
			AllowCredentials: true,
		},
	}

	s.ServerOpsService.WrapHandleFunction(mux, "GET /connect/authorize", &opts,
		s.authHandler.HandleAuthorizeRequest)
	s.ServerOpsService.WrapHandleFunction(mux, "POST /connect/authorize", &opts,
		s.authHandler.HandleAuthorizeRequest)
	s.ServerOpsService.WrapHandleFunction(mux, "OPTIONS /connect/authorize", &opts,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

	s.ServerOpsService.WrapHandleFunction(mux, "GET /connect/login", &opts,
		s.loginHandler.HandleLoginRequest)
	s.ServerOpsService.WrapHandleFunction(mux, "POST /connect/login", &opts,
		s.loginHandler.HandleLoginRequest)
	s.ServerOpsService.WrapHandleFunction(mux, "OPTIONS /connect/login", &opts,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

	s.ServerOpsService.WrapHandleFunction(mux, "GET /connect/consent", &opts,
		s.consentHandler.HandleConsentRequest)
	s.ServerOpsService.WrapHandleFunction(mux, "POST /connect/consent", &opts,
		s.consentHandler.HandleConsentRequest)
	s.ServerOpsService.WrapHandleFunction(mux, "OPTIONS /connect/consent", &opts,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
}
