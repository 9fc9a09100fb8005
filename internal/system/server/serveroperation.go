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

// Package server provides server wide operations and utilities.
package server

import (
	"net/http"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/cache"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

const allowedOriginsCacheKey cache.CacheKey = "allowedOrigins"

// Cors holds the CORS header values applied to a wrapped handler.
type Cors struct {
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials bool
}

// RequestWrapOptions holds the options applied when wrapping a handler.
type RequestWrapOptions struct {
	Cors *Cors
}

// ServerOperationServiceInterface defines the contract for server operations.
type ServerOperationServiceInterface interface {
	WrapHandleFunction(mux *http.ServeMux, pattern string, opts *RequestWrapOptions, handlerFunc http.HandlerFunc)
}

// ServerOperationService implements ServerOperationServiceInterface.
type ServerOperationService struct {
	OriginCache cache.CacheInterface[[]string]
}

// NewServerOperationService creates a new server operation service.
func NewServerOperationService() ServerOperationServiceInterface {
	return &ServerOperationService{
		OriginCache: cache.NewCache[[]string]("allowedOriginCache"),
	}
}

// WrapHandleFunction registers the handler on the mux with the configured
// CORS headers applied before the handler runs.
func (s *ServerOperationService) WrapHandleFunction(mux *http.ServeMux, pattern string,
	opts *RequestWrapOptions, handlerFunc http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		s.addAllowedOriginHeaders(w, r, opts)
		handlerFunc(w, r)
	})
}

// addAllowedOriginHeaders sets the CORS headers when the request origin is allowed.
func (s *ServerOperationService) addAllowedOriginHeaders(w http.ResponseWriter, r *http.Request,
	opts *RequestWrapOptions) {
	requestOrigin := r.Header.Get("Origin")
	if requestOrigin == "" {
		return
	}

	allowedOrigin := utils.GetAllowedOrigin(s.getAllowedOrigins(), requestOrigin)
	if allowedOrigin == "" {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
	if opts == nil || opts.Cors == nil {
		return
	}
	if opts.Cors.AllowedMethods != "" {
		w.Header().Set("Access-Control-Allow-Methods", opts.Cors.AllowedMethods)
	}
	if opts.Cors.AllowedHeaders != "" {
		w.Header().Set("Access-Control-Allow-Headers", opts.Cors.AllowedHeaders)
	}
	if opts.Cors.AllowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

// getAllowedOrigins returns the configured allowed origins, served from cache
// when available.
func (s *ServerOperationService) getAllowedOrigins() []string {
	if origins, ok := s.OriginCache.Get(allowedOriginsCacheKey); ok {
		return origins
	}

	origins := config.GetServerRuntime().Config.CORS.AllowedOrigins
	if len(origins) == 0 {
		log.GetLogger().Debug("No allowed origins configured")
		return []string{}
	}

	s.OriginCache.Set(allowedOriginsCacheKey, origins)
	return origins
}
