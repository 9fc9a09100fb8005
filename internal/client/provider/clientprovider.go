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

// Package provider provides the implementation for client registry operations.
package provider

import (
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/client/service"
)

// ClientProviderInterface defines the interface for the client provider.
type ClientProviderInterface interface {
	GetClientService() service.ClientServiceInterface
}

// ClientProvider is the default implementation of the ClientProviderInterface.
type ClientProvider struct{}

// NewClientProvider creates a new instance of ClientProvider.
func NewClientProvider() ClientProviderInterface {
	return &ClientProvider{}
}

// GetClientService returns the client service instance.
func (cp *ClientProvider) GetClientService() service.ClientServiceInterface {
	return service.GetClientService()
}
