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

// Package service provides the client registry validation operations.
package service

import (
	"crypto/subtle"
	"errors"
	"sync"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/client/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/client/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/client/store"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/cache"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/crypto/hash"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/error/serviceerror"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
)

const loggerComponentName = "ClientService"

var (
	instance *ClientService
	once     sync.Once
)

// ClientServiceInterface defines the contract for client registry operations.
type ClientServiceInterface interface {
	GetOAuthClient(clientID string) (*model.OAuthClient, *serviceerror.ServiceError)
	ValidateAuthorizationRequest(clientID, redirectURI string, scopes []string,
		codeChallenge string) (*model.OAuthClient, *serviceerror.ServiceError)
	AuthenticateClient(clientID, clientSecret string) (*model.OAuthClient, *serviceerror.ServiceError)
}

// ClientService implements the ClientServiceInterface for client registry operations.
type ClientService struct {
	clientStore store.ClientStoreInterface
	clientCache cache.CacheInterface[*model.OAuthClient]
}

// GetClientService returns a singleton instance of ClientService.
func GetClientService() ClientServiceInterface {
	once.Do(func() {
		instance = &ClientService{
			clientStore: store.NewClientStore(),
			clientCache: cache.NewCache[*model.OAuthClient]("ClientCache"),
		}
	})
	return instance
}

// NewClientService creates a client service backed by the given store and cache.
func NewClientService(clientStore store.ClientStoreInterface,
	clientCache cache.CacheInterface[*model.OAuthClient]) ClientServiceInterface {
	return &ClientService{
		clientStore: clientStore,
		clientCache: clientCache,
	}
}

// GetOAuthClient retrieves a registered client by client id.
func (cs *ClientService) GetOAuthClient(clientID string) (*model.OAuthClient, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if clientID == "" {
		return nil, &constants.ErrorClientNotFound
	}

	if cached, ok := cs.clientCache.Get(cache.CacheKey(clientID)); ok {
		return cached, nil
	}

	oauthClient, err := cs.clientStore.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, store.ErrClientNotFound) {
			return nil, &constants.ErrorClientNotFound
		}
		logger.Error("Failed to retrieve client registration", log.String("clientID", clientID), log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	cs.clientCache.Set(cache.CacheKey(clientID), oauthClient)
	return oauthClient, nil
}

// ValidateAuthorizationRequest validates an authorization request against the client
// registration. Pure validation; no side effects.
func (cs *ClientService) ValidateAuthorizationRequest(clientID, redirectURI string, scopes []string,
	codeChallenge string) (*model.OAuthClient, *serviceerror.ServiceError) {
	oauthClient, svcErr := cs.GetOAuthClient(clientID)
	if svcErr != nil {
		return nil, svcErr
	}

	if err := oauthClient.ValidateRedirectURI(redirectURI); err != nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidRedirectURI, err.Error())
	}

	if len(scopes) == 0 {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidScope,
			"The scope parameter is required and must not be empty")
	}
	for _, scope := range scopes {
		if !oauthClient.IsAllowedScope(scope) {
			return nil, serviceerror.CustomServiceError(constants.ErrorInvalidScope,
				"Scope is not allowed for the client: "+scope)
		}
	}

	if oauthClient.RequirePKCE && codeChallenge == "" {
		return nil, &constants.ErrorPKCERequired
	}

	return oauthClient, nil
}

// AuthenticateClient verifies the client credentials. Public clients carry no
// secret and authenticate by client id alone.
func (cs *ClientService) AuthenticateClient(clientID, clientSecret string) (
	*model.OAuthClient, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	oauthClient, svcErr := cs.GetOAuthClient(clientID)
	if svcErr != nil {
		return nil, svcErr
	}

	if oauthClient.Public {
		if clientSecret != "" {
			logger.Debug("Ignoring client secret sent by a public client",
				log.String("clientID", log.MaskString(clientID)))
		}
		return oauthClient, nil
	}

	if clientSecret == "" {
		return nil, &constants.ErrorInvalidClientSecret
	}

	secretHash := hash.HashString(clientSecret)
	if subtle.ConstantTimeCompare([]byte(secretHash), []byte(oauthClient.ClientSecretHash)) != 1 {
		return nil, &constants.ErrorInvalidClientSecret
	}

	return oauthClient, nil
}
