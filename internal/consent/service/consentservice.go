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

// Package service provides the consent ledger operations.
package service

import (
	"errors"
	"sync"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/consent/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/consent/store"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/error/serviceerror"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

const loggerComponentName = "ConsentService"

var (
	instance *ConsentService
	once     sync.Once
)

// ConsentServiceInterface defines the contract for consent ledger operations.
type ConsentServiceInterface interface {
	HasConsent(userID, clientID string, scopes []string) (bool, *serviceerror.ServiceError)
	RecordConsent(userID, clientID string, scopes []string) *serviceerror.ServiceError
	RevokeConsent(userID, clientID string) *serviceerror.ServiceError
}

// ConsentService implements the ConsentServiceInterface for consent grants.
type ConsentService struct {
	consentStore store.ConsentStoreInterface
}

// GetConsentService returns a singleton instance of ConsentService.
func GetConsentService() ConsentServiceInterface {
	once.Do(func() {
		instance = &ConsentService{
			consentStore: store.NewConsentStore(),
		}
	})
	return instance
}

// NewConsentService creates a consent service backed by the given store.
func NewConsentService(consentStore store.ConsentStoreInterface) ConsentServiceInterface {
	return &ConsentService{
		consentStore: consentStore,
	}
}

// HasConsent reports whether a stored grant for the user and client covers
// every requested scope. A partial overlap does not count as consent.
func (cs *ConsentService) HasConsent(userID, clientID string, scopes []string) (
	bool, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if userID == "" || clientID == "" || len(scopes) == 0 {
		return false, &constants.ErrorInvalidConsentInput
	}

	grant, err := cs.consentStore.GetConsent(userID, clientID)
	if err != nil {
		if errors.Is(err, store.ErrConsentNotFound) {
			return false, nil
		}
		logger.Error("Failed to retrieve consent grant", log.String("clientID", clientID), log.Error(err))
		return false, &constants.ErrorInternalServerError
	}

	return utils.IsSubset(grant.Scopes, scopes), nil
}

// RecordConsent stores the user's approval of the given scopes for the client.
func (cs *ConsentService) RecordConsent(userID, clientID string, scopes []string) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if userID == "" || clientID == "" || len(scopes) == 0 {
		return &constants.ErrorInvalidConsentInput
	}

	if err := cs.consentStore.UpsertConsent(userID, clientID, scopes); err != nil {
		logger.Error("Failed to record consent grant", log.String("clientID", clientID), log.Error(err))
		return &constants.ErrorInternalServerError
	}
	return nil
}

// RevokeConsent removes the stored grant for the user and client pair.
func (cs *ConsentService) RevokeConsent(userID, clientID string) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if userID == "" || clientID == "" {
		return &constants.ErrorInvalidConsentInput
	}

	if err := cs.consentStore.DeleteConsent(userID, clientID); err != nil {
		logger.Error("Failed to revoke consent grant", log.String("clientID", clientID), log.Error(err))
		return &constants.ErrorInternalServerError
	}
	return nil
}
