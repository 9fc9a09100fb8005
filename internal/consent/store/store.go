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

// Package store provides the implementation for consent ledger persistence operations.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/consent/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/provider"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

const loggerComponentName = "ConsentStore"

// ErrConsentNotFound is returned when no consent grant exists for the user and client pair.
var ErrConsentNotFound = errors.New("consent not found")

// ConsentStoreInterface defines the interface for consent ledger persistence.
type ConsentStoreInterface interface {
	GetConsent(userID, clientID string) (*model.ConsentGrant, error)
	UpsertConsent(userID, clientID string, scopes []string) error
	DeleteConsent(userID, clientID string) error
}

// ConsentStore implements the ConsentStoreInterface for consent grants.
type ConsentStore struct {
	DBProvider provider.DBProviderInterface
}

// NewConsentStore creates a new instance of ConsentStore.
func NewConsentStore() ConsentStoreInterface {
	return &ConsentStore{
		DBProvider: provider.NewDBProvider(),
	}
}

// GetConsent retrieves the stored consent grant for the user and client pair.
func (cs *ConsentStore) GetConsent(userID, clientID string) (*model.ConsentGrant, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := cs.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, err
	}

	results, err := dbClient.Query(QueryGetConsentByUserAndClient, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("error while retrieving consent grant: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrConsentNotFound
	}
	row := results[0]

	return &model.ConsentGrant{
		ConsentID:   parseStringField(row["consent_id"]),
		UserID:      parseStringField(row["authz_user"]),
		ClientID:    parseStringField(row["consumer_key"]),
		Scopes:      utils.ParseStringArray(row["scopes"]),
		TimeGranted: parseInt64Field(row["time_granted"]),
	}, nil
}

// UpsertConsent records a consent grant for the user and client pair. When a grant
// already exists its scopes are replaced with the union of the old and new sets.
func (cs *ConsentStore) UpsertConsent(userID, clientID string, scopes []string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := cs.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	now := time.Now().Unix()
	existing, err := cs.GetConsent(userID, clientID)
	if err != nil {
		if !errors.Is(err, ErrConsentNotFound) {
			return err
		}
		_, err = dbClient.Execute(QueryInsertConsent, utils.GenerateUUID(), userID, clientID,
			utils.JoinStringArray(scopes), now)
		if err != nil {
			return fmt.Errorf("error while recording consent grant: %w", err)
		}
		return nil
	}

	merged := mergeScopes(existing.Scopes, scopes)
	_, err = dbClient.Execute(QueryUpdateConsentScopes, utils.JoinStringArray(merged), now, userID, clientID)
	if err != nil {
		return fmt.Errorf("error while updating consent grant: %w", err)
	}
	return nil
}

// DeleteConsent revokes the stored consent grant for the user and client pair.
func (cs *ConsentStore) DeleteConsent(userID, clientID string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := cs.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	_, err = dbClient.Execute(QueryDeleteConsent, userID, clientID)
	if err != nil {
		return fmt.Errorf("error while deleting consent grant: %w", err)
	}
	return nil
}

// mergeScopes returns the union of the two scope sets preserving the order of first occurrence.
func mergeScopes(existing, requested []string) []string {
	merged := make([]string, 0, len(existing)+len(requested))
	merged = append(merged, existing...)
	for _, scope := range requested {
		if !utils.ContainsString(merged, scope) {
			merged = append(merged, scope)
		}
	}
	return merged
}

// parseStringField converts a raw result column to a string.
func parseStringField(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// parseInt64Field converts a raw result column to an int64.
func parseInt64Field(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
