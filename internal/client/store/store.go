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

// Package store provides the implementation for client registry persistence operations.
package store

import (
	"errors"
	"fmt"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/client/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/provider"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

const loggerComponentName = "ClientStore"

// ErrClientNotFound is returned when no client registration exists for the given client id.
var ErrClientNotFound = errors.New("client not found")

// ClientStoreInterface defines the interface for client registry persistence.
type ClientStoreInterface interface {
	GetClientByID(clientID string) (*model.OAuthClient, error)
}

// ClientStore implements the ClientStoreInterface for retrieving client registrations.
type ClientStore struct {
	DBProvider provider.DBProviderInterface
}

// NewClientStore creates a new instance of ClientStore.
func NewClientStore() ClientStoreInterface {
	return &ClientStore{
		DBProvider: provider.NewDBProvider(),
	}
}

// GetClientByID retrieves a client registration by client id.
func (cs *ClientStore) GetClientByID(clientID string) (*model.OAuthClient, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := cs.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, err
	}

	results, err := dbClient.Query(QueryGetClientByID, clientID)
	if err != nil {
		return nil, fmt.Errorf("error while retrieving client registration: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrClientNotFound
	}
	row := results[0]

	oauthClient := &model.OAuthClient{
		ClientID:               parseStringField(row["client_id"]),
		ClientSecretHash:       parseStringField(row["client_secret_hash"]),
		Name:                   parseStringField(row["app_name"]),
		RedirectURIs:           utils.ParseStringArray(row["redirect_uris"]),
		PostLogoutRedirectURIs: utils.ParseStringArray(row["post_logout_redirect_uris"]),
		AllowedScopes:          utils.ParseStringArray(row["allowed_scopes"]),
		AllowedGrantTypes:      utils.ParseStringArray(row["grant_types"]),
		AllowedResponseTypes:   utils.ParseStringArray(row["response_types"]),
		RequirePKCE:            parseBoolField(row["require_pkce"]),
		Public:                 parseBoolField(row["is_public"]),
	}

	return oauthClient, nil
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

// parseBoolField converts a raw result column to a boolean.
func parseBoolField(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	default:
		return false
	}
}
