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

// Package store provides functionality for handling authorization code persistence and retrieval.
package store

import (
	"fmt"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/provider"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

const loggerComponentName = "AuthorizationCodeStore"

// AuthorizationCodeStoreInterface defines the interface for managing authorization codes.
type AuthorizationCodeStoreInterface interface {
	InsertAuthorizationCode(authzCode model.AuthorizationCode) error
	GetAuthorizationCode(clientID, authCode string) (model.AuthorizationCode, error)
	ConsumeAuthorizationCode(clientID, authCode string) error
	RevokeAuthorizationCode(authzCode model.AuthorizationCode) error
	ExpireAuthorizationCode(authzCode model.AuthorizationCode) error
	DeleteExpiredAuthorizationCodes(cutoff int64) (int64, error)
}

// AuthorizationCodeStore implements the AuthorizationCodeStoreInterface for managing authorization codes.
type AuthorizationCodeStore struct {
	DBProvider provider.DBProviderInterface
}

// NewAuthorizationCodeStore creates a new instance of AuthorizationCodeStore.
func NewAuthorizationCodeStore() AuthorizationCodeStoreInterface {
	return &AuthorizationCodeStore{
		DBProvider: provider.NewDBProvider(),
	}
}

// InsertAuthorizationCode inserts a new authorization code into the database.
func (acs *AuthorizationCodeStore) InsertAuthorizationCode(authzCode model.AuthorizationCode) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := acs.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	_, err = dbClient.Execute(constants.QueryInsertAuthorizationCode, authzCode.CodeID, authzCode.Code,
		authzCode.ClientID, authzCode.RedirectURI, authzCode.AuthorizedUserID,
		utils.JoinScopes(authzCode.Scopes), authzCode.CodeChallenge, authzCode.CodeChallengeMethod,
		authzCode.TimeCreated, authzCode.ExpiryTime, authzCode.State)
	if err != nil {
		logger.Error("Failed to insert authorization code", log.Error(err))
		return fmt.Errorf("failed to insert authorization code: %w", err)
	}

	return nil
}

// GetAuthorizationCode retrieves an authorization code by client id and authorization code.
func (acs *AuthorizationCodeStore) GetAuthorizationCode(clientID, authCode string) (
	model.AuthorizationCode, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := acs.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return model.AuthorizationCode{}, err
	}

	results, err := dbClient.Query(constants.QueryGetAuthorizationCode, clientID, authCode)
	if err != nil {
		return model.AuthorizationCode{}, fmt.Errorf("error while retrieving authorization code: %w", err)
	}
	if len(results) == 0 {
		return model.AuthorizationCode{}, constants.ErrAuthorizationCodeNotFound
	}
	row := results[0]

	codeID := parseStringField(row["code_id"])
	if codeID == "" {
		return model.AuthorizationCode{}, constants.ErrAuthorizationCodeNotFound
	}

	return model.AuthorizationCode{
		CodeID:              codeID,
		Code:                parseStringField(row["authorization_code"]),
		ClientID:            clientID,
		RedirectURI:         parseStringField(row["callback_url"]),
		AuthorizedUserID:    parseStringField(row["authz_user"]),
		Scopes:              utils.ParseScopes(parseStringField(row["scopes"])),
		CodeChallenge:       parseStringField(row["code_challenge"]),
		CodeChallengeMethod: parseStringField(row["code_challenge_method"]),
		TimeCreated:         parseInt64Field(row["time_created"]),
		ExpiryTime:          parseInt64Field(row["expiry_time"]),
		State:               parseStringField(row["state"]),
	}, nil
}

// ConsumeAuthorizationCode atomically flips an ACTIVE code to INACTIVE. When the
// code was already redeemed or never existed, no row matches and the caller is
// rejected, so a code can be exchanged at most once.
func (acs *AuthorizationCodeStore) ConsumeAuthorizationCode(clientID, authCode string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := acs.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	rowsAffected, err := dbClient.Execute(constants.QueryConsumeAuthorizationCode, clientID, authCode)
	if err != nil {
		return fmt.Errorf("error while consuming authorization code: %w", err)
	}
	if rowsAffected == 0 {
		return constants.ErrAuthorizationCodeNotActive
	}

	return nil
}

// RevokeAuthorizationCode revokes an authorization code.
func (acs *AuthorizationCodeStore) RevokeAuthorizationCode(authzCode model.AuthorizationCode) error {
	return acs.updateAuthorizationCodeState(authzCode, constants.AuthCodeStateRevoked)
}

// ExpireAuthorizationCode expires an authorization code.
func (acs *AuthorizationCodeStore) ExpireAuthorizationCode(authzCode model.AuthorizationCode) error {
	return acs.updateAuthorizationCodeState(authzCode, constants.AuthCodeStateExpired)
}

// DeleteExpiredAuthorizationCodes prunes codes whose expiry time is before the cutoff.
func (acs *AuthorizationCodeStore) DeleteExpiredAuthorizationCodes(cutoff int64) (int64, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := acs.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return 0, err
	}

	rowsAffected, err := dbClient.Execute(constants.QueryDeleteExpiredAuthorizationCodes, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error while pruning expired authorization codes: %w", err)
	}

	return rowsAffected, nil
}

// updateAuthorizationCodeState updates the state of an authorization code.
func (acs *AuthorizationCodeStore) updateAuthorizationCodeState(authzCode model.AuthorizationCode,
	newState string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := acs.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	_, err = dbClient.Execute(constants.QueryUpdateAuthorizationCodeState, newState, authzCode.CodeID)
	return err
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
