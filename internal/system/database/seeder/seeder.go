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

// Package seeder provides schema creation and administrative data seeding for the identity database.
package seeder

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/crypto/hash"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/client"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

const loggerComponentName = "DBSeeder"

// SeederInterface defines the contract for database schema creation and seeding.
type SeederInterface interface {
	EnsureSchema() error
	SeedInitialData(seed config.SeedConfig) error
}

// DBSeeder implements SeederInterface for database data seeding.
type DBSeeder struct {
	dbClient client.DBClientInterface
}

// NewDBSeeder creates a new instance of DBSeeder.
func NewDBSeeder(dbClient client.DBClientInterface) SeederInterface {
	return &DBSeeder{
		dbClient: dbClient,
	}
}

// schemaQueries holds the DDL for the identity database. Timestamps are stored
// as Unix epoch seconds so both supported dialects scan them as int64.
var schemaQueries = []model.DBQuery{
	{
		ID: "SEED_CREATE_CLIENT_TABLE",
		Query: "CREATE TABLE IF NOT EXISTS IDN_OAUTH_CLIENT (" +
			"CLIENT_ID VARCHAR(255) PRIMARY KEY, " +
			"CLIENT_SECRET_HASH VARCHAR(255), " +
			"APP_NAME VARCHAR(255), " +
			"REDIRECT_URIS TEXT, " +
			"POST_LOGOUT_REDIRECT_URIS TEXT, " +
			"ALLOWED_SCOPES TEXT, " +
			"GRANT_TYPES TEXT, " +
			"RESPONSE_TYPES TEXT, " +
			"REQUIRE_PKCE INTEGER, " +
			"IS_PUBLIC INTEGER)",
	},
	{
		ID: "SEED_CREATE_USER_TABLE",
		Query: "CREATE TABLE IF NOT EXISTS IDN_USER (" +
			"USER_ID VARCHAR(36) PRIMARY KEY, " +
			"USERNAME VARCHAR(255) UNIQUE, " +
			"CREDENTIAL VARCHAR(255), " +
			"ROLES TEXT, " +
			"IS_ACTIVE INTEGER)",
	},
	{
		ID: "SEED_CREATE_AUTHZ_CODE_TABLE",
		Query: "CREATE TABLE IF NOT EXISTS IDN_OAUTH2_AUTHZ_CODE (" +
			"CODE_ID VARCHAR(36) PRIMARY KEY, " +
			"AUTHORIZATION_CODE VARCHAR(255) UNIQUE, " +
			"CONSUMER_KEY VARCHAR(255), " +
			"CALLBACK_URL TEXT, " +
			"AUTHZ_USER VARCHAR(36), " +
			"SCOPES TEXT, " +
			"CODE_CHALLENGE VARCHAR(255), " +
			"CODE_CHALLENGE_METHOD VARCHAR(16), " +
			"TIME_CREATED BIGINT, " +
			"EXPIRY_TIME BIGINT, " +
			"STATE VARCHAR(16))",
	},
	{
		ID: "SEED_CREATE_CONSENT_TABLE",
		Query: "CREATE TABLE IF NOT EXISTS IDN_OAUTH2_USER_CONSENT (" +
			"CONSENT_ID VARCHAR(36) PRIMARY KEY, " +
			"AUTHZ_USER VARCHAR(36), " +
			"CONSUMER_KEY VARCHAR(255), " +
			"SCOPES TEXT, " +
			"TIME_GRANTED BIGINT, " +
			"UNIQUE (AUTHZ_USER, CONSUMER_KEY))",
	},
}

// EnsureSchema creates the identity database tables if they do not exist.
func (s *DBSeeder) EnsureSchema() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	for _, query := range schemaQueries {
		if _, err := s.dbClient.Execute(query); err != nil {
			logger.Error("Failed to create table", log.String("queryID", query.GetID()), log.Error(err))
			return err
		}
	}

	return nil
}

// SeedInitialData seeds the configured clients and users into the database.
func (s *DBSeeder) SeedInitialData(seed config.SeedConfig) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Info("Starting database seeding process")

	if err := s.seedClients(seed.Clients); err != nil {
		logger.Error("Failed to seed clients", log.Error(err))
		return err
	}

	if err := s.seedUsers(seed.Users); err != nil {
		logger.Error("Failed to seed users", log.Error(err))
		return err
	}

	logger.Info("Database seeding process completed successfully")
	return nil
}

// seedClients seeds OAuth client registrations. Client secrets are stored hashed.
func (s *DBSeeder) seedClients(clients []config.SeedClient) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	for _, c := range clients {
		query := model.DBQuery{
			ID: "SEED_INSERT_CLIENT",
			SQLiteQuery: "INSERT OR IGNORE INTO IDN_OAUTH_CLIENT (CLIENT_ID, CLIENT_SECRET_HASH, APP_NAME, " +
				"REDIRECT_URIS, POST_LOGOUT_REDIRECT_URIS, ALLOWED_SCOPES, GRANT_TYPES, RESPONSE_TYPES, " +
				"REQUIRE_PKCE, IS_PUBLIC) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			PostgresQuery: "INSERT INTO IDN_OAUTH_CLIENT (CLIENT_ID, CLIENT_SECRET_HASH, APP_NAME, " +
				"REDIRECT_URIS, POST_LOGOUT_REDIRECT_URIS, ALLOWED_SCOPES, GRANT_TYPES, RESPONSE_TYPES, " +
				"REQUIRE_PKCE, IS_PUBLIC) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) " +
				"ON CONFLICT (CLIENT_ID) DO NOTHING",
		}

		secretHash := ""
		if c.ClientSecret != "" {
			secretHash = hash.HashString(c.ClientSecret)
		}

		_, err := s.dbClient.Execute(query, c.ClientID, secretHash, c.Name,
			utils.JoinStringArray(c.RedirectURIs), utils.JoinStringArray(c.PostLogoutRedirectURIs),
			utils.JoinStringArray(c.AllowedScopes), utils.JoinStringArray(c.GrantTypes),
			utils.JoinStringArray(c.ResponseTypes), boolToInt(c.RequirePKCE), boolToInt(c.Public))
		if err != nil {
			logger.Error("Failed to insert client", log.String("clientID", c.ClientID), log.Error(err))
			return err
		}
		logger.Debug("Seeded client", log.String("clientID", c.ClientID))
	}

	return nil
}

// seedUsers seeds principals. Passwords are stored as bcrypt hashes.
func (s *DBSeeder) seedUsers(users []config.SeedUser) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	for _, u := range users {
		query := model.DBQuery{
			ID: "SEED_INSERT_USER",
			SQLiteQuery: "INSERT OR IGNORE INTO IDN_USER (USER_ID, USERNAME, CREDENTIAL, ROLES, IS_ACTIVE) " +
				"VALUES (?, ?, ?, ?, ?)",
			PostgresQuery: "INSERT INTO IDN_USER (USER_ID, USERNAME, CREDENTIAL, ROLES, IS_ACTIVE) " +
				"VALUES ($1, $2, $3, $4, $5) ON CONFLICT (USERNAME) DO NOTHING",
		}

		credential, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash user credential", log.String("username", u.Username), log.Error(err))
			return err
		}

		_, err = s.dbClient.Execute(query, utils.GenerateUUID(), u.Username, string(credential),
			utils.JoinStringArray(u.Roles), boolToInt(u.Active))
		if err != nil {
			logger.Error("Failed to insert user", log.String("username", u.Username), log.Error(err))
			return err
		}
		logger.Debug("Seeded user", log.String("username", u.Username))
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
