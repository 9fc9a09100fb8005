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

package store

import dbmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/model"

var (
	// QueryGetConsentByUserAndClient is the query to retrieve a stored consent grant
	// for a user and client pair.
	QueryGetConsentByUserAndClient = dbmodel.DBQuery{
		ID: "COQ-00001",
		Query: "SELECT CONSENT_ID, AUTHZ_USER, CONSUMER_KEY, SCOPES, TIME_GRANTED " +
			"FROM IDN_OAUTH2_USER_CONSENT WHERE AUTHZ_USER = $1 AND CONSUMER_KEY = $2",
		SQLiteQuery: "SELECT CONSENT_ID, AUTHZ_USER, CONSUMER_KEY, SCOPES, TIME_GRANTED " +
			"FROM IDN_OAUTH2_USER_CONSENT WHERE AUTHZ_USER = ? AND CONSUMER_KEY = ?",
	}

	// QueryInsertConsent is the query to record a consent grant for a user and client pair.
	QueryInsertConsent = dbmodel.DBQuery{
		ID: "COQ-00002",
		Query: "INSERT INTO IDN_OAUTH2_USER_CONSENT (CONSENT_ID, AUTHZ_USER, CONSUMER_KEY, SCOPES, TIME_GRANTED) " +
			"VALUES ($1, $2, $3, $4, $5)",
		SQLiteQuery: "INSERT INTO IDN_OAUTH2_USER_CONSENT " +
			"(CONSENT_ID, AUTHZ_USER, CONSUMER_KEY, SCOPES, TIME_GRANTED) VALUES (?, ?, ?, ?, ?)",
	}

	// QueryUpdateConsentScopes is the query to replace the scopes of an existing consent grant.
	QueryUpdateConsentScopes = dbmodel.DBQuery{
		ID: "COQ-00003",
		Query: "UPDATE IDN_OAUTH2_USER_CONSENT SET SCOPES = $1, TIME_GRANTED = $2 " +
			"WHERE AUTHZ_USER = $3 AND CONSUMER_KEY = $4",
		SQLiteQuery: "UPDATE IDN_OAUTH2_USER_CONSENT SET SCOPES = ?, TIME_GRANTED = ? " +
			"WHERE AUTHZ_USER = ? AND CONSUMER_KEY = ?",
	}

	// QueryDeleteConsent is the query to revoke a stored consent grant.
	QueryDeleteConsent = dbmodel.DBQuery{
		ID:          "COQ-00004",
		Query:       "DELETE FROM IDN_OAUTH2_USER_CONSENT WHERE AUTHZ_USER = $1 AND CONSUMER_KEY = $2",
		SQLiteQuery: "DELETE FROM IDN_OAUTH2_USER_CONSENT WHERE AUTHZ_USER = ? AND CONSUMER_KEY = ?",
	}
)
