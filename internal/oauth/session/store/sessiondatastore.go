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

// Package store provides functionality for managing sign-on session storage.
package store

import (
	"sync"
	"time"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/model"
)

// SessionCookieName is the cookie referencing a server-side sign-on session.
const SessionCookieName = "TMSSESSIONID"

// SessionStoreInterface defines the interface for sign-on session storage.
type SessionStoreInterface interface {
	AddSession(sessionID string, session model.UserSession)
	GetSession(sessionID string) (bool, model.UserSession)
	ClearSession(sessionID string)
	ClearSessionStore()
	CleanupExpired()
}

// sessionStoreEntry represents an entry in the sign-on session store.
type sessionStoreEntry struct {
	session    model.UserSession
	expiryTime time.Time
}

// SessionStore provides the in-memory sign-on session store functionality.
type SessionStore struct {
	sessions       map[string]sessionStoreEntry
	validityPeriod time.Duration
	mu             sync.RWMutex
}

var (
	instance *SessionStore
	once     sync.Once
)

// GetSessionStore returns a singleton instance of SessionStore.
func GetSessionStore() SessionStoreInterface {
	once.Do(func() {
		instance = &SessionStore{
			sessions:       make(map[string]sessionStoreEntry),
			validityPeriod: 1 * time.Hour,
		}
	})

	return instance
}

// NewSessionStore creates a sign-on session store with the given validity period.
func NewSessionStore(validityPeriod time.Duration) SessionStoreInterface {
	return &SessionStore{
		sessions:       make(map[string]sessionStoreEntry),
		validityPeriod: validityPeriod,
	}
}

// AddSession adds a sign-on session to the store.
func (ss *SessionStore) AddSession(sessionID string, session model.UserSession) {
	if sessionID == "" {
		return
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.sessions[sessionID] = sessionStoreEntry{
		session:    session,
		expiryTime: time.Now().Add(ss.validityPeriod),
	}
}

// GetSession retrieves a sign-on session from the store.
func (ss *SessionStore) GetSession(sessionID string) (bool, model.UserSession) {
	if sessionID == "" {
		return false, model.UserSession{}
	}

	ss.mu.RLock()
	entry, exists := ss.sessions[sessionID]
	ss.mu.RUnlock()

	if exists {
		if time.Now().Before(entry.expiryTime) {
			return true, entry.session
		}
		ss.mu.Lock()
		delete(ss.sessions, sessionID)
		ss.mu.Unlock()
	}

	return false, model.UserSession{}
}

// ClearSession removes a specific sign-on session from the store.
func (ss *SessionStore) ClearSession(sessionID string) {
	if sessionID == "" {
		return
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, sessionID)
}

// ClearSessionStore removes all sign-on sessions from the store.
func (ss *SessionStore) ClearSessionStore() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.sessions = make(map[string]sessionStoreEntry)
}

// CleanupExpired removes all expired sign-on sessions from the store.
func (ss *SessionStore) CleanupExpired() {
	now := time.Now()

	ss.mu.Lock()
	defer ss.mu.Unlock()

	for sessionID, entry := range ss.sessions {
		if !now.Before(entry.expiryTime) {
			delete(ss.sessions, sessionID)
		}
	}
}
