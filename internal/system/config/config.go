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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"errors"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// CryptoConfig holds the key material for signing continuation tokens.
type CryptoConfig struct {
	Key string `yaml:"key"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the database configuration details.
type DatabaseConfig struct {
	Identity DataSource `yaml:"identity"`
}

// JWTConfig holds the token issuance configuration details.
type JWTConfig struct {
	Issuer                  string `yaml:"issuer"`
	ResourceAudience        string `yaml:"resource_audience"`
	ValidityPeriod          int64  `yaml:"validity_period"`
	IDTokenValidityPeriod   int64  `yaml:"id_token_validity_period"`
	AuthzCodeValidityPeriod int64  `yaml:"authz_code_validity_period"`
}

// OAuthConfig holds the OAuth configuration details.
type OAuthConfig struct {
	JWT JWTConfig `yaml:"jwt"`
}

// CleanupConfig holds the background pruning configuration details.
type CleanupConfig struct {
	Interval int64 `yaml:"interval"`
}

// CORSConfig holds the cross-origin request configuration details.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	Disabled bool  `yaml:"disabled"`
	Size     int   `yaml:"size"`
	TTL      int64 `yaml:"ttl"`
}

// SeedClient holds a client registration seeded at startup.
type SeedClient struct {
	ClientID               string   `yaml:"client_id"`
	ClientSecret           string   `yaml:"client_secret"`
	Name                   string   `yaml:"name"`
	RedirectURIs           []string `yaml:"redirect_uris"`
	PostLogoutRedirectURIs []string `yaml:"post_logout_redirect_uris"`
	AllowedScopes          []string `yaml:"allowed_scopes"`
	GrantTypes             []string `yaml:"grant_types"`
	ResponseTypes          []string `yaml:"response_types"`
	RequirePKCE            bool     `yaml:"require_pkce"`
	Public                 bool     `yaml:"public"`
}

// SeedUser holds a principal seeded at startup.
type SeedUser struct {
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	Roles    []string `yaml:"roles"`
	Active   bool     `yaml:"active"`
}

// SeedConfig holds the administrative seed data.
type SeedConfig struct {
	Clients []SeedClient `yaml:"clients"`
	Users   []SeedUser   `yaml:"users"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	Crypto   CryptoConfig   `yaml:"crypto"`
	Database DatabaseConfig `yaml:"database"`
	OAuth    OAuthConfig    `yaml:"oauth"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
	CORS     CORSConfig     `yaml:"cors"`
	Cache    CacheConfig    `yaml:"cache"`
	Seed     SeedConfig     `yaml:"seed"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateConfig checks the configuration values an authorization server must never start without.
func validateConfig(cfg *Config) error {
	if cfg.Security.KeyFile == "" {
		return errors.New("security.key_file is required to sign tokens")
	}
	if cfg.Crypto.Key == "" {
		return errors.New("crypto.key is required to sign continuation tokens")
	}
	if cfg.OAuth.JWT.Issuer == "" {
		return errors.New("oauth.jwt.issuer is required")
	}
	return nil
}
