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

// Package main is the entry point for starting the task management authorization server.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/jwt"
	authzstore "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/store"
	sessionstore "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/store"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
	dbprovider "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/provider"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/seeder"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
)

const defaultCleanupInterval = 300

func main() {
	logger := log.GetLogger()

	serverHome := getServerHome(logger)

	cfg := initConfigurations(logger, serverHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	initDatabase(logger, cfg)

	mux := http.NewServeMux()
	registerServices(mux)

	startCleanupWorker(logger, cfg)

	if cfg.Server.HTTPOnly {
		logger.Info("TLS is not enabled, starting server without TLS")
		startHTTPServer(logger, cfg, mux)
	} else {
		startTLSServer(logger, cfg, mux, serverHome)
	}
}

// getServerHome retrieves and returns the server home directory.
func getServerHome(logger *log.Logger) string {
	serverHomeFlag := flag.String("serverHome", "", "Path to the server home directory")
	flag.Parse()

	if *serverHomeFlag != "" {
		logger.Info("Using serverHome from command line argument", log.String("serverHome", *serverHomeFlag))
		return *serverHomeFlag
	}

	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initConfigurations loads the configurations and the token signing key.
func initConfigurations(logger *log.Logger, serverHome string) *config.Config {
	configFilePath := path.Join(serverHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeServerRuntime(serverHome, cfg); err != nil {
		logger.Fatal("Failed to initialize server runtime", log.Error(err))
	}

	// The server must never start without its signing key.
	jwtService := jwt.GetJWTService()
	if err := jwtService.Init(); err != nil {
		logger.Fatal("Failed to load private key", log.Error(err))
	}

	return cfg
}

// initDatabase creates the identity schema and seeds the configured clients and users.
func initDatabase(logger *log.Logger, cfg *config.Config) {
	dbClient, err := dbprovider.NewDBProvider().GetDBClient("identity")
	if err != nil {
		logger.Fatal("Failed to get database client", log.Error(err))
	}

	dbSeeder := seeder.NewDBSeeder(dbClient)
	if err := dbSeeder.EnsureSchema(); err != nil {
		logger.Fatal("Failed to create database schema", log.Error(err))
	}
	if err := dbSeeder.SeedInitialData(cfg.Seed); err != nil {
		logger.Fatal("Failed to seed initial data", log.Error(err))
	}
}

// startCleanupWorker prunes expired authorization codes and sessions in the background.
func startCleanupWorker(logger *log.Logger, cfg *config.Config) {
	interval := cfg.Cleanup.Interval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	codeStore := authzstore.NewAuthorizationCodeStore()
	sessionStore := sessionstore.GetSessionStore()

	go func() {
		ticker := time.NewTicker(time.Duration(interval) * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			deleted, err := codeStore.DeleteExpiredAuthorizationCodes(time.Now().Unix())
			if err != nil {
				logger.Error("Failed to prune expired authorization codes", log.Error(err))
			} else if deleted > 0 {
				logger.Debug("Pruned expired authorization codes", log.Int("count", int(deleted)))
			}

			sessionStore.CleanupExpired()
		}
	}()
}

// startTLSServer starts the HTTPS server with TLS configuration.
func startTLSServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux, serverHome string) {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	certFile := path.Join(serverHome, cfg.Security.CertFile)
	keyFile := path.Join(serverHome, cfg.Security.KeyFile)

	logger.Info("Task management authorization server started (HTTPS)...", log.String("address", serverAddr))

	if err := server.ListenAndServeTLS(certFile, keyFile); err != nil {
		logger.Fatal("Failed to serve HTTPS requests", log.Error(err))
	}
}

// startHTTPServer starts the HTTP server without TLS.
func startHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	logger.Info("Task management authorization server started (HTTP)...", log.String("address", serverAddr))

	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Failed to serve HTTP requests", log.Error(err))
	}
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	wrappedMux := log.AccessLogHandler(logger, mux)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second, // Mitigate Slowloris attacks
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return server, serverAddr
}
