/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	enrollmentstore "github.com/reachline/journey-automation-service/internal/enrollments/store"
	"github.com/reachline/journey-automation-service/internal/system/config"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	"github.com/reachline/journey-automation-service/internal/system/log"
	"github.com/reachline/journey-automation-service/internal/system/managers"
	"github.com/reachline/journey-automation-service/internal/system/mongo"
	"github.com/reachline/journey-automation-service/internal/system/schedulers"
	"github.com/reachline/journey-automation-service/internal/system/workers"
)

const configFile = "repository/conf/deployment.yaml"

func main() {
	serviceHome := getServiceHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	// Load the configuration file.
	jasConfig, err := config.LoadConfig(serviceHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializeJASRuntime(serviceHome, jasConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Initialize logger.
	if err := log.Init(jasConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	// Connect the enrollment document store.
	mongo.Connect(jasConfig.Mongo.URI, jasConfig.Mongo.Database)
	if err := enrollmentstore.EnsureIndexes(); err != nil {
		logger.Fatal("Failed to create enrollment indexes", log.Error(err))
	}

	// Start the per-enrollment worker shards and the timer scheduler.
	workers.StartEnrollmentWorkers()
	stopScheduler := make(chan struct{})
	go schedulers.StartTransitionScheduler(pollInterval(jasConfig), stopScheduler)

	serverAddr := fmt.Sprintf("%s:%d", jasConfig.Addr.Host, jasConfig.Addr.Port)
	mux := initMultiplexer()
	handler := enableCORS(mux)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}
	logger.Info("Journey automation service started", log.String("addr", serverAddr))

	server := &http.Server{Handler: handler}
	if err := server.Serve(ln); err != nil {
		logger.Error("Failed to serve requests", log.Error(err))
	}

	close(stopScheduler)
	workers.StopEnrollmentWorkers()
}

// pollInterval returns the configured pending-transition poll interval,
// falling back to the default.
func pollInterval(jasConfig *config.Config) time.Duration {
	if jasConfig.Scheduler.PollIntervalSeconds > 0 {
		return time.Duration(jasConfig.Scheduler.PollIntervalSeconds) * time.Second
	}
	return constants.PendingTransitionPollInterval
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Error("Failed to register the services", log.Error(err))
	}

	return mux
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getServiceHome() string {

	serviceHomeFlag := flag.String("serviceHome", "", "Path to the service home directory")
	flag.Parse()

	if *serviceHomeFlag != "" {
		return *serviceHomeFlag
	}
	dir, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to get current working directory: %v", err)
	}
	return dir
}
