package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/wso2/customer-health-service/internal/system/config"
	"github.com/wso2/customer-health-service/internal/system/constants"
	"github.com/wso2/customer-health-service/internal/system/database/provider"
	logger "github.com/wso2/customer-health-service/internal/system/log"
	"github.com/wso2/customer-health-service/internal/system/managers"
	"github.com/wso2/customer-health-service/internal/system/metrics"
)

const configFile = "config/deployment.yaml"
const schemaFile = "dbscripts/postgres.sql"

func main() {

	chsHome, initSchema := parseFlags()

	envFiles, _ := filepath.Glob(filepath.Join(chsHome, "config/*.env"))
	_ = godotenv.Load(envFiles...)

	// Load the configuration file.
	chsConfig, err := config.LoadConfig(chsHome, configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializeCHSRuntime(chsHome, chsConfig); err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Initialize logger.
	if err := logger.Init(chsConfig.Log.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if initSchema {
		initDatabaseSchema(chsHome)
	}

	serverAddr := fmt.Sprintf("%s:%d", chsConfig.Addr.Host, chsConfig.Addr.Port)
	mux := initMultiplexer()
	handler := enableCORS(metrics.InstrumentHandler("api", mux), chsConfig.Auth.CORSAllowedOrigins)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.GetLogger().Fatal("Failed to start listener", logger.Error(err))
	}

	logger.GetLogger().Info("Customer health service started", logger.String("addr", serverAddr))

	server := &http.Server{
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.Serve(ln); err != nil {
		logger.GetLogger().Fatal("Failed to serve requests", logger.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		logger.GetLogger().Fatal("Failed to register the services", logger.Error(err))
	}

	return mux
}

// initDatabaseSchema creates the customers and events tables if missing.
func initDatabaseSchema(chsHome string) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to the database", logger.Error(err))
	}
	defer dbClient.Close()

	if err := dbClient.InitDatabase(chsHome, schemaFile); err != nil {
		logger.GetLogger().Fatal("Failed to initialize the database schema", logger.Error(err))
	}
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {

	origin := "*"
	if len(allowedOrigins) > 0 {
		origin = allowedOrigins[0]
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// parseFlags resolves the service home directory and the schema init switch
// from the command line.
func parseFlags() (string, bool) {

	projectHomeFlag := flag.String("chsHome", "", "Path to the customer health service home directory")
	initSchemaFlag := flag.Bool("initSchema", false, "Create the database schema on startup")
	flag.Parse()

	projectHome := *projectHomeFlag
	if projectHome == "" {
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			log.Fatalf("Failed to get current working directory: %v", dirErr)
		}
		projectHome = dir
	}

	return projectHome, *initSchemaFlag
}
