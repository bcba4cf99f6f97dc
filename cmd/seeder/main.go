package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	customerstore "github.com/wso2/customer-health-service/internal/customers/store"
	eventstore "github.com/wso2/customer-health-service/internal/events/store"
	"github.com/wso2/customer-health-service/internal/seed"
	"github.com/wso2/customer-health-service/internal/system/config"
	"github.com/wso2/customer-health-service/internal/system/database/provider"
	logger "github.com/wso2/customer-health-service/internal/system/log"
)

const configFile = "config/deployment.yaml"
const schemaFile = "dbscripts/postgres.sql"

// Seeds the database with segment-shaped synthetic customers and events.
func main() {

	chsHomeFlag := flag.String("chsHome", "", "Path to the customer health service home directory")
	customerCount := flag.Int("customers", 20, "Number of customers to generate")
	randomSeed := flag.Int64("seed", 42, "Random seed for reproducible data")
	initSchema := flag.Bool("initSchema", true, "Create the database schema before seeding")
	flag.Parse()

	chsHome := *chsHomeFlag
	if chsHome == "" {
		dir, err := os.Getwd()
		if err != nil {
			log.Fatalf("Failed to get current working directory: %v", err)
		}
		chsHome = dir
	}

	envFiles, _ := filepath.Glob(filepath.Join(chsHome, "config/*.env"))
	_ = godotenv.Load(envFiles...)

	chsConfig, err := config.LoadConfig(chsHome, configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.InitializeCHSRuntime(chsHome, chsConfig); err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	if err := logger.Init(chsConfig.Log.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if *initSchema {
		dbClient, err := provider.NewDBProvider().GetDBClient()
		if err != nil {
			logger.GetLogger().Fatal("Failed to connect to the database", logger.Error(err))
		}
		if err := dbClient.InitDatabase(chsHome, schemaFile); err != nil {
			logger.GetLogger().Fatal("Failed to initialize the database schema", logger.Error(err))
		}
		dbClient.Close()
	}

	scoring := chsConfig.Scoring
	generator := seed.NewGenerator(*randomSeed, scoring.LookbackDays, scoring.FeatureCatalogSize)

	customers := generator.Customers(*customerCount)
	totalEvents := 0
	for _, customer := range customers {
		if err := customerstore.AddCustomer(customer); err != nil {
			logger.GetLogger().Fatal("Failed to insert customer", logger.Error(err))
		}
		events := generator.EventsFor(customer)
		if err := eventstore.AddEvents(events); err != nil {
			logger.GetLogger().Fatal("Failed to insert events", logger.Error(err))
		}
		totalEvents += len(events)
		logger.GetLogger().Info(fmt.Sprintf("Seeded customer %s (%s) with %d events",
			customer.Name, customer.Segment, len(events)))
	}

	logger.GetLogger().Info(fmt.Sprintf("Seeding complete: %d customers, %d events", len(customers), totalEvents))
}
