package main

import (
	"context"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/nxtreasury/treasury-workflow/pkg/approval"
	"github.com/nxtreasury/treasury-workflow/pkg/audit"
	"github.com/nxtreasury/treasury-workflow/pkg/config"
	"github.com/nxtreasury/treasury-workflow/pkg/handlers"
	"github.com/nxtreasury/treasury-workflow/pkg/middleware"
	"github.com/nxtreasury/treasury-workflow/pkg/risk"
	"github.com/nxtreasury/treasury-workflow/pkg/storage"
	dynamostore "github.com/nxtreasury/treasury-workflow/pkg/storage/dynamodb"
	"github.com/nxtreasury/treasury-workflow/pkg/storage/memory"
	"github.com/nxtreasury/treasury-workflow/pkg/workflow"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// The dynamodb backend and the SQS audit trail share one AWS config;
	// neither is loaded when everything runs in memory.
	var awsCfg aws.Config
	if cfg.Backend == config.BackendDynamoDB || cfg.AuditQueueURL != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
	}

	var store storage.Store
	switch cfg.Backend {
	case config.BackendDynamoDB:
		store = dynamostore.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.ProposalsTable, cfg.ResultsTable)
	default:
		store = memory.NewStore()
	}

	var auditor audit.Publisher = &audit.NoOpPublisher{}
	if cfg.AuditQueueURL != "" {
		auditor = audit.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.AuditQueueURL)
	}

	assessor := risk.NewAssessor(cfg.RiskFlagRate, rand.New(rand.NewSource(time.Now().UnixNano())))
	controller := workflow.NewController(store, assessor, approval.NewProcessor(), auditor, logger)
	controller.ConsumeResults = cfg.Retention == config.RetentionConsume

	handler := handlers.NewHandler(controller, logger)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestLogger(logger))
	handler.Routes(router)

	logger.Info("starting server", "port", cfg.HTTPPort, "backend", string(cfg.Backend))

	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
