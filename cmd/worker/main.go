package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Verridian-ai/legal-gsw/internal/archive"
	"github.com/Verridian-ai/legal-gsw/internal/queue"
	"github.com/Verridian-ai/legal-gsw/internal/timing"
	"github.com/Verridian-ai/legal-gsw/internal/util"
	"github.com/Verridian-ai/legal-gsw/migrations"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Verridian-ai/legal-gsw/pkg/ai"
	oai "github.com/Verridian-ai/legal-gsw/pkg/ai/ollama"
	gai "github.com/Verridian-ai/legal-gsw/pkg/ai/openai"
	"github.com/Verridian-ai/legal-gsw/pkg/extractor"
	"github.com/Verridian-ai/legal-gsw/pkg/index"
	"github.com/Verridian-ai/legal-gsw/pkg/leaselock"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"
	"github.com/Verridian-ai/legal-gsw/pkg/logger/console"
	"github.com/Verridian-ai/legal-gsw/pkg/reconcile"
	"github.com/Verridian-ai/legal-gsw/pkg/workspace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	// GraphAiClient
	adapter := util.GetEnv("AI_ADAPTER")
	var aiClient ai.GraphAIClient

	switch adapter {
	case "ollama":
		client, err := oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			EmbeddingModel:  util.GetEnv("AI_EMBED_MODEL"),
			ExtractionModel: util.GetEnv("AI_CHAT_EXTRACT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 1)),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		aiClient = client
	default:
		aiClient = gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			EmbeddingModel:  util.GetEnv("AI_EMBED_MODEL"),
			ExtractionModel: util.GetEnv("AI_CHAT_EXTRACT_MODEL"),

			EmbeddingURL: util.GetEnv("AI_EMBED_URL"),
			EmbeddingKey: util.GetEnv("AI_EMBED_KEY"),
			ChatURL:      util.GetEnv("AI_CHAT_URL"),
			ChatKey:      util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		})
	}

	// Workspace store and entity index. With a database the index survives
	// restarts in pgvector; without one everything lives in a JSON snapshot
	// and the index is rebuilt in memory on load.
	var store workspace.Store
	var entityIndex index.EntityIndex

	databaseURL := util.GetEnvString("DATABASE_URL", "")
	if databaseURL != "" {
		if err := migrations.Run(databaseURL); err != nil {
			logger.Fatal("Failed to run migrations", "err", err)
		}
		pgConn, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			logger.Fatal("Unable to connect to database", "err", err)
		}
		defer pgConn.Close()
		pgConn.Config().AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			return pgxvec.RegisterTypes(ctx, conn)
		}
		store = workspace.NewPGXStore(workspace.PGXStoreParams{Pool: pgConn})
		entityIndex = index.NewPGVectorIndex(index.PGVectorIndexParams{
			Pool:     pgConn,
			Embedder: aiClient,
		})

		// Only one worker may merge at a time. Late replicas wait for the
		// lease instead of exiting.
		locker := leaselock.New(pgConn)
		lease, err := locker.Acquire(ctx, "workspace_writer", leaselock.Options{
			TTL:  time.Minute,
			Wait: true,
		})
		if err != nil {
			logger.Fatal("Failed to acquire workspace writer lease", "err", err)
		}
		defer lease.Release(context.Background())
		ctx = lease.Context
	} else {
		path := util.GetEnvString("WORKSPACE_PATH", "data/workspace.json")
		store = workspace.NewFileStore(workspace.FileStoreParams{Path: path})
		entityIndex = index.NewMemoryIndex(index.MemoryIndexParams{Embedder: aiClient})
	}

	reconciler := reconcile.NewReconciler(reconcile.ReconcilerParams{
		Index:               entityIndex,
		SimilarityThreshold: util.GetEnvFloat("GSW_SIMILARITY_THRESHOLD", reconcile.DefaultSimilarityThreshold),
	})

	manager := workspace.NewManager(workspace.ManagerParams{
		Store:      store,
		Index:      entityIndex,
		Reconciler: reconciler,
	})
	if err := manager.Load(ctx); err != nil {
		logger.Fatal("Failed to load workspace", "err", err)
	}

	ex := extractor.NewLLMExtractor(extractor.LLMExtractorParams{
		AIClient:       aiClient,
		MaxInputTokens: int(util.GetEnvNumeric("GSW_EXTRACT_MAX_TOKENS", 0)),
	})

	// Object storage is optional; without it documents must carry their text
	// inline and merge records are not archived.
	var arc *archive.Archive
	if util.GetEnvString("AWS_BUCKET", "") != "" {
		arc = archive.NewArchive(archive.ArchiveParams{
			Client: archive.NewS3Client(ctx),
		})
	}

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.DocumentQueue}); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	logger.Info("Listening for messages")

	// Single consumer channel with prefetch=1 so documents merge strictly in
	// arrival order.
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	err = consumerCh.Qos(1, 0, true)
	if err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := consumerCh.Consume(
		queue.DocumentQueue,
		fmt.Sprintf("%s_consumer", queue.DocumentQueue),
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.DocumentQueue, "err", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping message processor")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Info("Message channel closed", "queue", queue.DocumentQueue)
					return
				}

				startTime := time.Now()
				logger.Info("Received message", "queue", queue.DocumentQueue)

				processingErr := queue.ProcessDocumentMessage(ctx, arc, ex, manager, string(msg.Body))

				// If there was an error send to retry or dead-letter, otherwise ack the message
				if processingErr != nil {
					logger.Error("Error processing message", "queue", queue.DocumentQueue, "err", processingErr)
					handleProcessingError(consumerCh, msg, queue.DocumentQueue)
				} else {
					err = msg.Ack(false)
					if err != nil {
						logger.Error("Failed to ack message", "err", err)
					}
					logger.Info("Message processed successfully", "queue", queue.DocumentQueue)
				}

				metrics := aiClient.GetMetrics()
				logger.Info(
					"AI Metrics",
					"input_tokens", metrics.InputTokens,
					"output_tokens", metrics.OutputTokens,
					"total_tokens", metrics.TotalTokens,
					"duration", timing.FormatClock(time.Duration(metrics.DurationMs)*time.Millisecond),
				)

				logger.Info(
					"Processing time",
					"duration", timing.FormatClock(time.Since(startTime)),
				)
				logger.Info("Waiting for next message")
				aiClient.ResetMetrics()
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
}

func handleProcessingError(ch *amqp.Channel, msg amqp.Delivery, queueName string) {
	retries := 0
	if val, ok := msg.Headers["x-retries"]; ok {
		if v, ok := val.(int32); ok {
			retries = int(v)
		}
	}

	// If message has been retried 10 times, send to dead-letter
	if retries >= 10 {
		dlqName := queueName + "_dlq"
		logger.Info("Sending message to DLQ", "dlq", dlqName)
		pubErr := ch.Publish(
			"",
			dlqName,
			false,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        msg.Body,
				Headers:     msg.Headers,
			},
		)
		if pubErr != nil {
			logger.Error("Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
			msg.Nack(false, true)
			return
		}
		msg.Ack(false)
		return
	}

	retryName := queueName + "_retry"
	headers := msg.Headers
	if headers == nil {
		headers = amqp.Table{}
	}
	headers["x-retries"] = retries + 1

	pubErr := ch.Publish(
		"",
		retryName,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        msg.Body,
			Headers:     headers,
		},
	)
	if pubErr != nil {
		logger.Error("Failed to publish to retry queue", "retry_queue", retryName, "err", pubErr)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}
