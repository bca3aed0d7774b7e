// File: cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ktm_rentals_backend/internal/config"
	"ktm_rentals_backend/internal/platform/database"
	platformElasticsearch "ktm_rentals_backend/internal/platform/elasticsearch"
	"ktm_rentals_backend/internal/platform/logger"
	"ktm_rentals_backend/internal/room"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

func main() {
	syncRoomsCmd := flag.NewFlagSet("sync-rooms", flag.ExitOnError)
	batchSize := syncRoomsCmd.Int("batch-size", 100, "Batch size for syncing rooms")
	esRefresh := syncRoomsCmd.String("es-refresh", "false", "Elasticsearch refresh policy (true, false, wait_for)")

	if len(os.Args) > 1 && os.Args[1] == "sync-rooms" {
		syncRoomsCmd.Parse(os.Args[2:])

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("FATAL: Failed to load configuration for sync: %v", err)
		}
		appLogger, err := logger.New(cfg)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize logger for sync: %v", err)
		}
		db, err := database.NewGORM(cfg)
		if err != nil {
			appLogger.Fatal("FATAL: Failed to initialize database for sync", zap.Error(err))
		}
		sqlDB, _ := db.DB()
		defer sqlDB.Close()

		esClient, err := platformElasticsearch.NewClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("FATAL: Failed to initialize Elasticsearch client for sync", zap.Error(err))
		}
		if esClient == nil {
			appLogger.Fatal("FATAL: Elasticsearch is not configured, ensure ELASTICSEARCH_URL is set.")
		}

		if err := platformElasticsearch.CreateRoomsIndexIfNotExists(esClient, appLogger); err != nil {
			appLogger.Fatal("FATAL: Failed to create/verify Elasticsearch index before sync", zap.Error(err))
		}

		roomRepo := room.NewGORMRepository(db)
		if err := runRoomSync(roomRepo, esClient, appLogger, *batchSize, *esRefresh); err != nil {
			appLogger.Fatal("FATAL: Room synchronization failed", zap.Error(err))
		}
		appLogger.Info("Room synchronization completed successfully.")
		return
	}

	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	if server.ESClient != nil {
		if err := platformElasticsearch.CreateRoomsIndexIfNotExists(server.ESClient, server.AppLogger); err != nil {
			server.AppLogger.Error("Failed to create Elasticsearch rooms index, search falls back to the database", zap.Error(err))
		}
	} else {
		server.AppLogger.Info("Elasticsearch client not configured, skipping index creation.")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runRoomSync pushes all room rows into the Elasticsearch index in batches.
func runRoomSync(
	roomRepo room.Repository,
	esClient *platformElasticsearch.ESClientWrapper,
	appLogger *zap.Logger,
	batchSize int,
	esRefresh string,
) error {
	appLogger.Info("Starting room synchronization to Elasticsearch...",
		zap.Int("batchSize", batchSize),
		zap.String("esRefreshPolicy", esRefresh),
	)

	offset := 0
	totalSynced := 0
	totalFailed := 0

	for {
		rooms, err := roomRepo.FindBatch(context.Background(), offset, batchSize)
		if err != nil {
			return fmt.Errorf("failed to fetch batch at offset %d: %w", offset, err)
		}
		if len(rooms) == 0 {
			break
		}

		var bulkBody strings.Builder
		docsInBatch := 0
		for i := range rooms {
			r := &rooms[i]
			docJSON, errDoc := room.RoomToElasticsearchDoc(r)
			if errDoc != nil {
				appLogger.Error("Failed to convert room to Elasticsearch document",
					zap.String("roomID", r.ID.String()),
					zap.Error(errDoc),
				)
				totalFailed++
				continue
			}
			fmt.Fprintf(&bulkBody, `{ "index" : { "_index" : "%s", "_id" : "%s" } }%s`,
				platformElasticsearch.RoomsIndexName, r.ID.String(), "\n")
			bulkBody.WriteString(docJSON)
			bulkBody.WriteString("\n")
			docsInBatch++
		}

		if docsInBatch > 0 {
			synced, failed, err := sendBulk(esClient, bulkBody.String(), esRefresh)
			if err != nil {
				appLogger.Error("Bulk request failed", zap.Int("offset", offset), zap.Error(err))
				totalFailed += docsInBatch
			} else {
				totalSynced += synced
				totalFailed += failed
			}
		}

		offset += len(rooms)
		appLogger.Info("Batch processed", zap.Int("offset", offset), zap.Int("synced", totalSynced), zap.Int("failed", totalFailed))
	}

	appLogger.Info("Room synchronization finished",
		zap.Int("totalSynced", totalSynced),
		zap.Int("totalFailed", totalFailed),
	)
	if totalFailed > 0 {
		return fmt.Errorf("%d documents failed to sync", totalFailed)
	}
	return nil
}

func sendBulk(esClient *platformElasticsearch.ESClientWrapper, body, refresh string) (synced, failed int, err error) {
	req := esapi.BulkRequest{
		Body:    strings.NewReader(body),
		Refresh: refresh,
	}
	res, err := req.Do(context.Background(), esClient.Client)
	if err != nil {
		return 0, 0, fmt.Errorf("bulk request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, 0, fmt.Errorf("bulk request returned status %s", res.Status())
	}

	var bulkResponse struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string                 `json:"_id"`
				Status int                    `json:"status"`
				Error  map[string]interface{} `json:"error,omitempty"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkResponse); err != nil {
		return 0, 0, fmt.Errorf("failed to parse bulk response: %w", err)
	}

	for _, item := range bulkResponse.Items {
		if item.Index.Error != nil {
			failed++
		} else {
			synced++
		}
	}
	return synced, failed, nil
}
