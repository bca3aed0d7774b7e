// File: internal/platform/elasticsearch/index.go
package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

const RoomsIndexName = "rooms"

// defineRoomsMapping returns the JSON string for the rooms index mapping.
func defineRoomsMapping() (string, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title":       map[string]interface{}{"type": "text"},
				"location":    map[string]interface{}{"type": "text", "fields": map[string]interface{}{"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256}}},
				"description": map[string]interface{}{"type": "text"},
				"owner_id":    map[string]interface{}{"type": "keyword"},
				"slug":        map[string]interface{}{"type": "keyword"},
				"price":       map[string]interface{}{"type": "double"},
				"bedrooms":    map[string]interface{}{"type": "integer"},
				"bathrooms":   map[string]interface{}{"type": "integer"},
				"amenities":   map[string]interface{}{"type": "keyword"},
				"available":   map[string]interface{}{"type": "boolean"},
				"created_at":  map[string]interface{}{"type": "date"},
				"updated_at":  map[string]interface{}{"type": "date"},
			},
		},
	}
	mappingBytes, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling rooms mapping to JSON: %w", err)
	}
	return string(mappingBytes), nil
}

// CreateRoomsIndexIfNotExists creates the rooms index with the defined
// mapping if it does not already exist.
func CreateRoomsIndexIfNotExists(client *ESClientWrapper, logger *zap.Logger) error {
	ctx := context.Background()
	log := logger.Named("elasticsearch_index_setup")

	existsReq := esapi.IndicesExistsRequest{
		Index: []string{RoomsIndexName},
	}
	res, err := existsReq.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error checking if rooms index exists", zap.Error(err))
		return fmt.Errorf("error checking if rooms index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		log.Info("Rooms index already exists", zap.String("index_name", RoomsIndexName))
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Error("Unexpected status checking rooms index", zap.String("status", res.Status()))
		return fmt.Errorf("unexpected status checking rooms index: %s", res.Status())
	}

	mapping, err := defineRoomsMapping()
	if err != nil {
		return err
	}

	createReq := esapi.IndicesCreateRequest{
		Index: RoomsIndexName,
		Body:  strings.NewReader(mapping),
	}
	createRes, err := createReq.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error creating rooms index", zap.Error(err))
		return fmt.Errorf("error creating rooms index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		log.Error("Rooms index creation returned an error", zap.String("status", createRes.Status()))
		return fmt.Errorf("rooms index creation failed: %s", createRes.Status())
	}

	log.Info("Rooms index created", zap.String("index_name", RoomsIndexName))
	return nil
}
