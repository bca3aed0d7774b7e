// File: internal/room/esdoc.go
package room

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	platformElasticsearch "ktm_rentals_backend/internal/platform/elasticsearch"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

// RoomToElasticsearchDoc converts a room to its Elasticsearch document
// representation.
func RoomToElasticsearchDoc(r *Room) (string, error) {
	if r == nil {
		return "", errors.New("room cannot be nil")
	}

	doc := map[string]interface{}{
		"title":      r.Title,
		"location":   r.Location,
		"owner_id":   r.OwnerID.String(),
		"slug":       r.Slug,
		"price":      r.Price,
		"bedrooms":   r.Bedrooms,
		"bathrooms":  r.Bathrooms,
		"amenities":  []string(r.Amenities),
		"available":  r.Available,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
	if r.Description != nil {
		doc["description"] = *r.Description
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal room %s to JSON: %w", r.ID, err)
	}
	return string(jsonBytes), nil
}

// searchRoomIDs runs a full-text query against the rooms index and returns
// the matching document ids in relevance order.
func searchRoomIDs(ctx context.Context, es *platformElasticsearch.ESClientWrapper, term string, size int) ([]uuid.UUID, error) {
	query := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  term,
						"fields": []string{"title^2", "location", "description"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"available": true},
				},
			},
		},
		"_source": false,
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(query); err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{platformElasticsearch.RoomsIndexName},
		Body:  &body,
	}
	res, err := req.Do(ctx, es.Client)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search returned status %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse elasticsearch response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// indexRoomDoc writes or overwrites a single room document in the index.
func indexRoomDoc(ctx context.Context, es *platformElasticsearch.ESClientWrapper, r *Room) error {
	docJSON, err := RoomToElasticsearchDoc(r)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      platformElasticsearch.RoomsIndexName,
		DocumentID: r.ID.String(),
		Body:       bytes.NewReader([]byte(docJSON)),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, es.Client)
	if err != nil {
		return fmt.Errorf("elasticsearch index request for room %s failed: %w", r.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch indexing of room %s returned status %s", r.ID, res.Status())
	}
	return nil
}

// deleteRoomDoc removes a room document from the index. A missing document
// is not an error.
func deleteRoomDoc(ctx context.Context, es *platformElasticsearch.ESClientWrapper, id uuid.UUID) error {
	req := esapi.DeleteRequest{
		Index:      platformElasticsearch.RoomsIndexName,
		DocumentID: id.String(),
	}
	res, err := req.Do(ctx, es.Client)
	if err != nil {
		return fmt.Errorf("elasticsearch delete request for room %s failed: %w", id, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch deletion of room %s returned status %s", id, res.Status())
	}
	return nil
}
