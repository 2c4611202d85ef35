package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/SHOMANS/tourer-backend/internal/config"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

// packageDocument is the indexed shape of a package
type packageDocument struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	LocationName string  `json:"location_name"`
	Country      string  `json:"country,omitempty"`
	Category     string  `json:"category,omitempty"`
	Price        float64 `json:"price"`
	IsActive     bool    `json:"is_active"`
	IsAvailable  bool    `json:"is_available"`
}

// ElasticsearchClient maintains the package search index. The Postgres
// catalog stays authoritative; the index only resolves free-text matches.
type ElasticsearchClient struct {
	client *elasticsearch.Client
	config config.ElasticsearchConfig
}

func NewElasticsearchClient(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &ElasticsearchClient{client: es, config: cfg}

	if err := client.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return client, nil
}

func (c *ElasticsearchClient) ensureIndex(ctx context.Context) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{c.config.Index},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", c.config.Index)
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":            map[string]interface{}{"type": "keyword"},
				"title":         map[string]interface{}{"type": "text", "analyzer": "english"},
				"description":   map[string]interface{}{"type": "text", "analyzer": "english"},
				"location_name": map[string]interface{}{"type": "text", "analyzer": "english"},
				"country":       map[string]interface{}{"type": "keyword"},
				"category":      map[string]interface{}{"type": "keyword"},
				"price":         map[string]interface{}{"type": "double"},
				"is_active":     map[string]interface{}{"type": "boolean"},
				"is_available":  map[string]interface{}{"type": "boolean"},
			},
		},
	}

	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: c.config.Index,
		Body:  strings.NewReader(string(mappingJSON)),
	}

	createRes, err := createReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	slog.Info("Created Elasticsearch index", "index", c.config.Index)
	return nil
}

// IndexPackage indexes or reindexes a package
func (c *ElasticsearchClient) IndexPackage(ctx context.Context, pkg *models.Package) error {
	doc := packageDocument{
		ID:           pkg.ID,
		Title:        pkg.Title,
		LocationName: pkg.LocationName,
		Price:        pkg.Price,
		IsActive:     pkg.IsActive,
		IsAvailable:  pkg.IsAvailable,
	}
	if pkg.Description != nil {
		doc.Description = *pkg.Description
	}
	if pkg.Country != nil {
		doc.Country = *pkg.Country
	}
	if pkg.Category != nil {
		doc.Category = *pkg.Category
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal package document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.config.Index,
		DocumentID: pkg.ID,
		Body:       strings.NewReader(string(docJSON)),
		Refresh:    "wait_for",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to index package: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexing error: %s", res.String())
	}

	return nil
}

// DeletePackage removes a package document from the index
func (c *ElasticsearchClient) DeletePackage(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{
		Index:      c.config.Index,
		DocumentID: id,
		Refresh:    "wait_for",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to delete package document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete error: %s", res.String())
	}

	return nil
}

// SearchIDs resolves a free-text query to matching package IDs, best first.
// The caller feeds the IDs into the SQL filter pipeline.
func (c *ElasticsearchClient) SearchIDs(ctx context.Context, query string, max int) ([]string, error) {
	if max <= 0 {
		max = 1000
	}

	searchRequest := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":     query,
						"fields":    []string{"title^2", "description", "location_name"},
						"fuzziness": "AUTO",
					},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"is_active": true}},
					{"term": map[string]interface{}{"is_available": true}},
				},
			},
		},
		"_source": false,
		"size":    max,
	}

	searchJSON, err := json.Marshal(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{c.config.Index},
		Body:  strings.NewReader(string(searchJSON)),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var response struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]string, len(response.Hits.Hits))
	for i, hit := range response.Hits.Hits {
		ids[i] = hit.ID
	}

	return ids, nil
}

// HealthCheck verifies the cluster is reachable
func (c *ElasticsearchClient) HealthCheck(ctx context.Context) error {
	req := esapi.ClusterHealthRequest{
		WaitForStatus: "yellow",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("health check error: %s", res.String())
	}

	return nil
}
