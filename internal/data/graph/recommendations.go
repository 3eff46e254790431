package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/shopgraph-backend/internal/domain"
	pkgerrors "github.com/yungbote/shopgraph-backend/internal/pkg/errors"
	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
	"github.com/yungbote/shopgraph-backend/internal/platform/neo4jdb"
	"github.com/yungbote/shopgraph-backend/internal/platform/rediscache"
)

const (
	DefaultLimit = 5
	MinLimit     = 1
	MaxLimit     = 50
)

// ValidateLimit rejects limits outside [1,50] before any query runs.
func ValidateLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between %d and %d, got %d",
			pkgerrors.ErrInvalidArgument, MinLimit, MaxLimit, limit)
	}
	return nil
}

// Customers who bought what the target bought, scored by co-purchase
// path count, excluding the target's own products and the target itself.
const recommendCypher = `
MATCH (c:Customer {id: $customer_id})-[:PLACED]->(:Order)-[:CONTAINS]->(p:Product)
MATCH (p)<-[:CONTAINS]-(:Order)<-[:PLACED]-(other:Customer)
WHERE other <> c
MATCH (other)-[:PLACED]->(:Order)-[:CONTAINS]->(rec:Product)
WHERE NOT (c)-[:PLACED]->(:Order)-[:CONTAINS]->(:Product {id: rec.id})
RETURN rec.id AS product_id, rec.name AS product_name, count(*) AS score
ORDER BY score DESC
LIMIT $limit`

// Products sharing an order with the target, scored by co-occurrence.
const similarCypher = `
MATCH (p:Product {id: $product_id})<-[:CONTAINS]-(o:Order)-[:CONTAINS]->(rec:Product)
WHERE rec <> p
RETURN rec.id AS product_id, rec.name AS product_name, count(*) AS score
ORDER BY score DESC
LIMIT $limit`

// Service answers the two traversal queries. Each call opens its own
// read session, so concurrent requests and overlapping loader runs need
// no coordination beyond the store's own. The cache is optional and
// best-effort: nil or failing redis degrades to direct queries.
type Service struct {
	client *neo4jdb.Client
	cache  *rediscache.Cache
	log    *logger.Logger
}

func NewService(client *neo4jdb.Client, cache *rediscache.Cache, log *logger.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		log:    log.With("service", "Recommendations"),
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Service) RecommendForCustomer(ctx context.Context, customerID int64, limit int) ([]domain.Recommendation, error) {
	if err := ValidateLimit(limit); err != nil {
		return nil, err
	}
	return s.cachedQuery(ctx, CustomerCacheKey(customerID, limit), recommendCypher, map[string]any{
		"customer_id": customerID,
		"limit":       limit,
	})
}

func (s *Service) SimilarProducts(ctx context.Context, productID int64, limit int) ([]domain.Recommendation, error) {
	if err := ValidateLimit(limit); err != nil {
		return nil, err
	}
	return s.cachedQuery(ctx, ProductCacheKey(productID, limit), similarCypher, map[string]any{
		"product_id": productID,
		"limit":      limit,
	})
}

func CustomerCacheKey(customerID int64, limit int) string {
	return fmt.Sprintf("reco:c:%d:%d", customerID, limit)
}

func ProductCacheKey(productID int64, limit int) string {
	return fmt.Sprintf("reco:p:%d:%d", productID, limit)
}

func (s *Service) cachedQuery(ctx context.Context, key, cypher string, params map[string]any) ([]domain.Recommendation, error) {
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached []domain.Recommendation
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	recs, err := s.query(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(recs); err == nil {
		s.cache.Set(ctx, key, payload)
	}
	return recs, nil
}

func (s *Service) query(ctx context.Context, cypher string, params map[string]any) ([]domain.Recommendation, error) {
	session := s.client.NewReadSession(ctx)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		recs := make([]domain.Recommendation, 0, len(records))
		for _, record := range records {
			recs = append(recs, decodeRecommendation(record))
		}
		return recs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrBackend, err)
	}
	return out.([]domain.Recommendation), nil
}

func decodeRecommendation(record *neo4j.Record) domain.Recommendation {
	var rec domain.Recommendation
	if v, ok := record.Get("product_id"); ok {
		if id, ok := v.(int64); ok {
			rec.ProductID = id
		}
	}
	if v, ok := record.Get("product_name"); ok {
		if name, ok := v.(string); ok {
			rec.ProductName = name
		}
	}
	if v, ok := record.Get("score"); ok {
		if score, ok := v.(int64); ok {
			rec.Score = score
		}
	}
	return rec
}
