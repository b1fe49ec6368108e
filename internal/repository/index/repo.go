// Package index stores documentation pages as vector points in Redis and
// serves top-k similarity search over them.
package index

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/docvoice/docvoice/internal/db"
	"github.com/docvoice/docvoice/internal/domain"
)

// store is the consumer interface for the vector index (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// HNSWConfig holds HNSW index parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the vector index over a Redis FT index per collection.
type Repo struct {
	store store
	hnsw  HNSWConfig
}

// New creates a vector index repository.
func New(s store) *Repo {
	return &Repo{store: s, hnsw: HNSWConfig{M: 32, EFConstruct: 400}}
}

// WithHNSW configures HNSW index parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	if cfg.M > 0 {
		r.hnsw.M = cfg.M
	}
	if cfg.EFConstruct > 0 {
		r.hnsw.EFConstruct = cfg.EFConstruct
	}
	return r
}

// EnsureCollection creates the collection if absent. A second call with the
// same dimension is a no-op; an existing collection with a different
// dimension is a fatal setup error rather than a silent reuse.
func (r *Repo) EnsureCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("dimension must be positive, got %d", dimension)
	}

	metaKey := metaKey(name)
	meta, err := r.store.HGetAll(ctx, metaKey)
	if err != nil {
		return fmt.Errorf("hgetall collection %s: %w", name, err)
	}

	if len(meta) > 0 {
		existing, err := strconv.Atoi(meta["dimension"])
		if err != nil {
			return fmt.Errorf("parse stored dimension %q: %w", meta["dimension"], err)
		}
		if existing != dimension {
			return fmt.Errorf("collection %s has dimension %d, embedder produces %d: %w",
				name, existing, dimension, domain.ErrVectorDimMismatch)
		}
		// Heal a missing FT index behind existing metadata.
		exists, err := r.store.IndexExists(ctx, indexName(name))
		if err != nil {
			return fmt.Errorf("check index exists: %w", err)
		}
		if exists {
			return nil
		}
		return r.createIndex(ctx, name, dimension)
	}

	hashData := map[string]string{
		"dimension":  strconv.Itoa(dimension),
		"distance":   string(db.DistanceCosine),
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.store.HSet(ctx, metaKey, hashData); err != nil {
		return fmt.Errorf("hset collection %s: %w", name, err)
	}

	// FT.CREATE -- roll back the metadata hash on failure.
	if err := r.createIndex(ctx, name, dimension); err != nil {
		cleanupErr := r.store.Del(ctx, metaKey)
		return errors.Join(err, cleanupErr)
	}

	return nil
}

func (r *Repo) createIndex(ctx context.Context, name string, dimension int) error {
	def := &db.IndexDefinition{
		Name:     indexName(name),
		Prefixes: []string{pointPrefix(name)},
		Fields: []db.IndexField{
			{Name: fieldContent, Type: db.IndexFieldText},
			{Name: fieldURL, Type: db.IndexFieldTag},
			{
				Name:              fieldVector,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         dimension,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		// A concurrent or stale creation of the same index is fine.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// Upsert inserts or replaces a point by id.
func (r *Repo) Upsert(ctx context.Context, collection string, point domain.IndexedPoint) error {
	key := pointKey(collection, point.ID)
	if err := r.store.HSet(ctx, key, pointFields(point)); err != nil {
		return fmt.Errorf("hset point %s: %w", key, err)
	}
	return nil
}

// Search returns at most k results ordered by descending similarity.
// An empty collection yields an empty slice, never an error.
func (r *Repo) Search(ctx context.Context, collection string, vector []float32, k int) ([]domain.SearchResult, error) {
	q := &db.KNNQuery{
		IndexName:    indexName(collection),
		Vector:       vector,
		K:            k,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", collection, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	results := make([]domain.SearchResult, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		results = append(results, domain.SearchResult{
			Page:  pageFromFields(entry.Fields),
			Score: entry.Score,
		})
	}
	return results, nil
}

// Count returns the number of points in a collection.
func (r *Repo) Count(ctx context.Context, collection string) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName(collection), "*")
	if err != nil {
		return 0, fmt.Errorf("search count %s: %w", collection, err)
	}
	return n, nil
}

// Redis key patterns: docvoice:collection:{name}, docvoice:{name}:idx, docvoice:{name}:{id}

func metaKey(name string) string {
	return fmt.Sprintf("%scollection:%s", domain.KeyPrefix, name)
}

func indexName(name string) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, name)
}

func pointPrefix(name string) string {
	return fmt.Sprintf("%s%s:", domain.KeyPrefix, name)
}

func pointKey(name, id string) string {
	return pointPrefix(name) + id
}
