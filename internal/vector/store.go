// Package vector provides brute-force vector search over document chunks.
// Vectors persist as Postgres BYTEA rows and are held in memory for search;
// at the collection sizes a personal knowledge base reaches this is exact
// and sub-millisecond.
package vector

import (
	"container/heap"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/Shivakushwah143/SecondBrain/internal/database"
)

type entry struct {
	collection string
	vec        []float32
}

// Store indexes normalized embeddings by item id, scoped to a collection per
// uploaded document.
type Store struct {
	db *database.DB

	mu      sync.RWMutex
	vectors map[string]entry
}

// ScoredResult pairs an item ID with a similarity score.
type ScoredResult struct {
	ID    string
	Score float64
}

// NewStore loads all persisted vectors into memory.
func NewStore(ctx context.Context, db *database.DB) (*Store, error) {
	s := &Store{
		db:      db,
		vectors: make(map[string]entry),
	}
	if err := s.loadAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to load vectors: %w", err)
	}
	return s, nil
}

func (s *Store) loadAll(ctx context.Context) error {
	rows, err := s.db.Pool.Query(ctx, "SELECT item_id, collection, embedding, dimensions FROM vectors")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, collection string
		var blob []byte
		var dims int
		if err := rows.Scan(&id, &collection, &blob, &dims); err != nil {
			return err
		}
		s.vectors[id] = entry{collection: collection, vec: blobToFloat32(blob, dims)}
	}
	return rows.Err()
}

// Upsert stores a vector for itemID under collection. The vector is
// normalized on insert so dot product equals cosine similarity.
func (s *Store) Upsert(ctx context.Context, collection, itemID string, vector []float32) error {
	normalized := normalize(vector)
	blob := float32ToBlob(normalized)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO vectors (item_id, collection, embedding, dimensions)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id) DO UPDATE SET
			collection = EXCLUDED.collection,
			embedding = EXCLUDED.embedding,
			dimensions = EXCLUDED.dimensions
	`, itemID, collection, blob, len(normalized))
	if err != nil {
		return fmt.Errorf("failed to upsert vector: %w", err)
	}

	s.vectors[itemID] = entry{collection: collection, vec: normalized}
	return nil
}

// Search returns the top-K items of a collection by cosine similarity to the
// query vector, best first. A min-heap tracks only the current top K.
func (s *Store) Search(collection string, queryVec []float32, limit int) []ScoredResult {
	if limit <= 0 {
		limit = 5
	}
	normalizedQuery := normalize(queryVec)

	s.mu.RLock()
	h := &minHeap{}
	heap.Init(h)
	for id, e := range s.vectors {
		if e.collection != collection || len(e.vec) != len(normalizedQuery) {
			continue
		}
		score := dotProduct(normalizedQuery, e.vec)
		if h.Len() < limit {
			heap.Push(h, ScoredResult{ID: id, Score: score})
		} else if score > (*h)[0].Score {
			(*h)[0] = ScoredResult{ID: id, Score: score}
			heap.Fix(h, 0)
		}
	}
	s.mu.RUnlock()

	results := make([]ScoredResult, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		results[i] = heap.Pop(h).(ScoredResult)
	}
	return results
}

// DeleteCollection removes every vector belonging to collection.
func (s *Store) DeleteCollection(ctx context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Pool.Exec(ctx, "DELETE FROM vectors WHERE collection = $1", collection)
	if err != nil {
		return fmt.Errorf("failed to delete collection vectors: %w", err)
	}

	for id, e := range s.vectors {
		if e.collection == collection {
			delete(s.vectors, id)
		}
	}
	return nil
}

// Count returns the number of stored vectors across all collections.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// minHeap implements heap.Interface for top-K selection (min at root).
type minHeap []ScoredResult

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i].Score < h[j].Score }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(ScoredResult)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)

	out := make([]float32, len(v))
	if norm == 0 {
		return out
	}
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dotProduct(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func float32ToBlob(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func blobToFloat32(b []byte, dims int) []float32 {
	v := make([]float32, dims)
	for i := 0; i < dims && i*4+4 <= len(b); i++ {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
