package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/K-naman-T/techex-ai/models"
)

const (
	// DefaultTopK is how many projects a retrieval returns when the caller
	// does not say otherwise.
	DefaultTopK = 3

	// embedDelay spaces out embedding calls during a bulk load to stay under
	// the provider's rate limit.
	embedDelay = 150 * time.Millisecond
)

// VectorIndex is an in-memory nearest-neighbour index over the exhibition
// projects. Projects and embeddings are parallel slices, index-aligned; a
// project whose embedding call failed keeps an empty sentinel vector in its
// slot so the alignment invariant holds. The index is never mutated after
// Load; reloads build a fresh index and swap it in wholesale.
type VectorIndex struct {
	projects   []models.Project
	embeddings [][]float32
	embedder   Embedder
	delay      time.Duration
}

// NewVectorIndex creates an empty index that embeds through the given Embedder.
func NewVectorIndex(embedder Embedder) *VectorIndex {
	return &VectorIndex{embedder: embedder, delay: embedDelay}
}

// embeddingInput synthesizes the text that represents a project in vector
// space. The template is fixed so reloading the same knowledge base produces
// the same inputs.
func embeddingInput(p models.Project) string {
	return fmt.Sprintf("%s. Category: %s. Team: %s. %s",
		p.Title, p.Category, p.TeamName, p.Description)
}

// Load embeds every project and stores the vectors alongside the documents.
// A single failed embedding call does not abort the batch; the failed slot
// gets a sentinel vector and scores zero against every query.
func (idx *VectorIndex) Load(ctx context.Context, projects []models.Project) {
	idx.projects = make([]models.Project, len(projects))
	copy(idx.projects, projects)
	idx.embeddings = make([][]float32, len(projects))

	failed := 0
	for i, p := range projects {
		vec, err := idx.embedder.Embed(ctx, embeddingInput(p))
		if err != nil {
			log.Printf("INDEX WARN: embedding failed for %q, storing sentinel: %v", p.Title, err)
			vec = []float32{}
			failed++
		}
		idx.embeddings[i] = vec

		if idx.delay > 0 && i < len(projects)-1 {
			select {
			case <-ctx.Done():
				// Skip the remaining rate-limit sleeps; subsequent embed
				// calls fail fast and leave sentinels.
			case <-time.After(idx.delay):
			}
		}
	}
	log.Printf("INDEX: loaded %d projects (%d with sentinel embeddings)", len(projects), failed)
}

// Len returns the number of indexed projects.
func (idx *VectorIndex) Len() int {
	return len(idx.projects)
}

// Search embeds the query and returns up to topK projects ranked by descending
// cosine similarity, ties keeping load order. A failed query embedding yields
// an empty result rather than an error; retrieval never blocks the chat flow.
func (idx *VectorIndex) Search(ctx context.Context, query string, topK int) []models.Project {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if len(idx.projects) == 0 {
		return nil
	}

	queryVec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("INDEX WARN: query embedding failed, skipping retrieval: %v", err)
		return nil
	}

	type scored struct {
		project models.Project
		score   float64
	}
	results := make([]scored, len(idx.projects))
	for i := range idx.projects {
		results[i] = scored{
			project: idx.projects[i],
			score:   CosineSimilarity(queryVec, idx.embeddings[i]),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if topK > len(results) {
		topK = len(results)
	}
	ranked := make([]models.Project, topK)
	for i := range ranked {
		ranked[i] = results[i].project
	}
	return ranked
}
