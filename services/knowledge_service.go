package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/K-naman-T/techex-ai/models"

	"github.com/fsnotify/fsnotify"
)

// KnowledgeService owns the knowledge base and the vector index built from
// it. The index is rebuilt off to the side on reload and swapped in whole, so
// in-flight searches always see a fully built index.
type KnowledgeService interface {
	Event() models.Event
	Projects() []models.Project
	Search(ctx context.Context, query string, topK int) []models.Project
	Reload(ctx context.Context) error
	Watch(ctx context.Context)
}

type knowledgeServiceImpl struct {
	path     string
	embedder Embedder
	delay    time.Duration

	mu       sync.RWMutex
	event    models.Event
	projects []models.Project
	index    *VectorIndex
}

// NewKnowledgeService creates a service reading the knowledge base at path.
// Call Reload before serving requests.
func NewKnowledgeService(path string, embedder Embedder) KnowledgeService {
	return &knowledgeServiceImpl{
		path:     path,
		embedder: embedder,
		delay:    embedDelay,
		index:    NewVectorIndex(embedder),
	}
}

// Reload reads the knowledge base from disk, embeds every project into a new
// index, and atomically publishes the result.
func (s *knowledgeServiceImpl) Reload(ctx context.Context) error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("could not read knowledge base %s: %w", s.path, err)
	}

	var db models.KnowledgeDB
	if err := json.Unmarshal(raw, &db); err != nil {
		return fmt.Errorf("could not parse knowledge base %s: %w", s.path, err)
	}

	var event models.Event
	if len(db.Events) > 0 {
		event = db.Events[0]
	} else {
		log.Printf("KNOWLEDGE WARN: no event record in %s", s.path)
	}

	index := NewVectorIndex(s.embedder)
	index.delay = s.delay
	index.Load(ctx, db.Projects)

	s.mu.Lock()
	s.event = event
	s.projects = db.Projects
	s.index = index
	s.mu.Unlock()

	log.Printf("KNOWLEDGE: loaded event %q with %d projects", event.Name, len(db.Projects))
	return nil
}

func (s *knowledgeServiceImpl) Event() models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.event
}

func (s *knowledgeServiceImpl) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]models.Project, len(s.projects))
	copy(projects, s.projects)
	return projects
}

func (s *knowledgeServiceImpl) Search(ctx context.Context, query string, topK int) []models.Project {
	s.mu.RLock()
	index := s.index
	s.mu.RUnlock()
	return index.Search(ctx, query, topK)
}

// Watch re-embeds the knowledge base whenever the file changes on disk.
// Blocks until the context is cancelled.
func (s *knowledgeServiceImpl) Watch(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("WATCHER ERROR: failed to create file watcher: %v", err)
		return
	}
	defer watcher.Close()

	// Watch the directory; editors replace files by rename, which drops a
	// watch placed on the file itself.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		log.Printf("WATCHER ERROR: failed to watch %s: %v", dir, err)
		return
	}
	log.Printf("WATCHER: watching %s for knowledge base changes", dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				log.Printf("WATCHER: knowledge base changed, rebuilding index...")
				if err := s.Reload(ctx); err != nil {
					log.Printf("WATCHER ERROR: reload failed: %v", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("WATCHER ERROR: %v", err)
		case <-ctx.Done():
			log.Println("WATCHER: context cancelled, shutting down watcher.")
			return
		}
	}
}
