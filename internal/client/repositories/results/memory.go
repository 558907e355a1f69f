// Package results keeps the document list last shown to the user so that
// follow-up commands (show, download) can refer to documents by id.
package results

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/patrickmn/go-cache"
)

type Repository interface {
	// Replace drops the previous result set and stores docs.
	Replace(docs []models.DocumentRecord)
	Get(id string) (models.DocumentRecord, bool)
	// List returns the current result set in the order it was stored.
	List() []models.DocumentRecord
	Clear()
}

// MemoryRepository holds one result set. The full set is kept in order;
// the cache indexes it by document id for show and download. Records
// without an id are listed but cannot be looked up, and for a repeated id
// the lookup returns the last record. Entries never expire and no janitor
// goroutine is started; the set lives until the next search or logout.
type MemoryRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
	docs  []models.DocumentRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *MemoryRepository) Replace(docs []models.DocumentRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Flush()
	r.docs = slices.Clone(docs)
	for _, d := range r.docs {
		if id := d.DocumentID.String(); id != "" {
			r.cache.Set(id, d, cache.NoExpiration)
		}
	}
}

func (r *MemoryRepository) Get(id string) (models.DocumentRecord, bool) {
	if id == "" {
		return models.DocumentRecord{}, false
	}
	if x, found := r.cache.Get(id); found {
		return x.(models.DocumentRecord), true
	}
	return models.DocumentRecord{}, false
}

func (r *MemoryRepository) List() []models.DocumentRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := make([]models.DocumentRecord, len(r.docs))
	copy(docs, r.docs)
	return docs
}

func (r *MemoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Flush()
	r.docs = nil
}
