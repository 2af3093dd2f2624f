package element

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryCacheRepository is a CacheRepository held in process memory.
// It enforces the same key uniqueness as the element_cache table.
type MemoryCacheRepository struct {
	mu      sync.RWMutex
	nextID  int64
	entries map[CombinationKey]CacheEntry
	now     func() time.Time
}

func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{
		entries: make(map[CombinationKey]CacheEntry),
		now:     time.Now,
	}
}

func (r *MemoryCacheRepository) Find(_ context.Context, key CombinationKey) (*CacheEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (r *MemoryCacheRepository) Create(_ context.Context, entry *CacheEntry) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.Key()]; ok {
		return false, nil
	}
	r.store(entry)
	return true, nil
}

func (r *MemoryCacheRepository) Insert(_ context.Context, entry *CacheEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.Key()]; ok {
		return fmt.Errorf("insert cached combination %s: duplicate key", entry.Key())
	}
	r.store(entry)
	return nil
}

func (r *MemoryCacheRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.entries))
	r.entries = make(map[CombinationKey]CacheEntry)
	return deleted, nil
}

// Entries returns a snapshot of every stored entry ordered by ID.
func (r *MemoryCacheRepository) Entries() []CacheEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]CacheEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

func (r *MemoryCacheRepository) store(entry *CacheEntry) {
	r.nextID++
	stored := *entry
	stored.ID = r.nextID
	stored.CreatedAt = r.now()
	r.entries[stored.Key()] = stored
}

type audioKey struct {
	elementKey   string
	languageCode string
}

// MemoryAudioRepository is an AudioRepository held in process memory.
type MemoryAudioRepository struct {
	mu     sync.RWMutex
	nextID int64
	audios map[audioKey]InitialElementAudio
}

func NewMemoryAudioRepository() *MemoryAudioRepository {
	return &MemoryAudioRepository{audios: make(map[audioKey]InitialElementAudio)}
}

func (r *MemoryAudioRepository) FindByLanguage(_ context.Context, languageCode string) ([]InitialElementAudio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var audios []InitialElementAudio
	for key, audio := range r.audios {
		if key.languageCode == languageCode {
			audios = append(audios, audio)
		}
	}
	sort.Slice(audios, func(i, j int) bool { return audios[i].ID < audios[j].ID })
	return audios, nil
}

func (r *MemoryAudioRepository) Insert(_ context.Context, audio *InitialElementAudio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := audioKey{elementKey: audio.ElementKey, languageCode: audio.LanguageCode}
	if _, ok := r.audios[key]; ok {
		return fmt.Errorf("insert initial element audio %s/%s: duplicate key", audio.ElementKey, audio.LanguageCode)
	}
	r.nextID++
	stored := *audio
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.audios[key] = stored
	return nil
}

func (r *MemoryAudioRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.audios))
	r.audios = make(map[audioKey]InitialElementAudio)
	return deleted, nil
}
