package element

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/lingocraft/lingocraft/internal/inference"
	"github.com/lingocraft/lingocraft/internal/tts"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Cache layers reported to a Recorder.
const (
	CacheLayerMemory = "memory"
	CacheLayerStore  = "store"
)

// Recorder observes resolver outcomes.
type Recorder interface {
	CacheHit(layer string)
	CacheMiss()
	LLMFailure()
	MalformedResponse()
	AudioFailure()
}

type noopRecorder struct{}

func (noopRecorder) CacheHit(string)    {}
func (noopRecorder) CacheMiss()         {}
func (noopRecorder) LLMFailure()        {}
func (noopRecorder) MalformedResponse() {}
func (noopRecorder) AudioFailure()      {}

type ResolverOptions struct {
	// DefaultLanguage is used by Resolve and when a caller passes no language.
	DefaultLanguage string
	// CacheMalformedResponses stores MalformedResult for pairs whose answer could not be parsed.
	CacheMalformedResponses bool
	// MemoryCacheTTL enables an in-process cache in front of the repository when positive.
	MemoryCacheTTL time.Duration
}

// Resolver answers combinations from the cache, asking the LLM only on a miss.
// It is safe for concurrent use.
type Resolver struct {
	repository  CacheRepository
	client      inference.Client
	synthesizer tts.Synthesizer
	recorder    Recorder
	options     ResolverOptions

	memory *cache.Cache
	flight singleflight.Group
}

// NewResolver creates a Resolver. synthesizer and recorder may be nil.
func NewResolver(
	repository CacheRepository,
	client inference.Client,
	synthesizer tts.Synthesizer,
	recorder Recorder,
	options ResolverOptions,
) *Resolver {
	if synthesizer == nil {
		synthesizer = tts.Disabled{}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if options.DefaultLanguage == "" {
		options.DefaultLanguage = "en-US"
	}

	resolver := &Resolver{
		repository:  repository,
		client:      client,
		synthesizer: synthesizer,
		recorder:    recorder,
		options:     options,
	}
	if options.MemoryCacheTTL > 0 {
		resolver.memory = cache.New(options.MemoryCacheTTL, 2*options.MemoryCacheTTL)
	}
	return resolver
}

func (r *Resolver) DefaultLanguage() string {
	return r.options.DefaultLanguage
}

// Resolve combines two elements in the default language.
func (r *Resolver) Resolve(ctx context.Context, element1, element2 string) Result {
	return r.ResolveInLanguage(ctx, element1, element2, r.options.DefaultLanguage)
}

// ResolveInLanguage combines two elements, answering in languageCode.
// It never fails: an unreachable LLM yields ErrorResult and an unusable answer MalformedResult.
func (r *Resolver) ResolveInLanguage(ctx context.Context, element1, element2, languageCode string) Result {
	if strings.TrimSpace(languageCode) == "" {
		languageCode = r.options.DefaultLanguage
	}
	key := NewCombinationKey(element1, element2, languageCode)

	result, ok, err := r.lookup(ctx, key)
	if ok {
		return result
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		slog.Default().Info("combination abandoned before discovery",
			"key", key.String(),
			"error", errors.Join(ctx.Err(), err),
		)
		return ErrorResult()
	}

	// Concurrent misses for one key share a single discovery.
	// It is detached from the first caller's cancellation since others wait on it.
	value, _, _ := r.flight.Do(key.String(), func() (any, error) {
		detached := context.WithoutCancel(ctx)
		// A flight that finished after our lookup may already have stored the key.
		if result, ok, _ := r.lookup(detached, key); ok {
			return result, nil
		}
		return r.discover(detached, key), nil
	})
	return value.(Result)
}

// lookup reports a failed Find as a miss along with its error.
func (r *Resolver) lookup(ctx context.Context, key CombinationKey) (Result, bool, error) {
	if r.memory != nil {
		if value, found := r.memory.Get(key.String()); found {
			r.recorder.CacheHit(CacheLayerMemory)
			return value.(Result), true, nil
		}
	}

	entry, err := r.repository.Find(ctx, key)
	if err != nil {
		slog.Default().Warn("cache lookup failed, treating as a miss",
			"key", key.String(),
			"error", err,
		)
		return Result{}, false, err
	}
	if entry == nil {
		return Result{}, false, nil
	}

	result := entry.Result()
	r.remember(key, result)
	r.recorder.CacheHit(CacheLayerStore)
	return result, true, nil
}

func (r *Resolver) discover(ctx context.Context, key CombinationKey) Result {
	r.recorder.CacheMiss()
	logger := slog.Default().With("key", key.String())

	raw, err := r.client.CombineElements(ctx, inference.CombineElementsRequest{
		Element1:     key.Element1,
		Element2:     key.Element2,
		LanguageCode: key.LanguageCode,
	})
	if err != nil {
		r.recorder.LLMFailure()
		logger.Error("combine elements failed", "error", err)
		return ErrorResult()
	}

	parsed, err := ParseCombination(raw)
	if err != nil {
		r.recorder.MalformedResponse()
		logger.Warn("discarding malformed combination response",
			"response", raw,
			"error", err,
		)
		if !r.options.CacheMalformedResponses {
			return MalformedResult()
		}
		return r.store(ctx, key, MalformedResult())
	}

	result := parsed.Result()
	result.AudioB64 = r.synthesize(ctx, key.LanguageCode, result.Element)
	return r.store(ctx, key, result)
}

func (r *Resolver) synthesize(ctx context.Context, languageCode, text string) *string {
	audio, err := r.synthesizer.Synthesize(ctx, languageCode, text)
	if errors.Is(err, tts.ErrDisabled) {
		return nil
	}
	if err != nil {
		r.recorder.AudioFailure()
		slog.Default().Warn("audio synthesis failed, storing without audio",
			"language", languageCode,
			"text", text,
			"error", err,
		)
		return nil
	}
	return &audio
}

// store persists result and returns what the store holds for key,
// which is another writer's result when that writer got there first.
func (r *Resolver) store(ctx context.Context, key CombinationKey, result Result) Result {
	inserted, err := r.repository.Create(ctx, NewCacheEntry(key, result))
	if err != nil {
		slog.Default().Error("failed to cache combination, returning uncached result",
			"key", key.String(),
			"error", err,
		)
		return result
	}
	if inserted {
		r.remember(key, result)
		return result
	}

	entry, err := r.repository.Find(ctx, key)
	if err != nil || entry == nil {
		slog.Default().Warn("failed to re-read cached combination",
			"key", key.String(),
			"error", err,
		)
		return result
	}
	stored := entry.Result()
	r.remember(key, stored)
	return stored
}

func (r *Resolver) remember(key CombinationKey, result Result) {
	if r.memory == nil {
		return
	}
	r.memory.SetDefault(key.String(), result)
}
