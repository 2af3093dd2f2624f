package element

//go:generate mockgen -source=repository.go -destination=../mocks/element/mock_repository.go -package=mock_element

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CacheRepository stores combination results.
type CacheRepository interface {
	// Find returns nil without an error when nothing is stored for key.
	Find(ctx context.Context, key CombinationKey) (*CacheEntry, error)
	// Create stores entry unless a row with the same key exists.
	// It reports whether this call inserted the row.
	Create(ctx context.Context, entry *CacheEntry) (bool, error)
	// Insert stores entry without checking for an existing row.
	Insert(ctx context.Context, entry *CacheEntry) error
	DeleteAll(ctx context.Context) (int64, error)
}

// AudioRepository stores pronunciation audio for the starter elements.
type AudioRepository interface {
	FindByLanguage(ctx context.Context, languageCode string) ([]InitialElementAudio, error)
	Insert(ctx context.Context, audio *InitialElementAudio) error
	DeleteAll(ctx context.Context) (int64, error)
}

const cacheColumns = "id, element1, element2, language_code, result_element, result_en_text, result_emoji, result_audio_b64, created_at"

// DBCacheRepository implements CacheRepository using MySQL.
type DBCacheRepository struct {
	db *sqlx.DB
}

func NewDBCacheRepository(db *sqlx.DB) *DBCacheRepository {
	return &DBCacheRepository{db: db}
}

func (r *DBCacheRepository) Find(ctx context.Context, key CombinationKey) (*CacheEntry, error) {
	var entry CacheEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT "+cacheColumns+" FROM element_cache WHERE element1 = ? AND element2 = ? AND language_code = ? ORDER BY id LIMIT 1",
		key.Element1, key.Element2, key.LanguageCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find cached combination %s: %w", key, err)
	}
	return &entry, nil
}

func (r *DBCacheRepository) Create(ctx context.Context, entry *CacheEntry) (bool, error) {
	result, err := r.db.NamedExecContext(ctx,
		"INSERT INTO element_cache (element1, element2, language_code, result_element, result_en_text, result_emoji, result_audio_b64) "+
			"VALUES (:element1, :element2, :language_code, :result_element, :result_en_text, :result_emoji, :result_audio_b64) "+
			"ON DUPLICATE KEY UPDATE id = id",
		entry)
	if err != nil {
		return false, fmt.Errorf("create cached combination %s: %w", entry.Key(), err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected > 0, nil
}

func (r *DBCacheRepository) Insert(ctx context.Context, entry *CacheEntry) error {
	if _, err := r.db.NamedExecContext(ctx,
		"INSERT INTO element_cache (element1, element2, language_code, result_element, result_en_text, result_emoji, result_audio_b64) "+
			"VALUES (:element1, :element2, :language_code, :result_element, :result_en_text, :result_emoji, :result_audio_b64)",
		entry); err != nil {
		return fmt.Errorf("insert cached combination %s: %w", entry.Key(), err)
	}
	return nil
}

func (r *DBCacheRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM element_cache")
	if err != nil {
		return 0, fmt.Errorf("delete cached combinations: %w", err)
	}
	return result.RowsAffected()
}

// DBAudioRepository implements AudioRepository using MySQL.
type DBAudioRepository struct {
	db *sqlx.DB
}

func NewDBAudioRepository(db *sqlx.DB) *DBAudioRepository {
	return &DBAudioRepository{db: db}
}

func (r *DBAudioRepository) FindByLanguage(ctx context.Context, languageCode string) ([]InitialElementAudio, error) {
	var audios []InitialElementAudio
	if err := r.db.SelectContext(ctx, &audios,
		"SELECT id, element_key, language_code, element_name, audio_b64, created_at FROM initial_elements_audio WHERE language_code = ? ORDER BY id",
		languageCode); err != nil {
		return nil, fmt.Errorf("load initial element audio for %s: %w", languageCode, err)
	}
	return audios, nil
}

func (r *DBAudioRepository) Insert(ctx context.Context, audio *InitialElementAudio) error {
	if _, err := r.db.NamedExecContext(ctx,
		"INSERT INTO initial_elements_audio (element_key, language_code, element_name, audio_b64) "+
			"VALUES (:element_key, :language_code, :element_name, :audio_b64)",
		audio); err != nil {
		return fmt.Errorf("insert initial element audio %s/%s: %w", audio.ElementKey, audio.LanguageCode, err)
	}
	return nil
}

func (r *DBAudioRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM initial_elements_audio")
	if err != nil {
		return 0, fmt.Errorf("delete initial element audio: %w", err)
	}
	return result.RowsAffected()
}
