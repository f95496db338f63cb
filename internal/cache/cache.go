package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cartomix/aurora/internal/model"
)

// Cache is a content-addressed store of AudioFeatures, keyed by the source
// file's SHA-256 hash plus the sample rate and frame rate it was extracted
// at — a different sample rate or frame rate is a cache miss, never a
// stale hit.
type Cache struct {
	db *DB
}

// Open opens (or creates) the feature cache database under cacheDir.
func Open(cacheDir string) (*Cache, error) {
	db, err := OpenDB(cacheDir, nil)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error { return c.db.Close() }

// HashFile returns the hex SHA-256 digest of the file at path, used as the
// cache key's content_hash.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get looks up previously cached AudioFeatures for the given content hash,
// sample rate, and frame rate. The bool return is false on a cache miss;
// a query error is only returned for a genuinely broken database.
func (c *Cache) Get(contentHash string, sampleRate, frameRate int) (*model.AudioFeatures, bool, error) {
	var data []byte
	row := c.db.QueryRow(`
		SELECT data FROM feature_cache
		WHERE content_hash = ? AND sample_rate = ? AND frame_rate = ?
	`, contentHash, sampleRate, frameRate)

	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query feature cache: %w", err)
	}

	var feats model.AudioFeatures
	if err := json.Unmarshal(data, &feats); err != nil {
		return nil, false, fmt.Errorf("decode cached features: %w", err)
	}
	return &feats, true, nil
}

// Put stores feats under the given key, overwriting any existing entry.
func (c *Cache) Put(contentHash string, sampleRate, frameRate int, feats *model.AudioFeatures) error {
	data, err := json.Marshal(feats)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO feature_cache (content_hash, sample_rate, frame_rate, data, size)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (content_hash, sample_rate, frame_rate)
		DO UPDATE SET data = excluded.data, size = excluded.size
	`, contentHash, sampleRate, frameRate, data, len(data))
	if err != nil {
		return fmt.Errorf("write feature cache: %w", err)
	}
	return nil
}
