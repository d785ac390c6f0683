package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences  = "preferences"
	keyStats        = "stats"
	keySchema       = "schema_version"
	reportKeyPrefix = "report/"
)

// schemaVersion guards cached reports across releases. Bumping it drops
// every cached report on the next open; preferences and stats survive.
const schemaVersion = "1"

// OutputFormat selects how reports are rendered by default.
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatJSON
)

// Preferences stores sticky command-line settings.
type Preferences struct {
	DefaultFEN   string       `json:"default_fen"`
	Format       OutputFormat `json:"format"`
	DiagramSize  int          `json:"diagram_size"`
	UnicodeBoard bool         `json:"unicode_board"`
	LastUsed     time.Time    `json:"last_used"`
}

// DefaultPreferences returns the settings a fresh install starts with.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Format:       FormatText,
		DiagramSize:  512,
		UnicodeBoard: true,
		LastUsed:     time.Now(),
	}
}

// QueryStats accumulates usage counters across runs.
type QueryStats struct {
	QueriesRun  int            `json:"queries_run"`
	CacheHits   int            `json:"cache_hits"`
	CacheMisses int            `json:"cache_misses"`
	ByCommand   map[string]int `json:"by_command"`
	TotalTime   time.Duration  `json:"total_time"`
	LastQuery   time.Time      `json:"last_query"`
}

// NewQueryStats returns zeroed statistics.
func NewQueryStats() *QueryStats {
	return &QueryStats{
		ByCommand: make(map[string]int),
	}
}

// HitRate returns the cache hit rate as a percentage (0-100).
func (s *QueryStats) HitRate() float64 {
	lookups := s.CacheHits + s.CacheMisses
	if lookups == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(lookups) * 100
}

// Storage wraps BadgerDB for persistent report caching and settings.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the default platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return NewStorageIn(dbDir)
}

// NewStorageIn opens the database in an explicit directory.
func NewStorageIn(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}
	if err := s.ensureSchema(); err != nil {
		s.db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ensureSchema drops stale cached reports when the report layout has
// changed since the database was written.
func (s *Storage) ensureSchema() error {
	var stored string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySchema))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			stored = string(val)
			return nil
		})
	})
	if err != nil {
		return err
	}

	if stored != schemaVersion {
		if stored != "" {
			if err := s.db.DropPrefix([]byte(reportKeyPrefix)); err != nil {
				return err
			}
		}
		return s.db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte(keySchema), []byte(schemaVersion))
		})
	}
	return nil
}

// reportKey builds the cache key for one query kind on one position.
func reportKey(kind, fen string) []byte {
	return []byte(fmt.Sprintf("%s%s/%s", reportKeyPrefix, kind, fen))
}

// SaveReport caches a finished report under its query kind and FEN.
func (s *Storage) SaveReport(kind, fen string, report any) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(reportKey(kind, fen), data)
	})
}

// LoadReport fills report from the cache. The second return is false on
// a miss, with report untouched.
func (s *Storage) LoadReport(kind, fen string, report any) (bool, error) {
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(reportKey(kind, fen))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, report); err != nil {
				return err
			}
			found = true
			return nil
		})
	})

	return found, err
}

// PurgeReports discards every cached report, keeping settings and stats.
func (s *Storage) PurgeReports() error {
	return s.db.DropPrefix([]byte(reportKeyPrefix))
}

// SavePreferences saves the sticky settings.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastUsed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads the sticky settings, returning defaults if none
// were ever saved.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// SaveStats saves the usage counters.
func (s *Storage) SaveStats(stats *QueryStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads the usage counters, returning zeroed stats if none
// were ever saved.
func (s *Storage) LoadStats() (*QueryStats, error) {
	stats := NewQueryStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use zeroes
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordQuery folds one executed query into the stats.
func (s *Storage) RecordQuery(command string, cacheHit bool, elapsed time.Duration) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.QueriesRun++
	stats.TotalTime += elapsed
	stats.LastQuery = time.Now()
	if stats.ByCommand == nil {
		stats.ByCommand = make(map[string]int)
	}
	stats.ByCommand[command]++
	if cacheHit {
		stats.CacheHits++
	} else {
		stats.CacheMisses++
	}

	return s.SaveStats(stats)
}
