package db

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/estimate"
	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/types"
)

const (
	SchemaVersion = 1

	dataKey = "data"
)

var (
	db    *bolt.DB
	dbDir string

	metadataPath = []string{"vulnboard", "metadata"}

	ErrNotFound = xerrors.New("not found")
)

type Operation interface {
	BatchUpdate(func(*bolt.Tx) error) error

	PutPatchInfo(tx *bolt.Tx, source, pkgName, vulnID string, info types.PatchInfo) error
	GetPackageVulnerabilities() (types.PackageVulnerabilities, error)

	PutInstalledVersion(tx *bolt.Tx, pkgName, version string) error
	GetInstalledVersions() (map[string]string, error)

	PutEstimate(tx *bolt.Tx, vulnID string, e estimate.Estimate) error
	GetEstimate(vulnID string) (estimate.Estimate, error)

	SetMetadata(Metadata) error
	GetMetadata() (Metadata, error)
}

// Metadata describes the last import stored in the database.
type Metadata struct {
	Version   int
	Packages  int
	UpdatedAt time.Time
}

// Config is the bbolt backed Operation. The database is opened by Init.
type Config struct{}

func Init(cacheDir string) (err error) {
	dbPath := Path(cacheDir)
	dbDir = filepath.Dir(dbPath)
	if err = os.MkdirAll(dbDir, 0700); err != nil {
		return xerrors.Errorf("failed to mkdir: %w", err)
	}

	log.Debug("Opening database", log.FilePath(dbPath))
	db, err = bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return xerrors.Errorf("failed to open db: %w", err)
	}
	return nil
}

func Path(cacheDir string) string {
	dbDir = filepath.Join(cacheDir, "db")
	dbPath := filepath.Join(dbDir, "vulnboard.db")
	return dbPath
}

func Close() error {
	// Skip closing the database if the connection is not established.
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return xerrors.Errorf("failed to close DB: %w", err)
	}
	return nil
}

func (dbc Config) GetMetadata() (Metadata, error) {
	var metadata Metadata
	ok, err := getJSON(metadataPath, dataKey, &metadata)
	if err != nil {
		return Metadata{}, xerrors.Errorf("failed to get metadata: %w", err)
	} else if !ok {
		return Metadata{}, xerrors.Errorf("metadata: %w", ErrNotFound)
	}
	return metadata, nil
}

func (dbc Config) SetMetadata(metadata Metadata) error {
	err := db.Update(func(tx *bolt.Tx) error {
		return putJSON(tx, metadataPath, dataKey, metadata)
	})
	if err != nil {
		return xerrors.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

func (dbc Config) BatchUpdate(fn func(tx *bolt.Tx) error) error {
	if err := db.Batch(fn); err != nil {
		return xerrors.Errorf("error in batch update: %w", err)
	}
	return nil
}

// putJSON stores value as JSON under key in the bucket reached by path,
// creating the buckets on the way.
func putJSON(tx *bolt.Tx, path []string, key string, value any) error {
	bkt, err := tx.CreateBucketIfNotExists([]byte(path[0]))
	if err != nil {
		return xerrors.Errorf("failed to create bucket %s: %w", path[0], err)
	}
	for _, name := range path[1:] {
		if bkt, err = bkt.CreateBucketIfNotExists([]byte(name)); err != nil {
			return xerrors.Errorf("failed to create bucket %s: %w", name, err)
		}
	}
	b, err := json.Marshal(value)
	if err != nil {
		return xerrors.Errorf("failed to marshal JSON: %w", err)
	}
	return bkt.Put([]byte(key), b)
}

// getJSON decodes the value stored under key in the bucket reached by path.
// It reports false when a bucket or the key is missing.
func getJSON(path []string, key string, v any) (bool, error) {
	var value []byte
	err := db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(path[0]))
		for _, name := range path[1:] {
			if bkt == nil {
				return nil
			}
			bkt = bkt.Bucket([]byte(name))
		}
		if bkt == nil {
			return nil
		}
		// only valid during the transaction
		if b := bkt.Get([]byte(key)); b != nil {
			value = append([]byte{}, b...)
		}
		return nil
	})
	if err != nil {
		return false, xerrors.Errorf("failed to read %v/%s: %w", path, key, err)
	} else if value == nil {
		return false, nil
	}
	if err = json.Unmarshal(value, v); err != nil {
		return false, xerrors.Errorf("failed to unmarshal %v/%s: %w", path, key, err)
	}
	return true, nil
}
