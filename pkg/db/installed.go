package db

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

const installedBucket = "installed"

func (dbc Config) PutInstalledVersion(tx *bolt.Tx, pkgName, version string) error {
	if err := putJSON(tx, []string{installedBucket}, pkgName, version); err != nil {
		return xerrors.Errorf("failed to put installed version of %s: %w", pkgName, err)
	}
	return nil
}

// GetInstalledVersions returns the installed version of every known package.
func (dbc Config) GetInstalledVersions() (map[string]string, error) {
	versions := map[string]string{}
	err := db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(installedBucket))
		if root == nil {
			return nil
		}
		return root.ForEach(func(k, v []byte) error {
			var version string
			if err := json.Unmarshal(v, &version); err != nil {
				return xerrors.Errorf("failed to unmarshal installed version of %s: %w", k, err)
			}
			versions[string(k)] = version
			return nil
		})
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to get installed versions: %w", err)
	}
	return versions, nil
}
