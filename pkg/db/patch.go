package db

import (
	"encoding/json"
	"strings"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/types"
)

const patchBucketPrefix = "patch::"

// PatchBucket returns the root bucket holding the patch information reported
// by the given source.
func PatchBucket(source string) string {
	return patchBucketPrefix + source
}

func (dbc Config) PutPatchInfo(tx *bolt.Tx, source, pkgName, vulnID string, info types.PatchInfo) error {
	if err := putJSON(tx, []string{PatchBucket(source), pkgName}, vulnID, info); err != nil {
		return xerrors.Errorf("failed to put patch info: %w", err)
	}
	return nil
}

// GetPackageVulnerabilities rebuilds the normalized patch finder mapping from
// every patch bucket.
func (dbc Config) GetPackageVulnerabilities() (types.PackageVulnerabilities, error) {
	data := types.PackageVulnerabilities{}
	err := db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, root *bolt.Bucket) error {
			source, ok := strings.CutPrefix(string(name), patchBucketPrefix)
			if !ok {
				return nil
			}
			return root.ForEach(func(pkgName, v []byte) error {
				// packages are nested buckets
				if v != nil {
					return nil
				}
				return dbc.collectPatchInfo(data, source, string(pkgName), root.Bucket(pkgName))
			})
		})
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to get package vulnerabilities: %w", err)
	}
	return data, nil
}

func (dbc Config) collectPatchInfo(data types.PackageVulnerabilities, source, pkgName string, bkt *bolt.Bucket) error {
	return bkt.ForEach(func(vulnID, v []byte) error {
		var info types.PatchInfo
		if err := json.Unmarshal(v, &info); err != nil {
			log.Warn("Skipping broken patch info", log.String("source", source),
				log.String("package", pkgName), log.String("vulnerability", string(vulnID)), log.Err(err))
			return nil
		}
		vulns, ok := data[pkgName]
		if !ok {
			vulns = map[string]map[string]types.PatchInfo{}
			data[pkgName] = vulns
		}
		bySource, ok := vulns[string(vulnID)]
		if !ok {
			bySource = map[string]types.PatchInfo{}
			vulns[string(vulnID)] = bySource
		}
		bySource[source] = info
		return nil
	})
}
