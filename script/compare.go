// Command compare reports the patch entries and installed versions that
// differ between two databases.
package main

import (
	"bytes"
	"flag"
	"log"
	"strings"

	bolt "go.etcd.io/bbolt"
)

const (
	patchBucketPrefix = "patch::"
	installedBucket   = "installed"
)

var (
	oldBboltFile = flag.String("old_file", "cache/db/old.db", "old DB file")
	newBboltFile = flag.String("new_file", "cache/db/vulnboard.db", "new DB file")
)

func main() {
	flag.Parse()
	oldPatches, oldInstalled := readFile(*oldBboltFile)
	newPatches, newInstalled := readFile(*newBboltFile)

	log.Printf("=== got %d patch entries from old DB and %d from new DB ===", len(oldPatches), len(newPatches))
	diff("patch entry", oldPatches, newPatches)

	log.Printf("=== got %d installed versions from old DB and %d from new DB ===", len(oldInstalled), len(newInstalled))
	diff("installed version", oldInstalled, newInstalled)
}

func diff(kind string, oldEntries, newEntries map[string][]byte) {
	for k, oldValue := range oldEntries {
		newValue, ok := newEntries[k]
		if !ok {
			log.Printf("%s %s does not exist in new DB", kind, k)
		} else if !bytes.Equal(oldValue, newValue) {
			log.Printf("%s %s is different: %s => %s", kind, k, oldValue, newValue)
		}
	}
	for k := range newEntries {
		if _, ok := oldEntries[k]; !ok {
			log.Printf("%s %s is new", kind, k)
		}
	}
}

func readFile(file string) (patches, installed map[string][]byte) {
	patches = make(map[string][]byte)
	installed = make(map[string][]byte)
	db, err := bolt.Open(file, 0600, &bolt.Options{ReadOnly: true})
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	err = db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
			switch {
			case string(name) == installedBucket:
				return b.ForEach(func(k, v []byte) error {
					installed[string(k)] = append([]byte{}, v...)
					return nil
				})
			case strings.HasPrefix(string(name), patchBucketPrefix):
				source := strings.TrimPrefix(string(name), patchBucketPrefix)
				return b.ForEach(func(pkgName, _ []byte) error {
					nested := b.Bucket(pkgName)
					if nested == nil {
						return nil
					}
					return nested.ForEach(func(vulnID, v []byte) error {
						patches[source+":"+string(pkgName)+":"+string(vulnID)] = append([]byte{}, v...)
						return nil
					})
				})
			}
			return nil
		})
	})
	if err != nil {
		log.Fatal(err)
	}
	return
}
