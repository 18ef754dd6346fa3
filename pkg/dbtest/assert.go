package dbtest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

var ErrNoBucket = xerrors.New("no such bucket")

// JSONEq asserts that the value stored under the bucket path keys[:len-1]
// and the key keys[len-1] is the JSON encoding of want.
func JSONEq(t *testing.T, dbPath string, keys []string, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	wantBytes, err := json.Marshal(want)
	require.NoError(t, err, msgAndArgs...)

	got, err := lookup(dbPath, keys)
	require.NoError(t, err, msgAndArgs...)
	require.NotNil(t, got, append([]interface{}{"missing key %v", keys}, msgAndArgs...)...)

	assert.JSONEq(t, string(wantBytes), string(got), msgAndArgs...)
}

// NoKey asserts that nothing is stored at keys. A missing bucket on the path
// counts as absent.
func NoKey(t *testing.T, dbPath string, keys []string, msgAndArgs ...interface{}) {
	t.Helper()

	got, err := lookup(dbPath, keys)
	if xerrors.Is(err, ErrNoBucket) {
		return
	}
	require.NoError(t, err, msgAndArgs...)
	assert.Nil(t, got, msgAndArgs...)
}

func lookup(dbPath string, keys []string) ([]byte, error) {
	if len(keys) < 2 {
		return nil, xerrors.Errorf("need at least a bucket and a key: %v", keys)
	}
	bdb, err := bolt.Open(dbPath, 0600, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, xerrors.Errorf("open %s: %w", dbPath, err)
	}
	defer bdb.Close()

	var value []byte
	err = bdb.View(func(tx *bolt.Tx) error {
		path, key := keys[:len(keys)-1], keys[len(keys)-1]

		bkt := tx.Bucket([]byte(path[0]))
		for _, name := range path[1:] {
			if bkt == nil {
				break
			}
			bkt = bkt.Bucket([]byte(name))
		}
		if bkt == nil {
			return xerrors.Errorf("%v: %w", path, ErrNoBucket)
		}
		if v := bkt.Get([]byte(key)); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	return value, err
}
