// Package document implements the repositories on flat JSON documents, one
// file per collection. Callers load a collection fully, mutate their copy and
// rewrite the whole file; there is no locking and the last write wins, which
// is acceptable for the single-operator deployment this targets.
package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"

	"github.com/pkg/errors"

	"github.com/rubiescode/shule/core"
)

type DB struct {
	dir string
}

func Open(conf *core.Config) (*DB, error) {
	if err := os.MkdirAll(conf.DataDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating data dir %s", conf.DataDir)
	}
	return &DB{dir: conf.DataDir}, nil
}

func (db *DB) path(collection string) string {
	return filepath.Join(db.dir, collection+".json")
}

// load reads a whole collection into dst (a pointer). A missing or
// unparsable file reads as an empty collection, never an error.
func (db *DB) load(collection string, dst interface{}) error {
	data, err := os.ReadFile(db.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "reading collection %s", collection)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// corrupt document: discard whatever half-decoded state is in dst
		v := reflect.ValueOf(dst).Elem()
		v.Set(reflect.Zero(v.Type()))
	}
	return nil
}

// save replaces the whole collection file with src.
func (db *DB) save(collection string, src interface{}) error {
	data, err := json.MarshalIndent(src, "", "    ")
	if err != nil {
		return errors.Wrapf(err, "encoding collection %s", collection)
	}
	if err := os.WriteFile(db.path(collection), data, 0644); err != nil {
		return errors.Wrapf(err, "writing collection %s", collection)
	}
	return nil
}

// reset clears the collection to an empty document.
func (db *DB) reset(collection string) error {
	if err := os.WriteFile(db.path(collection), []byte("{}"), 0644); err != nil {
		return errors.Wrapf(err, "resetting collection %s", collection)
	}
	return nil
}
