package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var buckets = struct {
	Metadata []byte
	Grabs    []byte
}{
	Metadata: []byte("__metadata__"),
	Grabs:    []byte("grabs"),
}

var metadataKeys = struct {
	Version []byte
}{
	Version: []byte("version"),
}

const currentVersion = 1

type Database interface {
	Store
	Close() error
}

type database struct {
	*bbolt.DB
}

// Open creates or opens a journal database at the given path.
func Open(path string) (Database, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		metadata, err := tx.CreateBucketIfNotExists(buckets.Metadata)
		if err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(buckets.Grabs); err != nil {
			return err
		}

		var version int
		if versionBytes := metadata.Get(metadataKeys.Version); versionBytes != nil {
			if err := json.Unmarshal(versionBytes, &version); err != nil {
				return err
			}
		}
		if version > currentVersion {
			return fmt.Errorf("journal version %d is newer than supported version %d", version, currentVersion)
		}

		versionBytes, err := json.Marshal(currentVersion)
		if err != nil {
			return err
		}
		return metadata.Put(metadataKeys.Version, versionBytes)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &database{db}, nil
}

// Append writes the record, filling in CreatedAt if unset. Keys sort by
// creation time so List returns records in append order.
func (d *database) Append(record *Record) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	key := []byte(record.CreatedAt.UTC().Format(time.RFC3339Nano) + "/" + record.ID)
	return d.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(buckets.Grabs).Put(key, data)
	})
}

func (d *database) List() (records []Record, err error) {
	err = d.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(buckets.Grabs).ForEach(func(_, v []byte) error {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
