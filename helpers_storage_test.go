package ecbprobe_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mxmauro/ecbprobe"
)

// -----------------------------------------------------------------------------

type TestStorage struct {
	kv        map[string][]byte
	commits   int
	rollbacks int
	failGet   error
}

type TestStorageTx struct {
	stg       *TestStorage
	readOnly  bool
	kvChanges map[string][]byte
}

// -----------------------------------------------------------------------------

var errStorageUnavailable = errors.New("storage unavailable")

// -----------------------------------------------------------------------------

func newTestStorage() *TestStorage {
	return &TestStorage{
		kv: make(map[string][]byte),
	}
}

func (stg *TestStorage) BeginTX(_ context.Context, readOnly bool) (ecbprobe.StorageTx, error) {
	tx := TestStorageTx{
		stg:       stg,
		readOnly:  readOnly,
		kvChanges: make(map[string][]byte),
	}
	return &tx, nil
}

func (stg *TestStorage) Dump(t *testing.T) {
	t.Log("Storage dump:")
	for k, v := range stg.kv {
		t.Logf("  key: %s = %x", k, v)
	}
}

func (tx *TestStorageTx) Commit(_ context.Context) error {
	for k, v := range tx.kvChanges {
		if v != nil {
			tx.stg.kv[k] = v
		} else {
			delete(tx.stg.kv, k)
		}
	}
	tx.stg.commits += 1
	return nil
}

func (tx *TestStorageTx) Rollback(_ context.Context) {
	tx.stg.rollbacks += 1
}

func (tx *TestStorageTx) Get(_ context.Context, key string) ([]byte, error) {
	if tx.stg.failGet != nil {
		return nil, tx.stg.failGet
	}
	value, ok := tx.kvChanges[key]
	if !ok {
		value, ok = tx.stg.kv[key]
	}
	if ok && value != nil {
		valueCopy := make([]byte, len(value))
		copy(valueCopy, value)
		return valueCopy, nil
	}
	return nil, nil
}

func (tx *TestStorageTx) Put(_ context.Context, key string, value []byte) error {
	if tx.readOnly {
		return errors.New("read only transaction")
	}
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	tx.kvChanges[key] = valueCopy
	return nil
}

func (tx *TestStorageTx) Delete(_ context.Context, key string) error {
	if tx.readOnly {
		return errors.New("read only transaction")
	}
	tx.kvChanges[key] = nil
	return nil
}
