package ecbprobe

import (
	"context"
	"errors"
	"sort"

	bstd "github.com/deneonet/benc/std"
	"github.com/mxmauro/ecbprobe/util"
)

// -----------------------------------------------------------------------------

const (
	vectorIndexVersion = 1

	pathVectorPrefix = "ecbprobe:vector:"
	pathVectorIndex  = "ecbprobe:vector-index"
)

// -----------------------------------------------------------------------------

// BeginStorageTransactionFunc defines a function that creates a transaction in the underlying storage.
type BeginStorageTransactionFunc func(ctx context.Context, readOnly bool) (StorageTx, error)

// StorageTx is an interface that represent a storage transaction.
type StorageTx interface {
	// Get retrieves the value of the given key. Returns nil and no error if the key is not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put saves the given value under the provided key. The implementation MUST make a copy of the
	// value parameter if it needs to keep it until the commit call.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the given key from the database. Don't return an error if the key is not found.
	Delete(ctx context.Context, key string) error

	// Commit saves all changes into the storage.
	Commit(ctx context.Context) error

	// Rollback discards pending changes.
	Rollback(ctx context.Context)
}

// VectorStore keeps captured vectors in a transactional key/value storage so they can be
// replayed against later builds.
type VectorStore struct {
	beginStgTx BeginStorageTransactionFunc
}

type withinTxCallback func(ctx context.Context, tx StorageTx) error

// -----------------------------------------------------------------------------

// NewVectorStore creates a vector store on top of the given storage.
func NewVectorStore(beginStgTx BeginStorageTransactionFunc) (*VectorStore, error) {
	if beginStgTx == nil {
		return nil, errors.New("invalid storage transaction initiator")
	}
	return &VectorStore{
		beginStgTx: beginStgTx,
	}, nil
}

// Put saves the vector, replacing any vector with the same name.
func (vs *VectorStore) Put(ctx context.Context, v *Vector) error {
	if v == nil || len(v.Name) == 0 {
		return errors.New("vector name cannot be empty")
	}

	return vs.withinTx(ctx, false, func(ctx context.Context, tx StorageTx) error {
		names, err := readVectorIndex(ctx, tx)
		if err != nil {
			return err
		}

		encoded := v.Serialize()
		defer util.SafeZeroMem(encoded)

		err = tx.Put(ctx, pathVectorPrefix+v.Name, encoded)
		if err != nil {
			return err
		}

		idx := sort.SearchStrings(names, v.Name)
		if idx < len(names) && names[idx] == v.Name {
			return nil
		}
		names = append(names, "")
		copy(names[idx+1:], names[idx:])
		names[idx] = v.Name
		return writeVectorIndex(ctx, tx, names)
	})
}

// Get loads the vector with the given name. Returns ErrNotFound if it does not exist.
func (vs *VectorStore) Get(ctx context.Context, name string) (*Vector, error) {
	var v *Vector

	err := vs.withinTx(ctx, true, func(ctx context.Context, tx StorageTx) error {
		encoded, err := tx.Get(ctx, pathVectorPrefix+name)
		if err != nil {
			return err
		}
		if encoded == nil {
			return ErrNotFound
		}

		v, err = DeserializeVector(encoded)
		if err != nil {
			return err
		}
		if v.Name != name {
			return ErrInvalidStoredData
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Done
	return v, nil
}

// Delete removes the vector with the given name. Deleting a missing vector is not an error.
func (vs *VectorStore) Delete(ctx context.Context, name string) error {
	return vs.withinTx(ctx, false, func(ctx context.Context, tx StorageTx) error {
		names, err := readVectorIndex(ctx, tx)
		if err != nil {
			return err
		}

		err = tx.Delete(ctx, pathVectorPrefix+name)
		if err != nil {
			return err
		}

		idx := sort.SearchStrings(names, name)
		if idx >= len(names) || names[idx] != name {
			return nil
		}
		names = append(names[:idx], names[idx+1:]...)
		return writeVectorIndex(ctx, tx, names)
	})
}

// List returns the sorted names of all stored vectors.
func (vs *VectorStore) List(ctx context.Context) ([]string, error) {
	var names []string

	err := vs.withinTx(ctx, true, func(ctx context.Context, tx StorageTx) (err error) {
		names, err = readVectorIndex(ctx, tx)
		return
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (vs *VectorStore) withinTx(ctx context.Context, readOnly bool, cb withinTxCallback) error {
	tx, err := vs.beginStgTx(ctx, readOnly)
	if err == nil {
		err = cb(ctx, tx)
		if err == nil {
			err = tx.Commit(ctx)
		}
		if err != nil {
			tx.Rollback(ctx)
		}
	}
	return err
}

// -----------------------------------------------------------------------------

func readVectorIndex(ctx context.Context, tx StorageTx) ([]string, error) {
	var count uint32

	buf, err := tx.Get(ctx, pathVectorIndex)
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return []string{}, nil
	}
	if len(buf) <= bstd.SizeUint16() {
		return nil, ErrInvalidStoredData
	}

	ofs, version, err := bstd.UnmarshalUint16(0, buf)
	if err != nil {
		return nil, ErrInvalidStoredData
	}
	if version != vectorIndexVersion {
		return nil, errors.New("unsupported vector index version")
	}
	ofs, count, err = bstd.UnmarshalUint32(ofs, buf)
	if err != nil {
		return nil, ErrInvalidStoredData
	}

	names := make([]string, 0, count)
	for idx := uint32(0); idx < count; idx++ {
		var name string

		ofs, name, err = bstd.UnmarshalString(ofs, buf)
		if err != nil {
			return nil, ErrInvalidStoredData
		}
		names = append(names, name)
	}

	// Check if we reached the end of the buffer.
	if ofs != len(buf) {
		return nil, ErrInvalidStoredData
	}
	if !sort.StringsAreSorted(names) {
		return nil, ErrInvalidStoredData
	}

	// Done
	return names, nil
}

func writeVectorIndex(ctx context.Context, tx StorageTx, names []string) error {
	if len(names) == 0 {
		return tx.Delete(ctx, pathVectorIndex)
	}

	bufSize := bstd.SizeUint16() + bstd.SizeUint32()
	for _, name := range names {
		bufSize += bstd.SizeString(name)
	}
	buf := make([]byte, bufSize)

	ofs := bstd.MarshalUint16(0, buf, vectorIndexVersion)
	ofs = bstd.MarshalUint32(ofs, buf, uint32(len(names)))
	for _, name := range names {
		ofs = bstd.MarshalString(ofs, buf, name)
	}

	return tx.Put(ctx, pathVectorIndex, buf)
}
