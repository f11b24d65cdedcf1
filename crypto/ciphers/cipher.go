package ciphers

import (
	"errors"
	"sort"
	"sync"

	"github.com/mxmauro/ecbprobe/crypto/ciphers/aes_ecb"
	"github.com/mxmauro/ecbprobe/models"
)

// -----------------------------------------------------------------------------

const (
	// EngineAesEcb is the name of the built-in AES electronic codebook engine.
	EngineAesEcb = "aes-ecb"
)

// -----------------------------------------------------------------------------

type NewFromKeyFunc func([]byte) (models.Cipher, error)

// -----------------------------------------------------------------------------

var (
	enginesMtx  = sync.RWMutex{}
	enginesList = map[string]NewFromKeyFunc{
		EngineAesEcb: aes_ecb.NewFromKey,
	}
)

var ErrEngineNotSupported = errors.New("engine not supported")

// -----------------------------------------------------------------------------

// SupportedEngines returns a sorted list of supported encryption engines.
func SupportedEngines() []string {
	enginesMtx.RLock()
	defer enginesMtx.RUnlock()

	list := make([]string, 0, len(enginesList))
	for name := range enginesList {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// IsEngineSupported returns true if the given encryption engine is supported.
func IsEngineSupported(engine string) bool {
	enginesMtx.RLock()
	defer enginesMtx.RUnlock()

	_, ok := enginesList[engine]
	return ok
}

// RegisterEngine registers a custom encryption engine so it can be probed against captured vectors.
func RegisterEngine(engine string, newFromKey NewFromKeyFunc) error {
	if len(engine) == 0 {
		return errors.New("engine name cannot be empty")
	}
	if newFromKey == nil {
		return errors.New("newFromKey cannot be nil")
	}

	enginesMtx.Lock()
	defer enginesMtx.Unlock()

	// Check if the engine is already registered
	if _, ok := enginesList[engine]; ok {
		return errors.New("engine already exists")
	}

	// Add the engine to the list.
	enginesList[engine] = newFromKey

	// Done
	return nil
}

// NewFromKey creates a new cipher object from the given key and encryption engine.
func NewFromKey(engine string, key []byte) (models.Cipher, error) {
	enginesMtx.RLock()
	newFromKey, ok := enginesList[engine]
	enginesMtx.RUnlock()

	if !ok {
		return nil, ErrEngineNotSupported
	}
	return newFromKey(key)
}
