package ecbprobe

import (
	"bytes"
	"io"

	"github.com/mxmauro/ecbprobe/crypto/ciphers"
	"github.com/mxmauro/ecbprobe/util"
	"github.com/sirupsen/logrus"
)

// -----------------------------------------------------------------------------

// Probe encrypts known inputs with a cipher engine and compares the result against a
// ciphertext captured from another implementation.
type Probe struct {
	engine string
	log    *logrus.Entry
}

// Options configure the Probe parameters.
type Options struct {
	// Encryption engine to probe. Defaults to "aes-ecb".
	Engine string

	// An optional logger. If nil, log output is discarded.
	Logger *logrus.Entry
}

// Comparison holds every artifact of a single probe run.
type Comparison struct {
	Engine    string
	Key       []byte
	Plaintext []byte

	// Computed is the local encryption of Plaintext under Key.
	Computed []byte

	// Reference is the ciphertext produced by the other implementation.
	Reference []byte

	// DecryptedReference is Reference decrypted under Key. It is nil when DecryptErr is set.
	DecryptedReference []byte
	DecryptErr         error

	// Match is true when Computed and Reference are identical.
	Match bool

	// Recovered is true when Reference decrypts back to Plaintext.
	Recovered bool
}

// -----------------------------------------------------------------------------

// New creates a new probe.
func New(opts Options) (*Probe, error) {
	engine := opts.Engine
	if len(engine) == 0 {
		engine = ciphers.EngineAesEcb
	}
	if !ciphers.IsEngineSupported(engine) {
		return nil, ErrEngineNotSupported
	}

	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}

	// Done
	return &Probe{
		engine: engine,
		log:    log.WithField("engine", engine),
	}, nil
}

// Engine returns the name of the engine being probed.
func (p *Probe) Engine() string {
	return p.engine
}

// Compare encrypts plaintext with key, then attempts to decrypt reference with the same key.
//
// Key and plaintext errors are returned. A reference that cannot be decrypted is not an error,
// the failure is stored in Comparison.DecryptErr instead.
func (p *Probe) Compare(key, plaintext, reference []byte) (*Comparison, error) {
	return p.compare(p.engine, p.log, key, plaintext, reference)
}

// CompareVector runs Compare over a captured vector. The vector engine, if set, overrides the
// probe engine.
func (p *Probe) CompareVector(v *Vector) (*Comparison, error) {
	engine := p.engine
	if len(v.Engine) > 0 {
		engine = v.Engine
	}
	log := p.log.WithFields(logrus.Fields{
		"engine": engine,
		"vector": v.Name,
	})
	return p.compare(engine, log, v.Key, v.Plaintext, v.Reference)
}

func (p *Probe) compare(engine string, log *logrus.Entry, key, plaintext, reference []byte) (*Comparison, error) {
	c, err := ciphers.NewFromKey(engine, key)
	if err != nil {
		return nil, util.NewExtendedError(err, "unable to create cipher")
	}

	computed, err := c.Encrypt(plaintext)
	if err != nil {
		return nil, util.NewExtendedError(err, "unable to encrypt plaintext")
	}

	cmp := Comparison{
		Engine:    engine,
		Key:       util.CloneBytes(key),
		Plaintext: util.CloneBytes(plaintext),
		Computed:  computed,
		Reference: util.CloneBytes(reference),
		Match:     bytes.Equal(computed, reference),
	}

	cmp.DecryptedReference, cmp.DecryptErr = c.Decrypt(reference)
	if cmp.DecryptErr != nil {
		cmp.DecryptedReference = nil
		log.WithError(cmp.DecryptErr).Warn("unable to decrypt reference ciphertext")
	} else {
		cmp.Recovered = bytes.Equal(cmp.DecryptedReference, plaintext)
	}

	log.WithFields(logrus.Fields{
		"match":     cmp.Match,
		"recovered": cmp.Recovered,
	}).Debug("comparison finished")

	// Done
	return &cmp, nil
}

// -----------------------------------------------------------------------------

// Compare runs a comparison with the default AES-ECB engine.
func Compare(key, plaintext, reference []byte) (*Comparison, error) {
	p, err := New(Options{})
	if err != nil {
		return nil, err
	}
	return p.Compare(key, plaintext, reference)
}

// Zeroize wipes every buffer held by the comparison.
func (c *Comparison) Zeroize() {
	util.SafeZeroMem(c.Key)
	util.SafeZeroMem(c.Plaintext)
	util.SafeZeroMem(c.Computed)
	util.SafeZeroMem(c.Reference)
	util.SafeZeroMem(c.DecryptedReference)
	c.Match = false
	c.Recovered = false
}
