package veil

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// xxh3Redactor writes the xxh3-64 digest of the text as 16 hex characters.
type xxh3Redactor struct {
	seed uint64
}

// XXH3 returns a redactor that replaces the text with its xxh3-64 digest,
// written as 16 lowercase hex characters. The digest is fast,
// non-cryptographic, and deterministic across engines and processes, so
// equal values correlate across records without exposing the source text.
// Collision freedom is not guaranteed.
func XXH3() Redactor {
	return &xxh3Redactor{}
}

// XXH3WithSeed returns an XXH3 redactor keyed with a seed. Engines built
// with the same seed produce identical digests; different seeds decorrelate
// deployments that must not be joinable.
func XXH3WithSeed(seed uint64) Redactor {
	return &xxh3Redactor{seed: seed}
}

func (r *xxh3Redactor) Redact(_ DataClass, text string, w io.Writer) error {
	sum := xxh3.HashStringSeed(text, r.seed)

	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], sum)
	var dst [16]byte
	hex.Encode(dst[:], raw[:])

	_, err := w.Write(dst[:])
	return err
}

func (r *xxh3Redactor) ExactLen() (int, bool) {
	return 16, true
}

// blake2bRedactor writes a keyed BLAKE2b digest of the text as hex.
type blake2bRedactor struct {
	size int
	key  []byte
}

// BLAKE2b returns a redactor that replaces the text with its BLAKE2b digest,
// written as 2*size lowercase hex characters. size is the digest length in
// bytes, 1 to 64. key may be nil for unkeyed use; a key up to 64 bytes
// makes digests unforgeable without it, for correlation that must not be
// reversible by dictionary attack. Deterministic for a fixed size and key.
func BLAKE2b(size int, key []byte) (Redactor, error) {
	if size < 1 || size > blake2b.Size {
		return nil, fmt.Errorf("%w: size must be 1 to %d bytes, got %d", ErrInvalidKey, blake2b.Size, size)
	}
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("%w: key must be at most %d bytes, got %d", ErrInvalidKey, blake2b.Size, len(key))
	}

	r := &blake2bRedactor{size: size}
	if len(key) > 0 {
		r.key = make([]byte, len(key))
		copy(r.key, key)
	}
	return r, nil
}

func (r *blake2bRedactor) Redact(_ DataClass, text string, w io.Writer) error {
	h, err := blake2b.New(r.size, r.key)
	if err != nil {
		return err
	}
	_, _ = h.Write([]byte(text))
	sum := h.Sum(nil)

	dst := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(dst, sum)

	_, err = w.Write(dst)
	return err
}

func (r *blake2bRedactor) ExactLen() (int, bool) {
	return 2 * r.size, true
}
