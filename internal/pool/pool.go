// Package pool implements deduplicating stores for literal numeric arrays.
// Each distinct value sequence is assigned a dense, zero-based index on
// first insertion; the index is stable for the lifetime of the pool and is
// used verbatim to name the rendered constant array.
package pool

import (
	"errors"
	"math"
)

// ErrNotFound reports a read-only lookup of a constant that was never
// interned.
var ErrNotFound = errors.New("constant not found")

// Scalar is the element type of a pooled constant sequence.
type Scalar interface {
	int | float64
}

// Pool deduplicates value sequences of one scalar type. A content hash
// narrows the equality search; equality itself is always element-wise, so
// hash collisions cannot conflate distinct constants.
type Pool[T Scalar] struct {
	values  [][]T
	buckets map[uint64][]int
	hash    func([]T) uint64
}

// New returns an empty pool.
func New[T Scalar]() *Pool[T] {
	return newWithHash[T](contentHash[T])
}

// newWithHash allows tests to inject a degenerate hash and exercise the
// collision path.
func newWithHash[T Scalar](hash func([]T) uint64) *Pool[T] {
	return &Pool[T]{
		buckets: make(map[uint64][]int),
		hash:    hash,
	}
}

// Intern returns the index of v, inserting it if no equal sequence exists.
func (p *Pool[T]) Intern(v []T) int {
	h := p.hash(v)
	for _, ind := range p.buckets[h] {
		if equal(v, p.values[ind]) {
			return ind
		}
	}
	ind := len(p.values)
	stored := make([]T, len(v))
	copy(stored, v)
	p.values = append(p.values, stored)
	p.buckets[h] = append(p.buckets[h], ind)
	return ind
}

// Lookup returns the index of v without inserting. It fails with
// ErrNotFound when no equal sequence has been interned.
func (p *Pool[T]) Lookup(v []T) (int, error) {
	h := p.hash(v)
	for _, ind := range p.buckets[h] {
		if equal(v, p.values[ind]) {
			return ind, nil
		}
	}
	return -1, ErrNotFound
}

// Len returns the number of distinct constants interned.
func (p *Pool[T]) Len() int { return len(p.values) }

// At returns the sequence stored at index i. The returned slice must not
// be mutated.
func (p *Pool[T]) At(i int) []T { return p.values[i] }

func equal[T Scalar](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// contentHash is FNV-1a over the 64-bit representation of each element.
// Determinism within a session is all that is required; the hash never
// decides equality on its own.
func contentHash[T Scalar](v []T) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for _, x := range v {
		w := bits(x)
		for i := 0; i < 8; i++ {
			h ^= w & 0xff
			h *= prime64
			w >>= 8
		}
	}
	return h
}

func bits[T Scalar](x T) uint64 {
	switch v := any(x).(type) {
	case int:
		return uint64(v)
	case float64:
		return math.Float64bits(v)
	}
	return 0
}
