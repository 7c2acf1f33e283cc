// Package iri implements a concurrency-safe, bounded IRI interner.
//
// Every IRI that flows through an ontology or a tableaux graph is interned
// exactly once; callers compare and hash IRI values by the interned
// pointer, never by string content, so equality is O(1) regardless of
// string length.
package iri

import (
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"
)

// Well-known namespace prefixes, recognized by string prefix per spec.md §3.
const (
	NamespaceOWL  = "http://www.w3.org/2002/07/owl#"
	NamespaceRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceXSD  = "http://www.w3.org/2001/XMLSchema#"
)

// entry is the canonical, shared representation of one interned IRI
// string. Two IRI values are equal iff they point at the same entry.
type entry struct {
	full string
	hash uint64
}

// IRI is a cheap-to-copy handle to an interned string. The zero value is
// not a valid IRI; obtain one through an Interner.
type IRI struct {
	e *entry
}

// String returns the full IRI string.
func (i IRI) String() string {
	if i.e == nil {
		return ""
	}
	return i.e.full
}

// Hash returns the precomputed 64-bit hash of the IRI string.
func (i IRI) Hash() uint64 {
	if i.e == nil {
		return 0
	}
	return i.e.hash
}

// IsZero reports whether i is the zero value (never interned).
func (i IRI) IsZero() bool { return i.e == nil }

// Equal reports whether i and other were interned from the same string.
// This is pointer comparison, not string comparison.
func (i IRI) Equal(other IRI) bool { return i.e == other.e }

// LocalName returns the portion of the IRI after the last '#' or '/'.
func (i IRI) LocalName() string {
	s := i.String()
	if idx := strings.LastIndexAny(s, "#/"); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// Namespace returns the portion of the IRI up to and including the last
// '#' or '/'.
func (i IRI) Namespace() string {
	s := i.String()
	if idx := strings.LastIndexAny(s, "#/"); idx >= 0 {
		return s[:idx+1]
	}
	return ""
}

func (i IRI) IsOWL() bool  { return strings.HasPrefix(i.String(), NamespaceOWL) }
func (i IRI) IsRDF() bool  { return strings.HasPrefix(i.String(), NamespaceRDF) }
func (i IRI) IsRDFS() bool { return strings.HasPrefix(i.String(), NamespaceRDFS) }
func (i IRI) IsXSD() bool  { return strings.HasPrefix(i.String(), NamespaceXSD) }

// CreationError is returned when an IRI cannot be interned.
type CreationError struct {
	Reason string
}

func (e *CreationError) Error() string { return "iri: creation failed: " + e.Reason }

// CacheError indicates an internal failure of the interner's storage, as
// distinct from a rejected input string.
type CacheError struct {
	Operation string
	Message   string
}

func (e *CacheError) Error() string {
	return "iri: cache error during " + e.Operation + ": " + e.Message
}

// Stats reports interner activity. Hits, Misses, and Evictions are
// maintained with atomic counters so they can be read without acquiring
// the interner's lock.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

// DefaultCapacity is the bound applied when New is called with capacity <= 0.
const DefaultCapacity = 10000

// Interner is a bounded, concurrency-safe string-to-IRI cache. Readers may
// look up concurrently; inserts and evictions are serialized behind a
// single writer lock. When the number of entries would exceed capacity,
// the least-recently-inserted entry is evicted first.
type Interner struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	order    []string // insertion order, oldest first
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates an Interner bounded at capacity entries. capacity <= 0
// selects DefaultCapacity.
func New(capacity int) *Interner {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Interner{
		entries:  make(map[string]*entry, capacity),
		capacity: capacity,
	}
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Intern returns the canonical IRI for s, creating and registering an
// entry on first sight. Empty strings are rejected.
func (in *Interner) Intern(s string) (IRI, error) {
	if s == "" {
		return IRI{}, &CreationError{Reason: "empty IRI string"}
	}

	in.mu.RLock()
	if e, ok := in.entries[s]; ok {
		in.mu.RUnlock()
		in.hits.Add(1)
		return IRI{e: e}, nil
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()

	// Re-check under the write lock: another writer may have interned s
	// while we waited.
	if e, ok := in.entries[s]; ok {
		in.hits.Add(1)
		return IRI{e: e}, nil
	}

	in.misses.Add(1)
	e := &entry{full: s, hash: hashString(s)}
	in.entries[s] = e
	in.order = append(in.order, s)

	for len(in.order) > in.capacity {
		oldest := in.order[0]
		in.order = in.order[1:]
		delete(in.entries, oldest)
		in.evictions.Add(1)
	}

	return IRI{e: e}, nil
}

// Lookup returns the canonical IRI for s without creating one.
func (in *Interner) Lookup(s string) (IRI, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	e, ok := in.entries[s]
	if !ok {
		in.misses.Add(1)
		return IRI{}, false
	}
	in.hits.Add(1)
	return IRI{e: e}, true
}

// Clear empties the interner. Existing IRI handles remain valid (their
// entry is still reachable) but are no longer canonical: a later Intern
// of the same string allocates a new entry.
func (in *Interner) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.entries = make(map[string]*entry, in.capacity)
	in.order = nil
}

// Stats returns a snapshot of interner activity.
func (in *Interner) Stats() Stats {
	in.mu.RLock()
	size := len(in.entries)
	in.mu.RUnlock()
	return Stats{
		Hits:      in.hits.Load(),
		Misses:    in.misses.Load(),
		Evictions: in.evictions.Load(),
		Size:      size,
	}
}
