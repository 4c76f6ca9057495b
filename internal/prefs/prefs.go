// Package prefs tracks which classifications and versions a user picks
// during a session and derives smart defaults from them. Nothing is
// persisted.
package prefs

import (
	"sync"

	"github.com/sant0-9/promptr/internal/prompt"
)

// Defaults is the most frequent choice seen so far
type Defaults struct {
	Domain   prompt.Domain     `json:"domain"`
	Role     string            `json:"role"`
	TaskType prompt.TaskType   `json:"task_type"`
	Version  prompt.VersionKey `json:"version"`
}

type triple struct {
	domain prompt.Domain
	role   string
	task   prompt.TaskType
}

type counter[K comparable] struct {
	counts map[K]int
	order  []K
}

func newCounter[K comparable]() counter[K] {
	return counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) inc(k K) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

// top returns the most frequent key; ties go to the earliest seen
func (c *counter[K]) top() (K, int) {
	var best K
	n := 0
	for _, k := range c.order {
		if c.counts[k] > n {
			best, n = k, c.counts[k]
		}
	}
	return best, n
}

// Store is safe for concurrent use
type Store struct {
	mu       sync.Mutex
	triples  counter[triple]
	versions counter[prompt.VersionKey]
	total    int
}

func NewStore() *Store {
	return &Store{
		triples:  newCounter[triple](),
		versions: newCounter[prompt.VersionKey](),
	}
}

// Track records one selection. Counts only ever go up.
func (s *Store) Track(domain prompt.Domain, role string, task prompt.TaskType, version prompt.VersionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.triples.inc(triple{domain: domain, role: role, task: task})
	if version != "" {
		s.versions.inc(version)
	}
	s.total++
}

// SmartDefaults returns the most common selection, or false when nothing
// has been tracked.
func (s *Store) SmartDefaults() (Defaults, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, n := s.triples.top()
	if n == 0 {
		return Defaults{}, false
	}
	v, _ := s.versions.top()
	return Defaults{Domain: t.domain, Role: t.role, TaskType: t.task, Version: v}, true
}

// Reset clears every counter
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.triples = newCounter[triple]()
	s.versions = newCounter[prompt.VersionKey]()
	s.total = 0
}

// Snapshot is a copy of the counters for display
type Snapshot struct {
	Total    int                       `json:"total"`
	Domains  map[prompt.Domain]int     `json:"domains"`
	Versions map[prompt.VersionKey]int `json:"versions"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Total:    s.total,
		Domains:  make(map[prompt.Domain]int),
		Versions: make(map[prompt.VersionKey]int, len(s.versions.counts)),
	}
	for t, n := range s.triples.counts {
		snap.Domains[t.domain] += n
	}
	for v, n := range s.versions.counts {
		snap.Versions[v] = n
	}
	return snap
}
