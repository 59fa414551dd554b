// Package rdf provides the triple store the mapping engine emits into:
// a term model, an insertion-ordered deduplicating graph, prefix binding,
// and Turtle/DOT serialization.
package rdf

import (
	"sort"
)

type tripleKey struct {
	s, p, o Term
}

// Graph accumulates triples with set semantics: identical triples collapse,
// insertion order of first occurrence is preserved so serialization is
// deterministic across runs.
type Graph struct {
	prefixes map[string]string
	triples  []Triple
	seen     map[tripleKey]struct{}
}

// NewGraph creates an empty graph with no bound prefixes
func NewGraph() *Graph {
	return &Graph{
		prefixes: make(map[string]string),
		seen:     make(map[tripleKey]struct{}),
	}
}

// Bind registers a prefix for a namespace URI. Rebinding the same pair is a
// no-op; rebinding a prefix to a different URI overwrites it.
func (g *Graph) Bind(prefix, uri string) {
	g.prefixes[prefix] = uri
}

// BindAll registers every prefix in the map. Idempotent for identical maps.
func (g *Graph) BindAll(namespaces map[string]string) {
	for prefix, uri := range namespaces {
		g.Bind(prefix, uri)
	}
}

// Namespaces returns the bound prefix table as a copy
func (g *Graph) Namespaces() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for p, u := range g.prefixes {
		out[p] = u
	}
	return out
}

// Add inserts a triple, returning false if it was already present
func (g *Graph) Add(t Triple) bool {
	k := tripleKey{t.Subject, t.Predicate, t.Object}
	if _, dup := g.seen[k]; dup {
		return false
	}
	g.seen[k] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Has reports whether the graph contains the triple
func (g *Graph) Has(t Triple) bool {
	_, ok := g.seen[tripleKey{t.Subject, t.Predicate, t.Object}]
	return ok
}

// Len returns the number of distinct triples
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns the triples in insertion order as a copy
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Subjects returns the distinct subject terms in first-seen order
func (g *Graph) Subjects() []Term {
	seen := make(map[Term]struct{})
	var out []Term
	for _, t := range g.triples {
		if _, ok := seen[t.Subject]; ok {
			continue
		}
		seen[t.Subject] = struct{}{}
		out = append(out, t.Subject)
	}
	return out
}

// sortedPrefixes returns bound prefixes in lexical order for stable output
func (g *Graph) sortedPrefixes() []string {
	prefixes := make([]string, 0, len(g.prefixes))
	for p := range g.prefixes {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

// compact shortens an IRI to prefix:local form using the longest matching
// bound namespace, or returns ok=false when no namespace matches.
func (g *Graph) compact(iri string) (string, bool) {
	bestPrefix, bestLen := "", 0
	for _, prefix := range g.sortedPrefixes() {
		uri := g.prefixes[prefix]
		if len(uri) > bestLen && len(iri) > len(uri) && iri[:len(uri)] == uri {
			bestPrefix, bestLen = prefix, len(uri)
		}
	}
	if bestLen == 0 {
		return "", false
	}
	local := iri[bestLen:]
	if !validLocalPart(local) {
		return "", false
	}
	return bestPrefix + ":" + local, true
}

// validLocalPart is a conservative check that a local name survives as a
// Turtle prefixed-name suffix without escaping
func validLocalPart(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	// trailing dot terminates a Turtle statement
	return s[len(s)-1] != '.'
}
