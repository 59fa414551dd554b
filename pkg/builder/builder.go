// Package builder is the orchestration core: it walks normalized records
// against a keymap and emits typed entity nodes, literal value/unit triples,
// and edges into an rdf.Graph, deterministically.
package builder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dd0wney/eln2rdf/pkg/keymap"
	"github.com/dd0wney/eln2rdf/pkg/logging"
	"github.com/dd0wney/eln2rdf/pkg/rdf"
	"github.com/dd0wney/eln2rdf/pkg/record"
)

// Builder converts batches of raw export records into an RDF graph according
// to a validated keymap. The keymap is read-only after New.
type Builder struct {
	km             *keymap.Keymap
	logger         logging.Logger
	institute      string
	unitPredicate  rdf.Term
	valuePredicate rdf.Term
}

// Option configures a Builder
type Option func(*Builder)

// WithLogger sets the structured logger used for per-record reporting
func WithLogger(l logging.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithInstitute sets the institute name stamped onto normalized records
func WithInstitute(name string) Option {
	return func(b *Builder) { b.institute = name }
}

// New creates a Builder for an already-validated keymap. The unit and value
// predicates are expanded once here so record processing never re-resolves
// them.
func New(km *keymap.Keymap, opts ...Option) (*Builder, error) {
	b := &Builder{
		km:     km,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}

	unitIRI, err := km.ExpandQName(km.UnitPredicate)
	if err != nil {
		return nil, fmt.Errorf("unit_predicate: %w", err)
	}
	valueIRI, err := km.ExpandQName(km.ValuePredicate)
	if err != nil {
		return nil, fmt.Errorf("value_predicate: %w", err)
	}
	b.unitPredicate = rdf.IRI(unitIRI)
	b.valuePredicate = rdf.IRI(valueIRI)
	return b, nil
}

// Build processes records in the supplied order into a fresh graph. A record
// that fails normalization is logged, counted in the report, and skipped; a
// template error is fatal and aborts the batch. Rerunning Build on identical
// inputs yields a triple-for-triple identical graph.
func (b *Builder) Build(records []record.Raw) (*rdf.Graph, *Report, error) {
	g := rdf.NewGraph()
	g.BindAll(b.km.Namespaces)

	report := &Report{}
	norm := &record.Normalizer{Institute: b.institute}

	for _, raw := range records {
		rec, err := norm.Normalize(raw.Source, raw.Doc)
		if err != nil {
			elabid := rawElabID(raw.Doc)
			b.logger.Warn("skipping record",
				logging.Source(raw.Source), logging.RecordID(elabid), logging.Error(err))
			report.skip(raw.Source, elabid, err)
			continue
		}

		added, err := b.buildRecord(g, rec)
		if err != nil {
			return nil, report, err
		}
		report.Records++
		report.Triples += added
		b.logger.Debug("record processed",
			logging.Source(rec.Source), logging.RecordID(rec.ElabID), logging.Triples(added))
	}

	b.logger.Info("graph built",
		logging.Records(report.Records),
		logging.Skipped(report.SkippedCount()),
		logging.Triples(g.Len()))
	return g, report, nil
}

// buildRecord runs the three phases for one record and returns the number of
// distinct triples added.
func (b *Builder) buildRecord(g *rdf.Graph, rec *record.Record) (int, error) {
	added := 0
	add := func(s, p, o rdf.Term) {
		if g.Add(rdf.Triple{Subject: s, Predicate: p, Object: o}) {
			added++
		}
	}

	// Node keys are sorted because map iteration order would otherwise leak
	// into triple insertion order.
	nodeKeys := sortedKeys(b.km.Nodes)

	// Phase 1: node instantiation. A node whose field is absent from the
	// record is skipped entirely, without error.
	subjects := make(map[string]rdf.Term, len(nodeKeys))
	for _, key := range nodeKeys {
		node := b.km.Nodes[key]
		if _, present := rec.Field(node.JSONField); !present {
			continue
		}
		subject, err := ResolveSubject(b.km, node.SubjectTemplate, rec.ElabID)
		if err != nil {
			var terr *TemplateError
			if errors.As(err, &terr) {
				terr.NodeKey = key
			}
			return added, err
		}
		subjects[key] = subject

		for _, typ := range node.Types {
			typIRI, err := b.km.ExpandQName(typ)
			if err != nil {
				return added, fmt.Errorf("node %q type %q: %w", key, typ, err)
			}
			add(subject, rdf.IRI(rdf.RDFType), rdf.IRI(typIRI))
		}
	}

	// Phase 2: value/unit attachment for instantiated nodes
	for _, key := range nodeKeys {
		subject, ok := subjects[key]
		if !ok {
			continue
		}
		fv, _ := rec.Field(b.km.Nodes[key].JSONField)
		switch fv.Kind {
		case record.ValueNumber:
			add(subject, b.valuePredicate, rdf.FloatLiteral(fv.Number))
		case record.ValueString:
			add(subject, b.valuePredicate, rdf.StringLiteral(fv.Text))
		}
		if fv.Unit != "" {
			unitIRI := b.km.UnitIRI(SanitizeComponent(fv.Unit))
			add(subject, b.unitPredicate, rdf.IRI(unitIRI))
		}
	}

	// Phase 3: edge wiring. Edges never force node creation: a pair is
	// emitted only when both endpoints were instantiated in phase 1.
	for _, predicate := range sortedKeys(b.km.Edges) {
		predIRI, err := b.km.ExpandQName(predicate)
		if err != nil {
			return added, fmt.Errorf("edge predicate %q: %w", predicate, err)
		}
		sourceTargets := b.km.Edges[predicate]
		for _, source := range sortedKeys(sourceTargets) {
			sourceSubject, ok := subjects[source]
			if !ok {
				continue
			}
			for _, target := range sourceTargets[source] {
				targetSubject, ok := subjects[target]
				if !ok {
					continue
				}
				add(sourceSubject, rdf.IRI(predIRI), targetSubject)
			}
		}
	}

	return added, nil
}

// rawElabID salvages whatever identifier the raw document carries so skip
// reports stay traceable even when normalization rejected it.
func rawElabID(doc map[string]any) string {
	if doc == nil {
		return ""
	}
	switch id := doc["elabid"].(type) {
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
