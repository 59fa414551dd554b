package rdf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Serialize writes the graph as Turtle: a sorted @prefix block, then one
// statement per triple in insertion order, IRIs compacted to prefixed names
// where a bound namespace matches.
func (g *Graph) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, prefix := range g.sortedPrefixes() {
		if _, err := fmt.Fprintf(bw, "@prefix %s: <%s> .\n", prefix, g.prefixes[prefix]); err != nil {
			return err
		}
	}
	if len(g.prefixes) > 0 && len(g.triples) > 0 {
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}

	for _, t := range g.triples {
		if _, err := fmt.Fprintf(bw, "%s %s %s .\n",
			g.renderTerm(t.Subject), g.renderPredicate(t.Predicate), g.renderTerm(t.Object)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SerializeFile writes the Turtle rendering to the named file
func (g *Graph) SerializeFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := g.Serialize(f); err != nil {
		return fmt.Errorf("serialize to %s: %w", path, err)
	}
	return nil
}

func (g *Graph) renderTerm(t Term) string {
	switch t.Type {
	case TermIRI:
		if qname, ok := g.compact(t.Value); ok {
			return qname
		}
		return "<" + t.Value + ">"
	case TermBlank:
		return "_:" + t.Value
	default:
		return g.renderLiteral(t)
	}
}

// renderPredicate is renderTerm plus the rdf:type → "a" shorthand
func (g *Graph) renderPredicate(t Term) string {
	if t.Type == TermIRI && t.Value == RDFType {
		return "a"
	}
	return g.renderTerm(t)
}

func (g *Graph) renderLiteral(t Term) string {
	lex := escapeLiteral(t.Value)
	// xsd:string is the default literal datatype in RDF 1.1
	if t.Datatype == "" || t.Datatype == XSDString {
		return `"` + lex + `"`
	}
	if qname, ok := g.compact(t.Datatype); ok {
		return `"` + lex + `"^^` + qname
	}
	return `"` + lex + `"^^<` + t.Datatype + `>`
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}
