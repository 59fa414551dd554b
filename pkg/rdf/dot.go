package rdf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ExportDOT writes the graph in Graphviz DOT form for quick visual
// inspection. Nodes are labeled with their compacted or local names, edges
// with the predicate's local name.
func (g *Graph) ExportDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "digraph rdf {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(bw, "  rankdir=LR;"); err != nil {
		return err
	}
	for _, t := range g.triples {
		if _, err := fmt.Fprintf(bw, "  %q -> %q [label=%q];\n",
			g.displayName(t.Subject), g.displayName(t.Object), t.Predicate.LocalName()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, "}"); err != nil {
		return err
	}
	return bw.Flush()
}

// ExportDOTFile writes the DOT rendering to the named file
func (g *Graph) ExportDOTFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := g.ExportDOT(f); err != nil {
		return fmt.Errorf("export DOT to %s: %w", path, err)
	}
	return nil
}

func (g *Graph) displayName(t Term) string {
	switch t.Type {
	case TermIRI:
		if qname, ok := g.compact(t.Value); ok {
			return qname
		}
		return t.LocalName()
	case TermBlank:
		return "_:" + t.Value
	default:
		lex := t.Value
		if len(lex) > 32 {
			lex = lex[:29] + "..."
		}
		return strings.ReplaceAll(lex, "\n", " ")
	}
}
