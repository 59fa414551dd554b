package rdf

import (
	"fmt"
	"strings"
)

// TermType represents the kind of an RDF term
type TermType uint8

const (
	TermIRI TermType = iota
	TermBlank
	TermLiteral
)

// Well-known IRIs used across the package
const (
	RDFType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	XSDString  = "http://www.w3.org/2001/XMLSchema#string"
	XSDFloat   = "http://www.w3.org/2001/XMLSchema#float"
	XSDInteger = "http://www.w3.org/2001/XMLSchema#integer"
	XSDBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
)

// Term is one component of a triple: an IRI, a blank node, or a literal.
// For IRIs Value holds the full IRI, for blank nodes the local label,
// for literals the lexical form (with Datatype set).
type Term struct {
	Type     TermType
	Value    string
	Datatype string
}

// IRI creates an IRI term
func IRI(iri string) Term {
	return Term{Type: TermIRI, Value: iri}
}

// Blank creates a blank node term with the given label
func Blank(label string) Term {
	return Term{Type: TermBlank, Value: label}
}

// StringLiteral creates an xsd:string literal
func StringLiteral(s string) Term {
	return Term{Type: TermLiteral, Value: s, Datatype: XSDString}
}

// FloatLiteral creates an xsd:float literal
func FloatLiteral(f float64) Term {
	return Term{Type: TermLiteral, Value: formatFloat(f), Datatype: XSDFloat}
}

// IntegerLiteral creates an xsd:integer literal
func IntegerLiteral(i int64) Term {
	return Term{Type: TermLiteral, Value: fmt.Sprintf("%d", i), Datatype: XSDInteger}
}

// BoolLiteral creates an xsd:boolean literal
func BoolLiteral(b bool) Term {
	if b {
		return Term{Type: TermLiteral, Value: "true", Datatype: XSDBoolean}
	}
	return Term{Type: TermLiteral, Value: "false", Datatype: XSDBoolean}
}

// IsLiteral reports whether the term is a literal
func (t Term) IsLiteral() bool {
	return t.Type == TermLiteral
}

// LocalName returns the fragment after the last '#' or '/' of an IRI,
// or the term value unchanged for non-IRI terms.
func (t Term) LocalName() string {
	if t.Type != TermIRI {
		return t.Value
	}
	if i := strings.LastIndexAny(t.Value, "#/"); i >= 0 && i+1 < len(t.Value) {
		return t.Value[i+1:]
	}
	return t.Value
}

// String returns an N-Triples-like rendering, useful for logs and errors
func (t Term) String() string {
	switch t.Type {
	case TermIRI:
		return "<" + t.Value + ">"
	case TermBlank:
		return "_:" + t.Value
	default:
		if t.Datatype == "" || t.Datatype == XSDString {
			return fmt.Sprintf("%q", t.Value)
		}
		return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
	}
}

// Triple is one (subject, predicate, object) statement
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String renders the triple in N-Triples-like form
func (tr Triple) String() string {
	return fmt.Sprintf("%s %s %s .", tr.Subject, tr.Predicate, tr.Object)
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	// xsd:float lexical forms need a decimal point or exponent
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && s != "NaN" {
		s += ".0"
	}
	return s
}
