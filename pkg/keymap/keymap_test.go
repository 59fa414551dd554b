package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validKeymap = `
namespaces:
  ex: "https://example.org/"
  tto: "https://w3id.org/pmd/tto/"
  pmdco: "https://w3id.org/pmd/co/"
  qudt: "http://qudt.org/vocab/unit/"
unit_namespace: qudt
unit_predicate: pmdco:unit
value_predicate: pmdco:value
nodes:
  sample_length:
    json_field: Sample Length
    subject_template: "ex:originalGaugeLength_{elabid}"
    types: [tto:OriginalGaugeLength, pmdco:PrimaryData]
  tensile_test_process:
    json_field: elabid
    subject_template: "ex:tensileTestProcess_{elabid}"
    types: [tto:TensileTestProcess]
  tensile_test_piece:
    json_field: elabid
    subject_template: "ex:tensileTestPiece_{elabid}"
    types: [tto:TensileTestPiece]
edges:
  pmdco:input:
    tensile_test_process: [tensile_test_piece]
`

func TestParseValidKeymap(t *testing.T) {
	km, err := Parse([]byte(validKeymap))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(km.Namespaces) != 4 {
		t.Errorf("Namespaces has %d entries, want 4", len(km.Namespaces))
	}
	if km.UnitNamespace != "qudt" {
		t.Errorf("UnitNamespace = %q", km.UnitNamespace)
	}

	node, ok := km.Nodes["sample_length"]
	if !ok {
		t.Fatal("sample_length node missing")
	}
	if node.JSONField != "Sample Length" {
		t.Errorf("JSONField = %q", node.JSONField)
	}
	if len(node.Types) != 2 || node.Types[0] != "tto:OriginalGaugeLength" {
		t.Errorf("Types = %v, want declared order preserved", node.Types)
	}

	targets := km.Edges["pmdco:input"]["tensile_test_process"]
	if len(targets) != 1 || targets[0] != "tensile_test_piece" {
		t.Errorf("edge targets = %v", targets)
	}
}

func TestParseMissingTopLevelKeys(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no namespaces", `
nodes:
  n:
    json_field: f
    subject_template: "ex:n_{elabid}"
edges: {}
unit_namespace: qudt
unit_predicate: p:u
value_predicate: p:v
`},
		{"no nodes", `
namespaces: {ex: "https://example.org/"}
edges: {}
unit_namespace: ex
unit_predicate: ex:u
value_predicate: ex:v
`},
		{"no edges", `
namespaces: {ex: "https://example.org/"}
nodes:
  n:
    json_field: f
    subject_template: "ex:n_{elabid}"
unit_namespace: ex
unit_predicate: ex:u
value_predicate: ex:v
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected a config error")
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Errorf("error is %T, want *ConfigError", err)
			}
		})
	}
}

func TestParseNodeMissingSubjectTemplate(t *testing.T) {
	bad := `
namespaces: {ex: "https://example.org/"}
unit_namespace: ex
unit_predicate: ex:unit
value_predicate: ex:value
nodes:
  broken:
    json_field: Some Field
edges: {}
`
	_, err := Parse([]byte(bad))
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("err = %v, want ErrMissingKey", err)
	}
}

func TestParseEdgeUnknownNodeKey(t *testing.T) {
	tests := []struct {
		name  string
		edges string
	}{
		{"unknown source", "edges:\n  ex:pred:\n    ghost: [real]"},
		{"unknown target", "edges:\n  ex:pred:\n    real: [ghost]"},
	}

	base := `
namespaces: {ex: "https://example.org/"}
unit_namespace: ex
unit_predicate: ex:unit
value_predicate: ex:value
nodes:
  real:
    json_field: f
    subject_template: "ex:real_{elabid}"
`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(base + tt.edges))
			if !errors.Is(err, ErrUnknownNodeKey) {
				t.Errorf("err = %v, want ErrUnknownNodeKey", err)
			}
		})
	}
}

func TestParseUndeclaredPrefix(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unit namespace", `
namespaces: {ex: "https://example.org/"}
unit_namespace: qudt
unit_predicate: ex:unit
value_predicate: ex:value
nodes:
  n: {json_field: f, subject_template: "ex:n_{elabid}"}
edges: {}
`},
		{"value predicate", `
namespaces: {ex: "https://example.org/"}
unit_namespace: ex
unit_predicate: ex:unit
value_predicate: pmdco:value
nodes:
  n: {json_field: f, subject_template: "ex:n_{elabid}"}
edges: {}
`},
		{"node type", `
namespaces: {ex: "https://example.org/"}
unit_namespace: ex
unit_predicate: ex:unit
value_predicate: ex:value
nodes:
  n: {json_field: f, subject_template: "ex:n_{elabid}", types: [tto:Thing]}
edges: {}
`},
		{"edge predicate", `
namespaces: {ex: "https://example.org/"}
unit_namespace: ex
unit_predicate: ex:unit
value_predicate: ex:value
nodes:
  n: {json_field: f, subject_template: "ex:n_{elabid}"}
edges:
  pmdco:input:
    n: [n]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrUnknownPrefix) {
				t.Errorf("err = %v, want ErrUnknownPrefix", err)
			}
		})
	}
}

func TestExpandQName(t *testing.T) {
	km, err := Parse([]byte(validKeymap))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		qname   string
		want    string
		wantErr error
	}{
		{"tto:TensileTestPiece", "https://w3id.org/pmd/tto/TensileTestPiece", nil},
		{"https://already.example/full", "https://already.example/full", nil},
		{"unknown:Thing", "", ErrUnknownPrefix},
		{"noprefix", "", ErrNotQualified},
	}

	for _, tt := range tests {
		got, err := km.ExpandQName(tt.qname)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ExpandQName(%q) err = %v, want %v", tt.qname, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ExpandQName(%q) = (%q, %v), want %q", tt.qname, got, err, tt.want)
		}
	}
}

func TestUnitIRI(t *testing.T) {
	km, err := Parse([]byte(validKeymap))
	if err != nil {
		t.Fatal(err)
	}
	if got := km.UnitIRI("MilliM"); got != "http://qudt.org/vocab/unit/MilliM" {
		t.Errorf("UnitIRI = %q", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.yaml")
	if err := os.WriteFile(path, []byte(validKeymap), 0o644); err != nil {
		t.Fatal(err)
	}

	km, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(km.Nodes) != 3 {
		t.Errorf("Nodes has %d entries, want 3", len(km.Nodes))
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}
