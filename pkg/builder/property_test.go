package builder

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/eln2rdf/pkg/record"
)

// TestTemplatingProperties verifies the identifier-templating invariants the
// rest of the pipeline depends on: resolution is a pure function, and
// distinct record identifiers mint distinct subjects.
func TestTemplatingProperties(t *testing.T) {
	km := testKeymap(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("resolution is pure", prop.ForAll(
		func(elabid string) bool {
			first, err1 := ResolveSubject(km, "ex:node_{elabid}", elabid)
			second, err2 := ResolveSubject(km, "ex:node_{elabid}", elabid)
			return err1 == nil && err2 == nil && first == second
		},
		gen.Identifier(),
	))

	properties.Property("distinct elabids mint distinct subjects", prop.ForAll(
		func(a, b string) bool {
			if a == b {
				return true
			}
			first, err1 := ResolveSubject(km, "ex:node_{elabid}", a)
			second, err2 := ResolveSubject(km, "ex:node_{elabid}", b)
			return err1 == nil && err2 == nil && first != second
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.Property("sanitization leaves only IRI-safe bytes", prop.ForAll(
		func(s string) bool {
			for _, c := range []byte(SanitizeComponent(s)) {
				switch {
				case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
				case c == '_' || c == '.' || c == '-' || c == '~' || c == '%':
				default:
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestBuildDeterminismProperty rebuilds generated batches and requires
// triple-for-triple identical output.
func TestBuildDeterminismProperty(t *testing.T) {
	b := tensileBuilder(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("rebuilding a batch yields an identical triple set", prop.ForAll(
		func(elabids []string) bool {
			batch := make([]record.Raw, 0, len(elabids))
			for _, id := range elabids {
				batch = append(batch, sampleLengthDoc(id))
			}

			g1, _, err1 := b.Build(batch)
			g2, _, err2 := b.Build(batch)
			if err1 != nil || err2 != nil {
				return false
			}
			return reflect.DeepEqual(g1.Triples(), g2.Triples())
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
