package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/eln2rdf/pkg/keymap"
	"github.com/dd0wney/eln2rdf/pkg/rdf"
)

// Placeholder is the record-scoped token every subject template must contain
// so each node is uniquely identifiable per record.
const Placeholder = "{elabid}"

// ErrNoPlaceholder reports a subject template without the {elabid} token
var ErrNoPlaceholder = errors.New("subject template lacks the {elabid} placeholder")

// TemplateError reports an unresolvable subject template. It is fatal at
// first occurrence and names the offending node-key.
type TemplateError struct {
	NodeKey  string
	Template string
	Cause    error
}

// Error implements the error interface
func (e *TemplateError) Error() string {
	if e.NodeKey != "" {
		return fmt.Sprintf("node %q template %q: %v", e.NodeKey, e.Template, e.Cause)
	}
	return fmt.Sprintf("template %q: %v", e.Template, e.Cause)
}

// Unwrap returns the underlying cause for error chain support
func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's cause
func (e *TemplateError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ResolveSubject substitutes the {elabid} placeholder into a subject template
// and expands its prefix against the keymap's namespace table. Pure: the same
// (template, elabid) pair always yields the identical IRI.
func ResolveSubject(km *keymap.Keymap, template, elabid string) (rdf.Term, error) {
	if !strings.Contains(template, Placeholder) {
		return rdf.Term{}, &TemplateError{Template: template, Cause: ErrNoPlaceholder}
	}
	qname := strings.ReplaceAll(template, Placeholder, SanitizeComponent(elabid))
	iri, err := km.ExpandQName(qname)
	if err != nil {
		return rdf.Term{}, &TemplateError{Template: template, Cause: err}
	}
	return rdf.IRI(iri), nil
}

// SanitizeComponent makes a raw token safe as an IRI component: spaces become
// underscores and bytes outside the unreserved set are percent-escaped.
func SanitizeComponent(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '_' || c == '.' || c == '-' || c == '~':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
