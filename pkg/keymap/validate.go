package keymap

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// validate checks the keymap once at load time. Shape requirements (missing
// top-level keys, node templates without a subject_template) are expressed as
// struct tags; cross-reference requirements (prefixes declared, edge
// node-keys existing) cannot be, and are checked by hand. No defaults are
// invented for missing namespaces or predicates.
func (km *Keymap) validate() error {
	if err := structValidator.Struct(km); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			ve := verrs[0]
			return configErr(ve.Namespace(), "", fmt.Errorf("%w (%s)", ErrMissingKey, ve.Tag()))
		}
		return configErr("document", "", err)
	}

	if _, ok := km.Namespaces[km.UnitNamespace]; !ok {
		return configErr("unit_namespace", km.UnitNamespace, ErrUnknownPrefix)
	}
	if _, err := km.ExpandQName(km.UnitPredicate); err != nil {
		return fmt.Errorf("unit_predicate: %w", err)
	}
	if _, err := km.ExpandQName(km.ValuePredicate); err != nil {
		return fmt.Errorf("value_predicate: %w", err)
	}

	for key, node := range km.Nodes {
		for _, typ := range node.Types {
			if _, err := km.ExpandQName(typ); err != nil {
				return configErr("nodes", key, fmt.Errorf("type %q: %w", typ, err))
			}
		}
	}

	// An edge endpoint with no node template would silently never fire, so
	// surface it here rather than during graph building.
	for predicate, sourceTargets := range km.Edges {
		if _, err := km.ExpandQName(predicate); err != nil {
			return configErr("edges", predicate, err)
		}
		for source, targets := range sourceTargets {
			if _, ok := km.Nodes[source]; !ok {
				return configErr("edges", predicate, fmt.Errorf("source %q: %w", source, ErrUnknownNodeKey))
			}
			for _, target := range targets {
				if _, ok := km.Nodes[target]; !ok {
					return configErr("edges", predicate, fmt.Errorf("target %q: %w", target, ErrUnknownNodeKey))
				}
			}
		}
	}
	return nil
}
