package record

import (
	"fmt"
	"strconv"
)

// DefaultInstitute is used when the normalizer is not configured with one
const DefaultInstitute = "Sample Institute"

// Normalizer extracts normalized records from raw elabFTW export documents.
// The zero value is usable and applies DefaultInstitute.
type Normalizer struct {
	// Institute is stamped onto every record as the "Institute" field so
	// keymaps can map provenance nodes from it.
	Institute string
}

// Normalize converts one raw export document into a Record. The document
// must carry an elabid; extra fields come from metadata.extra_fields, and
// conventional top-level metadata (group, last name, institute, data
// completeness) is merged in as plain scalar fields so node templates can
// reference them like any other field.
func (n *Normalizer) Normalize(source string, doc map[string]any) (*Record, error) {
	if doc == nil {
		return nil, &NormalizationError{Source: source, Cause: ErrNotObject}
	}

	elabid, _ := doc["elabid"].(string)
	if elabid == "" {
		return nil, &NormalizationError{Source: source, Cause: ErrMissingID}
	}

	rec := &Record{
		Source: source,
		ElabID: elabid,
		Fields: make(map[string]FieldValue),
	}

	for name, raw := range extraFields(doc) {
		rec.Fields[name] = normalizeValue(raw)
	}

	institute := n.Institute
	if institute == "" {
		institute = DefaultInstitute
	}
	group := groupName(doc, elabid)
	lastName, _ := doc["lastname"].(string)

	rec.Fields["elabid"] = Scalar(elabid)
	rec.Fields["group"] = Scalar(group)
	rec.Fields["Institute"] = Scalar(institute)
	rec.Fields["LastName"] = Scalar(lastName)
	rec.Fields["data_completeness"] = Scalar(completeness(elabid, group, lastName))
	return rec, nil
}

// extraFields digs out metadata.extra_fields, tolerating its absence
func extraFields(doc map[string]any) map[string]any {
	metadata, _ := doc["metadata"].(map[string]any)
	if metadata == nil {
		return nil
	}
	fields, _ := metadata["extra_fields"].(map[string]any)
	return fields
}

// normalizeValue applies the structural detection rule: a mapping with a
// value-like key is a measurement when it also carries a unit token,
// otherwise a plain literal. A "type: number" hint coerces numeric parsing;
// unparseable numbers fall back to string literals.
func normalizeValue(raw any) FieldValue {
	obj, ok := raw.(map[string]any)
	if !ok {
		return scalarFromAny(raw)
	}

	unit, _ := obj["unit"].(string)
	value, hasValue := obj["value"]
	if !hasValue {
		return FieldValue{Kind: ValueNone, Unit: unit}
	}

	fv := scalarFromAny(value)
	if hint, _ := obj["type"].(string); hint == "number" && fv.Kind == ValueString {
		if f, err := strconv.ParseFloat(fv.Text, 64); err == nil {
			fv = NumberScalar(f)
		}
	}
	fv.Unit = unit
	return fv
}

func scalarFromAny(v any) FieldValue {
	switch t := v.(type) {
	case string:
		return Scalar(t)
	case float64:
		return NumberScalar(t)
	case int:
		return NumberScalar(float64(t))
	case int64:
		return NumberScalar(float64(t))
	case bool:
		return Scalar(strconv.FormatBool(t))
	case nil:
		return FieldValue{Kind: ValueNone}
	default:
		return Scalar(fmt.Sprintf("%v", t))
	}
}

// groupName finds the first linked item with category "Group" and suffixes
// its title with the leading characters of the elabid, mirroring the export
// convention for distinguishing group instances per experiment.
func groupName(doc map[string]any, elabid string) string {
	links, _ := doc["items_links"].([]any)
	for _, l := range links {
		item, ok := l.(map[string]any)
		if !ok {
			continue
		}
		if category, _ := item["category"].(string); category != "Group" {
			continue
		}
		title, _ := item["title"].(string)
		if title == "" {
			continue
		}
		suffix := elabid
		if len(suffix) > 4 {
			suffix = suffix[:4]
		}
		return title + "-" + suffix
	}
	return ""
}

func completeness(values ...string) string {
	for _, v := range values {
		if v == "" {
			return "incomplete"
		}
	}
	return "complete"
}
