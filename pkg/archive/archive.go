// Package archive walks ELN export archives (zip files, possibly containing
// nested .eln zips) and yields parsed JSON export documents. It is I/O glue
// in front of the mapping core: malformed members are logged and skipped,
// never fatal.
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dd0wney/eln2rdf/pkg/logging"
	"github.com/dd0wney/eln2rdf/pkg/record"
)

// DefaultPattern matches elabFTW JSON export members
const DefaultPattern = "ftw.json"

// Reader extracts export documents from ELN archives
type Reader struct {
	// Pattern is the filename suffix selecting JSON members. Defaults to
	// DefaultPattern when empty.
	Pattern string
	Logger  logging.Logger
}

// Extract opens the archive at path and returns every matching export
// document in archive enumeration order.
func (r *Reader) Extract(path string) ([]record.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat archive %s: %w", path, err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}
	return r.extractZip(zr)
}

func (r *Reader) extractZip(zr *zip.Reader) ([]record.Raw, error) {
	pattern := r.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	var records []record.Raw
	for _, member := range zr.File {
		if strings.Contains(member.Name, "__MACOSX") {
			continue
		}

		switch {
		case strings.HasSuffix(member.Name, pattern):
			doc, err := decodeMember(member)
			if err != nil {
				logger.Warn("skipping archive member",
					logging.Source(member.Name), logging.Error(err))
				continue
			}
			logger.Info("processing file", logging.Source(member.Name))
			records = append(records, record.Raw{Source: member.Name, Doc: doc})

		case strings.HasSuffix(member.Name, ".eln"):
			// Nested export archive: recurse
			nested, err := openNested(member)
			if err != nil {
				logger.Warn("skipping nested archive",
					logging.Source(member.Name), logging.Error(err))
				continue
			}
			logger.Info("processing nested export", logging.Source(member.Name))
			inner, err := r.extractZip(nested)
			if err != nil {
				logger.Warn("skipping nested archive",
					logging.Source(member.Name), logging.Error(err))
				continue
			}
			records = append(records, inner...)
		}
	}
	return records, nil
}

// decodeMember parses one JSON member. elabFTW exports wrap the experiment
// object in a one-element array; unwrap it when present.
func decodeMember(member *zip.File) (map[string]any, error) {
	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("open member: %w", err)
	}
	defer rc.Close()

	var parsed any
	if err := json.NewDecoder(rc).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	switch doc := parsed.(type) {
	case map[string]any:
		return doc, nil
	case []any:
		if len(doc) == 0 {
			return nil, fmt.Errorf("empty export array")
		}
		obj, ok := doc[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("export array holds no object")
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unexpected JSON document shape")
	}
}

func openNested(member *zip.File) (*zip.Reader, error) {
	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("open member: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read member: %w", err)
	}
	return zip.NewReader(bytes.NewReader(data), int64(len(data)))
}
