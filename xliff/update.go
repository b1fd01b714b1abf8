package xliff

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/ortschema/ort/model"
)

// Update regenerates an XLIFF file for a single target language: it reads
// the existing file's trans-units, keeps every translation whose source
// text still matches a label in cfg, and appends a new (untranslated)
// trans-unit for every default-language label the file doesn't carry yet,
// logging "new translation" for each one. copySource fills the target
// element with the source text for any still-untranslated unit.
func Update(w io.Writer, r io.Reader, cfg *model.Config, copySource bool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	var in document
	if err := xml.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("xliff: decode: %w", err)
	}
	if len(in.Files) != 1 {
		return fmt.Errorf("xliff: update expects exactly one <file>, got %d", len(in.Files))
	}
	existing := in.Files[0]

	bySource := make(map[string]string, len(existing.Body.Units))
	for _, u := range existing.Body.Units {
		bySource[u.Source] = u.Target
	}

	queues := collectQueues(cfg)
	units := make([]transUnit, 0, len(queues))
	seen := make(map[string]bool, len(queues))
	for _, q := range queues {
		src, ok := sourceText(q)
		if !ok || seen[src] {
			continue
		}
		seen[src] = true
		target, had := bySource[src]
		if !had {
			logger.Info("new translation", "id", q.id, "file", q.pos.File, "line", q.pos.Line)
		}
		units = append(units, transUnit{ID: q.id, Source: src, Target: target})
	}

	sort.Slice(units, func(a, b int) bool { return units[a].Source < units[b].Source })

	for i := range units {
		if units[i].Target == "" && copySource {
			units[i].Target = units[i].Source
		}
	}

	out := document{
		Version: "1.2",
		Xmlns:   "urn:oasis:names:tc:xliff:document:1.2",
		Files:   []file{{TargetLanguage: existing.TargetLanguage, Body: body{Units: units}}},
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
