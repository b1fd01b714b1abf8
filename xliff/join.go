package xliff

import (
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/text/language"

	"github.com/ortschema/ort/model"
)

// Join parses one XLIFF document per reader and merges its translations
// into a copy of cfg, returning the enriched copy. A label's source text,
// not its trans-unit id, is the matching key against the default-language
// label. When copySource is true, a queue that no input file translates
// for a language gets its own default text as that language's
// translation; without it, the queue is left untranslated. Neither case is
// an error.
//
// Config is otherwise immutable after parsing (model.Config doc comment);
// Join is the one place that produces a new, translation-enriched Config
// rather than mutating the one it was given.
func Join(cfg *model.Config, copySource bool, readers ...io.Reader) (*model.Config, error) {
	out := copyConfig(cfg)
	queues := collectQueues(out)
	langs := make(map[int]bool)

	for _, r := range readers {
		var doc document
		if err := xml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("xliff: decode: %w", err)
		}
		for _, f := range doc.Files {
			if _, err := language.Parse(f.TargetLanguage); err != nil {
				return nil, fmt.Errorf("xliff: invalid target-language %q: %w", f.TargetLanguage, err)
			}
			langIdx := registerLanguage(out, f.TargetLanguage)
			langs[langIdx] = true
			bySource := make(map[string]string, len(f.Body.Units))
			for _, u := range f.Body.Units {
				bySource[u.Source] = u.Target
			}
			for _, q := range queues {
				src, ok := sourceText(q)
				if !ok {
					continue
				}
				trg, found := bySource[src]
				if !found || trg == "" {
					continue
				}
				setTarget(q, langIdx, trg)
			}
		}
	}
	if copySource {
		for langIdx := range langs {
			for _, q := range queues {
				if src, ok := sourceText(q); ok {
					setTarget(q, langIdx, src)
				}
			}
		}
	}
	return out, nil
}

// registerLanguage returns tag's index in cfg.Languages, appending it if
// new.
func registerLanguage(cfg *model.Config, tag string) int {
	for i, t := range cfg.Languages {
		if t == tag {
			return i
		}
	}
	cfg.Languages = append(cfg.Languages, tag)
	return len(cfg.Languages) - 1
}

// copyConfig makes a deep-enough copy for Join to mutate label
// queues without aliasing the caller's Config.
func copyConfig(cfg *model.Config) *model.Config {
	out := &model.Config{
		Languages: append([]string(nil), cfg.Languages...),
		RolesFlat: cfg.RolesFlat,
		RolesTree: cfg.RolesTree,
	}
	out.Structures = append([]model.Structure(nil), cfg.Structures...)

	out.Enums = make([]model.Enum, len(cfg.Enums))
	for i, e := range cfg.Enums {
		ne := e
		ne.LabelsNull = append([]model.Label(nil), e.LabelsNull...)
		ne.Items = make([]model.EnumItem, len(e.Items))
		for j, it := range e.Items {
			nit := it
			nit.Labels = append([]model.Label(nil), it.Labels...)
			ne.Items[j] = nit
		}
		out.Enums[i] = ne
	}

	out.Bitfields = make([]model.Bitfield, len(cfg.Bitfields))
	for i, b := range cfg.Bitfields {
		nb := b
		nb.LabelsUnset = append([]model.Label(nil), b.LabelsUnset...)
		nb.LabelsNull = append([]model.Label(nil), b.LabelsNull...)
		nb.Items = make([]model.BitIndex, len(b.Items))
		for j, it := range b.Items {
			nit := it
			nit.Labels = append([]model.Label(nil), it.Labels...)
			nb.Items[j] = nit
		}
		out.Bitfields[i] = nb
	}

	return out
}
