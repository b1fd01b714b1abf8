package xliff

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ortschema/ort/model"
)

// Extract writes one <xliff> document containing a <file> block per
// non-default language in cfg.Languages, each populated with every
// translatable label's default-language text as <source> and its existing
// translation (if any) as <target>. Target languages are sorted with
// golang.org/x/text/collate for a deterministic, locale-aware file order
// instead of raw Config.Languages declaration order.
func Extract(w io.Writer, cfg *model.Config) error {
	if len(cfg.Languages) < 2 {
		return nil
	}

	type langIdx struct {
		idx int
		tag string
	}
	var targets []langIdx
	for i := 1; i < len(cfg.Languages); i++ {
		tag := cfg.Languages[i]
		if _, err := language.Parse(tag); err != nil {
			return fmt.Errorf("xliff: invalid language tag %q: %w", tag, err)
		}
		targets = append(targets, langIdx{idx: i, tag: tag})
	}

	col := collate.New(language.Und)
	sort.Slice(targets, func(a, b int) bool {
		return col.CompareString(targets[a].tag, targets[b].tag) < 0
	})

	queues := collectQueues(cfg)

	doc := document{Version: "1.2", Xmlns: "urn:oasis:names:tc:xliff:document:1.2"}
	for _, t := range targets {
		f := file{TargetLanguage: t.tag}
		for _, q := range queues {
			src, ok := sourceText(q)
			if !ok {
				continue
			}
			tu := transUnit{ID: q.id, Source: src}
			if trg, ok := targetText(q, t.idx); ok {
				tu.Target = trg
			}
			f.Body.Units = append(f.Body.Units, tu)
		}
		doc.Files = append(doc.Files, f)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
