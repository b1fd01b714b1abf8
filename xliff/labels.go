// Package xliff implements the translation-bundle workflow: extracting a
// model's default-language labels into an XLIFF 1.2 file per target
// language, joining translated XLIFF files back into a model, and
// regenerating an XLIFF file that reflects a model's current label set
// while keeping existing translations.
//
// Label queue index 0 is always the source/default language.
package xliff

import "github.com/ortschema/ort/model"

// queue is one translatable label list inside a Config: an enum item's
// Labels, a bit index's Labels, an enum's LabelsNull, or a bitfield's
// LabelsUnset/LabelsNull.
type queue struct {
	id     string // stable trans-unit id, unique within a Config
	labels *[]model.Label
	pos    model.Position
}

// collectQueues walks every translatable label list in cfg, in the same
// declaration order audit/reach/diff already use (enums then bitfields).
func collectQueues(cfg *model.Config) []queue {
	var out []queue
	for ei := range cfg.Enums {
		e := &cfg.Enums[ei]
		out = append(out, queue{id: "enum." + e.Name + ".null", labels: &e.LabelsNull, pos: e.Pos})
		for ii := range e.Items {
			it := &e.Items[ii]
			out = append(out, queue{id: "enum." + e.Name + "." + it.Name, labels: &it.Labels, pos: it.Pos})
		}
	}
	for bi := range cfg.Bitfields {
		b := &cfg.Bitfields[bi]
		out = append(out, queue{id: "bitfield." + b.Name + ".unset", labels: &b.LabelsUnset, pos: b.Pos})
		out = append(out, queue{id: "bitfield." + b.Name + ".null", labels: &b.LabelsNull, pos: b.Pos})
		for ii := range b.Items {
			it := &b.Items[ii]
			out = append(out, queue{id: "bitfield." + b.Name + "." + it.Name, labels: &it.Labels, pos: it.Pos})
		}
	}
	return out
}

// sourceText returns the default-language (index 0) label text, if any.
func sourceText(q queue) (string, bool) {
	for _, l := range *q.labels {
		if l.Lang == 0 {
			return l.Text, true
		}
	}
	return "", false
}

// targetText returns the label text for the given language index, if any.
func targetText(q queue, lang int) (string, bool) {
	for _, l := range *q.labels {
		if l.Lang == lang {
			return l.Text, true
		}
	}
	return "", false
}

// setTarget appends the translation for lang, refusing to clobber an
// existing one.
func setTarget(q queue, lang int, text string) (added bool) {
	for _, l := range *q.labels {
		if l.Lang == lang {
			return false
		}
	}
	*q.labels = append(*q.labels, model.Label{Lang: lang, Text: text})
	return true
}
