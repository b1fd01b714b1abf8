package diff

import "github.com/ortschema/ort/model"

// compareBitfields mirrors compareEnums for bitfields: the same
// item/container pairing, but over BitIndex entries and the additional
// LabelsUnset set a bitfield carries alongside LabelsNull.
func compareBitfields(q *Queue, from, into []model.Bitfield) {
	intoIdx := bitfieldIndex(into)
	seen := make(map[string]bool, len(from))

	for i := range from {
		fb := &from[i]
		seen[foldName(fb.Name)] = true
		j, ok := intoIdx[foldName(fb.Name)]
		if !ok {
			q.add(Entry{Kind: DelBitf, Bitfield: fb})
			continue
		}
		ib := &into[j]
		same := compareBitfieldBody(q, fb, ib)
		if same {
			q.add(Entry{Kind: SameBitf, FromBitfield: fb, IntoBitfield: ib})
		} else {
			q.add(Entry{Kind: ModBitf, FromBitfield: fb, IntoBitfield: ib})
		}
	}
	for i := range into {
		if !seen[foldName(into[i].Name)] {
			q.add(Entry{Kind: AddBitf, Bitfield: &into[i]})
		}
	}
}

func compareBitfieldBody(q *Queue, fb, ib *model.Bitfield) bool {
	same := true
	if !docEqual(fb.Doc, ib.Doc) {
		q.add(Entry{Kind: ModBitfComment, FromBitfield: fb, IntoBitfield: ib})
		same = false
	}
	if !labelsEqual(fb.LabelsNull, ib.LabelsNull) || !labelsEqual(fb.LabelsUnset, ib.LabelsUnset) {
		q.add(Entry{Kind: ModBitfLabels, FromBitfield: fb, IntoBitfield: ib})
		same = false
	}
	if !compareBitIndexes(q, fb.Items, ib.Items) {
		same = false
	}
	return same
}

func compareBitIndexes(q *Queue, from, into []model.BitIndex) bool {
	intoIdx := bitIndexIndex(into)
	seen := make(map[string]bool, len(from))
	allSame := true

	for i := range from {
		fi := &from[i]
		seen[foldName(fi.Name)] = true
		j, ok := intoIdx[foldName(fi.Name)]
		if !ok {
			q.add(Entry{Kind: DelBitidx, BitIndex: fi})
			allSame = false
			continue
		}
		ii := &into[j]
		itemSame := true
		if fi.Pos_ != ii.Pos_ {
			q.add(Entry{Kind: ModBitidxValue, FromBitIndex: fi, IntoBitIndex: ii})
			itemSame = false
		}
		if !labelsEqual(fi.Labels, ii.Labels) {
			q.add(Entry{Kind: ModBitidxLabels, FromBitIndex: fi, IntoBitIndex: ii})
			itemSame = false
		}
		if !docEqual(fi.Doc, ii.Doc) {
			q.add(Entry{Kind: ModBitidxComment, FromBitIndex: fi, IntoBitIndex: ii})
			itemSame = false
		}
		if itemSame {
			q.add(Entry{Kind: SameBitidx, FromBitIndex: fi, IntoBitIndex: ii})
		} else {
			q.add(Entry{Kind: ModBitidx, FromBitIndex: fi, IntoBitIndex: ii})
			allSame = false
		}
	}
	for i := range into {
		if !seen[foldName(into[i].Name)] {
			q.add(Entry{Kind: AddBitidx, BitIndex: &into[i]})
			allSame = false
		}
	}
	return allSame
}
