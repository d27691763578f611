package render

import "slices"

// Slot transforms the rendered content of an element.
type Slot func(content string) string

// Slots maps element indices to the slot rendering them. Index 0 selects the
// slot applied to the whole output; a missing or nil slot 0 leaves it as is.
type Slots map[uint64]Slot

// Wrap returns a Slot that surrounds content with open and close.
func Wrap(open, close string) Slot {
	return func(content string) string { return open + content + close }
}

// Tag returns a Slot that encloses content in an XML-style element.
func Tag(name string) Slot {
	return Wrap("<"+name+">", "</"+name+">")
}

// Identity returns content unchanged.
func Identity(content string) string { return content }

// Indices returns the indices with a non-nil slot, in increasing order.
func (s Slots) Indices() []uint64 {
	idx := make([]uint64, 0, len(s))

	for i, slot := range s {
		if slot != nil {
			idx = append(idx, i)
		}
	}

	slices.Sort(idx)

	return idx
}

func (s Slots) get(index uint64) (Slot, bool) {
	slot := s[index]
	if slot == nil {
		if index == 0 {
			return Identity, true
		}

		return nil, false
	}

	return slot, true
}
