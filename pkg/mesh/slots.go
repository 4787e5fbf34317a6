package mesh

import "github.com/Faultbox/objview/pkg/objfile"

// SlotTable maps each distinct face corner to its output vertex slot.
// Slots are numbered by first occurrence.
type SlotTable struct {
	Slots map[objfile.Corner]uint32
	// Order[i] is the corner that owns slot i.
	Order []objfile.Corner
}

// Len returns the number of distinct corners, i.e. the output vertex count.
func (t SlotTable) Len() int {
	return len(t.Order)
}

// Slot returns the slot assigned to c.
func (t SlotTable) Slot(c objfile.Corner) (uint32, bool) {
	s, ok := t.Slots[c]
	return s, ok
}

// AssignSlots folds over every corner of every face in order and assigns
// the next free slot the first time a corner is seen. The result depends
// only on the order of corners in faces.
func AssignSlots(faces []objfile.Face) SlotTable {
	acc := SlotTable{Slots: make(map[objfile.Corner]uint32)}
	for _, f := range faces {
		for _, c := range f.Corners {
			acc = acc.with(c)
		}
	}
	return acc
}

func (t SlotTable) with(c objfile.Corner) SlotTable {
	if _, seen := t.Slots[c]; seen {
		return t
	}
	t.Slots[c] = uint32(len(t.Order))
	t.Order = append(t.Order, c)
	return t
}

// Triangulate fans every polygon around its first corner. Triangles pass
// through unchanged.
func Triangulate(faces []objfile.Face) []objfile.Face {
	out := make([]objfile.Face, 0, len(faces))
	for _, f := range faces {
		if len(f.Corners) == 3 {
			out = append(out, f)
			continue
		}
		for i := 1; i+1 < len(f.Corners); i++ {
			out = append(out, objfile.Face{
				Corners: []objfile.Corner{f.Corners[0], f.Corners[i], f.Corners[i+1]},
				Line:    f.Line,
			})
		}
	}
	return out
}
