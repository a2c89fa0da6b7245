package models

// IDSet is a set of member ids stored as a JSON array column.
// Order is irrelevant; insertion order is preserved for stable output.
type IDSet []string

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle returns the symmetric difference of the set with {id}:
// present ids are removed, absent ids are appended. The second return
// value reports whether id was added.
func (s IDSet) Toggle(id string) (IDSet, bool) {
	if s.Has(id) {
		out := make(IDSet, 0, len(s)-1)
		for _, v := range s {
			if v != id {
				out = append(out, v)
			}
		}
		return out, false
	}
	out := make(IDSet, 0, len(s)+1)
	out = append(out, s...)
	return append(out, id), true
}
