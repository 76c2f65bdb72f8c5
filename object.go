package serz

import (
	"iter"
	"slices"
)

// Pos identifies an entry of an Object. Positions stay valid until the next
// Emplace or Erase.
type Pos int

// End is the position returned when a key is not present.
const End Pos = -1

// Object is a string-keyed map that iterates in first-insertion order. It
// backs the object variant of Value.
//
// Two structures are kept in sync: a hash index from key to slot and the
// ordered entry slice. Lookups and inserts are O(1) on average; Erase is O(n)
// because later slots shift down, which is fine for the small objects a DOM
// usually holds.
type Object struct {
	index   map[string]int
	entries []entry
}

type entry struct {
	key string
	val Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

func (o *Object) Len() int    { return len(o.entries) }
func (o *Object) Empty() bool { return len(o.entries) == 0 }

// Find returns the position of key, or End.
func (o *Object) Find(key string) Pos {
	if i, ok := o.index[key]; ok {
		return Pos(i)
	}
	return End
}

// Get returns the live value stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return &o.entries[i].val, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Emplace inserts a deep copy of v under key. When key already exists nothing
// changes: the existing position is returned with inserted=false. Callers that
// want replace semantics must Erase first.
func (o *Object) Emplace(key string, v Value) (pos Pos, inserted bool) {
	if i, ok := o.index[key]; ok {
		return Pos(i), false
	}
	return o.emplaceOwned(key, v.Clone())
}

// emplaceOwned is Emplace without the copy; v must not be referenced
// elsewhere.
func (o *Object) emplaceOwned(key string, v Value) (Pos, bool) {
	if i, ok := o.index[key]; ok {
		return Pos(i), false
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.entries = append(o.entries, entry{key: key, val: v})
	i := len(o.entries) - 1
	o.index[key] = i
	return Pos(i), true
}

// Erase removes the entry at pos. Out-of-range positions, End included, are
// ignored.
func (o *Object) Erase(pos Pos) {
	i := int(pos)
	if i < 0 || i >= len(o.entries) {
		return
	}
	delete(o.index, o.entries[i].key)
	o.entries = slices.Delete(o.entries, i, i+1)
	for j := i; j < len(o.entries); j++ {
		o.index[o.entries[j].key] = j
	}
}

// Delete erases key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	pos := o.Find(key)
	if pos == End {
		return false
	}
	o.Erase(pos)
	return true
}

// At returns the key and live value stored at pos. It panics when pos is out
// of range.
func (o *Object) At(pos Pos) (string, *Value) {
	e := &o.entries[pos]
	return e.key, &e.val
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.entries))
	for i := range o.entries {
		keys[i] = o.entries[i].key
	}
	return keys
}

// All iterates entries in insertion order.
func (o *Object) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		for i := range o.entries {
			if !yield(o.entries[i].key, &o.entries[i].val) {
				return
			}
		}
	}
}

// Backward iterates entries in reverse insertion order.
func (o *Object) Backward() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		for i := len(o.entries) - 1; i >= 0; i-- {
			if !yield(o.entries[i].key, &o.entries[i].val) {
				return
			}
		}
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	out := &Object{
		index:   make(map[string]int, len(o.entries)),
		entries: make([]entry, len(o.entries)),
	}
	for i, e := range o.entries {
		out.entries[i] = entry{key: e.key, val: e.val.Clone()}
		out.index[e.key] = i
	}
	return out
}

// Equal reports whether both objects hold equal values under the same keys in
// the same order.
func (o *Object) Equal(other *Object) bool {
	if len(o.entries) != len(other.entries) {
		return false
	}
	for i := range o.entries {
		a, b := &o.entries[i], &other.entries[i]
		if a.key != b.key || !a.val.Equal(b.val) {
			return false
		}
	}
	return true
}
