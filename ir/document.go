package ir

// Entry is one (path, value) fact.
type Entry struct {
	Path  Path
	Value Value
}

// Doc is an ordered Entry sequence.
type Doc struct {
	Entries []Entry
}

func NewDoc() *Doc {
	return &Doc{}
}

func FromValue(v Value) *Doc {
	return &Doc{Entries: []Entry{{Path: Path{}, Value: v}}}
}

func FromEntries(es []Entry) *Doc {
	return &Doc{Entries: es}
}

func (d *Doc) Add(p Path, v Value) {
	d.Entries = append(d.Entries, Entry{Path: p, Value: v})
}

// AddPrefix returns a new Doc with prefix prepended to every entry
// path.
func (d *Doc) AddPrefix(prefix Path) *Doc {
	res := &Doc{Entries: make([]Entry, len(d.Entries))}
	for i, e := range d.Entries {
		res.Entries[i] = Entry{Path: prefix.Join(e.Path), Value: e.Value}
	}
	return res
}

// Concat returns a new Doc with o's entries after d's, preserving
// document order within each.
func (d *Doc) Concat(o *Doc) *Doc {
	res := &Doc{Entries: make([]Entry, 0, len(d.Entries)+len(o.Entries))}
	res.Entries = append(res.Entries, d.Entries...)
	res.Entries = append(res.Entries, o.Entries...)
	return res
}

// Transform returns a new Doc with f applied to every entry. The `+=`
// operator uses it to tag a parsed subrange with one append operation.
func (d *Doc) Transform(f func(Entry) Entry) *Doc {
	res := &Doc{Entries: make([]Entry, len(d.Entries))}
	for i, e := range d.Entries {
		res.Entries[i] = f(e)
	}
	return res
}
