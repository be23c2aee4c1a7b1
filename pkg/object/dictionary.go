package object

// Entry is one key/value pair of a dictionary.
type Entry struct {
	Key   string
	Value Object
}

// Dictionary is an ordered mapping from name keys to values. Keys are unique
// and iteration follows insertion order, matching the order the keys appear
// in the document.
//
// The zero value is not usable - use NewDictionary.
type Dictionary struct {
	keys   []string
	values map[string]Object
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{values: make(map[string]Object)}
}

// Set stores value under key. Setting an existing key replaces its value
// but keeps its original position.
func (d *Dictionary) Set(key string, value Object) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under key.
func (d *Dictionary) Get(key string) (Object, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.keys) }

// Keys returns the keys in insertion order. The returned slice is a copy.
func (d *Dictionary) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Entries returns all key/value pairs in insertion order.
func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, Entry{Key: k, Value: d.values[k]})
	}
	return out
}
