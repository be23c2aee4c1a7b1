package object

import "slices"

// Document is a fully loaded PDF: the trailer dictionary plus the
// id-addressed object table. The trailer's Root entry leads to the document
// catalog, from which every other object is reachable.
type Document struct {
	// Version is the header version string, e.g. "1.7".
	Version string
	// Trailer is the trailer dictionary (never nil).
	Trailer *Dictionary
	// MaxID is the highest object number seen while loading.
	MaxID uint32
	// XrefSize is the /Size entry of the trailer, when present.
	XrefSize int

	objects map[ID]Object
}

// NewDocument creates an empty document with an empty trailer.
func NewDocument() *Document {
	return &Document{
		Trailer: NewDictionary(),
		objects: make(map[ID]Object),
	}
}

// Get looks up an indirect object by id.
func (d *Document) Get(id ID) (Object, bool) {
	obj, ok := d.objects[id]
	return obj, ok
}

// Put stores an indirect object under id, tracking MaxID.
func (d *Document) Put(id ID, obj Object) {
	d.objects[id] = obj
	if id.Number > d.MaxID {
		d.MaxID = id.Number
	}
}

// Len returns the number of objects in the table.
func (d *Document) Len() int { return len(d.objects) }

// IDs returns all object ids sorted by number then generation, for
// deterministic iteration.
func (d *Document) IDs() []ID {
	ids := make([]ID, 0, len(d.objects))
	for id := range d.objects {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b ID) int {
		if a.Number != b.Number {
			return int(a.Number) - int(b.Number)
		}
		return int(a.Generation) - int(b.Generation)
	})
	return ids
}

// Catalog resolves the trailer's Root entry to the catalog dictionary.
func (d *Document) Catalog() (*Dictionary, bool) {
	root, ok := d.Trailer.Get("Root")
	if !ok {
		return nil, false
	}
	ref, ok := root.(Reference)
	if !ok {
		return nil, false
	}
	obj, ok := d.Get(ref.ID())
	if !ok {
		return nil, false
	}
	dict, ok := obj.(*Dictionary)
	return dict, ok
}
