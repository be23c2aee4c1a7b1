// Package object defines the in-memory model of a PDF document: the tagged
// value union, the insertion-ordered dictionary, and the id-addressed object
// table reachable from the trailer.
//
// The model is produced by [github.com/pdfscope/pdfscope/pkg/reader] and is
// read-only to everything downstream - the tree renderer, the content stream
// decoder, and the graph exporter never mutate it.
package object

import "fmt"

// ID addresses one indirect object in the document: object number plus
// generation number.
type ID struct {
	Number     uint32
	Generation uint16
}

// String renders the id as the "(number, generation)" pair used in output.
func (id ID) String() string {
	return fmt.Sprintf("(%d, %d)", id.Number, id.Generation)
}

// Kind identifies the concrete type behind an Object.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindReal
	KindName
	KindString
	KindArray
	KindDictionary
	KindStream
	KindReference
)

// Object is one value in the document graph. The concrete types are Null,
// Boolean, Integer, Real, Name, String, Array, *Dictionary, *Stream, and
// Reference.
type Object interface {
	Kind() Kind
}

// Null is the PDF null object.
type Null struct{}

// Boolean is a PDF boolean.
type Boolean bool

// Integer is a PDF integer number.
type Integer int64

// Real is a PDF real number.
type Real float64

// Name is a PDF name (without the leading slash).
type Name string

// StringFormat distinguishes the two PDF string encodings.
type StringFormat int

const (
	// Literal is a parenthesized string: (Hello).
	Literal StringFormat = iota
	// Hexadecimal is an angle-bracketed string: <48656C6C6F>.
	Hexadecimal
)

// String is a PDF string together with the encoding it was written in.
type String struct {
	Data   []byte
	Format StringFormat
}

// Array is an ordered sequence of values.
type Array []Object

// Reference points at an indirect object elsewhere in the graph.
type Reference ID

func (Null) Kind() Kind        { return KindNull }
func (Boolean) Kind() Kind     { return KindBoolean }
func (Integer) Kind() Kind     { return KindInteger }
func (Real) Kind() Kind        { return KindReal }
func (Name) Kind() Kind        { return KindName }
func (String) Kind() Kind      { return KindString }
func (Array) Kind() Kind       { return KindArray }
func (*Dictionary) Kind() Kind { return KindDictionary }
func (*Stream) Kind() Kind     { return KindStream }
func (Reference) Kind() Kind   { return KindReference }

// ID returns the reference target as an ID.
func (r Reference) ID() ID { return ID(r) }

// Stream is a dictionary with an attached byte payload.
type Stream struct {
	Dict    *Dictionary
	Content []byte

	// Decoded marks that Content has been run through its filters.
	Decoded bool
}

// NewStream creates a stream with the given dictionary and raw payload.
// A nil dictionary is replaced with an empty one.
func NewStream(dict *Dictionary, content []byte) *Stream {
	if dict == nil {
		dict = NewDictionary()
	}
	return &Stream{Dict: dict, Content: content}
}
