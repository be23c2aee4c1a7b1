package reader

import (
	"strconv"

	"github.com/pdfscope/pdfscope/pkg/errors"
	"github.com/pdfscope/pdfscope/pkg/object"
)

// ItemKind identifies what the scanner produced.
type ItemKind int

const (
	// ItemValue is a complete primitive value (number, name, string,
	// boolean, or null).
	ItemValue ItemKind = iota
	// ItemArrayStart is the "[" delimiter.
	ItemArrayStart
	// ItemArrayEnd is the "]" delimiter.
	ItemArrayEnd
	// ItemDictStart is the "<<" delimiter.
	ItemDictStart
	// ItemDictEnd is the ">>" delimiter.
	ItemDictEnd
	// ItemKeyword is a bare token: obj, endobj, stream, R, an operator, ...
	ItemKeyword
	// ItemEOF marks the end of input.
	ItemEOF
)

// Item is one lexical unit of PDF syntax.
type Item struct {
	Kind    ItemKind
	Value   object.Object // set for ItemValue
	Keyword string        // set for ItemKeyword
}

// Scanner tokenizes PDF object syntax. The same syntax is shared by the
// document body, the trailer, and content stream operands, so both the file
// reader and the content decoder are built on it.
type Scanner struct {
	data []byte
	pos  int
}

// NewScanner creates a scanner over data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Pos returns the current byte offset.
func (s *Scanner) Pos() int { return s.pos }

// SetPos moves the scanner to the given byte offset.
func (s *Scanner) SetPos(pos int) { s.pos = pos }

func isWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isRegular(c byte) bool {
	return !isWhitespace(c) && !isDelimiter(c)
}

// skipSpace advances past whitespace and % comments.
func (s *Scanner) skipSpace() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case isWhitespace(c):
			s.pos++
		case c == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		default:
			return
		}
	}
}

// Next returns the next lexical item.
func (s *Scanner) Next() (Item, error) {
	s.skipSpace()
	if s.pos >= len(s.data) {
		return Item{Kind: ItemEOF}, nil
	}

	c := s.data[s.pos]
	switch {
	case c == '[':
		s.pos++
		return Item{Kind: ItemArrayStart}, nil
	case c == ']':
		s.pos++
		return Item{Kind: ItemArrayEnd}, nil
	case c == '<':
		if s.pos+1 < len(s.data) && s.data[s.pos+1] == '<' {
			s.pos += 2
			return Item{Kind: ItemDictStart}, nil
		}
		return s.scanHexString()
	case c == '>':
		if s.pos+1 < len(s.data) && s.data[s.pos+1] == '>' {
			s.pos += 2
			return Item{Kind: ItemDictEnd}, nil
		}
		return Item{}, errors.New(errors.ErrCodeInvalidPDF, "unexpected '>' at offset %d", s.pos)
	case c == '(':
		return s.scanLiteralString()
	case c == '/':
		return s.scanName()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return s.scanNumber()
	case isRegular(c):
		return s.scanKeyword()
	}
	return Item{}, errors.New(errors.ErrCodeInvalidPDF, "unexpected byte %#x at offset %d", c, s.pos)
}

func (s *Scanner) scanKeyword() (Item, error) {
	start := s.pos
	for s.pos < len(s.data) && isRegular(s.data[s.pos]) {
		s.pos++
	}
	word := string(s.data[start:s.pos])
	switch word {
	case "true":
		return Item{Kind: ItemValue, Value: object.Boolean(true)}, nil
	case "false":
		return Item{Kind: ItemValue, Value: object.Boolean(false)}, nil
	case "null":
		return Item{Kind: ItemValue, Value: object.Null{}}, nil
	}
	return Item{Kind: ItemKeyword, Keyword: word}, nil
}

func (s *Scanner) scanNumber() (Item, error) {
	start := s.pos
	if c := s.data[s.pos]; c == '+' || c == '-' {
		s.pos++
	}
	real := false
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '.' {
			real = true
			s.pos++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		s.pos++
	}
	text := string(s.data[start:s.pos])
	if real {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Item{}, errors.Wrap(errors.ErrCodeInvalidPDF, err, "real number at offset %d", start)
		}
		return Item{Kind: ItemValue, Value: object.Real(f)}, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Item{}, errors.Wrap(errors.ErrCodeInvalidPDF, err, "integer at offset %d", start)
	}
	return Item{Kind: ItemValue, Value: object.Integer(n)}, nil
}

func (s *Scanner) scanName() (Item, error) {
	s.pos++ // consume '/'
	var out []byte
	for s.pos < len(s.data) && isRegular(s.data[s.pos]) {
		c := s.data[s.pos]
		if c == '#' && s.pos+2 < len(s.data) {
			hi := hexVal(s.data[s.pos+1])
			lo := hexVal(s.data[s.pos+2])
			if hi >= 0 && lo >= 0 {
				out = append(out, byte(hi<<4|lo))
				s.pos += 3
				continue
			}
		}
		out = append(out, c)
		s.pos++
	}
	return Item{Kind: ItemValue, Value: object.Name(out)}, nil
}

func (s *Scanner) scanLiteralString() (Item, error) {
	s.pos++ // consume '('
	var out []byte
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch c {
		case '\\':
			s.pos++
			if s.pos >= len(s.data) {
				break
			}
			e := s.data[s.pos]
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '(', ')', '\\':
				out = append(out, e)
			case '\r':
				// Line continuation: swallow optional \n too.
				if s.pos+1 < len(s.data) && s.data[s.pos+1] == '\n' {
					s.pos++
				}
			case '\n':
				// Line continuation.
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for i := 0; i < 2 && s.pos+1 < len(s.data); i++ {
						n := s.data[s.pos+1]
						if n < '0' || n > '7' {
							break
						}
						v = v*8 + int(n-'0')
						s.pos++
					}
					out = append(out, byte(v))
				} else {
					out = append(out, e)
				}
			}
			s.pos++
		case '(':
			depth++
			out = append(out, c)
			s.pos++
		case ')':
			depth--
			s.pos++
			if depth == 0 {
				return Item{Kind: ItemValue, Value: object.String{Data: out, Format: object.Literal}}, nil
			}
			out = append(out, c)
		default:
			out = append(out, c)
			s.pos++
		}
	}
	return Item{}, errors.New(errors.ErrCodeInvalidPDF, "unterminated literal string")
}

func (s *Scanner) scanHexString() (Item, error) {
	s.pos++ // consume '<'
	var out []byte
	hi := -1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '>' {
			s.pos++
			if hi >= 0 {
				// Odd digit count: final digit is the high nibble.
				out = append(out, byte(hi<<4))
			}
			return Item{Kind: ItemValue, Value: object.String{Data: out, Format: object.Hexadecimal}}, nil
		}
		if v := hexVal(c); v >= 0 {
			if hi < 0 {
				hi = v
			} else {
				out = append(out, byte(hi<<4|v))
				hi = -1
			}
		} else if !isWhitespace(c) {
			return Item{}, errors.New(errors.ErrCodeInvalidPDF, "invalid hex digit %#x at offset %d", c, s.pos)
		}
		s.pos++
	}
	return Item{}, errors.New(errors.ErrCodeInvalidPDF, "unterminated hexadecimal string")
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// ScanObject parses a complete value, folding composite structures and
// "N G R" reference triples. It returns an error if the next item is not
// the start of a value.
func (s *Scanner) ScanObject() (object.Object, error) {
	item, err := s.Next()
	if err != nil {
		return nil, err
	}
	return s.finishObject(item)
}

// finishObject completes a value whose first item has already been read.
func (s *Scanner) finishObject(item Item) (object.Object, error) {
	switch item.Kind {
	case ItemValue:
		if n, ok := item.Value.(object.Integer); ok {
			return s.maybeReference(n), nil
		}
		return item.Value, nil
	case ItemArrayStart:
		return s.scanArray()
	case ItemDictStart:
		return s.scanDict()
	case ItemEOF:
		return nil, errors.New(errors.ErrCodeInvalidPDF, "unexpected end of input")
	}
	return nil, errors.New(errors.ErrCodeInvalidPDF, "unexpected token %q", item.Keyword)
}

// maybeReference checks whether the integer just read begins an "N G R"
// reference triple. On any mismatch the scanner position is restored and
// the plain integer is returned.
func (s *Scanner) maybeReference(n object.Integer) object.Object {
	mark := s.pos
	genItem, err := s.Next()
	if err == nil && genItem.Kind == ItemValue {
		if gen, ok := genItem.Value.(object.Integer); ok && n >= 0 && gen >= 0 {
			kw, err := s.Next()
			if err == nil && kw.Kind == ItemKeyword && kw.Keyword == "R" {
				return object.Reference{Number: uint32(n), Generation: uint16(gen)}
			}
		}
	}
	s.pos = mark
	return n
}

func (s *Scanner) scanArray() (object.Object, error) {
	var arr object.Array
	for {
		item, err := s.Next()
		if err != nil {
			return nil, err
		}
		if item.Kind == ItemArrayEnd {
			return arr, nil
		}
		obj, err := s.finishObject(item)
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (s *Scanner) scanDict() (object.Object, error) {
	dict := object.NewDictionary()
	for {
		item, err := s.Next()
		if err != nil {
			return nil, err
		}
		if item.Kind == ItemDictEnd {
			return dict, nil
		}
		key, ok := item.Value.(object.Name)
		if item.Kind != ItemValue || !ok {
			return nil, errors.New(errors.ErrCodeInvalidPDF, "dictionary key must be a name")
		}
		value, err := s.ScanObject()
		if err != nil {
			return nil, err
		}
		dict.Set(string(key), value)
	}
}
