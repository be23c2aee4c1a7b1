// Package reader loads PDF files into the object model.
//
// The reader is deliberately tolerant: a damaged or missing cross-reference
// table degrades to a full scan for object headers, and unknown stream
// filters leave the payload untouched. It never mutates input bytes and
// never panics on malformed documents.
package reader

import (
	"bytes"
	"os"
	"strconv"

	"github.com/pdfscope/pdfscope/pkg/errors"
	"github.com/pdfscope/pdfscope/pkg/object"
)

// tailWindow is how far from the end of the file startxref is searched.
const tailWindow = 2048

// Load reads and parses the PDF file at path.
func Load(path string) (*object.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Read(data)
}

// Read parses a PDF document from raw bytes.
func Read(data []byte) (*object.Document, error) {
	doc := object.NewDocument()

	version, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	doc.Version = version

	offsets, trailer := parseXrefChain(data)
	if trailer != nil {
		doc.Trailer = trailer
		if size, ok := trailer.Get("Size"); ok {
			if n, ok := size.(object.Integer); ok {
				doc.XrefSize = int(n)
			}
		}
	}
	if len(offsets) == 0 {
		// No usable xref table (damaged, or a PDF 1.5+ xref stream):
		// fall back to scanning the whole file for object headers.
		offsets = scanObjectHeaders(data)
	}

	for _, off := range offsets {
		id, obj, err := parseIndirectObject(data, off)
		if err != nil {
			// One broken object must not sink the rest of the table.
			continue
		}
		doc.Put(id, obj)
	}

	if doc.Trailer.Len() == 0 {
		synthesizeTrailer(doc)
	}
	if doc.Trailer.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPDF, "no trailer and no catalog found")
	}
	return doc, nil
}

// parseHeader extracts the version from the %PDF-x.y header.
func parseHeader(data []byte) (string, error) {
	idx := bytes.Index(data, []byte("%PDF-"))
	if idx < 0 || idx > 1024 {
		return "", errors.New(errors.ErrCodeInvalidPDF, "missing %%PDF header")
	}
	start := idx + len("%PDF-")
	end := start
	for end < len(data) && data[end] != '\r' && data[end] != '\n' && end-start < 8 {
		end++
	}
	return string(data[start:end]), nil
}

// parseXrefChain follows startxref and every Prev link, collecting object
// offsets and the most recent trailer. Earlier sections never override
// entries from later ones. Returns nil offsets when no classic xref table
// is present.
func parseXrefChain(data []byte) ([]int, *object.Dictionary) {
	offset, ok := findStartXref(data)
	if !ok {
		return nil, nil
	}

	seen := make(map[int]bool)         // guards against Prev loops
	byObject := make(map[uint32]int)   // object number -> offset
	var trailer *object.Dictionary

	for offset > 0 && offset < len(data) && !seen[offset] {
		seen[offset] = true
		entries, t, ok := parseXrefSection(data, offset)
		if !ok {
			return nil, trailer
		}
		for num, off := range entries {
			if _, exists := byObject[num]; !exists {
				byObject[num] = off
			}
		}
		if trailer == nil {
			trailer = t
		}
		offset = 0
		if t != nil {
			if prev, ok := t.Get("Prev"); ok {
				if n, ok := prev.(object.Integer); ok {
					offset = int(n)
				}
			}
		}
	}

	offsets := make([]int, 0, len(byObject))
	for _, off := range byObject {
		offsets = append(offsets, off)
	}
	return offsets, trailer
}

// findStartXref locates the startxref offset near the end of the file.
func findStartXref(data []byte) (int, bool) {
	tail := data
	if len(tail) > tailWindow {
		tail = tail[len(tail)-tailWindow:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, false
	}
	s := NewScanner(tail[idx+len("startxref"):])
	item, err := s.Next()
	if err != nil || item.Kind != ItemValue {
		return 0, false
	}
	n, ok := item.Value.(object.Integer)
	if !ok {
		return 0, false
	}
	return int(n), true
}

// parseXrefSection parses one classic "xref" table plus its trailer.
// Returns in-use entries as object number -> byte offset.
func parseXrefSection(data []byte, offset int) (map[uint32]int, *object.Dictionary, bool) {
	s := NewScanner(data)
	s.SetPos(offset)

	item, err := s.Next()
	if err != nil || item.Kind != ItemKeyword || item.Keyword != "xref" {
		// Probably an xref stream; the caller falls back to scanning.
		return nil, nil, false
	}

	entries := make(map[uint32]int)
	for {
		item, err = s.Next()
		if err != nil {
			return nil, nil, false
		}
		if item.Kind == ItemKeyword && item.Keyword == "trailer" {
			break
		}
		start, ok := itemInt(item)
		if !ok {
			return nil, nil, false
		}
		item, err = s.Next()
		if err != nil {
			return nil, nil, false
		}
		count, ok := itemInt(item)
		if !ok {
			return nil, nil, false
		}
		for i := 0; i < count; i++ {
			off, gen, kind, ok := parseXrefEntry(s)
			if !ok {
				return nil, nil, false
			}
			_ = gen
			if kind == "n" && start+i != 0 {
				entries[uint32(start+i)] = off
			}
		}
	}

	obj, err := s.ScanObject()
	if err != nil {
		return entries, nil, true
	}
	trailer, _ := obj.(*object.Dictionary)
	return entries, trailer, true
}

func parseXrefEntry(s *Scanner) (offset, gen int, kind string, ok bool) {
	item, err := s.Next()
	if err != nil {
		return 0, 0, "", false
	}
	offset, okOff := itemInt(item)
	item, err = s.Next()
	if err != nil {
		return 0, 0, "", false
	}
	gen, okGen := itemInt(item)
	item, err = s.Next()
	if err != nil || item.Kind != ItemKeyword {
		return 0, 0, "", false
	}
	return offset, gen, item.Keyword, okOff && okGen
}

func itemInt(item Item) (int, bool) {
	if item.Kind != ItemValue {
		return 0, false
	}
	n, ok := item.Value.(object.Integer)
	return int(n), ok
}

// parseIndirectObject parses "N G obj ... endobj" starting at offset,
// including an attached stream payload when present.
func parseIndirectObject(data []byte, offset int) (object.ID, object.Object, error) {
	if offset < 0 || offset >= len(data) {
		return object.ID{}, nil, errors.New(errors.ErrCodeInvalidPDF, "object offset %d out of range", offset)
	}
	s := NewScanner(data)
	s.SetPos(offset)

	numItem, err := s.Next()
	if err != nil {
		return object.ID{}, nil, err
	}
	num, ok := itemInt(numItem)
	if !ok {
		return object.ID{}, nil, errors.New(errors.ErrCodeInvalidPDF, "object number expected at offset %d", offset)
	}
	genItem, err := s.Next()
	if err != nil {
		return object.ID{}, nil, err
	}
	gen, ok := itemInt(genItem)
	if !ok {
		return object.ID{}, nil, errors.New(errors.ErrCodeInvalidPDF, "generation number expected at offset %d", offset)
	}
	kw, err := s.Next()
	if err != nil {
		return object.ID{}, nil, err
	}
	if kw.Kind != ItemKeyword || kw.Keyword != "obj" {
		return object.ID{}, nil, errors.New(errors.ErrCodeInvalidPDF, "keyword obj expected at offset %d", offset)
	}

	id := object.ID{Number: uint32(num), Generation: uint16(gen)}
	obj, err := s.ScanObject()
	if err != nil {
		return object.ID{}, nil, err
	}

	// A dictionary followed by the stream keyword is a stream object.
	if dict, ok := obj.(*object.Dictionary); ok {
		mark := s.Pos()
		next, err := s.Next()
		if err == nil && next.Kind == ItemKeyword && next.Keyword == "stream" {
			content, err := readStreamPayload(data, s, dict)
			if err != nil {
				return object.ID{}, nil, err
			}
			return id, object.NewStream(dict, content), nil
		}
		s.SetPos(mark)
	}
	return id, obj, nil
}

// readStreamPayload reads the raw bytes between the stream and endstream
// keywords. The Length entry is used when it is a direct integer; otherwise
// (indirect or missing) the payload boundary is found by searching for
// endstream.
func readStreamPayload(data []byte, s *Scanner, dict *object.Dictionary) ([]byte, error) {
	pos := s.Pos()
	// The stream keyword is followed by CRLF or LF.
	if pos < len(data) && data[pos] == '\r' {
		pos++
	}
	if pos < len(data) && data[pos] == '\n' {
		pos++
	}

	end := -1
	if lengthObj, ok := dict.Get("Length"); ok {
		if n, ok := lengthObj.(object.Integer); ok && n >= 0 && pos+int(n) <= len(data) {
			end = pos + int(n)
		}
	}
	if end < 0 {
		idx := bytes.Index(data[pos:], []byte("endstream"))
		if idx < 0 {
			return nil, errors.New(errors.ErrCodeInvalidPDF, "unterminated stream")
		}
		end = pos + idx
		// Trim the EOL that precedes endstream.
		for end > pos && (data[end-1] == '\n' || data[end-1] == '\r') {
			end--
		}
	}

	content := make([]byte, end-pos)
	copy(content, data[pos:end])
	s.SetPos(end)

	kw, err := s.Next()
	if err != nil || kw.Kind != ItemKeyword || kw.Keyword != "endstream" {
		// Length pointed elsewhere; recover by searching.
		idx := bytes.Index(data[pos:], []byte("endstream"))
		if idx < 0 {
			return nil, errors.New(errors.ErrCodeInvalidPDF, "endstream keyword not found")
		}
		s.SetPos(pos + idx + len("endstream"))
	}
	return content, nil
}

// scanObjectHeaders walks the whole file looking for "N G obj" headers.
// This is the recovery path for documents without a usable xref table.
func scanObjectHeaders(data []byte) []int {
	var offsets []int
	search := data
	base := 0
	for {
		idx := bytes.Index(search, []byte("obj"))
		if idx < 0 {
			return offsets
		}
		abs := base + idx
		if start, ok := backtrackHeader(data, abs); ok {
			offsets = append(offsets, start)
		}
		base = abs + 3
		search = data[base:]
	}
}

// backtrackHeader walks backwards from the "obj" keyword over the
// generation and object numbers. Returns the offset of the object number.
func backtrackHeader(data []byte, objIdx int) (int, bool) {
	// obj must be a standalone keyword.
	if objIdx+3 < len(data) && isRegular(data[objIdx+3]) {
		return 0, false
	}
	i := objIdx - 1
	skipBack := func() bool {
		ok := false
		for i >= 0 && isWhitespace(data[i]) {
			i--
			ok = true
		}
		return ok
	}
	digitsBack := func() (int, bool) {
		end := i
		for i >= 0 && data[i] >= '0' && data[i] <= '9' {
			i--
		}
		if i == end {
			return 0, false
		}
		n, err := strconv.Atoi(string(data[i+1 : end+1]))
		return n, err == nil
	}

	if !skipBack() {
		return 0, false
	}
	if _, ok := digitsBack(); !ok {
		return 0, false
	}
	if !skipBack() {
		return 0, false
	}
	if _, ok := digitsBack(); !ok {
		return 0, false
	}
	return i + 1, true
}

// synthesizeTrailer builds a minimal trailer for documents recovered by
// header scanning: the first object whose dictionary is /Type /Catalog
// becomes Root.
func synthesizeTrailer(doc *object.Document) {
	for _, id := range doc.IDs() {
		obj, _ := doc.Get(id)
		dict, ok := obj.(*object.Dictionary)
		if !ok {
			continue
		}
		if t, ok := dict.Get("Type"); ok {
			if name, ok := t.(object.Name); ok && name == "Catalog" {
				doc.Trailer.Set("Root", object.Reference(id))
				doc.Trailer.Set("Size", object.Integer(doc.MaxID+1))
				return
			}
		}
	}
}
