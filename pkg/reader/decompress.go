package reader

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/charmbracelet/log"

	"github.com/pdfscope/pdfscope/pkg/object"
)

// Decompress runs every stream in the document through its declared
// filters. Streams with unsupported filters keep their raw payload and are
// reported at debug level; a corrupt payload is likewise left untouched.
func Decompress(doc *object.Document, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	for _, id := range doc.IDs() {
		obj, _ := doc.Get(id)
		stream, ok := obj.(*object.Stream)
		if !ok || stream.Decoded {
			continue
		}
		decodeStream(id, stream, logger)
	}
}

func decodeStream(id object.ID, stream *object.Stream, logger *log.Logger) {
	for _, filter := range filterNames(stream.Dict) {
		switch filter {
		case "FlateDecode", "Fl":
			decoded, err := inflate(stream.Content)
			if err != nil {
				logger.Debug("flate decode failed, keeping raw payload", "object", id, "err", err)
				return
			}
			stream.Content = decoded
		default:
			logger.Debug("unsupported stream filter, keeping raw payload", "object", id, "filter", filter)
			return
		}
	}
	stream.Decoded = true
}

// filterNames collects the Filter entry as a list of names. Filter may be a
// single name or an array of names applied in order.
func filterNames(dict *object.Dictionary) []string {
	f, ok := dict.Get("Filter")
	if !ok {
		return nil
	}
	switch v := f.(type) {
	case object.Name:
		return []string{string(v)}
	case object.Array:
		var names []string
		for _, item := range v {
			if name, ok := item.(object.Name); ok {
				names = append(names, string(name))
			}
		}
		return names
	}
	return nil
}

// inflate decompresses a FlateDecode payload. PDF flate streams carry a
// zlib header.
func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
