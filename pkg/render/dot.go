// Package render visualizes the object graph of a document as a node-link
// diagram: every indirect object becomes a node, every reference an edge.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pdfscope/pdfscope/pkg/object"
)

// Options configures object-graph rendering.
type Options struct {
	// Detailed includes dictionary types and payload sizes in node labels.
	// When false, only the object id is shown.
	Detailed bool
}

// ToDOT converts a document's object graph to Graphviz DOT format. The
// resulting DOT string can be rendered with [RenderSVG].
//
// The trailer appears as its own node so the root of the graph is visible.
// Stream objects are rendered with dashed outlines and grey fill to
// distinguish them from plain dictionaries.
func ToDOT(doc *object.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=\"trailer\", style=\"rounded,filled,bold\"];\n", "trailer")
	for _, id := range doc.IDs() {
		obj, _ := doc.Get(id)
		attrs := fmtAttrs(obj, fmtLabel(id, obj, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeName(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, target := range collectRefs(doc.Trailer) {
		fmt.Fprintf(&buf, "  %q -> %q;\n", "trailer", nodeName(target))
	}
	for _, id := range doc.IDs() {
		obj, _ := doc.Get(id)
		for _, target := range collectRefs(obj) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeName(id), nodeName(target))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id object.ID) string {
	return fmt.Sprintf("%d %d", id.Number, id.Generation)
}

func fmtLabel(id object.ID, obj object.Object, detailed bool) string {
	if !detailed {
		return nodeName(id)
	}

	parts := []string{fmt.Sprintf("kind: %s", kindName(obj))}
	switch v := obj.(type) {
	case *object.Dictionary:
		if t, ok := v.Get("Type"); ok {
			if name, ok := t.(object.Name); ok {
				parts = append(parts, fmt.Sprintf("type: %s", name))
			}
		}
	case *object.Stream:
		if t, ok := v.Dict.Get("Type"); ok {
			if name, ok := t.(object.Name); ok {
				parts = append(parts, fmt.Sprintf("type: %s", name))
			}
		}
		parts = append(parts, fmt.Sprintf("bytes: %d", len(v.Content)))
	}

	return nodeName(id) + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(obj object.Object, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if _, ok := obj.(*object.Stream); ok {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func kindName(obj object.Object) string {
	switch obj.(type) {
	case *object.Dictionary:
		return "dictionary"
	case *object.Stream:
		return "stream"
	case object.Array:
		return "array"
	default:
		return "value"
	}
}

// collectRefs gathers every reference target reachable inside one object
// without following the references themselves.
func collectRefs(obj object.Object) []object.ID {
	var refs []object.ID
	seen := make(map[object.ID]bool)

	var walk func(object.Object)
	walk = func(o object.Object) {
		switch v := o.(type) {
		case object.Reference:
			if !seen[v.ID()] {
				seen[v.ID()] = true
				refs = append(refs, v.ID())
			}
		case object.Array:
			for _, item := range v {
				walk(item)
			}
		case *object.Dictionary:
			for _, entry := range v.Entries() {
				walk(entry.Value)
			}
		case *object.Stream:
			walk(v.Dict)
		}
	}
	walk(obj)
	return refs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox starts at
// the origin. Graphviz emits offset viewboxes that confuse some viewers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
