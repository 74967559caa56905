// Package osisxml extracts scripture references from OSIS XML documents.
//
// OSIS marks citations as <reference osisRef="Gen.1.1-Gen.1.5">Gen 1:1-5</reference>.
// Extract finds those elements in document order and parses each osisRef
// into a ref.Reference. A citation that fails to parse is reported on its
// own Citation and does not stop extraction.
//
// Security: xmlquery parses with encoding/xml, which never fetches external
// entities.
package osisxml

import (
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/bibleref/core/books"
	"github.com/FocuswithJustin/bibleref/core/errors"
	"github.com/FocuswithJustin/bibleref/core/ref"
)

// ReferenceXPath selects OSIS reference elements regardless of namespace
// prefix.
const ReferenceXPath = "//*[local-name()='reference'][@osisRef]"

// ReferenceAttr is the attribute holding the OSIS reference.
const ReferenceAttr = "osisRef"

// Options controls extraction.
type Options struct {
	Parser *ref.Parser // Parser for osisRef values; nil uses the default catalog
	XPath  string      // Element selector; defaults to ReferenceXPath
	Attr   string      // Attribute holding the reference; defaults to ReferenceAttr
}

// Citation is one reference element found in a document.
type Citation struct {
	OSISRef   string        // Attribute value as written
	Text      string        // Element text, e.g. "Gen 1:1-5"
	Reference ref.Reference // Parsed reference, valid when Err is nil
	Err       error         // Parse failure for this citation
}

// Document is a parsed OSIS XML document.
type Document struct {
	root *xmlquery.Node
}

// Parse reads an XML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing XML")
	}
	return &Document{root: root}, nil
}

// Extract parses the document in r and returns its citations.
func Extract(r io.Reader, opts Options) ([]Citation, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return doc.Citations(opts)
}

// Citations returns every element matching opts.XPath, in document order,
// with its reference attribute parsed as OSIS. Elements with an empty
// attribute are skipped.
func (d *Document) Citations(opts Options) ([]Citation, error) {
	if opts.XPath == "" {
		opts.XPath = ReferenceXPath
	}
	if opts.Attr == "" {
		opts.Attr = ReferenceAttr
	}
	if opts.Parser == nil {
		opts.Parser = ref.NewParser(books.Default())
	}

	expr, err := xpath.Compile(opts.XPath)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid xpath %q", opts.XPath)
	}

	var citations []Citation
	for _, n := range xmlquery.QuerySelectorAll(d.root, expr) {
		value := strings.TrimSpace(n.SelectAttr(opts.Attr))
		if value == "" {
			continue
		}
		c := Citation{
			OSISRef: value,
			Text:    strings.TrimSpace(n.InnerText()),
		}
		c.Reference, c.Err = opts.Parser.ParseOSIS(stripWork(value))
		citations = append(citations, c)
	}
	return citations, nil
}

// stripWork removes work prefixes ("Bible:", "KJV:") from each reference
// in an osisRef value.
func stripWork(value string) string {
	fields := strings.Fields(value)
	for i, f := range fields {
		f = trimWork(f)
		if start, end, ok := strings.Cut(f, "-"); ok {
			f = start + "-" + trimWork(end)
		}
		fields[i] = f
	}
	return strings.Join(fields, " ")
}

func trimWork(s string) string {
	if _, after, ok := strings.Cut(s, ":"); ok {
		return after
	}
	return s
}
