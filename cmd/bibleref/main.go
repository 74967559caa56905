// Command bibleref parses, normalizes and formats scripture references.
// It also extracts OSIS citations from XML documents.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/text/language"

	"github.com/FocuswithJustin/bibleref/core/books"
	"github.com/FocuswithJustin/bibleref/core/citeindex"
	"github.com/FocuswithJustin/bibleref/core/errors"
	"github.com/FocuswithJustin/bibleref/core/osisxml"
	"github.com/FocuswithJustin/bibleref/core/ref"
	"github.com/FocuswithJustin/bibleref/internal/fileutil"
	"github.com/FocuswithJustin/bibleref/internal/logging"
	"github.com/FocuswithJustin/bibleref/internal/validation"
)

const version = "0.1.0"

// CLI defines the command-line interface for bibleref.
type CLI struct {
	Globals

	Parse    ParseCmd    `cmd:"" help:"Parse a human-written reference"`
	Segments SegmentsCmd `cmd:"" help:"Parse a segment list without a book name"`
	Simplify SimplifyCmd `cmd:"" help:"Merge overlapping and adjacent segments"`
	OSIS     OSISCmd     `cmd:"" name:"osis" help:"Parse OSIS reference syntax"`
	Extract  ExtractCmd  `cmd:"" help:"Extract osisRef citations from an OSIS XML file"`
	Index    IndexGroup  `cmd:"" help:"Citation index operations"`
	Books    BooksCmd    `cmd:"" help:"List the books of the canon"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// Globals are the flags shared by every command.
type Globals struct {
	Culture   string `short:"c" help:"Culture tag for book names (e.g. en, es)" default:"en" env:"BIBLEREF_CULTURE"`
	LogLevel  string `name:"log-level" help:"Log level" default:"warn" enum:"debug,info,warn,error" env:"BIBLEREF_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format" default:"text" enum:"json,text" env:"BIBLEREF_LOG_FORMAT"`

	out     io.Writer
	culture language.Tag
}

// configure applies the logging flags and resolves the culture tag.
// Command output goes to out and logs to logs.
func (g *Globals) configure(out, logs io.Writer) error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLoggerWriter(logs, level, format)

	g.out = out
	g.culture = language.Und
	if c := strings.TrimSpace(g.Culture); c != "" {
		tag, err := language.Parse(c)
		if err != nil {
			return errors.NewInvalidArgument(fmt.Sprintf("invalid culture %q", c))
		}
		g.culture = tag
	}
	return nil
}

// ParseCmd parses a reference such as "1 John 3:16-18".
type ParseCmd struct {
	Text     []string `arg:"" help:"Reference text; multiple arguments are joined with spaces"`
	Simplify bool     `short:"s" help:"Simplify the segments before printing"`
	OSIS     bool     `name:"osis" help:"Print the reference in OSIS syntax"`
}

func (c *ParseCmd) Run(g *Globals) error {
	input := strings.Join(c.Text, " ")
	r, err := ref.Parse(input, g.culture)
	if err != nil {
		logging.ReferenceRejected(input, err, "kind", errors.KindOf(err).String())
		return err
	}
	if c.Simplify {
		r = r.Simplify()
	}
	logging.ReferenceParsed(input, r.OSIS())

	if c.OSIS {
		fmt.Fprintln(g.out, r.OSIS())
		return nil
	}
	fmt.Fprintln(g.out, r.Format(g.culture))
	return nil
}

// SegmentsCmd parses the segment part of a reference, e.g. "1:1-5,8;2".
type SegmentsCmd struct {
	Text       string `arg:"" help:"Segment list"`
	MaxChapter int    `name:"max-chapter" short:"m" help:"Highest valid chapter (0 for no limit)" default:"0"`
}

func (c *SegmentsCmd) Run(g *Globals) error {
	segs, err := parseSegments(c.Text, c.MaxChapter)
	if err != nil {
		return err
	}
	printSegments(g.out, segs)
	return nil
}

// SimplifyCmd parses a segment list and prints it simplified.
type SimplifyCmd struct {
	Text       string `arg:"" help:"Segment list"`
	MaxChapter int    `name:"max-chapter" short:"m" help:"Highest valid chapter (0 for no limit)" default:"0"`
}

func (c *SimplifyCmd) Run(g *Globals) error {
	segs, err := parseSegments(c.Text, c.MaxChapter)
	if err != nil {
		return err
	}
	printSegments(g.out, ref.Simplify(segs))
	return nil
}

func parseSegments(text string, maxChapter int) ([]ref.Segment, error) {
	if maxChapter == 0 {
		maxChapter = ref.NoChapterLimit
	}
	segs, err := ref.ParseSegments(text, maxChapter)
	if err != nil {
		logging.ReferenceRejected(text, err, "kind", errors.KindOf(err).String())
		return nil, err
	}
	return segs, nil
}

func printSegments(w io.Writer, segs []ref.Segment) {
	for _, s := range segs {
		fmt.Fprintln(w, s)
	}
}

// OSISCmd parses OSIS syntax such as "Gen.1.1-Gen.1.5 Gen.2".
type OSISCmd struct {
	Refs     []string `arg:"" help:"OSIS references to one book"`
	Simplify bool     `short:"s" help:"Simplify the segments before printing"`
}

func (c *OSISCmd) Run(g *Globals) error {
	input := strings.Join(c.Refs, " ")
	r, err := ref.ParseOSIS(input)
	if err != nil {
		logging.ReferenceRejected(input, err, "kind", errors.KindOf(err).String())
		return err
	}
	if c.Simplify {
		r = r.Simplify()
	}
	logging.ReferenceParsed(input, r.OSIS())
	fmt.Fprintln(g.out, r.Format(g.culture))
	return nil
}

// ExtractCmd lists the citations of an OSIS XML document.
type ExtractCmd struct {
	Path   string `arg:"" help:"OSIS XML file" type:"existingfile"`
	XPath  string `name:"xpath" help:"Element selector" default:"${reference_xpath}"`
	Attr   string `help:"Attribute holding the reference" default:"${reference_attr}"`
	Strict bool   `help:"Fail if any citation does not parse"`
}

func (c *ExtractCmd) Run(g *Globals) error {
	ctx := logging.WithInput(context.Background(), c.Path)
	r, closeDoc, err := openDocument(ctx, c.Path)
	if err != nil {
		return err
	}
	defer closeDoc()

	citations, err := osisxml.Extract(r, osisxml.Options{XPath: c.XPath, Attr: c.Attr})
	if err != nil {
		return errors.Wrapf(err, "extracting %s", c.Path)
	}

	failed := 0
	for _, cit := range citations {
		if cit.Err != nil {
			failed++
			logging.ReferenceRejected(cit.OSISRef, cit.Err, "path", c.Path)
			fmt.Fprintf(g.out, "%s\terror: %v\n", cit.OSISRef, cit.Err)
			continue
		}
		logging.ReferenceParsed(cit.OSISRef, cit.Reference.OSIS(), "path", c.Path)
		fmt.Fprintf(g.out, "%s\t%s\n", cit.OSISRef, cit.Reference.Format(g.culture))
	}
	logging.InfoContext(ctx, "extract_complete", "citations", len(citations), "failed", failed)

	if c.Strict && failed > 0 {
		logging.ErrorContext(ctx, "strict_extract_failed", "failed", failed)
		return fmt.Errorf("%d of %d citations failed to parse", failed, len(citations))
	}
	return nil
}

// openDocument opens the XML document at path, decompressing xz or gzip
// content, and checks that it looks like XML.
func openDocument(ctx context.Context, path string) (io.Reader, func() error, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, nil, fmt.Errorf("invalid input path: %w", err)
	}
	f, err := fileutil.Open(path)
	if err != nil {
		return nil, nil, errors.NewIO("open", path, err)
	}
	r, err := validation.XMLReader(f, validation.MaxFileSize)
	if err != nil {
		f.Close()
		return nil, nil, errors.NewIO("read", path, err)
	}
	logging.DebugContext(ctx, "document_opened", "compression", f.Compression.String())
	return r, f.Close, nil
}

// IndexGroup contains citation index operations.
type IndexGroup struct {
	Add    IndexAddCmd    `cmd:"" help:"Index the citations of OSIS XML files"`
	Query  IndexQueryCmd  `cmd:"" help:"Find indexed citations overlapping a reference"`
	List   IndexListCmd   `cmd:"" help:"List indexed documents"`
	Remove IndexRemoveCmd `cmd:"" help:"Remove a document from the index"`
}

// IndexFlags selects the index database.
type IndexFlags struct {
	DB string `name:"db" help:"Index database path" default:"bibleref.db" env:"BIBLEREF_INDEX" type:"path"`
}

func (f IndexFlags) open() (*citeindex.Index, error) {
	return citeindex.Open(f.DB, nil)
}

// IndexAddCmd indexes documents.
type IndexAddCmd struct {
	IndexFlags
	Paths []string `arg:"" help:"OSIS XML files, optionally xz or gzip compressed" type:"existingfile"`
	XPath string   `name:"xpath" help:"Element selector" default:"${reference_xpath}"`
	Attr  string   `help:"Attribute holding the reference" default:"${reference_attr}"`
}

func (c *IndexAddCmd) Run(g *Globals) error {
	ix, err := c.open()
	if err != nil {
		return err
	}
	defer ix.Close()

	for _, path := range c.Paths {
		ctx := logging.WithInput(context.Background(), path)
		data, err := readDocument(ctx, path)
		if err != nil {
			return err
		}
		doc, added, err := ix.Add(ctx, path, data, osisxml.Options{XPath: c.XPath, Attr: c.Attr})
		if err != nil {
			return err
		}
		if doc.Rejected > 0 && added {
			logging.WarnContext(ctx, "citations_rejected", "document", doc.ID, "rejected", doc.Rejected)
		}
		if !added {
			logging.InfoContext(ctx, "document_exists", "document", doc.ID)
			fmt.Fprintf(g.out, "exists\t%s\t%s\n", doc.ID, doc.Name)
			continue
		}
		fmt.Fprintf(g.out, "added\t%s\t%s\t%d citations, %d rejected\n", doc.ID, doc.Name, doc.Citations, doc.Rejected)
	}
	return nil
}

func readDocument(ctx context.Context, path string) ([]byte, error) {
	r, closeDoc, err := openDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	defer closeDoc()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return data, nil
}

// IndexQueryCmd lists the indexed citations overlapping a reference.
type IndexQueryCmd struct {
	IndexFlags
	Text []string `arg:"" help:"Reference text; multiple arguments are joined with spaces"`
}

func (c *IndexQueryCmd) Run(g *Globals) error {
	input := strings.Join(c.Text, " ")
	r, err := ref.Parse(input, g.culture)
	if err != nil {
		logging.ReferenceRejected(input, err, "kind", errors.KindOf(err).String())
		return err
	}

	ix, err := c.open()
	if err != nil {
		return err
	}
	defer ix.Close()

	hits, err := ix.Query(context.Background(), r)
	if err != nil {
		return err
	}
	for _, h := range hits {
		fmt.Fprintf(g.out, "%s\t%s\t%s\n", h.DocumentName, h.OSISRef, h.Reference.Format(g.culture))
	}
	return nil
}

// IndexListCmd lists the indexed documents.
type IndexListCmd struct {
	IndexFlags
}

func (c *IndexListCmd) Run(g *Globals) error {
	ix, err := c.open()
	if err != nil {
		return err
	}
	defer ix.Close()

	docs, err := ix.Documents(context.Background())
	if err != nil {
		return err
	}
	for _, d := range docs {
		fmt.Fprintf(g.out, "%s\t%d\t%d\t%s\t%s\n", d.ID, d.Citations, d.Rejected, d.AddedAt.Format(time.RFC3339), d.Name)
	}
	return nil
}

// IndexRemoveCmd removes a document by ID.
type IndexRemoveCmd struct {
	IndexFlags
	ID string `arg:"" help:"Document ID as printed by index add or index list"`
}

func (c *IndexRemoveCmd) Run(g *Globals) error {
	ix, err := c.open()
	if err != nil {
		return err
	}
	defer ix.Close()

	if err := ix.Remove(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Fprintf(g.out, "removed\t%s\n", c.ID)
	return nil
}

// BooksCmd prints the canon with localized names.
type BooksCmd struct{}

func (c *BooksCmd) Run(g *Globals) error {
	catalog := books.Default()
	for _, b := range catalog.Books() {
		fmt.Fprintf(g.out, "%-6s %s %4d  %s\n", b.ID, b.Paratext, b.Chapters, catalog.Name(b.ID, g.culture))
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.out, "bibleref version %s\n", version)
	return nil
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("bibleref"),
		kong.Description("Parse and normalize scripture references"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"reference_xpath": osisxml.ReferenceXPath,
			"reference_attr":  osisxml.ReferenceAttr,
		},
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, options()...)
	ctx.FatalIfErrorf(cli.configure(os.Stdout, os.Stderr))
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
