// Package citeindex stores the citations of OSIS documents in SQLite and
// answers which documents cite a given passage.
//
// Every segment of a citation is stored as a closed interval of verse keys
// (chapter<<20 | verse), so an overlap query is two comparisons per row. A
// whole chapter spans keys chapter:1 through chapter:EndOfChapter.
//
// Documents are identified by the BLAKE3 hash of their decompressed content;
// adding the same content twice is a no-op.
package citeindex

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/bibleref/core/books"
	"github.com/FocuswithJustin/bibleref/core/errors"
	"github.com/FocuswithJustin/bibleref/core/osisxml"
	"github.com/FocuswithJustin/bibleref/core/ref"
	"github.com/FocuswithJustin/bibleref/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	citations INTEGER NOT NULL,
	rejected INTEGER NOT NULL,
	added_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS citations (
	document_id TEXT NOT NULL,
	ordinal INTEGER NOT NULL,
	osis_ref TEXT NOT NULL,
	osis TEXT NOT NULL,
	book TEXT NOT NULL,
	start_key INTEGER NOT NULL,
	end_key INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS citations_book_range ON citations (book, start_key, end_key);
CREATE INDEX IF NOT EXISTS citations_document ON citations (document_id);
`

const verseBits = 20

// key orders p within its book. Verses beyond the key width, including
// EndOfChapter, saturate.
func key(p ref.Point) int64 {
	v := min(p.Verse(), 1<<verseBits-1)
	return int64(p.Chapter())<<verseBits | int64(v)
}

// Document describes an indexed document.
type Document struct {
	ID        string    // BLAKE3 hex digest of the content
	Name      string    // Name given when added, usually the file path
	Citations int       // Citations stored
	Rejected  int       // Citations whose osisRef did not parse
	AddedAt   time.Time // UTC
}

// Hit is a stored citation overlapping a query.
type Hit struct {
	DocumentID   string
	DocumentName string
	OSISRef      string        // Attribute value as written in the document
	Reference    ref.Reference // Parsed citation
}

// Index is a citation index backed by a SQLite database.
type Index struct {
	db     *sql.DB
	parser *ref.Parser
}

// Open opens or creates the index database at path. Citations are parsed
// with parser when added and again when returned by Query; nil uses the
// default catalog.
func Open(path string, parser *ref.Parser) (*Index, error) {
	if parser == nil {
		parser = ref.NewParser(books.Default())
	}

	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "creating schema in %s", path)
	}
	return &Index{db: db, parser: parser}, nil
}

// Close closes the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// DocumentID returns the identifier a document with content data gets.
func DocumentID(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Add extracts the citations of the OSIS document data and stores them
// under name. It reports false, with the stored Document, if the content
// was already indexed. opts.Parser is replaced by the index's parser.
func (ix *Index) Add(ctx context.Context, name string, data []byte, opts osisxml.Options) (Document, bool, error) {
	id := DocumentID(data)
	if doc, err := ix.Document(ctx, id); err == nil {
		return doc, false, nil
	} else if !errors.Is(err, errors.ErrNotFound) {
		return Document{}, false, err
	}

	opts.Parser = ix.parser
	citations, err := osisxml.Extract(bytes.NewReader(data), opts)
	if err != nil {
		return Document{}, false, errors.Wrapf(err, "extracting %s", name)
	}

	doc := Document{ID: id, Name: name, AddedAt: time.Now().UTC().Truncate(time.Second)}
	for _, c := range citations {
		if c.Err != nil {
			doc.Rejected++
			logging.ReferenceRejected(c.OSISRef, c.Err, "document", id)
			continue
		}
		doc.Citations++
	}

	err = ix.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO documents (id, name, citations, rejected, added_at) VALUES (?, ?, ?, ?, ?)",
			doc.ID, doc.Name, doc.Citations, doc.Rejected, doc.AddedAt.Format(time.RFC3339)); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO citations (document_id, ordinal, osis_ref, osis, book, start_key, end_key) VALUES (?, ?, ?, ?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, c := range citations {
			if c.Err != nil {
				continue
			}
			for _, s := range rows(c.Reference) {
				if _, err := stmt.ExecContext(ctx, doc.ID, i, c.OSISRef, c.Reference.OSIS(),
					string(c.Reference.Book()), s.start, s.end); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return Document{}, false, errors.Wrapf(err, "indexing %s", name)
	}

	logging.DocumentIndexed(doc.ID, doc.Name, doc.Citations, "rejected", doc.Rejected)
	return doc, true, nil
}

type keyRange struct {
	start, end int64
}

// rows returns the key ranges stored for r. A reference without segments
// designates its whole book.
func rows(r ref.Reference) []keyRange {
	segs := r.Segments()
	if len(segs) == 0 {
		return []keyRange{{start: 0, end: 1<<62 - 1}}
	}
	out := make([]keyRange, len(segs))
	for i, s := range segs {
		out[i] = keyRange{start: key(s.ComputedStart()), end: key(s.ComputedEnd())}
	}
	return out
}

// Query returns the stored citations overlapping r, ordered by document
// name and position within the document. A citation is reported once even
// if several of its segments overlap.
func (ix *Index) Query(ctx context.Context, r ref.Reference) ([]Hit, error) {
	ranges := rows(r)
	conds := make([]string, len(ranges))
	args := []any{string(r.Book())}
	for i, kr := range ranges {
		conds[i] = "(c.start_key <= ? AND c.end_key >= ?)"
		args = append(args, kr.end, kr.start)
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT d.id, d.name, c.ordinal, c.osis_ref, c.osis
		FROM citations c JOIN documents d ON d.id = c.document_id
		WHERE c.book = ? AND (%s)
		ORDER BY d.name, d.id, c.ordinal`, strings.Join(conds, " OR "))

	rs, err := ix.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying citations")
	}
	defer rs.Close()

	var hits []Hit
	for rs.Next() {
		var (
			h       Hit
			ordinal int
			osis    string
		)
		if err := rs.Scan(&h.DocumentID, &h.DocumentName, &ordinal, &h.OSISRef, &osis); err != nil {
			return nil, errors.Wrap(err, "scanning citation")
		}
		if h.Reference, err = ix.parser.ParseOSIS(osis); err != nil {
			return nil, errors.Wrapf(err, "stored citation %q", osis)
		}
		hits = append(hits, h)
	}
	return hits, errors.Wrap(rs.Err(), "reading citations")
}

// Document returns the indexed document with the given id, or an error
// wrapping errors.ErrNotFound.
func (ix *Index) Document(ctx context.Context, id string) (Document, error) {
	row := ix.db.QueryRowContext(ctx,
		"SELECT id, name, citations, rejected, added_at FROM documents WHERE id = ?", id)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return Document{}, errors.Wrapf(errors.ErrNotFound, "document %s", id)
	}
	return doc, err
}

// Documents lists the indexed documents by name.
func (ix *Index) Documents(ctx context.Context) ([]Document, error) {
	rs, err := ix.db.QueryContext(ctx,
		"SELECT id, name, citations, rejected, added_at FROM documents ORDER BY name, id")
	if err != nil {
		return nil, errors.Wrap(err, "listing documents")
	}
	defer rs.Close()

	var docs []Document
	for rs.Next() {
		doc, err := scanDocument(rs)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, errors.Wrap(rs.Err(), "reading documents")
}

// Remove deletes a document and its citations.
func (ix *Index) Remove(ctx context.Context, id string) error {
	return ix.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errors.Wrapf(errors.ErrNotFound, "document %s", id)
		}
		_, err = tx.ExecContext(ctx, "DELETE FROM citations WHERE document_id = ?", id)
		return err
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (Document, error) {
	var (
		doc   Document
		added string
	)
	if err := s.Scan(&doc.ID, &doc.Name, &doc.Citations, &doc.Rejected, &added); err != nil {
		if err == sql.ErrNoRows {
			return Document{}, err
		}
		return Document{}, errors.Wrap(err, "scanning document")
	}
	t, err := time.Parse(time.RFC3339, added)
	if err != nil {
		return Document{}, errors.Wrapf(err, "document %s added_at", doc.ID)
	}
	doc.AddedAt = t
	return doc, nil
}

func (ix *Index) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
