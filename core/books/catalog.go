// Package books provides the book catalog used to resolve scripture book
// names to identifiers and back.
//
// A Catalog combines the culture-invariant canon (OSIS and Paratext codes,
// chapter counts) with per-culture locale tables (display names,
// abbreviations, ordinal spellings) loaded from YAML.
package books

import (
	"embed"
	"io/fs"
	"sync"

	"golang.org/x/text/language"

	"github.com/FocuswithJustin/bibleref/core/errors"
	"github.com/FocuswithJustin/bibleref/internal/cache"
	"github.com/FocuswithJustin/bibleref/internal/logging"
)

//go:embed locales/*.yaml
var embedded embed.FS

// resolveCacheSize bounds the memo of culture tag resolutions.
const resolveCacheSize = 64

// Catalog resolves book names for a set of locales. A Catalog is immutable
// after loading and safe for concurrent use.
type Catalog struct {
	canon      []Book
	byID       map[ID]int
	byOSIS     map[string]ID
	byParatext map[string]ID

	locales  []*locale // locales[0] is the fallback
	matcher  language.Matcher
	resolved *cache.LRU[string, *locale]
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		panic(err)
	}
	c, err := Load(sub)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the catalog built from the embedded locale tables.
func Default() *Catalog {
	return defaultCatalog()
}

// Load builds a catalog from every *.yaml locale table at the root of fsys.
// The "en" locale, if present, becomes the fallback for unmatched cultures;
// otherwise the first table in lexical order does.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{
		canon:      canon,
		byID:       make(map[ID]int, len(canon)),
		byOSIS:     make(map[string]ID, len(canon)),
		byParatext: make(map[string]ID, len(canon)),
		resolved:   cache.New[string, *locale](resolveCacheSize),
	}
	for i, b := range canon {
		c.byID[b.ID] = i
		c.byOSIS[foldKey(string(b.ID), language.Und)] = b.ID
		c.byParatext[foldKey(b.Paratext, language.Und)] = b.ID
	}

	paths, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, errors.NewIO("glob", "*.yaml", err)
	}
	if len(paths) == 0 {
		return nil, errors.NewInvalidArgument("no locale tables found")
	}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, errors.NewIO("read", path, err)
		}
		loc, err := parseLocale(data, c.byID)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s", path)
		}
		for _, existing := range c.locales {
			if existing.tag == loc.tag {
				return nil, errors.NewInvalidArgument("duplicate locale " + loc.tag.String())
			}
		}
		if loc.tag == language.English {
			c.locales = append([]*locale{loc}, c.locales...)
		} else {
			c.locales = append(c.locales, loc)
		}
		logging.LocaleLoaded(loc.tag.String(), len(loc.names), "path", path)
	}

	tags := make([]language.Tag, len(c.locales))
	for i, loc := range c.locales {
		tags[i] = loc.tag
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

// resolve picks the locale table serving culture. Undetermined and
// unmatched tags resolve to the fallback locale.
func (c *Catalog) resolve(culture language.Tag) *locale {
	if culture == language.Und {
		return c.locales[0]
	}
	return c.resolved.GetOrCompute(culture.String(), func() *locale {
		_, idx, conf := c.matcher.Match(culture)
		if conf == language.No || idx < 0 || idx >= len(c.locales) {
			return c.locales[0]
		}
		return c.locales[idx]
	})
}

// Lookup resolves text to a book. Strategies are tried in order: display
// name, OSIS code, Paratext code, standard abbreviation, Thompson
// abbreviation, alternative name.
func (c *Catalog) Lookup(text string, culture language.Tag) (ID, bool) {
	loc := c.resolve(culture)
	key := foldKey(text, loc.tag)
	if key == "" {
		return "", false
	}
	for _, index := range []map[string]ID{
		loc.byName,
		c.byOSIS,
		c.byParatext,
		loc.byAbbr,
		loc.byThompson,
		loc.byAlt,
	} {
		if id, ok := index[key]; ok {
			return id, true
		}
	}
	return "", false
}

// Name returns the display name of id in culture. Books missing from the
// culture's table use the fallback locale; unknown books render as their ID.
func (c *Catalog) Name(id ID, culture language.Tag) string {
	if name, ok := c.resolve(culture).names[id]; ok {
		return name
	}
	if name, ok := c.locales[0].names[id]; ok {
		return name
	}
	return string(id)
}

// MaxChapter returns the number of chapters in id, or 0 if the book is
// not in the canon.
func (c *Catalog) MaxChapter(id ID) int {
	i, ok := c.byID[id]
	if !ok {
		return 0
	}
	return c.canon[i].Chapters
}

// Ordinal returns the spelled-out ordinal for n (1 = "First") in culture,
// or "" if the locale has none.
func (c *Catalog) Ordinal(n int, culture language.Tag) string {
	loc := c.resolve(culture)
	if n < 1 || n > len(loc.ordinals) {
		return ""
	}
	return loc.ordinals[n-1]
}

// OrdinalNumber returns the number spelled by token in culture ("Primera"
// is 1 in Spanish), or 0 if token is not an ordinal.
func (c *Catalog) OrdinalNumber(token string, culture language.Tag) int {
	loc := c.resolve(culture)
	return loc.byOrdinal[foldKey(token, loc.tag)]
}

// Book returns the canonical description of id.
func (c *Catalog) Book(id ID) (Book, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Book{}, false
	}
	return c.canon[i], true
}

// Books returns the canon in order.
func (c *Catalog) Books() []Book {
	out := make([]Book, len(c.canon))
	copy(out, c.canon)
	return out
}

// Locales returns the loaded locale tags, fallback first.
func (c *Catalog) Locales() []language.Tag {
	tags := make([]language.Tag, len(c.locales))
	for i, loc := range c.locales {
		tags[i] = loc.tag
	}
	return tags
}
