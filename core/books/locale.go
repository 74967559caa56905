package books

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/bibleref/core/errors"
)

// localeFile is the on-disk shape of a locale table.
type localeFile struct {
	Locale   string   `yaml:"locale"`
	Ordinals []string `yaml:"ordinals"`
	// OrdinalForms lists further accepted spellings per ordinal, such as
	// feminine or apocopated forms.
	OrdinalForms [][]string  `yaml:"ordinalForms"`
	Books        []bookNames `yaml:"books"`
}

type bookNames struct {
	OSIS         string   `yaml:"osis"`
	Name         string   `yaml:"name"`
	Abbreviation string   `yaml:"abbreviation"`
	Thompson     string   `yaml:"thompson"`
	Alternatives []string `yaml:"alternatives"`
}

// locale is a parsed, indexed locale table. Index keys are folded with
// foldKey under the locale's own tag.
type locale struct {
	tag      language.Tag
	ordinals []string
	names    map[ID]string

	byOrdinal map[string]int

	byName     map[string]ID
	byAbbr     map[string]ID
	byThompson map[string]ID
	byAlt      map[string]ID
}

func parseLocale(data []byte, known map[ID]int) (*locale, error) {
	var f localeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decoding locale table")
	}
	tag, err := language.Parse(f.Locale)
	if err != nil {
		return nil, errors.Wrapf(err, "locale tag %q", f.Locale)
	}

	loc := &locale{
		tag:        tag,
		ordinals:   f.Ordinals,
		names:      make(map[ID]string, len(f.Books)),
		byName:     make(map[string]ID, len(f.Books)),
		byAbbr:     make(map[string]ID, len(f.Books)),
		byThompson: make(map[string]ID, len(f.Books)),
		byAlt:      make(map[string]ID),
		byOrdinal:  make(map[string]int),
	}

	if len(f.OrdinalForms) > len(f.Ordinals) {
		return nil, errors.NewInvalidArgument(fmt.Sprintf("%d ordinal form lists for %d ordinals", len(f.OrdinalForms), len(f.Ordinals)))
	}
	for i, ord := range f.Ordinals {
		forms := []string{ord}
		if i < len(f.OrdinalForms) {
			forms = append(forms, f.OrdinalForms[i]...)
		}
		for _, form := range forms {
			key := foldKey(form, tag)
			if key == "" {
				continue
			}
			if n, ok := loc.byOrdinal[key]; ok && n != i+1 {
				return nil, errors.NewInvalidArgument(fmt.Sprintf("ordinal %q means both %d and %d", form, n, i+1))
			}
			loc.byOrdinal[key] = i + 1
		}
	}

	for _, b := range f.Books {
		id := ID(b.OSIS)
		if _, ok := known[id]; !ok {
			return nil, errors.NewInvalidArgument(fmt.Sprintf("unknown OSIS code %q", b.OSIS))
		}
		if b.Name == "" {
			return nil, errors.NewInvalidArgument(fmt.Sprintf("book %s has no name", b.OSIS))
		}
		if _, dup := loc.names[id]; dup {
			return nil, errors.NewInvalidArgument(fmt.Sprintf("book %s listed twice", b.OSIS))
		}
		loc.names[id] = b.Name

		if err := loc.index(loc.byName, "name", b.Name, id); err != nil {
			return nil, err
		}
		if err := loc.index(loc.byAbbr, "abbreviation", b.Abbreviation, id); err != nil {
			return nil, err
		}
		if err := loc.index(loc.byThompson, "thompson", b.Thompson, id); err != nil {
			return nil, err
		}
		for _, alt := range b.Alternatives {
			if err := loc.index(loc.byAlt, "alternative", alt, id); err != nil {
				return nil, err
			}
		}
	}
	return loc, nil
}

// index adds text under id. Empty entries are skipped; a key already held
// by another book is an error.
func (l *locale) index(m map[string]ID, strategy, text string, id ID) error {
	key := foldKey(text, l.tag)
	if key == "" {
		return nil
	}
	if other, ok := m[key]; ok && other != id {
		return errors.NewInvalidArgument(fmt.Sprintf("%s %q maps to both %s and %s", strategy, text, other, id))
	}
	m[key] = id
	return nil
}

// foldKey normalizes text for lookup: whitespace and a trailing period are
// dropped, letters are lower-cased under tag, and diacritics are removed.
// "1 John", "1john" and "1 JOHN." fold to the same key.
func foldKey(text string, tag language.Tag) string {
	key := strings.Join(strings.Fields(text), "")
	key = strings.TrimSuffix(key, ".")
	if key == "" {
		return ""
	}
	key = cases.Lower(tag).String(key)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, key); err == nil {
		key = folded
	}
	return key
}
