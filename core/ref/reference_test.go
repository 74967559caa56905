package ref

import (
	"testing"

	"golang.org/x/text/language"
)

func TestReferenceFormat(t *testing.T) {
	tests := []struct {
		name    string
		ref     Reference
		culture language.Tag
		want    string
	}{
		{"book only", NewReference("Gen"), language.English, "Genesis"},
		{"single chapter", NewReference("Gen", SingleChapter(1)), language.English, "Genesis 1"},
		{"multiple chapters", NewReference("Gen", MultipleChapters(1, 2)), language.English, "Genesis 1-2"},
		{"single verse", NewReference("Gen", SingleVerse(1, 1)), language.English, "Genesis 1:1"},
		{"continuous verses", NewReference("Gen", MultipleVerses(1, 1, 5)), language.English, "Genesis 1:1-5"},
		{
			"discontinuous verses",
			NewReference("Gen", SingleVerse(1, 1), SingleVerse(1, 5)),
			language.English,
			"Genesis 1:1,5",
		},
		{
			"mixed",
			NewReference("Gen", MultipleVerses(1, 1, 5), SingleVerse(1, 8), MultipleVerses(2, 1, 3), SingleChapter(4)),
			language.English,
			"Genesis 1:1-5,8;2:1-3;4",
		},
		{
			"chapter after verses",
			NewReference("Gen", SingleVerse(1, 1), SingleChapter(1)),
			language.English,
			"Genesis 1:1;1",
		},
		{
			"cross chapter breaks citation",
			NewReference("Gen", span(1, 5, 2, 3), SingleVerse(2, 5)),
			language.English,
			"Genesis 1:5-2:3;2:5",
		},
		{"numbered book", NewReference("1John", SingleVerse(3, 16)), language.English, "1 John 3:16"},
		{"spanish", NewReference("1John", SingleVerse(3, 16)), language.Spanish, "1 Juan 3:16"},
		{"default culture", NewReference("Rev", SingleChapter(22)), language.Und, "Revelation 22"},
		{"unmatched culture", NewReference("Rev", SingleChapter(22)), language.Korean, "Revelation 22"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.Format(tt.culture); got != tt.want {
				t.Errorf("Format(%s) = %q, want %q", tt.culture, got, tt.want)
			}
		})
	}
}

func TestReferenceString(t *testing.T) {
	r := NewReference("Ps", SingleVerse(23, 1))
	if got := r.String(); got != "Psalms 23:1" {
		t.Errorf("String() = %q, want %q", got, "Psalms 23:1")
	}
}

func TestReferenceEqual(t *testing.T) {
	a := NewReference("Gen", SingleVerse(1, 1), SingleVerse(1, 3))

	tests := []struct {
		name  string
		other Reference
		want  bool
	}{
		{"same", NewReference("Gen", SingleVerse(1, 1), SingleVerse(1, 3)), true},
		{"different book", NewReference("Exod", SingleVerse(1, 1), SingleVerse(1, 3)), false},
		{"different order", NewReference("Gen", SingleVerse(1, 3), SingleVerse(1, 1)), false},
		{"fewer segments", NewReference("Gen", SingleVerse(1, 1)), false},
		{"no segments", NewReference("Gen"), false},
	}

	for _, tt := range tests {
		if got := a.Equal(tt.other); got != tt.want {
			t.Errorf("%s: Equal() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestReferenceImmutable(t *testing.T) {
	segs := []Segment{SingleVerse(1, 1)}
	r := NewReference("Gen", segs...)
	segs[0] = SingleVerse(9, 9)

	got := r.Segments()
	got[0] = SingleVerse(8, 8)

	if r.Segments()[0] != SingleVerse(1, 1) {
		t.Errorf("Reference changed through an aliased slice: %v", r.Segments())
	}
}

func TestReferenceSimplify(t *testing.T) {
	r, err := Parse("Genesis 1:3,1-2;1:5-7,4", language.English)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	s := r.Simplify()
	if got := s.String(); got != "Genesis 1:1-7" {
		t.Errorf("Simplify().String() = %q, want %q", got, "Genesis 1:1-7")
	}
	// Same-chapter segments format as one citation.
	if got := r.String(); got != "Genesis 1:3,1-2,5-7,4" {
		t.Errorf("original changed: %q", got)
	}
}
