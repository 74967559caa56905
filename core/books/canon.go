package books

// ID identifies a book by its OSIS code (e.g., "Gen", "1John").
type ID string

// Book is the culture-invariant description of a canonical book.
type Book struct {
	ID       ID     // OSIS code
	Paratext string // Paratext/USFM three-character code
	Chapters int    // Number of chapters (KJV versification)
}

// canon lists the 66 books of the Protestant canon in order.
var canon = []Book{
	// Old Testament
	{ID: "Gen", Paratext: "GEN", Chapters: 50},
	{ID: "Exod", Paratext: "EXO", Chapters: 40},
	{ID: "Lev", Paratext: "LEV", Chapters: 27},
	{ID: "Num", Paratext: "NUM", Chapters: 36},
	{ID: "Deut", Paratext: "DEU", Chapters: 34},
	{ID: "Josh", Paratext: "JOS", Chapters: 24},
	{ID: "Judg", Paratext: "JDG", Chapters: 21},
	{ID: "Ruth", Paratext: "RUT", Chapters: 4},
	{ID: "1Sam", Paratext: "1SA", Chapters: 31},
	{ID: "2Sam", Paratext: "2SA", Chapters: 24},
	{ID: "1Kgs", Paratext: "1KI", Chapters: 22},
	{ID: "2Kgs", Paratext: "2KI", Chapters: 25},
	{ID: "1Chr", Paratext: "1CH", Chapters: 29},
	{ID: "2Chr", Paratext: "2CH", Chapters: 36},
	{ID: "Ezra", Paratext: "EZR", Chapters: 10},
	{ID: "Neh", Paratext: "NEH", Chapters: 13},
	{ID: "Esth", Paratext: "EST", Chapters: 10},
	{ID: "Job", Paratext: "JOB", Chapters: 42},
	{ID: "Ps", Paratext: "PSA", Chapters: 150},
	{ID: "Prov", Paratext: "PRO", Chapters: 31},
	{ID: "Eccl", Paratext: "ECC", Chapters: 12},
	{ID: "Song", Paratext: "SNG", Chapters: 8},
	{ID: "Isa", Paratext: "ISA", Chapters: 66},
	{ID: "Jer", Paratext: "JER", Chapters: 52},
	{ID: "Lam", Paratext: "LAM", Chapters: 5},
	{ID: "Ezek", Paratext: "EZK", Chapters: 48},
	{ID: "Dan", Paratext: "DAN", Chapters: 12},
	{ID: "Hos", Paratext: "HOS", Chapters: 14},
	{ID: "Joel", Paratext: "JOL", Chapters: 3},
	{ID: "Amos", Paratext: "AMO", Chapters: 9},
	{ID: "Obad", Paratext: "OBA", Chapters: 1},
	{ID: "Jonah", Paratext: "JON", Chapters: 4},
	{ID: "Mic", Paratext: "MIC", Chapters: 7},
	{ID: "Nah", Paratext: "NAM", Chapters: 3},
	{ID: "Hab", Paratext: "HAB", Chapters: 3},
	{ID: "Zeph", Paratext: "ZEP", Chapters: 3},
	{ID: "Hag", Paratext: "HAG", Chapters: 2},
	{ID: "Zech", Paratext: "ZEC", Chapters: 14},
	{ID: "Mal", Paratext: "MAL", Chapters: 4},
	// New Testament
	{ID: "Matt", Paratext: "MAT", Chapters: 28},
	{ID: "Mark", Paratext: "MRK", Chapters: 16},
	{ID: "Luke", Paratext: "LUK", Chapters: 24},
	{ID: "John", Paratext: "JHN", Chapters: 21},
	{ID: "Acts", Paratext: "ACT", Chapters: 28},
	{ID: "Rom", Paratext: "ROM", Chapters: 16},
	{ID: "1Cor", Paratext: "1CO", Chapters: 16},
	{ID: "2Cor", Paratext: "2CO", Chapters: 13},
	{ID: "Gal", Paratext: "GAL", Chapters: 6},
	{ID: "Eph", Paratext: "EPH", Chapters: 6},
	{ID: "Phil", Paratext: "PHP", Chapters: 4},
	{ID: "Col", Paratext: "COL", Chapters: 4},
	{ID: "1Thess", Paratext: "1TH", Chapters: 5},
	{ID: "2Thess", Paratext: "2TH", Chapters: 3},
	{ID: "1Tim", Paratext: "1TI", Chapters: 6},
	{ID: "2Tim", Paratext: "2TI", Chapters: 4},
	{ID: "Titus", Paratext: "TIT", Chapters: 3},
	{ID: "Phlm", Paratext: "PHM", Chapters: 1},
	{ID: "Heb", Paratext: "HEB", Chapters: 13},
	{ID: "Jas", Paratext: "JAS", Chapters: 5},
	{ID: "1Pet", Paratext: "1PE", Chapters: 5},
	{ID: "2Pet", Paratext: "2PE", Chapters: 3},
	{ID: "1John", Paratext: "1JN", Chapters: 5},
	{ID: "2John", Paratext: "2JN", Chapters: 1},
	{ID: "3John", Paratext: "3JN", Chapters: 1},
	{ID: "Jude", Paratext: "JUD", Chapters: 1},
	{ID: "Rev", Paratext: "REV", Chapters: 22},
}
