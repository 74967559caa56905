// Package errors provides the error taxonomy shared by the reference parser,
// the book catalog and the command-line tools.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure kind. Typed errors unwrap to these so
// callers can use errors.Is without caring about the concrete type.
var (
	// ErrEmptyInput indicates the text to parse was empty or blank
	ErrEmptyInput = errors.New("empty input")
	// ErrUnknownBook indicates the book part did not resolve to any book
	ErrUnknownBook = errors.New("unknown book")
	// ErrChapterOutOfRange indicates a chapter <= 0 or above the book's last chapter
	ErrChapterOutOfRange = errors.New("chapter out of range")
	// ErrInvalidVerse indicates a verse token that is not a positive integer
	ErrInvalidVerse = errors.New("invalid verse")
	// ErrInvalidFormat indicates structural malformation of the citation text
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidArgument indicates a Point or Segment invariant was violated
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrNotFound indicates a requested resource was not found. It has no Kind.
var ErrNotFound = errors.New("not found")

// Kind classifies a reference error.
type Kind int

const (
	// KindUnknown is the zero Kind, reported for errors outside the taxonomy.
	KindUnknown Kind = iota
	KindEmptyInput
	KindUnknownBook
	KindChapterOutOfRange
	KindInvalidVerse
	KindInvalidFormat
	KindInvalidArgument
)

var kindNames = map[Kind]string{
	KindUnknown:           "Unknown",
	KindEmptyInput:        "EmptyInput",
	KindUnknownBook:       "UnknownBook",
	KindChapterOutOfRange: "ChapterOutOfRange",
	KindInvalidVerse:      "InvalidVerse",
	KindInvalidFormat:     "InvalidFormat",
	KindInvalidArgument:   "InvalidArgument",
}

var kindSentinels = map[Kind]error{
	KindEmptyInput:        ErrEmptyInput,
	KindUnknownBook:       ErrUnknownBook,
	KindChapterOutOfRange: ErrChapterOutOfRange,
	KindInvalidVerse:      ErrInvalidVerse,
	KindInvalidFormat:     ErrInvalidFormat,
	KindInvalidArgument:   ErrInvalidArgument,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinel returns the sentinel error for the kind, or nil for KindUnknown.
func (k Kind) Sentinel() error {
	return kindSentinels[k]
}

// ReferenceError is a parse or construction failure with its kind and the
// offending text.
type ReferenceError struct {
	Kind    Kind   // Failure classification
	Text    string // Offending input fragment, if any
	Message string // Human-readable detail
	Err     error  // Underlying error, if any
}

func (e *ReferenceError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.sentinelText()
	}
	if e.Text != "" {
		return fmt.Sprintf("%s: %q", msg, e.Text)
	}
	return msg
}

func (e *ReferenceError) sentinelText() string {
	if s := e.Kind.Sentinel(); s != nil {
		return s.Error()
	}
	return "reference error"
}

func (e *ReferenceError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind.Sentinel()
}

// Is reports whether target is the sentinel for this error's kind, so that
// errors.Is still matches when Err carries a different cause.
func (e *ReferenceError) Is(target error) bool {
	s := e.Kind.Sentinel()
	return s != nil && target == s
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for creating common errors

// New creates a ReferenceError of the given kind.
func New(kind Kind, text, message string) *ReferenceError {
	return &ReferenceError{
		Kind:    kind,
		Text:    text,
		Message: message,
	}
}

// NewEmptyInput creates an EmptyInput error.
func NewEmptyInput() *ReferenceError {
	return New(KindEmptyInput, "", "text is empty")
}

// NewUnknownBook creates an UnknownBook error carrying the unresolved text.
func NewUnknownBook(text string) *ReferenceError {
	return New(KindUnknownBook, text, "unknown book name")
}

// NewChapterOutOfRange creates a ChapterOutOfRange error.
func NewChapterOutOfRange(text, message string) *ReferenceError {
	return New(KindChapterOutOfRange, text, message)
}

// NewInvalidVerse creates an InvalidVerse error.
func NewInvalidVerse(text, message string) *ReferenceError {
	return New(KindInvalidVerse, text, message)
}

// NewInvalidFormat creates an InvalidFormat error.
func NewInvalidFormat(text, message string) *ReferenceError {
	return New(KindInvalidFormat, text, message)
}

// NewInvalidArgument creates an InvalidArgument error.
func NewInvalidArgument(message string) *ReferenceError {
	return New(KindInvalidArgument, "", message)
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// KindOf returns the Kind of the first ReferenceError in err's chain, or
// KindUnknown when there is none.
func KindOf(err error) Kind {
	var re *ReferenceError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
