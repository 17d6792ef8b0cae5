package langdef

import (
	"github.com/ava12/pseudo"
)

// Error codes used by langdef package:
const (
	// ReadError indicates a definition file that cannot be read.
	ReadError = pseudo.LanguageErrors + iota
	// UnsupportedFormatError indicates unknown definition file extension or format name.
	UnsupportedFormatError
	// DecodeError indicates malformed TOML or YAML document.
	DecodeError
	// UnknownKeyError indicates an unexpected key in definition document.
	UnknownKeyError
	// UnknownKeywordError indicates a keyword that is not one of logical keyword names.
	UnknownKeywordError
	// InvalidSpellingError indicates empty spelling or spelling containing non-word characters.
	InvalidSpellingError
	// DuplicateSpellingError indicates two keywords sharing the same spelling.
	DuplicateSpellingError
	// UnknownLanguageError indicates a request for missing built-in language.
	UnknownLanguageError
)

func readError(path string, cause error) *pseudo.Error {
	return pseudo.FormatError(ReadError, "cannot read language file %s: %s", path, cause)
}

func unsupportedFormatError(format string) *pseudo.Error {
	return pseudo.FormatError(UnsupportedFormatError, "unsupported language file format %q", format)
}

func decodeError(name string, cause error) *pseudo.Error {
	return pseudo.FormatError(DecodeError, "malformed language definition %s: %s", name, cause)
}

func unknownKeyError(name, key string) *pseudo.Error {
	return pseudo.FormatError(UnknownKeyError, "unknown key %q in language definition %s", key, name)
}

func unknownKeywordError(name, keyword string) *pseudo.Error {
	return pseudo.FormatError(UnknownKeywordError, "unknown keyword %q in language definition %s", keyword, name)
}

func invalidSpellingError(name, keyword, spelling string) *pseudo.Error {
	return pseudo.FormatError(InvalidSpellingError, "invalid spelling %q of keyword %q in language definition %s", spelling, keyword, name)
}

func duplicateSpellingError(name, spelling string, first, second string) *pseudo.Error {
	return pseudo.FormatError(DuplicateSpellingError, "keywords %q and %q share spelling %q in language definition %s", first, second, spelling, name)
}

func unknownLanguageError(name string) *pseudo.Error {
	return pseudo.FormatError(UnknownLanguageError, "unknown language %q", name)
}
