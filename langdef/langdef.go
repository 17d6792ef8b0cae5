// Package langdef provides keyword languages: built-in keyword tables and tables defined in TOML or YAML files.
//
// A definition file contains language name and spellings keyed by logical keyword names, e.g. in TOML:
//
//	name = "romanian"
//
//	[keywords]
//	read = "citeste"
//	while = "cat timp"
//
// Keywords missing from definition keep their English spelling.
// A spelling consists of one or more words separated by spaces,
// each word starts with a letter or an underscore and contains only letters, digits, underscores and dots.
package langdef

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ava12/pseudo/lexer"
)

// DefaultName is the name of the default built-in language.
const DefaultName = "english"

// Format of definition document.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatOf detects document format by file extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, unsupportedFormatError(ext)
	}
}

// Language is a named keyword table.
type Language struct {
	Name     string
	Keywords lexer.KeywordTable
}

// Spellings returns keyword spellings keyed by logical names.
func (l *Language) Spellings() map[string]string {
	res := make(map[string]string, len(l.Keywords))
	for _, kw := range l.Keywords {
		name := lexer.LogicalName(kw.Kind)
		if _, found := res[name]; !found {
			res[name] = kw.Spelling
		}
	}
	return res
}

var builtins = map[string]map[string]string{
	"english": {},
	"romanian": {
		"read":   "citeste",
		"write":  "scrie",
		"if":     "daca",
		"then":   "atunci",
		"else":   "altfel",
		"while":  "cat timp",
		"do":     "executa",
		"repeat": "repeta",
		"until":  "pana cand",
		"for":    "pentru",
	},
}

// Names returns names of built-in languages in ascending order.
func Names() []string {
	res := make([]string, 0, len(builtins))
	for name := range builtins {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Builtin returns built-in language by name.
func Builtin(name string) (*Language, error) {
	spellings, found := builtins[strings.ToLower(name)]
	if !found {
		return nil, unknownLanguageError(name)
	}
	return build(strings.ToLower(name), spellings)
}

// English returns the default language.
func English() *Language {
	return &Language{DefaultName, lexer.English()}
}

type definition struct {
	Name     string            `toml:"name" yaml:"name"`
	Keywords map[string]string `toml:"keywords" yaml:"keywords"`
}

// Load reads language definition from .toml, .yaml or .yml file.
// Language name defaults to file name without extension.
func Load(path string) (*Language, error) {
	format, e := FormatOf(path)
	if e != nil {
		return nil, e
	}

	data, e := os.ReadFile(path)
	if e != nil {
		return nil, readError(path, e)
	}

	l, e := decode(data, format, path)
	if e != nil {
		return nil, e
	}
	if l.Name == "" {
		base := filepath.Base(path)
		l.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return l, nil
}

// Parse decodes language definition from memory. format is "toml", "yaml" or "yml".
func Parse(data []byte, format string) (*Language, error) {
	var f Format
	switch strings.ToLower(format) {
	case "toml":
		f = FormatTOML
	case "yaml", "yml":
		f = FormatYAML
	default:
		return nil, unsupportedFormatError(format)
	}

	l, e := decode(data, f, "<"+f.String()+">")
	if e != nil {
		return nil, e
	}
	if l.Name == "" {
		l.Name = "custom"
	}
	return l, nil
}

// Select returns the language chosen by command line options:
// definition file if file is not empty, built-in language name otherwise, English if both are empty.
func Select(name, file string) (*Language, error) {
	switch {
	case file != "":
		return Load(file)
	case name != "":
		return Builtin(name)
	default:
		return English(), nil
	}
}

func decode(data []byte, format Format, source string) (*Language, error) {
	var def definition
	switch format {
	case FormatTOML:
		md, e := toml.Decode(string(data), &def)
		if e != nil {
			return nil, decodeError(source, e)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, unknownKeyError(source, undecoded[0].String())
		}

	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		e := dec.Decode(&def)
		if e != nil && !errors.Is(e, io.EOF) {
			return nil, decodeError(source, e)
		}
	}

	name := def.Name
	if name == "" {
		name = source
	}
	l, e := build(name, def.Keywords)
	if e != nil {
		return nil, e
	}
	l.Name = def.Name
	return l, nil
}

// build creates keyword table in canonical keyword order, missing spellings are English.
func build(name string, spellings map[string]string) (*Language, error) {
	for keyword := range spellings {
		if _, found := lexer.KeywordKind(keyword); !found {
			return nil, unknownKeywordError(name, keyword)
		}
	}

	table := make(lexer.KeywordTable, 0, len(spellings))
	owners := make(map[string]string)
	for _, keyword := range lexer.LogicalNames() {
		spelling, found := spellings[keyword]
		if !found {
			spelling = keyword
		}
		spelling = strings.Join(strings.Fields(spelling), " ")
		if !validSpelling(spelling) {
			return nil, invalidSpellingError(name, keyword, spellings[keyword])
		}

		if owner, found := owners[spelling]; found {
			return nil, duplicateSpellingError(name, spelling, owner, keyword)
		}
		owners[spelling] = keyword

		kind, _ := lexer.KeywordKind(keyword)
		table = append(table, lexer.Keyword{Kind: kind, Spelling: spelling})
	}

	return &Language{name, table}, nil
}

func validSpelling(spelling string) bool {
	if spelling == "" {
		return false
	}

	for _, word := range strings.Fields(spelling) {
		for i, r := range word {
			switch {
			case r == '_' || unicode.IsLetter(r):
			case i > 0 && (r == '.' || unicode.IsDigit(r)):
			default:
				return false
			}
		}
	}
	return true
}
