package changelog

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/changelint/internal/change"
	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/pkg/fileutil"
)

// RootKey is the top-level key every changelog document is nested under.
const RootKey = "databaseChangeLog"

// Format identifies a changelog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedFormat, "%q", filepath.Ext(path))
	}
}

// Parser reads changelog files.
type Parser struct {
	readFile func(string) ([]byte, error)
}

// NewParser creates a new changelog parser.
func NewParser() *Parser {
	return &Parser{readFile: fileutil.ReadFileWithLimit}
}

// ParseFile reads the changelog at path and every file it includes.
// Includes are resolved relative to the including file and inlined in
// order. An include chain that returns to a file already being read fails
// with ErrIncludeCycle.
func (p *Parser) ParseFile(path string) (*ChangeLog, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	cl := &ChangeLog{Path: path}
	if err := p.parseInto(cl, path, abs, nil); err != nil {
		return nil, err
	}
	return cl, nil
}

// Parse decodes a single changelog document in the given format.
// Include entries are rejected because there is no file to resolve them
// against; use ParseFile for changelogs that include others.
func (p *Parser) Parse(data []byte, format Format, path string) (*ChangeLog, error) {
	entries, err := decodeDocument(data, format)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	cl := &ChangeLog{Path: path, Files: []string{path}}
	for i, entry := range entries {
		key, value, err := single(entry, fmt.Sprintf("%s[%d]", RootKey, i))
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		if key == "include" {
			return nil, &ParseError{Path: path, Err: errors.New("include requires a changelog file")}
		}
		cs, err := decodeEntry(key, value, path, i)
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		cl.ChangeSets = append(cl.ChangeSets, cs)
	}
	return cl, nil
}

// parseInto appends the change sets of the file at abs to cl. stack holds
// the files currently being read, outermost first.
func (p *Parser) parseInto(cl *ChangeLog, display, abs string, stack []string) error {
	for _, open := range stack {
		if open == abs {
			chain := append(append([]string(nil), stack...), abs)
			return &ParseError{
				Path: display,
				Err:  errors.Wrap(errors.ErrIncludeCycle, strings.Join(chain, " -> ")),
			}
		}
	}
	stack = append(stack, abs)

	format, err := FormatOf(abs)
	if err != nil {
		return &ParseError{Path: display, Err: err}
	}
	data, err := p.readFile(abs)
	if err != nil {
		return &ParseError{Path: display, Err: err}
	}
	entries, err := decodeDocument(data, format)
	if err != nil {
		return &ParseError{Path: display, Err: err}
	}
	cl.Files = append(cl.Files, display)

	for i, entry := range entries {
		key, value, err := single(entry, fmt.Sprintf("%s[%d]", RootKey, i))
		if err != nil {
			return &ParseError{Path: display, Err: err}
		}

		if key == "include" {
			target, err := includeTarget(value, i)
			if err != nil {
				return &ParseError{Path: display, Err: err}
			}
			childDisplay := target
			if !filepath.IsAbs(target) {
				childDisplay = filepath.Join(filepath.Dir(display), target)
				target = filepath.Join(filepath.Dir(abs), target)
			}
			if err := p.parseInto(cl, childDisplay, filepath.Clean(target), stack); err != nil {
				return err
			}
			continue
		}

		cs, err := decodeEntry(key, value, display, i)
		if err != nil {
			return &ParseError{Path: display, Err: err}
		}
		cl.ChangeSets = append(cl.ChangeSets, cs)
	}
	return nil
}

// decodeDocument returns the entries under RootKey. JSON is decoded with
// the YAML decoder since every JSON document is valid YAML.
func decodeDocument(data []byte, format Format) ([]any, error) {
	var doc map[string]any
	switch format {
	case FormatYAML, FormatJSON:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", format)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "decoding toml")
		}
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "%q", string(format))
	}

	root, ok := doc[RootKey]
	if !ok {
		return nil, errors.Newf("missing %s", RootKey)
	}
	if root == nil {
		return nil, nil
	}
	entries, ok := root.([]any)
	if !ok {
		return nil, errors.Newf("%s must be a list, got %T", RootKey, root)
	}
	return entries, nil
}

// single unpacks a one-key map such as {changeSet: {...}}.
func single(v any, where string) (string, any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", nil, errors.Newf("%s must be a map, got %T", where, v)
	}
	if len(m) != 1 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", nil, errors.Newf("%s must have exactly one key, got %v", where, keys)
	}
	for k, val := range m {
		return k, val, nil
	}
	return "", nil, nil
}

func includeTarget(value any, index int) (string, error) {
	var inc struct {
		File string `mapstructure:"file"`
	}
	if err := mapstructure.Decode(value, &inc); err != nil {
		return "", errors.Wrapf(err, "include at %s[%d]", RootKey, index)
	}
	if inc.File == "" {
		return "", errors.Newf("include at %s[%d] has no file", RootKey, index)
	}
	return inc.File, nil
}

// rawChangeSet mirrors a changeSet entry before its changes are decoded.
type rawChangeSet struct {
	ID      *string `mapstructure:"id"`
	Author  *string `mapstructure:"author"`
	Comment *string `mapstructure:"comment"`
	DBMS    any     `mapstructure:"dbms"`
	Changes []any   `mapstructure:"changes"`
}

func decodeEntry(key string, value any, path string, index int) (*ChangeSet, error) {
	if key != "changeSet" {
		return nil, errors.Newf("unexpected entry %q at %s[%d]", key, RootKey, index)
	}

	var raw rawChangeSet
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating decoder")
	}
	if err := dec.Decode(value); err != nil {
		return nil, errors.Wrapf(err, "changeSet at %s[%d]", RootKey, index)
	}

	cs := &ChangeSet{
		ID:      raw.ID,
		Author:  raw.Author,
		Comment: raw.Comment,
		Path:    path,
	}
	dbms, err := splitDBMS(raw.DBMS)
	if err != nil {
		return nil, errors.Wrapf(err, "changeSet at %s[%d]", RootKey, index)
	}
	cs.DBMS = dbms
	if raw.Changes != nil {
		cs.Changes = make([]change.Change, 0, len(raw.Changes))
	}
	for j, entry := range raw.Changes {
		where := fmt.Sprintf("%s[%d].changes[%d]", RootKey, index, j)
		name, attrs, err := single(entry, where)
		if err != nil {
			return nil, err
		}
		c, err := change.Decode(name, attrs)
		if err != nil {
			return nil, errors.Wrap(err, where)
		}
		cs.Changes = append(cs.Changes, c)
	}
	return cs, nil
}

// splitDBMS accepts "a, b" or a list of names.
func splitDBMS(v any) ([]string, error) {
	var parts []string
	switch dbms := v.(type) {
	case nil:
		return nil, nil
	case string:
		parts = strings.Split(dbms, ",")
	case []any:
		for _, item := range dbms {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Newf("dbms entries must be strings, got %T", item)
			}
			parts = append(parts, s)
		}
	default:
		return nil, errors.Newf("dbms must be a string or list, got %T", v)
	}

	var out []string
	for _, name := range parts {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}
