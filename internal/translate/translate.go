package translate

import (
	"bytes"
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/changelint/internal/changelog"
	"github.com/thoreinstein/changelint/internal/errors"
)

// Convert re-encodes a changelog document from one format to another.
// The document is decoded into generic maps, so map keys come out sorted
// and comments are dropped. Null values are removed because TOML cannot
// express them.
func Convert(data []byte, from, to changelog.Format) ([]byte, error) {
	doc, err := decode(data, from)
	if err != nil {
		return nil, err
	}
	if _, ok := doc.(map[string]any)[changelog.RootKey]; !ok {
		return nil, errors.Newf("document has no %s key", changelog.RootKey)
	}
	if to == changelog.FormatTOML {
		doc = dropNulls(doc)
	}
	return encode(doc, to)
}

func decode(data []byte, format changelog.Format) (any, error) {
	var doc map[string]any
	switch format {
	case changelog.FormatYAML, changelog.FormatJSON:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrapf(err, "unmarshaling %s", format)
		}
	case changelog.FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "unmarshaling toml")
		}
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "%q", string(format))
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func encode(doc any, format changelog.Format) ([]byte, error) {
	switch format {
	case changelog.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, "marshaling yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "marshaling yaml")
		}
		return buf.Bytes(), nil
	case changelog.FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshaling json")
		}
		return append(out, '\n'), nil
	case changelog.FormatTOML:
		out, err := toml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling toml")
		}
		return out, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "%q", string(format))
	}
}

// dropNulls returns v with nil map entries and nil list items removed.
func dropNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			if item != nil {
				out[k] = dropNulls(item)
			}
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			if item != nil {
				out = append(out, dropNulls(item))
			}
		}
		return out
	default:
		return v
	}
}
