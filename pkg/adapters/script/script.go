// Package script reads tutorial scripts from YAML or JSON.
//
// A script is either a bare list of actions or a document with a name, a
// description and an actions list. Each action may be written in full or as a
// single-key shorthand:
//
//	name: hello
//	actions:
//	  - name: file-explorer-create-file
//	    value: src/hello.js
//	  - file-explorer-open-file: src/hello.js
//	  - editor-type: |-
//	      console.log('hello');
//	  - editor-save
//
// Non-string values (counts written as numbers) are converted to strings.
package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder used for raw script data.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Script is a named, ordered list of actions.
type Script struct {
	Name        string          `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Actions     []domain.Action `json:"actions" yaml:"actions" mapstructure:"-"`
}

// document is the long form of a script file.
type document struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Actions     []any  `mapstructure:"actions"`
}

// FormatOf picks the format from a file extension. Anything but .json is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes a script from raw data.
func Parse(data []byte, format Format) (*Script, error) {
	var raw any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json script: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml script: %w", err)
		}
	}
	return Decode(raw)
}

// Decode builds a script from generic decoded data (lists and maps).
func Decode(raw any) (*Script, error) {
	switch v := raw.(type) {
	case nil:
		return &Script{Actions: []domain.Action{}}, nil
	case []any:
		actions, err := decodeActions(v)
		if err != nil {
			return nil, err
		}
		return &Script{Actions: actions}, nil
	case map[string]any:
		var doc document
		if err := weakDecode(v, &doc); err != nil {
			return nil, fmt.Errorf("invalid script document: %w", err)
		}
		actions, err := decodeActions(doc.Actions)
		if err != nil {
			return nil, err
		}
		return &Script{Name: doc.Name, Description: doc.Description, Actions: actions}, nil
	default:
		return nil, fmt.Errorf("invalid script: expected a list or a document, got %T", raw)
	}
}

func decodeActions(items []any) ([]domain.Action, error) {
	actions := make([]domain.Action, 0, len(items))
	for i, item := range items {
		a, err := decodeAction(item)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func decodeAction(item any) (domain.Action, error) {
	var a domain.Action
	switch v := item.(type) {
	case string:
		// Bare name, e.g. "- editor-save".
		a.Name = v
	case map[string]any:
		if _, full := v["name"]; !full {
			if _, ok := v["value"]; ok {
				return a, fmt.Errorf("action missing name")
			}
			if len(v) != 1 {
				return a, fmt.Errorf("shorthand action must have exactly one key, got %d", len(v))
			}
			for name, value := range v {
				v = map[string]any{"name": name, "value": value}
			}
		}
		if err := weakDecode(v, &a); err != nil {
			return a, err
		}
	default:
		return a, fmt.Errorf("invalid action type: %T", item)
	}

	if a.Name == "" {
		return a, fmt.Errorf("action missing name")
	}
	return a, nil
}

func weakDecode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Validate checks every action against the vocabulary without applying it.
// All problems are reported, each as a *domain.ActionError.
func Validate(actions []domain.Action) error {
	var errs []error
	for i, a := range actions {
		if _, err := domain.Parse(a); err != nil {
			errs = append(errs, &domain.ActionError{Index: i, Action: a, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Loader implements ports.ScriptLoader for files on disk.
// Relative sources are resolved against BasePath.
type Loader struct {
	BasePath string
}

// NewLoader creates a file loader rooted at basePath.
func NewLoader(basePath string) *Loader {
	return &Loader{BasePath: basePath}
}

// Load reads the actions of the script at source.
func (l *Loader) Load(source string) ([]domain.Action, error) {
	s, err := l.LoadScript(source)
	if err != nil {
		return nil, err
	}
	return s.Actions, nil
}

// LoadScript reads the whole script at source, including its name.
// Scripts without a name are named after the file.
func (l *Loader) LoadScript(source string) (*Script, error) {
	path := source
	if !filepath.IsAbs(path) && l.BasePath != "" {
		path = filepath.Join(l.BasePath, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	s, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s, nil
}
