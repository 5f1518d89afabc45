package io

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/autotype/pkg/animation"
	apperr "github.com/matzehuels/autotype/pkg/errors"
	"github.com/matzehuels/autotype/pkg/record"
)

// Pair is the content of a pair file.
type Pair struct {
	Start    *record.Record
	Target   *record.Record
	Autofill []animation.FillStep
}

// ReadRecord decodes a single YAML or JSON record from r.
// The document must be a mapping. ReadRecord does not close r.
func ReadRecord(r io.Reader) (*record.Record, error) {
	root, err := decodeDocument(r)
	if err != nil {
		return nil, err
	}
	return decodeRecord("", root)
}

// ImportRecord reads a record file at path.
func ImportRecord(path string) (*record.Record, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecord(f)
}

// ReadPair decodes a pair file from r.
//
// The document must be a mapping with "start" and "target" records and may
// carry an "autofill" list. Any other top-level key is an error. ReadPair does
// not check that start and target have the same shape; use
// [record.SameShape] for that.
func ReadPair(r io.Reader) (*Pair, error) {
	root, err := decodeDocument(r)
	if err != nil {
		return nil, err
	}
	if root.Kind != yaml.MappingNode {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "pair file must be a mapping")
	}

	pair := &Pair{}
	for i := 0; i < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, resolve(root.Content[i+1])
		switch key {
		case "start":
			if pair.Start, err = decodeRecord(key, val); err != nil {
				return nil, err
			}
		case "target":
			if pair.Target, err = decodeRecord(key, val); err != nil {
				return nil, err
			}
		case "autofill":
			if pair.Autofill, err = decodeAutofill(val); err != nil {
				return nil, err
			}
		default:
			return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unknown key %q in pair file (line %d)", key, root.Content[i].Line)
		}
	}

	if pair.Start == nil {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "pair file has no start record")
	}
	if pair.Target == nil {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "pair file has no target record")
	}
	return pair, nil
}

// ImportPair reads a pair file at path.
func ImportPair(path string) (*Pair, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPair(f)
}

func open(path string) (*os.File, error) {
	if err := apperr.ValidateRecordPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func decodeDocument(r io.Reader) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.New(apperr.ErrCodeInvalidFormat, "empty document")
		}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "empty document")
	}
	return resolve(doc.Content[0]), nil
}

func decodeAutofill(n *yaml.Node) ([]animation.FillStep, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "autofill must be a list (line %d)", n.Line)
	}
	steps := make([]animation.FillStep, 0, len(n.Content))
	for i, item := range n.Content {
		item = resolve(item)
		at := fmt.Sprintf("autofill[%d]", i)
		if item.Kind != yaml.MappingNode {
			return nil, apperr.New(apperr.ErrCodeInvalidFormat, "%s: must be a mapping (line %d)", at, item.Line)
		}
		var step animation.FillStep
		for j := 0; j < len(item.Content); j += 2 {
			key, val := item.Content[j].Value, resolve(item.Content[j+1])
			var err error
			switch key {
			case "path":
				step.Path, err = decodeString(at+".path", val)
			case "guard":
				step.Guard, err = decodeString(at+".guard", val)
			case "value":
				step.Value, err = decodeValue(at+".value", val)
			default:
				err = apperr.New(apperr.ErrCodeInvalidFormat, "%s: unknown key %q (line %d)", at, key, item.Content[j].Line)
			}
			if err != nil {
				return nil, err
			}
		}
		if step.Path == "" {
			return nil, apperr.New(apperr.ErrCodeInvalidFormat, "%s: path is required", at)
		}
		if step.Value == nil {
			return nil, apperr.New(apperr.ErrCodeInvalidFormat, "%s: value is required", at)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func decodeRecord(path string, n *yaml.Node) (*record.Record, error) {
	v, err := decodeValue(path, n)
	if err != nil {
		return nil, err
	}
	rec, ok := v.(*record.Record)
	if !ok {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "%s: expected a mapping, got %s", where(path), v.Kind())
	}
	return rec, nil
}

func decodeValue(path string, n *yaml.Node) (record.Value, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.MappingNode:
		rec := record.NewRecord()
		for i := 0; i < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, apperr.New(apperr.ErrCodeInvalidFormat, "%s: keys must be strings (line %d)", where(path), k.Line)
			}
			if _, dup := rec.Get(k.Value); dup {
				return nil, apperr.New(apperr.ErrCodeInvalidFormat, "%s: duplicate key (line %d)", where(join(path, k.Value)), k.Line)
			}
			v, err := decodeValue(join(path, k.Value), n.Content[i+1])
			if err != nil {
				return nil, err
			}
			rec.Set(k.Value, v)
		}
		return rec, nil

	case yaml.SequenceNode:
		list := record.NewList()
		for i, item := range n.Content {
			v, err := decodeValue(fmt.Sprintf("%s[%d]", path, i), item)
			if err != nil {
				return nil, err
			}
			list.Append(v)
		}
		return list, nil

	case yaml.ScalarNode:
		s, err := decodeString(path, n)
		if err != nil {
			return nil, err
		}
		return record.Text(s), nil

	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "%s: unexpected node (line %d)", where(path), n.Line)
	}
}

func decodeString(path string, n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", apperr.New(apperr.ErrCodeUnsupportedKind, "%s: unsupported value %q of type %s (line %d); quote it to store text",
			where(path), n.Value, n.ShortTag(), n.Line)
	}
	return n.Value, nil
}

// resolve follows aliases to the anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func where(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}
