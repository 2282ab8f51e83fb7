package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/umlsvg/pkg/errors"
	"github.com/matzehuels/umlsvg/pkg/graph"
)

// InputKind tells model input from layout input.
type InputKind int

const (
	InputModel InputKind = iota
	InputLayout
)

// DetectInput classifies data: a JSON object is a layout, anything else a
// YAML model.
func DetectInput(data []byte) InputKind {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return InputLayout
	}
	return InputModel
}

// SetInput stores data as the model or layout input of o.
func (o *Options) SetInput(data []byte, kind InputKind) error {
	o.Model, o.Layout = nil, nil
	if kind == InputModel {
		o.Model = data
		return nil
	}
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidLayout, err, "parse layout")
	}
	o.Layout = &l
	return nil
}

// LoadInput reads the file at path into o. Files ending in .json are
// layouts, .yaml and .yml files are models; other extensions are sniffed.
func (o *Options) LoadInput(path string) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errs.Wrap(errs.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return o.SetInput(data, InputLayout)
	case ".yaml", ".yml":
		return o.SetInput(data, InputModel)
	default:
		return o.SetInput(data, DetectInput(data))
	}
}
