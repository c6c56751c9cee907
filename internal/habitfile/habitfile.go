// Package habitfile reads and writes habit collections as YAML documents.
//
// A document looks like:
//
//	habits:
//	  - name: Exercise
//	    frequency: daily
//	    start_date: "2024-06-01"
//	    completed: ["2024-06-01", "2024-06-02"]
//
// Documents are checked against an embedded CUE schema before decoding.
// Completion strings are passed through untouched in Habit.Pending and are
// parsed later by the engine.
package habitfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/roach88/habits/internal/habit"
)

//go:embed schema.cue
var schemaSource string

// ErrInvalidFile is wrapped by every validation failure.
var ErrInvalidFile = errors.New("invalid habit file")

// ValidationError describes the first schema violation in a document.
type ValidationError struct {
	File    string
	Message string
	Pos     token.Pos // zero when no position in File is known
}

func (e *ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidFile }

type document struct {
	Habits []entry `yaml:"habits"`
}

type entry struct {
	Name      string   `yaml:"name"`
	Frequency string   `yaml:"frequency"`
	StartDate string   `yaml:"start_date,omitempty"`
	Completed []string `yaml:"completed,omitempty"`
}

// Load reads and decodes the habit file at path.
func Load(path string, clock habit.Clock) ([]*habit.Habit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading habit file: %w", err)
	}
	return decode(path, data, clock)
}

// Decode validates and decodes a habit document. Habits without a start
// date start today according to clock.
func Decode(data []byte, clock habit.Clock) ([]*habit.Habit, error) {
	return decode("habits.yaml", data, clock)
}

func decode(filename string, data []byte, clock habit.Clock) ([]*habit.Habit, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	if err := validate(filename, data); err != nil {
		return nil, err
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	list := &habit.List{}
	for i, e := range doc.Habits {
		freq, err := habit.ParseFrequency(e.Frequency)
		if err != nil {
			return nil, fmt.Errorf("%w: habits[%d]: %w", ErrInvalidFile, i, err)
		}

		var start habit.Date
		if e.StartDate != "" {
			start, err = habit.ParseDate(e.StartDate)
			if err != nil {
				return nil, fmt.Errorf("%w: habits[%d].start_date: %w", ErrInvalidFile, i, err)
			}
		}

		h, err := habit.New(e.Name, freq, start, clock)
		if err != nil {
			return nil, fmt.Errorf("%w: habits[%d]: %w", ErrInvalidFile, i, err)
		}
		h.Pending = append(h.Pending, e.Completed...)

		if err := list.Add(h); err != nil {
			return nil, fmt.Errorf("%w: habits[%d]: %w", ErrInvalidFile, i, err)
		}
	}

	return list.All(), nil
}

// validate unifies the YAML document with #File from the embedded schema.
func validate(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling habit schema: %w", err)
	}
	fileDef := schema.LookupPath(cue.ParsePath("#File"))

	f, err := cueyaml.Extract(filename, data)
	if err != nil {
		return &ValidationError{File: filename, Message: "malformed YAML: " + firstCUEMessage(err)}
	}

	value := ctx.BuildFile(f)
	if err := value.Err(); err != nil {
		return formatCUEError(filename, err)
	}

	if err := fileDef.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(filename, err)
	}
	return nil
}

// formatCUEError keeps the first error and its first position inside the
// document. Positions in the schema itself are skipped.
func formatCUEError(filename string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{File: filename, Message: err.Error()}
	}

	first := errs[0]
	verr := &ValidationError{File: filename, Message: first.Error()}
	for _, pos := range cueerrors.Positions(first) {
		if pos.Filename() == filename {
			verr.Pos = pos
			break
		}
	}
	return verr
}

func firstCUEMessage(err error) string {
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		return errs[0].Error()
	}
	return err.Error()
}

// Encode renders habits as a YAML document. Completed dates are written in
// ascending order followed by any still-pending raw strings.
func Encode(habits []*habit.Habit) ([]byte, error) {
	doc := document{Habits: make([]entry, 0, len(habits))}
	for _, h := range habits {
		if h == nil {
			continue
		}
		dates := slices.Clone(h.Completed)
		slices.SortFunc(dates, habit.Date.Compare)
		dates = slices.CompactFunc(dates, habit.Date.Equal)

		completed := make([]string, 0, len(dates)+len(h.Pending))
		for _, d := range dates {
			completed = append(completed, d.String())
		}
		completed = append(completed, h.Pending...)

		e := entry{
			Name:      h.Name,
			Frequency: h.Frequency.String(),
			Completed: completed,
		}
		if !h.StartDate.IsZero() {
			e.StartDate = h.StartDate.String()
		}
		doc.Habits = append(doc.Habits, e)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding habits: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding habits: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes habits to path, replacing any existing file.
func Save(path string, habits []*habit.Habit) error {
	data, err := Encode(habits)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing habit file: %w", err)
	}
	return nil
}
