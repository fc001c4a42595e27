package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thruflo/lightcycle/internal/cycle"
	"github.com/thruflo/lightcycle/internal/lights"
)

// MaxCycleSteps is the number of steps a cycle file may hold; the terminator
// occupies the last of the cycle.MaxSteps words.
const MaxCycleSteps = cycle.MaxSteps - 1

// ValidationError represents a cycle file validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// LoadCycleFile reads, parses and validates a YAML cycle file.
func LoadCycleFile(path string) (*CycleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("cycle file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read cycle file: %w", err)
	}
	return ParseCycleFile(data)
}

// ParseCycleFile parses and validates YAML cycle data. Unknown keys are
// rejected.
func ParseCycleFile(data []byte) (*CycleFile, error) {
	var cf CycleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("failed to parse cycle file: %w", err)
	}

	if err := ValidateCycleFile(&cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// ValidateCycleFile checks step count, durations and light names.
func ValidateCycleFile(cf *CycleFile) error {
	if len(cf.Steps) == 0 {
		return ValidationError{Field: "steps", Message: "at least one step is required"}
	}
	if len(cf.Steps) > MaxCycleSteps {
		return ValidationError{Field: "steps", Message: fmt.Sprintf("at most %d steps are allowed, got %d", MaxCycleSteps, len(cf.Steps))}
	}

	for i, s := range cf.Steps {
		if s.Duration < 1 || s.Duration > cycle.MaxDuration {
			return ValidationError{
				Field:   fmt.Sprintf("steps[%d].duration", i),
				Message: fmt.Sprintf("must be between 1 and %d seconds", cycle.MaxDuration),
			}
		}
		for pos, colors := range s.Lights {
			if _, err := lights.ParsePosition(pos); err != nil {
				return ValidationError{Field: fmt.Sprintf("steps[%d].lights", i), Message: err.Error()}
			}
			for _, c := range colors {
				if _, err := lights.ParseColor(c); err != nil {
					return ValidationError{Field: fmt.Sprintf("steps[%d].lights.%s", i, pos), Message: err.Error()}
				}
			}
		}
	}
	return nil
}

// CycleSteps converts a validated cycle file into decoded steps.
func (cf *CycleFile) CycleSteps() ([]cycle.Step, error) {
	steps := make([]cycle.Step, 0, len(cf.Steps))
	for i, s := range cf.Steps {
		var bulbs lights.BulbSet
		for name, colors := range s.Lights {
			pos, err := lights.ParsePosition(name)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			for _, c := range colors {
				col, err := lights.ParseColor(c)
				if err != nil {
					return nil, fmt.Errorf("step %d: %w", i, err)
				}
				bulbs = bulbs.With(pos, col)
			}
		}

		step, err := cycle.NewStep(s.Duration, bulbs)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// FromSteps describes decoded steps as a cycle file. Dark lights are omitted.
func FromSteps(name string, steps []cycle.Step) *CycleFile {
	cf := &CycleFile{Name: name, Steps: make([]StepSpec, 0, len(steps))}
	for _, s := range steps {
		spec := StepSpec{Duration: s.Duration}
		for _, p := range lights.Positions {
			var on []string
			for _, c := range lights.Colors {
				if s.Bulbs.Has(p, c) {
					on = append(on, c.String())
				}
			}
			if len(on) > 0 {
				if spec.Lights == nil {
					spec.Lights = make(map[string][]string)
				}
				spec.Lights[p.String()] = on
			}
		}
		cf.Steps = append(cf.Steps, spec)
	}
	return cf
}

// Marshal encodes the cycle file as YAML.
func (cf *CycleFile) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cf); err != nil {
		return nil, fmt.Errorf("failed to encode cycle file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode cycle file: %w", err)
	}
	return buf.Bytes(), nil
}
