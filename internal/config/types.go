package config

// CycleFile is the YAML description of a cycle, as consumed by
// `lightcycle encode` and produced by `lightcycle inspect --format yaml`.
type CycleFile struct {
	Name  string     `yaml:"name,omitempty"`
	Steps []StepSpec `yaml:"steps"`
}

// StepSpec describes one step. Lights maps a position name (top, right,
// left, bottom) to the colours that are on; omitted lights are dark.
type StepSpec struct {
	Duration int                 `yaml:"duration"`
	Lights   map[string][]string `yaml:"lights,omitempty"`
}
