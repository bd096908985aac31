package summary

import "fmt"

// Preset selects the target length and detail of a summary.
type Preset string

// Supported presets. The values double as the labels shown to users.
const (
	PresetShort    Preset = "Short (1-2 sentences)"
	PresetMedium   Preset = "Medium"
	PresetDetailed Preset = "Detailed"
)

// DefaultPreset is selected when the user has not chosen one.
const DefaultPreset = PresetMedium

var instructions = map[Preset]string{
	PresetShort:    "Write a very concise summary in 1-2 sentences, capturing only the main idea.",
	PresetMedium:   "Write a clear and coherent summary in a short paragraph, highlighting the key points.",
	PresetDetailed: "Write a detailed summary in multiple paragraphs, covering all important information with clear structure.",
}

// Presets returns the supported presets in display order.
func Presets() []Preset {
	return []Preset{PresetShort, PresetMedium, PresetDetailed}
}

// ParsePreset converts a preset label into a Preset.
// An empty label selects DefaultPreset.
func ParsePreset(s string) (Preset, error) {
	if s == "" {
		return DefaultPreset, nil
	}
	p := Preset(s)
	if _, ok := instructions[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, s)
	}
	return p, nil
}

// String returns the preset label.
func (p Preset) String() string {
	return string(p)
}

// Instruction returns the natural-language length instruction for the preset.
func (p Preset) Instruction() (string, error) {
	instr, ok := instructions[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, string(p))
	}
	return instr, nil
}
