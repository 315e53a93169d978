package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// Strictnesses lists the levels in the order offered by init
var Strictnesses = []Strictness{StrictnessStandard, StrictnessRelaxed, StrictnessStrict}

// StrictnessPreset holds threshold values for different strictness levels
type StrictnessPreset struct {
	Description         string
	LongMethodLines     int
	VeryLongMethodLines int
	MaxParameters       int
	MaxNestingDepth     int
	LargeClassMethods   int
	ComplexityThreshold int
	HighComplexity      int
	SRPMaxMethods       int
}

// GetStrictnessPresets returns presets for different strictness levels.
// The standard preset equals the built-in defaults.
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			Description:         "Legacy code bases; only flag the worst offenders",
			LongMethodLines:     40,
			VeryLongMethodLines: 100,
			MaxParameters:       7,
			MaxNestingDepth:     6,
			LargeClassMethods:   25,
			ComplexityThreshold: 15,
			HighComplexity:      25,
			SRPMaxMethods:       15,
		},
		StrictnessStandard: {
			Description:         "Recommended defaults",
			LongMethodLines:     DefaultLongMethodLines,
			VeryLongMethodLines: DefaultVeryLongMethodLines,
			MaxParameters:       DefaultMaxParameters,
			MaxNestingDepth:     DefaultMaxNestingDepth,
			LargeClassMethods:   DefaultLargeClassMethods,
			ComplexityThreshold: DefaultComplexityThreshold,
			HighComplexity:      DefaultHighComplexityThreshold,
			SRPMaxMethods:       DefaultSRPMaxMethods,
		},
		StrictnessStrict: {
			Description:         "New code held to a tight standard",
			LongMethodLines:     15,
			VeryLongMethodLines: 30,
			MaxParameters:       4,
			MaxNestingDepth:     3,
			LargeClassMethods:   10,
			ComplexityThreshold: 8,
			HighComplexity:      12,
			SRPMaxMethods:       8,
		},
	}
}

// ParseStrictness converts a user supplied level name
func ParseStrictness(s string) (Strictness, error) {
	level := Strictness(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := GetStrictnessPresets()[level]; !ok {
		return "", fmt.Errorf("unknown strictness '%s', must be one of: relaxed, standard, strict", s)
	}
	return level, nil
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(strictness Strictness) string {
	preset, ok := GetStrictnessPresets()[strictness]
	if !ok {
		preset = GetStrictnessPresets()[StrictnessStandard]
		strictness = StrictnessStandard
	}
	itoa := strconv.Itoa

	return `# pyreview configuration (strictness: ` + string(strictness) + `)
# Findings are raised when a measured value exceeds the threshold.

# ============================================================================
# CODE QUALITY
# ============================================================================
quality:
  # Naming rules (regular expressions)
  function_name_pattern: '` + DefaultFunctionNamePattern + `'
  class_name_pattern: '` + DefaultClassNamePattern + `'

  # Function size and shape
  long_method_lines: ` + itoa(preset.LongMethodLines) + `
  very_long_method_lines: ` + itoa(preset.VeryLongMethodLines) + `
  max_parameters: ` + itoa(preset.MaxParameters) + `
  max_nesting_depth: ` + itoa(preset.MaxNestingDepth) + `

  # Class size
  large_class_methods: ` + itoa(preset.LargeClassMethods) + `
  large_class_lines: ` + itoa(DefaultLargeClassLines) + `

  # Cyclomatic complexity per function
  complexity_threshold: ` + itoa(preset.ComplexityThreshold) + `
  high_complexity: ` + itoa(preset.HighComplexity) + `

  # Repeated lines longer than duplicate_min_length characters
  duplicate_min_length: ` + itoa(DefaultDuplicateMinLength) + `
  duplicate_occurrences: ` + itoa(DefaultDuplicateMinOccurrences) + `

  # Score deduction per finding
  weights:
    critical: 10
    high: 5
    medium: 2
    low: 1

# ============================================================================
# DESIGN PATTERNS
# ============================================================================
patterns:
  god_object_methods: ` + itoa(DefaultGodObjectMethods) + `
  god_object_lines: ` + itoa(DefaultGodObjectLines) + `
  spaghetti_nesting_depth: ` + itoa(DefaultSpaghettiNestingDepth) + `
  copy_paste_min_length: ` + itoa(DefaultCopyPasteMinLength) + `

# ============================================================================
# DESIGN PRINCIPLES
# ============================================================================
principles:
  srp_max_methods: ` + itoa(preset.SRPMaxMethods) + `
  srp_max_concerns: ` + itoa(DefaultSRPMaxConcerns) + `
  ocp_max_chain_length: ` + itoa(DefaultOCPMaxChainLength) + `
  isp_max_abstract_methods: ` + itoa(DefaultISPMaxAbstractMethods) + `
  dip_allowed_calls: [Exception, ValueError, TypeError]

# ============================================================================
# ANALYSIS SCOPE
# ============================================================================
analysis:
  # Glob patterns matched against file names and paths relative to the target
  exclude_patterns: []
  # Skip files ignored by the target's .gitignore
  respect_gitignore: false

output:
  # text, json or yaml
  format: text

performance:
  max_goroutines: 4
  timeout_seconds: 300
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# pyreview configuration (minimal)
quality:
  long_method_lines: ` + strconv.Itoa(DefaultLongMethodLines) + `
  max_nesting_depth: ` + strconv.Itoa(DefaultMaxNestingDepth) + `
  complexity_threshold: ` + strconv.Itoa(DefaultComplexityThreshold) + `

analysis:
  exclude_patterns: []
`
}
