package model

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a validation finding blocks
// placement or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks placement
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Element  string             // offending element ID (empty if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Element, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Element string
	Message string
}

func (w ValidationWarning) String() string {
	if w.Element == "" {
		return "[warning] " + w.Message
	}
	return fmt.Sprintf("[warning] %s: %s", w.Element, w.Message)
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether the scene has no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks a scene before walls are turned into solids and conduits
// are placed. It is read-only and never mutates the scene.
func Validate(s *Scene) ValidationResult {
	var r ValidationResult
	if s == nil {
		r.Errors = append(r.Errors, ValidationError{Message: "no scene", Severity: SeverityError})
		return r
	}

	r.Errors = append(r.Errors, validateWallDimensions(s)...)
	r.Errors = append(r.Errors, validateWallLevels(s)...)
	r.Errors = append(r.Errors, validateSections(s)...)

	r.Warnings = append(r.Warnings, validateSlopedBaselines(s)...)
	r.Warnings = append(r.Warnings, validateDegenerateRuns(s)...)
	r.Warnings = append(r.Warnings, validateEmptyLevels(s)...)
	return r
}

// validateWallDimensions checks that every wall has a non-zero baseline and
// positive thickness and height.
func validateWallDimensions(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, w := range s.Walls {
		if w.Baseline().Length() <= 0 {
			errs = append(errs, ValidationError{
				Element:  string(w.ID),
				Message:  "wall baseline has zero length",
				Severity: SeverityError,
			})
		}
		if w.Thickness <= 0 {
			errs = append(errs, ValidationError{
				Element:  string(w.ID),
				Message:  fmt.Sprintf("wall thickness is %.4f, must be positive", w.Thickness),
				Severity: SeverityError,
			})
		}
		if w.Height <= 0 {
			errs = append(errs, ValidationError{
				Element:  string(w.ID),
				Message:  fmt.Sprintf("wall height is %.4f, must be positive", w.Height),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateWallLevels checks that every wall is hosted on a declared level,
// since each opening inherits its wall's level.
func validateWallLevels(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, w := range s.Walls {
		if w.Level == "" {
			errs = append(errs, ValidationError{
				Element:  string(w.ID),
				Message:  "wall has no level",
				Severity: SeverityError,
			})
			continue
		}
		if s.Level(w.Level) == nil {
			errs = append(errs, ValidationError{
				Element:  string(w.ID),
				Message:  fmt.Sprintf("wall references unknown level %q", w.Level),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateSections checks duct and pipe section dimensions.
func validateSections(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, c := range s.Conduits {
		var msg string
		switch sec := c.Section.(type) {
		case RectSection:
			if sec.Width <= 0 || sec.Height <= 0 {
				msg = fmt.Sprintf("duct section %.4fx%.4f, both sides must be positive", sec.Width, sec.Height)
			}
		case RoundSection:
			if sec.Diameter <= 0 {
				msg = fmt.Sprintf("pipe diameter is %.4f, must be positive", sec.Diameter)
			}
		default:
			msg = "conduit has no cross-section"
		}
		if msg != "" {
			errs = append(errs, ValidationError{
				Element:  string(c.ID),
				Message:  msg,
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateSlopedBaselines warns about walls whose end point is at a
// different elevation than the start; the wall is built level at Start.Z.
func validateSlopedBaselines(s *Scene) []ValidationWarning {
	var warnings []ValidationWarning
	for _, w := range s.Walls {
		if math.Abs(w.End.Z-w.Start.Z) > 1e-9 {
			warnings = append(warnings, ValidationWarning{
				Element: string(w.ID),
				Message: fmt.Sprintf("baseline end elevation %.4f ignored, wall built at %.4f", w.End.Z, w.Start.Z),
			})
		}
	}
	return warnings
}

// validateDegenerateRuns warns about conduits that placement will skip.
func validateDegenerateRuns(s *Scene) []ValidationWarning {
	var warnings []ValidationWarning
	for _, c := range s.Conduits {
		if c.Length <= 0 {
			warnings = append(warnings, ValidationWarning{
				Element: string(c.ID),
				Message: "conduit has zero length and will be skipped",
			})
		}
	}
	return warnings
}

// validateEmptyLevels warns about levels that host no wall.
func validateEmptyLevels(s *Scene) []ValidationWarning {
	used := make(map[LevelID]bool, len(s.Levels))
	for _, w := range s.Walls {
		used[w.Level] = true
	}
	var warnings []ValidationWarning
	for _, l := range s.Levels {
		if !used[l.ID] {
			warnings = append(warnings, ValidationWarning{
				Element: string(l.ID),
				Message: "level hosts no walls",
			})
		}
	}
	return warnings
}
