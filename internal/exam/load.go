package exam

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the exam file format major version this build reads.
const SupportedMajor = "v1"

// Load reads and validates an exam file.
func Load(path string) (*Exam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exam file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates exam YAML.
func Parse(data []byte) (*Exam, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidExam, err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExam, err)
	}

	var e Exam
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: decode exam: %v", ErrInvalidExam, err)
	}

	if err := checkFormat(e.Format); err != nil {
		return nil, err
	}

	d, err := time.ParseDuration(e.Duration)
	if err != nil {
		return nil, fmt.Errorf("%w: duration %q: %v", ErrInvalidExam, e.Duration, err)
	}
	if d < time.Second {
		return nil, fmt.Errorf("%w: duration %q must be at least 1s", ErrInvalidExam, e.Duration)
	}
	e.TimeLimit = d

	seen := make(map[string]bool, len(e.Questions))
	for i, q := range e.Questions {
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: question %d: duplicate id %q", ErrInvalidExam, i+1, q.ID)
		}
		seen[q.ID] = true
		if err := trimChoices(&e.Questions[i]); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidExam, i+1, err)
		}
	}

	return &e, nil
}

// trimChoices strips surrounding whitespace from choices so they match
// trimmed answers. Choices that become blank or equal are rejected.
func trimChoices(q *Question) error {
	seen := make(map[string]bool, len(q.Choices))
	for j, c := range q.Choices {
		c = strings.TrimSpace(c)
		if c == "" {
			return fmt.Errorf("choice %d is blank", j+1)
		}
		if seen[c] {
			return fmt.Errorf("duplicate choice %q", c)
		}
		seen[c] = true
		q.Choices[j] = c
	}
	return nil
}

// checkFormat accepts semver strings with the supported major version.
func checkFormat(format string) error {
	if !semver.IsValid(format) {
		return fmt.Errorf("%w: format %q is not a semantic version (e.g. v1.0.0)", ErrInvalidExam, format)
	}
	if major := semver.Major(format); major != SupportedMajor {
		return fmt.Errorf("%w: format %s is not supported (want %s.x)", ErrInvalidExam, semver.Canonical(format), SupportedMajor)
	}
	return nil
}
