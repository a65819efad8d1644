package data

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/kcsujeet/bdd-lazy-var-next/framework/opt"
)

// ScenariosPath is the directory under data/data-files holding the built-in scenarios.
const ScenariosPath = "scenarios"

// Scenario is a suite of lazy variable definitions and checks described by a data file rather
// than by Go code.
type Scenario struct {
	Source SourceInfo      `json:"-"`
	Suite  SuiteDescriptor `json:"suite"`
}

// SuiteDescriptor describes one suite. Suites nest the same way as describe blocks.
type SuiteDescriptor struct {
	Title   string            `json:"title"`
	Skip    bool              `json:"skip"`
	Subject *DefDescriptor    `json:"subject"`
	Defs    []DefDescriptor   `json:"defs"`
	Tests   []TestDescriptor  `json:"tests"`
	Suites  []SuiteDescriptor `json:"suites"`
}

// DefDescriptor describes a lazy variable. Exactly one of Value and Template is used: a Template
// is a string in which "{{name}}" is replaced by the value of the variable called name, evaluated
// lazily. A template of a variable that refers to its own name refers to the parent definition.
type DefDescriptor struct {
	Name     string            `json:"name"`
	Aliases  []string          `json:"aliases"`
	Value    interface{}       `json:"value"`
	Template opt.Maybe[string] `json:"template"`
}

// TestDescriptor describes a test that compares a variable with an expected value. With no Get,
// the variable is the subject; Path is a JMESPath expression inside the subject.
type TestDescriptor struct {
	Title  string      `json:"title"`
	Skip   bool        `json:"skip"`
	Get    string      `json:"get"`
	Path   string      `json:"path"`
	Equals interface{} `json:"equals"`
}

// Title returns the suite title, or a title made from the file name and parameters if the file
// did not provide one.
func (s Scenario) Title() string {
	if s.Suite.Title != "" {
		return s.Suite.Title
	}
	title := strings.TrimSuffix(s.Source.BaseName, path.Ext(s.Source.BaseName))
	if params := s.Source.ParamsString(); params != "" {
		title += " " + params
	}
	return title
}

// ParseScenario parses and validates one SourceInfo.
func ParseScenario(source SourceInfo) (Scenario, error) {
	s := Scenario{Source: source}
	if err := source.ParseInto(&s); err != nil {
		return Scenario{}, err
	}
	if err := s.Suite.validate(); err != nil {
		return Scenario{}, fmt.Errorf("invalid scenario %q %s: %w", source.BaseName, source.ParamsString(), err)
	}
	return s, nil
}

// ParseScenarios parses every SourceInfo, stopping at the first error.
func ParseScenarios(sources []SourceInfo) ([]Scenario, error) {
	ret := make([]Scenario, 0, len(sources))
	for _, source := range sources {
		s, err := ParseScenario(source)
		if err != nil {
			return nil, err
		}
		ret = append(ret, s)
	}
	return ret, nil
}

// LoadScenarios reads the built-in scenarios.
func LoadScenarios() ([]Scenario, error) {
	sources, err := LoadAllDataFiles(ScenariosPath)
	if err != nil {
		return nil, err
	}
	return ParseScenarios(sources)
}

func (s SuiteDescriptor) validate() error {
	if s.Subject != nil {
		if err := s.Subject.validate(); err != nil {
			return fmt.Errorf("subject: %w", err)
		}
	}
	for _, d := range s.Defs {
		if d.Name == "" {
			return errors.New("a variable must have a name")
		}
		if err := d.validate(); err != nil {
			return fmt.Errorf("variable %q: %w", d.Name, err)
		}
	}
	for _, child := range s.Suites {
		if err := child.validate(); err != nil {
			return fmt.Errorf("%q: %w", child.Title, err)
		}
	}
	return nil
}

func (d DefDescriptor) validate() error {
	if d.Template.IsDefined() && d.Value != nil {
		return errors.New("cannot have both a value and a template")
	}
	return nil
}
