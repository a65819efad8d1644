package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kcsujeet/bdd-lazy-var-next/examples"
	"github.com/kcsujeet/bdd-lazy-var-next/framework/helpers"
	"github.com/kcsujeet/bdd-lazy-var-next/framework/ldtest"

	yaml "gopkg.in/yaml.v3"
)

type commandParams struct {
	configFile      string
	filters         ldtest.RegexFilters
	skipFile        string
	debug           bool
	debugAll        bool
	jUnitFile       string
	jsonFile        string
	dialect         string
	scenariosDir    string
	recordFailures  string
	fragileTracking bool
}

// fileConfig is the format of the file given by -config. Every field corresponds to the flag of
// the same name; a flag given on the command line takes precedence.
type fileConfig struct {
	Run             []string `yaml:"run"`
	Skip            []string `yaml:"skip"`
	SkipFile        string   `yaml:"skip-file"`
	Debug           bool     `yaml:"debug"`
	DebugAll        bool     `yaml:"debug-all"`
	JUnit           string   `yaml:"junit"`
	JSON            string   `yaml:"json"`
	Dialect         string   `yaml:"dialect"`
	Scenarios       string   `yaml:"scenarios"`
	RecordFailures  string   `yaml:"record-failures"`
	FragileTracking bool     `yaml:"fragile-tracking"`
}

func (c *commandParams) Read(args []string) bool {
	if err := c.read(args, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	return true
}

func (c *commandParams) read(args []string, errOut io.Writer) error {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.configFile, "config", "", "read settings from a YAML file")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.skipFile, "skip-file", "", "file with test IDs to skip, one per line")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.StringVar(&c.jsonFile, "json", "", "write JSON lines output to the specified path")
	fs.StringVar(&c.dialect, "dialect", string(examples.BDDDialect), "variable access dialect: bdd, getter or global")
	fs.StringVar(&c.scenariosDir, "scenarios", "", "directory of additional scenario files")
	fs.StringVar(&c.recordFailures, "record-failures", "", "write the IDs of failed tests to the specified path")
	fs.BoolVar(&c.fragileTracking, "fragile-tracking", false, "do not restore the defining suite when a suite body panics")

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if c.configFile != "" {
		setOnCommandLine := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { setOnCommandLine[f.Name] = true })
		if err := c.applyConfigFile(setOnCommandLine); err != nil {
			return err
		}
	}
	if !helpers.SliceContains(examples.Dialect(c.dialect), examples.AllDialects) {
		return fmt.Errorf("unknown dialect %q", c.dialect)
	}
	return nil
}

func (c *commandParams) applyConfigFile(setOnCommandLine map[string]bool) error {
	data, err := os.ReadFile(c.configFile)
	if err != nil {
		return fmt.Errorf("cannot read config file: %w", err)
	}
	var config fileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("cannot parse config file %q: %w", c.configFile, err)
	}

	if !setOnCommandLine["run"] {
		for _, p := range config.Run {
			if err := c.filters.MustMatch.Set(p); err != nil {
				return fmt.Errorf("config file: run: %w", err)
			}
		}
	}
	if !setOnCommandLine["skip"] {
		for _, p := range config.Skip {
			if err := c.filters.MustNotMatch.Set(p); err != nil {
				return fmt.Errorf("config file: skip: %w", err)
			}
		}
	}
	setString := func(name string, target *string, value string) {
		if !setOnCommandLine[name] && value != "" {
			*target = value
		}
	}
	setBool := func(name string, target *bool, value bool) {
		if !setOnCommandLine[name] && value {
			*target = value
		}
	}
	setString("skip-file", &c.skipFile, config.SkipFile)
	setBool("debug", &c.debug, config.Debug)
	setBool("debug-all", &c.debugAll, config.DebugAll)
	setString("junit", &c.jUnitFile, config.JUnit)
	setString("json", &c.jsonFile, config.JSON)
	setString("dialect", &c.dialect, config.Dialect)
	setString("scenarios", &c.scenariosDir, config.Scenarios)
	setString("record-failures", &c.recordFailures, config.RecordFailures)
	setBool("fragile-tracking", &c.fragileTracking, config.FragileTracking)
	return nil
}
