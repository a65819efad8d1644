package main

import (
	"bufio"
	_ "embed" // this is required in order for go:embed to work
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/kcsujeet/bdd-lazy-var-next/data"
	"github.com/kcsujeet/bdd-lazy-var-next/examples"
	"github.com/kcsujeet/bdd-lazy-var-next/framework"
	"github.com/kcsujeet/bdd-lazy-var-next/framework/bdd"
	"github.com/kcsujeet/bdd-lazy-var-next/framework/helpers"
	"github.com/kcsujeet/bdd-lazy-var-next/framework/ldtest"
	"github.com/kcsujeet/bdd-lazy-var-next/lazyvar"
	"github.com/kcsujeet/bdd-lazy-var-next/lazyvar/bddui"
)

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func main() {
	fmt.Printf("bdd-lazy-var v%s\n", strings.TrimSpace(versionString))

	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams, out io.Writer) (*ldtest.Results, error) {
	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return nil, err
		}
	}

	scenarios, err := loadScenarios(params.scenariosDir)
	if err != nil {
		return nil, err
	}

	mainDebugLogger := helpers.IfElse[framework.Logger](params.debugAll,
		log.New(out, "", log.LstdFlags), framework.NullLogger())

	runner := bdd.New()
	ui, get, err := examples.NewUI(examples.Dialect(params.dialect), func(options ...lazyvar.Option) (*bddui.UI, error) {
		return bddui.New(runner, bddui.Config{
			DebugLogger:     mainDebugLogger,
			FragileTracking: params.fragileTracking,
		}, options...)
	})
	if err != nil {
		return nil, err
	}
	examples.Define(ui, get, scenarios)

	testLogger, closeOutputs, err := makeTestLogger(params)
	if err != nil {
		return nil, err
	}
	defer closeOutputs()

	params.filters.Describe(out)
	results := ui.RunAll(ldtest.TestConfiguration{
		Filter:     params.filters,
		TestLogger: testLogger,
	})

	fmt.Fprintln(out)
	if logErr := testLogger.EndLog(results); logErr != nil {
		return nil, fmt.Errorf("error writing log: %v", logErr)
	}

	if params.recordFailures != "" {
		f, err := os.Create(params.recordFailures)
		if err != nil {
			return nil, fmt.Errorf("cannot create suppression file: %v", err)
		}
		for _, test := range results.Failures {
			fmt.Fprintln(f, test.TestID)
		}
		_ = f.Close()
	}

	return &results, nil
}

func loadScenarios(dir string) ([]data.Scenario, error) {
	scenarios, err := data.LoadScenarios()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return scenarios, nil
	}
	sources, err := data.LoadDirectory(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read scenarios directory: %w", err)
	}
	more, err := data.ParseScenarios(sources)
	if err != nil {
		return nil, err
	}
	return append(scenarios, more...), nil
}

func makeTestLogger(params commandParams) (ldtest.TestLogger, func(), error) {
	consoleLogger := ldtest.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	if params.jUnitFile == "" && params.jsonFile == "" {
		return consoleLogger, func() {}, nil
	}

	loggers := []ldtest.TestLogger{consoleLogger}
	closeOutputs := func() {}
	if params.jUnitFile != "" {
		loggers = append(loggers, ldtest.NewJUnitTestLogger(params.jUnitFile, "bdd-lazy-var", map[string]string{
			"version": strings.TrimSpace(versionString),
			"dialect": params.dialect,
		}))
	}
	if params.jsonFile != "" {
		f, err := os.Create(params.jsonFile)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot create JSON output file: %v", err)
		}
		loggers = append(loggers, ldtest.NewJSONTestLogger(f))
		closeOutputs = func() { _ = f.Close() }
	}
	return &ldtest.MultiTestLogger{Loggers: loggers}, closeOutputs, nil
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %v", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		// Ignore blank lines
		if strings.TrimSpace(line) == "" {
			continue
		}
		escaped := regexp.QuoteMeta(line)
		if err := params.filters.MustNotMatch.Set(escaped); err != nil {
			return fmt.Errorf("cannot parse suppression: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %v", err)
	}
	return nil
}
