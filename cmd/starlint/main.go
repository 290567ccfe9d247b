package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/starforge/starlint/internal/linter"
	"github.com/starforge/starlint/internal/logging"
	"github.com/starforge/starlint/internal/rules"
	"github.com/starforge/starlint/internal/version"
)

// Exit codes
const (
	exitOK      = 0
	exitError   = 1
	exitWarning = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		enableFlag         string
		disableFlag        string
		configFlag         string
		formatFlag         string
		listRulesFlag      bool
		listCategoriesFlag bool
		explainFlag        string
		versionFlag        bool
		watchFlag          bool
		verbosity          int
	)

	fs := flag.NewFlagSet("starlint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&enableFlag, "enable", "", "enable rules (comma-separated, supports 'all' and categories)")
	fs.StringVar(&disableFlag, "disable", "", "disable rules (comma-separated, supports patterns like 'no-*')")
	fs.StringVar(&configFlag, "config", "", "path to config file (default: search for .starlint.json)")
	fs.StringVar(&formatFlag, "format", "", "output format: text, compact, json, github (default text)")
	fs.BoolVar(&listRulesFlag, "list-rules", false, "list all available rules")
	fs.BoolVar(&listCategoriesFlag, "list-categories", false, "list all rule categories")
	fs.StringVar(&explainFlag, "explain", "", "show detailed explanation for a rule")
	fs.BoolVar(&versionFlag, "version", false, "print version and exit")
	fs.BoolVar(&watchFlag, "watch", false, "watch files and re-lint on change")
	fs.IntVar(&verbosity, "v", 0, "verbosity level (0=warn, 1=info, 2=debug)")

	fs.Usage = func() {
		writeln(stderr, "Usage: starlint [flags] [path ...]")
		writeln(stderr)
		writeln(stderr, "Lints Starlark files.")
		writeln(stderr)
		writeln(stderr, "Flags:")
		fs.PrintDefaults()
		writeln(stderr)
		writeln(stderr, "Examples:")
		writeln(stderr, "  starlint BUILD.bazel                  # Lint a single file")
		writeln(stderr, "  starlint .                            # Lint all files recursively")
		writeln(stderr, "  starlint --disable=no-* .             # Disable no-* rules")
		writeln(stderr, "  starlint --format=json .              # Machine-readable output")
		writeln(stderr, "  starlint --watch .                    # Re-lint on file changes")
		writeln(stderr, "  starlint --list-rules                 # List all available rules")
		writeln(stderr, "  starlint --explain=no-reject-calls    # Explain a rule")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitError
	}

	logging.Setup(verbosity, stderr)

	if versionFlag {
		writef(stdout, "starlint %s\n", version.String())
		return exitOK
	}

	registry := linter.NewRegistry()
	if err := registry.Register(rules.All()...); err != nil {
		writef(stderr, "starlint: failed to register rules: %v\n", err)
		return exitError
	}

	if listRulesFlag {
		return listRules(stdout, registry)
	}

	if listCategoriesFlag {
		return listCategories(stdout, registry)
	}

	if explainFlag != "" {
		return explainRule(stdout, stderr, registry, explainFlag)
	}

	config, err := linter.LoadConfig(configFlag)
	if err != nil {
		writef(stderr, "starlint: %v\n", err)
		return exitError
	}
	if err := config.ApplyToRegistry(registry); err != nil {
		writef(stderr, "starlint: configuration error: %v\n", err)
		return exitError
	}

	// Flags take precedence over the config file
	if enableFlag != "" {
		registry.Enable(parseCommaSeparated(enableFlag)...)
	}
	if disableFlag != "" {
		registry.Disable(parseCommaSeparated(disableFlag)...)
	}

	paths := fs.Args()
	if len(paths) == 0 {
		writeln(stderr, "starlint: no files specified")
		fs.Usage()
		return exitError
	}

	// Flag, then config file, then the default
	format := formatFlag
	if format == "" {
		format = config.Format
	}
	if format == "" {
		format = "text"
	}

	var reporter linter.Reporter
	switch format {
	case "text":
		reporter = linter.NewTextReporter()
	case "compact":
		reporter = linter.NewCompactReporter()
	case "json":
		reporter = linter.NewJSONReporter()
	case "github":
		reporter = linter.NewGitHubReporter()
	default:
		writef(stderr, "starlint: unknown format: %s\n", format)
		return exitError
	}

	driver := linter.NewDriver(registry)

	if watchFlag {
		return watch(stdout, stderr, driver, reporter, paths, config.WarningsAsErrors)
	}

	result, err := driver.Run(context.Background(), paths)
	if err != nil {
		writef(stderr, "starlint: %v\n", err)
		return exitError
	}

	if err := reporter.Report(stdout, result); err != nil {
		writef(stderr, "starlint: failed to report results: %v\n", err)
		return exitError
	}

	return exitCode(result, config.WarningsAsErrors)
}

// exitCode maps a result to the process exit code.
func exitCode(result *linter.Result, warningsAsErrors bool) int {
	if result.HasErrors() || len(result.Errors) > 0 {
		return exitError
	}
	if result.HasWarnings() {
		if warningsAsErrors {
			return exitError
		}
		return exitWarning
	}
	return exitOK
}

// watch re-lints the given paths whenever a Starlark file under them changes.
// Runs until interrupted; the exit code reflects the last completed run.
func watch(stdout, stderr io.Writer, driver *linter.Driver, reporter linter.Reporter, paths []string, warningsAsErrors bool) int {
	watcher, err := linter.NewWatcher()
	if err != nil {
		writef(stderr, "starlint: %v\n", err)
		return exitError
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			writef(stderr, "starlint: %v\n", err)
			return exitError
		}
	}

	runOnce := func() int {
		result, err := driver.Run(context.Background(), paths)
		if err != nil {
			writef(stderr, "starlint: %v\n", err)
			return exitError
		}
		if err := reporter.Report(stdout, result); err != nil {
			writef(stderr, "starlint: failed to report results: %v\n", err)
			return exitError
		}
		return exitCode(result, warningsAsErrors)
	}

	code := runOnce()
	writeln(stderr, "starlint: watching for changes (ctrl-c to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return code
			}
			writef(stderr, "starlint: %s changed\n", event.File)
			code = runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return code
			}
			writef(stderr, "starlint: watch error: %v\n", err)
		}
	}
}

// listRules outputs all available rules.
func listRules(w io.Writer, registry *linter.Registry) int {
	all := registry.AllRules()
	if len(all) == 0 {
		writeln(w, "No rules registered")
		return exitOK
	}

	writef(w, "Available rules (%d total):\n\n", len(all))

	// Group by category
	categories := registry.Categories()
	for _, cat := range categories {
		catRules := registry.RulesByCategory(cat)
		if len(catRules) == 0 {
			continue
		}

		writef(w, "%s (%d rules):\n", cat, len(catRules))
		for _, rl := range catRules {
			writef(w, "  %-30s  %s\n", rl.Name, rl.Meta.Docs.Description)
		}
		writeln(w)
	}

	return exitOK
}

// listCategories outputs all rule categories.
func listCategories(w io.Writer, registry *linter.Registry) int {
	categories := registry.Categories()
	if len(categories) == 0 {
		writeln(w, "No categories found")
		return exitOK
	}

	writef(w, "Available categories (%d total):\n\n", len(categories))
	for _, cat := range categories {
		catRules := registry.RulesByCategory(cat)
		writef(w, "  %-20s  %d rules\n", cat, len(catRules))
	}

	return exitOK
}

// explainRule shows detailed information about a specific rule.
func explainRule(stdout, stderr io.Writer, registry *linter.Registry, ruleName string) int {
	found, ok := registry.Rule(ruleName)
	if !ok {
		writef(stderr, "starlint: unknown rule: %s\n", ruleName)
		writeln(stderr, "\nUse --list-rules to see all available rules")
		return exitError
	}

	writef(stdout, "Rule: %s\n", found.Name)
	writef(stdout, "Category: %s\n", found.Meta.Docs.Category)
	writef(stdout, "Severity: %s\n", found.Severity)
	writeln(stdout)
	writef(stdout, "Description:\n  %s\n", found.Meta.Docs.Description)
	if found.Meta.Docs.URL != "" {
		writeln(stdout)
		writef(stdout, "Documentation:\n  %s\n", found.Meta.Docs.URL)
	}
	if len(found.Meta.Messages) > 0 {
		writeln(stdout)
		writeln(stdout, "Messages:")
		for _, id := range sortedKeys(found.Meta.Messages) {
			writef(stdout, "  %-22s  %s\n", id, found.Meta.Messages[id])
		}
	}

	return exitOK
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseCommaSeparated parses a comma-separated string into a slice.
func parseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Helper functions for writing output without error checking.
func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func writeln(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}
