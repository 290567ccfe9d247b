package linter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bazelbuild/buildtools/build"
	"github.com/rs/zerolog"

	"github.com/starforge/starlint/internal/astutil"
	"github.com/starforge/starlint/internal/filekind"
	"github.com/starforge/starlint/internal/logging"
	"github.com/starforge/starlint/internal/rule"
)

// Driver executes lint rules on files. Rules are activated once per run:
// their options are resolved, validated, and bound before the first file is
// visited, so configuration errors surface immediately rather than per node.
type Driver struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewDriver creates a new driver with the given registry.
func NewDriver(registry *Registry) *Driver {
	return &Driver{
		registry: registry,
		logger:   logging.GetLogger("linter"),
	}
}

// activation pairs an activated rule with its effective severity.
type activation struct {
	act      *rule.Activated
	severity Severity
}

// activate binds every enabled rule to its resolved options. The returned
// error is a *options.ConfigurationError when a rule's user options are
// invalid; no rule runs in that case.
func (d *Driver) activate() ([]activation, error) {
	rules := d.registry.EnabledRules()

	activations := make([]activation, 0, len(rules))
	for _, rl := range rules {
		config := d.registry.GetConfig(rl.Name)

		act, err := rl.Activate(config.Options)
		if err != nil {
			return nil, err
		}

		severity := rl.Severity
		if config.HasSeverity {
			severity = config.Severity
		}

		activations = append(activations, activation{act: act, severity: severity})
	}
	return activations, nil
}

// Run executes all enabled rules on the specified files and returns the
// results. The files parameter can include individual files or directories
// (which will be walked).
func (d *Driver) Run(ctx context.Context, paths []string) (*Result, error) {
	activations, err := d.activate()
	if err != nil {
		return nil, err
	}

	files, err := d.expandPaths(paths)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files:    len(files),
		Findings: []Finding{},
		Errors:   []FileError{},
	}

	for _, path := range files {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		findings, err := d.runFile(path, activations)
		if err != nil {
			result.Errors = append(result.Errors, FileError{
				Path: path,
				Err:  err,
			})
			continue
		}

		result.Findings = append(result.Findings, findings...)
	}

	d.logger.Debug().
		Int("files", result.Files).
		Int("findings", len(result.Findings)).
		Int("errors", len(result.Errors)).
		Msg("run complete")

	return result, nil
}

// RunFile executes all enabled rules on a single file.
func (d *Driver) RunFile(path string) ([]Finding, error) {
	activations, err := d.activate()
	if err != nil {
		return nil, err
	}
	return d.runFile(path, activations)
}

func (d *Driver) runFile(path string, activations []activation) ([]Finding, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	kind := filekind.Detect(path)
	file, err := parseFile(content, path, kind)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	suppressionParser := NewSuppressionParser(content)

	// Filter activations by file kind and give each its per-file context.
	type fileRule struct {
		act  *rule.Activated
		ctx  *rule.Context
		name string
	}
	var applicable []fileRule
	for _, a := range activations {
		rl := a.act.Rule()
		if !rl.AppliesTo(kind) {
			continue
		}
		applicable = append(applicable, fileRule{
			act: a.act,
			ctx: &rule.Context{
				FilePath: path,
				FileKind: kind,
				Content:  content,
				Severity: a.severity,
			},
			name: rl.Name,
		})
	}
	if len(applicable) == 0 {
		return nil, nil
	}

	d.logger.Debug().Str("path", path).Str("kind", kind.String()).
		Int("rules", len(applicable)).Msg("linting file")

	// One walk over the tree; each node is dispatched to every applicable
	// rule. Handlers only return descriptors, which are rendered into
	// findings here; a descriptor that cannot be rendered is a bug in the
	// rule and fails the file loudly.
	var findings []Finding
	var walkErr error

	build.Walk(file, func(expr build.Expr, stack []build.Expr) {
		if walkErr != nil {
			return
		}
		if astutil.KindOf(expr) == astutil.KindUnhandled {
			return
		}

		// The walk mutates its stack in place; descriptors may outlive
		// this visit, so the node gets its own copy.
		node := astutil.Node{
			Expr:  expr,
			Stack: append([]build.Expr(nil), stack...),
		}

		for _, fr := range applicable {
			res := fr.act.Visit(node, fr.ctx)
			for _, desc := range res.Descriptors {
				f, err := renderFinding(fr.act, fr.ctx, desc)
				if err != nil {
					walkErr = err
					return
				}
				findings = append(findings, f)
			}
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return FilterSuppressed(findings, suppressionParser), nil
}

// renderFinding turns a descriptor into a host-level finding by rendering
// its message-catalog entry.
func renderFinding(act *rule.Activated, ctx *rule.Context, desc rule.Descriptor) (Finding, error) {
	msg, err := act.Message(desc)
	if err != nil {
		return Finding{}, err
	}

	start, end := desc.Node.Span()
	rl := act.Rule()
	return Finding{
		FilePath:  ctx.FilePath,
		Severity:  ctx.Severity,
		Message:   msg,
		Line:      start.Line,
		Column:    start.LineRune,
		EndLine:   end.Line,
		EndColumn: end.LineRune,
		Rule:      rl.Name,
		MessageID: desc.MessageID,
		Category:  rl.Meta.Docs.Category,
	}, nil
}

// expandPaths expands a list of paths into individual files.
// Directories are walked recursively to find Starlark files.
func (d *Driver) expandPaths(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool) // Deduplicate files

	for _, path := range paths {
		expanded, err := d.expandPath(path)
		if err != nil {
			return nil, err
		}

		for _, f := range expanded {
			absPath, err := filepath.Abs(f)
			if err != nil {
				absPath = f
			}
			if !seen[absPath] {
				seen[absPath] = true
				files = append(files, f)
			}
		}
	}

	return files, nil
}

// expandPath expands a single path into files.
func (d *Driver) expandPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	// Directory - walk it
	var files []string
	err = filepath.WalkDir(path, func(p string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories
		if entry.IsDir() && strings.HasPrefix(entry.Name(), ".") && entry.Name() != "." {
			return filepath.SkipDir
		}

		if entry.IsDir() {
			return nil
		}

		if isStarlarkFile(entry.Name()) {
			files = append(files, p)
		}

		return nil
	})

	return files, err
}

// isStarlarkFile checks if a path names a recognized Starlark file.
func isStarlarkFile(path string) bool {
	return filekind.Detect(path) != filekind.KindUnknown
}

// parseFile parses a Starlark file based on its kind.
func parseFile(content []byte, path string, kind filekind.Kind) (*build.File, error) {
	switch kind {
	case filekind.KindBUILD:
		return build.ParseBuild(path, content)
	case filekind.KindWORKSPACE:
		return build.ParseWorkspace(path, content)
	case filekind.KindMODULE:
		return build.ParseModule(path, content)
	case filekind.KindBzl:
		return build.ParseBzl(path, content)
	default:
		// KindStarlark, KindUnknown, or any other
		return build.ParseDefault(path, content)
	}
}
