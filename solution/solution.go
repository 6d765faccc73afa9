package solution

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/willibrandon/govcx/observability"
)

// Document is a parsed solution file. It is not safe for concurrent mutation.
type Document struct {
	// Path is the file the document was parsed from and the default write target.
	Path string

	graph    graph
	versions []string
	global   []string
	logger   observability.Logger
}

// Option configures Parse.
type Option func(*options)

type options struct {
	logger observability.Logger
	strict bool
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger observability.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStrictHeaders makes a malformed project header line fail the parse
// with ErrFormat instead of being skipped with a warning.
func WithStrictHeaders(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// Parse reads the solution file at path.
func Parse(path string, opts ...Option) (*Document, error) {
	return ParseContext(context.Background(), path, opts...)
}

// ParseContext reads the solution file at path, recording a trace span on ctx.
// Truncated blocks fail with a *ParseError wrapping ErrTruncated and no document.
func ParseContext(ctx context.Context, path string, opts ...Option) (doc *Document, err error) {
	o := options{logger: observability.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	ctx, span := observability.StartLoadSpan(ctx, observability.KindSolution, path)
	defer func() {
		observability.DocumentLoadDuration.WithLabelValues(observability.KindSolution).Observe(time.Since(start).Seconds())
		observability.DocumentsLoadedTotal.WithLabelValues(observability.KindSolution, observability.StatusLabel(err)).Inc()
		observability.EndSpan(span, err)
	}()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open solution file: %w", err)
	}
	defer file.Close()

	logger := o.logger.ForContext("SolutionPath", path)
	p := &parser{
		path:   path,
		strict: o.strict,
		logger: logger,
	}
	if err := p.parse(ctx, file); err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "Parsed {ProjectCount} projects from {SolutionPath}", len(p.graph.projects), path)
	return &Document{
		Path:     path,
		graph:    p.graph,
		versions: p.versions,
		global:   p.global,
		logger:   logger,
	}, nil
}

// ProjectFiles yields project paths as written in the solution, in file order.
func (d *Document) ProjectFiles() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range d.graph.projects {
			if !yield(p.Path) {
				return
			}
		}
	}
}

// AbsoluteProjectFiles yields project paths resolved against the solution
// directory, skipping solution folders.
func (d *Document) AbsoluteProjectFiles() iter.Seq[string] {
	dir := filepath.Dir(d.Path)
	return func(yield func(string) bool) {
		for _, p := range d.graph.projects {
			if p.IsSolutionFolder() {
				continue
			}
			if !yield(ResolveProjectPath(dir, p.Path)) {
				return
			}
		}
	}
}

// ProjectNames yields project names in file order.
func (d *Document) ProjectNames() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range d.graph.projects {
			if !yield(p.Name) {
				return
			}
		}
	}
}

// Projects returns a copy of every project entry in file order.
func (d *Document) Projects() []Project {
	projects := make([]Project, 0, len(d.graph.projects))
	for _, p := range d.graph.projects {
		projects = append(projects, p.clone())
	}
	return projects
}

// Global returns the raw lines between Global and EndGlobal.
func (d *Document) Global() []string {
	return append([]string(nil), d.global...)
}

// Dependencies returns the names of the projects name depends on, in stored order.
func (d *Document) Dependencies(name string) ([]string, error) {
	p, err := d.graph.resolve(name)
	if err != nil {
		return nil, err
	}
	return d.graph.dependencyNames(p)
}

// SetDependencies replaces the dependency list of name with the given
// projects, in order. Nothing changes unless every name resolves.
func (d *Document) SetDependencies(name string, dependencies []string) error {
	p, err := d.graph.resolve(name)
	if err != nil {
		return err
	}
	guids, err := d.graph.guids(dependencies)
	if err != nil {
		return err
	}

	p.Dependencies = guids
	d.logger.Debug("Set {DependencyCount} dependencies on {ProjectName}", len(guids), name)
	return nil
}

// Validate checks that every dependency GUID refers to a project in the
// solution. All dangling references are reported, each wrapping ErrNotFound.
func (d *Document) Validate() error {
	return d.graph.dangling()
}

// BuildOrder returns project names ordered so that every project follows its
// dependencies; ties keep file order. Cycles fail with ErrCycle.
func (d *Document) BuildOrder() ([]string, error) {
	return d.graph.order()
}

// AddProject appends a project with a freshly generated GUID.
func (d *Document) AddProject(typeGUID, name, path string) (Project, error) {
	if !validGUID(typeGUID) {
		return Project{}, fmt.Errorf("%w: project type GUID %q", ErrFormat, typeGUID)
	}
	if _, ok := d.graph.byName(name); ok {
		return Project{}, fmt.Errorf("%w: %q", ErrDuplicateProject, name)
	}

	p := &Project{
		TypeGUID: typeGUID,
		Name:     name,
		Path:     path,
		GUID:     "{" + strings.ToUpper(uuid.New().String()) + "}",
	}
	d.graph.add(p)
	d.logger.Debug("Added project {ProjectName} {GUID}", name, p.GUID)
	return p.clone(), nil
}

// Write serializes the solution to path, or to d.Path when path is empty.
func (d *Document) Write(path string) error {
	return d.WriteContext(context.Background(), path)
}

// WriteContext is Write with a trace span recorded on ctx.
func (d *Document) WriteContext(ctx context.Context, path string) (err error) {
	if path == "" {
		path = d.Path
	}

	ctx, span := observability.StartWriteSpan(ctx, observability.KindSolution, path)
	defer func() {
		observability.DocumentsWrittenTotal.WithLabelValues(observability.KindSolution, observability.StatusLabel(err)).Inc()
		observability.EndSpan(span, err)
	}()

	if err := os.WriteFile(path, d.marshal(), 0o644); err != nil {
		return fmt.Errorf("failed to write solution file: %w", err)
	}

	d.logger.DebugContext(ctx, "Wrote solution to {Target}", path)
	return nil
}

func (d *Document) marshal() []byte {
	var buf bytes.Buffer
	line := func(format string, args ...any) {
		fmt.Fprintf(&buf, format, args...)
		buf.WriteString("\r\n")
	}

	buf.WriteString(utf8BOM)
	line("")
	line(formatBanner)
	line(versionComment)
	for _, v := range d.versions {
		line("%s", v)
	}

	for _, p := range d.graph.projects {
		line(`Project("%s") = "%s", "%s", "%s"`, p.TypeGUID, p.Name, p.Path, p.GUID)
		dependencies := func() {
			if len(p.Dependencies) == 0 {
				return
			}
			line("\tProjectSection(%s) = postProject", dependencySectionName)
			for _, guid := range p.Dependencies {
				line("\t\t%s = %s", guid, guid)
			}
			line("\tEndProjectSection")
		}
		for i, s := range p.Sections {
			if i == p.DependencyIndex {
				dependencies()
			}
			line("%s", s)
		}
		if p.DependencyIndex >= len(p.Sections) {
			dependencies()
		}
		line("EndProject")
	}

	line("Global")
	for _, g := range d.global {
		line("%s", g)
	}
	line("EndGlobal")
	return buf.Bytes()
}
