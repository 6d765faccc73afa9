// Package project reads and edits Visual C++ project files (.vcxproj).
//
// Settings are addressed by a configuration axis (configuration, platform).
// Either component may be condition.Wildcard in queries; mutations through a
// wildcard are expanded to every matching declared configuration.
package project

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"os"
	"time"

	"github.com/beevik/etree"

	"github.com/willibrandon/govcx/condition"
	"github.com/willibrandon/govcx/observability"
)

// ConfigurationType is the kind of binary a project produces.
type ConfigurationType string

// Configuration types understood by OutputFile.
const (
	Application    ConfigurationType = "Application"
	StaticLibrary  ConfigurationType = "StaticLibrary"
	DynamicLibrary ConfigurationType = "DynamicLibrary"
)

// Document is a parsed project file. It is not safe for concurrent mutation.
type Document struct {
	// Path is the file the document was loaded from and the default write target.
	Path string

	xml    *etree.Document
	bom    bool
	logger observability.Logger
}

// Option configures Load.
type Option func(*options)

type options struct {
	logger observability.Logger
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger observability.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Load parses the project file at path.
func Load(path string, opts ...Option) (*Document, error) {
	return LoadContext(context.Background(), path, opts...)
}

// LoadContext parses the project file at path, recording a trace span on ctx.
func LoadContext(ctx context.Context, path string, opts ...Option) (doc *Document, err error) {
	o := options{logger: observability.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	ctx, span := observability.StartLoadSpan(ctx, observability.KindProject, path)
	defer func() {
		observability.DocumentLoadDuration.WithLabelValues(observability.KindProject).Observe(time.Since(start).Seconds())
		observability.DocumentsLoadedTotal.WithLabelValues(observability.KindProject, observability.StatusLabel(err)).Inc()
		observability.EndSpan(span, err)
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	data, bom := stripBOM(data)
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse project XML: %w", err)
	}

	root := tree.Root()
	if root == nil || root.Tag != "Project" {
		return nil, fmt.Errorf("failed to parse project XML: %s: root element is not <Project>", path)
	}

	logger := o.logger.ForContext("ProjectPath", path)
	if ns := root.SelectAttrValue("xmlns", ""); ns != MSBuildNamespace {
		logger.WarnContext(ctx, "Project root declares namespace {Namespace}, expected {Expected}", ns, MSBuildNamespace)
	}
	logger.DebugContext(ctx, "Loaded project {ProjectPath}", path)

	return &Document{
		Path:   path,
		xml:    tree,
		bom:    bom,
		logger: logger,
	}, nil
}

// Write serializes the document to path, or to d.Path when path is empty.
func (d *Document) Write(path string) error {
	return d.WriteContext(context.Background(), path)
}

// WriteContext is Write with a trace span recorded on ctx.
func (d *Document) WriteContext(ctx context.Context, path string) (err error) {
	if path == "" {
		path = d.Path
	}

	ctx, span := observability.StartWriteSpan(ctx, observability.KindProject, path)
	defer func() {
		observability.DocumentsWrittenTotal.WithLabelValues(observability.KindProject, observability.StatusLabel(err)).Inc()
		observability.EndSpan(span, err)
	}()

	ensureDeclaration(d.xml)

	var buf bytes.Buffer
	if d.bom {
		buf.Write(utf8BOM)
	}
	if _, err := d.xml.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}

	d.logger.DebugContext(ctx, "Wrote project to {Target}", path)
	return nil
}

func (d *Document) root() *etree.Element {
	return d.xml.Root()
}

// Configurations yields the declared (configuration, platform) pairs that
// match the query, in declaration order. The sequence can be ranged over
// repeatedly and reflects the document at iteration time.
func (d *Document) Configurations(platform, configuration string) iter.Seq[condition.Axis] {
	return func(yield func(condition.Axis) bool) {
		for _, group := range d.root().SelectElements(tagItemGroup) {
			if group.SelectAttrValue(attrLabel, "") != labelProjectConfigurations {
				continue
			}
			for _, item := range group.SelectElements(tagProjectConfiguration) {
				axis := condition.Axis{
					Configuration: childText(item, tagConfiguration),
					Platform:      childText(item, tagPlatform),
				}
				if axis.Matches(platform, configuration) && !yield(axis) {
					return
				}
			}
			// only the first ProjectConfigurations group is consulted
			return
		}
	}
}

// SourceFiles returns the Include paths of ClCompile items in document order.
func (d *Document) SourceFiles() []string {
	return d.files("ClCompile")
}

// IncludeFiles returns the Include paths of ClInclude items in document order.
func (d *Document) IncludeFiles() []string {
	return d.files("ClInclude")
}

func (d *Document) files(tag string) []string {
	var paths []string
	for _, e := range d.root().FindElements("//" + tag + "[@" + attrInclude + "]") {
		paths = append(paths, e.SelectAttrValue(attrInclude, ""))
	}
	return paths
}
