// Package solution reads and writes Visual Studio solution files (.sln),
// exposing the project registry and the project dependency graph.
//
// Only project headers and ProjectDependencies sections are modeled. The
// Global block is kept as raw lines and written back verbatim.
package solution

import (
	"errors"
	"fmt"
	"strings"

	"github.com/willibrandon/govcx/condition"
)

var (
	// ErrFormat is returned for a project header line that does not follow the
	// solution grammar (strict mode only).
	ErrFormat = condition.ErrFormat

	// ErrNotFound is returned when a project name or dependency GUID cannot be resolved.
	ErrNotFound = errors.New("project not found")

	// ErrTruncated is returned when the input ends inside a Project,
	// ProjectSection or Global block.
	ErrTruncated = errors.New("unexpected end of file")

	// ErrDuplicateProject is returned by AddProject for a name already in the solution.
	ErrDuplicateProject = errors.New("duplicate project name")

	// ErrCycle is returned by BuildOrder when project dependencies form a cycle.
	ErrCycle = errors.New("dependency cycle")
)

// Project is one entry of the solution's project registry.
type Project struct {
	// TypeGUID identifies the project type, e.g. ProjectTypeVCXProject
	TypeGUID string

	// Name is the display name; lookups by name use the first project carrying it
	Name string

	// Path is the project file path as written in the solution, usually relative
	Path string

	// GUID is the unique identity of the project
	GUID string

	// Dependencies lists the GUIDs this project depends on, in file order
	Dependencies []string

	// Sections holds other ProjectSection blocks verbatim, e.g. SolutionItems
	Sections []string

	// DependencyIndex is the line offset within Sections at which the
	// ProjectDependencies section is written; 0 writes it first
	DependencyIndex int
}

func (p *Project) clone() Project {
	c := *p
	c.Dependencies = append([]string(nil), p.Dependencies...)
	c.Sections = append([]string(nil), p.Sections...)
	return c
}

// IsSolutionFolder reports whether the entry is a virtual folder rather than a project file
func (p *Project) IsSolutionFolder() bool {
	return strings.EqualFold(p.TypeGUID, ProjectTypeSolutionFolder)
}

// ParseError represents an error during solution file parsing
type ParseError struct {
	// FilePath is the path to the file being parsed
	FilePath string

	// Line is the 1-based line number where the error occurred
	Line int

	// Message describes what went wrong
	Message string

	// Err is the sentinel classifying the failure (ErrFormat or ErrTruncated)
	Err error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// Unwrap returns the classifying sentinel
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ProjectType GUIDs for common project types
const (
	// ProjectTypeVCXProject identifies a Visual C++ project
	ProjectTypeVCXProject = "{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}"

	// ProjectTypeCSProject identifies a C# project (classic)
	ProjectTypeCSProject = "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"

	// ProjectTypeSolutionFolder identifies a solution folder
	ProjectTypeSolutionFolder = "{2150E333-8FDC-42A3-9474-1A3956D46DE8}"

	// ProjectTypeSharedProject identifies a shared items project
	ProjectTypeSharedProject = "{D954291E-2A0B-460D-934E-DC6B0785DB48}"
)

// Header lines written at the top of every solution file
const (
	utf8BOM        = "\xEF\xBB\xBF"
	formatBanner   = "Microsoft Visual Studio Solution File, Format Version 12.00"
	versionComment = "# Visual Studio Version 17"
)
