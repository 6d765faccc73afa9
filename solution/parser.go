package solution

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/willibrandon/govcx/observability"
)

var (
	// Project("{type}") = "Name", "Path", "{guid}"
	projectRegex = regexp.MustCompile(`^Project\("(\{[^}]+\})"\)\s*=\s*"([^"]+)",\s*"([^"]+)",\s*"(\{[^}]+\})"\s*$`)

	// {guid} = {guid} inside ProjectSection(ProjectDependencies)
	dependencyRegex = regexp.MustCompile(`^\s*(\{[^}]+\})\s*=\s*(\{[^}]+\})`)

	projectSectionRegex = regexp.MustCompile(`^\s*ProjectSection\((\w+)\)\s*=\s*(\w+)`)

	versionRegex = regexp.MustCompile(`^(Minimum)?VisualStudioVersion\s*=`)
)

const (
	maxLineSize = 1024 * 1024

	dependencySectionName = "ProjectDependencies"
)

type parseState int

const (
	stateScanning parseState = iota
	stateInProject
	stateInDependencySection
	stateInProjectSection
	stateInGlobal
)

// missing names the closing keyword expected when input ends in the state
func (s parseState) missing() string {
	switch s {
	case stateInProject:
		return "EndProject"
	case stateInDependencySection, stateInProjectSection:
		return "EndProjectSection"
	case stateInGlobal:
		return "EndGlobal"
	default:
		return ""
	}
}

// parser consumes solution text line by line. It owns no I/O beyond the reader.
type parser struct {
	path   string
	strict bool
	logger observability.Logger

	state   parseState
	lineNum int
	current *Project
	section []string

	graph    graph
	versions []string
	global   []string
}

func (p *parser) parse(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.lineNum++
		// first line carries the BOM and the blank separator before the banner
		if p.lineNum == 1 {
			continue
		}
		if err := p.consume(ctx, scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read solution file: %w", err)
	}

	if p.state != stateScanning {
		return &ParseError{
			FilePath: p.path,
			Line:     p.lineNum,
			Message:  "unexpected end of file: missing " + p.state.missing(),
			Err:      ErrTruncated,
		}
	}
	return nil
}

func (p *parser) consume(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)

	switch p.state {
	case stateScanning:
		switch {
		case strings.HasPrefix(trimmed, "Project("):
			return p.header(ctx, trimmed)
		case strings.HasPrefix(trimmed, "Global") && !strings.HasPrefix(trimmed, "GlobalSection"):
			p.state = stateInGlobal
		case versionRegex.MatchString(trimmed):
			p.versions = append(p.versions, line)
		}

	case stateInProject:
		if trimmed == "EndProject" {
			p.finishProject(ctx)
			return nil
		}
		if m := projectSectionRegex.FindStringSubmatch(trimmed); m != nil {
			if m[1] == dependencySectionName {
				p.current.DependencyIndex = len(p.current.Sections)
				p.state = stateInDependencySection
				return nil
			}
			p.section = append(p.section[:0], line)
			p.state = stateInProjectSection
		}

	case stateInDependencySection:
		if trimmed == "EndProjectSection" {
			p.state = stateInProject
			return nil
		}
		if m := dependencyRegex.FindStringSubmatch(line); m != nil {
			p.current.Dependencies = append(p.current.Dependencies, m[1])
		}

	case stateInProjectSection:
		p.section = append(p.section, line)
		if trimmed == "EndProjectSection" {
			p.current.Sections = append(p.current.Sections, p.section...)
			p.section = p.section[:0]
			p.state = stateInProject
		}

	case stateInGlobal:
		if trimmed == "EndGlobal" {
			p.state = stateScanning
			return nil
		}
		p.global = append(p.global, line)
	}
	return nil
}

func (p *parser) header(ctx context.Context, line string) error {
	m := projectRegex.FindStringSubmatch(line)
	if m != nil && validGUID(m[1]) && validGUID(m[4]) {
		p.current = &Project{
			TypeGUID: m[1],
			Name:     m[2],
			Path:     m[3],
			GUID:     m[4],
		}
		p.state = stateInProject
		return nil
	}

	if p.strict {
		return &ParseError{
			FilePath: p.path,
			Line:     p.lineNum,
			Message:  fmt.Sprintf("malformed project header %q", line),
			Err:      ErrFormat,
		}
	}

	observability.SolutionLinesSkippedTotal.Inc()
	p.logger.WarnContext(ctx, "Skipping malformed project header at line {Line}: {Header}", p.lineNum, line)
	return nil
}

func (p *parser) finishProject(ctx context.Context) {
	if existing, ok := p.graph.byName(p.current.Name); ok {
		p.logger.WarnContext(ctx, "Duplicate project name {ProjectName} ({GUID}); lookups resolve to {FirstGUID}",
			p.current.Name, p.current.GUID, existing.GUID)
	}
	p.graph.add(p.current)
	p.current = nil
	p.state = stateScanning
}

func validGUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
