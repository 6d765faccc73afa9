package solution

import (
	"errors"
	"fmt"
	"strings"
)

// graph is the project registry in file order, indexed by GUID.
type graph struct {
	projects []*Project
	byGUIDs  map[string]*Project
}

func guidKey(guid string) string {
	return strings.ToUpper(guid)
}

func (g *graph) add(p *Project) {
	if g.byGUIDs == nil {
		g.byGUIDs = make(map[string]*Project)
	}
	g.projects = append(g.projects, p)
	if _, ok := g.byGUIDs[guidKey(p.GUID)]; !ok {
		g.byGUIDs[guidKey(p.GUID)] = p
	}
}

// byName returns the first project in file order with the exact name.
func (g *graph) byName(name string) (*Project, bool) {
	for _, p := range g.projects {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func (g *graph) byGUID(guid string) (*Project, bool) {
	p, ok := g.byGUIDs[guidKey(guid)]
	return p, ok
}

func (g *graph) resolve(name string) (*Project, error) {
	p, ok := g.byName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}

// dependencyNames maps the project's dependency GUIDs to project names.
func (g *graph) dependencyNames(p *Project) ([]string, error) {
	names := make([]string, 0, len(p.Dependencies))
	for _, guid := range p.Dependencies {
		dep, ok := g.byGUID(guid)
		if !ok {
			return nil, fmt.Errorf("%w: dependency %s of %q", ErrNotFound, guid, p.Name)
		}
		names = append(names, dep.Name)
	}
	return names, nil
}

// guids resolves every name before returning, so a failure leaves nothing half-applied.
func (g *graph) guids(names []string) ([]string, error) {
	guids := make([]string, 0, len(names))
	for _, name := range names {
		p, err := g.resolve(name)
		if err != nil {
			return nil, err
		}
		guids = append(guids, p.GUID)
	}
	return guids, nil
}

// dangling reports every dependency GUID that does not resolve to a project.
func (g *graph) dangling() error {
	var errs []error
	for _, p := range g.projects {
		for _, guid := range p.Dependencies {
			if _, ok := g.byGUID(guid); !ok {
				errs = append(errs, fmt.Errorf("%w: dependency %s of %q", ErrNotFound, guid, p.Name))
			}
		}
	}
	return errors.Join(errs...)
}

// order returns project names with dependencies before dependents. Among
// projects that are ready at the same time, file order wins.
func (g *graph) order() ([]string, error) {
	if err := g.dangling(); err != nil {
		return nil, err
	}

	done := make(map[*Project]bool, len(g.projects))
	order := make([]string, 0, len(g.projects))

	for len(order) < len(g.projects) {
		progressed := false
		for _, p := range g.projects {
			if done[p] || !g.ready(p, done) {
				continue
			}
			done[p] = true
			order = append(order, p.Name)
			progressed = true
			break
		}

		if !progressed {
			var remaining []string
			for _, p := range g.projects {
				if !done[p] {
					remaining = append(remaining, p.Name)
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(remaining, ", "))
		}
	}
	return order, nil
}

func (g *graph) ready(p *Project, done map[*Project]bool) bool {
	for _, guid := range p.Dependencies {
		dep, _ := g.byGUID(guid)
		if !done[dep] {
			return false
		}
	}
	return true
}
