// Package condition evaluates MSBuild configuration-axis conditions of the form
// '$(Configuration)|$(Platform)'=='Debug|x64'.
package condition

import (
	"errors"
	"fmt"
	"regexp"
)

// Wildcard matches any concrete value on one dimension of an axis during a query.
const Wildcard = "All Configurations"

// ErrFormat is returned when a condition string does not follow the configuration-axis grammar.
var ErrFormat = errors.New("malformed configuration condition")

var conditionRegex = regexp.MustCompile(
	`^\s*'\$\(Configuration\)\|\$\(Platform\)'\s*==\s*'([^'|]+)\|([^'|]+)'\s*$`,
)

// Axis identifies one build variant, e.g. (Debug, x64).
type Axis struct {
	Configuration string
	Platform      string
}

// IsConcrete reports whether neither component is the wildcard.
func (a Axis) IsConcrete() bool {
	return a.Configuration != Wildcard && a.Platform != Wildcard
}

// Matches reports whether a declared axis satisfies a query where either
// component may be the wildcard.
func (a Axis) Matches(platform, configuration string) bool {
	return (platform == Wildcard || platform == a.Platform) &&
		(configuration == Wildcard || configuration == a.Configuration)
}

// String returns the axis in Configuration|Platform form.
func (a Axis) String() string {
	return a.Configuration + "|" + a.Platform
}

// Parse extracts the axis from a condition string.
func Parse(cond string) (Axis, error) {
	m := conditionRegex.FindStringSubmatch(cond)
	if m == nil {
		return Axis{}, fmt.Errorf("%w: %q", ErrFormat, cond)
	}
	return Axis{Configuration: m[1], Platform: m[2]}, nil
}

// Format renders the canonical condition for a concrete axis.
func Format(a Axis) string {
	return fmt.Sprintf("'$(Configuration)|$(Platform)'=='%s|%s'", a.Configuration, a.Platform)
}

// Matches parses cond and applies the wildcard-or-exact rule on each dimension.
func Matches(cond, platform, configuration string) (bool, error) {
	a, err := Parse(cond)
	if err != nil {
		return false, err
	}
	return a.Matches(platform, configuration), nil
}
