package solution

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	guidCore  = "{11111111-1111-1111-1111-111111111111}"
	guidNet   = "{22222222-2222-2222-2222-222222222222}"
	guidApp   = "{33333333-3333-3333-3333-333333333333}"
	guidItems = "{44444444-4444-4444-4444-444444444444}"
)

// sampleLines is a solution as written by Visual Studio 2022: core has no
// dependencies, net depends on core, app depends on net and core.
var sampleLines = []string{
	"",
	"Microsoft Visual Studio Solution File, Format Version 12.00",
	"# Visual Studio Version 17",
	"VisualStudioVersion = 17.5.33424.131",
	"MinimumVisualStudioVersion = 10.0.40219.1",
	`Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "core", "core\core.vcxproj", "` + guidCore + `"`,
	"EndProject",
	`Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "net", "net\net.vcxproj", "` + guidNet + `"`,
	"\tProjectSection(ProjectDependencies) = postProject",
	"\t\t" + guidCore + " = " + guidCore,
	"\tEndProjectSection",
	"EndProject",
	`Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "app", "app\app.vcxproj", "` + guidApp + `"`,
	"\tProjectSection(ProjectDependencies) = postProject",
	"\t\t" + guidNet + " = " + guidNet,
	"\t\t" + guidCore + " = " + guidCore,
	"\tEndProjectSection",
	"EndProject",
	`Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "Solution Items", "Solution Items", "` + guidItems + `"`,
	"\tProjectSection(SolutionItems) = preProject",
	"\t\tREADME.md = README.md",
	"\tEndProjectSection",
	"EndProject",
	"Global",
	"\tGlobalSection(SolutionConfigurationPlatforms) = preSolution",
	"\t\tDebug|Win32 = Debug|Win32",
	"\t\tRelease|Win32 = Release|Win32",
	"\tEndGlobalSection",
	"\tGlobalSection(ProjectConfigurationPlatforms) = postSolution",
	"\t\t" + guidCore + ".Debug|Win32.ActiveCfg = Debug|Win32",
	"\t\t" + guidCore + ".Debug|Win32.Build.0 = Debug|Win32",
	"\tEndGlobalSection",
	"EndGlobal",
}

// solutionText joins lines the way Visual Studio writes them: BOM, CRLF, trailing newline.
func solutionText(lines []string) string {
	return utf8BOM + strings.Join(lines, "\r\n") + "\r\n"
}

func writeSolution(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Test.sln")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func parseSolution(t *testing.T, content string, opts ...Option) *Document {
	t.Helper()
	doc, err := Parse(writeSolution(t, content), opts...)
	require.NoError(t, err)
	return doc
}

// minimalSolution has a header and an empty Global block but no projects.
func minimalSolution() string {
	return solutionText([]string{
		"",
		"Microsoft Visual Studio Solution File, Format Version 12.00",
		"# Visual Studio Version 17",
		"Global",
		"EndGlobal",
	})
}
