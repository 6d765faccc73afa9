package project

import (
	"strconv"
	"strings"

	"github.com/willibrandon/govcx/condition"
)

var (
	configurationTypeSetting       = property("Configuration", "ConfigurationType")
	outputDirectorySetting         = property("", "OutDir")
	linkIncrementalSetting         = property("", "LinkIncremental")
	includeDirectoriesSetting      = itemDefinition("ClCompile", "AdditionalIncludeDirectories")
	debugInformationSetting        = itemDefinition("ClCompile", "DebugInformationFormat")
	linkDependenciesSetting        = itemDefinition("Link", "AdditionalDependencies")
	programDatabaseSetting         = itemDefinition("Link", "ProgramDatabaseFile")
	linkOutputFileSetting          = itemDefinition("Link", "OutputFile")
	staticLibraryOutputFileSetting = itemDefinition("Lib", "OutputFile")
)

// ConfigurationType returns the project type from the Configuration property
// group, consulting every configuration.
func (d *Document) ConfigurationType() (ConfigurationType, bool, error) {
	v, ok, err := d.lookup(configurationTypeSetting, condition.Wildcard, condition.Wildcard)
	return ConfigurationType(v), ok, err
}

// AdditionalLinkDependencies returns the Link AdditionalDependencies list, or nil when unset.
func (d *Document) AdditionalLinkDependencies(platform, configuration string) ([]string, error) {
	return d.list(linkDependenciesSetting, platform, configuration)
}

// AdditionalIncludeDirectories returns the ClCompile AdditionalIncludeDirectories list, or nil when unset.
func (d *Document) AdditionalIncludeDirectories(platform, configuration string) ([]string, error) {
	return d.list(includeDirectoriesSetting, platform, configuration)
}

// SetAdditionalIncludeDirectories replaces the include directory list. A nil
// slice removes the setting; an empty slice stores an empty value.
func (d *Document) SetAdditionalIncludeDirectories(platform, configuration string, dirs []string) error {
	var value *string
	if dirs != nil {
		joined := strings.Join(dirs, ";")
		value = &joined
	}
	return d.set(includeDirectoriesSetting, platform, configuration, value)
}

// OutputFile returns the linker or librarian output file, depending on the
// project's configuration type.
func (d *Document) OutputFile(platform, configuration string) (string, bool, error) {
	loc, err := d.outputFileSetting()
	if err != nil {
		return "", false, err
	}
	return d.lookup(loc, platform, configuration)
}

// SetOutputFile sets the output file under Lib for static libraries and under
// Link otherwise. nil removes it.
func (d *Document) SetOutputFile(platform, configuration string, name *string) error {
	loc, err := d.outputFileSetting()
	if err != nil {
		return err
	}
	return d.set(loc, platform, configuration, name)
}

func (d *Document) outputFileSetting() (location, error) {
	kind, _, err := d.ConfigurationType()
	if err != nil {
		return location{}, err
	}
	if kind == StaticLibrary {
		return staticLibraryOutputFileSetting, nil
	}
	return linkOutputFileSetting, nil
}

// OutputDirectory returns OutDir from the unlabeled property groups.
func (d *Document) OutputDirectory(platform, configuration string) (string, bool, error) {
	return d.lookup(outputDirectorySetting, platform, configuration)
}

// SetOutputDirectory sets OutDir. nil removes it.
func (d *Document) SetOutputDirectory(platform, configuration string, dir *string) error {
	return d.set(outputDirectorySetting, platform, configuration, dir)
}

// ProgramDatabaseFile returns the Link ProgramDatabaseFile path.
func (d *Document) ProgramDatabaseFile(platform, configuration string) (string, bool, error) {
	return d.lookup(programDatabaseSetting, platform, configuration)
}

// SetProgramDatabaseFile sets the Link ProgramDatabaseFile path. nil removes it.
func (d *Document) SetProgramDatabaseFile(platform, configuration string, path *string) error {
	return d.set(programDatabaseSetting, platform, configuration, path)
}

// DebugInformationFormat returns the ClCompile DebugInformationFormat
// (ProgramDatabase, EditAndContinue, OldStyle or None).
func (d *Document) DebugInformationFormat(platform, configuration string) (string, bool, error) {
	return d.lookup(debugInformationSetting, platform, configuration)
}

// SetDebugInformationFormat sets the ClCompile DebugInformationFormat. nil removes it.
func (d *Document) SetDebugInformationFormat(platform, configuration string, format *string) error {
	return d.set(debugInformationSetting, platform, configuration, format)
}

// EnableIncrementalLinking reports LinkIncremental. ok is false when the
// setting is absent; any stored value other than "true" (case-insensitive) is false.
func (d *Document) EnableIncrementalLinking(platform, configuration string) (enabled, ok bool, err error) {
	v, ok, err := d.lookup(linkIncrementalSetting, platform, configuration)
	if err != nil || !ok {
		return false, false, err
	}
	return strings.EqualFold(v, "true"), true, nil
}

// SetEnableIncrementalLinking stores LinkIncremental as "true" or "false". nil removes it.
func (d *Document) SetEnableIncrementalLinking(platform, configuration string, enabled *bool) error {
	var value *string
	if enabled != nil {
		s := strconv.FormatBool(*enabled)
		value = &s
	}
	return d.set(linkIncrementalSetting, platform, configuration, value)
}

func (d *Document) list(loc location, platform, configuration string) ([]string, error) {
	v, ok, err := d.lookup(loc, platform, configuration)
	if err != nil || !ok {
		return nil, err
	}
	return strings.Split(v, ";"), nil
}
