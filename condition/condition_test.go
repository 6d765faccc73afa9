package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		cond    string
		want    Axis
		wantErr bool
	}{
		{
			name: "canonical",
			cond: "'$(Configuration)|$(Platform)'=='Debug|Win32'",
			want: Axis{Configuration: "Debug", Platform: "Win32"},
		},
		{
			name: "spaces around operator",
			cond: " '$(Configuration)|$(Platform)' == 'Release|x64' ",
			want: Axis{Configuration: "Release", Platform: "x64"},
		},
		{
			name: "platform with space",
			cond: "'$(Configuration)|$(Platform)'=='Debug|Any CPU'",
			want: Axis{Configuration: "Debug", Platform: "Any CPU"},
		},
		{
			name: "configuration with space",
			cond: "'$(Configuration)|$(Platform)'=='Debug DLL|x64'",
			want: Axis{Configuration: "Debug DLL", Platform: "x64"},
		},
		{
			name:    "quote inside value",
			cond:    "'$(Configuration)|$(Platform)'=='De'bug|x64'",
			wantErr: true,
		},
		{
			name:    "configuration only",
			cond:    "'$(Configuration)'=='Debug'",
			wantErr: true,
		},
		{
			name:    "exists function",
			cond:    "exists('$(UserRootDir)\\Microsoft.Cpp.$(Platform).user.props')",
			wantErr: true,
		},
		{
			name:    "empty",
			cond:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.cond)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	a := Axis{Configuration: "Release", Platform: "ARM64"}
	cond := Format(a)
	assert.Equal(t, "'$(Configuration)|$(Platform)'=='Release|ARM64'", cond)

	parsed, err := Parse(cond)
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestMatches(t *testing.T) {
	const cond = "'$(Configuration)|$(Platform)'=='Debug|x64'"

	tests := []struct {
		platform      string
		configuration string
		want          bool
	}{
		{"x64", "Debug", true},
		{"Win32", "Debug", false},
		{"x64", "Release", false},
		{Wildcard, "Debug", true},
		{Wildcard, "Release", false},
		{"x64", Wildcard, true},
		{"Win32", Wildcard, false},
		{Wildcard, Wildcard, true},
	}

	for _, tt := range tests {
		t.Run(tt.platform+"/"+tt.configuration, func(t *testing.T) {
			got, err := Matches(cond, tt.platform, tt.configuration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatches_Malformed(t *testing.T) {
	_, err := Matches("'$(Platform)'=='x64'", "x64", "Debug")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestAxis_IsConcrete(t *testing.T) {
	assert.True(t, Axis{"Debug", "x64"}.IsConcrete())
	assert.False(t, Axis{Wildcard, "x64"}.IsConcrete())
	assert.False(t, Axis{"Debug", Wildcard}.IsConcrete())
	assert.Equal(t, "Debug|x64", Axis{"Debug", "x64"}.String())
}
