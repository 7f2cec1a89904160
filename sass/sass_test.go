package sass

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cask/compiler"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		job  compiler.Job
		want []string
	}{
		{
			name: "minimal scss job",
			job:  compiler.Job{InFile: "/src/index.scss"},
			want: []string{
				"--no-color", "--stop-on-error",
				"--embed-source-map", "--source-map-urls=absolute",
				"/src/index.scss",
			},
		},
		{
			name: "indented syntax with include paths",
			job: compiler.Job{
				InFile:       "/src/index.sass",
				Indented:     true,
				IncludePaths: []string{"/src", "/vendor"},
			},
			want: []string{
				"--no-color", "--stop-on-error",
				"--embed-source-map", "--source-map-urls=absolute",
				"--indented",
				"--load-path", "/src",
				"--load-path", "/vendor",
				"/src/index.sass",
			},
		},
		{
			name: "pass-through options are forwarded in sorted order",
			job: compiler.Job{
				InFile: "/src/index.scss",
				Extra: map[string]any{
					"style":   "compressed",
					"quiet":   true,
					"charset": false,
				},
			},
			want: []string{
				"--no-color", "--stop-on-error",
				"--embed-source-map", "--source-map-urls=absolute",
				"--no-charset",
				"--quiet",
				"--style=compressed",
				"/src/index.scss",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildArgs(tt.job))
		})
	}
}

func embedMap(t *testing.T, css, mapJSON string) []byte {
	t.Helper()
	encoded := base64.StdEncoding.EncodeToString([]byte(mapJSON))
	return []byte(css + "\n" + mapCommentPrefix + encoded + " */\n")
}

func TestSplitEmbeddedMap(t *testing.T) {
	mapJSON := `{"version":3,"sources":["file:///src/index.scss","file:///src/_partial.scss"],"mappings":""}`
	output := embedMap(t, "a {\n  color: red;\n}", mapJSON)

	css, embedded, err := splitEmbeddedMap(output)
	require.NoError(t, err)

	assert.Equal(t, "a {\n  color: red;\n}\n", string(css))
	assert.JSONEq(t, mapJSON, string(embedded.raw))
	assert.Equal(t, []string{"/src/index.scss", "/src/_partial.scss"}, embedded.includedFiles())
}

func TestSplitEmbeddedMap_SkipsNonFileSources(t *testing.T) {
	mapJSON := `{"version":3,"sources":["data:;charset=utf-8,a%20%7B%7D","file:///src/index.scss"],"mappings":""}`
	output := embedMap(t, "a {}", mapJSON)

	_, embedded, err := splitEmbeddedMap(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/index.scss"}, embedded.includedFiles())
}

func TestSplitEmbeddedMap_Failures(t *testing.T) {
	tests := []struct {
		name        string
		output      string
		errContains string
	}{
		{
			name:        "no map comment",
			output:      "a { color: red; }\n",
			errContains: "no embedded source map",
		},
		{
			name:        "unterminated comment",
			output:      "a {}\n" + mapCommentPrefix + "e30=",
			errContains: "unterminated",
		},
		{
			name:        "invalid base64",
			output:      "a {}\n" + mapCommentPrefix + "not-base64!! */",
			errContains: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := splitEmbeddedMap([]byte(tt.output))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestParseError(t *testing.T) {
	stderr := "Error: expected \":\".\n" +
		"  ╷\n" +
		"3 │   color red\n" +
		"  │        ^\n" +
		"  ╵\n" +
		"  styles/broken.scss 3:9  root stylesheet\n"

	cerr := parseError(stderr)
	assert.Equal(t, "expected \":\".", cerr.Message)
	assert.Equal(t, "styles/broken.scss", cerr.File)
	assert.Equal(t, 3, cerr.Line)
	assert.Equal(t, 9, cerr.Column)
	assert.Equal(t, "styles/broken.scss:3:9: expected \":\".", cerr.Error())
}

func TestParseError_NoLocation(t *testing.T) {
	cerr := parseError("Error: something went sideways\n")
	assert.Equal(t, "something went sideways", cerr.Message)
	assert.Empty(t, cerr.File)
	assert.Zero(t, cerr.Line)
	assert.Equal(t, "something went sideways", cerr.Error())
}

func TestParseError_UnstructuredOutput(t *testing.T) {
	cerr := parseError("sass: segmentation fault\n")
	assert.Equal(t, "sass: segmentation fault", cerr.Message)
	assert.Empty(t, cerr.File)
}
