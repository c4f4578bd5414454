package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualifyType(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		qualifier string
		want      string
	}{
		{name: "bare exported", expr: "ApodImage", qualifier: "nasa", want: "nasa.ApodImage"},
		{name: "predeclared", expr: "string", qualifier: "nasa", want: "string"},
		{name: "selector untouched", expr: "time.Time", qualifier: "nasa", want: "time.Time"},
		{name: "pointer", expr: "*ApodImage", qualifier: "nasa", want: "*nasa.ApodImage"},
		{name: "slice", expr: "[]ApodImage", qualifier: "nasa", want: "[]nasa.ApodImage"},
		{name: "map", expr: "map[string]ApodImage", qualifier: "nasa", want: "map[string]nasa.ApodImage"},
		{name: "generic", expr: "Page[ApodImage]", qualifier: "nasa", want: "nasa.Page[nasa.ApodImage]"},
		{name: "func results", expr: "func(Query) (Page, error)", qualifier: "nasa", want: "func(nasa.Query) (nasa.Page, error)"},
		{name: "no qualifier", expr: "ApodImage", qualifier: "", want: "ApodImage"},
		{name: "normalizes spacing", expr: "map[ string ]int", qualifier: "", want: "map[string]int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := qualifyType(tt.expr, tt.qualifier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := qualifyType("map[string", "nasa")
	assert.Error(t, err)
}

func TestIsNilable(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"*nasa.ApodImage", true},
		{"[]string", true},
		{"map[string]int", true},
		{"chan int", true},
		{"func()", true},
		{"interface{}", true},
		{"any", true},
		{"error", true},
		{"[3]int", false},
		{"string", false},
		{"time.Time", false},
		{"map[", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, isNilable(tt.expr))
		})
	}
}

func TestPackageIdent(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"github.com/induct/apiary/internal/nasa", "nasa"},
		{"example.com/go-client", "goclient"},
		{"example.com/API", "api"},
		{"example.com/3d", "pkg3d"},
		{"example.com/type", "type_"},
		{"example.com/---", "pkg"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, packageIdent(tt.path))
		})
	}
}

func TestEscapeIdent(t *testing.T) {
	assert.Equal(t, "range_", escapeIdent("range", nil))
	assert.Equal(t, "date", escapeIdent("date", localNames))
	assert.Equal(t, "req_", escapeIdent("req", localNames))
	assert.Equal(t, "err__", escapeIdent("err", map[string]bool{"err": true, "err_": true}))
}

func TestFormatMultilineComment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "", want: ""},
		{name: "single line", text: "fetches the picture.", want: "// Apod fetches the picture.\n"},
		{name: "already prefixed", text: "Apod fetches the picture.", want: "// Apod fetches the picture.\n"},
		{name: "multi line", text: "fetches the picture.\n\n  Rate limited.  ", want: "// Apod fetches the picture.\n// Rate limited.\n"},
		{name: "blank first line", text: "\nRate limited.", want: "// Apod\n// Rate limited.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMultilineComment(tt.text, "Apod", ""))
		})
	}
}

func TestIsStdImport(t *testing.T) {
	assert.True(t, isStdImport("time"))
	assert.True(t, isStdImport("net/url"))
	assert.False(t, isStdImport("github.com/induct/apiary/internal/nasa"))
	assert.False(t, isStdImport("example.com"))
}
