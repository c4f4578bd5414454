// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/induct/apiary/contract"
)

// NASANamespace is the package declaring the NASA fixture interface.
const NASANamespace = "github.com/induct/apiary/internal/nasa"

// NASAUnitName is the unit the NASA fixture generates.
const NASAUnitName = NASANamespace + "/generated.NASAImpl"

// NewNASAContract returns the APOD contract with a local and a production
// environment. Each call returns a fresh copy that tests may modify.
func NewNASAContract() *contract.Contract {
	return &contract.Contract{
		Name:        "NASA",
		Namespace:   NASANamespace,
		Description: "talks to the Astronomy Picture of the Day service.",
		Imports:     []string{"time"},
		Config: &contract.GenerationConfig{
			ParamFormat:     contract.LowerUnderscore,
			TargetPackage:   "${root}/generated",
			TargetClassName: "${clientName}Impl",
			Environments: []contract.Environment{
				{Name: "local", Root: "http://localhost:9090"},
				{Name: "production", Root: "https://api.nasa.gov"},
			},
		},
		Calls: []contract.CallDescriptor{
			{
				Name:    "apod",
				Path:    "/planetary/apod",
				Returns: "ApodImage",
				Params: []contract.Parameter{
					{Name: "date", Type: "time.Time", Optional: true},
					{Name: "conceptTags", Type: "bool", Optional: true},
					{Name: "hd", Type: "bool", Optional: true},
					{Name: "apiKey", Type: "string"},
				},
			},
		},
	}
}

// NASAContractYAML is NewNASAContract in file form.
const NASAContractYAML = `name: NASA
namespace: github.com/induct/apiary/internal/nasa
description: talks to the Astronomy Picture of the Day service.
imports:
  - time
config:
  paramFormat: lowerUnderscore
  targetPackage: ${root}/generated
  targetClassName: ${clientName}Impl
  environments:
    - name: local
      root: http://localhost:9090
    - name: production
      root: https://api.nasa.gov
calls:
  - name: apod
    path: /planetary/apod
    returns: ApodImage
    params:
      - {name: date, type: time.Time, optional: true}
      - {name: conceptTags, type: bool, optional: true}
      - {name: hd, type: bool, optional: true}
      - {name: apiKey, type: string}
`

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ModuleDir returns the root of the apiary module by walking up from the
// working directory to the nearest go.mod.
func ModuleDir(t testing.TB) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("no go.mod above working directory")
		}
		dir = parent
	}
}
