package apiary

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/induct/apiary/apiclient"
	"github.com/induct/apiary/contract"
	"github.com/induct/apiary/generator"
	"github.com/induct/apiary/inject"
	"github.com/induct/apiary/internal/nasa"
	_ "github.com/induct/apiary/internal/nasa/generated"
	"github.com/induct/apiary/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApiary(t *testing.T, srv *testutil.APODServer, opts ...Option) *Apiary {
	t.Helper()
	deps := inject.New()
	inject.Bind[apiclient.Transport](deps, srv.PinnedClient())

	a, err := New(t.TempDir(), append([]Option{WithResolver(deps), WithModuleDir(testutil.ModuleDir(t))}, opts...)...)
	require.NoError(t, err)
	return a
}

func requireFailure(t *testing.T, err error, stage string) *apiaryerrors.GenerationFailure {
	t.Helper()
	require.Error(t, err)
	var failure *apiaryerrors.GenerationFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, stage, failure.Stage)
	assert.ErrorIs(t, err, apiaryerrors.ErrGenerationFailure)
	return failure
}

func TestGenerateClientAPOD(t *testing.T) {
	srv := testutil.NewAPODServer(t)
	a := newApiary(t, srv)

	client, err := Generate[nasa.NASA](a, testutil.NewNASAContract(), "local")
	require.NoError(t, err)

	ctx := context.Background()
	img, err := client.Apod(ctx, nil, nil, nil, testutil.DemoKey)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, testutil.ApodTitle, img.Title)
	assert.Equal(t, testutil.ApodURL, img.URL)
	assert.Equal(t, "image", img.MediaType)
	assert.NotEmpty(t, img.Explanation)
	assert.Empty(t, img.Concepts)

	img, err = client.Apod(ctx, nil, nil, nil, "wrong")
	require.NoError(t, err)
	assert.Nil(t, img)

	queries := srv.Queries()
	require.Len(t, queries, 2)
	assert.Len(t, queries[0], 1, "absent optionals are not sent")
	assert.Equal(t, testutil.DemoKey, queries[0].Get("api_key"))
}

func TestGenerateClientMatchesLinkedSource(t *testing.T) {
	a := newApiary(t, testutil.NewAPODServer(t))
	c := testutil.NewNASAContract()

	_, err := a.GenerateClient(c, "local")
	require.NoError(t, err)

	written, err := os.ReadFile(a.ArtifactPath(c))
	require.NoError(t, err)
	linked, err := os.ReadFile(filepath.Join(testutil.ModuleDir(t), "internal", "nasa", "generated", "NASAImpl.go"))
	require.NoError(t, err)
	assert.Equal(t, string(linked), string(written), "run go generate ./internal/nasa")
}

func TestGenerateClientUnknownEnvironment(t *testing.T) {
	a := newApiary(t, testutil.NewAPODServer(t))
	c := testutil.NewNASAContract()

	_, err := a.GenerateClient(c, "staging")
	failure := requireFailure(t, err, StageResolve)
	assert.Equal(t, "NASA", failure.Contract)
	assert.ErrorIs(t, err, apiaryerrors.ErrEnvironment)

	var envErr *apiaryerrors.EnvironmentError
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, []string{"local", "production"}, envErr.Available)

	_, statErr := os.Stat(a.ArtifactPath(c))
	assert.True(t, os.IsNotExist(statErr), "nothing is written before rendering")

	_, err = a.GenerateClient(c, "")
	requireFailure(t, err, StageResolve)
}

func TestGenerateClientInvalidContract(t *testing.T) {
	a := newApiary(t, testutil.NewAPODServer(t))

	_, err := a.GenerateClient(nil, "local")
	requireFailure(t, err, StageValidate)
	assert.ErrorIs(t, err, apiaryerrors.ErrValidation)

	c := testutil.NewNASAContract()
	c.Config = nil
	_, err = a.GenerateClient(c, "local")
	requireFailure(t, err, StageValidate)
	assert.ErrorIs(t, err, apiaryerrors.ErrValidation)
}

func TestGenerateClientNoOverwrite(t *testing.T) {
	a := newApiary(t, testutil.NewAPODServer(t))
	c := testutil.NewNASAContract()

	_, err := a.GenerateClient(c, "local")
	require.NoError(t, err)

	_, err = a.GenerateClient(c, "local")
	requireFailure(t, err, StageMaterialize)
	assert.ErrorIs(t, err, apiaryerrors.ErrTargetExists)
}

func TestClean(t *testing.T) {
	a := newApiary(t, testutil.NewAPODServer(t))
	c := testutil.NewNASAContract()

	require.NoError(t, a.Clean(c), "nothing to remove yet")
	assert.ErrorIs(t, a.Clean(nil), apiaryerrors.ErrValidation)
	assert.Empty(t, a.ArtifactPath(nil))

	_, err := a.GenerateClient(c, "local")
	require.NoError(t, err)
	require.NoError(t, a.Clean(c))

	_, err = a.GenerateClient(c, "local")
	require.NoError(t, err, "a cleaned target can be written again")
}

func TestGenerateClientCorruptedTemplate(t *testing.T) {
	a := newApiary(t, testutil.NewAPODServer(t),
		WithGeneratorOptions(generator.WithTemplate("package {{.PackageName}}\n\nfunc broken( {\n")))
	c := testutil.NewNASAContract()

	_, err := a.GenerateClient(c, "local")
	requireFailure(t, err, StageMaterialize)

	var compErr *apiaryerrors.CompilationError
	require.ErrorAs(t, err, &compErr)
	require.NotEmpty(t, compErr.Diagnostics)
	assert.Equal(t, apiaryerrors.SeverityError, compErr.Diagnostics[0].Severity)

	// The broken file stays; a retry stops at the write step.
	_, err = a.GenerateClient(c, "local")
	requireFailure(t, err, StageMaterialize)
	assert.ErrorIs(t, err, apiaryerrors.ErrTargetExists)
}

func TestGenerateClientStaleUnit(t *testing.T) {
	a := newApiary(t, testutil.NewAPODServer(t))

	_, err := a.GenerateClient(testutil.NewNASAContract(), "production")
	requireFailure(t, err, StageLoad)
	assert.ErrorIs(t, err, apiaryerrors.ErrStaleUnit)
}

func TestGenerateClientShapeChanged(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *contract.Contract)
	}{
		{"param format", func(c *contract.Contract) { c.Config.ParamFormat = contract.LowerCamel }},
		{"path", func(c *contract.Contract) { c.Calls[0].Path = "/planetary/apod/v2" }},
		{"param name", func(c *contract.Contract) { c.Calls[0].Params[3].Name = "key" }},
		{"doc", func(c *contract.Contract) { c.Calls[0].Doc = "Apod returns the picture of the day." }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewAPODServer(t)
			a := newApiary(t, srv)
			c := testutil.NewNASAContract()
			tt.mutate(c)

			client, err := Generate[nasa.NASA](a, c, "local")
			requireFailure(t, err, StageLoad)
			assert.ErrorIs(t, err, apiaryerrors.ErrStaleUnit)
			assert.ErrorContains(t, err, "digest")
			assert.Nil(t, client)
			assert.Empty(t, srv.Queries())

			_, statErr := os.Stat(a.ArtifactPath(c))
			assert.NoError(t, statErr, "the new source was written and compiled")
		})
	}
}

func TestGenerateClientUnitNotLinked(t *testing.T) {
	t.Run("unknown class", func(t *testing.T) {
		a := newApiary(t, testutil.NewAPODServer(t))
		c := testutil.NewNASAContract()
		c.Config.TargetClassName = "${clientName}Other"

		_, err := a.GenerateClient(c, "local")
		requireFailure(t, err, StageLoad)
		assert.ErrorIs(t, err, apiaryerrors.ErrUnitNotFound)
	})

	t.Run("empty registry", func(t *testing.T) {
		a := newApiary(t, testutil.NewAPODServer(t), WithRegistry(apiclient.NewRegistry()))
		_, err := a.GenerateClient(testutil.NewNASAContract(), "local")
		requireFailure(t, err, StageLoad)
		assert.ErrorIs(t, err, apiaryerrors.ErrUnitNotFound)
	})
}

func TestGenerateWrongInterface(t *testing.T) {
	a := newApiary(t, testutil.NewAPODServer(t))

	_, err := Generate[io.Reader](a, testutil.NewNASAContract(), "local")
	requireFailure(t, err, StageLoad)
	assert.ErrorIs(t, err, apiaryerrors.ErrLoad)
	assert.ErrorContains(t, err, "does not implement io.Reader")
}

func TestRenderAndMaterialize(t *testing.T) {
	a := newApiary(t, testutil.NewAPODServer(t))
	c := testutil.NewNASAContract()

	src, err := a.Render(c, "production")
	require.NoError(t, err)
	assert.Contains(t, string(src), `WithRoute("https://api.nasa.gov/planetary/apod")`)
	_, statErr := os.Stat(a.ArtifactPath(c))
	assert.True(t, os.IsNotExist(statErr), "rendering writes nothing")

	compiled, err := a.Materialize(c, "production")
	require.NoError(t, err)
	assert.Equal(t, a.ArtifactPath(c), compiled.Artifact.Path)
	assert.Equal(t, src, compiled.Artifact.Source)

	_, err = a.Render(c, "nowhere")
	requireFailure(t, err, StageResolve)
}

func TestNewOptions(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	_, err = New("out", WithModuleDir(""))
	assert.Error(t, err)

	_, err = New("out", WithGeneratorOptions(generator.WithTemplate("")))
	assert.Error(t, err)

	a, err := New("out", WithTrimPrefix("github.com/induct/apiary"), WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, "github.com/induct/apiary", a.Layout().TrimPrefix)
	assert.Equal(t, filepath.Join("out", "internal", "nasa", "generated", "NASAImpl.go"), a.ArtifactPath(testutil.NewNASAContract()))
}
