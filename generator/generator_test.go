package generator

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/induct/apiary/apiclient"
	"github.com/induct/apiary/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nasaNamespace = "github.com/induct/apiary/internal/nasa"

func nasaContract() *contract.Contract {
	return &contract.Contract{
		Name:      "NASA",
		Namespace: nasaNamespace,
		Config: &contract.GenerationConfig{
			ParamFormat:     contract.LowerUnderscore,
			TargetPackage:   "${root}/generated",
			TargetClassName: "${clientName}Impl",
			Environments: []contract.Environment{
				{Name: "local", Root: "http://localhost:9090"},
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

func render(t *testing.T, g *Generator, c *contract.Contract) string {
	t.Helper()
	env, err := contract.ResolveEnvironment(c, "local")
	require.NoError(t, err)
	src, err := g.Render(c, c.TargetPackage(), c.TargetClass(), env)
	require.NoError(t, err)
	return string(src)
}

func mustNew(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := New(opts...)
	require.NoError(t, err)
	return g
}

func TestRenderNASA(t *testing.T) {
	src := render(t, mustNew(t), nasaContract())

	_, err := parser.ParseFile(token.NewFileSet(), "NASAImpl.go", src, parser.AllErrors)
	require.NoError(t, err, src)

	for _, want := range []string{
		"// Code generated by apiary. DO NOT EDIT.",
		"package generated",
		`"context"`,
		`"time"`,
		`"github.com/induct/apiary/apiclient"`,
		`"github.com/induct/apiary/inject"`,
		`"github.com/induct/apiary/internal/nasa"`,
		`const NASAImplUnitName = "github.com/induct/apiary/internal/nasa/generated.NASAImpl"`,
		"apiclient.Register(apiclient.Unit{",
		"Name:        NASAImplUnitName,",
		`Environment: "local",`,
		`Root:        "http://localhost:9090",`,
		`Digest:      "`,
		"return NewNASAImpl(r)",
		"var _ nasa.NASA = (*NASAImpl)(nil)",
		"func NewNASAImpl(r inject.Resolver) (*NASAImpl, error) {",
		"func (c *NASAImpl) Apod(ctx context.Context, date *time.Time, conceptTags *bool, hd *bool, apiKey string) (*nasa.ApodImage, error) {",
		`WithRoute("http://localhost:9090/planetary/apod").`,
		"if date != nil {",
		`params.Put("date", *date)`,
		`params.Put("concept_tags", *conceptTags)`,
		`params.Put("hd", *hd)`,
		`params.Put("api_key", apiKey)`,
		"return apiclient.Call[nasa.ApodImage](c.Base, req)",
		"// Apod calls GET http://localhost:9090/planetary/apod.",
	} {
		assert.Contains(t, src, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	g := mustNew(t)
	first := render(t, g, nasaContract())
	second := render(t, g, nasaContract())
	assert.Equal(t, first, second)
}

func TestRenderRequiredParamIsUnguarded(t *testing.T) {
	src := render(t, mustNew(t), nasaContract())
	assert.NotContains(t, src, "if apiKey != nil")
	assert.Equal(t, 3, strings.Count(src, "!= nil {\n\t\t\t\tparams.Put("))
}

func TestRenderWithoutParams(t *testing.T) {
	c := nasaContract()
	c.Calls[0].Params = nil

	src := render(t, mustNew(t), c)
	assert.NotContains(t, src, "WithParams")
	assert.Contains(t, src, "func (c *NASAImpl) Apod(ctx context.Context) (*nasa.ApodImage, error) {")
	assert.NotContains(t, src, `"time"`)
}

func TestRenderWithoutCalls(t *testing.T) {
	c := nasaContract()
	c.Calls = nil

	src := render(t, mustNew(t), c)
	_, err := parser.ParseFile(token.NewFileSet(), "NASAImpl.go", src, parser.AllErrors)
	require.NoError(t, err)
	assert.NotContains(t, src, `"context"`)
	assert.Contains(t, src, "var _ nasa.NASA = (*NASAImpl)(nil)")
}

func TestRenderPathComposition(t *testing.T) {
	tests := []struct {
		root  string
		path  string
		route string
	}{
		{"http://localhost:9090", "/planetary/apod", "http://localhost:9090/planetary/apod"},
		{"http://localhost:9090/", "/planetary/apod", "http://localhost:9090//planetary/apod"},
		{"https://api.nasa.gov", "", "https://api.nasa.gov"},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			c := nasaContract()
			c.Calls[0].Path = tt.path
			env := contract.Environment{Name: "local", Root: tt.root}

			src, err := mustNew(t).Render(c, c.TargetPackage(), c.TargetClass(), env)
			require.NoError(t, err)
			assert.Contains(t, string(src), "WithRoute("+`"`+tt.route+`"`+")")
		})
	}
}

func TestRenderParamFormats(t *testing.T) {
	tests := []struct {
		format contract.ParamFormat
		key    string
	}{
		{contract.LowerCamel, "conceptTags"},
		{contract.UpperCamel, "ConceptTags"},
		{contract.LowerUnderscore, "concept_tags"},
		{contract.UpperUnderscore, "CONCEPT_TAGS"},
		{contract.LowerHyphen, "concept-tags"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			c := nasaContract()
			c.Config.ParamFormat = tt.format
			src := render(t, mustNew(t), c)
			assert.Contains(t, src, `params.Put("`+tt.key+`", *conceptTags)`)
		})
	}
}

func TestRenderEscapesLocalNames(t *testing.T) {
	c := nasaContract()
	c.Calls[0].Params = []contract.Parameter{
		{Name: "ctx", Type: "string"},
		{Name: "nasa", Type: "int"},
		{Name: "ctx_", Type: "string"},
	}

	src := render(t, mustNew(t), c)
	assert.Contains(t, src, "Apod(ctx context.Context, ctx_ string, nasa_ int, ctx__ string)")
	assert.Contains(t, src, `params.Put("ctx", ctx_)`)
	assert.Contains(t, src, `params.Put("nasa", nasa_)`)
}

func TestRenderNilableOptional(t *testing.T) {
	c := nasaContract()
	c.Calls[0].Params = []contract.Parameter{
		{Name: "tags", Type: "[]string", Optional: true},
	}

	src := render(t, mustNew(t), c)
	assert.Contains(t, src, "Apod(ctx context.Context, tags []string)")
	assert.Contains(t, src, `params.Put("tags", tags)`)
}

func TestRenderIntoNamespacePackage(t *testing.T) {
	c := nasaContract()
	c.Config.TargetPackage = "${root}"

	src := render(t, mustNew(t), c)
	assert.Contains(t, src, "package nasa")
	assert.Contains(t, src, "var _ NASA = (*NASAImpl)(nil)")
	assert.Contains(t, src, "(*ApodImage, error)")
	assert.NotContains(t, src, `"github.com/induct/apiary/internal/nasa"`)
}

func TestRenderDocComments(t *testing.T) {
	c := nasaContract()
	c.Description = "talks to the APOD service."
	c.Calls[0].Doc = "Apod returns the picture of the day.\n\nDates before 1995 are rejected."

	src := render(t, mustNew(t), c)
	assert.Contains(t, src, "// NASAImpl talks to the APOD service.\ntype NASAImpl struct")
	assert.Contains(t, src, "// Apod returns the picture of the day.\n// Dates before 1995 are rejected.\nfunc (c *NASAImpl) Apod(")
}

func TestRenderCorruptedTemplate(t *testing.T) {
	g := mustNew(t, WithTemplate("package {{.PackageName}}\n\nfunc broken( {\n"))

	src := render(t, g, nasaContract())
	assert.Equal(t, "package generated\n\nfunc broken( {\n", src)
}

func TestRenderTemplateExecutionError(t *testing.T) {
	g := mustNew(t, WithTemplate("package {{.Missing}}\n"))

	c := nasaContract()
	_, err := g.Render(c, c.TargetPackage(), c.TargetClass(), c.Config.Environments[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, apiaryerrors.ErrGeneration)
}

func TestRenderRejectsUnusableContracts(t *testing.T) {
	g := mustNew(t)
	env := contract.Environment{Name: "local", Root: "http://x"}

	_, err := g.Render(nil, "example.com/x", "Client", env)
	assert.ErrorIs(t, err, apiaryerrors.ErrValidation)

	c := nasaContract()
	c.Config = nil
	_, err = g.Render(c, "example.com/x", "Client", env)
	assert.ErrorIs(t, err, apiaryerrors.ErrValidation)

	c = nasaContract()
	c.Calls[0].Returns = "map[string"
	_, err = g.Render(c, "example.com/x", "Client", env)
	assert.ErrorIs(t, err, apiaryerrors.ErrValidation)
}

func TestNewOptions(t *testing.T) {
	_, err := New(WithTemplate("   "))
	assert.Error(t, err)

	_, err = New(WithTemplate("{{if}}"))
	assert.ErrorContains(t, err, "parsing template")

	g, err := New(WithLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, g.logger)
}

func TestRenderAllOptionalParamsGuarded(t *testing.T) {
	c := nasaContract()
	c.Calls = []contract.CallDescriptor{{
		Name:    "find",
		Path:    "/find",
		Returns: "ApodImage",
		Params: []contract.Parameter{
			{Name: "a", Type: "string", Optional: true},
			{Name: "b", Type: "[]int", Optional: true},
		},
	}}

	src := render(t, mustNew(t), c)
	assert.Contains(t, src, "func (c *NASAImpl) Find(ctx context.Context, a *string, b []int) (*nasa.ApodImage, error) {")
	assert.Contains(t, src, "if a != nil {\n\t\t\t\tparams.Put(\"a\", *a)")
	assert.Contains(t, src, "if b != nil {\n\t\t\t\tparams.Put(\"b\", b)")
	assert.Equal(t, 2, strings.Count(src, "params.Put("))
	assert.Equal(t, 2, strings.Count(src, "!= nil {\n\t\t\t\tparams.Put("), "every put is guarded")
}

func TestRenderStampsDigest(t *testing.T) {
	g := mustNew(t)
	src := render(t, g, nasaContract())

	digest := apiclient.SourceDigest([]byte(src))
	assert.Contains(t, src, `Digest:      "`+digest+`",`)
	assert.NotContains(t, src, digestPlaceholder)

	changed := nasaContract()
	changed.Config.ParamFormat = contract.LowerCamel
	other := render(t, g, changed)
	assert.NotEqual(t, digest, apiclient.SourceDigest([]byte(other)))

	moved := nasaContract()
	moved.Calls[0].Path = "/planetary/apod/v2"
	assert.NotEqual(t, digest, apiclient.SourceDigest([]byte(render(t, g, moved))))
}

func TestStampDigestWithoutPlaceholder(t *testing.T) {
	src := []byte("package p\n")
	assert.Equal(t, src, stampDigest(src))
}
