package stubgen

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"github.com/broady/stubgen/stubgen/annotation"
	"github.com/broady/stubgen/stubgen/ir"
	"github.com/broady/stubgen/stubgen/provider"
	"github.com/broady/stubgen/stubgen/sink"
)

// goldenConfig is the config.yaml section of a golden archive.
type goldenConfig struct {
	Frontmatter  string `yaml:"frontmatter"`
	UnknownType  string `yaml:"unknownType"`
	EmitComments bool   `yaml:"emitComments"`
}

func TestGenerateRecords_Golden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, file := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)

			var (
				gc       goldenConfig
				enum     *provider.Result
				warnings = []string{}
				want     = map[string]string{}
			)
			for _, f := range ar.Files {
				switch {
				case f.Name == "config.yaml":
					require.NoError(t, yaml.Unmarshal(f.Data, &gc))
				case strings.HasPrefix(f.Name, "input."):
					enum, err = provider.Decode(f.Data, provider.FormatFromPath(f.Name), f.Name)
					require.NoError(t, err)
				case f.Name == "warnings":
					warnings = append(warnings, strings.Fields(string(f.Data))...)
				case strings.HasPrefix(f.Name, "out/"):
					want[strings.TrimPrefix(f.Name, "out/")] = string(f.Data)
				}
			}
			require.NotNil(t, enum, "archive has no input file")

			mem := sink.NewMemorySink()
			res, err := GenerateRecords(context.Background(), enum.Records, &Config{
				Frontmatter:  gc.Frontmatter,
				UnknownType:  gc.UnknownType,
				EmitComments: gc.EmitComments,
				Sink:         mem,
			})
			require.NoError(t, err)

			codes := []string{}
			for _, w := range append(enum.Warnings, res.Warnings...) {
				codes = append(codes, w.Code)
			}
			assert.Equal(t, warnings, codes)

			got := mem.Files()
			assert.Len(t, got, len(want))
			for p, content := range want {
				assert.Equal(t, content, string(got[p]), "file %s", p)
			}
		})
	}
}

func TestGenerateRecords_OrderIndependentOfConcurrency(t *testing.T) {
	var records []provider.Record
	for _, name := range []string{"AView", "BView", "CView", "DView", "EView", "FView"} {
		records = append(records, provider.Record{
			Name:    name,
			Path:    "Lote/" + name,
			Methods: []provider.Method{{Name: "listar"}},
		})
	}

	for _, n := range []int{1, 3, 16} {
		res, err := GenerateRecords(context.Background(), records, &Config{
			Concurrency: n,
			Sink:        sink.NewMemorySink(),
		})
		require.NoError(t, err)
		require.Len(t, res.Files, len(records))
		for i, f := range res.Files {
			assert.Equal(t, "Lote/"+records[i].Name+".ts", f.Path)
			assert.Equal(t, records[i].Name, f.Record)
			assert.Equal(t, 1, f.Methods)
			assert.Equal(t, len(f.Content), f.Size)
		}
		assert.Equal(t, len(records), res.Methods())
	}
}

type failingSink struct{}

func (failingSink) WriteFile(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestGenerateRecords_SinkErrorIsFatal(t *testing.T) {
	_, err := GenerateRecords(context.Background(), []provider.Record{
		{Name: "EcommerceView", Path: "EcommerceView"},
	}, &Config{Sink: failingSink{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write EcommerceView.ts")
	assert.Contains(t, err.Error(), "disk full")
}

func TestGenerateRecords_PathWarningsCarrySource(t *testing.T) {
	res, err := GenerateRecords(context.Background(), []provider.Record{
		{Name: "AView", Path: "A/View", Source: &ir.Source{File: "src/A/View.php", Line: 3}},
		{Name: "BView", Path: "A/View", Source: &ir.Source{File: "src/B/View.php", Line: 9}},
		{Name: "CView", Path: "../CView", Source: &ir.Source{File: "src/CView.php", Line: 5}},
	}, &Config{Sink: sink.NewMemorySink()})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	require.Len(t, res.Warnings, 2)

	assert.Equal(t, ir.WarnDuplicatePath, res.Warnings[0].Code)
	assert.Equal(t, "src/B/View.php:9", res.Warnings[0].Source.String())
	assert.Equal(t, ir.WarnInvalidPath, res.Warnings[1].Code)
	assert.Equal(t, "src/CView.php:5", res.Warnings[1].Source.String())
}

func TestGenerateRecords_Filesystem(t *testing.T) {
	dir := t.TempDir()
	res, err := GenerateRecords(context.Background(), []provider.Record{
		{Name: "UsuarioView", Path: "Admin/UsuarioView", Methods: []provider.Method{{Name: "listar"}}},
	}, &Config{OutDir: dir})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	data, err := os.ReadFile(filepath.Join(dir, "Admin", "UsuarioView.ts"))
	require.NoError(t, err)
	assert.Equal(t, res.Files[0].Content, data)
}

func TestBuildClass(t *testing.T) {
	rec := provider.Record{
		Name: "EcommerceView",
		Path: "EcommerceView",
		Methods: []provider.Method{
			{Name: "__construct"},
			{Name: "_privado"},
			{
				Name: "salvar",
				Doc:  "Salva o registro.",
				Parameters: []provider.Parameter{
					{Name: "idLoja"},
					{Name: "codigo"},
					{Name: "ativo", Optional: true, Default: &annotation.Literal{Value: true}},
				},
				Return: provider.ReturnType{DocType: "int"},
			},
		},
	}

	class := BuildClass(rec, annotation.Rules{annotation.PrefixRule("cod", "string")})
	assert.Equal(t, "EcommerceView", class.Name)
	require.Equal(t, []string{"salvar"}, class.MethodNames())

	m := class.Methods[0]
	assert.Equal(t, "Ecommerce", m.ClassPath)
	assert.Equal(t, "Salva o registro.", m.Doc)
	assert.True(t, ir.Equal(ir.Number(), m.Returns))

	require.Len(t, m.Parameters, 3)
	// Only the supplied rules apply: "idLoja" is unresolved.
	assert.True(t, ir.IsUnknown(m.Parameters[0].Type))
	assert.True(t, ir.Equal(ir.String(), m.Parameters[1].Type))
	assert.True(t, ir.Equal(ir.Boolean(), m.Parameters[2].Type))
	assert.True(t, m.Parameters[2].Optional)
}

func TestBuildClass_ReturnIgnoresRules(t *testing.T) {
	rec := provider.Record{Name: "XView", Path: "XView", Methods: []provider.Method{{Name: "id"}}}
	class := BuildClass(rec, annotation.DefaultRules())
	require.Len(t, class.Methods, 1)
	assert.True(t, ir.IsUnknown(class.Methods[0].Returns))
}

func TestGenerate_EnumerationFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	mem := sink.NewMemorySink()
	res, err := Generate(context.Background(), &Config{
		Command: "sh -c 'echo boom >&2; exit 3'",
		Sink:    mem,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Empty(t, mem.Paths())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, ir.WarnEnumerationFailed, res.Warnings[0].Code)
	assert.Contains(t, res.Warnings[0].Message, "boom")
}

func TestGenerate_UnparsableOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	res, err := Generate(context.Background(), &Config{
		Command: "echo 'Fatal error: not json'",
		Sink:    sink.NewMemorySink(),
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, ir.WarnEnumerationFailed, res.Warnings[0].Code)
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, &Config{
		Provider:  ProviderPHP,
		SourceDir: filepath.Join("provider", "testdata", "src", "Services", "View"),
		Sink:      sink.NewMemorySink(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_PHPSource(t *testing.T) {
	mem := sink.NewMemorySink()
	res, err := Generate(context.Background(), &Config{
		Provider:  ProviderPHP,
		SourceDir: filepath.Join("provider", "testdata", "src", "Services", "View"),
		Sink:      mem,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Admin/UsuarioView.ts", "EcommerceView.ts"}, mem.Paths())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, ir.WarnNoClass, res.Warnings[0].Code)

	ecommerce := string(mem.Get("EcommerceView.ts"))
	assert.Contains(t, ecommerce, "export const EcommerceView = {")
	assert.Contains(t, ecommerce, `"metd": "obterSelectEcommerces"`)
	assert.NotContains(t, ecommerce, "__construct")
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		cfg     Config
		name    string
		wantErr string
	}{
		{cfg: Config{}, name: "command"},
		{cfg: Config{Provider: ProviderPHP}, name: "php"},
		{cfg: Config{Provider: ProviderFile, InputFile: "sigs.json"}, name: "file"},
		{cfg: Config{Provider: ProviderFile}, wantErr: "InputFile is required"},
		{cfg: Config{Provider: "reflection"}, wantErr: `unknown provider: "reflection"`},
	}
	for _, tt := range tests {
		p, err := NewProvider(&tt.cfg)
		if tt.wantErr != "" {
			assert.ErrorContains(t, err, tt.wantErr)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.name, p.Name())
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	in := &Config{}
	got := applyConfigDefaults(in)

	assert.Equal(t, ProviderCommand, got.Provider)
	assert.Equal(t, DefaultCommand, got.Command)
	assert.Equal(t, DefaultOutDir, got.OutDir)
	assert.Equal(t, DefaultConcurrency, got.Concurrency)
	assert.Len(t, got.Rules, 1)
	fs, ok := got.Sink.(*sink.FilesystemSink)
	require.True(t, ok)
	assert.Equal(t, DefaultOutDir, fs.Root)

	// Input is not mutated.
	assert.Empty(t, in.Provider)
	assert.Nil(t, in.Sink)

	// An explicitly empty rule list stays empty.
	got = applyConfigDefaults(&Config{Rules: annotation.Rules{}})
	assert.Empty(t, got.Rules)
}

func TestGenerator_Fluent(t *testing.T) {
	rec := provider.Record{
		Name: "PedidoView",
		Path: "PedidoView",
		Methods: []provider.Method{{
			Name:       "buscar",
			Parameters: []provider.Parameter{{Name: "codPedido"}, {Name: "idCliente"}},
		}},
	}

	res, err := FromRecords(rec).
		WithRule(annotation.PrefixRule("cod", "string")).
		Frontmatter("// header").
		UnknownType("unknown").
		Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	out := string(res.Files[0].Content)
	assert.True(t, strings.HasPrefix(out, "// header\n"), out)
	assert.Contains(t, out, "\tcodPedido: string,\n")
	assert.Contains(t, out, "\tidCliente: number | string\n")

	res, err = FromRecords(rec).WithoutDefaultRules().UnknownType("unknown").Generate(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(res.Files[0].Content), "\tidCliente: unknown\n")
}

func TestGenerator_FromFileToDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sigs.yaml")
	require.NoError(t, os.WriteFile(input, []byte(`
- name: CaixaView
  path: Loja/CaixaView
  methods:
    - name: fechar
      returnType: {type: bool}
`), 0o644))

	out := filepath.Join(dir, "views")
	res, err := FromFile(input).ToDir(context.Background(), out)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, path.Join("Loja", "CaixaView.ts"), res.Files[0].Path)

	data, err := os.ReadFile(filepath.Join(out, "Loja", "CaixaView.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<TResponse = boolean>() {")
}
