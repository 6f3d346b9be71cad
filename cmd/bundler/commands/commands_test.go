package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/cmd/bundler/commands"
	"go.trai.ch/bundler/internal/app"
	"go.trai.ch/bundler/internal/build"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type mockApp struct {
	generateFunc func(ctx context.Context, cwd string, names []string, opts app.GenerateOptions) ([]app.ModuleReport, error)
	assembleFunc func(ctx context.Context, cwd string, names []string) error
	inspectFunc  func(ctx context.Context, cwd, name string) (*domain.Module, *domain.GenerationResult, error)
	cleanFunc    func(ctx context.Context, cwd string) error
}

func (m *mockApp) Generate(ctx context.Context, cwd string, names []string, opts app.GenerateOptions) ([]app.ModuleReport, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, cwd, names, opts)
	}
	return nil, nil
}

func (m *mockApp) Assemble(ctx context.Context, cwd string, names []string) error {
	if m.assembleFunc != nil {
		return m.assembleFunc(ctx, cwd, names)
	}
	return nil
}

func (m *mockApp) Inspect(ctx context.Context, cwd, name string) (*domain.Module, *domain.GenerationResult, error) {
	if m.inspectFunc != nil {
		return m.inspectFunc(ctx, cwd, name)
	}
	return nil, nil, errors.New("not configured")
}

func (m *mockApp) Clean(ctx context.Context, cwd string) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, cwd)
	}
	return nil
}

// jsonLogger records the JSON setting applied by the root command.
type jsonLogger struct {
	*mocks.MockLogger
	json *bool
}

func (l jsonLogger) SetJSON(enable bool) { *l.json = enable }

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a, nil)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(t.Context())
	return buf.String(), err
}

func TestCommands_Generate(t *testing.T) {
	t.Run("wires flags and modules", func(t *testing.T) {
		var gotCwd string
		var gotNames []string
		var gotOpts app.GenerateOptions
		a := &mockApp{
			generateFunc: func(_ context.Context, cwd string, names []string, opts app.GenerateOptions) ([]app.ModuleReport, error) {
				gotCwd, gotNames, gotOpts = cwd, names, opts
				return []app.ModuleReport{{Name: "api", Status: domain.StatusCompleted}}, nil
			},
		}

		out, err := execute(t, a, "generate", "api", "--force", "-p", "3", "-C", "/work")
		require.NoError(t, err)
		assert.Equal(t, "/work", gotCwd)
		assert.Equal(t, []string{"api"}, gotNames)
		assert.Equal(t, app.GenerateOptions{Force: true, Parallelism: 3}, gotOpts)
		assert.Contains(t, out, "completed")
	})

	t.Run("prints report and returns failure", func(t *testing.T) {
		a := &mockApp{
			generateFunc: func(context.Context, string, []string, app.GenerateOptions) ([]app.ModuleReport, error) {
				return []app.ModuleReport{{Name: "api", Status: domain.StatusFailed}}, domain.ErrGenerationFailed
			},
		}

		out, err := execute(t, a, "generate")
		require.ErrorIs(t, err, domain.ErrGenerationFailed)
		assert.Contains(t, out, "failed")
	})
}

func TestCommands_Assemble(t *testing.T) {
	var gotNames []string
	a := &mockApp{
		assembleFunc: func(_ context.Context, _ string, names []string) error {
			gotNames = names
			return nil
		},
	}

	_, err := execute(t, a, "assemble", "api", "core")
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "core"}, gotNames)
}

func TestCommands_Inspect(t *testing.T) {
	t.Run("renders result", func(t *testing.T) {
		a := &mockApp{
			inspectFunc: func(_ context.Context, _ string, name string) (*domain.Module, *domain.GenerationResult, error) {
				return &domain.Module{Name: name, Dir: "/work/api"},
					&domain.GenerationResult{Headers: domain.Headers{domain.HeaderBundleVersion: "1.0.0"}}, nil
			},
		}

		out, err := execute(t, a, "inspect", "api")
		require.NoError(t, err)
		assert.Contains(t, out, "Module api")
		assert.Contains(t, out, "Bundle-Version")
	})

	t.Run("requires one module", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "inspect")
		require.Error(t, err)
	})
}

func TestCommands_Clean(t *testing.T) {
	called := false
	a := &mockApp{
		cleanFunc: func(_ context.Context, cwd string) error {
			called = true
			assert.Equal(t, "/work", cwd)
			return nil
		},
	}

	_, err := execute(t, a, "clean", "--dir", "/work")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "bundler version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}

func TestCommands_JSONLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	enabled := false
	logger := jsonLogger{MockLogger: mocks.NewMockLogger(ctrl), json: &enabled}

	cli := commands.New(&mockApp{}, logger)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"clean", "--json-logs"})

	require.NoError(t, cli.Execute(t.Context()))
	assert.True(t, enabled)
}
