package scheduler_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/bundler/internal/core/ports/mocks"
	"go.trai.ch/bundler/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type schedulerTestMocks struct {
	generator *mocks.MockManifestGenerator
	writer    *mocks.MockManifestWriter
	store     *mocks.MockFingerprintStore
	hasher    *mocks.MockHasher
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
}

// setupSchedulerTest creates a scheduler and common mocks.
func setupSchedulerTest(t *testing.T) (*scheduler.Scheduler, schedulerTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := schedulerTestMocks{
		generator: mocks.NewMockManifestGenerator(ctrl),
		writer:    mocks.NewMockManifestWriter(ctrl),
		store:     mocks.NewMockFingerprintStore(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
	}

	m.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ports.ContextWithVertex(ctx, m.vertex), m.vertex
		},
	).AnyTimes()
	m.vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	m.vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	s := scheduler.NewScheduler(m.generator, m.writer, m.store, m.hasher, m.telemetry)
	return s, m
}

func module(name string) *domain.Module {
	return &domain.Module{Name: name, Dir: filepath.Join("/work", name), OutputDir: "target/test-bundle"}
}

func result() *domain.GenerationResult {
	return &domain.GenerationResult{Headers: domain.Headers{domain.HeaderBundleVersion: "1.0.0"}}
}

func TestScheduler_Run_GeneratesAndStores(t *testing.T) {
	s, m := setupSchedulerTest(t)
	mod := module("app")

	m.hasher.EXPECT().ComputeModuleHash(mod).Return("h1", nil)
	m.store.EXPECT().Get("/work", "app").Return(nil, nil)
	m.generator.EXPECT().Generate(gomock.Any(), mod).Return(result(), nil)
	m.writer.EXPECT().Write(filepath.Join("/work/app/target/test-bundle", "META-INF", "MANIFEST.MF"), result().Headers).Return(nil)
	m.store.EXPECT().Put("/work", gomock.Any()).DoAndReturn(func(_ string, fp domain.Fingerprint) error {
		assert.Equal(t, "app", fp.Module)
		assert.Equal(t, "h1", fp.InputHash)
		assert.False(t, fp.Timestamp.IsZero())
		return nil
	})

	err := s.Run(context.Background(), []*domain.Module{mod}, scheduler.Options{Parallelism: 1, Root: "/work"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, s.Status("app"))
}

func TestScheduler_Run_SkipsUnchangedModule(t *testing.T) {
	s, m := setupSchedulerTest(t)
	mod := module("app")

	m.hasher.EXPECT().ComputeModuleHash(mod).Return("h1", nil)
	m.store.EXPECT().Get(gomock.Any(), "app").Return(&domain.Fingerprint{Module: "app", InputHash: "h1"}, nil)
	m.writer.EXPECT().Read(mod.ManifestFile()).Return(domain.Headers{}, nil)
	m.vertex.EXPECT().Cached()

	err := s.Run(context.Background(), []*domain.Module{mod}, scheduler.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCached, s.Status("app"))
}

func TestScheduler_Run_RegeneratesWhenManifestMissing(t *testing.T) {
	s, m := setupSchedulerTest(t)
	mod := module("app")

	m.hasher.EXPECT().ComputeModuleHash(mod).Return("h1", nil)
	m.store.EXPECT().Get(gomock.Any(), "app").Return(&domain.Fingerprint{Module: "app", InputHash: "h1"}, nil)
	m.writer.EXPECT().Read(mod.ManifestFile()).Return(nil, errors.New("no such file"))
	m.generator.EXPECT().Generate(gomock.Any(), mod).Return(result(), nil)
	m.writer.EXPECT().Write(mod.ManifestFile(), gomock.Any()).Return(nil)
	m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, s.Run(context.Background(), []*domain.Module{mod}, scheduler.Options{}))
	assert.Equal(t, domain.StatusCompleted, s.Status("app"))
}

func TestScheduler_Run_ForceBypassesStore(t *testing.T) {
	s, m := setupSchedulerTest(t)
	mod := module("app")

	m.hasher.EXPECT().ComputeModuleHash(mod).Return("h1", nil)
	m.generator.EXPECT().Generate(gomock.Any(), mod).Return(result(), nil)
	m.writer.EXPECT().Write(mod.ManifestFile(), gomock.Any()).Return(nil)
	m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, s.Run(context.Background(), []*domain.Module{mod}, scheduler.Options{Force: true}))
}

func TestScheduler_Run_FailureIsolatedPerModule(t *testing.T) {
	s, m := setupSchedulerTest(t)
	good, bad := module("good"), module("bad")
	genErr := errors.Join(domain.ErrMalformedType, zerr.New("bad magic"))

	m.hasher.EXPECT().ComputeModuleHash(gomock.Any()).Return("h", nil).Times(2)
	m.store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	m.generator.EXPECT().Generate(gomock.Any(), good).Return(result(), nil)
	m.generator.EXPECT().Generate(gomock.Any(), bad).Return(nil, genErr)
	m.writer.EXPECT().Write(good.ManifestFile(), gomock.Any()).Return(nil)
	m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	err := s.Run(context.Background(), []*domain.Module{good, bad}, scheduler.Options{Parallelism: 2})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrMalformedType)
	assert.ErrorContains(t, err, domain.ErrModuleGenerationFailed.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "bad", zErr.Metadata()["module"])

	statuses := s.GetModuleStatusMap()
	assert.Equal(t, domain.StatusCompleted, statuses["good"])
	assert.Equal(t, domain.StatusFailed, statuses["bad"])
}

func TestScheduler_Run_WriteFailureSkipsFingerprint(t *testing.T) {
	s, m := setupSchedulerTest(t)
	mod := module("app")

	m.hasher.EXPECT().ComputeModuleHash(mod).Return("h1", nil)
	m.store.EXPECT().Get(gomock.Any(), "app").Return(nil, nil)
	m.generator.EXPECT().Generate(gomock.Any(), mod).Return(result(), nil)
	m.writer.EXPECT().Write(gomock.Any(), gomock.Any()).Return(domain.ErrManifestWriteFailed)

	err := s.Run(context.Background(), []*domain.Module{mod}, scheduler.Options{})
	require.ErrorIs(t, err, domain.ErrManifestWriteFailed)
	assert.Equal(t, domain.StatusFailed, s.Status("app"))
}

func TestScheduler_Run_StoreReadFailure(t *testing.T) {
	s, m := setupSchedulerTest(t)
	mod := module("app")

	m.hasher.EXPECT().ComputeModuleHash(mod).Return("h1", nil)
	m.store.EXPECT().Get(gomock.Any(), "app").Return(nil, errors.New("corrupt"))

	err := s.Run(context.Background(), []*domain.Module{mod}, scheduler.Options{})
	require.ErrorContains(t, err, domain.ErrStoreReadFailed.Error())
}

func TestScheduler_Run_CancelledContext(t *testing.T) {
	s, _ := setupSchedulerTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, []*domain.Module{module("a"), module("b")}, scheduler.Options{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.StatusPending, s.Status("a"))
	assert.Equal(t, domain.StatusPending, s.Status("b"))
}

func TestScheduler_Run_Parallel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)
		a, b := module("a"), module("b")

		// Each generation waits until both have started, which only
		// completes when the modules run concurrently.
		var started sync.WaitGroup
		started.Add(2)

		m.hasher.EXPECT().ComputeModuleHash(gomock.Any()).Return("h", nil).Times(2)
		m.generator.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, *domain.Module) (*domain.GenerationResult, error) {
				started.Done()
				started.Wait()
				return result(), nil
			},
		).Times(2)
		m.writer.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		err := s.Run(context.Background(), []*domain.Module{a, b}, scheduler.Options{Parallelism: 2, Force: true})
		require.NoError(t, err)
	})
}
