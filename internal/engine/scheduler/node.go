package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundler/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundler/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundler/internal/adapters/jar"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundler/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/bundler/internal/engine/generator"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			generator.NodeID,
			jar.WriterNodeID,
			cas.NodeID,
			fs.HasherNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			gen, err := graft.Dep[ports.ManifestGenerator](ctx)
			if err != nil {
				return nil, err
			}

			writer, err := graft.Dep[ports.ManifestWriter](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.FingerprintStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(gen, writer, store, hasher, tel), nil
		},
	})
}
