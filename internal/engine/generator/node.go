package generator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundler/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundler/internal/adapters/jar"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundler/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bundler/internal/core/ports"
)

// NodeID is the unique identifier for the generator Graft node.
const NodeID graft.ID = "engine.generator"

func init() {
	graft.Register(graft.Node[ports.ManifestGenerator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ReaderNodeID,
			jar.ReaderNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.ManifestGenerator, error) {
			dirs, err := graft.Dep[ports.DirectoryReader](ctx)
			if err != nil {
				return nil, err
			}

			archives, err := graft.Dep[ports.ArchiveReader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(dirs, archives, log), nil
		},
	})
}
