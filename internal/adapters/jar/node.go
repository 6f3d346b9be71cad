package jar

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundler/internal/adapters/fs"
	"go.trai.ch/bundler/internal/adapters/logger"
	"go.trai.ch/bundler/internal/core/ports"
)

const (
	ReaderNodeID    graft.ID = "adapter.jar.reader"
	WriterNodeID    graft.ID = "adapter.jar.manifest_writer"
	AssemblerNodeID graft.ID = "adapter.jar.assembler"
)

func init() {
	graft.Register(graft.Node[ports.ArchiveReader]{
		ID:        ReaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArchiveReader, error) {
			return NewReader(), nil
		},
	})

	graft.Register(graft.Node[ports.ManifestWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestWriter, error) {
			return NewManifestWriter(), nil
		},
	})

	graft.Register(graft.Node[ports.BundleAssembler]{
		ID:        AssemblerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.BundleAssembler, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewAssembler(walker, log), nil
		},
	})
}
