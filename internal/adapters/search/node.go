package search

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cfgtrack/internal/adapters/fs"
	"go.trai.ch/cfgtrack/internal/core/ports"
)

// NodeID is the unique identifier for the config searcher Graft node.
const NodeID graft.ID = "adapter.config_searcher"

func init() {
	graft.Register(graft.Node[ports.ConfigSearcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FileSystemNodeID},
		Run: func(ctx context.Context) (ports.ConfigSearcher, error) {
			fsys, err := graft.Dep[fs.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewSearcher(fsys), nil
		},
	})
}
