package pluginconfig

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cfgtrack/internal/adapters/search" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cfgtrack/internal/core/ports"
)

// RegistryNodeID is the unique identifier for the config handle registry Graft node.
const RegistryNodeID graft.ID = "engine.pluginconfig.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{search.NodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			searcher, err := graft.Dep[ports.ConfigSearcher](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(searcher), nil
		},
	})
}
