package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cfgtrack/internal/adapters/logger"
	"go.trai.ch/cfgtrack/internal/core/ports"
)

// NodeID is the unique identifier for the options loader Graft node.
const NodeID graft.ID = "adapter.options_loader"

func init() {
	graft.Register(graft.Node[ports.OptionsLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.OptionsLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
