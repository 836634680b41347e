package sortconfig

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	"github.com/rudderlabs/rudder-go-kit/stats"

	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/protocol"
)

type groupStore interface {
	GetByIdentifier(ctx context.Context, groupID string) (*model.GroupInfo, error)
}

type sinkStore interface {
	SelectAllConfigs(ctx context.Context, groupID, streamID string) ([]model.SinkConfig, error)
}

type synthesizer interface {
	Synthesize(ctx context.Context, group *model.GroupInfo, sinks []model.SinkConfig) ([]*protocol.DataFlowInfo, error)
}

type publisher interface {
	Publish(ctx context.Context, flow *protocol.DataFlowInfo, clusterName string) error
}

// Listener is the synchronous trigger entry point. The invoking
// workflow engine blocks on Run and gates subsequent workflow progress
// on its result.
type Listener struct {
	log         logger.Logger
	stats       stats.Stats
	groups      groupStore
	sinks       sinkStore
	synthesizer synthesizer
	publisher   publisher

	config struct {
		clusterName string
	}
}

func NewListener(
	conf *config.Config,
	log logger.Logger,
	statsFactory stats.Stats,
	groups groupStore,
	sinks sinkStore,
	synthesizer synthesizer,
	publisher publisher,
) *Listener {
	l := &Listener{
		log:         log.Child("listener"),
		stats:       statsFactory,
		groups:      groups,
		sinks:       sinks,
		synthesizer: synthesizer,
		publisher:   publisher,
	}
	l.config.clusterName = conf.GetString("Sort.clusterName", "sort-cluster")
	return l
}

// Run synthesizes and publishes the data-flow descriptors in scope:
// every sink of the group, or only those of one stream when streamID is
// non-empty. An absent or deleted group is an idempotent no-op, not an
// error. Sinks are processed sequentially and the first failure aborts
// the remainder of the batch.
func (l *Listener) Run(ctx context.Context, groupID, streamID string) error {
	startedAt := time.Now()

	group, err := l.groups.GetByIdentifier(ctx, groupID)
	if err != nil {
		return fmt.Errorf("loading group %s: %w", groupID, err)
	}
	if group == nil || group.IsDeleted {
		l.log.Warnf("skipping sort config push for group %s: group does not exist or has been deleted", groupID)
		return nil
	}

	sinks, err := l.sinks.SelectAllConfigs(ctx, groupID, streamID)
	if err != nil {
		return fmt.Errorf("loading sink configs for group %s: %w", groupID, err)
	}

	flows, err := l.synthesizer.Synthesize(ctx, group, sinks)
	if err != nil {
		return fmt.Errorf("synthesizing data flows for group %s, stream %q: %w", groupID, streamID, err)
	}

	for _, flow := range flows {
		if err := l.publisher.Publish(ctx, flow, l.config.clusterName); err != nil {
			return fmt.Errorf("group %s: %w", groupID, err)
		}
	}

	l.stats.NewTaggedStat("sortconfig_listener_run_time", stats.TimerType, stats.Tags{
		"cluster": l.config.clusterName,
	}).Since(startedAt)
	sinkIDs := lo.Map(flows, func(flow *protocol.DataFlowInfo, _ int) int64 { return flow.SinkID })
	l.log.Infof("pushed data flow configs for group %s, sinks %v to cluster %s", groupID, sinkIDs, l.config.clusterName)
	return nil
}
