package sortconfig

import (
	"context"
	"time"

	"github.com/rudderlabs/rudder-go-kit/logger"
	"github.com/rudderlabs/rudder-go-kit/stats"

	"github.com/streamforge/flowsync/jsonrs"
	"github.com/streamforge/flowsync/protocol"
)

type coordinationStore interface {
	UpsertDataFlow(ctx context.Context, clusterName string, sinkID int64, payload []byte) error
	RegisterDataFlow(ctx context.Context, clusterName string, sinkID int64) error
}

// Publisher pushes a synthesized descriptor to the coordination store:
// first the serialized descriptor under the (cluster, sink) key, then
// the sink's membership in the cluster's sink set. The two steps are
// not atomic; a failure between them leaves the descriptor written but
// unregistered, and re-driving the invocation repairs it.
type Publisher struct {
	log   logger.Logger
	stats stats.Stats
	store coordinationStore
}

func NewPublisher(log logger.Logger, statsFactory stats.Stats, store coordinationStore) *Publisher {
	return &Publisher{
		log:   log.Child("publisher"),
		stats: statsFactory,
		store: store,
	}
}

// Publish writes one descriptor. Any store failure is wrapped in a
// PublishError carrying the sink id; the caller aborts the rest of the
// batch without rolling back sinks already published.
func (p *Publisher) Publish(ctx context.Context, flow *protocol.DataFlowInfo, clusterName string) error {
	startedAt := time.Now()

	payload, err := jsonrs.Marshal(flow)
	if err != nil {
		return &PublishError{SinkID: flow.SinkID, Err: err}
	}
	p.log.Debugf("pushing data flow config for sink %d to cluster %s: %s", flow.SinkID, clusterName, string(payload))

	if err := p.store.UpsertDataFlow(ctx, clusterName, flow.SinkID, payload); err != nil {
		p.countPublish(clusterName, false)
		return &PublishError{SinkID: flow.SinkID, Err: err}
	}
	if err := p.store.RegisterDataFlow(ctx, clusterName, flow.SinkID); err != nil {
		p.countPublish(clusterName, false)
		return &PublishError{SinkID: flow.SinkID, Err: err}
	}

	p.countPublish(clusterName, true)
	p.stats.NewTaggedStat("sortconfig_publish_time", stats.TimerType, stats.Tags{
		"cluster": clusterName,
	}).Since(startedAt)
	return nil
}

func (p *Publisher) countPublish(clusterName string, success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	p.stats.NewTaggedStat("sortconfig_publish_count", stats.CountType, stats.Tags{
		"cluster": clusterName,
		"status":  status,
	}).Increment()
}
