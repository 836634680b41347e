package sortconfig

import (
	"context"

	"github.com/google/uuid"
	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/protocol"
)

type fieldStore interface {
	SelectFields(ctx context.Context, groupID, streamID string) ([]model.StreamField, error)
}

// Synthesizer turns a group's sink configs into data-flow descriptors.
type Synthesizer struct {
	log        logger.Logger
	fields     fieldStore
	source     *SourceBuilder
	newBatchID func() string
}

func NewSynthesizer(log logger.Logger, fields fieldStore, source *SourceBuilder) *Synthesizer {
	return &Synthesizer{
		log:        log.Child("synthesizer"),
		fields:     fields,
		source:     source,
		newBatchID: uuid.NewString,
	}
}

// Synthesize builds one descriptor per sink config, all sharing a
// batch-scoped correlation id. The first failing sink aborts the call;
// no partial list is returned.
func (s *Synthesizer) Synthesize(ctx context.Context, group *model.GroupInfo, sinks []model.SinkConfig) ([]*protocol.DataFlowInfo, error) {
	batchID := s.newBatchID()

	flows := make([]*protocol.DataFlowInfo, 0, len(sinks))
	for _, sink := range sinks {
		flow, err := s.synthesizeOne(ctx, group, sink)
		if err != nil {
			return nil, err
		}
		flow.Properties[protocol.BatchIDPropertyKey] = batchID
		flows = append(flows, flow)
	}
	return flows, nil
}

func (s *Synthesizer) synthesizeOne(ctx context.Context, group *model.GroupInfo, sink model.SinkConfig) (*protocol.DataFlowInfo, error) {
	fields, err := s.fields.SelectFields(ctx, sink.GroupID, sink.StreamID)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, validationErrorf("no sink fields for group %s, stream %s", sink.GroupID, sink.StreamID)
	}

	params, err := model.DecodeWarehouseSinkParams(sink.ExtParams)
	if err != nil {
		return nil, validationErrorf("sink %d: %s", sink.ID, err.Error())
	}

	source, err := s.source.Build(group, sink, fields)
	if err != nil {
		return nil, err
	}

	sinkInfo, err := buildSinkInfo(params, fields)
	if err != nil {
		return nil, err
	}

	s.log.Debugf("synthesized data flow for sink %d (group %s, stream %s)", sink.ID, sink.GroupID, sink.StreamID)

	return &protocol.DataFlowInfo{
		SinkID: sink.ID,
		Source: source,
		Sink:   sinkInfo,
		Properties: map[string]string{
			protocol.GroupIDPropertyKey: group.GroupID,
		},
	}, nil
}
