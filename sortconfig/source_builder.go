package sortconfig

import (
	"strconv"
	"strings"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/protocol"
)

const consumerGroupSuffix = "_consumer_group"

// SourceBuilder resolves the source half of a data-flow descriptor:
// middleware dispatch, deserialization policy and the middleware's
// connection coordinates.
type SourceBuilder struct {
	log logger.Logger

	config struct {
		appName           string
		tubeMasterAddress string
		pulsarTenant      string
		pulsarAdminURL    string
		pulsarServiceURL  string
	}
}

func NewSourceBuilder(conf *config.Config, log logger.Logger) *SourceBuilder {
	b := &SourceBuilder{
		log: log.Child("sourcebuilder"),
	}
	b.config.appName = conf.GetString("Sort.appName", "flowsync")
	b.config.tubeMasterAddress = conf.GetString("Sort.tubeMasterAddress", "")
	b.config.pulsarTenant = conf.GetString("Sort.pulsarTenant", "public")
	b.config.pulsarAdminURL = conf.GetString("Sort.pulsarAdminUrl", "")
	b.config.pulsarServiceURL = conf.GetString("Sort.pulsarServiceUrl", "")
	return b
}

// Build resolves the source descriptor for one sink. A group with an
// unrecognized middleware tag yields (nil, nil): the descriptor is
// published without source information rather than failing the batch.
func (b *SourceBuilder) Build(group *model.GroupInfo, sink model.SinkConfig, fields []model.StreamField) (protocol.SourceInfo, error) {
	deserialization, err := deserializationFor(sink)
	if err != nil {
		return nil, err
	}

	sourceFields, err := buildSourceFields(fields)
	if err != nil {
		return nil, err
	}

	switch model.FromMiddlewareType(group.MiddlewareType) {
	case model.MiddlewareTube:
		return b.buildTubeSource(group, deserialization, sourceFields)
	case model.MiddlewarePulsar:
		return b.buildPulsarSource(group, sink, deserialization, sourceFields)
	default:
		b.log.Warnf("unrecognized middleware type %q for group %s, descriptor will carry no source",
			group.MiddlewareType, group.GroupID)
		return nil, nil
	}
}

// deserializationFor applies the deserialization-selection policy: sinks
// not fed from a DB whose raw representation is TEXT or KEY-VALUE get a
// delimited-envelope decoder keyed by stream id; everything else is raw
// passthrough.
func deserializationFor(sink model.SinkConfig) (protocol.DeserializationInfo, error) {
	if sink.DataSourceType == model.DataSourceDB {
		return nil, nil
	}
	if !strings.EqualFold(sink.DataType, model.DataTypeText) &&
		!strings.EqualFold(sink.DataType, model.DataTypeKeyValue) {
		return nil, nil
	}

	separator, err := parseSeparator(sink.SourceSeparator)
	if err != nil {
		return nil, validationErrorf("invalid source separator %q for group %s, stream %s",
			sink.SourceSeparator, sink.GroupID, sink.StreamID)
	}
	return protocol.CSVDeserializationInfo{
		StreamID:  sink.StreamID,
		Delimiter: separator,
	}, nil
}

func (b *SourceBuilder) buildTubeSource(
	group *model.GroupInfo,
	deserialization protocol.DeserializationInfo,
	fields []protocol.Field,
) (protocol.SourceInfo, error) {
	if b.config.tubeMasterAddress == "" {
		return nil, validationErrorf("tube master address is not configured, cannot build source for group %s", group.GroupID)
	}
	topic := group.MQResource
	return protocol.TubeSourceInfo{
		Topic:           topic,
		MasterAddress:   b.config.tubeMasterAddress,
		ConsumerGroup:   b.consumerGroup(topic),
		Deserialization: deserialization,
		Fields:          fields,
	}, nil
}

func (b *SourceBuilder) buildPulsarSource(
	group *model.GroupInfo,
	sink model.SinkConfig,
	deserialization protocol.DeserializationInfo,
	fields []protocol.Field,
) (protocol.SourceInfo, error) {
	overrides, err := model.PulsarOverridesFromExt(group.ExtProperties)
	if err != nil {
		return nil, validationErrorf("group %s: %s", group.GroupID, err.Error())
	}

	adminURL := overrides.AdminURL
	if adminURL == "" {
		adminURL = b.config.pulsarAdminURL
	}
	serviceURL := overrides.ServiceURL
	if serviceURL == "" {
		serviceURL = b.config.pulsarServiceURL
	}
	var authentication *string
	if overrides.Authentication != "" {
		authentication = &overrides.Authentication
	}

	// namespace comes from the group, topic from the sink
	topic := sink.MQResource
	fullTopicName := "persistent://" + b.config.pulsarTenant + "/" + group.MQResource + "/" + topic

	return protocol.PulsarSourceInfo{
		AdminURL:        adminURL,
		ServiceURL:      serviceURL,
		Topic:           fullTopicName,
		ConsumerGroup:   b.consumerGroup(topic),
		Deserialization: deserialization,
		Fields:          fields,
		Authentication:  authentication,
	}, nil
}

func (b *SourceBuilder) consumerGroup(topic string) string {
	return b.config.appName + "_" + topic + consumerGroupSuffix
}

// parseSeparator decodes a separator stored as a decimal character code,
// e.g. "124" for '|'.
func parseSeparator(code string) (rune, error) {
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, err
	}
	return rune(n), nil
}
