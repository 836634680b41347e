package repo

import (
	"context"
	"fmt"

	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/internal/sqlmw"
)

const (
	sinkTableName = "stream_sink"
	sinkColumns   = `
		id,
		group_id,
		stream_id,
		data_source_type,
		data_type,
		source_separator,
		ext_params,
		mq_resource
	`
)

type Sink repo

func NewSink(db *sqlmw.DB) *Sink {
	return &Sink{db: db}
}

// SelectAllConfigs returns the sink configs in scope for one invocation:
// all live sinks of the group, narrowed to one stream when streamID is
// non-empty.
func (s *Sink) SelectAllConfigs(ctx context.Context, groupID, streamID string) ([]model.SinkConfig, error) {
	query := `
		SELECT ` + sinkColumns + `
		FROM ` + sinkTableName + `
		WHERE group_id = $1 AND is_deleted = FALSE
	`
	args := []any{groupID}
	if streamID != "" {
		query += ` AND stream_id = $2`
		args = append(args, streamID)
	}
	query += ` ORDER BY id ASC;`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sink configs for group %s: %w", groupID, err)
	}
	defer func() { _ = rows.Close() }()

	var configs []model.SinkConfig
	for rows.Next() {
		var cfg model.SinkConfig
		if err := rows.Scan(
			&cfg.ID,
			&cfg.GroupID,
			&cfg.StreamID,
			&cfg.DataSourceType,
			&cfg.DataType,
			&cfg.SourceSeparator,
			&cfg.ExtParams,
			&cfg.MQResource,
		); err != nil {
			return nil, fmt.Errorf("scanning sink config: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sink configs: %w", err)
	}

	return configs, nil
}
