package repo

import (
	"context"
	"fmt"

	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/internal/sqlmw"
)

const fieldTableName = "stream_sink_field"

type Field repo

func NewField(db *sqlmw.DB) *Field {
	return &Field{db: db}
}

// SelectFields returns the ordered field list of one (group, stream).
// The ORDER BY is load-bearing: the stored order must be preserved
// identically in the source and sink descriptor field lists.
func (f *Field) SelectFields(ctx context.Context, groupID, streamID string) ([]model.StreamField, error) {
	rows, err := f.db.QueryContext(ctx, `
		SELECT
		  field_name,
		  field_type,
		  source_field_name,
		  source_field_type
		FROM `+fieldTableName+`
		WHERE group_id = $1 AND stream_id = $2 AND is_deleted = FALSE
		ORDER BY id ASC;
`,
		groupID,
		streamID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying fields for group %s, stream %s: %w", groupID, streamID, err)
	}
	defer func() { _ = rows.Close() }()

	var fields []model.StreamField
	for rows.Next() {
		var field model.StreamField
		if err := rows.Scan(
			&field.FieldName,
			&field.FieldType,
			&field.SourceFieldName,
			&field.SourceFieldType,
		); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fields: %w", err)
	}

	return fields, nil
}
