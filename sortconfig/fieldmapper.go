package sortconfig

import (
	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/protocol"
)

// buildSinkFields resolves the sink-side field list in stored order.
// When partitionField is non-empty and does not appear among the sink
// field names, a synthesized millisecond-timestamp field with that name
// is placed at the front; the source stream's ingestion timestamp fills
// it downstream. The source-side list (buildSourceFields) deliberately
// gets no such injection.
func buildSinkFields(fields []model.StreamField, partitionField string) ([]protocol.Field, error) {
	seenPartitionField := false
	out := make([]protocol.Field, 0, len(fields)+1)
	for _, field := range fields {
		if field.FieldName == partitionField {
			seenPartitionField = true
		}
		format, err := protocol.ResolveFormat(field.FieldType)
		if err != nil {
			return nil, validationErrorf("resolving sink field %s: %s", field.FieldName, err.Error())
		}
		out = append(out, protocol.Field{Name: field.FieldName, Format: format})
	}

	if partitionField != "" && !seenPartitionField {
		injected := protocol.Field{Name: partitionField, Format: protocol.TimestampMillisFormat()}
		out = append([]protocol.Field{injected}, out...)
	}
	return out, nil
}

// buildSourceFields resolves the source-side field list in stored order,
// preserving count and order exactly.
func buildSourceFields(fields []model.StreamField) ([]protocol.Field, error) {
	out := make([]protocol.Field, 0, len(fields))
	for _, field := range fields {
		format, err := protocol.ResolveFormat(field.SourceFieldType)
		if err != nil {
			return nil, validationErrorf("resolving source field %s: %s", field.SourceFieldName, err.Error())
		}
		out = append(out, protocol.Field{Name: field.SourceFieldName, Format: format})
	}
	return out, nil
}
