package sortconfig

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/protocol"
)

func testFields() []model.StreamField {
	return []model.StreamField{
		{FieldName: "id", FieldType: "bigint", SourceFieldName: "msg_id", SourceFieldType: "long"},
		{FieldName: "name", FieldType: "string", SourceFieldName: "msg_name", SourceFieldType: "string"},
		{FieldName: "score", FieldType: "double", SourceFieldName: "msg_score", SourceFieldType: "double"},
	}
}

func TestBuildSinkFields(t *testing.T) {
	t.Run("injects missing partition field at the front", func(t *testing.T) {
		fields, err := buildSinkFields(testFields(), "dt")
		require.NoError(t, err)
		require.Len(t, fields, 4)
		require.Equal(t, "dt", fields[0].Name)
		require.Equal(t, protocol.TimestampMillisFormat(), fields[0].Format)
		require.Equal(t, "id", fields[1].Name)
		require.Equal(t, "score", fields[3].Name)
	})

	t.Run("no injection when partition field already present", func(t *testing.T) {
		withPartition := append(testFields(), model.StreamField{
			FieldName: "dt", FieldType: "timestamp", SourceFieldName: "dt", SourceFieldType: "timestamp",
		})
		fields, err := buildSinkFields(withPartition, "dt")
		require.NoError(t, err)
		require.Len(t, fields, 4)
		require.Equal(t, "id", fields[0].Name)
	})

	t.Run("no injection for empty partition field name", func(t *testing.T) {
		fields, err := buildSinkFields(testFields(), "")
		require.NoError(t, err)
		require.Len(t, fields, 3)
		require.Equal(t, "id", fields[0].Name)
	})

	t.Run("unknown type fails the build", func(t *testing.T) {
		broken := testFields()
		broken[1].FieldType = "geometry"
		_, err := buildSinkFields(broken, "dt")
		require.Error(t, err)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestBuildSourceFields(t *testing.T) {
	t.Run("preserves order and count without injection", func(t *testing.T) {
		fields, err := buildSourceFields(testFields())
		require.NoError(t, err)
		require.Len(t, fields, 3)
		require.Equal(t, "msg_id", fields[0].Name)
		require.Equal(t, "msg_name", fields[1].Name)
		require.Equal(t, "msg_score", fields[2].Name)
	})

	t.Run("unknown source type fails the build", func(t *testing.T) {
		broken := testFields()
		broken[0].SourceFieldType = "point"
		_, err := buildSourceFields(broken)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}
