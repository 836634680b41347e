package repo_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/streamforge/flowsync/internal/repo"
)

func TestFieldSelectFields(t *testing.T) {
	ctx := context.Background()

	t.Run("returns fields in stored order", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(`FROM stream_sink_field\s+WHERE group_id = \$1 AND stream_id = \$2 AND is_deleted = FALSE\s+ORDER BY id ASC`).
			WithArgs("group_1", "stream_1").
			WillReturnRows(sqlmock.NewRows([]string{"field_name", "field_type", "source_field_name", "source_field_type"}).
				AddRow("id", "bigint", "msg_id", "long").
				AddRow("name", "string", "msg_name", "string"))

		fields, err := repo.NewField(db).SelectFields(ctx, "group_1", "stream_1")
		require.NoError(t, err)
		require.Len(t, fields, 2)
		require.Equal(t, "id", fields[0].FieldName)
		require.Equal(t, "msg_id", fields[0].SourceFieldName)
		require.Equal(t, "name", fields[1].FieldName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no fields", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(`FROM stream_sink_field`).
			WithArgs("group_1", "stream_1").
			WillReturnRows(sqlmock.NewRows([]string{"field_name", "field_type", "source_field_name", "source_field_type"}))

		fields, err := repo.NewField(db).SelectFields(ctx, "group_1", "stream_1")
		require.NoError(t, err)
		require.Empty(t, fields)
	})
}
