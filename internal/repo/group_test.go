package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/internal/repo"
)

func TestGroupGetByIdentifier(t *testing.T) {
	ctx := context.Background()

	t.Run("loads the group with ordered ext properties", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(`SELECT\s+group_id,\s+middleware_type,\s+mq_resource,\s+is_deleted\s+FROM flow_group`).
			WithArgs("group_1").
			WillReturnRows(sqlmock.NewRows([]string{"group_id", "middleware_type", "mq_resource", "is_deleted"}).
				AddRow("group_1", "PULSAR", "ns_group_1", false))
		mock.ExpectQuery(`SELECT\s+key_name,\s+key_value\s+FROM flow_group_ext`).
			WithArgs("group_1").
			WillReturnRows(sqlmock.NewRows([]string{"key_name", "key_value"}).
				AddRow("pulsar.serviceUrl", "pulsar://svc:6650").
				AddRow("pulsar.adminUrl", "http://admin:8080"))

		group, err := repo.NewGroup(db).GetByIdentifier(ctx, "group_1")
		require.NoError(t, err)
		require.NotNil(t, group)
		require.Equal(t, "PULSAR", group.MiddlewareType)
		require.False(t, group.IsDeleted)
		require.Equal(t, []model.ExtProperty{
			{Key: "pulsar.serviceUrl", Value: "pulsar://svc:6650"},
			{Key: "pulsar.adminUrl", Value: "http://admin:8080"},
		}, group.ExtProperties)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent group returns nil without error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(`FROM flow_group`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"group_id", "middleware_type", "mq_resource", "is_deleted"}))

		group, err := repo.NewGroup(db).GetByIdentifier(ctx, "missing")
		require.NoError(t, err)
		require.Nil(t, group)
	})

	t.Run("query failure is propagated", func(t *testing.T) {
		db, mock := setupMockDB(t)
		dbErr := errors.New("connection refused")
		mock.ExpectQuery(`FROM flow_group`).WithArgs("group_1").WillReturnError(dbErr)

		_, err := repo.NewGroup(db).GetByIdentifier(ctx, "group_1")
		require.ErrorIs(t, err, dbErr)
	})
}
