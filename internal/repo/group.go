package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/internal/sqlmw"
)

const (
	groupTableName    = "flow_group"
	groupExtTableName = "flow_group_ext"
)

type Group repo

func NewGroup(db *sqlmw.DB) *Group {
	return &Group{db: db}
}

// GetByIdentifier loads one group record with its ordered extension
// properties. Returns (nil, nil) when the group does not exist.
func (g *Group) GetByIdentifier(ctx context.Context, groupID string) (*model.GroupInfo, error) {
	var group model.GroupInfo
	err := g.db.QueryRowContext(ctx, `
		SELECT
		  group_id,
		  middleware_type,
		  mq_resource,
		  is_deleted
		FROM `+groupTableName+`
		WHERE group_id = $1;
`,
		groupID,
	).Scan(
		&group.GroupID,
		&group.MiddlewareType,
		&group.MQResource,
		&group.IsDeleted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying group %s: %w", groupID, err)
	}

	rows, err := g.db.QueryContext(ctx, `
		SELECT
		  key_name,
		  key_value
		FROM `+groupExtTableName+`
		WHERE group_id = $1
		ORDER BY id ASC;
`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying group ext properties %s: %w", groupID, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var prop model.ExtProperty
		if err := rows.Scan(&prop.Key, &prop.Value); err != nil {
			return nil, fmt.Errorf("scanning group ext property: %w", err)
		}
		group.ExtProperties = append(group.ExtProperties, prop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating group ext properties: %w", err)
	}

	return &group, nil
}
