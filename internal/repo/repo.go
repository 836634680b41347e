// Package repo implements the relational metadata stores the synthesis
// pipeline reads from: group records, sink configs and stream fields.
// All repositories are read-only; the tables are owned by the metadata
// management surface, not by this service.
package repo

import (
	"github.com/streamforge/flowsync/internal/sqlmw"
)

type repo struct {
	db *sqlmw.DB
}
