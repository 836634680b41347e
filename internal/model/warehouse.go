package model

import (
	"encoding/json"
	"fmt"

	"github.com/streamforge/flowsync/jsonrs"
)

// WarehouseSinkParams is the decoded form of a warehouse sink's
// ExtParams blob: connection coordinates, table identity, file format
// and partitioning policy, and the storage layout roots.
type WarehouseSinkParams struct {
	JDBCURL            string `json:"jdbcUrl"`
	Username           string `json:"username"`
	Password           string `json:"password"`
	DBName             string `json:"dbName"`
	TableName          string `json:"tableName"`
	FileFormat         string `json:"fileFormat"`
	DataSeparator      string `json:"dataSeparator"`
	PrimaryPartition   string `json:"primaryPartition"`
	SecondaryPartition string `json:"secondaryPartition"`
	PartitionUnit      string `json:"partitionUnit"`
	StorageRootURL     string `json:"storageRootUrl"`
	WarehouseDir       string `json:"warehouseDir"`
}

// DecodeWarehouseSinkParams parses a sink's extension-parameters blob.
func DecodeWarehouseSinkParams(raw json.RawMessage) (WarehouseSinkParams, error) {
	var params WarehouseSinkParams
	if len(raw) == 0 {
		return params, fmt.Errorf("empty warehouse sink params")
	}
	if err := jsonrs.Unmarshal(raw, &params); err != nil {
		return params, fmt.Errorf("decoding warehouse sink params: %w", err)
	}
	return params, nil
}
