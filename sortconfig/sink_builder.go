package sortconfig

import (
	"strings"

	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/protocol"
)

const (
	fileFormatOrc      = "ORC"
	fileFormatSequence = "SEQUENCE"
	fileFormatParquet  = "PARQUET"

	sequenceFileBatchSize = 100
	orcFileBatchSize      = 1000
)

// partitionTimeFormats maps a partition time-unit tag to the pattern the
// downstream cluster renders partition values with. Initialized once,
// never mutated.
var partitionTimeFormats = map[string]string{
	"D": "yyyyMMdd",
	"H": "yyyyMMddHH",
	"I": "yyyyMMddHHmm",
}

// buildSinkInfo assembles the sink half of a data-flow descriptor from
// the decoded warehouse params and the raw field list.
func buildSinkInfo(params model.WarehouseSinkParams, fields []model.StreamField) (*protocol.SinkInfo, error) {
	if params.JDBCURL == "" {
		return nil, validationErrorf("warehouse connection url cannot be empty for table %s.%s",
			params.DBName, params.TableName)
	}

	format, err := fileFormatFor(params)
	if err != nil {
		return nil, err
	}

	partitions, err := partitionsFor(params)
	if err != nil {
		return nil, err
	}

	sinkFields, err := buildSinkFields(fields, params.PrimaryPartition)
	if err != nil {
		return nil, err
	}

	return &protocol.SinkInfo{
		Fields:        sinkFields,
		ConnectionURL: params.JDBCURL,
		DBName:        params.DBName,
		TableName:     params.TableName,
		Username:      params.Username,
		Password:      params.Password,
		DataPath:      dataPathFor(params),
		Partitions:    partitions,
		Format:        format,
	}, nil
}

// fileFormatFor selects the storage file format, case-insensitively.
// Anything outside {ORC, SEQUENCE, PARQUET} falls back to text with the
// configured separator.
func fileFormatFor(params model.WarehouseSinkParams) (protocol.FileFormat, error) {
	switch {
	case strings.EqualFold(params.FileFormat, fileFormatOrc):
		return protocol.OrcFileFormat{BatchSize: orcFileBatchSize}, nil
	case strings.EqualFold(params.FileFormat, fileFormatParquet):
		return protocol.ParquetFileFormat{}, nil
	}

	separator, err := parseSeparator(params.DataSeparator)
	if err != nil {
		return nil, validationErrorf("invalid warehouse data separator %q for table %s.%s",
			params.DataSeparator, params.DBName, params.TableName)
	}
	if strings.EqualFold(params.FileFormat, fileFormatSequence) {
		return protocol.SequenceFileFormat{Separator: separator, BatchSize: sequenceFileBatchSize}, nil
	}
	return protocol.TextFileFormat{Separator: separator}, nil
}

// partitionsFor builds the partition list: at most one time partition
// from the primary partition field, then at most one field partition
// from the secondary one.
func partitionsFor(params model.WarehouseSinkParams) ([]protocol.Partition, error) {
	var partitions []protocol.Partition
	if params.PrimaryPartition != "" {
		format, ok := partitionTimeFormats[params.PartitionUnit]
		if !ok {
			return nil, validationErrorf("unsupported partition unit %q for table %s.%s",
				params.PartitionUnit, params.DBName, params.TableName)
		}
		partitions = append(partitions, protocol.TimePartition{
			Field:  params.PrimaryPartition,
			Format: format,
		})
	}
	if params.SecondaryPartition != "" {
		partitions = append(partitions, protocol.FieldPartition{Field: params.SecondaryPartition})
	}
	return partitions, nil
}

// dataPathFor computes the storage location:
// {root}{warehouseDir}/{db}.db/{table}, with a single trailing slash
// stripped from root and warehouseDir so the result never contains "//".
func dataPathFor(params model.WarehouseSinkParams) string {
	var path strings.Builder
	path.WriteString(strings.TrimSuffix(params.StorageRootURL, "/"))
	path.WriteString(strings.TrimSuffix(params.WarehouseDir, "/"))
	path.WriteString("/")
	path.WriteString(params.DBName)
	path.WriteString(".db/")
	path.WriteString(params.TableName)
	return path.String()
}
