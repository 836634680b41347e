package sortconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamforge/flowsync/internal/model"
	"github.com/streamforge/flowsync/protocol"
)

func testWarehouseParams() model.WarehouseSinkParams {
	return model.WarehouseSinkParams{
		JDBCURL:          "jdbc:hive2://warehouse:10000",
		Username:         "flow",
		Password:         "secret",
		DBName:           "db1",
		TableName:        "t1",
		FileFormat:       "TextFile",
		DataSeparator:    "124",
		PrimaryPartition: "dt",
		PartitionUnit:    "D",
		StorageRootURL:   "hdfs://nn",
		WarehouseDir:     "/warehouse",
	}
}

func TestFileFormatFor(t *testing.T) {
	testCases := []struct {
		name     string
		tag      string
		expected protocol.FileFormat
	}{
		{name: "orc", tag: "ORC", expected: protocol.OrcFileFormat{BatchSize: 1000}},
		{name: "orc lowercase", tag: "orc", expected: protocol.OrcFileFormat{BatchSize: 1000}},
		{name: "sequence", tag: "sequence", expected: protocol.SequenceFileFormat{Separator: '|', BatchSize: 100}},
		{name: "parquet", tag: "Parquet", expected: protocol.ParquetFileFormat{}},
		{name: "text", tag: "TextFile", expected: protocol.TextFileFormat{Separator: '|'}},
		{name: "unknown defaults to text", tag: "avro", expected: protocol.TextFileFormat{Separator: '|'}},
		{name: "empty defaults to text", tag: "", expected: protocol.TextFileFormat{Separator: '|'}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := testWarehouseParams()
			params.FileFormat = tc.tag
			format, err := fileFormatFor(params)
			require.NoError(t, err)
			require.Equal(t, tc.expected, format)
		})
	}

	t.Run("bad separator fails text selection", func(t *testing.T) {
		params := testWarehouseParams()
		params.DataSeparator = "pipe"
		_, err := fileFormatFor(params)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestPartitionsFor(t *testing.T) {
	t.Run("unit table", func(t *testing.T) {
		units := map[string]string{
			"D": "yyyyMMdd",
			"H": "yyyyMMddHH",
			"I": "yyyyMMddHHmm",
		}
		for unit, format := range units {
			params := testWarehouseParams()
			params.PartitionUnit = unit
			partitions, err := partitionsFor(params)
			require.NoError(t, err)
			require.Equal(t, []protocol.Partition{
				protocol.TimePartition{Field: "dt", Format: format},
			}, partitions)
		}
	})

	t.Run("primary then secondary", func(t *testing.T) {
		params := testWarehouseParams()
		params.SecondaryPartition = "country"
		partitions, err := partitionsFor(params)
		require.NoError(t, err)
		require.Equal(t, []protocol.Partition{
			protocol.TimePartition{Field: "dt", Format: "yyyyMMdd"},
			protocol.FieldPartition{Field: "country"},
		}, partitions)
	})

	t.Run("secondary only", func(t *testing.T) {
		params := testWarehouseParams()
		params.PrimaryPartition = ""
		params.SecondaryPartition = "country"
		partitions, err := partitionsFor(params)
		require.NoError(t, err)
		require.Equal(t, []protocol.Partition{
			protocol.FieldPartition{Field: "country"},
		}, partitions)
	})

	t.Run("no partitions", func(t *testing.T) {
		params := testWarehouseParams()
		params.PrimaryPartition = ""
		partitions, err := partitionsFor(params)
		require.NoError(t, err)
		require.Empty(t, partitions)
	})

	t.Run("unknown unit is rejected", func(t *testing.T) {
		params := testWarehouseParams()
		params.PartitionUnit = "W"
		_, err := partitionsFor(params)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestDataPathFor(t *testing.T) {
	testCases := []struct {
		name     string
		root     string
		dir      string
		expected string
	}{
		{name: "no trailing slashes", root: "hdfs://nn", dir: "/warehouse", expected: "hdfs://nn/warehouse/db1.db/t1"},
		{name: "trailing slash on root", root: "hdfs://nn/", dir: "/warehouse", expected: "hdfs://nn/warehouse/db1.db/t1"},
		{name: "trailing slash on dir", root: "hdfs://nn", dir: "/warehouse/", expected: "hdfs://nn/warehouse/db1.db/t1"},
		{name: "trailing slash on both", root: "hdfs://nn/", dir: "/warehouse/", expected: "hdfs://nn/warehouse/db1.db/t1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := testWarehouseParams()
			params.StorageRootURL = tc.root
			params.WarehouseDir = tc.dir
			path := dataPathFor(params)
			require.Equal(t, tc.expected, path)
			// the scheme separator is the only double slash
			require.Equal(t, 1, strings.Count(path, "//"))
		})
	}
}

func TestBuildSinkInfo(t *testing.T) {
	t.Run("assembles the full descriptor", func(t *testing.T) {
		sink, err := buildSinkInfo(testWarehouseParams(), testFields())
		require.NoError(t, err)
		require.Equal(t, "jdbc:hive2://warehouse:10000", sink.ConnectionURL)
		require.Equal(t, "hdfs://nn/warehouse/db1.db/t1", sink.DataPath)
		require.Len(t, sink.Fields, 4)
		require.Equal(t, "dt", sink.Fields[0].Name)
		require.Len(t, sink.Partitions, 1)
		require.Equal(t, protocol.TextFileFormat{Separator: '|'}, sink.Format)
	})

	t.Run("missing connection url is rejected", func(t *testing.T) {
		params := testWarehouseParams()
		params.JDBCURL = ""
		_, err := buildSinkInfo(params, testFields())
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}
