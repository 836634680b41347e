package protocol

// FileFormat is the storage file format of a warehouse sink, a closed
// variant set selected from the sink's format tag.
type FileFormat interface {
	FileFormatType() string
}

type TextFileFormat struct {
	Separator rune `json:"separator"`
}

func (TextFileFormat) FileFormatType() string { return "text" }

func (f TextFileFormat) MarshalJSON() ([]byte, error) {
	type alias TextFileFormat
	return taggedJSON(f.FileFormatType(), alias(f))
}

type SequenceFileFormat struct {
	Separator rune `json:"separator"`
	BatchSize int  `json:"batchSize"`
}

func (SequenceFileFormat) FileFormatType() string { return "sequence" }

func (f SequenceFileFormat) MarshalJSON() ([]byte, error) {
	type alias SequenceFileFormat
	return taggedJSON(f.FileFormatType(), alias(f))
}

type OrcFileFormat struct {
	BatchSize int `json:"batchSize"`
}

func (OrcFileFormat) FileFormatType() string { return "orc" }

func (f OrcFileFormat) MarshalJSON() ([]byte, error) {
	type alias OrcFileFormat
	return taggedJSON(f.FileFormatType(), alias(f))
}

type ParquetFileFormat struct{}

func (ParquetFileFormat) FileFormatType() string { return "parquet" }

func (f ParquetFileFormat) MarshalJSON() ([]byte, error) {
	type alias ParquetFileFormat
	return taggedJSON(f.FileFormatType(), alias(f))
}

// Partition is one partition column of a warehouse sink. A sink has at
// most one TimePartition followed by at most one FieldPartition.
type Partition interface {
	PartitionType() string
}

// TimePartition segments data by a time column rendered with Format
// (for example yyyyMMdd for daily partitions).
type TimePartition struct {
	Field  string `json:"field"`
	Format string `json:"format"`
}

func (TimePartition) PartitionType() string { return "time" }

func (p TimePartition) MarshalJSON() ([]byte, error) {
	type alias TimePartition
	return taggedJSON(p.PartitionType(), alias(p))
}

// FieldPartition segments data by a column's value.
type FieldPartition struct {
	Field string `json:"field"`
}

func (FieldPartition) PartitionType() string { return "field" }

func (p FieldPartition) MarshalJSON() ([]byte, error) {
	type alias FieldPartition
	return taggedJSON(p.PartitionType(), alias(p))
}

// SinkInfo is the sink half of a data-flow descriptor: the warehouse
// table's field list, connection coordinates, computed storage path,
// partition columns and file format.
type SinkInfo struct {
	Fields        []Field     `json:"fields"`
	ConnectionURL string      `json:"connectionUrl"`
	DBName        string      `json:"dbName"`
	TableName     string      `json:"tableName"`
	Username      string      `json:"username"`
	Password      string      `json:"password"`
	DataPath      string      `json:"dataPath"`
	Partitions    []Partition `json:"partitions"`
	Format        FileFormat  `json:"format"`
}
