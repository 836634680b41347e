package protocol

import (
	"fmt"
	"strings"
)

// FieldType is the closed set of field data types understood by the
// downstream processing cluster.
type FieldType string

const (
	TypeBoolean   FieldType = "boolean"
	TypeTinyInt   FieldType = "tinyint"
	TypeSmallInt  FieldType = "smallint"
	TypeInt       FieldType = "int"
	TypeBigInt    FieldType = "bigint"
	TypeFloat     FieldType = "float"
	TypeDouble    FieldType = "double"
	TypeDecimal   FieldType = "decimal"
	TypeDate      FieldType = "date"
	TypeTime      FieldType = "time"
	TypeTimestamp FieldType = "timestamp"
	TypeString    FieldType = "string"
	TypeBinary    FieldType = "binary"
)

// FormatInfo is a fully-resolved field format descriptor. Precision is
// only meaningful for timestamp formats.
type FormatInfo struct {
	Type      FieldType `json:"type"`
	Precision string    `json:"precision,omitempty"`
}

const PrecisionMillis = "MILLIS"

// TimestampMillisFormat is the format of synthesized time-partition
// fields.
func TimestampMillisFormat() FormatInfo {
	return FormatInfo{Type: TypeTimestamp, Precision: PrecisionMillis}
}

var formatTable = map[string]FormatInfo{
	"boolean":   {Type: TypeBoolean},
	"tinyint":   {Type: TypeTinyInt},
	"smallint":  {Type: TypeSmallInt},
	"int":       {Type: TypeInt},
	"bigint":    {Type: TypeBigInt},
	"long":      {Type: TypeBigInt},
	"float":     {Type: TypeFloat},
	"double":    {Type: TypeDouble},
	"decimal":   {Type: TypeDecimal},
	"date":      {Type: TypeDate},
	"time":      {Type: TypeTime},
	"timestamp": {Type: TypeTimestamp, Precision: PrecisionMillis},
	"string":    {Type: TypeString},
	"varchar":   {Type: TypeString},
	"binary":    {Type: TypeBinary},
}

// ResolveFormat maps a declared field type tag to its format descriptor.
// Matching is case-insensitive; tags outside the supported set are an
// error.
func ResolveFormat(tag string) (FormatInfo, error) {
	format, ok := formatTable[strings.ToLower(tag)]
	if !ok {
		return FormatInfo{}, fmt.Errorf("unsupported field type %q", tag)
	}
	return format, nil
}

// Field is one entry of a descriptor's ordered field list.
type Field struct {
	Name   string     `json:"name"`
	Format FormatInfo `json:"format"`
}
