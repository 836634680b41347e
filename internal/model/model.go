package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MiddlewareType identifies the message-queue family that feeds a group's
// streams. The raw tag comes from group metadata and is matched
// case-insensitively; everything outside the closed set maps to
// MiddlewareUnknown.
type MiddlewareType string

const (
	MiddlewareTube    MiddlewareType = "TUBE"
	MiddlewarePulsar  MiddlewareType = "PULSAR"
	MiddlewareUnknown MiddlewareType = ""
)

func FromMiddlewareType(tag string) MiddlewareType {
	switch {
	case strings.EqualFold(tag, string(MiddlewareTube)):
		return MiddlewareTube
	case strings.EqualFold(tag, string(MiddlewarePulsar)):
		return MiddlewarePulsar
	default:
		return MiddlewareUnknown
	}
}

// Data source classification and raw data representation tags, as stored
// in sink metadata.
const (
	DataSourceDB = "DB"

	DataTypeText     = "TEXT"
	DataTypeKeyValue = "KEY-VALUE"
)

// ExtProperty is one entry of a group's ordered extension-property list.
type ExtProperty struct {
	Key   string
	Value string
}

// GroupInfo is the metadata record of a stream group. It is loaded once
// per listener invocation and treated as immutable afterwards.
type GroupInfo struct {
	GroupID        string
	MiddlewareType string
	MQResource     string
	IsDeleted      bool
	ExtProperties  []ExtProperty
}

// SinkConfig is one sink's metadata record, read-only input to the
// synthesis pipeline. ExtParams is a sink-family-specific JSON blob.
type SinkConfig struct {
	ID              int64
	GroupID         string
	StreamID        string
	DataSourceType  string
	DataType        string
	SourceSeparator string
	ExtParams       json.RawMessage
	MQResource      string
}

// StreamField carries both sides of a field mapping: the name/type the
// sink table expects and the name/type the source stream delivers. The
// stored order is significant and must survive into both descriptor
// field lists unchanged.
type StreamField struct {
	FieldName       string
	FieldType       string
	SourceFieldName string
	SourceFieldType string
}

func (f StreamField) String() string {
	return fmt.Sprintf("%s:%s<-%s:%s", f.FieldName, f.FieldType, f.SourceFieldName, f.SourceFieldType)
}
