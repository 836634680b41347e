package protocol

// DeserializationInfo describes how raw messages from the queue are
// decoded before field mapping. A nil DeserializationInfo means raw
// passthrough.
type DeserializationInfo interface {
	DeserializationType() string
}

// CSVDeserializationInfo is the delimited-envelope deserialization used
// for stream-ingested TEXT and KEY-VALUE data. Delimiter is the
// separator character from the stream's metadata.
type CSVDeserializationInfo struct {
	StreamID  string `json:"streamId"`
	Delimiter rune   `json:"delimiter"`
}

func (CSVDeserializationInfo) DeserializationType() string { return "csv" }

func (d CSVDeserializationInfo) MarshalJSON() ([]byte, error) {
	type alias CSVDeserializationInfo
	return taggedJSON(d.DeserializationType(), alias(d))
}

// SourceInfo is the source half of a data-flow descriptor, one variant
// per supported message-queue middleware.
type SourceInfo interface {
	SourceType() string
}

// TubeSourceInfo describes a tube-backed source: one topic on the
// cluster-wide master address.
type TubeSourceInfo struct {
	Topic           string              `json:"topic"`
	MasterAddress   string              `json:"masterAddress"`
	ConsumerGroup   string              `json:"consumerGroup"`
	Deserialization DeserializationInfo `json:"deserialization,omitempty"`
	Fields          []Field             `json:"fields"`
}

func (TubeSourceInfo) SourceType() string { return "tube" }

func (s TubeSourceInfo) MarshalJSON() ([]byte, error) {
	type alias TubeSourceInfo
	return taggedJSON(s.SourceType(), alias(s))
}

// PulsarSourceInfo describes a pulsar-backed source. Topic is the fully
// qualified name, persistent://{tenant}/{namespace}/{topic}.
// Authentication is absent unless the group carries an override.
type PulsarSourceInfo struct {
	AdminURL        string              `json:"adminUrl"`
	ServiceURL      string              `json:"serviceUrl"`
	Topic           string              `json:"topic"`
	ConsumerGroup   string              `json:"consumerGroup"`
	Deserialization DeserializationInfo `json:"deserialization,omitempty"`
	Fields          []Field             `json:"fields"`
	Authentication  *string             `json:"authentication,omitempty"`
}

func (PulsarSourceInfo) SourceType() string { return "pulsar" }

func (s PulsarSourceInfo) MarshalJSON() ([]byte, error) {
	type alias PulsarSourceInfo
	return taggedJSON(s.SourceType(), alias(s))
}
