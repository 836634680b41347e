package protocol

// Property keys always present on a published data-flow descriptor.
const (
	GroupIDPropertyKey = "flow.group.id"
	BatchIDPropertyKey = "flow.batch.id"
)

// DataFlowInfo is one complete data-flow configuration descriptor, the
// unit of publication to the coordination store. Source may be nil when
// the group's middleware is not recognized.
type DataFlowInfo struct {
	SinkID     int64             `json:"id"`
	Source     SourceInfo        `json:"source,omitempty"`
	Sink       *SinkInfo         `json:"sink"`
	Properties map[string]string `json:"properties"`
}
