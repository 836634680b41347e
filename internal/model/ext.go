package model

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Extension-property keys recognized on pulsar-backed groups.
const (
	ExtKeyPulsarServiceURL     = "pulsar.serviceUrl"
	ExtKeyPulsarAuthentication = "pulsar.authentication"
	ExtKeyPulsarAdminURL       = "pulsar.adminUrl"
)

// PulsarOverrides are the per-group pulsar connection overrides carried
// in the group's extension-property list. Empty fields mean "not set";
// AdminURL and ServiceURL fall back to cluster-wide defaults,
// Authentication has no fallback.
type PulsarOverrides struct {
	ServiceURL     string `mapstructure:"pulsar.serviceUrl"`
	Authentication string `mapstructure:"pulsar.authentication"`
	AdminURL       string `mapstructure:"pulsar.adminUrl"`
}

// PulsarOverridesFromExt scans the ordered extension-property list and
// decodes the pulsar override keys. For each key the first non-empty
// value in list order wins.
func PulsarOverridesFromExt(ext []ExtProperty) (PulsarOverrides, error) {
	values := make(map[string]string, len(ext))
	for _, prop := range ext {
		if prop.Value == "" {
			continue
		}
		if _, seen := values[prop.Key]; seen {
			continue
		}
		values[prop.Key] = prop.Value
	}

	var overrides PulsarOverrides
	if err := mapstructure.Decode(values, &overrides); err != nil {
		return overrides, fmt.Errorf("decoding pulsar overrides: %w", err)
	}
	return overrides, nil
}
