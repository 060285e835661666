package nodeapi

import "strings"

const (
	// InfoPath returns general information about the node.
	InfoPath = "api/core/v2/info"

	// BlocksPath is the block submission endpoint.
	BlocksPath = "api/core/v2/blocks"

	// HealthPath returns 200 if the node is healthy.
	HealthPath = "health"
)

// PowFeature is listed in InfoResponse.Features by nodes that do remote proof of work.
const PowFeature = "pow"

// SamePath compares two request paths ignoring the leading slash.
func SamePath(a, b string) bool {
	return strings.TrimPrefix(a, "/") == strings.TrimPrefix(b, "/")
}
