package nodeapi

import "golang.org/x/exp/slices"

type MilestoneInfo struct {
	Index       uint32 `json:"index"`
	Timestamp   uint32 `json:"timestamp,omitempty"`
	MilestoneID string `json:"milestoneId,omitempty"`
}

type StatusResponse struct {
	IsHealthy          bool          `json:"isHealthy"`
	LatestMilestone    MilestoneInfo `json:"latestMilestone"`
	ConfirmedMilestone MilestoneInfo `json:"confirmedMilestone"`
	PruningIndex       uint32        `json:"pruningIndex"`
}

type ProtocolParameters struct {
	Version     uint8  `json:"version"`
	NetworkName string `json:"networkName"`
	Bech32Hrp   string `json:"bech32Hrp"`
	MinPowScore uint32 `json:"minPowScore"`
}

// InfoResponse is the reply of the node info endpoint.
type InfoResponse struct {
	Name     string             `json:"name"`
	Version  string             `json:"version"`
	Status   StatusResponse     `json:"status"`
	Protocol ProtocolParameters `json:"protocol"`
	Features []string           `json:"features"`
}

// HasFeature returns true if the node advertises the given feature.
func (i *InfoResponse) HasFeature(feature string) bool {
	return slices.Contains(i.Features, feature)
}

// NodeInfoWrapper is returned for requests to the info endpoint, so that the
// caller knows which node has answered.
type NodeInfoWrapper struct {
	NodeInfo InfoResponse `json:"nodeInfo"`
	URL      string       `json:"url"`
}
