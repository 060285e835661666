package model

type GetNodesResponse struct {
	Nodes []Node `json:"nodes"`
}

type SetNodeStateParams struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
}

type GetHealthResponse struct {
	HealthCheck bool          `json:"healthCheck"`
	Nodes       []HealthyNode `json:"nodes"`
}
