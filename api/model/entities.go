package model

type Node struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
	Healthy  bool   `json:"healthy"`
}

type HealthyNode struct {
	URL      string   `json:"url"`
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Network  string   `json:"network"`
	Features []string `json:"features,omitempty"`
}
