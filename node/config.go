package node

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Config describes a node in client configuration. In JSON it is either a
// plain URL string or an object with url, auth and disabled fields.
type Config struct {
	URL      string `json:"url"`
	Auth     *Auth  `json:"auth,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

func (c *Config) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var rawURL string
		if err := json.Unmarshal(data, &rawURL); err != nil {
			return err
		}

		*c = Config{URL: rawURL}

		return nil
	}

	type plain Config

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("node config: %w", err)
	}

	*c = Config(p)

	return nil
}

// Build parses the config into a Node.
func (c Config) Build() (Node, error) {
	n, err := New(c.URL, c.Auth)
	if err != nil {
		return Node{}, err
	}

	n.Disabled = c.Disabled

	return n, nil
}
