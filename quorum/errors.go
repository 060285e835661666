package quorum

import "fmt"

// QuorumPoolSizeError is returned before any request is sent, when there are
// fewer candidate nodes than the quorum requires.
type QuorumPoolSizeError struct {
	Available int
	Required  int
}

func (e *QuorumPoolSizeError) Error() string {
	return fmt.Sprintf("not enough nodes for quorum: available %d, required %d", e.Available, e.Required)
}

// QuorumThresholdError is returned when the most common response was not
// returned by enough nodes.
type QuorumThresholdError struct {
	Achieved int
	Required int
}

func (e *QuorumThresholdError) Error() string {
	return fmt.Sprintf("quorum threshold not reached: %d of %d nodes agree", e.Achieved, e.Required)
}
