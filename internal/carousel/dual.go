package carousel

import "fmt"

// LaneSpec describes one lane of a DualLane.
type LaneSpec struct {
	Surface   Surface
	Items     []Item
	Direction Direction
}

// DualLane drives two independent lanes on the same host, conventionally
// one leftward and one rightward.
type DualLane struct {
	A *Lane
	B *Lane
}

// MountDual mounts both lanes. If the second mount fails the first is torn down.
func MountDual(host Host, a, b LaneSpec, cfg Config) (*DualLane, error) {
	la, err := Mount(host, a.Surface, a.Items, a.Direction, cfg)
	if err != nil {
		return nil, fmt.Errorf("mounting lane A: %w", err)
	}
	lb, err := Mount(host, b.Surface, b.Items, b.Direction, cfg)
	if err != nil {
		la.Unmount()
		return nil, fmt.Errorf("mounting lane B: %w", err)
	}
	return &DualLane{A: la, B: lb}, nil
}

// Unmount tears down both lanes.
func (d *DualLane) Unmount() {
	d.A.Unmount()
	d.B.Unmount()
}
