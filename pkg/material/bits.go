package material

import "fmt"

// Direction is a horizontal facing in protocol order.
type Direction uint8

const (
	South Direction = iota
	West
	North
	East
)

var directionNames = [...]string{"SOUTH", "WEST", "NORTH", "EAST"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction { return (d + 2) & 3 }

// Directions returns the four facings in protocol order.
func Directions() []Direction { return []Direction{South, West, North, East} }

// SlabType is the half a slab occupies.
type SlabType uint8

const (
	SlabBottom SlabType = iota
	SlabUpper
	SlabFull
)

const slabUpperFlag = 0x8

func (t SlabType) String() string {
	switch t {
	case SlabBottom:
		return "BOTTOM"
	case SlabUpper:
		return "UPPER"
	case SlabFull:
		return "FULL"
	}
	return fmt.Sprintf("SlabType(%d)", uint8(t))
}

// Flag returns the meta bit for this slab type. Full slabs live under a
// different block id and carry no flag.
func (t SlabType) Flag() uint8 {
	if t == SlabUpper {
		return slabUpperFlag
	}
	return 0
}

// SlabMeta packs a slab variant (0..7) and half into a meta value.
func SlabMeta(variant uint8, t SlabType) uint8 {
	return variant&0x7 | t.Flag()
}

// ParseSlabMeta splits a single-slab meta into its variant and half.
func ParseSlabMeta(meta uint8) (uint8, SlabType) {
	if meta&slabUpperFlag != 0 {
		return meta & 0x7, SlabUpper
	}
	return meta & 0x7, SlabBottom
}

const (
	doorTopFlag     = 0x8
	doorOpenFlag    = 0x4
	doorHingeFlag   = 0x1
	doorPoweredFlag = 0x2
	gateOpenFlag    = 0x4
)

// DoorState is the state stored in a door half. The bottom half holds the
// facing and open flag; the top half holds hinge side and powered flag.
// Fields that belong to the other half are ignored by Meta.
type DoorState struct {
	Top        bool
	Facing     Direction
	Open       bool
	HingeRight bool
	Powered    bool
}

// Meta packs the state. Door facing is stored rotated one step clockwise
// from the horizontal index, so meta 0 faces east.
func (s DoorState) Meta() uint8 {
	if s.Top {
		m := uint8(doorTopFlag)
		if s.HingeRight {
			m |= doorHingeFlag
		}
		if s.Powered {
			m |= doorPoweredFlag
		}
		return m
	}
	m := (uint8(s.Facing) + 1) & 0x3
	if s.Open {
		m |= doorOpenFlag
	}
	return m
}

// ParseDoorMeta unpacks a door meta value.
func ParseDoorMeta(meta uint8) DoorState {
	if meta&doorTopFlag != 0 {
		return DoorState{
			Top:        true,
			HingeRight: meta&doorHingeFlag != 0,
			Powered:    meta&doorPoweredFlag != 0,
		}
	}
	return DoorState{
		Facing: Direction((meta + 3) & 0x3),
		Open:   meta&doorOpenFlag != 0,
	}
}

func (s DoorState) String() string {
	if s.Top {
		name := "TOP_LEFT"
		if s.HingeRight {
			name = "TOP_RIGHT"
		}
		if s.Powered {
			name += "_POWERED"
		}
		return name
	}
	name := "BOTTOM_" + s.Facing.String()
	if s.Open {
		name += "_OPEN"
	}
	return name
}

// FenceGateState is the state of a fence gate.
type FenceGateState struct {
	Facing Direction
	Open   bool
}

// Meta packs the state.
func (s FenceGateState) Meta() uint8 {
	m := uint8(s.Facing) & 0x3
	if s.Open {
		m |= gateOpenFlag
	}
	return m
}

// ParseFenceGateMeta unpacks a fence gate meta value. Bit 3 is unused.
func ParseFenceGateMeta(meta uint8) FenceGateState {
	return FenceGateState{Facing: Direction(meta & 0x3), Open: meta&gateOpenFlag != 0}
}

func (s FenceGateState) String() string {
	if s.Open {
		return s.Facing.String() + "_OPEN"
	}
	return s.Facing.String()
}

// LogAxis is the orientation of a log, stored in bits 2-3.
type LogAxis uint8

const (
	AxisY    LogAxis = 0x0
	AxisX    LogAxis = 0x4
	AxisZ    LogAxis = 0x8
	AxisNone LogAxis = 0xC
)

func (a LogAxis) String() string {
	switch a {
	case AxisY:
		return "Y"
	case AxisX:
		return "X"
	case AxisZ:
		return "Z"
	case AxisNone:
		return "NONE"
	}
	return fmt.Sprintf("LogAxis(%#x)", uint8(a))
}

// ParseLogMeta splits a log meta into its wood index and axis.
func ParseLogMeta(meta uint8) (uint8, LogAxis) {
	return meta & 0x3, LogAxis(meta & 0xC)
}

// LogAxes returns the axes in meta order.
func LogAxes() []LogAxis { return []LogAxis{AxisY, AxisX, AxisZ, AxisNone} }

const (
	leavesNoDecay    = 0x4
	leavesCheckDecay = 0x8
)
