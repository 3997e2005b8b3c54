package api

type Dimension int

// Dimensions are listed in evaluation order, later dimensions may read strains published by earlier ones
const (
	Aim Dimension = iota
	SnapAim
	FlowAim
	AimStamina
	Stamina
	Speed
	DimensionCount
)

var dimensionNames = [...]string{
	"aim",
	"snap_aim",
	"flow_aim",
	"aim_stamina",
	"stamina",
	"speed",
}

func (d Dimension) String() string {
	if d < 0 || d >= DimensionCount {
		return "unknown"
	}

	return dimensionNames[d]
}

// IsAimType reports whether dimension belongs to aim family, used to pick aggregation constants
func (d Dimension) IsAimType() bool {
	return d == Aim || d == SnapAim || d == FlowAim || d == AimStamina
}
