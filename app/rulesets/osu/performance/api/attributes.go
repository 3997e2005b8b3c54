package api

type Attributes struct {
	// Total Star rating, visible on osu!'s beatmap page
	Total float64

	// Aim stars, merged from Aim and AimStamina with the combined bonus applied
	Aim float64

	// Speed stars, merged from Speed and Stamina with the combined bonus applied
	Speed float64

	SnapAim    float64
	FlowAim    float64
	AimStamina float64
	Stamina    float64

	AimDifficultStrainCount   float64
	SpeedDifficultStrainCount float64

	// ApproachRate and OverallDifficulty are display values recovered from clock-rate adjusted hit windows
	ApproachRate      float64
	OverallDifficulty float64

	ObjectCount int
	Circles     int
	Sliders     int
	Spinners    int
	MaxCombo    int

	// FullCombo is nil unless full combo time estimation was requested
	FullCombo *FullComboResult

	// Skills holds frozen strain states of every dimension
	Skills map[Dimension]*StrainState
}

// FullComboResult is the outcome of the full combo time solver
type FullComboResult struct {
	// Skill is the skill level (in strain units) whose expected full combo time matches TargetTime
	Skill float64

	// Rating is Skill converted to the star scale
	Rating float64

	// ExpectedTime is the expected time in seconds to full combo the map at Skill
	ExpectedTime float64

	// TargetTime in seconds, grows with map length
	TargetTime float64

	// MapLength is clock-rate adjusted drain length in seconds
	MapLength float64

	Iterations int
	Converged  bool
}

// StrainState is a read-only snapshot of a finished strain engine
type StrainState struct {
	Dimension Dimension

	// Peaks has one value per section, in map order
	Peaks []float64

	CurrentStrain float64
	TotalStrain   float64

	// ObjectCount is the number of non-spinner objects processed
	ObjectCount int
}

// StrainPeaks contains peaks of all dimensions, as well as peaks passed through star rating formula
type StrainPeaks struct {
	Aim        []float64
	SnapAim    []float64
	FlowAim    []float64
	AimStamina []float64
	Speed      []float64
	Stamina    []float64

	// FinalAim and FinalSpeed are merged series with the combined bonus applied
	FinalAim   []float64
	FinalSpeed []float64

	// Total contains final aim and speed peaks passed through star rating formula
	Total []float64
}
