package difficulty

const HitFadeIn = 400.0

type Difficulty struct {
	baseHP float64
	baseCS float64
	baseOD float64
	baseAR float64

	hpDrain           float64
	circleSize        float64
	overallDifficulty float64
	approachRate      float64

	Mods Modifier

	// CircleRadiusU is the circle radius in osu!pixels after mods
	CircleRadiusU float64

	// PreemptU is the approach time in map time (not adjusted for clock rate)
	PreemptU float64

	// Hit300U is the great hit window half-width in map time
	Hit300U float64

	TimeFadeIn float64

	// ARReal and ODReal are the effective approach rate and overall difficulty, taking clock rate into account
	ARReal float64
	ODReal float64

	Speed float64

	// customSpeed overrides clock rate of speed changing mods when positive
	customSpeed float64
}

func NewDifficulty(hpDrain, circleSize, overallDifficulty, approachRate float64) *Difficulty {
	diff := &Difficulty{
		baseHP: hpDrain,
		baseCS: circleSize,
		baseOD: overallDifficulty,
		baseAR: approachRate,
	}

	diff.calculate()

	return diff
}

func (diff *Difficulty) calculate() {
	hp, cs, od, ar := diff.baseHP, diff.baseCS, diff.baseOD, diff.baseAR

	if diff.Mods.Active(HardRock) {
		ar = min(ar*1.4, 10)
		cs = min(cs*1.3, 10)
		od = min(od*1.4, 10)
		hp = min(hp*1.4, 10)
	}

	if diff.Mods.Active(Easy) {
		ar /= 2
		cs /= 2
		od /= 2
		hp /= 2
	}

	diff.hpDrain = hp
	diff.circleSize = cs
	diff.overallDifficulty = od
	diff.approachRate = ar

	diff.CircleRadiusU = 54.4 - 4.48*cs

	diff.PreemptU = DifficultyRange(ar, 1800, 1200, 450)
	diff.TimeFadeIn = HitFadeIn * min(1, diff.PreemptU/450)

	diff.Hit300U = DifficultyRange(od, 80, 50, 20)

	diff.Speed = diff.GetModifiedSpeed()

	// Int casts are there to achieve 1:1 results with osu!stable
	diff.ARReal = PreemptToAR(float64(int(diff.PreemptU)) / diff.Speed)
	diff.ODReal = GreatWindowToOD(float64(int(diff.Hit300U)) / diff.Speed)
}

func (diff *Difficulty) SetMods(mods Modifier) {
	diff.Mods = mods
	diff.calculate()
}

// SetCustomSpeed sets an arbitrary clock rate. Zero restores the rate implied by mods.
func (diff *Difficulty) SetCustomSpeed(speed float64) {
	diff.customSpeed = speed
	diff.calculate()
}

func (diff *Difficulty) GetCustomSpeed() float64 {
	return diff.customSpeed
}

func (diff *Difficulty) CheckModActive(mods Modifier) bool {
	return diff.Mods.Active(mods)
}

func (diff *Difficulty) GetModifiedSpeed() float64 {
	if diff.customSpeed > 0 {
		return diff.customSpeed
	}

	switch {
	case diff.Mods.Active(DoubleTime):
		return 1.5
	case diff.Mods.Active(HalfTime):
		return 0.75
	default:
		return 1
	}
}

func (diff *Difficulty) GetBaseHP() float64 { return diff.baseHP }
func (diff *Difficulty) GetBaseCS() float64 { return diff.baseCS }
func (diff *Difficulty) GetBaseOD() float64 { return diff.baseOD }
func (diff *Difficulty) GetBaseAR() float64 { return diff.baseAR }

func (diff *Difficulty) GetHPDrain() float64 { return diff.hpDrain }
func (diff *Difficulty) GetCS() float64      { return diff.circleSize }
func (diff *Difficulty) GetOD() float64      { return diff.overallDifficulty }
func (diff *Difficulty) GetAR() float64      { return diff.approachRate }

func (diff *Difficulty) Clone() *Difficulty {
	clone := *diff
	return &clone
}

// DifficultyRange maps a 0-10 difficulty setting onto min (0), mid (5) and max (10)
func DifficultyRange(diff, min, mid, max float64) float64 {
	if diff > 5 {
		return mid + (max-mid)*(diff-5)/5
	}

	if diff < 5 {
		return mid - (mid-min)*(5-diff)/5
	}

	return mid
}

func PreemptToAR(preempt float64) float64 {
	if preempt > 1200 {
		return (1800 - preempt) / 120
	}

	return (1200-preempt)/150 + 5
}

func GreatWindowToOD(window float64) float64 {
	return (80 - window) / 6
}
