package difficulty

import (
	"fmt"
	"strings"
)

type Modifier int64

const (
	None   Modifier = 0
	NoFail Modifier = 1 << (iota - 1)
	Easy
	TouchDevice
	Hidden
	HardRock
	SuddenDeath
	DoubleTime
	Relax
	HalfTime
	Nightcore
	Flashlight
	Autoplay
	SpunOut
	Relax2
	Perfect
)

// DifficultyAdjustMask contains mods that change the outcome of the difficulty calculation
const DifficultyAdjustMask = Easy | TouchDevice | HardRock | DoubleTime | Relax | HalfTime | Nightcore

var modsString = [...]string{
	"NF",
	"EZ",
	"TD",
	"HD",
	"HR",
	"SD",
	"DT",
	"RX",
	"HT",
	"NC",
	"FL",
	"AT",
	"SO",
	"AP",
	"PF",
}

func (mods Modifier) Active(mod Modifier) bool {
	return mods&mod == mod
}

func (mods Modifier) String() (s string) {
	var sb strings.Builder

	for i, v := range modsString {
		if v == "DT" && mods.Active(Nightcore) {
			continue
		}

		if mods&(1<<uint(i)) > 0 {
			sb.WriteString(v)
		}
	}

	return sb.String()
}

// GetDiffMaskedMods returns only the mods that affect star rating
func GetDiffMaskedMods(mods Modifier) Modifier {
	return mods & DifficultyAdjustMask
}

// ParseMods parses an acronym string such as "HDDT" or "hd,hr".
func ParseMods(mods string) (Modifier, error) {
	clean := strings.ToUpper(strings.NewReplacer(",", "", " ", "", "+", "").Replace(mods))

	if len(clean)%2 != 0 {
		return None, fmt.Errorf("invalid mod string %q", mods)
	}

	var result Modifier

	for i := 0; i < len(clean); i += 2 {
		acronym := clean[i : i+2]

		found := false

		for j, v := range modsString {
			if v == acronym {
				result |= 1 << uint(j)
				found = true

				break
			}
		}

		if !found {
			return None, fmt.Errorf("unknown mod %q", acronym)
		}
	}

	if result.Active(Nightcore) {
		result |= DoubleTime
	}

	if result.Active(DoubleTime) && result.Active(HalfTime) {
		return None, fmt.Errorf("incompatible mods in %q", mods)
	}

	if result.Active(Easy) && result.Active(HardRock) {
		return None, fmt.Errorf("incompatible mods in %q", mods)
	}

	return result, nil
}
