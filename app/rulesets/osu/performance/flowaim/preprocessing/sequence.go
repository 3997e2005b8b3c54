package preprocessing

import (
	"github.com/Givikap120/flowaim-sr/app/beatmap/difficulty"
	"github.com/Givikap120/flowaim-sr/app/beatmap/objects"
)

// Sequence lazily derives DifficultyObjects from hit objects. The first hit object has no DifficultyObject.
type Sequence struct {
	hitObjects []objects.IHitObject
	diff       *difficulty.Difficulty
}

func CreateDifficultyObjects(hitObjects []objects.IHitObject, d *difficulty.Difficulty) *Sequence {
	wrapped := make([]objects.IHitObject, len(hitObjects))

	for i, o := range hitObjects {
		if s, ok := o.(*objects.Slider); ok {
			wrapped[i] = NewLazySlider(s, d)
			continue
		}

		wrapped[i] = o
	}

	return &Sequence{
		hitObjects: wrapped,
		diff:       d,
	}
}

func (seq *Sequence) Len() int {
	return max(0, len(seq.hitObjects)-1)
}

// At computes DifficultyObject with given index, which corresponds to hit object index+1
func (seq *Sequence) At(index int) *DifficultyObject {
	if index < 0 || index >= seq.Len() {
		return nil
	}

	i := index + 1

	var lastLast objects.IHitObject
	if i > 1 {
		lastLast = seq.hitObjects[i-2]
	}

	return NewDifficultyObject(seq.hitObjects[i], lastLast, seq.hitObjects[i-1], seq.diff, index)
}

func (seq *Sequence) Iterator() *Iterator {
	return &Iterator{seq: seq}
}

// Collect materializes the whole sequence
func (seq *Sequence) Collect() []*DifficultyObject {
	result := make([]*DifficultyObject, 0, seq.Len())

	for it := seq.Iterator(); ; {
		o, ok := it.Next()
		if !ok {
			break
		}

		result = append(result, o)
	}

	return result
}

type Iterator struct {
	seq  *Sequence
	next int
}

func (it *Iterator) Next() (*DifficultyObject, bool) {
	if it.next >= it.seq.Len() {
		return nil, false
	}

	o := it.seq.At(it.next)
	it.next++

	return o, true
}
