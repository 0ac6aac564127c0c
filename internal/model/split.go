package model

import (
	"math"
	"math/rand"
)

// splitSeed fixes the shuffle so repeated batch runs produce identical
// report tables.
const splitSeed = 42

// minSplitSamples is the smallest sample a held-out split makes sense
// for; below it every fold is leave-one-out.
const minSplitSamples = 4

// Fold is one train/test partition expressed as index sets.
type Fold struct {
	Train []int
	Test  []int
}

// Folds returns the cross-validation plan for n samples: a single 70/30
// shuffled split when the sample supports it, otherwise leave-one-out.
func Folds(n int) []Fold {
	if n < minSplitSamples {
		return leaveOneOut(n)
	}
	return []Fold{trainTestSplit(n, 0.3)}
}

func leaveOneOut(n int) []Fold {
	folds := make([]Fold, 0, n)
	for i := 0; i < n; i++ {
		fold := Fold{Test: []int{i}}
		for j := 0; j < n; j++ {
			if j != i {
				fold.Train = append(fold.Train, j)
			}
		}
		folds = append(folds, fold)
	}
	return folds
}

func trainTestSplit(n int, testFrac float64) Fold {
	idx := rand.New(rand.NewSource(splitSeed)).Perm(n)
	testN := int(math.Ceil(float64(n) * testFrac))
	if testN < 1 {
		testN = 1
	}
	return Fold{
		Test:  idx[:testN],
		Train: idx[testN:],
	}
}

// StratifiedSplit partitions by class so both classes appear in train and
// test. Labels must already be validated to hold at least two examples of
// each class.
func StratifiedSplit(labels []bool, testFrac float64) Fold {
	rng := rand.New(rand.NewSource(splitSeed))
	var fold Fold
	for _, class := range []bool{false, true} {
		var members []int
		for i, l := range labels {
			if l == class {
				members = append(members, i)
			}
		}
		rng.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})
		testN := int(math.Ceil(float64(len(members)) * testFrac))
		if testN < 1 && len(members) > 1 {
			testN = 1
		}
		if testN >= len(members) {
			testN = len(members) - 1
		}
		fold.Test = append(fold.Test, members[:testN]...)
		fold.Train = append(fold.Train, members[testN:]...)
	}
	return fold
}
