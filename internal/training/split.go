package training

import (
	"math"
	"math/rand"
	"sort"

	"dompet/categorizer/internal/models"
)

// Split partitions examples into train and test sets. When every category
// has enough members the split is stratified so the test set mirrors the
// category distribution; otherwise a plain shuffled split is used. The
// chosen strategy is returned so it can be recorded in the artifact
// metadata. The same seed always produces the same partition.
func Split(examples []Example, testFraction float64, seed int64) (train, test []Example, strategy models.SplitStrategy) {
	rng := rand.New(rand.NewSource(seed))

	if stratifiable(examples) {
		return splitStratified(examples, testFraction, rng)
	}
	return splitUnstratified(examples, testFraction, rng)
}

func stratifiable(examples []Example) bool {
	for _, n := range categoryCounts(examples) {
		if n < minExamplesPerCategory {
			return false
		}
	}
	return len(examples) > 0
}

func splitStratified(examples []Example, testFraction float64, rng *rand.Rand) (train, test []Example, strategy models.SplitStrategy) {
	groups := make(map[string][]Example)
	for _, e := range examples {
		groups[e.Category] = append(groups[e.Category], e)
	}

	// Iterate categories in sorted order so the rng is consumed
	// deterministically regardless of map iteration order.
	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		group := groups[c]
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})

		// Every category keeps at least one example on each side.
		nTest := int(math.Round(testFraction * float64(len(group))))
		if nTest < 1 {
			nTest = 1
		}
		if nTest >= len(group) {
			nTest = len(group) - 1
		}

		test = append(test, group[:nTest]...)
		train = append(train, group[nTest:]...)
	}
	return train, test, models.SplitStratified
}

func splitUnstratified(examples []Example, testFraction float64, rng *rand.Rand) (train, test []Example, strategy models.SplitStrategy) {
	shuffled := make([]Example, len(examples))
	copy(shuffled, examples)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(math.Round(testFraction * float64(len(shuffled))))
	if nTest >= len(shuffled) {
		nTest = len(shuffled) - 1
	}
	if nTest < 0 {
		nTest = 0
	}

	return shuffled[nTest:], shuffled[:nTest], models.SplitUnstratified
}
