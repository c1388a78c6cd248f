package dice

// Common single dice.
var (
	D4   = MustNew(1, 4, 0, 0)
	D6   = MustNew(1, 6, 0, 0)
	D8   = MustNew(1, 8, 0, 0)
	D10  = MustNew(1, 10, 0, 0)
	D12  = MustNew(1, 12, 0, 0)
	D20  = MustNew(1, 20, 0, 0)
	D100 = MustNew(1, 100, 0, 0)
)

// StatRoll is the classic ability score roll: 4d6, drop the lowest.
var StatRoll = MustNew(4, 6, 1, 0)

// StatBlock rolls six ability scores with StatRoll.
func StatBlock(src Source) [6]int {
	var block [6]int
	for i := range block {
		block[i] = StatRoll.Roll(src).Result()
	}
	return block
}
