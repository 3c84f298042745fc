package ledger

import "math"

// XPNeededForLevel returns the XP required to advance from the given level to
// the next one: floor(BaseXP * level^LevelExponent).
func XPNeededForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(math.Floor(BaseXP * math.Pow(float64(level), LevelExponent)))
}

// CalculateLevel derives a level from total accumulated XP. Levels start at 1
// and the function is monotonic: more XP never yields a lower level.
func CalculateLevel(totalXP int64) int {
	level, _ := calculateLevelAndCumulative(totalXP)
	return level
}

// GetXPProgress reports how far into the current level the given total XP is:
// the derived level, the XP earned within that level, and the XP needed to
// reach the next one.
func GetXPProgress(totalXP int64) (level int, intoLevel int64, needed int64) {
	level, cumulative := calculateLevelAndCumulative(totalXP)
	floor := cumulative - XPNeededForLevel(level)
	return level, totalXP - floor, XPNeededForLevel(level)
}

// GetTotalXPForLevel returns the minimum total XP at which the given level is
// reached. Level 1 needs 0 XP.
func GetTotalXPForLevel(level int) int64 {
	var total int64
	for l := 1; l < level && l < MaxIterationLevel; l++ {
		total += XPNeededForLevel(l)
	}
	return total
}

// calculateLevelAndCumulative walks the curve until the next threshold exceeds
// totalXP. It returns the reached level and the cumulative XP required to pass
// it (the next level's threshold).
func calculateLevelAndCumulative(totalXP int64) (int, int64) {
	level := 1
	var cumulative int64
	for level < MaxIterationLevel {
		step := XPNeededForLevel(level)
		if cumulative+step > totalXP {
			return level, cumulative + step
		}
		cumulative += step
		level++
	}
	return level, cumulative + XPNeededForLevel(level)
}
