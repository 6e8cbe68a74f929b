package services

import "github.com/Dias221467/health-o-mania/internal/models"

// LevelGrowth is the factor applied to the XP threshold on every level up.
const LevelGrowth = 1.5

// ApplyXP grants gained XP to p and returns the new progress together with
// the number of levels gained. Every crossed threshold is applied, so a
// large grant can raise several levels at once; each level up raises the
// threshold to floor(threshold * LevelGrowth).
func ApplyXP(p models.Progress, gained int) (models.Progress, int) {
	if gained < 0 {
		gained = 0
	}
	if p.Level < models.InitialLevel {
		p.Level = models.InitialLevel
	}
	if p.XPToNextLevel < 1 {
		p.XPToNextLevel = models.InitialXPToNextLevel
	}

	p.XP += gained
	levels := 0
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		levels++
		p.XPToNextLevel = int(float64(p.XPToNextLevel) * LevelGrowth)
	}
	return p, levels
}
