package models

// LevelThreshold maps minimum accumulated XP to a CEFR proficiency label.
type LevelThreshold struct {
	Level string
	MinXP int64
}

// LevelLadder: ordered ascending by MinXP. First entry must be the zero level.
var LevelLadder = []LevelThreshold{
	{Level: "A1", MinXP: 0},
	{Level: "A2", MinXP: 500},
	{Level: "B1", MinXP: 1500},
	{Level: "B2", MinXP: 3500},
	{Level: "C1", MinXP: 7000},
	{Level: "C2", MinXP: 12000},
}

// LevelForXP returns the CEFR label for an XP total.
func LevelForXP(xp int64) string {
	level := LevelLadder[0].Level
	for _, t := range LevelLadder {
		if xp >= t.MinXP {
			level = t.Level
		}
	}
	return level
}
