// Package config provides YAML-based balance configuration and AI
// difficulty presets for the duel engine.
package config

// Balance contains the tunable numbers of a duel run.
type Balance struct {
	Run     RunConfig     `yaml:"run"`
	Combat  CombatConfig  `yaml:"combat"`
	Shop    ShopConfig    `yaml:"shop"`
	AI      AIConfig      `yaml:"ai"`
}

// RunConfig governs the battle sequence of a run.
type RunConfig struct {
	// MaxBattles is how many battles a run lasts.
	MaxBattles int `yaml:"max_battles"`
	// HealBetweenBattles is the fraction of max health restored after a
	// won battle, in percent.
	HealBetweenBattles int `yaml:"heal_between_battles"`
}

// CombatConfig governs match-derived damage.
type CombatConfig struct {
	// IgniteDamage is dealt to the opponent per ignited tile cleared.
	IgniteDamage int `yaml:"ignite_damage"`
	// ComboDamage is dealt per cascade pass beyond the first.
	ComboDamage int `yaml:"combo_damage"`
}

// ShopConfig governs the blessing shop.
type ShopConfig struct {
	// Offers is how many blessings are on sale at once.
	Offers int `yaml:"offers"`
}

// AIConfig governs the computer opponent.
type AIConfig struct {
	// SkillBias is the chance in percent that the AI prefers casting an
	// affordable skill over swapping.
	SkillBias int `yaml:"skill_bias"`
	// Class is the AI loadout.
	Class string `yaml:"class"`
}

// DifficultyPreset represents a named AI difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ApplyPreset adjusts the balance for a difficulty preset.
func ApplyPreset(cfg *Balance, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.AI.SkillBias = 20
	case DifficultyNormal:
		cfg.AI.SkillBias = 50
	case DifficultyHard:
		cfg.AI.SkillBias = 80
	}
}
