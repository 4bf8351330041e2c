package config

import (
	_ "embed"
)

//go:embed defaults/balance.yaml
var defaultBalanceYAML []byte

// DefaultBalance returns the hardcoded fallback balance, used if even the
// embedded YAML fails to parse.
func DefaultBalance() Balance {
	return Balance{
		Run: RunConfig{
			MaxBattles:         5,
			HealBetweenBattles: 50,
		},
		Combat: CombatConfig{
			IgniteDamage: 3,
			ComboDamage:  2,
		},
		Shop: ShopConfig{
			Offers: 3,
		},
		AI: AIConfig{
			SkillBias: 50,
			Class:     "pyromancer",
		},
	}
}
