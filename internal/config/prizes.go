package config

type Prize struct {
	Amount    int
	Label     string
	Chance    int
	Emoji     string
	PromoCode string
}

type GiveawayConfig struct {
	Prizes            []Prize
	MaxWinProbability int
}

// PrizeTable is the active ruleset. Order matters: the draw walks the slice
// accumulating Chance, so earlier prizes win ties at exact band boundaries.
// Chances must sum to MaxWinProbability.
var PrizeTable = GiveawayConfig{
	Prizes: []Prize{
		{
			Amount:    10000,
			Label:     "🏆 Сертификат на 10 000₽",
			Chance:    5,
			Emoji:     "🏆",
			PromoCode: "LUCKY10000",
		},
		{
			Amount:    5000,
			Label:     "💎 Сертификат на 5 000₽",
			Chance:    15,
			Emoji:     "💎",
			PromoCode: "LUCKY5000",
		},
		{
			Amount: 1000,
			Label:  "💰 Сертификат на 1 000₽",
			Chance: 30,
			Emoji:  "💰",
		},
		{
			Amount: 500,
			Label:  "🎀 Сертификат на 500₽",
			Chance: 50,
			Emoji:  "🎀",
		},
	},
	MaxWinProbability: 100,
}
