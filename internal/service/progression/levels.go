package progression

// LevelInfo описывает ранг, соответствующий количеству опыта
type LevelInfo struct {
	Level       int    `json:"level"`
	RankName    string `json:"rankName"`
	MinXP       int    `json:"minXp"`
	MaxXP       int    `json:"maxXp"`       // -1 для верхнего ранга (без верхней границы)
	NextLevelXP int    `json:"nextLevelXp"` // 0 для верхнего ранга
}

// levelTier описывает одну полосу опыта
type levelTier struct {
	level    int
	rankName string
	minXP    int
	maxXP    int // -1 = без верхней границы
}

// Шесть фиксированных рангов с непересекающимися смежными полосами опыта.
// Порядок от высшего к низшему: поиск идет сверху вниз.
var levelTiers = []levelTier{
	{6, "Lenda de Esparta", 1501, -1},
	{5, "Comandante", 1001, 1500},
	{4, "Espartano", 601, 1000},
	{3, "Hoplita", 301, 600},
	{2, "Soldado", 101, 300},
	{1, "Recruta", 0, 100},
}

// LevelForXP возвращает ранг для заданного опыта.
// Отрицательный опыт трактуется как 0.
func LevelForXP(xp int) LevelInfo {
	if xp < 0 {
		xp = 0
	}

	for _, tier := range levelTiers {
		if xp >= tier.minXP {
			next := 0
			if tier.maxXP >= 0 {
				next = tier.maxXP + 1
			}
			return LevelInfo{
				Level:       tier.level,
				RankName:    tier.rankName,
				MinXP:       tier.minXP,
				MaxXP:       tier.maxXP,
				NextLevelXP: next,
			}
		}
	}

	// Недостижимо: нижняя полоса начинается с нуля
	base := levelTiers[len(levelTiers)-1]
	return LevelInfo{Level: base.level, RankName: base.rankName, MinXP: base.minXP, MaxXP: base.maxXP, NextLevelXP: base.maxXP + 1}
}
