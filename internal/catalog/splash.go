package catalog

import (
	"fmt"
	"strings"
)

const splashBase = "https://ddragon.leagueoflegends.com/cdn/img/champion/splash"

// splashAliases maps display names to the Data Dragon key where they differ.
var splashAliases = map[string]string{
	"Wukong": "MonkeyKing",
}

// SplashURL builds the splash art URL for a champion skin. Skin 0 is the
// base skin.
func SplashURL(name string, skin int) string {
	key := strings.NewReplacer("'", "", ".", "", " ", "").Replace(name)
	if alias, ok := splashAliases[key]; ok {
		key = alias
	}
	if skin < 0 {
		skin = 0
	}
	return fmt.Sprintf("%s/%s_%d.jpg", splashBase, key, skin)
}

// SkinLabel is the caption shown under the splash art.
func SkinLabel(skin int) string {
	if skin <= 0 {
		return "Base"
	}
	return fmt.Sprintf("Skin %d", skin)
}
