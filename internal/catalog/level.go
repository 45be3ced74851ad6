package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// areaRundowns maps the engine's local area codes to rundown numbers.
var areaRundowns = map[string]uint8{
	"Local_32": 1,
	"Local_33": 2,
	"Local_34": 3,
	"Local_35": 4,
	"Local_36": 5,
	"Local_37": 6,
	"Local_38": 7,
	"Local_41": 8,
}

var tierLetters = map[string]string{
	"1": "A",
	"2": "B",
	"3": "C",
	"4": "D",
	"5": "E",
}

// LevelCode converts an expedition token such as "Local_32,1,0" into the
// in-game code "R1A1". Unknown areas, tiers and malformed tokens yield false.
func LevelCode(token string) (string, bool) {
	parts := strings.Split(token, ",")
	if len(parts) != 3 {
		return "", false
	}
	rundown, ok := areaRundowns[parts[0]]
	if !ok {
		return "", false
	}
	tier, ok := tierLetters[parts[1]]
	if !ok {
		return "", false
	}
	expedition, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("R%d%s%d", rundown, tier, expedition+1), true
}
