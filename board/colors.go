package board

import "strconv"

var colorLetters = []string{"B", "Y", "R", "K", "W"}

// ColorLetter is a one-character name for a tile color: Blue, Yellow, Red,
// blacK and White for the standard five, digits past that.
func ColorLetter(color int) string {
	if color < 0 {
		return "."
	}
	if color < len(colorLetters) {
		return colorLetters[color]
	}
	return strconv.Itoa(color % 10)
}
