package tui

import "strings"

const digitRows = 5

// bigDigits maps each clock character to its 5-row block-art form.
var bigDigits = map[rune][digitRows]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "  ██ ", "██   ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", "  █  "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"   ", " █ ", "   ", " █ ", "   "},
}

// renderBigClock draws remaining seconds as mm:ss in 5-row block digits.
func renderBigClock(secs int) string {
	var rows [digitRows]strings.Builder

	for _, ch := range formatClock(secs) {
		digit, ok := bigDigits[ch]
		if !ok {
			digit = [digitRows]string{"     ", "     ", "     ", "     ", "     "}
		}
		for i := 0; i < digitRows; i++ {
			rows[i].WriteString(digit[i])
			rows[i].WriteByte(' ')
		}
	}

	lines := make([]string, digitRows)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}
