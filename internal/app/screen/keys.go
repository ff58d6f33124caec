package screen

const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyEscRaw   = "\x1b" // raw escape byte from terminals that send ESC as a rune
	keyQ        = "q"
	keyCtrlC    = "ctrl+c"
	keyTab      = "tab"
	keyUp       = "up"
	keyDown     = "down"
	keyCtrlP    = "ctrl+p"
	keyCtrlN    = "ctrl+n"
	keyCtrlD    = "ctrl+d"
	keyCtrlU    = "ctrl+u"
	keySpace    = " "
	keyPageDown = "pgdown"
	keyPageUp   = "pgup"
)

func clampInt(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
