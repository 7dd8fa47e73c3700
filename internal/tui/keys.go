package tui

// Key bindings.
const (
	keyQuit      = "q"
	keyCtrlC     = "ctrl+c"
	keyEsc       = "esc"
	keyEnter     = "enter"
	keySlash     = "/"
	keyLeft      = "left"
	keyRight     = "right"
	keyUp        = "up"
	keyDown      = "down"
	keyH         = "h"
	keyL         = "l"
	keyK         = "k"
	keyJ         = "j"
	keyCategory  = "c"
	keyToggle    = "i"
	keyDelete    = "d"
	keyRestore   = "r"
	keyReload    = "ctrl+r"
	keyTab       = "tab"
	keyShiftTab  = "shift+tab"
	keyYes       = "y"
	keyYesUpper  = "Y"
	keyNo        = "n"
	keyNoUpper   = "N"
	keyFirstPage = "home"
	keyLastPage  = "end"
)

const helpLine = "←/→ page · ↑/↓ select · / search · c category · i active/inactive · " +
	"d delete · r restore · tab module · q quit"
