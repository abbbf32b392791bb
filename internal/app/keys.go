package app

// Keys shared by the shell, the coordinator and the list.
const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyEscRaw   = "\x1b"
	keyTab      = "tab"
	keyCtrlC    = "ctrl+c"
	keyQ        = "q"
	keySlash    = "/"
	keyQuestion = "?"
)

// List keys. Each action has a vim-style letter next to its arrow/named key.
const (
	keyUp       = "up"
	keyUpAlt    = "k"
	keyDown     = "down"
	keyDownAlt  = "j"
	keyOpenAlt  = "x"
	keyMine     = "m"
	keyDelete   = "delete"
	keyDeleteD  = "d"
	keyRefresh  = "r"
	keyCopyLink = "y"
)

// isEscKey accepts both tea.KeyEsc and the bare ESC byte some terminals send.
func isEscKey(keyStr string) bool {
	return keyStr == keyEsc || keyStr == keyEscRaw
}
