package vt

const (
	// Like it's 1975 baby!
	DEF_ROWS = 24
	DEF_COLS = 80
)

const (
	BEL = 0x07 // ^G Bell
	BS  = 0x08 // ^H Backspace
	TAB = 0x09 // ^I Tab \t
	LF  = 0x0a // ^J Line feed \n
	VT  = 0x0b // ^K Vertical tab \v
	FF  = 0x0c // ^L Form feed \f
	CR  = 0x0d // ^M Carriage return \r
	ESC = 0x1b
	CSI = '[' // after ESC, control sequence introducer
	OSC = ']' // after ESC, operating system command
	ST  = '\\'
)

// CSI final bytes we interpret.
const (
	CSI_CUU        = 'A' // cursor up
	CSI_CUD        = 'B' // cursor down
	CSI_CUF        = 'C' // cursor forward
	CSI_CUB        = 'D' // cursor back
	CSI_CUP        = 'H' // cursor position
	CSI_ED         = 'J' // erase in display
	CSI_EL         = 'K' // erase in line
	CSI_HVP        = 'f' // horizontal vertical position
	CSI_MODE_SET   = 'h' // accepted, no grid effect
	CSI_MODE_RESET = 'l' // accepted, no grid effect
	CSI_SGR        = 'm' // select graphic rendition
)

// Erase-in-display / erase-in-line parameter values.
const (
	ERASE_TO_END   = 0
	ERASE_TO_START = 1
	ERASE_ALL      = 2
)

// Tab stops sit every 8 columns, the console default.
const TAB_WIDTH = 8
