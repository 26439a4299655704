package ui

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolPending = "○"
	SymbolWarning = "⚠"
	SymbolArrow   = "→"
)

// Listing markers.
const (
	SymbolDirectory = "▸"
	SymbolFile      = "·"
)
