package ui

// Unicode symbols for previews and diagnostics.
const (
	SymbolConstant = "●" // Column with a single value
	SymbolStat     = "◐" // Numeric column
	SymbolNull     = "○" // Missing readings
	SymbolSuccess  = "✓" // Check passed
	SymbolFail     = "✗" // Check or record failed
	SymbolWarn     = "!" // Check passed with a warning
)
