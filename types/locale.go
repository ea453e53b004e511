package types

// DateSystem selects the serial-date epoch of the workbook.
type DateSystem uint8

const (
	// Date1900 is the default epoch (December 30, 1899).
	Date1900 DateSystem = iota
	// Date1904 is the Macintosh-era epoch (January 1, 1904).
	Date1904
)

// LocaleConfig carries the locale settings that affect number and criteria
// parsing. The host owns the full locale model; functions here only need
// the separators.
type LocaleConfig struct {
	DecimalSeparator  rune
	ThousandSeparator rune
	ListSeparator     rune
}

// DefaultLocale is the en-US configuration used when the host supplies none.
var DefaultLocale = LocaleConfig{
	DecimalSeparator:  '.',
	ThousandSeparator: ',',
	ListSeparator:     ',',
}
