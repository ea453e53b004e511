package types

// ErrorKind identifies a spreadsheet error value.
type ErrorKind uint8

const (
	// ErrNone is the zero value and means "no error". It is used by the
	// coercion helpers, never stored inside a Value.
	ErrNone ErrorKind = iota
	// ErrNull is #NULL!
	ErrNull
	// ErrDiv0 is #DIV/0!
	ErrDiv0
	// ErrValue is #VALUE!
	ErrValue
	// ErrRef is #REF!
	ErrRef
	// ErrName is #NAME?
	ErrName
	// ErrNum is #NUM!
	ErrNum
	// ErrNA is #N/A
	ErrNA
	// ErrSpill is #SPILL!
	ErrSpill
	// ErrCalc is #CALC!
	ErrCalc
)

// String returns the display form of the error, e.g. "#VALUE!".
func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return ""
	case ErrNull:
		return "#NULL!"
	case ErrDiv0:
		return "#DIV/0!"
	case ErrValue:
		return "#VALUE!"
	case ErrRef:
		return "#REF!"
	case ErrName:
		return "#NAME?"
	case ErrNum:
		return "#NUM!"
	case ErrNA:
		return "#N/A"
	case ErrSpill:
		return "#SPILL!"
	case ErrCalc:
		return "#CALC!"
	default:
		return "#UNKNOWN!"
	}
}
