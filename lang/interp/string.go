package interp

// String is the type of string values.
type String string

var _ Value = String("")

// String returns the raw characters, without surrounding quotes.
func (s String) String() string { return string(s) }

func (s String) Type() string { return "string" }
