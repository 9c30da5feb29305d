package interp

// Bool is the type of boolean values.
type Bool bool

// True and False are the two Bool values.
const (
	True  = Bool(true)
	False = Bool(false)
)

var _ Value = True

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) Type() string { return "boolean" }
