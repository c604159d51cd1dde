package graphics

// BlendMode selects how drawn pixels combine with the destination. The
// values are the native layer's constants.
type BlendMode int

const (
	// BlendAlpha: Pixel = Source * Source.a + Dest * (1 - Source.a)
	BlendAlpha BlendMode = 0
	// BlendAdd: Pixel = Source + Dest
	BlendAdd BlendMode = 1
	// BlendMultiply: Pixel = Source * Dest
	BlendMultiply BlendMode = 2
	// BlendNone: Pixel = Source
	BlendNone BlendMode = 3
)

func (m BlendMode) String() string {
	switch m {
	case BlendAlpha:
		return "alpha"
	case BlendAdd:
		return "add"
	case BlendMultiply:
		return "multiply"
	case BlendNone:
		return "none"
	}
	return "BlendMode(?)"
}
