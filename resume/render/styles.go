package render

// TextStyle captures the font settings for one kind of resume text.
type TextStyle struct {
	Bold   bool
	Italic bool
	Size   float64
	Color  [3]int
}

var (
	headingColor = [3]int{0x1F, 0x29, 0x37}
	bodyColor    = [3]int{0x11, 0x11, 0x11}
	mutedColor   = [3]int{0x4B, 0x55, 0x63}
)

// styles centralizes the formatting of key resume elements.
var styles = map[string]TextStyle{
	"name":           {Bold: true, Size: 22, Color: bodyColor},
	"jobTitle":       {Size: 13, Color: mutedColor},
	"sectionHeading": {Bold: true, Size: 12, Color: headingColor},
	"roleLine":       {Bold: true, Size: 10.5, Color: bodyColor},
	"meta":           {Italic: true, Size: 9.5, Color: mutedColor},
	"body":           {Size: 10, Color: bodyColor},
}

func (s TextStyle) fontStyle() string {
	out := ""
	if s.Bold {
		out += "B"
	}
	if s.Italic {
		out += "I"
	}
	return out
}
