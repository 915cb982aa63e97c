package material

import "github.com/dioritemc/diorite-go/pkg/simpleenum"

// DyeColor is one of the sixteen dye colours. Coloured blocks (wool,
// stained glass and clay, carpet) use WoolMeta as their sub-type; the dye
// item uses DyeMeta, which runs in the opposite direction.
type DyeColor struct {
	simpleenum.Base
	rgb uint32
}

// WoolMeta returns the block sub-type for this colour.
func (c *DyeColor) WoolMeta() uint8 { return uint8(c.Ordinal()) }

// DyeMeta returns the dye item sub-type for this colour.
func (c *DyeColor) DyeMeta() uint8 { return 15 - uint8(c.Ordinal()) }

// RGB returns the colour as 0xRRGGBB.
func (c *DyeColor) RGB() uint32 { return c.rgb }

var dyeColors = simpleenum.New[*DyeColor]("dye color")

func newColor(name string, wool int, rgb uint32) *DyeColor {
	return dyeColors.MustRegister(&DyeColor{Base: simpleenum.NewBase(name, wool), rgb: rgb})
}

// Dye colours in wool order.
var (
	White     = newColor("WHITE", 0, 0xffffff)
	Orange    = newColor("ORANGE", 1, 0xd87f33)
	Magenta   = newColor("MAGENTA", 2, 0xb24cd8)
	LightBlue = newColor("LIGHT_BLUE", 3, 0x6699d8)
	Yellow    = newColor("YELLOW", 4, 0xe5e533)
	Lime      = newColor("LIME", 5, 0x7fcc19)
	Pink      = newColor("PINK", 6, 0xf27fa5)
	Gray      = newColor("GRAY", 7, 0x4c4c4c)
	Silver    = newColor("SILVER", 8, 0x999999)
	Cyan      = newColor("CYAN", 9, 0x4c7f99)
	Purple    = newColor("PURPLE", 10, 0x7f3fb2)
	Blue      = newColor("BLUE", 11, 0x334cb2)
	Brown     = newColor("BROWN", 12, 0x664c33)
	Green     = newColor("GREEN", 13, 0x667f33)
	Red       = newColor("RED", 14, 0x993333)
	Black     = newColor("BLACK", 15, 0x191919)
)

// DyeColors returns all colours in wool order.
func DyeColors() []*DyeColor { return dyeColors.Values() }

// ColorByWoolMeta returns the colour for a wool sub-type, or nil.
func ColorByWoolMeta(meta int) *DyeColor {
	c, _ := dyeColors.ByOrdinal(meta)
	return c
}

// ColorByDyeMeta returns the colour for a dye item sub-type, or nil.
func ColorByDyeMeta(meta int) *DyeColor {
	if meta < 0 || meta > 15 {
		return nil
	}
	return ColorByWoolMeta(15 - meta)
}

// ColorByName returns the colour with the given name, or nil.
func ColorByName(name string) *DyeColor {
	c, _ := dyeColors.ByName(name)
	return c
}
