package material

import "github.com/dioritemc/diorite-go/pkg/simpleenum"

// WoodType is a tree species. Its ID is the sub-type used by planks,
// saplings and wooden slabs.
type WoodType struct {
	simpleenum.Base
	id uint8
}

// ID returns the protocol wood id.
func (w *WoodType) ID() uint8 { return w.id }

var woodTypes = simpleenum.New[*WoodType]("wood type")

func newWood(name string, id uint8) *WoodType {
	return woodTypes.MustRegister(&WoodType{Base: simpleenum.NewBase(name, int(id)), id: id})
}

// Wood types in protocol order.
var (
	Oak     = newWood("OAK", 0)
	Spruce  = newWood("SPRUCE", 1)
	Birch   = newWood("BIRCH", 2)
	Jungle  = newWood("JUNGLE", 3)
	Acacia  = newWood("ACACIA", 4)
	DarkOak = newWood("DARK_OAK", 5)
)

// WoodTypes returns all wood types in protocol order.
func WoodTypes() []*WoodType { return woodTypes.Values() }

// WoodByID returns the wood type with the given id, or nil.
func WoodByID(id int) *WoodType {
	w, _ := woodTypes.ByOrdinal(id)
	return w
}

// WoodByName returns the wood type with the given name, or nil.
func WoodByName(name string) *WoodType {
	w, _ := woodTypes.ByName(name)
	return w
}
