package material

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dioritemc/diorite-go/pkg/simpleenum"
)

const namespace = "minecraft:"

var (
	families = simpleenum.New[*Family]("material")
	byID     = make(map[uint16]*Family)
	blockMC  = make(map[string]*Family)
	itemMC   = make(map[string]*Family)
	pending  []itemLink
	variants int
)

func init() {
	registerBlocks()
	registerItems()
	resolveItemForms()
	families.Freeze()
}

// ByID returns the default sub-type of an id, or nil.
func ByID(id int) *Material {
	f := FamilyByID(id)
	if f == nil {
		return nil
	}
	return f.Default()
}

// ByIDMeta returns the exact sub-type, or nil.
func ByIDMeta(id, meta int) *Material {
	f := FamilyByID(id)
	if f == nil {
		return nil
	}
	return f.Variant(meta)
}

// ByName returns the default sub-type for an enum name, ignoring case.
func ByName(name string) *Material {
	f := FamilyByName(name)
	if f == nil {
		return nil
	}
	return f.Default()
}

// ByNameMeta returns the sub-type of a named family with the given meta.
func ByNameMeta(name string, meta int) *Material {
	f := FamilyByName(name)
	if f == nil {
		return nil
	}
	return f.Variant(meta)
}

// ByNameType returns the sub-type of a named family by type name.
func ByNameType(name, typeName string) *Material {
	f := FamilyByName(name)
	if f == nil {
		return nil
	}
	return f.VariantByName(typeName)
}

// ByMinecraftID resolves a protocol id with or without the namespace.
// Blocks win when a block and an item share the id.
func ByMinecraftID(mcid string) *Material {
	f := familyByMinecraftID(mcid, KindBlock)
	if f == nil {
		return nil
	}
	return f.Default()
}

// ByMinecraftIDMeta is ByMinecraftID with an explicit meta.
func ByMinecraftIDMeta(mcid string, meta int) *Material {
	f := familyByMinecraftID(mcid, KindBlock)
	if f == nil {
		return nil
	}
	return f.Variant(meta)
}

// ItemByMinecraftID resolves a protocol id, preferring items.
func ItemByMinecraftID(mcid string) *Material {
	f := familyByMinecraftID(mcid, KindItem)
	if f == nil {
		return nil
	}
	return f.Default()
}

func familyByMinecraftID(mcid string, prefer Kind) *Family {
	key := strings.ToLower(strings.TrimSpace(mcid))
	key = strings.TrimPrefix(key, namespace)
	first, second := blockMC, itemMC
	if prefer == KindItem {
		first, second = itemMC, blockMC
	}
	if f, ok := first[key]; ok {
		return f
	}
	return second[key]
}

// FamilyByID returns the family registered under id, or nil.
func FamilyByID(id int) *Family {
	if id < 0 || id > 0xffff {
		return nil
	}
	return byID[uint16(id)]
}

// FamilyByName returns the family with the given enum name, or nil.
func FamilyByName(name string) *Family {
	f, _ := families.ByName(strings.TrimSpace(name))
	return f
}

// Families returns every family ordered by id.
func Families() []*Family { return families.Values() }

// Values returns the default sub-type of every id, ordered by id.
func Values() []*Material {
	fs := families.Values()
	out := make([]*Material, len(fs))
	for i, f := range fs {
		out[i] = f.Default()
	}
	return out
}

// AllVariants returns every sub-type ordered by id, then meta.
func AllVariants() []*Material {
	out := make([]*Material, 0, variants)
	for _, f := range families.Values() {
		out = append(out, f.variants...)
	}
	return out
}

// Blocks returns the default sub-type of every block id.
func Blocks() []*Material { return ofKind(KindBlock) }

// Items returns the default sub-type of every item id.
func Items() []*Material { return ofKind(KindItem) }

func ofKind(k Kind) []*Material {
	var out []*Material
	for _, f := range families.Values() {
		if f.kind == k {
			out = append(out, f.Default())
		}
	}
	return out
}

// Count returns the number of registered ids.
func Count() int { return families.Len() }

// VariantCount returns the number of registered sub-types.
func VariantCount() int { return variants }

// Parse resolves a textual reference. Accepted forms are ID, ID:META,
// NAME, NAME:TYPE, NAME:META and the same with a minecraft: protocol id
// in place of NAME.
func Parse(s string) (*Material, error) {
	ref := strings.TrimSpace(s)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrInvalidSyntax)
	}
	namespaced := false
	if strings.HasPrefix(strings.ToLower(ref), namespace) {
		ref = ref[len(namespace):]
		namespaced = true
	}
	base, sub, hasSub := strings.Cut(ref, ":")
	if base == "" || (hasSub && (sub == "" || strings.Contains(sub, ":"))) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSyntax, s)
	}

	var f *Family
	switch {
	case isDigits(base):
		id, err := strconv.ParseUint(base, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: id %q: %v", ErrInvalidSyntax, base, err)
		}
		f = byID[uint16(id)]
	case namespaced:
		f = familyByMinecraftID(base, KindBlock)
	default:
		if f = FamilyByName(base); f == nil {
			f = familyByMinecraftID(base, KindBlock)
		}
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, s)
	}
	if !hasSub {
		return f.Default(), nil
	}

	var m *Material
	if isDigits(sub) {
		meta, err := strconv.ParseUint(sub, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: meta %q: %v", ErrInvalidSyntax, sub, err)
		}
		m = f.Variant(int(meta))
	} else {
		m = f.VariantByName(sub)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, s)
	}
	return m, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Material {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
