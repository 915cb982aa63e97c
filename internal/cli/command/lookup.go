package command

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/dioritemc/diorite-go/internal/cli/output"
	"github.com/dioritemc/diorite-go/internal/core/domain"
)

// LookupCommand resolves one or more references.
func LookupCommand() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Aliases:   []string{"get"},
		Usage:     "Resolve material references",
		ArgsUsage: "<ref>...",
		Description: "A reference is a name (STONE), name:type (stone:diorite), id (1), id:meta (1:3)\n" +
			"or protocol id (minecraft:stone, minecraft:stone:3).",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "item", Aliases: []string{"i"}, Usage: "Resolve the item form of block references"},
		},
		Action: lookupAction,
	}
}

func lookupAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("lookup: at least one reference is required", 2)
	}
	src, err := SourceFor(c)
	if err != nil {
		return err
	}

	var (
		recs   []domain.MaterialRecord
		failed int
	)
	for _, ref := range c.Args().Slice() {
		rec, err := src.Get(c.Context, domain.Query{Ref: ref, Item: c.Bool("item")})
		if err != nil {
			PrintError(c, "%s: %v", ref, err)
			failed++
			continue
		}
		recs = append(recs, rec)
	}

	if len(recs) > 0 {
		if err := writeMaterials(c, recs); err != nil {
			return err
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("lookup: %d of %d references failed", failed, c.NArg()), 1)
	}
	return nil
}

// ListCommand lists materials.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List materials",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "block or item"},
			&cli.StringFlag{Name: "name-prefix", Aliases: []string{"prefix", "p"}, Usage: "Case-insensitive name prefix"},
			&cli.StringFlag{Name: "wood", Usage: "Wood species (oak, birch, ...)"},
			&cli.StringFlag{Name: "color", Usage: "Dye colour (white, red, ...)"},
			&cli.BoolFlag{Name: "durable", Usage: "Only materials with durability"},
			&cli.BoolFlag{Name: "variants", Aliases: []string{"a"}, Usage: "List every sub-type, not only defaults"},
			&cli.IntFlag{Name: "offset", Usage: "Skip the first N results"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Return at most N results (0 = all)"},
		},
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	f := domain.Filter{
		Kind:     c.String("kind"),
		Prefix:   c.String("name-prefix"),
		Wood:     c.String("wood"),
		Color:    c.String("color"),
		Durable:  c.Bool("durable"),
		Variants: c.Bool("variants"),
		Offset:   c.Int("offset"),
		Limit:    c.Int("limit"),
	}
	src, err := SourceFor(c)
	if err != nil {
		return err
	}
	page, err := src.List(c.Context, f)
	if err != nil {
		return err
	}
	if !isTable(c) {
		return printer(c).Format(stdout(c), page)
	}
	if err := writeMaterials(c, page.Items); err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "%d of %d materials\n", len(page.Items), page.Total)
	return nil
}

// VariantsCommand lists every sub-type of one material.
func VariantsCommand() *cli.Command {
	return &cli.Command{
		Name:      "variants",
		Usage:     "List the sub-types of a material",
		ArgsUsage: "<ref>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("variants: exactly one reference is required", 2)
			}
			src, err := SourceFor(c)
			if err != nil {
				return err
			}
			recs, err := src.Variants(c.Context, c.Args().First())
			if err != nil {
				return err
			}
			return writeMaterials(c, recs)
		},
	}
}

func writeMaterials(c *cli.Context, recs []domain.MaterialRecord) error {
	if !isTable(c) {
		return printer(c).Format(stdout(c), recs)
	}
	return materialTable(recs, Config(c).Wide).Render(stdout(c))
}

func materialTable(recs []domain.MaterialRecord, wide bool) *output.Table {
	headers := []string{"KEY", "NAME", "TYPE", "MINECRAFT_ID", "KIND"}
	if wide {
		headers = append(headers, "STACK", "HARDNESS", "DURABILITY", "WOOD", "COLOR", "STATE", "ITEM_FORM")
	}
	t := output.NewTable(headers...)
	for _, r := range recs {
		row := []string{r.Key, r.Name, r.Type, r.MinecraftID, r.Kind}
		if wide {
			row = append(row,
				strconv.Itoa(r.MaxStack),
				floatOrDash(r.Hardness),
				intOrDash(r.Durability),
				orDash(r.Wood),
				orDash(r.Color),
				orDash(r.State),
				orDash(r.ItemForm),
			)
		}
		t.AddRow(row...)
	}
	return t
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func floatOrDash(f *float32) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(float64(*f), 'g', -1, 32)
}
