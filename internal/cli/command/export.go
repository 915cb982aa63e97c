package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dioritemc/diorite-go/internal/cli/output"
	"github.com/dioritemc/diorite-go/internal/core/palette"
	"github.com/dioritemc/diorite-go/internal/infra/buildinfo"
	"github.com/dioritemc/diorite-go/pkg/material"
)

// RegistryExport is the document written by `export` without arguments.
type RegistryExport struct {
	MinecraftVersion string        `json:"minecraft_version" yaml:"minecraft_version" nbt:"MinecraftVersion"`
	ProtocolVersion  int32         `json:"protocol_version" yaml:"protocol_version" nbt:"ProtocolVersion"`
	Materials        []ExportEntry `json:"materials" yaml:"materials" nbt:"Materials"`
}

// ExportEntry is one sub-type in a RegistryExport.
type ExportEntry struct {
	ID          int32  `json:"id" yaml:"id" nbt:"id"`
	Meta        int32  `json:"meta" yaml:"meta" nbt:"meta"`
	Name        string `json:"name" yaml:"name" nbt:"name"`
	Type        string `json:"type" yaml:"type" nbt:"type"`
	MinecraftID string `json:"minecraft_id" yaml:"minecraft_id" nbt:"minecraft_id"`
	Kind        string `json:"kind" yaml:"kind" nbt:"kind"`
	MaxStack    int32  `json:"max_stack" yaml:"max_stack" nbt:"max_stack"`
}

// PaletteExport maps protocol references to dense palette indexes, in the
// layout of a schematic Palette compound.
type PaletteExport struct {
	MinecraftVersion string           `json:"minecraft_version" yaml:"minecraft_version" nbt:"MinecraftVersion"`
	PaletteMax       int32            `json:"palette_max" yaml:"palette_max" nbt:"PaletteMax"`
	Palette          map[string]int32 `json:"palette" yaml:"palette" nbt:"Palette"`
}

// ExportCommand writes the registry or a palette in a machine format.
func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export the registry, or a palette built from the given references",
		ArgsUsage: "[ref...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "json, yaml or nbt"},
			&cli.StringFlag{Name: "out", Usage: "Output file (default stdout)"},
			&cli.BoolFlag{Name: "variants", Aliases: []string{"a"}, Value: true, Usage: "Include every sub-type in a registry export"},
		},
		Action: exportAction,
	}
}

func exportAction(c *cli.Context) error {
	format, err := output.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if format == output.FormatTable {
		return cli.Exit("export: format must be json, yaml or nbt", 2)
	}

	var doc any
	if c.NArg() > 0 {
		doc, err = BuildPaletteExport(c.Args().Slice())
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	} else {
		doc = BuildRegistryExport(c.Bool("variants"))
	}

	var w io.Writer = stdout(c)
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := output.NewFormatter(format, false).Format(w, doc); err != nil {
		return err
	}
	Logger(c).Debug("export written", "format", format, "out", c.String("out"))
	return nil
}

// BuildRegistryExport lists the registry in id:meta order. With variants
// unset only default sub-types are included.
func BuildRegistryExport(variants bool) RegistryExport {
	ms := material.Values()
	if variants {
		ms = material.AllVariants()
	}
	doc := RegistryExport{
		MinecraftVersion: buildinfo.MinecraftVersion,
		ProtocolVersion:  buildinfo.ProtocolVersion,
		Materials:        make([]ExportEntry, 0, len(ms)),
	}
	for _, m := range ms {
		doc.Materials = append(doc.Materials, ExportEntry{
			ID:          int32(m.ID()),
			Meta:        int32(m.Meta()),
			Name:        m.Name(),
			Type:        m.TypeName(),
			MinecraftID: m.MinecraftID(),
			Kind:        m.Kind().String(),
			MaxStack:    int32(m.MaxStack()),
		})
	}
	return doc
}

// BuildPaletteExport assigns indexes to refs in order. Repeated
// references share an index.
func BuildPaletteExport(refs []string) (PaletteExport, error) {
	p := palette.New(palette.WithCapacity(len(refs)))
	for _, ref := range refs {
		m, err := material.Parse(ref)
		if err != nil {
			return PaletteExport{}, fmt.Errorf("export: %s: %w", ref, err)
		}
		p.IndexOf(m)
	}

	doc := PaletteExport{
		MinecraftVersion: buildinfo.MinecraftVersion,
		PaletteMax:       int32(p.Len()),
		Palette:          make(map[string]int32, p.Len()),
	}
	for _, e := range p.Entries() {
		doc.Palette[fmt.Sprintf("%s:%d", e.Material.MinecraftID(), e.Material.Meta())] = int32(e.Index)
	}
	return doc, nil
}
