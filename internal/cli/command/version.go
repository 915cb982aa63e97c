package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dioritemc/diorite-go/internal/infra/buildinfo"
	"github.com/dioritemc/diorite-go/pkg/material"
)

// VersionCommand prints build and registry versions.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(c *cli.Context) error {
			info := buildinfo.Get()
			if !isTable(c) {
				return printer(c).Format(stdout(c), info)
			}
			w := stdout(c)
			fmt.Fprintf(w, "diorite-cli %s\n", info)
			fmt.Fprintf(w, "Minecraft %s (protocol %d), %d materials, %d sub-types\n",
				buildinfo.MinecraftVersion, buildinfo.ProtocolVersion, material.Count(), material.VariantCount())
			return nil
		},
	}
}
