package command

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dioritemc/diorite-go/internal/cli/output"
	"github.com/dioritemc/diorite-go/internal/infra/buildinfo"
	"github.com/dioritemc/diorite-go/internal/storage"
)

// ExitDrift is returned by `snapshot diff` when a stored id:meta was
// removed or renamed.
const ExitDrift = 3

// SnapshotCommand manages registry snapshots in a local Badger store.
func SnapshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Save and compare registry snapshots",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Usage: "Snapshot data directory (default from config)"},
		},
		Subcommands: []*cli.Command{
			{
				Name:  "save",
				Usage: "Store the compiled-in registry as a new generation",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "version", Usage: "Version label (default build version)"},
				},
				Action: withStore(snapshotSave),
			},
			{
				Name:   "diff",
				Usage:  "Compare the latest generation with the compiled-in registry",
				Action: withStore(snapshotDiff),
			},
			{
				Name:   "list",
				Usage:  "List stored generations",
				Action: withStore(snapshotList),
			},
			{
				Name:  "prune",
				Usage: "Delete old generations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "keep", Value: 5, Usage: "Generations to keep"},
				},
				Action: withStore(snapshotPrune),
			},
			{
				Name:  "backup",
				Usage: "Write a full backup of the store",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Required: true, Usage: "Backup file"},
				},
				Action: withStore(snapshotBackup),
			},
			{
				Name:  "restore",
				Usage: "Load a backup into the store",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Required: true, Usage: "Backup file"},
				},
				Action: withStore(snapshotRestore),
			},
			{
				Name:   "gc",
				Usage:  "Run value log garbage collection",
				Action: withStore(snapshotGC),
			},
		},
	}
}

type storeAction func(c *cli.Context, engine *storage.BadgerEngine, store *storage.SnapshotStore) error

// withStore opens the engine for one subcommand and closes it afterwards.
func withStore(fn storeAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		dir := c.String("dir")
		if dir == "" {
			dir = Config(c).DataDir
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: create %s: %w", dir, err)
		}
		cfg := storage.DefaultKVConfig(dir)
		cfg.Badger.GCInterval = 0

		log := Logger(c)
		engine, err := storage.NewBadgerEngine(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := engine.Close(); err != nil {
				log.Warn("close snapshot store", "error", err)
			}
		}()
		return fn(c, engine, storage.NewSnapshotStore(engine))
	}
}

func snapshotSave(c *cli.Context, _ *storage.BadgerEngine, store *storage.SnapshotStore) error {
	version := c.String("version")
	if version == "" {
		version = buildinfo.Get().Version
	}
	info, err := store.SaveRegistry(c.Context, version)
	if err != nil {
		return err
	}
	if !isTable(c) {
		return printer(c).Format(stdout(c), info)
	}
	fmt.Fprintf(stdout(c), "saved %s (%d entries)\n", info.ID, info.Entries)
	return nil
}

// DiffReport is the structured output of `snapshot diff`.
type DiffReport struct {
	Snapshot storage.Info  `json:"snapshot" yaml:"snapshot"`
	Drift    storage.Drift `json:"drift" yaml:"drift"`
	Breaking bool          `json:"breaking" yaml:"breaking"`
}

func snapshotDiff(c *cli.Context, _ *storage.BadgerEngine, store *storage.SnapshotStore) error {
	info, drift, err := store.Verify(c.Context)
	if err != nil {
		return err
	}

	if !isTable(c) {
		err = printer(c).Format(stdout(c), DiffReport{Snapshot: info, Drift: drift, Breaking: drift.Breaking()})
	} else {
		err = writeDrift(c, info, drift)
	}
	if err != nil {
		return err
	}
	if drift.Breaking() {
		return cli.Exit(fmt.Sprintf("registry drift against snapshot %s", info.ID), ExitDrift)
	}
	return nil
}

func writeDrift(c *cli.Context, info storage.Info, drift storage.Drift) error {
	w := stdout(c)
	if drift.Empty() {
		fmt.Fprintf(w, "no drift against %s\n", info.ID)
		return nil
	}
	t := output.NewTable("CHANGE", "KEY", "STORED", "CURRENT")
	for _, e := range drift.Added {
		t.AddRow("added", e.Key(), "-", e.Name+":"+e.Type)
	}
	for _, e := range drift.Removed {
		t.AddRow("removed", e.Key(), e.Name+":"+e.Type, "-")
	}
	for _, ch := range drift.Changed {
		t.AddRow("changed", ch.Old.Key(), ch.Old.Name+":"+ch.Old.Type, ch.New.Name+":"+ch.New.Type)
	}
	return t.Render(w)
}

func snapshotList(c *cli.Context, _ *storage.BadgerEngine, store *storage.SnapshotStore) error {
	infos, err := store.List(c.Context)
	if err != nil {
		return err
	}
	if !isTable(c) {
		return printer(c).Format(stdout(c), infos)
	}
	t := output.NewTable("ID", "CREATED", "VERSION", "ENTRIES")
	for _, in := range infos {
		t.AddRow(in.ID, in.CreatedAt.Format(time.RFC3339), in.Version, fmt.Sprint(in.Entries))
	}
	return t.Render(stdout(c))
}

func snapshotPrune(c *cli.Context, _ *storage.BadgerEngine, store *storage.SnapshotStore) error {
	n, err := store.Prune(c.Context, c.Int("keep"))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout(c), "pruned %d generations\n", n)
	return nil
}

func snapshotBackup(c *cli.Context, engine *storage.BadgerEngine, _ *storage.SnapshotStore) error {
	f, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := engine.Backup(c.Context, f); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	fmt.Fprintf(stdout(c), "backup written to %s\n", c.String("out"))
	return nil
}

func snapshotRestore(c *cli.Context, engine *storage.BadgerEngine, _ *storage.SnapshotStore) error {
	f, err := os.Open(c.String("in"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := engine.Restore(c.Context, f); err != nil {
		return err
	}
	fmt.Fprintf(stdout(c), "restored from %s\n", c.String("in"))
	return nil
}

func snapshotGC(c *cli.Context, engine *storage.BadgerEngine, _ *storage.SnapshotStore) error {
	n, err := engine.GC(c.Context)
	if err != nil {
		return err
	}
	s := engine.Stats()
	fmt.Fprintf(stdout(c), "rewrote %d value log files, total size %d bytes\n", n, s.TotalSize)
	return nil
}
