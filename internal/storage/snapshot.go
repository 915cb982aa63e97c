package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spaolacci/murmur3"

	"github.com/dioritemc/diorite-go/internal/core/domain"
	"github.com/dioritemc/diorite-go/pkg/material"
)

// Key layout:
//
//	snap/current              ulid of the newest complete generation
//	snap/meta/<ulid>          Info as JSON
//	snap/data/<ulid>/<id>:<meta>  Entry as JSON, id and meta zero padded
const (
	keyCurrent    = "snap/current"
	prefixMeta    = "snap/meta/"
	prefixData    = "snap/data/"
	snapshotFmtV1 = 1
)

// Entry is the persisted identity of one material sub-type.
type Entry struct {
	ID          uint16 `json:"id"`
	Meta        uint16 `json:"meta"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	MinecraftID string `json:"minecraft_id"`
	Kind        string `json:"kind"`
}

// Key returns "id:meta".
func (e Entry) Key() string { return fmt.Sprintf("%d:%d", e.ID, e.Meta) }

// Info describes one stored generation.
type Info struct {
	ID        string    `json:"id"`
	Format    int       `json:"format"`
	CreatedAt time.Time `json:"created_at"`
	Version   string    `json:"version"`
	Entries   int       `json:"entries"`
	Checksum  uint64    `json:"checksum"`
}

// CurrentEntries returns the compiled-in registry in id:meta order.
func CurrentEntries() []Entry {
	all := material.AllVariants()
	out := make([]Entry, 0, len(all))
	for _, m := range all {
		out = append(out, Entry{
			ID:          m.ID(),
			Meta:        m.Meta(),
			Name:        m.Name(),
			Type:        m.TypeName(),
			MinecraftID: m.MinecraftID(),
			Kind:        m.Kind().String(),
		})
	}
	sortEntries(out)
	return out
}

func entryLess(a, b Entry) bool {
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Meta < b.Meta
}

func sortEntries(es []Entry) {
	sort.Slice(es, func(i, j int) bool { return entryLess(es[i], es[j]) })
}

// SnapshotStore keeps generations of the registry in Badger so a later
// build can detect ids or names that moved.
type SnapshotStore struct {
	engine *BadgerEngine
}

// NewSnapshotStore wraps an open engine. The store does not own it.
func NewSnapshotStore(engine *BadgerEngine) *SnapshotStore {
	return &SnapshotStore{engine: engine}
}

func dataKey(gen string, e Entry) []byte {
	return []byte(fmt.Sprintf("%s%s/%05d:%05d", prefixData, gen, e.ID, e.Meta))
}

func checksum(values [][]byte) uint64 {
	h := murmur3.New64()
	for _, v := range values {
		_, _ = h.Write(v)
	}
	return h.Sum64()
}

// SaveRegistry stores the compiled-in registry as a new generation and
// makes it current.
func (s *SnapshotStore) SaveRegistry(ctx context.Context, version string) (Info, error) {
	return s.Save(ctx, version, CurrentEntries())
}

// Save stores entries as a new generation. The data is written before
// the current pointer moves, so a crash leaves the old generation current.
func (s *SnapshotStore) Save(ctx context.Context, version string, entries []Entry) (Info, error) {
	entries = append([]Entry(nil), entries...)
	sortEntries(entries)
	gen := ulid.Make()
	info := Info{
		ID:        gen.String(),
		Format:    snapshotFmtV1,
		CreatedAt: ulid.Time(gen.Time()).UTC(),
		Version:   version,
		Entries:   len(entries),
	}

	kvs := make(map[string][]byte, len(entries))
	values := make([][]byte, 0, len(entries))
	for _, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return Info{}, domain.ErrInternalServer.WithCause(err)
		}
		kvs[string(dataKey(info.ID, e))] = b
		values = append(values, b)
	}
	info.Checksum = checksum(values)

	if err := s.engine.SetBatch(ctx, kvs); err != nil {
		return Info{}, domain.ErrStorageError.WithCause(err)
	}
	meta, err := json.Marshal(info)
	if err != nil {
		return Info{}, domain.ErrInternalServer.WithCause(err)
	}
	if err := s.engine.Set(ctx, []byte(prefixMeta+info.ID), meta); err != nil {
		return Info{}, domain.ErrStorageError.WithCause(err)
	}
	if err := s.engine.Set(ctx, []byte(keyCurrent), []byte(info.ID)); err != nil {
		return Info{}, domain.ErrStorageError.WithCause(err)
	}
	return info, nil
}

// Latest loads the current generation.
func (s *SnapshotStore) Latest(ctx context.Context) (Info, []Entry, error) {
	id, err := s.engine.Get(ctx, []byte(keyCurrent))
	if errors.Is(err, ErrKeyNotFound) {
		return Info{}, nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return Info{}, nil, domain.ErrStorageError.WithCause(err)
	}
	return s.Load(ctx, string(id))
}

// Load reads one generation and checks it against its recorded checksum.
func (s *SnapshotStore) Load(ctx context.Context, id string) (Info, []Entry, error) {
	if _, err := ulid.ParseStrict(id); err != nil {
		return Info{}, nil, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("snapshot id %q", id))
	}
	info, err := s.info(ctx, id)
	if err != nil {
		return Info{}, nil, err
	}

	var (
		entries []Entry
		values  [][]byte
		decErr  error
	)
	err = s.engine.Scan(ctx, []byte(prefixData+id+"/"), func(_, v []byte) bool {
		var e Entry
		if decErr = json.Unmarshal(v, &e); decErr != nil {
			return false
		}
		entries = append(entries, e)
		values = append(values, bytes.Clone(v))
		return true
	})
	if err != nil {
		return Info{}, nil, domain.ErrStorageError.WithCause(err)
	}
	if decErr != nil {
		return Info{}, nil, domain.ErrSnapshotCorrupt.WithCause(decErr)
	}
	if len(entries) != info.Entries || checksum(values) != info.Checksum {
		return Info{}, nil, domain.ErrSnapshotCorrupt.WithDetails(
			fmt.Sprintf("snapshot %s: %d entries, want %d", id, len(entries), info.Entries))
	}
	return info, entries, nil
}

func (s *SnapshotStore) info(ctx context.Context, id string) (Info, error) {
	b, err := s.engine.Get(ctx, []byte(prefixMeta+id))
	if errors.Is(err, ErrKeyNotFound) {
		return Info{}, domain.ErrSnapshotNotFound.WithDetails(id)
	}
	if err != nil {
		return Info{}, domain.ErrStorageError.WithCause(err)
	}
	var info Info
	if err := json.Unmarshal(b, &info); err != nil {
		return Info{}, domain.ErrSnapshotCorrupt.WithCause(err)
	}
	return info, nil
}

// List returns every generation, newest first.
func (s *SnapshotStore) List(ctx context.Context) ([]Info, error) {
	var (
		out    []Info
		decErr error
	)
	err := s.engine.Scan(ctx, []byte(prefixMeta), func(_, v []byte) bool {
		var info Info
		if decErr = json.Unmarshal(v, &info); decErr != nil {
			return false
		}
		out = append(out, info)
		return true
	})
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}
	if decErr != nil {
		return nil, domain.ErrSnapshotCorrupt.WithCause(decErr)
	}
	// Meta keys are ULIDs, so the scan yields oldest first.
	slices.Reverse(out)
	return out, nil
}

// Prune keeps the newest keep generations and the current one, and
// returns how many were removed.
func (s *SnapshotStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		return 0, domain.ErrInvalidArgument.WithDetails("keep must be at least 1")
	}
	infos, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	current, err := s.engine.Get(ctx, []byte(keyCurrent))
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return 0, domain.ErrStorageError.WithCause(err)
	}

	removed := 0
	for _, info := range infos[min(keep, len(infos)):] {
		if info.ID == string(current) {
			continue
		}
		if err := s.engine.DropPrefix(ctx, []byte(prefixData+info.ID+"/")); err != nil {
			return removed, domain.ErrStorageError.WithCause(err)
		}
		if err := s.engine.Delete(ctx, []byte(prefixMeta+info.ID)); err != nil {
			return removed, domain.ErrStorageError.WithCause(err)
		}
		removed++
	}
	return removed, nil
}

// Verify compares the current generation with the compiled-in registry.
// It returns ErrSnapshotNotFound when nothing has been saved yet.
func (s *SnapshotStore) Verify(ctx context.Context) (Info, Drift, error) {
	info, stored, err := s.Latest(ctx)
	if err != nil {
		return Info{}, Drift{}, err
	}
	return info, Diff(stored, CurrentEntries()), nil
}
