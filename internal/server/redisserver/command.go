package redisserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dioritemc/diorite-go/internal/core/domain"
	"github.com/dioritemc/diorite-go/internal/core/service"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
	"github.com/dioritemc/diorite-go/internal/infra/buildinfo"
	"github.com/dioritemc/diorite-go/pkg/material"
)

// errQuit ends the connection after the reply is flushed.
var errQuit = errors.New("quit")

// Observer receives one call per executed command. Unknown commands are
// reported as "unknown".
type Observer interface {
	ObserveCommand(name string, ok bool, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveCommand(string, bool, time.Duration) {}

type commandFunc func(ctx context.Context, w *Writer, args [][]byte) error

type command struct {
	// arity bounds the argument count, command name excluded. max < 0
	// means no upper bound.
	min, max int
	fn       commandFunc
}

// Handler executes commands against a LookupService.
type Handler struct {
	svc      *service.LookupService
	hotSize  int
	observer Observer
	commands map[string]command
}

// NewHandler creates a Handler. hotSize is the HOT length when no count
// is given.
func NewHandler(svc *service.LookupService, hotSize int, obs Observer) *Handler {
	if hotSize < 1 {
		hotSize = 10
	}
	if obs == nil {
		obs = nopObserver{}
	}
	h := &Handler{svc: svc, hotSize: hotSize, observer: obs}
	h.commands = map[string]command{
		"PING":    {0, 1, h.ping},
		"ECHO":    {1, 1, h.echo},
		"QUIT":    {0, 0, h.quit},
		"COMMAND": {0, -1, h.commandInfo},
		"CLIENT":  {1, -1, h.client},
		"SELECT":  {1, 1, h.selectDB},
		"GET":     {1, 1, h.get},
		"MGET":    {1, -1, h.mget},
		"EXISTS":  {1, -1, h.exists},
		"HGET":    {2, 2, h.hget},
		"HGETALL": {1, 1, h.hgetall},
		"KEYS":    {1, 1, h.keys},
		"INDEX":   {1, 1, h.index},
		"HOT":     {0, 1, h.hot},
		"DBSIZE":  {0, 0, h.dbsize},
		"INFO":    {0, 1, h.info},
	}
	return h
}

// Handle runs one command and writes its reply. It returns errQuit when
// the client asked to disconnect.
func (h *Handler) Handle(ctx context.Context, w *Writer, args [][]byte) error {
	start := time.Now()
	name := commandName(args[0])
	cmd, ok := h.commands[name]
	if !ok {
		h.observer.ObserveCommand("unknown", false, time.Since(start))
		w.Error(fmt.Sprintf("ERR unknown command '%s'", args[0]))
		return nil
	}
	n := len(args) - 1
	if n < cmd.min || (cmd.max >= 0 && n > cmd.max) {
		h.observer.ObserveCommand(name, false, time.Since(start))
		w.Error(fmt.Sprintf("ERR wrong number of arguments for '%s' command", strings.ToLower(name)))
		return nil
	}

	err := cmd.fn(ctx, w, args[1:])
	h.observer.ObserveCommand(name, err == nil || errors.Is(err, errQuit), time.Since(start))
	if err != nil && !errors.Is(err, errQuit) {
		logger.L(ctx).Debug("resp command failed", "command", name, "error", err)
		w.Error(formatError(err))
		return nil
	}
	return err
}

// formatError renders err as "ERR <code> <message>" for domain errors.
func formatError(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		msg := de.Message
		if de.Details != "" {
			msg += ": " + de.Details
		}
		return "ERR " + de.Code + " " + msg
	}
	return "ERR " + err.Error()
}

func notFound(err error) bool {
	return errors.Is(err, domain.ErrMaterialNotFound) || errors.Is(err, domain.ErrVariantNotFound)
}

func (h *Handler) ping(_ context.Context, w *Writer, args [][]byte) error {
	if len(args) == 1 {
		w.Bulk(args[0])
		return nil
	}
	w.Status("PONG")
	return nil
}

func (h *Handler) echo(_ context.Context, w *Writer, args [][]byte) error {
	w.Bulk(args[0])
	return nil
}

func (h *Handler) quit(_ context.Context, w *Writer, _ [][]byte) error {
	w.Status("OK")
	return errQuit
}

// commandInfo answers the COMMAND DOCS probe redis-cli sends on connect.
func (h *Handler) commandInfo(_ context.Context, w *Writer, _ [][]byte) error {
	w.Array(0)
	return nil
}

func (h *Handler) client(_ context.Context, w *Writer, _ [][]byte) error {
	w.Status("OK")
	return nil
}

func (h *Handler) selectDB(_ context.Context, w *Writer, args [][]byte) error {
	if string(args[0]) != "0" {
		return domain.ErrInvalidArgument.WithDetails("only database 0 exists")
	}
	w.Status("OK")
	return nil
}

func (h *Handler) get(ctx context.Context, w *Writer, args [][]byte) error {
	rec, err := h.svc.Get(ctx, domain.Query{Ref: string(args[0])})
	if notFound(err) {
		w.Nil()
		return nil
	}
	if err != nil {
		return err
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	w.Bulk(b)
	return nil
}

// mget never fails as a whole. References that do not resolve, for any
// reason, reply nil.
func (h *Handler) mget(ctx context.Context, w *Writer, args [][]byte) error {
	w.Array(len(args))
	for _, ref := range args {
		rec, err := h.svc.Get(ctx, domain.Query{Ref: string(ref)})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			w.Nil()
			continue
		}
		b, _ := json.Marshal(rec)
		w.Bulk(b)
	}
	return nil
}

func (h *Handler) exists(ctx context.Context, w *Writer, args [][]byte) error {
	var n int64
	for _, ref := range args {
		if _, err := h.svc.Resolve(ctx, domain.Query{Ref: string(ref)}); err == nil {
			n++
		}
	}
	w.Int(n)
	return nil
}

func (h *Handler) hget(ctx context.Context, w *Writer, args [][]byte) error {
	fields, err := h.fields(ctx, string(args[0]))
	if notFound(err) {
		w.Nil()
		return nil
	}
	if err != nil {
		return err
	}
	want := strings.ToLower(string(args[1]))
	for _, f := range fields {
		if f.name == want {
			w.BulkString(f.value)
			return nil
		}
	}
	w.Nil()
	return nil
}

func (h *Handler) hgetall(ctx context.Context, w *Writer, args [][]byte) error {
	fields, err := h.fields(ctx, string(args[0]))
	if notFound(err) {
		w.Array(0)
		return nil
	}
	if err != nil {
		return err
	}
	w.Array(2 * len(fields))
	for _, f := range fields {
		w.BulkString(f.name)
		w.BulkString(f.value)
	}
	return nil
}

type field struct{ name, value string }

// fields flattens a record into its JSON fields sorted by name. Strings
// are unquoted; numbers and nested objects keep their JSON form.
func (h *Handler) fields(ctx context.Context, ref string) ([]field, error) {
	rec, err := h.svc.Get(ctx, domain.Query{Ref: ref})
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := make([]field, 0, len(raw))
	for name, v := range raw {
		value := string(v)
		var s string
		if json.Unmarshal(v, &s) == nil {
			value = s
		}
		out = append(out, field{name, value})
	}
	slices.SortFunc(out, func(a, b field) int { return strings.Compare(a.name, b.name) })
	return out, nil
}

func (h *Handler) keys(ctx context.Context, w *Writer, args [][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pattern := strings.ToUpper(string(args[0]))
	if _, err := path.Match(pattern, ""); err != nil {
		return domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("pattern %q", args[0]))
	}
	var names []string
	for _, m := range material.Values() {
		if ok, _ := path.Match(pattern, m.Name()); ok {
			names = append(names, m.Name())
		}
	}
	w.Array(len(names))
	for _, n := range names {
		w.BulkString(n)
	}
	return nil
}

func (h *Handler) index(ctx context.Context, w *Writer, args [][]byte) error {
	m, err := h.svc.Resolve(ctx, domain.Query{Ref: string(args[0])})
	if err != nil {
		return err
	}
	w.Int(int64(h.svc.Palette().IndexOf(m)))
	return nil
}

// hot replies one [index, key, name, hits] array per entry.
func (h *Handler) hot(ctx context.Context, w *Writer, args [][]byte) error {
	n := h.hotSize
	if len(args) == 1 {
		v, err := strconv.Atoi(string(args[0]))
		if err != nil {
			return domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("count %q", args[0]))
		}
		n = v
	}
	recs, err := h.svc.Hot(ctx, n)
	if err != nil {
		return err
	}
	w.Array(len(recs))
	for _, r := range recs {
		w.Array(4)
		w.Int(int64(r.Index))
		w.BulkString(r.Key)
		w.BulkString(r.Name)
		w.Int(r.Hits)
	}
	return nil
}

func (h *Handler) dbsize(_ context.Context, w *Writer, _ [][]byte) error {
	w.Int(int64(material.Count()))
	return nil
}

func (h *Handler) info(_ context.Context, w *Writer, _ [][]byte) error {
	bi := buildinfo.Get()
	hits, misses := h.svc.Palette().Totals()
	var b strings.Builder
	b.WriteString("# Server\r\n")
	fmt.Fprintf(&b, "diorite_version:%s\r\n", bi.Version)
	fmt.Fprintf(&b, "minecraft_version:%s\r\n", bi.Minecraft)
	fmt.Fprintf(&b, "protocol_version:%d\r\n", bi.Protocol)
	b.WriteString("\r\n# Registry\r\n")
	fmt.Fprintf(&b, "materials:%d\r\n", material.Count())
	fmt.Fprintf(&b, "sub_types:%d\r\n", material.VariantCount())
	b.WriteString("\r\n# Palette\r\n")
	fmt.Fprintf(&b, "size:%d\r\n", h.svc.Palette().Len())
	fmt.Fprintf(&b, "hits:%d\r\n", hits)
	fmt.Fprintf(&b, "misses:%d\r\n", misses)
	w.BulkString(b.String())
	return nil
}
