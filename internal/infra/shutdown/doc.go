// Package shutdown runs named cleanup hooks when the process is asked to
// stop.
//
// Hooks run in reverse registration order, so a component registered
// after its dependencies is closed before them. All hooks share one
// deadline; a failing hook does not stop the others.
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown("http", srv.Shutdown)
//	h.OnShutdown("snapshot store", func(context.Context) error { return store.Close() })
//	err := h.Wait(ctx)
package shutdown
