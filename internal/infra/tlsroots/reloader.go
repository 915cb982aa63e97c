package tlsroots

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"

	"github.com/dioritemc/diorite-go/internal/infra/confloader"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
)

// CertReloader holds the current server certificate.
type CertReloader struct {
	certFile string
	keyFile  string
	log      logger.Logger
	onReload func(error)

	mu   sync.RWMutex
	cert *tls.Certificate

	watchers []*confloader.Watcher
}

// ReloaderOption configures a CertReloader.
type ReloaderOption func(*CertReloader)

// WithReloaderLogger sets the logger.
func WithReloaderLogger(l logger.Logger) ReloaderOption {
	return func(r *CertReloader) { r.log = l }
}

// WithReloadHook runs fn after every reload attempt triggered by a file
// change, with the attempt's error.
func WithReloadHook(fn func(error)) ReloaderOption {
	return func(r *CertReloader) { r.onReload = fn }
}

// NewCertReloader loads the key pair once. It fails when the pair cannot
// be loaded.
func NewCertReloader(certFile, keyFile string, opts ...ReloaderOption) (*CertReloader, error) {
	r := &CertReloader{
		certFile: certFile,
		keyFile:  keyFile,
		log:      logger.Default(),
		onReload: func(error) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload reads the key pair. On failure the previous certificate stays
// in use.
func (r *CertReloader) Reload() error {
	cert, err := tls.LoadX509KeyPair(r.certFile, r.keyFile)
	if err != nil {
		return fmt.Errorf("tlsroots: load key pair: %w", err)
	}
	r.mu.Lock()
	r.cert = &cert
	r.mu.Unlock()
	return nil
}

// GetCertificate implements tls.Config.GetCertificate.
func (r *CertReloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cert, nil
}

// ServerConfig returns a server TLS config backed by the reloader.
func (r *CertReloader) ServerConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: r.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}
}

// Watch reloads the pair whenever either file changes, until ctx is done
// or Stop is called.
func (r *CertReloader) Watch(ctx context.Context) error {
	files := []string{r.certFile}
	if r.keyFile != r.certFile {
		files = append(files, r.keyFile)
	}
	for _, f := range files {
		w, err := confloader.NewWatcher(f, confloader.WithWatcherLogger(r.log))
		if err != nil {
			_ = r.Stop()
			return fmt.Errorf("tlsroots: watch %s: %w", f, err)
		}
		w.OnChange(r.changed)
		w.Start(ctx)
		r.watchers = append(r.watchers, w)
	}
	r.log.Info("certificate watcher started", "cert_file", r.certFile, "key_file", r.keyFile)
	return nil
}

func (r *CertReloader) changed(path string) {
	err := r.Reload()
	if err != nil {
		r.log.Error("certificate reload failed", "file", path, "error", err)
	} else {
		r.log.Info("certificate reloaded", "cert_file", r.certFile)
	}
	r.onReload(err)
}

// Stop ends every watcher started by Watch.
func (r *CertReloader) Stop() error {
	var errs []error
	for _, w := range r.watchers {
		errs = append(errs, w.Stop())
	}
	r.watchers = nil
	return errors.Join(errs...)
}
