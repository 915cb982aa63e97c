package tlsroots

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeCert writes a self-signed certificate for 127.0.0.1 and returns
// its PEM.
func writeCert(t *testing.T, certFile, keyFile, cn string) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(certFile, certPEM, 0o600); err != nil {
		t.Fatal(err)
	}
	if keyFile != "" {
		keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
		if err := os.WriteFile(keyFile, keyPEM, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return certPEM
}

func TestAddCertPEM(t *testing.T) {
	dir := t.TempDir()
	one := writeCert(t, filepath.Join(dir, "a.pem"), "", "a")
	two := writeCert(t, filepath.Join(dir, "b.pem"), "", "b")

	tests := []struct {
		name    string
		data    []byte
		want    int
		wantErr error
	}{
		{"single", one, 1, nil},
		{"bundle", append(append([]byte{}, one...), two...), 2, nil},
		{"empty", nil, 0, ErrNoCertsFound},
		{"garbage", []byte("not a certificate"), 0, ErrNoCertsFound},
		{"key only", pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: []byte{1}}), 0, ErrNoCertsFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewEmptyPool()
			err := p.AddCertPEM(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddCertPEM() error = %v, want %v", err, tt.wantErr)
			}
			if p.Added() != tt.want {
				t.Errorf("Added() = %d, want %d", p.Added(), tt.want)
			}
		})
	}

	bad := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("junk")})
	if err := NewEmptyPool().AddCertPEM(bad); err == nil || errors.Is(err, ErrNoCertsFound) {
		t.Errorf("AddCertPEM(junk) error = %v, want parse error", err)
	}
}

func TestLoadPool(t *testing.T) {
	dir := t.TempDir()
	writeCert(t, filepath.Join(dir, "ca.crt"), "", "ca")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPool("")
	if err != nil || p.Added() != 0 {
		t.Fatalf("LoadPool(\"\") = %d, %v", p.Added(), err)
	}
	p, err = LoadPool(dir)
	if err != nil || p.Added() != 1 {
		t.Fatalf("LoadPool(dir) = %v", err)
	}
	p, err = LoadPool(filepath.Join(dir, "ca.crt"))
	if err != nil || p.Added() != 1 {
		t.Fatalf("LoadPool(file) = %v", err)
	}
	if cfg := p.ClientConfig(); cfg.RootCAs != p.Pool() || cfg.MinVersion != tls.VersionTLS12 {
		t.Error("ClientConfig() does not use the pool")
	}

	if _, err := LoadPool(filepath.Join(dir, "missing.pem")); err == nil {
		t.Error("LoadPool(missing) error = nil")
	}
	if _, err := LoadPool(t.TempDir()); !errors.Is(err, ErrNoCertsFound) {
		t.Errorf("LoadPool(empty dir) error = %v, want %v", err, ErrNoCertsFound)
	}
}

func TestCertReloader_Handshake(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := filepath.Join(dir, "tls.crt"), filepath.Join(dir, "tls.key")
	writeCert(t, certFile, keyFile, "first")

	r, err := NewCertReloader(certFile, keyFile)
	if err != nil {
		t.Fatalf("NewCertReloader() error = %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})}
	go srv.Serve(tls.NewListener(ln, r.ServerConfig()))
	defer srv.Close()
	url := "https://" + ln.Addr().String()

	get := func(caFile string) error {
		t.Helper()
		pool, err := LoadPool(caFile)
		if err != nil {
			t.Fatal(err)
		}
		client := &http.Client{Transport: &http.Transport{
			TLSClientConfig:   pool.ClientConfig(),
			DisableKeepAlives: true,
		}}
		resp, err := client.Get(url)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("status = %d, want 204", resp.StatusCode)
		}
		return nil
	}

	firstCA := filepath.Join(dir, "first.crt")
	copyFile(t, certFile, firstCA)
	if err := get(firstCA); err != nil {
		t.Fatalf("GET with first certificate error = %v", err)
	}

	writeCert(t, certFile, keyFile, "second")
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if err := get(certFile); err != nil {
		t.Fatalf("GET with reloaded certificate error = %v", err)
	}
	if err := get(firstCA); err == nil {
		t.Error("GET trusting only the replaced certificate succeeded")
	}
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	b, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, b, 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestCertReloader_ReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := filepath.Join(dir, "tls.crt"), filepath.Join(dir, "tls.key")
	writeCert(t, certFile, keyFile, "first")

	reloaded := make(chan error, 8)
	r, err := NewCertReloader(certFile, keyFile, WithReloadHook(func(err error) { reloaded <- err }))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Watch(t.Context()); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer r.Stop()

	writeCert(t, certFile, keyFile, "second")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-reloaded:
		case <-deadline:
			t.Fatal("certificate not reloaded")
		}
		cert, _ := r.GetCertificate(nil)
		leaf, err := x509.ParseCertificate(cert.Certificate[0])
		if err == nil && leaf.Subject.CommonName == "second" {
			return
		}
	}
}

func TestNewCertReloader_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewCertReloader(filepath.Join(dir, "a"), filepath.Join(dir, "b")); err == nil {
		t.Error("NewCertReloader(missing) error = nil")
	}

	certFile := filepath.Join(dir, "tls.crt")
	writeCert(t, certFile, "", "x")
	other := filepath.Join(dir, "other.key")
	writeCert(t, filepath.Join(dir, "other.crt"), other, "y")
	if _, err := NewCertReloader(certFile, other); err == nil {
		t.Error("NewCertReloader(mismatched pair) error = nil")
	}
}
