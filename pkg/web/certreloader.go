package web

import (
	"context"
	"crypto/tls"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
)

// CertReloader serves a TLS certificate that is reloaded from disk whenever
// the process receives SIGHUP.
type CertReloader struct {
	mu       sync.RWMutex
	cert     *tls.Certificate
	certPath string
	keyPath  string
	logger   *log.Logger
}

// NewCertReloader loads the certificate and key, and reloads them on SIGHUP
// until ctx is done.
func NewCertReloader(ctx context.Context, certPath, keyPath string) (*CertReloader, error) {
	cr := &CertReloader{
		certPath: certPath,
		keyPath:  keyPath,
		logger:   log.FromContext(ctx).WithPrefix("http.tls"),
	}
	if err := cr.Reload(); err != nil {
		return nil, err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP)
	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				cr.logger.Info("reloading TLS certificate", "cert", certPath, "key", keyPath)
				if err := cr.Reload(); err != nil {
					cr.logger.Error("failed to reload TLS certificate, keeping the old one", "err", err)
				}
			}
		}
	}()

	return cr, nil
}

// Reload reads the certificate and key from disk. The current certificate
// is kept if they cannot be loaded.
func (cr *CertReloader) Reload() error {
	cert, err := tls.LoadX509KeyPair(cr.certPath, cr.keyPath)
	if err != nil {
		return err
	}

	cr.mu.Lock()
	cr.cert = &cert
	cr.mu.Unlock()
	return nil
}

// GetCertificate implements tls.Config.GetCertificate.
func (cr *CertReloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.cert, nil
}
