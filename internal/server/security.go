package server

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
)

// TLSListener opens TLS listeners. When a client CA is configured every
// kiosk must present a certificate signed by it.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
	clientCAFileName   string
}

// TLSOption configures a TLSListener.
type TLSOption func(*TLSListener)

// WithClientCA requires client certificates signed by the PEM bundle at fileName.
func WithClientCA(fileName string) TLSOption {
	return func(l *TLSListener) {
		l.clientCAFileName = fileName
	}
}

// NewTLSListener creates a TLSListener for the given certificate and key files.
func NewTLSListener(certFileName, privateKeyFileName string, opts ...TLSOption) *TLSListener {
	l := &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *TLSListener) config() (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
	if l.clientCAFileName == "" {
		return cfg, nil
	}

	pemBytes, err := os.ReadFile(l.clientCAFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to read client CA: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemBytes) {
		return nil, errors.New("failed to parse client CA: no certificates found")
	}
	cfg.ClientCAs = pool
	cfg.ClientAuth = tls.RequireAndVerifyClientCert
	return cfg, nil
}

// Listen loads the key material and opens a TLS listener on addr.
func (l *TLSListener) Listen(network, addr string) (net.Listener, error) {
	cfg, err := l.config()
	if err != nil {
		return nil, err
	}
	return tls.Listen(network, addr, cfg)
}

// PlainListener opens unencrypted listeners. Intended for local development.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(network, addr string) (net.Listener, error) {
	return net.Listen(network, addr)
}
