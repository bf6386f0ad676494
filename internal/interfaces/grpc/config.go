package grpc_interface

import (
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"net"
	"path/filepath"

	"golang.org/x/net/http2"
)

const (
	minPort = 1024
	maxPort = 49151
)

// ServiceConfig holds the args of the gRPC server. Unless NoTLS is set, the
// server uses the given TLS cert and key files, or a self-signed pair
// generated in TLSLocation if not given.
type ServiceConfig struct {
	Port         int
	NoTLS        bool
	TLSLocation  string
	TLSCertFile  string
	TLSKeyFile   string
	ExtraIPs     []string
	ExtraDomains []string
}

func (c ServiceConfig) validate() error {
	if c.Port < minPort || c.Port > maxPort {
		return fmt.Errorf("port must be in range [%d, %d]", minPort, maxPort)
	}
	if c.insecure() {
		return nil
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("tls cert and key files must be either both set or unset")
	}
	if c.TLSCertFile == "" && c.TLSLocation == "" {
		return fmt.Errorf("missing tls location")
	}
	return nil
}

func (c ServiceConfig) insecure() bool {
	return c.NoTLS
}

func (c ServiceConfig) withCustomKeyPair() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func (c ServiceConfig) address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c ServiceConfig) listener() (net.Listener, error) {
	return net.Listen("tcp", c.address())
}

// TLSConfig returns the TLS config shared by every server exposed by the
// daemon, or nil if TLS is disabled.
func (c ServiceConfig) TLSConfig() (*tls.Config, error) {
	if c.insecure() {
		return nil, nil
	}
	cert, err := tls.LoadX509KeyPair(c.TLSCertPath(), c.TLSKeyPath())
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		NextProtos:   []string{"http/1.1", http2.NextProtoTLS, "h2-14"}, // h2-14 is just for compatibility. will be eventually removed.
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		Rand:         rand.Reader,
	}, nil
}

func (c ServiceConfig) TLSKeyPath() string {
	if c.withCustomKeyPair() {
		return c.TLSKeyFile
	}
	return filepath.Join(c.TLSLocation, tlsKeyFile)
}

func (c ServiceConfig) TLSCertPath() string {
	if c.withCustomKeyPair() {
		return c.TLSCertFile
	}
	return filepath.Join(c.TLSLocation, tlsCertFile)
}

// Insecure returns whether TLS is disabled.
func (c ServiceConfig) Insecure() bool {
	return c.insecure()
}
