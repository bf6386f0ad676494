package grpc_interface

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
)

const (
	tlsKeyFile  = "key.pem"
	tlsCertFile = "cert.pem"

	tlsOrganization = "coinpurse autogenerated cert"
	tlsValidity     = 14 * 30 * 24 * time.Hour
)

// generateTLSKeyPair creates a self-signed cert and key pair in the given
// dir, unless both files already exist there.
func generateTLSKeyPair(dir string, extraIPs, extraDomains []string) error {
	certPath := filepath.Join(dir, tlsCertFile)
	keyPath := filepath.Join(dir, tlsKeyFile)
	if fileExists(certPath) && fileExists(keyPath) {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	extraHosts := append(append([]string{}, extraIPs...), extraDomains...)
	cert, key, err := btcutil.NewTLSCertPair(
		tlsOrganization, time.Now().Add(tlsValidity), extraHosts,
	)
	if err != nil {
		return fmt.Errorf("generate cert pair: %w", err)
	}

	if err := os.WriteFile(certPath, cert, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(keyPath, key, 0600); err != nil {
		os.Remove(certPath)
		return err
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
