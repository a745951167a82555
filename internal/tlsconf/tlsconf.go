// Package tlsconf turns the certificate material loaded by package conf into
// a server *tls.Config.
//
// The server presents server_cert/server_key. When ca_cert is set, clients
// must present a certificate signed by that CA; when allowed_clients is also
// set, the client certificate's common name must appear in the list.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"

	"go.klb.dev/clipshare/internal/conf"
)

var (
	// ErrNoKeyPair is returned when the config lacks server_key or server_cert.
	ErrNoKeyPair = errors.New("tlsconf: server_key and server_cert are required")
	// ErrAllowListWithoutCA is returned when allowed_clients is set but
	// ca_cert is not, so client names could not be authenticated.
	ErrAllowListWithoutCA = errors.New("tlsconf: allowed_clients requires ca_cert")
)

// ServerConfig returns a *tls.Config for a listener serving cfg's key pair.
func ServerConfig(cfg conf.Config) (*tls.Config, error) {
	if cfg.PrivKey == nil || cfg.ServerCert == nil {
		return nil, ErrNoKeyPair
	}
	cert, err := tls.X509KeyPair(cfg.ServerCert, cfg.PrivKey)
	if err != nil {
		return nil, fmt.Errorf("tlsconf: key pair: %w", err)
	}

	tc := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if cfg.CACert != nil {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(cfg.CACert) {
			return nil, fmt.Errorf("tlsconf: ca_cert contains no PEM certificates")
		}
		tc.ClientCAs = pool
		tc.ClientAuth = tls.RequireAndVerifyClientCert
	}

	if cfg.AllowedClients != nil {
		if cfg.CACert == nil {
			return nil, ErrAllowListWithoutCA
		}
		tc.VerifyPeerCertificate = allowList(cfg.AllowedClients)
	}
	return tc, nil
}

// allowList checks the verified client certificate's common name. It runs
// after chain verification, so the name is vouched for by the CA.
func allowList(clients []string) func([][]byte, [][]*x509.Certificate) error {
	allowed := make(map[string]struct{}, len(clients))
	for _, c := range clients {
		allowed[c] = struct{}{}
	}
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if len(rawCerts) == 0 {
			return fmt.Errorf("tlsconf: client presented no certificate")
		}
		cert, err := x509.ParseCertificate(rawCerts[0])
		if err != nil {
			return fmt.Errorf("tlsconf: parse client cert: %w", err)
		}
		if _, ok := allowed[cert.Subject.CommonName]; !ok {
			return fmt.Errorf("tlsconf: client %q is not allowed", cert.Subject.CommonName)
		}
		return nil
	}
}
