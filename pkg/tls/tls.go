package tls

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"os"
)

// GetTlsConfigFromCertBytes builds a client config trusting the PEM
// certificates in certBytes.
func GetTlsConfigFromCertBytes(certBytes []byte) (*tls.Config, error) {
	rootCertPool := x509.NewCertPool()
	if ok := rootCertPool.AppendCertsFromPEM(certBytes); !ok {
		return nil, errors.New("couldn't append certs to root")
	}
	return &tls.Config{
		RootCAs:    rootCertPool,
		MinVersion: tls.VersionTLS12,
	}, nil
}

// GetTlsConfig reads the PEM file at certPath.
func GetTlsConfig(certPath string) (*tls.Config, error) {
	pem, err := os.ReadFile(certPath)
	if err != nil {
		return nil, err
	}
	return GetTlsConfigFromCertBytes(pem)
}
