package certs

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"
)

// CertManager loads the server's TLS key pair and checks its validity window.
type CertManager struct {
	certFile string
	keyFile  string
	now      func() time.Time
}

// NewCertManager creates a CertManager for the given PEM files.
func NewCertManager(certFile, keyFile string) *CertManager {
	return &CertManager{certFile: certFile, keyFile: keyFile, now: time.Now}
}

// LoadCertificate parses the leaf certificate from the cert file.
func (cm *CertManager) LoadCertificate() (*x509.Certificate, error) {
	data, err := os.ReadFile(cm.certFile)
	if err != nil {
		return nil, fmt.Errorf("read certificate: %w", err)
	}
	return ParseCertificatePEM(data)
}

// ParseCertificatePEM decodes the first PEM block in data as a certificate.
func ParseCertificatePEM(data []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to parse certificate PEM")
	}
	return x509.ParseCertificate(block.Bytes)
}

// IsExpired checks if a certificate is expired.
func (cm *CertManager) IsExpired(cert *x509.Certificate) bool {
	return cert.NotAfter.Before(cm.now())
}

// ExpiresWithin reports whether cert expires in less than d.
func (cm *CertManager) ExpiresWithin(cert *x509.Certificate, d time.Duration) bool {
	return cert.NotAfter.Before(cm.now().Add(d))
}

// TLSConfig loads the key pair and refuses expired certificates.
func (cm *CertManager) TLSConfig() (*tls.Config, *x509.Certificate, error) {
	cert, err := cm.LoadCertificate()
	if err != nil {
		return nil, nil, err
	}
	if cm.IsExpired(cert) {
		return nil, nil, fmt.Errorf("certificate %s expired at %s", cm.certFile, cert.NotAfter.Format(time.RFC3339))
	}
	pair, err := tls.LoadX509KeyPair(cm.certFile, cm.keyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load key pair: %w", err)
	}
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{pair},
	}, cert, nil
}
