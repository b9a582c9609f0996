// HTTPS без nginx перед дашбордом: сертификат из файлов конфига
package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/qiniu/x/xlog"
)

// за сколько до истечения сертификата начинаем предупреждать в логе
const certExpiryWarning = 30 * 24 * time.Hour

// LoadTLSCertificate читает пару сертификат/ключ и разбирает leaf сертификат
func LoadTLSCertificate(certFile, keyFile string) (tls.Certificate, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	if cert.Leaf == nil {
		if cert.Leaf, err = x509.ParseCertificate(cert.Certificate[0]); err != nil {
			return tls.Certificate{}, fmt.Errorf("failed to parse certificate: %w", err)
		}
	}
	return cert, nil
}

// CheckCertificateValidity - ошибка, если сертификат ещё не действует,
// уже истёк или истекает в ближайшие 30 дней
func CheckCertificateValidity(cert *x509.Certificate, now time.Time) error {
	switch {
	case now.Before(cert.NotBefore):
		return fmt.Errorf("certificate is not yet valid (valid from: %s)", cert.NotBefore.Format(time.RFC3339))
	case now.After(cert.NotAfter):
		return fmt.Errorf("certificate has expired (expired at: %s)", cert.NotAfter.Format(time.RFC3339))
	case cert.NotAfter.Sub(now) < certExpiryWarning:
		return fmt.Errorf("certificate expires soon (in %d days)", int(cert.NotAfter.Sub(now).Hours()/24))
	}
	return nil
}

// CreateTLSConfig - nil без EnableTLS. Проблемы со сроком сертификата только
// пишутся в лог, чтобы dev окружение с самоподписанным сертификатом стартовало
func (c *ServerConfig) CreateTLSConfig() (*tls.Config, error) {
	if !c.EnableTLS {
		return nil, nil
	}
	if err := c.ValidateTLS(); err != nil {
		return nil, err
	}

	cert, err := LoadTLSCertificate(c.TLSCertFile, c.TLSKeyFile)
	if err != nil {
		return nil, err
	}
	if err := CheckCertificateValidity(cert.Leaf, time.Now()); err != nil {
		xlog.New("tls").Warnf("certificate warning: %v", err)
	}

	return &tls.Config{
		Certificates:     []tls.Certificate{cert},
		MinVersion:       tls.VersionTLS12,
		CurvePreferences: []tls.CurveID{tls.X25519, tls.CurveP256},
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		},
	}, nil
}
