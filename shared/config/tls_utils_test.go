package config

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSelfSigned пишет самоподписанный сертификат с заданным сроком в dir
func writeSelfSigned(t *testing.T, dir string, notBefore, notAfter time.Time) (string, string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600))
	return certFile, keyFile
}

func TestCreateTLSConfig(t *testing.T) {
	t.Run("TLS выключен", func(t *testing.T) {
		conf, err := UseDefaultServerConfig().CreateTLSConfig()
		assert.NoError(t, err)
		assert.Nil(t, conf)
	})

	t.Run("нет файлов в конфиге", func(t *testing.T) {
		c := UseDefaultServerConfig()
		c.EnableTLS = true
		c.TLSKeyFile = ""
		_, err := c.CreateTLSConfig()
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "TLSKeyFile", cfgErr.Field)
	})

	t.Run("файлы не читаются", func(t *testing.T) {
		c := UseDefaultServerConfig()
		c.EnableTLS = true
		c.TLSCertFile = filepath.Join(t.TempDir(), "missing.pem")
		_, err := c.CreateTLSConfig()
		assert.Error(t, err)
	})

	t.Run("истёкший сертификат всё равно грузится", func(t *testing.T) {
		now := time.Now()
		certFile, keyFile := writeSelfSigned(t, t.TempDir(), now.Add(-48*time.Hour), now.Add(-time.Hour))

		c := UseDefaultServerConfig()
		c.EnableTLS, c.TLSCertFile, c.TLSKeyFile = true, certFile, keyFile
		conf, err := c.CreateTLSConfig()
		require.NoError(t, err)
		require.Len(t, conf.Certificates, 1)
		assert.Equal(t, uint16(tls.VersionTLS12), conf.MinVersion)
	})
}

func TestCheckCertificateValidity(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cert := func(from, to time.Time) *x509.Certificate {
		return &x509.Certificate{NotBefore: from, NotAfter: to}
	}

	assert.NoError(t, CheckCertificateValidity(cert(now.AddDate(0, -1, 0), now.AddDate(1, 0, 0)), now))
	assert.ErrorContains(t, CheckCertificateValidity(cert(now.Add(time.Hour), now.AddDate(1, 0, 0)), now), "not yet valid")
	assert.ErrorContains(t, CheckCertificateValidity(cert(now.AddDate(-1, 0, 0), now.Add(-time.Hour)), now), "expired")
	assert.ErrorContains(t, CheckCertificateValidity(cert(now.AddDate(-1, 0, 0), now.AddDate(0, 0, 10)), now), "in 10 days")
}
