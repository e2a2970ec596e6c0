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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewPool(t *testing.T) {
	if NewPool().Pool() == nil {
		t.Fatal("Pool() returned nil")
	}
	if NewEmptyPool().Pool() == nil {
		t.Fatal("empty Pool() returned nil")
	}
}

func TestAddCertPEM(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"one cert", generateTestCertPEM(t), nil},
		{"two certs", append(generateTestCertPEM(t), generateTestCertPEM(t)...), nil},
		{"key block only", pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: []byte("x")}), ErrNoCertsFound},
		{"empty", nil, ErrNoCertsFound},
		{"not pem", []byte("not a certificate"), ErrNoCertsFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEmptyPool().AddCertPEM(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddCertPEM() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddCertPEM_InvalidCert(t *testing.T) {
	invalid := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("invalid certificate data")})
	if err := NewEmptyPool().AddCertPEM(invalid); err == nil {
		t.Error("AddCertPEM() expected error for invalid certificate")
	}
}

func TestAddCertFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(path, generateTestCertPEM(t), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := NewEmptyPool().AddCertFile(path); err != nil {
		t.Fatalf("AddCertFile() error = %v", err)
	}
	if err := NewEmptyPool().AddCertFile("/nonexistent/ca.pem"); err == nil {
		t.Error("AddCertFile() expected error for nonexistent file")
	}
}

func TestTLSConfig(t *testing.T) {
	pool := NewEmptyPool()
	config := pool.TLSConfig()
	if config.RootCAs != pool.Pool() {
		t.Error("TLSConfig().RootCAs != pool.Pool()")
	}
	if config.MinVersion != tls.VersionTLS12 {
		t.Errorf("TLSConfig().MinVersion = %v, want TLS 1.2", config.MinVersion)
	}
}

func TestTransport(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	caFile := filepath.Join(t.TempDir(), "ca.pem")
	caPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	if err := os.WriteFile(caFile, caPEM, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Without the CA the test server is not trusted.
	plain := &http.Client{Timeout: 5 * time.Second}
	if resp, err := plain.Get(server.URL); err == nil {
		resp.Body.Close()
		t.Fatal("GET without the CA should fail")
	}

	tr, err := Transport(caFile)
	if err != nil {
		t.Fatalf("Transport() error = %v", err)
	}
	client := &http.Client{Transport: tr, Timeout: 5 * time.Second}
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("GET with the CA error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
}

func TestTransport_MissingFile(t *testing.T) {
	if _, err := Transport("/nonexistent/ca.pem"); err == nil {
		t.Error("Transport() expected error for nonexistent file")
	}
}

// generateTestCertPEM generates a self-signed CA certificate in PEM format.
func generateTestCertPEM(t *testing.T) []byte {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"STEAM Test CA"},
			CommonName:   "steam.test",
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("CreateCertificate() error = %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}
