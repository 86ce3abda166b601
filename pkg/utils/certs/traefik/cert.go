package traefik

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// certEntry is the certificate record inside a traefik acme.json
// resolver block. Both values are base64 encoded PEM.
type certEntry struct {
	Certificate string `json:"certificate"`
	Key         string `json:"key"`
}

// Load reads a traefik acme.json file and returns the certificate
// issued for domain.
func Load(file, domain string) (tls.Certificate, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("reading traefik certs: %w", err)
	}
	return Extract(string(data), domain)
}

// Extract picks the certificate for domain out of acme.json data.
func Extract(jsonData, domain string) (tls.Certificate, error) {
	certData, keyData, err := certFor(jsonData, domain)
	if err != nil {
		return tls.Certificate{}, err
	}
	pemCert, err := base64.StdEncoding.DecodeString(certData)
	if err != nil {
		return tls.Certificate{}, err
	}
	pemKey, err := base64.StdEncoding.DecodeString(keyData)
	if err != nil {
		return tls.Certificate{}, err
	}
	return tls.X509KeyPair(pemCert, pemKey)
}

// certFor matches on the main domain of any resolver's certificate list.
func certFor(jsonData, domain string) (cert, key string, err error) {
	obj, err := oj.ParseString(jsonData)
	if err != nil {
		return "", "", err
	}
	path, err := jp.ParseString(fmt.Sprintf(`$..Certificates[?(@.domain.main == %q)]`, domain))
	if err != nil {
		return "", "", err
	}
	res := path.Get(obj)
	if len(res) == 0 {
		return "", "", fmt.Errorf("no certificate for domain %s", domain)
	}

	entry := certEntry{}
	if err := oj.Unmarshal([]byte(oj.JSON(res[0])), &entry); err != nil {
		return "", "", err
	}
	return entry.Certificate, entry.Key, nil
}
