package registry

import (
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"reflect"

	jose "gopkg.in/square/go-jose.v2"

	"github.com/pkg/errors"
)

// parseManifest decodes a manifest's JSON body.
func parseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "parse manifest")
	}
	return &m, nil
}

// verifySignature checks m.Signature, a JOSE compact signature whose
// embedded payload is the manifest body without the signature field
// itself, against the PEM-encoded public key trustedKeyPEM. Returns
// SignatureNotChecked when trustedKeyPEM is empty, since an unconfigured
// registry has no basis to reject an unsigned package.
func verifySignature(m *Manifest, body []byte, trustedKeyPEM []byte) (SignatureStatus, error) {
	if len(trustedKeyPEM) == 0 {
		return SignatureNotChecked, nil
	}
	if m.Signature == "" {
		return SignatureInvalid, errors.New("registry configured with a trusted key but manifest carries no signature")
	}

	block, _ := pem.Decode(trustedKeyPEM)
	if block == nil {
		return SignatureInvalid, errors.New("trusted key file is not PEM encoded")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return SignatureInvalid, errors.Wrap(err, "parse trusted public key")
	}

	sig, err := jose.ParseSigned(m.Signature)
	if err != nil {
		return SignatureInvalid, errors.Wrap(err, "parse manifest signature")
	}
	verified, err := sig.Verify(pub)
	if err != nil {
		return SignatureInvalid, errors.Wrap(err, "verify manifest signature")
	}
	var signedFields, bodyFields map[string]interface{}
	if err := json.Unmarshal(verified, &signedFields); err != nil {
		return SignatureInvalid, errors.Wrap(err, "parse signed payload")
	}
	if err := json.Unmarshal(body, &bodyFields); err != nil {
		return SignatureInvalid, errors.Wrap(err, "parse manifest body")
	}
	delete(bodyFields, "signature")
	if !reflect.DeepEqual(signedFields, bodyFields) {
		return SignatureInvalid, errors.New("signed payload does not match manifest body")
	}
	return SignatureValid, nil
}
