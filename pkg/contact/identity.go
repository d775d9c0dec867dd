package contact

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

// UnknownIdentity is the shared bucket for requests without a usable identity.
const UnknownIdentity = "unknown"

// ClientIdentity derives the rate-limit key for r. With a header name, the
// first comma-separated value of that header is used (the client hop of
// X-Forwarded-For). With an empty header name, the connection's remote
// address is used. Either way an empty result falls back to UnknownIdentity.
func ClientIdentity(r *http.Request, header string) string {
	var id string
	if header != "" {
		first, _, _ := strings.Cut(r.Header.Get(header), ",")
		id = strings.TrimSpace(first)
	} else {
		id = r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			id = host
		}
	}

	if id == "" {
		return UnknownIdentity
	}
	return id
}

// HashIdentity returns a short, stable digest of id for logs.
func HashIdentity(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:8])
}
