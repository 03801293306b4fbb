package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"strings"
	"syscall"
)

// shortErr collapses transport errors into a compact class for alert text.
// Raw client errors repeat the URL and wrap several layers; operators only
// need which plane broke.
func shortErr(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return "dns: NXDOMAIN"
		case dnsErr.IsTimeout || dnsErr.IsTemporary:
			return "dns: SERVFAIL or timeout"
		default:
			return "dns: " + dnsErr.Err
		}
	}

	var certErr *tls.CertificateVerificationError
	var unkAuth x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &unkAuth) || errors.As(err, &hostErr) {
		return "tls: certificate verification failed"
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return "connection refused"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	// fall back to the innermost message without the URL noise
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && i+2 < len(msg) {
		msg = msg[i+2:]
	}
	return msg
}
