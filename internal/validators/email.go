package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

var lookupTimeout = 3 * time.Second

// IsEmailDomainValid confere se o domínio do e-mail tem MX ou endereço.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	host := strings.TrimSuffix(strings.ToLower(email[at+1:]), ".")
	if !strings.Contains(host, ".") {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	if mx, err := net.DefaultResolver.LookupMX(ctx, host); err == nil && len(mx) > 0 {
		return true
	}
	if addrs, err := net.DefaultResolver.LookupHost(ctx, host); err == nil && len(addrs) > 0 {
		return true
	}
	return false
}
