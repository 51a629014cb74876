package nets

import (
	"context"
	"net"
	"strings"
)

// IsLocalAddr reports whether addr, with or without a port, is on this host or a private network.
type IsLocalAddr func(addr string) (bool, error)

func isLocalIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}

func (Module) IsLocalAddr() IsLocalAddr {
	var resolver net.Resolver
	return func(addr string) (bool, error) {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		host = strings.Trim(host, "[]")

		if ip := net.ParseIP(host); ip != nil {
			return isLocalIP(ip), nil
		}
		if strings.EqualFold(host, "localhost") {
			return true, nil
		}

		addrs, err := resolver.LookupIPAddr(context.Background(), host)
		if err != nil {
			// unresolvable here, let the proxy try
			return false, nil
		}
		for _, a := range addrs {
			if isLocalIP(a.IP) {
				return true, nil
			}
		}
		return false, nil
	}
}
