package screening

import (
	"net/netip"
	"strings"
)

const (
	minCardLength = 13
	maxCardLength = 19
)

// IsValidCardNumber reports whether number is 13 to 19 digits and passes the Luhn checksum.
func IsValidCardNumber(number string) bool {
	if len(number) < minCardLength || len(number) > maxCardLength {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// IsValidIPv4 reports whether ip is a dotted-quad IPv4 address with octets in 0..255.
func IsValidIPv4(ip string) bool {
	if strings.Count(ip, ".") != 3 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	return err == nil && addr.Is4()
}
