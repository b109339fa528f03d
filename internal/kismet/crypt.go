package kismet

import (
	"fmt"
	"strings"
)

// Crypt is Kismet's dot11 crypt_set bitfield.
type Crypt uint64

const (
	CryptNone    Crypt = 0
	CryptUnknown Crypt = 1 << (iota - 1)
	CryptWEP
	CryptLayer3
	CryptWEP40
	CryptWEP104
	CryptTKIP
	CryptWPA
	CryptPSK
	CryptAESOCB
	CryptAESCCM
	CryptWPAMigMode
	CryptEAP
	CryptLEAP
	CryptTTLS
	CryptTLS
	CryptPEAP
	CryptSAE
	CryptWPAOWE

	_
	_

	CryptISAKMP
	CryptPPTP
	CryptFortress
	CryptKeyGuard
	CryptUnknownProtected
	CryptUnknownNonWEP
	CryptWPS
	CryptVersionWPA
	CryptVersionWPA2
	CryptVersionWPA3
)

const CryptProtectMask Crypt = 0xFFFF

func (c Crypt) cipher() string {
	switch {
	case c&CryptTKIP != 0 && c&CryptAESCCM != 0:
		return "CCMP+TKIP"
	case c&CryptTKIP != 0:
		return "TKIP"
	case c&CryptAESCCM != 0:
		return "CCMP"
	default:
		return ""
	}
}

func (c Crypt) auth() string {
	switch {
	case c&CryptSAE != 0:
		return "SAE"
	case c&CryptPSK != 0:
		return "PSK"
	case c&CryptEAP != 0:
		return "EAP"
	case c&CryptWPAOWE != 0:
		return "OWE"
	default:
		return ""
	}
}

// Capabilities renders the set the way WiGLE's AuthMode column expects,
// e.g. "[WPA2-PSK-CCMP][ESS]".
func (c Crypt) Capabilities() string {
	s := new(strings.Builder)
	if c&CryptWPS != 0 {
		s.WriteString("[WPS]")
	}
	if c&CryptProtectMask == CryptWEP {
		s.WriteString("[WEP]")
	}

	if c&CryptWPA != 0 || c&(CryptVersionWPA|CryptVersionWPA2|CryptVersionWPA3) != 0 {
		auth, cipher := c.auth(), c.cipher()
		switch {
		case c&CryptVersionWPA3 != 0 || c&CryptSAE != 0:
			fmt.Fprintf(s, "[WPA3-%s-%s]", auth, cipher)
		case c&CryptVersionWPA != 0 && c&CryptVersionWPA2 != 0:
			fmt.Fprintf(s, "[WPA-%s-%s][WPA2-%s-%s]", auth, cipher, auth, cipher)
		case c&CryptVersionWPA2 != 0:
			fmt.Fprintf(s, "[WPA2-%s-%s]", auth, cipher)
		default:
			fmt.Fprintf(s, "[WPA-%s-%s]", auth, cipher)
		}
	}

	s.WriteString("[ESS]")

	return s.String()
}

// String is a short human label for map popups.
func (c Crypt) String() string {
	switch {
	case c == CryptNone:
		return "Open"
	case c&CryptVersionWPA3 != 0 || c&CryptSAE != 0:
		return "WPA3"
	case c&CryptVersionWPA2 != 0:
		if a := c.auth(); a != "" {
			return "WPA2-" + a
		}
		return "WPA2"
	case c&CryptWPA != 0 || c&CryptVersionWPA != 0:
		return "WPA"
	case c&CryptProtectMask == CryptWEP || c&(CryptWEP40|CryptWEP104) != 0:
		return "WEP"
	case c&CryptWPAOWE != 0:
		return "OWE"
	default:
		return "Unknown"
	}
}
