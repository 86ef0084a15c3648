package mailgun

import (
	"fmt"
	"net/mail"
	"strings"
)

// EmailAddress identifies a single sender or recipient with an optional
// display name. Values are immutable once constructed; the address itself is
// taken as-is and not validated.
type EmailAddress struct {
	name    string
	address string
}

// Address constructs an EmailAddress without a display name.
func Address(address string) EmailAddress {
	return EmailAddress{address: address}
}

// NameAddress constructs an EmailAddress with a display name.
func NameAddress(name, address string) EmailAddress {
	return EmailAddress{name: name, address: address}
}

// ParseAddress builds an EmailAddress from an RFC 5322 string such as
// "Ada <ada@example.com>" or a bare "ada@example.com". It is intended for
// boundary code that receives addresses as free text; programmatic callers
// should prefer Address and NameAddress.
func ParseAddress(s string) (EmailAddress, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return EmailAddress{}, fmt.Errorf("%w: value is empty", ErrInvalidAddress)
	}

	parsed, err := mail.ParseAddress(trimmed)
	if err != nil {
		return EmailAddress{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	return EmailAddress{name: parsed.Name, address: parsed.Address}, nil
}

// Name returns the display name, empty when none was set.
func (a EmailAddress) Name() string { return a.name }

// Addr returns the bare address without the display name.
func (a EmailAddress) Addr() string { return a.address }

// String renders the wire form expected by the API: "name <address>" when a
// display name is present, the bare address otherwise.
func (a EmailAddress) String() string {
	if a.name != "" {
		return fmt.Sprintf("%s <%s>", a.name, a.address)
	}
	return a.address
}
