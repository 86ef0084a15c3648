package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Evanfeenstra/mailgun-go"
)

// addressList collects repeatable address flags. Values may be bare
// addresses or RFC 5322 "Name <addr>" forms.
type addressList struct {
	addrs []mailgun.EmailAddress
}

func (l *addressList) String() string {
	if len(l.addrs) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(l.addrs))
	for _, addr := range l.addrs {
		rendered = append(rendered, addr.String())
	}
	return strings.Join(rendered, ",")
}

func (l *addressList) Set(value string) error {
	addr, err := mailgun.ParseAddress(value)
	if err != nil {
		return err
	}
	l.addrs = append(l.addrs, addr)
	return nil
}

// varMap collects repeatable name=value flags into a string map. A repeated
// name overrides the earlier value.
type varMap struct {
	vars map[string]string
}

func (m *varMap) String() string {
	if len(m.vars) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(m.vars))
	for name, value := range m.vars {
		pairs = append(pairs, name+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (m *varMap) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", value)
	}

	if m.vars == nil {
		m.vars = make(map[string]string)
	}
	m.vars[name] = val
	return nil
}
