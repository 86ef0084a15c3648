package mailgun

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Form keys for server-side template variables. The values are JSON objects
// passed through as custom MIME header parameters.
const (
	variablesKey          = "h:X-Mailgun-Variables"
	recipientVariablesKey = "h:X-Mailgun-Recipient-Variables"
)

// Message holds the logical content of one email send. The zero value is
// usable and any subset of fields may be set; empty strings and empty
// collections mean "not set".
type Message struct {
	To  []EmailAddress
	CC  []EmailAddress
	BCC []EmailAddress

	Subject string
	Text    string
	HTML    string

	// Template names a message template stored on the provider. When it is
	// empty, TemplateVars and RecipientVars are ignored entirely and never
	// serialized.
	Template string

	// TemplateVars are substitution values applied to the whole send.
	TemplateVars map[string]string

	// RecipientVars are substitution values scoped to a single recipient,
	// keyed by the recipient's bare address.
	RecipientVars map[string]map[string]string
}

// params flattens the message into the flat, single-valued form parameters
// the messages endpoint expects. It reads the message and never mutates it.
func (m *Message) params() (url.Values, error) {
	values := url.Values{}

	addRecipients(values, "to", m.To)
	addRecipients(values, "cc", m.CC)
	addRecipients(values, "bcc", m.BCC)

	values.Set("subject", m.Subject)
	values.Set("text", m.Text)
	values.Set("html", m.HTML)

	if m.Template == "" {
		return values, nil
	}

	values.Set("template", m.Template)

	if len(m.TemplateVars) > 0 {
		encoded, err := json.Marshal(m.TemplateVars)
		if err != nil {
			return nil, fmt.Errorf("encode template variables: %w", err)
		}
		values.Set(variablesKey, string(encoded))
	}

	if len(m.RecipientVars) > 0 {
		encoded, err := json.Marshal(m.RecipientVars)
		if err != nil {
			return nil, fmt.Errorf("encode recipient variables: %w", err)
		}
		values.Set(recipientVariablesKey, string(encoded))
	}

	return values, nil
}

// addRecipients joins the rendered addresses with commas under the role key.
// Empty roles produce no key at all rather than an empty value.
func addRecipients(values url.Values, field string, addresses []EmailAddress) {
	if len(addresses) == 0 {
		return
	}

	rendered := make([]string, 0, len(addresses))
	for _, address := range addresses {
		rendered = append(rendered, address.String())
	}
	values.Set(field, strings.Join(rendered, ","))
}
