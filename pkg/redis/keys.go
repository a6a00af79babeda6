package redis

import "strings"

const defaultKeyPrefix = "wq"

func (c *Client) IdempotencyKey(scope, id string) string {
	return c.key("idempotency", scope, id)
}

func (c *Client) RateLimitKey(scope string) string {
	return c.key("rate_limit", scope)
}

func (c *Client) AccessSessionKey(accessID string) string {
	return c.key("session", "access", accessID)
}

// WizardKey scopes a configurator session to one representative working one customer.
func (c *Client) WizardKey(representativeID, customerID string) string {
	return c.key("wizard", representativeID, customerID)
}

func (c *Client) CatalogKey() string {
	return c.key("catalog", "active")
}

// key joins the non-empty parts under the client prefix with ':'.
func (c *Client) key(parts ...string) string {
	prefix := strings.TrimSpace(c.prefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	var b strings.Builder
	b.WriteString(prefix)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}
