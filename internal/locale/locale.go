// Package locale provides the localization contract the validation engine
// renders its rejection reasons through. The core treats rendered strings
// as opaque payloads; only the keys are stable API.
package locale

import "strings"

// Localizer renders a message key with named parameters.
type Localizer interface {
	T(key string, params map[string]string) string
}

// Catalog is a map-backed Localizer. Placeholders use {{name}} syntax.
type Catalog struct {
	entries map[string]string
}

func NewCatalog(entries map[string]string) *Catalog {
	return &Catalog{entries: entries}
}

func (c *Catalog) T(key string, params map[string]string) string {
	msg, ok := c.entries[key]
	if !ok {
		// An unknown key renders as itself so a missing entry is visible
		// instead of silently blank.
		return key
	}
	for name, value := range params {
		msg = strings.ReplaceAll(msg, "{{"+name+"}}", value)
	}
	return msg
}

// Default returns the built-in English catalog covering the validation
// rejection reasons.
func Default() *Catalog {
	return NewCatalog(map[string]string{
		"send.pleaseEnterAmount":                                "Please enter an amount to send",
		"send.unableToSendPaymentRecipientDoesNotHaveTrustLine": "The recipient does not have a trust line for receiving {{currency}}",
		"send.insufficientBalanceSpendableBalance":              "Insufficient balance, your spendable balance is {{spendable}} {{currency}}",
		"send.trustLineIsFrozenByIssuer":                        "Your {{currency}} trust line has been frozen by the issuer",
		"send.trustLineLimitExceeded":                           "Sending this amount would exceed the recipient's trust line limit of {{peer_limit}} (current obligation {{balance}}, available {{available}})",
		"account.unableGetAccountInfo":                          "Unable to fetch account information from the ledger",
		"global.unexpectedValidationError":                      "An unexpected error occurred while validating the transaction",
	})
}
