// Package interpreter turns mobile-money SMS bodies into transaction candidates.
package interpreter

import (
	"strings"

	"github.com/grachmannico95/momo-ledger/internal/domain"
)

// Outcome names how a message was classified: a template name, or one of
// OutcomeOTP / OutcomeUnmatched when no candidate was produced.
type Outcome string

const (
	OutcomeOTP       Outcome = "otp"
	OutcomeUnmatched Outcome = "unmatched"
)

type template struct {
	name    domain.TransactionType
	matches func(body string) bool
	extract func(body string, c *domain.Candidate)
}

func containsAll(body string, markers ...string) bool {
	for _, m := range markers {
		if !strings.Contains(body, m) {
			return false
		}
	}
	return true
}

// Order matters: the first matching template wins.
var templates = []template{
	{
		name: domain.TransactionTypeReceived,
		matches: func(body string) bool {
			return containsAll(body, "You have received", "RWF from")
		},
		extract: func(body string, c *domain.Candidate) {
			c.Amount = amountBetween(body, "received ", " RWF")
			c.Sender = nameBetween(body, "RWF from ", " (")
			c.Receiver = domain.SelfLabel
			c.CreatedAt = betweenAny(body, [2]string{" at ", ". Message"}, [2]string{" at ", ". Your"})
		},
	},
	{
		name: domain.TransactionTypePayment,
		matches: func(body string) bool {
			return containsAll(body, "Your payment of", "has been completed") &&
				!strings.Contains(body, "Airtime") &&
				!strings.Contains(body, "Cash Power")
		},
		extract: func(body string, c *domain.Candidate) {
			c.Amount = amountBetween(body, "payment of ", " RWF to")
			if part, ok := between(body, "RWF to ", " has been completed"); ok {
				c.Receiver = stripTrailingNumber(part)
			}
			c.Sender = domain.SelfLabel
			c.CreatedAt = betweenAny(body, [2]string{"completed at ", ". Your"})
		},
	},
	{
		name: domain.TransactionTypeTransfer,
		matches: func(body string) bool {
			return containsAll(body, "*165*S*", "transferred to")
		},
		extract: func(body string, c *domain.Candidate) {
			c.Amount = amountBetween(body, "*165*S*", " RWF transferred")
			c.Receiver = nameBetween(body, "transferred to ", " (")
			c.Sender = domain.SelfLabel

			ts, _ := between(body, ") from ", " . Fee")
			if _, after, found := strings.Cut(ts, " at "); found {
				ts = after
			}
			c.CreatedAt = ts
		},
	},
	{
		name: domain.TransactionTypeDeposit,
		matches: func(body string) bool {
			return containsAll(body, "*113*R*", "bank deposit")
		},
		extract: func(body string, c *domain.Candidate) {
			c.Amount = amountBetween(body, "deposit of ", " RWF")
			c.Sender = "Bank Deposit"
			c.Receiver = domain.SelfLabel
			c.CreatedAt = betweenAny(body, [2]string{"account at ", ". Your"})
		},
	},
	{
		name: domain.TransactionTypeAirtime,
		matches: func(body string) bool {
			return containsAll(body, "*162*", "Airtime")
		},
		extract: func(body string, c *domain.Candidate) {
			c.Amount = amountBetween(body, "payment of ", " RWF to")
			c.Sender = domain.SelfLabel
			c.Receiver = "Airtime"
			c.CreatedAt = betweenAny(body, [2]string{"completed at ", ". Fee"})
		},
	},
	{
		name: domain.TransactionTypeWithdrawal,
		matches: func(body string) bool {
			return containsAll(body, "withdrawn", "via agent")
		},
		extract: func(body string, c *domain.Candidate) {
			c.Amount = amountBetween(body, "withdrawn ", " RWF")
			c.Receiver = nameBetween(body, "via agent: ", " (")
			c.Sender = domain.SelfLabel
			c.CreatedAt = betweenAny(body, [2]string{"account: ", " at "}, [2]string{") at ", " and"})
		},
	},
	{
		name: domain.TransactionTypeCashPower,
		matches: func(body string) bool {
			return containsAll(body, "*162*", "Cash Power")
		},
		extract: func(body string, c *domain.Candidate) {
			c.Amount = amountBetween(body, "payment of ", " RWF to")
			c.Sender = domain.SelfLabel
			c.Receiver = "MTN Cash Power"
			c.CreatedAt = betweenAny(body, [2]string{"completed at ", ". Fee"})
		},
	},
	{
		name: domain.TransactionTypeDirectDebit,
		matches: func(body string) bool {
			return containsAll(body, "*164*S*", "transaction of")
		},
		extract: func(body string, c *domain.Candidate) {
			c.Amount = amountBetween(body, "transaction of ", " RWF")
			c.Receiver = nameBetween(body, "RWF by ", " on your")
			c.Sender = domain.SelfLabel
			c.CreatedAt = betweenAny(body, [2]string{"completed at ", ". Message"})
		},
	},
}

// stripTrailingNumber drops a trailing all-digit token such as a phone number.
func stripTrailingNumber(s string) string {
	if i := strings.LastIndex(s, " "); i != -1 && isDigits(s[i+1:]) {
		return normalizeName(s[:i])
	}
	return normalizeName(s)
}

func isOTP(body string) bool {
	return strings.Contains(strings.ToLower(body), "one-time password")
}

// Interpret extracts a transaction candidate from a message body. It returns
// nil when the message is a one-time-password notice or matches no template.
// Amounts that cannot be parsed come back as zero; callers decide whether to
// keep such candidates.
func Interpret(body string) (*domain.Candidate, Outcome) {
	if isOTP(body) {
		return nil, OutcomeOTP
	}

	for _, t := range templates {
		if !t.matches(body) {
			continue
		}

		c := &domain.Candidate{
			ID:   extractTransactionID(body),
			Type: t.name,
		}
		t.extract(body, c)

		return c, Outcome(t.name)
	}

	return nil, OutcomeUnmatched
}
