package interpreter

import (
	"testing"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestInterpret_Templates(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		id        *int64
		amount    string
		sender    string
		receiver  string
		txType    domain.TransactionType
		createdAt string
	}{
		{
			name:      "received short form",
			body:      "You have received 5,000 RWF from John Doe (123) at 12:00. Message...",
			amount:    "5000",
			sender:    "John Doe",
			receiver:  domain.SelfLabel,
			txType:    domain.TransactionTypeReceived,
			createdAt: "12:00",
		},
		{
			name:      "received with financial transaction id",
			body:      "You have received 2000 RWF from Jane   Smith (*********013) on your mobile money account at 2024-05-10 16:30:51. Message from sender: . Your new balance:2000 RWF. Financial Transaction Id: 76662021700.",
			id:        int64Ptr(76662021700),
			amount:    "2000",
			sender:    "Jane Smith",
			receiver:  domain.SelfLabel,
			txType:    domain.TransactionTypeReceived,
			createdAt: "2024-05-10 16:30:51",
		},
		{
			name:      "payment with phone number",
			body:      "TxId: 73214484437. Your payment of 1,000 RWF to Jane Smith 250788123456 has been completed at 10:00. Your balance...",
			id:        int64Ptr(73214484437),
			amount:    "1000",
			sender:    domain.SelfLabel,
			receiver:  "Jane Smith",
			txType:    domain.TransactionTypePayment,
			createdAt: "10:00",
		},
		{
			name:     "payment without trailing number",
			body:     "Your payment of 1,500 RWF to Corner Shop has been completed.",
			amount:   "1500",
			sender:   domain.SelfLabel,
			receiver: "Corner Shop",
			txType:   domain.TransactionTypePayment,
		},
		{
			name:      "transfer",
			body:      "*165*S*10000 RWF transferred to Samuel Carter (250791666666) from 36521838 at 2024-05-11 20:34:47 . Fee was: 100 RWF. New balance: 28300 RWF.",
			amount:    "10000",
			sender:    domain.SelfLabel,
			receiver:  "Samuel Carter",
			txType:    domain.TransactionTypeTransfer,
			createdAt: "2024-05-11 20:34:47",
		},
		{
			name:      "bank deposit",
			body:      "*113*R*A bank deposit of 40000 RWF has been added to your mobile money account at 2024-05-11 18:43:49. Your NEW BALANCE :40400 RWF. Cash Deposit::CASH::::0::250795963036.Thank you for using MTN MobileMoney.*EN#",
			amount:    "40000",
			sender:    "Bank Deposit",
			receiver:  domain.SelfLabel,
			txType:    domain.TransactionTypeDeposit,
			createdAt: "2024-05-11 18:43:49",
		},
		{
			name:      "airtime",
			body:      "*162*TxId:13913173274*S*Your payment of 3000 RWF to Airtime with token  has been completed at 2024-05-12 11:41:28. Fee was 0 RWF. Your new balance: 31300 RWF . *EN#",
			id:        int64Ptr(13913173274),
			amount:    "3000",
			sender:    domain.SelfLabel,
			receiver:  "Airtime",
			txType:    domain.TransactionTypeAirtime,
			createdAt: "2024-05-12 11:41:28",
		},
		{
			name:      "withdrawal account timestamp",
			body:      "You Jane Smith (*********036) have via agent: Agent Sophia (250790777777), withdrawn 20,000 RWF from your mobile money account: 2024-05-26 02:10:27 at agent point. Your new balance: 6400 RWF.",
			amount:    "20000",
			sender:    domain.SelfLabel,
			receiver:  "Agent Sophia",
			txType:    domain.TransactionTypeWithdrawal,
			createdAt: "2024-05-26 02:10:27",
		},
		{
			name:      "withdrawal fallback timestamp",
			body:      "You Jane Smith (*********036) have via agent: Agent Sophia (250790777777) at 2024-05-26 02:10:27 and withdrawn 20000 RWF from your mobile money account. Financial Transaction Id: 14106460762.",
			id:        int64Ptr(14106460762),
			amount:    "20000",
			sender:    domain.SelfLabel,
			receiver:  "Agent Sophia",
			txType:    domain.TransactionTypeWithdrawal,
			createdAt: "2024-05-26 02:10:27",
		},
		{
			name:      "cash power",
			body:      "*162*TxId:13913173275*S*Your payment of 5000 RWF to MTN Cash Power with token 1234-5678 has been completed at 2024-05-12 11:41:28. Fee was 0 RWF.",
			id:        int64Ptr(13913173275),
			amount:    "5000",
			sender:    domain.SelfLabel,
			receiver:  "MTN Cash Power",
			txType:    domain.TransactionTypeCashPower,
			createdAt: "2024-05-12 11:41:28",
		},
		{
			name:      "direct debit",
			body:      "*164*S*Y'ello,A transaction of 2000 RWF by DIRECT PAYMENT LTD on your MOMO account was successfully completed at 2024-05-14 21:12:03. Message from debit receiver: . Your new balance:4300 RWF. Fee was 0 RWF. Financial Transaction Id: 14098463509.",
			id:        int64Ptr(14098463509),
			amount:    "2000",
			sender:    domain.SelfLabel,
			receiver:  "DIRECT PAYMENT LTD",
			txType:    domain.TransactionTypeDirectDebit,
			createdAt: "2024-05-14 21:12:03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, outcome := Interpret(tt.body)
			require.NotNil(t, c)

			assert.Equal(t, Outcome(tt.txType), outcome)
			assert.Equal(t, tt.id, c.ID)
			assert.Equal(t, tt.amount, c.Amount.String())
			assert.Equal(t, tt.sender, c.Sender)
			assert.Equal(t, tt.receiver, c.Receiver)
			assert.Equal(t, tt.txType, c.Type)
			assert.Equal(t, tt.createdAt, c.CreatedAt)
		})
	}
}

func TestInterpret_OneTimePassword(t *testing.T) {
	bodies := []string{
		"Your one-time password is 483920. Do not share it.",
		"Your One-Time Password is 483920. You have received 5,000 RWF from John Doe (123) at 12:00. Message",
		"ONE-TIME PASSWORD: 1234 *165*S*100 RWF transferred to Bob (1) from 2 at 3 . Fee",
	}

	for _, body := range bodies {
		c, outcome := Interpret(body)
		assert.Nil(t, c, body)
		assert.Equal(t, OutcomeOTP, outcome)
	}
}

func TestInterpret_Unmatched(t *testing.T) {
	c, outcome := Interpret("Dear customer, enjoy 10% off this weekend.")

	assert.Nil(t, c)
	assert.Equal(t, OutcomeUnmatched, outcome)
}

func TestInterpret_PaymentMentioningAirtimeFallsThrough(t *testing.T) {
	body := "Your payment of 500 RWF to Airtime has been completed at 09:00. Fee was 0 RWF."

	c, outcome := Interpret(body)

	assert.Nil(t, c)
	assert.Equal(t, OutcomeUnmatched, outcome)
}

func TestInterpret_FirstTemplateWins(t *testing.T) {
	body := "You have received 700 RWF from Ana (1) at 08:00. Message: Your payment of 700 RWF to Ana has been completed"

	c, _ := Interpret(body)
	require.NotNil(t, c)

	assert.Equal(t, domain.TransactionTypeReceived, c.Type)
	assert.Equal(t, "Ana", c.Sender)
}

func TestInterpret_MalformedAmountIsZero(t *testing.T) {
	c, _ := Interpret("You have received lots RWF from John Doe (123) at 12:00. Message")
	require.NotNil(t, c)

	assert.True(t, c.Amount.IsZero())
	assert.Equal(t, "John Doe", c.Sender)
}

func TestInterpret_MissingTimestampIsEmpty(t *testing.T) {
	c, _ := Interpret("*165*S*250 RWF transferred to Bob (250788000000)")
	require.NotNil(t, c)

	assert.Equal(t, "250", c.Amount.String())
	assert.Equal(t, "Bob", c.Receiver)
	assert.Empty(t, c.CreatedAt)
}

func TestInterpret_Deterministic(t *testing.T) {
	body := "TxId: 1. Your payment of 10 RWF to Kim 0788 has been completed at 01:00. Your"

	first, _ := Interpret(body)
	second, _ := Interpret(body)

	assert.Equal(t, first, second)
}
