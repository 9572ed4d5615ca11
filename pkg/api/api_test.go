package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalUnmarshal(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"payer":"A","amount":35.10,"shares":{"A":"15","B":12.1,"C":null,"D":true}}`), &tx)
	require.NoError(t, err)

	assert.Equal(t, Decimal("35.10"), tx.Amount)
	assert.Equal(t, Decimal("15"), tx.Shares["A"])
	assert.Equal(t, Decimal("12.1"), tx.Shares["B"])
	assert.Equal(t, Decimal(""), tx.Shares["C"])
	assert.Equal(t, Decimal("true"), tx.Shares["D"])
}

func TestDecimalMarshal(t *testing.T) {
	b, err := json.Marshal(Transfer{From: "B", To: "A", Amount: "12.00"})
	require.NoError(t, err)
	assert.Equal(t, `{"from":"B","to":"A","amount":12.00}`, string(b))

	b, err = json.Marshal([]Decimal{"", "Inf", "-0.50"})
	require.NoError(t, err)
	assert.Equal(t, `[null,"Inf",-0.50]`, string(b))
}

func TestPersonAmountsKeepOrder(t *testing.T) {
	pa := PersonAmounts{{"Zoe", "1.00"}, {"Adam", "-1.00"}, {"Mia", "0.00"}}
	b, err := json.Marshal(pa)
	require.NoError(t, err)
	assert.Equal(t, `{"Zoe":1.00,"Adam":-1.00,"Mia":0.00}`, string(b))

	var back PersonAmounts
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, pa, back)

	amount, ok := back.Get("Adam")
	assert.True(t, ok)
	assert.Equal(t, Decimal("-1.00"), amount)
	_, ok = back.Get("Nobody")
	assert.False(t, ok)
}

func TestPersonAmountsEmpty(t *testing.T) {
	b, err := json.Marshal(Balances{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"paid":{},"consumed":{},"net":{}}`, string(b))

	var pa PersonAmounts
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &pa))
}
