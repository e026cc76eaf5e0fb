package constraint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldcoin/idkit-go/credential"
	"github.com/worldcoin/idkit-go/signal"
)

func TestToProtocolFormSingleItemHasNoExpression(t *testing.T) {
	n := Item(Request{Kind: credential.Orb})
	items, expr, err := ToProtocolForm(n)
	require.NoError(t, err)
	assert.Nil(t, expr)
	require.Len(t, items, 1)
	assert.Equal(t, "orb", items[0].Identifier)
	assert.NotEmpty(t, items[0].IssuerSchemaID)
}

func TestToProtocolFormCompoundEmitsExpression(t *testing.T) {
	sig := signal.String("vote")
	n := All(
		Item(Request{Kind: credential.Orb, Signal: &sig}),
		Enumerate(Item(Request{Kind: credential.Document}), Item(Request{Kind: credential.Device})),
	)
	items, expr, err := ToProtocolForm(n)
	require.NoError(t, err)
	require.NotNil(t, expr)
	require.Len(t, items, 3)
	assert.Equal(t, "vote", items[0].Signal)

	data, err := json.Marshal(expr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"all":["orb",{"enumerate":["document","device"]}]}`, string(data))
}

func TestExprRoundTripsThroughJSON(t *testing.T) {
	n := Any(Item(Request{Kind: credential.Orb}), Item(Request{Kind: credential.Face}))
	_, expr, err := ToProtocolForm(n)
	require.NoError(t, err)

	data, err := json.Marshal(expr)
	require.NoError(t, err)

	var decoded Expr
	require.NoError(t, json.Unmarshal(data, &decoded))
	redone, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(redone))
}

func TestToProtocolFormRejectsInvalidTree(t *testing.T) {
	_, _, err := ToProtocolForm(Any())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
