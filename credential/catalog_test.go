package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/worldcoin/idkit-go/field"
)

func TestSchemaIDMapping(t *testing.T) {
	cases := map[Kind]uint64{
		Orb:            1,
		Face:           2,
		SecureDocument: 3,
		Document:       4,
		Device:         5,
	}
	for kind, want := range cases {
		got, ok := kind.SchemaID()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestSchemaIDElementRoundTrip(t *testing.T) {
	for kind := range map[Kind]struct{}{Orb: {}, Face: {}, SecureDocument: {}, Document: {}, Device: {}} {
		e := kind.SchemaIDElement()
		resolved, ok := FromSchemaIDElement(e)
		assert.True(t, ok)
		assert.Equal(t, kind, resolved)
	}
}

func TestUnknownSchemaIDDoesNotResolve(t *testing.T) {
	unknown := field.FromUint64(999)
	_, ok := FromSchemaIDElement(unknown)
	assert.False(t, ok)
}

func TestInvalidKind(t *testing.T) {
	assert.False(t, Kind("bogus").Valid())
	assert.True(t, Orb.Valid())
}
