package prodid_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/pkg/prodid"
)

func TestFromTitle_EsDeterminista(t *testing.T) {
	a, err := prodid.FromTitle("Red Shoes")
	require.NoError(t, err)
	b, err := prodid.FromTitle("Red Shoes")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// Mayúsculas y espacios alrededor no cambian la identidad del producto.
func TestFromTitle_NormalizaTitulo(t *testing.T) {
	a, err := prodid.FromTitle("Red Shoes")
	require.NoError(t, err)
	b, err := prodid.FromTitle("  RED shoes  ")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFromTitle_LlevaPrefijo(t *testing.T) {
	id, err := prodid.FromTitle("Cafetera Italiana")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, prodid.Prefix), "id=%s", id)
	assert.Greater(t, len(id), len(prodid.Prefix))
}

func TestFromTitle_TitulosDistintosDanIDsDistintos(t *testing.T) {
	a, err := prodid.FromTitle("Red Shoes")
	require.NoError(t, err)
	b, err := prodid.FromTitle("Blue Shoes")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFromTitle_TituloVacio_Falla(t *testing.T) {
	_, err := prodid.FromTitle("   ")
	assert.Error(t, err)
}
