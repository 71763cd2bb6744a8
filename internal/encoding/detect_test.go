package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldcall/internal/encoding"
)

func TestNormalize_UTF8Passthrough(t *testing.T) {
	input := "Business,Contact,Phone\nCafé Río,José,555-0101\n"

	got, err := encoding.Normalize([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestNormalize_Windows1252(t *testing.T) {
	// Windows-1252 encoded "Café Río": é = 0xE9, í = 0xED
	input := []byte{
		'C', 'a', 'f', 0xE9, ' ', 'R', 0xED, 'o', ',',
		'5', '5', '5', '-', '0', '1', '0', '1', '\n',
	}

	got, err := encoding.Normalize(input)
	require.NoError(t, err)
	assert.Equal(t, "Café Río,555-0101\n", got)
}

func TestNormalize_UTF8BOMStripped(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	input := append(bom, []byte("Business,Phone\n")...)

	got, err := encoding.Normalize(input)
	require.NoError(t, err)
	assert.Equal(t, "Business,Phone\n", got)
}

func TestNormalize_UTF16LE(t *testing.T) {
	// "Hi" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00}

	got, err := encoding.Normalize(input)
	require.NoError(t, err)
	assert.Equal(t, "Hi", got)
}
