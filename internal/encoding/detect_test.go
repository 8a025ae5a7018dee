package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmiguelc/transita/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Item;SKU;Qty;Unit\nCafetière;KIT-019;3;pcs\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := "Item;SKU;Qty;Unit\nMonitor;MON-24;4;pcs\n"

	assert.Equal(t, content, decode(t, append(bom, content...)))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 "Cafetière" (è = 0xE8).
	input := []byte{
		'C', 'a', 'f', 'e', 't', 'i', 0xE8, 'r', 'e', ';',
		'K', 'I', 'T', '-', '0', '1', '9', '\n',
	}

	assert.Equal(t, "Cafetière;KIT-019\n", decode(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	content := "Item;Qty\n"

	input := []byte{0xFF, 0xFE}
	for _, r := range content {
		input = append(input, byte(r), 0x00)
	}

	assert.Equal(t, content, decode(t, input))
}
