package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		data string
		hash uint32
	}{
		{"empty name", "", 0},
		{"single byte", "A", 65},
		{"two bytes", "AB", 76116},
		{"wraps at 32 bits", "Hello", 773574175},
		{"typical label", "msg_0001", 3052774625},
		{"long label", "TalkMessage_00_Start", 2035717100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hash, Label(tt.data))
		})
	}
}

func TestLabelChecksum(t *testing.T) {
	require.Equal(t, uint32(65), LabelChecksum("A", 101))
	require.Equal(t, uint32(63), LabelChecksum("AB", 101))
	require.Equal(t, uint32(25), LabelChecksum("Hello", 101))
	require.Equal(t, uint32(86), LabelChecksum("TalkMessage_00_Start", 101))
	require.Equal(t, uint32(0), LabelChecksum("A", 1))

	t.Run("no buckets", func(t *testing.T) {
		require.Equal(t, uint32(0), LabelChecksum("anything", 0))
	})
}

func TestFingerprint(t *testing.T) {
	require.Equal(t, uint64(0xef46db3751d8e999), Fingerprint(nil))
	require.Equal(t, uint64(0x4fdcca5ddb678139), Fingerprint([]byte("test")))
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_0123456789"
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = letters[seededRand.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkLabelChecksum(b *testing.B) {
	name := randString(24)
	b.ResetTimer()
	for b.Loop() {
		LabelChecksum(name, 101)
	}
}
