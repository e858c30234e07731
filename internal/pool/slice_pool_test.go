package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetByteSlice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetByteSlice(100)
		defer cleanup()

		require.Equal(t, 100, len(slice))
		require.GreaterOrEqual(t, cap(slice), 100)
	})

	t.Run("reuses pooled slice when capacity sufficient", func(t *testing.T) {
		slice1, cleanup1 := GetByteSlice(50)
		ptr1 := &slice1[0]
		cleanup1()

		slice2, cleanup2 := GetByteSlice(50)
		defer cleanup2()
		ptr2 := &slice2[0]

		require.Equal(t, ptr1, ptr2, "should reuse same underlying array")
	})

	t.Run("allocates new slice when capacity insufficient", func(t *testing.T) {
		_, cleanup1 := GetByteSlice(10)
		cleanup1()

		slice2, cleanup2 := GetByteSlice(1 << 20)
		defer cleanup2()

		require.Equal(t, 1<<20, len(slice2))
		require.GreaterOrEqual(t, cap(slice2), 1<<20)
	})

	t.Run("cleanup returns slice to pool", func(t *testing.T) {
		slice, cleanup := GetByteSlice(100)
		require.NotNil(t, slice)

		cleanup()
	})

	t.Run("zero size is valid", func(t *testing.T) {
		slice, cleanup := GetByteSlice(0)
		defer cleanup()

		require.Equal(t, 0, len(slice))
	})
}
