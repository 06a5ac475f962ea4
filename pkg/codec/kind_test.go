package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/flowkit/ordertree/pkg/codec"
)

func TestKindSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, KindUint8.Size())
	assert.Equal(t, 1, KindInt8.Size())
	assert.Equal(t, 1, KindBool.Size())
	assert.Equal(t, 2, KindUint16.Size())
	assert.Equal(t, 2, KindInt16.Size())
	assert.Equal(t, 4, KindUint32.Size())
	assert.Equal(t, 4, KindInt32.Size())
	assert.Equal(t, 4, KindFloat32.Size())
	assert.Equal(t, 8, KindUint64.Size())
	assert.Equal(t, 8, KindInt64.Size())
	assert.Equal(t, 8, KindFloat64.Size())
	assert.Equal(t, 8, KindDateTime.Size())
	assert.Equal(t, 8, KindDuration.Size())
	assert.Equal(t, 16, KindGUID.Size())
	assert.Equal(t, 16, KindDecimal.Size())
	assert.Equal(t, -1, KindString.Size())
	assert.Equal(t, -1, KindBytes.Size())
}
