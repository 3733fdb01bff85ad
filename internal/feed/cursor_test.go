package feed

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/xiangyu-lab/discover-feed/pkg/errs"
)

func TestCursorRoundTrip(t *testing.T) {
    score := 19.2
    nano := int64(1700000000000000000)
    token := EncodeCursor(Cursor{Score: &score, CreatedAt: &nano, ID: "c42"})

    got, err := DecodeCursor(token, OrderHot)
    require.NoError(t, err)
    require.NotNil(t, got)
    assert.Equal(t, score, *got.Score)
    assert.Equal(t, nano, *got.CreatedAt)
    assert.Equal(t, "c42", got.ID)
}

func TestDecodeCursorEmptyMeansFirstPage(t *testing.T) {
    got, err := DecodeCursor("", OrderHot)
    require.NoError(t, err)
    assert.Nil(t, got)
}

func TestDecodeCursorMalformed(t *testing.T) {
    // 乱码不是“第一页”，必须显式报参数错误
    for _, token := range []string{"!!!not-base64!!!", "bm90LWpzb24", "e30"} {
        _, err := DecodeCursor(token, OrderHot)
        assert.True(t, errs.IsInvalidArgument(err), "token %q", token)
    }
}

func TestDecodeCursorMissingKeysForOrder(t *testing.T) {
    nano := int64(1)
    token := EncodeCursor(Cursor{CreatedAt: &nano, ID: "c1"}) // 缺 score

    _, err := DecodeCursor(token, OrderHot)
    assert.True(t, errs.IsInvalidArgument(err))

    // 同一游标对 latest 排序是合法的
    got, err := DecodeCursor(token, OrderLatest)
    require.NoError(t, err)
    assert.Equal(t, "c1", got.ID)
}

func TestDecodeCursorNearbyOrders(t *testing.T) {
    d := 3.5
    s := 12.0
    token := EncodeCursor(Cursor{Distance: &d, ID: "c1"})
    _, err := DecodeCursor(token, OrderNearbyDistance)
    require.NoError(t, err)
    _, err = DecodeCursor(token, OrderNearbyHot) // 缺 score
    assert.True(t, errs.IsInvalidArgument(err))

    token = EncodeCursor(Cursor{Distance: &d, Score: &s, ID: "c1"})
    _, err = DecodeCursor(token, OrderNearbyHot)
    require.NoError(t, err)
}
