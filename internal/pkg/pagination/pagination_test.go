package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFromContextDefaults(t *testing.T) {
	q := FromContext(queryContext(""), 20)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.Size)
}

func TestFromContextClampsInvalidValues(t *testing.T) {
	q := FromContext(queryContext("page=-3&pageSize=0"), 20)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.Size)

	q = FromContext(queryContext("page=abc&pageSize=xyz"), 15)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 15, q.Size)

	q = FromContext(queryContext("pageSize=100000"), 20)
	assert.Equal(t, MaxSize, q.Size)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Query{Page: 1, Size: 10}.Offset())
	assert.Equal(t, 40, Query{Page: 5, Size: 10}.Offset())
}

func TestMetaCeilingMath(t *testing.T) {
	meta := Query{Page: 2, Size: 10}.Meta(21)
	assert.Equal(t, int64(21), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.PageSize)

	assert.Equal(t, 0, Query{Page: 1, Size: 10}.Meta(0).TotalPages)
	assert.Equal(t, 1, Query{Page: 1, Size: 10}.Meta(10).TotalPages)
	assert.Equal(t, 2, Query{Page: 1, Size: 10}.Meta(11).TotalPages)
}
