package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/orders/5", nil)
	handler(c)
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_FirstMatchingMapperWins(t *testing.T) {
	sentinel := stderrors.New("gone")
	responder := NewChainedResponder("https://logitrack.example",
		func(err error) (ProblemDetail, bool) { return ProblemDetail{}, false },
		func(err error) (ProblemDetail, bool) {
			if stderrors.Is(err, sentinel) {
				return ErrNotFound.WithDetail(err.Error()), true
			}
			return ProblemDetail{}, false
		},
	)

	rec, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, sentinel) })
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "https://logitrack.example"+TypeNotFound, problem.Type)
	assert.Equal(t, "/api/orders/5", problem.Instance)
}

func TestChainedResponder_FallsBackToInternal(t *testing.T) {
	responder := NewChainedResponder("")
	rec, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, stderrors.New("boom")) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "boom", problem.Detail)
}

func TestWithExtension_DoesNotMutateTemplate(t *testing.T) {
	_ = NewUnknownItemsProblem("missing", []int64{7})
	assert.Nil(t, ErrUnprocessable.Extensions)

	problem := NewValidationProblem(map[string]string{"orderId": "out of range"}).WithExtension("hint", "x")
	assert.Len(t, problem.Extensions, 2)
	assert.Nil(t, ErrValidation.Extensions)
}
