package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askchem/askchem/internal/application/export"
	"github.com/askchem/askchem/internal/application/tutor"
	"github.com/askchem/askchem/internal/dispatch"
	"github.com/askchem/askchem/internal/domain/answer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubEngine struct {
	result dispatch.Result
}

func (e *stubEngine) Dispatch(dispatch.Request) dispatch.Result { return e.result }

func answeredDispatch() dispatch.Result {
	a := answer.FromResult(&answer.ReactionResult{
		Reaction:   "CH3-CH=CH2 + HBr -> CH3-CHBr-CH3",
		Product:    "2-Bromopropane",
		Notes:      "Markovnikov addition across the double bond.",
		Tip:        "H goes to the carbon with more hydrogens.",
		Mistake:    "Placing Br on the terminal carbon.",
		Steps:      []string{"Protonate the alkene", "Bromide attacks the 2° carbocation"},
		TopicTags:  []string{"alkenes"},
		Confidence: 0.97,
	})
	r := dispatch.Result{
		Kind:         dispatch.KindAnswered,
		QuestionType: "predict_product",
		SolverName:   "markovnikov",
		TopicTags:    []string{"alkenes"},
		Answer:       a,
	}
	r.Rendered = answer.Render(answer.RenderInput{
		Question:     "What happens when propene reacts with HBr?",
		QuestionType: "predict_product",
		Mode:         "NEET",
	}, a)
	return r
}

func newQuestionRouter(result dispatch.Result, maxLen int) *gin.Engine {
	svc := tutor.NewService(&stubEngine{result: result}, nil, tutor.Options{})
	h := NewQuestionHandler(svc, export.NewBuilder("en"), maxLen, nil)
	r := gin.New()
	r.POST("/questions/ask", h.Ask)
	r.POST("/questions/export", h.Export)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAskAnswered(t *testing.T) {
	r := newQuestionRouter(answeredDispatch(), 0)

	w := postJSON(t, r, "/questions/ask", `{"question":"What happens when propene reacts with HBr?","mode":"NEET"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, "answered", got["kind"])
	assert.Equal(t, "markovnikov", got["solver"])
	assert.NotEmpty(t, got["request_id"])

	ans, ok := got["answer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2-Bromopropane", ans["final_answer"])
	assert.Nil(t, ans["error"])

	final, ok := ans["final"].(map[string]interface{})
	require.True(t, ok)
	sections, ok := final["sections"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, ans["final_answer"], sections["final_answer"], "flat and nested views agree")

	rendered, ok := got["rendered"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "FULL", rendered["decision"])
}

func TestAskOutOfDomainPayload(t *testing.T) {
	r := newQuestionRouter(dispatch.Result{Kind: dispatch.KindOutOfDomain, QuestionType: "unknown"}, 0)

	w := postJSON(t, r, "/questions/ask", `{"question":"integrate x^2 dx"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "out_of_domain", got["kind"])
	assert.Equal(t, "QST_001", got["code"])
	assert.NotEmpty(t, got["message"])
	assert.NotContains(t, got, "answer")
	assert.NotContains(t, got, "rendered")
}

func TestAskBlankQuestionRejected(t *testing.T) {
	r := newQuestionRouter(answeredDispatch(), 0)

	for _, body := range []string{`{}`, `{"question":"   "}`} {
		w := postJSON(t, r, "/questions/ask", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var got ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "COMMON_008", got.Error.Code)
	}
}

func TestAskQuestionTooLong(t *testing.T) {
	r := newQuestionRouter(answeredDispatch(), 10)

	w := postJSON(t, r, "/questions/ask", `{"question":"this question is longer than ten bytes"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "QST_002", got.Error.Code)
}

func TestAskInvalidMode(t *testing.T) {
	r := newQuestionRouter(answeredDispatch(), 0)

	w := postJSON(t, r, "/questions/ask", `{"question":"propene + HBr","mode":"IIT"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "MST_003", got.Error.Code)
}

func TestExportAnswered(t *testing.T) {
	r := newQuestionRouter(answeredDispatch(), 0)

	w := postJSON(t, r, "/questions/export", `{"question":"What happens when propene reacts with HBr?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "What happens when propene reacts with HBr?", got["title"])
	assert.Equal(t, "en", got["language"])
	assert.NotEmpty(t, got["date"])
	assert.NotEmpty(t, got["explanation"])
}

func TestExportRejectsUnanswerable(t *testing.T) {
	r := newQuestionRouter(dispatch.Result{
		Kind:         dispatch.KindNoMatch,
		QuestionType: "concept",
		Answer:       answer.NoMatch(),
	}, 0)

	w := postJSON(t, r, "/questions/export", `{"question":"mole concept"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "DSP_001", got.Error.Code)
}
