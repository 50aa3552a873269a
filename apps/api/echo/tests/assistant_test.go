package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/fluidlab/core/assistant"
)

func Test_assistantApi_explain(t *testing.T) {
	app, _ := setup(t)

	tests := []httpTest{
		{
			name: "text required", method: http.MethodPost, path: "/v1/assistant/explain", body: []byte(`{"text": ""}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"text": "this field is required"}`),
		},
		{
			name: "blank text", method: http.MethodPost, path: "/v1/assistant/explain", body: []byte(`{"text": "   "}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"text": "this field cannot be blank"}`),
		},
	}
	runHTTPTests(t, app, tests)

	var exp assistant.Explanation
	rec := do(t, app, http.MethodPost, "/v1/assistant/explain", assistant.ExplainRequest{Text: "viscosity"}, &exp)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "viscosity", exp.Topic)
	assert.NotEmpty(t, exp.Definition)
}

func Test_assistantApi_panel(t *testing.T) {
	app, _ := setup(t)

	var view assistant.PanelView
	rec := do(t, app, http.MethodPost, "/v1/assistant/panels", nil, &view)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, assistant.PanelIdle, view.State)
	base := "/v1/assistant/panels/" + view.ID

	tests := []httpTest{
		{
			name: "open without selection", method: http.MethodPost, path: base + "/open",
			wantCode: http.StatusConflict, wantData: marshallObj(t, httpErr{Error: "select a term first"}),
		},
		{
			name: "unknown panel", path: "/v1/assistant/panels/missing",
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "assistant panel not found"}),
		},
	}
	runHTTPTests(t, app, tests)

	rec = do(t, app, http.MethodPost, base+"/selection", assistant.SelectionRequest{Text: "density"}, nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	rec = do(t, app, http.MethodPost, base+"/selection", assistant.SelectionRequest{Text: "Bernoulli"}, nil)
	require.Equal(t, http.StatusAccepted, rec.Code)

	// the last selection wins once the debounce window elapsed
	require.Eventually(t, func() bool {
		var v assistant.PanelView
		do(t, app, http.MethodGet, base, nil, &v)
		return v.State == assistant.PanelSelected && v.Selection == "Bernoulli"
	}, time.Second, 5*time.Millisecond)

	rec = do(t, app, http.MethodPost, base+"/open", nil, &view)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, assistant.PanelReady, view.State)
	require.NotNil(t, view.Explanation)
	assert.Equal(t, "bernoulli", view.Explanation.Topic)

	rec = do(t, app, http.MethodDelete, base+"/selection", nil, &view)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, assistant.PanelIdle, view.State)

	rec = do(t, app, http.MethodDelete, base, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, app, http.MethodGet, base, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
