package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/fluidlab/core/lab"
)

func Test_labApi_start(t *testing.T) {
	app, _ := setup(t)

	tests := []httpTest{
		{
			name: "experiment_id required", method: http.MethodPost, path: "/v1/labs", body: []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"experiment_id": "this field is required"}`),
		},
		{
			name: "blank experiment_id", method: http.MethodPost, path: "/v1/labs", body: []byte(`{"experiment_id": "  "}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"experiment_id": "this field is required"}`),
		},
		{
			name: "no workflow", method: http.MethodPost, path: "/v1/labs", body: []byte(`{"experiment_id": "bernoulli"}`),
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "experiment has no lab workflow"}),
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/v1/labs", body: []byte(`{"experiment_id": `),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown run", path: "/v1/labs/missing",
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "lab run not found"}),
		},
	}
	runHTTPTests(t, app, tests)

	var view lab.RunView
	rec := do(t, app, http.MethodPost, "/v1/labs", lab.StartRequest{ExperimentID: "Mass-Density"}, &view)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, lab.MassDensity, view.ExperimentID)
	assert.Equal(t, lab.InProgress, view.State)
	assert.Equal(t, lab.DryingOven, view.CurrentStation)
	assert.Len(t, view.Stations, 4)
}

func Test_labApi_workflow(t *testing.T) {
	app, _ := setup(t)

	var view lab.RunView
	rec := do(t, app, http.MethodPost, "/v1/labs", lab.StartRequest{ExperimentID: lab.MassDensity}, &view)
	require.Equal(t, http.StatusCreated, rec.Code)
	base := "/v1/labs/" + view.ID
	station := func(kind string) string { return base + "/stations/" + kind }

	tests := []httpTest{
		{
			name: "unknown station", method: http.MethodPost, path: station("sink") + "/hover",
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "station not found"}),
		},
		{
			name: "locked station", method: http.MethodPost, path: station("weighing-scale") + "/drop", body: []byte(`{"item": "soil_sample"}`),
			wantCode: http.StatusConflict, wantData: marshallObj(t, httpErr{Error: "complete the previous stations first"}),
		},
		{
			name: "unknown item", method: http.MethodPost, path: station("drying_oven") + "/drop", body: []byte(`{"item": "beaker"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "oven not loaded", method: http.MethodPost, path: base + "/oven", body: []byte(`{"temperature": 105, "time": 2}`),
			wantCode: http.StatusConflict, wantData: marshallObj(t, httpErr{Error: "place the soil sample in the drying oven first"}),
		},
		{name: "hover oven", method: http.MethodPost, path: station("drying_oven") + "/hover", wantCode: http.StatusOK},
		{name: "drop sample", method: http.MethodPost, path: station("drying_oven") + "/drop", body: []byte(`{"item": "soil_sample"}`), wantCode: http.StatusOK},
		{
			name: "wrong oven parameters", method: http.MethodPost, path: base + "/oven", body: []byte(`{"temperature": 90, "time": 3}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"temperature": "the oven must be set to 105°C", "time": "the sample must dry for 2 hours"}`),
		},
		{name: "oven parameters", method: http.MethodPost, path: base + "/oven", body: []byte(`{"temperature": 105, "time": 2}`), wantCode: http.StatusOK},
	}
	runHTTPTests(t, app, tests)

	waitFor := func(kind lab.StationKind) {
		t.Helper()
		require.Eventually(t, func() bool {
			var v lab.RunView
			do(t, app, http.MethodGet, base, nil, &v)
			return v.CurrentStation == kind
		}, time.Second, 2*time.Millisecond)
	}
	waitFor(lab.WeighingScale)

	for _, step := range []struct {
		kind lab.StationKind
		item lab.Item
		next lab.StationKind
	}{
		{lab.WeighingScale, lab.SoilSample, lab.WaterTap},
		{lab.WaterTap, lab.Pycnometer, lab.CoolingArea},
	} {
		rec = do(t, app, http.MethodPost, station(string(step.kind))+"/hover", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		rec = do(t, app, http.MethodPost, station(string(step.kind))+"/drop", lab.DropRequest{Item: step.item}, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		waitFor(step.next)
	}

	rec = do(t, app, http.MethodPost, station("cooling_area")+"/hover", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, app, http.MethodPost, station("cooling_area")+"/drop", lab.DropRequest{Item: lab.Pycnometer}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Eventually(t, func() bool {
		var v lab.RunView
		do(t, app, http.MethodGet, base, nil, &v)
		return v.State == lab.Done
	}, time.Second, 2*time.Millisecond)

	rec = do(t, app, http.MethodDelete, base, nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, app, http.MethodPost, base+"/reset", nil, &view)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, lab.InProgress, view.State)
	assert.Equal(t, lab.DryingOven, view.CurrentStation)
}

func Test_labApi_cancel(t *testing.T) {
	app, _ := setup(t)

	var view lab.RunView
	do(t, app, http.MethodPost, "/v1/labs", lab.StartRequest{ExperimentID: lab.MassDensity}, &view)
	base := "/v1/labs/" + view.ID

	rec := do(t, app, http.MethodDelete, base, nil, &view)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, lab.Cancelled, view.State)

	rec = do(t, app, http.MethodGet, base, nil, &view)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, lab.Cancelled, view.State)

	rec = do(t, app, http.MethodPost, base+"/stations/drying_oven/hover", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
