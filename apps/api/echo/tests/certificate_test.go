package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/fluidlab/core/certificate"
	"github.com/trezcool/fluidlab/core/quiz"
	"github.com/trezcool/fluidlab/services/email"
	"github.com/trezcool/fluidlab/tests"
)

func Test_certificateApi(t *testing.T) {
	emailsvc.ResetSentMessages()
	app, svcs := setup(t)

	banks, err := quiz.LoadBanks()
	require.NoError(t, err)
	bernoulli := testutil.CompleteQuiz(t, svcs.Quiz, banks, "bernoulli", 2)
	viscosity := testutil.CompleteQuiz(t, svcs.Quiz, banks, "viscosity", 4)

	tests := []httpTest{
		{
			name: "required fields", method: http.MethodPost, path: "/v1/certificates", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"recipient_name": "this field is required", "experiment_id": "this field is required"}`),
		},
		{
			name: "unknown experiment", method: http.MethodPost, path: "/v1/certificates",
			body:     []byte(`{"recipient_name": "Ada", "experiment_id": "alchemy"}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"experiment_id": "experiment not found"}`),
		},
		{
			name: "attempt of another experiment", method: http.MethodPost, path: "/v1/certificates",
			body: marshallObj(t, certificate.NewCertificate{
				RecipientName: "Ada", ExperimentID: "bernoulli", AttemptID: viscosity.AttemptID,
			}),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"attempt_id": "quiz attempt belongs to another experiment"}`),
		},
		{
			name: "unknown certificate", path: "/v1/certificates/missing",
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "certificate not found"}),
		},
	}
	runHTTPTests(t, app, tests)

	var cert certificate.Certificate
	rec := do(t, app, http.MethodPost, "/v1/certificates", certificate.NewCertificate{
		RecipientName:  "  Ada Lovelace ",
		RecipientEmail: "ada@test.cd",
		ExperimentID:   "bernoulli",
		AttemptID:      bernoulli.AttemptID,
	}, &cert)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Ada Lovelace", cert.RecipientName)
	assert.Equal(t, 2, cert.Score)
	assert.Equal(t, 3, cert.Total)
	assert.Equal(t, "Bernoulli'sPrinciple_Certificate.pdf", cert.Filename)

	sent := emailsvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@test.cd", sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "Ada Lovelace")
	assert.Contains(t, sent[0].HTMLContent, "Bernoulli")
	assert.Equal(t, cert.ID, sent[0].CustomArgs["certificate_id"])

	var got certificate.Certificate
	rec = do(t, app, http.MethodGet, "/v1/certificates/"+cert.ID, nil, &got)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cert.ID, got.ID)
	assert.Equal(t, cert.AttemptID, got.AttemptID)
}
