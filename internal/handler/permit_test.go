package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cemetery/internal/middleware"
	"cemetery/internal/model"
	"cemetery/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPermitSubmitter struct {
	err         error
	submittedBy string
}

func (s *stubPermitSubmitter) Submit(ctx context.Context, permit *model.PermitSubmission, submittedBy string) error {
	if s.err != nil {
		return s.err
	}
	s.submittedBy = submittedBy
	permit.ID = 42
	permit.SubmittedBy = submittedBy
	permit.ReceivedAt = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return nil
}

func newPermitRouter(s PermitSubmitter) *gin.Engine {
	store := middleware.NewKeyStore([]middleware.APIKey{
		{Name: "permits-portal", Key: "k1", Permissions: []string{"permits:write"}},
	})
	r := gin.New()
	r.POST("/external/permits",
		middleware.RequireAPIKey(store, "permits:write", zap.NewNop()),
		NewPermitHandler(s, zap.NewNop()).Submit)
	return r
}

const validPermit = `{
	"externalId": "PRM-2026-0001",
	"permitType": "burial",
	"applicantName": "Jose Santos",
	"deceasedFirstName": "Maria",
	"deceasedLastName": "Santos",
	"dateOfDeath": "2026-09-30",
	"cemeteryId": 3
}`

func postPermit(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequestWithHeaders(t, r, http.MethodPost, "/external/permits", body,
		map[string]string{middleware.APIKeyHeader: "k1"})
}

func TestPermitHandler_Submit(t *testing.T) {
	stub := &stubPermitSubmitter{}
	w := postPermit(t, newPermitRouter(stub), validPermit)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "permits-portal", stub.submittedBy)

	var body model.PermitSubmission
	decode(t, w, &body)
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "PRM-2026-0001", body.ExternalID)
	assert.Equal(t, "permits-portal", body.SubmittedBy)
}

func TestPermitHandler_RequiresKey(t *testing.T) {
	w := doRequest(t, newPermitRouter(&stubPermitSubmitter{}), http.MethodPost, "/external/permits", validPermit)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPermitHandler_Validation(t *testing.T) {
	tests := map[string]string{
		"missing fields":   `{"externalId": "PRM-1"}`,
		"unknown type":     `{"externalId": "PRM-1", "permitType": "party", "applicantName": "A", "deceasedFirstName": "B", "deceasedLastName": "C", "cemeteryId": 1}`,
		"bad date":         `{"externalId": "PRM-1", "permitType": "burial", "applicantName": "A", "deceasedFirstName": "B", "deceasedLastName": "C", "cemeteryId": 1, "dateOfDeath": "30/09/2026"}`,
		"bad email":        `{"externalId": "PRM-1", "permitType": "burial", "applicantName": "A", "applicantEmail": "nope", "deceasedFirstName": "B", "deceasedLastName": "C", "cemeteryId": 1}`,
		"invalid cemetery": `{"externalId": "PRM-1", "permitType": "burial", "applicantName": "A", "deceasedFirstName": "B", "deceasedLastName": "C", "cemeteryId": 0}`,
	}

	router := newPermitRouter(&stubPermitSubmitter{})
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := postPermit(t, router, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPermitHandler_Duplicate(t *testing.T) {
	stub := &stubPermitSubmitter{err: fmt.Errorf("permit PRM-2026-0001: %w", repository.ErrDuplicate)}
	w := postPermit(t, newPermitRouter(stub), validPermit)
	assert.Equal(t, http.StatusConflict, w.Code)
}
