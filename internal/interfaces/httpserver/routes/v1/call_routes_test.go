package v1_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-center-server/internal/domain/call"
	"call-center-server/internal/domain/webhook"
	"call-center-server/internal/interfaces/httpserver/handlers"
	v1 "call-center-server/internal/interfaces/httpserver/routes/v1"
)

type fakeCallService struct {
	handleIncomingFn func(ctx context.Context, callID, from, to, flowID string) (*call.Session, error)
	makeOutboundFn   func(ctx context.Context, to, flowID string, callContext map[string]string) (*call.Session, error)
	processSpeechFn  func(ctx context.Context, callID string, audio []byte, language string) (*call.TurnResult, error)
	processDTMFFn    func(ctx context.Context, callID, digits string) (*call.TurnResult, error)
	endCallFn        func(ctx context.Context, callID, reason string) (*call.Session, error)
	getSessionFn     func(ctx context.Context, callID string) (*call.Session, error)
	listActiveFn     func(ctx context.Context) ([]*call.Session, error)
}

func (f *fakeCallService) HandleIncomingCall(ctx context.Context, callID, from, to, flowID string) (*call.Session, error) {
	return f.handleIncomingFn(ctx, callID, from, to, flowID)
}

func (f *fakeCallService) MakeOutboundCall(ctx context.Context, to, flowID string, callContext map[string]string) (*call.Session, error) {
	return f.makeOutboundFn(ctx, to, flowID, callContext)
}

func (f *fakeCallService) ProcessSpeech(ctx context.Context, callID string, audio []byte, language string) (*call.TurnResult, error) {
	return f.processSpeechFn(ctx, callID, audio, language)
}

func (f *fakeCallService) ProcessDTMF(ctx context.Context, callID, digits string) (*call.TurnResult, error) {
	return f.processDTMFFn(ctx, callID, digits)
}

func (f *fakeCallService) EndCall(ctx context.Context, callID, reason string) (*call.Session, error) {
	return f.endCallFn(ctx, callID, reason)
}

func (f *fakeCallService) GetSession(ctx context.Context, callID string) (*call.Session, error) {
	return f.getSessionFn(ctx, callID)
}

func (f *fakeCallService) ListActive(ctx context.Context) ([]*call.Session, error) {
	return f.listActiveFn(ctx)
}

func sampleSession(callID string) *call.Session {
	return &call.Session{
		CallID:    callID,
		Direction: call.DirectionInbound,
		From:      "+15550000001",
		To:        "+15551234567",
		Status:    call.StatusInProgress,
		FlowID:    "default",
		StartedAt: time.Now(),
		NextAction: &call.Action{
			Type:      call.ActionListen,
			TimeoutMS: 5000,
		},
	}
}

func newTestRouter(service call.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	provider := handlers.NewProvider(service, webhook.NewRegistry(zerolog.Nop()))
	v1.NewRoutes(provider).Register(engine)
	return engine
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestInboundCallRoute(t *testing.T) {
	service := &fakeCallService{
		handleIncomingFn: func(ctx context.Context, callID, from, to, flowID string) (*call.Session, error) {
			assert.Equal(t, "+15550000001", from)
			return sampleSession("call_in"), nil
		},
	}
	router := newTestRouter(service)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/inbound", gin.H{
		"from": "+15550000001",
		"to":   "+15551234567",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		ID     string `json:"id"`
		Object string `json:"object"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "call_in", resp.ID)
	assert.Equal(t, "call.session", resp.Object)
	assert.Equal(t, "in-progress", resp.Status)
}

func TestInboundCallRoute_MissingFields(t *testing.T) {
	router := newTestRouter(&fakeCallService{})

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/inbound", gin.H{"to": "+15551234567"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInboundCallRoute_RateLimited(t *testing.T) {
	service := &fakeCallService{
		handleIncomingFn: func(ctx context.Context, callID, from, to, flowID string) (*call.Session, error) {
			return nil, call.ErrTooManyCalls
		},
	}
	router := newTestRouter(service)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/inbound", gin.H{
		"from": "+15550000001",
		"to":   "+15551234567",
	})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestSpeechRoute(t *testing.T) {
	service := &fakeCallService{
		processSpeechFn: func(ctx context.Context, callID string, audio []byte, language string) (*call.TurnResult, error) {
			assert.Equal(t, "call_1", callID)
			assert.Equal(t, []byte("raw audio"), audio)
			return &call.TurnResult{Action: call.TurnActionContinue, Message: "Got it."}, nil
		},
	}
	router := newTestRouter(service)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/call_1/speech", gin.H{
		"audio": base64.StdEncoding.EncodeToString([]byte("raw audio")),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Action  string `json:"action"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, call.TurnActionContinue, resp.Action)
	assert.Equal(t, "Got it.", resp.Message)
}

func TestSpeechRoute_InvalidBase64(t *testing.T) {
	router := newTestRouter(&fakeCallService{})

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/call_1/speech", gin.H{"audio": "!!! not base64 !!!"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSpeechRoute_UnknownCall(t *testing.T) {
	service := &fakeCallService{
		processSpeechFn: func(ctx context.Context, callID string, audio []byte, language string) (*call.TurnResult, error) {
			return nil, call.ErrSessionNotFound
		},
	}
	router := newTestRouter(service)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/call_x/speech", gin.H{
		"audio": base64.StdEncoding.EncodeToString([]byte("audio")),
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSpeechRoute_TerminatedCallReportsNotFound(t *testing.T) {
	service := &fakeCallService{
		processSpeechFn: func(ctx context.Context, callID string, audio []byte, language string) (*call.TurnResult, error) {
			return nil, call.ErrSessionTerminated
		},
	}
	router := newTestRouter(service)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/call_done/speech", gin.H{
		"audio": base64.StdEncoding.EncodeToString([]byte("audio")),
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDTMFRoute(t *testing.T) {
	service := &fakeCallService{
		processDTMFFn: func(ctx context.Context, callID, digits string) (*call.TurnResult, error) {
			assert.Equal(t, "1#", digits)
			return &call.TurnResult{Action: call.TurnActionContinue, Message: "Selected."}, nil
		},
	}
	router := newTestRouter(service)

	rec := doJSON(t, router, http.MethodPost, "/v1/calls/call_1/dtmf", gin.H{"digits": "1#"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/calls/call_1/dtmf", gin.H{"digits": "12a"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndDeleteCallRoutes(t *testing.T) {
	service := &fakeCallService{
		getSessionFn: func(ctx context.Context, callID string) (*call.Session, error) {
			if callID != "call_1" {
				return nil, call.ErrSessionNotFound
			}
			return sampleSession(callID), nil
		},
		endCallFn: func(ctx context.Context, callID, reason string) (*call.Session, error) {
			sess := sampleSession(callID)
			sess.Status = call.StatusCompleted
			return sess, nil
		},
	}
	router := newTestRouter(service)

	rec := doJSON(t, router, http.MethodGet, "/v1/calls/call_1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/calls/call_missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/v1/calls/call_1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
}

func TestListCallsRoute(t *testing.T) {
	service := &fakeCallService{
		listActiveFn: func(ctx context.Context) ([]*call.Session, error) {
			return []*call.Session{sampleSession("call_1"), sampleSession("call_2")}, nil
		},
	}
	router := newTestRouter(service)

	rec := doJSON(t, router, http.MethodGet, "/v1/calls", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Object string `json:"object"`
		Data   []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "list", resp.Object)
	assert.Len(t, resp.Data, 2)
}

func TestWebhookRoutes(t *testing.T) {
	router := newTestRouter(&fakeCallService{})

	rec := doJSON(t, router, http.MethodPost, "/v1/webhooks", gin.H{
		"url":    "https://example.com/hook",
		"events": []string{"call.started", "call.ended"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = doJSON(t, router, http.MethodPost, "/v1/webhooks", gin.H{
		"url":    "https://example.com/hook",
		"events": []string{"call.imagined"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/webhooks/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/webhooks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/v1/webhooks/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/webhooks/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
