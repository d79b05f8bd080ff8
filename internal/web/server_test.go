package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/healthy-heart/internal/config"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/Veraticus/healthy-heart/internal/storage"
	"github.com/Veraticus/healthy-heart/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-enough-length"

type testServer struct {
	db     *storage.SQLiteStorage
	mock   *engine.MockClassifier
	server *Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t).Storage
	mock := engine.NewMockClassifier(model.RiskHigh)
	srv, err := NewServer(engine.New(db, mock), config.ServerConfig{
		Address:    ":0",
		JWTSecret:  testSecret,
		SessionTTL: time.Hour,
	})
	require.NoError(t, err)

	return &testServer{db: db, mock: mock, server: srv}
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(w, req)
	return w
}

func (ts *testServer) postJSON(path string, body any, token string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return ts.do(req)
}

func (ts *testServer) postForm(path string, values url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return ts.do(req)
}

func (ts *testServer) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return ts.do(req)
}

// apiToken signs up and signs in username through the API.
func (ts *testServer) apiToken(t *testing.T, username string) string {
	t.Helper()

	w := ts.postJSON("/api/v1/signup", gin.H{"username": username, "password": "pw", "confirm": "pw"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.postJSON("/api/v1/signin", gin.H{"username": username, "password": "pw"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data tokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

// pageCookie signs up and signs in username through the HTML form.
func (ts *testServer) pageCookie(t *testing.T, username string) *http.Cookie {
	t.Helper()

	w := ts.postForm("/signup", url.Values{"username": {username}, "password": {"pw"}, "confirm": {"pw"}}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Successfully signed up!")

	w = ts.postForm("/signin", url.Values{"username": {username}, "password": {"pw"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			assert.True(t, c.HttpOnly)
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func sampleBody() gin.H {
	return gin.H{
		"age": 45, "sex": "male", "cp": "Typical angina", "trestbps": 120, "chol": 200,
		"thalach": 150, "exang": "No", "oldpeak": 1.0,
		"slope": "Flatsloping: minimal change(typical healthy heart)", "ca": 0, "thal": "normal",
	}
}

func sampleForm() url.Values {
	return url.Values{
		"age": {"45"}, "sex": {"male"}, "cp": {"Typical angina"}, "trestbps": {"120"}, "chol": {"200"},
		"thalach": {"150"}, "exang": {"No"}, "oldpeak": {"1.0"},
		"slope": {"Flatsloping: minimal change(typical healthy heart)"}, "ca": {"0"}, "thal": {"normal"},
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRun_TLS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.SetupTestDB(t).Storage

	srv, err := NewServer(engine.New(db, engine.NewMockClassifier(model.RiskLow)), config.ServerConfig{
		Address:    "127.0.0.1:0",
		JWTSecret:  testSecret,
		SessionTTL: time.Hour,
		TLS:        true,
		CertDir:    t.TempDir(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestAPI_SignUpAndSignIn(t *testing.T) {
	ts := newTestServer(t)
	ts.apiToken(t, "alice")

	tests := []struct {
		body       gin.H
		name       string
		path       string
		wantStatus int
	}{
		{
			name:       "duplicate sign-up",
			path:       "/api/v1/signup",
			body:       gin.H{"username": "alice", "password": "x", "confirm": "x"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "password mismatch",
			path:       "/api/v1/signup",
			body:       gin.H{"username": "bob", "password": "x", "confirm": "y"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing fields",
			path:       "/api/v1/signup",
			body:       gin.H{"username": "bob"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong password",
			path:       "/api/v1/signin",
			body:       gin.H{"username": "alice", "password": "nope"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown user",
			path:       "/api/v1/signin",
			body:       gin.H{"username": "ghost", "password": "pw"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.postJSON(tt.path, tt.body, "")
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestAPI_Predict(t *testing.T) {
	ts := newTestServer(t)
	token := ts.apiToken(t, "alice")

	t.Run("requires a token", func(t *testing.T) {
		w := ts.postJSON("/api/v1/predict", sampleBody(), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = ts.postJSON("/api/v1/predict", sampleBody(), "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns the label and encoded features", func(t *testing.T) {
		w := ts.postJSON("/api/v1/predict", sampleBody(), token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data assessmentResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.RiskHigh, resp.Data.Label)
		assert.Equal(t, "high", resp.Data.Risk)
		assert.Equal(t, model.RiskHigh.Message(), resp.Data.Message)
		assert.Equal(t, model.Disclaimer, resp.Data.Disclaimer)
		assert.NotEmpty(t, resp.Data.ID)
		assert.InDelta(t, 1.0, resp.Data.Features["slope_1"], 1e-12)
		assert.InDelta(t, 0.0, resp.Data.Features["cp_1"], 1e-12)
	})

	t.Run("rejects out of range vitals", func(t *testing.T) {
		body := sampleBody()
		body["age"] = 200
		w := ts.postJSON("/api/v1/predict", body, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "age must be between 1 and 120")
	})

	t.Run("rejects unknown labels", func(t *testing.T) {
		body := sampleBody()
		body["thal"] = "weird"
		w := ts.postJSON("/api/v1/predict", body, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("classifier failure", func(t *testing.T) {
		ts.mock.Err = errors.New("offline")
		defer func() { ts.mock.Err = nil }()

		w := ts.postJSON("/api/v1/predict", sampleBody(), token)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("history lists the stored submission", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := ts.do(req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []model.Submission `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "alice", resp.Data[0].Username)
		assert.Equal(t, 45, resp.Data[0].Input.Age)
	})
}

func TestAPI_Feedback(t *testing.T) {
	ts := newTestServer(t)
	token := ts.apiToken(t, "alice")

	w := ts.postJSON("/api/v1/feedback", gin.H{"rating": 0}, token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.postJSON("/api/v1/feedback", gin.H{"rating": 7}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.postJSON("/api/v1/feedback", gin.H{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	avg, count, err := ts.db.AverageRating(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.InDelta(t, 0.0, avg, 1e-12)
}

func TestAPI_StorageUnavailable(t *testing.T) {
	ts := newTestServer(t)
	token := ts.apiToken(t, "alice")
	require.NoError(t, ts.db.Close())

	w := ts.postJSON("/api/v1/signup", gin.H{"username": "bob", "password": "pw", "confirm": "pw"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// The user check fails too, so the token no longer authenticates.
	w = ts.postJSON("/api/v1/predict", sampleBody(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPages_SignedOutRedirects(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/history"} {
		w := ts.get(path, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/signin", w.Header().Get("Location"))
	}

	w := ts.get("/signin", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), model.AppTitle)
}

func TestPages_FormFlow(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.pageCookie(t, "alice")

	w := ts.get("/", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Signed in as <strong>alice</strong>")
	assert.Contains(t, body, model.CaptionVessels)
	assert.Contains(t, body, "Upsloping: better heart rate with excercise(uncommon)")

	w = ts.get("/signin", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code, "signed-in users skip the sign-in page")

	w = ts.postForm("/predict", sampleForm(), cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Warning! You have a high risk of getting a heart attack!")
	assert.Contains(t, w.Body.String(), "not a substitute for professional medical advice")

	w = ts.get("/history", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ">high<")

	w = ts.postForm("/feedback", url.Values{"rating": {"5"}}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for rating the app!")

	w = ts.postForm("/signout", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPages_Errors(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.pageCookie(t, "alice")

	w := ts.postForm("/signup", url.Values{"username": {"alice"}, "password": {"x"}, "confirm": {"x"}}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists. Please choose a different username.")

	w = ts.postForm("/signin", url.Values{"username": {"alice"}, "password": {"bad"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password.")
	assert.Empty(t, w.Result().Cookies())

	form := sampleForm()
	form.Set("chol", "1000")
	w = ts.postForm("/predict", form, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "chol must be between 1 and 999")
	assert.Contains(t, w.Body.String(), `value="1000"`, "entered values are kept")

	form.Set("age", "abc")
	w = ts.postForm("/predict", form, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
