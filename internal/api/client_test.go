package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basket-cli/basket/internal/model"
)

// recordingObserver captures error notifications for assertions.
type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) APIError(op, msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, op+": "+msg)
}

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.calls)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *recordingObserver) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	obs := &recordingObserver{}
	return NewClient(srv.URL, 5*time.Second, nil, obs), obs
}

func TestLogin_Success(t *testing.T) {
	client, obs := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "maria", body["username"])
		require.Equal(t, "secret", body["password"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  map[string]string{"_id": "u1", "name": "Maria", "username": "maria"},
		})
	}))

	res, err := client.Login(context.Background(), "maria", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", res.Token)
	require.NotNil(t, res.User)
	assert.Equal(t, "maria", res.User.Username)
	assert.Zero(t, obs.count())
}

// A 200 with an HTML body is a malformed response, not a success.
func TestHTMLBody_IsMalformed(t *testing.T) {
	client, obs := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<!DOCTYPE html><html><body>oops</body></html>"))
	}))

	_, err := client.Me(context.Background(), "tok")
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, 1, obs.count())
}

func TestServerError_CarriesMessage(t *testing.T) {
	client, obs := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Group not found"}`))
	}))

	_, err := client.GetGroup(context.Background(), "tok", "nope")
	se := AsServerError(err)
	require.NotNil(t, se)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, "Group not found", se.Message)
	assert.Equal(t, 1, obs.count())
}

// A message-less error body falls back to the HTTP status text.
func TestServerError_StatusTextFallback(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{}`))
	}))

	_, err := client.Me(context.Background(), "bad")
	se := AsServerError(err)
	require.NotNil(t, se)
	assert.Equal(t, "Unauthorized", se.Message)
}

func TestUnparseableBody_IsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "garbage on 200", status: http.StatusOK, body: "not json at all"},
		{name: "garbage on 500", status: http.StatusInternalServerError, body: "boom"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client, obs := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(test.status)
				w.Write([]byte(test.body))
			}))

			_, err := client.Me(context.Background(), "tok")
			require.ErrorIs(t, err, ErrMalformedResponse)
			assert.Equal(t, 1, obs.count())
		})
	}
}

// Transport failures reject the call but never reach the observer.
func TestTransportFailure_NotNotified(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	obs := &recordingObserver{}
	client := NewClient(srv.URL, time.Second, nil, obs)

	_, err := client.MyGroups(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Nil(t, AsServerError(err))
	assert.Zero(t, obs.count())
}

func TestAuthHeaderAndRequestID(t *testing.T) {
	var gotToken, gotReqID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("x-auth-token")
		gotReqID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))

	_, err := client.MyGroups(context.Background(), "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", gotToken)
	assert.NotEmpty(t, gotReqID)
}

// Creating a group and then listing groups reflects the new group.
func TestCreateGroup_ThenList(t *testing.T) {
	var (
		mu     sync.Mutex
		groups []model.Group
	)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /groups", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		g := model.Group{ID: "g1", Name: body["name"], CreatedAt: time.Now()}
		mu.Lock()
		groups = append(groups, g)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(g)
	})
	mux.HandleFunc("GET /groups", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(groups)
	})

	client, _ := newTestClient(t, mux)
	ctx := context.Background()

	created, err := client.CreateGroup(ctx, "tok", "Groceries", "")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", created.Name)

	listed, err := client.MyGroups(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Groceries", listed[0].Name)
}

func TestSearchUsers_EscapesQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))

	_, err := client.SearchUsers(context.Background(), "tok", "a b&c")
	require.NoError(t, err)
	assert.Equal(t, "a b&c", gotQuery)
}
