package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/poseidoncap/refdata/pkg/config"
	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/store"
	"github.com/poseidoncap/refdata/pkg/token"
)

func bidDef() EntityDef[model.Bid] {
	return EntityDef[model.Bid]{
		Kind:  store.KindBid,
		ID:    func(b *model.Bid) uint { return b.ID },
		SetID: func(b *model.Bid, id uint) { b.ID = id },
	}
}

const validBidBody = `{"account": "acct-1", "bid_type": "BUY", "bid_quantity": 10.5}`

func TestHandleCreate(t *testing.T) {
	t.Run("valid record is created", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Create", mock.AnythingOfType("*model.Bid")).
			Run(func(args mock.Arguments) {
				args.Get(0).(*model.Bid).ID = 42
			}).
			Return(nil)

		handler := handleCreate(bidDef(), bidStore)

		req := requestWithIdentity("POST", "/bid", validBidBody, "alice", "user")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/bid/42", w.Header().Get("Location"))

		var created model.Bid
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, uint(42), created.ID)
		assert.Equal(t, "acct-1", created.Account)
		assert.Equal(t, "BUY", created.BidType)
	})

	t.Run("client-sent id is ignored", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Create", mock.MatchedBy(func(b *model.Bid) bool {
			return b.ID == 0
		})).Return(nil)

		handler := handleCreate(bidDef(), bidStore)

		body := `{"id": 999, "account": "acct-1", "bid_type": "BUY"}`
		req := requestWithIdentity("POST", "/bid", body, "alice", "user")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		bidStore.AssertExpectations(t)
	})

	t.Run("empty body is rejected before the store is touched", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()

		handler := handleCreate(bidDef(), bidStore)

		req := requestWithIdentity("POST", "/bid", "", "alice", "user")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		bidStore.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()

		handler := handleCreate(bidDef(), bidStore)

		req := requestWithIdentity("POST", "/bid", "{not json", "alice", "user")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		bidStore.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("validation failures name the offending fields", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()

		handler := handleCreate(bidDef(), bidStore)

		req := requestWithIdentity("POST", "/bid", `{"bid_quantity": -1}`, "alice", "user")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Errors map[string][]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Errors["Account"], "Account is required.")
		assert.Contains(t, resp.Errors["BidType"], "BidType is required.")
		assert.Contains(t, resp.Errors["BidQuantity"], "BidQuantity must be a positive value.")
		bidStore.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("store failure returns the fixed 500 body", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Create", mock.AnythingOfType("*model.Bid")).
			Return(errors.New("connection refused"))

		handler := handleCreate(bidDef(), bidStore)

		req := requestWithIdentity("POST", "/bid", validBidBody, "alice", "user")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "an unexpected error occurred"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestHandleGet(t *testing.T) {
	t.Run("existing record is returned", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Get", uint(7)).Return(&model.Bid{ID: 7, Account: "acct-1", BidType: "BUY"}, nil)

		handler := handleGet(bidDef(), bidStore)

		req := withMuxVars(requestWithIdentity("GET", "/bid/7", "", "alice", "user"), map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got model.Bid
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, uint(7), got.ID)
	})

	t.Run("missing record returns 404", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Get", uint(7)).Return(nil, store.ErrNotFound)

		handler := handleGet(bidDef(), bidStore)

		req := withMuxVars(requestWithIdentity("GET", "/bid/7", "", "alice", "user"), map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store failure returns 500", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Get", uint(7)).Return(nil, errors.New("connection refused"))

		handler := handleGet(bidDef(), bidStore)

		req := withMuxVars(requestWithIdentity("GET", "/bid/7", "", "alice", "user"), map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "an unexpected error occurred"}`, w.Body.String())
	})
}

func TestHandleList(t *testing.T) {
	t.Run("records are returned", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("List", 1000).Return([]model.Bid{
			{ID: 1, Account: "acct-1", BidType: "BUY"},
			{ID: 2, Account: "acct-2", BidType: "SELL"},
		}, nil)

		handler := handleList(bidDef(), bidStore, 1000)

		req := requestWithIdentity("GET", "/bid", "", "alice", "user")
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got []model.Bid
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 2)
	})

	t.Run("empty collection is an empty array, not 404", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("List", 1000).Return([]model.Bid(nil), nil)

		handler := handleList(bidDef(), bidStore, 1000)

		req := requestWithIdentity("GET", "/bid", "", "alice", "user")
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("store failure returns 500", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("List", 1000).Return(nil, errors.New("connection refused"))

		handler := handleList(bidDef(), bidStore, 1000)

		req := requestWithIdentity("GET", "/bid", "", "alice", "user")
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleUpdate(t *testing.T) {
	t.Run("record is overwritten with the path id", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Update", mock.MatchedBy(func(b *model.Bid) bool {
			return b.ID == 7 && b.Account == "acct-1"
		})).Return(nil)

		handler := handleUpdate(bidDef(), bidStore)

		req := withMuxVars(requestWithIdentity("PUT", "/bid/7", validBidBody, "alice", "user"), map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got model.Bid
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, uint(7), got.ID)
		bidStore.AssertExpectations(t)
	})

	t.Run("body id must match the path id", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()

		handler := handleUpdate(bidDef(), bidStore)

		body := `{"id": 8, "account": "acct-1", "bid_type": "BUY"}`
		req := withMuxVars(requestWithIdentity("PUT", "/bid/7", body, "alice", "user"), map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Errors map[string][]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Errors["Id"], "Id must match the id in the request path.")
		bidStore.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("missing record returns 404", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Update", mock.AnythingOfType("*model.Bid")).Return(store.ErrNotFound)

		handler := handleUpdate(bidDef(), bidStore)

		req := withMuxVars(requestWithIdentity("PUT", "/bid/7", validBidBody, "alice", "user"), map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleDelete(t *testing.T) {
	t.Run("deletion returns no content", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Delete", uint(7)).Return(nil)

		handler := handleDelete(bidDef(), bidStore)

		req := withMuxVars(requestWithIdentity("DELETE", "/bid/7", "", "admin", "admin"), map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("repeat deletion returns 404", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Delete", uint(7)).Return(store.ErrNotFound)

		handler := handleDelete(bidDef(), bidStore)

		req := withMuxVars(requestWithIdentity("DELETE", "/bid/7", "", "admin", "admin"), map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// newBidServer wires a bid store into a server with real routing and
// token middleware.
func newBidServer(bidStore *MockCrudStore[model.Bid]) *server.Server {
	s := &server.Server{
		Router: mux.NewRouter().UseEncodedPath(),
		Stores: server.Stores{Bids: bidStore},
		Tokens: token.NewManager([]byte("test-signing-key"), time.Hour, time.Hour),
		Config: &config.Config{APIListLimitMax: 1000},
	}
	RegisterBidEndpoints(s)
	return s
}

func bearerFor(t *testing.T, s *server.Server, username string, roles ...string) string {
	t.Helper()
	tokenStr, _, err := s.Tokens.Issue(username, roles, false)
	require.NoError(t, err)
	return "Bearer " + tokenStr
}

func TestCrudRouting(t *testing.T) {
	t.Run("reads require authentication", func(t *testing.T) {
		s := newBidServer(NewMockCrudStore[model.Bid]())

		req := httptest.NewRequest("GET", "/bid", nil)
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("the user role can create", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Create", mock.AnythingOfType("*model.Bid")).Return(nil)
		s := newBidServer(bidStore)

		req := httptest.NewRequest("POST", "/bid", strings.NewReader(validBidBody))
		req.Header.Set("Authorization", bearerFor(t, s, "alice", "user"))
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("the user role cannot delete", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		s := newBidServer(bidStore)

		req := httptest.NewRequest("DELETE", "/bid/7", nil)
		req.Header.Set("Authorization", bearerFor(t, s, "alice", "user"))
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		bidStore.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("the admin role can delete", func(t *testing.T) {
		bidStore := NewMockCrudStore[model.Bid]()
		bidStore.On("Delete", uint(7)).Return(nil)
		s := newBidServer(bidStore)

		req := httptest.NewRequest("DELETE", "/bid/7", nil)
		req.Header.Set("Authorization", bearerFor(t, s, "admin", "admin"))
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
