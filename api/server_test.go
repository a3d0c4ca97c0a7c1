package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	cfg "github.com/shenzhen-arrom/kitties/config"
	"github.com/shenzhen-arrom/kitties/database"
	dbm "github.com/shenzhen-arrom/kitties/database/db"
	_ "github.com/shenzhen-arrom/kitties/database/leveldb"
	"github.com/shenzhen-arrom/kitties/kitty"
	"github.com/shenzhen-arrom/kitties/ledger"
)

type stubEntropy struct{ index uint32 }

func (e *stubEntropy) RandomSeed() [32]byte { return [32]byte{} }

func (e *stubEntropy) CallIndex() uint32 {
	index := e.index
	e.index++
	return index
}

func newTestServer(t *testing.T) (*Server, *ledger.MemLedger) {
	t.Helper()

	store := database.NewRegistryStore(dbm.NewDB("apitest", "memdb", ""))
	l := ledger.NewMemLedger(0)
	registry := kitty.NewRegistry(store, l, &stubEntropy{}, nil, 1000, 0)
	return NewServer(registry, cfg.DefaultConfig()), l
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	resp := Response{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateAndQuery(t *testing.T) {
	server, l := newTestServer(t)
	l.Deposit("alice", 5000)

	resp := doJSON(t, server, "POST", "/api/v1/kitties/create", gin.H{"account": "alice"})
	require.Equal(t, codeSuccess, resp.Code)

	resp = doJSON(t, server, "GET", "/api/v1/kitties/count", nil)
	require.Equal(t, codeSuccess, resp.Code)
	require.Equal(t, float64(1), resp.Result.(map[string]interface{})["count"])

	resp = doJSON(t, server, "GET", "/api/v1/kitties/0/owner", nil)
	require.Equal(t, codeSuccess, resp.Code)
	require.Equal(t, "alice", resp.Result.(map[string]interface{})["owner"])

	resp = doJSON(t, server, "GET", "/api/v1/kitties/0", nil)
	require.Equal(t, codeSuccess, resp.Code)
	require.Len(t, resp.Result.(map[string]interface{})["genome"], kitty.GenomeSize*2)
}

func TestErrorCodes(t *testing.T) {
	server, l := newTestServer(t)
	l.Deposit("alice", 5000)
	l.Deposit("bob", 5000)

	resp := doJSON(t, server, "POST", "/api/v1/kitties/create", gin.H{"account": "alice"})
	require.Equal(t, codeSuccess, resp.Code)

	// unlisted kitty
	resp = doJSON(t, server, "POST", "/api/v1/kitties/buy", gin.H{"account": "bob", "kitty_id": 0})
	require.Equal(t, respErrFormatter[kitty.ErrNotForSale], resp.Code)
	require.Equal(t, kitty.ErrNotForSale.Error(), resp.Msg)

	// non-owner listing attempt
	resp = doJSON(t, server, "POST", "/api/v1/kitties/sell", gin.H{"account": "bob", "kitty_id": 0, "price": 100})
	require.Equal(t, respErrFormatter[kitty.ErrNotOwner], resp.Code)

	// unknown kitty lookup
	resp = doJSON(t, server, "GET", "/api/v1/kitties/42", nil)
	require.Equal(t, respErrFormatter[kitty.ErrKittyNotFound], resp.Code)

	// malformed request
	resp = doJSON(t, server, "POST", "/api/v1/kitties/create", gin.H{})
	require.Equal(t, codeError, resp.Code)
	require.Equal(t, "request error", resp.Msg)
}

func TestSellAndBuyFlow(t *testing.T) {
	server, l := newTestServer(t)
	l.Deposit("alice", 5000)
	l.Deposit("bob", 10000)

	resp := doJSON(t, server, "POST", "/api/v1/kitties/create", gin.H{"account": "alice"})
	require.Equal(t, codeSuccess, resp.Code)

	resp = doJSON(t, server, "POST", "/api/v1/kitties/sell", gin.H{"account": "alice", "kitty_id": 0, "price": 2000})
	require.Equal(t, codeSuccess, resp.Code)

	resp = doJSON(t, server, "GET", "/api/v1/kitties/0/listing", nil)
	require.Equal(t, codeSuccess, resp.Code)
	require.Equal(t, true, resp.Result.(map[string]interface{})["for_sale"])

	resp = doJSON(t, server, "POST", "/api/v1/kitties/buy", gin.H{"account": "bob", "kitty_id": 0})
	require.Equal(t, codeSuccess, resp.Code)

	resp = doJSON(t, server, "GET", "/api/v1/kitties/0/owner", nil)
	require.Equal(t, "bob", resp.Result.(map[string]interface{})["owner"])

	resp = doJSON(t, server, "GET", "/api/v1/kitties/0/listing", nil)
	require.Equal(t, false, resp.Result.(map[string]interface{})["for_sale"])
}

