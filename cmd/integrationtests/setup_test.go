package integrationtests

import (
	"bytes"
	"casse-auctions/internal/accounts"
	bidding "casse-auctions/internal/biddingService"
	"casse-auctions/internal/models"
	"casse-auctions/internal/repository"
	"casse-auctions/internal/server"
	"casse-auctions/internal/testutil"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	cookieName   = "casse_session"
	testPassword = "motdepasse"
)

// testEnv is a full application stack over a temporary SQLite database and Bolt session store.
type testEnv struct {
	router   *gin.Engine
	clock    *testutil.StubClock
	bidding  *bidding.BiddingService
	accounts *accounts.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := testutil.FixedClock()
	db := testutil.NewTestDB(t)
	sessions := testutil.NewTestSessionStore(t, clock)

	biddingService := bidding.NewBiddingService(repository.NewSQLiteRepo(db), clock)
	accountsService := accounts.NewService(accounts.NewUserStore(db), sessions, clock, 24*time.Hour)

	return &testEnv{
		router:   server.SetupRouter(biddingService, accountsService, server.Options{CookieName: cookieName}),
		clock:    clock,
		bidding:  biddingService,
		accounts: accountsService,
	}
}

// createUser registers a user and forces its role and status.
func (e *testEnv) createUser(t *testing.T, name, email string, role models.Role, status models.Status) models.User {
	t.Helper()
	ctx := context.Background()

	u, err := e.accounts.Register(ctx, name, email, testPassword)
	require.NoError(t, err)
	_, err = e.accounts.SetRole(ctx, u.ID, role)
	require.NoError(t, err)
	u, err = e.accounts.SetStatus(ctx, u.ID, status)
	require.NoError(t, err)
	return u
}

// login goes through POST /auth/login and returns the session cookie.
func (e *testEnv) login(t *testing.T, email string) *http.Cookie {
	t.Helper()

	_, w := e.do(t, http.MethodPost, "/auth/login", map[string]any{"email": email, "password": testPassword}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			require.True(t, c.HttpOnly)
			require.Equal(t, http.SameSiteLaxMode, c.SameSite)
			return c
		}
	}
	t.Fatalf("login did not set the %s cookie", cookieName)
	return nil
}

func (e *testEnv) seedAuction(t *testing.T, name string, startingPrice float64, runsFor time.Duration) models.Auction {
	t.Helper()

	a, err := e.bidding.CreateAuction(context.Background(), bidding.NewAuction{
		Vehicle:       models.Vehicle{Name: name, Brand: "Renault", Model: "Clio", Year: 2012, Mileage: 150000, Images: []string{"clio.jpg"}},
		StartingPrice: startingPrice,
		EndDate:       e.clock.Now().Add(runsFor),
	})
	require.NoError(t, err)
	return a
}

// do executes a request and decodes the JSON envelope. body may be raw []byte or any JSON-marshalable value.
func (e *testEnv) do(t *testing.T, method, url string, body any, cookie *http.Cookie) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return resp, w
}

func dataOf(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response has no object data: %v", resp)
	return data
}
