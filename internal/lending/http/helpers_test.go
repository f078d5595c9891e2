package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	lendhttp "github.com/aussiebroadwan/hwlend/internal/lending/http"
	"github.com/aussiebroadwan/hwlend/internal/lending/service"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/drivers/sqlite"
	"github.com/aussiebroadwan/hwlend/pkg/cryptox"
	"github.com/aussiebroadwan/hwlend/pkg/httpx"
	"github.com/aussiebroadwan/hwlend/pkg/jwtx"
	"github.com/aussiebroadwan/hwlend/pkg/lendsdk"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "hwlend-test"
	adminName    = "admin"
	adminPass    = "admin-password"
	testPassword = "user-password"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath("")
	m.Run()
}

var generous = httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}

type testServer struct {
	URL      string
	Client   *lendsdk.Client
	Accounts *service.AccountService
}

// newTestServer starts the full router over a temp SQLite database with a
// pre-created admin account.
func newTestServer(t *testing.T, limits *lendhttp.Limits) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "hwlend.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keys, testIssuer, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := lendhttp.NewRouter(keys, verifier, "test", st, logger)
	if limits != nil {
		router.Limits = *limits
	} else {
		router.Limits = lendhttp.Limits{Strict: generous, Moderate: generous, Lenient: generous, Public: generous}
	}

	accounts := &service.AccountService{Store: st}
	router.AccountService = accounts
	router.SessionService = &service.SessionService{Signer: signer, Issuer: testIssuer, TTL: time.Hour}
	router.MFAService = &service.MFAService{Store: st, Issuer: testIssuer}
	router.HardwareService = &service.HardwareService{Store: st}
	router.ProjectService = &service.ProjectService{Store: st}
	router.InventoryService = &service.InventoryService{Store: st}
	router.UsageService = &service.UsageService{Store: st}
	router.ApplyRoutes()

	_, err = accounts.CreateUser(t.Context(), adminName, "admin@example.com", adminPass, domain.RoleAdmin)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: lendsdk.NewClient(srv.URL), Accounts: accounts}
}

func (s *testServer) login(t *testing.T, username, password string) *lendsdk.Session {
	t.Helper()
	session, err := s.Client.Login(t.Context(), username, password, "")
	require.NoError(t, err)
	return session
}

// signup registers username and signs in.
func (s *testServer) signup(t *testing.T, username string) *lendsdk.Session {
	t.Helper()
	_, err := s.Client.Register(t.Context(), lendsdk.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	return s.login(t, username, testPassword)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, lendsdk.IsCode(err, code), "want %s, got %v", code, err)
}

// postRaw sends body verbatim as session and decodes the JSON response into
// target, for payloads the SDK types cannot express.
func (s *testServer) postRaw(t *testing.T, session *lendsdk.Session, path, body string, target any) int {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, s.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+session.AccessToken())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	return resp.StatusCode
}
