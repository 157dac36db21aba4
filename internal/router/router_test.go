package router

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/config"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/services"
	"fintrack/internal/session"
	"fintrack/internal/testutil"
	"fintrack/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// testApp is the full application stack over an isolated in-memory database.
type testApp struct {
	server *httptest.Server
	client *http.Client
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := &config.Config{
		SessionCookie: "fintrack_session",
		SessionTTL:    time.Hour,
		AdminUsername: "admin",
	}
	store := session.NewMemoryStore(cfg.SessionTTL)

	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)

	authHandler := handlers.NewAuthHandler(userService, store, cfg)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	adminHandler := handlers.NewAdminHandler(userService, transactionService)

	engine := New(cfg, store, authHandler, transactionHandler, adminHandler)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		// Redirects are assertions in these tests, never followed.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testApp{server: server, client: client}
}

func (a *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

func (a *testApp) register(t *testing.T, username, password string) {
	t.Helper()
	resp := a.postForm(t, "/register", url.Values{"username": {username}, "password": {password}})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("registration of %s failed: %d -> %s", username, resp.StatusCode, resp.Header.Get("Location"))
	}
}

func (a *testApp) login(t *testing.T, username, password string) {
	t.Helper()
	resp := a.postForm(t, "/login", url.Values{"username": {username}, "password": {password}})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/dashboard" {
		t.Fatalf("login of %s failed: %d -> %s", username, resp.StatusCode, resp.Header.Get("Location"))
	}
}

func (a *testApp) addTransaction(t *testing.T, date, description, amount, txType string) {
	t.Helper()
	resp := a.postForm(t, "/add", url.Values{
		"date": {date}, "description": {description}, "amount": {amount}, "type": {txType},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("add transaction failed: %d", resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(body)
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != location {
		t.Errorf("expected redirect to %s, got %s", location, loc)
	}
}

func TestRegisterLoginAddList(t *testing.T) {
	app := setupApp(t)

	app.register(t, "alice", "pw1")
	app.login(t, "alice", "pw1")
	app.addTransaction(t, "2024-01-01", "Salary", "50", "income")

	body := readBody(t, app.get(t, "/transactions"))
	if got := strings.Count(body, "<tr>") - 1; got != 1 { // minus header row
		t.Errorf("expected exactly one transaction row, got %d", got)
	}
	if !strings.Contains(body, "50.00") || !strings.Contains(body, "Salary") {
		t.Errorf("expected the added transaction in the list, got: %s", body)
	}
}

func TestDuplicateRegistrationKeepsFirstAccount(t *testing.T) {
	app := setupApp(t)

	app.register(t, "alice", "pw1")

	resp := app.postForm(t, "/register", url.Values{"username": {"alice"}, "password": {"other"}})
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "<form") {
		t.Fatalf("expected second registration to re-render the form, got %d", resp.StatusCode)
	}

	// Original credentials still work; the second password never took.
	app.login(t, "alice", "pw1")
	app.get(t, "/logout").Body.Close()
	loginResp := app.postForm(t, "/login", url.Values{"username": {"alice"}, "password": {"other"}})
	if loginResp.StatusCode == http.StatusFound {
		t.Error("second registration's password must not authenticate")
	}
	loginResp.Body.Close()
}

func TestCrossUserIsolation(t *testing.T) {
	app := setupApp(t)

	app.register(t, "alice", "pw1")
	app.login(t, "alice", "pw1")
	app.addTransaction(t, "2024-01-01", "Private", "100", "income")
	app.get(t, "/logout").Body.Close()

	// Bob's independent browser session.
	bob := setupClientFor(t, app)
	registerLoginAs(t, app, bob, "bob", "pw2")

	// Alice's transaction has id 1; bob probes it directly.
	editPage, err := bob.Get(app.server.URL + "/edit/1")
	if err != nil {
		t.Fatalf("GET /edit/1 failed: %v", err)
	}
	assertRedirect(t, editPage, "/transactions")

	editPost, err := bob.PostForm(app.server.URL+"/edit/1", url.Values{
		"date": {"2024-02-02"}, "description": {"hijack"}, "amount": {"1"}, "type": {"expense"},
	})
	if err != nil {
		t.Fatalf("POST /edit/1 failed: %v", err)
	}
	assertRedirect(t, editPost, "/transactions")

	deletePost, err := bob.PostForm(app.server.URL+"/delete/1", url.Values{})
	if err != nil {
		t.Fatalf("POST /delete/1 failed: %v", err)
	}
	assertRedirect(t, deletePost, "/transactions")

	// Alice's data is untouched.
	app.login(t, "alice", "pw1")
	body := readBody(t, app.get(t, "/transactions"))
	if !strings.Contains(body, "Private") || !strings.Contains(body, "100.00") || strings.Contains(body, "hijack") {
		t.Errorf("cross-user requests must not observe or affect foreign transactions, got: %s", body)
	}
}

func TestDashboardShowsFiveMostRecent(t *testing.T) {
	app := setupApp(t)

	app.register(t, "alice", "pw1")
	app.login(t, "alice", "pw1")
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07"}
	for _, d := range dates {
		app.addTransaction(t, d, "Entry "+d, "10", "expense")
	}

	body := readBody(t, app.get(t, "/dashboard"))
	for _, recent := range dates[2:] {
		if !strings.Contains(body, recent) {
			t.Errorf("expected recent date %s on the dashboard", recent)
		}
	}
	for _, old := range dates[:2] {
		if strings.Contains(body, "Entry "+old) {
			t.Errorf("date %s is older than the five most recent and must not appear", old)
		}
	}
	// Totals cover only the five listed entries.
	if !strings.Contains(body, "50.00") {
		t.Errorf("expected expense total 50.00 over the five shown entries, got: %s", body)
	}
}

func TestDashboardTotals(t *testing.T) {
	app := setupApp(t)

	app.register(t, "alice", "pw1")
	app.login(t, "alice", "pw1")
	app.addTransaction(t, "2024-01-01", "Salary", "100", "income")
	app.addTransaction(t, "2024-01-02", "Groceries", "40", "expense")

	body := readBody(t, app.get(t, "/dashboard"))
	for _, want := range []string{"Income: 100.00", "Expense: 40.00", "Balance: 60.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q on the dashboard, got: %s", want, body)
		}
	}
}

func TestAdminAccess(t *testing.T) {
	app := setupApp(t)

	t.Run("unauthenticated_redirects_to_login", func(t *testing.T) {
		assertRedirect(t, app.get(t, "/admin"), "/login")
	})

	t.Run("non_admin_redirects_to_dashboard", func(t *testing.T) {
		app.register(t, "alice", "pw1")
		app.login(t, "alice", "pw1")
		assertRedirect(t, app.get(t, "/admin"), "/dashboard")
		app.get(t, "/logout").Body.Close()
	})

	t.Run("admin_sees_per_user_summaries", func(t *testing.T) {
		app.login(t, "alice", "pw1")
		app.addTransaction(t, "2024-01-01", "Salary", "100", "income")
		app.addTransaction(t, "2024-01-02", "Groceries", "40", "expense")
		app.get(t, "/logout").Body.Close()

		app.register(t, "admin", "adminpw")
		app.login(t, "admin", "adminpw")

		resp := app.get(t, "/admin")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
		}
		body := readBody(t, resp)
		if !strings.Contains(body, "alice") || !strings.Contains(body, "60.00") {
			t.Errorf("expected alice's balance in the admin overview, got: %s", body)
		}
	})
}

func TestLogoutClosesTheDoor(t *testing.T) {
	app := setupApp(t)

	app.register(t, "alice", "pw1")
	app.login(t, "alice", "pw1")
	app.get(t, "/dashboard").Body.Close()

	assertRedirect(t, app.get(t, "/logout"), "/")

	for _, path := range []string{"/dashboard", "/transactions", "/add"} {
		assertRedirect(t, app.get(t, path), "/login")
	}
}

func TestMalformedAmountIsRejectedEndToEnd(t *testing.T) {
	app := setupApp(t)

	app.register(t, "alice", "pw1")
	app.login(t, "alice", "pw1")

	resp := app.postForm(t, "/add", url.Values{
		"date": {"2024-01-01"}, "description": {"bad"}, "amount": {"not-a-number"}, "type": {"income"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed amount, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	body := readBody(t, app.get(t, "/transactions"))
	if strings.Contains(body, "bad") {
		t.Error("a rejected amount must not create a transaction")
	}
}

// setupClientFor creates a second independent client (own cookie jar) against
// the same app.
func setupClientFor(t *testing.T, app *testApp) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func registerLoginAs(t *testing.T, app *testApp, client *http.Client, username, password string) {
	t.Helper()
	resp, err := client.PostForm(app.server.URL+"/register", url.Values{"username": {username}, "password": {password}})
	if err != nil || resp.StatusCode != http.StatusFound {
		t.Fatalf("registration of %s failed", username)
	}
	resp.Body.Close()
	resp, err = client.PostForm(app.server.URL+"/login", url.Values{"username": {username}, "password": {password}})
	if err != nil || resp.StatusCode != http.StatusFound {
		t.Fatalf("login of %s failed", username)
	}
	resp.Body.Close()
}
