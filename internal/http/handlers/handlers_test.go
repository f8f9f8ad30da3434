package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"velora/internal/ai"
	"velora/internal/domain"
	"velora/internal/http/handlers"
	"velora/internal/persist"
	"velora/internal/services"
	"velora/internal/store"
)

type fakeProducts struct {
	byID map[string]domain.Product
}

func (f *fakeProducts) ByID(_ context.Context, id string) (domain.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Product{}, services.ErrNotFound
	}
	return p, nil
}

func catalog() *fakeProducts {
	return &fakeProducts{byID: map[string]domain.Product{
		"p1": {
			ID: "p1", Slug: "linen-shirt", Name: "Linen Shirt", Price: 39,
			Status:   domain.ProductPublished,
			Images:   []string{"https://cdn.test/p1.jpg"},
			Variants: []domain.Variant{{Size: "M", Color: "white", Stock: 3}},
		},
	}}
}

type fakeSettings struct{}

func (fakeSettings) Get(_ context.Context, d domain.StoreSettings) (domain.StoreSettings, error) {
	return d, nil
}

// aiTransport answers every generate call with a fixed output document.
type aiTransport struct {
	output string
	status int
}

func (t aiTransport) RoundTrip(*http.Request) (*http.Response, error) {
	status := t.status
	if status == 0 {
		status = 200
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(fmt.Sprintf(`{"output":%s}`, t.output))),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "sid", Value: "test-session"})
	return req
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return withSession(req)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	return m
}

func newCartApp() *fiber.App {
	sessions := store.NewManager(persist.NewMemory())
	h := &handlers.CartHandler{Cart: services.NewCartService(catalog()), Sessions: sessions}

	app := fiber.New()
	app.Get("/cart", h.View)
	app.Post("/cart/items", h.Add)
	app.Delete("/cart/items/:variantId", h.Remove)
	return app
}

func TestCartEndpoints(t *testing.T) {
	app := newCartApp()

	resp, err := app.Test(jsonReq("POST", "/cart/items",
		`{"productId":"p1","size":"M","color":"white","quantity":2}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("add status = %d", resp.StatusCode)
	}
	body := decode(t, resp)
	if body["count"].(float64) != 2 {
		t.Fatalf("count = %v, want 2", body["count"])
	}
	if !strings.Contains(body["message"].(string), "Linen Shirt") {
		t.Fatalf("message = %v", body["message"])
	}

	resp, err = app.Test(withSession(httptest.NewRequest("GET", "/cart", nil)))
	if err != nil {
		t.Fatal(err)
	}
	view := decode(t, resp)
	if view["total"].(float64) != 78 {
		t.Fatalf("total = %v, want 78", view["total"])
	}

	resp, err = app.Test(jsonReq("POST", "/cart/items",
		`{"productId":"missing","size":"M","color":"white","quantity":1}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("unknown product status = %d, want 404", resp.StatusCode)
	}
}

func TestPrefsEndpoints(t *testing.T) {
	sessions := store.NewManager(persist.NewMemory())
	h := &handlers.PrefsHandler{Sessions: sessions}

	app := fiber.New()
	app.Get("/prefs", h.View)
	app.Put("/prefs", h.Update)

	resp, err := app.Test(jsonReq("PUT", "/prefs", `{"language":"fr","currency":"MAD"}`))
	if err != nil {
		t.Fatal(err)
	}
	body := decode(t, resp)
	if body["language"] != "fr" || body["currency"] != "MAD" {
		t.Fatalf("prefs = %v", body)
	}

	resp, err = app.Test(jsonReq("PUT", "/prefs", `{"language":"de"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 422 {
		t.Fatalf("unsupported language status = %d, want 422", resp.StatusCode)
	}

	// Choice survives across requests.
	resp, err = app.Test(withSession(httptest.NewRequest("GET", "/prefs", nil)))
	if err != nil {
		t.Fatal(err)
	}
	body = decode(t, resp)
	if body["language"] != "fr" {
		t.Fatalf("persisted language = %v, want fr", body["language"])
	}
}

func TestTryOnDailyCap(t *testing.T) {
	sessions := store.NewManager(persist.NewMemory())
	client := ai.NewClient("http://ai.test", "k", "m")
	client.HTTP = &http.Client{Transport: aiTransport{output: `{"image":"data:image/png;base64,Zm9v"}`}}

	h := &handlers.AIHandler{
		Flows:    ai.NewFlows(client, nil),
		Sessions: sessions,
		Settings: fakeSettings{},
		Defaults: domain.StoreSettings{TryOnDailyCap: 2},
	}
	app := fiber.New()
	app.Post("/ai/tryon", h.TryOn)

	body := `{"personImage":"data:image/jpeg;base64,YWJj","productImage":"https://cdn.test/p1.jpg"}`
	for i := 0; i < 2; i++ {
		resp, err := app.Test(jsonReq("POST", "/ai/tryon", body))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("use %d status = %d", i+1, resp.StatusCode)
		}
	}

	resp, err := app.Test(jsonReq("POST", "/ai/tryon", body))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 429 {
		t.Fatalf("capped status = %d, want 429", resp.StatusCode)
	}
	capped := decode(t, resp)
	if capped["remaining"].(float64) != 0 {
		t.Fatalf("remaining = %v, want 0", capped["remaining"])
	}
}

func newTryOnApp(transport aiTransport, dailyCap int) *fiber.App {
	sessions := store.NewManager(persist.NewMemory())
	client := ai.NewClient("http://ai.test", "k", "m")
	client.HTTP = &http.Client{Transport: transport}

	h := &handlers.AIHandler{
		Flows:    ai.NewFlows(client, nil),
		Sessions: sessions,
		Settings: fakeSettings{},
		Defaults: domain.StoreSettings{TryOnDailyCap: dailyCap},
	}
	app := fiber.New()
	app.Post("/ai/tryon", h.TryOn)
	app.Get("/ai/tryon/remaining", h.TryOnRemaining)
	return app
}

func remaining(t *testing.T, app *fiber.App) float64 {
	t.Helper()
	resp, err := app.Test(withSession(httptest.NewRequest("GET", "/ai/tryon/remaining", nil)))
	if err != nil {
		t.Fatal(err)
	}
	return decode(t, resp)["remaining"].(float64)
}

// Only successful generations count against the daily cap: rejected input
// never reaches the counter, and a failed service call hands the use back.
func TestTryOnFailuresDoNotSpendUses(t *testing.T) {
	app := newTryOnApp(aiTransport{output: `{"image":"data:image/png;base64,Zm9v"}`}, 2)

	resp, err := app.Test(jsonReq("POST", "/ai/tryon",
		`{"personImage":"https://not-a-data-uri","productImage":"x"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 422 {
		t.Fatalf("invalid input status = %d, want 422", resp.StatusCode)
	}
	if got := remaining(t, app); got != 2 {
		t.Fatalf("remaining after rejected input = %v, want 2", got)
	}

	failing := newTryOnApp(aiTransport{output: `{"error":"overloaded"}`, status: 503}, 2)
	resp, err = failing.Test(jsonReq("POST", "/ai/tryon",
		`{"personImage":"data:image/jpeg;base64,YWJj","productImage":"https://cdn.test/p1.jpg"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 502 {
		t.Fatalf("failed generation status = %d, want 502", resp.StatusCode)
	}
	if got := remaining(t, failing); got != 2 {
		t.Fatalf("remaining after failed generation = %v, want 2", got)
	}
}

type fakeUsers struct {
	users    map[string]domain.User // by email
	sessions map[string]string      // sid -> user id
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return domain.User{}, services.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) ByID(_ context.Context, id string) (domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, services.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, u domain.User) error {
	f.users[u.Email] = u
	return nil
}

func (f *fakeUsers) List(context.Context) ([]domain.User, error) { return nil, nil }
func (f *fakeUsers) Delete(context.Context, string) error        { return nil }

func (f *fakeUsers) BindSession(_ context.Context, sid, userID string) error {
	f.sessions[sid] = userID
	return nil
}

func (f *fakeUsers) UnbindSession(_ context.Context, sid string) error {
	delete(f.sessions, sid)
	return nil
}

func (f *fakeUsers) SessionUser(ctx context.Context, sid string) (domain.User, error) {
	id, ok := f.sessions[sid]
	if !ok {
		return domain.User{}, services.ErrNotFound
	}
	return f.ByID(ctx, id)
}

func TestAdminGate(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Adm1nadmin"), bcrypt.MinCost)
	users := &fakeUsers{
		users: map[string]domain.User{
			"admin@velora.test":   {ID: "u1", Email: "admin@velora.test", Hash: string(hash), Role: "ADMIN"},
			"shopper@velora.test": {ID: "u2", Email: "shopper@velora.test", Hash: string(hash), Role: "USER"},
		},
		sessions: map[string]string{},
	}
	auth := services.NewAuthService(users)
	authH := &handlers.AuthHandler{Auth: auth}

	app := fiber.New()
	app.Post("/auth/login", authH.Login)
	app.Get("/admin/ping", handlers.RequireAdmin(auth), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// No session at all.
	resp, err := app.Test(httptest.NewRequest("GET", "/admin/ping", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("anonymous status = %d, want 401", resp.StatusCode)
	}

	// Shopper session is forbidden.
	if _, err := auth.Login(context.Background(), "shopper-sid", "shopper@velora.test", "Adm1nadmin"); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "shopper-sid"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("shopper status = %d, want 403", resp.StatusCode)
	}

	// Admin session passes.
	if _, err := auth.Login(context.Background(), "admin-sid", "admin@velora.test", "Adm1nadmin"); err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "admin-sid"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("admin status = %d, want 200", resp.StatusCode)
	}

	// Wrong password is rejected uniformly.
	resp, err = app.Test(jsonReq("POST", "/auth/login",
		`{"email":"admin@velora.test","password":"wrong-pass"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("bad creds status = %d, want 401", resp.StatusCode)
	}
}
