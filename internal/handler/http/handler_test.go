package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
	"github.com/willjrcristo/kdpsuite-api/internal/repository"
	"github.com/willjrcristo/kdpsuite-api/internal/service"
)

// --- Mocks da Camada de Serviço ---

type MockWaitlistService struct {
	AddFn   func(ctx context.Context, email string) (*domain.WaitlistEntry, error)
	ListFn  func(ctx context.Context) ([]domain.WaitlistEntry, error)
	CountFn func(ctx context.Context) (int, error)
}

func (m *MockWaitlistService) Add(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	return m.AddFn(ctx, email)
}

func (m *MockWaitlistService) List(ctx context.Context) ([]domain.WaitlistEntry, error) {
	return m.ListFn(ctx)
}

func (m *MockWaitlistService) Count(ctx context.Context) (int, error) {
	return m.CountFn(ctx)
}

type MockContactService struct {
	SendFn func(ctx context.Context, sub domain.ContactSubmission) (service.ContactResult, error)
}

func (m *MockContactService) Send(ctx context.Context, sub domain.ContactSubmission) (service.ContactResult, error) {
	return m.SendFn(ctx, sub)
}

type MockCheckoutService struct {
	CreateCheckoutFn func(ctx context.Context, priceID, email string) (*service.CheckoutResult, error)
}

func (m *MockCheckoutService) CreateCheckout(ctx context.Context, priceID, email string) (*service.CheckoutResult, error) {
	return m.CreateCheckoutFn(ctx, priceID, email)
}

type MockWebhookService struct {
	HandleFn func(ctx context.Context, payload []byte, signature string) error
}

func (m *MockWebhookService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.HandleFn(ctx, payload, signature)
}

type MockContentService struct {
	PlansFn func() []domain.Plan
	PostsFn func() []domain.BlogPost
	PostFn  func(slug string) (*domain.BlogPost, error)
}

func (m *MockContentService) Plans() []domain.Plan                       { return m.PlansFn() }
func (m *MockContentService) Posts() []domain.BlogPost                   { return m.PostsFn() }
func (m *MockContentService) Post(slug string) (*domain.BlogPost, error) { return m.PostFn(slug) }

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}

// --- Testes do Handler ---

func TestWaitlistHandler_Join(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"corpo inválido", `{`, nil, http.StatusBadRequest, msgInvalidBody},
		{"e-mail não é string", `{"email":123}`, nil, http.StatusBadRequest, msgEmailRequired},
		{"e-mail ausente", `{"email":""}`, service.ErrRequiredFields, http.StatusBadRequest, msgEmailRequired},
		{"e-mail inválido", `{"email":"x"}`, service.ErrInvalidEmail, http.StatusBadRequest, msgInvalidEmail},
		{"duplicado", `{"email":"a@b.com"}`, service.ErrConflict, http.StatusConflict, msgAlreadyOnList},
		{"falha do store", `{"email":"a@b.com"}`, errors.New("boom"), http.StatusInternalServerError, msgInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWaitlistHandler(&MockWaitlistService{
				AddFn: func(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
					return nil, tt.err
				},
			})
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.Routes().ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rr))
		})
	}
}

func TestWaitlistHandler_List(t *testing.T) {
	h := NewWaitlistHandler(&MockWaitlistService{
		ListFn: func(ctx context.Context) ([]domain.WaitlistEntry, error) {
			return []domain.WaitlistEntry{{ID: "2", Email: "b@b.com"}, {ID: "1", Email: "a@b.com"}}, nil
		},
		CountFn: func(ctx context.Context) (int, error) { return 2, nil },
	})

	t.Run("lista", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var body WaitlistListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Total)
		assert.Equal(t, "b@b.com", body.Entries[0].Email)
	})

	t.Run("contagem", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?action=count", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"count":2}`, rr.Body.String())
	})
}

// Usa o serviço e o store de arquivo reais para cobrir a normalização ponta a ponta.
func TestWaitlistHandler_JoinWithFileStore(t *testing.T) {
	store := repository.NewFileWaitlistStore(filepath.Join(t.TempDir(), "waitlist.json"))
	router := chi.NewRouter()
	router.Mount("/api/waitlist", NewWaitlistHandler(service.NewWaitlistService(store)).Routes())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(`{"email":"A@B.com"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)

	var created WaitlistCreatedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "Successfully added to waitlist", created.Message)
	require.NotNil(t, created.Entry)
	assert.Equal(t, "a@b.com", created.Entry.Email)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(`{"email":"a@b.com "}`)))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, msgAlreadyOnList, decodeError(t, rr))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/waitlist?action=count", nil))
	assert.JSONEq(t, `{"count":1}`, rr.Body.String())
}

func TestContactHandler_Submit(t *testing.T) {
	body := `{"name":"Ana","email":"ana@example.com","subject":"Hi","message":"Hello"}`

	t.Run("sucesso com nota de desenvolvimento", func(t *testing.T) {
		h := NewContactHandler(&MockContactService{
			SendFn: func(ctx context.Context, sub domain.ContactSubmission) (service.ContactResult, error) {
				assert.Equal(t, "Ana", sub.Name)
				return service.ContactResult{Note: service.NoteMailNotConfigured}, nil
			},
		})
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp ContactResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, msgContactReceived, resp.Message)
		assert.Equal(t, service.NoteMailNotConfigured, resp.Note)
	})

	t.Run("sucesso sem nota omite o campo", func(t *testing.T) {
		h := NewContactHandler(&MockContactService{
			SendFn: func(ctx context.Context, sub domain.ContactSubmission) (service.ContactResult, error) {
				return service.ContactResult{}, nil
			},
		})
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		assert.NotContains(t, rr.Body.String(), "note")
	})

	errCases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{service.ErrRequiredFields, http.StatusBadRequest, msgAllFields},
		{service.ErrInvalidEmail, http.StatusBadRequest, msgInvalidEmail},
		{errors.Join(service.ErrDelivery, errors.New("smtp down")), http.StatusInternalServerError, msgContactFailed},
	}
	for _, tc := range errCases {
		t.Run(tc.wantMsg, func(t *testing.T) {
			h := NewContactHandler(&MockContactService{
				SendFn: func(ctx context.Context, sub domain.ContactSubmission) (service.ContactResult, error) {
					return service.ContactResult{}, tc.err
				},
			})
			rr := httptest.NewRecorder()
			h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
			assert.Equal(t, tc.wantCode, rr.Code)
			assert.Equal(t, tc.wantMsg, decodeError(t, rr))
		})
	}
}

func TestStripeHandler_CreateCheckout(t *testing.T) {
	t.Run("sucesso", func(t *testing.T) {
		h := NewStripeHandler(&MockCheckoutService{
			CreateCheckoutFn: func(ctx context.Context, priceID, email string) (*service.CheckoutResult, error) {
				assert.Equal(t, "price_starter_monthly", priceID)
				assert.Equal(t, "buyer@example.com", email)
				return &service.CheckoutResult{SessionID: "cs_1", URL: "https://checkout.stripe.com/c/pay/cs_1"}, nil
			},
		}, nil)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"priceId":"price_starter_monthly","email":"buyer@example.com"}`))
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"sessionId":"cs_1","url":"https://checkout.stripe.com/c/pay/cs_1"}`, rr.Body.String())
	})

	t.Run("campos ausentes", func(t *testing.T) {
		h := NewStripeHandler(&MockCheckoutService{
			CreateCheckoutFn: func(ctx context.Context, priceID, email string) (*service.CheckoutResult, error) {
				return nil, service.ErrRequiredFields
			},
		}, nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, msgCheckoutFields, decodeError(t, rr))
	})

	t.Run("falha da Stripe", func(t *testing.T) {
		h := NewStripeHandler(&MockCheckoutService{
			CreateCheckoutFn: func(ctx context.Context, priceID, email string) (*service.CheckoutResult, error) {
				return nil, service.ErrProvider
			},
		}, nil)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"priceId":"p","email":"a@b.com"}`)))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, msgCheckoutFailed, decodeError(t, rr))
	})
}

func TestStripeHandler_Webhook(t *testing.T) {
	t.Run("repassa o corpo cru e a assinatura", func(t *testing.T) {
		raw := []byte(`{"id":"evt_1",  "type":"invoice.payment_failed"}`)
		h := NewStripeHandler(nil, &MockWebhookService{
			HandleFn: func(ctx context.Context, payload []byte, signature string) error {
				assert.Equal(t, raw, payload)
				assert.Equal(t, "t=1,v1=abc", signature)
				return nil
			},
		})
		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(raw))
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"received":true}`, rr.Body.String())
	})

	t.Run("sem assinatura com o serviço real", func(t *testing.T) {
		h := NewStripeHandler(nil, service.NewWebhookService(nil, "whsec_test"))
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, msgMissingSig, decodeError(t, rr))
	})

	t.Run("assinatura inválida com o serviço real", func(t *testing.T) {
		h := NewStripeHandler(nil, service.NewWebhookService(nil, "whsec_test"))
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
		req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, msgInvalidSig, decodeError(t, rr))
	})

	errCases := []struct {
		err      error
		wantCode int
	}{
		{service.ErrMalformedEvent, http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range errCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			h := NewStripeHandler(nil, &MockWebhookService{
				HandleFn: func(ctx context.Context, payload []byte, signature string) error { return tc.err },
			})
			req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
			req.Header.Set("Stripe-Signature", "t=1,v1=abc")
			rr := httptest.NewRecorder()
			h.Routes().ServeHTTP(rr, req)

			assert.Equal(t, tc.wantCode, rr.Code)
			assert.Equal(t, msgWebhookFailed, decodeError(t, rr))
		})
	}

	t.Run("corpo acima do limite", func(t *testing.T) {
		h := NewStripeHandler(nil, &MockWebhookService{
			HandleFn: func(ctx context.Context, payload []byte, signature string) error {
				t.Fatal("serviço não deveria ser chamado")
				return nil
			},
		})
		big := bytes.Repeat([]byte("a"), int(maxWebhookBodyBytes)+1)
		rr := httptest.NewRecorder()
		h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(big)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})
}

func TestContentHandler(t *testing.T) {
	h := NewContentHandler(&MockContentService{
		PlansFn: func() []domain.Plan {
			return []domain.Plan{{ID: "starter", StripePriceID: "price_starter_monthly"}}
		},
		PostsFn: func() []domain.BlogPost {
			return []domain.BlogPost{{Slug: "hello", ReadTime: "5 min read"}}
		},
		PostFn: func(slug string) (*domain.BlogPost, error) {
			if slug == "hello" {
				return &domain.BlogPost{Slug: "hello", Content: "<p>x</p>"}, nil
			}
			return nil, service.ErrNotFound
		},
	})
	router := chi.NewRouter()
	router.Get("/api/plans", h.ListPlans)
	router.Mount("/api/blog", h.BlogRoutes())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/plans", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"stripePriceId":"price_starter_monthly"`)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/blog", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"readTime":"5 min read"`)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/blog/hello", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var post domain.BlogPost
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &post))
	assert.Equal(t, "<p>x</p>", post.Content)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/blog/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, msgPostNotFound, decodeError(t, rr))
}
