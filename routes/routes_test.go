package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"okclinic/database/repository/memory"
	"okclinic/handlers"
	"okclinic/services/booking"
	"okclinic/services/catalog"
	"okclinic/services/feedback"
	"okclinic/services/invoice"
	"okclinic/services/pet"
	"okclinic/services/user"
	"okclinic/utils"
	"okclinic/utils/clock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

type inbox struct {
	mu   sync.Mutex
	last map[string]string
}

func (i *inbox) Send(_ context.Context, to, _, body string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.last[to] = body
	return nil
}

func (i *inbox) code(to string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return codePattern.FindString(i.last[to])
}

type RoutesSuite struct {
	suite.Suite
	router *gin.Engine
	mail   *inbox
	users  *memory.UserStore
	userSv *user.DefaultUserService
}

func TestRoutesSuite(t *testing.T) {
	suite.Run(t, new(RoutesSuite))
}

func (s *RoutesSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	clk := clock.NewMockClock(time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC))

	s.mail = &inbox{last: map[string]string{}}
	s.users = memory.NewUserStore()
	pets := memory.NewPetStore()
	bookings := memory.NewBookingStore()

	s.userSv = user.NewUserService(s.users, utils.NewMemoryCodeStore(clk), s.mail, 10*time.Minute, time.Hour)
	petSv := pet.NewPetService(pets, s.users)

	hb := &handlers.HandlerBundle{
		UserRepo: s.users,
		Auth:     handlers.NewAuthHandler(s.userSv, nil),
		Pets:     handlers.NewPetHandler(petSv),
		Bookings: handlers.NewBookingHandler(booking.NewBookingService(bookings, pets, s.users, time.UTC)),
		Invoices: handlers.NewInvoiceHandler(invoice.NewInvoiceService(memory.NewInvoiceStore(), s.users, clk)),
		Feedback: handlers.NewFeedbackHandler(feedback.NewFeedbackService(memory.NewFeedbackStore(), clk)),
		Catalog:  handlers.NewCatalogHandler(catalog.NewCatalogService(memory.NewServiceStore())),
		Admin:    handlers.NewAdminHandler(s.userSv, petSv, nil),
	}
	s.router = gin.New()
	RegisterRoutes(s.router, hb)
}

func (s *RoutesSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RoutesSuite) decode(w *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

// signup walks the email verification flow and returns a bearer token.
func (s *RoutesSuite) signup(name, email string) string {
	w := s.do(http.MethodPost, "/api/auth/send-signup-code", "", gin.H{"email": email})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	code := s.mail.code(email)
	s.Require().NotEmpty(code)

	w = s.do(http.MethodPost, "/api/auth/verify-signup-code", "", gin.H{"email": email, "code": code})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": name, "email": email, "password": "secret1"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp user.AuthResponse
	s.decode(w, &resp)
	s.Equal("customer", resp.Role)
	return resp.Token
}

func (s *RoutesSuite) adminToken() string {
	_, err := s.userSv.SeedAdmin(context.Background(), "admin@clinic.test", "adminpass")
	s.Require().NoError(err)
	w := s.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "admin@clinic.test", "password": "adminpass"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp user.AuthResponse
	s.decode(w, &resp)
	return resp.Token
}

func (s *RoutesSuite) addPet(token, name string) string {
	w := s.do(http.MethodPost, "/api/pets", token, gin.H{"name": name, "species": "dog"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var p struct {
		ID string `json:"id"`
	}
	s.decode(w, &p)
	return p.ID
}

func (s *RoutesSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RoutesSuite) TestAuthenticationRequired() {
	for _, path := range []string{"/api/pets", "/api/bookings", "/api/invoices", "/api/feedback", "/api/services", "/api/admin/users"} {
		w := s.do(http.MethodGet, path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, path)
	}
}

func (s *RoutesSuite) TestCustomerCannotReachStaffRoutes() {
	token := s.signup("Ada", "ada@example.com")
	for _, path := range []string{"/api/admin/users", "/api/admin/bookings", "/api/bookings/admin", "/api/invoices/admin"} {
		w := s.do(http.MethodGet, path, token, nil)
		s.Equal(http.StatusForbidden, w.Code, path)
	}
}

func (s *RoutesSuite) TestSigninErrors() {
	s.signup("Ada", "ada@example.com")

	w := s.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "ada@example.com", "password": "wrong-one"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "nobody@example.com", "password": "secret1"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/auth/signin", "", "not an object")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RoutesSuite) TestBookingFlow() {
	token := s.signup("Ada", "ada@example.com")
	petID := s.addPet(token, "Rex")

	req := gin.H{
		"date":     "2030-03-02",
		"time":     "10:00",
		"pet":      petID,
		"services": []gin.H{{"name": "Checkup", "price": 40, "duration": 30}, {"name": "Vaccine", "price": 20, "duration": 15}},
	}
	w := s.do(http.MethodPost, "/api/bookings", token, req)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID          string  `json:"id"`
		Total       float64 `json:"total"`
		DepositPaid float64 `json:"depositPaid"`
		Status      string  `json:"status"`
		Pet         struct {
			Name string `json:"name"`
		} `json:"pet"`
	}
	s.decode(w, &created)
	s.Equal(60.0, created.Total)
	s.Equal(30.0, created.DepositPaid)
	s.Equal("upcoming", created.Status)
	s.Equal("Rex", created.Pet.Name)

	// Same slot again.
	w = s.do(http.MethodPost, "/api/bookings", token, req)
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/bookings", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var mine []map[string]any
	s.decode(w, &mine)
	s.Len(mine, 1)

	w = s.do(http.MethodPost, "/api/bookings/"+created.ID+"/cancel", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// The cancelled slot is free again.
	w = s.do(http.MethodPost, "/api/bookings", token, req)
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *RoutesSuite) TestBookingForeignPet() {
	ada := s.signup("Ada", "ada@example.com")
	bob := s.signup("Bob", "bob@example.com")
	petID := s.addPet(bob, "Tom")

	w := s.do(http.MethodPost, "/api/bookings", ada, gin.H{"date": "2030-03-02", "time": "10:00", "pet": petID})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/bookings", ada, gin.H{"time": "10:00", "pet": petID})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RoutesSuite) TestFeedbackAndInvoices() {
	token := s.signup("Ada", "ada@example.com")

	w := s.do(http.MethodPost, "/api/feedback", token, gin.H{"category": "service", "subject": "Great", "message": "Lovely staff", "rating": 5})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var fb struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	s.decode(w, &fb)
	s.True(fb.Success)
	s.NotEmpty(fb.ID)

	w = s.do(http.MethodPost, "/api/invoices", token, gin.H{"petName": "Rex", "amount": 75})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var inv struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	s.decode(w, &inv)
	s.Equal("pending", inv.Status)

	other := s.signup("Bob", "bob@example.com")
	w = s.do(http.MethodPost, "/api/invoices/"+inv.ID+"/pay", other, gin.H{"paymentMethod": "card"})
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/invoices/"+inv.ID+"/pay", token, gin.H{"paymentMethod": "card"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &inv)
	s.Equal("paid", inv.Status)
}

func (s *RoutesSuite) TestAdminConsole() {
	admin := s.adminToken()
	customer := s.signup("Ada", "ada@example.com")

	w := s.do(http.MethodPost, "/api/admin/services", admin, gin.H{"name": "Grooming", "price": 35, "duration": 60})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var svc struct {
		ID string `json:"id"`
	}
	s.decode(w, &svc)

	w = s.do(http.MethodGet, "/api/services", customer, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var active []map[string]any
	s.decode(w, &active)
	s.Len(active, 1)

	w = s.do(http.MethodDelete, "/api/admin/services/"+svc.ID, admin, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/admin/users", admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var users []map[string]any
	s.decode(w, &users)
	s.Len(users, 2)
	for _, u := range users {
		s.NotContains(u, "password")
	}

	petID := s.addPet(customer, "Rex")
	w = s.do(http.MethodPost, "/api/bookings", customer, gin.H{"date": "2030-03-02", "time": "11:00", "pet": petID})
	s.Require().Equal(http.StatusCreated, w.Code)
	var b struct {
		ID string `json:"id"`
	}
	s.decode(w, &b)

	w = s.do(http.MethodPut, "/api/admin/bookings/"+b.ID, admin, gin.H{"status": "done"})
	s.Equal(http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPut, "/api/admin/bookings/"+b.ID, admin, gin.H{"status": "completed"})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodDelete, "/api/admin/bookings/"+b.ID, admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var ok struct {
		Success bool `json:"success"`
	}
	s.decode(w, &ok)
	s.True(ok.Success)

	w = s.do(http.MethodDelete, "/api/admin/bookings/"+b.ID, admin, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RoutesSuite) TestDeletedAccountLosesAccess() {
	admin := s.adminToken()
	token := s.signup("Ada", "ada@example.com")

	u, err := s.users.GetByEmail(context.Background(), "ada@example.com")
	s.Require().NoError(err)

	w := s.do(http.MethodDelete, "/api/admin/users/"+u.ID, admin, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/pets", token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}
