package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	memoryRepo "freelancehub/database/repository/memory"
	"freelancehub/handlers"
	"freelancehub/services/account"
	"freelancehub/services/bidding"
	"freelancehub/services/hiring"
	"freelancehub/services/profile"
	"freelancehub/services/project"
	"freelancehub/services/storage"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
)

const testAdminKey = "admin-key"

type fakeStorage struct {
	uploaded []string
}

func (f *fakeStorage) UploadImage(_ context.Context, _ string, destFolder string) (storage.Asset, error) {
	f.uploaded = append(f.uploaded, destFolder)
	return storage.Asset{PublicID: destFolder + "/img", URL: "https://cdn.example.com/" + destFolder + "/img.png"}, nil
}

func (f *fakeStorage) DeleteFile(context.Context, string) error { return nil }

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T, store storage.StorageService) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repos := memoryRepo.NewStore()

	profiles, err := profile.NewDefaultProfileService(repos.Profiles, nil)
	if err != nil {
		t.Fatalf("profile service: %v", err)
	}
	accounts, err := account.NewDefaultAccountService(repos.Accounts, profiles, utils.NewLocalAuthCache(),
		account.Settings{AdminSignupKey: testAdminKey}, nil)
	if err != nil {
		t.Fatalf("account service: %v", err)
	}
	hiringSvc, err := hiring.NewDefaultHiringService(repos.Profiles, repos.Hires, repos.Ratings, nil, nil)
	if err != nil {
		t.Fatalf("hiring service: %v", err)
	}
	bids, err := bidding.NewDefaultBiddingService(repos.Projects, repos.Bids, nil, nil)
	if err != nil {
		t.Fatalf("bidding service: %v", err)
	}
	projects, err := project.NewDefaultProjectService(repos.Projects, nil)
	if err != nil {
		t.Fatalf("project service: %v", err)
	}

	router := gin.New()
	router.Use(utils.ErrorHandler())
	RegisterRoutes(router, &handlers.HandlerBundle{
		Verifier:   accounts,
		Account:    handlers.NewAccountHandler(accounts),
		Freelancer: handlers.NewFreelancerHandler(profiles, hiringSvc),
		Hiring:     handlers.NewHiringHandler(hiringSvc),
		Bids:       handlers.NewBidHandler(bids),
		Projects:   handlers.NewProjectHandler(projects),
		Storage:    handlers.NewStorageHandler(store, "freelancehub"),
		Admin:      handlers.NewAdminHandler(accounts, profiles),
	})
	return &testServer{t: t, router: router}
}

// call sends a JSON request and decodes the JSON response into out, if set.
func (s *testServer) call(method, path, token string, body any, wantStatus int, out any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != wantStatus {
		s.t.Fatalf("%s %s: got=%d want=%d body=%s", method, path, w.Code, wantStatus, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			s.t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
}

type session struct {
	Token   string `json:"token"`
	Account struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"account"`
}

func (s *testServer) register(name, email, role string) session {
	s.t.Helper()
	var out session
	s.call(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "correct horse", "role": role,
	}, http.StatusCreated, &out)
	return out
}

type errorBody struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

func TestHireAndRateFlow(t *testing.T) {
	s := newTestServer(t, nil)
	ana := s.register("Ana", "ana@example.com", "freelancer")
	bob := s.register("Bob", "bob@example.com", "client")
	carl := s.register("Carl", "carl@example.com", "client")

	var view profile.ProfileView
	s.call(http.MethodPut, "/api/freelancer/profile", ana.Token, gin.H{
		"skills": []string{"Go", "React"}, "hourlyRate": 40,
	}, http.StatusOK, &view)
	if len(view.Skills) != 2 || view.HourlyRate != 40 {
		t.Fatalf("profile update: got=%+v", view)
	}

	var hired hiring.HireResult
	s.call(http.MethodPost, "/api/freelancer/hire", bob.Token, gin.H{"freelancerName": "ana"}, http.StatusCreated, &hired)
	if !hired.Hired || hired.FreelancerID != ana.Account.ID {
		t.Fatalf("hire: got=%+v", hired)
	}
	var conflict errorBody
	s.call(http.MethodPost, "/api/freelancer/hire", bob.Token, gin.H{"freelancerId": ana.Account.ID}, http.StatusConflict, &conflict)
	if conflict.Reason != "already_hired" {
		t.Fatalf("rehire reason: got=%q", conflict.Reason)
	}
	s.call(http.MethodPost, "/api/freelancer/hire", ana.Token, gin.H{"freelancerId": ana.Account.ID}, http.StatusForbidden, nil)

	var rated hiring.RateResult
	s.call(http.MethodPost, "/api/ratings", bob.Token, gin.H{"freelancerId": ana.Account.ID, "value": 4}, http.StatusCreated, &rated)
	if rated.DisplayRating != 4 {
		t.Fatalf("first rating: got=%v want=4", rated.DisplayRating)
	}
	s.call(http.MethodPost, "/api/ratings", carl.Token, gin.H{"freelancerName": "Ana", "rating": 2}, http.StatusCreated, &rated)
	if rated.DisplayRating != 3 {
		t.Fatalf("second rating: got=%v want=3", rated.DisplayRating)
	}
	s.call(http.MethodPost, "/api/ratings", bob.Token, gin.H{"freelancerId": ana.Account.ID, "value": 5}, http.StatusConflict, &conflict)
	if conflict.Reason != "duplicate_rating" {
		t.Fatalf("duplicate rating reason: got=%q", conflict.Reason)
	}
	s.call(http.MethodPost, "/api/ratings", carl.Token, gin.H{"freelancerId": ana.Account.ID}, http.StatusBadRequest, nil)

	s.call(http.MethodGet, "/api/freelancer/"+ana.Account.ID, bob.Token, nil, http.StatusOK, &view)
	if view.Rating != 3 || view.HireCount != 1 || !view.HiredByMe || len(view.HiredBy) != 0 {
		t.Fatalf("public view: got=%+v", view)
	}

	var ratings []map[string]any
	s.call(http.MethodGet, "/api/freelancer/"+ana.Account.ID+"/ratings", carl.Token, nil, http.StatusOK, &ratings)
	if len(ratings) != 2 {
		t.Fatalf("ratings: got=%d want=2", len(ratings))
	}

	var results []profile.ProfileView
	s.call(http.MethodGet, "/api/freelancer?skills=go&minRating=2.5", carl.Token, nil, http.StatusOK, &results)
	if len(results) != 1 || results[0].FreelancerID != ana.Account.ID {
		t.Fatalf("search: got=%+v", results)
	}
	s.call(http.MethodGet, "/api/freelancer?maxRate=cheap", carl.Token, nil, http.StatusBadRequest, nil)
}

func TestBidAndMilestoneFlow(t *testing.T) {
	s := newTestServer(t, nil)
	ana := s.register("Ana", "ana@example.com", "freelancer")
	ben := s.register("Ben", "ben@example.com", "freelancer")
	bob := s.register("Bob", "bob@example.com", "client")

	var p project.ProjectView
	s.call(http.MethodPost, "/api/projects", bob.Token, gin.H{
		"title": "Landing page", "budget": 800, "deadline": "2099-01-01",
	}, http.StatusCreated, &p)
	s.call(http.MethodPost, "/api/projects", ana.Token, gin.H{"title": "x"}, http.StatusForbidden, nil)
	s.call(http.MethodPost, "/api/projects", bob.Token, gin.H{"title": "x", "deadline": "soon"}, http.StatusBadRequest, nil)

	type bidBody struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	var anaBid, benBid bidBody
	terms := gin.H{"amount": 700, "estimatedDeliveryDays": 10, "proposal": "Fast and clean"}
	s.call(http.MethodPost, "/api/projects/"+p.ID+"/bids", ana.Token, terms, http.StatusCreated, &anaBid)
	s.call(http.MethodPost, "/api/projects/"+p.ID+"/bids", ben.Token, terms, http.StatusCreated, &benBid)
	s.call(http.MethodPost, "/api/projects/"+p.ID+"/bids", ana.Token, terms, http.StatusConflict, nil)

	var listed []bidBody
	s.call(http.MethodGet, "/api/projects/"+p.ID+"/bids", bob.Token, nil, http.StatusOK, &listed)
	if len(listed) != 2 {
		t.Fatalf("project bids: got=%d want=2", len(listed))
	}

	var edited bidBody
	s.call(http.MethodPut, "/api/freelancer/bids/"+anaBid.ID, ana.Token, gin.H{"amount": 650, "estimatedDeliveryDays": 9, "proposal": "Even faster"}, http.StatusOK, &edited)
	s.call(http.MethodPut, "/api/freelancer/bids/"+anaBid.ID, ana.Token, gin.H{"status": "accepted"}, http.StatusBadRequest, nil)

	var accepted bidBody
	s.call(http.MethodPut, "/api/bids/"+anaBid.ID+"/accept", bob.Token, nil, http.StatusOK, &accepted)
	if accepted.Status != "accepted" {
		t.Fatalf("accept: got=%s", accepted.Status)
	}
	var conflict errorBody
	s.call(http.MethodPut, "/api/freelancer/bids/"+benBid.ID, ben.Token, gin.H{"status": "withdrawn"}, http.StatusConflict, &conflict)
	if conflict.Reason != "invalid_transition" {
		t.Fatalf("withdraw auto-rejected bid: got=%+v", conflict)
	}

	var listing bidding.BidListing
	s.call(http.MethodGet, "/api/freelancer/bids?tab=rejected", ben.Token, nil, http.StatusOK, &listing)
	if len(listing.Bids) != 1 || listing.Stats.TotalBids != 1 {
		t.Fatalf("ben rejected tab: got=%+v", listing)
	}

	var mine []project.ProjectView
	s.call(http.MethodGet, "/api/freelancer/projects?status=active", ana.Token, nil, http.StatusOK, &mine)
	if len(mine) != 1 || mine[0].ID != p.ID {
		t.Fatalf("ana active projects: got=%d", len(mine))
	}

	var m project.MilestoneView
	s.call(http.MethodPost, "/api/projects/"+p.ID+"/milestones", bob.Token, gin.H{"title": "Design", "dueDate": "2099-01-01"}, http.StatusCreated, &m)
	s.call(http.MethodPost, "/api/freelancer/projects/"+p.ID+"/milestones", ana.Token, gin.H{"title": "Build", "dueDate": "2099-02-01T00:00:00Z"}, http.StatusCreated, nil)
	s.call(http.MethodPost, "/api/projects/"+p.ID+"/milestones", ben.Token, gin.H{"title": "Hijack", "dueDate": "2099-01-01"}, http.StatusForbidden, nil)
	s.call(http.MethodPut, "/api/projects/"+p.ID+"/milestones/"+m.ID, ana.Token, nil, http.StatusOK, &m)
	if !m.Completed {
		t.Fatalf("toggle: milestone not completed")
	}

	s.call(http.MethodGet, "/api/projects/"+p.ID, ben.Token, nil, http.StatusOK, &p)
	if p.Progress != 50 || p.Status != "in-progress" {
		t.Fatalf("project: progress=%d status=%s", p.Progress, p.Status)
	}

	s.call(http.MethodPut, "/api/client/projects/"+p.ID, bob.Token, gin.H{"status": "completed"}, http.StatusOK, &p)
	if p.Status != "completed" {
		t.Fatalf("complete: got=%s", p.Status)
	}
	s.call(http.MethodPut, "/api/freelancer/projects/"+p.ID, ana.Token, gin.H{"status": "completed"}, http.StatusConflict, nil)
}

func TestAuthAndAdminRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	bob := s.register("Bob", "bob@example.com", "client")

	s.call(http.MethodGet, "/api/projects", "", nil, http.StatusUnauthorized, nil)
	s.call(http.MethodPost, "/api/auth/register", "", gin.H{"name": "Bob"}, http.StatusBadRequest, nil)
	s.call(http.MethodPost, "/api/auth/login", "", gin.H{"email": "bob@example.com", "password": "nope nope"}, http.StatusUnauthorized, nil)

	var login session
	s.call(http.MethodPost, "/api/auth/login", "", gin.H{"email": "BOB@example.com", "password": "correct horse"}, http.StatusOK, &login)
	s.call(http.MethodGet, "/api/projects", bob.Token, nil, http.StatusUnauthorized, nil)
	s.call(http.MethodGet, "/api/projects", login.Token, nil, http.StatusOK, nil)
	s.call(http.MethodGet, "/api/admin/accounts", login.Token, nil, http.StatusForbidden, nil)

	var admin session
	s.call(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Root", "email": "root@example.com", "password": "correct horse", "role": "admin", "adminKey": testAdminKey,
	}, http.StatusCreated, &admin)
	var accounts []map[string]any
	s.call(http.MethodGet, "/api/admin/accounts", admin.Token, nil, http.StatusOK, &accounts)
	if len(accounts) != 2 {
		t.Fatalf("accounts: got=%d want=2", len(accounts))
	}

	s.call(http.MethodPost, "/api/auth/logout", login.Token, nil, http.StatusOK, nil)
	s.call(http.MethodGet, "/api/auth/me", login.Token, nil, http.StatusUnauthorized, nil)

	s.call(http.MethodGet, "/health", "", nil, http.StatusOK, nil)
}

func TestUploadImage(t *testing.T) {
	ana := func(s *testServer) session { return s.register("Ana", "ana@example.com", "freelancer") }

	upload := func(s *testServer, token, filename string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		part.Write([]byte("\x89PNG fake image"))
		mw.Close()
		req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	t.Run("stored", func(t *testing.T) {
		store := &fakeStorage{}
		s := newTestServer(t, store)
		sess := ana(s)
		w := upload(s, sess.Token, "avatar.png")
		if w.Code != http.StatusOK {
			t.Fatalf("status: got=%d body=%s", w.Code, w.Body.String())
		}
		var out struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.URL == "" {
			t.Fatalf("url: got=%q err=%v", out.URL, err)
		}
		if len(store.uploaded) != 1 || store.uploaded[0] != "freelancehub/freelancers/"+sess.Account.ID {
			t.Fatalf("folder: got=%v", store.uploaded)
		}
	})

	t.Run("rejects non images", func(t *testing.T) {
		s := newTestServer(t, &fakeStorage{})
		if w := upload(s, ana(s).Token, "script.sh"); w.Code != http.StatusBadRequest {
			t.Fatalf("status: got=%d want=%d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		s := newTestServer(t, nil)
		if w := upload(s, ana(s).Token, "avatar.png"); w.Code != http.StatusServiceUnavailable {
			t.Fatalf("status: got=%d want=%d", w.Code, http.StatusServiceUnavailable)
		}
	})
}
