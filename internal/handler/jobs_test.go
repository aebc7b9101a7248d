package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/izzy358/wrap-careers/internal/config"
	"github.com/izzy358/wrap-careers/internal/job"
	"github.com/izzy358/wrap-careers/internal/server"

	"github.com/gorilla/mux"
)

func newTestServer() server.Server {
	return server.NewServer(config.Config{
		Env:                 "dev",
		SiteName:            "Wrap Careers",
		SiteHost:            "wrapcareers.test",
		URLProtocol:         "http://",
		DefaultUploadFolder: "misc",
		OpenCageAPIKey:      "test-key",
	}, nil, mux.NewRouter())
}

type jobQueryerMock struct {
	jobs       []*job.Job
	totalCount int
	err        error
	gotFilters job.Filters
}

func (m *jobQueryerMock) JobsByFilters(f job.Filters) ([]*job.Job, int, error) {
	m.gotFilters = f
	return m.jobs, m.totalCount, m.err
}

type jobFinderMock struct {
	job *job.Job
	err error
}

func (m *jobFinderMock) JobBySlug(slug string) (*job.Job, error) {
	if m.err != nil {
		return &job.Job{}, m.err
	}
	return m.job, nil
}

type jobSaverMock struct {
	saved *job.Job
	err   error
}

func (m *jobSaverMock) SaveJob(j *job.Job) error {
	if m.err != nil {
		return m.err
	}
	j.ID = 1
	j.Status = job.StatusActive
	j.CreatedAt = time.Now()
	m.saved = j
	return nil
}

type jobMutatorMock struct {
	updated   *job.Job
	updateErr error
	deleteErr error
	gotSlug   string
	gotToken  string
	gotUpdate *job.JobRqUpdate
}

func (m *jobMutatorMock) UpdateJob(slug, token string, req *job.JobRqUpdate) (*job.Job, error) {
	m.gotSlug, m.gotToken, m.gotUpdate = slug, token, req
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updated, nil
}

func (m *jobMutatorMock) DeleteJob(slug, token string) error {
	m.gotSlug, m.gotToken = slug, token
	return m.deleteErr
}

type applicationSaverMock struct {
	saved *job.Application
	err   error
}

func (m *applicationSaverMock) SaveApplication(app *job.Application) error {
	if m.err != nil {
		return m.err
	}
	app.CreatedAt = time.Now()
	m.saved = app
	return nil
}

type emailMock struct {
	manageLinks   int
	notifications int
	confirmations int
}

func (m *emailMock) SendJobManageLink(to, title, slug, token string) error {
	m.manageLinks++
	return nil
}

func (m *emailMock) SendInstallerManageLink(to, name, slug, token string) error {
	m.manageLinks++
	return nil
}

func (m *emailMock) SendApplicationNotification(to, applicantName, applicantEmail, jobTitle, message string) error {
	m.notifications++
	return nil
}

func (m *emailMock) SendApplicationConfirmation(to, jobTitle string) error {
	m.confirmations++
	return nil
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("unable to decode response body: %v", err)
	}
	return body
}

func TestListJobsHandler(t *testing.T) {
	svr := newTestServer()
	repo := &jobQueryerMock{
		jobs: []*job.Job{
			{ID: 1, Slug: "ppf-installer-austin-tx-abc123", Title: "PPF Installer", CreatedAt: time.Now()},
		},
		totalCount: 41,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?trade=ppf&page=2", nil)
	res := httptest.NewRecorder()
	ListJobsHandler(svr, repo)(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	body := decodeBody(t, res)
	if got := body["total_count"].(float64); got != 41 {
		t.Errorf("expected total_count 41, got %v", got)
	}
	if got := len(body["jobs"].([]interface{})); got != 1 {
		t.Errorf("expected 1 job, got %d", got)
	}
	if repo.gotFilters.Trade != "ppf" || repo.gotFilters.Page != 2 {
		t.Errorf("expected filters to reach the repository, got %+v", repo.gotFilters)
	}
}

func TestListJobsHandlerEmpty(t *testing.T) {
	svr := newTestServer()
	repo := &jobQueryerMock{jobs: []*job.Job{}}

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?page=99", nil)
	res := httptest.NewRecorder()
	ListJobsHandler(svr, repo)(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200 for an empty page, got %d", res.Code)
	}
	body := decodeBody(t, res)
	if jobs, ok := body["jobs"].([]interface{}); !ok || len(jobs) != 0 {
		t.Errorf("expected empty jobs array, got %v", body["jobs"])
	}
}

func TestCreateJobHandler(t *testing.T) {
	svr := newTestServer()
	repo := &jobSaverMock{}
	mailer := &emailMock{}

	payload := `{
		"title": "Lead PPF Installer",
		"company_name": "Shine Wraps",
		"company_email": "jobs@shinewraps.com",
		"location_city": "Austin",
		"location_state": "TX",
		"trades": ["ppf", "window-tint"],
		"job_type": "full-time",
		"pay_min": 45000,
		"pay_max": 85000,
		"description": "Install paint protection film on high end vehicles"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(payload))
	res := httptest.NewRecorder()
	CreateJobHandler(svr, repo, mailer)(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", res.Code, res.Body.String())
	}
	body := decodeBody(t, res)
	created := body["job"].(map[string]interface{})
	slugPattern := regexp.MustCompile(`^lead-ppf-installer-austin-tx-[a-z0-9]{6}$`)
	if !slugPattern.MatchString(created["slug"].(string)) {
		t.Errorf("unexpected slug %q", created["slug"])
	}
	if created["manage_token"] == nil || created["manage_token"].(string) == "" {
		t.Error("expected manage_token in the create response")
	}
	if created["status"].(string) != job.StatusActive {
		t.Errorf("expected active status, got %v", created["status"])
	}
	if mailer.manageLinks != 1 {
		t.Errorf("expected 1 manage link email, got %d", mailer.manageLinks)
	}
}

func TestCreateJobHandlerMissingFields(t *testing.T) {
	svr := newTestServer()
	repo := &jobSaverMock{}
	mailer := &emailMock{}

	// no description, no trades
	payload := `{
		"title": "Lead PPF Installer",
		"company_name": "Shine Wraps",
		"company_email": "jobs@shinewraps.com",
		"location_city": "Austin",
		"location_state": "TX",
		"job_type": "full-time"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(payload))
	res := httptest.NewRecorder()
	CreateJobHandler(svr, repo, mailer)(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", res.Code)
	}
	body := decodeBody(t, res)
	if body["error"] != "Missing required fields" {
		t.Errorf("unexpected error message %q", body["error"])
	}
	if repo.saved != nil {
		t.Error("expected nothing saved on validation failure")
	}
	if mailer.manageLinks != 0 {
		t.Error("expected no email on validation failure")
	}
}

func TestCreateJobHandlerSanitizesDescription(t *testing.T) {
	svr := newTestServer()
	repo := &jobSaverMock{}
	mailer := &emailMock{}

	payload := `{
		"title": "Tint Installer",
		"company_name": "Shine Wraps",
		"company_email": "jobs@shinewraps.com",
		"location_city": "Austin",
		"location_state": "TX",
		"trades": ["window-tint"],
		"job_type": "full-time",
		"description": "Great role<script>alert(1)</script>"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(payload))
	res := httptest.NewRecorder()
	CreateJobHandler(svr, repo, mailer)(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", res.Code)
	}
	if strings.Contains(repo.saved.Description, "<script>") {
		t.Errorf("expected script tags stripped, got %q", repo.saved.Description)
	}
}

func TestGetJobBySlugHandler(t *testing.T) {
	svr := newTestServer()
	router := mux.NewRouter()

	t.Run("found", func(t *testing.T) {
		repo := &jobFinderMock{job: &job.Job{ID: 7, Slug: "ppf-installer-austin-tx-abc123", Title: "PPF Installer", CreatedAt: time.Now()}}
		router.HandleFunc("/api/jobs/{slug}", GetJobBySlugHandler(svr, repo)).Methods(http.MethodGet)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs/ppf-installer-austin-tx-abc123", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", res.Code)
		}
		body := decodeBody(t, res)
		found := body["job"].(map[string]interface{})
		if found["title"] != "PPF Installer" {
			t.Errorf("unexpected job payload %v", found)
		}
		if found["created_at_humanized"] == nil {
			t.Error("expected humanized timestamp on detail payload")
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := &jobFinderMock{err: sql.ErrNoRows}
		router := mux.NewRouter()
		router.HandleFunc("/api/jobs/{slug}", GetJobBySlugHandler(svr, repo)).Methods(http.MethodGet)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs/no-such-job", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", res.Code)
		}
		body := decodeBody(t, res)
		if body["error"] != "Job not found" {
			t.Errorf("unexpected error message %q", body["error"])
		}
	})
}

func TestUpdateJobHandlerMissingToken(t *testing.T) {
	svr := newTestServer()
	repo := &jobMutatorMock{}
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs/{slug}", UpdateJobHandler(svr, repo)).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/api/jobs/some-job", strings.NewReader(`{"title": "New Title"}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", res.Code)
	}
	body := decodeBody(t, res)
	if body["error"] != "Authorization token is required" {
		t.Errorf("unexpected error message %q", body["error"])
	}
	if repo.gotSlug != "" {
		t.Error("expected no repository call without a token")
	}
}

func TestUpdateJobHandlerUnknownField(t *testing.T) {
	svr := newTestServer()
	repo := &jobMutatorMock{}
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs/{slug}", UpdateJobHandler(svr, repo)).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/api/jobs/some-job", strings.NewReader(`{"manage_token": "t", "is_featured": true}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown field, got %d", res.Code)
	}
}

// A wrong token and a missing job answer with the same status and body so
// tokens cannot be probed against known slugs.
func TestUpdateJobHandlerWrongTokenMatchesMissingJob(t *testing.T) {
	svr := newTestServer()
	bodies := make([]string, 0, 2)
	for _, slug := range []string{"existing-job", "no-such-job"} {
		repo := &jobMutatorMock{updateErr: sql.ErrNoRows}
		router := mux.NewRouter()
		router.HandleFunc("/api/jobs/{slug}", UpdateJobHandler(svr, repo)).Methods(http.MethodPut)

		req := httptest.NewRequest(http.MethodPut, "/api/jobs/"+slug, strings.NewReader(`{"manage_token": "wrong", "title": "X"}`))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", res.Code)
		}
		bodies = append(bodies, res.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Errorf("expected identical bodies, got %q and %q", bodies[0], bodies[1])
	}
}

func TestUpdateJobHandler(t *testing.T) {
	svr := newTestServer()
	newTitle := "Senior PPF Installer"
	repo := &jobMutatorMock{updated: &job.Job{ID: 7, Slug: "ppf-installer-austin-tx-abc123", Title: newTitle, CreatedAt: time.Now()}}
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs/{slug}", UpdateJobHandler(svr, repo)).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/api/jobs/ppf-installer-austin-tx-abc123", strings.NewReader(`{"manage_token": "tok123", "title": "Senior PPF Installer"}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", res.Code, res.Body.String())
	}
	if repo.gotSlug != "ppf-installer-austin-tx-abc123" || repo.gotToken != "tok123" {
		t.Errorf("expected slug and token to reach the repository, got %q / %q", repo.gotSlug, repo.gotToken)
	}
	if repo.gotUpdate.Title == nil || *repo.gotUpdate.Title != newTitle {
		t.Errorf("expected title update to reach the repository, got %+v", repo.gotUpdate)
	}
	body := decodeBody(t, res)
	if body["job"].(map[string]interface{})["title"] != newTitle {
		t.Errorf("unexpected updated payload %v", body["job"])
	}
}

func TestDeleteJobHandler(t *testing.T) {
	svr := newTestServer()

	t.Run("missing token", func(t *testing.T) {
		repo := &jobMutatorMock{}
		router := mux.NewRouter()
		router.HandleFunc("/api/jobs/{slug}", DeleteJobHandler(svr, repo)).Methods(http.MethodDelete)

		req := httptest.NewRequest(http.MethodDelete, "/api/jobs/some-job", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", res.Code)
		}
		if repo.gotSlug != "" {
			t.Error("expected no repository call without a token")
		}
	})

	t.Run("wrong token", func(t *testing.T) {
		repo := &jobMutatorMock{deleteErr: sql.ErrNoRows}
		router := mux.NewRouter()
		router.HandleFunc("/api/jobs/{slug}", DeleteJobHandler(svr, repo)).Methods(http.MethodDelete)

		req := httptest.NewRequest(http.MethodDelete, "/api/jobs/some-job?token=wrong", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", res.Code)
		}
		body := decodeBody(t, res)
		if body["error"] != "Job not found or unauthorized" {
			t.Errorf("unexpected error message %q", body["error"])
		}
	})

	t.Run("success", func(t *testing.T) {
		repo := &jobMutatorMock{}
		router := mux.NewRouter()
		router.HandleFunc("/api/jobs/{slug}", DeleteJobHandler(svr, repo)).Methods(http.MethodDelete)

		req := httptest.NewRequest(http.MethodDelete, "/api/jobs/some-job?token=tok123", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", res.Code)
		}
		body := decodeBody(t, res)
		if body["message"] != "Job deleted successfully" {
			t.Errorf("unexpected message %q", body["message"])
		}
		if repo.gotToken != "tok123" {
			t.Errorf("expected token to reach the repository, got %q", repo.gotToken)
		}
	})
}

func TestApplyToJobHandler(t *testing.T) {
	svr := newTestServer()

	t.Run("missing fields", func(t *testing.T) {
		jobRepo := &jobFinderMock{}
		appRepo := &applicationSaverMock{}
		mailer := &emailMock{}
		router := mux.NewRouter()
		router.HandleFunc("/api/jobs/{slug}/apply", ApplyToJobHandler(svr, jobRepo, appRepo, mailer)).Methods(http.MethodPost)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/some-job/apply", strings.NewReader(`{"applicant_name": "Sam"}`))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", res.Code)
		}
		body := decodeBody(t, res)
		if body["error"] != "Missing required fields: name, email, message" {
			t.Errorf("unexpected error message %q", body["error"])
		}
	})

	t.Run("job not found", func(t *testing.T) {
		jobRepo := &jobFinderMock{err: sql.ErrNoRows}
		appRepo := &applicationSaverMock{}
		mailer := &emailMock{}
		router := mux.NewRouter()
		router.HandleFunc("/api/jobs/{slug}/apply", ApplyToJobHandler(svr, jobRepo, appRepo, mailer)).Methods(http.MethodPost)

		payload := `{"applicant_name": "Sam", "applicant_email": "sam@mail.com", "message": "I have 5 years of tint experience"}`
		req := httptest.NewRequest(http.MethodPost, "/api/jobs/no-such-job/apply", strings.NewReader(payload))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", res.Code)
		}
		if appRepo.saved != nil {
			t.Error("expected no application saved for a missing job")
		}
	})

	t.Run("message too long", func(t *testing.T) {
		jobRepo := &jobFinderMock{job: &job.Job{ID: 7}}
		appRepo := &applicationSaverMock{}
		mailer := &emailMock{}
		router := mux.NewRouter()
		router.HandleFunc("/api/jobs/{slug}/apply", ApplyToJobHandler(svr, jobRepo, appRepo, mailer)).Methods(http.MethodPost)

		payload := `{"applicant_name": "Sam", "applicant_email": "sam@mail.com", "message": "` + strings.Repeat("a", job.MaxMessageLen+1) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/jobs/some-job/apply", strings.NewReader(payload))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", res.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		jobRepo := &jobFinderMock{job: &job.Job{ID: 7, Slug: "ppf-installer-austin-tx-abc123", Title: "PPF Installer", CompanyEmail: "jobs@shinewraps.com"}}
		appRepo := &applicationSaverMock{}
		mailer := &emailMock{}
		router := mux.NewRouter()
		router.HandleFunc("/api/jobs/{slug}/apply", ApplyToJobHandler(svr, jobRepo, appRepo, mailer)).Methods(http.MethodPost)

		payload := `{"applicant_name": "Sam", "applicant_email": "sam@mail.com", "message": "I have 5 years of tint experience"}`
		req := httptest.NewRequest(http.MethodPost, "/api/jobs/ppf-installer-austin-tx-abc123/apply", strings.NewReader(payload))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		if res.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", res.Code, res.Body.String())
		}
		body := decodeBody(t, res)
		if body["message"] != "Application submitted successfully" {
			t.Errorf("unexpected message %q", body["message"])
		}
		if appRepo.saved == nil || appRepo.saved.JobID != 7 {
			t.Errorf("expected application saved against job 7, got %+v", appRepo.saved)
		}
		if appRepo.saved.ID == "" {
			t.Error("expected a generated application id")
		}
		if mailer.notifications != 1 || mailer.confirmations != 1 {
			t.Errorf("expected 1 notification and 1 confirmation email, got %d / %d", mailer.notifications, mailer.confirmations)
		}
	})
}
