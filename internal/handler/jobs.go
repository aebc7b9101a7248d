package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/izzy358/wrap-careers/internal/job"
	"github.com/izzy358/wrap-careers/internal/server"
	"github.com/izzy358/wrap-careers/internal/slugid"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/microcosm-cc/bluemonday"
	"github.com/segmentio/ksuid"
)

var sanitizePolicy = bluemonday.StrictPolicy()

type jobQueryer interface {
	JobsByFilters(f job.Filters) ([]*job.Job, int, error)
}

type jobFinder interface {
	JobBySlug(slug string) (*job.Job, error)
}

type jobSaver interface {
	SaveJob(j *job.Job) error
}

type jobMutator interface {
	UpdateJob(slug, token string, req *job.JobRqUpdate) (*job.Job, error)
	DeleteJob(slug, token string) error
}

type applicationSaver interface {
	SaveApplication(app *job.Application) error
}

type jobMailer interface {
	SendJobManageLink(to, title, slug, token string) error
	SendApplicationNotification(to, applicantName, applicantEmail, jobTitle, message string) error
	SendApplicationConfirmation(to, jobTitle string) error
}

func ListJobsHandler(svr server.Server, jobRepo jobQueryer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := job.ParseFiltersFromQuery(r.URL.Query())
		jobs, totalCount, err := jobRepo.JobsByFilters(filters)
		if err != nil {
			svr.Log(err, "unable to retrieve jobs")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to retrieve jobs"})
			return
		}
		for _, j := range jobs {
			j.CreatedAtHumanized = humanize.Time(j.CreatedAt)
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs, "total_count": totalCount})
	}
}

func CreateJobHandler(svr server.Server, jobRepo jobSaver, emailClient jobMailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var jobRq job.JobRq
		if err := json.NewDecoder(r.Body).Decode(&jobRq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
			return
		}
		if jobRq.Title == "" ||
			jobRq.CompanyName == "" ||
			jobRq.CompanyEmail == "" ||
			jobRq.LocationCity == "" ||
			jobRq.LocationState == "" ||
			len(jobRq.Trades) == 0 ||
			jobRq.JobType == "" ||
			jobRq.Description == "" {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
			return
		}
		if !svr.IsEmail(jobRq.CompanyEmail) {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid company email"})
			return
		}

		newJob := &job.Job{
			Slug:           slugid.New(jobRq.Title, jobRq.LocationCity, jobRq.LocationState),
			Title:          jobRq.Title,
			CompanyName:    jobRq.CompanyName,
			CompanyEmail:   jobRq.CompanyEmail,
			CompanyLogoURL: jobRq.CompanyLogoURL,
			LocationCity:   jobRq.LocationCity,
			LocationState:  jobRq.LocationState,
			Trades:         pq.StringArray(jobRq.Trades),
			JobType:        jobRq.JobType,
			PayMin:         jobRq.PayMin,
			PayMax:         jobRq.PayMax,
			PayType:        jobRq.PayType,
			Description:    sanitizePolicy.Sanitize(jobRq.Description),
			Requirements:   sanitizePolicy.Sanitize(jobRq.Requirements),
			HowToApply:     sanitizePolicy.Sanitize(jobRq.HowToApply),
			ManageToken:    ksuid.New().String(),
		}
		if err := jobRepo.SaveJob(newJob); err != nil {
			svr.Log(err, "unable to save job")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to create job"})
			return
		}
		if err := emailClient.SendJobManageLink(newJob.CompanyEmail, newJob.Title, newJob.Slug, newJob.ManageToken); err != nil {
			svr.Log(err, "unable to send job manage link email")
		}

		svr.JSON(w, http.StatusCreated, map[string]interface{}{"job": newJob})
	}
}

func GetJobBySlugHandler(svr server.Server, jobRepo jobFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		foundJob, err := jobRepo.JobBySlug(vars["slug"])
		if err == sql.ErrNoRows {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "Job not found"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to retrieve job "+vars["slug"])
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to retrieve job"})
			return
		}
		foundJob.CreatedAtHumanized = humanize.Time(foundJob.CreatedAt)
		svr.JSON(w, http.StatusOK, map[string]interface{}{"job": foundJob})
	}
}

// UpdateJobHandler applies a partial update gated on the manage token
// carried in the body. A wrong token is answered identically to a missing
// job so tokens cannot be probed.
func UpdateJobHandler(svr server.Server, jobRepo jobMutator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		var jobRq job.JobRqUpdate
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&jobRq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
			return
		}
		if jobRq.ManageToken == "" {
			svr.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization token is required"})
			return
		}
		updatedJob, err := jobRepo.UpdateJob(vars["slug"], jobRq.ManageToken, &jobRq)
		if err == sql.ErrNoRows {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "Job not found or unauthorized"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to update job "+vars["slug"])
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to update job"})
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"job": updatedJob})
	}
}

func DeleteJobHandler(svr server.Server, jobRepo jobMutator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		token := r.URL.Query().Get("token")
		if token == "" {
			svr.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization token is required"})
			return
		}
		err := jobRepo.DeleteJob(vars["slug"], token)
		if err == sql.ErrNoRows {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "Job not found or unauthorized"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to delete job "+vars["slug"])
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to delete job"})
			return
		}
		svr.JSON(w, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
	}
}

// ApplyToJobHandler records an application against the job behind the slug
// and mails both sides, best effort.
func ApplyToJobHandler(svr server.Server, jobRepo jobFinder, applicationRepo applicationSaver, emailClient jobMailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		var applicationRq job.ApplicationRq
		if err := json.NewDecoder(r.Body).Decode(&applicationRq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
			return
		}
		if applicationRq.ApplicantName == "" || applicationRq.ApplicantEmail == "" || applicationRq.Message == "" {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields: name, email, message"})
			return
		}
		if !svr.IsEmail(applicationRq.ApplicantEmail) {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid applicant email"})
			return
		}
		if len(applicationRq.Message) > job.MaxMessageLen {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Message is too long"})
			return
		}

		foundJob, err := jobRepo.JobBySlug(vars["slug"])
		if err == sql.ErrNoRows {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "Job not found"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to retrieve job for application "+vars["slug"])
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to retrieve job"})
			return
		}

		application := &job.Application{
			ID:             ksuid.New().String(),
			JobID:          foundJob.ID,
			ApplicantName:  applicationRq.ApplicantName,
			ApplicantEmail: applicationRq.ApplicantEmail,
			Message:        sanitizePolicy.Sanitize(applicationRq.Message),
			ResumeURL:      applicationRq.ResumeURL,
		}
		if err := applicationRepo.SaveApplication(application); err != nil {
			svr.Log(err, "unable to save application")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to save application"})
			return
		}

		if err := emailClient.SendApplicationNotification(foundJob.CompanyEmail, application.ApplicantName, application.ApplicantEmail, foundJob.Title, application.Message); err != nil {
			svr.Log(err, "unable to notify employer of application")
		}
		if err := emailClient.SendApplicationConfirmation(application.ApplicantEmail, foundJob.Title); err != nil {
			svr.Log(err, "unable to confirm application to applicant")
		}

		svr.JSON(w, http.StatusCreated, map[string]interface{}{
			"application": application,
			"message":     "Application submitted successfully",
		})
	}
}
