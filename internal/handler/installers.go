package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/izzy358/wrap-careers/internal/installer"
	"github.com/izzy358/wrap-careers/internal/server"
	"github.com/izzy358/wrap-careers/internal/slugid"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/segmentio/ksuid"
)

type installerQueryer interface {
	InstallersByFilters(f installer.Filters) ([]*installer.Installer, int, error)
}

type installerFinder interface {
	InstallerBySlug(slug string) (*installer.Installer, error)
}

type installerSaver interface {
	SaveInstaller(i *installer.Installer) error
}

type installerMutator interface {
	UpdateInstaller(slug, token string, req *installer.InstallerRqUpdate) (*installer.Installer, error)
	DeleteInstaller(slug, token string) error
}

type installerMailer interface {
	SendInstallerManageLink(to, name, slug, token string) error
}

func ListInstallersHandler(svr server.Server, installerRepo installerQueryer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := installer.ParseFiltersFromQuery(r.URL.Query())
		installers, totalCount, err := installerRepo.InstallersByFilters(filters)
		if err != nil {
			svr.Log(err, "unable to retrieve installers")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to retrieve installers"})
			return
		}
		for _, i := range installers {
			i.CreatedAtHumanized = humanize.Time(i.CreatedAt)
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"installers": installers, "total_count": totalCount})
	}
}

func CreateInstallerHandler(svr server.Server, installerRepo installerSaver, emailClient installerMailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var installerRq installer.InstallerRq
		if err := json.NewDecoder(r.Body).Decode(&installerRq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
			return
		}
		if installerRq.Name == "" ||
			installerRq.Email == "" ||
			installerRq.LocationCity == "" ||
			installerRq.LocationState == "" ||
			len(installerRq.Trades) == 0 ||
			installerRq.YearsExperience == nil ||
			installerRq.Bio == "" {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
			return
		}
		if !svr.IsEmail(installerRq.Email) {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid email"})
			return
		}

		// availability defaults to true when the payload omits it
		isAvailable := true
		if installerRq.IsAvailable != nil {
			isAvailable = *installerRq.IsAvailable
		}

		newInstaller := &installer.Installer{
			Slug:            slugid.New(installerRq.Name, installerRq.LocationCity, installerRq.LocationState),
			Name:            installerRq.Name,
			Email:           installerRq.Email,
			LocationCity:    installerRq.LocationCity,
			LocationState:   installerRq.LocationState,
			Trades:          pq.StringArray(installerRq.Trades),
			YearsExperience: *installerRq.YearsExperience,
			Bio:             sanitizePolicy.Sanitize(installerRq.Bio),
			Certifications:  sanitizePolicy.Sanitize(installerRq.Certifications),
			PortfolioURLs:   pq.StringArray(installerRq.PortfolioURLs),
			ResumeURL:       installerRq.ResumeURL,
			IsAvailable:     isAvailable,
			ManageToken:     ksuid.New().String(),
		}
		if err := installerRepo.SaveInstaller(newInstaller); err != nil {
			svr.Log(err, "unable to save installer profile")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to create installer profile"})
			return
		}
		if err := emailClient.SendInstallerManageLink(newInstaller.Email, newInstaller.Name, newInstaller.Slug, newInstaller.ManageToken); err != nil {
			svr.Log(err, "unable to send installer manage link email")
		}

		svr.JSON(w, http.StatusCreated, map[string]interface{}{"installer": newInstaller})
	}
}

func GetInstallerBySlugHandler(svr server.Server, installerRepo installerFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		foundInstaller, err := installerRepo.InstallerBySlug(vars["slug"])
		if err == sql.ErrNoRows {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "Installer not found"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to retrieve installer "+vars["slug"])
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to retrieve installer"})
			return
		}
		foundInstaller.CreatedAtHumanized = humanize.Time(foundInstaller.CreatedAt)
		svr.JSON(w, http.StatusOK, map[string]interface{}{"installer": foundInstaller})
	}
}

func UpdateInstallerHandler(svr server.Server, installerRepo installerMutator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		var installerRq installer.InstallerRqUpdate
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&installerRq); err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
			return
		}
		if installerRq.ManageToken == "" {
			svr.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization token is required"})
			return
		}
		updatedInstaller, err := installerRepo.UpdateInstaller(vars["slug"], installerRq.ManageToken, &installerRq)
		if err == sql.ErrNoRows {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "Installer not found or unauthorized"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to update installer "+vars["slug"])
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to update installer profile"})
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"installer": updatedInstaller})
	}
}

func DeleteInstallerHandler(svr server.Server, installerRepo installerMutator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		token := r.URL.Query().Get("token")
		if token == "" {
			svr.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization token is required"})
			return
		}
		err := installerRepo.DeleteInstaller(vars["slug"], token)
		if err == sql.ErrNoRows {
			svr.JSON(w, http.StatusNotFound, map[string]string{"error": "Installer not found or unauthorized"})
			return
		}
		if err != nil {
			svr.Log(err, "unable to delete installer "+vars["slug"])
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to delete installer profile"})
			return
		}
		svr.JSON(w, http.StatusOK, map[string]string{"message": "Installer profile deleted successfully"})
	}
}
