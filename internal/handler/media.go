package handler

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/izzy358/wrap-careers/internal/database"
	"github.com/izzy358/wrap-careers/internal/server"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxUploadSize bounds a single uploaded file.
const maxUploadSize = 10 << 20

type assetSaver interface {
	SaveAsset(a database.Asset) error
}

type assetGetter interface {
	AssetByPath(path string) (database.Asset, error)
}

// UploadHandler stores a multipart file under a random name and returns
// the public URL it will be served from.
func UploadHandler(svr server.Server, assetRepo assetSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		file, header, err := r.FormFile("file")
		if err != nil {
			svr.JSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
			return
		}
		defer file.Close()
		folder := r.FormValue("folder")
		if folder == "" {
			folder = svr.GetConfig().DefaultUploadFolder
		}

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			svr.Log(err, "unable to read uploaded file")
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to read uploaded file"})
			return
		}
		mediaType := header.Header.Get("Content-Type")
		if mediaType == "" {
			mediaType = http.DetectContentType(fileBytes)
		}

		path := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), filepath.Ext(header.Filename))
		if err := assetRepo.SaveAsset(database.Asset{
			Path:      path,
			Bytes:     fileBytes,
			MediaType: mediaType,
		}); err != nil {
			svr.Log(err, "unable to save uploaded file "+path)
			svr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "unable to save uploaded file"})
			return
		}

		cfg := svr.GetConfig()
		svr.JSON(w, http.StatusCreated, map[string]string{
			"url": fmt.Sprintf("%s%s/assets/%s", cfg.URLProtocol, cfg.SiteHost, path),
		})
	}
}

func ServeAssetHandler(svr server.Server, assetRepo assetGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		path := fmt.Sprintf("%s/%s", vars["folder"], vars["file"])
		asset, err := assetRepo.AssetByPath(path)
		if err == sql.ErrNoRows {
			svr.TEXT(w, http.StatusNotFound, "Not Found")
			return
		}
		if err != nil {
			svr.Log(err, "unable to retrieve asset "+path)
			svr.TEXT(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		svr.MEDIA(w, http.StatusOK, asset.Bytes, asset.MediaType)
	}
}
