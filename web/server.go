// Package web serves a localhost-only single-user catalog UI; it intentionally
// has no auth/CSRF protection in this mode.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"shopfeed/catalog"
	"shopfeed/config"
	"shopfeed/importer"
	"shopfeed/internal/classify"
	"shopfeed/internal/mediaurl"
	"shopfeed/internal/tabular"
	"shopfeed/prune"
	"shopfeed/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	store  *storage.SQLiteStore
	cfg    config.Config
	logger *logrus.Logger
	mux    *http.ServeMux
}

type catalogPageView struct {
	Title            string
	ActiveCollection string
	Collections      []CollectionCount
	Products         []ProductRow
	TotalCount       int
}

type importRunView struct {
	ID           string `json:"id"`
	SourceFile   string `json:"sourceFile"`
	SourceFormat string `json:"sourceFormat"`
	RowsRead     int    `json:"rowsRead"`
	ProductsKept int    `json:"productsKept"`
	RowsDropped  int    `json:"rowsDropped"`
	StartedAt    string `json:"startedAt"`
	FinishedAt   string `json:"finishedAt"`
}

type importResponse struct {
	FilesProcessed int   `json:"filesProcessed"`
	RowsRead       int   `json:"rowsRead"`
	RecordsKept    int   `json:"recordsKept"`
	RowsDropped    int   `json:"rowsDropped"`
	Duplicates     int   `json:"duplicates"`
	Conflicts      int   `json:"conflicts"`
	RowsPersisted  int   `json:"rowsPersisted"`
	RowsPruned     int64 `json:"rowsPruned"`
}

type productMutationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Price       string `json:"price"`
	SKU         string `json:"sku"`
	Collection  string `json:"collection"`
	Size        string `json:"size"`
}

// NewServer wires the route table. A nil logger falls back to a default
// logrus logger so tests can pass nil.
func NewServer(store *storage.SQLiteStore, cfg config.Config, logger *logrus.Logger) http.Handler {
	if logger == nil {
		logger = logrus.New()
	}

	s := &Server{
		store:  store,
		cfg:    cfg,
		logger: logger,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /catalog", s.handleCatalog)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.mux.HandleFunc("GET /api/products", s.handleAPIProducts)
	s.mux.HandleFunc("GET /api/products/{id}", s.handleAPIProductGet)
	s.mux.HandleFunc("PATCH /api/products/{id}", s.handleAPIProductPatch)
	s.mux.HandleFunc("DELETE /api/products/{id}", s.handleAPIProductDelete)
	s.mux.HandleFunc("DELETE /api/products", s.handleAPIProductsDeleteAll)
	s.mux.HandleFunc("GET /api/collections", s.handleAPICollections)
	s.mux.HandleFunc("GET /api/imports", s.handleAPIImports)
	s.mux.HandleFunc("POST /api/import", s.handleAPIImport)

	return s
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(recorder, r)
	s.logger.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     recorder.status,
		"durationMs": time.Since(started).Milliseconds(),
	}).Info("request served")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/catalog", http.StatusFound)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	active := strings.TrimSpace(r.URL.Query().Get("collection"))

	all, err := s.store.ListProducts()
	if err != nil {
		http.Error(w, fmt.Sprintf("list products: %v", err), http.StatusInternalServerError)
		return
	}

	products := all
	if active != "" {
		products, err = s.store.ListProductsByCollection(active)
		if err != nil {
			http.Error(w, fmt.Sprintf("list products: %v", err), http.StatusInternalServerError)
			return
		}
	}

	view := catalogPageView{
		Title:            "shopfeed - catalog",
		ActiveCollection: active,
		Collections:      BuildCollectionCounts(all),
		Products:         BuildProductRows(products),
		TotalCount:       len(all),
	}
	if err := renderTemplate(w, "catalog.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountProducts()
	if err != nil {
		http.Error(w, fmt.Sprintf("count products: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "products": count})
}

func (s *Server) handleAPIProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.loadProducts(strings.TrimSpace(r.URL.Query().Get("collection")))
	if err != nil {
		http.Error(w, fmt.Sprintf("list products: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, BuildProductRows(products))
}

func (s *Server) loadProducts(collection string) ([]catalog.Product, error) {
	if collection != "" {
		return s.store.ListProductsByCollection(collection)
	}
	return s.store.ListProducts()
}

func (s *Server) handleAPIProductGet(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := s.store.GetProductByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("get product: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, BuildProductRows([]catalog.Product{product})[0])
}

func (s *Server) handleAPIProductPatch(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	existing, err := s.store.GetProductByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("get product: %v", err), http.StatusInternalServerError)
		return
	}

	var body productMutationRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := applyProductMutation(existing, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.UpdateProduct(updated); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("update product: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// applyProductMutation replaces the editable fields of a stored product.
// The name stays mandatory, and an empty imageUrl keeps the stored image
// rather than blanking it, mirroring the import validity rules.
func applyProductMutation(existing catalog.Product, body productMutationRequest) (catalog.Product, error) {
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return catalog.Product{}, fmt.Errorf("name must not be empty")
	}

	updated := existing
	updated.Name = name
	updated.Description = strings.TrimSpace(body.Description)
	updated.Price = strings.TrimSpace(body.Price)
	updated.SKU = strings.TrimSpace(body.SKU)
	updated.Collection = strings.TrimSpace(body.Collection)
	updated.Size = strings.TrimSpace(body.Size)

	if raw := strings.TrimSpace(body.ImageURL); raw != "" {
		resolved := mediaurl.Resolve(raw)
		if resolved.Full == "" {
			return catalog.Product{}, fmt.Errorf("image url resolves to nothing")
		}
		updated.ImageURL = resolved.Full
		updated.ThumbnailURL = resolved.Thumb
	}

	return updated, nil
}

func (s *Server) handleAPIProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	deleted, err := s.store.DeleteProduct(id)
	if err != nil {
		http.Error(w, fmt.Sprintf("delete product: %v", err), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPIProductsDeleteAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteAllProducts()
	if err != nil {
		http.Error(w, fmt.Sprintf("delete products: %v", err), http.StatusInternalServerError)
		return
	}
	s.logger.WithField("deleted", deleted).Info("catalog cleared")
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func (s *Server) handleAPICollections(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts()
	if err != nil {
		http.Error(w, fmt.Sprintf("list products: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, BuildCollectionCounts(products))
}

func (s *Server) handleAPIImports(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListImports()
	if err != nil {
		http.Error(w, fmt.Sprintf("list imports: %v", err), http.StatusInternalServerError)
		return
	}

	views := make([]importRunView, 0, len(runs))
	for _, run := range runs {
		views = append(views, importRunView{
			ID:           run.ID,
			SourceFile:   run.SourceFile,
			SourceFormat: run.SourceFormat,
			RowsRead:     run.RowsRead,
			ProductsKept: run.ProductsKept,
			RowsDropped:  run.RowsDropped,
			StartedAt:    run.StartedAt.Format(time.RFC3339),
			FinishedAt:   run.FinishedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAPIImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes())
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	uploadName := filepath.Base(strings.TrimSpace(header.Filename))
	if uploadName == "" || uploadName == "." {
		http.Error(w, "upload has no filename", http.StatusBadRequest)
		return
	}

	// The extension decides the format when none is given, so the temp
	// file keeps the uploaded name's extension.
	tmp, err := os.CreateTemp("", tempUploadPattern(uploadName))
	if err != nil {
		http.Error(w, fmt.Sprintf("create temp file: %v", err), http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		http.Error(w, fmt.Sprintf("store upload: %v", err), http.StatusInternalServerError)
		return
	}
	if err := tmp.Close(); err != nil {
		http.Error(w, fmt.Sprintf("store upload: %v", err), http.StatusInternalServerError)
		return
	}

	result, err := importer.Run([]string{tmpPath}, strings.TrimSpace(r.FormValue("format")), s.cfg, importer.RunOptions{
		Collection: strings.TrimSpace(r.FormValue("collection")),
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("import failed: %v", err), http.StatusBadRequest)
		return
	}

	// The temp upload carries a generated name; keep the original
	// filename on catalog rows and audit entries.
	for i := range result.Products {
		result.Products[i].SourceFile = uploadName
	}
	for i := range result.Runs {
		result.Runs[i].SourceFile = uploadName
	}

	stored, err := s.store.ListProducts()
	if err != nil {
		http.Error(w, fmt.Sprintf("list products: %v", err), http.StatusInternalServerError)
		return
	}

	toAdd, conflicts, duplicates := classify.ClassifyProducts(result.Products, stored)

	inserted, err := s.store.InsertProducts(toAdd)
	if err != nil {
		http.Error(w, fmt.Sprintf("insert products: %v", err), http.StatusInternalServerError)
		return
	}

	for _, run := range result.Runs {
		if err := s.store.RecordImport(run); err != nil {
			http.Error(w, fmt.Sprintf("record import: %v", err), http.StatusInternalServerError)
			return
		}
	}

	var pruned int64
	if s.cfg.Import.PruneAfterImport {
		pruneResult, err := prune.Run(s.store)
		if err != nil {
			http.Error(w, fmt.Sprintf("prune catalog: %v", err), http.StatusInternalServerError)
			return
		}
		pruned = pruneResult.RowsDeleted
	}

	s.logger.WithFields(logrus.Fields{
		"file":       uploadName,
		"rowsRead":   result.RowsRead,
		"kept":       result.RecordsKept,
		"persisted":  inserted,
		"duplicates": duplicates,
		"conflicts":  len(conflicts),
	}).Info("catalog file imported")

	writeJSON(w, http.StatusOK, importResponse{
		FilesProcessed: result.FilesProcessed,
		RowsRead:       result.RowsRead,
		RecordsKept:    result.RecordsKept,
		RowsDropped:    result.RowsDropped,
		Duplicates:     duplicates,
		Conflicts:      len(conflicts),
		RowsPersisted:  inserted,
		RowsPruned:     pruned,
	})
}

// tempUploadPattern builds an os.CreateTemp pattern that keeps the upload's
// extension, since format detection looks at the extension.
func tempUploadPattern(filename string) string {
	ext := filepath.Ext(filename)
	return "shopfeed-upload-*" + ext
}

func parsePositiveInt64(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already written; nothing sensible left to do.
		return
	}
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if decoder.More() {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").Funcs(template.FuncMap{
		"truncate": func(value string) string {
			return tabular.Truncate(value, 80)
		},
	}).ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}
