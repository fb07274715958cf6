package recordstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"covid-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler serves the per-collection CRUD API plus the user login and
// token verification endpoints.
type Handler struct {
	store  Store
	config *utils.Config
	log    *zap.Logger
}

func NewHandler(store Store, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		config: config,
		log:    log.With(zap.String("handler", "recordstore")),
	}
}

// List handles GET /{collection}
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	if !KnownCollection(collection) {
		utils.WriteNotFound(w, fmt.Sprintf("Unknown collection %q", collection))
		return
	}

	records, err := h.store.List(r.Context(), collection)
	if err != nil {
		h.log.Error("List failed", zap.String("collection", collection), zap.Error(err))
		utils.WriteInternalError(w, "Failed to list records")
		return
	}

	for _, record := range records {
		delete(record, "password")
	}
	utils.WriteJSON(w, http.StatusOK, records)
}

// GetByID handles GET /{collection}/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")
	if !KnownCollection(collection) {
		utils.WriteNotFound(w, fmt.Sprintf("Unknown collection %q", collection))
		return
	}

	record, err := h.store.Get(r.Context(), collection, id)
	if errors.Is(err, ErrNotFound) {
		utils.WriteNotFound(w, fmt.Sprintf("No %s record with id %s", collection, id))
		return
	}
	if err != nil {
		h.log.Error("Get failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		utils.WriteInternalError(w, "Failed to load record")
		return
	}

	delete(record, "password")
	utils.WriteJSON(w, http.StatusOK, record)
}

// Create handles POST /{collection}. The store assigns the id; user
// passwords are hashed before they are persisted.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	if !KnownCollection(collection) {
		utils.WriteNotFound(w, fmt.Sprintf("Unknown collection %q", collection))
		return
	}

	var record Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		utils.WriteBadRequest(w, "Invalid request body")
		return
	}

	record["id"] = utils.GenerateUUIDString()

	if collection == CollectionUser {
		if err := hashPassword(record); err != nil {
			h.log.Error("Password hash failed", zap.Error(err))
			utils.WriteInternalError(w, "Failed to store record")
			return
		}
	}

	if err := h.store.Put(r.Context(), collection, record.ID(), record); err != nil {
		h.log.Error("Create failed", zap.String("collection", collection), zap.Error(err))
		utils.WriteInternalError(w, "Failed to store record")
		return
	}

	response := record.clone()
	delete(response, "password")
	utils.WriteJSON(w, http.StatusCreated, response)
}

// Patch handles PATCH /{collection}/{id}: supplied fields overlay the
// stored document, the id never changes.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")
	if !KnownCollection(collection) {
		utils.WriteNotFound(w, fmt.Sprintf("Unknown collection %q", collection))
		return
	}

	existing, err := h.store.Get(r.Context(), collection, id)
	if errors.Is(err, ErrNotFound) {
		utils.WriteNotFound(w, fmt.Sprintf("No %s record with id %s", collection, id))
		return
	}
	if err != nil {
		h.log.Error("Patch load failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		utils.WriteInternalError(w, "Failed to load record")
		return
	}

	var changes Record
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		utils.WriteBadRequest(w, "Invalid request body")
		return
	}

	for k, v := range changes {
		existing[k] = v
	}
	existing["id"] = id

	if collection == CollectionUser {
		if _, ok := changes["password"]; ok {
			if err := hashPassword(existing); err != nil {
				h.log.Error("Password hash failed", zap.Error(err))
				utils.WriteInternalError(w, "Failed to store record")
				return
			}
		}
	}

	if err := h.store.Put(r.Context(), collection, id, existing); err != nil {
		h.log.Error("Patch failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		utils.WriteInternalError(w, "Failed to store record")
		return
	}

	response := existing.clone()
	delete(response, "password")
	utils.WriteJSON(w, http.StatusOK, response)
}

// Delete handles DELETE /{collection}/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")
	if !KnownCollection(collection) {
		utils.WriteNotFound(w, fmt.Sprintf("Unknown collection %q", collection))
		return
	}

	err := h.store.Delete(r.Context(), collection, id)
	if errors.Is(err, ErrNotFound) {
		utils.WriteNotFound(w, fmt.Sprintf("No %s record with id %s", collection, id))
		return
	}
	if err != nil {
		h.log.Error("Delete failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		utils.WriteInternalError(w, "Failed to delete record")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Login handles POST /user/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		UserName string `json:"userName"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		utils.WriteBadRequest(w, "Invalid request body")
		return
	}

	users, err := h.store.List(r.Context(), CollectionUser)
	if err != nil {
		h.log.Error("Login lookup failed", zap.Error(err))
		utils.WriteInternalError(w, "Failed to load users")
		return
	}

	for _, user := range users {
		userName, _ := user["userName"].(string)
		if userName != credentials.UserName {
			continue
		}

		hash, _ := user["password"].(string)
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(credentials.Password)) != nil {
			break
		}

		token, err := h.issueToken(user.ID())
		if err != nil {
			h.log.Error("Token issue failed", zap.Error(err))
			utils.WriteInternalError(w, "Failed to issue token")
			return
		}

		utils.WriteJSON(w, http.StatusOK, map[string]string{"jwt": token})
		return
	}

	utils.WriteUnauthorized(w, "Invalid username or password")
}

// VerifyToken handles POST /user/verify-token
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		JWT string `json:"jwt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteBadRequest(w, "Invalid request body")
		return
	}

	_, err := jwt.Parse(body.JWT, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(h.config.JWT.Secret), nil
	})
	if err != nil {
		utils.WriteUnauthorized(w, "Invalid or expired token")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) issueToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(h.config.JWT.ExpiryHours) * time.Hour)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWT.Secret))
}

func hashPassword(record Record) error {
	password, _ := record["password"].(string)
	if password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	record["password"] = string(hash)
	return nil
}
