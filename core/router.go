package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Repositories bundles the content persistence layer handed to the router.
type Repositories struct {
	Headers     HeaderRepository
	Contacts    ContactRepository
	Slides      SlideRepository
	About       AboutRepository
	Specialties SpecialtyRepository
	Blog        BlogRepository
	Footers     FooterRepository
}

// Cache keys for the public section listings.
const (
	cacheKeyHeader      = "content:header"
	cacheKeyContacts    = "content:contacts"
	cacheKeySlides      = "content:slides"
	cacheKeyAbout       = "content:about"
	cacheKeySpecialties = "content:specialties"
	cacheKeyFooter      = "content:footer"
)

// NewRouter constructs the Gin engine with routes wired. Content reads are
// public; every write sits behind RequireAuth. cache may be nil (disabled).
func NewRouter(cfg Config, auth *AuthService, tokens *TokenIssuer, users UserRepository, repos Repositories, images ImageStore, cache ContentCache) *gin.Engine {
	r := gin.Default()

	r.Use(OriginRefererMiddleware(cfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/auth/register", func(c *gin.Context) {
			var req struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}

			user, err := auth.Register(c.Request.Context(), req.Username, req.Password)
			if err != nil {
				switch {
				case errors.Is(err, ErrDuplicateUsername):
					respondError(c, http.StatusConflict, "CONFLICT", "Nome de usuário já existe.")
				case errors.Is(err, ErrValidation):
					respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				default:
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create user")
				}
				return
			}
			c.JSON(http.StatusCreated, user)
		})

		api.POST("/auth/login", func(c *gin.Context) {
			var req struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}

			token, err := auth.Login(c.Request.Context(), req.Username, req.Password)
			if err != nil {
				// One message for unknown username and wrong password alike.
				if errors.Is(err, ErrAuthUnavailable) {
					respondError(c, http.StatusServiceUnavailable, "AUTHENTICATION_UNAVAILABLE", "Serviço de autenticação indisponível.")
					return
				}
				respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Usuário ou senha inválidos.")
				return
			}
			c.JSON(http.StatusOK, gin.H{"token": token})
		})

		protected := api.Group("")
		protected.Use(RequireAuth(tokens, users))

		protected.GET("/auth/me", func(c *gin.Context) {
			user, ok := CurrentUser(c)
			if !ok {
				respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "Autenticação necessária.")
				return
			}
			c.JSON(http.StatusOK, user)
		})

		protected.PUT("/auth/password", func(c *gin.Context) {
			user, _ := CurrentUser(c)
			var req struct {
				CurrentPassword string `json:"currentPassword"`
				NewPassword     string `json:"newPassword"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			err := auth.ChangePassword(c.Request.Context(), user.Username, req.CurrentPassword, req.NewPassword)
			if err != nil {
				switch {
				case errors.Is(err, ErrValidation):
					respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				case errors.Is(err, ErrInvalidCredentials):
					respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Usuário ou senha inválidos.")
				case errors.Is(err, ErrAuthUnavailable):
					respondError(c, http.StatusServiceUnavailable, "AUTHENTICATION_UNAVAILABLE", "Serviço de autenticação indisponível.")
				default:
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to change password")
				}
				return
			}
			c.Status(http.StatusNoContent)
		})

		protected.DELETE("/auth/me", func(c *gin.Context) {
			user, _ := CurrentUser(c)
			if err := auth.DeleteAccount(c.Request.Context(), user.ID); err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete account")
				return
			}
			c.Status(http.StatusNoContent)
		})

		// --- header ---

		api.GET("/header", func(c *gin.Context) {
			serveCachedList(c, cache, cacheKeyHeader, func(ctx context.Context) (any, error) {
				return repos.Headers.List(ctx)
			})
		})

		protected.POST("/header", func(c *gin.Context) {
			var req Header
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Phone == "" || req.Whatsapp == "" || req.Email == "" || req.Logo == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			h, err := repos.Headers.Create(c.Request.Context(), req)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create header")
				return
			}
			invalidateCache(c, cache, cacheKeyHeader)
			c.JSON(http.StatusCreated, h)
		})

		protected.PUT("/header/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			var req Header
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Phone == "" || req.Whatsapp == "" || req.Email == "" || req.Logo == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			h, err := repos.Headers.Update(c.Request.Context(), id, req)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "Header não encontrado")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to update header")
				return
			}
			invalidateCache(c, cache, cacheKeyHeader)
			c.JSON(http.StatusOK, h)
		})

		protected.DELETE("/header/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			if err := repos.Headers.Delete(c.Request.Context(), id); err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete header")
				return
			}
			invalidateCache(c, cache, cacheKeyHeader)
			c.Status(http.StatusNoContent)
		})

		// --- contacts ---

		api.GET("/contacts", func(c *gin.Context) {
			serveCachedList(c, cache, cacheKeyContacts, func(ctx context.Context) (any, error) {
				return repos.Contacts.List(ctx)
			})
		})

		protected.POST("/contacts", func(c *gin.Context) {
			var req Contact
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Phone == "" || req.Email == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			ct, err := repos.Contacts.Create(c.Request.Context(), req)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create contact")
				return
			}
			invalidateCache(c, cache, cacheKeyContacts)
			c.JSON(http.StatusCreated, ct)
		})

		protected.PUT("/contacts/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			var req Contact
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Phone == "" || req.Email == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			ct, err := repos.Contacts.Update(c.Request.Context(), id, req)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "Contato não encontrado")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to update contact")
				return
			}
			invalidateCache(c, cache, cacheKeyContacts)
			c.JSON(http.StatusOK, ct)
		})

		protected.DELETE("/contacts/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			if err := repos.Contacts.Delete(c.Request.Context(), id); err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete contact")
				return
			}
			invalidateCache(c, cache, cacheKeyContacts)
			c.Status(http.StatusNoContent)
		})

		// --- hero slides ---

		api.GET("/slides", func(c *gin.Context) {
			serveCachedList(c, cache, cacheKeySlides, func(ctx context.Context) (any, error) {
				return repos.Slides.List(ctx)
			})
		})

		protected.POST("/slides", func(c *gin.Context) {
			var req Slide
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Title == "" || req.Image == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			s, err := repos.Slides.Create(c.Request.Context(), req)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create slide")
				return
			}
			invalidateCache(c, cache, cacheKeySlides)
			c.JSON(http.StatusCreated, s)
		})

		protected.PUT("/slides/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			var req Slide
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Title == "" || req.Image == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			s, err := repos.Slides.Update(c.Request.Context(), id, req)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "Slide não encontrado")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to update slide")
				return
			}
			invalidateCache(c, cache, cacheKeySlides)
			c.JSON(http.StatusOK, s)
		})

		protected.DELETE("/slides/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			if err := repos.Slides.Delete(c.Request.Context(), id); err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete slide")
				return
			}
			invalidateCache(c, cache, cacheKeySlides)
			c.Status(http.StatusNoContent)
		})

		// --- about ---

		api.GET("/about", func(c *gin.Context) {
			serveCachedList(c, cache, cacheKeyAbout, func(ctx context.Context) (any, error) {
				return repos.About.List(ctx)
			})
		})

		protected.POST("/about", func(c *gin.Context) {
			var req About
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Title == "" || req.Body == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			a, err := repos.About.Create(c.Request.Context(), req)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create about section")
				return
			}
			invalidateCache(c, cache, cacheKeyAbout)
			c.JSON(http.StatusCreated, a)
		})

		protected.PUT("/about/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			var req About
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Title == "" || req.Body == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			a, err := repos.About.Update(c.Request.Context(), id, req)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "Seção não encontrada")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to update about section")
				return
			}
			invalidateCache(c, cache, cacheKeyAbout)
			c.JSON(http.StatusOK, a)
		})

		protected.DELETE("/about/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			if err := repos.About.Delete(c.Request.Context(), id); err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete about section")
				return
			}
			invalidateCache(c, cache, cacheKeyAbout)
			c.Status(http.StatusNoContent)
		})

		// --- specialties ---

		api.GET("/specialties", func(c *gin.Context) {
			serveCachedList(c, cache, cacheKeySpecialties, func(ctx context.Context) (any, error) {
				return repos.Specialties.List(ctx)
			})
		})

		protected.POST("/specialties", func(c *gin.Context) {
			var req Specialty
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Name == "" || req.Description == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			s, err := repos.Specialties.Create(c.Request.Context(), req)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create specialty")
				return
			}
			invalidateCache(c, cache, cacheKeySpecialties)
			c.JSON(http.StatusCreated, s)
		})

		protected.PUT("/specialties/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			var req Specialty
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Name == "" || req.Description == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			s, err := repos.Specialties.Update(c.Request.Context(), id, req)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "Especialidade não encontrada")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to update specialty")
				return
			}
			invalidateCache(c, cache, cacheKeySpecialties)
			c.JSON(http.StatusOK, s)
		})

		protected.DELETE("/specialties/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			if err := repos.Specialties.Delete(c.Request.Context(), id); err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete specialty")
				return
			}
			invalidateCache(c, cache, cacheKeySpecialties)
			c.Status(http.StatusNoContent)
		})

		// --- blog ---

		api.GET("/blog", func(c *gin.Context) {
			page, perPage, err := parsePagination(c.Query("page"), c.Query("per_page"))
			if err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
				return
			}
			items, total, err := repos.Blog.List(c.Request.Context(), page, perPage)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch posts")
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"items":       items,
				"page":        page,
				"per_page":    perPage,
				"total_items": total,
				"total_pages": calcTotalPages(total, perPage),
			})
		})

		api.GET("/blog/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			p, err := repos.Blog.Get(c.Request.Context(), id)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "Post não encontrado")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch post")
				return
			}
			c.JSON(http.StatusOK, p)
		})

		protected.POST("/blog", func(c *gin.Context) {
			var req BlogPost
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Title == "" || req.Summary == "" || req.Body == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			p, err := repos.Blog.Create(c.Request.Context(), req)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create post")
				return
			}
			c.JSON(http.StatusCreated, p)
		})

		protected.PUT("/blog/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			var req BlogPost
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Title == "" || req.Summary == "" || req.Body == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			p, err := repos.Blog.Update(c.Request.Context(), id, req)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "Post não encontrado")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to update post")
				return
			}
			c.JSON(http.StatusOK, p)
		})

		protected.DELETE("/blog/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			if err := repos.Blog.Delete(c.Request.Context(), id); err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete post")
				return
			}
			c.Status(http.StatusNoContent)
		})

		// --- footer ---

		api.GET("/footer", func(c *gin.Context) {
			serveCachedList(c, cache, cacheKeyFooter, func(ctx context.Context) (any, error) {
				return repos.Footers.List(ctx)
			})
		})

		protected.POST("/footer", func(c *gin.Context) {
			var req Footer
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Text == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			f, err := repos.Footers.Create(c.Request.Context(), req)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create footer")
				return
			}
			invalidateCache(c, cache, cacheKeyFooter)
			c.JSON(http.StatusCreated, f)
		})

		protected.PUT("/footer/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			var req Footer
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Text == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			f, err := repos.Footers.Update(c.Request.Context(), id, req)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "Footer não encontrado")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to update footer")
				return
			}
			invalidateCache(c, cache, cacheKeyFooter)
			c.JSON(http.StatusOK, f)
		})

		protected.DELETE("/footer/:id", func(c *gin.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			if err := repos.Footers.Delete(c.Request.Context(), id); err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete footer")
				return
			}
			invalidateCache(c, cache, cacheKeyFooter)
			c.Status(http.StatusNoContent)
		})

		// --- images ---

		protected.POST("/images", func(c *gin.Context) {
			var req struct {
				Data        string `json:"data"`
				ContentType string `json:"contentType"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "JSON inválido")
				return
			}
			if req.Data == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Campos obrigatórios estão faltando")
				return
			}
			data, contentType, err := decodeImagePayload(req.Data, req.ContentType)
			if err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Imagem inválida")
				return
			}
			img, err := images.Save(c.Request.Context(), contentType, data)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to store image")
				return
			}
			c.JSON(http.StatusCreated, gin.H{
				"id":          img.ID,
				"contentType": img.ContentType,
				"url":         fmt.Sprintf("%s/api/v1/images/%s", strings.TrimRight(cfg.BaseURL, "/"), img.ID),
			})
		})

		api.GET("/images/:id", func(c *gin.Context) {
			id := c.Param("id")
			img, err := images.Get(c.Request.Context(), id)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "Imagem não encontrada")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch image")
				return
			}
			c.Data(http.StatusOK, img.ContentType, img.Data)
		})

		protected.DELETE("/images/:id", func(c *gin.Context) {
			if err := images.Delete(c.Request.Context(), c.Param("id")); err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete image")
				return
			}
			c.Status(http.StatusNoContent)
		})
	}

	return r
}

// serveCachedList answers a public listing from the cache when possible and
// refreshes the cache on a miss. Cache errors never fail the request.
func serveCachedList(c *gin.Context, cache ContentCache, key string, fetch func(ctx context.Context) (any, error)) {
	ctx := c.Request.Context()

	if cache != nil {
		var cached json.RawMessage
		hit, err := cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Printf("cache get %s: %v", key, err)
		} else if hit {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			return
		}
	}

	items, err := fetch(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch content")
		return
	}
	if cache != nil {
		if err := cache.SetJSON(ctx, key, items); err != nil {
			log.Printf("cache set %s: %v", key, err)
		}
	}
	c.JSON(http.StatusOK, items)
}

// invalidateCache drops a section key after a write; failures are logged only.
func invalidateCache(c *gin.Context, cache ContentCache, key string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(c.Request.Context(), key); err != nil {
		log.Printf("cache invalidate %s: %v", key, err)
	}
}

// parseID reads a positive int64 :id path parameter or responds 400.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
		return 0, false
	}
	return id, true
}

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

func parsePagination(pageStr, perPageStr string) (int, int, error) {
	page := 1
	perPage := defaultPerPage
	if strings.TrimSpace(pageStr) != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p <= 0 {
			return 0, 0, errors.New("page deve ser um inteiro maior que zero")
		}
		page = p
	}
	if strings.TrimSpace(perPageStr) != "" {
		p, err := strconv.Atoi(perPageStr)
		if err != nil || p <= 0 {
			return 0, 0, errors.New("per_page deve ser um inteiro maior que zero")
		}
		if p > maxPerPage {
			p = maxPerPage
		}
		perPage = p
	}
	return page, perPage, nil
}

func calcTotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
