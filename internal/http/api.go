package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"encrypted-notes/internal/auth"
	"encrypted-notes/internal/crypto"
	"encrypted-notes/internal/domain"
	"encrypted-notes/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	notes  service.NoteService
	tokens *auth.TokenManager
	logger *logrus.Logger
}

func NewHandler(users service.UserService, notes service.NoteService, tokens *auth.TokenManager, logger *logrus.Logger) *Handler {
	return &Handler{
		users:  users,
		notes:  notes,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestID())
	router.Use(corsMiddleware())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	notes := router.Group("/notes")
	notes.Use(h.authRequired())
	{
		notes.POST("", h.createNote)
		notes.GET("", h.listNotes)
		notes.GET("/search", h.searchNotes)
		notes.GET("/:id", h.getNote)
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createNoteRequest struct {
	Title    string  `json:"title" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	Keywords string  `json:"keywords"`
	Drawing  *string `json:"drawing"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *Handler) createNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.notes.Create(c.Request.Context(), callerID(c), req.Title, req.Content, req.Keywords, req.Drawing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, noteToResponse(*note))
}

func (h *Handler) getNote(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	note, err := h.notes.Read(c.Request.Context(), id, callerID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		case errors.Is(err, service.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		case errors.Is(err, crypto.ErrDecryption):
			c.JSON(http.StatusBadRequest, gin.H{"error": "decryption failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, plaintextNoteToResponse(*note))
}

func (h *Handler) listNotes(c *gin.Context) {
	notes, err := h.notes.List(c.Request.Context(), callerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]NoteResponse, len(notes))
	for i := range notes {
		resp[i] = noteToResponse(notes[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) searchNotes(c *gin.Context) {
	notes, err := h.notes.Search(c.Request.Context(), callerID(c), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]NoteResponse, len(notes))
	for i := range notes {
		resp[i] = noteToResponse(notes[i])
	}
	c.JSON(http.StatusOK, resp)
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// NoteResponse carries a note as stored: fields encrypted, signature attached.
// Used by create, list and search; only read-by-id decrypts.
type NoteResponse struct {
	ID                int64   `json:"id"`
	EncryptedTitle    string  `json:"encrypted_title"`
	EncryptedContent  string  `json:"encrypted_content"`
	EncryptedKeywords string  `json:"encrypted_keywords"`
	EncryptedDrawing  *string `json:"encrypted_drawing,omitempty"`
	Signature         string  `json:"signature"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type PlaintextNoteResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Keywords  string  `json:"keywords"`
	Drawing   *string `json:"drawing,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func noteToResponse(note domain.Note) NoteResponse {
	return NoteResponse{
		ID:                note.ID,
		EncryptedTitle:    note.EncryptedTitle,
		EncryptedContent:  note.EncryptedContent,
		EncryptedKeywords: note.EncryptedKeywords,
		EncryptedDrawing:  note.EncryptedDrawing,
		Signature:         note.Signature,
		CreatedAt:         note.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         note.UpdatedAt.Format(time.RFC3339),
	}
}

func plaintextNoteToResponse(note domain.PlaintextNote) PlaintextNoteResponse {
	return PlaintextNoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Keywords:  note.Keywords,
		Drawing:   note.Drawing,
		CreatedAt: note.CreatedAt.Format(time.RFC3339),
		UpdatedAt: note.UpdatedAt.Format(time.RFC3339),
	}
}
