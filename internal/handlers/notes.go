package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mehulj/noteshare/internal/middleware"
	"github.com/mehulj/noteshare/internal/service"
)

// NotesHandler serves note CRUD, sharing and search. Every route behind
// it runs after RequireAuth, so the requester identity is always present.
type NotesHandler struct {
	svc *service.NoteService
}

func NewNotesHandler(svc *service.NoteService) *NotesHandler {
	return &NotesHandler{svc: svc}
}

type noteRequest struct {
	Content string `json:"content"`
}

type shareRequest struct {
	SharedUserEmail string `json:"sharedUserEmail"`
}

// Create makes a new note owned by the requester.
func (h *NotesHandler) Create(c *gin.Context) {
	var in noteRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, service.ErrContentRequired)
		return
	}

	note, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), in.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, "Note created successfully", gin.H{"note": note})
}

// List returns the requester's own notes and the notes shared with them.
func (h *NotesHandler) List(c *gin.Context) {
	owned, shared, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, "Notes retrieved successfully", gin.H{
		"userNotes":   owned,
		"sharedNotes": shared,
	})
}

// Get returns a single note by id.
func (h *NotesHandler) Get(c *gin.Context) {
	note, err := h.svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, "Note retrieved successfully", gin.H{"note": note})
}

// Update replaces a note's content.
func (h *NotesHandler) Update(c *gin.Context) {
	var in noteRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, service.ErrContentRequired)
		return
	}

	note, err := h.svc.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), in.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, "Note updated successfully", gin.H{"note": note})
}

// Delete removes a note and echoes its last state.
func (h *NotesHandler) Delete(c *gin.Context) {
	note, err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, "Note deleted successfully", gin.H{"note": note})
}

// Share grants another user read access to a note by email.
func (h *NotesHandler) Share(c *gin.Context) {
	var in shareRequest
	// An absent body means an absent email; the service rejects it.
	_ = c.ShouldBindJSON(&in)

	note, err := h.svc.Share(c.Request.Context(), middleware.UserID(c), c.Param("id"), in.SharedUserEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, "Note shared successfully", gin.H{"note": note})
}

// Search runs a full-text query across the requester's readable notes.
func (h *NotesHandler) Search(c *gin.Context) {
	matches, err := h.svc.Search(c.Request.Context(), middleware.UserID(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, "Search results retrieved successfully", gin.H{"searchResult": matches})
}
