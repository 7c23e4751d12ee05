package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lifeforge/lifeforge/internal/domain"
)

// ─── Learning (/api/learning) ───────────────────────────────────────────────

func (s *Server) handleListLearning(w http.ResponseWriter, r *http.Request) {
	items, err := s.db.ListLearningItems(userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleUpsertLearning(w http.ResponseWriter, r *http.Request) {
	var item domain.LearningItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if item.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	switch item.Status {
	case domain.StatusNotStarted, domain.StatusInProgress, domain.StatusInternalized:
	case "":
		item.Status = domain.StatusNotStarted
	default:
		writeError(w, http.StatusBadRequest, "unknown learning status")
		return
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	if err := s.db.UpsertLearningItem(userFrom(r).ID, item); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteLearning(w http.ResponseWriter, r *http.Request) {
	err := s.db.DeleteLearningItem(userFrom(r).ID, chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrLearningNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ─── Problems (/api/problems) ───────────────────────────────────────────────

func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	problems, err := s.db.ListProblems(userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, problems)
}

func (s *Server) handleUpsertProblem(w http.ResponseWriter, r *http.Request) {
	var p domain.ProblemItem
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "problem name is required")
		return
	}
	switch p.Type {
	case domain.ProblemDSA, domain.ProblemDebugging, domain.ProblemRealWorld:
	default:
		writeError(w, http.StatusBadRequest, "problem type must be dsa, debugging, or real_world")
		return
	}
	switch p.Difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		writeError(w, http.StatusBadRequest, "difficulty must be easy, medium, or hard")
		return
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	if err := s.db.UpsertProblem(userFrom(r).ID, p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ─── Practice (/api/practice) ───────────────────────────────────────────────

func (s *Server) handleListPractice(w http.ResponseWriter, r *http.Request) {
	entries, err := s.db.ListPracticeEntries(userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddPractice(w http.ResponseWriter, r *http.Request) {
	var e domain.PracticeEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if e.Type != domain.PracticeWritten && e.Type != domain.PracticeVerbal {
		writeError(w, http.StatusBadRequest, "practice type must be written or verbal")
		return
	}
	if e.Date == "" {
		e.Date = s.now().Format(domain.DateLayout)
	} else if !validDate(e.Date) {
		writeError(w, http.StatusBadRequest, domain.ErrBadDate.Error())
		return
	}
	e.ID = uuid.New().String()

	if err := s.db.InsertPracticeEntry(userFrom(r).ID, e); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// ─── Notes (/api/notes) ─────────────────────────────────────────────────────

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	category := domain.NoteCategory(r.URL.Query().Get("category"))
	notes, err := s.db.ListNotes(userFrom(r).ID, category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var n domain.Note
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	switch n.Category {
	case domain.NoteOffice, domain.NoteCasual, domain.NoteRelationship:
	default:
		writeError(w, http.StatusBadRequest, "note category must be office, casual, or relationship")
		return
	}
	if n.Content == "" {
		writeError(w, http.StatusBadRequest, "note content is required")
		return
	}
	n.ID = uuid.New().String()

	if err := s.db.InsertNote(userFrom(r).ID, n); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, n)
}
