package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bookify/internal/common"
	"github.com/dmitrijs2005/bookify/internal/validate"
	"github.com/gorilla/mux"
)

type createReviewRequest struct {
	BookID string `json:"bookId"`
	Text   string `json:"reviewText"`
	Rating int    `json:"rating"`
}

type updateReviewRequest struct {
	Text   string `json:"reviewText"`
	Rating *int   `json:"rating"`
}

func (s *Server) handleListForBook(w http.ResponseWriter, r *http.Request) {
	items, err := s.reviews.ListByBook(r.Context(), mux.Vars(r)["bookId"])
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "No reviews found")
			return
		}
		s.internalError(w, r, "list reviews for book failed", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListForUser(w http.ResponseWriter, r *http.Request) {
	items, err := s.reviews.ListByUser(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		s.internalError(w, r, "list reviews for user failed", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := decode(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rv, err := s.reviews.Create(r.Context(), userFrom(r.Context()), req.BookID, req.Text, req.Rating)
	if err != nil {
		var ve *validate.Error
		if errors.As(err, &ve) {
			writeMessage(w, http.StatusBadRequest, ve.Message)
			return
		}
		s.internalError(w, r, "create review failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateReviewRequest
	if err := decode(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := s.reviews.Update(r.Context(), userFrom(r.Context()).ID, mux.Vars(r)["id"], req.Text, req.Rating)
	if err != nil {
		s.mutationError(w, r, "update review failed", err)
		return
	}
	writeMessage(w, http.StatusOK, "Review updated")
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.reviews.Delete(r.Context(), userFrom(r.Context()).ID, mux.Vars(r)["id"]); err != nil {
		s.mutationError(w, r, "delete review failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) mutationError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var ve *validate.Error
	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, common.ErrorForbidden):
		writeMessage(w, http.StatusForbidden, "You can only change your own reviews")
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "Review not found")
	default:
		s.internalError(w, r, msg, err)
	}
}
