package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"filler/internal/engine"
	"filler/internal/filler"
	"filler/internal/server/game"
)

const (
	maxBodyBytes int64 = 1 << 20
	maxBoardSide       = 512
)

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeGameError maps domain errors to status codes.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, filler.ErrOutOfBounds),
		errors.Is(err, filler.ErrInvalidOwner),
		errors.Is(err, filler.ErrInvalidRobot),
		errors.Is(err, filler.ErrInvalidPiece),
		errors.Is(err, filler.ErrInvalidAnfield),
		errors.Is(err, filler.ErrInvalidHeader):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, filler.ErrIllegalPlacement):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return false
	}
	return true
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Width <= 0 || req.Height <= 0 || req.Width > maxBoardSide || req.Height > maxBoardSide {
		writeError(w, http.StatusBadRequest, "invalid board size")
		return
	}
	g := s.games.NewGame(req.Width, req.Height)
	writeJSON(w, http.StatusCreated, NewGameResponse{GameID: g.ID, Width: req.Width, Height: req.Height})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	b, updatedAt := g.Snapshot()
	writeJSON(w, http.StatusOK, GameResponse{
		GameID:    g.ID,
		Width:     b.Width(),
		Height:    b.Height(),
		Anfield:   b.Encode(),
		Cells:     ownedCells(b),
		Hash:      b.Hash(),
		UpdatedAt: updatedAt,
	})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Delete(chi.URLParam(r, "id")); err != nil {
		writeGameError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReplaceAnfield takes a raw Anfield block as the request body.
func (s *Server) handleReplaceAnfield(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "body too large")
		return
	}
	b, err := filler.DecodeAnfield(string(body))
	if err != nil {
		writeGameError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.games.Replace(id, b); err != nil {
		writeGameError(w, err)
		return
	}
	s.handleGetGame(w, r)
}

func (s *Server) handleSetCell(w http.ResponseWriter, r *http.Request) {
	var req CellRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := s.games.Update(chi.URLParam(r, "id"), func(b *filler.Board) error {
		return b.Set(req.X, req.Y, req.Owner)
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	s.handleGetGame(w, r)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	robot, err := filler.NewRobot(req.RobotID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	piece, err := filler.NewPiece(req.Piece)
	if err != nil {
		writeGameError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	var res engine.Result
	err = s.games.Read(id, func(b *filler.Board) error {
		res = s.engine.Evaluate(b, piece, robot)
		return nil
	})
	if err != nil {
		writeGameError(w, err)
		return
	}

	resp := EvaluateResponse{
		ID:         res.ID,
		GameID:     id,
		RobotID:    robot.ID,
		Legal:      res.Legal,
		Candidates: candidatesToDTO(res.Candidates, req.Limit),
		Nodes:      res.Nodes,
		TimeMs:     res.TimeUsed.Milliseconds(),
		Cached:     res.Cached,
	}
	if s.hub != nil {
		s.hub.Publish(id, "evaluation", resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	robot, err := filler.NewRobot(req.RobotID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	piece, err := filler.NewPiece(req.Piece)
	if err != nil {
		writeGameError(w, err)
		return
	}
	pos := filler.Position{X: req.X, Y: req.Y, RobotID: robot.ID, Piece: piece}
	if err := s.games.Update(chi.URLParam(r, "id"), func(b *filler.Board) error {
		return b.Place(pos)
	}); err != nil {
		writeGameError(w, err)
		return
	}
	s.handleGetGame(w, r)
}

func (s *Server) handleConstrained(w http.ResponseWriter, r *http.Request) {
	robotID, err := strconv.Atoi(r.URL.Query().Get("robot_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid robot_id")
		return
	}
	robot, err := filler.NewRobot(robotID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	var cells []filler.Cell
	err = s.games.Read(id, func(b *filler.Board) error {
		b.UpdateOppOccupation(robot)
		cells = b.ConstrainedOpponentCells()
		return nil
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ConstrainedResponse{GameID: id, RobotID: robot.ID, Cells: cells})
}
