package httpserver

import (
	"time"

	"filler/internal/engine"
	"filler/internal/filler"
)

type NewGameRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type NewGameResponse struct {
	GameID string `json:"game_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// GameResponse is a board snapshot. Cells only lists owned cells.
type GameResponse struct {
	GameID    string        `json:"game_id"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Anfield   string        `json:"anfield"`
	Cells     []filler.Cell `json:"cells"`
	Hash      uint64        `json:"hash"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type CellRequest struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Owner int `json:"owner"`
}

type EvaluateRequest struct {
	RobotID int      `json:"robot_id"`
	Piece   []string `json:"piece"`
	Limit   int      `json:"limit"` // 0 = every candidate
}

type CandidateDTO struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Score float64 `json:"score"`
}

type EvaluateResponse struct {
	ID         string         `json:"id"`
	GameID     string         `json:"game_id"`
	RobotID    int            `json:"robot_id"`
	Legal      int            `json:"legal"`
	Candidates []CandidateDTO `json:"candidates"`
	Nodes      int64          `json:"nodes"`
	TimeMs     int64          `json:"time_ms"`
	Cached     bool           `json:"cached"`
}

type PlayRequest struct {
	RobotID int      `json:"robot_id"`
	Piece   []string `json:"piece"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
}

type ConstrainedResponse struct {
	GameID  string        `json:"game_id"`
	RobotID int           `json:"robot_id"`
	Cells   []filler.Cell `json:"cells"`
}

func candidatesToDTO(cs []engine.Candidate, limit int) []CandidateDTO {
	if limit > 0 && len(cs) > limit {
		cs = cs[:limit]
	}
	out := make([]CandidateDTO, len(cs))
	for i, c := range cs {
		out[i] = CandidateDTO{X: c.Position.X, Y: c.Position.Y, Score: c.Score}
	}
	return out
}

func ownedCells(b *filler.Board) []filler.Cell {
	var out []filler.Cell
	for _, c := range b.Cells() {
		if c.OccupiedBy != filler.NoOwner {
			out = append(out, c)
		}
	}
	return out
}
