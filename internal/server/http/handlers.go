package httpserver

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pkg/errors"

	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// Handler 实现 http.Handler，用于 /api/* 路由。只做转发，规则全在 xiangqi 包里。
type Handler struct {
	games    *game.Manager
	defaults xiangqi.Config
}

func NewHandler(games *game.Manager, defaults xiangqi.Config) *Handler {
	if games == nil {
		games = game.NewManager()
	}
	return &Handler{games: games, defaults: defaults}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/step":
		h.handleStep(w, r)
	case "/api/reset":
		h.handleReset(w, r)
	case "/api/state":
		h.handleState(w, r)
	case "/api/legal_actions":
		h.handleLegalActions(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cfg := h.defaults
	if req.AllyColor != "" {
		c, err := xiangqi.ParseColor(req.AllyColor)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		cfg.AllyColor = c
	}
	if req.MaxPerpetualChecks != 0 {
		cfg.MaxPerpetualChecks = req.MaxPerpetualChecks
	}
	if req.RejectSelfCheck {
		cfg.RejectSelfCheck = true
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s, err := h.games.NewGame(cfg, req.FEN)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	var resp StateResponse
	_ = s.Do(func(g *xiangqi.Game) error {
		resp = stateOf(s.ID, g)
		return nil
	})
	writeJSON(w, resp)
}

func (h *Handler) handleStep(w http.ResponseWriter, r *http.Request) {
	var req StepRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Action == nil {
		writeError(w, http.StatusBadRequest, errors.New("missing action"))
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}

	var resp StepResponse
	err := s.Do(func(g *xiangqi.Game) error {
		res, err := g.Step(xiangqi.Action(*req.Action))
		if err != nil {
			return err
		}
		resp = StepResponse{
			StateResponse: stateOf(s.ID, g),
			Reward:        res.Reward,
			Move:          moveToDTO(res.Info.Move),
			Captured:      int(res.Info.Captured),
			Checks:        actionsToInts(res.Info.Checks),
			Illegal:       res.Info.Illegal,
			PostTerminal:  res.Info.PostTerminal,
		}
		return nil
	})
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}

	var resp StateResponse
	_ = s.Do(func(g *xiangqi.Game) error {
		g.Reset()
		resp = stateOf(s.ID, g)
		return nil
	})
	writeJSON(w, resp)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}

	var resp StateResponse
	_ = s.Do(func(g *xiangqi.Game) error {
		resp = stateOf(s.ID, g)
		return nil
	})
	writeJSON(w, resp)
}

func (h *Handler) handleLegalActions(w http.ResponseWriter, r *http.Request) {
	var req LegalActionsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}

	var resp LegalActionsResponse
	err := s.Do(func(g *xiangqi.Game) error {
		side := g.Turn()
		if req.Side != "" {
			var ok bool
			if side, ok = parseSide(req.Side); !ok {
				return errors.Wrapf(xiangqi.ErrInvalidAction, "unknown side %q", req.Side)
			}
		}

		var moves []xiangqi.Move
		if req.Piece != 0 {
			id := xiangqi.PieceID(req.Piece)
			if !id.Valid() {
				return errors.Wrapf(xiangqi.ErrInvalidAction, "piece id %d not in [1,%d]", req.Piece, xiangqi.NumPieceIDs)
			}
			moves = g.LegalActionsForPiece(side, id)
		} else {
			moves = g.Legality(side).Moves()
		}
		actions := make([]int32, len(moves))
		for i, mv := range moves {
			actions[i] = int32(mv.Action())
		}
		resp = LegalActionsResponse{
			GameID:  s.ID,
			Side:    sideToString(side),
			Actions: actions,
			Moves:   movesToDTO(moves),
		}
		return nil
	})
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) session(w http.ResponseWriter, id string) (*game.Session, bool) {
	s, err := h.games.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return s, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "bad json"))
		return false
	}
	return true
}

// statusOf 把引擎错误映射成 HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, xiangqi.ErrInvalidAction), errors.Is(err, xiangqi.ErrInvalidFEN):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Printf("ERROR: %+v", err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()}); err != nil {
		log.Println("writeError error:", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}
