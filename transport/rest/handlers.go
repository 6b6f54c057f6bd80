package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tttlabs/ttt-backend/internal/apperror"
	"github.com/tttlabs/ttt-backend/internal/entity"
)

func (that *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleRegisterUser")

	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := that.coordinator.RegisterUser(r.Context(), req.UserName)
	if err != nil {
		log.Error("failed to register user", "error", err)
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	log.Info("user registered", "userID", user.ID)

	that.respondJSON(w, registerUserResponse{UserID: user.ID, UserName: user.Name})
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleCreateGame")

	game, err := that.coordinator.CreateGame(r.Context())
	if err != nil {
		log.Error("failed to create game", "error", err)
		http.Error(w, "failed to create game", http.StatusInternalServerError)
		return
	}

	log.Info("game created", "gameID", game.ID)

	that.respondJSON(w, createGameResponse{GameID: game.ID})
}

func (that *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleJoinGame")

	var req joinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	symbol, err := entity.ParseSymbol(req.Symbol)
	if err != nil {
		that.respondJSON(w, actionResponse{Result: resultDenied, Reason: denialReason(err)})
		return
	}

	if _, err = that.coordinator.HandleJoin(r.Context(), req.GameID, req.UserID, symbol); err != nil {
		log.Info("join denied", "gameID", req.GameID, "userID", req.UserID, "reason", denialReason(err))
		that.respondJSON(w, actionResponse{Result: resultDenied, Reason: denialReason(err)})
		return
	}

	log.Info("join accepted", "gameID", req.GameID, "userID", req.UserID)

	that.respondJSON(w, actionResponse{Result: resultAccepted})
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMakeMove")

	var req makeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	symbol, err := entity.ParseSymbol(req.Symbol)
	if err != nil {
		that.respondJSON(w, actionResponse{Result: resultDenied, Reason: denialReason(err)})
		return
	}

	if _, err = that.coordinator.HandleMove(r.Context(), req.GameID, req.UserID, symbol, req.X, req.Y); err != nil {
		log.Info("move denied", "gameID", req.GameID, "userID", req.UserID, "reason", denialReason(err))
		that.respondJSON(w, actionResponse{Result: resultDenied, Reason: denialReason(err)})
		return
	}

	log.Info("move accepted", "gameID", req.GameID, "userID", req.UserID)

	that.respondJSON(w, actionResponse{Result: resultAccepted})
}

func (that *Server) respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// denialReason - maps an operation failure to the wire reason code.
// Unrecognized errors are infrastructure failures and stay generic.
func denialReason(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, apperror.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, apperror.ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, apperror.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, apperror.ErrGameStarted):
		return "game_started"
	case errors.Is(err, apperror.ErrGameNotReady):
		return "not_ready"
	case errors.Is(err, apperror.ErrGameNotStarted):
		return "game_not_started"
	case errors.Is(err, apperror.ErrGameFinished):
		return "game_finished"
	case errors.Is(err, apperror.ErrWrongPlayer):
		return "wrong_player"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "not_your_turn"
	case apperror.IsIllegalCell(err):
		return "illegal_cell"
	case errors.Is(err, entity.ErrUnknownSymbol):
		return "unknown_symbol"
	default:
		return "internal_error"
	}
}
