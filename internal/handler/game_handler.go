package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/northpole-labs/reindeergames/internal/game"
	"github.com/northpole-labs/reindeergames/internal/model"
	"github.com/northpole-labs/reindeergames/internal/response"
	"github.com/northpole-labs/reindeergames/internal/store"
	"github.com/northpole-labs/reindeergames/internal/validator"
	"github.com/northpole-labs/reindeergames/internal/worker"
)

// GameHandler exposes the game engine over HTTP. It owns the session
// round-trip the engine itself stays out of: load the prior blob, run
// the turn, persist or drop the new blob.
type GameHandler struct {
	engine   *game.Engine
	sessions *store.RedisStore
	tokens   *store.StateTokens
	rdb      *redis.Client // archive queue; nil disables archiving
	log      zerolog.Logger
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(
	engine *game.Engine,
	sessions *store.RedisStore,
	tokens *store.StateTokens,
	rdb *redis.Client,
	log zerolog.Logger,
) *GameHandler {
	return &GameHandler{
		engine:   engine,
		sessions: sessions,
		tokens:   tokens,
		rdb:      rdb,
		log:      log.With().Str("component", "game_handler").Logger(),
	}
}

// ExecuteTurn godoc
// POST /api/v1/sessions/:session_id/turn
// Runs one game turn against the server-side session store.
func (h *GameHandler) ExecuteTurn(c *gin.Context) {
	sessionID := c.Param("session_id")

	req, requestType, ok := h.bindTurn(c)
	if !ok {
		return
	}

	prior, err := h.sessions.Load(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("load session failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	resp, err := h.engine.Execute(requestType, toArguments(req.Arguments), prior)
	if err != nil {
		// Request names are validated during binding, so this is a
		// genuine server bug rather than caller input.
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("engine rejected request")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if len(resp.SessionValues) > 0 {
		err = h.sessions.Save(c.Request.Context(), sessionID, resp.SessionValues)
	} else {
		err = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	if err != nil {
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("persist session failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.archiveIfFinished(c, sessionID, resp)

	out := toTurnResponse(resp)
	out.SessionID = sessionID
	response.Success(c, http.StatusOK, gin.H{"turn": out})
}

// ExecuteStatelessTurn godoc
// POST /api/v1/turn
// Runs one game turn with the session travelling as a signed state
// token, for callers that hold state themselves.
func (h *GameHandler) ExecuteStatelessTurn(c *gin.Context) {
	req, requestType, ok := h.bindTurn(c)
	if !ok {
		return
	}

	var prior map[string]any
	if req.StateToken != "" {
		var err error
		prior, err = h.tokens.Parse(req.StateToken)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidStateToken)
			return
		}
	}

	resp, err := h.engine.Execute(requestType, toArguments(req.Arguments), prior)
	if err != nil {
		h.log.Error().Err(err).Msg("engine rejected request")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	out := toTurnResponse(resp)
	if len(resp.SessionValues) > 0 {
		token, err := h.tokens.Issue(resp.SessionValues)
		if err != nil {
			h.log.Error().Err(err).Msg("issue state token failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		out.StateToken = token
	}

	h.archiveIfFinished(c, uuid.New().String(), resp)

	response.Success(c, http.StatusOK, gin.H{"turn": out})
}

// bindTurn binds and validates the turn payload, including the request
// type name, so unknown types never reach the engine.
func (h *GameHandler) bindTurn(c *gin.Context) (*model.TurnRequest, game.RequestType, bool) {
	var req model.TurnRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return nil, 0, false
	}

	requestType, ok := game.ParseRequestType(req.Request)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownRequestType)
		return nil, 0, false
	}

	return &req, requestType, true
}

// archiveIfFinished queues a finished game for the archive worker.
// Best effort: a queue failure never fails the player's turn.
func (h *GameHandler) archiveIfFinished(c *gin.Context, sessionID string, resp *game.Response) {
	if resp.FinalScore == nil || h.rdb == nil {
		return
	}

	rec := worker.GameRecord{
		SessionID:  sessionID,
		Score:      *resp.FinalScore,
		GameLength: game.GameLength,
		FinishedAt: time.Now().UTC(),
	}
	if err := worker.EnqueueGameRecord(c.Request.Context(), h.rdb, rec); err != nil {
		h.log.Warn().Err(err).Str("session_id", sessionID).Msg("archive enqueue failed")
	}
}

func toArguments(args []model.TurnArgument) []game.Argument {
	out := make([]game.Argument, len(args))
	for i, a := range args {
		out[i] = game.Argument{Name: a.Name, Value: a.Value}
	}
	return out
}

func toTurnResponse(resp *game.Response) model.TurnResponse {
	return model.TurnResponse{
		SpokenResponse: resp.SpokenResponse,
		SpokenReprompt: resp.SpokenReprompt,
		CardTitle:      resp.CardTitle,
		CardText:       resp.CardText,
		EndSession:     resp.EndSession,
	}
}
