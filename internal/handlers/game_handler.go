package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/truthlens/truthlens-backend/internal/dto"
	"github.com/truthlens/truthlens-backend/internal/models"
	"github.com/truthlens/truthlens-backend/internal/services"
)

const xpPerDifficulty = 10

// GameHandler serves the real-or-fake trivia game.
type GameHandler struct {
	challenges  ChallengeStore
	users       UserStore
	leaderboard LeaderboardStore
}

func NewGameHandler(challenges ChallengeStore, users UserStore, leaderboard LeaderboardStore) *GameHandler {
	return &GameHandler{challenges: challenges, users: users, leaderboard: leaderboard}
}

// ListChallenges handles GET /game/challenges. Correct answers are
// stripped from the response.
func (h *GameHandler) ListChallenges(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	difficulty := c.QueryInt("difficulty", 0)
	if difficulty < 0 || difficulty > 5 {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "difficulty must be between 1 and 5")
	}

	challenges, err := h.challenges.Random(limit, difficulty)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch challenges", "")
	}

	views := make([]dto.ChallengeView, 0, len(challenges))
	for i := range challenges {
		views = append(views, dto.NewChallengeView(&challenges[i]))
	}
	return c.JSON(fiber.Map{"challenges": views, "count": len(views)})
}

// SubmitAnswer handles POST /game/answer. Correct answers earn
// difficulty x 10 XP; a missing user record skips persistence and
// reports zero earned XP rather than claiming XP that was never saved.
func (h *GameHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	answer := strings.ToLower(strings.TrimSpace(req.Answer))
	if answer != models.AnswerReal && answer != models.AnswerFake {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "answer must be \"real\" or \"fake\"")
	}
	challengeID, err := uuid.Parse(req.ChallengeID)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Validation failed", "challengeId must be a valid UUID")
	}

	challenge, err := h.challenges.GetByID(challengeID)
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			return fail(c, fiber.StatusNotFound, "Challenge not found", "")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to submit answer", "")
	}

	correct := answer == challenge.CorrectAnswer
	xpEarned := 0
	if correct {
		xpEarned = challenge.Difficulty * xpPerDifficulty
	}

	resp := dto.AnswerResponse{
		Correct:     correct,
		XPEarned:    xpEarned,
		Explanation: challenge.Explanation,
	}

	userID := callerUUID(c)
	if userID == nil && req.UserID != "" {
		if parsed, parseErr := uuid.Parse(req.UserID); parseErr == nil {
			userID = &parsed
		}
	}
	if userID == nil {
		return c.JSON(resp)
	}

	user, err := h.users.GetByID(*userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			slog.Warn("game answer for unknown user, skipping xp persistence", "user_id", userID.String())
			return c.JSON(resp)
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to submit answer", "")
	}

	if xpEarned > 0 {
		user, err = h.users.AddXP(user.ID, xpEarned)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, "Failed to submit answer", "")
		}
		if _, err := h.leaderboard.Upsert(user.ID, user.XP, user.Level()); err != nil {
			slog.Error("failed to update leaderboard entry", "user_id", user.ID.String(), "error", err)
		}
	}

	resp.Persisted = true
	resp.UserStats = dto.UserStats{TotalXP: user.XP, Level: user.Level(), XPEarned: xpEarned}
	return c.JSON(resp)
}

// Leaderboard handles GET /game/leaderboard. There is a single
// all-time table; the period parameter is accepted and echoed only.
func (h *GameHandler) Leaderboard(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	period := c.Query("period", "alltime")

	entries, total, err := h.leaderboard.Top(page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch leaderboard", "")
	}

	rows := make([]dto.LeaderboardRow, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		row := dto.LeaderboardRow{
			Rank:        (page-1)*limit + i + 1,
			UserID:      entry.UserID.String(),
			XP:          entry.XP,
			Level:       entry.Level,
			LastUpdated: entry.LastUpdated,
		}
		if entry.User != nil {
			row.UserName = entry.User.Name
			row.Badges = entry.User.Badges
		}
		rows = append(rows, row)
	}

	return c.JSON(fiber.Map{
		"leaderboard": rows,
		"period":      period,
		"pagination":  dto.NewPagination(page, limit, total),
	})
}

// Stats handles GET /game/stats: total challenge count plus the
// caller's XP, level and leaderboard position when authenticated.
func (h *GameHandler) Stats(c *fiber.Ctx) error {
	totalChallenges, err := h.challenges.Count()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch game stats", "")
	}

	resp := fiber.Map{"total_challenges": totalChallenges}

	if userID := callerUUID(c); userID != nil {
		user, err := h.users.GetByID(*userID)
		if err == nil {
			position, posErr := h.leaderboard.Position(user.ID)
			if posErr != nil {
				position = 0
			}
			resp["user"] = fiber.Map{
				"xp":       user.XP,
				"level":    user.Level(),
				"position": position,
			}
		} else if !errors.Is(err, services.ErrUserNotFound) {
			return fail(c, fiber.StatusInternalServerError, "Failed to fetch game stats", "")
		}
	}

	return c.JSON(resp)
}
