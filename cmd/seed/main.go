// Command seed loads the challenge fixtures and ensures the admin
// account exists. Safe to run repeatedly.
package main

import (
	"log/slog"
	"os"

	"github.com/subosito/gotenv"
	"github.com/truthlens/truthlens-backend/internal/config"
	"github.com/truthlens/truthlens-backend/internal/database"
	"github.com/truthlens/truthlens-backend/internal/logging"
	"github.com/truthlens/truthlens-backend/internal/models"
	"github.com/truthlens/truthlens-backend/internal/services"
)

var challenges = []models.Challenge{
	{
		Title:         "Miracle Cure Claim",
		MediaType:     "text",
		Prompt:        "Scientists discover miracle cure for all diseases!",
		CorrectAnswer: models.AnswerFake,
		Explanation:   `Claims of "miracle cures" are typically false. Real medical breakthroughs go through rigorous testing and peer review.`,
		Difficulty:    1,
	},
	{
		Title:         "WHO Handwashing Recommendation",
		MediaType:     "text",
		Prompt:        "The World Health Organization recommends washing hands regularly to prevent disease spread.",
		CorrectAnswer: models.AnswerReal,
		Explanation:   "This is a well-established public health recommendation from WHO, supported by scientific evidence.",
		Difficulty:    1,
	},
	{
		Title:         "Celebrity Endorsement Image",
		MediaType:     "image",
		Prompt:        "A photo showing a celebrity endorsing a product",
		ImageURL:      "/samples/celebrity-endorsement.jpg",
		CorrectAnswer: models.AnswerFake,
		Explanation:   "Celebrity endorsements in images can be manipulated or taken out of context. Always verify from official sources.",
		Difficulty:    2,
	},
	{
		Title:         "Election Results Premature",
		MediaType:     "text",
		Prompt:        "Breaking: Major election results announced before polls close!",
		CorrectAnswer: models.AnswerFake,
		Explanation:   "Election results are never announced before polls officially close. This violates electoral procedures.",
		Difficulty:    2,
	},
	{
		Title:         "NASA Exoplanet Discovery",
		MediaType:     "text",
		Prompt:        "NASA confirms new exoplanet discovery using James Webb Space Telescope.",
		CorrectAnswer: models.AnswerReal,
		Explanation:   "NASA regularly announces exoplanet discoveries through official channels and peer-reviewed publications.",
		Difficulty:    3,
	},
	{
		Title:         "Vaccine Conspiracy",
		MediaType:     "text",
		Prompt:        "Vaccines contain microchips for tracking people.",
		CorrectAnswer: models.AnswerFake,
		Explanation:   "This is a widely debunked conspiracy theory. Vaccines are thoroughly tested and do not contain tracking devices.",
		Difficulty:    1,
	},
	{
		Title:         "Climate Change Denial",
		MediaType:     "text",
		Prompt:        "Climate change is a hoax created by scientists for funding.",
		CorrectAnswer: models.AnswerFake,
		Explanation:   "Climate change is supported by overwhelming scientific evidence from multiple independent sources worldwide.",
		Difficulty:    2,
	},
	{
		Title:         "Verified News Source",
		MediaType:     "text",
		Prompt:        "Reuters reports breaking news from verified sources with official statements.",
		CorrectAnswer: models.AnswerReal,
		Explanation:   "Reuters is a reputable news agency known for fact-checking and verification before publishing.",
		Difficulty:    3,
	},
	{
		Title:         "Deepfake Video",
		MediaType:     "image",
		Prompt:        "A video showing a politician saying something controversial",
		ImageURL:      "/samples/deepfake-video.jpg",
		CorrectAnswer: models.AnswerFake,
		Explanation:   "Deepfake technology can create convincing fake videos. Always verify from official sources and check for inconsistencies.",
		Difficulty:    4,
	},
	{
		Title:         "Peer-Reviewed Study",
		MediaType:     "text",
		Prompt:        "A study published in Nature journal after peer review shows new findings.",
		CorrectAnswer: models.AnswerReal,
		Explanation:   "Peer-reviewed publications in reputable journals like Nature undergo rigorous scientific scrutiny.",
		Difficulty:    4,
	},
	{
		Title:         "Social Media Rumor",
		MediaType:     "text",
		Prompt:        "Unverified claim shared on social media without sources or citations.",
		CorrectAnswer: models.AnswerFake,
		Explanation:   "Social media posts without credible sources or citations should be treated with skepticism.",
		Difficulty:    1,
	},
	{
		Title:         "Government Health Advisory",
		MediaType:     "text",
		Prompt:        "CDC issues official health advisory based on epidemiological data.",
		CorrectAnswer: models.AnswerReal,
		Explanation:   "Government health agencies like CDC provide evidence-based recommendations from official sources.",
		Difficulty:    3,
	},
	{
		Title:         "Photoshopped Image",
		MediaType:     "image",
		Prompt:        "An image showing unrealistic proportions or signs of manipulation",
		ImageURL:      "/samples/photoshopped.jpg",
		CorrectAnswer: models.AnswerFake,
		Explanation:   "Digital manipulation tools can create convincing fake images. Look for inconsistencies in lighting, shadows, and proportions.",
		Difficulty:    3,
	},
	{
		Title:         "Academic Research Paper",
		MediaType:     "text",
		Prompt:        "Research paper published in Science journal with methodology and data.",
		CorrectAnswer: models.AnswerReal,
		Explanation:   "Academic research in reputable journals includes methodology, data, and peer review for verification.",
		Difficulty:    4,
	},
	{
		Title:         "Clickbait Headline",
		MediaType:     "text",
		Prompt:        "You won't believe what happens next! Shocking revelation!",
		CorrectAnswer: models.AnswerFake,
		Explanation:   "Sensationalist headlines designed to generate clicks often lack substance and credible sources.",
		Difficulty:    1,
	},
}

func main() {
	gotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.Env)

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	challengeService := services.NewChallengeService(database.DB)
	created, skipped := 0, 0
	for i := range challenges {
		challenge := challenges[i]
		exists, err := challengeService.ExistsByTitle(challenge.Title)
		if err != nil {
			slog.Error("failed to check challenge", "title", challenge.Title, "error", err)
			os.Exit(1)
		}
		if exists {
			skipped++
			continue
		}
		if err := challengeService.Create(&challenge); err != nil {
			slog.Error("failed to create challenge", "title", challenge.Title, "error", err)
			os.Exit(1)
		}
		slog.Info("challenge created", "title", challenge.Title)
		created++
	}
	slog.Info("challenge seeding complete", "created", created, "skipped", skipped)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		userService := services.NewUserService(database.DB)
		admin, err := userService.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			slog.Error("failed to seed admin user", "error", err)
			os.Exit(1)
		}
		slog.Info("admin user ready", "email", admin.Email, "id", admin.ID.String())
	} else {
		slog.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seeding")
	}
}
