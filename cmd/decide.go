package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobsieve/jobsieve/internal/ai"
	"github.com/jobsieve/jobsieve/internal/ai/gemini"
	"github.com/jobsieve/jobsieve/internal/decision"
	"github.com/jobsieve/jobsieve/internal/filtering"
	"github.com/jobsieve/jobsieve/internal/jobs"
	"github.com/jobsieve/jobsieve/internal/logger"
	"github.com/jobsieve/jobsieve/internal/scoring"
	"github.com/jobsieve/jobsieve/internal/secrets"
)

const (
	PromptYes             = "Record decisions"
	PromptNo              = "Quit without recording"
	PromptReportByCompany = "Report by company"
	PromptScoredToFile    = "Dump scored postings to file"
)

var errExit = errors.New("exit requested")

var decidePrompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptYes, PromptNo, PromptReportByCompany, PromptScoredToFile},
}

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Filter and score postings, then record a verdict per posting",
	Run: func(cmd *cobra.Command, _ []string) {
		decide(cmd)
	},
}

func init() {
	rootCmd.AddCommand(decideCmd)

	decideCmd.Flags().StringP("postings", "p", "", "postings file produced by the scraper. Overrides the config value.")
	decideCmd.Flags().BoolP("auto-approve", "y", false, "record decisions without asking for confirmation")
	decideCmd.Flags().Bool("ai", false, "ask the configured AI advisor for a non-binding second opinion")
	decideCmd.Flags().String("decisions-file", "", "decisions file location. Default is ~/."+app+"/decisions.json.")

	viper.BindPFlag("decisions-file", decideCmd.Flags().Lookup("decisions-file"))
}

// scoredPosting pairs one surviving posting with its evaluation.
type scoredPosting struct {
	Posting *jobs.JobPosting    `json:"posting"`
	Score   *scoring.MatchScore `json:"score"`
}

// decide is the main pipeline command: load, filter, score, record.
func decide(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobsieve", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if len(config.Profile) == 0 {
		logger.Fatal("candidate profile is required under the profile key")
	}

	profile, err := jobs.DecodeProfile(config.Profile)
	if err != nil {
		logger.Fatal("decoding candidate profile", zap.Error(err))
	}

	weights := scoring.DefaultWeights()
	if config.Weights != nil {
		weights = *config.Weights
	}

	engine, err := scoring.NewEngine(weights)
	if err != nil {
		logger.Fatal("building scoring engine", zap.Error(err))
	}

	postingsFile := cmd.Flag("postings").Value.String()
	if postingsFile == "" {
		postingsFile = config.PostingsFile
	}
	if postingsFile == "" {
		logger.Fatal("postings file is required",
			zap.String("hint", "pass --postings or set postings-file in the configuration file"),
		)
	}

	postings, err := jobs.LoadPostings(postingsFile)
	if err != nil {
		logger.Fatal("loading postings", zap.Error(err))
	}

	logger.Info("loaded postings", zap.Int("count", postings.Len()))

	if postings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings found"))
		return
	}

	filters := filtering.New(filtering.DefaultSteps(profile), logger)

	filtered, err := filters.Run(ctx, postings)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if filtered.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	scored, err := scorePostings(engine, filtered, profile)
	if err != nil {
		logger.Fatal("scoring failed", zap.Error(err))
	}

	for _, s := range scored {
		logger.Info("scored posting",
			zap.String("posting_id", s.Posting.ID),
			zap.String("title", s.Posting.Title),
			zap.String("company", s.Posting.Company),
			zap.Float64("overall", s.Score.OverallScore),
			zap.String("action", s.Score.RecommendedAction.String()),
			zap.Float64("confidence", s.Score.Confidence),
			zap.Int("weeks_to_ready", s.Score.EstimatedWeeksToReady),
		)
		logger.Debug("explanation",
			zap.String("posting_id", s.Posting.ID),
			zap.Strings("dimensions", s.Score.Explanation.Dimensions),
			zap.Strings("strengths", s.Score.Explanation.Strengths),
			zap.Strings("risks", s.Score.Explanation.Risks),
		)
	}

	if cmd.Flag("ai").Value.String() == "true" {
		adviseOnPostings(ctx, config.AI, profile, scored, logger)
	}

	store := decision.NewStore(decision.NewFileStorage(decisionsPath(config)), logger)

	autoApprove := cmd.Flag("auto-approve").Value.String() == "true"
	for {
		action := PromptYes
		if !autoApprove {
			var err error
			_, action, err = decidePrompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleDecideAction(action, store, scored, filtered, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if autoApprove {
			return
		}
	}
}

// scorePostings evaluates every surviving posting and ranks the result
// by overall score, best first.
func scorePostings(engine *scoring.Engine, postings *jobs.Postings, profile *jobs.CandidateProfile) ([]scoredPosting, error) {
	scored := make([]scoredPosting, 0, postings.Len())
	for _, posting := range postings.Items {
		score, err := engine.Score(posting, profile)
		if err != nil {
			return nil, fmt.Errorf("score posting %s: %w", posting.ID, err)
		}
		scored = append(scored, scoredPosting{Posting: posting, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.OverallScore > scored[j].Score.OverallScore
	})

	return scored, nil
}

func handleDecideAction(action string, store *decision.Store, scored []scoredPosting, postings *jobs.Postings, logger *zap.Logger) error {
	switch action {
	case PromptYes:
		return recordDecisions(store, scored, logger)
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(postings.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("postings count", postings.Len()))
		return nil
	case PromptScoredToFile:
		filename, err := dumpScored(scored)
		if err != nil {
			return fmt.Errorf("dump scored postings to file: %w", err)
		}
		logger.Info("dumping scored postings to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// recordDecisions maps every score to a verdict and persists it. A
// save failure is reported but does not stop the remaining postings:
// the store keeps the verdicts in memory either way.
func recordDecisions(store *decision.Store, scored []scoredPosting, logger *zap.Logger) error {
	for _, s := range scored {
		d := decision.FromScore(s.Score)
		if err := store.Set(s.Posting.ID, d); err != nil {
			logger.Warn("recording decision failed",
				zap.String("posting_id", s.Posting.ID),
				zap.Error(err),
			)
			continue
		}

		logger.Info("recorded decision",
			zap.String("posting_id", s.Posting.ID),
			zap.String("verdict", string(d.Verdict)),
			zap.Float64("readiness", d.ReadinessScore),
			zap.Int("learning_hours", d.EstimatedLearningHours),
		)
	}

	logger.Info("decisions recorded", zap.Int("count", len(scored)))
	return errExit
}

func dumpScored(scored []scoredPosting) (string, error) {
	collection := &jobs.Postings{}
	for _, s := range scored {
		collection.Items = append(collection.Items, s.Posting)
	}
	return collection.DumpToTmpFile()
}

// adviseOnPostings asks the configured advisor for a second opinion on
// every scored posting. Failures and disagreements are logged and
// nothing else: the advisory never alters the local result.
func adviseOnPostings(ctx context.Context, cfg *AIConfig, profile *jobs.CandidateProfile, scored []scoredPosting, zlog *zap.Logger) {
	advisor, err := newAdvisor(ctx, cfg, zlog)
	if err != nil {
		zlog.Warn("skipping AI advisory", zap.Error(err))
		return
	}

	for _, s := range scored {
		assessment, err := advisor.Evaluate(ctx, profile, s.Posting)
		if err != nil {
			zlog.Warn("AI advisory failed",
				zap.String("posting_id", s.Posting.ID),
				zap.Error(err),
			)
			continue
		}

		zlog.Info("AI second opinion",
			zap.String("posting_id", s.Posting.ID),
			zap.Bool("ai_fit", assessment.Fit),
			zap.Float64("ai_score", assessment.Score),
			zap.String("ai_reason", assessment.Reason),
			zap.Float64("local_overall", s.Score.OverallScore),
		)
	}
}

func newAdvisor(ctx context.Context, cfg *AIConfig, zlog *zap.Logger) (ai.Advisor, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("ai advisory is not enabled in the configuration")
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when the ai advisory is enabled")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	keyFile := cfg.Gemini.APIKeyFile
	if keyFile == "" {
		keyFile = viper.GetString("gemini-api-key-file")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	advisorLogger := logger.WithFields(zlog, logger.AdvisorFields("gemini", cfg.Gemini.Model)...)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, advisorLogger)
	if err != nil {
		return nil, err
	}

	minScore := cfg.MinimumFitScore
	if minScore < 0 {
		minScore = 0
	}

	return gemini.NewAdvisor(generator, minScore, cfg.Gemini.MaxLogLength, advisorLogger), nil
}
