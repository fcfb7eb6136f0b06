package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fitcoach/internal/chat"
	"fitcoach/internal/config"
	"fitcoach/internal/handler"
	"fitcoach/internal/intent"
	"fitcoach/internal/llm"
	"fitcoach/internal/orchestrator"
	"fitcoach/internal/plan"
	"fitcoach/internal/profile"
	"fitcoach/internal/store"
	"fitcoach/internal/template"
	"fitcoach/internal/tools"
	"fitcoach/internal/tools/builtin"
)

var (
	// Global flags
	verbose    bool
	configPath string
	userID     string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fitcoach",
	Short: "fitcoach - conversational diet and fitness assistant",
	Long: `fitcoach is the conversational engine behind a diet/fitness tracker.

It classifies free-form messages, routes them to the right handler, invokes
side-effecting tools (calendar, food diary, workout log, meal plans), and
repairs untrusted model output into bounded, schema-conformant plans.

Run without arguments to start the interactive chat.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.DefaultConfig()
		fmt.Printf("%s %s\n", cfg.Name, cfg.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "fitcoach.yaml", "config file path")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "local", "user identifier for record-store calls")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(versionCmd)
}

// session bundles everything one conversation needs.
type session struct {
	engine  *orchestrator.Engine
	tools   *tools.Registry
	context *chat.Context
}

func newSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var client llm.Client
	if cfg.LLM.APIKey != "" {
		llmCfg := llm.DefaultConfig(cfg.LLM.APIKey)
		llmCfg.BaseURL = cfg.LLM.BaseURL
		llmCfg.Model = cfg.LLM.Model
		llmCfg.Timeout = cfg.LLMTimeout()
		client = llm.NewHTTPClient(llmCfg)
	} else {
		logger.Warn("no API key configured, model-backed answers degrade to fallbacks")
	}

	st := store.NewClient(store.Config{
		BaseURL: cfg.Store.BaseURL,
		APIKey:  cfg.Store.APIKey,
		Timeout: cfg.StoreTimeout(),
	}, logger)

	registry := tools.NewRegistry(logger)
	if err := builtin.RegisterAll(registry, st, client); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	prof := profile.Profile{
		Name:          cfg.Profile.Name,
		Age:           cfg.Profile.Age,
		Gender:        cfg.Profile.Gender,
		WeightKg:      cfg.Profile.WeightKg,
		HeightCm:      cfg.Profile.HeightCm,
		ActivityLevel: cfg.Profile.ActivityLevel,
		Goal:          cfg.Profile.Goal,
	}

	generator := plan.NewGenerator(client, plan.NewHistoryProvider(st, logger), logger)
	handlers := handler.NewDefaultRegistry(handler.Deps{
		Tools:     registry,
		Store:     st,
		LLM:       client,
		Generator: generator,
		Templates: template.DefaultManager(),
		Profile:   prof,
		Logger:    logger,
	})
	classifier := intent.NewClassifier(intent.DefaultDefinitions(), logger)

	engine := orchestrator.NewEngine(classifier, handlers, registry, client,
		orchestrator.Options{ToolFirst: cfg.Engine.ToolFirst && client != nil}, logger)

	return &session{
		engine:  engine,
		tools:   registry,
		context: chat.NewSessionContext(userID),
	}, nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	resp, err := s.engine.ProcessQuery(cmd.Context(), orchestrator.Query{Text: strings.Join(args, " ")}, s.context)
	if err != nil {
		return err
	}
	fmt.Println(resp.Content)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
