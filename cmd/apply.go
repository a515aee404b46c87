package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobsieve/jobsieve/internal/decision"
	"github.com/jobsieve/jobsieve/internal/logger"
)

var applyCmd = &cobra.Command{
	Use:   "apply <posting-id>",
	Short: "Start the apply workflow for a posting, if its decision allows it",
	Args:  cobra.ExactArgs(1),
}

var learnCmd = &cobra.Command{
	Use:   "learn <posting-id>",
	Short: "Start the learning workflow for a posting, if its decision allows it",
	Args:  cobra.ExactArgs(1),
}

func init() {
	applyCmd.Run = func(cmd *cobra.Command, args []string) {
		gateAndRun(args[0], "apply", func(store *decision.Store, id string) (bool, string) {
			return store.CanApply(id)
		})
	}
	learnCmd.Run = func(cmd *cobra.Command, args []string) {
		gateAndRun(args[0], "learn", func(store *decision.Store, id string) (bool, string) {
			return store.CanLearn(id)
		})
	}

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(learnCmd)

	for _, cmd := range []*cobra.Command{applyCmd, learnCmd} {
		cmd.Flags().String("decisions-file", "", "decisions file location. Default is ~/."+app+"/decisions.json.")
	}
}

// gateAndRun consults the decision store before any side effect. The
// reason string is printed verbatim: it is written for the candidate.
func gateAndRun(id, workflow string, gate func(*decision.Store, string) (bool, string)) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	store := decision.NewStore(decision.NewFileStorage(gateDecisionsPath(workflow)), zlog)

	allowed, reason := gate(store, id)
	if !allowed {
		fmt.Printf("%s blocked for %s: %s\n", workflow, id, reason)
		os.Exit(1)
	}

	fmt.Printf("%s cleared for %s: %s\n", workflow, id, reason)

	// The actual side effect (submitting the application, scheduling
	// study time) belongs to the external workflow tooling; this
	// command's job ends at the gate.
	zlog.Info("gate passed",
		zap.String("workflow", workflow),
		zap.String("posting_id", id),
	)
}

// gateDecisionsPath resolves the decisions file for the gate commands,
// which run without the full config file.
func gateDecisionsPath(workflow string) string {
	for _, cmd := range []*cobra.Command{applyCmd, learnCmd} {
		if cmd.Name() != workflow {
			continue
		}
		if flag := cmd.Flag("decisions-file"); flag != nil && flag.Value.String() != "" {
			return flag.Value.String()
		}
	}
	return decisionsPath(nil)
}
