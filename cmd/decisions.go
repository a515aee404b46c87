package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobsieve/jobsieve/internal/decision"
	"github.com/jobsieve/jobsieve/internal/logger"
)

var decisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "List every recorded decision, or clear the store",
	Run: func(cmd *cobra.Command, _ []string) {
		showDecisions(cmd)
	},
}

func init() {
	rootCmd.AddCommand(decisionsCmd)

	decisionsCmd.Flags().Bool("clear", false, "empty the decision store")
	decisionsCmd.Flags().String("decisions-file", "", "decisions file location. Default is ~/."+app+"/decisions.json.")
}

func showDecisions(cmd *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	path := cmd.Flag("decisions-file").Value.String()
	if path == "" {
		path = decisionsPath(nil)
	}

	store := decision.NewStore(decision.NewFileStorage(path), zlog)

	if cmd.Flag("clear").Value.String() == "true" {
		if err := store.Clear(); err != nil {
			zlog.Fatal("clearing decisions", zap.Error(err))
		}
		zlog.Info("decision store cleared", zap.String("path", path))
		return
	}

	all := store.All()
	if len(all) == 0 {
		zlog.Info("no decisions recorded", zap.String("path", path))
		return
	}

	pretty, _ := json.MarshalIndent(all, "", "  ")
	fmt.Println(string(pretty))
	zlog.Info("decisions listed", zap.Int("count", len(all)))
}
