package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/finwell/finhealth/internal/model"
)

var (
	questionsTracker string
	questionsLang    string
	questionsProfile string
	questionsJSON    bool
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the resolved survey question set",
	Long:  "Resolves the question set for a tracker (or the default set) and prints each question in the requested language.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var profile model.Profile
		if questionsProfile != "" {
			if err := readJSONFile(questionsProfile, &profile); err != nil {
				return err
			}
		}

		questions, err := env.Service.Questions(ctx, questionsTracker, questionsLang, profile)
		if err != nil {
			return err
		}

		if questionsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(questions), "questions: encode")
		}

		for i, q := range questions {
			fmt.Printf("%2d. [%s] %s\n", i+1, q.Pillar, q.Text)
			for _, o := range q.Options {
				fmt.Printf("      %d) %s\n", o.Value, o.Label)
			}
		}
		fmt.Printf("\n%d questions\n", len(questions))
		return nil
	},
}

func init() {
	questionsCmd.Flags().StringVar(&questionsTracker, "tracker", "", "tracker URL key")
	questionsCmd.Flags().StringVar(&questionsLang, "lang", "en", "question language")
	questionsCmd.Flags().StringVar(&questionsProfile, "profile", "", "path to JSON respondent profile file")
	questionsCmd.Flags().BoolVar(&questionsJSON, "json", false, "print questions as JSON")
	rootCmd.AddCommand(questionsCmd)
}
