package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/finwell/finhealth/internal/model"
	"github.com/finwell/finhealth/internal/report"
	"github.com/finwell/finhealth/internal/survey"
)

var (
	scoreAnswersFile string
	scoreProfileFile string
	scoreTracker     string
	scoreLang        string
	scoreSave        bool
	scoreJSON        bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a survey from an answers file",
	Long:  "Reads a JSON object of question id to Likert value, scores it against the resolved question set, and prints the localized report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var answers map[string]int
		if err := readJSONFile(scoreAnswersFile, &answers); err != nil {
			return err
		}

		var profile model.Profile
		if scoreProfileFile != "" {
			if err := readJSONFile(scoreProfileFile, &profile); err != nil {
				return err
			}
		}

		var result *model.SurveyResult
		if scoreSave {
			sub, err := env.Service.Submit(ctx, survey.SubmitRequest{
				TrackerKey: scoreTracker,
				Language:   scoreLang,
				Answers:    answers,
				Profile:    profile,
			})
			if err != nil {
				return err
			}
			fmt.Printf("submission id: %s\n\n", sub.ID)
			result = sub.Result
		} else {
			qs, err := env.Service.QuestionSet(ctx, scoreTracker, profile)
			if err != nil {
				return err
			}
			result, err = env.Service.Score(qs, answers, scoreLang)
			if err != nil {
				return err
			}
		}

		if scoreJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(result), "score: encode result")
		}

		fmt.Print(report.Render(env.Service.Resolver(), result))
		return nil
	},
}

func readJSONFile(path string, dest any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "score: read %s", path)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return eris.Wrapf(err, "score: parse %s", path)
	}
	return nil
}

func init() {
	scoreCmd.Flags().StringVar(&scoreAnswersFile, "answers", "", "path to JSON answers file (required)")
	scoreCmd.Flags().StringVar(&scoreProfileFile, "profile", "", "path to JSON respondent profile file")
	scoreCmd.Flags().StringVar(&scoreTracker, "tracker", "", "tracker URL key")
	scoreCmd.Flags().StringVar(&scoreLang, "lang", "en", "report language")
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "persist the submission")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print the raw result as JSON")
	_ = scoreCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(scoreCmd)
}
