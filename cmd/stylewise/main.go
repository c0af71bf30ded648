// Command stylewise runs the classifiers and the product importer from the shell.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/raushankrgupta/stylewise/config"
	"github.com/raushankrgupta/stylewise/models"
	"github.com/raushankrgupta/stylewise/scrapers"
	"github.com/raushankrgupta/stylewise/scrapers/base"
	"github.com/raushankrgupta/stylewise/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stylewise",
		Short:         "StyleWise body, face and style analysis",
		SilenceUsage: true,
	}
	root.AddCommand(
		newBMICmd(),
		newBodyCmd(),
		newFaceCmd(),
		newQuizCmd(),
		newOutfitsCmd(),
		newImportCmd(),
	)
	return root
}

func newBMICmd() *cobra.Command {
	var height, weight float64
	var unit string
	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Classify BMI from height and weight",
		Example: `  stylewise bmi --height 68 --weight 150
  stylewise bmi --height 170 --weight 80 --unit metric`,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := analysis.ParseUnitSystem(unit)
			if err != nil {
				return err
			}
			result, err := analysis.ClassifyBMI(height, weight, u)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().Float64Var(&height, "height", 0, "height (inches, or cm with --unit metric)")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight (pounds, or kg with --unit metric)")
	cmd.Flags().StringVar(&unit, "unit", string(analysis.Imperial), "imperial or metric")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func newBodyCmd() *cobra.Command {
	var m analysis.BodyMeasurements
	var gender string
	cmd := &cobra.Command{
		Use:   "body",
		Short: "Classify body shape from bust, waist and hips",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := analysis.ClassifyBodyShape(m)
			if err != nil {
				return err
			}
			g := analysis.ParseGender(gender)
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"result":      result,
				"description": analysis.BodyShapeDescription(result.Type, g),
				"advice":      analysis.BodyShapeAdvice(result.Type, g),
			})
		},
	}
	cmd.Flags().Float64Var(&m.Bust, "bust", 0, "bust or chest girth")
	cmd.Flags().Float64Var(&m.Waist, "waist", 0, "waist girth")
	cmd.Flags().Float64Var(&m.Hips, "hips", 0, "hip girth")
	cmd.Flags().StringVar(&gender, "gender", string(analysis.Female), "female or male")
	return cmd
}

func newFaceCmd() *cobra.Command {
	var m analysis.FaceMeasurements
	cmd := &cobra.Command{
		Use:   "face",
		Short: "Classify face shape from four facial measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := analysis.ClassifyFaceShape(m)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"result":      result,
				"description": analysis.FaceShapeDescription(result.Type),
				"advice":      analysis.FaceShapeAdvice(result.Type),
			})
		},
	}
	cmd.Flags().Float64Var(&m.FaceLength, "length", 0, "face length")
	cmd.Flags().Float64Var(&m.FaceWidth, "width", 0, "face width at the cheekbones")
	cmd.Flags().Float64Var(&m.JawWidth, "jaw", 0, "jaw width")
	cmd.Flags().Float64Var(&m.ForeheadWidth, "forehead", 0, "forehead width")
	return cmd
}

func newQuizCmd() *cobra.Command {
	var answers map[string]string
	var gender string
	cmd := &cobra.Command{
		Use:     "quiz",
		Short:   "Score style quiz answers",
		Example: `  stylewise quiz --answer lifestyle=professional,personality=confident,colors=neutral,occasions=social,comfort=balanced`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scores, err := analysis.ScoreStyles(analysis.Answers(answers), analysis.QuizQuestions(), analysis.Archetypes(analysis.ParseGender(gender)))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"scores":     scores,
				"top_styles": analysis.TopStyles(scores, analysis.TopStyleCount),
			})
		},
	}
	cmd.Flags().StringToStringVar(&answers, "answer", nil, "question=option pairs")
	cmd.Flags().StringVar(&gender, "gender", string(analysis.Female), "female or male")
	return cmd
}

func newOutfitsCmd() *cobra.Command {
	var gender, body, face, occasion string
	cmd := &cobra.Command{
		Use:   "outfits",
		Short: "Rank catalog outfits for a gender and known shapes",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := analysis.Profile{Gender: analysis.ParseGender(gender)}
			if body != "" {
				p.BodyShape = &analysis.BodyShapeResult{Type: analysis.BodyShape(strings.ToLower(body))}
			}
			if face != "" {
				p.FaceShape = &analysis.FaceShapeResult{Type: analysis.FaceShape(strings.ToLower(face))}
			}
			return printJSON(cmd.OutOrStdout(), analysis.SuggestOutfits(p, occasion))
		},
	}
	cmd.Flags().StringVar(&gender, "gender", string(analysis.Female), "female or male")
	cmd.Flags().StringVar(&body, "body", "", "known body shape")
	cmd.Flags().StringVar(&face, "face", "", "known face shape")
	cmd.Flags().StringVar(&occasion, "occasion", "", "work, casual, evening (empty for all)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [url]",
		Short: "Scrape a product page and show its wardrobe category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := utils.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			importer := scrapers.NewImporter(base.Options{
				BrowserFallback:  cfg.BrowserFallback,
				ChromeDriverPath: cfg.ChromeDriverPath,
			}, logger)
			product, err := importer.Import(cmd.Context(), args[0])
			if err != nil {
				logger.Error("import failed", zap.String("url", args[0]), zap.Error(err))
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"product": product,
				"item":    models.NewWardrobeItem("", product),
			})
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
