package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codecritic/codecritic/internal/config"
	"github.com/codecritic/codecritic/internal/output"
	"github.com/codecritic/codecritic/internal/review"
)

var (
	flagLanguage string
	flagType     string
	flagFormat   string
	flagOut      string
)

var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "Review a source file from the command line",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReview(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
	},
}

func init() {
	reviewCmd.Flags().StringVar(&flagLanguage, "language", "", "Language of the file (default: from extension)")
	reviewCmd.Flags().StringVar(&flagType, "type", string(review.ReviewComprehensive), "Review type (comprehensive, syntax-only, security-focus, performance-focus)")
	reviewCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json, markdown)")
	reviewCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
}

func runReview(path string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	language := flagLanguage
	if language == "" {
		language = languageFromExt(path)
	}

	reviewType := review.ReviewType(flagType)
	if !review.ValidReviewType(reviewType) {
		return fmt.Errorf("unknown review type: %s", flagType)
	}

	engine, err := buildEngine(cfg, log)
	if err != nil {
		return err
	}

	result := engine.Review(context.Background(), review.Submission{
		Language: language,
		Type:     reviewType,
		Code:     string(code),
	})

	return output.WriteResult(result, flagFormat, flagOut)
}

var extLanguages = map[string]string{
	".js":   "JavaScript",
	".jsx":  "JavaScript",
	".ts":   "TypeScript",
	".tsx":  "TypeScript",
	".py":   "Python",
	".java": "Java",
	".cpp":  "C++",
	".cc":   "C++",
	".h":    "C++",
	".go":   "Go",
	".rb":   "Ruby",
	".rs":   "Rust",
	".php":  "PHP",
	".cs":   "C#",
}

func languageFromExt(path string) string {
	if lang, ok := extLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "plaintext"
}
