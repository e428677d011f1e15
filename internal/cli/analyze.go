package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ai-style-review-be/internal/bootstrap"
	"ai-style-review-be/internal/config"
	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/llm/factory"
	"ai-style-review-be/pkg/quota"
	"ai-style-review-be/pkg/retrieval"
	"ai-style-review-be/pkg/rules"
	"ai-style-review-be/pkg/segmenter"
	"ai-style-review-be/pkg/suggestion"
)

type analyzeOptions struct {
	Rules    []string
	MaxWords int
	Glossary string
	Suggest  bool
	Offline  bool
	JSON     bool
}

func newAnalyzeCmd(root *RootOptions) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <file|->",
		Short: "Report style issues in an HTML or plain text document",
		Example: `  stylecheck analyze docs/intro.html
  stylecheck analyze --suggest --rules passive_voice,wordiness notes.txt
  cat draft.html | stylecheck analyze --json -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			sourceID, markup, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), cfg, root.logger(), opts, sourceID, markup)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Rules, "rules", nil, "Rule ids to run (default: all configured rules)")
	cmd.Flags().IntVar(&opts.MaxWords, "max-words", 0, "Long sentence threshold (default from RULES_MAX_SENTENCE_WORDS)")
	cmd.Flags().StringVar(&opts.Glossary, "glossary", "", "Terminology glossary YAML file")
	cmd.Flags().BoolVar(&opts.Suggest, "suggest", false, "Resolve a rewrite for every issue")
	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "Never call the remote language model")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the report as JSON")
	return cmd
}

func readInput(stdin io.Reader, arg string) (string, string, error) {
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "stdin", string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", arg, err)
	}
	return strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg)), string(data), nil
}

type report struct {
	Sentences   []segmenter.Sentence    `json:"sentences"`
	Issues      []rules.Issue           `json:"issues"`
	Suggestions []suggestion.Suggestion `json:"suggestions,omitempty"`
}

func runAnalyze(ctx context.Context, w io.Writer, cfg *config.Config, log logger.ILogger, opts *analyzeOptions, sourceID, markup string) error {
	rulesCfg := cfg.Rules
	if len(opts.Rules) > 0 {
		rulesCfg.Enabled = opts.Rules
	}
	if opts.MaxWords > 0 {
		rulesCfg.MaxSentenceWords = opts.MaxWords
	}
	if opts.Glossary != "" {
		rulesCfg.GlossaryPath = opts.Glossary
	}
	engine, err := bootstrap.NewRuleEngine(rulesCfg, log, nil)
	if err != nil {
		return err
	}

	sentences := segmenter.New(segmenter.Options{}).Segment(sourceID, markup)
	rep := report{Sentences: sentences, Issues: engine.Check(sentences)}

	if opts.Suggest && len(rep.Issues) > 0 {
		resolver, err := newCLIResolver(cfg, log, opts.Offline)
		if err != nil {
			return err
		}
		for _, issue := range rep.Issues {
			rep.Suggestions = append(rep.Suggestions, resolver.Resolve(ctx, sentences[issue.SentenceIndex], issue))
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	printReport(w, rep)
	return nil
}

// newCLIResolver mirrors the server wiring with process-local quota and
// reference storage.
func newCLIResolver(cfg *config.Config, log logger.ILogger, offline bool) (*suggestion.Resolver, error) {
	opts := suggestion.Options{
		Quota:   quota.NewMemoryTracker(cfg.Quota.DailyCapacity, nil),
		Logger:  log,
		Timeout: cfg.Ai.Timeout,
		TopK:    cfg.Retrieval.TopK,
	}
	if !offline {
		gen, err := factory.NewLLMProvider(bootstrap.LLMParams(cfg))
		if err != nil {
			return nil, fmt.Errorf("init llm provider: %w", err)
		}
		opts.Generator = gen
	}
	examples, err := retrieval.LoadSeed(cfg.Retrieval.SeedPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load reference seed: %w", err)
	}
	if len(examples) > 0 {
		opts.Retriever = retrieval.NewMemoryStore(examples...)
	}
	return suggestion.NewResolver(opts), nil
}

var (
	indexColor   = color.New(color.FgHiBlack)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	rewriteColor = color.New(color.FgGreen)
	summaryColor = color.New(color.Bold)
)

func printReport(w io.Writer, rep report) {
	bySentence := make(map[int][]int, len(rep.Issues))
	for i, issue := range rep.Issues {
		bySentence[issue.SentenceIndex] = append(bySentence[issue.SentenceIndex], i)
	}

	for _, s := range rep.Sentences {
		idx := bySentence[s.Index]
		if len(idx) == 0 {
			continue
		}
		indexColor.Fprintf(w, "[%d] ", s.Index)
		fmt.Fprintln(w, s.PlainText)
		for _, i := range idx {
			issue := rep.Issues[i]
			sev := infoColor
			if issue.Severity == rules.SeverityWarning {
				sev = warningColor
			}
			fmt.Fprint(w, "    ")
			sev.Fprintf(w, "%-7s", issue.Severity)
			fmt.Fprintf(w, " %-22s %s\n", issue.RuleID, issue.Message)
			if i < len(rep.Suggestions) {
				sg := rep.Suggestions[i]
				if sg.Method == suggestion.MethodUnavailable {
					continue
				}
				fmt.Fprint(w, "      -> ")
				rewriteColor.Fprint(w, sg.RewrittenText)
				fmt.Fprintf(w, " (%s, %s)\n", sg.Method, sg.Confidence)
			}
		}
	}
	summaryColor.Fprintf(w, "%d sentences, %d issues\n", len(rep.Sentences), len(rep.Issues))
}
