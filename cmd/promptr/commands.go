package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/sant0-9/promptr/internal/pipeline"
	"github.com/sant0-9/promptr/internal/prompt"
	"github.com/sant0-9/promptr/internal/registry"
)

var errNoInput = errors.New("no input: pass text as arguments or on stdin")

func optimizeCmd(g *globals) *cobra.Command {
	var (
		filePath    string
		fileType    string
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "optimize [text]",
		Short: "Optimize one prompt and print the result as JSON",
		Long: `Optimize one prompt and print the result as JSON.

Examples:
  promptr optimize "write a python function to dedupe a list"
  promptr optimize --file main.go "review this"
  echo "explain transformers" | promptr optimize --offline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			req := pipeline.Request{Text: text}
			if filePath != "" {
				data, err := os.ReadFile(filePath)
				if err != nil {
					return fmt.Errorf("read attachment: %w", err)
				}
				req.FileContent = string(data)
				req.FileType = prompt.ParseFileType(fileType)
				if fileType == "" {
					req.FileType = fileTypeFromPath(filePath)
				}
			}

			var reg *prometheus.Registry
			if showMetrics {
				reg = prometheus.NewRegistry()
			}

			opt, err := g.optimizer(cmd, registerer(reg))
			if err != nil {
				return err
			}

			res := opt.Optimize(cmd.Context(), req)
			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}

			if reg != nil {
				return writeMetrics(cmd.ErrOrStderr(), reg)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Attach a file as context")
	cmd.Flags().StringVarP(&fileType, "file-type", "t", "", "Attachment type (documents, code, images, audio); inferred from the extension when empty")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print prometheus metrics to stderr after the result")

	return cmd
}

func batchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Optimize prompts read from stdin, separated by ---",
		Long: `Optimize every prompt read from stdin and print a JSON array.

Prompts are separated by ---. Entries of five characters or fewer are
skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			opt, err := g.optimizer(cmd, nil)
			if err != nil {
				return err
			}

			results := opt.OptimizeBatch(cmd.Context(), string(data))
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
}

func classifyCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify a request and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			opt, err := g.optimizer(cmd, nil)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), opt.Classify(cmd.Context(), text))
		},
	}
}

func versionsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "versions [domain]",
		Short: "List the prompt versions generated for each domain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domains := prompt.Domains
			if len(args) == 1 {
				d, ok := prompt.ParseDomain(args[0])
				if !ok {
					return fmt.Errorf("unknown domain %q", args[0])
				}
				domains = []prompt.Domain{d}
			}

			if asJSON {
				out := make(map[prompt.Domain][]prompt.VersionLabel, len(domains))
				for _, d := range domains {
					out[d] = registry.VersionLabels(d)
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range domains {
				fmt.Fprintf(w, "%s\n", d)
				for _, l := range registry.VersionLabels(d) {
					fmt.Fprintf(w, "  %s\t%s\t%s\n", l.Key, l.Name, l.Description)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// readInput joins args, or reads stdin when there are none
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errNoInput
	}
	return text, nil
}

var codeExts = map[string]bool{
	".go": true, ".py": true, ".js": true, ".ts": true, ".tsx": true, ".jsx": true,
	".java": true, ".rs": true, ".c": true, ".h": true, ".cpp": true, ".cs": true,
	".rb": true, ".php": true, ".swift": true, ".kt": true, ".sql": true, ".sh": true,
	".ipynb": true, ".r": true, ".scala": true,
}

func fileTypeFromPath(path string) prompt.FileType {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case codeExts[ext]:
		return prompt.FileCode
	case ext == ".png", ext == ".jpg", ext == ".jpeg", ext == ".gif", ext == ".webp":
		return prompt.FileImages
	case ext == ".mp3", ext == ".wav", ext == ".m4a", ext == ".flac":
		return prompt.FileAudio
	default:
		return prompt.FileDocuments
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// registerer keeps a nil registry from becoming a non-nil interface
func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return nil
	}
	return reg
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
