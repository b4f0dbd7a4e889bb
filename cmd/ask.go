package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/aloud/internal/assist"
	"github.com/abhisek/aloud/internal/catalog"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Request assistance for one task",
	Example: `  aloud ask --task 7 --challenge "Reverse a linked list"
  pbpaste | aloud ask --style pseudocode --challenge-file -
  aloud ask --task 4 --challenge-file problem.txt --local --html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		task, err := resolveTask(cmd, cat)
		if err != nil {
			return err
		}
		challenge, err := readChallenge(cmd)
		if err != nil {
			return err
		}
		suggested, _ := cmd.Flags().GetString("suggested")

		deps, err := buildCompleter(ctx, cmd, cfg, log)
		if err != nil {
			return err
		}
		defer deps.Close()

		out := cmd.OutOrStdout()
		asHTML, _ := cmd.Flags().GetBool("html")

		reply, err := deps.dispatcher(log).Dispatch(ctx, task, challenge, suggested)
		if err != nil {
			if asHTML {
				fmt.Fprintln(out, assist.RenderErrorHTML(err))
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), assist.UserMessage(err))
			}
			return err
		}

		if asHTML {
			fmt.Fprintln(out, assist.RenderHTML(*reply))
		} else {
			fmt.Fprintln(out, assist.RenderText(*reply))
		}
		return nil
	},
}

// resolveTask picks the task from --task (1-based) or builds an ad-hoc one
// from --style.
func resolveTask(cmd *cobra.Command, cat *catalog.Catalog) (catalog.Task, error) {
	flags := cmd.Flags()
	if flags.Changed("task") {
		n, _ := flags.GetInt("task")
		task, ok := cat.Task(n - 1)
		if !ok {
			return catalog.Task{}, fmt.Errorf("task %d out of range 1-%d", n, cat.Len())
		}
		return task, nil
	}
	if v, _ := flags.GetString("style"); v != "" {
		style, err := catalog.ParseStyle(v)
		if err != nil {
			return catalog.Task{}, err
		}
		return catalog.Task{Name: "Ad-hoc " + v, Style: style}, nil
	}
	return catalog.Task{}, errors.New("one of --task or --style is required")
}

// readChallenge returns --challenge, or the contents of --challenge-file
// where "-" reads stdin.
func readChallenge(cmd *cobra.Command) (string, error) {
	flags := cmd.Flags()
	text, _ := flags.GetString("challenge")
	path, _ := flags.GetString("challenge-file")
	if text != "" && path != "" {
		return "", errors.New("use either --challenge or --challenge-file, not both")
	}
	if path == "" {
		return text, nil
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read challenge: %w", err)
	}
	return string(data), nil
}

func init() {
	f := askCmd.Flags()
	f.IntP("task", "t", 0, "Task number from the catalog (1-based)")
	f.StringP("style", "s", "", "Assistance style: meta, pseudocode, iterative, breakDebug, code")
	f.StringP("challenge", "c", "", "Challenge question text")
	f.StringP("challenge-file", "f", "", "Read the challenge from a file, or - for stdin")
	f.String("suggested", "", "Your own solution, sent as context")
	f.Bool("html", false, "Print an HTML fragment instead of text")
}
