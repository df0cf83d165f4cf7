package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/vision-tools/internal/textutil"
)

// readInput returns the arguments joined by spaces, or all of stdin when
// there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(b), nil
}

// readItems returns the arguments, or the non-empty lines of stdin when
// there are none.
func readItems(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var items []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			items = append(items, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return items, nil
}

func (a *app) newNumbersCmd() *cobra.Command {
	var (
		image    string
		language string
	)
	cmd := &cobra.Command{
		Use:   "numbers [text...]",
		Short: "Extract the numbers in text",
		Long: `Print every number in the text, one per line with its kind (int or float).
The text is the arguments, stdin, or with --image the text recognized in an
image file. --image needs a binary built with -tags ocr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				nums []textutil.Number
				err  error
			)
			if image != "" {
				if len(args) > 0 {
					return fmt.Errorf("--image cannot be combined with text arguments")
				}
				nums, err = findNumbersInImage(image, language)
			} else {
				var text string
				if text, err = readInput(cmd, args); err != nil {
					return err
				}
				nums, err = textutil.FindNumbers(text)
			}
			if err != nil {
				return err
			}
			for _, n := range nums {
				if err := a.out.Print(n, n.Kind); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "Read the text from an image with OCR")
	cmd.Flags().StringVar(&language, "lang", "eng", "OCR language")
	return cmd
}

func (a *app) newSeparatorCmd() *cobra.Command {
	var (
		from  string
		to    string
		lines bool
	)
	cmd := &cobra.Command{
		Use:   "separator [text...]",
		Short: "Replace a separator in text",
		Long: `Replace every occurrence of --from with --to. With --lines every space is
replaced by a newline instead. The text is the arguments or stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			text = strings.TrimSuffix(text, "\n")
			if lines {
				return a.out.Print(textutil.BreakIntoLines(text))
			}
			return a.out.Print(textutil.ChangeSeparator(text, from, to))
		},
	}
	cmd.Flags().StringVar(&from, "from", "_", "Separator to replace")
	cmd.Flags().StringVar(&to, "to", " ", "Replacement separator")
	cmd.Flags().BoolVar(&lines, "lines", false, "Break the text into one word per line")
	return cmd
}

func (a *app) newFilterCmd() *cobra.Command {
	var (
		must    []string
		exclude bool
		prefix  bool
		suffix  bool
	)
	cmd := &cobra.Command{
		Use:   "filter [item...]",
		Short: "Keep the items matching every required string",
		Long: `Keep the items that contain every --must string, or with --exclude the
items that contain none of them. --prefix and --suffix match at the start or
end instead; both together require equality. Items are the arguments or the
non-empty lines of stdin, and keep their order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readItems(cmd, args)
			if err != nil {
				return err
			}
			var opts []textutil.FilterOption
			if exclude {
				opts = append(opts, textutil.Excluding())
			}
			if prefix {
				opts = append(opts, textutil.MatchPrefix())
			}
			if suffix {
				opts = append(opts, textutil.MatchSuffix())
			}
			kept := textutil.Filter(items, must, opts...)
			a.diag.Debug("filtered", "in", len(items), "out", len(kept))
			for _, item := range kept {
				if err := a.out.Print(item); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&must, "must", nil, "Required string (repeatable)")
	cmd.Flags().BoolVar(&exclude, "exclude", false, "Keep items that match none of the required strings")
	cmd.Flags().BoolVar(&prefix, "prefix", false, "Match at the start of each item")
	cmd.Flags().BoolVar(&suffix, "suffix", false, "Match at the end of each item")
	return cmd
}
