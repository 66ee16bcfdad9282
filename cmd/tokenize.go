package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clems4ever/cmdtree/tokenizer"
)

var maxTokens int

// tokenizeCmd represents the tokenize command
var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [line]",
	Short: "Split command lines into tokens",
	Long: `Split a command line into tokens the way the console does and print
them. Without an argument every line of standard input is tokenized.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := maxTokens
		if n == 0 {
			n = appCfg.Console.MaxTokens
		}
		tok := tokenizer.NewTokenizer(n)

		if len(args) == 1 {
			printTokens(cmd.OutOrStdout(), tok, args[0])
			return nil
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			printTokens(cmd.OutOrStdout(), tok, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			printError(cmd, "reading input", err)
			return err
		}
		return nil
	},
}

func printTokens(w io.Writer, tok *tokenizer.Tokenizer, line string) {
	tokens, truncated := tok.Split(line)
	fmt.Fprintf(w, "Tokens (%d): [%s]\n", len(tokens), strings.Join(tokens, " | "))
	if truncated {
		fmt.Fprintf(w, "Truncated after %d tokens\n", tok.MaxTokens())
	}
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)

	tokenizeCmd.Flags().IntVarP(&maxTokens, "max-tokens", "n", 0, "Token bound (default from config)")
}
