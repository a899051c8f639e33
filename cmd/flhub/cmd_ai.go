package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *cli) aiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Ask the production assistant",
		Long: `Ask the production assistant.

With a stored Gemini API key, questions go to the configured model. Without
one, or when the remote call fails, answers come from the offline responder.`,
	}

	ask := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the FL Studio guru a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer := c.hub.Gateway.AskGuru(cmd.Context(), strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	recipe := &cobra.Command{
		Use:   "recipe <sound...>",
		Short: "Get a step-by-step sound design recipe",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.hub.Gateway.SoundRecipe(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
	}

	var sparkJSON bool
	spark := &cobra.Command{
		Use:   "spark <genre>",
		Short: "Get a creative starting point for a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.hub.Gateway.Spark(cmd.Context(), args[0])
			if sparkJSON {
				return printJSON(cmd.OutOrStdout(), s)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, s.Title)
			fmt.Fprintf(w, "BPM:        %s\n", s.BPM)
			fmt.Fprintf(w, "Key:        %s\n", s.Key)
			fmt.Fprintf(w, "Constraint: %s\n", s.Constraint)
			return nil
		},
	}
	spark.Flags().BoolVar(&sparkJSON, "json", false, "Print the spark as JSON")

	cmd.AddCommand(ask, recipe, spark, c.aiKeyCmd())
	return cmd
}

func (c *cli) aiKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored Gemini API key",
	}

	set := &cobra.Command{
		Use:   "set [key]",
		Short: "Store an API key (reads stdin when no argument is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				sc := bufio.NewScanner(cmd.InOrStdin())
				if sc.Scan() {
					key = sc.Text()
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}
			if strings.TrimSpace(key) == "" {
				return errors.New("api key is empty")
			}
			if err := c.hub.Gateway.SetAPIKey(key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key saved.")
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm"},
		Short:   "Delete the stored API key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.hub.Gateway.RemoveAPIKey(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed.")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether answers come from the model or the offline responder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.hub.Gateway.HasAPIKey() {
				fmt.Fprintf(cmd.OutOrStdout(), "API key set: using %s over %s\n", c.hub.Settings.AIModel, c.hub.Settings.AITransport)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "No API key: using offline responses")
			return nil
		},
	}

	cmd.AddCommand(set, remove, status)
	return cmd
}
