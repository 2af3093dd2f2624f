package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lingocraft/lingocraft/internal/translation"
)

func newTranslateCommand() *cobra.Command {
	language := Language(translation.DefaultLanguage)
	var all bool
	command := &cobra.Command{
		Use:   "translate <element>",
		Short: "Print the display name of an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := translation.Default()
			key := args[0]
			if !all {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), table.ElementName(key, language.String()))
				return err
			}

			if !table.Has(key) {
				return fmt.Errorf("unknown element: %s", key)
			}
			for _, languageCode := range table.Languages(key) {
				name, _ := table.Lookup(key, languageCode)
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", languageCode, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	command.Flags().Var(&language, "language", "Language of the name")
	command.Flags().BoolVar(&all, "all", false, "Print the name in every language")
	return command
}
