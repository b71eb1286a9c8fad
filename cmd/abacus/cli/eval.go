package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/abacus/internal/calc"
	"github.com/felixgeelhaar/abacus/internal/ui"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate an expression and print the result",
	Long: `Types the expression on the keypad and presses "=".
Use ** or ^ for powers and pi or π for the constant.`,
	Example: `  abacus eval "2 + 3 * 4"
  abacus eval "sin(pi/2) + 2**10"
  abacus eval -- -2+3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		text := strings.Join(args, " ")
		_, span := a.obs.StartSpan(cmd.Context(), "eval")
		defer span.End()
		span.SetAttributes(attribute.String("expression", text))

		err = a.session.Enter(text)
		if err == nil {
			err = a.session.Apply(calc.Equals)
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.session.Buffer())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "evaluation failed")
			return err
		}
		span.SetAttributes(attribute.String("result", a.session.Buffer()))
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys [key]...",
	Short: "Press keys and menu items in order, printing the display after each",
	Example: `  abacus keys 5 M+ C MR
  abacus keys 1 0 0 "Temperature Converter"
  abacus keys 6 "*" 7 = History`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		_, span := a.obs.StartSpan(cmd.Context(), "keys")
		defer span.End()
		span.SetAttributes(attribute.Int("keys", len(args)))

		if err := ui.Drive(a.session, ui.TextSurface{Out: cmd.OutOrStdout()}, args); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Run one of the converters on a value",
}

func converterCmd(use, short string, action calc.Action) *cobra.Command {
	return &cobra.Command{
		Use:     use + " [value]",
		Short:   short,
		Example: "  abacus convert " + use + " -- -40",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer a.close()

			_, span := a.obs.StartSpan(cmd.Context(), "convert."+use)
			defer span.End()

			err = a.session.Enter(args[0])
			if err == nil {
				err = a.session.Perform(action)
			}
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), calc.DisplayInvalidInput)
				span.RecordError(err)
				span.SetStatus(codes.Error, "conversion failed")
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.session.Buffer())
			return nil
		},
	}
}

func init() {
	RootCmd.AddCommand(evalCmd)
	RootCmd.AddCommand(keysCmd)
	RootCmd.AddCommand(convertCmd)
	convertCmd.AddCommand(converterCmd("age", "Age in years from a birth year", calc.CalculateAge))
	convertCmd.AddCommand(converterCmd("currency", "Convert an amount at the configured rate", calc.ConvertCurrency))
	convertCmd.AddCommand(converterCmd("temp", "Convert Celsius to Fahrenheit", calc.ConvertTemperature))
}
