package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/dalemusser/coursecatalog/internal/app/system/apperr"
	"github.com/spf13/cobra"
)

var keepExisting bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample STEM catalog",
	Long: `seed validates and inserts the built-in sample STEM courses, each with an
instructor picked at random. Existing courses are removed first unless
--keep is given.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&keepExisting, "keep", false, "keep existing courses instead of clearing them")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	added, err := s.catalog.Seed(ctx, samplePayloads(rand.IntN), !keepExisting)
	if len(added) > 0 {
		printCourses(cmd.OutOrStdout(), added)
	}
	if err != nil {
		printErr(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// printErr writes the caller-facing messages of a catalog failure.
func printErr(w io.Writer, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	for _, m := range e.Messages() {
		_, _ = fmt.Fprintf(w, "error: %s\n", m)
	}
	if e.Kind == apperr.KindConnection {
		_, _ = fmt.Fprintln(w, "hint: run 'coursectl check' to diagnose the connection")
	}
}
