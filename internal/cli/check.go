package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the database connection and show a few stored courses",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	_, _ = fmt.Fprintf(out, "Connecting to database %q...\n", mongoDatabase)
	conn, err := s.conns.Acquire(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Connection failed: %v\n", err)
		printHints(out, err)
		return err
	}
	_, _ = fmt.Fprintf(out, "Connected to database %q (state %s)\n", conn.Database().Name(), s.conns.State())

	n, err := s.catalog.Count(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Found %d courses\n", n)

	if n > 0 {
		cs, err := s.catalog.List(ctx)
		if err != nil {
			return err
		}
		if len(cs) > 3 {
			cs = cs[:3]
		}
		_, _ = fmt.Fprintln(out, "Sample courses:")
		for i, c := range cs {
			_, _ = fmt.Fprintf(out, "  %d. %s\n", i+1, c.FullTitle())
		}
	}
	return nil
}

// printHints suggests fixes for the common failure causes.
func printHints(w io.Writer, err error) {
	msg := strings.ToLower(err.Error())
	var hints []string
	switch {
	case strings.Contains(msg, "no such host"), strings.Contains(msg, "enotfound"), strings.Contains(msg, "lookup"):
		hints = []string{
			"Check that the cluster hostname is correct",
			"Verify network connectivity",
			"Check the cluster status with your provider",
		}
	case strings.Contains(msg, "auth"):
		hints = []string{
			"Verify the username and password in the URI",
			"Check that the user has access to the database",
			"Ensure this machine's IP address is allowed by the cluster",
		}
	case strings.Contains(msg, "server selection"), strings.Contains(msg, "timeout"):
		hints = []string{
			"Ensure the server is running and reachable from this machine",
			"Ensure this machine's IP address is allowed by the cluster",
		}
	default:
		return
	}
	_, _ = fmt.Fprintln(w, "Troubleshooting suggestions:")
	for i, h := range hints {
		_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, h)
	}
}
