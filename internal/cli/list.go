package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dalemusser/coursecatalog/internal/domain/models"
	"github.com/spf13/cobra"
)

var activeOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored courses sorted by code",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&activeOnly, "active", false, "only list active courses")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	var cs []models.Course
	if activeOnly {
		cs, err = s.catalog.ListAPI(ctx)
	} else {
		cs, err = s.catalog.List(ctx)
	}
	if err != nil {
		printErr(cmd.ErrOrStderr(), err)
		return err
	}
	printCourses(cmd.OutOrStdout(), cs)
	return nil
}

func printCourses(out io.Writer, cs []models.Course) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "CODE\tNAME\tCREDITS\tSEMESTER\tSTATUS\tINSTRUCTOR")
	for _, c := range cs {
		status := "active"
		if !c.IsActive {
			status = "inactive"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.CourseCode, c.CourseName, c.FormattedCredits(), c.Semester, status, c.Instructor)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "%d courses\n", len(cs))
}
