package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ai-style-review-be/internal/entity"
	"ai-style-review-be/internal/repository/contract"
	"ai-style-review-be/internal/repository/implementation"
	"ai-style-review-be/internal/repository/specification"
)

type refsListOptions struct {
	Category       string
	Source         string
	Limit          int
	Offset         int
	IncludeDeleted bool
}

func newRefsCmd(root *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs",
		Short: "Inspect the stored reference examples",
	}
	cmd.AddCommand(newRefsListCmd(), newRefsDeleteCmd(root))
	return cmd
}

func newRefsListCmd() *cobra.Command {
	opts := &refsListOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reference examples, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openReferenceRepository()
			if err != nil {
				return err
			}
			return runRefsList(cmd.Context(), cmd.OutOrStdout(), repo, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Category, "category", "", "Only this category")
	cmd.Flags().StringVar(&opts.Source, "source", "", "Only this source (seed or accepted)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "Maximum rows to print")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Rows to skip")
	cmd.Flags().BoolVar(&opts.IncludeDeleted, "include-deleted", false, "Include soft-deleted rows")
	return cmd
}

func newRefsDeleteCmd(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Soft-delete a reference example",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			repo, err := openReferenceRepository()
			if err != nil {
				return err
			}
			if err := repo.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete %s: %w", id, err)
			}
			root.logger().Info("CLI", "Reference example deleted", map[string]interface{}{"id": id.String()})
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}

func openReferenceRepository() (contract.ReferenceExampleRepository, error) {
	cfg := loadConfig()
	db, err := openReferenceDB(cfg)
	if err != nil {
		return nil, err
	}
	return implementation.NewReferenceExampleRepository(db), nil
}

func (o *refsListOptions) filters() []specification.Specification {
	var specs []specification.Specification
	if o.IncludeDeleted {
		specs = append(specs, specification.IncludeDeleted{})
	}
	if o.Category != "" {
		specs = append(specs, specification.ByCategory{Category: o.Category})
	}
	if o.Source != "" {
		specs = append(specs, specification.BySource{Source: o.Source})
	}
	return specs
}

func runRefsList(ctx context.Context, w io.Writer, repo contract.ReferenceExampleRepository, opts *refsListOptions) error {
	filters := opts.filters()
	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return fmt.Errorf("count references: %w", err)
	}
	page := append(filters, specification.Newest{}, specification.Pagination{Limit: opts.Limit, Offset: opts.Offset})
	examples, err := repo.FindAll(ctx, page...)
	if err != nil {
		return fmt.Errorf("list references: %w", err)
	}
	printRefs(w, examples)
	fmt.Fprintf(w, "showing %d of %d\n", len(examples), total)
	return nil
}

func printRefs(w io.Writer, examples []*entity.ReferenceExample) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tSOURCE\tPATTERN\tREPLACEMENT\tCREATED")
	for _, ex := range examples {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ex.Id, ex.Category, ex.Source, orDash(ex.Pattern), orDash(ex.Replacement), ex.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
