package cmd

import (
	"fmt"
	"strconv"

	"github.com/commonmodules/commonmodules/sparse"
	"github.com/commonmodules/commonmodules/util"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// NewMatrixCmd creates and returns the matrix command and its subcommands,
// which all work on Matrix Market coordinate files.
func NewMatrixCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Inspect and edit sparse matrices stored as Matrix Market files",
	}
	cmd.AddCommand(
		newMatrixInfoCmd(st),
		newMatrixDeleteRowCmd(st),
		newMatrixStackCmd(st),
		newMatrixEqualCmd(st),
	)
	return cmd
}

func newMatrixInfoCmd(st *state) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "info FILE...",
		Short: "Print the shape and stored entry count of matrices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				m, err := util.ImportSparseMatrix(path)
				if err != nil {
					return st.fail(err)
				}
				r, c := m.Dims()
				printf(cmd, "%s: %dx%d, nnz=%d\n", path, r, c, m.NNZ())
				if verbose {
					printf(cmd, "%v\n", m)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print every stored entry")

	return cmd
}

func newMatrixDeleteRowCmd(st *state) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "delete-row FILE ROW",
		Short: "Remove one row from a matrix",
		Long: `Remove row ROW (0-based) from FILE. The result replaces FILE unless
--output names another file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return st.fail(fmt.Errorf("row %q: %w", args[1], sparse.ErrInvalidArgument))
			}
			m, err := util.ImportSparseMatrix(args[0])
			if err != nil {
				return st.fail(err)
			}
			if err := m.DeleteRow(row); err != nil {
				return st.fail(err)
			}
			if output == "" {
				output = args[0]
			}
			if err := util.ExportSparseMatrix(output, m); err != nil {
				return st.fail(err)
			}
			r, c := m.Dims()
			st.logger.Info("deleted row ", row, " of ", args[0], ", now ", r, "x", c)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result here instead of FILE")

	return cmd
}

func newMatrixStackCmd(st *state) *cobra.Command {
	var (
		output      string
		keepZeroRow bool
		dense       bool
	)

	cmd := &cobra.Command{
		Use:   "stack FILE...",
		Short: "Stack the rows of several matrices into one",
		Long: `Start from an empty matrix and append the rows of every FILE in order.

The first stack onto the empty matrix goes through an all-zero seed row,
which is dropped unless --keep-zero-row is given. With --dense the result is
written as whitespace separated text instead of Matrix Market.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []sparse.StackOption{sparse.AsSparse()}
			if keepZeroRow {
				opts = append(opts, sparse.KeepFirstZeroRow())
			}

			var acc mat.Matrix
			for _, path := range args {
				m, err := util.ImportSparseMatrix(path)
				if err != nil {
					return st.fail(err)
				}
				acc, err = sparse.StackRowsVertically(acc, m, opts...)
				if err != nil {
					return st.fail(fmt.Errorf("%s: %w", path, err))
				}
			}
			result := acc.(*sparse.CSR)

			var err error
			switch {
			case output == "":
				err = sparse.WriteMatrixMarket(cmd.OutOrStdout(), result)
			case dense:
				err = util.ExportDense(output, result.ToDense(), "%g")
			default:
				err = util.ExportSparseMatrix(output, result)
			}
			if err != nil {
				return st.fail(err)
			}
			r, c := result.Dims()
			st.logger.Info("stacked ", len(args), " matrices into ", r, "x", c)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result here instead of stdout")
	cmd.Flags().BoolVar(&keepZeroRow, "keep-zero-row", false, "Keep the all-zero seed row")
	cmd.Flags().BoolVar(&dense, "dense", false, "Write dense text instead of Matrix Market")

	return cmd
}

func newMatrixEqualCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "equal A B",
		Short: "Report whether two matrices hold the same values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := util.ImportSparseMatrix(args[0])
			if err != nil {
				return st.fail(err)
			}
			b, err := util.ImportSparseMatrix(args[1])
			if err != nil {
				return st.fail(err)
			}
			eq, err := sparse.Equal(a, b)
			if err != nil {
				return st.fail(err)
			}
			if eq {
				printf(cmd, "equal\n")
			} else {
				printf(cmd, "different\n")
			}
			return nil
		},
	}
}
