package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/commonmodules/commonmodules/sparse"
	"github.com/commonmodules/commonmodules/util"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the cm CLI.
// It generates random sparse matrices for trying out the matrix commands.
func NewSeedCmd(st *state) *cobra.Command {
	var (
		outputPath string
		fileCount  int
		rows, cols int
		density    float64
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate random sparse matrix files",
		Long: `Generate random sparse matrices for testing the matrix commands.

Each matrix is written as <uuid>.mtx in the output directory. Every cell is
non-zero with probability --density, and about one row in five is left
empty so row deletion and stacking see empty rows too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 0 || cols < 0 || density < 0 || density > 1 {
				return st.fail(fmt.Errorf("rows=%d cols=%d density=%g: %w", rows, cols, density, util.ErrInvalidArgument))
			}
			if verbose {
				printf(cmd, "Generating %d %dx%d matrices in %s\n", fileCount, rows, cols, outputPath)
			}

			// Create output directory
			if err := os.MkdirAll(outputPath, 0755); err != nil {
				return st.fail(fmt.Errorf("failed to create output directory: %w", err))
			}

			totalNNZ := 0
			for i := 0; i < fileCount; i++ {
				m, err := randomMatrix(rows, cols, density)
				if err != nil {
					return st.fail(err)
				}
				path := filepath.Join(outputPath, uuid.NewString()+".mtx")
				if err := util.ExportSparseMatrix(path, m); err != nil {
					return st.fail(err)
				}
				totalNNZ += m.NNZ()

				if verbose && (i+1)%100 == 0 {
					printf(cmd, "Created %d/%d files...\n", i+1, fileCount)
				}
			}

			st.logger.Info("seeded ", fileCount, " matrices in ", outputPath)
			if verbose {
				printf(cmd, "Successfully created %d files\n", fileCount)
				printf(cmd, "Stored entries: %d\n", totalNNZ)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 10, "Number of files to generate")
	cmd.Flags().IntVar(&rows, "rows", 8, "Rows per matrix")
	cmd.Flags().IntVar(&cols, "cols", 8, "Columns per matrix")
	cmd.Flags().Float64Var(&density, "density", 0.2, "Probability that a cell is non-zero")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func randomMatrix(rows, cols int, density float64) (*sparse.CSR, error) {
	dense := make([][]float64, rows)
	for r := range dense {
		dense[r] = make([]float64, cols)
		if rand.IntN(5) == 0 {
			continue
		}
		for c := range dense[r] {
			if rand.Float64() < density {
				dense[r][c] = float64(rand.IntN(19) - 9)
			}
		}
	}
	if rows == 0 {
		return sparse.NewCSR(0, cols)
	}
	return sparse.NewCSRFromRows(dense)
}
