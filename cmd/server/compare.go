package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cableworks/storefront/internal/delivery/cli"
	"github.com/cableworks/storefront/internal/domain"
	"github.com/cableworks/storefront/internal/infrastructure/catalog"
	"github.com/cableworks/storefront/internal/usecase"
)

func newCompareCmd() *cobra.Command {
	var (
		catalogPath string
		full        bool
		diffOnly    bool
	)

	cmd := &cobra.Command{
		Use:   "compare PRODUCT_ID PRODUCT_ID [PRODUCT_ID]",
		Short: "Print a comparison table for products in a catalog file",
		Args:  cobra.RangeArgs(domain.MinComparisonItems, domain.MaxComparisonItems),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := catalog.NewFileSource(catalogPath, nil)
			if err != nil {
				return err
			}

			selection := usecase.NewComparisonSelection()
			for _, id := range args {
				product, err := source.GetProduct(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
				if !selection.Add(*product) {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: already selected\n", id)
				}
			}

			limit := usecase.QuickViewListLimit
			if full {
				limit = usecase.FullPageListLimit
			}
			view, err := usecase.BuildMatrixView(selection, usecase.NewMatrixBuilder(usecase.MatrixOptions{ListLimit: limit}))
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), cli.RenderMatrix(view.Matrix, cli.RenderOptions{DifferencesOnly: diffOnly}))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "./config/catalog.yaml", "path to the YAML catalog")
	cmd.Flags().BoolVar(&full, "full", false, "show the full comparison page list lengths")
	cmd.Flags().BoolVar(&diffOnly, "diff", false, "only show attributes that differ")
	return cmd
}
