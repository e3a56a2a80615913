// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TFMV/TextClassifier/pkg/store"
)

func newPredictCommand(ctx *commandContext) *cobra.Command {
	var maxMatches int
	var minimumConfidence float64

	cmd := &cobra.Command{
		Use:   "predict text...",
		Short: "Predict labels for each text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			if !cmd.Flags().Changed("max") {
				maxMatches = cfg.Predict.MaxMatches
			}
			if !cmd.Flags().Changed("min") {
				minimumConfidence = cfg.Predict.MinimumConfidence
			}

			return ctx.withStore(cmd.Context(), func(st store.Store) error {
				c, _, err := ctx.loadClassifier(cmd.Context(), st)
				if err != nil {
					return err
				}

				var rows [][]string
				for _, input := range args {
					predictions, err := c.Predict(input, maxMatches, minimumConfidence)
					if err != nil {
						return err
					}
					if len(predictions) == 0 {
						rows = append(rows, []string{input, "", "(no match)", ""})
						continue
					}
					for i, p := range predictions {
						rows = append(rows, []string{
							input,
							strconv.Itoa(i + 1),
							p.Label,
							strconv.FormatFloat(p.Confidence, 'f', 4, 64),
						})
					}
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Input", "Rank", "Label", "Confidence"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&maxMatches, "max", "n", 0, "Maximum number of predictions per text (default from config)")
	cmd.Flags().Float64Var(&minimumConfidence, "min", 0, "Minimum confidence between 0 and 1 (default from config)")
	return cmd
}
