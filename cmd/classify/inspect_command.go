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
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TFMV/TextClassifier/pkg/analysis"
	"github.com/TFMV/TextClassifier/pkg/classifier"
	"github.com/TFMV/TextClassifier/pkg/store"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var minOverlap float64
	var components int
	var history bool
	var topTerms int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the saved model and show which labels overlap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(st store.Store) error {
				c, rec, err := ctx.loadClassifier(cmd.Context(), st)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				m := c.Model()

				revision := "(unsaved)"
				if rec.Name != "" {
					revision = rec.Revision.String()
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Model", "Revision", "N-grams", "Features", "Labels"},
					[][]string{{
						ctx.config.Store.Name,
						revision,
						fmt.Sprintf("%d..%d", m.NGramMin(), m.NGramMax()),
						vocabularySummary(m),
						strconv.Itoa(len(m.Labels())),
					}},
					nil,
				))

				fmt.Fprintln(out, renderTable(
					[]string{"Label", "Features", "Occurrences"},
					labelRows(m),
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))

				if topTerms > 0 {
					fmt.Fprintln(out, renderTable(
						[]string{"Label", "Term", "Count", "Weight"},
						termRows(analysis.DistinctiveTerms(m, topTerms)),
						[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
					))
				}

				pairs := analysis.LabelOverlap(m).Pairs(minOverlap)
				if len(pairs) > 0 {
					rows := make([][]string, 0, len(pairs))
					for _, p := range pairs {
						rows = append(rows, []string{p.A, p.B, strconv.FormatFloat(p.Similarity, 'f', 4, 64)})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Label", "Label", "Similarity"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignRight},
					))
				}

				if components > 0 {
					projection, err := analysis.ProjectLabels(m, components)
					if err != nil {
						return err
					}
					headers := []string{"Label"}
					for i := 0; i < components; i++ {
						headers = append(headers, fmt.Sprintf("PC%d", i+1))
					}
					rows := make([][]string, 0, len(projection.Labels))
					for i, label := range projection.Labels {
						row := []string{label}
						for j := 0; j < components; j++ {
							row = append(row, strconv.FormatFloat(projection.Coordinates.At(i, j), 'f', 4, 64))
						}
						rows = append(rows, row)
					}
					fmt.Fprintln(out, renderTable(headers, rows, nil))
				}

				if history && rec.Name != "" {
					records, err := st.Revisions(cmd.Context(), rec.Name)
					if err != nil {
						return err
					}
					rows := make([][]string, 0, len(records))
					for _, r := range records {
						rows = append(rows, []string{r.Revision.String(), r.SavedAt.Local().Format("2006-01-02 15:04:05"), strconv.Itoa(len(r.Snapshot.Data))})
					}
					fmt.Fprintln(out, renderTable([]string{"Revision", "Saved", "Labels"}, rows, nil))
				}
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&minOverlap, "min-overlap", 0.1, "Only list label pairs at least this similar")
	cmd.Flags().IntVar(&components, "components", 0, "Project labels onto this many principal components")
	cmd.Flags().BoolVar(&history, "history", false, "List saved revisions")
	cmd.Flags().IntVar(&topTerms, "terms", 3, "Show this many distinctive terms per label")
	return cmd
}

func labelRows(m *classifier.Model) [][]string {
	data := m.Data()
	labels := m.Labels()
	sort.Strings(labels)

	rows := make([][]string, 0, len(labels))
	for _, label := range labels {
		var total float64
		for _, count := range data[label] {
			total += count
		}
		rows = append(rows, []string{label, strconv.Itoa(len(data[label])), strconv.FormatFloat(total, 'f', -1, 64)})
	}
	return rows
}

func termRows(terms map[string][]analysis.WeightedTerm) [][]string {
	labels := make([]string, 0, len(terms))
	for label := range terms {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var rows [][]string
	for _, label := range labels {
		for _, wt := range terms[label] {
			rows = append(rows, []string{
				label,
				wt.Term,
				strconv.FormatFloat(wt.Count, 'f', -1, 64),
				strconv.FormatFloat(wt.Weight, 'f', 3, 64),
			})
		}
	}
	return rows
}
