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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TFMV/TextClassifier/pkg/classifier"
	"github.com/TFMV/TextClassifier/pkg/dataset"
	"github.com/TFMV/TextClassifier/pkg/store"
)

func newTrainCommand(ctx *commandContext) *cobra.Command {
	var label string
	var csvPath string
	var sentences bool

	cmd := &cobra.Command{
		Use:   "train [text...]",
		Short: "Train the model with labelled text and save a new revision",
		Long: "Train adds the given texts to --label, or every row of --csv to its own label,\n" +
			"then saves the updated model to the configured store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" && len(args) == 0 {
				return errors.New("nothing to train: pass text arguments or --csv")
			}
			if len(args) > 0 && label == "" {
				return errors.New("--label is required when training text arguments")
			}

			var examples []dataset.Example
			if csvPath != "" {
				f, err := os.Open(csvPath)
				if err != nil {
					return fmt.Errorf("open csv: %w", err)
				}
				loaded, err := dataset.LoadCSV(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", csvPath, err)
				}
				examples = append(examples, loaded...)
			}
			for _, text := range args {
				examples = append(examples, dataset.Example{Text: text, Label: label})
			}
			if sentences {
				split, err := splitSentences(examples)
				if err != nil {
					return err
				}
				examples = split
			}

			return ctx.withStore(cmd.Context(), func(st store.Store) error {
				c, _, err := ctx.loadClassifier(cmd.Context(), st)
				if err != nil {
					return err
				}

				labels, texts := dataset.Group(examples)
				for _, l := range labels {
					if _, err := c.TrainAll(texts[l], l); err != nil {
						return fmt.Errorf("train %q: %w", l, err)
					}
					ctx.logger.Info("trained label", "label", l, "examples", len(texts[l]))
				}

				rec, err := st.Save(cmd.Context(), ctx.config.Store.Name, c.Model().Serialize())
				if err != nil {
					return fmt.Errorf("save model: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Trained %d examples across %d labels (%s)\n", len(examples), len(labels), vocabularySummary(c.Model()))
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s revision %s\n", rec.Name, rec.Revision)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label for text arguments")
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file with text and label columns")
	cmd.Flags().BoolVar(&sentences, "sentences", false, "Split each text into sentences and train them separately")
	return cmd
}

func splitSentences(examples []dataset.Example) ([]dataset.Example, error) {
	var out []dataset.Example
	for _, ex := range examples {
		parts, err := dataset.Sentences(ex.Text)
		if err != nil {
			return nil, err
		}
		for _, s := range parts {
			out = append(out, dataset.Example{Text: s, Label: ex.Label})
		}
	}
	return out, nil
}

func vocabularySummary(m *classifier.Model) string {
	if vocab, ok := m.Vocabulary().Get(); ok {
		return fmt.Sprintf("%d vocabulary terms", vocab.Size())
	}
	return "raw n-gram features"
}
