package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateDocument is the output of the validate command.
type validateDocument struct {
	Scene    string    `json:"scene" yaml:"scene"`
	OK       bool      `json:"ok" yaml:"ok"`
	Levels   int       `json:"levels" yaml:"levels"`
	Walls    int       `json:"walls" yaml:"walls"`
	Conduits int       `json:"conduits" yaml:"conduits"`
	Errors   []finding `json:"errors" yaml:"errors"`
	Warnings []finding `json:"warnings" yaml:"warnings"`
}

type finding struct {
	Element string `json:"element,omitempty" yaml:"element,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene>",
		Short: "Check a scene file and report errors and warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := checkScene(args[0])
			if err != nil {
				return err
			}

			doc := validateDocument{
				Scene:    args[0],
				OK:       res.OK(),
				Errors:   []finding{},
				Warnings: []finding{},
			}
			if s := res.Scene; s != nil {
				doc.Levels, doc.Walls, doc.Conduits = len(s.Levels), len(s.Walls), len(s.Conduits)
			}
			for _, e := range res.Errors {
				doc.Errors = append(doc.Errors, finding{Line: e.Line, Message: e.Message})
			}
			for _, e := range res.Validation.Errors {
				doc.Errors = append(doc.Errors, finding{Element: e.Element, Message: e.Message})
			}
			for _, w := range res.Validation.Warnings {
				doc.Warnings = append(doc.Warnings, finding{Element: w.Element, Message: w.Message})
			}

			if err := a.writeResult(doc); err != nil {
				return err
			}
			if !doc.OK {
				return fmt.Errorf("%s: %w: %d errors", args[0], errInvalidScene, len(doc.Errors))
			}
			loggerFromContext(cmd.Context()).Info("scene is valid", "file", args[0], "warnings", len(doc.Warnings))
			return nil
		},
	}
}
